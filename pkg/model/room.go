package model

type RoomType string

const (
	RoomTypeSingle       RoomType = "single"
	RoomTypeDouble       RoomType = "double"
	RoomTypeSuite        RoomType = "suite"
	RoomTypeDeluxe       RoomType = "deluxe"
	RoomTypePresidential RoomType = "presidential"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeSingle, RoomTypeDouble, RoomTypeSuite, RoomTypeDeluxe, RoomTypePresidential:
		return true
	}
	return false
}

type Room struct {
	ID            int      `json:"id"`
	RoomNumber    string   `json:"room_number" validate:"required,min=1,max=20"`
	RoomType      RoomType `json:"room_type" validate:"required,oneof=single double suite deluxe presidential"`
	PricePerNight float64  `json:"price_per_night" validate:"required,gt=0"`
	Capacity      int      `json:"capacity" validate:"required,min=1,max=10"`
	Amenities     []string `json:"amenities"`
	IsAvailable   bool     `json:"is_available"`
	Description   string   `json:"description" validate:"required,min=10,max=500"`
}

// RoomAvailability is a room annotated with the price of a concrete stay,
// returned by the availability search.
type RoomAvailability struct {
	Room
	Nights            int     `json:"nights"`
	TotalPriceForStay float64 `json:"total_price_for_stay"`
}
