package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"

	bookingsrepo "stayrate/internal/bookings/repository"
	roomserrors "stayrate/internal/rooms/errors"
	"stayrate/internal/rooms/repository"
	"stayrate/internal/rooms/validator"
	"stayrate/pkg/config"
	apperrors "stayrate/pkg/errors"
	"stayrate/pkg/model"
	"stayrate/pkg/sanitizer"
	"stayrate/pkg/validation"
)

// AvailabilityChecker is the slice of the booking service the room side
// needs: the pure date-range overlap check.
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, roomID int, checkIn, checkOut model.Date, excludeBookingID int) (bool, error)
}

type ListOptions struct {
	RoomType      *model.RoomType
	MinPrice      *float64
	MaxPrice      *float64
	MinCapacity   *int
	MaxCapacity   *int
	AvailableOnly bool
	SortBy        string
	Desc          bool
	Limit         int
	Offset        int
}

// AvailabilityQuery searches for rooms free over a date range.
type AvailabilityQuery struct {
	CheckIn   model.Date
	CheckOut  model.Date
	NumGuests *int
	RoomType  *model.RoomType
}

// BookingsQuery narrows a room's booking history.
type BookingsQuery struct {
	Status *model.BookingStatus
	SortBy string
	Desc   bool
}

// HotelStats aggregates both collections for the /stats endpoint. Revenue
// only counts bookings in a confirmed-or-later, non-cancelled status.
type HotelStats struct {
	TotalRooms                int                         `json:"total_rooms"`
	AvailableRooms            int                         `json:"available_rooms"`
	TotalBookings             int                         `json:"total_bookings"`
	TotalRevenue              float64                     `json:"total_revenue"`
	RoomTypeDistribution      map[model.RoomType]int      `json:"room_type_distribution"`
	BookingStatusDistribution map[model.BookingStatus]int `json:"booking_status_distribution"`
}

type RoomService interface {
	Create(ctx context.Context, room *model.Room) error
	GetByID(ctx context.Context, id int) (*model.Room, error)
	GetAll(ctx context.Context, opts ListOptions) ([]model.Room, int, error)
	Update(ctx context.Context, id int, updated *model.Room) (*model.Room, error)

	// Delete removes the room and cancels all of its non-cancelled bookings.
	// Bookings are retained with status cancelled, never deleted. Returns
	// the removed room and the number of bookings cancelled.
	Delete(ctx context.Context, id int) (*model.Room, int, error)

	GetRoomBookings(ctx context.Context, roomID int, q BookingsQuery) ([]model.Booking, error)
	CheckAvailability(ctx context.Context, q AvailabilityQuery) ([]model.RoomAvailability, error)
	Stats(ctx context.Context) (*HotelStats, error)
}

type roomService struct {
	repo         repository.RoomRepository
	bookings     bookingsrepo.BookingRepository
	availability AvailabilityChecker
	validator    *validator.RoomValidator
	cfg          *config.Config
}

func NewRoomService(
	repo repository.RoomRepository,
	bookings bookingsrepo.BookingRepository,
	availability AvailabilityChecker,
	roomValidator *validator.RoomValidator,
	cfg *config.Config,
) RoomService {
	return &roomService{
		repo:         repo,
		bookings:     bookings,
		availability: availability,
		validator:    roomValidator,
		cfg:          cfg,
	}
}

func (s *roomService) Create(ctx context.Context, room *model.Room) error {
	s.sanitize(room)
	if err := s.validate(room); err != nil {
		return err
	}

	if err := s.checkDuplicateNumber(ctx, room.RoomNumber, 0); err != nil {
		return err
	}

	if err := s.repo.Insert(ctx, room); err != nil {
		s.cfg.Log.Error("Failed to create room", "error", err)
		return apperrors.Internal("Failed to create room", err)
	}

	s.cfg.Log.Info("Room created successfully", "id", room.ID, "room_number", room.RoomNumber)
	return nil
}

func (s *roomService) GetByID(ctx context.Context, id int) (*model.Room, error) {
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Room", id)
		}
		return nil, apperrors.Internal("Failed to retrieve room", err)
	}
	return room, nil
}

func (s *roomService) GetAll(ctx context.Context, opts ListOptions) ([]model.Room, int, error) {
	rooms, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list rooms", "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve rooms", err)
	}

	filtered := filterRooms(rooms, opts)
	sortRooms(filtered, opts.SortBy, opts.Desc)

	total := len(filtered)
	return paginateRooms(filtered, opts.Limit, opts.Offset), total, nil
}

func (s *roomService) Update(ctx context.Context, id int, updated *model.Room) (*model.Room, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.sanitize(updated)
	updated.ID = existing.ID

	if err := s.validate(updated); err != nil {
		return nil, err
	}

	if err := s.checkDuplicateNumber(ctx, updated.RoomNumber, id); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		s.cfg.Log.Error("Failed to update room", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update room", err)
	}

	s.cfg.Log.Info("Room updated successfully", "id", id)
	return updated, nil
}

func (s *roomService) Delete(ctx context.Context, id int) (*model.Room, int, error) {
	room, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, 0, apperrors.Internal("Failed to delete room", err)
	}

	// Separate pass over the bookings collection; the two writes are not
	// atomic with each other.
	cancelled, err := s.bookings.CancelByRoom(ctx, id)
	if err != nil {
		s.cfg.Log.Error("Failed to cancel bookings for deleted room", "room_id", id, "error", err)
		return nil, 0, apperrors.Internal("Failed to cancel bookings for deleted room", err)
	}

	s.cfg.Log.Info("Room deleted and associated bookings cancelled",
		"id", id,
		"cancelled_bookings", cancelled,
	)
	return room, cancelled, nil
}

func (s *roomService) GetRoomBookings(ctx context.Context, roomID int, q BookingsQuery) ([]model.Booking, error) {
	if _, err := s.GetByID(ctx, roomID); err != nil {
		return nil, err
	}

	bookings, err := s.bookings.FindByRoom(ctx, roomID)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve room bookings", err)
	}

	if q.Status != nil {
		filtered := bookings[:0]
		for i := range bookings {
			if bookings[i].Status == *q.Status {
				filtered = append(filtered, bookings[i])
			}
		}
		bookings = filtered
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		if q.Desc {
			i, j = j, i
		}
		if q.SortBy == "created_at" {
			return bookings[i].CreatedAt.Before(bookings[j].CreatedAt)
		}
		return bookings[i].CheckInDate.Before(bookings[j].CheckInDate.Time)
	})

	return bookings, nil
}

func (s *roomService) CheckAvailability(ctx context.Context, q AvailabilityQuery) ([]model.RoomAvailability, error) {
	if !q.CheckOut.After(q.CheckIn.Time) {
		return nil, apperrors.InvalidInput("Check-out date must be after check-in date")
	}

	rooms, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve rooms", err)
	}

	available := make([]model.RoomAvailability, 0)
	for i := range rooms {
		room := &rooms[i]
		if !room.IsAvailable {
			continue
		}
		if q.NumGuests != nil && room.Capacity < *q.NumGuests {
			continue
		}
		if q.RoomType != nil && room.RoomType != *q.RoomType {
			continue
		}

		free, err := s.availability.IsAvailable(ctx, room.ID, q.CheckIn, q.CheckOut, 0)
		if err != nil {
			return nil, apperrors.Internal("Failed to check room availability", err)
		}
		if !free {
			continue
		}

		nights := q.CheckIn.DaysUntil(q.CheckOut)
		available = append(available, model.RoomAvailability{
			Room:              *room,
			Nights:            nights,
			TotalPriceForStay: float64(nights) * room.PricePerNight,
		})
	}

	return available, nil
}

func (s *roomService) Stats(ctx context.Context) (*HotelStats, error) {
	rooms, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve rooms", err)
	}
	bookings, err := s.bookings.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	stats := &HotelStats{
		TotalRooms:                len(rooms),
		TotalBookings:             len(bookings),
		RoomTypeDistribution:      make(map[model.RoomType]int),
		BookingStatusDistribution: make(map[model.BookingStatus]int),
	}

	for i := range rooms {
		if rooms[i].IsAvailable {
			stats.AvailableRooms++
		}
		stats.RoomTypeDistribution[rooms[i].RoomType]++
	}

	revenue := 0.0
	for i := range bookings {
		stats.BookingStatusDistribution[bookings[i].Status]++
		if bookings[i].Status.CountsTowardRevenue() {
			revenue += bookings[i].TotalPrice
		}
	}
	stats.TotalRevenue = math.Round(revenue*100) / 100

	return stats, nil
}

// --- Helpers ---

func (s *roomService) sanitize(room *model.Room) {
	room.RoomNumber = sanitizer.Text(room.RoomNumber)
	room.Description = sanitizer.Text(room.Description)
	room.Amenities = sanitizer.TextSlice(room.Amenities)
}

func (s *roomService) validate(room *model.Room) error {
	if err := s.validator.Validate(room); err != nil {
		s.cfg.Log.Warn("Room validation failed", "error", err)
		var fieldErrs validation.FieldErrors
		if errors.As(err, &fieldErrs) {
			return apperrors.Validation("Room validation failed", map[string]any{"errors": fieldErrs})
		}
		return apperrors.Validation("Room validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *roomService) checkDuplicateNumber(ctx context.Context, number string, excludeID int) error {
	other, err := s.repo.FindByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return nil
		}
		return apperrors.Internal("Failed to check room number", err)
	}
	if other.ID != excludeID {
		return apperrors.Conflict(roomserrors.ErrDuplicateNumber.Error()).WithDetails(map[string]any{
			"room_number": number,
		})
	}
	return nil
}

func filterRooms(rooms []model.Room, opts ListOptions) []model.Room {
	filtered := make([]model.Room, 0, len(rooms))
	for i := range rooms {
		r := &rooms[i]
		if opts.RoomType != nil && r.RoomType != *opts.RoomType {
			continue
		}
		if opts.MinPrice != nil && r.PricePerNight < *opts.MinPrice {
			continue
		}
		if opts.MaxPrice != nil && r.PricePerNight > *opts.MaxPrice {
			continue
		}
		if opts.MinCapacity != nil && r.Capacity < *opts.MinCapacity {
			continue
		}
		if opts.MaxCapacity != nil && r.Capacity > *opts.MaxCapacity {
			continue
		}
		if opts.AvailableOnly && !r.IsAvailable {
			continue
		}
		filtered = append(filtered, *r)
	}
	return filtered
}

func sortRooms(rooms []model.Room, sortBy string, desc bool) {
	sort.SliceStable(rooms, func(i, j int) bool {
		if desc {
			i, j = j, i
		}
		switch sortBy {
		case "room_number":
			return strings.Compare(rooms[i].RoomNumber, rooms[j].RoomNumber) < 0
		case "price_per_night":
			return rooms[i].PricePerNight < rooms[j].PricePerNight
		case "capacity":
			return rooms[i].Capacity < rooms[j].Capacity
		default:
			return rooms[i].ID < rooms[j].ID
		}
	})
}

func paginateRooms(rooms []model.Room, limit, offset int) []model.Room {
	if offset >= len(rooms) {
		return []model.Room{}
	}
	rooms = rooms[offset:]
	if limit > 0 && limit < len(rooms) {
		rooms = rooms[:limit]
	}
	return rooms
}
