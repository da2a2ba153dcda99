package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	bookingserrors "stayrate/internal/bookings/errors"
	"stayrate/internal/bookings/repository"
	"stayrate/internal/bookings/validator"
	roomserrors "stayrate/internal/rooms/errors"
	roomsrepo "stayrate/internal/rooms/repository"
	"stayrate/pkg/config"
	apperrors "stayrate/pkg/errors"
	"stayrate/pkg/model"
	"stayrate/pkg/sanitizer"
	"stayrate/pkg/validation"
)

// ListOptions narrows and orders the bookings returned by GetAll.
type ListOptions struct {
	RoomID      *int
	GuestName   string
	GuestEmail  string
	Status      *model.BookingStatus
	CheckInDate *model.Date
	SortBy      string
	Desc        bool
	Limit       int
	Offset      int
}

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id int) (*model.Booking, error)
	GetAll(ctx context.Context, opts ListOptions) ([]model.Booking, int, error)
	Update(ctx context.Context, id int, updated *model.Booking) (*model.Booking, error)
	UpdateStatus(ctx context.Context, id int, status model.BookingStatus) (*model.Booking, error)
	Delete(ctx context.Context, id int) (*model.Booking, error)

	// IsAvailable reports whether the room is free over [checkIn, checkOut)
	// under half-open interval semantics: a checkout on the same day as
	// another booking's check-in is not an overlap. Cancelled bookings and
	// the booking identified by excludeBookingID (0 for none) never block.
	// Pure: no side effects, safe to call from update-in-place flows.
	IsAvailable(ctx context.Context, roomID int, checkIn, checkOut model.Date, excludeBookingID int) (bool, error)

	// PriceFor derives the total price of a stay: nights times the room's
	// price per night. A room that cannot be found prices at 0, never an
	// error.
	PriceFor(ctx context.Context, roomID int, checkIn, checkOut model.Date) float64
}

type bookingService struct {
	repo      repository.BookingRepository
	rooms     roomsrepo.RoomRepository
	validator *validator.BookingValidator
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	rooms roomsrepo.RoomRepository,
	bookingValidator *validator.BookingValidator,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		rooms:     rooms,
		validator: bookingValidator,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	s.sanitize(booking)
	booking.Status = model.BookingStatusPending

	if err := s.validate(booking); err != nil {
		return err
	}

	room, err := s.findRoom(ctx, booking.RoomID)
	if err != nil {
		return err
	}

	if err := s.checkCapacity(room, booking.NumGuests); err != nil {
		return err
	}

	available, err := s.IsAvailable(ctx, booking.RoomID, booking.CheckInDate, booking.CheckOutDate, 0)
	if err != nil {
		return apperrors.Internal("Failed to check room availability", err)
	}
	if !available {
		return apperrors.Conflict(bookingserrors.ErrRoomNotAvailable.Error())
	}

	booking.TotalPrice = s.PriceFor(ctx, booking.RoomID, booking.CheckInDate, booking.CheckOutDate)

	if err := s.repo.Insert(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return apperrors.Internal("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"room_id", booking.RoomID,
		"check_in_date", booking.CheckInDate.String(),
		"check_out_date", booking.CheckOutDate.String(),
	)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id int) (*model.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}
	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, opts ListOptions) ([]model.Booking, int, error) {
	bookings, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve bookings", err)
	}

	filtered := filterBookings(bookings, opts)
	sortBookings(filtered, opts.SortBy, opts.Desc)

	total := len(filtered)
	return paginate(filtered, opts.Limit, opts.Offset), total, nil
}

// Update replaces the booking's mutable fields. The id, status and creation
// timestamp always survive; the total price is re-derived from the new dates.
func (s *bookingService) Update(ctx context.Context, id int, updated *model.Booking) (*model.Booking, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.sanitize(updated)
	updated.ID = existing.ID
	updated.Status = existing.Status
	updated.CreatedAt = existing.CreatedAt

	if err := s.validate(updated); err != nil {
		return nil, err
	}

	room, err := s.findRoom(ctx, updated.RoomID)
	if err != nil {
		return nil, err
	}

	if err := s.checkCapacity(room, updated.NumGuests); err != nil {
		return nil, err
	}

	available, err := s.IsAvailable(ctx, updated.RoomID, updated.CheckInDate, updated.CheckOutDate, id)
	if err != nil {
		return nil, apperrors.Internal("Failed to check room availability", err)
	}
	if !available {
		return nil, apperrors.Conflict(bookingserrors.ErrRoomNotAvailable.Error())
	}

	updated.TotalPrice = s.PriceFor(ctx, updated.RoomID, updated.CheckInDate, updated.CheckOutDate)

	if err := s.repo.Update(ctx, updated); err != nil {
		s.cfg.Log.Error("Failed to update booking", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update booking", err)
	}

	s.cfg.Log.Info("Booking updated successfully", "id", id)
	return updated, nil
}

// UpdateStatus changes only the status field. Transitions are deliberately
// unrestricted; cancelling releases the booking's dates for new reservations.
func (s *bookingService) UpdateStatus(ctx context.Context, id int, status model.BookingStatus) (*model.Booking, error) {
	if !status.Valid() {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid booking status: %s", status))
	}

	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	booking.Status = status
	if err := s.repo.Update(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to update booking status", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update booking status", err)
	}

	s.cfg.Log.Info("Booking status updated", "id", id, "status", status)
	return booking, nil
}

func (s *bookingService) Delete(ctx context.Context, id int) (*model.Booking, error) {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		return nil, apperrors.Internal("Failed to delete booking", err)
	}

	s.cfg.Log.Info("Booking deleted successfully", "id", id)
	return booking, nil
}

func (s *bookingService) IsAvailable(ctx context.Context, roomID int, checkIn, checkOut model.Date, excludeBookingID int) (bool, error) {
	bookings, err := s.repo.FindByRoom(ctx, roomID)
	if err != nil {
		return false, err
	}

	for i := range bookings {
		b := &bookings[i]
		if excludeBookingID != 0 && b.ID == excludeBookingID {
			continue
		}
		if b.Status == model.BookingStatusCancelled {
			continue
		}
		if overlaps(b.CheckInDate, b.CheckOutDate, checkIn, checkOut) {
			return false, nil
		}
	}
	return true, nil
}

func (s *bookingService) PriceFor(ctx context.Context, roomID int, checkIn, checkOut model.Date) float64 {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return 0
	}
	return float64(checkIn.DaysUntil(checkOut)) * room.PricePerNight
}

// overlaps reports whether the half-open ranges [start1, end1) and
// [start2, end2) share any day.
func overlaps(start1, end1, start2, end2 model.Date) bool {
	return start1.Before(end2.Time) && end1.After(start2.Time)
}

// --- Helpers ---

func (s *bookingService) sanitize(b *model.Booking) {
	b.GuestName = sanitizer.Text(b.GuestName)
	b.GuestEmail = sanitizer.Email(b.GuestEmail)
	b.SpecialRequests = sanitizer.Text(b.SpecialRequests)
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		var fieldErrs validation.FieldErrors
		if errors.As(err, &fieldErrs) {
			return apperrors.Validation("Booking validation failed", map[string]any{"errors": fieldErrs})
		}
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *bookingService) findRoom(ctx context.Context, roomID int) (*model.Room, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Room", roomID)
		}
		return nil, apperrors.Internal("Failed to retrieve room", err)
	}
	return room, nil
}

func (s *bookingService) checkCapacity(room *model.Room, numGuests int) error {
	if numGuests > room.Capacity {
		return apperrors.InvalidInput(bookingserrors.ErrCapacityExceeded.Error()).WithDetails(map[string]any{
			"capacity":   room.Capacity,
			"num_guests": numGuests,
		})
	}
	return nil
}

func filterBookings(bookings []model.Booking, opts ListOptions) []model.Booking {
	filtered := make([]model.Booking, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		if opts.RoomID != nil && b.RoomID != *opts.RoomID {
			continue
		}
		if opts.GuestName != "" && !strings.Contains(strings.ToLower(b.GuestName), strings.ToLower(opts.GuestName)) {
			continue
		}
		if opts.GuestEmail != "" && !strings.Contains(strings.ToLower(b.GuestEmail), strings.ToLower(opts.GuestEmail)) {
			continue
		}
		if opts.Status != nil && b.Status != *opts.Status {
			continue
		}
		if opts.CheckInDate != nil && !b.CheckInDate.Equal(opts.CheckInDate.Time) {
			continue
		}
		filtered = append(filtered, *b)
	}
	return filtered
}

func sortBookings(bookings []model.Booking, sortBy string, desc bool) {
	sort.SliceStable(bookings, func(i, j int) bool {
		if desc {
			i, j = j, i
		}
		switch sortBy {
		case "room_id":
			return bookings[i].RoomID < bookings[j].RoomID
		case "check_in_date":
			return bookings[i].CheckInDate.Before(bookings[j].CheckInDate.Time)
		case "total_price":
			return bookings[i].TotalPrice < bookings[j].TotalPrice
		case "created_at":
			return bookings[i].CreatedAt.Before(bookings[j].CreatedAt)
		default:
			return bookings[i].ID < bookings[j].ID
		}
	})
}

func paginate(bookings []model.Booking, limit, offset int) []model.Booking {
	if offset >= len(bookings) {
		return []model.Booking{}
	}
	bookings = bookings[offset:]
	if limit > 0 && limit < len(bookings) {
		bookings = bookings[:limit]
	}
	return bookings
}
