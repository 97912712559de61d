package services

import (
	"context"
	"errors"
	"fmt"

	"tourbook/internal/models"
	"tourbook/internal/repositories/interfaces"
	"tourbook/internal/utils"
	"tourbook/internal/validators"
	"tourbook/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingService interface {
	// Reserve admits a booking against the (tour, day) capacity ledger and
	// persists it. The precondition checks run in a fixed order: tour exists,
	// then guest size within [1, maxGroupSize], then date not in the past.
	Reserve(ctx context.Context, userID primitive.ObjectID, request *validators.ReserveRequest) (*models.Booking, error)

	GetBooking(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	ListBookings(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	ListUserBookings(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
}

type bookingService struct {
	bookingRepo interfaces.BookingRepository
	tourRepo    interfaces.TourRepository
	logger      *logger.Logger
}

func NewBookingService(bookingRepo interfaces.BookingRepository, tourRepo interfaces.TourRepository, logger *logger.Logger) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		tourRepo:    tourRepo,
		logger:      logger,
	}
}

func (s *bookingService) Reserve(ctx context.Context, userID primitive.ObjectID, request *validators.ReserveRequest) (*models.Booking, error) {
	tour, err := s.tourRepo.GetByTitle(ctx, request.TourName)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, NewNotFound("tour")
		}
		return nil, newStorage(err)
	}

	if request.GuestSize < utils.MinGuestSize {
		return nil, NewValidation("guestSize", "must be a positive integer")
	}
	if request.GuestSize > tour.MaxGroupSize {
		return nil, NewValidation("guestSize",
			fmt.Sprintf("maximum group size for this tour is %d", tour.MaxGroupSize))
	}

	day, err := utils.ParseDayKey(request.BookAt)
	if err != nil {
		return nil, NewValidation("bookAt", "must be a YYYY-MM-DD date or RFC 3339 timestamp")
	}
	if utils.DayKeyBefore(day, utils.TodayKey()) {
		return nil, NewValidation("bookAt", "cannot book for past dates")
	}

	booked, err := s.bookingRepo.AdmitGuests(ctx, tour.ID, day, request.GuestSize, tour.MaxGroupSize)
	if err != nil {
		if errors.Is(err, interfaces.ErrNoCapacity) {
			s.logger.LogBookingEvent(tour.ID, day, "capacity_exceeded", map[string]interface{}{
				"requested": request.GuestSize,
				"booked":    booked,
			})
			return nil, NewCapacityExceeded(tour.MaxGroupSize - booked)
		}
		return nil, newStorage(err)
	}

	booking := &models.Booking{
		TourID:    tour.ID,
		TourName:  tour.Title,
		UserID:    userID,
		FullName:  request.FullName,
		Phone:     request.Phone,
		GuestSize: request.GuestSize,
		BookAt:    day,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		// The seats were already admitted; give them back so the ledger
		// stays equal to the sum of persisted bookings.
		if releaseErr := s.bookingRepo.ReleaseGuests(ctx, tour.ID, day, request.GuestSize); releaseErr != nil {
			s.logger.WithError(releaseErr).WithTourID(tour.ID).
				Error("Failed to release admitted guests after booking insert failure")
		}
		return nil, newStorage(err)
	}

	s.logger.LogBookingEvent(tour.ID, day, "booking_created", map[string]interface{}{
		"booking_id": booking.ID.Hex(),
		"guest_size": booking.GuestSize,
		"booked":     booked,
	})

	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, NewNotFound("booking")
		}
		return nil, newStorage(err)
	}

	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	bookings, total, err := s.bookingRepo.List(ctx, params)
	if err != nil {
		return nil, 0, newStorage(err)
	}

	return bookings, total, nil
}

func (s *bookingService) ListUserBookings(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	bookings, total, err := s.bookingRepo.GetByUserID(ctx, userID, params)
	if err != nil {
		return nil, 0, newStorage(err)
	}

	return bookings, total, nil
}
