package interfaces

import (
	"context"

	"tourbook/internal/models"
	"tourbook/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, int64, error)

	// AdmitGuests atomically adds guests to the (tour, day) headcount, but
	// only if the new total stays within maxGroupSize. It returns the booked
	// total after the call; on ErrNoCapacity the returned total is the
	// current headcount, so callers can report remaining capacity. The check
	// and the increment are a single conditional update on one capacity
	// document — concurrent calls for the same key cannot both pass.
	AdmitGuests(ctx context.Context, tourID primitive.ObjectID, day string, guests, maxGroupSize int) (int, error)

	// ReleaseGuests undoes a prior admission, e.g. when the booking insert
	// that followed it fails.
	ReleaseGuests(ctx context.Context, tourID primitive.ObjectID, day string, guests int) error

	// GetBookedCount reads the current headcount for a (tour, day) pair.
	GetBookedCount(ctx context.Context, tourID primitive.ObjectID, day string) (int, error)
}
