package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tourbook/internal/models"
	"tourbook/internal/repositories/interfaces"
	"tourbook/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type bookingRepository struct {
	collection *mongo.Collection
	capacity   *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) interfaces.BookingRepository {
	return &bookingRepository{
		collection: db.Collection("bookings"),
		capacity:   db.Collection("tour_capacity"),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	booking.ID = primitive.NewObjectID()
	booking.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	var booking models.Booking
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}

func (r *bookingRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return r.findBookingsWithFilter(ctx, bson.M{"user_id": userID}, params)
}

func (r *bookingRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return r.findBookingsWithFilter(ctx, bson.M{}, params)
}

// AdmitGuests performs the capacity check and the headcount increment as one
// conditional update on the (tour, day) capacity document. MongoDB applies
// single-document updates atomically, so of two concurrent calls whose
// combined size exceeds the limit, at most one can match the filter.
func (r *bookingRepository) AdmitGuests(ctx context.Context, tourID primitive.ObjectID, day string, guests, maxGroupSize int) (int, error) {
	key := bson.M{"tour_id": tourID, "day": day}

	// Make sure the counter document exists before the guarded increment.
	_, err := r.capacity.UpdateOne(
		ctx,
		key,
		bson.M{"$setOnInsert": bson.M{"tour_id": tourID, "day": day, "booked": 0}},
		options.Update().SetUpsert(true),
	)
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return 0, fmt.Errorf("failed to ensure capacity entry: %w", err)
	}

	result, err := r.capacity.UpdateOne(
		ctx,
		bson.M{
			"tour_id": tourID,
			"day":     day,
			"booked":  bson.M{"$lte": maxGroupSize - guests},
		},
		bson.M{"$inc": bson.M{"booked": guests}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to admit guests: %w", err)
	}

	booked, readErr := r.GetBookedCount(ctx, tourID, day)
	if readErr != nil {
		booked = 0
	}

	if result.ModifiedCount == 0 {
		return booked, interfaces.ErrNoCapacity
	}

	return booked, nil
}

func (r *bookingRepository) ReleaseGuests(ctx context.Context, tourID primitive.ObjectID, day string, guests int) error {
	_, err := r.capacity.UpdateOne(
		ctx,
		bson.M{"tour_id": tourID, "day": day},
		bson.M{"$inc": bson.M{"booked": -guests}},
	)
	if err != nil {
		return fmt.Errorf("failed to release guests: %w", err)
	}

	return nil
}

func (r *bookingRepository) GetBookedCount(ctx context.Context, tourID primitive.ObjectID, day string) (int, error) {
	var entry models.CapacityEntry
	err := r.capacity.FindOne(ctx, bson.M{"tour_id": tourID, "day": day}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get booked count: %w", err)
	}

	return entry.Booked, nil
}

func (r *bookingRepository) findBookingsWithFilter(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetFindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.Booking
	for cursor.Next(ctx) {
		var booking models.Booking
		if err := cursor.Decode(&booking); err != nil {
			return nil, 0, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, total, nil
}
