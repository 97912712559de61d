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

type tourRepository struct {
	collection *mongo.Collection
}

func NewTourRepository(db *mongo.Database) interfaces.TourRepository {
	return &tourRepository{
		collection: db.Collection("tours"),
	}
}

func (r *tourRepository) Create(ctx context.Context, tour *models.Tour) error {
	tour.ID = primitive.NewObjectID()
	tour.CreatedAt = time.Now()
	tour.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, tour)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("tour title %q: %w", tour.Title, interfaces.ErrDuplicate)
		}
		return fmt.Errorf("failed to create tour: %w", err)
	}

	return nil
}

func (r *tourRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Tour, error) {
	var tour models.Tour
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&tour)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tour: %w", err)
	}

	return &tour, nil
}

func (r *tourRepository) GetByTitle(ctx context.Context, title string) (*models.Tour, error) {
	var tour models.Tour
	err := r.collection.FindOne(ctx, bson.M{"title": title}).Decode(&tour)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tour by title: %w", err)
	}

	return &tour, nil
}

func (r *tourRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("tour title: %w", interfaces.ErrDuplicate)
		}
		return fmt.Errorf("failed to update tour: %w", err)
	}

	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

func (r *tourRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete tour: %w", err)
	}

	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

func (r *tourRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Tour, int64, error) {
	return r.findToursWithFilter(ctx, bson.M{}, params)
}

func (r *tourRepository) Search(ctx context.Context, filter *interfaces.TourSearchFilter, params *utils.PaginationParams) ([]*models.Tour, int64, error) {
	query := bson.M{}

	if filter.Keyword != "" {
		query["$or"] = []bson.M{
			{"title": bson.M{"$regex": filter.Keyword, "$options": "i"}},
			{"desc": bson.M{"$regex": filter.Keyword, "$options": "i"}},
			{"city": bson.M{"$regex": filter.Keyword, "$options": "i"}},
		}
	}
	if filter.City != "" {
		query["city"] = bson.M{"$regex": filter.City, "$options": "i"}
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Difficulty != "" {
		query["difficulty"] = filter.Difficulty
	}
	if filter.MinPrice > 0 || filter.MaxPrice > 0 {
		price := bson.M{}
		if filter.MinPrice > 0 {
			price["$gte"] = filter.MinPrice
		}
		if filter.MaxPrice > 0 {
			price["$lte"] = filter.MaxPrice
		}
		query["price"] = price
	}
	if filter.MinRating > 0 {
		query["average_rating"] = bson.M{"$gte": filter.MinRating}
	}

	return r.findToursWithFilter(ctx, query, params)
}

func (r *tourRepository) GetFeatured(ctx context.Context, limit int) ([]*models.Tour, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "average_rating", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"featured": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find featured tours: %w", err)
	}
	defer cursor.Close(ctx)

	var tours []*models.Tour
	for cursor.Next(ctx) {
		var tour models.Tour
		if err := cursor.Decode(&tour); err != nil {
			return nil, fmt.Errorf("failed to decode tour: %w", err)
		}
		tours = append(tours, &tour)
	}

	return tours, nil
}

func (r *tourRepository) UpdateRatingStats(ctx context.Context, id primitive.ObjectID, averageRating float64, totalRatings int64) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"average_rating": averageRating,
			"total_ratings":  totalRatings,
			"updated_at":     time.Now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update rating stats: %w", err)
	}

	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

func (r *tourRepository) findToursWithFilter(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Tour, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count tours: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetFindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find tours: %w", err)
	}
	defer cursor.Close(ctx)

	var tours []*models.Tour
	for cursor.Next(ctx) {
		var tour models.Tour
		if err := cursor.Decode(&tour); err != nil {
			return nil, 0, fmt.Errorf("failed to decode tour: %w", err)
		}
		tours = append(tours, &tour)
	}

	return tours, total, nil
}
