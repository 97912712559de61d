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
)

type reviewRepository struct {
	collection *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) interfaces.ReviewRepository {
	return &reviewRepository{
		collection: db.Collection("reviews"),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	review.ID = primitive.NewObjectID()
	review.CreatedAt = time.Now()
	review.UpdatedAt = time.Now()
	if review.Status == "" {
		review.Status = models.ReviewStatusActive
	}
	if review.Likes == nil {
		review.Likes = []primitive.ObjectID{}
	}
	if review.Replies == nil {
		review.Replies = []models.ReviewReply{}
	}

	_, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("review for tour %s by user %s: %w",
				review.TourID.Hex(), review.UserID.Hex(), interfaces.ErrDuplicate)
		}
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	var review models.Review
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return &review, nil
}

func (r *reviewRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

func (r *reviewRepository) GetActiveByTourAndUser(ctx context.Context, tourID, userID primitive.ObjectID) (*models.Review, error) {
	filter := bson.M{
		"tour_id": tourID,
		"user_id": userID,
		"status":  models.ReviewStatusActive,
	}

	var review models.Review
	err := r.collection.FindOne(ctx, filter).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get review by tour and user: %w", err)
	}

	return &review, nil
}

func (r *reviewRepository) GetByTour(ctx context.Context, tourID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Review, int64, error) {
	filter := bson.M{
		"tour_id": tourID,
		"status":  models.ReviewStatusActive,
	}
	return r.findReviewsWithFilter(ctx, filter, params)
}

func (r *reviewRepository) GetByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Review, int64, error) {
	filter := bson.M{
		"user_id": userID,
		"status":  bson.M{"$ne": models.ReviewStatusDeleted},
	}
	return r.findReviewsWithFilter(ctx, filter, params)
}

func (r *reviewRepository) AggregateActiveStats(ctx context.Context, tourID primitive.ObjectID) (int64, float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"tour_id": tourID,
			"status":  models.ReviewStatusActive,
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":        "$tour_id",
			"num_rated":  bson.M{"$sum": 1},
			"avg_rating": bson.M{"$avg": "$rating"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate review stats: %w", err)
	}
	defer cursor.Close(ctx)

	var result struct {
		NumRated  int64   `bson:"num_rated"`
		AvgRating float64 `bson:"avg_rating"`
	}

	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return 0, 0, fmt.Errorf("failed to decode review stats: %w", err)
		}
		return result.NumRated, result.AvgRating, nil
	}

	return 0, 0, nil
}

func (r *reviewRepository) ToggleLike(ctx context.Context, reviewID, userID primitive.ObjectID) (bool, error) {
	review, err := r.GetByID(ctx, reviewID)
	if err != nil {
		return false, err
	}

	liked := false
	for _, id := range review.Likes {
		if id == userID {
			liked = true
			break
		}
	}

	var update bson.M
	if liked {
		update = bson.M{"$pull": bson.M{"likes": userID}}
	} else {
		update = bson.M{"$addToSet": bson.M{"likes": userID}}
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": reviewID}, update)
	if err != nil {
		return false, fmt.Errorf("failed to toggle review like: %w", err)
	}

	return !liked, nil
}

func (r *reviewRepository) AddReply(ctx context.Context, reviewID primitive.ObjectID, reply *models.ReviewReply) error {
	reply.CreatedAt = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": reviewID},
		bson.M{"$push": bson.M{"replies": reply}},
	)
	if err != nil {
		return fmt.Errorf("failed to add review reply: %w", err)
	}

	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

func (r *reviewRepository) findReviewsWithFilter(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Review, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetFindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []*models.Review
	for cursor.Next(ctx) {
		var review models.Review
		if err := cursor.Decode(&review); err != nil {
			return nil, 0, fmt.Errorf("failed to decode review: %w", err)
		}
		reviews = append(reviews, &review)
	}

	return reviews, total, nil
}
