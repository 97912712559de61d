package interfaces

import (
	"context"

	"tourbook/internal/models"
	"tourbook/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// GetActiveByTourAndUser returns the user's active review for the tour,
	// or ErrNotFound when none exists.
	GetActiveByTourAndUser(ctx context.Context, tourID, userID primitive.ObjectID) (*models.Review, error)

	GetByTour(ctx context.Context, tourID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Review, int64, error)
	GetByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Review, int64, error)

	// AggregateActiveStats computes count and mean rating over the tour's
	// active reviews. A tour with no active reviews yields (0, 0).
	AggregateActiveStats(ctx context.Context, tourID primitive.ObjectID) (count int64, average float64, err error)

	ToggleLike(ctx context.Context, reviewID, userID primitive.ObjectID) (liked bool, err error)
	AddReply(ctx context.Context, reviewID primitive.ObjectID, reply *models.ReviewReply) error
}
