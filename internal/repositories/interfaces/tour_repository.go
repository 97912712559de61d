package interfaces

import (
	"context"

	"tourbook/internal/models"
	"tourbook/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TourSearchFilter narrows List queries; zero values mean "no constraint".
type TourSearchFilter struct {
	Keyword    string
	City       string
	Category   models.TourCategory
	Difficulty models.TourDifficulty
	MinPrice   float64
	MaxPrice   float64
	MinRating  float64
}

type TourRepository interface {
	Create(ctx context.Context, tour *models.Tour) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Tour, error)
	GetByTitle(ctx context.Context, title string) (*models.Tour, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Tour, int64, error)
	Search(ctx context.Context, filter *TourSearchFilter, params *utils.PaginationParams) ([]*models.Tour, int64, error)
	GetFeatured(ctx context.Context, limit int) ([]*models.Tour, error)

	// UpdateRatingStats writes the denormalized aggregate fields. Only the
	// review recompute path calls this.
	UpdateRatingStats(ctx context.Context, id primitive.ObjectID, averageRating float64, totalRatings int64) error
}
