package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TourCategory string

const (
	CategoryAdventure  TourCategory = "adventure"
	CategoryCultural   TourCategory = "cultural"
	CategoryHistorical TourCategory = "historical"
	CategoryBeach      TourCategory = "beach"
	CategoryNature     TourCategory = "nature"
	CategoryUrban      TourCategory = "urban"
)

type TourDifficulty string

const (
	DifficultyEasy        TourDifficulty = "easy"
	DifficultyModerate    TourDifficulty = "moderate"
	DifficultyChallenging TourDifficulty = "challenging"
)

// Tour is a purchasable travel package. AverageRating and TotalRatings are
// denormalized aggregates over active reviews; they are written only by the
// review service's recompute path.
type Tour struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title         string             `json:"title" bson:"title" validate:"required"`
	City          string             `json:"city" bson:"city" validate:"required"`
	Address       string             `json:"address" bson:"address" validate:"required"`
	Distance      float64            `json:"distance" bson:"distance" validate:"gte=0"`
	Photo         string             `json:"photo" bson:"photo"`
	Description   string             `json:"desc" bson:"desc" validate:"required"`
	Price         float64            `json:"price" bson:"price" validate:"gte=0"`
	MaxGroupSize  int                `json:"maxGroupSize" bson:"max_group_size" validate:"required,min=1"`
	Duration      int                `json:"duration" bson:"duration" validate:"min=1"`
	Category      TourCategory       `json:"category" bson:"category" validate:"required,oneof=adventure cultural historical beach nature urban"`
	Difficulty    TourDifficulty     `json:"difficulty" bson:"difficulty" validate:"required,oneof=easy moderate challenging"`
	Featured      bool               `json:"featured" bson:"featured"`
	AverageRating float64            `json:"averageRating" bson:"average_rating"`
	TotalRatings  int64              `json:"totalRatings" bson:"total_ratings"`
	CreatedAt     time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updated_at"`
}
