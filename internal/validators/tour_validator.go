package validators

import (
	"tourbook/internal/models"
	"tourbook/internal/utils"
)

// TourUpdateRequest uses pointers so absent fields stay untouched. The
// aggregate fields are deliberately missing: only the review recompute path
// may write averageRating / totalRatings.
type TourUpdateRequest struct {
	Title        *string  `json:"title" validate:"omitempty,min=1"`
	City         *string  `json:"city" validate:"omitempty,min=1"`
	Address      *string  `json:"address" validate:"omitempty,min=1"`
	Distance     *float64 `json:"distance" validate:"omitempty,gte=0"`
	Photo        *string  `json:"photo"`
	Description  *string  `json:"desc" validate:"omitempty,min=1"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
	MaxGroupSize *int     `json:"maxGroupSize" validate:"omitempty,min=1"`
	Duration     *int     `json:"duration" validate:"omitempty,min=1"`
	Category     *string  `json:"category" validate:"omitempty,oneof=adventure cultural historical beach nature urban"`
	Difficulty   *string  `json:"difficulty" validate:"omitempty,oneof=easy moderate challenging"`
	Featured     *bool    `json:"featured"`
}

func ValidateCreateTour(tour *models.Tour) ValidationErrors {
	return validationErrorsFrom(utils.ValidateStruct(tour))
}

func ValidateUpdateTour(req *TourUpdateRequest) ValidationErrors {
	return validationErrorsFrom(utils.ValidateStruct(req))
}

// ToUpdates maps set fields onto their bson keys.
func (req *TourUpdateRequest) ToUpdates() map[string]interface{} {
	updates := make(map[string]interface{})

	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Distance != nil {
		updates["distance"] = *req.Distance
	}
	if req.Photo != nil {
		updates["photo"] = *req.Photo
	}
	if req.Description != nil {
		updates["desc"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.MaxGroupSize != nil {
		updates["max_group_size"] = *req.MaxGroupSize
	}
	if req.Duration != nil {
		updates["duration"] = *req.Duration
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Difficulty != nil {
		updates["difficulty"] = *req.Difficulty
	}
	if req.Featured != nil {
		updates["featured"] = *req.Featured
	}

	return updates
}
