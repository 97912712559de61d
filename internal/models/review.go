package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewStatus string

const (
	ReviewStatusActive  ReviewStatus = "active"
	ReviewStatusHidden  ReviewStatus = "hidden"
	ReviewStatusDeleted ReviewStatus = "deleted"
)

// ReviewReply is owned by its review; replies never affect the tour's
// aggregate rating.
type ReviewReply struct {
	UserID    primitive.ObjectID `json:"userId" bson:"user_id"`
	Text      string             `json:"text" bson:"text"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}

// Review holds one user's rating of one tour. At most one review per
// (tour, user) pair, enforced by a unique compound index. Only active reviews
// count toward the tour's aggregate stats.
type Review struct {
	ID         primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	TourID     primitive.ObjectID   `json:"tourId" bson:"tour_id"`
	UserID     primitive.ObjectID   `json:"userId" bson:"user_id"`
	ReviewText string               `json:"reviewText" bson:"review_text" validate:"required,max=500"`
	Rating     int                  `json:"rating" bson:"rating" validate:"required,min=1,max=5"`
	Status     ReviewStatus         `json:"status" bson:"status"`
	Likes      []primitive.ObjectID `json:"likes" bson:"likes"`
	Replies    []ReviewReply        `json:"replies" bson:"replies"`
	CreatedAt  time.Time            `json:"createdAt" bson:"created_at"`
	UpdatedAt  time.Time            `json:"updatedAt" bson:"updated_at"`
}

func (r *Review) IsActive() bool {
	return r.Status == ReviewStatusActive
}
