package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking reserves guest slots on a tour for one calendar day. Bookings are
// immutable once created; BookAt is always the canonical UTC day key
// (YYYY-MM-DD), never a timestamp.
type Booking struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TourID    primitive.ObjectID `json:"tourId" bson:"tour_id"`
	TourName  string             `json:"tourName" bson:"tour_name"`
	UserID    primitive.ObjectID `json:"userId" bson:"user_id"`
	FullName  string             `json:"fullName" bson:"full_name"`
	Phone     string             `json:"phone" bson:"phone"`
	GuestSize int                `json:"guestSize" bson:"guest_size"`
	BookAt    string             `json:"bookAt" bson:"book_at"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}

// CapacityEntry is the running headcount for one (tour, day) pair. All
// admission decisions go through a conditional increment on this single
// document, which is what serializes concurrent reserves for the same key.
type CapacityEntry struct {
	ID     primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TourID primitive.ObjectID `json:"tourId" bson:"tour_id"`
	Day    string             `json:"day" bson:"day"`
	Booked int                `json:"booked" bson:"booked"`
}
