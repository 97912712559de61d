package utils

import "time"

// Application Constants
const (
	AppName    = "TourBook"
	AppVersion = "1.0.0"

	DefaultTimeZone = "UTC"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Reviews
	MinRating           = 1
	MaxRating           = 5
	MaxReviewTextLength = 500
	MaxReplyTextLength  = 300

	// Bookings
	MinGuestSize = 1

	// Cache
	TourStatsCacheTTL = 15 * time.Minute
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Codes
const (
	CodeNotFound         = "NOT_FOUND"
	CodeValidation       = "VALIDATION_ERROR"
	CodeCapacityExceeded = "CAPACITY_EXCEEDED"
	CodeDuplicateReview  = "DUPLICATE_REVIEW"
	CodeForbidden        = "FORBIDDEN"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeStorage          = "STORAGE_ERROR"
	CodeBadRequest       = "BAD_REQUEST"
)

// Error Messages
const (
	ErrInternalServer   = "internal server error"
	ErrUnauthorized     = "unauthorized"
	ErrForbidden        = "forbidden"
	ErrValidationFailed = "validation failed"
)

// Cache Keys
const (
	CacheTourPrefix      = "tour:"
	CacheTourStatsPrefix = "tour_stats:"
	CacheFeaturedKey     = "tours:featured"
)
