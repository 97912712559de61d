package validators

import (
	"tourbook/internal/utils"
)

// ReserveRequest carries only presence tags; the booking service orders the
// domain checks itself (tour exists, then group size, then date), and
// front-loading range checks here would change which failure wins.
type ReserveRequest struct {
	TourName  string `json:"tourName" validate:"required"`
	FullName  string `json:"fullName" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	GuestSize int    `json:"guestSize" validate:"required"`
	BookAt    string `json:"bookAt" validate:"required"`
}

func ValidateReserve(req *ReserveRequest) ValidationErrors {
	errors := validationErrorsFrom(utils.ValidateStruct(req))

	if req.Phone != "" && !utils.IsValidPhone(req.Phone) {
		errors = append(errors, ValidationError{
			Field:   "phone",
			Message: "must be a valid phone number",
		})
	}

	return errors
}
