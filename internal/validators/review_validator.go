package validators

import (
	"tourbook/internal/utils"
)

type CreateReviewRequest struct {
	Rating     int    `json:"rating" validate:"required,rating"`
	ReviewText string `json:"reviewText" validate:"required,max=500"`
}

type UpdateReviewRequest struct {
	Rating     int    `json:"rating" validate:"omitempty,rating"`
	ReviewText string `json:"reviewText" validate:"omitempty,max=500"`
}

type ReplyRequest struct {
	Text string `json:"text" validate:"required,max=300"`
}

func ValidateCreateReview(req *CreateReviewRequest) ValidationErrors {
	req.ReviewText = utils.SanitizeString(req.ReviewText)
	return validationErrorsFrom(utils.ValidateStruct(req))
}

func ValidateUpdateReview(req *UpdateReviewRequest) ValidationErrors {
	req.ReviewText = utils.SanitizeString(req.ReviewText)
	errors := validationErrorsFrom(utils.ValidateStruct(req))

	if req.Rating == 0 && req.ReviewText == "" {
		errors = append(errors, ValidationError{
			Field:   "request",
			Message: "nothing to update",
		})
	}

	return errors
}

func ValidateReply(req *ReplyRequest) ValidationErrors {
	req.Text = utils.SanitizeString(req.Text)
	return validationErrorsFrom(utils.ValidateStruct(req))
}
