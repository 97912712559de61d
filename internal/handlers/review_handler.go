package handlers

import (
	"tourbook/internal/services"
	"tourbook/internal/utils"
	"tourbook/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewHandler struct {
	reviewService services.ReviewService
}

func NewReviewHandler(reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// CreateReview submits a new review for the tour in the path.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	tourID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid tour ID")
		return
	}

	var request validators.CreateReviewRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateCreateReview(&request); errs.HasErrors() {
		utils.ValidationErrorResponse(c, errs.ToDetails())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	review, svcErr := h.reviewService.CreateReview(c.Request.Context(), tourID, userID, &request)
	if svcErr != nil {
		respondDomainError(c, svcErr)
		return
	}

	utils.CreatedResponse(c, "Review submitted successfully", review)
}

// UpdateReview edits the caller's own review.
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	reviewID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid review ID")
		return
	}

	var request validators.UpdateReviewRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateUpdateReview(&request); errs.HasErrors() {
		utils.ValidationErrorResponse(c, errs.ToDetails())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	review, svcErr := h.reviewService.UpdateReview(c.Request.Context(), reviewID, userID, &request)
	if svcErr != nil {
		respondDomainError(c, svcErr)
		return
	}

	utils.SuccessResponse(c, "Review updated successfully", review)
}

// DeleteReview soft-deletes a review; owners and admins only.
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	reviewID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid review ID")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	if svcErr := h.reviewService.DeleteReview(c.Request.Context(), reviewID, userID, isAdmin(c)); svcErr != nil {
		respondDomainError(c, svcErr)
		return
	}

	utils.SuccessResponse(c, "Review deleted successfully", nil)
}

// ReportReview hides a review pending moderation.
func (h *ReviewHandler) ReportReview(c *gin.Context) {
	reviewID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid review ID")
		return
	}

	if svcErr := h.reviewService.ReportReview(c.Request.Context(), reviewID); svcErr != nil {
		respondDomainError(c, svcErr)
		return
	}

	utils.SuccessResponse(c, "Review reported successfully", nil)
}

// ListTourReviews returns a tour's active reviews.
func (h *ReviewHandler) ListTourReviews(c *gin.Context) {
	tourID, err := primitive.ObjectIDFromHex(c.Param("tourId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid tour ID")
		return
	}

	params := utils.GetPaginationParams(c)

	reviews, total, svcErr := h.reviewService.ListTourReviews(c.Request.Context(), tourID, params)
	if svcErr != nil {
		respondDomainError(c, svcErr)
		return
	}

	utils.SuccessResponseWithMeta(c, "Reviews found", reviews, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Count:      len(reviews),
	})
}

// ListUserReviews returns the caller's reviews, or another user's for admins.
func (h *ReviewHandler) ListUserReviews(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	targetID := userID
	if param := c.Param("userId"); param != "" {
		parsed, err := primitive.ObjectIDFromHex(param)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid user ID")
			return
		}
		if parsed != userID && !isAdmin(c) {
			utils.ForbiddenResponse(c)
			return
		}
		targetID = parsed
	}

	params := utils.GetPaginationParams(c)

	reviews, total, svcErr := h.reviewService.ListUserReviews(c.Request.Context(), targetID, params)
	if svcErr != nil {
		respondDomainError(c, svcErr)
		return
	}

	utils.SuccessResponseWithMeta(c, "User reviews found", reviews, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Count:      len(reviews),
	})
}

// ToggleLike likes or unlikes a review.
func (h *ReviewHandler) ToggleLike(c *gin.Context) {
	reviewID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid review ID")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	liked, svcErr := h.reviewService.ToggleLike(c.Request.Context(), reviewID, userID)
	if svcErr != nil {
		respondDomainError(c, svcErr)
		return
	}

	message := "Review unliked"
	if liked {
		message = "Review liked"
	}

	utils.SuccessResponse(c, message, gin.H{"liked": liked})
}

// AddReply appends a reply to a review.
func (h *ReviewHandler) AddReply(c *gin.Context) {
	reviewID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid review ID")
		return
	}

	var request validators.ReplyRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateReply(&request); errs.HasErrors() {
		utils.ValidationErrorResponse(c, errs.ToDetails())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	if svcErr := h.reviewService.AddReply(c.Request.Context(), reviewID, userID, request.Text); svcErr != nil {
		respondDomainError(c, svcErr)
		return
	}

	utils.SuccessResponse(c, "Reply added successfully", nil)
}
