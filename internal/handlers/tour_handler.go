package handlers

import (
	"strconv"

	"tourbook/internal/models"
	"tourbook/internal/repositories/interfaces"
	"tourbook/internal/services"
	"tourbook/internal/utils"
	"tourbook/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TourHandler struct {
	tourService services.TourService
}

func NewTourHandler(tourService services.TourService) *TourHandler {
	return &TourHandler{
		tourService: tourService,
	}
}

// CreateTour adds a tour to the inventory, admin only.
func (h *TourHandler) CreateTour(c *gin.Context) {
	var tour models.Tour
	if err := c.ShouldBindJSON(&tour); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateCreateTour(&tour); errs.HasErrors() {
		utils.ValidationErrorResponse(c, errs.ToDetails())
		return
	}

	created, err := h.tourService.CreateTour(c.Request.Context(), &tour)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.CreatedResponse(c, "Successfully created", created)
}

// UpdateTour edits tour fields, admin only.
func (h *TourHandler) UpdateTour(c *gin.Context) {
	tourID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid tour ID")
		return
	}

	var request validators.TourUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateUpdateTour(&request); errs.HasErrors() {
		utils.ValidationErrorResponse(c, errs.ToDetails())
		return
	}

	tour, svcErr := h.tourService.UpdateTour(c.Request.Context(), tourID, &request)
	if svcErr != nil {
		respondDomainError(c, svcErr)
		return
	}

	utils.SuccessResponse(c, "Successfully updated", tour)
}

// DeleteTour removes a tour, admin only.
func (h *TourHandler) DeleteTour(c *gin.Context) {
	tourID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid tour ID")
		return
	}

	if svcErr := h.tourService.DeleteTour(c.Request.Context(), tourID); svcErr != nil {
		respondDomainError(c, svcErr)
		return
	}

	utils.SuccessResponse(c, "Successfully deleted", nil)
}

// GetTour retrieves a single tour with its aggregate rating fields.
func (h *TourHandler) GetTour(c *gin.Context) {
	tourID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid tour ID")
		return
	}

	tour, svcErr := h.tourService.GetTour(c.Request.Context(), tourID)
	if svcErr != nil {
		respondDomainError(c, svcErr)
		return
	}

	utils.SuccessResponse(c, "Tour found", tour)
}

// ListTours returns the paginated tour inventory.
func (h *TourHandler) ListTours(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	tours, total, err := h.tourService.ListTours(c.Request.Context(), params)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Tours found", tours, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Count:      len(tours),
	})
}

// SearchTours filters tours by keyword, city, category, difficulty, price
// range and minimum rating.
func (h *TourHandler) SearchTours(c *gin.Context) {
	filter := &interfaces.TourSearchFilter{
		Keyword:    c.Query("keyword"),
		City:       c.Query("city"),
		Category:   models.TourCategory(c.Query("category")),
		Difficulty: models.TourDifficulty(c.Query("difficulty")),
	}

	if v := c.Query("min_price"); v != "" {
		filter.MinPrice, _ = strconv.ParseFloat(v, 64)
	}
	if v := c.Query("max_price"); v != "" {
		filter.MaxPrice, _ = strconv.ParseFloat(v, 64)
	}
	if v := c.Query("rating"); v != "" {
		filter.MinRating, _ = strconv.ParseFloat(v, 64)
	}

	params := utils.GetPaginationParams(c)

	tours, total, err := h.tourService.SearchTours(c.Request.Context(), filter, params)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Tours found", tours, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Count:      len(tours),
	})
}

// GetFeaturedTours returns the highlighted tours for the landing page.
func (h *TourHandler) GetFeaturedTours(c *gin.Context) {
	limit := 8
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= utils.MaxPageSize {
			limit = parsed
		}
	}

	tours, err := h.tourService.GetFeaturedTours(c.Request.Context(), limit)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, "Featured tours found", tours)
}
