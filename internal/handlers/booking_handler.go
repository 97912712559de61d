package handlers

import (
	"tourbook/internal/services"
	"tourbook/internal/utils"
	"tourbook/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingHandler struct {
	bookingService services.BookingService
}

func NewBookingHandler(bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// CreateBooking reserves guest slots on a tour for one calendar day.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var request validators.ReserveRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateReserve(&request); errs.HasErrors() {
		utils.ValidationErrorResponse(c, errs.ToDetails())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	booking, err := h.bookingService.Reserve(c.Request.Context(), userID, &request)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.CreatedResponse(c, "Your tour is booked successfully", booking)
}

// GetBooking retrieves a single booking.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	booking, svcErr := h.bookingService.GetBooking(c.Request.Context(), bookingID)
	if svcErr != nil {
		respondDomainError(c, svcErr)
		return
	}

	utils.SuccessResponse(c, "Booking found", booking)
}

// ListBookings returns all bookings, admin only.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	bookings, total, err := h.bookingService.ListBookings(c.Request.Context(), params)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Bookings found", bookings, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Count:      len(bookings),
	})
}

// ListUserBookings returns the bookings of one user.
func (h *BookingHandler) ListUserBookings(c *gin.Context) {
	targetID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	// Users may only list their own bookings; admins may list anyone's.
	if targetID != userID && !isAdmin(c) {
		utils.ForbiddenResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)

	bookings, total, svcErr := h.bookingService.ListUserBookings(c.Request.Context(), targetID, params)
	if svcErr != nil {
		respondDomainError(c, svcErr)
		return
	}

	utils.SuccessResponseWithMeta(c, "User bookings found", bookings, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Count:      len(bookings),
	})
}
