package handlers

import (
	"errors"
	"net/http"

	"tourbook/internal/models"
	"tourbook/internal/services"
	"tourbook/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentUserID pulls the authenticated user out of the gin context; the auth
// middleware has already validated the token by the time a handler runs.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return primitive.NilObjectID, false
	}

	userID, ok := value.(primitive.ObjectID)
	return userID, ok
}

func isAdmin(c *gin.Context) bool {
	value, exists := c.Get("user_type")
	if !exists {
		return false
	}

	userType, ok := value.(string)
	return ok && userType == string(models.UserTypeAdmin)
}

// respondDomainError translates a service error into the API envelope.
// Domain-rule violations keep their kind and message; anything else is a
// generic server failure.
func respondDomainError(c *gin.Context, err error) {
	var domainErr *services.DomainError
	if !errors.As(err, &domainErr) {
		utils.InternalServerErrorResponse(c)
		return
	}

	status := http.StatusInternalServerError
	switch domainErr.Kind {
	case services.KindNotFound:
		status = http.StatusNotFound
	case services.KindValidation, services.KindCapacityExceeded, services.KindDuplicateReview:
		status = http.StatusBadRequest
	case services.KindForbidden:
		status = http.StatusForbidden
	case services.KindStorage:
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.ErrorResponseWithDetails(c, status, string(domainErr.Kind), domainErr.Message, domainErr.Details)
}
