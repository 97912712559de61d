package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tourbook/internal/handlers"
	"tourbook/internal/models"
	"tourbook/internal/services"
	"tourbook/internal/utils"
	"tourbook/internal/validators"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubBookingService struct {
	reserveBooking *models.Booking
	reserveErr     error
	lastRequest    *validators.ReserveRequest
}

func (s *stubBookingService) Reserve(ctx context.Context, userID primitive.ObjectID, request *validators.ReserveRequest) (*models.Booking, error) {
	s.lastRequest = request
	if s.reserveErr != nil {
		return nil, s.reserveErr
	}
	return s.reserveBooking, nil
}

func (s *stubBookingService) GetBooking(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	return nil, services.NewNotFound("booking")
}

func (s *stubBookingService) ListBookings(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return nil, 0, nil
}

func (s *stubBookingService) ListUserBookings(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return nil, 0, nil
}

func bookingRouter(svc services.BookingService, userID primitive.ObjectID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := handlers.NewBookingHandler(svc)

	authed := router.Group("/")
	authed.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("user_type", string(models.UserTypeUser))
	})
	authed.POST("/bookings", handler.CreateBooking)
	return router
}

func postBooking(t *testing.T, router *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(payload))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) *utils.APIResponse {
	t.Helper()
	var response utils.APIResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	return &response
}

func TestCreateBooking_Created(t *testing.T) {
	userID := primitive.NewObjectID()
	svc := &stubBookingService{
		reserveBooking: &models.Booking{
			ID:        primitive.NewObjectID(),
			TourName:  "City Walk",
			UserID:    userID,
			GuestSize: 2,
			BookAt:    "2027-05-01",
		},
	}
	router := bookingRouter(svc, userID)

	recorder := postBooking(t, router, gin.H{
		"tourName":  "City Walk",
		"fullName":  "Jordan Lee",
		"phone":     "+14155550123",
		"guestSize": 2,
		"bookAt":    "2027-05-01",
	})

	require.Equal(t, http.StatusCreated, recorder.Code)
	response := decodeResponse(t, recorder)
	require.Equal(t, utils.StatusSuccess, response.Status)
	require.NotNil(t, svc.lastRequest)
	require.Equal(t, 2, svc.lastRequest.GuestSize)
}

func TestCreateBooking_MissingFieldsRejectedBeforeService(t *testing.T) {
	svc := &stubBookingService{}
	router := bookingRouter(svc, primitive.NewObjectID())

	recorder := postBooking(t, router, gin.H{"tourName": "City Walk"})

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	response := decodeResponse(t, recorder)
	require.Equal(t, utils.CodeValidation, response.Error.Code)
	require.Nil(t, svc.lastRequest)
}

func TestCreateBooking_CapacityExceededMapsTo400(t *testing.T) {
	svc := &stubBookingService{reserveErr: services.NewCapacityExceeded(1)}
	router := bookingRouter(svc, primitive.NewObjectID())

	recorder := postBooking(t, router, gin.H{
		"tourName":  "City Walk",
		"fullName":  "Jordan Lee",
		"phone":     "+14155550123",
		"guestSize": 3,
		"bookAt":    "2027-05-01",
	})

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	response := decodeResponse(t, recorder)
	require.Equal(t, utils.CodeCapacityExceeded, response.Error.Code)
	require.Equal(t, "1", response.Error.Details["remaining"])
}

func TestCreateBooking_TourNotFoundMapsTo404(t *testing.T) {
	svc := &stubBookingService{reserveErr: services.NewNotFound("tour")}
	router := bookingRouter(svc, primitive.NewObjectID())

	recorder := postBooking(t, router, gin.H{
		"tourName":  "Gone",
		"fullName":  "Jordan Lee",
		"phone":     "+14155550123",
		"guestSize": 1,
		"bookAt":    "2027-05-01",
	})

	require.Equal(t, http.StatusNotFound, recorder.Code)
	response := decodeResponse(t, recorder)
	require.Equal(t, utils.CodeNotFound, response.Error.Code)
}
