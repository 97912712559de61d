package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"tourbook/internal/models"
	"tourbook/internal/repositories/interfaces"
	"tourbook/internal/services"
	"tourbook/internal/utils"
	"tourbook/internal/validators"
	"tourbook/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text", Output: "stderr"})
	require.NoError(t, err)
	return l
}

type memTourRepo struct {
	mu    sync.Mutex
	tours map[primitive.ObjectID]*models.Tour
}

func newMemTourRepo(tours ...*models.Tour) *memTourRepo {
	r := &memTourRepo{tours: make(map[primitive.ObjectID]*models.Tour)}
	for _, tour := range tours {
		if tour.ID.IsZero() {
			tour.ID = primitive.NewObjectID()
		}
		r.tours[tour.ID] = tour
	}
	return r
}

func (r *memTourRepo) Create(ctx context.Context, tour *models.Tour) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tour.ID = primitive.NewObjectID()
	r.tours[tour.ID] = tour
	return nil
}

func (r *memTourRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Tour, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tour, ok := r.tours[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	copied := *tour
	return &copied, nil
}

func (r *memTourRepo) GetByTitle(ctx context.Context, title string) (*models.Tour, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tour := range r.tours {
		if tour.Title == title {
			copied := *tour
			return &copied, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *memTourRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return nil
}

func (r *memTourRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tours[id]; !ok {
		return interfaces.ErrNotFound
	}
	delete(r.tours, id)
	return nil
}

func (r *memTourRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Tour, int64, error) {
	return nil, 0, nil
}

func (r *memTourRepo) Search(ctx context.Context, filter *interfaces.TourSearchFilter, params *utils.PaginationParams) ([]*models.Tour, int64, error) {
	return nil, 0, nil
}

func (r *memTourRepo) GetFeatured(ctx context.Context, limit int) ([]*models.Tour, error) {
	return nil, nil
}

func (r *memTourRepo) UpdateRatingStats(ctx context.Context, id primitive.ObjectID, averageRating float64, totalRatings int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tour, ok := r.tours[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	tour.AverageRating = averageRating
	tour.TotalRatings = totalRatings
	return nil
}

type memBookingRepo struct {
	mu         sync.Mutex
	capacity   map[string]int
	bookings   map[primitive.ObjectID]*models.Booking
	failCreate bool
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{
		capacity: make(map[string]int),
		bookings: make(map[primitive.ObjectID]*models.Booking),
	}
}

func capacityKey(tourID primitive.ObjectID, day string) string {
	return fmt.Sprintf("%s|%s", tourID.Hex(), day)
}

func (r *memBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return errors.New("insert failed")
	}
	booking.ID = primitive.NewObjectID()
	r.bookings[booking.ID] = booking
	return nil
}

func (r *memBookingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return booking, nil
}

func (r *memBookingRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Booking
	for _, booking := range r.bookings {
		if booking.UserID == userID {
			result = append(result, booking)
		}
	}
	return result, int64(len(result)), nil
}

func (r *memBookingRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Booking
	for _, booking := range r.bookings {
		result = append(result, booking)
	}
	return result, int64(len(result)), nil
}

func (r *memBookingRepo) AdmitGuests(ctx context.Context, tourID primitive.ObjectID, day string, guests, maxGroupSize int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := capacityKey(tourID, day)
	booked := r.capacity[key]
	if booked+guests > maxGroupSize {
		return booked, interfaces.ErrNoCapacity
	}
	r.capacity[key] = booked + guests
	return booked + guests, nil
}

func (r *memBookingRepo) ReleaseGuests(ctx context.Context, tourID primitive.ObjectID, day string, guests int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.capacity[capacityKey(tourID, day)] -= guests
	return nil
}

func (r *memBookingRepo) GetBookedCount(ctx context.Context, tourID primitive.ObjectID, day string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.capacity[capacityKey(tourID, day)], nil
}

func futureDay(daysAhead int) string {
	return utils.DayKey(time.Now().UTC().AddDate(0, 0, daysAhead))
}

func reserveRequest(tourName string, guests int, bookAt string) *validators.ReserveRequest {
	return &validators.ReserveRequest{
		TourName:  tourName,
		FullName:  "Jordan Lee",
		Phone:     "+14155550123",
		GuestSize: guests,
		BookAt:    bookAt,
	}
}

func TestReserve_Succeeds(t *testing.T) {
	tourRepo := newMemTourRepo(&models.Tour{Title: "City Walk", MaxGroupSize: 10})
	bookingRepo := newMemBookingRepo()
	svc := services.NewBookingService(bookingRepo, tourRepo, testLogger(t))

	userID := primitive.NewObjectID()
	booking, err := svc.Reserve(context.Background(), userID, reserveRequest("City Walk", 3, futureDay(7)))
	require.NoError(t, err)
	require.False(t, booking.ID.IsZero())
	require.Equal(t, "City Walk", booking.TourName)
	require.Equal(t, userID, booking.UserID)
	require.Equal(t, futureDay(7), booking.BookAt)

	count, err := bookingRepo.GetBookedCount(context.Background(), booking.TourID, booking.BookAt)
	require.NoError(t, err)
	require.Equal(t, 3, count)
}

func TestReserve_NormalizesTimestampToDay(t *testing.T) {
	tourRepo := newMemTourRepo(&models.Tour{Title: "City Walk", MaxGroupSize: 10})
	bookingRepo := newMemBookingRepo()
	svc := services.NewBookingService(bookingRepo, tourRepo, testLogger(t))

	day := time.Now().UTC().AddDate(0, 0, 3)
	stamp := time.Date(day.Year(), day.Month(), day.Day(), 18, 30, 0, 0, time.UTC).Format(time.RFC3339)

	booking, err := svc.Reserve(context.Background(), primitive.NewObjectID(), reserveRequest("City Walk", 2, stamp))
	require.NoError(t, err)
	require.Equal(t, utils.DayKey(day), booking.BookAt)
}

func TestReserve_TourNotFound(t *testing.T) {
	svc := services.NewBookingService(newMemBookingRepo(), newMemTourRepo(), testLogger(t))

	_, err := svc.Reserve(context.Background(), primitive.NewObjectID(), reserveRequest("No Such Tour", 2, futureDay(1)))

	var domainErr *services.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, services.KindNotFound, domainErr.Kind)
}

func TestReserve_GuestSizeAboveMax(t *testing.T) {
	tourRepo := newMemTourRepo(&models.Tour{Title: "City Walk", MaxGroupSize: 4})
	svc := services.NewBookingService(newMemBookingRepo(), tourRepo, testLogger(t))

	_, err := svc.Reserve(context.Background(), primitive.NewObjectID(), reserveRequest("City Walk", 5, futureDay(1)))

	var domainErr *services.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, services.KindValidation, domainErr.Kind)
	require.Contains(t, domainErr.Details, "guestSize")
}

func TestReserve_PastDateRejected(t *testing.T) {
	tourRepo := newMemTourRepo(&models.Tour{Title: "City Walk", MaxGroupSize: 10})
	svc := services.NewBookingService(newMemBookingRepo(), tourRepo, testLogger(t))

	_, err := svc.Reserve(context.Background(), primitive.NewObjectID(), reserveRequest("City Walk", 2, "2020-01-01"))

	var domainErr *services.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, services.KindValidation, domainErr.Kind)
	require.Contains(t, domainErr.Details, "bookAt")
}

func TestReserve_SameDayAllowed(t *testing.T) {
	tourRepo := newMemTourRepo(&models.Tour{Title: "City Walk", MaxGroupSize: 10})
	svc := services.NewBookingService(newMemBookingRepo(), tourRepo, testLogger(t))

	_, err := svc.Reserve(context.Background(), primitive.NewObjectID(), reserveRequest("City Walk", 2, utils.TodayKey()))
	require.NoError(t, err)
}

func TestReserve_CapacityExceededReportsRemaining(t *testing.T) {
	tourRepo := newMemTourRepo(&models.Tour{Title: "City Walk", MaxGroupSize: 4})
	bookingRepo := newMemBookingRepo()
	svc := services.NewBookingService(bookingRepo, tourRepo, testLogger(t))

	day := futureDay(5)
	_, err := svc.Reserve(context.Background(), primitive.NewObjectID(), reserveRequest("City Walk", 3, day))
	require.NoError(t, err)

	_, err = svc.Reserve(context.Background(), primitive.NewObjectID(), reserveRequest("City Walk", 3, day))

	var domainErr *services.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, services.KindCapacityExceeded, domainErr.Kind)
	require.Equal(t, "1", domainErr.Details["remaining"])
}

func TestReserve_ConcurrentRequestsAdmitExactlyOne(t *testing.T) {
	tourRepo := newMemTourRepo(&models.Tour{Title: "City Walk", MaxGroupSize: 4})
	bookingRepo := newMemBookingRepo()
	svc := services.NewBookingService(bookingRepo, tourRepo, testLogger(t))

	day := futureDay(10)
	const attempts = 8

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Reserve(context.Background(), primitive.NewObjectID(), reserveRequest("City Walk", 3, day))
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		var domainErr *services.DomainError
		require.ErrorAs(t, err, &domainErr)
		require.Equal(t, services.KindCapacityExceeded, domainErr.Kind)
	}
	require.Equal(t, 1, successes)

	tour, err := tourRepo.GetByTitle(context.Background(), "City Walk")
	require.NoError(t, err)
	count, err := bookingRepo.GetBookedCount(context.Background(), tour.ID, day)
	require.NoError(t, err)
	require.Equal(t, 3, count)
}

func TestReserve_ReleasesSeatsWhenInsertFails(t *testing.T) {
	tourRepo := newMemTourRepo(&models.Tour{Title: "City Walk", MaxGroupSize: 4})
	bookingRepo := newMemBookingRepo()
	bookingRepo.failCreate = true
	svc := services.NewBookingService(bookingRepo, tourRepo, testLogger(t))

	day := futureDay(2)
	_, err := svc.Reserve(context.Background(), primitive.NewObjectID(), reserveRequest("City Walk", 3, day))

	var domainErr *services.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, services.KindStorage, domainErr.Kind)

	tour, err := tourRepo.GetByTitle(context.Background(), "City Walk")
	require.NoError(t, err)
	count, err := bookingRepo.GetBookedCount(context.Background(), tour.ID, day)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}
