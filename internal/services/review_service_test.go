package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"tourbook/internal/models"
	"tourbook/internal/repositories/interfaces"
	"tourbook/internal/services"
	"tourbook/internal/utils"
	"tourbook/internal/validators"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memReviewRepo struct {
	mu      sync.Mutex
	reviews map[primitive.ObjectID]*models.Review
}

func newMemReviewRepo() *memReviewRepo {
	return &memReviewRepo{reviews: make(map[primitive.ObjectID]*models.Review)}
}

func (r *memReviewRepo) Create(ctx context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reviews {
		if existing.TourID == review.TourID && existing.UserID == review.UserID && existing.IsActive() {
			return interfaces.ErrDuplicate
		}
	}
	review.ID = primitive.NewObjectID()
	review.CreatedAt = time.Now()
	r.reviews[review.ID] = review
	return nil
}

func (r *memReviewRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	copied := *review
	return &copied, nil
}

func (r *memReviewRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	if rating, ok := updates["rating"].(int); ok {
		review.Rating = rating
	}
	if text, ok := updates["review_text"].(string); ok {
		review.ReviewText = text
	}
	if status, ok := updates["status"].(models.ReviewStatus); ok {
		review.Status = status
	}
	review.UpdatedAt = time.Now()
	return nil
}

func (r *memReviewRepo) GetActiveByTourAndUser(ctx context.Context, tourID, userID primitive.ObjectID) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, review := range r.reviews {
		if review.TourID == tourID && review.UserID == userID && review.IsActive() {
			copied := *review
			return &copied, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *memReviewRepo) GetByTour(ctx context.Context, tourID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Review
	for _, review := range r.reviews {
		if review.TourID == tourID && review.IsActive() {
			result = append(result, review)
		}
	}
	return result, int64(len(result)), nil
}

func (r *memReviewRepo) GetByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Review
	for _, review := range r.reviews {
		if review.UserID == userID {
			result = append(result, review)
		}
	}
	return result, int64(len(result)), nil
}

func (r *memReviewRepo) AggregateActiveStats(ctx context.Context, tourID primitive.ObjectID) (int64, float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	var sum float64
	for _, review := range r.reviews {
		if review.TourID == tourID && review.IsActive() {
			count++
			sum += float64(review.Rating)
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return count, sum / float64(count), nil
}

func (r *memReviewRepo) ToggleLike(ctx context.Context, reviewID, userID primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[reviewID]
	if !ok {
		return false, interfaces.ErrNotFound
	}
	for i, id := range review.Likes {
		if id == userID {
			review.Likes = append(review.Likes[:i], review.Likes[i+1:]...)
			return false, nil
		}
	}
	review.Likes = append(review.Likes, userID)
	return true, nil
}

func (r *memReviewRepo) AddReply(ctx context.Context, reviewID primitive.ObjectID, reply *models.ReviewReply) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[reviewID]
	if !ok {
		return interfaces.ErrNotFound
	}
	reply.CreatedAt = time.Now()
	review.Replies = append(review.Replies, *reply)
	return nil
}

func newReviewFixture(t *testing.T) (services.ReviewService, *memReviewRepo, *memTourRepo, primitive.ObjectID) {
	t.Helper()
	tourRepo := newMemTourRepo(&models.Tour{Title: "City Walk", MaxGroupSize: 10})
	tour, err := tourRepo.GetByTitle(context.Background(), "City Walk")
	require.NoError(t, err)

	reviewRepo := newMemReviewRepo()
	svc := services.NewReviewService(reviewRepo, tourRepo, nil, testLogger(t))
	return svc, reviewRepo, tourRepo, tour.ID
}

func tourStats(t *testing.T, tourRepo *memTourRepo, tourID primitive.ObjectID) (float64, int64) {
	t.Helper()
	tour, err := tourRepo.GetByID(context.Background(), tourID)
	require.NoError(t, err)
	return tour.AverageRating, tour.TotalRatings
}

func TestCreateReview_UpdatesAggregate(t *testing.T) {
	svc, _, tourRepo, tourID := newReviewFixture(t)

	for _, rating := range []int{5, 4, 3} {
		_, err := svc.CreateReview(context.Background(), tourID, primitive.NewObjectID(), &validators.CreateReviewRequest{
			Rating:     rating,
			ReviewText: "good trip",
		})
		require.NoError(t, err)
	}

	average, total := tourStats(t, tourRepo, tourID)
	require.Equal(t, 4.0, average)
	require.Equal(t, int64(3), total)
}

func TestCreateReview_RoundsToOneDecimal(t *testing.T) {
	svc, _, tourRepo, tourID := newReviewFixture(t)

	for _, rating := range []int{5, 4, 4} {
		_, err := svc.CreateReview(context.Background(), tourID, primitive.NewObjectID(), &validators.CreateReviewRequest{
			Rating:     rating,
			ReviewText: "good trip",
		})
		require.NoError(t, err)
	}

	// mean of 5,4,4 is 4.333...
	average, total := tourStats(t, tourRepo, tourID)
	require.Equal(t, 4.3, average)
	require.Equal(t, int64(3), total)
}

func TestCreateReview_TourNotFound(t *testing.T) {
	svc, _, _, _ := newReviewFixture(t)

	_, err := svc.CreateReview(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), &validators.CreateReviewRequest{
		Rating:     5,
		ReviewText: "good trip",
	})

	var domainErr *services.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, services.KindNotFound, domainErr.Kind)
}

func TestCreateReview_DuplicateLeavesAggregateUnchanged(t *testing.T) {
	svc, _, tourRepo, tourID := newReviewFixture(t)
	userID := primitive.NewObjectID()

	_, err := svc.CreateReview(context.Background(), tourID, userID, &validators.CreateReviewRequest{
		Rating:     5,
		ReviewText: "good trip",
	})
	require.NoError(t, err)

	_, err = svc.CreateReview(context.Background(), tourID, userID, &validators.CreateReviewRequest{
		Rating:     1,
		ReviewText: "changed my mind",
	})

	var domainErr *services.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, services.KindDuplicateReview, domainErr.Kind)

	average, total := tourStats(t, tourRepo, tourID)
	require.Equal(t, 5.0, average)
	require.Equal(t, int64(1), total)
}

func TestUpdateReview_RecomputesAggregate(t *testing.T) {
	svc, _, tourRepo, tourID := newReviewFixture(t)
	userID := primitive.NewObjectID()

	review, err := svc.CreateReview(context.Background(), tourID, userID, &validators.CreateReviewRequest{
		Rating:     5,
		ReviewText: "good trip",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateReview(context.Background(), review.ID, userID, &validators.UpdateReviewRequest{Rating: 2})
	require.NoError(t, err)
	require.Equal(t, 2, updated.Rating)

	average, total := tourStats(t, tourRepo, tourID)
	require.Equal(t, 2.0, average)
	require.Equal(t, int64(1), total)
}

func TestUpdateReview_ForbiddenForOtherUsers(t *testing.T) {
	svc, _, _, tourID := newReviewFixture(t)
	owner := primitive.NewObjectID()

	review, err := svc.CreateReview(context.Background(), tourID, owner, &validators.CreateReviewRequest{
		Rating:     5,
		ReviewText: "good trip",
	})
	require.NoError(t, err)

	_, err = svc.UpdateReview(context.Background(), review.ID, primitive.NewObjectID(), &validators.UpdateReviewRequest{Rating: 1})

	var domainErr *services.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, services.KindForbidden, domainErr.Kind)
}

func TestDeleteReview_OnlyReviewResetsAggregate(t *testing.T) {
	svc, reviewRepo, tourRepo, tourID := newReviewFixture(t)
	userID := primitive.NewObjectID()

	review, err := svc.CreateReview(context.Background(), tourID, userID, &validators.CreateReviewRequest{
		Rating:     4,
		ReviewText: "good trip",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteReview(context.Background(), review.ID, userID, false))

	average, total := tourStats(t, tourRepo, tourID)
	require.Equal(t, 0.0, average)
	require.Equal(t, int64(0), total)

	// soft delete: the document survives with a deleted status
	stored, err := reviewRepo.GetByID(context.Background(), review.ID)
	require.NoError(t, err)
	require.Equal(t, models.ReviewStatusDeleted, stored.Status)
}

func TestDeleteReview_AdminCanDeleteAnyReview(t *testing.T) {
	svc, _, _, tourID := newReviewFixture(t)

	review, err := svc.CreateReview(context.Background(), tourID, primitive.NewObjectID(), &validators.CreateReviewRequest{
		Rating:     4,
		ReviewText: "good trip",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteReview(context.Background(), review.ID, primitive.NewObjectID(), true))
}

func TestReportReview_HiddenReviewLeavesAggregate(t *testing.T) {
	svc, _, tourRepo, tourID := newReviewFixture(t)

	keep, err := svc.CreateReview(context.Background(), tourID, primitive.NewObjectID(), &validators.CreateReviewRequest{
		Rating:     5,
		ReviewText: "good trip",
	})
	require.NoError(t, err)
	require.NotNil(t, keep)

	reported, err := svc.CreateReview(context.Background(), tourID, primitive.NewObjectID(), &validators.CreateReviewRequest{
		Rating:     1,
		ReviewText: "spam",
	})
	require.NoError(t, err)

	require.NoError(t, svc.ReportReview(context.Background(), reported.ID))

	average, total := tourStats(t, tourRepo, tourID)
	require.Equal(t, 5.0, average)
	require.Equal(t, int64(1), total)
}

func TestRecompute_Idempotent(t *testing.T) {
	svc, _, tourRepo, tourID := newReviewFixture(t)

	for _, rating := range []int{5, 3} {
		_, err := svc.CreateReview(context.Background(), tourID, primitive.NewObjectID(), &validators.CreateReviewRequest{
			Rating:     rating,
			ReviewText: "good trip",
		})
		require.NoError(t, err)
	}

	require.NoError(t, svc.Recompute(context.Background(), tourID))
	firstAverage, firstTotal := tourStats(t, tourRepo, tourID)

	require.NoError(t, svc.Recompute(context.Background(), tourID))
	average, total := tourStats(t, tourRepo, tourID)
	require.Equal(t, firstAverage, average)
	require.Equal(t, firstTotal, total)
}

func TestToggleLike_TogglesMembership(t *testing.T) {
	svc, _, _, tourID := newReviewFixture(t)
	userID := primitive.NewObjectID()

	review, err := svc.CreateReview(context.Background(), tourID, primitive.NewObjectID(), &validators.CreateReviewRequest{
		Rating:     4,
		ReviewText: "good trip",
	})
	require.NoError(t, err)

	liked, err := svc.ToggleLike(context.Background(), review.ID, userID)
	require.NoError(t, err)
	require.True(t, liked)

	liked, err = svc.ToggleLike(context.Background(), review.ID, userID)
	require.NoError(t, err)
	require.False(t, liked)
}

func TestAddReply_AppendsToReview(t *testing.T) {
	svc, reviewRepo, _, tourID := newReviewFixture(t)

	review, err := svc.CreateReview(context.Background(), tourID, primitive.NewObjectID(), &validators.CreateReviewRequest{
		Rating:     4,
		ReviewText: "good trip",
	})
	require.NoError(t, err)

	require.NoError(t, svc.AddReply(context.Background(), review.ID, primitive.NewObjectID(), "thanks for the feedback"))

	stored, err := reviewRepo.GetByID(context.Background(), review.ID)
	require.NoError(t, err)
	require.Len(t, stored.Replies, 1)
	require.Equal(t, "thanks for the feedback", stored.Replies[0].Text)
}
