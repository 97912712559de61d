package services

import (
	"context"
	"errors"
	"math"

	"tourbook/internal/models"
	"tourbook/internal/repositories/interfaces"
	"tourbook/internal/utils"
	"tourbook/internal/validators"
	"tourbook/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewService interface {
	CreateReview(ctx context.Context, tourID, userID primitive.ObjectID, request *validators.CreateReviewRequest) (*models.Review, error)
	UpdateReview(ctx context.Context, reviewID, userID primitive.ObjectID, request *validators.UpdateReviewRequest) (*models.Review, error)
	DeleteReview(ctx context.Context, reviewID, userID primitive.ObjectID, isAdmin bool) error
	ReportReview(ctx context.Context, reviewID primitive.ObjectID) error

	// Recompute rebuilds the tour's denormalized aggregate from its active
	// reviews. Every review mutation above funnels through it; it is the only
	// writer of averageRating / totalRatings and is idempotent.
	Recompute(ctx context.Context, tourID primitive.ObjectID) error

	ListTourReviews(ctx context.Context, tourID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Review, int64, error)
	ListUserReviews(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Review, int64, error)

	ToggleLike(ctx context.Context, reviewID, userID primitive.ObjectID) (bool, error)
	AddReply(ctx context.Context, reviewID, userID primitive.ObjectID, text string) error
}

type reviewService struct {
	reviewRepo interfaces.ReviewRepository
	tourRepo   interfaces.TourRepository
	cache      CacheService
	locks      *utils.KeyedMutex
	logger     *logger.Logger
}

func NewReviewService(reviewRepo interfaces.ReviewRepository, tourRepo interfaces.TourRepository, cache CacheService, logger *logger.Logger) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		tourRepo:   tourRepo,
		cache:      cache,
		locks:      utils.NewKeyedMutex(),
		logger:     logger,
	}
}

func (s *reviewService) CreateReview(ctx context.Context, tourID, userID primitive.ObjectID, request *validators.CreateReviewRequest) (*models.Review, error) {
	if _, err := s.tourRepo.GetByID(ctx, tourID); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, NewNotFound("tour")
		}
		return nil, newStorage(err)
	}

	_, err := s.reviewRepo.GetActiveByTourAndUser(ctx, tourID, userID)
	if err == nil {
		return nil, NewDuplicateReview()
	}
	if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, newStorage(err)
	}

	review := &models.Review{
		TourID:     tourID,
		UserID:     userID,
		ReviewText: request.ReviewText,
		Rating:     request.Rating,
		Status:     models.ReviewStatusActive,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		// The unique index catches the race two concurrent creates can win
		// past the lookup above.
		if errors.Is(err, interfaces.ErrDuplicate) {
			return nil, NewDuplicateReview()
		}
		return nil, newStorage(err)
	}

	if err := s.Recompute(ctx, tourID); err != nil {
		return nil, err
	}

	s.logger.LogReviewEvent(tourID, "review_created", map[string]interface{}{
		"review_id": review.ID.Hex(),
		"rating":    review.Rating,
	})

	return review, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, reviewID, userID primitive.ObjectID, request *validators.UpdateReviewRequest) (*models.Review, error) {
	review, err := s.getReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	if review.UserID != userID {
		return nil, NewForbidden("you can only update your own reviews")
	}

	updates := make(map[string]interface{})
	if request.Rating != 0 {
		updates["rating"] = request.Rating
	}
	if request.ReviewText != "" {
		updates["review_text"] = request.ReviewText
	}

	if err := s.reviewRepo.Update(ctx, reviewID, updates); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, NewNotFound("review")
		}
		return nil, newStorage(err)
	}

	if err := s.Recompute(ctx, review.TourID); err != nil {
		return nil, err
	}

	return s.getReview(ctx, reviewID)
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID, userID primitive.ObjectID, isAdmin bool) error {
	review, err := s.getReview(ctx, reviewID)
	if err != nil {
		return err
	}

	if review.UserID != userID && !isAdmin {
		return NewForbidden("you can only delete your own reviews")
	}

	updates := map[string]interface{}{"status": models.ReviewStatusDeleted}
	if err := s.reviewRepo.Update(ctx, reviewID, updates); err != nil {
		return newStorage(err)
	}

	if err := s.Recompute(ctx, review.TourID); err != nil {
		return err
	}

	s.logger.LogReviewEvent(review.TourID, "review_deleted", map[string]interface{}{
		"review_id": reviewID.Hex(),
	})

	return nil
}

func (s *reviewService) ReportReview(ctx context.Context, reviewID primitive.ObjectID) error {
	review, err := s.getReview(ctx, reviewID)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{"status": models.ReviewStatusHidden}
	if err := s.reviewRepo.Update(ctx, reviewID, updates); err != nil {
		return newStorage(err)
	}

	// A hidden review no longer counts toward the aggregate.
	if err := s.Recompute(ctx, review.TourID); err != nil {
		return err
	}

	s.logger.LogReviewEvent(review.TourID, "review_reported", map[string]interface{}{
		"review_id": reviewID.Hex(),
	})

	return nil
}

func (s *reviewService) Recompute(ctx context.Context, tourID primitive.ObjectID) error {
	key := tourID.Hex()
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	count, average, err := s.reviewRepo.AggregateActiveStats(ctx, tourID)
	if err != nil {
		return newStorage(err)
	}

	if count == 0 {
		average = 0
	} else {
		average = math.Round(average*10) / 10
	}

	if err := s.tourRepo.UpdateRatingStats(ctx, tourID, average, count); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return NewNotFound("tour")
		}
		return newStorage(err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, utils.CacheTourPrefix+key); err != nil {
			s.logger.WithError(err).Debug("Failed to invalidate tour cache after recompute")
		}
	}

	return nil
}

func (s *reviewService) ListTourReviews(ctx context.Context, tourID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Review, int64, error) {
	reviews, total, err := s.reviewRepo.GetByTour(ctx, tourID, params)
	if err != nil {
		return nil, 0, newStorage(err)
	}

	return reviews, total, nil
}

func (s *reviewService) ListUserReviews(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Review, int64, error) {
	reviews, total, err := s.reviewRepo.GetByUser(ctx, userID, params)
	if err != nil {
		return nil, 0, newStorage(err)
	}

	return reviews, total, nil
}

func (s *reviewService) ToggleLike(ctx context.Context, reviewID, userID primitive.ObjectID) (bool, error) {
	liked, err := s.reviewRepo.ToggleLike(ctx, reviewID, userID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return false, NewNotFound("review")
		}
		return false, newStorage(err)
	}

	return liked, nil
}

func (s *reviewService) AddReply(ctx context.Context, reviewID, userID primitive.ObjectID, text string) error {
	reply := &models.ReviewReply{
		UserID: userID,
		Text:   text,
	}

	if err := s.reviewRepo.AddReply(ctx, reviewID, reply); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return NewNotFound("review")
		}
		return newStorage(err)
	}

	return nil
}

func (s *reviewService) getReview(ctx context.Context, reviewID primitive.ObjectID) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, NewNotFound("review")
		}
		return nil, newStorage(err)
	}

	return review, nil
}
