package services

import (
	"context"
	"errors"

	"tourbook/internal/models"
	"tourbook/internal/repositories/interfaces"
	"tourbook/internal/utils"
	"tourbook/internal/validators"
	"tourbook/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TourService interface {
	CreateTour(ctx context.Context, tour *models.Tour) (*models.Tour, error)
	UpdateTour(ctx context.Context, id primitive.ObjectID, request *validators.TourUpdateRequest) (*models.Tour, error)
	DeleteTour(ctx context.Context, id primitive.ObjectID) error
	GetTour(ctx context.Context, id primitive.ObjectID) (*models.Tour, error)
	ListTours(ctx context.Context, params *utils.PaginationParams) ([]*models.Tour, int64, error)
	SearchTours(ctx context.Context, filter *interfaces.TourSearchFilter, params *utils.PaginationParams) ([]*models.Tour, int64, error)
	GetFeaturedTours(ctx context.Context, limit int) ([]*models.Tour, error)
}

type tourService struct {
	tourRepo interfaces.TourRepository
	cache    CacheService
	logger   *logger.Logger
}

func NewTourService(tourRepo interfaces.TourRepository, cache CacheService, logger *logger.Logger) TourService {
	return &tourService{
		tourRepo: tourRepo,
		cache:    cache,
		logger:   logger,
	}
}

func (s *tourService) CreateTour(ctx context.Context, tour *models.Tour) (*models.Tour, error) {
	// New tours start with an empty aggregate no matter what the client sent.
	tour.AverageRating = 0
	tour.TotalRatings = 0

	if err := s.tourRepo.Create(ctx, tour); err != nil {
		if errors.Is(err, interfaces.ErrDuplicate) {
			return nil, NewValidation("title", "a tour with this title already exists")
		}
		return nil, newStorage(err)
	}

	s.invalidateFeatured(ctx)
	s.logger.WithTourID(tour.ID).Info("Tour created")

	return tour, nil
}

func (s *tourService) UpdateTour(ctx context.Context, id primitive.ObjectID, request *validators.TourUpdateRequest) (*models.Tour, error) {
	updates := request.ToUpdates()
	if len(updates) == 0 {
		return nil, NewValidation("request", "nothing to update")
	}

	if err := s.tourRepo.Update(ctx, id, updates); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, NewNotFound("tour")
		}
		if errors.Is(err, interfaces.ErrDuplicate) {
			return nil, NewValidation("title", "a tour with this title already exists")
		}
		return nil, newStorage(err)
	}

	s.invalidateTour(ctx, id)

	return s.GetTour(ctx, id)
}

func (s *tourService) DeleteTour(ctx context.Context, id primitive.ObjectID) error {
	if err := s.tourRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return NewNotFound("tour")
		}
		return newStorage(err)
	}

	s.invalidateTour(ctx, id)
	s.logger.WithTourID(id).Info("Tour deleted")

	return nil
}

func (s *tourService) GetTour(ctx context.Context, id primitive.ObjectID) (*models.Tour, error) {
	cacheKey := utils.CacheTourPrefix + id.Hex()

	if s.cache != nil {
		var cached models.Tour
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	tour, err := s.tourRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, NewNotFound("tour")
		}
		return nil, newStorage(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, tour, utils.TourStatsCacheTTL); err != nil {
			s.logger.WithError(err).Debug("Failed to cache tour")
		}
	}

	return tour, nil
}

func (s *tourService) ListTours(ctx context.Context, params *utils.PaginationParams) ([]*models.Tour, int64, error) {
	tours, total, err := s.tourRepo.List(ctx, params)
	if err != nil {
		return nil, 0, newStorage(err)
	}

	return tours, total, nil
}

func (s *tourService) SearchTours(ctx context.Context, filter *interfaces.TourSearchFilter, params *utils.PaginationParams) ([]*models.Tour, int64, error) {
	tours, total, err := s.tourRepo.Search(ctx, filter, params)
	if err != nil {
		return nil, 0, newStorage(err)
	}

	return tours, total, nil
}

func (s *tourService) GetFeaturedTours(ctx context.Context, limit int) ([]*models.Tour, error) {
	if s.cache != nil {
		var cached []*models.Tour
		if err := s.cache.Get(ctx, utils.CacheFeaturedKey, &cached); err == nil {
			return cached, nil
		}
	}

	tours, err := s.tourRepo.GetFeatured(ctx, limit)
	if err != nil {
		return nil, newStorage(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, utils.CacheFeaturedKey, tours, utils.TourStatsCacheTTL); err != nil {
			s.logger.WithError(err).Debug("Failed to cache featured tours")
		}
	}

	return tours, nil
}

func (s *tourService) invalidateTour(ctx context.Context, id primitive.ObjectID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, utils.CacheTourPrefix+id.Hex(), utils.CacheFeaturedKey); err != nil {
		s.logger.WithError(err).Debug("Failed to invalidate tour cache")
	}
}

func (s *tourService) invalidateFeatured(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, utils.CacheFeaturedKey); err != nil {
		s.logger.WithError(err).Debug("Failed to invalidate featured tours cache")
	}
}
