package service

import (
	"context"
	"errors"

	"github.com/trailhaven/trails-backend-go/internal/models"
	"github.com/trailhaven/trails-backend-go/internal/repository"
)

// ListService handles wishlist and completed-trail tracking
type ListService struct {
	lists  *repository.ListRepository
	trails *repository.TrailRepository
}

// NewListService creates a new list service
func NewListService(lists *repository.ListRepository, trails *repository.TrailRepository) *ListService {
	return &ListService{lists: lists, trails: trails}
}

// SetWishlisted adds or removes a wishlist entry
func (s *ListService) SetWishlisted(ctx context.Context, userID, trailID int64, wishlisted bool) error {
	if wishlisted {
		return s.lists.AddWishlist(ctx, userID, trailID)
	}
	return s.lists.RemoveWishlist(ctx, userID, trailID)
}

// SetCompleted adds or removes a completed entry
func (s *ListService) SetCompleted(ctx context.Context, userID, trailID int64, completed bool) error {
	if completed {
		return s.lists.AddCompleted(ctx, userID, trailID)
	}
	return s.lists.RemoveCompleted(ctx, userID, trailID)
}

// GetList returns the hydrated trails in one of a user's lists.
// table must be "wishlist" or "completed".
func (s *ListService) GetList(ctx context.Context, table string, userID int64) ([]models.Trail, error) {
	ids, err := s.lists.ListTrailIDs(ctx, table, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Trail{}, nil
	}

	trails, err := s.trails.GetTrailsByIDs(ctx, ids, &userID)
	if err != nil {
		// entries can outlive their trails; an empty hydration is not fatal
		if errors.Is(err, repository.ErrNotFound) {
			return []models.Trail{}, nil
		}
		return nil, err
	}
	return trails, nil
}
