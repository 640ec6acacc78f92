package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/cache"
	"fintrack/internal/model"
	"fintrack/internal/repository"
)

const categoryCacheTTL = 5 * time.Minute

// CategoryService lists and creates categories. Listings are served
// read-through from Redis with a short TTL; the cache is display-only and
// never consulted for authorization or ownership decisions.
type CategoryService interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Category, error)
	Create(ctx context.Context, userID uuid.UUID, name string, typ model.CategoryType, icon, color string) (*model.Category, error)
}

type categoryService struct {
	repo  repository.CategoryRepository
	cache *cache.Client
}

// NewCategoryService builds a CategoryService with repository and cache.
func NewCategoryService(repo repository.CategoryRepository, cache *cache.Client) CategoryService {
	return &categoryService{repo: repo, cache: cache}
}

func (s *categoryService) cacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("categories:%s", userID)
}

func (s *categoryService) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Category, error) {
	var cached []model.Category
	if s.cache.GetJSON(ctx, s.cacheKey(userID), &cached) {
		return cached, nil
	}

	categories, err := s.repo.ListVisibleToUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, s.cacheKey(userID), categories, categoryCacheTTL)
	return categories, nil
}

func (s *categoryService) Create(ctx context.Context, userID uuid.UUID, name string, typ model.CategoryType, icon, color string) (*model.Category, error) {
	category := &model.Category{
		UserID: &userID,
		Name:   name,
		Type:   typ,
		Icon:   icon,
		Color:  color,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID))
	return category, nil
}
