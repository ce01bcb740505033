package recipe

import (
	"context"

	"github.com/sirupsen/logrus"
)

// ListCache is the slice of the cache layer the recipe service needs.
// Satisfied by cache.Service.
type ListCache interface {
	GetRecipeList(ctx context.Context) ([]*Recipe, error)
	SaveRecipeList(ctx context.Context, recipes []*Recipe) error
	InvalidateRecipeList(ctx context.Context) error
}

type Service interface {
	GetAll(ctx context.Context) ([]*Recipe, error)
	GetByID(ctx context.Context, id string) (*Recipe, error)
	Create(ctx context.Context, req *UpsertRequest) (*Recipe, error)
	Update(ctx context.Context, id string, req *UpsertRequest) (*Recipe, error)
	Delete(ctx context.Context, id string) (*Recipe, error)
}

type recipeService struct {
	repo  Repository
	cache ListCache
}

func NewRecipeService(repo Repository, cache ListCache) Service {
	return &recipeService{
		repo:  repo,
		cache: cache,
	}
}

func (s *recipeService) GetAll(ctx context.Context) ([]*Recipe, error) {
	cached, err := s.cache.GetRecipeList(ctx)
	if err == nil && cached != nil {
		logrus.WithField("count", len(cached)).Debug("Recipe list served from cache")
		return cached, nil
	}

	recipes, err := s.repo.FindAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to get recipes from repository")
		return nil, err
	}

	// cache refresh is best-effort
	if err := s.cache.SaveRecipeList(ctx, recipes); err != nil {
		logrus.WithError(err).Warn("Failed to refresh recipe list cache")
	}

	return recipes, nil
}

func (s *recipeService) GetByID(ctx context.Context, id string) (*Recipe, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *recipeService) Create(ctx context.Context, req *UpsertRequest) (*Recipe, error) {
	created, err := s.repo.Insert(ctx, &Recipe{
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
	})
	if err != nil {
		return nil, err
	}

	s.invalidateList(ctx)
	return created, nil
}

func (s *recipeService) Update(ctx context.Context, id string, req *UpsertRequest) (*Recipe, error) {
	updated, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.invalidateList(ctx)
	return updated, nil
}

func (s *recipeService) Delete(ctx context.Context, id string) (*Recipe, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.invalidateList(ctx)
	return deleted, nil
}

func (s *recipeService) invalidateList(ctx context.Context) {
	if err := s.cache.InvalidateRecipeList(ctx); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate recipe list cache")
	}
}
