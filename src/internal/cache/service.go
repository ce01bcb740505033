package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"recipebox-svc/src/internal/config"
	"recipebox-svc/src/internal/models"
	"recipebox-svc/src/internal/recipe"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type Service interface {
	GetRecipeList(ctx context.Context) ([]*recipe.Recipe, error)
	SaveRecipeList(ctx context.Context, recipes []*recipe.Recipe) error
	InvalidateRecipeList(ctx context.Context) error
}

type cacheService struct {
	client *redis.Client
	cfg    *config.CacheConfig
}

// NewCacheService wraps the recipe list cache. A nil client disables
// caching entirely; every method becomes a cheap miss.
func NewCacheService(client *redis.Client, cfg *config.Configuration) Service {
	return &cacheService{
		client: client,
		cfg:    &cfg.Cache,
	}
}

func (c *cacheService) GetRecipeList(ctx context.Context) ([]*recipe.Recipe, error) {
	if c.client == nil {
		return nil, nil
	}

	data, err := c.client.Get(ctx, c.cfg.RecipeListKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			logrus.Debug("Recipe list not found in cache")
			return nil, nil // Not an error, just not found
		}
		logrus.WithError(err).Error("Failed to get recipe list from cache")
		return nil, models.ErrRedisGet
	}

	var recipes []*recipe.Recipe
	if err := json.Unmarshal([]byte(data), &recipes); err != nil {
		logrus.WithError(err).Error("Failed to unmarshal recipe list from cache")
		return nil, models.ErrRedisGet
	}

	logrus.WithField("count", len(recipes)).Debug("Recipe list retrieved from cache")
	return recipes, nil
}

func (c *cacheService) SaveRecipeList(ctx context.Context, recipes []*recipe.Recipe) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(recipes)
	if err != nil {
		logrus.WithError(err).Error("Failed to marshal recipe list for cache")
		return models.ErrRedisSet
	}

	expiration := time.Duration(c.cfg.RecipeListExpirationMinutes) * time.Minute
	if err := c.client.Set(ctx, c.cfg.RecipeListKey, data, expiration).Err(); err != nil {
		logrus.WithError(err).Error("Failed to cache recipe list")
		return models.ErrRedisSet
	}

	logrus.WithField("count", len(recipes)).Debug("Recipe list cached")
	return nil
}

func (c *cacheService) InvalidateRecipeList(ctx context.Context) error {
	if c.client == nil {
		return nil
	}

	if err := c.client.Del(ctx, c.cfg.RecipeListKey).Err(); err != nil {
		logrus.WithError(err).Error("Failed to invalidate recipe list cache")
		return models.ErrRedisDel
	}

	logrus.Debug("Recipe list cache invalidated")
	return nil
}
