package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"recipebox-svc/src/internal/config"
	"recipebox-svc/src/internal/recipe"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testCacheConfig() *config.Configuration {
	cfg := &config.Configuration{}
	cfg.Cache.RecipeListKey = "recipes:all"
	cfg.Cache.RecipeListExpirationMinutes = 10
	return cfg
}

func TestGetRecipeList_MissIsNotAnError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	svc := NewCacheService(db, testCacheConfig())

	mock.ExpectGet("recipes:all").RedisNil()

	recipes, err := svc.GetRecipeList(context.Background())
	require.NoError(t, err)
	assert.Nil(t, recipes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveAndGetRecipeList(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	svc := NewCacheService(db, testCacheConfig())

	recipes := []*recipe.Recipe{
		{ID: primitive.NewObjectID(), Title: "Pancakes"},
	}
	data, err := json.Marshal(recipes)
	require.NoError(t, err)

	mock.ExpectSet("recipes:all", data, 10*time.Minute).SetVal("OK")
	require.NoError(t, svc.SaveRecipeList(context.Background(), recipes))

	mock.ExpectGet("recipes:all").SetVal(string(data))
	got, err := svc.GetRecipeList(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Pancakes", got[0].Title)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidateRecipeList(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	svc := NewCacheService(db, testCacheConfig())

	mock.ExpectDel("recipes:all").SetVal(1)
	require.NoError(t, svc.InvalidateRecipeList(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNilClientDisablesCaching(t *testing.T) {
	svc := NewCacheService(nil, testCacheConfig())

	recipes, err := svc.GetRecipeList(context.Background())
	require.NoError(t, err)
	assert.Nil(t, recipes)

	assert.NoError(t, svc.SaveRecipeList(context.Background(), nil))
	assert.NoError(t, svc.InvalidateRecipeList(context.Background()))
}
