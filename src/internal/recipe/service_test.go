package recipe

import (
	"context"
	"testing"

	"recipebox-svc/src/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeRepo struct {
	recipes  []*Recipe
	findAlls int
}

func (f *fakeRepo) FindAll(context.Context) ([]*Recipe, error) {
	f.findAlls++
	return f.recipes, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*Recipe, error) {
	for _, r := range f.recipes {
		if r.ID.Hex() == id {
			return r, nil
		}
	}
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, models.ErrInvalidRecipeID
	}
	return nil, models.ErrRecipeNotFound
}

func (f *fakeRepo) Insert(_ context.Context, recipe *Recipe) (*Recipe, error) {
	recipe.ID = primitive.NewObjectID()
	f.recipes = append(f.recipes, recipe)
	return recipe, nil
}

func (f *fakeRepo) Update(ctx context.Context, id string, req *UpsertRequest) (*Recipe, error) {
	recipe, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	recipe.Title = req.Title
	recipe.Description = req.Description
	recipe.Ingredients = req.Ingredients
	recipe.Instructions = req.Instructions
	return recipe, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) (*Recipe, error) {
	recipe, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	kept := f.recipes[:0]
	for _, r := range f.recipes {
		if r != recipe {
			kept = append(kept, r)
		}
	}
	f.recipes = kept
	return recipe, nil
}

type fakeCache struct {
	list        []*Recipe
	saves       int
	invalidates int
}

func (f *fakeCache) GetRecipeList(context.Context) ([]*Recipe, error) {
	return f.list, nil
}

func (f *fakeCache) SaveRecipeList(_ context.Context, recipes []*Recipe) error {
	f.list = recipes
	f.saves++
	return nil
}

func (f *fakeCache) InvalidateRecipeList(context.Context) error {
	f.list = nil
	f.invalidates++
	return nil
}

func sampleRequest() *UpsertRequest {
	return &UpsertRequest{
		Title:        "Pancakes",
		Description:  "Fluffy breakfast pancakes",
		Ingredients:  "flour, milk, eggs",
		Instructions: "mix and fry",
	}
}

func TestGetAll_CacheMissFillsCache(t *testing.T) {
	repo := &fakeRepo{}
	cache := &fakeCache{}
	svc := NewRecipeService(repo, cache)

	created, err := svc.Create(context.Background(), sampleRequest())
	require.NoError(t, err)

	recipes, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, created.ID, recipes[0].ID)
	assert.Equal(t, 1, repo.findAlls)
	assert.Equal(t, 1, cache.saves)
}

func TestGetAll_CacheHitSkipsRepository(t *testing.T) {
	repo := &fakeRepo{}
	cache := &fakeCache{
		list: []*Recipe{{ID: primitive.NewObjectID(), Title: "Cached"}},
	}
	svc := NewRecipeService(repo, cache)

	recipes, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Cached", recipes[0].Title)
	assert.Equal(t, 0, repo.findAlls)
}

func TestMutations_InvalidateCache(t *testing.T) {
	repo := &fakeRepo{}
	cache := &fakeCache{}
	svc := NewRecipeService(repo, cache)

	created, err := svc.Create(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidates)

	_, err = svc.Update(context.Background(), created.ID.Hex(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, 2, cache.invalidates)

	_, err = svc.Delete(context.Background(), created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 3, cache.invalidates)
}

func TestLookupErrors_PassThrough(t *testing.T) {
	svc := NewRecipeService(&fakeRepo{}, &fakeCache{})

	_, err := svc.GetByID(context.Background(), "not-a-hex-id")
	assert.ErrorIs(t, err, models.ErrInvalidRecipeID)

	_, err = svc.GetByID(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, models.ErrRecipeNotFound)

	_, err = svc.Delete(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, models.ErrRecipeNotFound)
}
