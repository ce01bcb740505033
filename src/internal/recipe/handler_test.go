package recipe

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"recipebox-svc/src/clients"
	"recipebox-svc/src/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestHandler() (*gin.Engine, *fakeRepo) {
	gin.SetMode(gin.TestMode)

	repo := &fakeRepo{}
	svc := NewRecipeService(repo, &fakeCache{})

	cfg := &config.Configuration{}
	cfg.App.Timeout = 5

	handler := NewHandler(cfg, svc, clients.NewActivityPublisher(cfg, nil))

	router := gin.New()
	router.GET("/api/recipes", handler.GetAll)
	router.GET("/api/recipes/:id", handler.GetOne)
	router.POST("/api/recipes", handler.Create)
	router.PUT("/api/recipes/:id", handler.Update)
	router.DELETE("/api/recipes/:id", handler.Delete)
	return router, repo
}

func jsonRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

const validRecipeBody = `{
	"title": "  Pancakes  ",
	"description": "Fluffy breakfast pancakes",
	"ingredients": "flour, milk, eggs",
	"instructions": "mix and fry"
}`

func TestCreateRecipe_TrimsAndReturns201(t *testing.T) {
	router, repo := newTestHandler()

	resp := jsonRequest(router, http.MethodPost, "/api/recipes", validRecipeBody)
	require.Equal(t, http.StatusCreated, resp.Code)

	var created Recipe
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	assert.Equal(t, "Pancakes", created.Title)
	require.Len(t, repo.recipes, 1)
}

func TestCreateAndUpdate_RequireAllFields(t *testing.T) {
	router, _ := newTestHandler()

	bodies := []string{
		`{}`,
		`{"title":"Pancakes"}`,
		`{"title":"Pancakes","description":"d","ingredients":"i","instructions":"   "}`,
		`not json`,
	}

	for _, body := range bodies {
		resp := jsonRequest(router, http.MethodPost, "/api/recipes", body)
		assert.Equal(t, http.StatusBadRequest, resp.Code, "body: %s", body)
		assert.Contains(t, resp.Body.String(), "All fields are required")
	}

	resp := jsonRequest(router, http.MethodPut, "/api/recipes/"+primitive.NewObjectID().Hex(), `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetRecipes_ListAndDetail(t *testing.T) {
	router, repo := newTestHandler()

	create := jsonRequest(router, http.MethodPost, "/api/recipes", validRecipeBody)
	require.Equal(t, http.StatusCreated, create.Code)

	list := jsonRequest(router, http.MethodGet, "/api/recipes", "")
	require.Equal(t, http.StatusOK, list.Code)

	var recipes []Recipe
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &recipes))
	require.Len(t, recipes, 1)

	detail := jsonRequest(router, http.MethodGet, "/api/recipes/"+repo.recipes[0].ID.Hex(), "")
	require.Equal(t, http.StatusOK, detail.Code)
	assert.Contains(t, detail.Body.String(), "Pancakes")
}

func TestLookupFailures_MapTo404(t *testing.T) {
	router, _ := newTestHandler()

	unknown := jsonRequest(router, http.MethodGet, "/api/recipes/"+primitive.NewObjectID().Hex(), "")
	assert.Equal(t, http.StatusNotFound, unknown.Code)
	assert.Contains(t, unknown.Body.String(), "Recipe not found")

	badID := jsonRequest(router, http.MethodGet, "/api/recipes/oops", "")
	assert.Equal(t, http.StatusNotFound, badID.Code)
	assert.Contains(t, badID.Body.String(), "Invalid recipe ID")

	missingDelete := jsonRequest(router, http.MethodDelete, "/api/recipes/"+primitive.NewObjectID().Hex(), "")
	assert.Equal(t, http.StatusNotFound, missingDelete.Code)
}

func TestDeleteRecipe_ReturnsDeletedDocument(t *testing.T) {
	router, repo := newTestHandler()

	create := jsonRequest(router, http.MethodPost, "/api/recipes", validRecipeBody)
	require.Equal(t, http.StatusCreated, create.Code)

	resp := jsonRequest(router, http.MethodDelete, "/api/recipes/"+repo.recipes[0].ID.Hex(), "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Recipe deleted successfully")
	assert.Contains(t, resp.Body.String(), "Pancakes")
	assert.Empty(t, repo.recipes)
}
