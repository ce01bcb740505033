package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrAPIUnauthorized is returned when the server rejects the bearer token.
// Callers use it to clear the client-side session, like a browser client
// dropping its stored token on a 401.
var ErrAPIUnauthorized = errors.New("api: unauthorized")

// RecipeAPI is the HTTP client the admin CLI talks to the service with.
type RecipeAPI struct {
	baseURL    string
	httpClient *http.Client

	// TokenFunc supplies the bearer token for each request; empty means
	// the request goes out unauthenticated.
	TokenFunc func() string
}

func NewRecipeAPI(baseURL string, timeout time.Duration) *RecipeAPI {
	return &RecipeAPI{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

type VerifyResult struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username"`
}

type RecipeRecord struct {
	ID           string `json:"_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

type RecipeInput struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
}

func (c *RecipeAPI) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body := map[string]string{"username": username, "password": password}

	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *RecipeAPI) Verify(ctx context.Context) (*VerifyResult, error) {
	var result VerifyResult
	if err := c.do(ctx, http.MethodGet, "/api/auth/verify", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *RecipeAPI) ListRecipes(ctx context.Context) ([]RecipeRecord, error) {
	var recipes []RecipeRecord
	if err := c.do(ctx, http.MethodGet, "/api/recipes", nil, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (c *RecipeAPI) GetRecipe(ctx context.Context, id string) (*RecipeRecord, error) {
	var recipe RecipeRecord
	if err := c.do(ctx, http.MethodGet, "/api/recipes/"+id, nil, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (c *RecipeAPI) CreateRecipe(ctx context.Context, input *RecipeInput) (*RecipeRecord, error) {
	var recipe RecipeRecord
	if err := c.do(ctx, http.MethodPost, "/api/recipes", input, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (c *RecipeAPI) UpdateRecipe(ctx context.Context, id string, input *RecipeInput) (*RecipeRecord, error) {
	var recipe RecipeRecord
	if err := c.do(ctx, http.MethodPut, "/api/recipes/"+id, input, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (c *RecipeAPI) DeleteRecipe(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/recipes/"+id, nil, nil)
}

func (c *RecipeAPI) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.TokenFunc != nil {
		if token := c.TokenFunc(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call recipe api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrAPIUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *RecipeAPI) decodeError(resp *http.Response) error {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Message != "" {
		return fmt.Errorf("recipe api: %s (status %d)", payload.Message, resp.StatusCode)
	}
	return fmt.Errorf("recipe api returned status %d", resp.StatusCode)
}
