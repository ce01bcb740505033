package auth

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
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, _ := newTestService(t)

	cfg := &config.Configuration{}
	cfg.App.Timeout = 5

	handler := NewHandler(cfg, svc, clients.NewActivityPublisher(cfg, nil))

	router := gin.New()
	router.POST("/api/auth/login", handler.Login)
	router.GET("/api/auth/verify", handler.Verify)
	return router
}

func doRequest(router *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestLoginEndpoint_Success(t *testing.T) {
	router := newTestRouter(t)

	resp := doRequest(router, http.MethodPost, "/api/auth/login",
		`{"username":"admin","password":"admin123"}`, nil)

	require.Equal(t, http.StatusOK, resp.Code)

	var body LoginResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "admin", body.Username)
	assert.Equal(t, "Login successful", body.Message)
}

func TestLoginEndpoint_MissingFields(t *testing.T) {
	router := newTestRouter(t)

	for _, body := range []string{
		`{}`,
		`{"username":"admin"}`,
		`{"password":"admin123"}`,
		``,
	} {
		resp := doRequest(router, http.MethodPost, "/api/auth/login", body, nil)
		assert.Equal(t, http.StatusBadRequest, resp.Code, "body: %s", body)
	}
}

func TestLoginEndpoint_InvalidCredentialsAreGeneric(t *testing.T) {
	router := newTestRouter(t)

	wrongPass := doRequest(router, http.MethodPost, "/api/auth/login",
		`{"username":"admin","password":"wrong"}`, nil)
	unknownUser := doRequest(router, http.MethodPost, "/api/auth/login",
		`{"username":"ghost","password":"admin123"}`, nil)

	require.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	require.Equal(t, http.StatusUnauthorized, unknownUser.Code)

	// identical response body for both failure causes
	assert.JSONEq(t, wrongPass.Body.String(), unknownUser.Body.String())
	assert.Contains(t, wrongPass.Body.String(), "Invalid credentials")
}

func TestVerifyEndpoint(t *testing.T) {
	router := newTestRouter(t)

	loginResp := doRequest(router, http.MethodPost, "/api/auth/login",
		`{"username":"admin","password":"admin123"}`, nil)
	require.Equal(t, http.StatusOK, loginResp.Code)

	var login LoginResponse
	require.NoError(t, json.Unmarshal(loginResp.Body.Bytes(), &login))

	t.Run("valid token", func(t *testing.T) {
		resp := doRequest(router, http.MethodGet, "/api/auth/verify", "",
			map[string]string{"Authorization": "Bearer " + login.Token})
		require.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `{"valid":true,"username":"admin"}`, resp.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		resp := doRequest(router, http.MethodGet, "/api/auth/verify", "", nil)
		require.Equal(t, http.StatusUnauthorized, resp.Code)
		assert.JSONEq(t, `{"valid":false}`, resp.Body.String())
	})

	t.Run("malformed header", func(t *testing.T) {
		resp := doRequest(router, http.MethodGet, "/api/auth/verify", "",
			map[string]string{"Authorization": "Token abc"})
		require.Equal(t, http.StatusUnauthorized, resp.Code)
		assert.JSONEq(t, `{"valid":false}`, resp.Body.String())
	})

	t.Run("tampered token", func(t *testing.T) {
		resp := doRequest(router, http.MethodGet, "/api/auth/verify", "",
			map[string]string{"Authorization": "Bearer " + login.Token + "xx"})
		require.Equal(t, http.StatusUnauthorized, resp.Code)
		assert.JSONEq(t, `{"valid":false}`, resp.Body.String())
	})

}
