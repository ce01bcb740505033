package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"recipebox-svc/src/clients"
	"recipebox-svc/src/internal/config"
	"recipebox-svc/src/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler interface {
	Login(c *gin.Context)
	Verify(c *gin.Context)
}

type handler struct {
	config    *config.Configuration
	service   Service
	publisher *clients.ActivityPublisher
}

func NewHandler(cfg *config.Configuration, service Service, publisher *clients.ActivityPublisher) Handler {
	return &handler{
		config:    cfg,
		service:   service,
		publisher: publisher,
	}
}

func (h *handler) Login(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Username and password are required",
		})
		return
	}

	response, err := h.service.Login(ctx, req.Username, req.Password)
	if err != nil {
		h.handleLoginError(c, req.Username, err)
		return
	}

	h.publisher.PublishWithDetails("", response.Username, models.ServiceAuthHandler,
		models.ActionLogin, c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusOK, response)
}

func (h *handler) handleLoginError(c *gin.Context, username string, err error) {
	switch {
	case errors.Is(err, models.ErrCredentialsRequired):
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Username and password are required",
		})
	case errors.Is(err, models.ErrInvalidCredentials):
		h.publisher.PublishWithDetails("", username, models.ServiceAuthHandler,
			models.ActionLoginFailed, c.ClientIP(), c.Request.UserAgent())
		c.JSON(http.StatusUnauthorized, gin.H{
			"message": "Invalid credentials",
		})
	default:
		logrus.WithError(err).Error("Login failed unexpectedly")
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Server error during login",
		})
	}
}

func (h *handler) Verify(c *gin.Context) {
	token := extractBearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false})
		return
	}

	claims, err := h.service.Verify(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":    true,
		"username": claims.Username,
	})
}

// extractBearerToken returns the token from an "Authorization: Bearer <t>"
// header, or "" when the header is missing or malformed.
func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}

	return strings.TrimPrefix(authHeader, "Bearer ")
}
