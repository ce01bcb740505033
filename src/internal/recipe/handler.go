package recipe

import (
	"context"
	"errors"
	"net/http"
	"time"

	"recipebox-svc/src/clients"
	"recipebox-svc/src/internal/config"
	"recipebox-svc/src/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler interface {
	GetAll(c *gin.Context)
	GetOne(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
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

func (h *handler) GetAll(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	recipes, err := h.service.GetAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch recipes")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching recipes"})
		return
	}

	c.JSON(http.StatusOK, recipes)
}

func (h *handler) GetOne(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	recipe, err := h.service.GetByID(ctx, c.Param("id"))
	if err != nil {
		h.handleLookupError(c, err, "Error fetching recipe")
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *handler) Create(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	req, ok := h.bindUpsertRequest(c)
	if !ok {
		return
	}

	created, err := h.service.Create(ctx, req)
	if err != nil {
		logrus.WithError(err).Error("Failed to create recipe")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating recipe"})
		return
	}

	h.publishActivity(c, models.ActionRecipeCreate)

	c.JSON(http.StatusCreated, created)
}

func (h *handler) Update(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	req, ok := h.bindUpsertRequest(c)
	if !ok {
		return
	}

	updated, err := h.service.Update(ctx, c.Param("id"), req)
	if err != nil {
		h.handleLookupError(c, err, "Error updating recipe")
		return
	}

	h.publishActivity(c, models.ActionRecipeUpdate)

	c.JSON(http.StatusOK, updated)
}

func (h *handler) Delete(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	deleted, err := h.service.Delete(ctx, c.Param("id"))
	if err != nil {
		h.handleLookupError(c, err, "Error deleting recipe")
		return
	}

	h.publishActivity(c, models.ActionRecipeDelete)

	c.JSON(http.StatusOK, gin.H{
		"message":       "Recipe deleted successfully",
		"deletedRecipe": deleted,
	})
}

func (h *handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
}

func (h *handler) bindUpsertRequest(c *gin.Context) (*UpsertRequest, bool) {
	var req UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return nil, false
	}

	req.Trim()
	if !req.Complete() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return nil, false
	}

	return &req, true
}

// handleLookupError maps not-found and bad-id to 404 the way the public API
// always has; everything else is a 500.
func (h *handler) handleLookupError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Recipe not found"})
	case errors.Is(err, models.ErrInvalidRecipeID):
		c.JSON(http.StatusNotFound, gin.H{"message": "Invalid recipe ID"})
	default:
		logrus.WithError(err).Error(fallback)
		c.JSON(http.StatusInternalServerError, gin.H{"message": fallback})
	}
}

func (h *handler) publishActivity(c *gin.Context, action string) {
	userID := c.GetString("user_id")
	username := c.GetString("username")

	h.publisher.PublishWithDetails(userID, username, models.ServiceRecipeHandler,
		action, c.ClientIP(), c.Request.UserAgent())
}
