package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ytakahashi/habit-tracker/internal/models"
	"github.com/ytakahashi/habit-tracker/internal/services"
)

const (
	msgNotFound = "Task not found"
	msgDeleted  = "Task deleted successfully"
)

type TaskHandler struct {
	store  services.HabitStore
	logger *zap.Logger

	// categories is only consulted when enforceCategories is set.
	categories        []string
	enforceCategories bool
}

type Option func(*TaskHandler)

// WithCategoryEnforcement rejects create and update bodies whose category is not listed.
func WithCategoryEnforcement(categories []string) Option {
	return func(h *TaskHandler) {
		h.categories = categories
		h.enforceCategories = true
	}
}

func NewTaskHandler(store services.HabitStore, logger *zap.Logger, opts ...Option) *TaskHandler {
	h := &TaskHandler{
		store:  store,
		logger: logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the collection routes on g.
func (h *TaskHandler) Register(g *echo.Group) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// List handles GET /tasks
func (h *TaskHandler) List(c echo.Context) error {
	habits, err := h.store.List(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to list habits", zap.Error(err))
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, habits)
}

// Create handles POST /tasks
func (h *TaskHandler) Create(c echo.Context) error {
	var in models.HabitInput
	if err := decodeBody(c, &in); err != nil {
		h.logger.Warn("invalid create body", zap.Error(err))
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	if err := h.checkCategory(&in.Category); err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	habit, err := h.store.Create(c.Request().Context(), in)
	if err != nil {
		h.logger.Error("failed to create habit", zap.Error(err))
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	h.logger.Debug("habit created", zap.String("id", habit.ID))
	return c.JSON(http.StatusCreated, habit)
}

// Update handles PUT /tasks/:id
func (h *TaskHandler) Update(c echo.Context) error {
	id := c.Param("id")

	var patch models.HabitPatch
	if err := decodeBody(c, &patch); err != nil {
		h.logger.Warn("invalid update body", zap.String("id", id), zap.Error(err))
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	if err := h.checkCategory(patch.Category); err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	habit, err := h.store.Update(c.Request().Context(), id, patch)
	if errors.Is(err, services.ErrNotFound) {
		return errorJSON(c, http.StatusNotFound, msgNotFound)
	}
	if err != nil {
		h.logger.Error("failed to update habit", zap.String("id", id), zap.Error(err))
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, habit)
}

// Delete handles DELETE /tasks/:id
func (h *TaskHandler) Delete(c echo.Context) error {
	id := c.Param("id")

	err := h.store.Delete(c.Request().Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		return errorJSON(c, http.StatusNotFound, msgNotFound)
	}
	if err != nil {
		h.logger.Error("failed to delete habit", zap.String("id", id), zap.Error(err))
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, models.MessageResponse{Message: msgDeleted})
}

func (h *TaskHandler) checkCategory(category *string) error {
	if !h.enforceCategories || category == nil {
		return nil
	}
	if !models.IsKnownCategory(h.categories, *category) {
		return fmt.Errorf("invalid category: %q", *category)
	}
	return nil
}

// decodeBody reads a JSON object from the request. An empty body decodes to the zero value.
func decodeBody(c echo.Context, v any) error {
	err := json.NewDecoder(c.Request().Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func errorJSON(c echo.Context, code int, msg string) error {
	return c.JSON(code, models.ErrorResponse{Error: msg})
}
