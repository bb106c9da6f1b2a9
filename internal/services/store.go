package services

import (
	"context"
	"errors"

	"github.com/ytakahashi/habit-tracker/internal/models"
)

// ErrNotFound is returned when no habit has the requested id.
var ErrNotFound = errors.New("habit not found")

// HabitStore is the data-access layer behind the /tasks routes.
// Operations are independent; concurrent updates to one record are last-write-wins.
type HabitStore interface {
	// List returns every habit ordered by creation time. Never nil.
	List(ctx context.Context) ([]models.Habit, error)

	// Create assigns an id and createdAt and persists the habit.
	Create(ctx context.Context, in models.HabitInput) (*models.Habit, error)

	// Update merges the non-nil patch fields into the stored habit.
	Update(ctx context.Context, id string, patch models.HabitPatch) (*models.Habit, error)

	// Delete removes the habit.
	Delete(ctx context.Context, id string) error

	Close() error
}
