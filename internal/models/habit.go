package models

import (
	"time"
)

// Habit represents a tracked habit
type Habit struct {
	ID        string    `firestore:"id" json:"id"`
	Name      string    `firestore:"name" json:"name"`
	Category  string    `firestore:"category" json:"category"`
	Completed bool      `firestore:"completed" json:"completed"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}

// HabitInput is the body accepted when creating a habit.
type HabitInput struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	Completed bool   `json:"completed"`
}

// HabitPatch carries the fields of a partial update. Nil fields are left untouched.
type HabitPatch struct {
	Name      *string `json:"name,omitempty"`
	Category  *string `json:"category,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// Apply merges the patch into h.
func (p HabitPatch) Apply(h *Habit) {
	if p.Name != nil {
		h.Name = *p.Name
	}
	if p.Category != nil {
		h.Category = *p.Category
	}
	if p.Completed != nil {
		h.Completed = *p.Completed
	}
}

// IsEmpty reports whether the patch changes nothing.
func (p HabitPatch) IsEmpty() bool {
	return p.Name == nil && p.Category == nil && p.Completed == nil
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
