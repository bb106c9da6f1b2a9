// Package tracker holds the view state of the habit form and keeps it in step
// with the habit service. Every mutation goes to the service and is followed by
// a full reload; local state is never patched in place.
package tracker

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/ytakahashi/habit-tracker/internal/models"
)

// ErrNotLoaded is reported when an operation names a habit missing from the loaded list.
var ErrNotLoaded = errors.New("habit is not in the loaded list")

// Operation names passed to Reporter.Report.
const (
	OpLoad   = "load"
	OpSave   = "save"
	OpDelete = "delete"
	OpToggle = "toggle"
)

// API is the data access the tracker needs from the habit service.
type API interface {
	List(ctx context.Context) ([]models.Habit, error)
	Create(ctx context.Context, in models.HabitInput) (*models.Habit, error)
	Update(ctx context.Context, id string, patch models.HabitPatch) (*models.Habit, error)
	Delete(ctx context.Context, id string) error
}

// Reporter receives failures. They are never shown to the user.
type Reporter interface {
	Report(op string, err error)
}

// Draft is the in-progress content of the add/edit form.
type Draft struct {
	Name     string
	Category string
}

// Ready reports whether both required fields are filled in.
func (d Draft) Ready() bool {
	return d.Name != "" && d.Category != ""
}

// Tracker is the state container behind the habit form.
// It is not safe for concurrent use; callers drive it from one event loop.
type Tracker struct {
	api        API
	reporter   Reporter
	categories []string

	habits           []models.Habit
	searchTerm       string
	selectedCategory string
	draft            Draft
	editing          *models.Habit
	modalOpen        bool
}

func New(api API, reporter Reporter, categories []string) *Tracker {
	return &Tracker{
		api:        api,
		reporter:   reporter,
		categories: slices.Clone(categories),
	}
}

// Mount performs the initial load.
func (t *Tracker) Mount(ctx context.Context) {
	t.Load(ctx)
}

// Close discards all view state.
func (t *Tracker) Close() {
	t.habits = nil
	t.searchTerm = ""
	t.selectedCategory = ""
	t.draft = Draft{}
	t.editing = nil
	t.modalOpen = false
}

// Load replaces the habit list with the service's collection, dropping records without a name.
// On failure the list is emptied.
func (t *Tracker) Load(ctx context.Context) {
	habits, err := t.api.List(ctx)
	if err != nil {
		t.reporter.Report(OpLoad, err)
		t.habits = nil
		return
	}

	valid := make([]models.Habit, 0, len(habits))
	for _, h := range habits {
		if h.Name != "" {
			valid = append(valid, h)
		}
	}
	t.habits = valid
}

// Filtered returns the habits whose name contains the search term, ignoring case,
// and whose category matches the selected one. An empty selection matches all.
func (t *Tracker) Filtered() []models.Habit {
	term := strings.ToLower(t.searchTerm)
	out := []models.Habit{}
	for _, h := range t.habits {
		if !strings.Contains(strings.ToLower(h.Name), term) {
			continue
		}
		if t.selectedCategory != "" && h.Category != t.selectedCategory {
			continue
		}
		out = append(out, h)
	}
	return out
}

// Submit saves the draft: an update of the habit being edited, or a new habit.
// Nothing is sent unless the draft is Ready. On success the list is reloaded and the form reset;
// on failure the form stays open with its input.
func (t *Tracker) Submit(ctx context.Context) {
	if !t.draft.Ready() {
		return
	}

	name, category := t.draft.Name, t.draft.Category
	var err error
	if t.editing != nil {
		_, err = t.api.Update(ctx, t.editing.ID, models.HabitPatch{
			Name:     &name,
			Category: &category,
		})
	} else {
		_, err = t.api.Create(ctx, models.HabitInput{
			Name:      name,
			Category:  category,
			Completed: false,
		})
	}
	if err != nil {
		t.reporter.Report(OpSave, err)
		return
	}

	t.Load(ctx)
	t.draft = Draft{}
	t.editing = nil
	t.modalOpen = false
}

// Delete removes the habit and reloads.
func (t *Tracker) Delete(ctx context.Context, id string) {
	if err := t.api.Delete(ctx, id); err != nil {
		t.reporter.Report(OpDelete, err)
		return
	}
	t.Load(ctx)
}

// Toggle flips the completed flag of a loaded habit and reloads.
// The current value is read from the loaded list, which may be stale; a habit
// missing from it is reported as ErrNotLoaded and no request is made.
func (t *Tracker) Toggle(ctx context.Context, id string) {
	h, ok := t.Find(id)
	if !ok {
		t.reporter.Report(OpToggle, ErrNotLoaded)
		return
	}

	completed := !h.Completed
	if _, err := t.api.Update(ctx, id, models.HabitPatch{Completed: &completed}); err != nil {
		t.reporter.Report(OpToggle, err)
		return
	}
	t.Load(ctx)
}

// BeginEdit opens the form on a copy of h.
func (t *Tracker) BeginEdit(h models.Habit) {
	t.editing = &h
	t.draft = Draft{Name: h.Name, Category: h.Category}
	t.modalOpen = true
}

// BeginCreate opens an empty form.
func (t *Tracker) BeginCreate() {
	t.editing = nil
	t.draft = Draft{}
	t.modalOpen = true
}

// CloseModal hides the form without touching the draft.
func (t *Tracker) CloseModal() {
	t.modalOpen = false
}

func (t *Tracker) SetDraftName(name string)         { t.draft.Name = name }
func (t *Tracker) SetDraftCategory(category string) { t.draft.Category = category }
func (t *Tracker) SetSearch(term string)            { t.searchTerm = term }
func (t *Tracker) SetCategory(category string)      { t.selectedCategory = category }

// Find looks a habit up in the loaded list.
func (t *Tracker) Find(id string) (models.Habit, bool) {
	i := slices.IndexFunc(t.habits, func(h models.Habit) bool { return h.ID == id })
	if i < 0 {
		return models.Habit{}, false
	}
	return t.habits[i], true
}

func (t *Tracker) Habits() []models.Habit { return slices.Clone(t.habits) }
func (t *Tracker) Categories() []string   { return slices.Clone(t.categories) }
func (t *Tracker) Search() string         { return t.searchTerm }
func (t *Tracker) Category() string       { return t.selectedCategory }
func (t *Tracker) Draft() Draft           { return t.draft }
func (t *Tracker) ModalOpen() bool        { return t.modalOpen }

// Editing returns the habit being edited, or nil when the form creates a new one.
func (t *Tracker) Editing() *models.Habit {
	if t.editing == nil {
		return nil
	}
	h := *t.editing
	return &h
}
