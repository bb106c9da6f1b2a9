package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytakahashi/habit-tracker/internal/models"
)

// MemoryService keeps habits in process memory, in insertion order.
type MemoryService struct {
	mu     sync.RWMutex
	order  []string
	habits map[string]models.Habit

	now func() time.Time
}

var _ HabitStore = (*MemoryService)(nil)

func NewMemoryService() *MemoryService {
	return &MemoryService{
		habits: make(map[string]models.Habit),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (m *MemoryService) Close() error { return nil }

func (m *MemoryService) List(ctx context.Context) ([]models.Habit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	habits := make([]models.Habit, 0, len(m.order))
	for _, id := range m.order {
		habits = append(habits, m.habits[id])
	}
	return habits, nil
}

func (m *MemoryService) Create(ctx context.Context, in models.HabitInput) (*models.Habit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	habit := models.Habit{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Category:  in.Category,
		Completed: in.Completed,
		CreatedAt: m.now(),
	}

	m.mu.Lock()
	m.habits[habit.ID] = habit
	m.order = append(m.order, habit.ID)
	m.mu.Unlock()

	return &habit, nil
}

func (m *MemoryService) Update(ctx context.Context, id string, patch models.HabitPatch) (*models.Habit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	habit, ok := m.habits[id]
	if !ok {
		return nil, ErrNotFound
	}
	patch.Apply(&habit)
	m.habits[id] = habit
	return &habit, nil
}

func (m *MemoryService) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.habits[id]; !ok {
		return ErrNotFound
	}
	delete(m.habits, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
