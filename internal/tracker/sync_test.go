package tracker_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ytakahashi/habit-tracker/internal/client"
	"github.com/ytakahashi/habit-tracker/internal/logging"
	"github.com/ytakahashi/habit-tracker/internal/models"
	"github.com/ytakahashi/habit-tracker/internal/server"
	"github.com/ytakahashi/habit-tracker/internal/services"
	"github.com/ytakahashi/habit-tracker/internal/tracker"
)

// TestSyncAgainstServer drives the tracker through the HTTP client against a live echo server.
func TestSyncAgainstServer(t *testing.T) {
	ctx := context.Background()
	store := services.NewMemoryService()
	srv := httptest.NewServer(server.New(store, zap.NewNop(), server.Options{}))
	defer srv.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	tr := tracker.New(client.New(srv.URL, srv.Client()), logging.NewReporter(zap.New(core)), models.DefaultCategories)
	tr.Mount(ctx)
	defer tr.Close()
	assert.Empty(t, tr.Habits())

	tr.BeginCreate()
	tr.SetDraftName("Read")
	tr.SetDraftCategory("التعلم")
	tr.Submit(ctx)

	habits := tr.Habits()
	require.Len(t, habits, 1)
	assert.Equal(t, "Read", habits[0].Name)
	assert.Equal(t, "التعلم", habits[0].Category)
	assert.False(t, habits[0].Completed)
	id := habits[0].ID

	stored, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, id, stored[0].ID)
	assert.True(t, stored[0].CreatedAt.Equal(habits[0].CreatedAt))

	tr.Toggle(ctx, id)
	h, ok := tr.Find(id)
	require.True(t, ok)
	assert.True(t, h.Completed)

	tr.Toggle(ctx, id)
	h, _ = tr.Find(id)
	assert.False(t, h.Completed)

	tr.BeginEdit(h)
	tr.SetDraftCategory("الصحة")
	tr.Submit(ctx)
	h, _ = tr.Find(id)
	assert.Equal(t, "Read", h.Name)
	assert.Equal(t, "الصحة", h.Category)

	tr.SetCategory("التعلم")
	assert.Empty(t, tr.Filtered())
	tr.SetCategory("")
	tr.SetSearch("rea")
	assert.Len(t, tr.Filtered(), 1)

	tr.Delete(ctx, id)
	assert.Empty(t, tr.Habits())
	assert.Zero(t, logs.Len())

	// The habit is gone on the server, so a second delete is a logged 404.
	tr.Delete(ctx, id)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, tracker.OpDelete, logs.All()[0].ContextMap()["op"])
}

func TestSyncServerDown(t *testing.T) {
	ctx := context.Background()
	store := services.NewMemoryService()
	_, err := store.Create(ctx, models.HabitInput{Name: "Walk", Category: "الصحة"})
	require.NoError(t, err)
	srv := httptest.NewServer(server.New(store, zap.NewNop(), server.Options{}))

	core, logs := observer.New(zapcore.DebugLevel)
	tr := tracker.New(client.New(srv.URL, srv.Client()), logging.NewReporter(zap.New(core)), nil)
	tr.Mount(ctx)
	require.Len(t, tr.Habits(), 1)

	srv.Close()
	tr.Load(ctx)

	assert.Empty(t, tr.Habits())
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, tracker.OpLoad, logs.All()[0].ContextMap()["op"])
}
