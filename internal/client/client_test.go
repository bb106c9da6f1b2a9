package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytakahashi/habit-tracker/internal/models"
)

type recorded struct {
	method, path, contentType string
	body                      map[string]any
}

func fakeService(t *testing.T, status int, response string) (*httptest.Server, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{method: r.Method, path: r.URL.EscapedPath(), contentType: r.Header.Get("Content-Type")}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			assert.NoError(t, json.Unmarshal(data, &rec.body))
		}
		calls = append(calls, rec)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestList(t *testing.T) {
	srv, calls := fakeService(t, http.StatusOK,
		`[{"id":"1","name":"Read","category":"التعلم","completed":true,"createdAt":"2024-05-01T10:00:00Z"},null]`)

	habits, err := New(srv.URL+"/", nil).List(context.Background())
	require.NoError(t, err)

	require.Len(t, habits, 2)
	assert.Equal(t, "Read", habits[0].Name)
	assert.True(t, habits[0].Completed)
	assert.Equal(t, models.Habit{}, habits[1])
	require.Len(t, *calls, 1)
	assert.Equal(t, http.MethodGet, (*calls)[0].method)
	assert.Equal(t, "/tasks", (*calls)[0].path)
}

func TestCreate(t *testing.T) {
	srv, calls := fakeService(t, http.StatusCreated, `{"id":"9","name":"Run","category":"الصحة","completed":false}`)

	habit, err := New(srv.URL, nil).Create(context.Background(), models.HabitInput{Name: "Run", Category: "الصحة"})
	require.NoError(t, err)

	assert.Equal(t, "9", habit.ID)
	call := (*calls)[0]
	assert.Equal(t, http.MethodPost, call.method)
	assert.Equal(t, "application/json", call.contentType)
	assert.Equal(t, map[string]any{"name": "Run", "category": "الصحة", "completed": false}, call.body)
}

func TestUpdate_SendsOnlyPatchedFields(t *testing.T) {
	srv, calls := fakeService(t, http.StatusOK, `{"id":"a b","completed":true}`)

	done := true
	_, err := New(srv.URL, nil).Update(context.Background(), "a b", models.HabitPatch{Completed: &done})
	require.NoError(t, err)

	call := (*calls)[0]
	assert.Equal(t, http.MethodPut, call.method)
	assert.Equal(t, "/tasks/a%20b", call.path)
	assert.Equal(t, map[string]any{"completed": true}, call.body)
}

func TestDelete(t *testing.T) {
	srv, calls := fakeService(t, http.StatusOK, `{"message":"Task deleted successfully"}`)

	require.NoError(t, New(srv.URL, nil).Delete(context.Background(), "1"))
	assert.Equal(t, http.MethodDelete, (*calls)[0].method)
	assert.Equal(t, "/tasks/1", (*calls)[0].path)
	assert.Nil(t, (*calls)[0].body)
}

func TestErrors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		srv, _ := fakeService(t, http.StatusNotFound, `{"error":"Task not found"}`)

		err := New(srv.URL, nil).Delete(context.Background(), "x")

		require.Error(t, err)
		assert.True(t, IsNotFound(err))
		assert.EqualError(t, err, "habit service returned 404: Task not found")
	})

	t.Run("server error without body", func(t *testing.T) {
		srv, _ := fakeService(t, http.StatusInternalServerError, ``)

		_, err := New(srv.URL, nil).List(context.Background())

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
		assert.False(t, IsNotFound(err))
	})

	t.Run("list expects an array", func(t *testing.T) {
		srv, _ := fakeService(t, http.StatusOK, `{"error":"nope"}`)

		_, err := New(srv.URL, nil).List(context.Background())
		assert.Error(t, err)
	})

	t.Run("unreachable", func(t *testing.T) {
		srv, _ := fakeService(t, http.StatusOK, `[]`)
		srv.Close()

		_, err := New(srv.URL, nil).List(context.Background())
		assert.Error(t, err)
	})
}
