// Package client talks to the habit collection service over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ytakahashi/habit-tracker/internal/models"
)

const collectionPath = "/tasks"

// APIError is a non-2xx response from the service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("habit service returned %d", e.Status)
	}
	return fmt.Sprintf("habit service returned %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the service at baseURL. A nil httpClient means http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) List(ctx context.Context) ([]models.Habit, error) {
	var habits []models.Habit
	if err := c.do(ctx, http.MethodGet, collectionPath, nil, &habits); err != nil {
		return nil, err
	}
	return habits, nil
}

func (c *Client) Create(ctx context.Context, in models.HabitInput) (*models.Habit, error) {
	var habit models.Habit
	if err := c.do(ctx, http.MethodPost, collectionPath, in, &habit); err != nil {
		return nil, err
	}
	return &habit, nil
}

func (c *Client) Update(ctx context.Context, id string, patch models.HabitPatch) (*models.Habit, error) {
	var habit models.Habit
	if err := c.do(ctx, http.MethodPut, itemPath(id), patch, &habit); err != nil {
		return nil, err
	}
	return &habit, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	var resp models.MessageResponse
	return c.do(ctx, http.MethodDelete, itemPath(id), nil, &resp)
}

func itemPath(id string) string {
	return collectionPath + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var errBody models.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&errBody) == nil {
			apiErr.Message = errBody.Error
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}
