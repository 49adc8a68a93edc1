package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultAPIURL = "https://jsonplaceholder.typicode.com"

// albumsAPI is the remote albums collection.
type albumsAPI interface {
	ListAlbums(ctx context.Context) ([]Album, error)
	CreateAlbum(ctx context.Context, title string) (*Album, error)
	UpdateAlbum(ctx context.Context, id int64, title string) error
	DeleteAlbum(ctx context.Context, id int64) error
}

// statusError is returned when the server answers outside the 2xx class.
type statusError struct {
	Code   int
	Status string
}

func (e *statusError) Error() string {
	return "server rejected request: " + e.Status
}

// transportError is returned when no usable response was received.
type transportError struct {
	Err error
}

func (e *transportError) Error() string {
	return "transport: " + e.Err.Error()
}

func (e *transportError) Unwrap() error {
	return e.Err
}

type client struct {
	baseURL string
	http    *http.Client
}

// newClient creates a client for the albums API at baseURL. A zero
// timeout leaves requests bounded only by the transport defaults.
func newClient(baseURL string, timeout time.Duration) *client {
	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *client) ListAlbums(ctx context.Context) ([]Album, error) {
	var albums []Album
	err := c.do(ctx, http.MethodGet, "/albums", nil, &albums)
	if err != nil {
		return nil, err
	}
	return albums, nil
}

func (c *client) CreateAlbum(ctx context.Context, title string) (*Album, error) {
	var album Album
	err := c.do(ctx, http.MethodPost, "/albums", map[string]string{"title": title}, &album)
	if err != nil {
		return nil, err
	}
	return &album, nil
}

// UpdateAlbum replaces the title of album id. The response body is
// discarded.
func (c *client) UpdateAlbum(ctx context.Context, id int64, title string) error {
	return c.do(ctx, http.MethodPut, albumPath(id), map[string]string{"title": title}, nil)
}

func (c *client) DeleteAlbum(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, albumPath(id), nil, nil)
}

func albumPath(id int64) string {
	return "/albums/" + strconv.FormatInt(id, 10)
}

func (c *client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &transportError{Err: fmt.Errorf("encoding request: %w", err)}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &transportError{Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &transportError{Err: err}
	}
	defer resp.Body.Close()

	slog.Debug("albums api", "method", method, "path", path, "status", resp.StatusCode, "request_id", requestID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &statusError{Code: resp.StatusCode, Status: resp.Status}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	err = json.NewDecoder(resp.Body).Decode(out)
	if err != nil {
		return &transportError{Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}
