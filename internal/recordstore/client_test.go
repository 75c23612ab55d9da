package recordstore

import (
	"context"
	"encoding/json/v2"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfline/shelfline-server/internal/domain"
	"github.com/shelfline/shelfline-server/internal/errors"
	"github.com/shelfline/shelfline-server/internal/metrics"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(Config{BaseURL: srv.URL}, logger, metrics.NewRegistry())
}

func TestList(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/books", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 1, "title": "AWS Basics", "desc": "cloud primer", "price": 29.9, "cover": "aws.png"},
			{"id": 2, "title": "Zen of Go", "desc": "", "price": 15, "cover": ""}
		]`))
	}))

	books, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, int64(1), books[0].ID)
	assert.Equal(t, "AWS Basics", books[0].Title)
	assert.Equal(t, 29.9, books[0].Price)
	assert.Equal(t, "Zen of Go", books[1].Title)
}

func TestCreate(t *testing.T) {
	var got domain.BookDraft
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/books", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))

		w.WriteHeader(http.StatusCreated)
	}))

	draft := domain.BookDraft{Title: "New Book", Desc: "fresh", Price: 12.5, Cover: "c.png"}
	require.NoError(t, c.Create(context.Background(), draft))
	assert.Equal(t, draft, got)
}

func TestUpdate(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/books/42", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))

	err := c.Update(context.Background(), 42, domain.BookDraft{Title: "Edited", Price: 9.99})
	require.NoError(t, err)
}

func TestDelete(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/books/7", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, c.Delete(context.Background(), 7))
}

func TestRemoteErrorSurfacedVerbatim(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "ER_DUP_ENTRY: duplicate key"}`))
	}))

	err := c.Create(context.Background(), domain.BookDraft{Title: "Dup"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrRemote))
	assert.Contains(t, err.Error(), "ER_DUP_ENTRY: duplicate key")
}

func TestRemoteErrorWithoutBodyFallsBackToStatusText(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	err := c.Delete(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrRemote))
	assert.Contains(t, err.Error(), "Bad Gateway")
}

func TestUnreachableHostIsRemoteError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := New(Config{BaseURL: "http://127.0.0.1:1"}, logger, metrics.NewRegistry())

	_, err := c.List(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrRemote))
}
