package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/verein-site/internal/verein"
)

func noOpLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError + 1,
	}))
}

// mockPostReader is a manual stub implementation of PostReader
type mockPostReader struct {
	posts []verein.Post
	err   error
}

func (m *mockPostReader) Posts(context.Context) ([]verein.Post, error) {
	return m.posts, m.err
}

func (m *mockPostReader) PostsCount(context.Context) (int, error) {
	return len(m.posts), m.err
}

func (m *mockPostReader) PostByID(_ context.Context, id string) (*verein.Post, error) {
	for _, p := range m.posts {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, verein.ErrNotFound
}

func newReader(n int) *mockPostReader {
	m := &mockPostReader{}
	for i := n; i >= 1; i-- {
		m.posts = append(m.posts, verein.Post{
			ID:        fmt.Sprintf("post-%d", i),
			Title:     fmt.Sprintf("Beitrag %d", i),
			CreatedAt: time.Date(2024, time.March, i, 0, 0, 0, 0, time.UTC),
		})
	}
	return m
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func call(t *testing.T, h http.Handler, method, params string) rpcResponse {
	t.Helper()

	body := fmt.Sprintf(`{"jsonrpc":"2.0","id":1,"method":%q,"params":%s}`, method, params)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp rpcResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func TestPostsService_Feed(t *testing.T) {
	srv := New(noOpLogger(), newReader(7), time.UTC)

	resp := call(t, srv, "posts.feed", `{}`)
	require.Nil(t, resp.Error)
	var feed Feed
	require.NoError(t, json.Unmarshal(resp.Result, &feed))
	assert.Len(t, feed.Posts, 5)
	assert.Equal(t, "2024-03-07", feed.Posts[0].Date)
	assert.True(t, feed.HasMore)
	assert.Equal(t, 7, feed.NextVisible)

	resp = call(t, srv, "posts.feed", `[7]`)
	require.Nil(t, resp.Error)
	require.NoError(t, json.Unmarshal(resp.Result, &feed))
	assert.Len(t, feed.Posts, 7)
	assert.False(t, feed.HasMore)
}

func TestPostsService_Archive(t *testing.T) {
	srv := New(noOpLogger(), newReader(12), time.UTC)

	resp := call(t, srv, "posts.archive", `{"visible":0}`)
	require.Nil(t, resp.Error)
	var feed Feed
	require.NoError(t, json.Unmarshal(resp.Result, &feed))
	assert.Len(t, feed.Posts, 10)
	assert.Equal(t, 12, feed.Total)
}

func TestPostsService_CountAndByID(t *testing.T) {
	srv := New(noOpLogger(), newReader(3), time.UTC)

	resp := call(t, srv, "posts.count", `{}`)
	require.Nil(t, resp.Error)
	assert.JSONEq(t, `3`, string(resp.Result))

	resp = call(t, srv, "posts.byid", `{"id":"post-2"}`)
	require.Nil(t, resp.Error)
	var post Post
	require.NoError(t, json.Unmarshal(resp.Result, &post))
	assert.Equal(t, "Beitrag 2", post.Title)

	resp = call(t, srv, "posts.byid", `{"id":"missing"}`)
	require.NotNil(t, resp.Error)
	assert.Equal(t, 404, resp.Error.Code)
}

func TestPostsService_StoreError(t *testing.T) {
	reader := newReader(3)
	reader.err = assert.AnError
	srv := New(noOpLogger(), reader, time.UTC)

	resp := call(t, srv, "posts.feed", `{}`)
	assert.NotNil(t, resp.Error)
}
