package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"song-request-service/internal/provider"
	"song-request-service/internal/queue"
	"song-request-service/internal/realtime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	results []provider.SearchResult
}

func (p stubProvider) Search(ctx context.Context, q string) ([]provider.SearchResult, error) {
	if strings.TrimSpace(q) == "" {
		return nil, provider.ErrMissingQuery
	}
	return p.results, nil
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := realtime.NewHub()
	go hub.Run(ctx)

	return setupRouter(routerDeps{
		Search: provider.NewServer(stubProvider{results: []provider.SearchResult{
			{VideoID: "abc", Title: "Song", Channel: "Band", ThumbnailURL: "https://i.ytimg.com/vi/abc/default.jpg"},
		}}, "AIzaTestKey"),
		Queue:          queue.NewServer(queue.New(hub)),
		Realtime:       realtime.NewServer(hub, nil, "*"),
		AllowedOrigin:  "*",
		MaxBodyBytes:   1 << 20,
		RequestTimeout: 5 * time.Second,
	})
}

func call(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRouter_Probes(t *testing.T) {
	h := newTestHandler(t)

	rr := call(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())

	rr = call(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, banner, rr.Body.String())

	rr = call(t, h, http.MethodGet, "/diag", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"hasKey":true`)
	assert.Contains(t, rr.Body.String(), `"keyPrefix":"AIzaTe"`)

	rr = call(t, h, http.MethodOptions, "/request", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Search(t *testing.T) {
	h := newTestHandler(t)

	rr := call(t, h, http.MethodGet, "/search-songs", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"q is required"}`, rr.Body.String())

	rr = call(t, h, http.MethodGet, "/search-songs?q=song", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"videoId":"abc","title":"Song","channel":"Band","thumbnail":"https://i.ytimg.com/vi/abc/default.jpg"}]`, rr.Body.String())
}

func TestRouter_QueueScenario(t *testing.T) {
	h := newTestHandler(t)

	rr := call(t, h, http.MethodPost, "/request", `{"tableNo":5,"songId":"abc"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	var created map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.EqualValues(t, 1, created["id"])
	assert.Equal(t, "PENDING", created["status"])

	rr = call(t, h, http.MethodPost, "/request", `{"tableNo":5,"songId":"xyz"}`)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = call(t, h, http.MethodPatch, "/requests/1/status", `{"status":"done"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"DONE"`)

	rr = call(t, h, http.MethodPost, "/request", `{"tableNo":5,"songId":"xyz"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"id":2`)

	rr = call(t, h, http.MethodGet, "/requests?status=pending", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var pending []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &pending))
	require.Len(t, pending, 1)
	assert.EqualValues(t, 2, pending[0]["id"])
}

func TestRouter_BodyLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := realtime.NewHub()
	go hub.Run(ctx)

	h := setupRouter(routerDeps{
		Search:         provider.NewServer(stubProvider{}, ""),
		Queue:          queue.NewServer(queue.New(hub)),
		AllowedOrigin:  "*",
		MaxBodyBytes:   16,
		RequestTimeout: time.Second,
	})

	rr := call(t, h, http.MethodPost, "/request", `{"tableNo":5,"songId":"a-very-long-song-id"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}
