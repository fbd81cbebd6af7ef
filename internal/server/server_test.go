package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-snake/internal/highscore"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	s := New(DefaultConfig(), highscore.NewLocalKeeper(store), log.New(io.Discard))
	srv := httptest.NewServer(s.Routes())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (int, string) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestGetHighScoreEmpty(t *testing.T) {
	srv := newTestServer(t)

	code, body := do(t, http.MethodGet, srv.URL+"/highscore", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, `{"name":"","score":0}`, body)
}

func TestPostHighScore(t *testing.T) {
	srv := newTestServer(t)

	code, body := do(t, http.MethodPost, srv.URL+"/highscore", `{"name":"ann","score":12}`)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"name":"ann","score":12,"new_record":true}`, body)

	code, body = do(t, http.MethodPost, srv.URL+"/highscore", `{"name":"bob","score":3}`)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"name":"ann","score":12,"new_record":false}`, body)

	code, body = do(t, http.MethodGet, srv.URL+"/highscore", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, `{"name":"ann","score":12}`, body, "wire format is exactly name and score")
}

func TestPostHighScoreRejectsBadInput(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", `score=5`},
		{"wrong type", `{"name":"ann","score":"lots"}`},
		{"unknown field", `{"name":"ann","score":5,"cheat":true}`},
		{"empty name", `{"name":"","score":5}`},
		{"negative", `{"name":"ann","score":-5}`},
		{"empty body", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := do(t, http.MethodPost, srv.URL+"/highscore", tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Contains(t, body, `"error"`)
		})
	}

	// Nothing was stored.
	_, body := do(t, http.MethodGet, srv.URL+"/highscore", "")
	assert.Equal(t, `{"name":"","score":0}`, body)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	code, body := do(t, http.MethodGet, srv.URL+"/health", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"status":"ok"`)
}

func TestMetrics(t *testing.T) {
	srv := newTestServer(t)

	do(t, http.MethodPost, srv.URL+"/highscore", `{"name":"ann","score":1}`)
	do(t, http.MethodGet, srv.URL+"/highscore", "")

	code, body := do(t, http.MethodGet, srv.URL+"/metrics", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `snake_http_requests_total{code="200",method="GET",route="/highscore"} 1`)
	assert.Contains(t, body, `snake_highscore_records_total 1`)
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/highscore", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Less(t, resp.StatusCode, 300)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

// failingKeeper simulates an unavailable backend.
type failingKeeper struct{}

func (failingKeeper) Best(context.Context) (highscore.Record, error) {
	return highscore.Record{}, errors.New("backend down")
}

func (failingKeeper) Submit(context.Context, highscore.Record) (highscore.Record, bool, error) {
	return highscore.Record{}, false, errors.New("backend down")
}

func TestBackendFailure(t *testing.T) {
	s := New(DefaultConfig(), failingKeeper{}, log.New(io.Discard))
	srv := httptest.NewServer(s.Routes())
	defer srv.Close()

	code, body := do(t, http.MethodGet, srv.URL+"/highscore", "")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.NotContains(t, body, "backend down", "internal errors are not leaked")

	code, _ = do(t, http.MethodPost, srv.URL+"/highscore", `{"name":"ann","score":1}`)
	assert.Equal(t, http.StatusInternalServerError, code)
}

func TestClientAgainstServer(t *testing.T) {
	srv := newTestServer(t)
	c := highscore.NewClient(srv.URL)
	ctx := context.Background()

	best, won, err := c.Submit(ctx, highscore.Record{Name: "ann", Score: 4})
	require.NoError(t, err)
	assert.True(t, won)
	assert.Equal(t, highscore.Record{Name: "ann", Score: 4}, best)

	best, err = c.Best(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, best.Score)
}

func TestStartAndShutdown(t *testing.T) {
	store, err := storage.Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	cfg := DefaultConfig()
	cfg.Addr = "127.0.0.1:0"
	s := New(cfg, highscore.NewLocalKeeper(store), log.New(io.Discard))

	addr, err := s.Start()
	require.NoError(t, err)

	code, _ := do(t, http.MethodGet, "http://"+addr.String()+"/health", "")
	assert.Equal(t, http.StatusOK, code)

	require.NoError(t, s.Shutdown(context.Background()))
}

func TestSubmitRateLimit(t *testing.T) {
	store, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := DefaultConfig()
	cfg.SubmitRate = 0.001
	cfg.SubmitBurst = 1
	srv := httptest.NewServer(New(cfg, highscore.NewLocalKeeper(store), log.New(io.Discard)).Routes())
	t.Cleanup(srv.Close)

	code, _ := do(t, http.MethodPost, srv.URL+"/highscore", `{"name":"ann","score":3}`)
	assert.Equal(t, http.StatusOK, code)

	code, body := do(t, http.MethodPost, srv.URL+"/highscore", `{"name":"bob","score":9}`)
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.Contains(t, body, "too many submissions")

	// Reads are never limited
	code, body = do(t, http.MethodGet, srv.URL+"/highscore", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"name":"ann","score":3}`, body)
}
