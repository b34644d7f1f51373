package ingest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreenerSource_FetchDocument(t *testing.T) {
	var gotPath, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<section id="profit-loss"></section>`))
	}))
	defer srv.Close()

	s := NewScreenerSource(WithBaseURL(srv.URL+"/"), WithRateLimit(0))
	html, err := s.FetchDocument(context.Background(), "TCS")

	require.NoError(t, err)
	assert.Contains(t, html, "profit-loss")
	assert.Equal(t, "/company/TCS/", gotPath)
	assert.Equal(t, "Mozilla/5.0", gotUA)
}

func TestScreenerSource_StatusCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	s := NewScreenerSource(WithBaseURL(srv.URL), WithRateLimit(0))
	_, err := s.FetchDocument(context.Background(), "NOPE")

	require.Error(t, err)
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.Equal(t, "Failed to fetch data. Status Code: 404", err.Error())
}

func TestScreenerSource_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	s := NewScreenerSource(WithBaseURL(url), WithRateLimit(0), WithTimeout(time.Second))
	_, err := s.FetchDocument(context.Background(), "TCS")

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Zero(t, fetchErr.StatusCode)
	assert.Contains(t, err.Error(), "Failed to fetch data:")
}

func TestScreenerSource_RateLimitHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	s := NewScreenerSource(WithBaseURL(srv.URL), WithRateLimit(0.01))
	_, err := s.FetchDocument(context.Background(), "A")
	require.NoError(t, err, "first request uses the burst token")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = s.FetchDocument(ctx, "B")
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Zero(t, fetchErr.StatusCode)
}

func TestScreenerSource_TimeoutOnlyAppliesToDefaultClient(t *testing.T) {
	tests := []struct {
		name string
		opts []ScreenerOption
		want time.Duration
	}{
		{"default", nil, DefaultTimeout},
		{"timeout", []ScreenerOption{WithTimeout(5 * time.Second)}, 5 * time.Second},
		{"nil client then timeout", []ScreenerOption{WithHTTPClient(nil), WithTimeout(5 * time.Second)}, 5 * time.Second},
		{"non-positive timeout", []ScreenerOption{WithTimeout(0)}, DefaultTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreenerSource(tt.opts...)
			require.NotNil(t, s.httpClient)
			assert.Equal(t, tt.want, s.httpClient.Timeout)
		})
	}

	shared := &http.Client{Timeout: time.Minute}
	s := NewScreenerSource(WithTimeout(5*time.Second), WithHTTPClient(shared))
	assert.Same(t, shared, s.httpClient)
	assert.Equal(t, time.Minute, shared.Timeout)
}

func TestScreenerSource_PageURLEscapes(t *testing.T) {
	s := NewScreenerSource()
	assert.Equal(t, "https://www.screener.in/company/TATA%20STEEL/", s.PageURL("TATA STEEL"))
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "TCS.html"), []byte("<html>tcs</html>"), 0o644))
	src := NewFileSource(dir)

	html, err := src.FetchDocument(context.Background(), "TCS")
	require.NoError(t, err)
	assert.Equal(t, "<html>tcs</html>", html)

	_, err = src.FetchDocument(context.Background(), "INFY")
	assert.EqualError(t, err, "Failed to fetch data. Status Code: 404")

	_, err = src.FetchDocument(context.Background(), "../etc/passwd")
	assert.EqualError(t, err, "Failed to fetch data. Status Code: 400")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.FetchDocument(ctx, "TCS")
	assert.ErrorIs(t, err, context.Canceled)
}
