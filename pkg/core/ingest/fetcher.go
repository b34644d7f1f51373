// Package ingest provides document sources for company pages: live
// Screener.in over HTTP and a directory of saved pages.
// Both implement pipeline.DocumentSource.
package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://www.screener.in"
	DefaultUserAgent = "Mozilla/5.0"
	DefaultTimeout   = 30 * time.Second
	// DefaultRateLimit is requests per second; Screener.in throttles bursts.
	DefaultRateLimit = 1.0
)

// FetchError reports a company page that could not be retrieved.
type FetchError struct {
	CompanyID  string
	StatusCode int   // 0 when no response was received
	Err        error // transport error, if any
}

func (e *FetchError) Error() string {
	if e.StatusCode == 0 && e.Err != nil {
		return fmt.Sprintf("Failed to fetch data: %v", e.Err)
	}
	return fmt.Sprintf("Failed to fetch data. Status Code: %d", e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// =============================================================================
// SCREENER.IN SOURCE
// =============================================================================

// ScreenerSource fetches company pages from Screener.in.
type ScreenerSource struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	timeout    time.Duration
	limiter    *rate.Limiter
	log        logrus.FieldLogger
}

// ScreenerOption configures a ScreenerSource.
type ScreenerOption func(*ScreenerSource)

// WithBaseURL sets a custom base URL. An empty URL keeps the default.
func WithBaseURL(baseURL string) ScreenerOption {
	return func(s *ScreenerSource) {
		if baseURL != "" {
			s.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithUserAgent overrides the User-Agent header. An empty value keeps the default.
func WithUserAgent(ua string) ScreenerOption {
	return func(s *ScreenerSource) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// WithHTTPClient sets a custom HTTP client. Its timeout is left as the caller
// configured it; a nil client keeps the default.
func WithHTTPClient(c *http.Client) ScreenerOption {
	return func(s *ScreenerSource) {
		s.httpClient = c
	}
}

// WithTimeout sets the timeout of the default client. A non-positive
// duration keeps DefaultTimeout.
func WithTimeout(d time.Duration) ScreenerOption {
	return func(s *ScreenerSource) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithRateLimit sets the request rate. A non-positive rate disables limiting.
func WithRateLimit(requestsPerSecond float64) ScreenerOption {
	return func(s *ScreenerSource) {
		if requestsPerSecond <= 0 {
			s.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		burst := int(requestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

// WithLogger sets a logger.
func WithLogger(log logrus.FieldLogger) ScreenerOption {
	return func(s *ScreenerSource) {
		s.log = log
	}
}

// NewScreenerSource creates a Screener.in page fetcher.
func NewScreenerSource(opts ...ScreenerOption) *ScreenerSource {
	s := &ScreenerSource{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		timeout:   DefaultTimeout,
		limiter:   rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.httpClient == nil {
		s.httpClient = &http.Client{Timeout: s.timeout}
	}
	if s.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.log = l
	}
	return s
}

// PageURL returns the company page URL for companyID.
func (s *ScreenerSource) PageURL(companyID string) string {
	return fmt.Sprintf("%s/company/%s/", s.baseURL, url.PathEscape(companyID))
}

// FetchDocument downloads the company page. Any status other than 200 is a
// *FetchError carrying the status code.
func (s *ScreenerSource) FetchDocument(ctx context.Context, companyID string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", &FetchError{CompanyID: companyID, Err: err}
	}

	pageURL := s.PageURL(companyID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", &FetchError{CompanyID: companyID, Err: err}
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html")

	s.log.WithField("url", pageURL).Debug("[Screener] GET")
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", &FetchError{CompanyID: companyID, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.WithFields(logrus.Fields{"url": pageURL, "status": resp.StatusCode}).Warn("[Screener] Unexpected status")
		return "", &FetchError{CompanyID: companyID, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{CompanyID: companyID, Err: fmt.Errorf("read body: %w", err)}
	}
	return string(body), nil
}
