// Package source implements the data source adapter of the directory: a single
// GET against the configured endpoint, decoded and validated at the boundary.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"

	e "github.com/gartstein/directory/internal/directory/errors"
	"github.com/gartstein/directory/internal/directory/models"
	"go.uber.org/zap"
)

// maxBodyBytes bounds how much of the response body is read.
const maxBodyBytes = 32 << 20

// Source yields the full record set for one load.
type Source interface {
	Fetch(ctx context.Context) (*Result, error)
}

// Result is the outcome of a successful fetch.
type Result struct {
	// Companies holds every record that passed validation, in response order.
	Companies []models.Company
	// Rejected holds the records quarantined at the boundary.
	Rejected []Rejected
}

// FetchError describes why a fetch failed. It matches errors.ErrFetchFailed.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (fe *FetchError) Error() string {
	if fe.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", fe.URL, fe.StatusCode, fe.Err)
	}
	return fmt.Sprintf("fetch %s: %v", fe.URL, fe.Err)
}

func (fe *FetchError) Unwrap() error { return fe.Err }

// Is makes every FetchError match errors.ErrFetchFailed.
func (fe *FetchError) Is(target error) bool { return target == e.ErrFetchFailed }

// Temporary reports whether another attempt could succeed.
// Transport errors and 5xx/429 responses are temporary; malformed bodies are not.
func (fe *FetchError) Temporary() bool {
	switch {
	case fe.StatusCode == 0:
		return fe.Err != errMalformedBody
	case fe.StatusCode == http.StatusTooManyRequests:
		return true
	default:
		return fe.StatusCode >= 500
	}
}

// Fetcher issues one GET request per call to a fixed endpoint.
type Fetcher struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// NewFetcher constructs a Fetcher for url. A nil client uses http.DefaultClient.
func NewFetcher(url string, client *http.Client, logger *zap.Logger) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{
		url:    url,
		client: client,
		logger: logger.Named("source"),
	}
}

// URL returns the configured endpoint.
func (f *Fetcher) URL() string {
	return f.url
}

// Fetch retrieves and validates the record set.
func (f *Fetcher) Fetch(ctx context.Context) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, &FetchError{URL: f.url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Error("Request failed", zap.String("url", f.url), zap.Error(err))
		return nil, &FetchError{URL: f.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Error("Unexpected status",
			zap.String("url", f.url),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &FetchError{URL: f.url, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &FetchError{URL: f.url, Err: fmt.Errorf("read body: %w", err)}
	}

	result, err := decodeCompanies(body)
	if err != nil {
		f.logger.Error("Malformed response body", zap.String("url", f.url), zap.Error(err))
		return nil, &FetchError{URL: f.url, Err: errMalformedBody}
	}

	for _, r := range result.Rejected {
		f.logger.Warn("Quarantined company record",
			zap.Int("index", r.Index),
			zap.String("company_id", string(r.ID)),
			zap.Error(r.Err),
		)
	}
	f.logger.Info("Fetched companies",
		zap.Int("accepted", len(result.Companies)),
		zap.Int("rejected", len(result.Rejected)),
	)
	return result, nil
}
