package storage

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// HTTPStorage fetches fixtures from a static file server, such as the dashboard's public directory
type HTTPStorage struct {
	client  *resty.Client
	baseURL string
}

// Ensure HTTPStorage implements StorageInterface
var _ StorageInterface = (*HTTPStorage)(nil)

// NewHTTPStorage creates a storage that reads fixtures relative to baseURL
func NewHTTPStorage(baseURL string) (*HTTPStorage, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("fixture base URL is required")
	}

	return &HTTPStorage{
		client: resty.New().
			SetTimeout(30 * time.Second).
			SetHeader("Accept", "application/json").
			SetHeader("User-Agent", "Buzz-Dashboard/1.0"),
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *HTTPStorage) Name() string {
	return "http"
}

// Retrieve downloads a fixture. There is no retry.
func (s *HTTPStorage) Retrieve(ctx context.Context, name string) ([]byte, error) {
	url := s.baseURL + "/" + strings.TrimLeft(name, "/")

	resp, err := s.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	case resp.StatusCode() != http.StatusOK:
		return nil, fmt.Errorf("fixture server returned status %d for %s", resp.StatusCode(), url)
	}

	logrus.Debugf("Fetched %s (%d bytes)", url, len(resp.Body()))
	return resp.Body(), nil
}
