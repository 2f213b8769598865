// Package jobpage fetches a job posting's raw HTML so clients can scrape it.
package jobpage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gigfrog/backend/internal/domain"
)

// maxBodySize caps how much of a fetched page is returned (2 MiB).
const maxBodySize = 2 << 20

// Page is a fetched job posting.
type Page struct {
	URL         string
	ContentType string
	HTML        string
}

// Service fetches external job pages.
type Service struct {
	client *http.Client
	log    *slog.Logger
}

// NewService creates a new jobpage service. A nil client gets a default with
// a 15 second timeout.
func NewService(log *slog.Logger, client *http.Client) *Service {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Service{
		client: client,
		log:    log.With("service", "jobpage"),
	}
}

// Fetch downloads the page at rawURL and returns its body truncated to
// maxBodySize. Only http and https URLs are accepted.
func (s *Service) Fetch(ctx context.Context, rawURL string) (Page, error) {
	target, err := validateURL(rawURL)
	if err != nil {
		return Page{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Page{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; GigFrogBot/1.0)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Page{}, fmt.Errorf("fetch %s: upstream returned %d", target, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return Page{}, fmt.Errorf("read body: %w", err)
	}

	s.log.InfoContext(ctx, "job page fetched",
		slog.String("url", target),
		slog.Int("bytes", len(body)),
	)

	return Page{
		URL:         target,
		ContentType: resp.Header.Get("Content-Type"),
		HTML:        string(body),
	}, nil
}

func validateURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", domain.NewValidationError("url", "required")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", domain.NewValidationError("url", "malformed")
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", domain.NewValidationError("url", "must be an absolute http(s) url")
	}

	return u.String(), nil
}
