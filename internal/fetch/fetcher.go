// ABOUTME: Content Fetcher retrieves a page plus its subresources over HTTP
// ABOUTME: Timeouts convert hangs into errors; failures never block categorization upstream

package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	defaultPageTimeout     = 10 * time.Second
	defaultResourceTimeout = 5 * time.Second
	maxBodyBytes           = 2 << 20 // 2MB per body
	maxResources           = 20
	resourceConcurrency    = 4

	userAgent = "Mozilla/5.0 (compatible; linkstash/1.0)"
)

// Result is the outcome of fetching a page.
type Result struct {
	Status      int
	Body        string
	Title       string
	Description string
	Resources   map[string]Resource // keyed by absolute resource URL
}

// Resource is one fetched subresource. Exactly one of Content or Err is set.
type Resource struct {
	Content string
	Err     string
}

// Error describes a failed page fetch. Status is zero for transport errors.
type Error struct {
	URL    string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetching %s: HTTP %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Fetcher retrieves pages and their subresources with fixed time budgets.
type Fetcher struct {
	client          *http.Client
	pageTimeout     time.Duration
	resourceTimeout time.Duration
	logger          *slog.Logger
}

// New creates a Fetcher. Zero timeouts select the defaults (10s per page,
// 5s per subresource).
func New(pageTimeout, resourceTimeout time.Duration, logger *slog.Logger) *Fetcher {
	if pageTimeout <= 0 {
		pageTimeout = defaultPageTimeout
	}
	if resourceTimeout <= 0 {
		resourceTimeout = defaultResourceTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		client:          &http.Client{},
		pageTimeout:     pageTimeout,
		resourceTimeout: resourceTimeout,
		logger:          logger.With("component", "fetch"),
	}
}

// Fetch retrieves the page at url, extracts its title and description, and
// fetches its subresources (images, scripts, stylesheets). A non-2xx status
// or transport failure returns a *Error. Individual subresource failures are
// recorded inside the Result instead of failing the fetch.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Result, error) {
	body, status, err := f.get(ctx, url, f.pageTimeout)
	if err != nil {
		f.logger.Warn("page fetch failed", "url", url, "error", err)
		return nil, &Error{URL: url, Err: err}
	}
	if status < 200 || status > 299 {
		f.logger.Warn("page fetch failed", "url", url, "status", status)
		return nil, &Error{URL: url, Status: status, Err: fmt.Errorf("unexpected status %d", status)}
	}

	meta := extractMetadata(body, url)
	result := &Result{
		Status:      status,
		Body:        body,
		Title:       meta.title,
		Description: meta.description,
	}

	result.Resources = f.fetchResources(ctx, meta.resourceURLs)

	f.logger.Debug("page fetched",
		"url", url,
		"status", status,
		"title", result.Title,
		"resources", len(result.Resources))
	return result, nil
}

// fetchResources retrieves up to maxResources subresources with bounded
// concurrency. Each failure is recorded per URL, never propagated.
func (f *Fetcher) fetchResources(ctx context.Context, urls []string) map[string]Resource {
	if len(urls) > maxResources {
		urls = urls[:maxResources]
	}
	if len(urls) == 0 {
		return nil
	}

	resources := make(map[string]Resource, len(urls))
	results := make([]Resource, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resourceConcurrency)
	for i, u := range urls {
		i, u := i, u // per-iteration copies: required for pre-1.22 loop semantics
		g.Go(func() error {
			body, status, err := f.get(gctx, u, f.resourceTimeout)
			switch {
			case err != nil:
				results[i] = Resource{Err: err.Error()}
			case status < 200 || status > 299:
				results[i] = Resource{Err: fmt.Sprintf("HTTP %d", status)}
			default:
				results[i] = Resource{Content: body}
			}
			return nil
		})
	}
	g.Wait()

	for i, u := range urls {
		resources[u] = results[i]
	}
	return resources
}

// get performs one GET with a timeout and a body size cap.
func (f *Fetcher) get(ctx context.Context, url string, timeout time.Duration) (string, int, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("reading body: %w", err)
	}

	return string(body), resp.StatusCode, nil
}
