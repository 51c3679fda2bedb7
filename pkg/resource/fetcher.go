// Package resource loads pages from local files or over HTTP.
package resource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const userAgent = "autosize/1.0 (compatible; Go)"

// Fetcher retrieves resources by URI.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) (body []byte, contentType string, err error)
}

// DefaultFetcher reads http(s) URIs over the network and anything else from
// the filesystem. Relative URIs resolve against the base URL when one is
// set.
type DefaultFetcher struct {
	baseURL string
	client  *http.Client
}

func NewFetcher(baseURL string) *DefaultFetcher {
	return &DefaultFetcher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (f *DefaultFetcher) Fetch(ctx context.Context, uri string) ([]byte, string, error) {
	resolved := uri
	if !IsNetworkURL(uri) && f.baseURL != "" {
		resolved = ResolveURL(f.baseURL, uri)
	}
	if !IsNetworkURL(resolved) {
		body, err := os.ReadFile(resolved)
		if err != nil {
			return nil, "", fmt.Errorf("read %s: %w", resolved, err)
		}
		return body, "", nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resolved, nil)
	if err != nil {
		return nil, "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetching %s: %w", resolved, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, resolved)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading response body: %w", err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// FetchPage fetches an HTML document, rejecting responses whose content
// type is known and not HTML or plain text.
func FetchPage(ctx context.Context, f Fetcher, uri string) (string, error) {
	body, contentType, err := f.Fetch(ctx, uri)
	if err != nil {
		return "", err
	}
	ct := strings.ToLower(contentType)
	if ct != "" && !strings.Contains(ct, "html") && !strings.HasPrefix(ct, "text/plain") {
		return "", fmt.Errorf("unexpected content type for a page: %s", contentType)
	}
	return string(body), nil
}

// ResolveURL resolves a possibly relative reference against base. An
// absolute ref is returned as is.
func ResolveURL(base, ref string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}

func IsNetworkURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
