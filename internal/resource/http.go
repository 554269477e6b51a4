package resource

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/tartampluch/go-calendars/internal/config"
)

// HTTPLoader fetches resources from <BaseURL>/<family>/<path>.
type HTTPLoader struct {
	BaseURL string
	Client  *http.Client

	// MaxSize bounds the number of bytes read from a response.
	MaxSize int64
}

// NewHTTPLoader creates an HTTPLoader with configured timeouts and limits.
func NewHTTPLoader(baseURL string) *HTTPLoader {
	return &HTTPLoader{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: config.HTTPTimeout},
		MaxSize: config.MaxTableSize,
	}
}

// Load implements Loader. A 404 response maps to ErrNotFound.
func (l *HTTPLoader) Load(ctx context.Context, family, name string) (io.ReadCloser, error) {
	return Get(ctx, l.Client, l.BaseURL+"/"+family+"/"+name, "", "", l.MaxSize)
}

// Get downloads targetURL with the application User-Agent and optional basic
// auth. It rejects schemes other than http and https, maps 404 to
// ErrNotFound, and limits the returned stream to maxSize bytes.
func Get(ctx context.Context, client *http.Client, targetURL, user, pass string, maxSize int64) (io.ReadCloser, error) {
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}

	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	// Query parameters may carry tokens; keep them out of the logs.
	safeURL := u.Scheme + "://" + u.Host + u.Path

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, safeURL),
	)

	log.Debug(config.MsgResourceFetch)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(config.HeaderUserAgent, config.UserAgent)

	if user != "" || pass != "" {
		req.SetBasicAuth(user, pass)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error during fetch: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotFound, safeURL)
	default:
		_ = resp.Body.Close()
		log.Warn("Server returned error status",
			slog.Int(config.LogKeyStatus, resp.StatusCode),
		)
		return nil, fmt.Errorf("%s: %d %s", config.ErrResourceStatus, resp.StatusCode, resp.Status)
	}

	log.Info("Resource downloading",
		slog.Int64(config.LogKeySizeBytes, resp.ContentLength),
	)

	return &limitedReadCloser{
		r:      io.LimitReader(resp.Body, maxSize+1),
		Closer: resp.Body,
		max:    maxSize,
	}, nil
}

// limitedReadCloser fails with ErrTooLarge once more than max bytes arrive,
// instead of silently truncating. Close releases the connection.
type limitedReadCloser struct {
	r io.Reader
	io.Closer
	max  int64
	read int64
}

func (l *limitedReadCloser) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.read += int64(n)
	if l.read > l.max {
		return n - int(l.read-l.max), fmt.Errorf("%w: more than %d bytes", ErrTooLarge, l.max)
	}
	return n, err
}
