package engine

import (
	"context"
	"io"
	"net/http"

	"github.com/tartampluch/go-calendars/internal/config"
	"github.com/tartampluch/go-calendars/internal/resource"
)

// VCardFetcher defines the contract for retrieving vCard data.
type VCardFetcher interface {
	Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error)
}

// HTTPFetcher downloads address books over HTTP(S).
type HTTPFetcher struct {
	Client *http.Client

	// MaxSize bounds the address book size; zero means
	// config.MaxHTTPResponseSize.
	MaxSize int64
}

// NewHTTPFetcher creates a new instance of HTTPFetcher with configured timeouts.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{
			Timeout: config.HTTPTimeout,
		},
		MaxSize: config.MaxHTTPResponseSize,
	}
}

// Fetch retrieves vCard data from a remote URL. Reading past MaxSize fails
// with resource.ErrTooLarge; a 404 is reported as resource.ErrNotFound.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL, user, pass string) (io.ReadCloser, error) {
	limit := f.MaxSize
	if limit <= 0 {
		limit = config.MaxHTTPResponseSize
	}
	return resource.Get(ctx, f.Client, targetURL, user, pass, limit)
}
