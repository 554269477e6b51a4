// Package resource locates the data files the calendar systems are built
// from. A resource is addressed by a family (the kind of data, e.g.
// "calendar") and a slash-separated path inside that family.
//
// Loaders can be stacked with Chain so that a local override directory, the
// data bundled into the binary and a remote mirror are tried in turn.
package resource

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"

	"github.com/tartampluch/go-calendars/internal/config"
)

// ErrNotFound is returned (possibly wrapped) when a loader has no resource
// under the requested family and path.
var ErrNotFound = errors.New(config.ErrResourceNotFound)

// ErrTooLarge is returned while reading a response that exceeds its size limit.
var ErrTooLarge = errors.New(config.ErrResourceTooLarge)

// Loader opens resources. Implementations must be safe for concurrent use.
// The caller closes the returned stream.
type Loader interface {
	Load(ctx context.Context, family, name string) (io.ReadCloser, error)
}

//go:embed embedded
var embedded embed.FS

// FSLoader reads resources from a file system laid out as <family>/<path>.
type FSLoader struct {
	FS fs.FS
}

// NewDirLoader returns a loader over a directory on disk.
func NewDirLoader(dir string) *FSLoader {
	return &FSLoader{FS: os.DirFS(dir)}
}

// Embedded returns the loader over the data compiled into the binary.
func Embedded() *FSLoader {
	sub, err := fs.Sub(embedded, "embedded")
	if err != nil {
		// The directory is part of the build; fs.Sub only fails on bad names.
		panic(err)
	}
	return &FSLoader{FS: sub}
}

// Load opens <family>/<name>.
func (l *FSLoader) Load(ctx context.Context, family, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCtxCancelled, err)
	}

	p := path.Join(family, name)
	f, err := l.FS.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		return nil, fmt.Errorf("%s: %w", config.ErrResourceOpen, err)
	}
	return f, nil
}

// Chain tries each loader in order and returns the first resource found.
// Errors other than ErrNotFound stop the search.
type Chain []Loader

// Load implements Loader.
func (c Chain) Load(ctx context.Context, family, name string) (io.ReadCloser, error) {
	for _, l := range c {
		rc, err := l.Load(ctx, family, name)
		if err == nil {
			return rc, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		slog.Debug(config.MsgResourceMiss,
			config.LogKeyComponent, config.CompResource,
			config.LogKeyFamily, family,
			config.LogKeyPath, name,
		)
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, path.Join(family, name))
}

// Default builds the loader chain used by the CLI: the optional override
// directory, then the bundled data, then the optional remote mirror.
func Default(dataDir, dataURL string) Loader {
	var chain Chain
	if dataDir != "" {
		chain = append(chain, NewDirLoader(dataDir))
	}
	chain = append(chain, Embedded())
	if dataURL != "" {
		chain = append(chain, NewHTTPLoader(dataURL))
	}
	return chain
}
