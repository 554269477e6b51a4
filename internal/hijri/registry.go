package hijri

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tartampluch/go-calendars/internal/calsys"
	"github.com/tartampluch/go-calendars/internal/config"
	"github.com/tartampluch/go-calendars/internal/resource"
	"golang.org/x/sync/singleflight"
)

// Registry builds each base table at most once and keeps it for the lifetime
// of the registry. Concurrent requests for a table being built wait for that
// build. A failed build is reported to every waiting caller and is not
// cached, so a later call retries.
type Registry struct {
	loader resource.Loader
	group  singleflight.Group
	tables sync.Map // canonical variant name -> *Table
}

// NewRegistry creates a registry that reads table data through loader.
func NewRegistry(loader resource.Loader) *Registry {
	return &Registry{loader: loader}
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	return NewRegistry(resource.Embedded())
})

// Default returns the process-wide registry over the bundled data.
func Default() *Registry {
	return defaultRegistry()
}

// Get returns the table of a variant such as "islamic-civil" or
// "islamic-civil:-1".
func (r *Registry) Get(ctx context.Context, variant string) (*Table, error) {
	v, err := ParseVariant(variant)
	if err != nil {
		return nil, err
	}

	name := v.String()
	if t, ok := r.tables.Load(name); ok {
		return t.(*Table), nil
	}

	base, err := r.base(ctx, v)
	if err != nil {
		return nil, err
	}

	t, _ := r.tables.LoadOrStore(name, base.withAdjustment(v))
	return t.(*Table), nil
}

func (r *Registry) base(ctx context.Context, v Variant) (*Table, error) {
	if t, ok := r.tables.Load(v.Base); ok {
		return t.(*Table), nil
	}

	res, err, _ := r.group.Do(v.Base, func() (any, error) {
		if t, ok := r.tables.Load(v.Base); ok {
			return t, nil
		}
		t, err := r.build(ctx, v)
		if err != nil {
			return nil, err
		}
		r.tables.Store(v.Base, t)
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*Table), nil
}

func (r *Registry) build(ctx context.Context, v Variant) (*Table, error) {
	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompHijri),
		slog.String(config.LogKeyVariant, v.Base),
	)
	log.Debug(config.MsgTableLoading, slog.String(config.LogKeyPath, v.resourcePath()))

	started := time.Now()

	rc, err := r.loader.Load(ctx, config.ResourceFamilyCalendar, v.resourcePath())
	if err != nil {
		log.Warn(config.MsgTableFailed, slog.Any(config.LogKeyError, err))
		return nil, calsys.NewDataFormat(err, "%s: %s", config.ErrTableLoad, v.resourcePath())
	}
	defer func() { _ = rc.Close() }()

	t, err := parseTable(v.Base, rc)
	if err != nil {
		log.Warn(config.MsgTableFailed, slog.Any(config.LogKeyError, err))
		return nil, err
	}

	log.Info(config.MsgTableLoaded,
		slog.String(config.LogKeyVersion, t.version),
		slog.Int(config.LogKeyMonths, t.Months()),
		slog.Int64(config.LogKeyDuration, time.Since(started).Milliseconds()),
	)
	return t, nil
}
