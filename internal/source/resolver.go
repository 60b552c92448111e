// Package source decides where the roster comes from: a fresh cached copy
// of the sheet, the sheet itself, a user import, or the built-in sample.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/insightdelivered/ministry-roster/internal/models"
	"github.com/insightdelivered/ministry-roster/internal/parser"
	"github.com/insightdelivered/ministry-roster/internal/store"
)

// Store keys of the cached sheet copy and the imported roster.
const (
	KeyRemote   = "apiMinistryData"
	KeyImported = "ministryData"
)

// DefaultTTL is how long a cached sheet copy stays fresh.
const DefaultTTL = time.Hour

// Origin names the tier a Dataset came from.
type Origin string

const (
	OriginCache    Origin = "cache"
	OriginRemote   Origin = "remote"
	OriginImported Origin = "imported"
	OriginSample   Origin = "sample"
)

// Dataset is the working roster and where it came from.
type Dataset struct {
	Records []models.ServiceRecord
	Origin  Origin
}

// Resolver walks the data-source tiers in order: cache, remote, imported,
// sample. Failures in one tier are logged and the next tier is tried.
type Resolver struct {
	store   store.Store
	fetcher Fetcher
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTTL sets how long the cached sheet copy is considered fresh.
func WithTTL(ttl time.Duration) Option {
	return func(r *Resolver) { r.ttl = ttl }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// NewResolver returns a Resolver over st. fetcher may be nil, which skips
// the remote tier.
func NewResolver(st store.Store, fetcher Fetcher, opts ...Option) *Resolver {
	r := &Resolver{
		store:   st,
		fetcher: fetcher,
		ttl:     DefaultTTL,
		now:     time.Now,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the first tier that yields data. It always succeeds:
// the sample roster is the last resort.
func (r *Resolver) Resolve(ctx context.Context) Dataset {
	records, err := r.cached(ctx)
	if err == nil {
		r.logger.Info("using cached sheet data", zap.Int("records", len(records)))
		return Dataset{Records: records, Origin: OriginCache}
	}
	if !errors.Is(err, store.ErrNotFound) {
		r.logger.Warn("cached sheet data unusable", zap.Error(err))
	}

	records, err = r.remote(ctx)
	if err == nil {
		r.logger.Info("using sheet data", zap.Int("records", len(records)))
		return Dataset{Records: records, Origin: OriginRemote}
	}
	r.logger.Warn("sheet fetch failed", zap.Error(err))

	records, err = r.load(ctx, KeyImported)
	if err == nil {
		r.logger.Info("using imported data", zap.Int("records", len(records)))
		return Dataset{Records: records, Origin: OriginImported}
	}
	if !errors.Is(err, store.ErrNotFound) {
		r.logger.Warn("imported data unusable", zap.Error(err))
	}

	r.logger.Info("using sample data")
	return Dataset{Records: SampleRecords(), Origin: OriginSample}
}

// Refresh drops the cached sheet copy so the next Resolve fetches again.
func (r *Resolver) Refresh(ctx context.Context) error {
	if err := r.store.Delete(ctx, KeyRemote); err != nil {
		return fmt.Errorf("failed to clear cached sheet data: %w", err)
	}
	return nil
}

// Import stores records as the imported tier.
func (r *Resolver) Import(ctx context.Context, records []models.ServiceRecord) error {
	if len(records) == 0 {
		return fmt.Errorf("import contains no dated services: %w", ErrNoData)
	}
	if err := r.save(ctx, KeyImported, records); err != nil {
		return fmt.Errorf("failed to store imported data: %w", err)
	}
	r.logger.Info("stored imported data", zap.Int("records", len(records)))
	return nil
}

func (r *Resolver) cached(ctx context.Context) ([]models.ServiceRecord, error) {
	e, err := r.store.Get(ctx, KeyRemote)
	if err != nil {
		return nil, err
	}
	if age := r.now().Sub(e.StoredAt); age >= r.ttl {
		return nil, fmt.Errorf("cache expired %s ago: %w", (age - r.ttl).Round(time.Second), store.ErrNotFound)
	}
	return decode(e.Value)
}

func (r *Resolver) remote(ctx context.Context) ([]models.ServiceRecord, error) {
	if r.fetcher == nil {
		return nil, fmt.Errorf("no sheet configured: %w", ErrNoData)
	}
	text, err := r.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	res := parser.ParseRecords(text)
	if len(res.Unparsed) > 0 {
		r.logger.Warn("sheet rows with unrecognized dates",
			zap.Int("count", len(res.Unparsed)), zap.Strings("dates", res.Unparsed))
	}
	if len(res.Records) == 0 {
		return nil, ErrNoData
	}
	if err := r.save(ctx, KeyRemote, res.Records); err != nil {
		r.logger.Warn("failed to cache sheet data", zap.Error(err))
	}
	return res.Records, nil
}

func (r *Resolver) load(ctx context.Context, key string) ([]models.ServiceRecord, error) {
	e, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return decode(e.Value)
}

func (r *Resolver) save(ctx context.Context, key string, records []models.ServiceRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, key, data, r.now())
}

func decode(data []byte) ([]models.ServiceRecord, error) {
	var records []models.ServiceRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode stored records: %w", err)
	}
	return records, nil
}
