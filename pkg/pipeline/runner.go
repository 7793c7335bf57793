package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blockgraph/pkg/cache"
	"github.com/matzehuels/blockgraph/pkg/errors"
	"github.com/matzehuels/blockgraph/pkg/observability"
	"github.com/matzehuels/blockgraph/pkg/project"
	"github.com/matzehuels/blockgraph/pkg/render/diagram"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is how long fresh artifacts stay cached. Zero means DefaultTTL.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the layout → render → convert pipeline for p with caching.
func (r *Runner) Execute(ctx context.Context, p *project.Project, opts Options) (*Result, error) {
	if p == nil {
		return nil, errors.New(errors.ErrCodeInvalidProject, "no project given")
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	hash, err := cache.HashJSON(p)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash project")
	}

	result := &Result{
		ProjectHash: hash,
		Artifacts:   make(map[string][]byte, len(opts.Formats)),
	}
	result.Stats.Blocks = len(p.Blocks)
	result.Stats.Refs = len(p.Refs)

	missing := r.lookup(ctx, hash, opts, result)
	if len(missing) == 0 {
		result.CacheInfo.RenderHit = true
		r.Logger.Info("all outputs cached", "formats", opts.Formats)
		return result, nil
	}

	if opts.needsDiagram(missing) {
		start := time.Now()
		observability.Render().OnLayoutStart(ctx, hash)
		d := diagram.Compute(p, opts.Config)
		result.Diagram = d
		result.Stats.LayoutTime = time.Since(start)
		result.Stats.Layers = len(d.Layers)
		result.Stats.Unreached = len(d.Unreached)
		observability.Render().OnLayoutComplete(ctx, hash, d.Info.Len(), result.Stats.LayoutTime)

		r.Logger.Info("computed layout",
			"blocks", d.Info.Len(),
			"layers", len(d.Layers),
			"duration", result.Stats.LayoutTime)
		if len(d.Unreached) > 0 {
			r.Logger.Warn("unreached blocks placed in a trailing layer", "blocks", d.Unreached)
		}
	}

	start := time.Now()
	observability.Render().OnRenderStart(ctx, hash, missing)
	rendered, err := Render(ctx, p, result.Diagram, missing, opts)
	result.Stats.RenderTime = time.Since(start)
	observability.Render().OnRenderComplete(ctx, hash, missing, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	r.Logger.Info("rendered outputs",
		"formats", missing,
		"duration", result.Stats.RenderTime)

	for format, data := range rendered {
		result.Artifacts[format] = data
		r.store(ctx, hash, format, data, opts)
	}
	return result, nil
}

// lookup fills result with cached artifacts and returns the formats that
// still need rendering, in request order.
func (r *Runner) lookup(ctx context.Context, hash string, opts Options, result *Result) []string {
	if opts.Refresh {
		return opts.Formats
	}
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Debug("cache read failed", "format", format, "err", err)
		}
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, format)
			missing = append(missing, format)
			continue
		}
		observability.Cache().OnCacheHit(ctx, format)
		result.Artifacts[format] = data
		result.CacheInfo.Hits = append(result.CacheInfo.Hits, format)
	}
	return missing
}

// store writes one artifact to the cache. Cache failures never fail a run.
func (r *Runner) store(ctx context.Context, hash, format string, data []byte, opts Options) {
	ttl := r.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "format", format, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, format, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
