package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/teeforge/pkg/cache"
	"github.com/matzehuels/teeforge/pkg/core/palette"
	"github.com/matzehuels/teeforge/pkg/core/seed"
	"github.com/matzehuels/teeforge/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// The CLI, the studio and the HTTP server all generate through a Runner.
//
// The Runner keeps no per-run state: every run builds its own random streams
// from its seed, so multiple goroutines can safely share one Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
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

// Result contains the outputs of a run.
type Result struct {
	Seed       seed.Seed
	SeedSource seed.Source

	// Filename is the download name, tshirt_style_<seed>.png.
	Filename string

	// PNG is the encoded design.
	PNG []byte

	Palette  palette.Palette
	Width    int
	Height   int
	Channels int

	// Stats is empty on a cache hit.
	Stats Stats

	// CacheHit reports whether PNG came from the cache.
	CacheHit bool
}

// cachedDesign is the cache payload of one design.
type cachedDesign struct {
	PNG      []byte   `json:"png"`
	Palette  []string `json:"palette"`
	Channels int      `json:"channels"`
}

// ResolveSeed resolves seed text without generating, for display before a run.
func (r *Runner) ResolveSeed(text string) (seed.Seed, seed.Source) {
	return seed.Resolve(text)
}

// Execute resolves opts.Seed and runs the pipeline. Callers that display the
// seed first should resolve it themselves and call [Runner.Run], so that a
// random seed is drawn only once.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	s, src := opts.ResolveSeed()
	result, err := r.Run(ctx, s, opts)
	if err != nil {
		return nil, err
	}
	result.SeedSource = src
	return result, nil
}

// Run generates the design for seed s, consulting the cache first.
func (r *Runner) Run(ctx context.Context, s seed.Seed, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Seed:       s,
		SeedSource: seed.SourceInteger,
		Filename:   s.Filename(),
		Width:      opts.Width,
		Height:     opts.Height,
	}
	key := r.Keyer.DesignKey(uint32(s), opts.DesignKeyOpts())

	if cached, ok := r.lookup(ctx, key); ok {
		result.PNG = cached.PNG
		result.Channels = cached.Channels
		result.Palette, _ = palette.FromHex(cached.Palette)
		result.CacheHit = true
		r.Logger.Info("design served from cache", "seed", s, "bytes", len(cached.PNG))
		return result, nil
	}

	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, uint32(s), opts.Width, opts.Height)
	start := time.Now()

	d, err := Generate(ctx, s, opts)
	if err != nil {
		hooks.OnGenerateComplete(ctx, uint32(s), 0, time.Since(start), err)
		return nil, err
	}

	encodeStart := time.Now()
	png, err := d.Canvas.PNG()
	if err != nil {
		hooks.OnGenerateComplete(ctx, uint32(s), 0, time.Since(start), err)
		return nil, fmt.Errorf("encode png: %w", err)
	}
	encodeTime := time.Since(encodeStart)
	hooks.OnStageComplete(ctx, StageEncode, encodeTime)
	d.Stats.Stages = append(d.Stats.Stages, StageTiming{Name: StageEncode, Duration: encodeTime})
	d.Stats.Total = time.Since(start)

	result.PNG = png
	result.Palette = d.Palette
	result.Channels = d.Canvas.Channels()
	result.Stats = d.Stats
	hooks.OnGenerateComplete(ctx, uint32(s), len(png), d.Stats.Total, nil)

	r.Logger.Info("generated design",
		"seed", s,
		"size", fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"palette", d.Palette,
		"bytes", len(png),
		"duration", d.Stats.Total)

	r.store(ctx, key, cachedDesign{PNG: png, Palette: d.Palette.Hex(), Channels: result.Channels})
	return result, nil
}

func (r *Runner) lookup(ctx context.Context, key string) (cachedDesign, bool) {
	var cached cachedDesign
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "design")
		return cached, false
	}
	if err := json.Unmarshal(data, &cached); err != nil || len(cached.PNG) == 0 {
		// Unreadable entry: regenerate and overwrite it.
		observability.Cache().OnCacheMiss(ctx, "design")
		return cached, false
	}
	observability.Cache().OnCacheHit(ctx, "design")
	return cached, true
}

func (r *Runner) store(ctx context.Context, key string, entry cachedDesign) {
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLDesign); err != nil {
		r.Logger.Debug("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "design", len(data))
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
