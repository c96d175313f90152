package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/printworks/photomatrix/pkg/cache"
	"github.com/printworks/photomatrix/pkg/errors"
	"github.com/printworks/photomatrix/pkg/grid"
	"github.com/printworks/photomatrix/pkg/observability"
	"github.com/printworks/photomatrix/pkg/photo"
	"github.com/printworks/photomatrix/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
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

// loaded pairs a decoded photo with the content hash of its file bytes.
// The hash feeds the composite cache key, so an edited file misses the
// cache even when its dimensions are unchanged.
type loaded struct {
	photo *photo.Photo
	hash  string
}

// Execute runs the complete scan → plan → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Scan
	scanStart := time.Now()
	photos, skipped, err := r.scan(ctx, opts)
	result.Stats.ScanTime = time.Since(scanStart)
	result.Stats.Skipped = skipped
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	result.Stats.PhotoCount = len(photos)

	if len(photos) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput,
			"no usable photos in %s", opts.InputDir)
	}

	opts.Logger.Info("scanned photos",
		"loaded", len(photos),
		"skipped", skipped,
		"duration", result.Stats.ScanTime)

	// Stage 2: Plan
	spans := grid.Plan(len(photos))
	result.Stats.BatchCount = len(spans)
	observability.Pipeline().OnPlanComplete(ctx, len(photos), len(spans))

	opts.Logger.Info("planned batches",
		"photos", len(photos),
		"batches", len(spans))

	// Stage 3: Render, one worker per composite.
	specs, err := r.layoutSpecs(opts)
	if err != nil {
		return nil, err
	}
	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err,
				"create output dir %s", opts.OutputDir)
		}
	}

	renderStart := time.Now()
	composites := make([]Composite, len(spans))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, span := range spans {
		i, span := i, span
		g.Go(func() error {
			c, err := r.renderBatch(gctx, opts, specs, photos[span.Start:span.End], i+1)
			if err != nil {
				return err
			}
			composites[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Stats.RenderTime = time.Since(renderStart)
	result.Composites = composites
	for _, c := range composites {
		if c.FromCache {
			result.CacheInfo.Hits++
		} else {
			result.CacheInfo.Misses++
		}
	}

	opts.Logger.Info("rendered composites",
		"count", len(composites),
		"cached", result.CacheInfo.Hits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Scan loads and validates the photos in the input directory. Files that
// fail to decode or fall below the minimum dimension are skipped with a
// warning; the skipped count is returned alongside the photos.
func (r *Runner) Scan(ctx context.Context, opts Options) ([]*photo.Photo, int, error) {
	if opts.InputDir == "" {
		return nil, 0, fmt.Errorf("input_dir is required")
	}
	r.applyLogger(&opts)

	batch, skipped, err := r.scan(ctx, opts)
	if err != nil {
		return nil, skipped, err
	}
	photos := make([]*photo.Photo, len(batch))
	for i, l := range batch {
		photos[i] = l.photo
	}
	return photos, skipped, nil
}

// PlanBatches partitions a photo count into batch spans. This is a thin
// wrapper kept so callers only need the pipeline package for a dry run.
func (r *Runner) PlanBatches(photoCount int) []grid.Span {
	return grid.Plan(photoCount)
}

// scan reads, hashes, and decodes every supported file in the input
// directory in lexicographic order.
func (r *Runner) scan(ctx context.Context, opts Options) ([]loaded, int, error) {
	observability.Pipeline().OnScanStart(ctx, opts.InputDir)
	start := time.Now()

	paths, err := photo.Scan(opts.InputDir)
	if err != nil {
		observability.Pipeline().OnScanComplete(ctx, opts.InputDir, 0, 0, time.Since(start), err)
		return nil, 0, err
	}

	var photos []loaded
	skipped := 0
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, skipped, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			opts.Logger.Warn("skipping unreadable file", "path", path, "error", err)
			skipped++
			continue
		}
		p, err := photo.Decode(bytes.NewReader(data), path)
		if err != nil {
			opts.Logger.Warn("skipping photo", "path", path, "error", errors.UserMessage(err))
			skipped++
			continue
		}
		photos = append(photos, loaded{photo: p, hash: cache.Hash(data)})
	}

	observability.Pipeline().OnScanComplete(ctx, opts.InputDir, len(photos), skipped, time.Since(start), nil)
	return photos, skipped, nil
}

// layoutSpecs resolves the layout geometry table, applying the preset
// file on top of the built-ins when one is configured.
func (r *Runner) layoutSpecs(opts Options) (map[string]grid.LayoutSpec, error) {
	if opts.Presets == "" {
		return grid.Specs(), nil
	}
	specs, err := grid.LoadPresets(opts.Presets)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("loaded layout presets", "path", opts.Presets)
	return specs, nil
}

// renderBatch produces one composite: select the layout, check the
// cache, and on a miss crop, paint, optionally enhance, and encode.
// The index is 1-based and determines the output filename.
func (r *Runner) renderBatch(ctx context.Context, opts Options, specs map[string]grid.LayoutSpec, batch []loaded, index int) (Composite, error) {
	observability.Pipeline().OnCompositeStart(ctx, index, len(batch))
	start := time.Now()

	spec := r.selectSpec(opts, specs, batch)
	c := Composite{
		Index:     index,
		Layout:    spec.Name,
		BatchSize: len(batch),
	}

	hashes := make([]string, len(batch))
	for i, l := range batch {
		hashes[i] = l.hash
	}
	key := r.Keyer.CompositeKey(cache.BatchHash(hashes), opts.CompositeKeyOpts(spec.Name))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "composite")
			c.FromCache = true
			if err := r.deliver(&c, opts, data); err != nil {
				return Composite{}, err
			}
			observability.Pipeline().OnCompositeComplete(ctx, index, spec.Name, time.Since(start), nil)
			return c, nil
		}
		observability.Cache().OnCacheMiss(ctx, "composite")
	}

	// Crop every photo into its slot. A failed crop leaves the slot
	// transparent rather than aborting the whole composite.
	slots := grid.Assign(len(batch))
	fragments := make([]render.Fragment, 0, grid.SlotCount)
	for i, slot := range slots {
		cell, err := render.Cell(batch[i].photo.Image, spec.CellWidth, spec.CellHeight)
		if err != nil {
			opts.Logger.Warn("cell crop failed, leaving slot empty",
				"photo", batch[i].photo.Path, "slot", slot, "error", err)
			fragments = append(fragments, render.Fragment{Slot: slot})
			continue
		}
		fragments = append(fragments, render.Fragment{Slot: slot, Image: cell})
	}

	// Short batches leave trailing slots empty; FillEmpty pads them
	// with backgrounds derived from the batch's dominant colors.
	if opts.FillEmpty && len(batch) < grid.SlotCount {
		fragments = append(fragments, r.padFragments(batch, slots, spec)...)
	}

	canvas := render.Composite(fragments, spec)
	if opts.Enhance {
		canvas = render.Enhance(canvas)
	}

	data, err := render.EncodePNG(canvas, opts.DPI)
	if err != nil {
		observability.Pipeline().OnCompositeComplete(ctx, index, spec.Name, time.Since(start), err)
		return Composite{}, err
	}

	if err := r.Cache.Set(ctx, key, data, cache.TTLComposite); err == nil {
		observability.Cache().OnCacheSet(ctx, "composite", len(data))
	}

	if err := r.deliver(&c, opts, data); err != nil {
		return Composite{}, err
	}
	observability.Pipeline().OnCompositeComplete(ctx, index, spec.Name, time.Since(start), nil)
	return c, nil
}

// selectSpec picks the layout for a batch: the forced layout when set,
// otherwise the plurality aspect class of the batch's photos. Geometry
// comes from the resolved spec table so presets apply either way.
func (r *Runner) selectSpec(opts Options, specs map[string]grid.LayoutSpec, batch []loaded) grid.LayoutSpec {
	name := opts.Layout
	if name == "" {
		classes := make([]grid.Class, len(batch))
		for i, l := range batch {
			classes[i] = l.photo.Class()
		}
		name = grid.SelectLayout(classes).Name
	}
	return specs[name]
}

// padFragments builds background fragments for the slots a short batch
// leaves empty.
func (r *Runner) padFragments(batch []loaded, used []grid.Slot, spec grid.LayoutSpec) []render.Fragment {
	taken := make(map[grid.Slot]bool, len(used))
	for _, s := range used {
		taken[s] = true
	}
	var empty []grid.Slot
	for _, s := range grid.SlotOrder() {
		if !taken[s] {
			empty = append(empty, s)
		}
	}

	images := make([]image.Image, len(batch))
	for i, l := range batch {
		images[i] = l.photo.Image
	}
	pads := render.Backgrounds(images, len(empty), spec.CellWidth, spec.CellHeight)

	fragments := make([]render.Fragment, len(empty))
	for i, s := range empty {
		fragments[i] = render.Fragment{Slot: s, Image: pads[i]}
	}
	return fragments
}

// deliver writes the composite to the output directory, or attaches the
// bytes to the result when no directory is configured (API mode).
func (r *Runner) deliver(c *Composite, opts Options, data []byte) error {
	if opts.OutputDir == "" {
		c.Data = data
		return nil
	}
	path := filepath.Join(opts.OutputDir, opts.OutputName(c.Index))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	c.Path = path
	return nil
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
	if opts.Logger == nil && r.Logger != nil {
		opts.Logger = r.Logger
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
