// Package pipeline provides the core composite generation pipeline for
// Photomatrix.
//
// This package implements the complete scan → plan → render pipeline
// that can be used by CLI and API components. By centralizing this
// logic, we ensure consistent behavior across all entry points and
// avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Scan: List, decode, and validate the photos in the input directory
//  2. Plan: Classify photos, partition them into batches of up to nine,
//     and select one layout per batch
//  3. Render: Crop each photo into its cell, paint the 2520×2520
//     composite, and encode it as a print-ready PNG
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    InputDir:  "./photos",
//	    OutputDir: "./out",
//	    Enhance:   true,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, c := range result.Composites {
//	    fmt.Println(c.Path)
//	}
//
// Run individual stages:
//
//	// Scan only
//	photos, skipped, err := runner.Scan(ctx, opts)
//
//	// Plan with loaded photos
//	batches := runner.PlanBatches(len(photos))
package pipeline

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/printworks/photomatrix/pkg/cache"
	"github.com/printworks/photomatrix/pkg/grid"
	"github.com/printworks/photomatrix/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultDPI is the pixel density written into output PNGs. It
	// matches the print templates the canvas size is derived from.
	DefaultDPI = render.PrintDPI

	// DefaultOutputPattern names composites in batch order, starting
	// at 1: matrix_001.png, matrix_002.png, ...
	DefaultOutputPattern = "matrix_%03d.png"
)

// DefaultWorkers is the number of composites rendered concurrently.
// Rendering is CPU-bound (Lanczos resampling dominates), so one worker
// per core is the sweet spot.
func DefaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the composite pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Scan options
	InputDir string `json:"input_dir,omitempty"`

	// Plan options
	Layout  string `json:"layout,omitempty"`  // Force a layout by name; empty selects per batch
	Presets string `json:"presets,omitempty"` // Path to a TOML file overriding layout geometry

	// Render options
	Enhance   bool `json:"enhance,omitempty"`    // Sharpen and boost saturation before encoding
	FillEmpty bool `json:"fill_empty,omitempty"` // Paint dominant-color pads into unused slots
	DPI       int  `json:"dpi,omitempty"`

	// Output options
	OutputDir string `json:"output_dir,omitempty"`

	// Runtime options (not serialized)
	Workers int         `json:"workers,omitempty"`
	Refresh bool        `json:"refresh,omitempty"` // Bypass the composite cache
	Logger  *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Composites lists the generated files in batch order.
	Composites []Composite

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks how many composites came from the cache.
	CacheInfo CacheInfo
}

// Composite describes one generated output file.
type Composite struct {
	// Index is the 1-based batch number, matching the filename.
	Index int `json:"index"`

	// Path is the written file, or empty when rendering to memory.
	Path string `json:"path,omitempty"`

	// Layout is the name of the layout the batch was rendered with.
	Layout string `json:"layout"`

	// BatchSize is the number of photos placed in this composite.
	BatchSize int `json:"batch_size"`

	// FromCache reports whether the PNG bytes came from the cache.
	FromCache bool `json:"from_cache"`

	// Data holds the encoded PNG when Options.OutputDir is empty.
	Data []byte `json:"-"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PhotoCount int // Photos loaded and placed
	Skipped    int // Files skipped as undecodable or undersized
	BatchCount int // Composites planned

	ScanTime   time.Duration // Scanning and decoding
	RenderTime time.Duration // Rendering, wall clock across all workers
}

// CacheInfo tracks composite cache usage for a run.
type CacheInfo struct {
	Hits   int // Composites served from the cache
	Misses int // Composites rendered fresh
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent - calling it multiple
// times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.InputDir == "" {
		return fmt.Errorf("input_dir is required")
	}
	if o.Layout != "" {
		if _, ok := grid.Specs()[o.Layout]; !ok {
			return fmt.Errorf("invalid layout: %q (must be one of: square, landscape, portrait)", o.Layout)
		}
	}
	if o.DPI < 0 {
		return fmt.Errorf("dpi must not be negative")
	}

	if o.DPI == 0 {
		o.DPI = DefaultDPI
	}
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// OutputName returns the filename for the 1-based composite index.
func (o *Options) OutputName(index int) string {
	return fmt.Sprintf(DefaultOutputPattern, index)
}

// CompositeKeyOpts returns cache key options for one composite. The
// layout name is per batch, so it is an argument rather than a field.
func (o *Options) CompositeKeyOpts(layout string) cache.CompositeKeyOpts {
	return cache.CompositeKeyOpts{
		Layout:    layout,
		Enhance:   o.Enhance,
		FillEmpty: o.FillEmpty,
		DPI:       o.DPI,
	}
}
