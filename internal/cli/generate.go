package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/printworks/photomatrix/pkg/pipeline"
)

// generateCommand creates the generate command, the main entry point
// for producing composites from a photo directory.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		output      string
		noCache     bool
		interactive bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "generate [photo-dir] [output-dir]",
		Short: "Generate 3x3 composites from a directory of photos",
		Long: `Generate 3x3 composites from a directory of photos.

Photos are read in filename order, validated, and split into batches of
up to nine. Each batch becomes one 2520x2520 composite named
matrix_001.png, matrix_002.png, and so on. The cell layout (square,
landscape, or portrait) is chosen per batch from the photos' aspect
ratios unless --layout forces one.

Rendered composites are cached locally, so re-running over unchanged
photos is fast. Use --refresh to force a re-render.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.InputDir = args[0]
			opts.OutputDir = output
			if len(args) > 1 {
				opts.OutputDir = args[1]
			}
			if opts.OutputDir == "" {
				opts.OutputDir = args[0]
			}
			return c.runGenerate(cmd.Context(), opts, noCache, interactive)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default: the photo directory)")
	cmd.Flags().StringVarP(&opts.Layout, "layout", "l", "", "force layout: square, landscape, portrait (default: auto per batch)")
	cmd.Flags().BoolVar(&opts.Enhance, "enhance", false, "sharpen and boost saturation before encoding")
	cmd.Flags().BoolVar(&opts.FillEmpty, "fill-empty", false, "fill unused slots with dominant-color pads")
	cmd.Flags().IntVar(&opts.DPI, "dpi", 0, "output pixel density (default: 200)")
	cmd.Flags().StringVar(&opts.Presets, "presets", "", "TOML file overriding layout geometry")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "composites to render in parallel (default: CPU count)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached composites and re-render")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick photos interactively before generating")

	return cmd
}

// runGenerate executes the pipeline and reports the results.
func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, noCache, interactive bool) error {
	if interactive {
		dir, cleanup, err := c.pickPhotos(opts.InputDir)
		if err != nil {
			return err
		}
		if dir == "" {
			printInfo("No photos selected")
			return nil
		}
		defer cleanup()
		opts.InputDir = dir
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Generating composites...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("Generated %d composite(s)", len(result.Composites))
	for _, comp := range result.Composites {
		printFile(comp.Path)
	}
	printRunStats(result)
	if result.Stats.Skipped > 0 {
		printWarning("%d file(s) skipped (unreadable or below minimum size)", result.Stats.Skipped)
	}

	return nil
}

// pickPhotos runs the interactive photo picker over the input directory
// and stages the selection into a scratch directory in pick order. The
// returned cleanup removes the scratch directory; a "" dir means the
// user selected nothing or quit.
func (c *CLI) pickPhotos(inputDir string) (string, func(), error) {
	entries, err := listPhotoEntries(inputDir)
	if err != nil {
		return "", nil, err
	}
	if len(entries) == 0 {
		return "", nil, fmt.Errorf("no photos found in %s", inputDir)
	}

	selected, err := runPhotoPicker(entries)
	if err != nil {
		return "", nil, err
	}
	if len(selected) == 0 {
		return "", nil, nil
	}

	dir, err := os.MkdirTemp("", appName+"-pick-")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { os.RemoveAll(dir) }

	for i, e := range selected {
		dst := filepath.Join(dir, fmt.Sprintf("pick_%04d%s", i, filepath.Ext(e.Path)))
		if err := copyFile(e.Path, dst); err != nil {
			cleanup()
			return "", nil, fmt.Errorf("stage %s: %w", e.Path, err)
		}
	}
	return dir, cleanup, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
