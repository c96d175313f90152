package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/printworks/photomatrix/pkg/grid"
	"github.com/printworks/photomatrix/pkg/photo"
	"github.com/printworks/photomatrix/pkg/pipeline"
)

// planCommand creates the plan command, a dry run that shows how
// photos would be batched without rendering anything.
func (c *CLI) planCommand() *cobra.Command {
	var layout string

	cmd := &cobra.Command{
		Use:   "plan [photo-dir]",
		Short: "Preview batches and layouts without rendering",
		Long: `Preview batches and layouts without rendering.

The plan command scans the photo directory, classifies every photo, and
prints the batch plan: which photos land in which composite and which
cell layout each composite would use. Nothing is rendered or written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlan(cmd.Context(), args[0], layout)
		},
	}

	cmd.Flags().StringVarP(&layout, "layout", "l", "", "force layout: square, landscape, portrait (default: auto per batch)")

	return cmd
}

// runPlan scans, classifies, and prints the batch plan table.
func (c *CLI) runPlan(ctx context.Context, inputDir, forced string) error {
	if forced != "" {
		if _, ok := grid.Specs()[forced]; !ok {
			return fmt.Errorf("invalid layout: %q (must be one of: square, landscape, portrait)", forced)
		}
	}

	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	photos, skipped, err := runner.Scan(ctx, pipeline.Options{InputDir: inputDir, Logger: c.Logger})
	if err != nil {
		return err
	}
	if len(photos) == 0 {
		printWarning("No usable photos in %s", inputDir)
		return nil
	}

	spans := grid.Plan(len(photos))

	rows := make([][]string, len(spans))
	for i, span := range spans {
		batch := photos[span.Start:span.End]
		name := forced
		if name == "" {
			name = batchLayout(batch)
		}
		rows[i] = []string{
			fmt.Sprintf("matrix_%03d.png", i+1),
			fmt.Sprintf("%d", span.Len()),
			name,
			batchRange(batch),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Composite", "Photos", "Layout", "Range").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	fmt.Println(t.Render())

	printRunStatsLine(len(photos), len(spans), skipped)
	printNewline()
	printNextStep("Generate", appName+" generate "+inputDir)
	return nil
}

// batchLayout returns the layout a batch would select.
func batchLayout(batch []*photo.Photo) string {
	classes := make([]grid.Class, len(batch))
	for i, p := range batch {
		classes[i] = p.Class()
	}
	return grid.SelectLayout(classes).Name
}

// batchRange formats the first and last filename of a batch.
func batchRange(batch []*photo.Photo) string {
	first := filepath.Base(batch[0].Path)
	if len(batch) == 1 {
		return first
	}
	return first + " … " + filepath.Base(batch[len(batch)-1].Path)
}

// printRunStatsLine prints plan statistics on a single line.
func printRunStatsLine(photos, batches, skipped int) {
	line := fmt.Sprintf("%d photos · %d composite(s)", photos, batches)
	if skipped > 0 {
		line += fmt.Sprintf(" · %d skipped", skipped)
	}
	printDetail("%s", line)
}
