package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/printworks/photomatrix/pkg/grid"
	"github.com/printworks/photomatrix/pkg/photo"
)

// inspectCommand creates the inspect command for examining photos.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [photo-or-dir]",
		Short: "Show how photos classify into layouts",
		Long: `Show how photos classify into layouts.

For a single photo, inspect prints its dimensions, aspect ratio, and
aspect class. For a directory it prints a table of every photo plus the
layout a batch of these photos would select.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := os.Stat(args[0])
			if err != nil {
				return err
			}
			if info.IsDir() {
				return c.inspectDir(args[0])
			}
			return c.inspectPhoto(args[0])
		},
	}
}

// inspectPhoto prints the classification of one photo.
func (c *CLI) inspectPhoto(path string) error {
	p, err := photo.Load(path)
	if err != nil {
		return err
	}

	printKeyValue("photo", filepath.Base(p.Path))
	printKeyValue("size", fmt.Sprintf("%d×%d", p.Width, p.Height))
	printKeyValue("aspect", fmt.Sprintf("%.3f", p.AspectRatio()))
	printKeyValue("class", p.Class().String())
	printKeyValue("cell", cellSize(p.Class()))
	return nil
}

// inspectDir prints a classification table for a whole directory.
func (c *CLI) inspectDir(dir string) error {
	paths, err := photo.Scan(dir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		printWarning("No photos found in %s", dir)
		return nil
	}

	var classes []grid.Class
	rows := make([][]string, 0, len(paths))
	for _, path := range paths {
		p, err := photo.Load(path)
		if err != nil {
			rows = append(rows, []string{filepath.Base(path), "—", "—", "invalid"})
			continue
		}
		classes = append(classes, p.Class())
		rows = append(rows, []string{
			filepath.Base(path),
			fmt.Sprintf("%d×%d", p.Width, p.Height),
			fmt.Sprintf("%.3f", p.AspectRatio()),
			p.Class().String(),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Photo", "Size", "Aspect", "Class").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	fmt.Println(t.Render())

	if len(classes) > 0 {
		spec := grid.SelectLayout(classes)
		printDetail("%d of %d usable · batch layout: %s (%d×%d cells)",
			len(classes), len(paths), spec.Name, spec.CellWidth, spec.CellHeight)
	}
	return nil
}

// cellSize formats the cell dimensions for a class's layout.
func cellSize(c grid.Class) string {
	spec := grid.Specs()[c.String()]
	return fmt.Sprintf("%d×%d", spec.CellWidth, spec.CellHeight)
}
