package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/render"
	"github.com/abhisek/drill/internal/scheduler"
	"github.com/abhisek/drill/internal/session"
)

// errNoSizeMetric is returned when a size histogram is requested for an
// item whose samples carry no size.
var errNoSizeMetric = errors.New("item has no size values; use --histograms 1")

var renderCmd = &cobra.Command{
	Use:   "render [item.json]",
	Short: "Render an item's histograms to PNG",
	Long: "Reads a scheduler item (from a file, or stdin when omitted or \"-\") and " +
		"writes its weight histogram as PNG. With --histograms 2 the size histogram " +
		"is written next to it with a -size suffix.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := renderOptions(cmd)
		if err != nil {
			return err
		}

		raw, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		item, err := scheduler.DecodeItem(raw)
		if err != nil {
			return fmt.Errorf("decode item: %w", err)
		}

		out, _ := cmd.Flags().GetString("out")
		width, _ := cmd.Flags().GetInt("width")
		height, _ := cmd.Flags().GetInt("height")
		scale, _ := cmd.Flags().GetInt("scale")

		paths, err := renderItemPNG(item, opts, width, height, scale, out)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", p)
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().StringP("out", "o", "histogram.png", "Output PNG path")
	renderCmd.Flags().Int("width", 300, "Surface width in pixels")
	renderCmd.Flags().Int("height", 150, "Surface height in pixels")
	renderCmd.Flags().Int("scale", 1, "Integer upscale factor (nearest neighbour)")
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return raw, nil
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read item: %w", err)
	}
	return raw, nil
}

// renderItemPNG draws item onto fresh PNG surfaces and writes one file per
// histogram. It returns the paths written.
func renderItemPNG(item *session.Item, opts render.Options, width, height, scale int, out string) ([]string, error) {
	if scale < 1 {
		return nil, fmt.Errorf("scale must be at least 1, got %d", scale)
	}
	if opts.Histograms == 2 && !session.HasSize(item.Weights) {
		return nil, errNoSizeMetric
	}

	pngs := make([]*render.PNGSurface, opts.Histograms)
	surfaces := make([]render.Surface, opts.Histograms)
	for i := range pngs {
		s, err := render.NewPNGSurface(width, height)
		if err != nil {
			return nil, err
		}
		pngs[i], surfaces[i] = s, s
	}

	r, err := render.New(opts, surfaces...)
	if err != nil {
		return nil, err
	}
	r.Render(item.Consec, item.Weights)

	paths := []string{out, sizePath(out)}[:len(pngs)]
	for i, s := range pngs {
		if err := writePNG(paths[i], s, scale); err != nil {
			return nil, err
		}
	}
	return paths, nil
}

func writePNG(path string, s *render.PNGSurface, scale int) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := s.WritePNG(f, scale); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// sizePath derives the size histogram's file name from the weight one.
func sizePath(out string) string {
	ext := filepath.Ext(out)
	return strings.TrimSuffix(out, ext) + "-size" + ext
}
