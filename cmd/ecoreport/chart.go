package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"ecoreport/internal/charts"
	"ecoreport/internal/storage"
	"ecoreport/internal/views"
)

type chartOptions struct {
	kind     string
	snapshot string
	sample   string
	out      string
	width    int
	height   int
}

func newChartCmd(a *app) *cobra.Command {
	opts := &chartOptions{}

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render a single chart view to PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.chart(cmd, opts)
		},
	}

	names := make([]string, 0, len(views.Kinds()))
	for _, k := range views.Kinds() {
		names = append(names, k.String())
	}

	cmd.Flags().StringVarP(&opts.kind, "kind", "k", views.CarbonTrend.String(), "Chart kind: "+strings.Join(names, ", "))
	cmd.Flags().StringVarP(&opts.snapshot, "snapshot", "s", "", "Snapshot JSON file, or - for stdin")
	cmd.Flags().StringVar(&opts.sample, "sample", "", "Use a built-in snapshot fixture instead of a file")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output PNG file (default <kind>.png)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "Width in pixels (default CHART_WIDTH)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "Height in pixels (default CHART_HEIGHT)")
	cmd.MarkFlagsMutuallyExclusive("snapshot", "sample")
	return cmd
}

func (a *app) chart(cmd *cobra.Command, opts *chartOptions) error {
	ctx := cmd.Context()

	kind, ok := views.LookupKind(opts.kind)
	if !ok {
		return fmt.Errorf("unknown chart kind %q", opts.kind)
	}

	snapshot, err := readSnapshot(cmd.InOrStdin(), opts.snapshot, opts.sample)
	if err != nil {
		return err
	}

	width, height := opts.width, opts.height
	if width <= 0 {
		width = a.cfg.ChartWidth
	}
	if height <= 0 {
		height = a.cfg.ChartHeight
	}

	view := views.NewBuilder(a.cfg.Estimates()).Build(snapshot.Normalize(), kind)
	data, err := charts.NewPNGRasterizer(a.cfg.ChartDPI).Rasterize(ctx, view, width, height)
	if err != nil {
		return err
	}

	out := opts.out
	if out == "" {
		out = kind.String() + ".png"
	}
	store, err := storage.NewLocalStore(filepath.Dir(out))
	if err != nil {
		return err
	}
	if err := store.StoreFile(ctx, filepath.Base(out), data); err != nil {
		return err
	}

	a.log.Debug("Chart written", map[string]interface{}{"kind": kind.String(), "bytes": len(data)})
	fmt.Fprintln(cmd.OutOrStdout(), store.Location(filepath.Base(out)))
	return nil
}
