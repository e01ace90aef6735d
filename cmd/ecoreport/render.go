package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"ecoreport/internal/charts"
	"ecoreport/internal/reports"
	"ecoreport/internal/storage"
	"ecoreport/internal/templates"
)

type renderOptions struct {
	template string
	snapshot string
	sample   string
	out      string
	dest     string
}

func newRenderCmd(a *app) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Compose a PDF report from a snapshot and a template",
		Example: `  ecoreport render --template executive-summary --snapshot metrics.json --out report.pdf
  ecoreport render --template cdp-disclosure --sample sample --dest gs://reports-bucket/acme`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.render(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.template, "template", "t", "executive-summary", "Template id, as listed by the templates command")
	cmd.Flags().StringVarP(&opts.snapshot, "snapshot", "s", "", "Snapshot JSON file, or - for stdin")
	cmd.Flags().StringVar(&opts.sample, "sample", "", "Use a built-in snapshot fixture instead of a file")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output PDF file")
	cmd.Flags().StringVar(&opts.dest, "dest", "reports", "Output directory or gs://bucket/prefix when --out is not set")
	cmd.MarkFlagsMutuallyExclusive("snapshot", "sample")
	cmd.MarkFlagsMutuallyExclusive("out", "dest")
	return cmd
}

func (a *app) render(cmd *cobra.Command, opts *renderOptions) error {
	ctx := cmd.Context()

	snapshot, err := readSnapshot(cmd.InOrStdin(), opts.snapshot, opts.sample)
	if err != nil {
		return err
	}

	registry, err := templates.Default()
	if err != nil {
		return err
	}
	tmpl, err := registry.Get(opts.template)
	if err != nil {
		return err
	}

	geom, err := a.cfg.Geometry()
	if err != nil {
		return err
	}
	estimates := a.cfg.Estimates()

	composer := reports.NewComposer(reports.Options{
		Geometry:    geom,
		ChartWidth:  a.cfg.ChartWidth,
		ChartHeight: a.cfg.ChartHeight,
		Branding:    a.cfg.Branding(),
		Estimates:   &estimates,
		Rasterizer:  charts.NewPNGRasterizer(a.cfg.ChartDPI),
	})

	doc, err := composer.Compose(ctx, snapshot, tmpl)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", tmpl.ID, err)
	}

	dest, name := opts.dest, storage.ReportPath(tmpl.ID, time.Now())
	if opts.out != "" {
		dest, name = filepath.Dir(opts.out), filepath.Base(opts.out)
	}

	store, err := storage.Open(ctx, dest)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.StoreFile(ctx, name, doc.Bytes); err != nil {
		return err
	}

	a.log.Info("Report written", map[string]interface{}{
		"document_id": doc.ID.String(),
		"template":    tmpl.ID,
		"pages":       doc.Pages,
		"location":    store.Location(name),
	})
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d pages)\n", store.Location(name), doc.Pages)
	return nil
}
