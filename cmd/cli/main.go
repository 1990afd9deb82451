package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quantix/adapters/excel"
	"quantix/app"
	"quantix/domain/dataset"
	"quantix/domain/selection"
	"quantix/internal"
	"quantix/internal/config"
	"quantix/internal/testkit"
	"quantix/ports"
)

// rootOptions are the flags shared by every command
type rootOptions struct {
	file   string
	sheet  string
	demo   bool
	asJSON bool
	bins   int

	decimalComma bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "quantix",
		Short:         "Descriptive statistics, correlation and histograms over student data",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			internal.DefaultLogger.SetLevel(cfg.Log.Level)
			if opts.file == "" {
				opts.file = cfg.Data.File
			}
			if opts.sheet == "" {
				opts.sheet = cfg.Data.Sheet
			}
			opts.decimalComma = cfg.Data.DecimalComma
			if !cmd.Flags().Changed("bins") {
				opts.bins = cfg.Analysis.HistogramBins
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.file, "file", "", "CSV or XLSX student data file (default $DATA_FILE)")
	flags.StringVar(&opts.sheet, "sheet", "", "XLSX sheet name (default $DATA_SHEET or Sheet1)")
	flags.BoolVar(&opts.demo, "demo", false, "Use the built-in synthetic class instead of a file")
	flags.BoolVar(&opts.asJSON, "json", false, "Print JSON instead of text")
	flags.IntVar(&opts.bins, "bins", 10, "Histogram bin count")

	rootCmd.AddCommand(
		newFieldsCmd(opts),
		newSummaryCmd(opts),
		newCorrelateCmd(opts),
		newHistogramCmd(opts),
		newSeriesCmd(opts),
	)
	return rootCmd
}

// source picks the ingestion collaborator for the flags
func (o *rootOptions) source() (ports.DatasetSource, error) {
	switch {
	case o.demo:
		return testkit.NewSyntheticSource(), nil
	case o.file != "":
		cfg := excel.DefaultExcelConfig(o.file)
		cfg.Sheet = o.sheet
		cfg.CoercionConfig.DecimalComma = o.decimalComma
		return excel.NewStudentSource(cfg), nil
	default:
		return nil, fmt.Errorf("no data: pass --file, set DATA_FILE, or use --demo")
	}
}

// openSession loads the dataset and starts a session over it
func (o *rootOptions) openSession(ctx context.Context) (*app.Session, error) {
	src, err := o.source()
	if err != nil {
		return nil, err
	}
	ds, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return app.NewSession(ds, app.WithSource(src), app.WithBins(o.bins))
}

// selectFields fills a role's slots with keys, in order
func selectFields(s *app.Session, kind selection.SectionKind, role selection.Role, raw []string) error {
	for i, name := range raw {
		key, err := dataset.ParseFieldKey(name)
		if err != nil {
			return err
		}
		if i > 0 {
			if err := s.AddSlot(kind, role); err != nil {
				return err
			}
		}
		if err := s.SetSlot(kind, role, i, key); err != nil {
			return err
		}
	}
	return nil
}
