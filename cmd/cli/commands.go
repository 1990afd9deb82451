package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"quantix/domain/dataset"
	"quantix/domain/selection"
)

func newFieldsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the selectable fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := dataset.Fields()
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), fields)
			}
			return renderFields(cmd.OutOrStdout(), fields)
		},
	}
}

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	var fields []string

	cmd := &cobra.Command{
		Use:   "summary --field <field> [--field <field>...]",
		Short: "Mean, median and population variance per field",
		Long: `Compute mean, median and population variance (divide by N) for each field.
Missing and non-numeric cells are ignored.

Example: quantix summary --demo --field attendance_rate --field "Weekend Study Hours"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSection(cmd, opts, selection.SectionSummary, func(r *sectionRequest) {
				r.fields = fields
			})
		},
	}
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "Field key or column header (repeatable)")
	_ = cmd.MarkFlagRequired("field")
	return cmd
}

func newCorrelateCmd(opts *rootOptions) *cobra.Command {
	var x string
	var ys []string

	cmd := &cobra.Command{
		Use:   "correlate --x <field> --y <field> [--y <field>...]",
		Short: "Pearson correlation of X with each Y over complete pairs",
		Long: `Compute the Pearson correlation of X against each Y. Only records where both
values are present and numeric contribute. "index" correlates against record order.

Example: quantix correlate --demo --x weekday_study_hours --y current_semester_score`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSection(cmd, opts, selection.SectionCorrelation, func(r *sectionRequest) {
				r.x, r.ys = x, ys
			})
		},
	}
	cmd.Flags().StringVar(&x, "x", "", "X field")
	cmd.Flags().StringArrayVar(&ys, "y", nil, "Y field (repeatable)")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("y")
	return cmd
}

func newHistogramCmd(opts *rootOptions) *cobra.Command {
	var fields []string

	cmd := &cobra.Command{
		Use:   "histogram --field <field> [--field <field>...] [--bins n]",
		Short: "Equal-width frequency table per field",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSection(cmd, opts, selection.SectionDistribution, func(r *sectionRequest) {
				r.fields = fields
			})
		},
	}
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "Field key or column header (repeatable)")
	_ = cmd.MarkFlagRequired("field")
	return cmd
}

func newSeriesCmd(opts *rootOptions) *cobra.Command {
	var x string
	var ys []string

	cmd := &cobra.Command{
		Use:   "series --x <field> --y <field> [--y <field>...]",
		Short: "Scatter series of each Y against X",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSection(cmd, opts, selection.SectionGraph, func(r *sectionRequest) {
				r.x, r.ys = x, ys
			})
		},
	}
	cmd.Flags().StringVar(&x, "x", "index", "X field (index plots by record order)")
	cmd.Flags().StringArrayVar(&ys, "y", nil, "Y field (repeatable)")
	_ = cmd.MarkFlagRequired("y")
	return cmd
}

// sectionRequest carries the selections one command applies
type sectionRequest struct {
	fields []string
	x      string
	ys     []string
}

func runSection(cmd *cobra.Command, opts *rootOptions, kind selection.SectionKind, fill func(*sectionRequest)) error {
	var req sectionRequest
	fill(&req)

	session, err := opts.openSession(cmd.Context())
	if err != nil {
		return err
	}
	if len(req.fields) > 0 {
		if err := selectFields(session, kind, selection.RoleFields, req.fields); err != nil {
			return err
		}
	}
	if req.x != "" {
		if err := selectFields(session, kind, selection.RoleX, []string{req.x}); err != nil {
			return err
		}
		if err := selectFields(session, kind, selection.RoleY, req.ys); err != nil {
			return err
		}
	}

	view, ok := session.Bundle().Section(kind)
	if !ok {
		return fmt.Errorf("no results for section %s", kind)
	}
	out := cmd.OutOrStdout()
	if opts.asJSON {
		return writeJSON(out, view)
	}
	return renderSection(out, session.DatasetInfo(), kind, view)
}
