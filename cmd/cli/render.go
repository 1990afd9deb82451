package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"quantix/domain/dataset"
	"quantix/domain/selection"
	"quantix/domain/stats"
)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderFields(w io.Writer, fields []dataset.FieldMeta) error {
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tHEADER\tNOTES")
	for _, f := range fields {
		var notes []string
		if f.Derived {
			notes = append(notes, "derived")
		}
		if f.Synthetic {
			notes = append(notes, "x axis only")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Key, f.Header, strings.Join(notes, ", "))
	}
	return tw.Flush()
}

func renderSection(w io.Writer, info dataset.Info, kind selection.SectionKind, view stats.SectionView) error {
	fmt.Fprintf(w, "%s: %d records from %s\n\n", kind, info.RecordCount, info.Source)
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)

	if len(view.Statistics) > 0 {
		fmt.Fprintln(tw, "FIELD\tN\tMEAN\tMEDIAN\tVARIANCE")
		for _, fs := range view.Statistics {
			r := fs.Result
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", fs.Label, r.ValidCount,
				r.Mean.Format(2), r.Median.Format(2), r.Variance.Format(2))
		}
	}

	for _, h := range view.Histograms {
		fmt.Fprintf(tw, "%s (n=%d)\t\n", h.Label, h.Distribution.Total)
		if err := h.Distribution.Err(); err != nil {
			fmt.Fprintf(tw, "  %v\t\n", err)
		}
		for _, b := range h.Distribution.Bins {
			fmt.Fprintf(tw, "  %s\t%d\t%s\n", b.Label, b.Count, strings.Repeat("#", b.Count))
		}
	}

	if len(view.Correlations) > 0 {
		fmt.Fprintln(tw, "PAIR\tPAIRS\tPEARSON R\tNOTE")
		for _, pc := range view.Correlations {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", pc.Label, pc.Result.PairedCount,
				pc.Result.Coefficient.Format(3), note(pc.Result.Coefficient.Err()))
		}
	}

	for _, series := range view.Series {
		fmt.Fprintf(tw, "%s (%d points)\t\n", series.Label, len(series.Points))
		for _, p := range series.Points {
			fmt.Fprintf(tw, "  %g\t%g\n", p.X, p.Y)
		}
	}
	return tw.Flush()
}

func note(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
