// Package report renders the operator-facing run summary and gap report.
package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/zotools/pubsync/internal/reconcile"
)

// Summary writes the run counts and, when any required identifier went
// unmatched, the gap table. Advisory output only; it never fails the run.
func Summary(w io.Writer, result reconcile.Result, needed int) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"stage", "count"})
	tw.AppendRows([]table.Row{
		{"needed", needed},
		{"fetched", result.Fetched},
		{"dropped (no link)", result.DroppedNoLink},
		{"retained", len(result.Records)},
		{"missing", len(result.Gaps)},
	})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	fmt.Fprintln(w, tw.Render())

	if len(result.Gaps) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, GapTable(result.Gaps))
	}
}

// GapTable renders the required identifiers that had no retained match.
func GapTable(gaps []string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"missing from library"})
	for _, raw := range gaps {
		tw.AppendRow(table.Row{raw})
	}
	return tw.Render()
}
