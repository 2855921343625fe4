package workbook

import (
	"context"
	"io"

	"limeharvest/lib/survey"

	"github.com/jedib0t/go-pretty/v6/table"
)

// TableSink renders tables to a writer with go-pretty, one after another.
type TableSink struct {
	Out io.Writer
}

func (s TableSink) WriteTable(_ context.Context, t survey.Table) error {
	w := table.NewWriter()
	w.SetStyle(table.StyleRounded)
	w.SetOutputMirror(s.Out)
	w.SetTitle(t.Name)

	header := make(table.Row, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col
	}
	w.AppendHeader(header)

	for _, r := range t.Rows {
		row := make(table.Row, len(r))
		for i, cell := range r {
			row[i] = cell
		}
		w.AppendRow(row)
	}

	w.Render()
	return nil
}
