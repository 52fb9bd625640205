package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// newTable returns a table writer styled for the terminal, or for Markdown
// when markdown is set.
func newTable(markdown bool, header ...any) table.Writer {
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.AppendHeader(table.Row(header))
	return &tableOut{Writer: w, markdown: markdown}
}

// rightAlign right-aligns the given 1-based numeric columns.
func rightAlign(w table.Writer, cols ...int) {
	cfgs := make([]table.ColumnConfig, 0, len(cols))
	for _, n := range cols {
		cfgs = append(cfgs, table.ColumnConfig{Number: n, Align: text.AlignRight})
	}
	w.SetColumnConfigs(cfgs)
}

// tableOut switches Render to Markdown output when requested.
type tableOut struct {
	table.Writer
	markdown bool
}

func (t *tableOut) Render() string {
	if t.markdown {
		return t.Writer.RenderMarkdown()
	}
	return t.Writer.Render()
}
