package authors

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderTable writes the contribution table for the given rows.
func RenderTable(rows []Row, writer io.Writer) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(writer)
	tbl.SetStyle(table.StyleLight)

	tbl.AppendHeader(table.Row{"Author", "Commits", "Lines Added", "Lines Deleted", "Contribution %"})

	for _, row := range rows {
		tbl.AppendRow(table.Row{
			row.Author,
			humanize.Comma(int64(row.Commits)),
			humanize.Comma(int64(row.LinesAdded)),
			humanize.Comma(int64(row.LinesDeleted)),
			fmt.Sprintf("%.2f%%", row.Contribution),
		})
	}

	tbl.Render()
}
