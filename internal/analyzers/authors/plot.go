package authors

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// maxPlotAuthors caps the chart at the most active contributors.
const maxPlotAuthors = 20

// RenderPlot writes an interactive HTML bar chart of per-author
// contributions. Rows are expected in presentation order; only the top
// authors by commit count are plotted.
func RenderPlot(rows []Row, writer io.Writer) error {
	if len(rows) > maxPlotAuthors {
		rows = rows[:maxPlotAuthors]
	}

	names := make([]string, len(rows))
	commits := make([]opts.BarData, len(rows))
	added := make([]opts.BarData, len(rows))
	deleted := make([]opts.BarData, len(rows))

	for i, row := range rows {
		names[i] = row.Author
		commits[i] = opts.BarData{Value: row.Commits}
		added[i] = opts.BarData{Value: row.LinesAdded}
		deleted[i] = opts.BarData{Value: row.LinesDeleted}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Author Contributions",
			Subtitle: "Commits and changed lines per author (Top 20)",
			Left:     "2%",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "5px",
			Left: "40%",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Author"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Count"}),
	)

	bar.SetXAxis(names).
		AddSeries("Commits", commits).
		AddSeries("Lines Added", added).
		AddSeries("Lines Deleted", deleted)

	err := bar.Render(writer)
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	return nil
}
