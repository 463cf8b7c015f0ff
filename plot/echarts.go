package plot

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// RenderBarPage writes a standalone interactive bar chart page.
func RenderBarPage(w io.Writer, d DataXStringsForGraph) error {
	xValues, yValues := d.getXValues(), d.getYValues()
	labelPosition := "top"
	if d.horizontal {
		// category axes grow upwards, reverse so the first entry is on top
		xValues, yValues = reversed(xValues), reversedFloats(yValues)
		labelPosition = "right"
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: d.nameGraph,
			Theme:     types.ThemeChalk,
			Width:     "100%",
			Height:    "400px",
		}),
		charts.WithTitleOpts(opts.Title{Title: d.nameGraph}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: d.nameXAxis}),
		charts.WithYAxisOpts(opts.YAxis{Name: d.nameYAxis}),
	)

	items := make([]opts.BarData, 0, len(yValues))
	for _, v := range yValues {
		items = append(items, opts.BarData{Value: v})
	}
	bar.SetXAxis(xValues).AddSeries(d.nameYAxis, items,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: d.color}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: labelPosition}),
	)
	if d.horizontal {
		bar.XYReversal()
	}
	return bar.Render(w)
}

func reversed(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[len(values)-1-i] = v
	}
	return out
}

func reversedFloats(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[len(values)-1-i] = v
	}
	return out
}
