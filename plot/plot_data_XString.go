package plot

import (
	"fmt"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// DataXStringsForGraph is one bar series with categorical labels on X.
type DataXStringsForGraph struct {
	xValues    []string
	yValues    []float64
	nameXAxis  string
	nameYAxis  string
	nameGraph  string
	color      string
	horizontal bool
}

// NewDataXStringsForGraph builds a bar series. color is a hex string such as "#4CAF50".
func NewDataXStringsForGraph(xValues []string, y []float64, nameXAxis, nameYAxis, nameGraph, color string) DataXStringsForGraph {
	return DataXStringsForGraph{
		xValues:   xValues,
		yValues:   y,
		nameXAxis: nameXAxis,
		nameYAxis: nameYAxis,
		nameGraph: nameGraph,
		color:     color,
	}
}

// Horizontal marks the series to be drawn with bars along the X axis, first label on top.
func (d DataXStringsForGraph) Horizontal() DataXStringsForGraph {
	d.horizontal = true
	return d
}

func (d DataXStringsForGraph) GetNameGraph() string {
	return d.nameGraph
}
func (d DataXStringsForGraph) getNameYAxis() string {
	return d.nameYAxis
}
func (d DataXStringsForGraph) getYValues() []float64 {
	return d.yValues
}
func (d DataXStringsForGraph) getXValues() []string {
	return d.xValues
}

func (d DataXStringsForGraph) lenXValues() int {
	return len(d.xValues)
}

func (d DataXStringsForGraph) fillColor() drawing.Color {
	if d.color == "" {
		return drawing.ColorPurple.WithAlpha(100)
	}
	return drawing.ColorFromHex(strings.TrimPrefix(d.color, "#"))
}

func (d DataXStringsForGraph) calculateChartDimensions(minBarWidth float64) (width, height int) {
	if len(d.yValues) == 0 || d.lenXValues() <= 0 || minBarWidth <= 0 {
		return 0, 0
	}
	x := 1.1
	if d.lenXValues() < 2 {
		x = 10.0
	} else if d.lenXValues() < 10 {
		x = 3.0
	}

	const (
		paddingY     = 100        // room for the Y axis and its labels
		spacingRatio = 0.2        // gap between bars relative to bar width
		aspectRatio  = 9.0 / 16.0 // default height to width
	)

	barSpacing := minBarWidth * spacingRatio
	totalWidth := (minBarWidth+barSpacing)*float64(d.lenXValues()) + paddingY
	width = int(totalWidth*x) + paddingY
	height = int(float64(width) * aspectRatio)
	return width, height
}

func (d DataXStringsForGraph) generateBarValues() []chart.Value {
	var bars []chart.Value
	yValues := d.getYValues()
	xValues := d.getXValues()
	fill := d.fillColor()
	for i := 0; i < len(xValues) && i < len(yValues); i++ {
		bars = append(bars, chart.Value{
			Value: yValues[i],
			Label: xValues[i],
			Style: chart.Style{
				FillColor:   fill,
				StrokeColor: fill,
			},
		})
	}
	return bars
}

func (d DataXStringsForGraph) generateGrid() []chart.Tick {
	var ticks []chart.Tick
	max := findMaxValue(d.yValues)
	gridStep := calculateGridStep(max)
	if gridStep == 0 {
		return nil
	}
	format := "%.0f"
	if gridStep < 1 {
		format = "%.1f"
	}
	maxY := math.Ceil(max/gridStep) * gridStep
	for i := 0.0; i <= maxY+gridStep/2; i += gridStep {
		ticks = append(ticks, chart.Tick{
			Value: i,
			Label: fmt.Sprintf(format, i),
		})
	}
	return ticks
}
