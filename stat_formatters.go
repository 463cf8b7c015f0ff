package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pivolan/registry_dashboard/domain/models"
)

// GenerateUniqueCountsTable renders the column → distinct count mapping.
func GenerateUniqueCountsTable(counts []models.ColumnUnique) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Column", "Unique Values"})
	for _, c := range counts {
		t.AppendRow(table.Row{c.Column, c.Unique})
	}
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

// GenerateRankingTable renders a frequency ranking, largest first.
func GenerateRankingTable(name string, ranking []models.ValueCount) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{name, "Records", "%"})
	for _, vc := range ranking {
		t.AppendRow(table.Row{vc.Value, vc.Count, fmt.Sprintf("%.1f", vc.Percent)})
	}
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

func drillDownWriter(data *models.Table) table.Writer {
	t := table.NewWriter()
	header := table.Row{}
	for _, c := range data.Columns {
		header = append(header, c)
	}
	t.AppendHeader(header)
	for _, row := range data.Rows {
		r := make(table.Row, 0, len(data.Columns))
		for _, c := range data.Columns {
			r = append(r, models.FormatValue(row[c]))
		}
		t.AppendRow(r)
	}
	return t
}

func GenerateDrillDownTable(data *models.Table) string {
	t := drillDownWriter(data)
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

func GenerateDrillDownHTML(data *models.Table) string {
	t := drillDownWriter(data)
	t.Style().HTML = table.HTMLOptions{
		CSSClass:    "drilldown",
		EmptyColumn: "&nbsp;",
		EscapeText:  true,
		Newline:     "<br/>",
	}
	return t.RenderHTML()
}

func GenerateDrillDownCSV(data *models.Table) string {
	return drillDownWriter(data).RenderCSV()
}

// GenerateReport is the plain text rendition of a dashboard.
func GenerateReport(d *models.Dashboard) string {
	buf := &strings.Builder{}
	if d.Error != "" {
		buf.WriteString(d.Error + "\n")
		return buf.String()
	}

	fmt.Fprintf(buf, "Table: %s\n", d.Table)
	fmt.Fprintf(buf, "Number of Records: %d\n", d.TotalRecords)
	for _, h := range d.Headers {
		fmt.Fprintf(buf, "%s: %d\n", h.Label, h.Count)
		if len(h.Values) > 0 {
			buf.WriteString("  " + strings.Join(h.Values, ", ") + "\n")
		}
	}
	fmt.Fprintf(buf, "Months: %s\n", strings.Join(d.Selection.Months, ", "))
	fmt.Fprintf(buf, "Filtered Records: %d\n\n", d.FilteredRecords)

	buf.WriteString("Unique Records Count\n")
	buf.WriteString(GenerateUniqueCountsTable(d.UniqueCounts) + "\n\n")
	if d.HasSource {
		buf.WriteString("Records by Source\n")
		buf.WriteString(GenerateRankingTable("Source", d.BySource) + "\n\n")
	}
	if d.HasBank {
		buf.WriteString("Records by Bank\n")
		buf.WriteString(GenerateRankingTable("Bank", d.ByBank) + "\n\n")
		buf.WriteString("Scorecard\n")
		buf.WriteString(GenerateRankingTable("Bank", d.Scorecard) + "\n\n")
	}
	if d.DrillDown != nil {
		fmt.Fprintf(buf, "Showing data for %s: %s\n", d.Selection.Column, d.Selection.Value)
		buf.WriteString(GenerateDrillDownTable(d.DrillDown) + "\n")
	}
	return buf.String()
}
