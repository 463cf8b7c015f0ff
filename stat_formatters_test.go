package main

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/pivolan/registry_dashboard/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRankingTable(t *testing.T) {
	result := GenerateRankingTable("Bank", rankValues(registryTable(), models.ColumnBank, 0))

	assert.Contains(t, result, "BANK")
	assert.Contains(t, result, "58.3")
	assert.Less(t, strings.Index(result, " A "), strings.Index(result, " B "))
	assert.Less(t, strings.Index(result, " B "), strings.Index(result, " C "))
}

func TestGenerateUniqueCountsTable(t *testing.T) {
	result := GenerateUniqueCountsTable([]models.ColumnUnique{{Column: "bank_name", Unique: 3}})

	assert.Contains(t, result, "bank_name")
	assert.Contains(t, result, "3")
}

func TestGenerateDrillDownCSV(t *testing.T) {
	table := drillDown(registryTable(), "account_holder_name", "Asha")

	records, err := csv.NewReader(strings.NewReader(GenerateDrillDownCSV(table))).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 4)
	assert.Equal(t, registryColumns, records[0])
	assert.Equal(t, []string{"3", "2024-01-03", "B", "bank", "Asha", "ACC002"}, records[1])
}

func TestGenerateDrillDownHTMLEscapes(t *testing.T) {
	table := &models.Table{
		Columns: []string{"account_holder_name"},
		Rows:    []models.Row{{"account_holder_name": "<script>alert(1)</script>"}},
	}

	result := GenerateDrillDownHTML(table)

	assert.Contains(t, result, `class="drilldown"`)
	assert.NotContains(t, result, "<script>")
	assert.Contains(t, result, "&lt;script&gt;")
}

func TestGenerateReport(t *testing.T) {
	d := buildDashboard(registryTable(), models.Selection{Months: []string{"2024-02"}})
	d.Table = testTable

	result := GenerateReport(d)

	assert.Contains(t, result, "Table: "+testTable)
	assert.Contains(t, result, "Number of Records: 12")
	assert.Contains(t, result, "Unique Banks: 3")
	assert.Contains(t, result, "Months: 2024-02")
	assert.Contains(t, result, "Filtered Records: 6")
	assert.Contains(t, result, "Records by Source")
	assert.Contains(t, result, "Scorecard")
	assert.Contains(t, result, "Showing data for account_holder_name: Ravi")
}

func TestGenerateReportError(t *testing.T) {
	d := &models.Dashboard{Error: "Error loading database: open sqlite data source: no such file"}

	assert.Equal(t, d.Error+"\n", GenerateReport(d))
}
