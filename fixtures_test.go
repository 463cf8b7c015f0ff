package main

import (
	"fmt"

	"github.com/pivolan/registry_dashboard/domain/models"
)

var registryColumns = []string{
	"id", models.ColumnDate, models.ColumnBank, models.ColumnSource,
	"account_holder_name", "account_number",
}

// registryTable builds 12 rows: bank A x7, B x3, C x2. Rows 0-5 are dated
// January 2024, rows 6-11 February 2024.
func registryTable() *models.Table {
	banks := []string{"A", "A", "B", "A", "C", "A", "B", "A", "A", "C", "B", "A"}
	sources := []string{"portal", "portal", "bank", "portal", "bank", "police", "portal", "bank", "portal", "portal", "bank", "portal"}
	holders := []string{"Ravi", "Ravi", "Asha", "Ravi", "Asha", "Kiran", "Ravi", "Asha", "Kiran", "Mohan", "Ravi", "Ravi"}

	table := &models.Table{Columns: registryColumns}
	for i := range banks {
		month := "01"
		if i >= 6 {
			month = "02"
		}
		table.Rows = append(table.Rows, models.Row{
			"id":                  int64(i + 1),
			models.ColumnDate:     fmt.Sprintf("2024-%s-%02d", month, i+1),
			models.ColumnBank:     banks[i],
			models.ColumnSource:   sources[i],
			"account_holder_name": holders[i],
			"account_number":      fmt.Sprintf("ACC%03d", i%4),
		})
	}
	return table
}

func column(table *models.Table, name string) []string {
	values := make([]string, 0, table.Len())
	for _, row := range table.Rows {
		values = append(values, models.FormatValue(row[name]))
	}
	return values
}
