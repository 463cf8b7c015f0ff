package main

import (
	"github.com/pivolan/go_utils"
	"github.com/pivolan/registry_dashboard/domain/models"
)

// drillDownColumns are the columns offered for the drill-down table, in menu order.
var drillDownColumns = []string{
	"account_holder_name",
	"email_address_of_suspect",
	"phone_number_of_suspect",
	"ifsc_code",
	"account_number",
	"cin_number",
}

func isDrillDownColumn(name string) bool {
	return go_utils.InArray(name, drillDownColumns)
}

// isAllSelected reports whether a month selection imposes no constraint:
// the sentinel is present or nothing was chosen at all.
func isAllSelected(values []string) bool {
	return len(values) == 0 || go_utils.InArray(models.SelectAll, values)
}

// applyFilters keeps the rows matching every active selection: Month_Year
// membership (OR across the chosen months) and equality on one allow-listed
// column. Dimensions whose column is missing are skipped.
func applyFilters(table *models.Table, sel models.Selection) *models.Table {
	if !isAllSelected(sel.Months) && table.HasColumn(models.ColumnMonthYear) {
		table = filterIn(table, models.ColumnMonthYear, sel.Months)
	}
	if sel.Value != "" && sel.Value != models.SelectAll && isDrillDownColumn(sel.Column) {
		table = filterEquals(table, sel.Column, sel.Value)
	}
	return table
}

func filterIn(table *models.Table, column string, values []string) *models.Table {
	if !table.HasColumn(column) {
		return table
	}
	allowed := make(map[string]bool, len(values))
	for _, v := range values {
		allowed[v] = true
	}
	rows := make([]models.Row, 0, len(table.Rows))
	for _, row := range table.Rows {
		v := row[column]
		if v != nil && allowed[models.FormatValue(v)] {
			rows = append(rows, row)
		}
	}
	return table.WithRows(rows)
}

// filterEquals keeps rows whose column equals value. NULL never matches.
func filterEquals(table *models.Table, column string, value string) *models.Table {
	return filterIn(table, column, []string{value})
}
