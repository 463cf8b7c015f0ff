package main

import (
	"sort"

	"github.com/pivolan/go_utils"
	"github.com/pivolan/registry_dashboard/domain/models"
)

const (
	topValuesLimit     = 10
	scorecardCollapsed = 2
	scorecardExpanded  = 10
)

var excludedUniqueColumns = []string{models.ColumnDate, models.ColumnMonthYear}

func excludeColumn(name string) bool {
	return go_utils.InArray(name, excludedUniqueColumns)
}

// uniqueCount is the number of distinct non-NULL values of column.
func uniqueCount(table *models.Table, column string) int64 {
	seen := map[string]struct{}{}
	for _, row := range table.Rows {
		v := row[column]
		if v == nil {
			continue
		}
		seen[models.DistinctKey(v)] = struct{}{}
	}
	return int64(len(seen))
}

// uniqueCounts returns a distinct count for every column except Date and
// Month_Year, in source column order.
func uniqueCounts(table *models.Table) []models.ColumnUnique {
	result := []models.ColumnUnique{}
	for _, column := range table.Columns {
		if excludeColumn(column) {
			continue
		}
		result = append(result, models.ColumnUnique{Column: column, Unique: uniqueCount(table, column)})
	}
	return result
}

// uniqueValues lists the distinct non-NULL values of column in first-seen order.
func uniqueValues(table *models.Table, column string) []string {
	seen := map[string]bool{}
	values := []string{}
	for _, row := range table.Rows {
		v := row[column]
		if v == nil {
			continue
		}
		key := models.DistinctKey(v)
		if !seen[key] {
			seen[key] = true
			values = append(values, models.FormatValue(v))
		}
	}
	return values
}

// rankValues groups rows by the value of column and orders the groups by row
// count, largest first. Equal counts keep the order in which the values first
// appear in the table. limit <= 0 keeps every group. NULLs are not counted.
func rankValues(table *models.Table, column string, limit int) []models.ValueCount {
	counts := map[string]int64{}
	labels := map[string]string{}
	order := []string{}
	var total int64
	for _, row := range table.Rows {
		v := row[column]
		if v == nil {
			continue
		}
		key := models.DistinctKey(v)
		if _, ok := counts[key]; !ok {
			order = append(order, key)
			labels[key] = models.FormatValue(v)
		}
		counts[key]++
		total++
	}

	ranking := make([]models.ValueCount, 0, len(order))
	for _, key := range order {
		ranking = append(ranking, models.ValueCount{
			Value:   labels[key],
			Count:   counts[key],
			Percent: float64(counts[key]) * 100 / float64(total),
		})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Count > ranking[j].Count
	})
	if limit > 0 && len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking
}

// drillDown returns the rows of table where column equals one of the
// column's top values. A value outside the top ten yields no rows.
func drillDown(table *models.Table, column string, value string) *models.Table {
	if !table.HasColumn(column) {
		return nil
	}
	for _, top := range rankValues(table, column, topValuesLimit) {
		if top.Value == value {
			return filterEquals(table, column, value)
		}
	}
	return table.WithRows([]models.Row{})
}

func scorecard(ranking []models.ValueCount, showMore bool) []models.ValueCount {
	limit := scorecardCollapsed
	if showMore {
		limit = scorecardExpanded
	}
	if len(ranking) > limit {
		return ranking[:limit]
	}
	return ranking
}

// chunkUniqueCounts lays the counts out in rows of size perRow.
func chunkUniqueCounts(counts []models.ColumnUnique, perRow int) [][]models.ColumnUnique {
	grid := [][]models.ColumnUnique{}
	for i := 0; i < len(counts); i += perRow {
		end := i + perRow
		if end > len(counts) {
			end = len(counts)
		}
		grid = append(grid, counts[i:end])
	}
	return grid
}
