package main

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/pivolan/registry_dashboard/domain/models"
)

const monthYearLayout = "2006-01"

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"20060102",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"02/01/2006 15:04:05",
	"02/01/2006",
	"02-01-2006 15:04:05",
	"02-01-2006",
	"02.01.2006",
	"2 January 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-01",
}

var errUnparsableDate = errors.New("unparsable date")

// tryParseDateTime accepts native timestamps, the common textual layouts
// (month first when ambiguous, day first otherwise) and free-form dates.
// Digit-only strings of 9 or more digits are unix seconds.
func tryParseDateTime(v interface{}) (time.Time, error) {
	switch val := v.(type) {
	case time.Time:
		if val.IsZero() {
			return time.Time{}, errUnparsableDate
		}
		return val, nil
	case int64:
		return time.Unix(val, 0).UTC(), nil
	case float64:
		return time.Unix(int64(val), 0).UTC(), nil
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return time.Time{}, errUnparsableDate
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			if len(s) < 9 {
				return time.Time{}, errUnparsableDate
			}
			return time.Unix(n, 0).UTC(), nil
		}
		if t, err := dateparse.ParseIn(s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errUnparsableDate
}

// withMonthYear parses the Date column, drops rows that fail and appends the
// Month_Year bucket. Tables without a Date column come back unchanged.
func withMonthYear(table *models.Table) *models.Table {
	if !table.HasColumn(models.ColumnDate) {
		return table
	}

	columns := table.Columns
	if !table.HasColumn(models.ColumnMonthYear) {
		columns = append(append([]string{}, table.Columns...), models.ColumnMonthYear)
	}
	result := &models.Table{Columns: columns, Rows: make([]models.Row, 0, len(table.Rows))}
	for _, row := range table.Rows {
		date, err := tryParseDateTime(row[models.ColumnDate])
		if err != nil {
			continue
		}
		parsed := make(models.Row, len(row)+1)
		for k, v := range row {
			parsed[k] = v
		}
		parsed[models.ColumnDate] = date
		parsed[models.ColumnMonthYear] = date.Format(monthYearLayout)
		result.Rows = append(result.Rows, parsed)
	}
	return result
}

// monthOptions returns the sorted distinct Month_Year buckets.
func monthOptions(table *models.Table) []string {
	if !table.HasColumn(models.ColumnMonthYear) {
		return nil
	}
	seen := map[string]bool{}
	months := []string{}
	for _, row := range table.Rows {
		m, ok := row[models.ColumnMonthYear].(string)
		if !ok || seen[m] {
			continue
		}
		seen[m] = true
		months = append(months, m)
	}
	sort.Strings(months)
	return months
}
