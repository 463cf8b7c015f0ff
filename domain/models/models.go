package models

import (
	"fmt"
	"strconv"
	"time"
)

const (
	ColumnDate      = "Date"
	ColumnMonthYear = "Month_Year"
	ColumnBank      = "bank_name"
	ColumnSource    = "source"

	// SelectAll is the selection sentinel meaning "no filter on this dimension".
	SelectAll = "All"
)

// Row maps column names to scalar values: string, int64, float64, time.Time or nil.
type Row map[string]interface{}

// Table is the record set of one cycle. Columns keeps the source column order.
type Table struct {
	Columns []string
	Rows    []Row
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// WithRows returns a table sharing the column set of t.
func (t *Table) WithRows(rows []Row) *Table {
	return &Table{Columns: t.Columns, Rows: rows}
}

type ValueCount struct {
	Value   string
	Count   int64
	Percent float64
}

type ColumnUnique struct {
	Column string
	Unique int64
}

// Selection is the UI state handed to the core each cycle.
type Selection struct {
	Months   []string
	Column   string
	Value    string
	ShowMore bool
	Reveal   string
}

// FormatValue renders a cell the way it is compared and displayed.
// NULL renders as an empty string; callers check for nil first when NULL matters.
func FormatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format("2006-01-02")
		}
		return val.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(val)
	}
}

// DistinctKey identifies a cell for distinct counts and rankings. Text and
// numbers with the same rendering stay apart; int64(1) and float64(1) are one
// value.
func DistinctKey(v interface{}) string {
	kind := "s"
	switch v.(type) {
	case int64, float64:
		kind = "n"
	case bool:
		kind = "b"
	case time.Time:
		kind = "t"
	}
	return kind + ":" + FormatValue(v)
}

// HeaderMetric is one of the top-of-page counters. Values is filled only when
// the user asked to reveal the column's unique values.
type HeaderMetric struct {
	Label  string
	Column string
	Count  int64
	Values []string
}

// Dashboard is everything one cycle renders.
type Dashboard struct {
	CycleID         string
	Table           string
	TotalRecords    int
	FilteredRecords int
	Headers         []HeaderMetric
	MonthOptions    []string
	Selection       Selection

	UniqueCounts []ColumnUnique
	UniqueGrid   [][]ColumnUnique

	HasSource bool
	HasBank   bool
	BySource  []ValueCount
	ByBank    []ValueCount
	Scorecard []ValueCount

	ColumnOptions []string
	TopValues     []ValueCount
	DrillDown     *Table

	Error string
}
