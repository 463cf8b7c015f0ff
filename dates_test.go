package main

import (
	"testing"
	"time"

	"github.com/pivolan/registry_dashboard/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryParseDateTime(t *testing.T) {
	tests := []struct {
		input   interface{}
		want    time.Time
		wantErr bool
	}{
		{"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), false},
		{"2024-03-05 10:20:30", time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC), false},
		{"2024-03-05T10:20:30Z", time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC), false},
		{"03/05/2024", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), false},
		{" 2024/03/05 ", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), false},
		{int64(1709596800), time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), false},
		{"1709596800", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), false},
		{time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), false},
		{"15/03/2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), false},
		{"15-03-2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), false},
		{"2024-03-05 10:20:30+05:30", time.Date(2024, 3, 5, 4, 50, 30, 0, time.UTC), false},
		{"5 March 2024", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), false},
		{"Mar 5, 2024", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), false},
		{"20240305", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), false},
		{"March 5, 2024 5:57:51 PM", time.Date(2024, 3, 5, 17, 57, 51, 0, time.UTC), false},
		{"not a date", time.Time{}, true},
		{"", time.Time{}, true},
		{"42", time.Time{}, true},
		{nil, time.Time{}, true},
		{time.Time{}, time.Time{}, true},
	}
	for _, tt := range tests {
		got, err := tryParseDateTime(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %v", tt.input)
			continue
		}
		require.NoError(t, err, "input %v", tt.input)
		assert.True(t, tt.want.Equal(got), "input %v: got %v", tt.input, got)
	}
}

func TestWithMonthYearDropsUnparsable(t *testing.T) {
	table := registryTable()
	table.Rows = table.Rows[:10]
	table.Rows[3][models.ColumnDate] = "garbage"
	table.Rows[7][models.ColumnDate] = nil

	result := withMonthYear(table)

	assert.Equal(t, 8, result.Len())
	assert.Equal(t, append(append([]string{}, registryColumns...), models.ColumnMonthYear), result.Columns)
	for _, row := range result.Rows {
		assert.IsType(t, time.Time{}, row[models.ColumnDate])
		assert.Regexp(t, `^2024-0[12]$`, row[models.ColumnMonthYear])
	}
	assert.Equal(t, "garbage", table.Rows[3][models.ColumnDate], "source rows are not modified")
	assert.NotContains(t, table.Columns, models.ColumnMonthYear)
}

func TestWithMonthYearDayFirst(t *testing.T) {
	table := &models.Table{
		Columns: []string{models.ColumnDate},
		Rows: []models.Row{
			{models.ColumnDate: "15/03/2024"},
			{models.ColumnDate: "16-03-2024"},
			{models.ColumnDate: "2024-04-01 23:30:00+05:30"},
		},
	}

	result := withMonthYear(table)

	require.Equal(t, 3, result.Len())
	assert.Equal(t, []string{"2024-03", "2024-04"}, monthOptions(result))
}

func TestWithMonthYearWithoutDateColumn(t *testing.T) {
	table := &models.Table{Columns: []string{models.ColumnBank}, Rows: []models.Row{{models.ColumnBank: "A"}}}

	assert.Same(t, table, withMonthYear(table))
	assert.Empty(t, monthOptions(table))
}

func TestMonthOptionsSorted(t *testing.T) {
	table := registryTable()
	table.Rows[0][models.ColumnDate] = "2023-11-30"

	assert.Equal(t, []string{"2023-11", "2024-01", "2024-02"}, monthOptions(withMonthYear(table)))
}
