package main

import (
	"context"
	"time"

	"github.com/pivolan/registry_dashboard/config"
	"github.com/pivolan/registry_dashboard/domain/models"
	uuid "github.com/satori/go.uuid"
	"go.uber.org/zap"
)

const uniqueGridWidth = 5

var headerColumns = []struct {
	Label  string
	Column string
}{
	{"Unique Banks", models.ColumnBank},
	{"Unique Sources", models.ColumnSource},
}

// runCycle is one full load → filter → aggregate → present pass.
func runCycle(ctx context.Context, cfg *config.Config, log *zap.Logger, sel models.Selection) (*models.Dashboard, error) {
	cycleID := uuid.NewV4().String()
	log = log.With(zap.String("cycle", cycleID))

	start := time.Now()
	table, err := loadRegistry(ctx, cfg)
	if err != nil {
		log.Error("load failed", zap.Error(err))
		return &models.Dashboard{
			CycleID:       cycleID,
			Table:         cfg.DbTable,
			Selection:     sel,
			ColumnOptions: drillDownColumns,
			Error:         "Error loading database: " + err.Error(),
		}, err
	}

	dashboard := buildDashboard(table, sel)
	dashboard.CycleID = cycleID
	dashboard.Table = cfg.DbTable
	log.Info("cycle done",
		zap.Duration("took", time.Since(start)),
		zap.Int("rows", dashboard.TotalRecords),
		zap.Int("filtered", dashboard.FilteredRecords),
		zap.Strings("months", sel.Months),
		zap.String("column", dashboard.Selection.Column),
		zap.String("value", dashboard.Selection.Value),
	)
	return dashboard, nil
}

// buildDashboard derives every view from the loaded table and the selection.
// Header metrics describe the loaded table; everything else the month-filtered one.
func buildDashboard(loaded *models.Table, sel models.Selection) *models.Dashboard {
	d := &models.Dashboard{
		TotalRecords:  loaded.Len(),
		Selection:     sel,
		ColumnOptions: drillDownColumns,
	}
	d.Headers = headerMetrics(loaded, sel.Reveal)

	dated := withMonthYear(loaded)
	d.MonthOptions = monthOptions(dated)
	if isAllSelected(sel.Months) {
		d.Selection.Months = []string{models.SelectAll}
	}

	filtered := applyFilters(dated, models.Selection{Months: sel.Months})
	d.FilteredRecords = filtered.Len()
	d.UniqueCounts = uniqueCounts(filtered)
	d.UniqueGrid = chunkUniqueCounts(d.UniqueCounts, uniqueGridWidth)

	if filtered.HasColumn(models.ColumnSource) {
		d.HasSource = true
		d.BySource = rankValues(filtered, models.ColumnSource, 0)
	}
	if filtered.HasColumn(models.ColumnBank) {
		d.HasBank = true
		d.ByBank = rankValues(filtered, models.ColumnBank, 0)
		d.Scorecard = scorecard(d.ByBank, sel.ShowMore)
	}

	column := sel.Column
	if !isDrillDownColumn(column) {
		column = drillDownColumns[0]
	}
	d.Selection.Column = column
	if filtered.HasColumn(column) {
		d.TopValues = rankValues(filtered, column, topValuesLimit)
		value := sel.Value
		if !hasValue(d.TopValues, value) && len(d.TopValues) > 0 {
			value = d.TopValues[0].Value
		}
		d.Selection.Value = value
		d.DrillDown = drillDown(filtered, column, value)
	}
	return d
}

func headerMetrics(table *models.Table, reveal string) []models.HeaderMetric {
	metrics := []models.HeaderMetric{}
	for _, h := range headerColumns {
		if !table.HasColumn(h.Column) {
			continue
		}
		metric := models.HeaderMetric{Label: h.Label, Column: h.Column, Count: uniqueCount(table, h.Column)}
		if reveal == h.Column {
			metric.Values = uniqueValues(table, h.Column)
		}
		metrics = append(metrics, metric)
	}
	return metrics
}

func hasValue(ranking []models.ValueCount, value string) bool {
	for _, vc := range ranking {
		if vc.Value == value {
			return true
		}
	}
	return false
}
