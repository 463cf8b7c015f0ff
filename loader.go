package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/pivolan/registry_dashboard/config"
	"github.com/pivolan/registry_dashboard/domain/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DataSourceError is the only error a cycle surfaces to the user: the data
// file could not be opened, queried or scanned.
type DataSourceError struct {
	Op  string
	Err error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

type dataSource struct {
	db      *gorm.DB
	cleanup func()
}

func (s *dataSource) Close() error {
	defer s.cleanup()
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func openDataSource(cfg *config.Config) (*dataSource, error) {
	logMode := logger.Silent
	if cfg.SqlLog {
		logMode = logger.Info
	}
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logMode)}

	if cfg.DbDriver == config.DriverMysql {
		db, err := gorm.Open(mysql.Open(cfg.DbDsn), gormCfg)
		if err != nil {
			return nil, err
		}
		return &dataSource{db: db, cleanup: noCleanup}, nil
	}

	// sqlite would silently create an empty database for a wrong path
	if _, err := os.Stat(cfg.DbDsn); err != nil {
		return nil, err
	}
	path, cleanup, err := unpackArchive(cfg.DbDsn, cfg.ArchiveDir)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", cfg.DbDsn, err)
	}
	db, err := gorm.Open(sqlite.Open(readOnlyDSN(path)), gormCfg)
	if err != nil {
		cleanup()
		return nil, err
	}
	return &dataSource{db: db, cleanup: cleanup}, nil
}

// readOnlyDSN builds a SQLite URI for path. The path is escaped so '#', '?'
// and '%' stay part of the file name instead of ending it.
func readOnlyDSN(path string) string {
	return (&url.URL{Scheme: "file", OmitHost: true, Path: filepath.ToSlash(path), RawQuery: "mode=ro"}).String()
}

// loadTable runs the one fixed query of a cycle: every row of the table, in
// source order, with the source column order preserved.
func loadTable(ctx context.Context, db *gorm.DB, tableName string) (*models.Table, error) {
	rows, err := db.WithContext(ctx).Table(tableName).Select("*").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	table := &models.Table{Columns: columns}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}
		row := make(models.Row, len(columns))
		for i, column := range columns {
			row[column] = normalizeValue(values[i])
		}
		table.Rows = append(table.Rows, row)
	}
	return table, rows.Err()
}

// loadRegistry opens the data source, loads the table and closes the
// connection again. Every failure comes back as a *DataSourceError.
func loadRegistry(ctx context.Context, cfg *config.Config) (*models.Table, error) {
	source, err := openDataSource(cfg)
	if err != nil {
		return nil, &DataSourceError{Op: "open " + cfg.DbDriver + " data source", Err: err}
	}
	defer source.Close()

	table, err := loadTable(ctx, source.db, cfg.DbTable)
	if err != nil {
		return nil, &DataSourceError{Op: "query table " + cfg.DbTable, Err: err}
	}
	return table, nil
}

func normalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case int:
		return int64(val)
	case int32:
		return int64(val)
	case uint64:
		return int64(val)
	case float32:
		return float64(val)
	}
	return v
}
