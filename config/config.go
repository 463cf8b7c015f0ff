package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DriverSqlite = "sqlite"
	DriverMysql  = "mysql"
)

type Config struct {
	DbDriver   string `validate:"required,oneof=sqlite mysql"`
	DbDsn      string `validate:"required"`
	DbTable    string `validate:"required"`
	HttpAddr   string `validate:"required"`
	LogLevel   string `validate:"oneof=debug info warn error"`
	SqlLog     bool
	ArchiveDir string
}

var (
	config *Config
	once   sync.Once
)

// GetConfig возвращает singleton экземпляр конфигурации
func GetConfig() *Config {
	once.Do(func() {
		cfg, err := Load()
		if err != nil {
			log.Fatal("Error loading config: ", err)
		}
		config = cfg
	})
	return config
}

// Load reads the given env files (".env" when none are given) on top of the
// process environment and validates the result. Missing files are ignored.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}

	sqlLog, _ := strconv.ParseBool(os.Getenv("SQL_LOG"))
	cfg := &Config{
		DbDriver:   getEnv("DB_DRIVER", DriverSqlite),
		DbDsn:      getEnv("DB_DSN", "registry.db"),
		DbTable:    getEnv("DB_TABLE", "new_suspect_file2"),
		HttpAddr:   getEnv("HTTP_ADDR", ":8005"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		SqlLog:     sqlLog,
		ArchiveDir: getEnv("ARCHIVE_DIR", os.TempDir()),
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
