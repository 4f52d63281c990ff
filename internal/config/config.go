package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DB      DBConfig
	Server  ServerConfig
	Dataset DatasetConfig
	Seeder  SeederConfig
}

// DBType represents database type
type DBType string

const (
	DBTypePostgreSQL DBType = "postgres"
	DBTypeMemory     DBType = "memory"
)

// DatasetSource tells the app where to load the dataset from
type DatasetSource string

const (
	// DatasetEmbedded uses the copy compiled into the binary
	DatasetEmbedded DatasetSource = "embedded"
	// DatasetDir reads countries.json, states.json and cities.json from Dataset.Dir
	DatasetDir DatasetSource = "dir"
	// DatasetDatabase reads the tables filled by cmd/seeder
	DatasetDatabase DatasetSource = "database"
)

// DBConfig holds database configuration
type DBConfig struct {
	Type     DBType
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DatasetConfig holds settings for loading and matching the dataset
type DatasetConfig struct {
	Source      DatasetSource
	Dir         string
	Watch       bool
	FoldAccents bool
}

// SeederConfig holds settings for data import
type SeederConfig struct {
	BatchSize int
	Reset     bool
	Countries []string
}

// DSN returns the database connection string
func (c DBConfig) DSN() string {
	if c.Type == DBTypeMemory {
		// SQLite in-memory database
		if c.Name != "" && c.Name != "restcountries" {
			return fmt.Sprintf("file:%s?mode=memory&cache=shared", c.Name)
		}
		return "file::memory:?cache=shared"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// IsMemory returns true if using in-memory database
func (c DBConfig) IsMemory() bool {
	return c.Type == DBTypeMemory
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbType := DBType(getEnv("DB_TYPE", "memory"))
	if dbType != DBTypePostgreSQL && dbType != DBTypeMemory {
		dbType = DBTypeMemory
	}

	source := DatasetSource(getEnv("DATASET_SOURCE", string(DatasetEmbedded)))
	switch source {
	case DatasetEmbedded, DatasetDir, DatasetDatabase:
	default:
		return nil, fmt.Errorf("unknown DATASET_SOURCE %q", source)
	}

	config := &Config{
		DB: DBConfig{
			Type:     dbType,
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "restcountries"),
			Password: getEnv("DB_PASSWORD", "restcountries_password"),
			Name:     getEnv("DB_NAME", "restcountries"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Server: ServerConfig{
			Port: getEnv("APP_PORT", "8080"),
		},
		Dataset: DatasetConfig{
			Source:      source,
			Dir:         getEnv("DATASET_DIR", "data"),
			Watch:       getEnvAsBool("DATASET_WATCH", false),
			FoldAccents: getEnvAsBool("MATCH_FOLD_ACCENTS", false),
		},
		Seeder: SeederConfig{
			BatchSize: getEnvAsInt("SEEDER_BATCH_SIZE", 500),
			Reset:     getEnvAsBool("SEEDER_RESET", true),
			Countries: getEnvAsSlice("SEEDER_COUNTRIES"),
		},
	}

	if config.Dataset.Watch && source != DatasetDir {
		return nil, fmt.Errorf("DATASET_WATCH requires DATASET_SOURCE=%s", DatasetDir)
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	var result []string
	for _, part := range parts {
		trimmed := strings.ToUpper(strings.TrimSpace(part))
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
