package config

import (
	"os"
	"strconv"
)

const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	Port         string
	Backend      string // topic storage: file | sqlite | postgres
	TopicsDir    string // file backend
	SQLitePath   string // sqlite (topics and users share one database file)
	MigrationDir string

	PBKDF2Iterations int

	DB struct { // postgres
		Host     string
		Port     string
		User     string
		Password string
		Name     string
	}
}

func Load() *Config {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Backend:          getEnv("TOPICS_BACKEND", BackendSQLite),
		TopicsDir:        getEnv("TOPICS_DIR", "topics"),
		SQLitePath:       getEnv("TOPICS_DB", "data/board.db"),
		MigrationDir:     getEnv("MIGRATION_DIR", "migration"),
		PBKDF2Iterations: getEnvInt("PBKDF2_ITERATIONS", 0),
	}
	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "")
	cfg.DB.Name = getEnv("DB_NAME", "topic_board")
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}
