package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

const (
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
	StoreDriverRedis    = "redis"
	StoreDriverNone     = "none"
)

type Config struct {
	App    AppConfig
	Log    LogConfig
	Store  StoreConfig
	SQLite SQLiteConfig
	DB     DBConfig
	Redis  RedisConfig
}

type AppConfig struct {
	Port       string
	Env        string
	PageSize   int
	CORSOrigin string
}

type LogConfig struct {
	Level string
}

type StoreConfig struct {
	Driver string
}

type SQLiteConfig struct {
	Path string
}

type DBConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxIdleConns int
	MaxOpenConns int
}

type RedisConfig struct {
	Host      string
	Port      string
	Password  string
	DB        int
	KeyPrefix string
}

// LoadConfig reads .env when present, then the environment.
func LoadConfig() (*Config, error) {
	return load(".env")
}

func load(file string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(file)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PAGE_SIZE", 10)
	v.SetDefault("CORS_ALLOWED_ORIGIN", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", StoreDriverSQLite)
	v.SetDefault("SQLITE_PATH", "data/obstetrics.db")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "obstetrics")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_KEY_PREFIX", "obstetrics-db")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	driver := strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER")))
	switch driver {
	case StoreDriverSQLite, StoreDriverPostgres, StoreDriverRedis, StoreDriverNone:
	default:
		return nil, errors.New("unsupported STORE_DRIVER: " + driver)
	}

	pageSize := v.GetInt("PAGE_SIZE")
	if pageSize < 1 {
		pageSize = 10
	}

	config := &Config{
		App: AppConfig{
			Port:       v.GetString("APP_PORT"),
			Env:        v.GetString("APP_ENV"),
			PageSize:   pageSize,
			CORSOrigin: v.GetString("CORS_ALLOWED_ORIGIN"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Store: StoreConfig{
			Driver: driver,
		},
		SQLite: SQLiteConfig{
			Path: v.GetString("SQLITE_PATH"),
		},
		DB: DBConfig{
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetString("DB_PORT"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			Name:         v.GetString("DB_NAME"),
			SSLMode:      v.GetString("DB_SSLMODE"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		},
		Redis: RedisConfig{
			Host:      v.GetString("REDIS_HOST"),
			Port:      v.GetString("REDIS_PORT"),
			Password:  v.GetString("REDIS_PASSWORD"),
			DB:        v.GetInt("REDIS_DB"),
			KeyPrefix: v.GetString("REDIS_KEY_PREFIX"),
		},
	}

	return config, nil
}
