package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"github.com/yukikurage/taskflow/internal/constants"
)

const (
	StorageBackendDB   = "db"
	StorageBackendFile = "file"

	SessionStoreCookie = "cookie"
	SessionStoreRedis  = "redis"
)

type Config struct {
	HTTPAddr       string        `mapstructure:"HTTP_ADDR"`
	GinMode        string        `mapstructure:"GIN_MODE"`
	StorageBackend string        `mapstructure:"STORAGE_BACKEND"`
	DataDir        string        `mapstructure:"DATA_DIR"`
	StorageKey     string        `mapstructure:"STORAGE_KEY"`
	DBDriver       string        `mapstructure:"DB_DRIVER"`
	DBPath         string        `mapstructure:"DB_PATH"`
	DBHost         string        `mapstructure:"DB_HOST"`
	DBPort         string        `mapstructure:"DB_PORT"`
	DBUser         string        `mapstructure:"DB_USER"`
	DBPassword     string        `mapstructure:"DB_PASSWORD"`
	DBName         string        `mapstructure:"DB_NAME"`
	SessionSecret  string        `mapstructure:"SESSION_SECRET"`
	SessionStore   string        `mapstructure:"SESSION_STORE"`
	RedisHost      string        `mapstructure:"REDIS_HOST"`
	RedisPort      string        `mapstructure:"REDIS_PORT"`
	OpenAIAPIKey   string        `mapstructure:"OPENAI_API_KEY"`
	OpenAIBaseURL  string        `mapstructure:"OPENAI_BASE_URL"`
	TickInterval   time.Duration `mapstructure:"TICK_INTERVAL"`
}

// Load reads configuration from the environment, optionally layered over a
// YAML file named by TASKFLOW_CONFIG. Environment variables always win.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path := os.Getenv("TASKFLOW_CONFIG"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, constants.DefaultDBFile)
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = constants.DefaultTickInterval
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("STORAGE_BACKEND", StorageBackendDB)
	v.SetDefault("DATA_DIR", defaultDataDir())
	v.SetDefault("STORAGE_KEY", constants.DefaultStorageKey)
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_PATH", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_USER", "taskuser")
	v.SetDefault("DB_PASSWORD", "taskpassword")
	v.SetDefault("DB_NAME", "taskflow")
	v.SetDefault("SESSION_SECRET", constants.DefaultSessionSecret)
	v.SetDefault("SESSION_STORE", SessionStoreCookie)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_BASE_URL", "")
	v.SetDefault("TICK_INTERVAL", constants.DefaultTickInterval)
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "taskflow")
}
