package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Log        LogConfig
	View       ViewConfig
	Navigation NavigationConfig
	Session    SessionConfig
	Redis      RedisConfig
	CORS       CORSConfig
}

type AppConfig struct {
	Name            string
	Version         string
	Host            string
	Port            string
	Env             string
	ShutdownTimeout time.Duration
}

type LogConfig struct {
	Level string
}

type ViewConfig struct {
	PatientLoadDelay time.Duration
	SessionTTL       time.Duration
}

type NavigationConfig struct {
	GeneratorPath string
	SourceURL     string
	Timeout       time.Duration
}

// Session store kinds
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type SessionConfig struct {
	Store      string
	Secret     string
	CookieName string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

const (
	defaultPatientLoadDelay = time.Second
	defaultSessionTTL       = 24 * time.Hour
	defaultNavTimeout       = 10 * time.Second
	defaultShutdownTimeout  = 10 * time.Second
)

func setDefaults() {
	viper.SetDefault("APP_NAME", "MediForge")
	viper.SetDefault("APP_VERSION", "1.0.0")
	viper.SetDefault("APP_HOST", "0.0.0.0")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("NAV_GENERATOR_PATH", "/generator")
	viper.SetDefault("NAV_SOURCE_URL", "https://github.com/TrueV1sion/mediforge")
	viper.SetDefault("SESSION_STORE", SessionStoreMemory)
	viper.SetDefault("SESSION_SECRET", "mediforge-dev-secret")
	viper.SetDefault("SESSION_COOKIE", "mediforge_session")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001,https://mediforge.ai")
}

// LoadConfig reads .env when present and lets the process environment override it.
func LoadConfig() (*Config, error) {
	setDefaults()
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	config := &Config{
		App: AppConfig{
			Name:            viper.GetString("APP_NAME"),
			Version:         viper.GetString("APP_VERSION"),
			Host:            viper.GetString("APP_HOST"),
			Port:            viper.GetString("APP_PORT"),
			Env:             viper.GetString("APP_ENV"),
			ShutdownTimeout: durationOr("APP_SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		View: ViewConfig{
			PatientLoadDelay: durationOr("VIEW_PATIENT_LOAD_DELAY", defaultPatientLoadDelay),
			SessionTTL:       durationOr("VIEW_SESSION_TTL", defaultSessionTTL),
		},
		Navigation: NavigationConfig{
			GeneratorPath: viper.GetString("NAV_GENERATOR_PATH"),
			SourceURL:     viper.GetString("NAV_SOURCE_URL"),
			Timeout:       durationOr("NAV_TIMEOUT", defaultNavTimeout),
		},
		Session: SessionConfig{
			Store:      strings.ToLower(viper.GetString("SESSION_STORE")),
			Secret:     viper.GetString("SESSION_SECRET"),
			CookieName: viper.GetString("SESSION_COOKIE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}

	return config, nil
}

// IsProduction reports whether the app runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func durationOr(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(viper.GetString(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
