package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageFile  = "file"
	StorageMongo = "mongo"
)

// Config holds everything the API needs at startup.
type Config struct {
	Port    string
	GinMode string

	StorageDriver string
	DataDir       string
	MongoURI      string
	MongoDatabase string

	AllowedOrigins []string

	JWTSecret string
	TokenTTL  time.Duration

	DefaultRequestLocation string
	AutoTriage             bool
	SeedDemoData           bool

	LogLevel      string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3001")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("STORAGE_DRIVER", StorageFile)
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGODB_DATABASE", "safebridge")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("DEFAULT_REQUEST_LOCATION", "User reported location")
	v.SetDefault("AUTO_TRIAGE", false)
	v.SetDefault("SEED_DEMO_DATA", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("LOG_MAX_SIZE_MB", 10)
	v.SetDefault("LOG_MAX_BACKUPS", 3)
	v.SetDefault("LOG_MAX_AGE_DAYS", 28)
}

// LoadConfig reads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	driver := strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER")))
	if driver != StorageFile && driver != StorageMongo {
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q (want %q or %q)", driver, StorageFile, StorageMongo)
	}

	switch mode := v.GetString("GIN_MODE"); mode {
	case "debug", "release", "test":
	default:
		return nil, fmt.Errorf("unsupported GIN_MODE %q", mode)
	}

	ttl, err := time.ParseDuration(v.GetString("TOKEN_TTL"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	cfg := &Config{
		Port:                   v.GetString("PORT"),
		GinMode:                v.GetString("GIN_MODE"),
		StorageDriver:          driver,
		DataDir:                v.GetString("DATA_DIR"),
		MongoURI:               v.GetString("MONGODB_URI"),
		MongoDatabase:          v.GetString("MONGODB_DATABASE"),
		AllowedOrigins:         splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		JWTSecret:              v.GetString("JWT_SECRET"),
		TokenTTL:               ttl,
		DefaultRequestLocation: v.GetString("DEFAULT_REQUEST_LOCATION"),
		AutoTriage:             v.GetBool("AUTO_TRIAGE"),
		SeedDemoData:           v.GetBool("SEED_DEMO_DATA"),
		LogLevel:               v.GetString("LOG_LEVEL"),
		LogFile:                v.GetString("LOG_FILE"),
		LogMaxSizeMB:           v.GetInt("LOG_MAX_SIZE_MB"),
		LogMaxBackups:          v.GetInt("LOG_MAX_BACKUPS"),
		LogMaxAgeDays:          v.GetInt("LOG_MAX_AGE_DAYS"),
	}
	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
