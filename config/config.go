package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Matching MatchingConfig
}

// ServerConfig holds the optional results API configuration
type ServerConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	Port           string        `mapstructure:"port"`
	Environment    string        `mapstructure:"environment"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
}

// DataConfig holds input/output locations. Each input comes from exactly
// one source: a local CSV file or a published spreadsheet URL.
type DataConfig struct {
	CatalogCSV        string `mapstructure:"catalog_csv"`
	NutritionCSV      string `mapstructure:"nutrition_csv"`
	CatalogSheetURL   string `mapstructure:"catalog_sheet_url"`
	NutritionSheetURL string `mapstructure:"nutrition_sheet_url"`
	OutputCSV         string `mapstructure:"output_csv"`
	SQLitePath        string `mapstructure:"sqlite_path"`
}

// MatchingConfig holds the resolution tuning knobs
type MatchingConfig struct {
	MinScore           int      `mapstructure:"min_score"`
	KeywordBonus       int      `mapstructure:"keyword_bonus"`
	BoostKeywords      []string `mapstructure:"boost_keywords"`
	EnableDebugLogging bool     `mapstructure:"enable_debug_logging"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/bevmap/")

	// Environment variable settings: BEVMAP_MATCHING_MIN_SCORE overrides
	// matching.min_score
	v.SetEnvPrefix("BEVMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.enabled", false)
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})
	v.SetDefault("server.cache_ttl", "5m")

	// Data defaults mirror the layout the upstream pipeline produces
	v.SetDefault("data.catalog_csv", "processed_data/nutrition_to_map.csv")
	v.SetDefault("data.nutrition_csv", "nutrition_data/nutrition.csv")
	v.SetDefault("data.catalog_sheet_url", "")
	v.SetDefault("data.nutrition_sheet_url", "")
	v.SetDefault("data.output_csv", "processed_data/nutrition_mapped.csv")
	v.SetDefault("data.sqlite_path", "")

	// Matching defaults
	v.SetDefault("matching.min_score", 75)
	v.SetDefault("matching.keyword_bonus", 10)
	v.SetDefault("matching.boost_keywords", []string{"jasmine", "peach", "oolong", "ceylon", "black"})
	v.SetDefault("matching.enable_debug_logging", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Data.CatalogCSV == "" && config.Data.CatalogSheetURL == "" {
		return fmt.Errorf("a catalog source is required (set data.catalog_csv or data.catalog_sheet_url)")
	}
	if config.Data.NutritionCSV == "" && config.Data.NutritionSheetURL == "" {
		return fmt.Errorf("a nutrition source is required (set data.nutrition_csv or data.nutrition_sheet_url)")
	}
	if config.Data.OutputCSV == "" {
		return fmt.Errorf("data.output_csv is required")
	}

	if config.Matching.MinScore < 1 {
		return fmt.Errorf("matching.min_score must be >= 1, got: %d", config.Matching.MinScore)
	}
	if config.Matching.KeywordBonus < 0 {
		return fmt.Errorf("matching.keyword_bonus must be >= 0, got: %d", config.Matching.KeywordBonus)
	}

	if config.Server.Enabled && config.Data.SQLitePath == "" {
		return fmt.Errorf("data.sqlite_path is required when the results server is enabled")
	}

	return nil
}
