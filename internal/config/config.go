// Package config loads engine configuration from file and environment.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Places     PlacesConfig     `yaml:"places" mapstructure:"places"`
	Discovery  DiscoveryConfig  `yaml:"discovery" mapstructure:"discovery"`
	Budget     BudgetConfig     `yaml:"budget" mapstructure:"budget"`
	Pricing    PricingConfig    `yaml:"pricing" mapstructure:"pricing"`
	Reputation ReputationConfig `yaml:"reputation" mapstructure:"reputation"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// PlacesConfig holds Places API credentials and client behavior.
type PlacesConfig struct {
	Key           string  `yaml:"key" mapstructure:"key"`
	BaseURL       string  `yaml:"base_url" mapstructure:"base_url"`
	RateLimit     float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	TimeoutSecs   int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RetryAttempts int     `yaml:"retry_attempts" mapstructure:"retry_attempts"`
	CacheTTLHours int     `yaml:"cache_ttl_hours" mapstructure:"cache_ttl_hours"`
}

// DiscoveryConfig configures the radius-expansion competitor search.
type DiscoveryConfig struct {
	RadiusLadderMeters []int `yaml:"radius_ladder_meters" mapstructure:"radius_ladder_meters"`
	MaxCompetitors     int   `yaml:"max_competitors" mapstructure:"max_competitors"`
	MaxCallsPerRun     int   `yaml:"max_calls_per_run" mapstructure:"max_calls_per_run"`
	MaxPagesPerSearch  int   `yaml:"max_pages_per_search" mapstructure:"max_pages_per_search"`
	PageDelaySecs      int   `yaml:"page_delay_secs" mapstructure:"page_delay_secs"`

	// DualStrategy issues both a type-filtered and a keyword nearby search
	// at each radius. The two frequently return overlapping sets; disabling
	// halves the search spend at some recall cost.
	DualStrategy bool `yaml:"dual_strategy" mapstructure:"dual_strategy"`
}

// BudgetConfig caps billed external calls process-wide.
type BudgetConfig struct {
	GlobalPlacesCalls int `yaml:"global_places_calls" mapstructure:"global_places_calls"`
}

// PricingConfig holds Places API pricing (USD per 1000 calls).
type PricingConfig struct {
	NearbyPer1000  float64 `yaml:"nearby_per_1000" mapstructure:"nearby_per_1000"`
	TextPer1000    float64 `yaml:"text_per_1000" mapstructure:"text_per_1000"`
	DetailsPer1000 float64 `yaml:"details_per_1000" mapstructure:"details_per_1000"`
}

// ReputationConfig holds the reputation-gap classification thresholds.
type ReputationConfig struct {
	RatingGapThreshold    float64 `yaml:"rating_gap_threshold" mapstructure:"rating_gap_threshold"`
	RatingNoteThreshold   float64 `yaml:"rating_note_threshold" mapstructure:"rating_note_threshold"`
	ReviewsNoteFraction   float64 `yaml:"reviews_note_fraction" mapstructure:"reviews_note_fraction"`
	ReviewsBehindFraction float64 `yaml:"reviews_behind_fraction" mapstructure:"reviews_behind_fraction"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("COMPETITOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. The empty key default also registers the key with viper,
	// which AutomaticEnv needs before COMPETITOR_PLACES_KEY is visible.
	v.SetDefault("places.key", "")
	v.SetDefault("places.base_url", "https://maps.googleapis.com/maps/api/place")
	v.SetDefault("places.rate_limit", 10)
	v.SetDefault("places.timeout_secs", 10)
	v.SetDefault("places.retry_attempts", 3)
	v.SetDefault("places.cache_ttl_hours", 24)
	v.SetDefault("discovery.radius_ladder_meters", []int{1500, 3000, 5000, 10000, 20000})
	v.SetDefault("discovery.max_competitors", 10)
	v.SetDefault("discovery.max_calls_per_run", 60)
	v.SetDefault("discovery.max_pages_per_search", 3)
	v.SetDefault("discovery.page_delay_secs", 2)
	v.SetDefault("discovery.dual_strategy", true)
	v.SetDefault("budget.global_places_calls", 1000)
	v.SetDefault("pricing.nearby_per_1000", 32.00)
	v.SetDefault("pricing.text_per_1000", 32.00)
	v.SetDefault("pricing.details_per_1000", 17.00)
	v.SetDefault("reputation.rating_gap_threshold", 0.2)
	v.SetDefault("reputation.rating_note_threshold", 0.3)
	v.SetDefault("reputation.reviews_note_fraction", 0.5)
	v.SetDefault("reputation.reviews_behind_fraction", 0.3)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
