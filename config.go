package launchboard

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/spf13/viper"
	"github.com/tfkr-ae/launchboard/compass"
	"github.com/tfkr-ae/launchboard/domain"
)

// SliderConfig describes the payload range selector offered to the renderer.
type SliderConfig struct {
	Min   float64   `mapstructure:"min" json:"min"`
	Max   float64   `mapstructure:"max" json:"max"`
	Step  float64   `mapstructure:"step" json:"step"`
	Marks []float64 `mapstructure:"marks" json:"marks"`
}

// SitesConfig holds the site scope patterns applied while loading.
type SitesConfig struct {
	Include []string `mapstructure:"include" json:"include"`
	Exclude []string `mapstructure:"exclude" json:"exclude"`
}

type Config struct {
	viper           *viper.Viper
	ConfigDir       string         `mapstructure:"config_dir" json:"config_dir"`             // Current config dir
	DatasetPath     string         `mapstructure:"dataset_path" json:"dataset_path"`         // CSV file or snapshot loaded on start
	LogLevel        string         `mapstructure:"log_level" json:"log_level"`               // debug, info, warn or error
	Columns         domain.Columns `mapstructure:"columns" json:"columns"`                   // Header names of the required columns
	Slider          SliderConfig   `mapstructure:"slider" json:"slider"`                     // Payload slider bounds and marks
	Sites           SitesConfig    `mapstructure:"sites" json:"sites"`                       // Include / exclude site patterns
	TransformScript string         `mapstructure:"transform_script" json:"transform_script"` // Optional Lua transform run while loading
}

// DefaultConfig returns the configuration used when no config directory is given.
func DefaultConfig() *Config {
	defaults := domain.DefaultColumns()
	return &Config{
		LogLevel: "info",
		Columns:  defaults,
		Slider: SliderConfig{
			Min:   0,
			Max:   10000,
			Step:  1000,
			Marks: []float64{0, 2500, 5000, 7500, 10000},
		},
	}
}

// LoadConfig reads <dir>/config.yaml, writing one with the defaults if it does not exist.
// Environment variables prefixed with LAUNCHBOARD_ override file values, with nested
// keys joined by an underscore (LAUNCHBOARD_SLIDER_MAX).
func LoadConfig(dir string) (*Config, error) {
	_, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			err := os.MkdirAll(dir, 0700)
			if err != nil {
				return nil, fmt.Errorf("creating config dir %s: %w", dir, err)
			}
		} else {
			return nil, fmt.Errorf("checking if directory exists %s: %w", dir, err)
		}
	}

	defaults := DefaultConfig()
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("LAUNCHBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("dataset_path", defaults.DatasetPath)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("columns.launch_site", defaults.Columns.LaunchSite)
	v.SetDefault("columns.payload_mass", defaults.Columns.PayloadMass)
	v.SetDefault("columns.outcome_class", defaults.Columns.OutcomeClass)
	v.SetDefault("columns.booster_category", defaults.Columns.BoosterCategory)
	v.SetDefault("slider.min", defaults.Slider.Min)
	v.SetDefault("slider.max", defaults.Slider.Max)
	v.SetDefault("slider.step", defaults.Slider.Step)
	v.SetDefault("slider.marks", defaults.Slider.Marks)
	v.SetDefault("sites.include", []string{})
	v.SetDefault("sites.exclude", []string{})
	v.SetDefault("transform_script", "")

	err = v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file : %w", err)
		}
		if err := v.SafeWriteConfig(); err != nil {
			return nil, fmt.Errorf("writing config file : %w", err)
		}
	}

	cfg := &Config{viper: v}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config to struct : %w", err)
	}
	cfg.ConfigDir = dir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the slider bounds and the log level.
func (cfg *Config) Validate() error {
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	if cfg.Slider.Min < 0 || cfg.Slider.Min > cfg.Slider.Max {
		return fmt.Errorf("invalid slider bounds [%g, %g]", cfg.Slider.Min, cfg.Slider.Max)
	}
	if cfg.Slider.Step <= 0 {
		return fmt.Errorf("invalid slider step %g", cfg.Slider.Step)
	}
	return nil
}

// Scope builds the site scope from the configured include and exclude patterns.
func (cfg *Config) Scope() (*compass.Scope, error) {
	scope, err := compass.FromPatterns(cfg.Sites.Include, cfg.Sites.Exclude)
	if err != nil {
		return nil, fmt.Errorf("building site scope : %w", err)
	}
	return scope, nil
}

// SetDatasetPath changes the dataset loaded on start and saves the config file.
func (cfg *Config) SetDatasetPath(path string) error {
	cfg.DatasetPath = path
	return cfg.save("dataset_path", path)
}

// AddSiteRule appends a scope pattern and saves the config file.
func (cfg *Config) AddSiteRule(pattern string, exclude bool) error {
	// Reject patterns the scope would not accept before persisting them.
	if err := compass.NewScope(true).AddRule(pattern, exclude); err != nil {
		return err
	}

	rules := &cfg.Sites.Include
	key := "sites.include"
	if exclude {
		rules = &cfg.Sites.Exclude
		key = "sites.exclude"
	}
	if slices.Contains(*rules, pattern) {
		return fmt.Errorf("rule %s already exists", pattern)
	}
	*rules = append(*rules, pattern)
	return cfg.save(key, *rules)
}

// RemoveSiteRule deletes a scope pattern and saves the config file.
func (cfg *Config) RemoveSiteRule(pattern string, exclude bool) error {
	rules := &cfg.Sites.Include
	key := "sites.include"
	if exclude {
		rules = &cfg.Sites.Exclude
		key = "sites.exclude"
	}
	if !slices.Contains(*rules, pattern) {
		return fmt.Errorf("rule %s does not exist", pattern)
	}
	*rules = slices.DeleteFunc(*rules, func(p string) bool {
		return p == pattern
	})
	return cfg.save(key, *rules)
}

// save writes a single key back to the config file. Configs that were not loaded from
// a directory only change in memory.
func (cfg *Config) save(key string, value any) error {
	if cfg.viper == nil {
		return nil
	}
	cfg.viper.Set(key, value)
	if err := cfg.viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	return nil
}

// ParseLevel converts a configured log level name into a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}
