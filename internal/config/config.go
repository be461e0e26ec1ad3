package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

const (
	configFileBase = "nurse_schedule_config"

	// EnvPrefix is prepended to every environment override variable
	EnvPrefix = "NURSE_SCHEDULE_"

	defaultPreferenceModel = "dayShift"
	defaultTieBreak        = "rosterOrder"
	defaultTargetSize      = 2
	defaultLogDir          = "logs"
)

// Blackout marks recurring days on which the listed nurses (or everyone, if empty) cannot work
type Blackout struct {
	RRule       string   `yaml:"rrule" validate:"required"`
	Nurses      []string `yaml:"nurses,omitempty"`
	Description string   `yaml:"description,omitempty"`
}

// Config represents the application configuration
type Config struct {
	RosterFile      string     `yaml:"rosterFile" validate:"required"`
	PreferenceModel string     `yaml:"preferenceModel" validate:"oneof=dayShift singleShift"`
	TieBreak        string     `yaml:"tieBreak" validate:"oneof=rosterOrder leastLoaded random"`
	TargetSize      int        `yaml:"targetSize" validate:"min=1"`
	Backfill        bool       `yaml:"backfill"`
	MaxShiftsPerDay int        `yaml:"maxShiftsPerDay" validate:"min=0"`
	Seed            int64      `yaml:"seed"`
	LogDir          string     `yaml:"logDir"`
	Blackouts       []Blackout `yaml:"blackouts,omitempty" validate:"dive"`
}

// envOverrides are read from NURSE_SCHEDULE_* variables; unset variables leave the field nil
type envOverrides struct {
	RosterFile      *string `env:"ROSTER_FILE"`
	PreferenceModel *string `env:"PREFERENCE_MODEL"`
	TieBreak        *string `env:"TIE_BREAK"`
	TargetSize      *int    `env:"TARGET_SIZE"`
	Backfill        *bool   `env:"BACKFILL"`
	MaxShiftsPerDay *int    `env:"MAX_SHIFTS_PER_DAY"`
	Seed            *int64  `env:"SEED"`
	LogDir          *string `env:"LOG_DIR"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from nurse_schedule_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv is like Load but prefers nurse_schedule_config.<env>.yaml when it exists
func LoadWithEnv(envName string) (*Config, error) {
	configPath, err := findConfigFile(envName)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
// A relative rosterFile is resolved against the config file's directory.
// Environment overrides are applied before validation.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.RosterFile != "" && !filepath.IsAbs(cfg.RosterFile) {
		cfg.RosterFile = filepath.Join(filepath.Dir(path), cfg.RosterFile)
	}

	if err := ApplyEnvOverrides(&cfg, nil); err != nil {
		return nil, err
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyDefaults fills unset optional fields
func ApplyDefaults(cfg *Config) {
	if cfg.PreferenceModel == "" {
		cfg.PreferenceModel = defaultPreferenceModel
	}
	if cfg.TieBreak == "" {
		cfg.TieBreak = defaultTieBreak
	}
	if cfg.TargetSize == 0 {
		cfg.TargetSize = defaultTargetSize
	}
	if cfg.LogDir == "" {
		cfg.LogDir = defaultLogDir
	}
}

// ApplyEnvOverrides overwrites config fields from NURSE_SCHEDULE_* variables.
// environ replaces the process environment when non-nil.
func ApplyEnvOverrides(cfg *Config, environ map[string]string) error {
	var overrides envOverrides
	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(&overrides, opts); err != nil {
		return fmt.Errorf("failed to parse environment overrides: %w", err)
	}

	if overrides.RosterFile != nil {
		cfg.RosterFile = *overrides.RosterFile
	}
	if overrides.PreferenceModel != nil {
		cfg.PreferenceModel = *overrides.PreferenceModel
	}
	if overrides.TieBreak != nil {
		cfg.TieBreak = *overrides.TieBreak
	}
	if overrides.TargetSize != nil {
		cfg.TargetSize = *overrides.TargetSize
	}
	if overrides.Backfill != nil {
		cfg.Backfill = *overrides.Backfill
	}
	if overrides.MaxShiftsPerDay != nil {
		cfg.MaxShiftsPerDay = *overrides.MaxShiftsPerDay
	}
	if overrides.Seed != nil {
		cfg.Seed = *overrides.Seed
	}
	if overrides.LogDir != nil {
		cfg.LogDir = *overrides.LogDir
	}

	return nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// Validate rrule syntax for each blackout
	for i, blackout := range cfg.Blackouts {
		if _, err := rrule.StrToRRule(blackout.RRule); err != nil {
			return fmt.Errorf("invalid rrule in blackouts[%d]: %w", i, err)
		}
	}

	return nil
}

// findConfigFile searches the current directory then the home directory,
// trying nurse_schedule_config.<env>.yaml before nurse_schedule_config.yaml in each
func findConfigFile(envName string) (string, error) {
	candidates := []string{configFileBase + ".yaml"}
	if envName != "" {
		candidates = append([]string{fmt.Sprintf("%s.%s.yaml", configFileBase, envName)}, candidates...)
	}

	dirs := []string{"."}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	dirs = append(dirs, homeDir)

	for _, dir := range dirs {
		for _, name := range candidates {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
