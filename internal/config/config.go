package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/text/currency"

	"github.com/Veraticus/moneyflow/internal/common"
)

// EnvPrefix is prepended to every environment variable viper reads.
const EnvPrefix = "MONEYFLOW"

// Defaults.
const (
	DefaultDatabasePath = "$HOME/.local/share/moneyflow/moneyflow.db"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"
	DefaultCurrency     = "EUR"
	DefaultRecentCount  = 5
)

// Config is the resolved application configuration.
type Config struct {
	DatabasePath   string
	LogFormat      string
	Currency       currency.Unit
	LogLevel       slog.Level
	RecentCount    int
	ResetMalformed bool
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", DefaultDatabasePath)
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
	v.SetDefault("storage.reset_malformed", false)
	v.SetDefault("display.currency", DefaultCurrency)
	v.SetDefault("display.recent_count", DefaultRecentCount)
}

// BindEnv makes nested keys readable from MONEYFLOW_SECTION_KEY variables.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// LoadEnvFiles loads KEY=VALUE files into the process environment. Missing
// files are skipped; variables already set are not overridden.
func LoadEnvFiles(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(ExpandPath(path)); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		slog.Debug("Loaded environment file", "path", path)
	}
	return nil
}

// Load reads and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	level, err := common.ParseLevel(v.GetString("logging.level"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabasePath:   ExpandPath(v.GetString("database.path")),
		LogLevel:       level,
		LogFormat:      v.GetString("logging.format"),
		RecentCount:    v.GetInt("display.recent_count"),
		ResetMalformed: v.GetBool("storage.reset_malformed"),
	}

	code := strings.ToUpper(strings.TrimSpace(v.GetString("display.currency")))
	cfg.Currency, err = currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("%w: display.currency %q is not an ISO 4217 code", common.ErrInvalidConfig, code)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DatabasePath) == "" {
		return fmt.Errorf("%w: database.path", common.ErrMissingConfig)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging.format must be console or json, got %q", common.ErrInvalidConfig, c.LogFormat)
	}
	if c.RecentCount < 0 {
		return fmt.Errorf("%w: display.recent_count cannot be negative", common.ErrInvalidConfig)
	}
	return nil
}
