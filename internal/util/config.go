package util

import (
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// Config holds runtime settings and flags.
type Config struct {
	SeedText     string     `env:"PREDQUEST_SEED"`
	DSN          string     `env:"DATABASE_URL"`
	CatalogPath  string     `env:"PREDQUEST_CATALOG"`
	GuideDir     string     `env:"PREDQUEST_GUIDE_DIR"`
	TextDensity  string     `env:"PREDQUEST_TEXT_DENSITY" envDefault:"standard"` // concise|standard|rich
	Theme        string     `env:"PREDQUEST_THEME" envDefault:"catppuccin"`
	GlamourStyle string     `env:"PREDQUEST_GLAMOUR_STYLE"`
	Scenario     int        `env:"PREDQUEST_SCENARIO" envDefault:"1"`
	RewardMode   string     `env:"PREDQUEST_REWARD_MODE" envDefault:"chance"`
	RewardChance float64    `env:"PREDQUEST_REWARD_CHANCE" envDefault:"0.3"`
	RewardStreak int        `env:"PREDQUEST_REWARD_STREAK" envDefault:"3"`
	StartTokens  int        `env:"PREDQUEST_START_TOKENS"`
	LogFile      string     `env:"PREDQUEST_LOG_FILE" envDefault:"predquest.log"`
	LogLevel     slog.Level `env:"PREDQUEST_LOG_LEVEL" envDefault:"INFO"`

	RulesVersion string `env:"-"`
}

// Load reads the environment. Call godotenv first if a .env file should apply.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, errors.Wrap(err, "parsing environment")
	}
	return cfg, nil
}
