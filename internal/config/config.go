package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DelayConfig names every artificial UI delay so nothing in the code carries
// an inline magic-number timeout.
type DelayConfig struct {
	RenderMs        int `mapstructure:"render_ms"`
	CategoryPulseMs int `mapstructure:"category_pulse_ms"`
	FocusCloseMs    int `mapstructure:"focus_close_ms"`
	CounterPopMs    int `mapstructure:"counter_pop_ms"`
}

type ReminderConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Time     string `mapstructure:"time"`     // "06:30"
	Timezone string `mapstructure:"timezone"` // e.g. "Africa/Cairo" (optional)
}

type Config struct {
	Theme     string         `mapstructure:"theme"`
	SourceURL string         `mapstructure:"source_url"` // base URL serving data.json / strings.json
	CacheDir  string         `mapstructure:"cache_dir"`  // override for the offline cache root
	Delays    DelayConfig    `mapstructure:"delays"`
	Reminder  ReminderConfig `mapstructure:"reminder"`
}

func Default() Config {
	return Config{
		Theme:     "default",
		SourceURL: "https://wird.open-waqf.org",
		CacheDir:  "",
		Delays: DelayConfig{
			RenderMs:        150,
			CategoryPulseMs: 1500,
			FocusCloseMs:    500,
			CounterPopMs:    100,
		},
		Reminder: ReminderConfig{
			Enabled:  false,
			Time:     "06:30",
			Timezone: "",
		},
	}
}

func xdgConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".config", "wird")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func Load() (Config, error) {
	cfg := Default()

	path, err := xdgConfigPath()
	if err != nil {
		return cfg, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)

	// defaults
	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("source_url", cfg.SourceURL)
	v.SetDefault("cache_dir", cfg.CacheDir)
	v.SetDefault("delays.render_ms", cfg.Delays.RenderMs)
	v.SetDefault("delays.category_pulse_ms", cfg.Delays.CategoryPulseMs)
	v.SetDefault("delays.focus_close_ms", cfg.Delays.FocusCloseMs)
	v.SetDefault("delays.counter_pop_ms", cfg.Delays.CounterPopMs)
	v.SetDefault("reminder.enabled", cfg.Reminder.Enabled)
	v.SetDefault("reminder.time", cfg.Reminder.Time)
	v.SetDefault("reminder.timezone", cfg.Reminder.Timezone)

	_ = v.ReadInConfig() // ok if missing
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}

	cfg.SourceURL = strings.TrimRight(strings.TrimSpace(cfg.SourceURL), "/")
	return cfg, nil
}

func (c Config) Location() *time.Location {
	if tz := strings.TrimSpace(c.Reminder.Timezone); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.Local
}

// CategoryPulse is how long the transient "one category done" signal stays up.
func (c Config) CategoryPulse() time.Duration {
	return time.Duration(c.Delays.CategoryPulseMs) * time.Millisecond
}

// FocusClose is the pause between finishing an item in focus mode and the
// view closing itself.
func (c Config) FocusClose() time.Duration {
	return time.Duration(c.Delays.FocusCloseMs) * time.Millisecond
}

func (c Config) RenderDelay() time.Duration {
	return time.Duration(c.Delays.RenderMs) * time.Millisecond
}

// CounterPop is the brief counter highlight after every count.
func (c Config) CounterPop() time.Duration {
	return time.Duration(c.Delays.CounterPopMs) * time.Millisecond
}
