// Package config loads run settings from an optional .env file and the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"todo_automation/domain/entities"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// DefaultAppURL is the TodoMVC React example the suite targets.
const DefaultAppURL = "http://todomvc.com/examples/react/#/"

// Config holds all settings for a scenario run
type Config struct {
	AppURL       string
	Browser      entities.BrowserKind
	Backend      entities.Backend
	Headless     bool
	SlowMo       time.Duration
	ImplicitWait time.Duration
	SettleDelay  time.Duration
	Screenshots  bool
	FailFast     bool
	ReportDir    string
	LogLevel     logrus.Level

	// Selenium
	DriverPath   string
	ChromeBinary string
	SeleniumPort int

	// Playwright
	PlaywrightPreinstalled bool
}

// Load reads the given env files (".env" when none are given) and then the
// environment. Missing env files are not an error; variables already set
// in the environment win.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds the configuration from environment variables only
func FromEnv() (*Config, error) {
	cfg := &Config{
		AppURL:                 getString("TODO_APP_URL", DefaultAppURL),
		Browser:                entities.ParseBrowserKind(os.Getenv("BROWSER")),
		ReportDir:              os.Getenv("REPORT_DIR"),
		DriverPath:             os.Getenv("BROWSER_DRIVER_PATH"),
		ChromeBinary:           os.Getenv("CHROME_BINARY_PATH"),
		PlaywrightPreinstalled: os.Getenv("PLAYWRIGHT_PREINSTALLED") == "1",
	}

	var err error
	if cfg.Backend, err = entities.ParseBackend(os.Getenv("BROWSER_BACKEND")); err != nil {
		return nil, fmt.Errorf("BROWSER_BACKEND: %w", err)
	}
	if cfg.Headless, err = getBool("HEADLESS", true); err != nil {
		return nil, err
	}
	if cfg.Screenshots, err = getBool("SCREENSHOTS", true); err != nil {
		return nil, err
	}
	if cfg.FailFast, err = getBool("FAIL_FAST", false); err != nil {
		return nil, err
	}
	if cfg.SlowMo, err = getDuration("SLOW_MO", 0); err != nil {
		return nil, err
	}
	if cfg.ImplicitWait, err = getDuration("IMPLICIT_WAIT", time.Second); err != nil {
		return nil, err
	}
	if cfg.SettleDelay, err = getDuration("HOVER_SETTLE", 500*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.SeleniumPort, err = getInt("SELENIUM_PORT", 9515); err != nil {
		return nil, err
	}
	if cfg.LogLevel, err = logrus.ParseLevel(getString("LOG_LEVEL", "info")); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

// NewLogger builds the logger every component shares
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(c.LogLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return logger
}

func getString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// getDuration accepts Go durations ("750ms") or plain seconds ("0.5")
func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d, nil
	}
	secs, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", key, v)
	}
	return time.Duration(secs * float64(time.Second)), nil
}
