// Package config loads suite settings from .env, an optional YAML file and
// the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"time"

	"pom_automation/domain/entities"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces every environment override, e.g. POM_BROWSER_ENGINE
const EnvPrefix = "POM"

const (
	EnginePlaywright = "playwright"
	EngineSelenium   = "selenium"
	EngineChromedp   = "chromedp"
)

var (
	engines  = []string{EnginePlaywright, EngineSelenium, EngineChromedp}
	browsers = []string{"chromium", "firefox", "webkit"}
)

// Config is the fully resolved configuration
type Config struct {
	Log         LogConfig         `mapstructure:"log"`
	Sites       SitesConfig       `mapstructure:"sites"`
	Timeouts    entities.Timeouts `mapstructure:"timeouts"`
	Browser     BrowserConfig     `mapstructure:"browser"`
	Reports     ReportsConfig     `mapstructure:"reports"`
	Credentials CredentialsConfig `mapstructure:"credentials"`
	Runner      RunnerConfig      `mapstructure:"runner"`

	// CI is true when the CI variable is set to anything non-empty
	CI bool `mapstructure:"-"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// SitesConfig holds the base URL of every target application
type SitesConfig struct {
	SauceDemo          string `mapstructure:"saucedemo"`
	AutomationExercise string `mapstructure:"automationexercise"`
	OrangeHRM          string `mapstructure:"orangehrm"`
	PlaywrightDev      string `mapstructure:"playwrightdev"`
}

// URL returns the base URL configured for site
func (s SitesConfig) URL(site entities.Site) string {
	switch site {
	case entities.SiteSauceDemo:
		return s.SauceDemo
	case entities.SiteAutomationExercise:
		return s.AutomationExercise
	case entities.SiteOrangeHRM:
		return s.OrangeHRM
	case entities.SitePlaywrightDev:
		return s.PlaywrightDev
	}
	return ""
}

type BrowserConfig struct {
	Engine         string  `mapstructure:"engine"`
	Name           string  `mapstructure:"name"`
	Headless       bool    `mapstructure:"headless"`
	ViewportWidth  int     `mapstructure:"viewport_width"`
	ViewportHeight int     `mapstructure:"viewport_height"`
	SlowMo         float64 `mapstructure:"slow_mo"`
	DriverPath     string  `mapstructure:"driver_path"`
	BinaryPath     string  `mapstructure:"binary_path"`
	DriverPort     int     `mapstructure:"driver_port"`
}

type ReportsConfig struct {
	Dir         string `mapstructure:"dir"`
	Screenshots string `mapstructure:"screenshots"`
	ResultsFile string `mapstructure:"results_file"`
	HTMLDir     string `mapstructure:"html_dir"`
	Downloads   string `mapstructure:"downloads"`
}

type CredentialsConfig struct {
	File string `mapstructure:"file"`
}

type RunnerConfig struct {
	Retries int `mapstructure:"retries"`
}

// SetDefaults initializes default values for every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")

	v.SetDefault("sites.saucedemo", "https://www.saucedemo.com/")
	v.SetDefault("sites.automationexercise", "https://automationexercise.com")
	v.SetDefault("sites.orangehrm", "https://opensource-demo.orangehrmlive.com/")
	v.SetDefault("sites.playwrightdev", "https://playwright.dev")

	v.SetDefault("timeouts.navigation", "30s")
	v.SetDefault("timeouts.action", "10s")
	v.SetDefault("timeouts.element", "5s")
	v.SetDefault("timeouts.visible", "10s")
	v.SetDefault("timeouts.global", "60s")
	v.SetDefault("timeouts.select", "60s")
	v.SetDefault("timeouts.select_settle", "500ms")
	v.SetDefault("timeouts.modal_probe", "3s")
	v.SetDefault("timeouts.error_probe", "3s")
	v.SetDefault("timeouts.quiescence", "500ms")

	v.SetDefault("browser.engine", EnginePlaywright)
	v.SetDefault("browser.name", "chromium")
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.viewport_width", 1280)
	v.SetDefault("browser.viewport_height", 720)
	v.SetDefault("browser.slow_mo", 0)
	v.SetDefault("browser.driver_path", "")
	v.SetDefault("browser.binary_path", "")
	v.SetDefault("browser.driver_port", 9515)

	v.SetDefault("reports.dir", "reports")
	v.SetDefault("reports.screenshots", "reports/screenshots")
	v.SetDefault("reports.results_file", "reports/test-results.json")
	v.SetDefault("reports.html_dir", "reports/html-reports")
	v.SetDefault("reports.downloads", "reports/downloads")

	v.SetDefault("credentials.file", "test-credentials.json")

	v.SetDefault("runner.retries", 1)
}

// Load reads .env (if present), then path (or ./config.yaml when path is
// empty and the file exists), then the environment.
func Load(path string) (*Config, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}
	return LoadViper(viper.New(), path)
}

// LoadDotEnv exports the variables of ./.env; a missing file is fine
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// LoadViper resolves the configuration using v, which may already carry
// flag bindings.
func LoadViper(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// unprefixed names also accepted
	_ = v.BindEnv("log.level", EnvPrefix+"_LOG_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("ci", "CI")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	ci := v.GetString("ci") != ""
	if ci {
		// explicit settings still win over this default
		v.SetDefault("runner.retries", 2)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.CI = ci

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the resolved values for consistency
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(engines, c.Browser.Engine) {
		errs = append(errs, fmt.Errorf("browser.engine must be one of %v, got %q", engines, c.Browser.Engine))
	}
	if !slices.Contains(browsers, c.Browser.Name) {
		errs = append(errs, fmt.Errorf("browser.name must be one of %v, got %q", browsers, c.Browser.Name))
	} else if c.Browser.Engine != EnginePlaywright && c.Browser.Name != "chromium" {
		errs = append(errs, fmt.Errorf("browser.engine %q only drives chromium", c.Browser.Engine))
	}
	if c.Browser.ViewportWidth <= 0 || c.Browser.ViewportHeight <= 0 {
		errs = append(errs, errors.New("browser viewport must be positive"))
	}
	if c.Runner.Retries < 0 {
		errs = append(errs, errors.New("runner.retries must not be negative"))
	}

	t := c.Timeouts
	for _, check := range []struct {
		name string
		d    time.Duration
	}{
		{"navigation", t.Navigation},
		{"action", t.Action},
		{"element", t.Element},
		{"visible", t.Visible},
		{"global", t.Global},
		{"select", t.Select},
		{"select_settle", t.SelectSettle},
		{"modal_probe", t.ModalProbe},
		{"error_probe", t.ErrorProbe},
		{"quiescence", t.Quiescence},
	} {
		if check.d <= 0 {
			errs = append(errs, fmt.Errorf("timeouts.%s must be positive", check.name))
		}
	}

	for _, site := range entities.Sites {
		if c.Sites.URL(site) == "" {
			errs = append(errs, fmt.Errorf("sites.%s must be set", site))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
