package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"pom_automation/domain/entities"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -- Defaults --

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := LoadViper(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, EnginePlaywright, cfg.Browser.Engine)
	assert.Equal(t, "chromium", cfg.Browser.Name)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, 1280, cfg.Browser.ViewportWidth)
	assert.Equal(t, 720, cfg.Browser.ViewportHeight)
	assert.Equal(t, entities.DefaultTimeouts(), cfg.Timeouts)
	assert.Equal(t, "https://www.saucedemo.com/", cfg.Sites.URL(entities.SiteSauceDemo))
	assert.Equal(t, "reports/test-results.json", cfg.Reports.ResultsFile)
	assert.Equal(t, "test-credentials.json", cfg.Credentials.File)
	assert.Equal(t, 1, cfg.Runner.Retries)
	assert.False(t, cfg.CI)
}

func TestLoadCIRetries(t *testing.T) {
	t.Setenv("CI", "true")

	cfg, err := LoadViper(viper.New(), "")
	require.NoError(t, err)
	assert.True(t, cfg.CI)
	assert.Equal(t, 2, cfg.Runner.Retries)

	t.Setenv("POM_RUNNER_RETRIES", "0")
	cfg, err = LoadViper(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Runner.Retries, "explicit value beats the CI default")
}

// -- Overrides --

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("POM_BROWSER_ENGINE", "chromedp")
	t.Setenv("POM_TIMEOUTS_SELECT", "90s")

	cfg, err := LoadViper(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, EngineChromedp, cfg.Browser.Engine)
	assert.Equal(t, 90*time.Second, cfg.Timeouts.Select)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
browser:
  engine: selenium
  headless: false
sites:
  saucedemo: http://localhost:8080/
timeouts:
  quiescence: 250ms
`), 0o644))

	cfg, err := LoadViper(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, EngineSelenium, cfg.Browser.Engine)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, "http://localhost:8080/", cfg.Sites.SauceDemo)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeouts.Quiescence)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := LoadViper(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read config")
}

// -- Validation --

func TestValidate(t *testing.T) {
	t.Setenv("CI", "")
	base, err := LoadViper(viper.New(), "")
	require.NoError(t, err)
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"unknown engine", func(c *Config) { c.Browser.Engine = "puppeteer" }, "browser.engine must be one of"},
		{"unknown browser", func(c *Config) { c.Browser.Name = "edge" }, "browser.name must be one of"},
		{"selenium firefox", func(c *Config) { c.Browser.Engine = EngineSelenium; c.Browser.Name = "firefox" }, "only drives chromium"},
		{"zero viewport", func(c *Config) { c.Browser.ViewportWidth = 0 }, "viewport must be positive"},
		{"negative retries", func(c *Config) { c.Runner.Retries = -1 }, "runner.retries"},
		{"zero timeout", func(c *Config) { c.Timeouts.Select = 0 }, "timeouts.select must be positive"},
		{"missing site", func(c *Config) { c.Sites.OrangeHRM = "" }, "sites.orangehrm must be set"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := *base
			tt.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateListsTimeoutsInOrder(t *testing.T) {
	t.Setenv("CI", "")
	c, err := LoadViper(viper.New(), "")
	require.NoError(t, err)
	c.Timeouts.Quiescence = 0
	c.Timeouts.Navigation = 0
	c.Timeouts.Select = 0

	want := "timeouts.navigation must be positive\ntimeouts.select must be positive\ntimeouts.quiescence must be positive"
	for i := 0; i < 5; i++ {
		err := c.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), want)
	}
}
