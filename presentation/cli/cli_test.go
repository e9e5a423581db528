package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pom_automation/application/pages/pagetest"
	"pom_automation/application/runner"
	"pom_automation/domain/interfaces"
	"pom_automation/infrastructure/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	dir      string
	config   string
	launched int
	launch   func() (interfaces.Driver, error)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	cfg := fmt.Sprintf(`
reports:
  dir: %[1]s
  screenshots: %[1]s/screenshots
  results_file: %[1]s/results.json
  downloads: %[1]s/downloads
credentials:
  file: %[1]s/creds.json
runner:
  retries: 0
`, filepath.ToSlash(dir))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))

	f := &fixture{dir: dir, config: path}
	f.launch = func() (interfaces.Driver, error) {
		d := pagetest.New()
		d.SetPage("about:blank", "Fast and reliable end-to-end testing | Playwright")
		return d, nil
	}
	return f
}

func (f *fixture) execute(t *testing.T, stdin string, args ...string) (string, *app, error) {
	t.Helper()
	cmd, a := newRootCmd()
	a.launcher = func(cfg *config.Config, logger logrus.FieldLogger) runner.Launcher {
		return func(ctx context.Context) (interfaces.Driver, error) {
			f.launched++
			return f.launch()
		}
	}
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", f.config}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), a, err
}

func TestListCommand(t *testing.T) {
	f := newFixture(t)

	out, _, err := f.execute(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "sauce/checkout")
	assert.Contains(t, out, "ae/register-user")

	out, _, err = f.execute(t, "", "list", "--site", "orangehrm")
	require.NoError(t, err)
	assert.Contains(t, out, "orangehrm/valid-login")
	assert.NotContains(t, out, "sauce/")

	_, _, err = f.execute(t, "", "list", "--site", "example")
	assert.ErrorContains(t, err, `unknown site "example"`)
}

func TestFlagsOverrideConfig(t *testing.T) {
	f := newFixture(t)

	_, a, err := f.execute(t, "", "--engine", "chromedp", "--headful", "list")
	require.NoError(t, err)
	assert.Equal(t, config.EngineChromedp, a.cfg.Browser.Engine)
	assert.False(t, a.cfg.Browser.Headless)

	_, _, err = f.execute(t, "", "--engine", "lynx", "list")
	assert.ErrorContains(t, err, "browser.engine")
}

func TestRunCommandPasses(t *testing.T) {
	f := newFixture(t)

	out, _, err := f.execute(t, "", "run", "playwrightdev/title")
	require.NoError(t, err)
	assert.Contains(t, out, "PASS  playwrightdev/title")
	assert.Equal(t, 1, f.launched)
	assert.FileExists(t, filepath.Join(f.dir, "results.json"))
}

func TestRunCommandReportsFailures(t *testing.T) {
	f := newFixture(t)
	f.launch = func() (interfaces.Driver, error) { return nil, errors.New("no browser") }

	out, _, err := f.execute(t, "", "run", "--site", "playwrightdev")
	require.EqualError(t, err, "1 of 1 scenario(s) failed")
	assert.Contains(t, out, "FAIL  playwrightdev/title")
}

func TestRunCommandUnknownScenario(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.execute(t, "", "run", "sauce/nope")
	require.EqualError(t, err, "unknown scenario: sauce/nope")
	assert.Zero(t, f.launched)
}

func TestRunCommandAsksBeforeMutating(t *testing.T) {
	f := newFixture(t)

	out, _, err := f.execute(t, "n\n", "run", "ae/register-user")
	require.NoError(t, err)
	assert.Contains(t, out, "Run it? [y/N]")
	assert.Contains(t, out, "Nothing to run")
	assert.Zero(t, f.launched)
}

func TestRunCommandYesSkipsPrompt(t *testing.T) {
	f := newFixture(t)
	f.launch = func() (interfaces.Driver, error) { return nil, errors.New("no browser") }

	out, _, err := f.execute(t, "", "run", "--yes", "ae/register-user")
	require.Error(t, err)
	assert.NotContains(t, out, "Run it?")
	assert.Equal(t, 1, f.launched)
}

func TestCredsCommands(t *testing.T) {
	f := newFixture(t)

	out, _, err := f.execute(t, "", "creds", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved credentials")

	record := `{"name": "Test User 1", "email": "testuser1@example.com", "password": "Test@123"}`
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "creds.json"), []byte(record), 0644))

	out, _, err = f.execute(t, "", "creds", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "testuser1@example.com")
	assert.Contains(t, out, "********")
	assert.NotContains(t, out, "Test@123")

	out, _, err = f.execute(t, "", "creds", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Credentials cleared")
	assert.NoFileExists(t, filepath.Join(f.dir, "creds.json"))
}
