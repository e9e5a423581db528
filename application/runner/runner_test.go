package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pom_automation/application/pages/pagetest"
	"pom_automation/application/scenarios"
	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"
	"pom_automation/infrastructure/storage"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var epoch = time.UnixMilli(1700000000000)

type harness struct {
	runner  *Runner
	drivers []*pagetest.FakeDriver
	out     *bytes.Buffer
	opts    Options
}

func newHarness(t *testing.T, retries int) *harness {
	t.Helper()
	dir := t.TempDir()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	h := &harness{out: &bytes.Buffer{}}
	h.opts = Options{
		Engine:        "playwright",
		Browser:       "chromium",
		Retries:       retries,
		Timeouts:      entities.DefaultTimeouts(),
		Sites:         map[entities.Site]string{entities.SiteSauceDemo: "https://sauce.test/"},
		ScreenshotDir: filepath.Join(dir, "screenshots"),
		ResultsFile:   filepath.Join(dir, "results", "test-results.json"),
	}
	launch := func(ctx context.Context) (interfaces.Driver, error) {
		d := pagetest.New()
		h.drivers = append(h.drivers, d)
		return d, nil
	}
	creds := storage.NewCredentialsManager(filepath.Join(dir, "creds.json"), logger)
	h.runner = NewRunner(h.opts, launch, creds, logger, h.out).WithClock(func() time.Time { return epoch })
	return h
}

func scenario(name string, run func(t scenarios.T, env *scenarios.Env)) scenarios.Scenario {
	return scenarios.Scenario{
		ScenarioInfo: entities.ScenarioInfo{Name: name, Site: entities.SiteSauceDemo},
		Run:          run,
	}
}

func TestRunPassed(t *testing.T) {
	h := newHarness(t, 1)
	var gotURL string
	sc := scenario("sauce/ok", func(t scenarios.T, env *scenarios.Env) {
		gotURL = env.URL(entities.SiteSauceDemo)
		require.NotNil(t, env.TC)
		require.NoError(t, env.Driver.Navigate(env.Ctx, gotURL, time.Second))
	})

	report, err := h.runner.Run(context.Background(), []scenarios.Scenario{sc})
	require.NoError(t, err)

	assert.Equal(t, "https://sauce.test/", gotURL)
	require.Len(t, report.Results, 1)
	res := report.Results[0]
	assert.Equal(t, entities.RunStatusPassed, res.Status)
	assert.Equal(t, 1, res.Attempts)
	assert.Equal(t, "saucedemo", res.Site)
	assert.Empty(t, res.Screenshot)
	assert.True(t, report.OK())

	require.Len(t, h.drivers, 1)
	assert.True(t, h.drivers[0].Closed())
	assert.Contains(t, h.out.String(), "PASS  sauce/ok")
	assert.Contains(t, h.out.String(), "1 passed, 0 failed, 0 skipped")
}

func TestRunWritesResultsFile(t *testing.T) {
	h := newHarness(t, 0)
	list := []scenarios.Scenario{
		scenario("sauce/a", func(t scenarios.T, env *scenarios.Env) {}),
		scenario("sauce/b", func(t scenarios.T, env *scenarios.Env) { t.Skipf("not today") }),
	}
	_, err := h.runner.Run(context.Background(), list)
	require.NoError(t, err)

	data, err := os.ReadFile(h.opts.ResultsFile)
	require.NoError(t, err)
	var report entities.RunReport
	require.NoError(t, json.Unmarshal(data, &report))

	assert.Equal(t, "playwright", report.Engine)
	assert.Equal(t, 1, report.Passed)
	assert.Equal(t, 1, report.Skipped)
	var names []string
	for _, r := range report.Results {
		names = append(names, r.Name)
	}
	if diff := cmp.Diff([]string{"sauce/a", "sauce/b"}, names); diff != "" {
		t.Errorf("result order mismatch (-want +got):\n%s", diff)
	}
}

func TestRunFailedRetriesAndScreenshots(t *testing.T) {
	h := newHarness(t, 1)
	runs := 0
	after := false
	sc := scenario("sauce/broken", func(t scenarios.T, env *scenarios.Env) {
		runs++
		require.Equal(t, 1, 2, "numbers differ")
		after = true
	})

	report, err := h.runner.Run(context.Background(), []scenarios.Scenario{sc})
	require.NoError(t, err)

	assert.Equal(t, 2, runs)
	assert.False(t, after, "FailNow must stop the scenario")
	require.Len(t, report.Results, 1)
	res := report.Results[0]
	assert.Equal(t, entities.RunStatusFailed, res.Status)
	assert.Equal(t, 2, res.Attempts)
	assert.Contains(t, res.Error, "numbers differ")
	assert.Equal(t, filepath.Join(h.opts.ScreenshotDir, "sauce_broken_1700000000000.png"), res.Screenshot)
	assert.FileExists(t, res.Screenshot)
	assert.False(t, report.OK())

	require.Len(t, h.drivers, 2)
	for _, d := range h.drivers {
		assert.True(t, d.Closed())
	}
	assert.Contains(t, h.out.String(), "FAIL  sauce/broken")
}

func TestRunRetrySucceeds(t *testing.T) {
	h := newHarness(t, 2)
	runs := 0
	sc := scenario("sauce/flaky", func(t scenarios.T, env *scenarios.Env) {
		runs++
		if runs == 1 {
			t.Errorf("first attempt fails")
		}
	})

	report, err := h.runner.Run(context.Background(), []scenarios.Scenario{sc})
	require.NoError(t, err)
	assert.Equal(t, entities.RunStatusPassed, report.Results[0].Status)
	assert.Equal(t, 2, report.Results[0].Attempts)
}

func TestRunPanicIsFailure(t *testing.T) {
	h := newHarness(t, 0)
	sc := scenario("sauce/panic", func(t scenarios.T, env *scenarios.Env) {
		panic("boom")
	})

	report, err := h.runner.Run(context.Background(), []scenarios.Scenario{sc})
	require.NoError(t, err)
	assert.Equal(t, entities.RunStatusFailed, report.Results[0].Status)
	assert.Contains(t, report.Results[0].Error, "panic: boom")
}

func TestRunBareFailNowHasMessage(t *testing.T) {
	h := newHarness(t, 0)
	sc := scenario("sauce/stop", func(t scenarios.T, env *scenarios.Env) {
		t.FailNow()
	})

	report, err := h.runner.Run(context.Background(), []scenarios.Scenario{sc})
	require.NoError(t, err)
	assert.Equal(t, entities.RunStatusFailed, report.Results[0].Status)
	assert.Equal(t, "FailNow called", report.Results[0].Error)
}

func TestRunLaunchFailure(t *testing.T) {
	h := newHarness(t, 0)
	h.runner.launch = func(ctx context.Context) (interfaces.Driver, error) {
		return nil, errors.New("no browser")
	}
	called := false
	sc := scenario("sauce/never", func(t scenarios.T, env *scenarios.Env) { called = true })

	report, err := h.runner.Run(context.Background(), []scenarios.Scenario{sc})
	require.NoError(t, err)
	assert.False(t, called)
	assert.Equal(t, entities.RunStatusFailed, report.Results[0].Status)
	assert.Contains(t, report.Results[0].Error, "failed to launch browser: no browser")
}

func TestRunCanceled(t *testing.T) {
	h := newHarness(t, 0)
	ctx, cancel := context.WithCancel(context.Background())
	list := []scenarios.Scenario{
		scenario("sauce/first", func(t scenarios.T, env *scenarios.Env) { cancel() }),
		scenario("sauce/second", func(t scenarios.T, env *scenarios.Env) {}),
	}

	report, err := h.runner.Run(ctx, list)
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, report.Results, 1)
	assert.Equal(t, "sauce/first", report.Results[0].Name)
	assert.FileExists(t, h.opts.ResultsFile)
}

func TestScreenshotLabel(t *testing.T) {
	assert.Equal(t, "ae_cart-total", screenshotLabel("ae/cart-total"))
	assert.Equal(t, "a_b", screenshotLabel("a b"))
}
