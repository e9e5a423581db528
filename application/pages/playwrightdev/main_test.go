package playwrightdev

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"pom_automation/application/pages"
	"pom_automation/application/pages/pagetest"
	"pom_automation/domain/entities"

	"github.com/sirupsen/logrus"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newConfig(t *testing.T) (pages.Config, *pagetest.FakeDriver, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)

	timeouts := entities.DefaultTimeouts()
	timeouts.Element = 50 * time.Millisecond
	timeouts.SelectSettle = time.Millisecond

	d := pagetest.New()
	return pages.Config{
		Driver:        d,
		Logger:        logger,
		Timeouts:      timeouts,
		ScreenshotDir: filepath.Join(t.TempDir(), "screenshots"),
	}, d, &buf
}
