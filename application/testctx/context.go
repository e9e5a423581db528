// Package testctx carries per-scenario state between page objects.
package testctx

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// TestContext is a key-value bag plus screenshot and page-info helpers.
// One scenario owns one instance; it is not safe for concurrent use.
type TestContext struct {
	driver        interfaces.Driver
	logger        logrus.FieldLogger
	screenshotDir string
	now           func() time.Time
	data          map[string]any
}

func New(driver interfaces.Driver, logger logrus.FieldLogger, screenshotDir string) *TestContext {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &TestContext{
		driver:        driver,
		logger:        logger,
		screenshotDir: screenshotDir,
		now:           time.Now,
		data:          make(map[string]any),
	}
}

// WithClock replaces the clock used to name screenshots
func (tc *TestContext) WithClock(now func() time.Time) *TestContext {
	tc.now = now
	return tc
}

func (tc *TestContext) Set(key string, value any) {
	tc.data[key] = value
}

func (tc *TestContext) Get(key string) (any, bool) {
	v, ok := tc.data[key]
	return v, ok
}

// Value returns the value under key when it holds a T
func Value[T any](tc *TestContext, key string) (T, bool) {
	v, ok := tc.data[key].(T)
	return v, ok
}

func (tc *TestContext) Clear() {
	clear(tc.data)
}

// StoreProductDetails keeps d under product_<name> for later checks
func (tc *TestContext) StoreProductDetails(d entities.ProductDetails) {
	tc.Set(ProductKey(d.Name), d)
	tc.logger.Infof("Stored product details for %s", d.Name)
}

// ProductDetails returns what StoreProductDetails kept for name
func (tc *TestContext) ProductDetails(name string) (entities.ProductDetails, bool) {
	return Value[entities.ProductDetails](tc, ProductKey(name))
}

func ProductKey(name string) string {
	return "product_" + name
}

// TakeScreenshot saves <dir>/<label>_<epochms>.png and returns its path
func (tc *TestContext) TakeScreenshot(ctx context.Context, label string) (string, error) {
	path := filepath.Join(tc.screenshotDir, fmt.Sprintf("%s_%d.png", label, tc.now().UnixMilli()))
	if err := tc.driver.Screenshot(ctx, path, false); err != nil {
		return "", fmt.Errorf("screenshot %s: %w", label, err)
	}
	tc.logger.Infof("Screenshot saved: %s", path)
	return path, nil
}

// LogPageInfo logs and returns the current title and URL
func (tc *TestContext) LogPageInfo(ctx context.Context) (entities.PageInfo, error) {
	url, err := tc.driver.URL(ctx)
	if err != nil {
		return entities.PageInfo{}, err
	}
	title, err := tc.driver.Title(ctx)
	if err != nil {
		return entities.PageInfo{}, err
	}
	tc.logger.Infof("Current page: %q (%s)", title, url)
	return entities.PageInfo{URL: url, Title: title}, nil
}
