package interfaces

import (
	"context"
	"time"

	"pom_automation/domain/entities"

	"github.com/sirupsen/logrus"
)

// ElementInteractions is the primitive set every page object composes.
// Page objects hold one of these plus a fixed table of selectors and
// nothing else; the underlying session is shared and never owned by a page.
type ElementInteractions interface {
	Navigate(ctx context.Context, url string) error
	Reload(ctx context.Context) error
	WaitForPageLoad(ctx context.Context) error

	Click(ctx context.Context, sel entities.Selector) error
	ClickAndWait(ctx context.Context, sel entities.Selector) error
	Hover(ctx context.Context, sel entities.Selector) error
	FillInput(ctx context.Context, sel entities.Selector, value string) error
	SelectOption(ctx context.Context, sel entities.Selector, value string) error
	SelectOptionResilient(ctx context.Context, sel entities.Selector, value string) error
	SetCheckbox(ctx context.Context, sel entities.Selector, checked bool) error
	ScrollToElement(ctx context.Context, sel entities.Selector) error

	GetText(ctx context.Context, sel entities.Selector) (string, error)
	Texts(ctx context.Context, sel entities.Selector) ([]string, error)
	Attribute(ctx context.Context, sel entities.Selector, name string) (string, error)
	Count(ctx context.Context, sel entities.Selector) (int, error)
	IsElementVisible(ctx context.Context, sel entities.Selector, timeout time.Duration) bool
	WaitForElementVisible(ctx context.Context, sel entities.Selector, timeout time.Duration) error

	Evaluate(ctx context.Context, script string, arg any) (any, error)
	Download(ctx context.Context, sel entities.Selector, dir string) (string, error)
	SafeExecute(ctx context.Context, label string, fn func(ctx context.Context) error) error

	GetCurrentURL(ctx context.Context) (string, error)
	GetPageTitle(ctx context.Context) (string, error)

	Timeouts() entities.Timeouts
	Logger() logrus.FieldLogger
}
