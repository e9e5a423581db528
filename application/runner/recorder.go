package runner

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	"pom_automation/application/scenarios"

	"github.com/sirupsen/logrus"
)

// recorder is the scenarios.T handed to a scenario outside go test.
// FailNow and Skipf end the scenario goroutine with runtime.Goexit.
type recorder struct {
	mu       sync.Mutex
	logger   logrus.FieldLogger
	failed   bool
	skipped  bool
	failure  string
	messages []string
}

func newRecorder(logger logrus.FieldLogger) *recorder {
	return &recorder{logger: logger}
}

func (r *recorder) Helper() {}

func (r *recorder) Errorf(format string, args ...any) {
	msg := strings.TrimSpace(fmt.Sprintf(format, args...))
	r.mu.Lock()
	r.failed = true
	if r.failure == "" {
		r.failure = msg
	}
	r.messages = append(r.messages, msg)
	r.mu.Unlock()
	r.logger.Error(msg)
}

func (r *recorder) FailNow() {
	r.mu.Lock()
	r.failed = true
	if r.failure == "" {
		r.failure = "FailNow called"
	}
	r.mu.Unlock()
	runtime.Goexit()
}

func (r *recorder) Logf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.mu.Lock()
	r.messages = append(r.messages, msg)
	r.mu.Unlock()
	r.logger.Info(msg)
}

func (r *recorder) Skipf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.mu.Lock()
	r.skipped = true
	r.messages = append(r.messages, msg)
	r.mu.Unlock()
	r.logger.Infof("Skipped: %s", msg)
	runtime.Goexit()
}

// run calls fn on its own goroutine and waits for it to return, exit or
// panic. A panic counts as a failure.
func (r *recorder) run(fn func()) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if p := recover(); p != nil {
				r.Errorf("panic: %v", p)
			}
		}()
		fn()
	}()
	<-done
}

var _ scenarios.T = (*recorder)(nil)
