package browser

import (
	"context"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
)

// networkTracker counts in-flight requests from CDP network events
type networkTracker struct {
	mu         sync.Mutex
	inflight   map[network.RequestID]struct{}
	lastChange time.Time
	now        func() time.Time
}

func newNetworkTracker(now func() time.Time) *networkTracker {
	return &networkTracker{
		inflight:   make(map[network.RequestID]struct{}),
		lastChange: now(),
		now:        now,
	}
}

// handle is the chromedp.ListenTarget callback
func (t *networkTracker) handle(ev interface{}) {
	switch ev := ev.(type) {
	case *network.EventRequestWillBeSent:
		t.start(ev.RequestID)
	case *network.EventLoadingFinished:
		t.finish(ev.RequestID)
	case *network.EventLoadingFailed:
		t.finish(ev.RequestID)
	}
}

func (t *networkTracker) start(id network.RequestID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	// redirects reuse the id
	t.inflight[id] = struct{}{}
	t.lastChange = t.now()
}

func (t *networkTracker) finish(id network.RequestID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.inflight[id]; !ok {
		return
	}
	delete(t.inflight, id)
	t.lastChange = t.now()
}

// quietFor reports how long nothing has been in flight; ok is false while
// requests are pending
func (t *networkTracker) quietFor() (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.inflight) > 0 {
		return 0, false
	}
	return t.now().Sub(t.lastChange), true
}

// wait blocks until the network has been quiet for quiet, or timeout
func (t *networkTracker) wait(ctx context.Context, timeout, quiet time.Duration) error {
	return poll(ctx, timeout, func() (bool, error) {
		d, ok := t.quietFor()
		return ok && d >= quiet, nil
	})
}
