package browser

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func TestNetworkTrackerCountsInflight(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	tr := newNetworkTracker(clock.Now)

	tr.handle(&network.EventRequestWillBeSent{RequestID: "1"})
	tr.handle(&network.EventRequestWillBeSent{RequestID: "2"})
	clock.Advance(time.Second)
	_, idle := tr.quietFor()
	assert.False(t, idle)

	tr.handle(&network.EventLoadingFinished{RequestID: "1"})
	tr.handle(&network.EventLoadingFailed{RequestID: "2"})
	d, idle := tr.quietFor()
	assert.True(t, idle)
	assert.Zero(t, d)

	clock.Advance(600 * time.Millisecond)
	d, _ = tr.quietFor()
	assert.Equal(t, 600*time.Millisecond, d)
}

func TestNetworkTrackerIgnoresUnknownFinish(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	tr := newNetworkTracker(clock.Now)
	clock.Advance(time.Second)

	tr.handle(&network.EventLoadingFinished{RequestID: "never-started"})
	d, idle := tr.quietFor()
	assert.True(t, idle)
	assert.Equal(t, time.Second, d, "an unknown id must not reset the quiet window")
}

func TestNetworkTrackerRedirectKeepsOneEntry(t *testing.T) {
	tr := newNetworkTracker(time.Now)
	tr.handle(&network.EventRequestWillBeSent{RequestID: "r"})
	tr.handle(&network.EventRequestWillBeSent{RequestID: "r"})
	tr.handle(&network.EventLoadingFinished{RequestID: "r"})
	_, idle := tr.quietFor()
	assert.True(t, idle)
}

func TestNetworkTrackerWait(t *testing.T) {
	tr := newNetworkTracker(time.Now)
	assert.NoError(t, tr.wait(context.Background(), time.Second, 50*time.Millisecond))

	tr.handle(&network.EventRequestWillBeSent{RequestID: "stuck"})
	err := tr.wait(context.Background(), 200*time.Millisecond, 50*time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
