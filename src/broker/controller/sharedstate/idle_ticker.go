package sharedstate

import (
	"context"
	"time"
)

// idleTicker periodically drives IdleTick so inactive owners cannot block
// writers indefinitely.
type idleTicker struct {
	c        *controller
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func newIdleTicker(c *controller, interval time.Duration) *idleTicker {
	return &idleTicker{
		c:        c,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

func (t *idleTicker) start() {
	go t.run()
}

func (t *idleTicker) run() {
	defer close(t.doneCh)
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			if err := t.c.IdleTick(context.Background(), now); err != nil {
				t.c.logger.Warnw("idle tick", "err", err)
			}
		case <-t.stopCh:
			return
		}
	}
}

func (t *idleTicker) stop() {
	close(t.stopCh)
	<-t.doneCh
}
