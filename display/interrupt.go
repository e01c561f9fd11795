package display

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// InterruptWatcher records SIGINT/SIGTERM deliveries so that render loops can
// treat them like a close request on their next input poll.
type InterruptWatcher struct {
	triggered atomic.Bool
	sigCh     chan os.Signal
	doneCh    chan struct{}
}

// Start watching for interrupt signals.
func WatchInterrupts() *InterruptWatcher {
	w := &InterruptWatcher{
		sigCh:  make(chan os.Signal, 1),
		doneCh: make(chan struct{}),
	}
	signal.Notify(w.sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		for {
			select {
			case <-w.sigCh:
				w.triggered.Store(true)
			case <-w.doneCh:
				return
			}
		}
	}()
	return w
}

// Triggered returns true once a signal was received.
func (w *InterruptWatcher) Triggered() bool {
	return w.triggered.Load()
}

// Stop watching and restore default signal handling.
func (w *InterruptWatcher) Stop() {
	signal.Stop(w.sigCh)
	close(w.doneCh)
}
