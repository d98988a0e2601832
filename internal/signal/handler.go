// Package signal cancels a run's context on SIGINT or SIGTERM so that
// in-flight chunks stop and the run report is saved as INTERRUPTED.
package signal

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SetupSignalHandler calls onInterrupt (if non-nil) and then cancel when
// the first SIGINT or SIGTERM arrives. The listener exits once ctx is done.
func SetupSignalHandler(ctx context.Context, cancel context.CancelFunc, onInterrupt func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			if onInterrupt != nil {
				onInterrupt()
			}
			cancel()
		case <-ctx.Done():
			return
		}
	}()
}
