// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/filescript/internal/ctxlog"
)

// Watch reads signals from sigCh until it is closed or ctx is done.
// The first signal of a type calls stop, so the statement being executed can finish and the
// session is torn down. A second signal of the same type calls cancel and returns.
func Watch(ctx context.Context, sigCh chan os.Signal, stop, cancel context.CancelFunc) {
	seen := make(map[os.Signal]struct{})

	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-sigCh:
			if !ok {
				return
			}

			if _, again := seen[sig]; again {
				ctxlog.Warn(ctx, "watchdog", "detail", "received second signal of type, cancelling", "signal", sig.String())
				cancel()

				return
			}

			ctxlog.Info(ctx, "watchdog", "detail", "received first signal of type, stopping after the current statement", "signal", sig.String())

			seen[sig] = struct{}{}

			if stop != nil {
				stop()
			}
		}
	}
}
