package fold

import (
	"fmt"
	"io"
	"os"
	"time"
)

// debugOut is where [fold] diagnostics go. Tests swap it for a buffer.
var debugOut io.Writer = os.Stderr

// debugStats holds per-frame draw metrics. Only populated in debug mode.
type debugStats struct {
	captureTime time.Duration
	drawTime    time.Duration
	panes       int
	halves      int
}

// debugf prints a [fold] prefixed line when debug mode is enabled.
func (f *Foldable) debugf(format string, args ...any) {
	if !f.debug {
		return
	}
	_, _ = fmt.Fprintf(debugOut, "[fold] "+format+"\n", args...)
}

// debugLog prints per-frame draw stats.
func (f *Foldable) debugLog(stats debugStats) {
	if !f.debug {
		return
	}
	_, _ = fmt.Fprintf(debugOut,
		"[fold] capture: %v | draw: %v | panes: %d | halves: %d | rotation: %.2f\n",
		stats.captureTime, stats.drawTime, stats.panes, stats.halves, f.rotation)
}

// debugActivePaneLimit is the active-set size above which the cache is
// reported as unexpectedly large.
const debugActivePaneLimit = 8

func (f *Foldable) debugCheckCache() {
	if n := f.cache.Len(); n > debugActivePaneLimit {
		f.debugf("warning: %d active panes (threshold %d)", n, debugActivePaneLimit)
	}
}
