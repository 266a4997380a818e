//go:build linux

package cmd

import (
	"runtime"

	perf "github.com/hodgesds/perf-utils"
)

// countInstructions runs f on a locked OS thread under the hardware
// instruction counter. f still runs when the counter can not be opened.
func countInstructions(f func()) (instructions uint64, err error) {
	var ran bool
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	pv, err := perf.CPUInstructions(func() error {
		ran = true
		f()
		return nil
	})
	if err != nil {
		if !ran {
			f()
		}
		return
	}
	instructions = pv.Value
	return
}
