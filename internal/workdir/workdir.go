// Package workdir provides a scoped working-directory switch. Build and
// measurement commands expect to run from the bench root, but the process
// working directory is shared global state, so every switch must be paired
// with a restore on all exit paths.
package workdir

import (
	"fmt"
	"log/slog"
	"os"
)

// Enter changes the process working directory to dir and returns a restore
// function that switches back to the previous directory. Callers must defer
// the restore so it also runs on error paths.
func Enter(dir string) (func(), error) {
	prev, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve current directory: %w", err)
	}
	if err := os.Chdir(dir); err != nil {
		return nil, fmt.Errorf("failed to enter %s: %w", dir, err)
	}
	slog.Debug("entered working directory", "dir", dir)
	return func() {
		if err := os.Chdir(prev); err != nil {
			// Nothing sensible to do beyond reporting it; the process is
			// about to exit anyway on every path that hits this.
			slog.Error("failed to restore working directory", "dir", prev, "error", err)
		}
	}, nil
}
