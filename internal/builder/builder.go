// Package builder runs each implementation's build commands. A single
// failing build invalidates comparability of the whole batch, so the first
// non-zero exit aborts everything.
package builder

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"crossbench/internal/registry"
	"crossbench/internal/workdir"
)

// execCommand allows tests to substitute the spawned process.
var execCommand = exec.CommandContext

// ExitError reports a build command that exited non-zero. The harness
// process exits with the same code.
type ExitError struct {
	Label string
	Cmd   []string
	Code  int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("build failed for %s: %s (exit %d)", e.Label, strings.Join(e.Cmd, " "), e.Code)
}

// Build compiles every implementation in declaration order, running its
// build commands sequentially from the given build root. Command output is
// streamed to the log line by line as it arrives. The first command that
// exits non-zero aborts the batch with an *ExitError; the previous working
// directory is restored regardless.
func Build(ctx context.Context, reg *registry.Registry, buildRoot string) error {
	restore, err := workdir.Enter(buildRoot)
	if err != nil {
		return err
	}
	defer restore()

	for _, im := range reg.Implementations() {
		slog.Info("building", "implementation", im.Label)
		for _, argv := range im.Build {
			if err := runBuildCommand(ctx, im.Label, argv); err != nil {
				return err
			}
		}
		slog.Info("building complete", "implementation", im.Label)
	}
	return nil
}

func runBuildCommand(ctx context.Context, label string, argv []string) error {
	cmd := execCommand(ctx, argv[0], argv[1:]...)
	slog.Debug("cmd", "args", strings.Join(argv, " "))

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("build %s: %w", label, err)
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("build %s: failed to start %q: %w", label, argv[0], err)
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		slog.Debug(scanner.Text())
	}

	if err := cmd.Wait(); err != nil {
		code := 1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			code = exitErr.ExitCode()
		}
		slog.Error("build failed", "implementation", label, "cmd", strings.Join(argv, " "), "exit", code)
		return &ExitError{Label: label, Cmd: argv, Code: code}
	}
	return nil
}
