// Package opener hands result paths to the host desktop through its launcher commands.
package opener

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/custodia-labs/deep-core/internal/core/domain"
	"github.com/custodia-labs/deep-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ResultOpener = (*Opener)(nil)

// Runner executes a command and waits for it to exit
type Runner func(ctx context.Context, name string, args ...string) error

// ExecRunner runs commands with os/exec
func ExecRunner(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, out)
	}
	return nil
}

// Opener maps open, reveal and preview onto platform commands.
type Opener struct {
	goos   string
	run    Runner
	logger *slog.Logger
}

// Config holds opener options.
type Config struct {
	GOOS   string // Target platform (default: runtime.GOOS)
	Runner Runner // Command runner (default: ExecRunner)
	Logger *slog.Logger
}

// New creates an opener for the configured platform.
func New(cfg Config) *Opener {
	goos := cfg.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}

	run := cfg.Runner
	if run == nil {
		run = ExecRunner
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Opener{goos: goos, run: run, logger: logger.With("category", "app")}
}

// Open launches the path with its default handler.
func (o *Opener) Open(ctx context.Context, path string) error {
	switch o.goos {
	case "darwin":
		return o.exec(ctx, path, "open", path)
	case "windows":
		return o.exec(ctx, path, "cmd", "/c", "start", "", path)
	default:
		return o.exec(ctx, path, "xdg-open", path)
	}
}

// Reveal shows the path selected in its containing folder. Platforms
// without selection support open the containing folder instead.
func (o *Opener) Reveal(ctx context.Context, path string) error {
	switch o.goos {
	case "darwin":
		return o.exec(ctx, path, "open", "-R", path)
	case "windows":
		return o.exec(ctx, path, "explorer", "/select,"+path)
	default:
		return o.exec(ctx, path, "xdg-open", filepath.Dir(path))
	}
}

// Preview shows a quick-look preview. Only macOS has one; elsewhere the
// file is opened.
func (o *Opener) Preview(ctx context.Context, path string) error {
	if o.goos == "darwin" {
		return o.exec(ctx, path, "qlmanage", "-p", path)
	}
	return o.Open(ctx, path)
}

func (o *Opener) exec(ctx context.Context, path, name string, args ...string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", domain.ErrInvalidInput)
	}

	o.logger.Debug("running opener command", "command", name, "args", args)
	if err := o.run(ctx, name, args...); err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}
	return nil
}
