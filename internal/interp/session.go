package interp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edyy78/uireplay/internal/a11y"
	"github.com/edyy78/uireplay/internal/output"
	"github.com/edyy78/uireplay/internal/script"
	"github.com/edyy78/uireplay/internal/target"
)

// Connector makes the application under test reachable
type Connector interface {
	Connect(ctx context.Context) (*target.Application, error)
}

// Run executes a whole test session: it journals a header, opens the script,
// connects to the target, raises its window, indexes its menubar and then
// executes the script. No script line runs unless the target was found.
// Every fatal error is journaled before it is returned.
// The caller reports it on the console.
func Run(ctx context.Context, cfg Config) (Stats, error) {
	in := New(cfg)
	runID := uuid.New().String()

	in.journal.Print("uireplay test")
	in.journal.Print(time.Now().Format(time.ANSIC))
	in.journal.Printf("Run %s", runID)

	stats, err := in.session(ctx, cfg, runID)
	if err != nil {
		in.journal.Errorf("%v", err)
	}
	output.FormatSummary(in.out, stats.Summary(err))
	return stats, err
}

func (in *Interpreter) session(ctx context.Context, cfg Config, runID string) (Stats, error) {
	if cfg.ScriptPath == "" {
		return Stats{}, ErrNoScript
	}
	in.journal.Printf("Running test: %s.", cfg.ScriptPath)

	r, err := script.Open(cfg.ScriptPath, cfg.Encoding)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer r.Close()

	output.FormatHeader(in.out, output.Header{
		Script:  cfg.ScriptPath,
		Target:  cfg.TargetName,
		Backend: in.backend.Name(),
		Pause:   in.pause,
		RunID:   runID,
	})

	if cfg.Target != nil {
		in.journal.Print("Getting accessibility handles...")
		app, err := cfg.Target.Connect(ctx)
		if err != nil {
			return Stats{}, err
		}
		defer app.Close()

		in.raiseWindow(ctx, cfg.WindowTitle)
		in.loadMenubar(app)
	}

	return in.Execute(ctx, r)
}

// raiseWindow brings the application to the front; failure is not fatal
func (in *Interpreter) raiseWindow(ctx context.Context, title string) {
	if title == "" {
		return
	}
	in.journal.Print("Bringing window to front...")
	if err := in.backend.ActivateWindow(ctx, title); err != nil {
		in.journal.Warnf("could not raise window %q: %v", title, err)
		in.logger.Warn("raise window failed", zap.String("title", title), zap.Error(err))
	}
}

// loadMenubar journals the application's top-level menus; failure is not fatal
func (in *Interpreter) loadMenubar(app *target.Application) {
	if app.Root == nil {
		in.journal.Print("Accessibility tree unavailable, menubar not loaded.")
		return
	}
	menubar, err := a11y.LoadMenubar(app.Root)
	if err != nil {
		in.journal.Warnf("%v", err)
		return
	}
	in.journal.Printf("Menus: %s", strings.Join(menubar.Names, ", "))
}
