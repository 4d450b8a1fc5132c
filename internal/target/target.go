// Package target finds the application under test, launching it once if needed.
package target

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/process"
	"go.uber.org/zap"

	"github.com/edyy78/uireplay/internal/a11y"
	"github.com/edyy78/uireplay/internal/journal"
)

// Defaults for the application under test
const (
	DefaultName    = "gimp-2.99"
	DefaultStartup = 5 * time.Second
)

// Linux truncates process names to this many bytes
const commLen = 15

// ErrUnavailable is returned when the application cannot be found even after a launch attempt
var ErrUnavailable = errors.New("target application unavailable")

// Application is a handle on the running application under test
type Application struct {
	Name     string
	PID      int32
	Launched bool
	// Root is the application's accessible node; nil without an accessibility bus
	Root a11y.Node

	tree Tree
}

// Close releases the accessibility connection, if any
func (a *Application) Close() error {
	if a.tree == nil {
		return nil
	}
	return a.tree.Close()
}

// Tree is an open accessibility tree
type Tree interface {
	Root() a11y.Node
	Close() error
}

// Proc is a running process as seen by the finder
type Proc struct {
	PID  int32
	Name string
}

// Finder locates or launches the application under test
type Finder struct {
	Name    string
	Startup time.Duration
	Journal *journal.Journal
	Logger  *zap.Logger
	// OpenTree connects to the accessibility tree; nil disables accessibility lookup
	OpenTree func(ctx context.Context) (Tree, error)

	processes func(ctx context.Context) ([]Proc, error)
	start     func(name string) error
	sleep     func(ctx context.Context, d time.Duration) error
}

// NewFinder creates a Finder backed by the system process table
func NewFinder(name string, startup time.Duration, j *journal.Journal, logger *zap.Logger) *Finder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Finder{
		Name:      name,
		Startup:   startup,
		Journal:   j,
		Logger:    logger,
		processes: listProcesses,
		start:     startDetached,
		sleep:     sleepContext,
	}
}

// Connect returns the running application, starting it and waiting Startup once if it is not running
func (f *Finder) Connect(ctx context.Context) (*Application, error) {
	f.Journal.Printf("Finding running instance of %s.", f.Name)

	app, err := f.FindRunningInstance(ctx)
	if err != nil {
		return nil, err
	}
	if app == nil {
		f.Journal.Print("Not found, starting a new instance.")
		app, err = f.LaunchAndWait(ctx)
		if err != nil {
			f.Journal.Errorf("%s is not running.", f.Name)
			return nil, err
		}
	}
	f.Journal.Printf("%s found.", f.Name)
	f.Logger.Debug("target found", zap.String("name", app.Name), zap.Int32("pid", app.PID), zap.Bool("launched", app.Launched))

	f.attachTree(ctx, app)
	return app, nil
}

// FindRunningInstance returns the first process named Name, or nil when none is running
func (f *Finder) FindRunningInstance(ctx context.Context) (*Application, error) {
	procs, err := f.processes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}
	for _, p := range procs {
		if sameName(p.Name, f.Name) {
			return &Application{Name: f.Name, PID: p.PID}, nil
		}
	}
	return nil, nil
}

// LaunchAndWait starts Name once, waits Startup, and looks for it once more
func (f *Finder) LaunchAndWait(ctx context.Context) (*Application, error) {
	if err := f.start(f.Name); err != nil {
		return nil, fmt.Errorf("%w: failed to start %s: %v", ErrUnavailable, f.Name, err)
	}
	if err := f.sleep(ctx, f.Startup); err != nil {
		return nil, err
	}

	app, err := f.FindRunningInstance(ctx)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, fmt.Errorf("%w: %s not running after %s", ErrUnavailable, f.Name, f.Startup)
	}
	app.Launched = true
	return app, nil
}

func (f *Finder) attachTree(ctx context.Context, app *Application) {
	if f.OpenTree == nil {
		return
	}
	tree, err := f.OpenTree(ctx)
	if err != nil {
		f.Logger.Warn("accessibility bus unavailable", zap.Error(err))
		return
	}
	root, err := a11y.FindApplication(tree.Root(), f.Name)
	if err != nil {
		f.Logger.Warn("application not in accessibility tree", zap.String("name", f.Name), zap.Error(err))
		_ = tree.Close()
		return
	}
	app.Root = root
	app.tree = tree
}

// sameName compares a process name with the wanted executable name,
// allowing for the kernel's truncated comm field
func sameName(procName, want string) bool {
	if procName == want {
		return true
	}
	return len(procName) == commLen && strings.HasPrefix(want, procName)
}

func listProcesses(ctx context.Context) ([]Proc, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Proc, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			// processes exit while we iterate
			continue
		}
		out = append(out, Proc{PID: p.Pid, Name: name})
	}
	return out, nil
}

// startDetached starts name in the background without waiting for it
func startDetached(name string) error {
	cmd := exec.Command(name)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
