// Package interp replays UI test scripts.
//
// A script is a flat list of "kind:payload" lines. Each line is journaled,
// dispatched to the handler registered for its kind and followed by a fixed
// pause so the application's interface can keep up. Lines run strictly in
// file order and one at a time.
package interp

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/edyy78/uireplay/internal/input"
	"github.com/edyy78/uireplay/internal/journal"
	"github.com/edyy78/uireplay/internal/output"
	"github.com/edyy78/uireplay/internal/script"
	"github.com/edyy78/uireplay/internal/snapshot"
)

// Default pacing
const (
	DefaultPause       = 500 * time.Millisecond
	DefaultSettleDelay = time.Second
	DefaultExportDelay = 2 * time.Second
)

// Config holds the interpreter configuration.
// Zero durations mean no wait.
type Config struct {
	ScriptPath string
	Encoding   string

	// Pause follows every dispatched, malformed or ignored line
	Pause time.Duration
	// SettleDelay follows each key of the export sequence
	SettleDelay time.Duration
	// ExportDelay precedes loading the exported image
	ExportDelay time.Duration
	ExportFile  string

	TargetName  string
	WindowTitle string

	// Actions and Toolbox overlay DefaultActions and DefaultToolbox
	Actions map[string]string
	Toolbox map[string]string

	Journal *journal.Journal
	Backend input.Backend
	Target  Connector
	Check   ImageCheck
	Output  io.Writer
	Logger  *zap.Logger

	// Sleep waits between steps; replaced in tests
	Sleep func(ctx context.Context, d time.Duration) error
}

// Stats counts what happened to each line of a script
type Stats struct {
	Lines     int
	Executed  int
	Skipped   int
	Malformed int
	Ignored   int
	Duration  time.Duration
}

// Summary converts s for display
func (s Stats) Summary(err error) output.Summary {
	return output.Summary{
		Lines:     s.Lines,
		Executed:  s.Executed,
		Skipped:   s.Skipped,
		Malformed: s.Malformed,
		Ignored:   s.Ignored,
		Duration:  s.Duration,
		Err:       err,
	}
}

// Interpreter executes scripts through a fixed dispatch table
type Interpreter struct {
	journal  *journal.Journal
	backend  input.Backend
	check    ImageCheck
	out      io.Writer
	logger   *zap.Logger
	sleep    func(ctx context.Context, d time.Duration) error
	handlers map[script.Kind]Handler

	pause       time.Duration
	settleDelay time.Duration
	exportDelay time.Duration
	exportFile  string
}

// New creates an Interpreter with a handler registered for every script.Kinds entry
func New(cfg Config) *Interpreter {
	in := &Interpreter{
		journal:     cfg.Journal,
		backend:     cfg.Backend,
		check:       cfg.Check,
		out:         cfg.Output,
		logger:      cfg.Logger,
		sleep:       cfg.Sleep,
		pause:       cfg.Pause,
		settleDelay: cfg.SettleDelay,
		exportDelay: cfg.ExportDelay,
		exportFile:  cfg.ExportFile,
	}
	if in.journal == nil {
		in.journal = journal.New(io.Discard)
	}
	if in.backend == nil {
		in.backend = input.NewRecorder()
	}
	if in.check == nil {
		in.check = RecordCheck{Journal: in.journal}
	}
	if in.out == nil {
		in.out = io.Discard
	}
	if in.logger == nil {
		in.logger = zap.NewNop()
	}
	if in.sleep == nil {
		in.sleep = sleepContext
	}
	if in.exportFile == "" {
		in.exportFile = snapshot.DefaultExportFile
	}

	in.handlers = map[script.Kind]Handler{
		script.KindLog:       HandlerFunc(in.handleLog),
		script.KindMouse:     HandlerFunc(in.handleMouse),
		script.KindMouseMove: HandlerFunc(in.handleMouseMove),
		script.KindKeyboard:  HandlerFunc(in.handleKeyboard),
		script.KindAction: &macroHandler{
			in:        in,
			namespace: "action",
			shortcuts: mergeShortcuts(DefaultActions, cfg.Actions),
		},
		script.KindToolbox: &macroHandler{
			in:        in,
			namespace: "toolbox",
			shortcuts: mergeShortcuts(DefaultToolbox, cfg.Toolbox),
		},
		script.KindTest: HandlerFunc(in.handleTest),
	}
	return in
}

// Register binds kind to h, replacing any existing handler.
// It must not be called while a script is running.
func (in *Interpreter) Register(kind script.Kind, h Handler) {
	in.handlers[kind] = h
}

// RunFile opens the script at path and executes it
func (in *Interpreter) RunFile(ctx context.Context, path, encoding string) (Stats, error) {
	r, err := script.Open(path, encoding)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer r.Close()
	return in.Execute(ctx, r)
}

// Execute runs every line of r in order, pausing after each line that is
// not skipped. A handler error stops the script.
func (in *Interpreter) Execute(ctx context.Context, r *script.Reader) (stats Stats, err error) {
	start := time.Now()
	defer func() { stats.Duration = time.Since(start) }()

	for {
		raw, lineNo, ok := r.Next()
		if !ok {
			break
		}
		stats.Lines++
		in.journal.Print(raw)

		cmd, status := script.Parse(raw, lineNo)
		switch status {
		case script.StatusSkip:
			stats.Skipped++
			continue

		case script.StatusMalformed:
			stats.Malformed++
			in.journal.Warnf("malformed line %d: %q", lineNo, cmd.Raw)
			output.FormatWarning(in.out, fmt.Sprintf("line %d: malformed %q", lineNo, cmd.Raw))

		case script.StatusOK:
			handler, known := in.handlers[cmd.Kind]
			if !known {
				stats.Ignored++
				in.logger.Debug("ignoring unknown kind", zap.Int("line", lineNo), zap.String("kind", string(cmd.Kind)))
				break
			}

			output.FormatStep(in.out, lineNo, string(cmd.Kind), cmd.Payload)
			in.logger.Debug("dispatch", zap.Int("line", lineNo), zap.String("kind", string(cmd.Kind)), zap.String("payload", cmd.Payload))
			if err := handler.Handle(ctx, cmd.Payload); err != nil {
				return stats, fmt.Errorf("line %d (%s): %w", lineNo, cmd.Kind, err)
			}
			stats.Executed++
		}

		if err := in.sleep(ctx, in.pause); err != nil {
			return stats, err
		}
	}

	if err := r.Err(); err != nil {
		return stats, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return stats, nil
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
