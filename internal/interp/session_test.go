package interp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edyy78/uireplay/internal/a11y"
	"github.com/edyy78/uireplay/internal/input"
	"github.com/edyy78/uireplay/internal/journal"
	"github.com/edyy78/uireplay/internal/target"
)

type fakeConnector struct {
	app   *target.Application
	err   error
	calls int
}

func (f *fakeConnector) Connect(ctx context.Context) (*target.Application, error) {
	f.calls++
	return f.app, f.err
}

type sessionHarness struct {
	cfg      Config
	recorder *input.Recorder
	log      bytes.Buffer
	out      bytes.Buffer
}

func newSession(t *testing.T, connector Connector, lines string) *sessionHarness {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crop_canvas.txt")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0644))

	s := &sessionHarness{recorder: input.NewRecorder()}
	s.cfg = Config{
		ScriptPath:  path,
		TargetName:  target.DefaultName,
		WindowTitle: "GNU Image Manipulation Program",
		ExportFile:  writePNG(t, 20, 30),
		Journal:     journal.New(&s.log),
		Backend:     s.recorder,
		Target:      connector,
		Output:      &s.out,
		Sleep:       func(ctx context.Context, d time.Duration) error { return nil },
	}
	return s
}

func gimpApp() *target.Application {
	return &target.Application{
		Name: target.DefaultName,
		PID:  42,
		Root: a11y.NewStatic(target.DefaultName, a11y.RoleApplication,
			a11y.NewStatic("GNU Image Manipulation Program", "frame",
				a11y.NewStatic("", a11y.RoleMenuBar,
					a11y.NewStatic("File", a11y.RoleMenu),
					a11y.NewStatic("Edit", a11y.RoleMenu),
				),
			),
		),
	}
}

func TestRun_Session(t *testing.T) {
	connector := &fakeConnector{app: gimpApp()}
	s := newSession(t, connector, "title:crop example\naction:image-new\nkeyboard:Enter\n")

	stats, err := Run(context.Background(), s.cfg)
	require.NoError(t, err)

	assert.Equal(t, 1, connector.calls)
	assert.Equal(t, []string{"activate GNU Image Manipulation Program", "key ctrl+n", "key Return"}, s.recorder.Events())
	assert.Equal(t, 3, stats.Lines)
	assert.Equal(t, 2, stats.Executed)

	log := s.log.String()
	for _, want := range []string{
		"| uireplay test",
		"| Running test: " + s.cfg.ScriptPath + ".",
		"| Getting accessibility handles...",
		"| Bringing window to front...",
		"| Menus: File, Edit",
		"| action:image-new",
	} {
		assert.Contains(t, log, want)
	}
	assert.NotContains(t, log, "ERROR")
	assert.Contains(t, s.out.String(), "OK")
}

func TestRun_TargetUnavailableRunsNothing(t *testing.T) {
	connector := &fakeConnector{err: fmt.Errorf("%w: gimp-2.99 not running after 5s", target.ErrUnavailable)}
	s := newSession(t, connector, "keyboard:Enter\nmouse:left\n")

	stats, err := Run(context.Background(), s.cfg)
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrTargetUnavailable))
	assert.Empty(t, s.recorder.Events())
	assert.Equal(t, 0, stats.Lines)
	assert.Contains(t, s.log.String(), "ERROR: target application unavailable")
	assert.NotContains(t, s.log.String(), "keyboard:Enter")
	assert.Contains(t, s.out.String(), "FAILED")
}

func TestRun_NoScript(t *testing.T) {
	connector := &fakeConnector{app: gimpApp()}
	s := newSession(t, connector, "")
	s.cfg.ScriptPath = ""

	_, err := Run(context.Background(), s.cfg)
	assert.ErrorIs(t, err, ErrNoScript)
	assert.Contains(t, s.log.String(), "ERROR: no test file supplied")
	assert.Equal(t, 0, connector.calls)
}

func TestRun_MissingScriptSkipsTarget(t *testing.T) {
	connector := &fakeConnector{app: gimpApp()}
	s := newSession(t, connector, "")
	s.cfg.ScriptPath = filepath.Join(t.TempDir(), "missing.txt")

	_, err := Run(context.Background(), s.cfg)
	assert.ErrorIs(t, err, ErrIO)
	assert.Equal(t, 0, connector.calls)
}

func TestRun_WithoutAccessibility(t *testing.T) {
	app := gimpApp()
	app.Root = nil
	s := newSession(t, &fakeConnector{app: app}, "keyboard:a\n")

	_, err := Run(context.Background(), s.cfg)
	require.NoError(t, err)
	assert.Contains(t, s.log.String(), "Accessibility tree unavailable, menubar not loaded.")
}

type noWindowBackend struct{ *input.Recorder }

func (n noWindowBackend) ActivateWindow(ctx context.Context, title string) error {
	return errors.New("no window titled " + title)
}

func TestRun_RaiseFailureIsNotFatal(t *testing.T) {
	s := newSession(t, &fakeConnector{app: gimpApp()}, "keyboard:a\n")
	s.cfg.Backend = noWindowBackend{s.recorder}

	_, err := Run(context.Background(), s.cfg)
	require.NoError(t, err)
	assert.Contains(t, s.log.String(), "WARNING: could not raise window")
	assert.Equal(t, []string{"key a"}, s.recorder.Events())
}

func TestRun_NoTarget(t *testing.T) {
	s := newSession(t, nil, "keyboard:a\n")
	s.cfg.Target = nil

	_, err := Run(context.Background(), s.cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"key a"}, s.recorder.Events())
	assert.NotContains(t, s.log.String(), "Getting accessibility handles")
}
