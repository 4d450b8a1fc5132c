package target

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/edyy78/uireplay/internal/a11y"
	"github.com/edyy78/uireplay/internal/journal"
)

type fakeSystem struct {
	running   []Proc
	afterLast []Proc
	startErr  error
	started   []string
	slept     []time.Duration
}

func (s *fakeSystem) finder(t *testing.T, buf *bytes.Buffer) (*Finder, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	f := NewFinder(DefaultName, DefaultStartup, journal.New(buf), zap.New(core))
	f.processes = func(ctx context.Context) ([]Proc, error) { return s.running, nil }
	f.start = func(name string) error {
		s.started = append(s.started, name)
		if s.startErr != nil {
			return s.startErr
		}
		s.running = s.afterLast
		return nil
	}
	f.sleep = func(ctx context.Context, d time.Duration) error {
		s.slept = append(s.slept, d)
		return nil
	}
	return f, logs
}

type staticTree struct {
	root   a11y.Node
	closed bool
}

func (s *staticTree) Root() a11y.Node { return s.root }
func (s *staticTree) Close() error    { s.closed = true; return nil }

func TestConnect_AlreadyRunning(t *testing.T) {
	var buf bytes.Buffer
	sys := &fakeSystem{running: []Proc{{PID: 10, Name: "bash"}, {PID: 42, Name: "gimp-2.99"}}}
	f, _ := sys.finder(t, &buf)

	app, err := f.Connect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(42), app.PID)
	assert.False(t, app.Launched)
	assert.Empty(t, sys.started)
	assert.Empty(t, sys.slept)
	assert.Contains(t, buf.String(), "gimp-2.99 found.")
	assert.NotContains(t, buf.String(), "starting a new instance")
}

func TestConnect_LaunchesOnce(t *testing.T) {
	var buf bytes.Buffer
	sys := &fakeSystem{afterLast: []Proc{{PID: 7, Name: "gimp-2.99"}}}
	f, _ := sys.finder(t, &buf)

	app, err := f.Connect(context.Background())
	require.NoError(t, err)

	assert.True(t, app.Launched)
	assert.Equal(t, []string{"gimp-2.99"}, sys.started)
	assert.Equal(t, []time.Duration{DefaultStartup}, sys.slept)
	assert.Contains(t, buf.String(), "Not found, starting a new instance.")
}

func TestConnect_Unavailable(t *testing.T) {
	var buf bytes.Buffer
	sys := &fakeSystem{}
	f, _ := sys.finder(t, &buf)

	_, err := f.Connect(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Len(t, sys.started, 1, "exactly one launch attempt")
	assert.Contains(t, buf.String(), "ERROR: gimp-2.99 is not running.")
}

func TestConnect_StartFails(t *testing.T) {
	var buf bytes.Buffer
	sys := &fakeSystem{startErr: errors.New("executable file not found in $PATH")}
	f, _ := sys.finder(t, &buf)

	_, err := f.Connect(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Empty(t, sys.slept)
}

func TestConnect_AttachesAccessibleRoot(t *testing.T) {
	var buf bytes.Buffer
	sys := &fakeSystem{running: []Proc{{PID: 42, Name: "gimp-2.99"}}}
	f, _ := sys.finder(t, &buf)

	tree := &staticTree{root: a11y.NewStatic("main", "desktop frame",
		a11y.NewStatic("gimp-2.99", a11y.RoleApplication),
	)}
	f.OpenTree = func(ctx context.Context) (Tree, error) { return tree, nil }

	app, err := f.Connect(context.Background())
	require.NoError(t, err)
	require.NotNil(t, app.Root)
	name, _ := app.Root.Name()
	assert.Equal(t, "gimp-2.99", name)

	require.NoError(t, app.Close())
	assert.True(t, tree.closed)
}

func TestConnect_AccessibilityUnavailableIsNotFatal(t *testing.T) {
	var buf bytes.Buffer
	sys := &fakeSystem{running: []Proc{{PID: 42, Name: "gimp-2.99"}}}
	f, logs := sys.finder(t, &buf)
	f.OpenTree = func(ctx context.Context) (Tree, error) { return nil, errors.New("no session bus") }

	app, err := f.Connect(context.Background())
	require.NoError(t, err)
	assert.Nil(t, app.Root)
	assert.NoError(t, app.Close())
	assert.Equal(t, 1, logs.FilterMessage("accessibility bus unavailable").Len())
}

func TestSameName(t *testing.T) {
	tests := []struct {
		proc string
		want string
		ok   bool
	}{
		{"gimp-2.99", "gimp-2.99", true},
		{"gimp", "gimp-2.99", false},
		{"gimp-console-2.", "gimp-console-2.99", true},
		{"gimp-console-3.", "gimp-console-2.99", false},
	}
	for _, tt := range tests {
		if got := sameName(tt.proc, tt.want); got != tt.ok {
			t.Errorf("sameName(%q, %q) = %v, want %v", tt.proc, tt.want, got, tt.ok)
		}
	}
}

func TestSleepContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
}
