package input

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Xdotool implements Backend by shelling out to xdotool (X11 only)
type Xdotool struct {
	// Path is the xdotool executable
	Path string

	// run executes a built command; replaced in tests
	run func(cmd *exec.Cmd) (string, error)
}

// NewXdotool creates an Xdotool backend using the xdotool found on PATH
func NewXdotool() *Xdotool {
	return &Xdotool{Path: "xdotool", run: runCommand}
}

// Name returns the backend name
func (x *Xdotool) Name() string {
	return string(BackendXdotool)
}

// BuildCommand creates the xdotool command for the given arguments
func (x *Xdotool) BuildCommand(ctx context.Context, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, x.Path, args...)
}

// MovePointer runs xdotool mousemove
func (x *Xdotool) MovePointer(ctx context.Context, px, py int) error {
	_, err := x.exec(ctx, "mousemove", strconv.Itoa(px), strconv.Itoa(py))
	return err
}

// Click runs xdotool click
func (x *Xdotool) Click(ctx context.Context, button Button) error {
	_, err := x.exec(ctx, "click", strconv.Itoa(int(button)))
	return err
}

// PressKey runs xdotool key
func (x *Xdotool) PressKey(ctx context.Context, combo string) error {
	if combo == "" {
		return fmt.Errorf("empty key combination")
	}
	_, err := x.exec(ctx, "key", combo)
	return err
}

// ActivateWindow searches windows by title and activates each match
func (x *Xdotool) ActivateWindow(ctx context.Context, title string) error {
	out, err := x.exec(ctx, "search", "--name", title)
	if err != nil {
		return err
	}

	ids := strings.Fields(out)
	if len(ids) == 0 {
		return fmt.Errorf("no window titled %q", title)
	}
	for _, id := range ids {
		if _, err := x.exec(ctx, "windowactivate", id); err != nil {
			return err
		}
	}
	return nil
}

func (x *Xdotool) exec(ctx context.Context, args ...string) (string, error) {
	cmd := x.BuildCommand(ctx, args...)
	out, err := x.run(cmd)
	if err != nil {
		return out, fmt.Errorf("xdotool %s failed: %w", strings.Join(args, " "), err)
	}
	return out, nil
}

// runCommand executes cmd, returning stdout and folding stderr into the error
func runCommand(cmd *exec.Cmd) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return stdout.String(), fmt.Errorf("%w: %s", err, msg)
		}
		return stdout.String(), err
	}
	return stdout.String(), nil
}
