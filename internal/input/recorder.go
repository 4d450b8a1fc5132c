package input

import (
	"context"
	"fmt"
)

// Recorder implements Backend without touching the desktop. It keeps every
// call as a short text event, which makes it the dry-run backend and the
// test double for the interpreter.
type Recorder struct {
	events []string
	// OnEvent, when set, is called for every recorded event
	OnEvent func(event string)
}

// NewRecorder creates an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Name returns the backend name
func (r *Recorder) Name() string {
	return string(BackendDryRun)
}

// MovePointer records "move X Y"
func (r *Recorder) MovePointer(ctx context.Context, x, y int) error {
	return r.record(ctx, fmt.Sprintf("move %d %d", x, y))
}

// Click records "click N"
func (r *Recorder) Click(ctx context.Context, button Button) error {
	return r.record(ctx, fmt.Sprintf("click %d", int(button)))
}

// PressKey records "key COMBO"
func (r *Recorder) PressKey(ctx context.Context, combo string) error {
	return r.record(ctx, "key "+combo)
}

// ActivateWindow records "activate TITLE"
func (r *Recorder) ActivateWindow(ctx context.Context, title string) error {
	return r.record(ctx, "activate "+title)
}

// Events returns a copy of the recorded events in call order
func (r *Recorder) Events() []string {
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}

func (r *Recorder) record(ctx context.Context, event string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.events = append(r.events, event)
	if r.OnEvent != nil {
		r.OnEvent(event)
	}
	return nil
}
