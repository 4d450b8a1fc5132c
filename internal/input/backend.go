package input

import (
	"context"
	"fmt"
)

// Button identifies a pointer button by its X11 number
type Button int

const (
	ButtonLeft   Button = 1
	ButtonMiddle Button = 2
	ButtonRight  Button = 3
)

// ParseButton maps a script button name to a Button
func ParseButton(name string) (Button, bool) {
	switch name {
	case "left":
		return ButtonLeft, true
	case "middle":
		return ButtonMiddle, true
	case "right":
		return ButtonRight, true
	default:
		return 0, false
	}
}

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return fmt.Sprintf("button%d", int(b))
	}
}

// Backend injects synthetic input into the desktop session
type Backend interface {
	// Name returns the backend name for display purposes
	Name() string

	// MovePointer moves the pointer to absolute screen coordinates
	MovePointer(ctx context.Context, x, y int) error

	// Click presses and releases a pointer button at the current position
	Click(ctx context.Context, button Button) error

	// PressKey sends a key combination such as "ctrl+shift+e" or "Return"
	PressKey(ctx context.Context, combo string) error

	// ActivateWindow raises every window whose title matches
	ActivateWindow(ctx context.Context, title string) error
}

// BackendName selects a Backend implementation
type BackendName string

const (
	BackendXdotool BackendName = "xdotool"
	BackendDryRun  BackendName = "dry-run"
)

// ValidateBackend checks if the given backend string is valid and returns the BackendName
func ValidateBackend(name string) (BackendName, error) {
	switch BackendName(name) {
	case BackendXdotool:
		return BackendXdotool, nil
	case BackendDryRun:
		return BackendDryRun, nil
	default:
		return "", fmt.Errorf("unknown input backend: %q (valid options: xdotool, dry-run)", name)
	}
}

// NewBackend creates a Backend for the given name
func NewBackend(name BackendName) (Backend, error) {
	switch name {
	case BackendXdotool:
		return NewXdotool(), nil
	case BackendDryRun:
		return NewRecorder(), nil
	default:
		return nil, fmt.Errorf("unknown input backend: %s", name)
	}
}
