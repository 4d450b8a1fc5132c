package interp

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/edyy78/uireplay/internal/input"
	"github.com/edyy78/uireplay/internal/snapshot"
)

// Handler executes the payload of one script command
type Handler interface {
	Handle(ctx context.Context, payload string) error
}

// HandlerFunc adapts a function to Handler
type HandlerFunc func(ctx context.Context, payload string) error

// Handle calls f
func (f HandlerFunc) Handle(ctx context.Context, payload string) error {
	return f(ctx, payload)
}

// A pair must stand alone as a token: "10,20" in "left 10,20", never "5,20" in "10.5,20"
var coordsPattern = regexp.MustCompile(`(?:^|\s)(-?\d+)\s*,\s*(-?\d+)(?:\s|$)`)

// parseCoords finds the single "x,y" pair in s and returns s without it
func parseCoords(s string) (x, y int, rest string, found bool, err error) {
	loc := coordsPattern.FindStringSubmatchIndex(s)
	if loc == nil {
		if strings.Contains(s, ",") {
			return 0, 0, s, false, fmt.Errorf("invalid coordinates: %q", s)
		}
		return 0, 0, s, false, nil
	}

	if x, err = strconv.Atoi(s[loc[2]:loc[3]]); err != nil {
		return 0, 0, s, false, fmt.Errorf("invalid coordinates: %q: %w", s, err)
	}
	if y, err = strconv.Atoi(s[loc[4]:loc[5]]); err != nil {
		return 0, 0, s, false, fmt.Errorf("invalid coordinates: %q: %w", s, err)
	}

	rest = strings.TrimSpace(s[:loc[0]] + " " + s[loc[1]:])
	if strings.Contains(rest, ",") {
		return 0, 0, s, false, fmt.Errorf("invalid coordinates: %q: more than one position", s)
	}
	return x, y, rest, true, nil
}

// translateKey maps script key names onto the input backend's keysyms
func translateKey(combo string) string {
	if combo == "Enter" {
		return "Return"
	}
	return combo
}

func (in *Interpreter) handleLog(ctx context.Context, payload string) error {
	in.journal.Print(payload)
	return nil
}

// handleMouse clicks the named button, moving first when the payload carries "x,y"
func (in *Interpreter) handleMouse(ctx context.Context, payload string) error {
	x, y, buttonName, hasCoords, err := parseCoords(payload)
	if err != nil {
		return err
	}
	buttonName = strings.TrimSpace(buttonName)

	position := ""
	if hasCoords {
		position = fmt.Sprintf("%d,%d", x, y)
	}
	in.journal.Print(strings.TrimSpace("mouse " + buttonName + " " + position))

	if hasCoords {
		if err := in.backend.MovePointer(ctx, x, y); err != nil {
			return err
		}
	}
	if button, ok := input.ParseButton(buttonName); ok {
		return in.backend.Click(ctx, button)
	}
	return nil
}

func (in *Interpreter) handleMouseMove(ctx context.Context, payload string) error {
	x, y, rest, found, err := parseCoords(payload)
	if err != nil {
		return err
	}
	if !found || rest != "" {
		return fmt.Errorf("invalid coordinates: %q", payload)
	}

	in.journal.Printf("mouse move %d,%d", x, y)
	return in.backend.MovePointer(ctx, x, y)
}

func (in *Interpreter) handleKeyboard(ctx context.Context, payload string) error {
	return in.pressKey(ctx, payload)
}

func (in *Interpreter) pressKey(ctx context.Context, combo string) error {
	in.journal.Printf("key press %s", combo)
	return in.backend.PressKey(ctx, translateKey(combo))
}

// macroHandler replays the shortcut bound to a symbolic name.
// Menu actions and toolbox items get separate tables because their labels can collide.
type macroHandler struct {
	in        *Interpreter
	namespace string
	shortcuts map[string]string
}

func (m *macroHandler) Handle(ctx context.Context, payload string) error {
	name := strings.TrimSpace(payload)
	combo, ok := m.shortcuts[name]
	if !ok {
		m.in.journal.Printf("%s %s has no shortcut, ignored", m.namespace, name)
		return nil
	}
	return m.in.pressKey(ctx, combo)
}

// exportKeys overwrites the current image on disk, confirming both dialogs
var exportKeys = []string{"ctrl+shift+e", "Return", "Return"}

// handleTest exports the current image, reloads it and hands it to the image check
func (in *Interpreter) handleTest(ctx context.Context, payload string) error {
	for _, key := range exportKeys {
		if err := in.pressKey(ctx, key); err != nil {
			return err
		}
		if err := in.sleep(ctx, in.settleDelay); err != nil {
			return err
		}
	}
	if err := in.sleep(ctx, in.exportDelay); err != nil {
		return err
	}

	img, err := snapshot.Load(in.exportFile)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return in.check.Check(ctx, strings.TrimSpace(payload), img)
}
