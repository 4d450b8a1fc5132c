package input

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
)

func fakeXdotool(outputs map[string]string, fail string) (*Xdotool, *[]string) {
	var calls []string
	x := NewXdotool()
	x.run = func(cmd *exec.Cmd) (string, error) {
		line := strings.Join(cmd.Args[1:], " ")
		calls = append(calls, line)
		if fail != "" && strings.HasPrefix(line, fail) {
			return "", errors.New("exit status 1")
		}
		return outputs[line], nil
	}
	return x, &calls
}

func TestParseButton(t *testing.T) {
	tests := []struct {
		name   string
		want   Button
		wantOK bool
	}{
		{"left", ButtonLeft, true},
		{"middle", ButtonMiddle, true},
		{"right", ButtonRight, true},
		{"Left", 0, false},
		{"back", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseButton(tt.name)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseButton(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestValidateBackend(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantName  string
		wantError bool
	}{
		{name: "xdotool", input: "xdotool", wantName: "xdotool"},
		{name: "dry run", input: "dry-run", wantName: "dry-run"},
		{name: "unknown", input: "ydotool", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, err := ValidateBackend(tt.input)
			if tt.wantError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			backend, err := NewBackend(name)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if backend.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", backend.Name(), tt.wantName)
			}
		})
	}
}

func TestXdotool_Commands(t *testing.T) {
	x, calls := fakeXdotool(nil, "")
	ctx := context.Background()

	if err := x.MovePointer(ctx, 10, 20); err != nil {
		t.Fatalf("MovePointer: %v", err)
	}
	if err := x.Click(ctx, ButtonRight); err != nil {
		t.Fatalf("Click: %v", err)
	}
	if err := x.PressKey(ctx, "ctrl+n"); err != nil {
		t.Fatalf("PressKey: %v", err)
	}

	want := []string{"mousemove 10 20", "click 3", "key ctrl+n"}
	if strings.Join(*calls, "|") != strings.Join(want, "|") {
		t.Errorf("calls = %q, want %q", *calls, want)
	}
}

func TestXdotool_PressKeyEmpty(t *testing.T) {
	x, calls := fakeXdotool(nil, "")
	if err := x.PressKey(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty combination")
	}
	if len(*calls) != 0 {
		t.Errorf("no command should run, got %q", *calls)
	}
}

func TestXdotool_ActivateWindow(t *testing.T) {
	title := "GNU Image Manipulation Program"
	x, calls := fakeXdotool(map[string]string{
		"search --name " + title: "4194305\n4194312\n",
	}, "")

	if err := x.ActivateWindow(context.Background(), title); err != nil {
		t.Fatalf("ActivateWindow: %v", err)
	}

	want := []string{"search --name " + title, "windowactivate 4194305", "windowactivate 4194312"}
	if strings.Join(*calls, "|") != strings.Join(want, "|") {
		t.Errorf("calls = %q, want %q", *calls, want)
	}
}

func TestXdotool_ActivateWindowNoMatch(t *testing.T) {
	x, _ := fakeXdotool(nil, "")
	err := x.ActivateWindow(context.Background(), "Nothing")
	if err == nil || !strings.Contains(err.Error(), "no window titled") {
		t.Errorf("expected no-window error, got %v", err)
	}
}

func TestXdotool_FailureWrapsArgs(t *testing.T) {
	x, _ := fakeXdotool(nil, "click")
	err := x.Click(context.Background(), ButtonLeft)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "xdotool click 1 failed") {
		t.Errorf("error should name the command, got %v", err)
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	var seen []string
	r.OnEvent = func(e string) { seen = append(seen, e) }
	ctx := context.Background()

	_ = r.ActivateWindow(ctx, "Main")
	_ = r.MovePointer(ctx, 1, 2)
	_ = r.Click(ctx, ButtonMiddle)
	_ = r.PressKey(ctx, "Return")

	want := []string{"activate Main", "move 1 2", "click 2", "key Return"}
	if strings.Join(r.Events(), "|") != strings.Join(want, "|") {
		t.Errorf("Events() = %q, want %q", r.Events(), want)
	}
	if len(seen) != len(want) {
		t.Errorf("OnEvent saw %d events, want %d", len(seen), len(want))
	}
}

func TestRecorder_CancelledContext(t *testing.T) {
	r := NewRecorder()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := r.PressKey(ctx, "a"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(r.Events()) != 0 {
		t.Error("cancelled call must not be recorded")
	}
}
