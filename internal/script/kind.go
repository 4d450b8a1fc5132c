package script

import "fmt"

// Kind is the tag before the first separator of a script line
type Kind string

const (
	KindLog       Kind = "log"
	KindMouse     Kind = "mouse"
	KindMouseMove Kind = "mouse_move"
	KindKeyboard  Kind = "keyboard"
	KindAction    Kind = "action"
	KindToolbox   Kind = "toolbox"
	KindTest      Kind = "test"
)

// Metadata tags carry no handler; they describe the script itself.
const (
	KindTitle  Kind = "title"
	KindAuthor Kind = "author"
)

// Kinds lists every kind the interpreter dispatches, in documentation order
var Kinds = []Kind{
	KindLog,
	KindMouse,
	KindMouseMove,
	KindKeyboard,
	KindAction,
	KindToolbox,
	KindTest,
}

// Known reports whether k has a handler
func Known(k Kind) bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// ValidateKind checks if the given kind string is dispatchable and returns the Kind
func ValidateKind(kind string) (Kind, error) {
	if Known(Kind(kind)) {
		return Kind(kind), nil
	}
	return "", fmt.Errorf("unknown kind: %q (valid options: log, mouse, mouse_move, keyboard, action, toolbox, test)", kind)
}
