package script

import "strings"

// Separator splits a line into kind and payload. Only its first occurrence matters.
const Separator = ":"

// Status is the outcome of parsing a single line
type Status int

const (
	// StatusOK means the line yielded a Command
	StatusOK Status = iota
	// StatusSkip means the line has no separator and is ignored without a warning
	StatusSkip
	// StatusMalformed means the line has a separator but an empty kind or payload
	StatusMalformed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusSkip:
		return "skip"
	case StatusMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Command is a parsed script line
type Command struct {
	Kind    Kind
	Payload string
	// Line is 1-based
	Line int
	Raw  string
}

// Known reports whether the command's kind has a handler
func (c Command) Known() bool {
	return Known(c.Kind)
}

// TrimEOL strips trailing newline and carriage-return characters
func TrimEOL(raw string) string {
	return strings.TrimRight(raw, "\r\n")
}

// Parse decomposes a raw line into a Command.
// Lines without a separator (blank lines included) are skipped; lines whose
// kind or payload is empty are malformed.
func Parse(raw string, lineNo int) (Command, Status) {
	line := TrimEOL(raw)
	cmd := Command{Line: lineNo, Raw: line}

	kind, payload, found := strings.Cut(line, Separator)
	if !found {
		return cmd, StatusSkip
	}
	if kind == "" || payload == "" {
		return cmd, StatusMalformed
	}

	cmd.Kind = Kind(kind)
	cmd.Payload = payload
	return cmd, StatusOK
}
