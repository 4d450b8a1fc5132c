package script

import "strings"

// Report summarises a script without executing it
type Report struct {
	Path      string
	Title     string
	Author    string
	Lines     int
	Commands  []Command
	Skipped   []int
	Malformed []Command
	// Unknown holds commands whose kind has no handler and is not metadata
	Unknown []Command
}

// OK reports whether the script has no malformed lines
func (r Report) OK() bool {
	return len(r.Malformed) == 0
}

// Lint reads every line of r and classifies it
func Lint(r *Reader) (Report, error) {
	report := Report{Path: r.Path()}

	for {
		raw, lineNo, ok := r.Next()
		if !ok {
			break
		}
		report.Lines++

		cmd, status := Parse(raw, lineNo)
		switch status {
		case StatusSkip:
			report.Skipped = append(report.Skipped, lineNo)
		case StatusMalformed:
			report.Malformed = append(report.Malformed, cmd)
		case StatusOK:
			switch {
			case cmd.Kind == KindTitle:
				report.Title = strings.TrimSpace(cmd.Payload)
			case cmd.Kind == KindAuthor:
				report.Author = strings.TrimSpace(cmd.Payload)
			case cmd.Known():
				report.Commands = append(report.Commands, cmd)
			default:
				report.Unknown = append(report.Unknown, cmd)
			}
		}
	}

	if err := r.Err(); err != nil {
		return report, err
	}
	return report, nil
}
