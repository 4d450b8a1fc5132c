package output

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	// titleStyle for bold headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for success indicators
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// warnStyle for non-fatal problems
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	// errorStyle for error indicators
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// boxStyle for summary box with rounded border
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(0, 1)

	// headerBoxStyle for the header
	headerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(0, 1)

	// kindStyle for command kinds in step lines
	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)

	// lineNoStyle for the line number gutter
	lineNoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(5).
			Align(lipgloss.Right)
)

// Header describes a run before it starts
type Header struct {
	Script  string
	Target  string
	Backend string
	Pause   time.Duration
	RunID   string
}

// Summary describes a finished run
type Summary struct {
	Lines     int
	Executed  int
	Skipped   int
	Malformed int
	Ignored   int
	Duration  time.Duration
	Err       error
}

// FormatHeader renders the run header with configuration info
func FormatHeader(w io.Writer, h Header) {
	target := h.Target
	if target == "" {
		target = "none"
	}

	content := fmt.Sprintf("%s %s\n%s %s  %s %s\n%s %s  %s %s",
		dimStyle.Render("Script:"), titleStyle.Render(h.Script),
		dimStyle.Render("Target:"), titleStyle.Render(target),
		dimStyle.Render("Input:"), h.Backend,
		dimStyle.Render("Pause:"), h.Pause,
		dimStyle.Render("Run:"), dimStyle.Render(h.RunID),
	)

	fmt.Fprintln(w, headerBoxStyle.Render(content))
}

// FormatStep writes one executed command
func FormatStep(w io.Writer, lineNo int, kind, payload string) {
	fmt.Fprintf(w, "%s %s %s\n",
		lineNoStyle.Render(fmt.Sprintf("%d", lineNo)),
		kindStyle.Render(kind),
		payload,
	)
}

// FormatWarning writes a non-fatal problem
func FormatWarning(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", warnStyle.Render("!"), warnStyle.Render(msg))
}

// FormatInfo writes a muted informational line
func FormatInfo(w io.Writer, msg string) {
	fmt.Fprintln(w, dimStyle.Render(msg))
}

// FormatSummary renders the run summary box
func FormatSummary(w io.Writer, s Summary) {
	var status string
	if s.Err != nil {
		status = errorStyle.Render("FAILED")
	} else {
		status = successStyle.Render("OK")
	}

	line1 := fmt.Sprintf("%s %.1fs  %s %d  %s %d",
		dimStyle.Render("Duration:"), s.Duration.Seconds(),
		dimStyle.Render("Lines:"), s.Lines,
		dimStyle.Render("Executed:"), s.Executed,
	)

	line2 := fmt.Sprintf("%s %d  %s %d  %s %d  %s",
		dimStyle.Render("Skipped:"), s.Skipped,
		dimStyle.Render("Ignored:"), s.Ignored,
		dimStyle.Render("Malformed:"), s.Malformed,
		status,
	)

	content := titleStyle.Render("Run Complete") + "\n" + line1 + "\n" + line2
	fmt.Fprintln(w, boxStyle.Render(content))
}

// FormatFailure writes a fatal error
func FormatFailure(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %s\n", errorStyle.Render("Error:"), err)
}
