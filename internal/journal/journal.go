// Package journal writes the timestamped test log.
//
// Every entry is a single line of the form
//
//	15:04:05 | message
//
// The file is opened in append mode so consecutive runs accumulate in one log.
package journal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultPath is the log file used when none is configured
const DefaultPath = "testing.log"

const (
	warningPrefix = "WARNING: "
	errorPrefix   = "ERROR: "
)

// Journal is the append-only test log
type Journal struct {
	logger  *zap.Logger
	closer  io.Closer
	entries int
}

// Open appends to the journal file at path, creating it if needed
func Open(path string, opts ...zap.Option) (*Journal, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	j := New(f, opts...)
	j.closer = f
	return j, nil
}

// New writes journal entries to w
func New(w io.Writer, opts ...zap.Option) *Journal {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:          "time",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.TimeEncoderOfLayout("15:04:05"),
		ConsoleSeparator: " | ",
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	)
	return &Journal{logger: zap.New(core, opts...)}
}

// Print records msg as one entry. Line breaks are folded so an entry never spans lines.
func (j *Journal) Print(msg string) {
	j.entries++
	j.logger.Info(flatten(msg))
}

// Printf records a formatted entry
func (j *Journal) Printf(format string, args ...any) {
	j.Print(fmt.Sprintf(format, args...))
}

// Warnf records a formatted entry prefixed with WARNING
func (j *Journal) Warnf(format string, args ...any) {
	j.Print(warningPrefix + fmt.Sprintf(format, args...))
}

// Errorf records a formatted entry prefixed with ERROR
func (j *Journal) Errorf(format string, args ...any) {
	j.Print(errorPrefix + fmt.Sprintf(format, args...))
}

// Entries returns how many entries were written through this journal
func (j *Journal) Entries() int {
	return j.entries
}

// Close flushes and closes the underlying file, if the journal owns one
func (j *Journal) Close() error {
	_ = j.logger.Sync()
	if j.closer == nil {
		return nil
	}
	return j.closer.Close()
}

func flatten(msg string) string {
	msg = strings.TrimRight(msg, "\r\n")
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(msg)
}
