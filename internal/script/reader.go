package script

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// maxLineSize bounds a single script line
const maxLineSize = 1024 * 1024

// Reader yields the lines of a script decoded to UTF-8
type Reader struct {
	path    string
	closer  io.Closer
	scanner *bufio.Scanner
	line    int
}

// Open opens the script at path. A byte order mark selects UTF-8 or UTF-16;
// otherwise the content is decoded with the named encoding (UTF-8 when empty).
func Open(path, encoding string) (*Reader, error) {
	decoder, err := newDecoder(encoding)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}

	r := NewReader(transform.NewReader(f, decoder))
	r.path = path
	r.closer = f
	return r, nil
}

// NewReader reads already-decoded script text from r
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxLineSize)
	return &Reader{scanner: scanner}
}

func newDecoder(encoding string) (transform.Transformer, error) {
	fallback := unicode.UTF8.NewDecoder()
	if encoding != "" {
		enc, err := htmlindex.Get(encoding)
		if err != nil {
			return nil, fmt.Errorf("unknown script encoding: %q", encoding)
		}
		fallback = enc.NewDecoder()
	}
	return unicode.BOMOverride(fallback), nil
}

// Path returns the file the reader was opened on, if any
func (r *Reader) Path() string {
	return r.path
}

// Next returns the next raw line and its 1-based number.
// ok is false at end of input or on error; check Err afterwards.
func (r *Reader) Next() (line string, lineNo int, ok bool) {
	if !r.scanner.Scan() {
		return "", r.line, false
	}
	r.line++
	return r.scanner.Text(), r.line, true
}

// Err returns the first non-EOF error encountered while reading
func (r *Reader) Err() error {
	if err := r.scanner.Err(); err != nil {
		return fmt.Errorf("failed to read script line %d: %w", r.line+1, err)
	}
	return nil
}

// Close releases the underlying file
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
