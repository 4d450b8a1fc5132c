package interp

import (
	"context"

	"github.com/edyy78/uireplay/internal/journal"
	"github.com/edyy78/uireplay/internal/snapshot"
)

// ImageCheck verifies an exported image against the expression of a test command.
// Expressions such as "image.width == 20 and image.height == 30" have no defined
// grammar yet; implementations decide how much of them they understand.
type ImageCheck interface {
	Check(ctx context.Context, expr string, img *snapshot.Image) error
}

// RecordCheck journals the expression next to the image it would apply to
type RecordCheck struct {
	Journal *journal.Journal
}

// Check records expr and the image properties; it never fails
func (c RecordCheck) Check(ctx context.Context, expr string, img *snapshot.Image) error {
	c.Journal.Printf("test: %s (image %dx%d %s, expression not evaluated)", expr, img.Width, img.Height, img.Format)
	return nil
}
