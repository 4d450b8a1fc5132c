// Package snapshot loads images exported by the application under test.
package snapshot

import (
	"fmt"
	"image"
	_ "image/png" // register PNG decoder
	"os"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
)

// DefaultExportFile is where an unsaved image lands on export-overwrite
const DefaultExportFile = "Untitled.png"

// Image is a decoded export
type Image struct {
	Path   string
	Format string
	Width  int
	Height int
	Pixels image.Image
}

// Load opens and decodes the image at path
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	bounds := img.Bounds()
	return &Image{
		Path:   path,
		Format: format,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pixels: img,
	}, nil
}

func (i *Image) String() string {
	return fmt.Sprintf("%s %dx%d %s", i.Path, i.Width, i.Height, i.Format)
}
