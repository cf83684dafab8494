package resample

import (
	"image"

	"github.com/anthonynsimon/bild/transform"
)

// Bild uses "github.com/anthonynsimon/bild/transform"
type Bild struct{}

var _ Resampler = (*Bild)(nil)

// Resize scales with transform.Lanczos. The result is always *image.RGBA.
func (r *Bild) Resize(img image.Image, size image.Point) image.Image {
	return transform.Resize(img, size.X, size.Y, transform.Lanczos)
}
