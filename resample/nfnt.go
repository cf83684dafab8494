package resample

import (
	"image"

	"github.com/nfnt/resize"
)

// Nfnt uses "github.com/nfnt/resize"
type Nfnt struct{}

var _ Resampler = (*Nfnt)(nil)

// Resize scales with resize.Lanczos3.
func (r *Nfnt) Resize(img image.Image, size image.Point) image.Image {
	return resize.Resize(uint(size.X), uint(size.Y), img, resize.Lanczos3)
}
