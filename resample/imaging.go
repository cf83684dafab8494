package resample

import (
	"image"

	"github.com/disintegration/imaging"
)

// Imaging uses "github.com/disintegration/imaging"
type Imaging struct{}

var _ Resampler = (*Imaging)(nil)

// Resize scales with imaging.Lanczos and returns an *image.NRGBA.
func (r *Imaging) Resize(img image.Image, size image.Point) image.Image {
	return imaging.Resize(img, size.X, size.Y, imaging.Lanczos)
}
