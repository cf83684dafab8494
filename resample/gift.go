package resample

import (
	"image"

	"github.com/disintegration/gift"
)

// Gift uses "github.com/disintegration/gift"
type Gift struct{}

var _ Resampler = (*Gift)(nil)

// Resize scales with gift.LanczosResampling into a new NRGBA image.
func (r *Gift) Resize(img image.Image, size image.Point) image.Image {
	m := image.NewNRGBA(image.Rectangle{Max: size})
	gift.Resize(size.X, size.Y, gift.LanczosResampling).Draw(m, img, &gift.Options{Parallelization: true})
	return m
}
