package resample

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Lanczos3 is the a=3 Lanczos kernel. Kernel.Scale widens the support when
// downscaling, so every source pixel contributes.
var Lanczos3 = &draw.Kernel{Support: 3, At: lanczos3}

func lanczos3(t float64) float64 {
	if t < 0 {
		t = -t
	}
	switch {
	case t < 1e-9:
		return 1
	case t >= 3:
		return 0
	}
	x := math.Pi * t
	return 3 * math.Sin(x) * math.Sin(x/3) / (x * x)
}

// XDraw uses "golang.org/x/image/draw"
type XDraw struct{}

var _ Resampler = (*XDraw)(nil)

// Resize keeps float intermediates between passes, so it can differ from
// Pillow by several levels per channel.
func (r *XDraw) Resize(img image.Image, size image.Point) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	Lanczos3.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
