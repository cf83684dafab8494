// Package canon derives the canonical framebuffer image: 256x256 opaque
// 8-bit RGB, whatever the source dimensions or color model.
package canon

import (
	"image"
	"log/slog"

	"spriteasm/resample"
)

const Size = 256

// Image is a canonical image. Its RGBA bounds are always (0,0)-(Size,Size)
// and every alpha byte is 0xff.
type Image struct {
	*image.RGBA
}

// RGB returns the color channels of the pixel at column x, row y.
func (m Image) RGB(x, y int) (r, g, b uint8) {
	i := m.PixOffset(x, y)
	return m.Pix[i], m.Pix[i+1], m.Pix[i+2]
}

// Canonicalize forces img to opaque RGB and resizes it to Size x Size with
// rs. A source that already has the canonical dimensions is not resampled.
func Canonicalize(logger *slog.Logger, img image.Image, rs resample.Resampler) Image {
	rgb := ToRGB(img)

	if rgb.Bounds().Size() == image.Pt(Size, Size) {
		return Image{rgb}
	}

	logger.Debug("resizing", "from_width", rgb.Bounds().Dx(), "from_height", rgb.Bounds().Dy(),
		"width", Size, "height", Size)
	return Image{ToRGB(rs.Resize(rgb, image.Pt(Size, Size)))}
}

// ToRGB copies img into a zero-origin RGBA image with alpha discarded.
func ToRGB(img image.Image) *image.RGBA {
	return resample.Opaque(img)
}
