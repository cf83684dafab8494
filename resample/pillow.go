package resample

import (
	"image"
	"image/color"
	"math"
)

// Pillow reproduces the 8-bit Lanczos path of Pillow's Image.resize: filter
// weights rounded to 22-bit fixed point, a horizontal pass clamped to uint8,
// then a vertical pass over the clamped rows. Output is byte-identical to
// Pillow for RGB images.
type Pillow struct{}

var _ Resampler = (*Pillow)(nil)

const (
	precisionBits  = 32 - 8 - 2
	lanczosSupport = 3.0
)

// Resize ignores alpha; the result is opaque.
func (r *Pillow) Resize(img image.Image, size image.Point) image.Image {
	src := Opaque(img)
	inW, inH := src.Bounds().Dx(), src.Bounds().Dy()

	boundsH, kernH := precomputeCoeffs(inW, size.X)
	boundsV, kernV := precomputeCoeffs(inH, size.Y)

	if size.X != inW {
		// only the source rows the vertical pass reads
		first := boundsV[0].min
		last := boundsV[size.Y-1].min + boundsV[size.Y-1].n
		for i := range boundsV {
			boundsV[i].min -= first
		}
		src = resampleHorizontal(src, first, last-first, size.X, boundsH, kernH)
	}
	if size.Y != inH {
		src = resampleVertical(src, size.Y, boundsV, kernV)
	}
	return src
}

type span struct {
	min, n int
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	x *= math.Pi
	return math.Sin(x) / x
}

func pillowLanczos(x float64) float64 {
	if -lanczosSupport <= x && x < lanczosSupport {
		return sinc(x) * sinc(x/3)
	}
	return 0
}

// precomputeCoeffs returns for every output pixel the source span it reads
// and its fixed-point weights.
func precomputeCoeffs(inSize, outSize int) ([]span, [][]int32) {
	scale := float64(inSize) / float64(outSize)
	filterScale := max(scale, 1)
	support := lanczosSupport * filterScale

	spans := make([]span, outSize)
	kern := make([][]int32, outSize)
	weights := make([]float64, int(math.Ceil(support))*2+1)
	for xx := range outSize {
		center := (float64(xx) + 0.5) * scale
		ss := 1 / filterScale

		xmin := max(int(center-support+0.5), 0)
		xmax := min(int(center+support+0.5), inSize) - xmin

		var ww float64
		for x := range xmax {
			w := pillowLanczos((float64(x+xmin) - center + 0.5) * ss)
			weights[x] = w
			ww += w
		}

		k := make([]int32, xmax)
		for x := range xmax {
			w := weights[x]
			if ww != 0 {
				w /= ww
			}
			if w < 0 {
				k[x] = int32(-0.5 + w*(1<<precisionBits))
			} else {
				k[x] = int32(0.5 + w*(1<<precisionBits))
			}
		}
		spans[xx] = span{min: xmin, n: xmax}
		kern[xx] = k
	}
	return spans, kern
}

func clip8(v int) uint8 {
	v >>= precisionBits
	switch {
	case v < 0:
		return 0
	case v > 0xff:
		return 0xff
	}
	return uint8(v)
}

func resampleHorizontal(src *image.RGBA, yOffset, rows, outW int, spans []span, kern [][]int32) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, outW, rows))
	for yy := range rows {
		for xx := range outW {
			sp, k := spans[xx], kern[xx]
			s0, s1, s2 := 1<<(precisionBits-1), 1<<(precisionBits-1), 1<<(precisionBits-1)
			for x := range sp.n {
				i := src.PixOffset(x+sp.min, yy+yOffset)
				w := int(k[x])
				s0 += int(src.Pix[i+0]) * w
				s1 += int(src.Pix[i+1]) * w
				s2 += int(src.Pix[i+2]) * w
			}
			d := dst.PixOffset(xx, yy)
			dst.Pix[d+0], dst.Pix[d+1], dst.Pix[d+2], dst.Pix[d+3] = clip8(s0), clip8(s1), clip8(s2), 0xff
		}
	}
	return dst
}

func resampleVertical(src *image.RGBA, outH int, spans []span, kern [][]int32) *image.RGBA {
	outW := src.Bounds().Dx()
	dst := image.NewRGBA(image.Rect(0, 0, outW, outH))
	for yy := range outH {
		sp, k := spans[yy], kern[yy]
		for xx := range outW {
			s0, s1, s2 := 1<<(precisionBits-1), 1<<(precisionBits-1), 1<<(precisionBits-1)
			for y := range sp.n {
				i := src.PixOffset(xx, y+sp.min)
				w := int(k[y])
				s0 += int(src.Pix[i+0]) * w
				s1 += int(src.Pix[i+1]) * w
				s2 += int(src.Pix[i+2]) * w
			}
			d := dst.PixOffset(xx, yy)
			dst.Pix[d+0], dst.Pix[d+1], dst.Pix[d+2], dst.Pix[d+3] = clip8(s0), clip8(s1), clip8(s2), 0xff
		}
	}
	return dst
}

// Opaque copies img into a zero-origin RGBA with alpha discarded. Color
// channels are taken un-premultiplied, so translucent pixels keep their hue
// instead of being darkened.
func Opaque(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			i := dst.PixOffset(x-b.Min.X, y-b.Min.Y)
			dst.Pix[i+0], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = c.R, c.G, c.B, 0xff
		}
	}
	return dst
}
