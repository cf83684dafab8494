package resample

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniform(w, h int, c color.Color) *image.RGBA {
	m := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(m, m.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return m
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"bild", "gift", "imaging", "nfnt", "pillow", "xdraw"}, Names())
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		r, err := ByName(name)
		require.NoError(t, err, name)
		assert.NotNil(t, r, name)
	}

	r, err := ByName("XDraw")
	require.NoError(t, err)
	assert.IsType(t, &XDraw{}, r)

	_, err = ByName("nearest")
	assert.ErrorContains(t, err, `unknown resampler "nearest"`)
}

func TestDefault(t *testing.T) {
	assert.IsType(t, &Pillow{}, Default())
}

func TestLanczos3(t *testing.T) {
	assert.Equal(t, 1.0, lanczos3(0))
	assert.Equal(t, 0.0, lanczos3(3))
	assert.Equal(t, 0.0, lanczos3(-4))
	for _, x := range []float64{1, 2, -1, -2} {
		assert.InDelta(t, 0, lanczos3(x), 1e-12, "zero crossing at %v", x)
	}
	assert.Equal(t, lanczos3(0.5), lanczos3(-0.5))
	assert.Less(t, lanczos3(1.5), 0.0, "negative lobe")
}

func TestResizeUniform(t *testing.T) {
	src := uniform(7, 3, color.RGBA{R: 0x20, G: 0x80, B: 0xf0, A: 0xff})
	size := image.Pt(256, 256)

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			r, err := ByName(name)
			require.NoError(t, err)

			dst := r.Resize(src, size)
			require.Equal(t, size, dst.Bounds().Size())

			for _, p := range []image.Point{{0, 0}, {128, 128}, {255, 0}, {17, 255}} {
				c := color.NRGBAModel.Convert(dst.At(dst.Bounds().Min.X+p.X, dst.Bounds().Min.Y+p.Y)).(color.NRGBA)
				assert.InDelta(t, 0x20, c.R, 1, "red at %v", p)
				assert.InDelta(t, 0x80, c.G, 1, "green at %v", p)
				assert.InDelta(t, 0xf0, c.B, 1, "blue at %v", p)
			}
		})
	}
}

func TestXDrawBlends(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.Set(0, 0, color.RGBA{A: 0xff})
	src.Set(1, 0, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})

	dst := (&XDraw{}).Resize(src, image.Pt(256, 1)).(*image.RGBA)
	mid := dst.RGBAAt(128, 0)
	assert.Greater(t, mid.R, uint8(0x20))
	assert.Less(t, mid.R, uint8(0xe0))
	assert.Equal(t, uint8(0xff), mid.A)
}
