// Package asmgen turns an image into a listing of MIPS store instructions
// that paint it into the 256x256 memory-mapped framebuffer at BaseAddress.
//
// Each pixel becomes one li/sw pair storing the packed 0x00RRGGBB word at
// BaseAddress + 4*(y*256 + x). Pixels are visited column by column: x is the
// outer loop and y the inner one.
package asmgen

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"spriteasm/canon"
	"spriteasm/resample"
)

const (
	BaseAddress     = 0x10008000
	BytesPerPixel   = 4
	FramebufferSize = canon.Size * canon.Size * BytesPerPixel

	// DefaultThreshold is accepted by Emit for compatibility only.
	DefaultThreshold = 10
)

var preamble = fmt.Sprintf("    la $t0, 0x%08x\n\n", BaseAddress)

// approximate length of one li/sw pair, used to size the output buffer
const pairLen = 64

// LinearOffset returns the framebuffer word index of column x, row y.
func LinearOffset(x, y int) int {
	return y*canon.Size + x
}

// ByteOffset returns the displacement from BaseAddress of the word for
// column x, row y.
func ByteOffset(x, y int) int {
	return LinearOffset(x, y) * BytesPerPixel
}

// Pack packs a color into the 0x00RRGGBB word written to the framebuffer.
func Pack(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Load opens and decodes the image at path.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open image %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close image", "file", path, "error", closeErr)
		}
	}()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode image %q: %w", path, err)
	}
	slog.Debug("decoded image", "file", path, "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return img, nil
}

// Emit decodes the image at path and returns its instruction listing,
// resampled with the default Lanczos backend.
//
// threshold is currently ignored: no chroma-keying is applied, and any
// value yields the same listing.
func Emit(path string, threshold int) (string, error) {
	img, err := Load(path)
	if err != nil {
		return "", err
	}
	return EmitImage(img, threshold), nil
}

// EmitImage returns the instruction listing of an already decoded image.
func EmitImage(img image.Image, threshold int) string {
	return EmitWith(slog.Default(), img, threshold, resample.Default())
}

// EmitWith is EmitImage with an explicit logger and resampler.
func EmitWith(logger *slog.Logger, img image.Image, threshold int, rs resample.Resampler) string {
	return Listing(canon.Canonicalize(logger, img, rs), threshold)
}

// Listing renders the instruction listing of a canonical image.
func Listing(img canon.Image, threshold int) string {
	var sb strings.Builder
	sb.Grow(len(preamble) + canon.Size*canon.Size*pairLen)
	sb.WriteString(preamble)

	for x := range canon.Size {
		for y := range canon.Size {
			r, g, b := img.RGB(x, y)
			fmt.Fprintf(&sb, "    li $t1, 0x%08x  # pixel at (%d, %d)\n", Pack(r, g, b), x, y)
			fmt.Fprintf(&sb, "    sw $t1, %d($t0)\n", ByteOffset(x, y))
		}
	}

	// the newline ending the last store is followed by nothing, which is
	// the listing's trailing empty line
	return sb.String()
}
