package gen

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"spriteasm/asmgen"
	"spriteasm/canon"
	"spriteasm/outfile"
	"spriteasm/resample"
)

const doneMessage = "DONE!"

type CLICmd struct {
	Input     string `help:"Source image" default:"pause_screen.png"`
	Output    string `help:"Destination assembly listing" default:"pause_screen.asm"`
	Threshold int    `help:"Chroma-key threshold. Accepted for compatibility, has no effect" default:"10"`
	Resampler string `help:"Lanczos resampler backend (${enum})" enum:"pillow,xdraw,imaging,gift,nfnt,bild" default:"pillow"`
	Preview   string `help:"Also save the 256x256 image the listing is built from (.png, .jpg, .gif, .bmp or .tiff)"`

	Stdout io.Writer `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if _, err := resample.ByName(c.Resampler); err != nil {
		return err
	}

	if c.Preview != "" {
		if _, err := outfile.ImageFormat(c.Preview); err != nil {
			return fmt.Errorf("invalid preview path %q: %w", c.Preview, err)
		}
	}

	if info, err := os.Stat(c.Output); err == nil && info.IsDir() {
		return fmt.Errorf("invalid output path %q: is a directory", c.Output)
	}

	if filepath.Clean(c.Input) == filepath.Clean(c.Output) {
		return fmt.Errorf("output %q would overwrite the input image", c.Output)
	}

	return nil
}

func (c *CLICmd) Run() error {
	logger := slog.Default().With("file", c.Input)

	rs, err := resample.ByName(c.Resampler)
	if err != nil {
		return err
	}

	img, err := asmgen.Load(c.Input)
	if err != nil {
		return err
	}

	canonical := canon.Canonicalize(logger, img, rs)
	if c.Preview != "" {
		if err = outfile.SaveImage(canonical.RGBA, c.Preview); err != nil {
			return fmt.Errorf("could not save preview: %w", err)
		}
		logger.Info("saved preview", "preview", c.Preview)
	}

	if err = outfile.Write(c.Output, asmgen.Listing(canonical, c.Threshold)); err != nil {
		return err
	}
	logger.Info("wrote listing", "output", c.Output, "resampler", c.Resampler)

	stdout := c.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	_, err = fmt.Fprintln(stdout, doneMessage)
	return err
}
