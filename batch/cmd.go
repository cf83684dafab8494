package batch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/alecthomas/kong"

	"spriteasm/asmgen"
	"spriteasm/canon"
	"spriteasm/outfile"
	"spriteasm/parallel"
	"spriteasm/resample"
)

type CLICmd struct {
	Scan      string `help:"Source folder to scan" default:"."`
	Dest      string `help:"Destination folder for listings. Relative to scan dir if not absolute." default:"asm"`
	Force     bool   `help:"Overwrite existing listings" default:"false"`
	Threshold int    `help:"Chroma-key threshold. Accepted for compatibility, has no effect" default:"10"`
	Resampler string `help:"Lanczos resampler backend (${enum})" enum:"pillow,xdraw,imaging,gift,nfnt,bild" default:"pillow"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}

	if _, err := resample.ByName(c.Resampler); err != nil {
		return err
	}

	return nil
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	rs, err := resample.ByName(c.Resampler)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	var processedCount, errCount atomic.Uint64
	claimed := make(map[string]string, len(files))
	for _, file := range files {
		if !file.Type().IsRegular() {
			continue
		}

		destName := outfile.ReplaceExt(file.Name(), ".asm")
		if first, ok := claimed[destName]; ok {
			errCount.Add(1)
			slog.Error("destination already claimed by another image", "file", file.Name(),
				"other", first, "output", destName)
			continue
		}
		claimed[destName] = file.Name()

		worker(func(fileName string) func() {
			return func() {
				if err := c.convert(rs, fileName); err != nil {
					errCount.Add(1)
					slog.Error("could not convert image", "file", fileName, "error", err)
					return
				}
				processedCount.Add(1)
			}
		}(file.Name()))
	}

	wait()

	processed := processedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "processed", processed, "errors", errors,
		"total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

func (c *CLICmd) convert(rs resample.Resampler, fileName string) error {
	src := filepath.Join(c.Scan, fileName)
	dest := filepath.Join(c.Dest, outfile.ReplaceExt(fileName, ".asm"))
	logger := slog.Default().With("file", src)

	if !c.Force {
		if err := outfile.CheckNew(dest); err != nil {
			return err
		}
	}

	img, err := asmgen.Load(src)
	if err != nil {
		return err
	}

	listing := asmgen.Listing(canon.Canonicalize(logger, img, rs), c.Threshold)
	if err = outfile.Write(dest, listing); err != nil {
		return err
	}
	logger.Info("wrote listing", "output", dest)
	return nil
}
