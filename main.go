package main

import (
	"log/slog"
	"os"

	"spriteasm/batch"
	"spriteasm/gen"
	"spriteasm/parallel"

	"github.com/alecthomas/kong"
)

type cli struct {
	LogLevel string `help:"Log level (${enum})" enum:"debug,info,warn,error" default:"warn"`
	Workers  int    `help:"Number of images converted concurrently in batch mode. 0 uses all CPUs" default:"0"`

	Gen   gen.CLICmd   `cmd:"" default:"withargs" help:"Convert one image into a framebuffer store listing"`
	Batch batch.CLICmd `cmd:"" help:"Convert every image in a folder into store listings"`
}

func (c *cli) AfterApply() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("spriteasm"),
		kong.Description("Generate MIPS store instructions that paint an image into a 256x256 framebuffer at 0x10008000."),
		kong.UsageOnError(),
	)

	slog.Debug("running", "command", kctx.Command())

	pool := parallel.Start(c.Workers)
	err := kctx.Run(parallel.WorkerFunc(pool.Do), parallel.WaitFunc(pool.Wait))
	pool.Wait()
	if err != nil {
		slog.Error("failed", "command", kctx.Command(), "error", err)
	}
	kctx.FatalIfErrorf(err)
}
