package batch

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"spriteasm/asmgen"
	"spriteasm/parallel"
)

type testCLI struct {
	Batch CLICmd `cmd:""`
}

func parse(t *testing.T, args ...string) *CLICmd {
	t.Helper()
	var cli testCLI
	parser, err := kong.New(&cli)
	require.NoError(t, err)
	_, err = parser.Parse(append([]string{"batch"}, args...))
	require.NoError(t, err)
	return &cli.Batch
}

func writePNG(t *testing.T, path string, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := range 2 {
		for x := range 2 {
			img.SetRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func run(t *testing.T, cmd *CLICmd, workers int) error {
	t.Helper()
	pool := parallel.Start(workers)
	return cmd.Run(pool.Do, pool.Wait)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	cmd := parse(t, "--scan", dir)
	assert.Equal(t, dir, cmd.Scan)
	assert.Equal(t, filepath.Join(dir, "asm"), cmd.Dest)

	var cli testCLI
	parser, err := kong.New(&cli)
	require.NoError(t, err)
	_, err = parser.Parse([]string{"batch", "--scan", filepath.Join(dir, "missing")})
	assert.ErrorContains(t, err, "invalid scan path")
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "red.png"), color.RGBA{R: 0xff, A: 0xff})
	writePNG(t, filepath.Join(dir, "blue.png"), color.RGBA{B: 0xff, A: 0xff})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	cmd := parse(t, "--scan", dir)
	require.NoError(t, run(t, cmd, 2))

	for name, word := range map[string]string{"red": "0x00ff0000", "blue": "0x000000ff"} {
		got, err := os.ReadFile(filepath.Join(dir, "asm", name+".asm"))
		require.NoError(t, err, name)
		want, err := asmgen.Emit(filepath.Join(dir, name+".png"), asmgen.DefaultThreshold)
		require.NoError(t, err)
		assert.True(t, string(got) == want, "%s listing differs from Emit", name)
		assert.Contains(t, string(got), "    li $t1, "+word+"  # pixel at (255, 255)\n")
	}

	// second run refuses to clobber, --force overwrites
	assert.ErrorContains(t, run(t, parse(t, "--scan", dir), 1), "error processing 2 files")
	require.NoError(t, run(t, parse(t, "--scan", dir, "--force"), 1))
}

func TestRunCountsUndecodable(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "ok.png"), color.RGBA{G: 0x80, A: 0xff})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o644))

	err := run(t, parse(t, "--scan", dir, "--dest", filepath.Join(dir, "out")), 0)
	assert.ErrorContains(t, err, "error processing 1 files")

	_, err = os.Stat(filepath.Join(dir, "out", "ok.asm"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "out", "notes.asm"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunSharedStem(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), color.RGBA{R: 0xff, A: 0xff})

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i-1], img.Pix[i] = 0xff, 0xff
	}
	f, err := os.Create(filepath.Join(dir, "a.bmp"))
	require.NoError(t, err)
	require.NoError(t, bmp.Encode(f, img))
	require.NoError(t, f.Close())

	for _, args := range [][]string{{"--scan", dir}, {"--scan", dir, "--force"}} {
		err := run(t, parse(t, args...), 4)
		assert.ErrorContains(t, err, "error processing 1 files", args)

		// a.bmp sorts first and keeps the destination
		got, err := os.ReadFile(filepath.Join(dir, "asm", "a.asm"))
		require.NoError(t, err)
		assert.Contains(t, string(got), "    li $t1, 0x000000ff  # pixel at (0, 0)\n")
		assert.NotContains(t, string(got), "0x00ff0000")
		require.NoError(t, os.Remove(filepath.Join(dir, "asm", "a.asm")))
	}
}
