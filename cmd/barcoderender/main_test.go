package main

import (
	"bytes"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

func decodeFile(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, _, err := image.Decode(f)
	require.NoError(t, err)
	return img
}

func TestRunFormats(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.png", "out.bmp", "out.tiff"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			var stderr bytes.Buffer
			require.NoError(t, run([]string{"-s", "CODE_128", "-d", "1234567890", "-o", path}, &stderr))
			img := decodeFile(t, path)
			assert.Equal(t, 180, img.Bounds().Dx())
			assert.Equal(t, 116, img.Bounds().Dy())
			assert.Contains(t, stderr.String(), "wrote barcode")
		})
	}
}

func TestRunStackRotateScale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stack.png")
	var stderr bytes.Buffer
	err := run([]string{"-d", "A", "-d", "B", "-rotate", "90", "-scale", "2", "-v", "-o", path}, &stderr)
	require.NoError(t, err)
	img := decodeFile(t, path)
	assert.Equal(t, 232, img.Bounds().Dx())
	assert.Equal(t, 184, img.Bounds().Dy())
	assert.Contains(t, stderr.String(), "rendered symbol")
}

func TestRunSymfileAndConfig(t *testing.T) {
	dir := t.TempDir()
	sym := filepath.Join(dir, "qr.sym")
	require.NoError(t, os.WriteFile(sym, []byte(`
symbology QR_CODE
stack { row "101" row "010" row "101" }
`), 0o644))
	cfg := filepath.Join(dir, "render.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("scale = 5\nrotate = 180\nintermediate = true\n"), 0o644))

	out := filepath.Join(dir, "qr.png")
	require.NoError(t, run([]string{"-f", sym, "-c", cfg, "-o", out}, &bytes.Buffer{}))
	img := decodeFile(t, out)
	assert.Equal(t, 15, img.Bounds().Dx())
	assert.Equal(t, 15, img.Bounds().Dy())
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	tests := map[string][]string{
		"no data":         {"-s", "CODE_128"},
		"bad symbology":   {"-s", "NOPE", "-d", "1"},
		"bad data":        {"-s", "EAN_13", "-d", "ABC"},
		"bad format":      {"-d", "1", "-o", filepath.Join(dir, "out.gif")},
		"bad rotation":    {"-d", "1", "-rotate", "45", "-o", filepath.Join(dir, "r.png")},
		"missing symfile": {"-f", filepath.Join(dir, "missing.sym")},
		"stray argument":  {"-d", "1", "extra"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, run(args, &bytes.Buffer{}))
		})
	}
}
