// Command barcoderender renders a barcode symbol to a PNG, BMP or TIFF file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ericlevine/zxingraster"
	"github.com/ericlevine/zxingraster/config"
	"github.com/ericlevine/zxingraster/symfile"

	// Register the 1D encoders.
	_ "github.com/ericlevine/zxingraster/oned"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "barcoderender: %v\n", err)
		}
		os.Exit(1)
	}
}

type options struct {
	symbology string
	data      []string
	symfile   string
	config    string
	output    string
	rotate    int
	scale     float64
	verbose   bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("barcoderender", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.symbology, "s", "CODE_128", "symbology name, e.g. CODE_128, EAN_13, ITF_14")
	fs.Func("d", "data to encode; repeat to stack rows", func(v string) error {
		opts.data = append(opts.data, v)
		return nil
	})
	fs.StringVar(&opts.symfile, "f", "", "symbol description file instead of -s/-d")
	fs.StringVar(&opts.config, "c", "", "render options file (.toml, .yaml)")
	fs.StringVar(&opts.output, "o", "barcode.png", "output file (.png, .bmp, .tif, .tiff)")
	fs.IntVar(&opts.rotate, "rotate", -1, "clockwise rotation: 0, 90, 180 or 270")
	fs.Float64Var(&opts.scale, "scale", 0, "scale factor (overrides the config file)")
	fs.BoolVar(&opts.verbose, "v", false, "verbose logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: barcoderender [flags]\n\n")
		fmt.Fprintf(stderr, "Render a barcode symbol to an image file.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.symfile == "" && len(opts.data) == 0 {
		fs.Usage()
		return nil, errors.New("one of -d or -f is required")
	}
	return opts, nil
}

func run(args []string, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	sym, err := buildSymbol(opts)
	if err != nil {
		return err
	}
	rotate := 0
	if opts.config != "" {
		cfg, err := config.Load(opts.config)
		if err != nil {
			return err
		}
		if err := cfg.Apply(sym); err != nil {
			return err
		}
		rotate = cfg.Rotate
	}
	if opts.rotate >= 0 {
		rotate = opts.rotate
	}
	if opts.scale != 0 {
		sym.Scale = opts.scale
	}

	if err := sym.Buffer(rotate); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	slog.Debug("rendered symbol",
		"symbology", sym.Symbology,
		"rows", sym.Rows(),
		"modules", sym.Width(),
		"width", sym.BitmapWidth,
		"height", sym.BitmapHeight,
		"text", sym.Text)

	if err := writeImage(opts.output, sym.Image()); err != nil {
		return err
	}
	slog.Info("wrote barcode", "path", opts.output, "width", sym.BitmapWidth, "height", sym.BitmapHeight)
	return nil
}

func buildSymbol(opts *options) (*zxingraster.Symbol, error) {
	if opts.symfile != "" {
		f, err := os.Open(opts.symfile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		desc, err := symfile.Parse(f, opts.symfile)
		if err != nil {
			return nil, err
		}
		return desc.Build()
	}

	sym, err := zxingraster.ParseSymbology(opts.symbology)
	if err != nil {
		return nil, err
	}
	s := zxingraster.NewSymbol(sym)
	for _, d := range opts.data {
		if err := s.Encode(d); err != nil {
			return nil, err
		}
		slog.Debug("encoded", "symbology", sym, "data", d, "layers", s.Layers())
	}
	return s, nil
}
