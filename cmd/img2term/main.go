package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/wbrown/img2term"
	"github.com/wbrown/img2term/imageutil"
)

// Preview cells mirror a classic 8x16 glyph box.
const (
	previewCellWidth  = 8
	previewCellHeight = 16
)

func main() {
	app := cli.NewApp()

	app.Name = "img2term"
	app.Usage = "render images as terminal art"
	app.ArgsUsage = "IMAGE"
	app.Version = "1.0.0"
	app.HideHelpCommand = true

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "size",
			Aliases: []string{"s"},
			EnvVars: []string{"IMG2TERM_SIZE"},
			Usage:   "output size as COLSxROWS (default: the terminal size)",
		},
		&cli.BoolFlag{
			Name:    "force",
			Aliases: []string{"f"},
			EnvVars: []string{"IMG2TERM_FORCE"},
			Usage:   "fill the full output size instead of preserving aspect ratio",
		},
		&cli.StringFlag{
			Name:    "ansi",
			Aliases: []string{"a"},
			EnvVars: []string{"IMG2TERM_ANSI"},
			Usage: "output mode: truecolor, simple-black, simple-white, " +
				"256, adaptive, ascii, or console (default: truecolor)",
		},
		&cli.StringFlag{
			Name:    "palette",
			EnvVars: []string{"IMG2TERM_PALETTE"},
			Usage: "16-color palette for the simple modes: " +
				"an embedded name or a JSON file",
		},
		&cli.StringFlag{
			Name:    "color-method",
			EnvVars: []string{"IMG2TERM_COLOR_METHOD"},
			Value:   "redmean",
			Usage:   "color distance method: redmean, rgb, or lab",
		},
		&cli.StringFlag{
			Name:    "filter",
			EnvVars: []string{"IMG2TERM_FILTER"},
			Value:   "nearest",
			Usage:   "resize filter: nearest, linear, or area",
		},
		&cli.BoolFlag{
			Name:    "compress",
			Aliases: []string{"c"},
			EnvVars: []string{"IMG2TERM_COMPRESS"},
			Usage:   "drop redundant escapes from the output",
		},
		&cli.IntFlag{
			Name:    "colors",
			EnvVars: []string{"IMG2TERM_COLORS"},
			Value:   16,
			Usage:   "palette size for the adaptive mode",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			EnvVars: []string{"IMG2TERM_OUTPUT"},
			Usage: "write to a file instead of stdout; " +
				"a .png path renders a preview image",
		},
		&cli.StringFlag{
			Name:    "config",
			EnvVars: []string{"IMG2TERM_CONFIG"},
			Usage:   "path to the YAML config file",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "log pipeline details to stderr",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		cli.ShowAppHelpAndExit(c, 1)
	}
	start := time.Now()

	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	cols, rows, termDetected, err := resolveSize(
		stringSetting(c, "size", cfg.Size), logger)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	mode := stringSetting(c, "ansi", cfg.ANSI)
	if mode == "" {
		// Plain Windows consoles predate ANSI handling, so a render
		// into the live console defaults to the attribute path there.
		mode = "truecolor"
		if runtime.GOOS == "windows" && termDetected {
			mode = "console"
		}
	}

	methodName := stringSetting(c, "color-method", cfg.ColorMethod)
	method, ok := img2term.ParseColorDistanceMethod(methodName)
	if !ok {
		return cli.Exit(fmt.Sprintf(
			"unknown color method %q, options are redmean, rgb, or lab",
			methodName), 1)
	}

	filterName := stringSetting(c, "filter", cfg.Filter)
	filter, ok := imageutil.ParseInterpolation(filterName)
	if !ok {
		return cli.Exit(fmt.Sprintf(
			"unknown filter %q, options are nearest, linear, or area",
			filterName), 1)
	}

	name := c.Args().First()
	path, err := filepath.Abs(name)
	if err != nil {
		path = name
	}

	format, err := img2term.GuessFormat(name, path)
	if err != nil {
		return exitPipeline(err)
	}
	logger.Printf("format: %s", format)

	img, err := imageutil.LoadImage(path)
	if err != nil {
		return exitPipeline(&img2term.Error{
			Kind: img2term.OpenFailed, Name: name})
	}
	logger.Printf("source: %dx%d", img.Width(), img.Height())

	renderer := img2term.NewRenderer(
		img2term.WithColorMethod(method),
		img2term.WithFilter(filter),
	)
	resized := renderer.Prepare(img, cols, rows, !c.Bool("force"))
	logger.Printf("target: %dx%d pixels in a %dx%d cell grid",
		resized.Width(), resized.Height(), cols, rows)

	palette, err := simplePalette(mode, stringSetting(c, "palette", cfg.Palette))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	maxColors := intSetting(c, "colors", cfg.Colors)
	output := c.String("output")

	if strings.EqualFold(filepath.Ext(output), ".png") {
		err := writePreview(renderer, resized, mode, palette, maxColors, output)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		logger.Printf("rendered in %v", time.Since(start))
		return nil
	}

	if mode == "console" {
		if output != "" {
			return cli.Exit(
				"console mode renders in place and cannot write to a file", 1)
		}
		if err := renderer.WriteConsole(os.Stdout, resized); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		logger.Printf("rendered in %v", time.Since(start))
		return nil
	}

	var buf bytes.Buffer
	switch mode {
	case "truecolor":
		err = renderer.WriteTruecolor(&buf, resized)
	case "simple-black", "simple-white":
		err = renderer.WriteANSI(&buf, resized, palette)
	case "256":
		err = renderer.WriteANSI256(&buf, resized)
	case "adaptive":
		err = renderer.WriteAdaptive(&buf, resized, maxColors)
	case "ascii":
		err = renderer.WriteASCII(&buf, resized)
	default:
		return cli.Exit(fmt.Sprintf("unknown output mode %q", mode), 1)
	}
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	text := buf.String()
	if boolSetting(c, "compress", cfg.Compress) && mode != "ascii" {
		before := len(text)
		text = img2term.CompressANSI(text)
		logger.Printf("compressed %d bytes to %d", before, len(text))
	}

	if output == "" {
		fmt.Print(text)
	} else if err := os.WriteFile(output, []byte(text), 0644); err != nil {
		return cli.Exit(fmt.Sprintf("failed to write output: %v", err), 1)
	}

	logger.Printf("rendered in %v", time.Since(start))
	return nil
}

// resolveSize determines the output cell grid. The terminal is always
// probed, so mode defaults can key on whether a live terminal is
// present even when the size itself comes from the flag. An explicit
// COLSxROWS spec wins; otherwise the measured size is used, reserving
// one row to keep the prompt visible, and a failed probe makes the
// flag mandatory.
func resolveSize(spec string, logger *log.Logger) (cols, rows int, detected bool, err error) {
	w, h, termErr := term.GetSize(int(os.Stdout.Fd()))
	detected = termErr == nil && w >= 1 && h >= 2

	if spec != "" {
		cols, rows, err = parseSize(spec)
		return cols, rows, detected, err
	}
	if !detected {
		return 0, 0, false, errors.New(
			"terminal size unavailable, specify --size COLSxROWS")
	}
	logger.Printf("terminal: %dx%d cells", w, h)
	return w, h - 1, true, nil
}

// parseSize parses a COLSxROWS cell grid spec. Both dimensions must be
// positive.
func parseSize(spec string) (int, int, error) {
	colsStr, rowsStr, ok := strings.Cut(strings.ToLower(spec), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q, expected COLSxROWS", spec)
	}
	cols, err := strconv.Atoi(colsStr)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", spec, err)
	}
	rows, err := strconv.Atoi(rowsStr)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", spec, err)
	}
	if cols < 1 || rows < 1 {
		return 0, 0, fmt.Errorf(
			"size %q must be positive in both dimensions", spec)
	}
	return cols, rows, nil
}

// simplePalette resolves the 16-color palette for the simple modes.
// Other modes carry their palette implicitly and return nil.
func simplePalette(mode, override string) (img2term.Palette, error) {
	if mode != "simple-black" && mode != "simple-white" {
		return nil, nil
	}
	if override != "" {
		return img2term.LoadPalette(override)
	}
	if mode == "simple-white" {
		return img2term.WhiteBG, nil
	}
	return img2term.BlackBG, nil
}

// writePreview renders the PNG equivalent of the terminal output for
// the given mode.
func writePreview(r *img2term.Renderer, img *imageutil.RGBAImage, mode string, palette img2term.Palette, maxColors int, path string) error {
	var upper, lower img2term.Palette
	switch mode {
	case "truecolor":
		// Truecolor has no palette step; the preview is the prepared
		// image itself.
		return imageutil.SaveImage(img.RGBA, path)
	case "simple-black", "simple-white":
		upper, lower = palette, palette.Backgrounds()
	case "256":
		upper, lower = img2term.ANSI256, img2term.ANSI256
	case "adaptive":
		quantized := img2term.AdaptivePalette(img.RGBA, maxColors)
		upper, lower = quantized, quantized
	default:
		return fmt.Errorf("mode %q has no PNG preview", mode)
	}

	table, err := r.BuildColorTable(img, upper, lower)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create preview file: %w", err)
	}
	defer f.Close()

	return img2term.WritePNG(f, table, upper, lower,
		previewCellWidth, previewCellHeight)
}

// exitPipeline converts a pipeline error to a CLI exit carrying the
// error's own exit code.
func exitPipeline(err error) error {
	var pErr *img2term.Error
	if errors.As(err, &pErr) {
		return cli.Exit(pErr.Error(), pErr.ExitCode())
	}
	return cli.Exit(err.Error(), 1)
}
