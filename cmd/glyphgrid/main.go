// Command glyphgrid recovers plain text from a PDF whose pages encode each
// character as a QR symbol.
//
// Usage:
//
//	glyphgrid [flags] [input.pdf] [output.txt]
//
// The input defaults to sample.pdf and the output to result.txt. The output
// path gets a _YYMMDD_HHMMSS timestamp inserted before its extension, so
// every run writes a distinct file.
//
// Exit codes: 0 on success, 1 when the input file is missing, 2 when the
// QR-decoding fallback fails (including builds without the fitz tag).
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glyphgrid/glyphgrid"
	"github.com/glyphgrid/glyphgrid/raster"
)

const (
	exitOK            = 0
	exitInputNotFound = 1
	exitDecodeFailed  = 2
	exitWriteFailed   = 1

	defaultInput  = "sample.pdf"
	defaultOutput = "result.txt"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	flags := flag.NewFlagSet("glyphgrid", flag.ContinueOnError)
	flags.SetOutput(stderr)
	zoom := flags.Float64("zoom", raster.DefaultZoom, "rendering magnification for the QR fallback path")
	workers := flags.Int("workers", 1, "pages rendered concurrently (output order is always preserved)")
	verbose := flags.Bool("v", false, "verbose logging")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: glyphgrid [flags] [input.pdf] [output.txt]\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return exitDecodeFailed
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	input := defaultInput
	if flags.NArg() > 0 {
		input = flags.Arg(0)
	}
	output := defaultOutput
	if flags.NArg() > 1 {
		output = flags.Arg(1)
	}

	if _, err := os.Stat(input); err != nil {
		logger.Error("input file not found", "path", input)
		return exitInputNotFound
	}

	logger.Debug("recovering text", "input", input, "zoom", *zoom, "workers", *workers)

	text, warnings, err := glyphgrid.Open(input).
		Zoom(*zoom).
		Workers(*workers).
		Text()
	if err != nil {
		if errors.Is(err, raster.ErrRenderingNotEnabled) {
			logger.Error("QR decoding unavailable", "error", err,
				"hint", "rebuild with -tags fitz (MuPDF must be installed)")
		} else {
			logger.Error("text recovery failed", "error", err)
		}
		return exitDecodeFailed
	}
	for _, w := range warnings {
		logger.Warn(w.String())
	}

	// Written exactly once, only after the full pipeline succeeded. An
	// empty result still creates the file.
	outPath := stampPath(output, time.Now())
	if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
		logger.Error("writing output failed", "path", outPath, "error", err)
		return exitWriteFailed
	}

	logger.Info("result written", "path", outPath)
	return exitOK
}

// stampPath inserts a _YYMMDD_HHMMSS timestamp before the path's extension
// so consecutive runs never overwrite each other. Paths without an
// extension get .txt.
func stampPath(path string, now time.Time) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	if ext == "" {
		ext = ".txt"
	}
	return fmt.Sprintf("%s_%s%s", stem, now.Format("060102_150405"), ext)
}
