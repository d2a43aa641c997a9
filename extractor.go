package glyphgrid

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/glyphgrid/glyphgrid/format"
	"github.com/glyphgrid/glyphgrid/layout"
	"github.com/glyphgrid/glyphgrid/model"
	"github.com/glyphgrid/glyphgrid/pdftext"
	"github.com/glyphgrid/glyphgrid/raster"
	"github.com/glyphgrid/glyphgrid/symbol"
)

// pageResult holds the decoding outcome for a single page.
type pageResult struct {
	symbols  []model.Symbol
	warnings []Warning
}

// Extractor provides a fluent interface for recovering text from a
// QR-encoded PDF. Each configuration method returns a new Extractor
// instance, making it safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Extractor with a copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		options:  e.options.clone(),
		err:      e.err,
		warnings: append([]Warning(nil), e.warnings...),
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Zoom sets the rendering magnification for the QR fallback path. The page
// is rasterized at factor × its native resolution; the factor must be
// positive (default 4.0).
//
// Example:
//
//	text, _, err := glyphgrid.Open("scan.pdf").Zoom(6.0).Text()
func (e *Extractor) Zoom(factor float64) *Extractor {
	newExt := e.clone()
	if factor <= 0 {
		newExt.err = fmt.Errorf("zoom factor must be positive, got %v", factor)
		return newExt
	}
	newExt.options.zoom = factor
	return newExt
}

// Delimiter sets the reserved paragraph boundary character (default '+').
// The delimiter never appears in recovered text; there is no escaping
// mechanism for a literal delimiter in source content.
func (e *Extractor) Delimiter(delimiter rune) *Extractor {
	newExt := e.clone()
	newExt.options.delimiter = delimiter
	return newExt
}

// Workers sets how many pages are rendered and decoded concurrently
// (default 1, fully sequential). Page order in the output is preserved
// regardless of the worker count; paragraph reconstruction is
// order-sensitive, so results are always reassembled in page order.
func (e *Extractor) Workers(n int) *Extractor {
	newExt := e.clone()
	if n < 1 {
		n = 1
	}
	newExt.options.workers = n
	return newExt
}

// TryHarder toggles the detector's more thorough scan mode (default on).
// Turning it off trades recall for speed.
func (e *Extractor) TryHarder(enabled bool) *Extractor {
	newExt := e.clone()
	newExt.options.tryHarder = enabled
	return newExt
}

// ForceDecode skips the text-layer fast path so recovery always goes
// through QR decoding. Useful when a document carries a stale or partial
// text layer.
func (e *Extractor) ForceDecode() *Extractor {
	newExt := e.clone()
	newExt.options.skipDirectText = true
	return newExt
}

// ============================================================================
// Terminal Operations (execute recovery and return results)
// ============================================================================

// Text recovers and returns the document's text: paragraphs split on the
// delimiter, joined by single newlines.
//
// Returns the recovered text, any warnings encountered during processing,
// and an error if recovery failed. Warnings indicate non-fatal issues
// (e.g., a page that could not be rendered) where recovery succeeded but
// results may be incomplete.
//
// Example:
//
//	text, warnings, err := glyphgrid.Open("document.pdf").Text()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", glyphgrid.FormatWarnings(warnings))
//	}
func (e *Extractor) Text() (string, []Warning, error) {
	if e.err != nil {
		return "", nil, e.err
	}
	if err := e.checkInput(); err != nil {
		return "", e.warnings, err
	}

	if !e.options.skipDirectText {
		if text, ok := e.directText(); ok {
			return text, e.warnings, nil
		}
	}

	doc, err := e.decode()
	if err != nil {
		return "", e.warnings, err
	}
	return layout.ReconstructDocument(doc, e.options.delimiter), e.warnings, nil
}

// Document runs the QR decoding pipeline and returns the structured result:
// pages, their lines in cluster order, and each line's symbols with
// geometry. Unlike Text, Document never consults the text layer.
func (e *Extractor) Document() (*model.Document, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.checkInput(); err != nil {
		return nil, e.warnings, err
	}

	doc, err := e.decode()
	if err != nil {
		return nil, e.warnings, err
	}
	return doc, e.warnings, nil
}

// ============================================================================
// Pipeline
// ============================================================================

// checkInput verifies the input file exists and sniffs as a PDF.
func (e *Extractor) checkInput() error {
	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	info, err := os.Stat(e.filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("input file %s: %w", e.filename, fs.ErrNotExist)
		}
		return fmt.Errorf("input file %s: %w", e.filename, err)
	}
	if info.IsDir() {
		return fmt.Errorf("input file %s is a directory", e.filename)
	}

	detected, err := format.DetectFile(e.filename)
	if err != nil {
		return fmt.Errorf("input file %s: %w", e.filename, err)
	}
	if detected != format.PDF {
		return fmt.Errorf("input file %s is not a PDF document", e.filename)
	}
	return nil
}

// directText attempts the text-layer fast path. The second return value
// reports whether it produced usable text; on any failure or empty layer
// the caller falls back to QR decoding.
func (e *Extractor) directText() (string, bool) {
	text, err := pdftext.Extract(e.filename)
	if err != nil {
		e.warnings = append(e.warnings, Warning{
			Code:    WarnDirectTextUnavailable,
			Message: err.Error(),
		})
		return "", false
	}

	paragraphs := layout.SplitDelimited(text, e.options.delimiter)
	if len(paragraphs) == 0 {
		return "", false
	}
	return strings.Join(paragraphs, "\n"), true
}

// decode runs the QR pipeline: render each page, locate its symbols, and
// cluster them into lines. Per-page failures degrade to zero symbols for
// that page; only a missing rendering capability or an unopenable document
// is fatal.
func (e *Extractor) decode() (*model.Document, error) {
	renderer, err := raster.Open(e.filename)
	if err != nil {
		return nil, err
	}
	defer renderer.Close()

	pageCount := renderer.PageCount()
	results := make([]pageResult, pageCount)

	if e.options.workers > 1 && pageCount > 1 {
		// Pages are independent; results land in an index-addressed
		// slice so emission order never depends on completion order.
		var g errgroup.Group
		g.SetLimit(e.options.workers)
		for i := 0; i < pageCount; i++ {
			i := i
			g.Go(func() error {
				results[i] = e.decodePage(renderer, i)
				return nil
			})
		}
		_ = g.Wait() // decodePage never returns an error; failures degrade
	} else {
		for i := 0; i < pageCount; i++ {
			results[i] = e.decodePage(renderer, i)
		}
	}

	clusterer := layout.NewLineClusterer()
	doc := model.NewDocument()
	for i := 0; i < pageCount; i++ {
		e.warnings = append(e.warnings, results[i].warnings...)

		page := model.NewPage()
		page.Lines = clusterer.Cluster(results[i].symbols)
		doc.AddPage(page)
	}
	return doc, nil
}

// decodePage renders one page and locates its symbols. The page bitmap is
// scoped to this call; nothing retains it afterwards.
func (e *Extractor) decodePage(renderer *raster.Renderer, pageIndex int) pageResult {
	img, err := renderer.RenderPage(pageIndex, e.options.zoom)
	if err != nil {
		return pageResult{warnings: []Warning{{
			Code:    WarnPageRenderFailed,
			Page:    pageIndex + 1,
			Message: err.Error(),
		}}}
	}

	// Locators are not goroutine-safe; each page gets its own.
	config := symbol.DefaultConfig()
	config.TryHarder = e.options.tryHarder
	locator := symbol.NewLocatorWithConfig(config)

	symbols, err := locator.Locate(img)
	if err != nil {
		return pageResult{warnings: []Warning{{
			Code:    WarnPageDecodeFailed,
			Page:    pageIndex + 1,
			Message: err.Error(),
		}}}
	}
	return pageResult{symbols: symbols}
}
