// Package glyphgrid recovers plain text from PDF documents whose pages
// encode each character as an individually rendered QR symbol.
//
// Extraction tries the document's embedded text layer first; when no usable
// text layer exists, pages are rasterized and every QR symbol on them is
// detected, decoded, clustered into reading-order lines, and reassembled
// into paragraphs on the reserved '+' delimiter.
//
// Basic usage:
//
//	text, warnings, err := glyphgrid.Open("document.pdf").Text()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", glyphgrid.FormatWarnings(warnings))
//	}
//
// With options:
//
//	text, _, err := glyphgrid.Open("scan.pdf").
//	    Zoom(6.0).
//	    Workers(4).
//	    Text()
//
// The QR fallback renders pages with MuPDF and requires building with the
// "fitz" tag; without it, Text returns raster.ErrRenderingNotEnabled when
// the fallback is needed. For advanced use cases the lower-level symbol,
// layout, and raster packages are also available.
package glyphgrid

// Open opens a PDF file and returns an Extractor for fluent configuration.
//
// Example:
//
//	text, warnings, err := glyphgrid.Open("document.pdf").Text()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustText is a helper that wraps a call to Text() or Document() and panics
// if the error is non-nil. It discards warnings and returns just the value.
//
// Example:
//
//	text := glyphgrid.MustText(glyphgrid.Open("document.pdf").Text())
func MustText[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
