// Package pdftext extracts the embedded text layer from a PDF, the fast
// path tried before any page is rendered.
//
// Extraction is pure Go via github.com/ledongthuc/pdf. The caller treats
// any error, and an empty result, as "no usable text layer" and falls back
// to QR decoding; nothing in this package is fatal to a run.
package pdftext

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// Extract returns the document's text layer with all intra-page whitespace
// removed and pages joined by a single space. The source documents encode
// one character per symbol, so whitespace in the text layer is layout
// noise; the paragraph delimiter character survives untouched.
//
// An empty string with a nil error means the document has no text layer.
func Extract(path string) (text string, err error) {
	// The parser panics on some malformed files; degrade those to an
	// error so the caller can fall back to rendering.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("text layer extraction failed: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	fonts := make(map[string]*pdf.Font)
	var pages []string

	total := r.NumPage()
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := p.Font(name)
				fonts[name] = &font
			}
		}

		pageText, pageErr := p.GetPlainText(fonts)
		if pageErr != nil {
			return "", fmt.Errorf("page %d: %w", i, pageErr)
		}
		if compacted := compact(pageText); compacted != "" {
			pages = append(pages, compacted)
		}
	}

	return strings.Join(pages, " "), nil
}

// compact removes every whitespace character from s.
func compact(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
