//go:build fitz

package raster

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// Renderer rasterizes the pages of one document. It owns the underlying
// MuPDF document handle and must be closed when no longer needed.
type Renderer struct {
	doc *fitz.Document
}

// Open opens a document for rendering.
func Open(path string) (*Renderer, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	return &Renderer{doc: doc}, nil
}

// PageCount returns the number of pages in the document.
func (r *Renderer) PageCount() int {
	return r.doc.NumPage()
}

// RenderPage rasterizes one page (0-indexed) at zoom × native resolution
// and returns it as an RGBA bitmap, the channel order the symbol detector
// expects. A non-positive zoom falls back to DefaultZoom. The returned
// bitmap is page-scoped: callers release it before rendering the next page.
func (r *Renderer) RenderPage(pageIndex int, zoom float64) (*image.RGBA, error) {
	if zoom <= 0 {
		zoom = DefaultZoom
	}
	img, err := r.doc.ImageDPI(pageIndex, baseDPI*zoom)
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", pageIndex+1, err)
	}
	return img, nil
}

// Close releases the document handle. It is safe to call on a nil Renderer.
func (r *Renderer) Close() error {
	if r == nil || r.doc == nil {
		return nil
	}
	return r.doc.Close()
}

// Enabled reports whether rendering support was compiled in.
func Enabled() bool {
	return true
}
