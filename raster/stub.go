//go:build !fitz

package raster

import "image"

// Renderer is a stub that fails all operations with ErrRenderingNotEnabled.
// Rebuild with -tags fitz to enable page rendering.
type Renderer struct{}

// Open returns ErrRenderingNotEnabled.
func Open(path string) (*Renderer, error) {
	return nil, ErrRenderingNotEnabled
}

// PageCount returns 0 on the stub renderer.
func (r *Renderer) PageCount() int {
	return 0
}

// RenderPage returns ErrRenderingNotEnabled.
func (r *Renderer) RenderPage(pageIndex int, zoom float64) (*image.RGBA, error) {
	return nil, ErrRenderingNotEnabled
}

// Close is a no-op on the stub renderer. It is safe to call on nil.
func (r *Renderer) Close() error {
	return nil
}

// Enabled reports whether rendering support was compiled in.
func Enabled() bool {
	return false
}
