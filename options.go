package glyphgrid

import (
	"github.com/glyphgrid/glyphgrid/layout"
	"github.com/glyphgrid/glyphgrid/raster"
)

// ExtractOptions holds configuration for text recovery.
type ExtractOptions struct {
	// Rendering magnification for the QR fallback path.
	zoom float64

	// Paragraph boundary character.
	delimiter rune

	// Concurrent page renders; 1 means fully sequential.
	workers int

	// Detector thoroughness.
	tryHarder bool

	// Skip the text-layer fast path and always decode symbols.
	skipDirectText bool
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		zoom:           raster.DefaultZoom,
		delimiter:      layout.DefaultDelimiter,
		workers:        1,
		tryHarder:      true,
		skipDirectText: false,
	}
}

// clone creates a copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	return o
}
