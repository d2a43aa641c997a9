// Package raster renders PDF pages to bitmaps for symbol detection.
//
// Rendering is backed by MuPDF via go-fitz, which requires CGo and the
// MuPDF libraries. It is compiled behind the "fitz" build tag:
//
//	go build -tags fitz
//
// Without the tag the package compiles a stub whose functions return
// [ErrRenderingNotEnabled], and the QR-decoding fallback path reports the
// missing capability instead of crashing. The direct text-layer path does
// not depend on this package and works in every build.
package raster

import "errors"

// ErrRenderingNotEnabled is returned when page rendering is required but
// rendering support was not compiled in. Rebuild with -tags fitz (MuPDF
// must be installed) to enable it.
var ErrRenderingNotEnabled = errors.New("page rendering support not enabled; rebuild with -tags fitz (requires MuPDF)")

// DefaultZoom is the default magnification factor for page rendering.
// A page is rasterized at zoom × its native resolution; higher values
// improve small-symbol legibility at a performance cost.
const DefaultZoom = 4.0

// baseDPI is the rendering resolution corresponding to zoom 1.0.
const baseDPI = 72.0
