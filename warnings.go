package glyphgrid

import (
	"fmt"
	"strings"
)

// WarningCode identifies a class of non-fatal degradation encountered
// during recovery.
type WarningCode int

const (
	// WarnDirectTextUnavailable means the text-layer fast path failed and
	// recovery fell back to QR decoding.
	WarnDirectTextUnavailable WarningCode = iota

	// WarnPageRenderFailed means a page could not be rasterized and
	// contributed zero symbols.
	WarnPageRenderFailed

	// WarnPageDecodeFailed means symbol detection failed on a page, or the
	// detector returned malformed output, and the page contributed zero
	// symbols.
	WarnPageDecodeFailed
)

// String returns a short identifier for the code.
func (c WarningCode) String() string {
	switch c {
	case WarnDirectTextUnavailable:
		return "direct-text-unavailable"
	case WarnPageRenderFailed:
		return "page-render-failed"
	case WarnPageDecodeFailed:
		return "page-decode-failed"
	default:
		return "unknown"
	}
}

// Warning describes a recovered, non-fatal issue. Warnings never stop a
// run; they tell the caller where output may be incomplete.
type Warning struct {
	Code WarningCode

	// Page is the 1-indexed page the warning applies to, or 0 for
	// document-level warnings.
	Page int

	Message string
}

// String formats the warning for display.
func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("%s (page %d): %s", w.Code, w.Page, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// FormatWarnings joins warnings into a single display string.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
