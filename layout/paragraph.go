package layout

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/glyphgrid/glyphgrid/model"
)

// DefaultDelimiter is the reserved character marking a paragraph boundary in
// the decoded character stream.
const DefaultDelimiter = '+'

// ParagraphReconstructor splits the linearized character stream into
// paragraphs on the delimiter character. It is stateful: feed symbols in
// reading order across lines and pages, then call Finish or Text.
//
// A paragraph is trimmed before emission and never empty; consecutive
// delimiters therefore produce nothing. A stream without a trailing
// delimiter still emits its final accumulated paragraph. Completed
// paragraphs are NFC-normalized so combining sequences split across symbols
// come out composed.
type ParagraphReconstructor struct {
	delimiter  rune
	buf        strings.Builder
	paragraphs []string
}

// NewParagraphReconstructor creates a reconstructor splitting on the given
// delimiter. A zero delimiter selects [DefaultDelimiter].
func NewParagraphReconstructor(delimiter rune) *ParagraphReconstructor {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	return &ParagraphReconstructor{delimiter: delimiter}
}

// Feed consumes one decoded payload. Payloads normally hold a single
// character, but multi-rune payloads are scanned character by character so a
// delimiter inside one still closes the paragraph.
func (r *ParagraphReconstructor) Feed(payload string) {
	for _, ch := range payload {
		if ch == r.delimiter {
			r.endParagraph()
		} else {
			r.buf.WriteRune(ch)
		}
	}
}

// FeedLine consumes a line's symbols in their stored (left to right) order.
func (r *ParagraphReconstructor) FeedLine(line model.Line) {
	for _, sym := range line.Symbols {
		r.Feed(sym.Char)
	}
}

// FeedPage consumes a page's lines in their stored (finalization) order.
func (r *ParagraphReconstructor) FeedPage(page *model.Page) {
	for _, line := range page.Lines {
		r.FeedLine(line)
	}
}

// Finish flushes any accumulated trailing content and returns the completed
// paragraphs. The reconstructor must not be fed after Finish.
func (r *ParagraphReconstructor) Finish() []string {
	r.endParagraph()
	return r.paragraphs
}

// Text flushes the reconstructor and returns the paragraphs joined by
// newlines, with leading and trailing newlines stripped.
func (r *ParagraphReconstructor) Text() string {
	return strings.Trim(strings.Join(r.Finish(), "\n"), "\n")
}

func (r *ParagraphReconstructor) endParagraph() {
	p := strings.TrimSpace(r.buf.String())
	r.buf.Reset()
	if p == "" {
		return
	}
	r.paragraphs = append(r.paragraphs, norm.NFC.String(p))
}

// ReconstructDocument linearizes all pages' lines' symbols in reading order
// and returns the delimiter-split paragraph text.
func ReconstructDocument(doc *model.Document, delimiter rune) string {
	rec := NewParagraphReconstructor(delimiter)
	for _, page := range doc.Pages {
		rec.FeedPage(page)
	}
	return rec.Text()
}

// SplitDelimited applies the paragraph protocol to already-extracted text:
// it splits on the delimiter, trims each span, and drops empty spans. This is
// the collaborator contract for the direct text-layer path, which shares the
// delimiter semantics of symbol decoding.
func SplitDelimited(text string, delimiter rune) []string {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}

	var paragraphs []string
	for _, span := range strings.Split(text, string(delimiter)) {
		span = strings.TrimSpace(span)
		if span == "" {
			continue
		}
		paragraphs = append(paragraphs, norm.NFC.String(span))
	}
	return paragraphs
}
