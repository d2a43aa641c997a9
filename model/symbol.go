package model

import "strings"

// Symbol is one decoded QR marker on a page. Each symbol carries exactly one
// character of content plus its position and size in bitmap coordinates.
// Symbols are immutable once created.
type Symbol struct {
	// Char is the decoded payload, normally a single character.
	Char string

	// Center is the centroid of the detected corner points.
	Center Point

	// Height is the vertical extent of the detected corner points.
	Height float64

	// Bounds is the bounding box of the detected corner points.
	Bounds BBox
}

// Line is an ordered run of symbols sharing a vertical band.
type Line struct {
	// Symbols are the members of the line, sorted left to right by
	// centroid X.
	Symbols []Symbol

	// Baseline is the running cluster centroid Y at the time the line was
	// finalized.
	Baseline float64

	// Index is the line's position on the page in cluster-finalization
	// order (0-based).
	Index int

	// BBox is the union of the member symbol bounds.
	BBox BBox
}

// Text returns the concatenated symbol payloads in reading order.
func (l Line) Text() string {
	var sb strings.Builder
	for _, sym := range l.Symbols {
		sb.WriteString(sym.Char)
	}
	return sb.String()
}

// Page holds the lines detected on a single page. Lines appear in the order
// the clusterer finalized them; they are never re-sorted afterwards.
type Page struct {
	Number int // 1-indexed page number
	Lines  []Line
}

// NewPage creates an empty page.
func NewPage() *Page {
	return &Page{}
}

// SymbolCount returns the number of symbols across all lines.
func (p *Page) SymbolCount() int {
	n := 0
	for _, line := range p.Lines {
		n += len(line.Symbols)
	}
	return n
}

// Text returns the page content with one detected line per text line.
func (p *Page) Text() string {
	parts := make([]string, 0, len(p.Lines))
	for _, line := range p.Lines {
		parts = append(parts, line.Text())
	}
	return strings.Join(parts, "\n")
}

// Document represents a fully decoded document.
type Document struct {
	Pages []*Page
}

// NewDocument creates a new empty document.
func NewDocument() *Document {
	return &Document{Pages: make([]*Page, 0)}
}

// AddPage appends a page and assigns its number.
func (d *Document) AddPage(page *Page) {
	page.Number = len(d.Pages) + 1
	d.Pages = append(d.Pages, page)
}

// PageCount returns the total number of pages.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// GetPage returns a page by number (1-indexed), or nil if out of range.
func (d *Document) GetPage(number int) *Page {
	if number < 1 || number > len(d.Pages) {
		return nil
	}
	return d.Pages[number-1]
}
