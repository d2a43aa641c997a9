// Package layout imposes reading order on detected symbols and reassembles
// the resulting character stream into paragraphs.
//
// # Line Clustering
//
// The [LineClusterer] groups a page's symbols into text lines by vertical
// position, in a single online pass over symbols sorted by (y, x):
//
//	clusterer := layout.NewLineClusterer()
//	lines := clusterer.Cluster(symbols)
//
// The clustering threshold adapts to the page: it is a fraction of the
// median symbol height, with an absolute floor. While a cluster is open its
// baseline is smoothed toward new members, so it tolerates single-symbol
// jitter while still tracking gradual skew across a row. Lines are emitted
// in finalization order and never re-sorted afterwards.
//
// # Paragraph Reconstruction
//
// The [ParagraphReconstructor] consumes the linearized character stream
// (page order, then line order, then x order within a line) and splits it on
// the reserved delimiter character:
//
//	rec := layout.NewParagraphReconstructor(layout.DefaultDelimiter)
//	for _, page := range doc.Pages {
//	    rec.FeedPage(page)
//	}
//	text := rec.Text()
//
// The delimiter never appears in output and empty spans between delimiters
// are dropped. There is no escaping mechanism: a literal delimiter character
// in source content cannot be represented.
package layout
