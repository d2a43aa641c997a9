package layout

import (
	"math"
	"sort"

	"github.com/glyphgrid/glyphgrid/model"
)

// ClusterConfig holds configuration for line clustering.
type ClusterConfig struct {
	// MinThreshold is the absolute floor for the Y grouping threshold,
	// in bitmap pixels (default: 5.0).
	MinThreshold float64

	// HeightRatio is the Y grouping threshold as a fraction of the median
	// symbol height on the page (default: 0.6).
	HeightRatio float64

	// FallbackHeight is the assumed symbol height when the page carries no
	// symbols to take a median of (default: 20.0).
	FallbackHeight float64

	// BaselineRetain is the weight kept from the running cluster baseline
	// when a new member joins; the remainder comes from the new member's Y
	// (default: 0.7).
	BaselineRetain float64
}

// DefaultClusterConfig returns sensible default configuration.
func DefaultClusterConfig() ClusterConfig {
	return ClusterConfig{
		MinThreshold:   5.0,
		HeightRatio:    0.6,
		FallbackHeight: 20.0,
		BaselineRetain: 0.7,
	}
}

// LineClusterer groups a page's symbols into reading-order lines.
type LineClusterer struct {
	config ClusterConfig
}

// NewLineClusterer creates a line clusterer with default configuration.
func NewLineClusterer() *LineClusterer {
	return &LineClusterer{
		config: DefaultClusterConfig(),
	}
}

// NewLineClustererWithConfig creates a line clusterer with custom configuration.
func NewLineClustererWithConfig(config ClusterConfig) *LineClusterer {
	return &LineClusterer{
		config: config,
	}
}

// Threshold returns the Y grouping threshold for a page with the given
// symbols: max(MinThreshold, HeightRatio × median symbol height).
func (c *LineClusterer) Threshold(symbols []model.Symbol) float64 {
	return math.Max(
		c.config.MinThreshold,
		c.config.HeightRatio*medianHeight(symbols, c.config.FallbackHeight),
	)
}

// Cluster groups symbols into lines. Symbols are scanned once in (y, x)
// order; a symbol within the threshold of the running cluster baseline joins
// the open cluster, anything further away finalizes it and opens a new one.
// Finalized lines keep their emission order. A page with no symbols yields
// no lines.
func (c *LineClusterer) Cluster(symbols []model.Symbol) []model.Line {
	if len(symbols) == 0 {
		return nil
	}

	sorted := make([]model.Symbol, len(symbols))
	copy(sorted, symbols)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Center.Y != sorted[j].Center.Y {
			return sorted[i].Center.Y < sorted[j].Center.Y
		}
		return sorted[i].Center.X < sorted[j].Center.X
	})

	threshold := c.Threshold(sorted)

	var lines []model.Line
	state := clusterState{retain: c.config.BaselineRetain}
	for _, sym := range sorted {
		if line, done := state.observe(sym, threshold); done {
			line.Index = len(lines)
			lines = append(lines, line)
		}
	}
	if line, done := state.flush(); done {
		line.Index = len(lines)
		lines = append(lines, line)
	}

	return lines
}

// clusterState is the accumulator for the online clustering pass. It is
// either inactive or holds an open cluster with a running baseline.
type clusterState struct {
	active   bool
	baseline float64
	retain   float64
	members  []model.Symbol
}

// observe transitions the state on one incoming symbol. When the symbol
// falls outside the open cluster's band, the finished line is returned and a
// new cluster is started with the symbol.
func (s *clusterState) observe(sym model.Symbol, threshold float64) (model.Line, bool) {
	if !s.active {
		s.start(sym)
		return model.Line{}, false
	}

	if math.Abs(sym.Center.Y-s.baseline) <= threshold {
		s.members = append(s.members, sym)
		s.baseline = s.retain*s.baseline + (1-s.retain)*sym.Center.Y
		return model.Line{}, false
	}

	line := s.finalize()
	s.start(sym)
	return line, true
}

// flush finalizes the open cluster at the end of the pass, if any.
func (s *clusterState) flush() (model.Line, bool) {
	if !s.active {
		return model.Line{}, false
	}
	line := s.finalize()
	s.active = false
	s.members = nil
	return line, true
}

func (s *clusterState) start(sym model.Symbol) {
	s.active = true
	s.baseline = sym.Center.Y
	s.members = []model.Symbol{sym}
}

// finalize sorts the open cluster's members left to right and packages them
// as a line.
func (s *clusterState) finalize() model.Line {
	members := s.members
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].Center.X < members[j].Center.X
	})

	bbox := members[0].Bounds
	for _, sym := range members[1:] {
		bbox = bbox.Union(sym.Bounds)
	}

	return model.Line{
		Symbols:  members,
		Baseline: s.baseline,
		BBox:     bbox,
	}
}

// medianHeight returns the median of the symbol heights, or fallback when
// there are no symbols. For an even count it averages the two middle values.
func medianHeight(symbols []model.Symbol, fallback float64) float64 {
	if len(symbols) == 0 {
		return fallback
	}

	heights := make([]float64, len(symbols))
	for i, sym := range symbols {
		heights[i] = sym.Height
	}
	sort.Float64s(heights)

	mid := len(heights) / 2
	if len(heights)%2 == 1 {
		return heights[mid]
	}
	return (heights[mid-1] + heights[mid]) / 2
}
