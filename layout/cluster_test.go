package layout

import (
	"math"
	"testing"

	"github.com/glyphgrid/glyphgrid/model"
)

// makeClusterSymbol creates a test symbol for clustering tests.
func makeClusterSymbol(char string, x, y, height float64) model.Symbol {
	return model.Symbol{
		Char:   char,
		Center: model.Point{X: x, Y: y},
		Height: height,
		Bounds: model.NewBBox(x-height/2, y-height/2, height, height),
	}
}

// lineTexts extracts each line's text for compact assertions.
func lineTexts(lines []model.Line) []string {
	texts := make([]string, len(lines))
	for i, line := range lines {
		texts[i] = line.Text()
	}
	return texts
}

func TestLineClusterer_Empty(t *testing.T) {
	clusterer := NewLineClusterer()

	if lines := clusterer.Cluster(nil); lines != nil {
		t.Errorf("Cluster(nil) = %v, want nil", lines)
	}
	if lines := clusterer.Cluster([]model.Symbol{}); lines != nil {
		t.Errorf("Cluster(empty) = %v, want nil", lines)
	}
}

func TestLineClusterer_SingleSymbol(t *testing.T) {
	clusterer := NewLineClusterer()
	lines := clusterer.Cluster([]model.Symbol{makeClusterSymbol("A", 50, 100, 20)})

	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Text() != "A" {
		t.Errorf("line text = %q, want %q", lines[0].Text(), "A")
	}
	if lines[0].Baseline != 100 {
		t.Errorf("baseline = %v, want 100", lines[0].Baseline)
	}
	if lines[0].Index != 0 {
		t.Errorf("index = %d, want 0", lines[0].Index)
	}
}

func TestLineClusterer_Threshold(t *testing.T) {
	clusterer := NewLineClusterer()

	tests := []struct {
		name    string
		heights []float64
		want    float64
	}{
		{"no symbols uses fallback height", nil, 12.0}, // 0.6 * 20.0
		{"odd count takes middle", []float64{18, 20, 22}, 12.0},
		{"even count averages middle pair", []float64{10, 20, 30, 40}, 15.0},
		{"floor applies to tiny symbols", []float64{4, 4, 4}, 5.0},
		{"uniform height", []float64{25, 25}, 15.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var symbols []model.Symbol
			for i, h := range tt.heights {
				symbols = append(symbols, makeClusterSymbol("x", float64(i)*30, 100, h))
			}

			got := clusterer.Threshold(symbols)
			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("Threshold() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLineClusterer_SingleRow_SortedByX(t *testing.T) {
	clusterer := NewLineClusterer()

	// Deliberately out of x order; all on one band.
	symbols := []model.Symbol{
		makeClusterSymbol("L", 90, 101, 20),
		makeClusterSymbol("H", 10, 100, 20),
		makeClusterSymbol("O", 130, 99, 20),
		makeClusterSymbol("E", 50, 102, 20),
		makeClusterSymbol("L", 110, 100, 20),
	}

	lines := clusterer.Cluster(symbols)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %v", len(lines), lineTexts(lines))
	}
	if lines[0].Text() != "HELLO" {
		t.Errorf("line text = %q, want %q", lines[0].Text(), "HELLO")
	}

	for i := 1; i < len(lines[0].Symbols); i++ {
		if lines[0].Symbols[i].Center.X < lines[0].Symbols[i-1].Center.X {
			t.Errorf("symbols not ordered by x at position %d", i)
		}
	}
}

func TestLineClusterer_TwoRows(t *testing.T) {
	clusterer := NewLineClusterer()

	// Height 20 everywhere: threshold = max(5, 0.6*20) = 12.
	// Row separation of 40 exceeds the threshold.
	symbols := []model.Symbol{
		makeClusterSymbol("C", 10, 140, 20),
		makeClusterSymbol("A", 10, 100, 20),
		makeClusterSymbol("D", 40, 140, 20),
		makeClusterSymbol("B", 40, 100, 20),
	}

	lines := clusterer.Cluster(symbols)
	got := lineTexts(lines)
	if len(got) != 2 || got[0] != "AB" || got[1] != "CD" {
		t.Fatalf("lines = %v, want [AB CD]", got)
	}
	if lines[0].Index != 0 || lines[1].Index != 1 {
		t.Errorf("line indices = %d,%d, want 0,1", lines[0].Index, lines[1].Index)
	}
}

func TestLineClusterer_BoundaryDistance(t *testing.T) {
	// Uniform height 20 -> threshold 12. A symbol exactly 12 below the
	// baseline joins; 12.5 starts a new line.
	tests := []struct {
		name      string
		secondY   float64
		wantLines int
	}{
		{"within threshold", 108, 1},
		{"exactly at threshold", 112, 1},
		{"beyond threshold", 112.5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clusterer := NewLineClusterer()
			symbols := []model.Symbol{
				makeClusterSymbol("a", 10, 100, 20),
				makeClusterSymbol("b", 40, tt.secondY, 20),
			}

			lines := clusterer.Cluster(symbols)
			if len(lines) != tt.wantLines {
				t.Errorf("got %d lines, want %d", len(lines), tt.wantLines)
			}
		})
	}
}

func TestLineClusterer_BaselineSmoothing(t *testing.T) {
	clusterer := NewLineClusterer()

	// Second member at y=110 pulls the baseline to 0.7*100 + 0.3*110 = 103.
	symbols := []model.Symbol{
		makeClusterSymbol("a", 10, 100, 20),
		makeClusterSymbol("b", 40, 110, 20),
	}

	lines := clusterer.Cluster(symbols)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if math.Abs(lines[0].Baseline-103) > 0.0001 {
		t.Errorf("baseline = %v, want 103", lines[0].Baseline)
	}
}

func TestLineClusterer_TracksGradualDrift(t *testing.T) {
	clusterer := NewLineClusterer()

	// A slightly skewed row: each symbol 3 lower than the previous, always
	// within the threshold (12) of the smoothed baseline. Stays one line.
	var symbols []model.Symbol
	for i := 0; i < 8; i++ {
		symbols = append(symbols, makeClusterSymbol("s", float64(i)*30, 100+float64(i)*3, 20))
	}

	lines := clusterer.Cluster(symbols)
	if len(lines) != 1 {
		t.Errorf("skewed row split into %d lines, want 1", len(lines))
	}
}

func TestLineClusterer_EmissionOrderIsScanOrder(t *testing.T) {
	clusterer := NewLineClusterer()

	// Three bands fed in shuffled order; emitted lines must follow the
	// top-to-bottom scan, not input order.
	symbols := []model.Symbol{
		makeClusterSymbol("3", 10, 300, 20),
		makeClusterSymbol("1", 10, 100, 20),
		makeClusterSymbol("2", 10, 200, 20),
	}

	got := lineTexts(clusterer.Cluster(symbols))
	if len(got) != 3 || got[0] != "1" || got[1] != "2" || got[2] != "3" {
		t.Errorf("lines = %v, want [1 2 3]", got)
	}
}

func TestLineClusterer_CustomConfig(t *testing.T) {
	config := DefaultClusterConfig()
	config.HeightRatio = 2.0 // very tolerant: everything is one line
	clusterer := NewLineClustererWithConfig(config)

	symbols := []model.Symbol{
		makeClusterSymbol("a", 10, 100, 20),
		makeClusterSymbol("b", 10, 130, 20),
	}

	if lines := clusterer.Cluster(symbols); len(lines) != 1 {
		t.Errorf("got %d lines, want 1 with HeightRatio=2.0", len(lines))
	}
}

func TestLineClusterer_LineBBoxCoversMembers(t *testing.T) {
	clusterer := NewLineClusterer()

	symbols := []model.Symbol{
		makeClusterSymbol("a", 20, 100, 20),
		makeClusterSymbol("b", 80, 100, 20),
	}

	lines := clusterer.Cluster(symbols)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	bbox := lines[0].BBox
	for _, sym := range lines[0].Symbols {
		if !bbox.Contains(sym.Center) {
			t.Errorf("line bbox %+v does not contain symbol at %+v", bbox, sym.Center)
		}
	}
}
