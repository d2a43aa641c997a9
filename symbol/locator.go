// Package symbol locates and decodes the QR symbols on a rendered page
// bitmap.
//
// Detection is backed by the pure-Go ZXing port (gozxing). Detector results
// are normalized before anything downstream sees them: a page produces
// either a list of valid symbols, or zero symbols. A detector failure or
// malformed detector output is reported as an error the caller is expected
// to degrade to "zero symbols on this page"; it must never abort a run.
package symbol

import (
	"errors"
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/multi"
	"github.com/makiuchi-d/gozxing/multi/qrcode"
	xdraw "golang.org/x/image/draw"

	"github.com/glyphgrid/glyphgrid/model"
)

// ErrGeometryMismatch indicates the detector reported payload and geometry
// lists of different lengths. The page is treated as carrying zero symbols.
var ErrGeometryMismatch = errors.New("detector payload and geometry counts differ")

// Config holds configuration for symbol location.
type Config struct {
	// TryHarder enables the detector's more thorough (and slower) scan
	// mode (default: true).
	TryHarder bool

	// MinDimension is the smallest bitmap edge, in pixels, processed
	// without upscaling. Smaller bitmaps are enlarged by UpscaleFactor
	// before detection to keep small symbols legible; reported coordinates
	// are always in the original bitmap space. Zero disables upscaling
	// (default: 256).
	MinDimension int

	// UpscaleFactor is the integer enlargement applied to undersized
	// bitmaps (default: 2).
	UpscaleFactor int
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		TryHarder:     true,
		MinDimension:  256,
		UpscaleFactor: 2,
	}
}

// Locator detects every QR symbol present in a bitmap.
// A Locator is not safe for concurrent use; create one per goroutine.
type Locator struct {
	config Config
	reader multi.MultipleBarcodeReader
	hints  map[gozxing.DecodeHintType]interface{}
}

// NewLocator creates a locator with default configuration.
func NewLocator() *Locator {
	return NewLocatorWithConfig(DefaultConfig())
}

// NewLocatorWithConfig creates a locator with custom configuration.
func NewLocatorWithConfig(config Config) *Locator {
	hints := map[gozxing.DecodeHintType]interface{}{}
	if config.TryHarder {
		hints[gozxing.DecodeHintType_TRY_HARDER] = true
	}
	return &Locator{
		config: config,
		reader: qrcode.NewQRCodeMultiReader(),
		hints:  hints,
	}
}

// Locate detects and decodes all QR symbols in the bitmap. It returns the
// symbols found, which may be none. A nil error with zero symbols means the
// page is genuinely blank as far as the detector can tell; a non-nil error
// means the detector itself failed and the caller should treat the page as
// zero symbols and continue.
func (l *Locator) Locate(img image.Image) ([]model.Symbol, error) {
	if img == nil {
		return nil, nil
	}

	scaled, scale := l.upscale(img)

	bmp, err := gozxing.NewBinaryBitmapFromImage(scaled)
	if err != nil {
		return nil, fmt.Errorf("binarize bitmap: %w", err)
	}

	results, err := l.reader.DecodeMultiple(bmp, l.hints)
	if err != nil {
		// "Nothing found" is a normal outcome for a blank page.
		if _, ok := err.(gozxing.NotFoundException); ok {
			return nil, nil
		}
		return nil, fmt.Errorf("detect symbols: %w", err)
	}

	payloads, corners := splitResults(results)
	symbols, err := pairDetections(payloads, corners)
	if err != nil {
		return nil, err
	}

	if scale != 1 {
		for i := range symbols {
			symbols[i] = rescaleSymbol(symbols[i], 1/scale)
		}
	}
	return symbols, nil
}

// upscale enlarges undersized bitmaps before detection. It returns the
// bitmap to detect on and the scale factor that was applied.
func (l *Locator) upscale(img image.Image) (image.Image, float64) {
	if l.config.MinDimension <= 0 || l.config.UpscaleFactor <= 1 {
		return img, 1
	}
	b := img.Bounds()
	if b.Dx() >= l.config.MinDimension && b.Dy() >= l.config.MinDimension {
		return img, 1
	}

	f := l.config.UpscaleFactor
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*f, b.Dy()*f))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst, float64(f)
}

// splitResults separates detector results into parallel payload and
// geometry lists. Detection APIs differ in how they report geometry;
// keeping the pairing in one place means downstream code never has to
// reason about raw detector output shapes.
func splitResults(results []*gozxing.Result) ([]string, [][]model.Point) {
	payloads := make([]string, 0, len(results))
	corners := make([][]model.Point, 0, len(results))
	for _, res := range results {
		if res == nil {
			continue
		}
		payloads = append(payloads, res.GetText())

		pts := res.GetResultPoints()
		points := make([]model.Point, 0, len(pts))
		for _, pt := range pts {
			points = append(points, model.Point{X: pt.GetX(), Y: pt.GetY()})
		}
		corners = append(corners, points)
	}
	return payloads, corners
}

// pairDetections pairs payloads with their geometry, producing normalized
// symbols. Payloads are only paired when both lists have equal length;
// otherwise the whole detection is rejected with ErrGeometryMismatch.
// Payloads that decoded to an empty string, and payloads without any
// geometry, are dropped.
func pairDetections(payloads []string, corners [][]model.Point) ([]model.Symbol, error) {
	if len(payloads) != len(corners) {
		return nil, ErrGeometryMismatch
	}

	var symbols []model.Symbol
	for i, payload := range payloads {
		if payload == "" || len(corners[i]) == 0 {
			continue
		}
		symbols = append(symbols, symbolFromPoints(payload, corners[i]))
	}
	return symbols, nil
}

// symbolFromPoints builds a symbol from a payload and its detected corner
// points. The centroid is the mean of the points; the height is their
// vertical extent.
func symbolFromPoints(payload string, points []model.Point) model.Symbol {
	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}
	n := float64(len(points))
	bounds := model.NewBBoxFromPoints(points...)

	return model.Symbol{
		Char:   payload,
		Center: model.Point{X: sumX / n, Y: sumY / n},
		Height: bounds.Height,
		Bounds: bounds,
	}
}

// rescaleSymbol maps a symbol detected on an upscaled bitmap back to the
// original bitmap's coordinate space.
func rescaleSymbol(sym model.Symbol, factor float64) model.Symbol {
	sym.Center.X *= factor
	sym.Center.Y *= factor
	sym.Height *= factor
	sym.Bounds = model.NewBBox(
		sym.Bounds.X*factor,
		sym.Bounds.Y*factor,
		sym.Bounds.Width*factor,
		sym.Bounds.Height*factor,
	)
	return sym
}
