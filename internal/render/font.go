// Package render wraps TrueType fonts with the point-accurate measurement
// helpers the layout engine needs: line metrics and string advances at a
// given text size. Rendering itself happens downstream (the PDF emitter
// re-encodes text against the embedded font program), so everything here is
// measurement only.
package render

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/inkfold/typeset/internal/core/geom"
)

// Measurement happens at 72 DPI so that one pixel equals one point and face
// metrics can be used as point values directly.
const measureDPI = 72

// Font wraps a TrueType font for text measurement in points.
type Font struct {
	tt *truetype.Font
}

// LoadFont loads a .ttf file from disk.
func LoadFont(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadFontFromBytes(data)
}

// LoadFontFromBytes parses a TrueType font from memory. Useful for embedding
// fonts or loading from resources.
func LoadFontFromBytes(data []byte) (*Font, error) {
	ttf, err := truetype.Parse(data)
	if err != nil {
		return nil, err
	}
	return &Font{tt: ttf}, nil
}

// MustLoadFont loads a .ttf font from disk and panics on error.
// Intended for static initialization at package level.
func MustLoadFont(path string) *Font {
	f, err := LoadFont(path)
	if err != nil {
		panic(err)
	}
	return f
}

// MustLoadFontFromBytes parses a TrueType font from bytes and panics on
// error. Used for embedding fonts with Go's //go:embed directive.
func MustLoadFontFromBytes(data []byte) *Font {
	f, err := LoadFontFromBytes(data)
	if err != nil {
		panic(err)
	}
	return f
}

// TrueTypeFont exposes the underlying truetype.Font instance.
func (f *Font) TrueTypeFont() *truetype.Font { return f.tt }

// cacheKey builds a unique cache key for font face reuse.
func (f *Font) cacheKey(sizePt float64) string {
	return fmt.Sprintf("%p_%.3f", f.tt, sizePt)
}

// face returns a truetype.Face configured for the given size. Faces are
// cached because truetype.NewFace allocates glyph buffers on every call.
func (f *Font) face(size geom.Length) font.Face {
	sizePt := size.Pt()
	if sizePt <= 0 {
		sizePt = 0.01
	}
	key := f.cacheKey(sizePt)
	if face, ok := fontCache.get(key); ok {
		return face
	}
	face := truetype.NewFace(f.tt, &truetype.Options{
		Size:    sizePt,
		DPI:     measureDPI,
		Hinting: font.HintingNone,
	})
	fontCache.put(key, face)
	return face
}

// Ascent returns the distance from baseline to top at the given size.
func (f *Font) Ascent(size geom.Length) geom.Length {
	m := f.face(size).Metrics()
	return geom.Length(fixedToPt(m.Ascent))
}

// Descent returns the distance from baseline to bottom at the given size.
func (f *Font) Descent(size geom.Length) geom.Length {
	m := f.face(size).Metrics()
	return geom.Length(fixedToPt(m.Descent))
}

// LineHeight returns the total line height (ascent + descent + leading) at
// the given size.
func (f *Font) LineHeight(size geom.Length) geom.Length {
	m := f.face(size).Metrics()
	return geom.Length(fixedToPt(m.Height))
}

// Width measures the advance width of a single-line string at the given
// size.
func (f *Font) Width(s string, size geom.Length) geom.Length {
	if s == "" {
		return 0
	}
	adv := font.MeasureString(f.face(size), s)
	return geom.Length(fixedToPt(adv))
}

// fixedToPt converts a 26.6 fixed-point value to points, keeping the
// fractional part rather than truncating to whole pixels: layout positions
// accumulate, so sub-point precision matters.
func fixedToPt[T ~int32](v T) float64 {
	return float64(v) / 64.0
}
