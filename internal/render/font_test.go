package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkfold/typeset/internal/font/fonttest"
)

func testFont(t *testing.T) *Font {
	t.Helper()
	f, err := LoadFontFromBytes(fonttest.Bytes())
	require.NoError(t, err)
	return f
}

func TestLoadFontFromBytes(t *testing.T) {
	f := testFont(t)
	assert.NotNil(t, f.TrueTypeFont())

	_, err := LoadFontFromBytes([]byte("not a font"))
	assert.Error(t, err)
}

func TestMustLoadFontFromBytesPanics(t *testing.T) {
	assert.Panics(t, func() { MustLoadFontFromBytes([]byte("garbage")) })
}

func TestWidthSumsAdvances(t *testing.T) {
	f := testFont(t)

	a := f.Width("A", 12)
	b := f.Width("B", 12)
	ab := f.Width("AB", 12)

	assert.Greater(t, a.Pt(), 0.0)
	assert.Greater(t, b.Pt(), a.Pt(), "glyph B is wider in the test font")
	assert.InDelta(t, (a + b).Pt(), ab.Pt(), 0.1)
	assert.Equal(t, 0.0, f.Width("", 12).Pt())
}

func TestWidthScalesWithSize(t *testing.T) {
	f := testFont(t)
	small := f.Width("AB", 10)
	large := f.Width("AB", 20)
	assert.InDelta(t, 2*small.Pt(), large.Pt(), 0.5)
}

func TestLineMetrics(t *testing.T) {
	f := testFont(t)

	asc := f.Ascent(12)
	desc := f.Descent(12)
	lh := f.LineHeight(12)

	assert.Greater(t, asc.Pt(), 0.0)
	assert.Greater(t, desc.Pt(), 0.0)
	assert.GreaterOrEqual(t, lh.Pt(), (asc + desc).Pt()-0.1)
}

func TestFaceCaching(t *testing.T) {
	ClearFontCache()
	f := testFont(t)

	first := f.face(12)
	second := f.face(12)
	assert.Equal(t, first, second, "same size reuses the cached face")

	w1 := f.Width("AB", 12)
	w2 := f.Width("AB", 12)
	assert.Equal(t, w1, w2)
}
