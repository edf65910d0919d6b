package nodes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkfold/typeset/internal/core/geom"
)

// runeWidth measures every rune as 10pt, spaces included. Good enough to
// exercise the wrapping logic without a real font.
func runeWidth(s string) geom.Length {
	return geom.Length(10 * len([]rune(s)))
}

func TestWrapTextNoWidthLimit(t *testing.T) {
	lines := wrapText("hello world\nsecond line", geom.Inf(), runeWidth)
	assert.Equal(t, []string{"hello world", "second line"}, lines)
}

func TestWrapTextEmpty(t *testing.T) {
	assert.Nil(t, wrapText("", 100, runeWidth))
}

func TestWrapTextAtWordBoundaries(t *testing.T) {
	// 8 runes fit per line at width 80.
	lines := wrapText("one two three", 80, runeWidth)
	assert.Equal(t, []string{"one two", "three"}, lines)
}

func TestWrapTextPreservesParagraphBreaks(t *testing.T) {
	lines := wrapText("a\n\nb", 100, runeWidth)
	assert.Equal(t, []string{"a", "", "b"}, lines)
}

func TestWrapTextNormalizesLineEndings(t *testing.T) {
	lines := wrapText("a\r\nb\rc", 100, runeWidth)
	assert.Equal(t, []string{"a", "b", "c"}, lines)
}

func TestWrapTextCollapsesSeparatorRuns(t *testing.T) {
	lines := wrapText("one \t two", 200, runeWidth)
	assert.Equal(t, []string{"one two"}, lines)
}

func TestWrapTextKeepsNBSPInsideTokens(t *testing.T) {
	// The NBSP-joined pair is one token and must wrap as a unit.
	lines := wrapText("aa bb cc", 60, runeWidth)
	assert.Equal(t, []string{"aa bb", "cc"}, lines)
}

func TestWrapTextSplitsOverlongWord(t *testing.T) {
	// A 10-cluster word at width 40 splits into 4-cluster chunks.
	lines := wrapText("abcdefghij", 40, runeWidth)
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, lines)
}

func TestWrapTextOverlongWordTailJoinsFollowers(t *testing.T) {
	lines := wrapText("abcdef xy", 50, runeWidth)
	assert.Equal(t, []string{"abcde", "f xy"}, lines)
}

func TestSplitLongTokenKeepsGraphemesIntact(t *testing.T) {
	// Regional-indicator flag: one grapheme cluster, two runes. It must not
	// be torn apart even when it alone exceeds the width.
	flag := "\U0001F1E9\U0001F1EA"
	out := splitLongToken(flag+"ab", 15, runeWidth)
	assert.Equal(t, []string{flag, "a", "b"}, out)
}

func TestSplitWordsPreserveNBSP(t *testing.T) {
	assert.Nil(t, splitWordsPreserveNBSP(""))
	assert.Equal(t, []string{"a", "b"}, splitWordsPreserveNBSP("a  b"))
	assert.Equal(t, []string{"a b"}, splitWordsPreserveNBSP("a b"))
}
