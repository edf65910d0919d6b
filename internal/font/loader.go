package font

import "fmt"

// Index identifies a font within a FontLoader's registry. Layout actions
// reference fonts by Index; the PDF emitter remaps indices to a dense
// [0, N) range during subsetting.
type Index int

// Loader resolves font indices to parsed Fonts and caches the results of
// subsetting. A single Loader instance is shared by the whole export: the
// layout engine borrows fonts by index for text measurement, and the PDF
// emitter later borrows the same fonts for subsetting.
type Loader struct {
	fonts []*Font
	cache *subsetCache
}

// NewLoader builds a Loader over an ordered list of already-parsed fonts.
// Their position in the slice is their Index.
func NewLoader(fonts []*Font) *Loader {
	return &Loader{fonts: fonts, cache: newSubsetCache(len(fonts))}
}

// GetWithIndex returns the font registered at i.
func (l *Loader) GetWithIndex(i Index) (*Font, error) {
	if int(i) < 0 || int(i) >= len(l.fonts) {
		return nil, fmt.Errorf("font index %d out of range [0, %d)", i, len(l.fonts))
	}
	return l.fonts[i], nil
}

// Len reports how many fonts are registered.
func (l *Loader) Len() int { return len(l.fonts) }

// Subsetted returns the subsetted bytes for the font at i restricted to
// chars, falling back to an unsubsetted clone if subsetting fails. Results
// are cached per (index, character set) so repeated calls for the same page
// don't re-run table pruning.
func (l *Loader) Subsetted(i Index, chars map[rune]struct{}) ([]byte, error) {
	key := subsetKey(i, chars)
	if cached, ok := l.cache.get(key); ok {
		return cached, nil
	}

	f, err := l.GetWithIndex(i)
	if err != nil {
		return nil, err
	}

	out, err := f.Subsetted(chars)
	if err != nil {
		out = f.Clone()
	}

	l.cache.put(key, out)
	return out, nil
}
