package pdf

// plan assigns PDF object IDs to every indirect object the export will
// write, deterministically and ahead of time, so every cross-reference
// (catalog -> page tree, page -> content, Type0 -> CIDFont -> descriptor ->
// font file, Type0 -> ToUnicode) can be written in a single forward pass
// without backpatching.
type plan struct {
	catalog  ObjectID
	pageTree ObjectID
	pages    idRange
	contents idRange
	fonts    idRange
}

// idRange is an inclusive [first, last] span of object IDs, one per page or
// five per font.
type idRange struct {
	first, last ObjectID
}

// ids yields every object ID in the range, in ascending order.
func (r idRange) ids() []ObjectID {
	if r.last < r.first {
		return nil
	}
	out := make([]ObjectID, 0, int(r.last-r.first)+1)
	for id := r.first; id <= r.last; id++ {
		out = append(out, id)
	}
	return out
}

// newPlan computes object ID ranges for a document of pageCount pages and
// fontCount distinct subsetted fonts: catalog = 1, page tree = 2,
// pages = [3, 3+P), contents = [3+P, 3+2P), fonts = [3+2P, 3+2P+5F).
func newPlan(pageCount, fontCount int) plan {
	catalog := ObjectID(1)
	pageTree := catalog + 1

	pagesFirst := pageTree + 1
	pagesLast := pagesFirst + ObjectID(pageCount) - 1

	contentsFirst := pagesLast + 1
	contentsLast := contentsFirst + ObjectID(pageCount) - 1

	fontsFirst := contentsLast + 1
	fontsLast := fontsFirst + ObjectID(5*fontCount) - 1

	return plan{
		catalog:  catalog,
		pageTree: pageTree,
		pages:    idRange{pagesFirst, pagesLast},
		contents: idRange{contentsFirst, contentsLast},
		fonts:    idRange{fontsFirst, fontsLast},
	}
}

// fontObjectIDs returns the five object IDs (Type0, CIDFont, FontDescriptor,
// ToUnicode CMap, FontFile2), in that order, for the font at dense index i.
func (p plan) fontObjectIDs(i int) (type0, cidFont, descriptor, toUnicode, fontFile ObjectID) {
	base := p.fonts.first + ObjectID(5*i)
	return base, base + 1, base + 2, base + 3, base + 4
}
