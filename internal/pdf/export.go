// Package pdf emits spec-conformant PDF 1.7 documents from laid-out pages:
// subsetted TrueType/CIDType2 fonts, a cross-referenced font object graph,
// and per-page text content streams. It never touches a real filesystem or
// network - callers hand it already-produced grid.Frame trees and a
// FontSource to resolve the font.Index values those frames' SetFont actions
// reference.
package pdf

import (
	"fmt"
	"io"

	"github.com/inkfold/typeset/internal/font"
)

// Export writes a complete PDF 1.7 document for pages to dst and returns the
// total number of bytes written. loader resolves the font.Index values
// stamped on SetFont actions back to parsed fonts for subsetting and table
// access. The whole export is synchronous and single-threaded: a failure at
// any step aborts with no partial success.
func Export(pages []Page, loader FontSource, dst io.Writer) (int, error) {
	fonts, remap, err := subsetFonts(pages, loader)
	if err != nil {
		return 0, err
	}

	p := newPlan(len(pages), len(fonts))
	w := newWriter(dst)

	if err := w.writeHeader(); err != nil {
		return 0, ioErr(err)
	}
	if err := writePreface(w, p, pages, len(fonts)); err != nil {
		return 0, ioErr(err)
	}
	if err := writePageContents(w, p, pages, fonts, remap); err != nil {
		return 0, ioErr(err)
	}
	if err := writeFontObjects(w, p, fonts); err != nil {
		return 0, err
	}

	xrefOffset, err := w.writeXref()
	if err != nil {
		return 0, ioErr(err)
	}
	if err := w.writeTrailer(p.catalog, xrefOffset); err != nil {
		return 0, ioErr(err)
	}

	return w.written(), nil
}

// writePreface writes the document catalog, the root page tree (with a
// /Font resource dictionary referencing every subsetted font by its Type0
// object), and each page object with its media box and content reference.
func writePreface(w *writer, p plan, pages []Page, fontCount int) error {
	catalog := newDict().name("Type", "Catalog").ref("Pages", p.pageTree)
	if err := w.writeObj(p.catalog, catalog.String()); err != nil {
		return err
	}

	fontsDict := newDict()
	for i := 0; i < fontCount; i++ {
		type0ID, _, _, _, _ := p.fontObjectIDs(i)
		fontsDict.ref(fmt.Sprintf("F%d", i+1), type0ID)
	}
	resources := newDict().sub("Font", fontsDict)

	pageTree := newDict().
		name("Type", "Pages").
		refArray("Kids", p.pages.ids()).
		int("Count", len(pages)).
		sub("Resources", resources)
	if err := w.writeObj(p.pageTree, pageTree.String()); err != nil {
		return err
	}

	pageIDs, contentIDs := p.pages.ids(), p.contents.ids()
	for i, page := range pages {
		rect := []float64{0, 0, page.Size.X.Pt(), page.Size.Y.Pt()}
		obj := newDict().
			name("Type", "Page").
			ref("Parent", p.pageTree).
			numArray("MediaBox", rect).
			ref("Contents", contentIDs[i])
		if err := w.writeObj(pageIDs[i], obj.String()); err != nil {
			return err
		}
	}
	return nil
}

// writePageContents writes each page's content stream object, produced by
// scanning its layout actions.
func writePageContents(w *writer, p plan, pages []Page, fonts []subsettedFont, remap map[font.Index]int) error {
	contentIDs := p.contents.ids()
	for i, page := range pages {
		stream := renderPageContent(page, fonts, remap)
		if err := w.writeStreamObj(contentIDs[i], newDict().String(), []byte(stream)); err != nil {
			return err
		}
	}
	return nil
}
