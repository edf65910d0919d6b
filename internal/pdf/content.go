package pdf

import (
	"fmt"
	"strings"

	"github.com/inkfold/typeset/internal/core/geom"
	"github.com/inkfold/typeset/internal/font"
	"github.com/inkfold/typeset/internal/grid"
)

// renderPageContent scans page's layout actions and produces the PDF text
// operators for its content stream. SetFont emits its Tf operator at once;
// a MoveAbsolute position is held until the next WriteText emits it as a Tm.
func renderPageContent(page Page, fonts []subsettedFont, remap map[font.Index]int) string {
	var b strings.Builder
	b.WriteString("BT\n")

	const noActiveFont = -1
	activeFontNew := noActiveFont
	var activeSize geom.Length
	var pendingPos *geom.Point

	pageHeight := page.Size.Y

	walkFrame(page.Frame, geom.Point{}, func(_ geom.Point, a grid.Action) {
		switch a.Kind {
		case grid.MoveAbsolute:
			p := a.Point
			pendingPos = &p

		case grid.SetFont:
			newIdx := remap[font.Index(a.FontIndex)]
			activeFontNew = newIdx
			activeSize = a.Size
			fmt.Fprintf(&b, "/F%d %s Tf\n", newIdx+1, formatNum(activeSize.Pt()))

		case grid.WriteText:
			if pendingPos != nil {
				x := pendingPos.X.Pt()
				y := pageHeight.Sub(pendingPos.Y).Sub(activeSize).Pt()
				fmt.Fprintf(&b, "1 0 0 1 %s %s Tm\n", formatNum(x), formatNum(y))
				pendingPos = nil
			}
			encoded := []byte{}
			if activeFontNew >= 0 && activeFontNew < len(fonts) {
				encoded = fonts[activeFontNew].original.EncodeText(a.Text)
			}
			fmt.Fprintf(&b, "%s Tj\n", hexBytes(encoded))

		case grid.DebugBox:
			// ignored during emission.
		}
	})

	b.WriteString("ET")
	return b.String()
}

// hexBytes renders raw bytes as a PDF hex string "<...>" content operand.
func hexBytes(data []byte) string {
	var b strings.Builder
	b.WriteByte('<')
	for _, by := range data {
		fmt.Fprintf(&b, "%02X", by)
	}
	b.WriteByte('>')
	return b.String()
}
