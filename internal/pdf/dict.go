package pdf

import (
	"fmt"
	"strconv"
	"strings"
)

// dict assembles a PDF dictionary's entries in insertion order and renders
// them as "<< /Key value /Key2 value2 ... >>". Each object kind below
// (catalog, page tree, page, Type0 font, CIDFont, descriptor, CMap) builds
// one of these and hands the rendered string to writer.writeObj /
// writeStreamObj.
type dict struct {
	parts []string
}

func newDict() *dict { return &dict{} }

func (d *dict) raw(key, value string) *dict {
	d.parts = append(d.parts, "/"+key+" "+value)
	return d
}

func (d *dict) name(key, value string) *dict { return d.raw(key, "/"+value) }

func (d *dict) ref(key string, id ObjectID) *dict {
	return d.raw(key, fmt.Sprintf("%d 0 R", id))
}

func (d *dict) refArray(key string, ids []ObjectID) *dict {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = fmt.Sprintf("%d 0 R", id)
	}
	return d.raw(key, "["+strings.Join(strs, " ")+"]")
}

func (d *dict) int(key string, v int) *dict {
	return d.raw(key, strconv.Itoa(v))
}

func (d *dict) num(key string, v float64) *dict {
	return d.raw(key, formatNum(v))
}

func (d *dict) numArray(key string, vs []float64) *dict {
	strs := make([]string, len(vs))
	for i, v := range vs {
		strs[i] = formatNum(v)
	}
	return d.raw(key, "["+strings.Join(strs, " ")+"]")
}

func (d *dict) str(key, value string) *dict {
	return d.raw(key, "("+escapeLiteral(value)+")")
}

func (d *dict) sub(key string, inner *dict) *dict {
	return d.raw(key, inner.String())
}

func (d *dict) String() string {
	return "<< " + strings.Join(d.parts, " ") + " >>"
}

// formatNum renders a float the way a PDF numeric operand expects: no
// trailing ".0" on whole numbers, otherwise the shortest decimal that
// round-trips to the same float64.
func formatNum(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return s
}

// escapeLiteral backslash-escapes the characters a PDF literal string "(...)"
// must not contain unescaped.
func escapeLiteral(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '(', ')', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// hexString renders data as a PDF hex string "<...>", used for the CMap
// bfchar/bfrange operands inside the ToUnicode stream.
func hexString(v uint32, bytes int) string {
	return fmt.Sprintf("<%0*X>", bytes*2, v)
}
