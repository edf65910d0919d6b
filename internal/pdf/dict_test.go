package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDictRendering(t *testing.T) {
	d := newDict().
		name("Type", "Font").
		int("Supplement", 0).
		num("Scale", 0.5).
		ref("Parent", 7).
		refArray("Kids", []ObjectID{3, 4}).
		str("Registry", "Adobe")

	assert.Equal(t,
		"<< /Type /Font /Supplement 0 /Scale 0.5 /Parent 7 0 R /Kids [3 0 R 4 0 R] /Registry (Adobe) >>",
		d.String())
}

func TestDictNested(t *testing.T) {
	inner := newDict().name("Subtype", "Type0")
	outer := newDict().sub("Font", inner)
	assert.Equal(t, "<< /Font << /Subtype /Type0 >> >>", outer.String())
}

func TestFormatNum(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{42, "42"},
		{-50, "-50"},
		{110, "110"},
		{0.5, "0.5"},
		{595.276, "595.276"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, formatNum(tc.in))
	}
}

func TestEscapeLiteral(t *testing.T) {
	assert.Equal(t, `a\(b\)c\\d`, escapeLiteral(`a(b)c\d`))
	assert.Equal(t, "plain", escapeLiteral("plain"))
}

func TestHexHelpers(t *testing.T) {
	assert.Equal(t, "<0041>", hexString(0x41, 2))
	assert.Equal(t, "<00010002>", hexBytes([]byte{0, 1, 0, 2}))
	assert.Equal(t, "<>", hexBytes(nil))
}

func TestUtf16beHex(t *testing.T) {
	assert.Equal(t, "<0041>", utf16beHex('A'))
	// Outside the BMP: surrogate pair.
	assert.Equal(t, "<D83DDE00>", utf16beHex('\U0001F600'))
}

func TestWithLength(t *testing.T) {
	assert.Equal(t, "<< /Type /CMap /Length 42 >>",
		withLength("<< /Type /CMap >>", 42))
}
