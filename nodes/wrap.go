package nodes

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/inkfold/typeset/internal/core/geom"
)

// wrapText splits text into display lines no wider than maxWidth under the
// given measure function. Explicit newlines always break; words never split
// unless a single word alone exceeds the available width, in which case it
// breaks at grapheme cluster boundaries so composite glyphs stay intact.
// An infinite maxWidth disables wrapping entirely. Empty text yields no
// lines.
//
// Tokenization policy:
//   - Line endings are normalized to '\n'.
//   - Split only on ASCII space ' ' and TAB '\t'.
//   - NBSP (U+00A0) remains inside tokens and will not break lines by
//     itself.
//   - Runs of separators collapse to a single gap in output.
func wrapText(text string, maxWidth geom.Length, measure func(string) geom.Length) []string {
	if text == "" {
		return nil
	}

	paras := strings.Split(normalizeNewlines(text), "\n")
	if !maxWidth.IsFinite() {
		return paras
	}

	var out []string
	for _, p := range paras {
		if p == "" {
			out = append(out, "")
			continue
		}
		out = append(out, wrapPara(p, maxWidth, measure)...)
	}
	return out
}

// wrapPara wraps a single paragraph at word boundaries, splitting overlong
// words by grapheme cluster.
func wrapPara(p string, maxWidth geom.Length, measure func(string) geom.Length) []string {
	words := splitWordsPreserveNBSP(p)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var current string

	flush := func() {
		if current != "" {
			lines = append(lines, current)
			current = ""
		}
	}

	for _, word := range words {
		if measure(word) > maxWidth {
			flush()
			lines = append(lines, splitLongToken(word, maxWidth, measure)...)
			// An overlong word's tail may still have room for followers.
			if len(lines) > 0 {
				current = lines[len(lines)-1]
				lines = lines[:len(lines)-1]
			}
			continue
		}

		if current == "" {
			current = word
			continue
		}
		if measure(current+" "+word) <= maxWidth {
			current += " " + word
		} else {
			flush()
			current = word
		}
	}
	flush()

	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

// splitLongToken splits a single overlong token into lines at grapheme
// cluster boundaries. A single cluster wider than maxWidth is yielded raw;
// the caller clips downstream.
func splitLongToken(token string, maxWidth geom.Length, measure func(string) geom.Length) []string {
	clusters, offs := splitGraphemes(token)
	if len(clusters) == 0 {
		return nil
	}

	var out []string
	start := 0
	for start < len(clusters) {
		if measure(token[offs[start]:offs[start+1]]) > maxWidth {
			out = append(out, token[offs[start]:offs[start+1]])
			start++
			continue
		}

		end := start + 1
		for end < len(clusters) && measure(token[offs[start]:offs[end+1]]) <= maxWidth {
			end++
		}
		out = append(out, token[offs[start]:offs[end]])
		start = end
	}
	return out
}

// normalizeNewlines converts CRLF and CR to LF.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}

// splitGraphemes returns grapheme clusters and their byte offsets into the
// original string, with one trailing offset equal to len(s).
func splitGraphemes(s string) (clusters []string, offsets []int) {
	g := uniseg.NewGraphemes(s)
	offsets = append(offsets, 0)
	for g.Next() {
		cl := g.Str()
		clusters = append(clusters, cl)
		offsets = append(offsets, offsets[len(offsets)-1]+len(cl))
	}
	return clusters, offsets
}

// splitWordsPreserveNBSP splits by ASCII space and TAB, preserving NBSP
// (U+00A0) inside tokens and collapsing runs of separators.
func splitWordsPreserveNBSP(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := -1
	for i, r := range s {
		sep := r == ' ' || r == '\t'
		if sep {
			if start >= 0 {
				out = append(out, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, s[start:])
	}
	return out
}
