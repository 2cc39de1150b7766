package handlers

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Segment is one run of text in a highlighted string. Match marks a
// case-insensitive occurrence of the search query.
type Segment struct {
	Text  string `json:"text"`
	Match bool   `json:"match"`
}

// SplitHighlight splits text on every case-insensitive occurrence of query,
// keeping each occurrence as its own matched segment. The query is always
// treated as a literal substring, never a pattern. Concatenating the returned
// segments reconstructs text exactly. An empty or all-whitespace query yields
// the whole text as a single unmatched segment.
func SplitHighlight(text, query string) []Segment {
	if strings.TrimSpace(query) == "" {
		return []Segment{{Text: text}}
	}

	// Lowercasing can change byte length (U+0130 shrinks, U+023A grows), so
	// the scan walks text rune-wise and compares folded windows in place
	// instead of mapping indices found in a lowered copy back onto text.
	var segments []Segment
	pos := 0
	i := 0
	for i < len(text) {
		width, ok := matchFold(text[i:], query)
		if !ok {
			_, size := utf8.DecodeRuneInString(text[i:])
			i += size
			continue
		}
		if i > pos {
			segments = append(segments, Segment{Text: text[pos:i]})
		}
		segments = append(segments, Segment{Text: text[i : i+width], Match: true})
		i += width
		pos = i
	}
	if pos < len(text) || len(segments) == 0 {
		segments = append(segments, Segment{Text: text[pos:]})
	}
	return segments
}

// matchFold reports whether s starts with a case-insensitive occurrence of
// query and, if so, how many bytes of s that occurrence covers.
func matchFold(s, query string) (int, bool) {
	i := 0
	for _, qr := range query {
		if i >= len(s) {
			return 0, false
		}
		sr, size := utf8.DecodeRuneInString(s[i:])
		if sr != qr && unicode.ToLower(sr) != unicode.ToLower(qr) {
			return 0, false
		}
		i += size
	}
	return i, true
}
