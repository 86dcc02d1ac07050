package structure

import "strings"

// layerMarkers are the fixed labels that introduce a layered side-note block
// appended after a paragraph's main body. The renderer floats these blocks
// relative to their anchor, so the placement step may detach them from the
// body when paragraphs are merged.
var layerMarkers = []string{
	"In de praktijk:",
	"Verdieping:",
}

// SplitListItems splits a combined list rewrite into the discrete items the
// placement step may have committed one paragraph per bullet. Items are
// semicolon-delimited with a trailing-semicolon convention: every item except
// the last is re-suffixed with ";", and the last keeps its ";" only when the
// original text ended with one.
func SplitListItems(text string) []string {
	trimmed := strings.TrimSpace(text)
	endsWithSep := strings.HasSuffix(trimmed, ";")

	var items []string
	for _, piece := range strings.Split(text, ";") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		items = append(items, piece)
	}

	for i := range items {
		if i < len(items)-1 || endsWithSep {
			items[i] += ";"
		}
	}
	return items
}

// SplitLayerBlocks separates a rewrite into its main body and the layered
// side-note tail. The split point is the earliest occurrence of any layer
// marker; no marker means the whole text is base and the tail is empty.
//
// A blank line (two consecutive newlines) immediately before the marker
// belongs to the tail, not the base. The placement step treats the boundary
// that way, and merge reconstruction must match it bit for bit.
func SplitLayerBlocks(text string) (base, tail string) {
	cut := -1
	for _, marker := range layerMarkers {
		if idx := strings.Index(text, marker); idx >= 0 && (cut < 0 || idx < cut) {
			cut = idx
		}
	}
	if cut < 0 {
		return text, ""
	}

	base, tail = text[:cut], text[cut:]
	if strings.HasSuffix(base, "\n\n") {
		base = base[:len(base)-2]
		tail = "\n\n" + tail
	}
	return base, tail
}

// MergeRewrites reconstructs the text the placement step commits when two
// source paragraphs are merged into one placed paragraph: the secondary's
// body and side-notes fold in before the primary's side-notes. The ordering
// primary.base + secondary.base + secondary.tail + primary.tail is a fixed
// convention of the merge policy.
func MergeRewrites(primary, secondary string) string {
	pBase, pTail := SplitLayerBlocks(primary)
	sBase, sTail := SplitLayerBlocks(secondary)

	var segments []string
	for _, seg := range []string{pBase, sBase, sTail, pTail} {
		seg = strings.TrimSpace(seg)
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return strings.Join(segments, "\n\n")
}
