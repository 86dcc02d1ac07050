package textnorm

import (
	"strings"
	"unicode"
)

// AlgorithmVersion identifies the normalization + fingerprint contract shared
// with the placement step. Both sides must run the same version; any change to
// Normalize, the fold table, or the fingerprint format bumps this.
const AlgorithmVersion = "1"

// Paired formatting markers inserted by the authoring pipeline around
// emphasized runs. Formatting must not affect text identity.
const (
	boldStart = "<<BOLD_START>>"
	boldEnd   = "<<BOLD_END>>"
)

// Typographic artifacts embedded by the layout host.
const (
	softHyphen    = '\u00ad'
	byteOrderMark = '\ufeff'
	lineSep       = '\u2028'
	paraSep       = '\u2029'
	objectReplace = "\ufffc"
)

// foldTable maps accented Latin characters to their unaccented base forms.
// Lowercasing runs before folding, so only lowercase keys appear. Immutable;
// covers the Latin-1 supplement plus the š/ž pair seen in loanwords.
var foldTable = map[rune]string{
	'à': "a", 'á': "a", 'â': "a", 'ã': "a", 'ä': "a", 'å': "a",
	'æ': "ae",
	'ç': "c",
	'è': "e", 'é': "e", 'ê': "e", 'ë': "e",
	'ì': "i", 'í': "i", 'î': "i", 'ï': "i",
	'ð': "d",
	'ñ': "n",
	'ò': "o", 'ó': "o", 'ô': "o", 'õ': "o", 'ö': "o", 'ø': "o",
	'ù': "u", 'ú': "u", 'û': "u", 'ü': "u",
	'ý': "y", 'ÿ': "y",
	'þ': "th",
	'ß': "ss",
	'œ': "oe",
	'š': "s",
	'ž': "z",
}

// Normalize canonicalizes raw rewritten or observed text into the form used
// for identity comparison. It is pure and total: every input produces an
// output, possibly empty, and the function is idempotent.
//
// The steps run in a fixed order. Each one exists to absorb a specific kind
// of round-trip noise observed in the layout host (encoding drift, font
// substitution, formatting-marker placement) without ever discarding content
// words: only control characters, punctuation, case, and diacritics collapse.
func Normalize(raw string) string {
	s := stripDeviceMarkers(raw)
	s = strings.ReplaceAll(s, boldStart, "")
	s = strings.ReplaceAll(s, boldEnd, "")
	s = strings.ReplaceAll(s, objectReplace, "")
	s = collapseWhitespace(s)
	s = strings.ToLower(s)
	s = foldDiacritics(s)
	s = keepAlnum(s)
	return collapseWhitespace(s)
}

// stripDeviceMarkers removes typographic artifacts the authoring format embeds
// in story text: control characters (tab, newline and carriage return survive
// as whitespace for the collapse step), the soft hyphen, the BOM, and the
// Unicode line/paragraph separators (mapped to newline).
func stripDeviceMarkers(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteRune(r)
		case r == softHyphen || r == byteOrderMark:
			// dropped without a trace
		case r == lineSep || r == paraSep:
			b.WriteByte('\n')
		case unicode.IsControl(r):
			// device/format-control escapes
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// collapseWhitespace reduces every whitespace run (spaces, tabs, newlines) to
// a single space and trims the ends.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// foldDiacritics applies the fixed fold table. Runes absent from the table
// pass through unchanged.
func foldDiacritics(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if folded, ok := foldTable[r]; ok {
			b.WriteString(folded)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// keepAlnum replaces every rune outside [a-z0-9] and whitespace with a space.
// Punctuation differences between the source table and the placed story must
// never break identity.
func keepAlnum(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return b.String()
}
