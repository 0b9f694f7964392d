package zcore

// DefaultExtraCharacters is the default extras table starting at
// CHARCODE 155: the standard Latin-1 accented letters and symbols.
// A story may replace it with its own table of up to 97 entries; this
// default carries 69.
var DefaultExtraCharacters = [69]rune{
	'ä', 'ö', 'ü',
	'Ä', 'Ö', 'Ü',
	'ß', '«', '»',
	'ë', 'ï', 'ÿ',
	'Ë', 'Ï', 'á',
	'é', 'í', 'ó',
	'ú', 'ý', 'Á',
	'É', 'Í', 'Ó',
	'Ú', 'Ý', 'à',
	'è', 'ì', 'ò',
	'ù', 'À', 'È',
	'Ì', 'Ò', 'Ù',
	'â', 'ê', 'î',
	'ô', 'û', 'Â',
	'Ê', 'Î', 'Ô',
	'Û', 'å', 'Å',
	'ø', 'Ø', 'ã',
	'ñ', 'õ', 'Ã',
	'Ñ', 'Õ', 'æ',
	'Æ', 'ç', 'Ç',
	'þ', 'ð', 'Þ',
	'Ð', '£', 'œ',
	'Œ', '¡', '¿',
}

const (
	charcodeNewline  = 13
	extrasBaseCode   = 155
	maxExtrasEntries = 97
)

// CharacterSet is the bidirectional CHARCODE<->host-rune mapping. It
// holds the extras table, set once at construction and never mutated
// afterward.
type CharacterSet struct {
	extras []rune // up to maxExtrasEntries entries, indexed from 0
}

// NewCharacterSet builds a CharacterSet from an extras table. A nil
// or empty slice falls back to DefaultExtraCharacters.
func NewCharacterSet(extras []rune) *CharacterSet {
	if len(extras) == 0 {
		extras = DefaultExtraCharacters[:]
	}
	if len(extras) > maxExtrasEntries {
		extras = extras[:maxExtrasEntries]
	}
	cs := &CharacterSet{extras: make([]rune, len(extras))}
	copy(cs.extras, extras)
	return cs
}

// DecodeCharcode maps a CHARCODE to a host rune: 13 -> newline; values
// in [155, 155+E) -> the extras table; otherwise the value cast
// straight through as a code point.
func (cs *CharacterSet) DecodeCharcode(c byte) rune {
	if c == charcodeNewline {
		return '\n'
	}
	if int(c) >= extrasBaseCode && int(c) < extrasBaseCode+len(cs.extras) {
		return cs.extras[int(c)-extrasBaseCode]
	}
	return rune(c)
}

// EncodeCharcode maps a host rune back to a CHARCODE: newline -> 13;
// else a linear search of the extras table; else the rune's low byte.
// Characters outside 0..255 and not in extras still round-trip for
// display via the low-byte cast.
func (cs *CharacterSet) EncodeCharcode(r rune) byte {
	if r == '\n' {
		return charcodeNewline
	}
	for i, e := range cs.extras {
		if e == r {
			return byte(extrasBaseCode + i)
		}
	}
	return byte(r)
}

// CheckUnicode reports, for a single host rune, whether the I/O
// collaborator considers it displayable and/or enterable. The core
// never filters on this itself - it only guarantees that any rune the
// collaborator reports input-capable survives an Encode->Decode
// round trip with the same CHARCODE.
type CheckUnicode interface {
	CanOutput(r rune) bool
	CanInput(r rune) bool
}
