package zcore

// AlphabetSet holds the three 26-entry Z-character alphabet tables
// (A0/A1/A2) used by both the text decoder and text encoder. Entries
// are CHARCODEs, not host runes - see CharacterSet for that mapping.
// A2[0] and A2[1] carry special meaning: the literal-escape marker
// and newline.
type AlphabetSet struct {
	A0, A1, A2 [26]byte
}

// DefaultAlphabetSet returns the standard Latin lowercase/uppercase/
// punctuation tables. A2[0] is the shift-to-literal marker slot,
// A2[1] is newline.
func DefaultAlphabetSet() AlphabetSet {
	var set AlphabetSet
	for i := 0; i < 26; i++ {
		set.A0[i] = 'a' + byte(i)
		set.A1[i] = 'A' + byte(i)
	}
	a2 := [26]byte{
		0 /*literal marker*/, charcodeNewline,
		'0', '1', '2', '3', '4', '5', '6', '7', '8', '9',
		'.', ',', '!', '?', '_', '#', '\'', '"', '/', '\\', '-', ':', '(', ')',
	}
	set.A2 = a2
	return set
}

// findInAlphabet returns the index of charcode in the alphabet, or -1.
func findInAlphabet(table [26]byte, charcode byte) int {
	for i, c := range table {
		if c == charcode {
			return i
		}
	}
	return -1
}

// AbbreviationTable is an array of word-addresses (stored as packed,
// i.e. byte-address = stored*2) into memory, either 32 or 96 entries
// long.
type AbbreviationTable struct {
	BaseAddr uint32 // byte address of the table in memory
	Entries  int    // 32 or 96
}

// entryAddr returns the byte address of the table slot holding the
// packed word-address for the given abbreviation index.
func (t AbbreviationTable) entryAddr(index int) uint32 {
	return t.BaseAddr + uint32(index)*2
}
