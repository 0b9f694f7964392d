package zcore

import "strings"

// maxAbbrevDepth bounds abbreviation recursion. Abbreviation strings
// never themselves contain abbreviation markers, so depth never
// legitimately exceeds 1; the bound guards against a corrupt story
// file looping forever.
const maxAbbrevDepth = 4

// TextDecoder implements the 5-bit Z-character alphabet-shift state
// machine with abbreviation substitution. Each 16-bit word packs
// three Z-characters; a set MSB marks the final word.
type TextDecoder struct {
	mem       Memory
	cs        *CharacterSet
	alphabets AlphabetSet
	abbrevs   AbbreviationTable
}

// NewTextDecoder builds a decoder bound to a memory collaborator, the
// character set in effect, the active alphabet tables, and the
// abbreviation table location.
func NewTextDecoder(mem Memory, cs *CharacterSet, alphabets AlphabetSet, abbrevs AbbreviationTable) *TextDecoder {
	return &TextDecoder{mem: mem, cs: cs, alphabets: alphabets, abbrevs: abbrevs}
}

// DecodeString reads a contiguous stream of 16-bit words starting at
// addr and returns the decoded host string plus the number of bytes
// consumed. Decoding halts after the final word's three characters
// are consumed, never mid-word.
func (d *TextDecoder) DecodeString(addr uint32) (string, int) {
	s, consumed := d.decode(addr, 0)
	return s, consumed
}

func (d *TextDecoder) decode(addr uint32, depth int) (string, int) {
	var sb strings.Builder
	alphabet := 0
	abbrevMode := 0
	cursor := addr

	for {
		word := d.mem.GetWord(cursor)
		cursor += 2

		zchars := [3]byte{
			byte((word >> 10) & 0x1F),
			byte((word >> 5) & 0x1F),
			byte(word & 0x1F),
		}
		last := word&0x8000 != 0

		for _, z := range zchars {
			alphabet, abbrevMode = d.step(&sb, z, alphabet, abbrevMode, depth)
		}

		if last {
			break
		}
	}

	return sb.String(), int(cursor - addr)
}

// step feeds one Z-character through the transition table, returning
// the updated (alphabet, abbrevMode).
func (d *TextDecoder) step(sb *strings.Builder, z byte, alphabet, abbrevMode int, depth int) (int, int) {
	switch {
	case abbrevMode == 1 || abbrevMode == 2 || abbrevMode == 3:
		d.emitAbbreviation(sb, abbrevMode, z, depth)
		return alphabet, 0

	case abbrevMode == 4:
		return int(z), 5 // alphabet carries the upper 5 bits of a literal CHARCODE

	case abbrevMode == 5:
		code := byte((alphabet << 5) | int(z))
		sb.WriteRune(d.cs.DecodeCharcode(code))
		return 0, 0

	case z == 0:
		sb.WriteRune(' ')
		return 0, abbrevMode

	case z >= 1 && z <= 3:
		return alphabet, int(z)

	case z == 4:
		return 1, abbrevMode // one-shot uppercase

	case z == 5:
		return 2, abbrevMode // one-shot punctuation

	default: // z in 6..31
		i := int(z) - 6
		if alphabet == 2 && i == 0 {
			return alphabet, 4 // begin 10-bit literal CHARCODE
		}
		sb.WriteRune(d.charFromAlphabet(alphabet, i))
		return 0, abbrevMode
	}
}

func (d *TextDecoder) charFromAlphabet(alphabet, i int) rune {
	var table [26]byte
	switch alphabet {
	case 0:
		table = d.alphabets.A0
	case 1:
		table = d.alphabets.A1
	default:
		table = d.alphabets.A2
	}
	return d.cs.DecodeCharcode(table[i])
}

// emitAbbreviation decodes abbreviation entry 32*(mode-1)+z and writes
// its expansion directly into sb. Bounded by maxAbbrevDepth;
// abbreviation content is emitted as already-decoded text and
// receives no further state-machine processing in the outer string.
func (d *TextDecoder) emitAbbreviation(sb *strings.Builder, mode int, z byte, depth int) {
	if depth >= maxAbbrevDepth {
		return
	}
	index := 32*(mode-1) + int(z)
	packedWord := d.mem.GetWord(d.abbrevs.entryAddr(index))
	byteAddr := uint32(packedWord) * 2
	expansion, _ := d.decode(byteAddr, depth+1)
	sb.WriteString(expansion)
}
