package zcore

import "unicode"

// TextEncoder converts a plain CHARCODE byte buffer into a packed
// 5-bit Z-character word sequence, either at a fixed target width for
// dictionary keys or variable-length for general encoding. Input is
// case-folded before the alphabet search; characters in no alphabet
// fall through to the 10-bit literal escape.
type TextEncoder struct {
	cs        *CharacterSet
	alphabets AlphabetSet
}

// NewTextEncoder builds an encoder bound to the active character set
// and alphabet tables.
func NewTextEncoder(cs *CharacterSet, alphabets AlphabetSet) *TextEncoder {
	return &TextEncoder{cs: cs, alphabets: alphabets}
}

// DictionaryKeyZChars is the target Z-character count (and therefore
// the 6-byte key width) the dictionary lookup path uses.
const DictionaryKeyZChars = 9

// EncodeWords converts src[start:start+length] (CHARCODE bytes) into
// packed 16-bit words. target is either 0 (variable length, padded to
// a multiple of 3 Z-characters) or a positive multiple of 3 (fixed
// width: truncated or padded to exactly that many Z-characters).
func (e *TextEncoder) EncodeWords(src []byte, start, length int, target int) ([]uint16, error) {
	if target < 0 || target%3 != 0 {
		return nil, encoderArgumentError("target Z-character count must be 0 or a positive multiple of 3")
	}

	zchars := make([]byte, 0, length*2)
	for i := 0; i < length; i++ {
		b := src[start+i]
		h := unicode.ToLower(e.cs.DecodeCharcode(b))

		switch {
		case h == ' ':
			zchars = append(zchars, 0)
		default:
			code := e.cs.EncodeCharcode(h)
			if idx := findInAlphabet(e.alphabets.A0, code); idx >= 0 {
				zchars = append(zchars, byte(idx+6))
			} else if idx := findInAlphabet(e.alphabets.A1, code); idx >= 0 {
				zchars = append(zchars, 4, byte(idx+6))
			} else if idx := findInAlphabet(e.alphabets.A2, code); idx > 0 {
				// idx 0 is the literal-escape marker slot, not a
				// character; a hit there must not be encoded as one.
				zchars = append(zchars, 5, byte(idx+6))
			} else {
				// 10-bit literal escape, using the ORIGINAL byte b.
				zchars = append(zchars, 5, 6, b>>5, b&0x1F)
			}
		}
	}

	if target == 0 {
		for len(zchars)%3 != 0 {
			zchars = append(zchars, 5)
		}
	} else if len(zchars) > target {
		zchars = zchars[:target]
	} else {
		for len(zchars) < target {
			zchars = append(zchars, 5)
		}
	}

	numWords := len(zchars) / 3
	words := make([]uint16, numWords)
	for i := 0; i < numWords; i++ {
		z0, z1, z2 := zchars[i*3], zchars[i*3+1], zchars[i*3+2]
		word := uint16(z0)<<10 | uint16(z1)<<5 | uint16(z2)
		if i == numWords-1 {
			word |= 0x8000
		}
		words[i] = word
	}
	return words, nil
}

// EncodeBytes is EncodeWords packed into a big-endian byte slice, the
// form dictionary keys and general-purpose encoded strings are stored
// and compared in.
func (e *TextEncoder) EncodeBytes(src []byte, start, length int, target int) ([]byte, error) {
	words, err := e.EncodeWords(src, start, length, target)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(words)*2)
	for i, w := range words {
		out[i*2] = byte(w >> 8)
		out[i*2+1] = byte(w)
	}
	return out, nil
}

// EncodeDictionaryKey produces the exact 6-byte (9 Z-character) key
// used for dictionary comparison.
func (e *TextEncoder) EncodeDictionaryKey(src []byte, start, length int) ([]byte, error) {
	return e.EncodeBytes(src, start, length, DictionaryKeyZChars)
}
