package zcore

// token is an ephemeral (start offset, length) pair into the input
// buffer.
type token struct {
	start, length int
}

// Tokenizer splits a read buffer into tokens honouring whitespace and
// a per-dictionary list of hard separators, then populates the parse
// buffer with (dictionary-address, length, offset) quads. Whitespace
// is discarded; a separator byte becomes its own length-1 token.
type Tokenizer struct {
	mem  Memory
	dict *Dictionary
}

// NewTokenizer builds a Tokenizer bound to a memory collaborator and
// the dictionary lookup it will query per token.
func NewTokenizer(mem Memory, dict *Dictionary) *Tokenizer {
	return &Tokenizer{mem: mem, dict: dict}
}

func isWhitespaceByte(b byte) bool { return b == 9 || b == 32 }

// Tokenize splits the read buffer at bufferAddr and writes the quads
// into the parse buffer at parseAddr, stopping at its max-token byte.
// userDict is 0 for the built-in dictionary. An unknown word still
// gets its quad, with word-address 0, unless skipUnrecognized is set.
func (t *Tokenizer) Tokenize(bufferAddr, parseAddr, userDict uint32, skipUnrecognized bool) error {
	bufLen := int(t.mem.GetByte(bufferAddr + 1))
	scratch := make([]byte, bufLen)
	t.mem.GetBytes(bufferAddr+2, bufLen, scratch, 0)

	separators := t.separatorsFor(userDict)
	tokens := t.split(scratch, separators)

	maxTokens := int(t.mem.GetByte(parseAddr))
	count := 0

	for _, tok := range tokens {
		if count >= maxTokens {
			break
		}
		addr, err := t.dict.Lookup(userDict, scratch, tok.start, tok.length)
		if err != nil {
			return err
		}
		if addr == 0 && skipUnrecognized {
			continue
		}

		quadAddr := parseAddr + 2 + uint32(count*4)
		t.mem.SetWord(quadAddr, addr)
		t.mem.SetByte(quadAddr+2, byte(tok.length))
		t.mem.SetByte(quadAddr+3, byte(2+tok.start))
		count++
	}

	t.mem.SetByte(parseAddr+1, byte(count))
	return nil
}

func (t *Tokenizer) separatorsFor(userDict uint32) []byte {
	var base uint32
	if userDict == 0 {
		base = t.mem.WordSeparatorTableAddr()
	} else {
		base = userDict
	}
	count := int(t.mem.GetByte(base))
	seps := make([]byte, count)
	t.mem.GetBytes(base+1, count, seps, 0)
	return seps
}

func isSeparatorByte(b byte, separators []byte) bool {
	for _, s := range separators {
		if s == b {
			return true
		}
	}
	return false
}

// split walks buf skipping whitespace runs, emitting separator bytes
// as length-1 tokens and everything else as maximal word tokens.
func (t *Tokenizer) split(buf []byte, separators []byte) []token {
	var tokens []token
	i := 0
	n := len(buf)
	for i < n {
		for i < n && isWhitespaceByte(buf[i]) {
			i++
		}
		if i >= n {
			break
		}
		if isSeparatorByte(buf[i], separators) {
			tokens = append(tokens, token{start: i, length: 1})
			i++
			continue
		}
		start := i
		for i < n && !isWhitespaceByte(buf[i]) && !isSeparatorByte(buf[i], separators) {
			i++
		}
		tokens = append(tokens, token{start: start, length: i - start})
	}
	return tokens
}
