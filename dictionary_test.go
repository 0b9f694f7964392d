package zcore

import "testing"

// buildBuiltinDictionary writes a built-in-style dictionary (unsigned
// entry count, sorted) at addr, with entries of length entryLen whose
// first 6 bytes are each keys[i] and the rest zero-filled, returning
// the address of entries[0].
func buildBuiltinDictionary(mem *StoryMemory, addr uint32, separators []byte, entryLen int, keys [][]byte) uint32 {
	mem.SetByte(addr, byte(len(separators)))
	for i, s := range separators {
		mem.SetByte(addr+1+uint32(i), s)
	}
	base := addr + 1 + uint32(len(separators))
	mem.SetByte(base, byte(entryLen))
	mem.SetWord(base+1, uint16(len(keys)))
	entriesStart := base + 3
	for i, k := range keys {
		entryAddr := entriesStart + uint32(i*entryLen)
		for j := 0; j < entryLen; j++ {
			if j < len(k) {
				mem.SetByte(entryAddr+uint32(j), k[j])
			} else {
				mem.SetByte(entryAddr+uint32(j), 0)
			}
		}
	}
	return entriesStart
}

func buildUserDictionary(mem *StoryMemory, addr uint32, separators []byte, entryLen int, keys [][]byte, sorted bool) uint32 {
	mem.SetByte(addr, byte(len(separators)))
	for i, s := range separators {
		mem.SetByte(addr+1+uint32(i), s)
	}
	base := addr + 1 + uint32(len(separators))
	mem.SetByte(base, byte(entryLen))
	count := len(keys)
	if !sorted {
		count = -count
	}
	mem.SetWord(base+1, uint16(int16(count)))
	entriesStart := base + 3
	for i, k := range keys {
		entryAddr := entriesStart + uint32(i*entryLen)
		for j := 0; j < entryLen; j++ {
			if j < len(k) {
				mem.SetByte(entryAddr+uint32(j), k[j])
			} else {
				mem.SetByte(entryAddr+uint32(j), 0)
			}
		}
	}
	return entriesStart
}

// TestDictionaryLookupCat: encoding "cat" and looking it up in a
// dictionary containing it at entry index k returns base + k*L.
func TestDictionaryLookupCat(t *testing.T) {
	mem := newTestMemory(0x1000)
	enc := newDefaultEncoder()

	keyCat, err := enc.EncodeDictionaryKey([]byte("cat"), 0, 3)
	if err != nil {
		t.Fatalf("EncodeDictionaryKey: %v", err)
	}
	keyDog, _ := enc.EncodeDictionaryKey([]byte("dog"), 0, 3)
	keyZoo, _ := enc.EncodeDictionaryKey([]byte("zoo"), 0, 3)

	keys := [][]byte{keyCat, keyDog, keyZoo}
	// sorted ascending by first 6 bytes, unsigned.
	sortKeysBytes(keys)

	entryLen := 6
	mem.SetDictionaryAddr(0x40)
	entriesStart := buildBuiltinDictionary(mem, 0x40, nil, entryLen, keys)

	dict := NewDictionary(mem, enc)
	addr, err := dict.Lookup(0, []byte("cat"), 0, 3)
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if addr == 0 {
		t.Fatalf("Lookup returned 0 (miss) for a present key")
	}

	var idx int
	for i, k := range keys {
		if bytesEqual(k, keyCat) {
			idx = i
		}
	}
	want := entriesStart + uint32(idx*entryLen)
	if uint32(addr) != want {
		t.Fatalf("Lookup address = 0x%X, want 0x%X", addr, want)
	}
}

func TestDictionaryLookupMiss(t *testing.T) {
	mem := newTestMemory(0x1000)
	enc := newDefaultEncoder()
	keyCat, _ := enc.EncodeDictionaryKey([]byte("cat"), 0, 3)
	mem.SetDictionaryAddr(0x40)
	buildBuiltinDictionary(mem, 0x40, nil, 6, [][]byte{keyCat})

	dict := NewDictionary(mem, enc)
	addr, err := dict.Lookup(0, []byte("xyz"), 0, 3)
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if addr != 0 {
		t.Fatalf("Lookup(xyz) = %d, want 0 (miss)", addr)
	}
}

// Binary search and linear search agree on any sorted built-in
// dictionary.
func TestDictionaryBinaryEqualsLinear(t *testing.T) {
	mem := newTestMemory(0x2000)
	enc := newDefaultEncoder()

	words := []string{"ax", "ba", "cat", "dog", "eel", "fig", "go", "hi", "zoo"}
	keys := make([][]byte, len(words))
	for i, w := range words {
		k, err := enc.EncodeDictionaryKey([]byte(w), 0, len(w))
		if err != nil {
			t.Fatalf("encode %q: %v", w, err)
		}
		keys[i] = k
	}
	sortKeysBytes(keys)
	entryLen := 6
	mem.SetDictionaryAddr(0x40)
	entriesStart := buildBuiltinDictionary(mem, 0x40, nil, entryLen, keys)

	dict := NewDictionary(mem, enc)
	for _, w := range append(words, "nope", "") {
		got, err := dict.Lookup(0, []byte(w), 0, len(w))
		if err != nil {
			t.Fatalf("lookup %q: %v", w, err)
		}

		linear := dict.linearSearch(entriesStart, entryLen, len(keys), mustKey(t, enc, w))
		if got != linear {
			t.Fatalf("%q: binary=%d linear=%d mismatch", w, got, linear)
		}
	}
}

func mustKey(t *testing.T, enc *TextEncoder, w string) []byte {
	t.Helper()
	k, err := enc.EncodeDictionaryKey([]byte(w), 0, len(w))
	if err != nil {
		t.Fatalf("encode %q: %v", w, err)
	}
	return k
}

// TestDictionaryUserUnsorted exercises the linear-scan path for a
// user dictionary whose entry count is negative (unsorted).
func TestDictionaryUserUnsorted(t *testing.T) {
	mem := newTestMemory(0x1000)
	enc := newDefaultEncoder()

	keyZebra, _ := enc.EncodeDictionaryKey([]byte("zebra"), 0, 5)
	keyAnt, _ := enc.EncodeDictionaryKey([]byte("ant"), 0, 3)
	// deliberately NOT sorted
	keys := [][]byte{keyZebra, keyAnt}

	userAddr := uint32(0x80)
	buildUserDictionary(mem, userAddr, []byte{','}, 6, keys, false)

	dict := NewDictionary(mem, enc)
	addr, err := dict.Lookup(userAddr, []byte("ant"), 0, 3)
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if addr == 0 {
		t.Fatalf("Lookup(ant) in unsorted user dict = 0, want a hit")
	}
}

func sortKeysBytes(keys [][]byte) {
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && compareBytes(keys[j], keys[j-1]) < 0; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
}
