package zcore

// dictKeyBytes is the width of an encoded dictionary key.
const dictKeyBytes = 6

// Dictionary maps a token's byte range to either zero (not found) or
// the address of the matching dictionary entry. The built-in
// dictionary is always sorted and binary-searched; user dictionaries
// flag themselves unsorted with a negative entry count and get a
// linear scan.
type Dictionary struct {
	mem Memory
	enc *TextEncoder
}

// NewDictionary builds a Dictionary bound to a memory collaborator
// and the text encoder used to produce comparison keys.
func NewDictionary(mem Memory, enc *TextEncoder) *Dictionary {
	return &Dictionary{mem: mem, enc: enc}
}

// header resolves a dictionary's entries-start address, entry length,
// and entry count/sortedness. The separator list sits between the
// count byte and the entry-length byte.
func (d *Dictionary) header(userDict uint32) (entriesStart uint32, entryLen int, count int, sorted bool) {
	var base uint32
	if userDict == 0 {
		numSeparators := uint32(d.mem.GetByte(d.mem.DictionaryAddr()))
		base = d.mem.DictionaryAddr() + 1 + numSeparators
	} else {
		numSeparators := uint32(d.mem.GetByte(userDict))
		base = userDict + 1 + numSeparators
	}

	entryLen = int(d.mem.GetByte(base))
	rawCount := d.mem.GetWord(base + 1)
	entriesStart = base + 3

	if userDict == 0 {
		count = int(rawCount)
		sorted = true
		return
	}

	signedCount := int16(rawCount)
	if signedCount < 0 {
		count = int(-signedCount)
		sorted = false
	} else {
		count = int(signedCount)
		sorted = true
	}
	return
}

// Lookup encodes src[start:start+length] into a 6-byte key and
// searches userDict (0 = built-in) for a matching entry, returning
// its address or 0 on miss.
func (d *Dictionary) Lookup(userDict uint32, src []byte, start, length int) (uint16, error) {
	key, err := d.enc.EncodeDictionaryKey(src, start, length)
	if err != nil {
		return 0, err
	}
	entriesStart, entryLen, count, sorted := d.header(userDict)

	if !sorted {
		return d.linearSearch(entriesStart, entryLen, count, key), nil
	}
	return d.binarySearch(entriesStart, entryLen, count, key), nil
}

func (d *Dictionary) entryKey(addr uint32) [dictKeyBytes]byte {
	var key [dictKeyBytes]byte
	d.mem.GetBytes(addr, dictKeyBytes, key[:], 0)
	return key
}

func (d *Dictionary) linearSearch(entriesStart uint32, entryLen, count int, key []byte) uint16 {
	for i := 0; i < count; i++ {
		addr := entriesStart + uint32(i)*uint32(entryLen)
		entry := d.entryKey(addr)
		if bytesEqual(entry[:], key) {
			return uint16(addr)
		}
	}
	return 0
}

func (d *Dictionary) binarySearch(entriesStart uint32, entryLen, count int, key []byte) uint16 {
	lo, hi := 0, count-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		addr := entriesStart + uint32(mid)*uint32(entryLen)
		entry := d.entryKey(addr)
		switch compareBytes(entry[:], key) {
		case 0:
			return uint16(addr)
		case -1:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return 0
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// compareBytes compares a and b as unsigned bytes, lexicographically.
// Returns -1 if a<b, 0 if equal, 1 if a>b.
func compareBytes(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
