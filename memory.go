package zcore

import "fmt"

// Memory is the memory collaborator contract the core consumes.
// Story-file memory is an addressable byte array; the core never owns
// it, only reads/writes through this interface.
type Memory interface {
	GetByte(addr uint32) byte
	GetWord(addr uint32) uint16
	GetBytes(addr uint32, length int, dst []byte, dstOffset int)

	SetByte(addr uint32, v byte)
	SetWord(addr uint32, v uint16)
	// SetWordChecked fails if addr falls in the ROM (static memory)
	// region.
	SetWordChecked(addr uint32, v uint16) error

	ROMStart() uint32
	AbbreviationTableAddr() uint32
	DictionaryAddr() uint32
	// AlphabetTableAddr returns 0 when no header override is present,
	// meaning the default alphabets apply.
	AlphabetTableAddr() uint32
	// ExtrasTableAddr returns 0 when no header override is present.
	ExtrasTableAddr() uint32
	// WordSeparatorTableAddr is the built-in word-separator table:
	// byte 0 is the separator count, followed by that many CHARCODEs.
	WordSeparatorTableAddr() uint32
}

// StoryMemory is a concrete Memory backed by a flat byte slice
// holding a raw story image, with the header fields the core needs
// parsed once at construction.
type StoryMemory struct {
	buf []byte

	romStart      uint32
	abbrevAddr    uint32
	dictAddr      uint32
	alphabetAddr  uint32
	extrasAddr    uint32
	separatorAddr uint32
}

// NewStoryMemory wraps buf and parses the header fields this core
// needs: dictionary, abbreviation table, ROM boundary, and the
// optional alphabet/extras override pointers. Object table and
// version-specific geometry belong to other subsystems and are left
// unread.
func NewStoryMemory(buf []byte) *StoryMemory {
	m := &StoryMemory{buf: buf}
	m.romStart = uint32(beUint16(buf, 0xE))
	m.dictAddr = uint32(beUint16(buf, 0x8))
	m.abbrevAddr = uint32(beUint16(buf, 0x18))
	m.alphabetAddr = uint32(beUint16(buf, 0x34)) // header word, 0 = none
	m.extrasAddr = uint32(beUint16(buf, 0x36))   // header word, 0 = none
	m.separatorAddr = m.dictAddr
	return m
}

func beUint16(buf []byte, offset uint32) uint16 {
	if int(offset)+1 >= len(buf) {
		return 0
	}
	return (uint16(buf[offset]) << 8) | uint16(buf[offset+1])
}

func (m *StoryMemory) GetByte(addr uint32) byte { return m.buf[addr] }

func (m *StoryMemory) GetWord(addr uint32) uint16 { return beUint16(m.buf, addr) }

func (m *StoryMemory) GetBytes(addr uint32, length int, dst []byte, dstOffset int) {
	copy(dst[dstOffset:dstOffset+length], m.buf[addr:addr+uint32(length)])
}

func (m *StoryMemory) SetByte(addr uint32, v byte) { m.buf[addr] = v }

func (m *StoryMemory) SetWord(addr uint32, v uint16) {
	m.buf[addr] = byte(v >> 8)
	m.buf[addr+1] = byte(v)
}

func (m *StoryMemory) SetWordChecked(addr uint32, v uint16) error {
	if addr >= m.romStart {
		return fmt.Errorf("zcore: write to ROM at 0x%X (ROM starts at 0x%X)", addr, m.romStart)
	}
	m.SetWord(addr, v)
	return nil
}

func (m *StoryMemory) ROMStart() uint32              { return m.romStart }
func (m *StoryMemory) AbbreviationTableAddr() uint32 { return m.abbrevAddr }
func (m *StoryMemory) DictionaryAddr() uint32        { return m.dictAddr }
func (m *StoryMemory) AlphabetTableAddr() uint32     { return m.alphabetAddr }
func (m *StoryMemory) ExtrasTableAddr() uint32       { return m.extrasAddr }
func (m *StoryMemory) WordSeparatorTableAddr() uint32 {
	return m.separatorAddr
}

// SetAlphabetTableAddr / SetExtrasTableAddr let callers (tests, the
// config layer) inject an override without a full header, since
// synthetic fixtures rarely carry real header bytes at 0x34/0x36.
func (m *StoryMemory) SetAlphabetTableAddr(addr uint32) { m.alphabetAddr = addr }
func (m *StoryMemory) SetExtrasTableAddr(addr uint32)   { m.extrasAddr = addr }
func (m *StoryMemory) SetDictionaryAddr(addr uint32)    { m.dictAddr = addr; m.separatorAddr = addr }
func (m *StoryMemory) SetAbbreviationTableAddr(addr uint32) { m.abbrevAddr = addr }
func (m *StoryMemory) SetROMStart(addr uint32)          { m.romStart = addr }
