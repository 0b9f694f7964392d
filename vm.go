package zcore

import "context"

// SoundCollaborator receives sound-finished notifications; sound
// playback itself belongs to the host.
type SoundCollaborator interface {
	HandleSoundFinished(routine uint32)
}

// NoopSound is a SoundCollaborator stub that drops every notification,
// used when no sound backend is wired (cmd/zcore, tests).
type NoopSound struct{}

func (NoopSound) HandleSoundFinished(routine uint32) {}

// TextSubsystem wires the text and input components into the single
// struct a host VM owns, and exposes the dispatcher-facing surface:
// print, decode, stream control, and the read pipeline.
type TextSubsystem struct {
	Config *Config
	Log    Logger

	Memory Memory
	Chars  *CharacterSet
	Alphas AlphabetSet
	Abbrev AbbreviationTable

	Decoder *TextDecoder
	Encoder *TextEncoder
	Dict    *Dictionary
	Tok     *Tokenizer
	Output  *OutputRouter
	Read    *ReadPipeline

	io    IO
	sound SoundCollaborator
}

// NewTextSubsystem builds every leaf and composite component over mem
// and io. Extras/alphabet table overrides resolve in priority order:
// a memory-header override (mem.ExtrasTableAddr()/AlphabetTableAddr()
// nonzero) wins over a config override, which wins over the built-in
// defaults.
func NewTextSubsystem(mem Memory, io IO, interp Interpreter, cfg *Config, log Logger) *TextSubsystem {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = NopLogger{}
	}

	vm := &TextSubsystem{
		Config: cfg,
		Log:    log,
		Memory: mem,
		io:     io,
		sound:  NoopSound{},
	}

	vm.Chars = vm.resolveCharacterSet(mem, cfg)
	vm.Alphas = vm.resolveAlphabetSet(mem, cfg)
	vm.Abbrev = AbbreviationTable{BaseAddr: mem.AbbreviationTableAddr(), Entries: 96}

	vm.Decoder = NewTextDecoder(mem, vm.Chars, vm.Alphas, vm.Abbrev)
	vm.Encoder = NewTextEncoder(vm.Chars, vm.Alphas)
	vm.Dict = NewDictionary(mem, vm.Encoder)
	vm.Tok = NewTokenizer(mem, vm.Dict)
	vm.Output = NewOutputRouter(mem, vm.Chars, io, log)
	vm.Read = NewReadPipeline(mem, io, vm.Chars, vm.Tok, interp, log)

	return vm
}

// resolveCharacterSet honours the memory-header/config/default
// priority for the extras table.
func (vm *TextSubsystem) resolveCharacterSet(mem Memory, cfg *Config) *CharacterSet {
	addr := mem.ExtrasTableAddr()
	if addr == 0 {
		addr = cfg.Tables.ExtrasTableAddr
	}
	if addr == 0 {
		return NewCharacterSet(nil)
	}
	count := int(mem.GetByte(addr))
	extras := make([]rune, count)
	for i := 0; i < count; i++ {
		extras[i] = rune(mem.GetByte(addr + 1 + uint32(i)))
	}
	return NewCharacterSet(extras)
}

// resolveAlphabetSet honours the same priority for the alphabet
// tables. A header/config override points at 78 contiguous CHARCODE
// bytes: A0[26], A1[26], A2[26], in that order (the layout the
// Z-machine standard's header extension uses).
func (vm *TextSubsystem) resolveAlphabetSet(mem Memory, cfg *Config) AlphabetSet {
	addr := mem.AlphabetTableAddr()
	if addr == 0 {
		addr = cfg.Tables.AlphabetTableAddr
	}
	if addr == 0 {
		return DefaultAlphabetSet()
	}
	var set AlphabetSet
	for i := 0; i < 26; i++ {
		set.A0[i] = mem.GetByte(addr + uint32(i))
		set.A1[i] = mem.GetByte(addr + 26 + uint32(i))
		set.A2[i] = mem.GetByte(addr + 52 + uint32(i))
	}
	return set
}

// GetCursorPos asks the IO collaborator for the host cursor position
// and writes it as two 16-bit words (row, then column) at dstAddr.
// Display geometry itself belongs to the host; this is forwarding
// only.
func (vm *TextSubsystem) GetCursorPos(dstAddr uint32) {
	row, col := vm.io.CursorPos()
	vm.Memory.SetWord(dstAddr, uint16(row))
	vm.Memory.SetWord(dstAddr+2, uint16(col))
}

// HandleSoundFinished forwards to the sound collaborator, a no-op
// stub unless a host wires a real one.
func (vm *TextSubsystem) HandleSoundFinished(routine uint32) {
	vm.sound.HandleSoundFinished(routine)
}

// SetSoundCollaborator lets a host replace the no-op sound stub.
func (vm *TextSubsystem) SetSoundCollaborator(s SoundCollaborator) {
	if s == nil {
		s = NoopSound{}
	}
	vm.sound = s
}

// PrintCharcode, PrintUnicode, PrintString, DecodeStringAt forward
// directly to the already-wired components.
func (vm *TextSubsystem) PrintCharcode(c byte)   { vm.Output.PutCharcode(c) }
func (vm *TextSubsystem) PrintUnicode(u rune)    { vm.Output.PutUnicode(u) }
func (vm *TextSubsystem) PrintString(s string)   { vm.Output.PutString(s) }
func (vm *TextSubsystem) DecodeStringAt(addr uint32) (string, int) {
	return vm.Decoder.DecodeString(addr)
}

// SetOutputStream / SetInputStream forward to the OutputRouter,
// tagging the call with a fresh session for log correlation.
func (vm *TextSubsystem) SetOutputStream(n int, addr uint32) error {
	return vm.Output.SetOutputStream(n, addr, newSessionTag())
}

func (vm *TextSubsystem) SetInputStream(n int) error {
	return vm.Output.SetInputStream(n)
}

// ReadLineImpl / ReadKeyImpl forward to the ReadPipeline, applying
// the config's default read timeout when the caller passes 0.
func (vm *TextSubsystem) ReadLineImpl(ctx context.Context, bufferAddr, parseAddr uint32, timeTenths int, routine uint32, returnPC uint32) (byte, error) {
	if timeTenths == 0 {
		timeTenths = vm.Config.Input.DefaultReadTimeoutTenths
	}
	return vm.Read.ReadLine(ctx, bufferAddr, parseAddr, timeTenths, routine, returnPC)
}

func (vm *TextSubsystem) ReadKeyImpl(ctx context.Context, timeTenths int, routine uint32, returnPC uint32) (byte, error) {
	if timeTenths == 0 {
		timeTenths = vm.Config.Input.DefaultReadTimeoutTenths
	}
	return vm.Read.ReadKey(ctx, timeTenths, routine, returnPC)
}
