package zcore

import "context"

// ReadPipeline ties the I/O collaborator's line/key read to timed-
// callback re-entrancy and tokenization. While a read is pending the
// collaborator may re-enter the interpreter synchronously through the
// timer callback; a non-zero return from the routine cancels the
// read.
type ReadPipeline struct {
	mem    Memory
	io     IO
	cs     *CharacterSet
	tok    *Tokenizer
	interp Interpreter
	log    Logger

	// Terminators is the configured terminator set passed to the IO
	// collaborator's line read. Defaults to {13} (enter only).
	Terminators []byte
}

// NewReadPipeline builds a ReadPipeline from its collaborators.
func NewReadPipeline(mem Memory, io IO, cs *CharacterSet, tok *Tokenizer, interp Interpreter, log Logger) *ReadPipeline {
	if log == nil {
		log = NopLogger{}
	}
	return &ReadPipeline{mem: mem, io: io, cs: cs, tok: tok, interp: interp, log: log, Terminators: []byte{13}}
}

// timerCallback builds the synchronous re-entry thunk: each
// invocation re-enters the interpreter at routine, runs it to
// completion, and treats a non-zero return as "cancel input".
// routine == 0 means no callback is configured.
func (p *ReadPipeline) timerCallback(routine uint32, returnPC uint32) TimerCallback {
	if routine == 0 {
		return nil
	}
	return func() bool {
		p.interp.EnterFunction(routine, nil, 0, returnPC)
		p.interp.JITLoop()
		return p.interp.StackPop() != 0
	}
}

// ReadLine reads a line of input into the read buffer at bufferAddr
// and, when parseAddr is non-zero, tokenizes it into the parse buffer
// there. Byte 1 of the read buffer is the continued-input offset: new
// characters are appended after it, truncated to the capacity byte.
// timeTenths/routine configure the timed callback. Returns the
// terminator CHARCODE the collaborator reported (13 normal enter, 0
// cancelled, else a function key).
func (p *ReadPipeline) ReadLine(ctx context.Context, bufferAddr, parseAddr uint32, timeTenths int, routine uint32, returnPC uint32) (byte, error) {
	session := newSessionTag()
	p.log.Debugf(session, "read_line buffer=0x%X parse=0x%X time=%d routine=0x%X", bufferAddr, parseAddr, timeTenths, routine)

	max := int(p.mem.GetByte(bufferAddr))
	offset := int(p.mem.GetByte(bufferAddr + 1))

	p.interp.BeginExternalWait()
	line, terminator, err := p.io.ReadLine(ctx, timeTenths, p.timerCallback(routine, returnPC), p.Terminators)
	p.interp.EndExternalWait()
	if err != nil {
		p.log.Errorf(session, "read_line failed: %v", err)
		return 0, err
	}

	runes := []rune(line)
	encoded := make([]byte, len(runes))
	for i, r := range runes {
		encoded[i] = p.cs.EncodeCharcode(r)
	}

	capacity := max - offset
	if capacity < 0 {
		capacity = 0
	}
	if len(encoded) > capacity {
		encoded = encoded[:capacity]
	}

	p.mem.SetByte(bufferAddr+1, byte(offset+len(encoded)))
	for i, b := range encoded {
		p.mem.SetByte(bufferAddr+2+uint32(offset+i), b)
	}

	if parseAddr != 0 {
		if err := p.tok.Tokenize(bufferAddr, parseAddr, 0, false); err != nil {
			p.log.Errorf(session, "tokenize failed: %v", err)
			return 0, err
		}
	}

	p.log.Debugf(session, "read_line terminator=%d length=%d", terminator, len(encoded))
	return terminator, nil
}

// ReadKey is the single-key analogue of ReadLine, passing the
// character set's encoder as the char-to-CHARCODE translator the
// collaborator invokes for printable keys.
func (p *ReadPipeline) ReadKey(ctx context.Context, timeTenths int, routine uint32, returnPC uint32) (byte, error) {
	session := newSessionTag()
	p.log.Debugf(session, "read_key time=%d routine=0x%X", timeTenths, routine)

	p.interp.BeginExternalWait()
	code, err := p.io.ReadKey(ctx, timeTenths, p.timerCallback(routine, returnPC), p.cs.EncodeCharcode)
	p.interp.EndExternalWait()
	if err != nil {
		p.log.Errorf(session, "read_key failed: %v", err)
		return 0, err
	}
	p.log.Debugf(session, "read_key code=%d", code)
	return code, nil
}
