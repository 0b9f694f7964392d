package zcore

const (
	maxCaptureDepth      = 16
	minCaptureTargetAddr = 64
)

// captureFrame is an in-memory sink collecting emitted bytes until
// stream 3 is disabled, then flushed length-prefixed to targetAddr.
type captureFrame struct {
	targetAddr uint32
	buf        []byte
}

// OutputRouter fans writes across the screen, transcript, command-
// file echo, and a stack of in-memory capture buffers. Streams 1, 2
// and 4 are toggles; stream 3 is a nestable LIFO of capture frames.
type OutputRouter struct {
	mem Memory
	cs  *CharacterSet
	io  IO
	log Logger

	normalOutput bool
	frames       []captureFrame
}

// NewOutputRouter builds a router with screen output on and an empty
// capture stack.
func NewOutputRouter(mem Memory, cs *CharacterSet, io IO, log Logger) *OutputRouter {
	if log == nil {
		log = NopLogger{}
	}
	return &OutputRouter{mem: mem, cs: cs, io: io, log: log, normalOutput: true}
}

// TableOutput reports whether the capture-frame stack is non-empty.
func (o *OutputRouter) TableOutput() bool { return len(o.frames) > 0 }

// PutCharcode routes a single CHARCODE. Code 0 is a no-op; while a
// capture frame is active the byte goes to it and nowhere else.
func (o *OutputRouter) PutCharcode(c byte) {
	if c == 0 {
		return
	}
	if o.TableOutput() {
		o.captureByte(o.cs.EncodeCharcode(o.cs.DecodeCharcode(c)))
		return
	}
	host := o.cs.DecodeCharcode(c)
	if o.normalOutput {
		o.io.PutChar(host)
	}
	if o.io.Transcripting() {
		o.io.PutTranscriptChar(host)
	}
}

// PutUnicode routes a single host rune, captured as its CHARCODE low
// byte while a capture frame is active.
func (o *OutputRouter) PutUnicode(u rune) {
	if o.TableOutput() {
		o.captureByte(byte(o.cs.EncodeCharcode(u)))
		return
	}
	if o.normalOutput {
		o.io.PutChar(u)
	}
	if o.io.Transcripting() {
		o.io.PutTranscriptChar(u)
	}
}

// PutString applies the PutUnicode rule per character.
func (o *OutputRouter) PutString(s string) {
	for _, r := range s {
		o.PutUnicode(r)
	}
}

// PutRectangle is screen-only: never captured, never transcripted.
func (o *OutputRouter) PutRectangle(lines []string) {
	o.io.PutRectangle(lines)
}

func (o *OutputRouter) captureByte(b byte) {
	top := len(o.frames) - 1
	o.frames[top].buf = append(o.frames[top].buf, b)
}

// SetOutputStream handles output-stream control for stream numbers
// 1..4. n > 0 enables/sets the stream, n < 0 disables it; addr is
// only meaningful when enabling stream 3.
func (o *OutputRouter) SetOutputStream(n int, addr uint32, session string) error {
	stream := n
	enable := n > 0
	if !enable {
		stream = -n
	}

	switch stream {
	case 1:
		o.normalOutput = enable
		o.log.Debugf(session, "output stream 1 (screen) -> %v", enable)
	case 2:
		o.io.SetTranscripting(enable)
		o.log.Debugf(session, "output stream 2 (transcript) -> %v", enable)
	case 3:
		if enable {
			return o.pushCaptureFrame(addr, session)
		}
		return o.popCaptureFrame(session)
	case 4:
		o.io.SetWritingCommandsToFile(enable)
		o.log.Debugf(session, "output stream 4 (command echo) -> %v", enable)
	default:
		return streamControlError(stream, "unknown output stream")
	}
	return nil
}

// SetInputStream selects whether input is read from the keyboard
// (n==0) or a command file (n==1).
func (o *OutputRouter) SetInputStream(n int) error {
	switch n {
	case 0:
		o.io.SetReadingCommandsFromFile(false)
	case 1:
		o.io.SetReadingCommandsFromFile(true)
	default:
		return streamControlError(n, "unknown input stream")
	}
	return nil
}

func (o *OutputRouter) pushCaptureFrame(addr uint32, session string) error {
	if len(o.frames) >= maxCaptureDepth {
		return streamControlError(3, "capture stack would exceed 16 frames")
	}
	if addr < minCaptureTargetAddr || addr+1 >= o.mem.ROMStart() {
		return streamControlError(3, "capture target address out of writable range")
	}
	o.frames = append(o.frames, captureFrame{targetAddr: addr})
	o.log.Debugf(session, "output stream 3 enabled, target 0x%X, depth %d", addr, len(o.frames))
	return nil
}

func (o *OutputRouter) popCaptureFrame(session string) error {
	if len(o.frames) == 0 {
		return streamControlError(3, "no capture frame to disable")
	}
	frame := o.frames[len(o.frames)-1]
	o.frames = o.frames[:len(o.frames)-1]
	o.flushFrame(frame)
	o.log.Debugf(session, "output stream 3 disabled, flushed %d bytes to 0x%X, depth %d", len(frame.buf), frame.targetAddr, len(o.frames))
	return nil
}

// flushFrame writes the 16-bit length-prefixed capture buffer to its
// target address, truncating silently if it would cross ROM start.
// The push-time range check is authoritative; this is a best-effort
// cap, not an error.
func (o *OutputRouter) flushFrame(frame captureFrame) {
	available := int(o.mem.ROMStart()) - int(frame.targetAddr) - 2
	if available < 0 {
		available = 0
	}
	data := frame.buf
	if len(data) > available {
		data = data[:available]
	}
	o.mem.SetWord(frame.targetAddr, uint16(len(data)))
	for i, b := range data {
		o.mem.SetByte(frame.targetAddr+2+uint32(i), b)
	}
}
