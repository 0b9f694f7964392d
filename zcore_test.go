package zcore

import "context"

// newTestMemory builds a StoryMemory over a zeroed buffer big enough
// for every test's synthetic tables, with ROM pushed far out so
// capture-frame and dictionary fixtures have room to live in dynamic
// memory.
func newTestMemory(size int) *StoryMemory {
	buf := make([]byte, size)
	mem := NewStoryMemory(buf)
	mem.SetROMStart(uint32(size - 1))
	return mem
}

// fakeIO is a minimal IO collaborator for tests that don't need a
// real terminal: ReadLine/ReadKey are scripted by the test, output
// calls are recorded rather than written anywhere.
type fakeIO struct {
	lineResult string
	lineTerm   byte
	lineErr    error
	callTimer  bool // if true, invoke timerCB once before returning

	lastLineTimeTenths int // timeTenths passed to the last ReadLine

	keyResult byte
	keyErr    error

	screen     []rune
	transcript []rune

	transcripting       bool
	readingFromFile     bool
	writingToFile       bool
}

func (f *fakeIO) ReadLine(ctx context.Context, timeTenths int, timerCB TimerCallback, terminators []byte) (string, byte, error) {
	f.lastLineTimeTenths = timeTenths
	if f.callTimer && timerCB != nil {
		if timerCB() {
			return f.lineResult, 0, f.lineErr
		}
	}
	return f.lineResult, f.lineTerm, f.lineErr
}

func (f *fakeIO) ReadKey(ctx context.Context, timeTenths int, timerCB TimerCallback, translate func(rune) byte) (byte, error) {
	if f.callTimer && timerCB != nil {
		if timerCB() {
			return 0, f.keyErr
		}
	}
	return f.keyResult, f.keyErr
}

func (f *fakeIO) PutChar(r rune)           { f.screen = append(f.screen, r) }
func (f *fakeIO) PutString(s string)       { f.screen = append(f.screen, []rune(s)...) }
func (f *fakeIO) PutRectangle(lines []string) {}

func (f *fakeIO) Transcripting() bool              { return f.transcripting }
func (f *fakeIO) SetTranscripting(v bool)          { f.transcripting = v }
func (f *fakeIO) ReadingCommandsFromFile() bool     { return f.readingFromFile }
func (f *fakeIO) SetReadingCommandsFromFile(v bool) { f.readingFromFile = v }
func (f *fakeIO) WritingCommandsToFile() bool       { return f.writingToFile }
func (f *fakeIO) SetWritingCommandsToFile(v bool)   { f.writingToFile = v }

func (f *fakeIO) PutTranscriptChar(r rune)     { f.transcript = append(f.transcript, r) }
func (f *fakeIO) PutTranscriptString(s string) { f.transcript = append(f.transcript, []rune(s)...) }

func (f *fakeIO) CursorPos() (int, int) { return 1, 1 }

func (f *fakeIO) CanOutput(r rune) bool { return true }
func (f *fakeIO) CanInput(r rune) bool  { return true }

// fakeInterpreter reports a scripted StackPop result so ReadPipeline's
// timer callback can be driven deterministically from a test, without
// a real opcode dispatcher.
type fakeInterpreter struct {
	stackPopResult uint16
	entered        int
}

func (f *fakeInterpreter) EnterFunction(addr uint32, args []uint16, argc int, returnPC uint32) {
	f.entered++
}
func (f *fakeInterpreter) JITLoop()             {}
func (f *fakeInterpreter) StackPop() uint16     { return f.stackPopResult }
func (f *fakeInterpreter) BeginExternalWait()   {}
func (f *fakeInterpreter) EndExternalWait()     {}
