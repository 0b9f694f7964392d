// Command zcore drives the text/tokenizer core against a raw memory
// image for manual testing. It runs no bytecode - opcode dispatch
// lives elsewhere - so the loop just reads a line, tokenizes it, and
// echoes it back through the output router.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ifvm/zcore"
)

func main() {
	storyPath := flag.String("story", "", "path to a Z-machine story file (memory image)")
	configPath := flag.String("config", "", "path to a zcore TOML config file")
	flag.Parse()

	if *storyPath == "" {
		fmt.Fprintln(os.Stderr, "usage: zcore -story FILE [-config FILE]")
		os.Exit(2)
	}

	buf, err := os.ReadFile(*storyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "zcore: %v\n", err)
		os.Exit(1)
	}

	cfg, err := zcore.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "zcore: %v\n", err)
		os.Exit(1)
	}

	log := zcore.NewSlogLogger(zcore.ParseLogLevel(cfg.Trace.Level))
	mem := zcore.NewStoryMemory(buf)
	io := zcore.NewTerminalIO(os.Stdin, os.Stdout, nil)
	vm := zcore.NewTextSubsystem(mem, io, zcore.NoopInterpreter{}, cfg, log)

	vm.PrintString("zcore ready. Type a line and press enter; ctrl-d to quit.\n")

	bufferAddr, parseAddr := uint32(0x200), uint32(0x300)
	mem.SetByte(bufferAddr, 255)
	mem.SetByte(parseAddr, 60)

	for {
		// Byte 1 doubles as the continued-input offset, so clear it
		// between reads or each line appends after the previous one.
		mem.SetByte(bufferAddr+1, 0)
		term, err := vm.ReadLineImpl(context.Background(), bufferAddr, parseAddr, 0, 0, 0)
		if err != nil {
			fmt.Fprintf(os.Stderr, "zcore: %v\n", err)
			os.Exit(1)
		}
		if term == 0 {
			break
		}
		length := int(mem.GetByte(bufferAddr + 1))
		text := make([]byte, length)
		mem.GetBytes(bufferAddr+2, length, text, 0)
		vm.PrintString(fmt.Sprintf("you typed: %q\n", string(text)))
	}
}
