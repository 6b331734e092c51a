// chicken - the main entry point for running chicken programs
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/chazu/chicken/manifest"
	"github.com/chazu/chicken/pkg/bytecode"
	"github.com/chazu/chicken/pkg/image"
	"github.com/chazu/chicken/pkg/trace"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("chicken.cli")

func main() {
	file := flag.String("file", "", "Program to run: .chicken source or a compiled .cbi image")
	input := flag.String("input", "", "Input placed at memory address 1 before execution")
	debug := flag.Bool("debug", false, "Single-step through the program with a live stack view")
	normalChar := flag.Bool("normal-char", false, "Char pushes real characters instead of HTML entities")
	opcodes := flag.String("opcodes", "", "Comma-separated raw opcodes to run instead of a file")
	disasm := flag.Bool("disasm", false, "Print the program listing and exit")
	compileOut := flag.String("compile", "", "Write a compiled .cbi image to this path and exit")
	tracePath := flag.String("trace", "", "Record the run into this SQLite trace database")
	verbose := flag.Bool("v", false, "Verbose output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: chicken [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Runs a chicken program and prints its output.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  chicken quine.chicken                  # Run a program\n")
		fmt.Fprintf(os.Stderr, "  chicken --file cat.chicken --input hi  # Run with input\n")
		fmt.Fprintf(os.Stderr, "  chicken --opcodes 11,6,0 --input hi    # Run raw opcodes\n")
		fmt.Fprintf(os.Stderr, "  chicken --debug cat.chicken            # Step with a stack view\n")
		fmt.Fprintf(os.Stderr, "  chicken --compile cat.cbi cat.chicken  # Compile to an image\n")
		fmt.Fprintf(os.Stderr, "\nWith no file and no --opcodes, a chicken.toml manifest is searched\n")
		fmt.Fprintf(os.Stderr, "for upward from the current directory.\n")
	}
	flag.Parse()

	if *verbose {
		commonlog.Configure(2, nil)
	} else {
		commonlog.Configure(0, nil)
	}

	if *file == "" && flag.NArg() > 0 {
		*file = flag.Arg(0)
	}

	// Flags win over the manifest; the manifest only fills in what the
	// command line left unset.
	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	if *file == "" && *opcodes == "" {
		m, err := manifest.FindAndLoad(".")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if m != nil {
			log.Infof("using manifest in %s", m.Dir)
			*file = m.ProgramPath()
			if !explicit["input"] {
				*input = m.Program.Input
			}
			if !explicit["normal-char"] {
				*normalChar = m.Options.NormalChar
			}
			if !explicit["debug"] {
				*debug = m.Options.Debug
			}
			if !explicit["trace"] {
				*tracePath = m.TracePath()
			}
		}
	}

	prog, name, err := loadProgram(*file, *opcodes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.Infof("loaded %s: %d opcodes", name, prog.Len())

	if *disasm {
		fmt.Print(bytecode.Disassemble(prog))
		os.Exit(0)
	}

	if *compileOut != "" {
		if err := image.WriteFile(*compileOut, prog, name); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if *verbose {
			fmt.Printf("Wrote %s (%d opcodes)\n", *compileOut, prog.Len())
		}
		os.Exit(0)
	}

	var rec *trace.Run
	if *tracePath != "" {
		store, err := trace.Open(*tracePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		rec, err = store.Begin(name, *input, *normalChar)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		log.Infof("recording run %s", rec.ID())
	}

	vm := bytecode.New(prog, bytecode.Config{Input: *input, NormalChar: *normalChar})

	output, fault := execute(vm, rec, *debug)

	if rec != nil {
		outcome := "halted"
		if fault != nil {
			outcome = fault.Kind.String()
		}
		if err := rec.Finish(outcome, output); err != nil {
			log.Errorf("%s", err.Error())
		}
	}

	if fault != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", fault)
		fmt.Fprintf(os.Stderr, "    stack dump: %s\n", fault.DumpStack())
		os.Exit(1)
	}
	fmt.Println(output)
}

// loadProgram resolves the program from --opcodes, a .cbi image or chicken
// source, in that order.
func loadProgram(file, rawOpcodes string) (*bytecode.Program, string, error) {
	if rawOpcodes != "" {
		ops, err := parseOpcodes(rawOpcodes)
		if err != nil {
			return nil, "", err
		}
		return bytecode.FromOpcodes(ops), "<opcodes>", nil
	}
	if file == "" {
		return nil, "", fmt.Errorf("no program: pass a file, --opcodes, or add a chicken.toml")
	}
	if strings.HasSuffix(file, ".cbi") {
		prog, err := image.ReadFile(file)
		return prog, file, err
	}
	source, err := os.ReadFile(file)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", file, err)
	}
	return bytecode.Parse(string(source)), file, nil
}

// parseOpcodes parses a comma-separated opcode list.
func parseOpcodes(s string) ([]int64, error) {
	parts := strings.Split(s, ",")
	ops := make([]int64, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid opcode %q", part)
		}
		if n < 0 {
			return nil, fmt.Errorf("invalid opcode %d: opcodes are non-negative", n)
		}
		ops = append(ops, n)
	}
	return ops, nil
}

// execute drives the VM to a terminal state, pairing each step with trace
// recording and, in debug mode, the interactive stack view.
func execute(vm *bytecode.VM, rec *trace.Run, debug bool) (string, *bytecode.Fault) {
	var stdin *bufio.Reader
	if debug {
		stdin = bufio.NewReader(os.Stdin)
		fmt.Println("press enter to step, ctrl+c to exit")
	}

	for {
		if debug {
			printStepPreview(vm)
			if _, err := stdin.ReadString('\n'); err != nil {
				// Input closed; keep running without pausing.
				debug = false
			}
		}

		if rec != nil {
			op, _ := vm.CurrentOp()
			if err := rec.Record(vm.PC(), int64(op), vm.Memory().StackDepth()); err != nil {
				log.Errorf("%s", err.Error())
				rec = nil
			}
		}

		res := vm.Step()
		switch res.Status {
		case bytecode.StatusHalted:
			return res.Output, nil
		case bytecode.StatusFaulted:
			return "", res.Fault
		}
	}
}

// printStepPreview shows the debugger what the next step will execute.
func printStepPreview(vm *bytecode.VM) {
	fmt.Printf("program counter %d\n", vm.PC())

	if op, ok := vm.CurrentOp(); ok {
		info := bytecode.GetOpcodeInfo(op)
		if op.IsWide() {
			operand, _ := vm.Memory().At(bytecode.SegmentB + vm.PC() + 1)
			fmt.Printf("opcode %d (%s from %s)\n", int64(op), info.Mnemonic, operand)
		} else {
			fmt.Printf("opcode %d (%s)\n", int64(op), info.Mnemonic)
		}
	} else {
		fmt.Println("opcode unknown")
	}

	var sb strings.Builder
	for i, v := range vm.Memory().Snapshot() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(v.String())
	}
	fmt.Printf("memory [%s]\n", sb.String())
}
