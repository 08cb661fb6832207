// Command basecodec is the thin driver spec.md §1 explicitly keeps out of
// the core: it wires {input-path, heap-size, stack-size, debug-listing}
// into the front end and the VM, and nothing else. It contains no compiler
// logic of its own — downstream code generation from a parsed module is
// out of scope for the core, so this driver's VM stage runs the one
// instruction block every successfully parsed module reduces to until a
// real code generator exists: an immediate, balanced `exit`.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/basecode-lang/basecode-sub005/asmblk"
	"github.com/basecode-lang/basecode-sub005/diag"
	"github.com/basecode-lang/basecode-sub005/intern"
	"github.com/basecode-lang/basecode-sub005/parser"
	"github.com/basecode-lang/basecode-sub005/source"
	"github.com/basecode-lang/basecode-sub005/terp"
)

const (
	exitOK int = iota
	exitError
	exitInternal
)

func main() {
	os.Exit(run())
}

func run() (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			code = exitInternal
		}
	}()

	var (
		heapSize     uint32
		stackSize    uint32
		debugListing bool
	)

	cmd := &cobra.Command{
		Use:  "basecodec <input-path>",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code = execute(args[0], heapSize, stackSize, debugListing)
			return nil
		},
	}
	cmd.Flags().Uint32Var(&heapSize, "heap-size", 1<<20, "heap size in bytes")
	cmd.Flags().Uint32Var(&stackSize, "stack-size", 1<<16, "stack size in bytes")
	cmd.Flags().BoolVar(&debugListing, "debug-listing", false, "print the assembled listing before running")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}
	return code
}

func execute(inputPath string, heapSize, stackSize uint32, debugListing bool) int {
	buf, err := source.Load(inputPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}

	diags := diag.NewBag()
	pool := intern.New()
	p := parser.New(buf, pool, diags)
	p.ParseModule()

	if diags.HasErrors() {
		for _, d := range diags.All() {
			diag.Render(os.Stderr, buf, d)
		}
		return exitError
	}

	asm := asmblk.NewAssembler(diags)
	instr, err := asmblk.NewInstruction(asmblk.OpExit, asmblk.SizeQWord, asmblk.Operand{}, nil, source.Location{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInternal
	}
	asm.CurrentBlock().Entries = append(asm.CurrentBlock().Entries, asmblk.Entry{Kind: asmblk.EntryInstruction, Instruction: instr})

	image, listing, err := asm.Assemble(0)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}
	if debugListing {
		fmt.Fprint(os.Stdout, listing.Render())
	}

	t := terp.New(heapSize, stackSize, diags)
	if err := t.LoadProgram(image); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}
	if err := t.Run(nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}
	return exitOK
}
