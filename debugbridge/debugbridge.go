// Package debugbridge is a read-only observer of a running terp.Terp plus
// its assembled listing, and the breakpoint map and command queue the
// debugger UI drives the machine through. Grounded on the teacher's
// debugger package (breakpoints.go's BreakpointManager, debugger.go's
// Symbols/SourceMap queries), generalized from ARM-specific condition
// checks to spec.md §4.10's four breakpoint kinds and the single shared
// command queue spec.md §5's scheduling model describes.
package debugbridge

import (
	"fmt"

	"github.com/basecode-lang/basecode-sub005/asmblk"
	"github.com/basecode-lang/basecode-sub005/terp"
	"github.com/basecode-lang/basecode-sub005/vm"
)

// BreakpointKind is one of the four conditions spec.md §4.10 names.
type BreakpointKind int

const (
	BreakpointSimple BreakpointKind = iota
	BreakpointFlagSet
	BreakpointFlagClear
	BreakpointRegisterEquals
)

// Breakpoint is {address, enabled, type}, plus the extra fields
// flag_set/flag_clear/register_equals need to evaluate their condition.
type Breakpoint struct {
	Address     uint32
	Enabled     bool
	Kind        BreakpointKind
	Flag        string // which Flags field, for FlagSet/FlagClear
	Register    string // register name, for RegisterEquals
	EqualsValue uint64
}

// CommandKind tags one entry on the debugger's command queue.
type CommandKind int

const (
	CommandStep CommandKind = iota
	CommandRun
	CommandContinue
	CommandStop
)

// Command is one instruction the debugger UI sends to the bridge's run
// loop via Commands().
type Command struct {
	Kind CommandKind
}

// Bridge wraps a Terp and its Listing with breakpoint evaluation and the
// command channel spec.md §5 calls "a single shared memory window plus a
// command queue".
type Bridge struct {
	Terp    *terp.Terp
	Listing *asmblk.Listing

	breakpoints map[uint32]*Breakpoint
	commands    chan Command
	state       BridgeState
}

// BridgeState mirrors the debugger-visible run state: running, broken on a
// hit breakpoint, or stopped by the user.
type BridgeState int

const (
	BridgeRunning BridgeState = iota
	BridgeBroken
	BridgeStopped
)

// New wraps t and listing with an empty breakpoint map and a buffered
// command queue.
func New(t *terp.Terp, listing *asmblk.Listing) *Bridge {
	return &Bridge{
		Terp:        t,
		Listing:     listing,
		breakpoints: make(map[uint32]*Breakpoint),
		commands:    make(chan Command, 16),
		state:       BridgeRunning,
	}
}

// Commands returns the channel the debugger UI sends Commands on and the
// bridge's run loop receives from.
func (b *Bridge) Commands() chan<- Command { return b.commands }

// State reports the bridge's current run state.
func (b *Bridge) State() BridgeState { return b.state }

// SetBreakpoint installs or replaces the breakpoint at bp.Address.
func (b *Bridge) SetBreakpoint(bp Breakpoint) {
	cp := bp
	b.breakpoints[bp.Address] = &cp
}

// ClearBreakpoint removes any breakpoint at address.
func (b *Bridge) ClearBreakpoint(address uint32) {
	delete(b.breakpoints, address)
}

// Breakpoints returns every installed breakpoint.
func (b *Bridge) Breakpoints() []Breakpoint {
	out := make([]Breakpoint, 0, len(b.breakpoints))
	for _, bp := range b.breakpoints {
		out = append(out, *bp)
	}
	return out
}

// hits reports whether the breakpoint at PC's current value should trip,
// per spec.md §4.10: "the VM's main loop checks the breakpoint map before
// each step".
func (b *Bridge) hits() (Breakpoint, bool) {
	pc := b.Terp.RegisterFile().PC()
	bp, ok := b.breakpoints[pc]
	if !ok || !bp.Enabled {
		return Breakpoint{}, false
	}
	switch bp.Kind {
	case BreakpointSimple:
		return *bp, true
	case BreakpointFlagSet, BreakpointFlagClear:
		set := flagValue(b.Terp.RegisterFile().Flags, bp.Flag)
		if (bp.Kind == BreakpointFlagSet) == set {
			return *bp, true
		}
		return Breakpoint{}, false
	case BreakpointRegisterEquals:
		idx := registerIndexByName(bp.Register)
		if idx < 0 {
			return Breakpoint{}, false
		}
		if b.Terp.RegisterFile().Get(idx).Uint64() == bp.EqualsValue {
			return *bp, true
		}
		return Breakpoint{}, false
	default:
		return Breakpoint{}, false
	}
}

func flagValue(f vm.Flags, name string) bool {
	switch name {
	case "Z":
		return f.Z
	case "C":
		return f.C
	case "V":
		return f.V
	case "N":
		return f.N
	case "E":
		return f.E
	case "S":
		return f.S
	default:
		return false
	}
}

func registerIndexByName(name string) int {
	for i := 0; i < vm.NumRegisters; i++ {
		if vm.RegisterName(i) == name {
			return i
		}
	}
	return -1
}

// Step executes exactly one instruction, unless a breakpoint at the
// current PC trips first, in which case the bridge transitions to
// BridgeBroken without advancing and returns control to the caller.
func (b *Bridge) Step(result *terp.StepResult) error {
	if _, hit := b.hits(); hit {
		b.state = BridgeBroken
		return nil
	}
	b.state = BridgeRunning
	return b.Terp.Step(result)
}

// Run drives Step in a loop, honoring the command queue: a Stop command
// halts immediately, a breakpoint hit halts with BridgeBroken, and the
// machine exiting or erroring stops the loop too.
func (b *Bridge) Run(result *terp.StepResult) error {
	for {
		select {
		case cmd := <-b.commands:
			if cmd.Kind == CommandStop {
				b.state = BridgeStopped
				return nil
			}
		default:
		}

		if b.Terp.HasExited() || b.Terp.Errored() {
			return nil
		}
		if err := b.Step(result); err != nil {
			return err
		}
		if b.state == BridgeBroken || b.Terp.HasExited() {
			return nil
		}
	}
}

// LineForAddress answers "what source line contains address A?".
func (b *Bridge) LineForAddress(addr uint32) (asmblk.ListingLine, bool) {
	return b.Listing.LineForAddress(addr)
}

// ByteAt answers "what is the byte at address A?".
func (b *Bridge) ByteAt(addr uint32) (byte, error) {
	data, err := b.Terp.Read(1, addr)
	if err != nil {
		return 0, err
	}
	return data[0], nil
}

// LiveRegisters answers "which registers are live?".
func (b *Bridge) LiveRegisters() map[string]vm.Value {
	return b.Terp.RegisterFile().Live()
}

// FormatRegister renders a register's value for the debugger UI's register
// pane, e.g. "R3  = 0x0000002A" (name left-aligned in 3 columns).
func FormatRegister(name string, v vm.Value) string {
	return fmt.Sprintf("%-3s = 0x%08X", name, v.Uint64())
}
