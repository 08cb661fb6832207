package vm

import "fmt"

// Register indices. PC, FP, SP occupy the first three slots; R0..R31 follow,
// generalizing the teacher's CPU.R flat-array-plus-aliases layout (cpu.go's
// R0..R12/SP/LR constants) from ARM's 16 registers to spec.md §3's 35 named
// registers.
const (
	RegPC = iota
	RegFP
	RegSP
	regR0
)

// NumRegisters is the total named-register count: PC, FP, SP, R0..R31.
const NumRegisters = regR0 + 32

// RegisterIndex returns the register slot for R0..R31, mirroring the
// teacher's R0..R12 constant block.
func RegisterIndex(n int) int { return regR0 + n }

// RegisterName returns the canonical spelling of a register index, used by
// the debugger bridge and the disassembly listing.
func RegisterName(idx int) string {
	switch idx {
	case RegPC:
		return "PC"
	case RegFP:
		return "FP"
	case RegSP:
		return "SP"
	default:
		if idx >= regR0 && idx < NumRegisters {
			return fmt.Sprintf("R%d", idx-regR0)
		}
		return fmt.Sprintf("R?%d", idx)
	}
}

// Flags carries the condition-code bits every `cmp*`/arithmetic opcode
// updates, generalized from the teacher's CPSR (cpu.go: N, Z, C, V) with two
// additions — E and S — for the spec's explicit compare-result flags.
type Flags struct {
	Z bool // result zero
	C bool // unsigned carry out
	V bool // signed overflow
	N bool // result negative
	E bool // equal, from last cmp*
	S bool // less-than, from last cmp*
}

// ToUint32 packs the flags into NZCVES order starting at bit 31, the same
// packed-word convention as the teacher's CPSR.ToUint32.
func (f Flags) ToUint32() uint32 {
	var result uint32
	if f.N {
		result |= 1 << 31
	}
	if f.Z {
		result |= 1 << 30
	}
	if f.C {
		result |= 1 << 29
	}
	if f.V {
		result |= 1 << 28
	}
	if f.E {
		result |= 1 << 27
	}
	if f.S {
		result |= 1 << 26
	}
	return result
}

// FromUint32 unpacks flags from the same layout ToUint32 writes.
func (f *Flags) FromUint32(value uint32) {
	f.N = value&(1<<31) != 0
	f.Z = value&(1<<30) != 0
	f.C = value&(1<<29) != 0
	f.V = value&(1<<28) != 0
	f.E = value&(1<<27) != 0
	f.S = value&(1<<26) != 0
}

// RegisterFile is the VM's 35-register state: PC, FP, SP, and R0..R31, each
// a tagged Value, plus the shared Flags register.
type RegisterFile struct {
	regs  [NumRegisters]Value
	Flags Flags
}

// NewRegisterFile returns a RegisterFile with every register zeroed to
// KindU64, matching the teacher's NewCPU zero-value construction.
func NewRegisterFile() *RegisterFile {
	rf := &RegisterFile{}
	for i := range rf.regs {
		rf.regs[i] = ZeroValue(KindU64)
	}
	return rf
}

// Reset zeroes every register and flag, mirroring CPU.Reset, then seats PC,
// FP, and SP per spec.md §4.7's heap-vector initialization.
func (rf *RegisterFile) Reset(pc, fp, sp uint32) {
	for i := range rf.regs {
		rf.regs[i] = ZeroValue(KindU64)
	}
	rf.Flags = Flags{}
	rf.regs[RegPC] = NewUint(KindU32, uint64(pc))
	rf.regs[RegFP] = NewUint(KindU32, uint64(fp))
	rf.regs[RegSP] = NewUint(KindU32, uint64(sp))
}

// Get returns the register at idx. idx must be in [0, NumRegisters); Get
// does not check it, and neither the assembler nor the terp range-checks
// operand register fields, so an out-of-range idx panics.
func (rf *RegisterFile) Get(idx int) Value { return rf.regs[idx] }

// Set stores v at idx.
func (rf *RegisterFile) Set(idx int, v Value) { rf.regs[idx] = v }

// PC, FP, SP read the three address registers as plain uint32 offsets into
// the heap, the form the terp's fetch loop and the heap accessors need.
func (rf *RegisterFile) PC() uint32 { return uint32(rf.regs[RegPC].Uint64()) }
func (rf *RegisterFile) FP() uint32 { return uint32(rf.regs[RegFP].Uint64()) }
func (rf *RegisterFile) SP() uint32 { return uint32(rf.regs[RegSP].Uint64()) }

func (rf *RegisterFile) SetPC(addr uint32) { rf.regs[RegPC] = NewUint(KindU32, uint64(addr)) }
func (rf *RegisterFile) SetFP(addr uint32) { rf.regs[RegFP] = NewUint(KindU32, uint64(addr)) }
func (rf *RegisterFile) SetSP(addr uint32) { rf.regs[RegSP] = NewUint(KindU32, uint64(addr)) }

// IncrementPC advances PC by n bytes, the generalization of the teacher's
// CPU.IncrementPC (there a fixed 4-byte ARM instruction width; here the
// caller supplies the decoded instruction's actual length, 8 or 16 bytes).
func (rf *RegisterFile) IncrementPC(n uint32) { rf.SetPC(rf.PC() + n) }

// Live returns every register's current name/value, used by the debugger
// bridge's "which registers are live" query.
func (rf *RegisterFile) Live() map[string]Value {
	out := make(map[string]Value, NumRegisters)
	for i := 0; i < NumRegisters; i++ {
		out[RegisterName(i)] = rf.regs[i]
	}
	return out
}
