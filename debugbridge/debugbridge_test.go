package debugbridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basecode-lang/basecode-sub005/asmblk"
	"github.com/basecode-lang/basecode-sub005/diag"
	"github.com/basecode-lang/basecode-sub005/source"
	"github.com/basecode-lang/basecode-sub005/terp"
	"github.com/basecode-lang/basecode-sub005/vm"
)

func mustInstr(t *testing.T, op asmblk.Op, size asmblk.Size, dst asmblk.Operand, src []asmblk.Operand) asmblk.Instruction {
	t.Helper()
	instr, err := asmblk.NewInstruction(op, size, dst, src, source.Location{})
	require.NoError(t, err)
	return instr
}

func buildImage(t *testing.T, instrs []asmblk.Instruction) []byte {
	t.Helper()
	var image []byte
	for _, instr := range instrs {
		encoded, err := asmblk.Encode(instr, nil)
		require.NoError(t, err)
		image = append(image, encoded...)
	}
	return image
}

func newBridge(t *testing.T, instrs []asmblk.Instruction) *Bridge {
	t.Helper()
	term := terp.New(4096, 1024, diag.NewBag())
	require.NoError(t, term.LoadProgram(buildImage(t, instrs)))
	return New(term, &asmblk.Listing{})
}

func TestSimpleBreakpointHaltsBeforeExecution(t *testing.T) {
	r0 := vm.RegisterIndex(0)
	instrs := []asmblk.Instruction{
		mustInstr(t, asmblk.OpMove, asmblk.SizeDWord, asmblk.Reg(r0), []asmblk.Operand{asmblk.Imm(5)}),
		mustInstr(t, asmblk.OpExit, asmblk.SizeQWord, asmblk.Operand{}, nil),
	}
	b := newBridge(t, instrs)
	target := b.Terp.HeapVector(vm.VectorProgramStart)
	b.SetBreakpoint(Breakpoint{Address: target, Enabled: true, Kind: BreakpointSimple})

	require.NoError(t, b.Step(nil))
	assert.Equal(t, BridgeBroken, b.State())
	assert.Equal(t, uint64(0), b.Terp.RegisterFile().Get(r0).Uint64())
}

func TestRegisterEqualsBreakpointTripsOnValue(t *testing.T) {
	r0 := vm.RegisterIndex(0)
	instrs := []asmblk.Instruction{
		mustInstr(t, asmblk.OpMove, asmblk.SizeDWord, asmblk.Reg(r0), []asmblk.Operand{asmblk.Imm(5)}),
		mustInstr(t, asmblk.OpMove, asmblk.SizeDWord, asmblk.Reg(r0), []asmblk.Operand{asmblk.Imm(9)}),
		mustInstr(t, asmblk.OpExit, asmblk.SizeQWord, asmblk.Operand{}, nil),
	}
	b := newBridge(t, instrs)
	base := b.Terp.HeapVector(vm.VectorProgramStart)
	secondInstrAddr := base + 16 // first move carries an immediate, 16 bytes wide

	b.SetBreakpoint(Breakpoint{
		Address: secondInstrAddr, Enabled: true,
		Kind: BreakpointRegisterEquals, Register: "R0", EqualsValue: 5,
	})

	require.NoError(t, b.Run(nil))
	assert.Equal(t, BridgeBroken, b.State())
	assert.Equal(t, uint64(5), b.Terp.RegisterFile().Get(r0).Uint64())
}

func TestRunStopsWhenMachineExits(t *testing.T) {
	instrs := []asmblk.Instruction{
		mustInstr(t, asmblk.OpExit, asmblk.SizeQWord, asmblk.Operand{}, nil),
	}
	b := newBridge(t, instrs)
	require.NoError(t, b.Run(nil))
	assert.True(t, b.Terp.HasExited())
}

func TestLiveRegistersReflectsCurrentState(t *testing.T) {
	r2 := vm.RegisterIndex(2)
	instrs := []asmblk.Instruction{
		mustInstr(t, asmblk.OpMove, asmblk.SizeDWord, asmblk.Reg(r2), []asmblk.Operand{asmblk.Imm(41)}),
		mustInstr(t, asmblk.OpExit, asmblk.SizeQWord, asmblk.Operand{}, nil),
	}
	b := newBridge(t, instrs)
	require.NoError(t, b.Run(nil))

	live := b.LiveRegisters()
	assert.Equal(t, uint64(41), live["R2"].Uint64())
}

func TestByteAtReadsLoadedProgram(t *testing.T) {
	instrs := []asmblk.Instruction{
		mustInstr(t, asmblk.OpExit, asmblk.SizeQWord, asmblk.Operand{}, nil),
	}
	b := newBridge(t, instrs)
	base := b.Terp.HeapVector(vm.VectorProgramStart)

	byteVal, err := b.ByteAt(base)
	require.NoError(t, err)
	assert.Equal(t, byte(asmblk.OpExit), byteVal)
}

func TestClearBreakpointRemovesIt(t *testing.T) {
	instrs := []asmblk.Instruction{
		mustInstr(t, asmblk.OpExit, asmblk.SizeQWord, asmblk.Operand{}, nil),
	}
	b := newBridge(t, instrs)
	base := b.Terp.HeapVector(vm.VectorProgramStart)
	b.SetBreakpoint(Breakpoint{Address: base, Enabled: true, Kind: BreakpointSimple})
	assert.Len(t, b.Breakpoints(), 1)

	b.ClearBreakpoint(base)
	assert.Empty(t, b.Breakpoints())
}
