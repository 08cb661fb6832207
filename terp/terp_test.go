package terp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basecode-lang/basecode-sub005/asmblk"
	"github.com/basecode-lang/basecode-sub005/diag"
	"github.com/basecode-lang/basecode-sub005/source"
	"github.com/basecode-lang/basecode-sub005/vm"
)

// buildImage encodes instrs back to back, resolving any label operand via
// labels. Tests that need a forward reference (call/jump targets) compute
// the target address by hand since they know the layout.
func buildImage(t *testing.T, instrs []asmblk.Instruction, labels map[string]uint32) []byte {
	t.Helper()
	resolve := func(name string) (uint32, bool) {
		addr, ok := labels[name]
		return addr, ok
	}
	var image []byte
	for _, instr := range instrs {
		encoded, err := asmblk.Encode(instr, resolve)
		require.NoError(t, err)
		image = append(image, encoded...)
	}
	return image
}

func mustInstr(t *testing.T, op asmblk.Op, size asmblk.Size, dst asmblk.Operand, src []asmblk.Operand) asmblk.Instruction {
	t.Helper()
	instr, err := asmblk.NewInstruction(op, size, dst, src, source.Location{})
	require.NoError(t, err)
	return instr
}

func newTestTerp() *Terp {
	return New(4096, 1024, diag.NewBag())
}

func TestStepExecutesMoveAndAdd(t *testing.T) {
	term := newTestTerp()
	r0, r1, r2 := vm.RegisterIndex(0), vm.RegisterIndex(1), vm.RegisterIndex(2)

	instrs := []asmblk.Instruction{
		mustInstr(t, asmblk.OpMove, asmblk.SizeDWord, asmblk.Reg(r0), []asmblk.Operand{asmblk.Imm(5)}),
		mustInstr(t, asmblk.OpMove, asmblk.SizeDWord, asmblk.Reg(r1), []asmblk.Operand{asmblk.Imm(7)}),
		mustInstr(t, asmblk.OpAddI, asmblk.SizeDWord, asmblk.Reg(r2), []asmblk.Operand{asmblk.Reg(r0), asmblk.Reg(r1)}),
		mustInstr(t, asmblk.OpExit, asmblk.SizeQWord, asmblk.Operand{}, nil),
	}
	image := buildImage(t, instrs, nil)
	require.NoError(t, term.LoadProgram(image))

	require.NoError(t, term.Run(nil))
	assert.True(t, term.HasExited())
	assert.Equal(t, uint64(12), term.RegisterFile().Get(r2).Uint64())
}

func TestDivisionByZeroErrors(t *testing.T) {
	term := newTestTerp()
	r0, r2 := vm.RegisterIndex(0), vm.RegisterIndex(2)

	instrs := []asmblk.Instruction{
		mustInstr(t, asmblk.OpMove, asmblk.SizeDWord, asmblk.Reg(r0), []asmblk.Operand{asmblk.Imm(0)}),
		mustInstr(t, asmblk.OpDivI, asmblk.SizeDWord, asmblk.Reg(r2), []asmblk.Operand{asmblk.Reg(r0), asmblk.Reg(r0)}),
	}
	image := buildImage(t, instrs, nil)
	require.NoError(t, term.LoadProgram(image))

	err := term.Run(nil)
	require.Error(t, err)
	d, ok := err.(*diag.Diagnostic)
	require.True(t, ok)
	assert.Equal(t, diag.CodeDivisionByZero, d.Code)
	assert.True(t, term.Errored())
}

func TestStepReportsInvalidOpcode(t *testing.T) {
	term := newTestTerp()
	raw := []byte{255, 0, 0, 0, 0, 0, 4 << 3, 0}
	require.NoError(t, term.LoadProgram(raw))

	err := term.Step(nil)
	require.Error(t, err)
	d, ok := err.(*diag.Diagnostic)
	require.True(t, ok)
	assert.Equal(t, diag.CodeInvalidOpcode, d.Code)
}

func TestCallAndRetRoundTrip(t *testing.T) {
	term := newTestTerp()
	base := term.HeapVector(vm.VectorProgramStart)
	r3 := vm.RegisterIndex(3)

	// layout: [0] call sub (16 bytes) [16] exit (8 bytes) [24] sub: move r3,#99 (16 bytes) [40] ret (8 bytes)
	labels := map[string]uint32{"sub": base + 24}
	instrs := []asmblk.Instruction{
		mustInstr(t, asmblk.OpCall, asmblk.SizeDWord, asmblk.Operand{}, []asmblk.Operand{asmblk.LabelRef("sub")}),
		mustInstr(t, asmblk.OpExit, asmblk.SizeQWord, asmblk.Operand{}, nil),
		mustInstr(t, asmblk.OpMove, asmblk.SizeDWord, asmblk.Reg(r3), []asmblk.Operand{asmblk.Imm(99)}),
		mustInstr(t, asmblk.OpRet, asmblk.SizeQWord, asmblk.Operand{}, nil),
	}
	image := buildImage(t, instrs, labels)
	require.NoError(t, term.LoadProgram(image))

	require.NoError(t, term.Run(nil))
	assert.True(t, term.HasExited())
	assert.Equal(t, uint64(99), term.RegisterFile().Get(r3).Uint64())
}

func TestBranchOnCompareEqual(t *testing.T) {
	term := newTestTerp()
	base := term.HeapVector(vm.VectorProgramStart)
	r0, r1, r4 := vm.RegisterIndex(0), vm.RegisterIndex(1), vm.RegisterIndex(4)

	// move r0,#3 (16) / move r1,#3 (16) / cmp r0,r1 (8) / beq skip (16) / move r4,#1 (16) / skip: exit (8)
	labels := map[string]uint32{"skip": base + 16 + 16 + 8 + 16 + 16}
	instrs := []asmblk.Instruction{
		mustInstr(t, asmblk.OpMove, asmblk.SizeDWord, asmblk.Reg(r0), []asmblk.Operand{asmblk.Imm(3)}),
		mustInstr(t, asmblk.OpMove, asmblk.SizeDWord, asmblk.Reg(r1), []asmblk.Operand{asmblk.Imm(3)}),
		mustInstr(t, asmblk.OpCmpI, asmblk.SizeDWord, asmblk.Operand{}, []asmblk.Operand{asmblk.Reg(r0), asmblk.Reg(r1)}),
		mustInstr(t, asmblk.OpBeq, asmblk.SizeDWord, asmblk.Operand{}, []asmblk.Operand{asmblk.LabelRef("skip")}),
		mustInstr(t, asmblk.OpMove, asmblk.SizeDWord, asmblk.Reg(r4), []asmblk.Operand{asmblk.Imm(1)}),
		mustInstr(t, asmblk.OpExit, asmblk.SizeQWord, asmblk.Operand{}, nil),
	}
	image := buildImage(t, instrs, labels)
	require.NoError(t, term.LoadProgram(image))

	require.NoError(t, term.Run(nil))
	assert.Equal(t, uint64(0), term.RegisterFile().Get(r4).Uint64())
}

func TestTrapDispatchesToRegisteredHandler(t *testing.T) {
	term := newTestTerp()
	r0 := vm.RegisterIndex(0)
	term.Bridge().Register(1,
		vm.FFISignature{Symbol: "increment", Return: vm.FFIU64, Params: []vm.FFIType{vm.FFIU64}},
		func(args []vm.Value) (vm.Value, error) {
			return vm.NewUint(vm.KindU64, args[0].Uint64()+1), nil
		})

	instrs := []asmblk.Instruction{
		mustInstr(t, asmblk.OpMove, asmblk.SizeDWord, asmblk.Reg(r0), []asmblk.Operand{asmblk.Imm(21)}),
		mustInstr(t, asmblk.OpTrap, asmblk.SizeQWord, asmblk.Operand{}, []asmblk.Operand{asmblk.Imm(1)}),
		mustInstr(t, asmblk.OpExit, asmblk.SizeQWord, asmblk.Operand{}, nil),
	}
	image := buildImage(t, instrs, nil)
	require.NoError(t, term.LoadProgram(image))

	require.NoError(t, term.Run(nil))
	assert.Equal(t, uint64(22), term.RegisterFile().Get(r0).Uint64())
}

func TestTrapWithUnregisteredNumberErrors(t *testing.T) {
	term := newTestTerp()
	instrs := []asmblk.Instruction{
		mustInstr(t, asmblk.OpTrap, asmblk.SizeQWord, asmblk.Operand{}, []asmblk.Operand{asmblk.Imm(9)}),
	}
	image := buildImage(t, instrs, nil)
	require.NoError(t, term.LoadProgram(image))

	err := term.Run(nil)
	require.Error(t, err)
	d, ok := err.(*diag.Diagnostic)
	require.True(t, ok)
	assert.Equal(t, diag.CodeUnknownTrap, d.Code)
}

func TestExitWithUnbalancedStackReportsError(t *testing.T) {
	term := newTestTerp()
	instrs := []asmblk.Instruction{
		mustInstr(t, asmblk.OpPushI, asmblk.SizeQWord, asmblk.Operand{}, []asmblk.Operand{asmblk.Imm(42)}),
		mustInstr(t, asmblk.OpExit, asmblk.SizeQWord, asmblk.Operand{}, nil),
	}
	image := buildImage(t, instrs, nil)
	require.NoError(t, term.LoadProgram(image))

	err := term.Run(nil)
	require.Error(t, err)
	d, ok := err.(*diag.Diagnostic)
	require.True(t, ok)
	assert.Equal(t, diag.CodeUnbalancedStack, d.Code)
	assert.True(t, term.HasExited())
}

func TestPushPopRoundTripBalancesStack(t *testing.T) {
	term := newTestTerp()
	r5 := vm.RegisterIndex(5)
	instrs := []asmblk.Instruction{
		mustInstr(t, asmblk.OpPushI, asmblk.SizeQWord, asmblk.Operand{}, []asmblk.Operand{asmblk.Imm(77)}),
		mustInstr(t, asmblk.OpPopS, asmblk.SizeQWord, asmblk.Reg(r5), nil),
		mustInstr(t, asmblk.OpExit, asmblk.SizeQWord, asmblk.Operand{}, nil),
	}
	image := buildImage(t, instrs, nil)
	require.NoError(t, term.LoadProgram(image))

	require.NoError(t, term.Run(nil))
	assert.Equal(t, uint64(77), term.RegisterFile().Get(r5).Uint64())
}

func TestResetReseatsRegistersAndHeap(t *testing.T) {
	term := newTestTerp()
	r0 := vm.RegisterIndex(0)
	term.RegisterFile().Set(r0, vm.NewUint(vm.KindU64, 123))
	term.Reset()
	assert.Equal(t, uint64(0), term.RegisterFile().Get(r0).Uint64())
	assert.Equal(t, term.HeapVector(vm.VectorProgramStart), term.RegisterFile().PC())
}
