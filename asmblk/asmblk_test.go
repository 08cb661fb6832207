package asmblk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basecode-lang/basecode-sub005/diag"
	"github.com/basecode-lang/basecode-sub005/source"
)

func TestEncodeDecodeRegisterOnlyRoundTrip(t *testing.T) {
	instr, err := NewInstruction(OpAddI, SizeQWord, Reg(2), []Operand{Reg(0), Reg(1)}, source.Location{})
	require.NoError(t, err)
	encoded, err := Encode(instr, nil)
	require.NoError(t, err)
	assert.Len(t, encoded, 8)

	decoded, n, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, OpAddI, decoded.Op)
	assert.Equal(t, 2, decoded.Dst.Reg)
	assert.Equal(t, 0, decoded.Src[0].Reg)
	assert.Equal(t, 1, decoded.Src[1].Reg)
}

func TestEncodeDecodeImmediateUsesContinuationWord(t *testing.T) {
	instr, err := NewInstruction(OpMove, SizeQWord, Reg(0), []Operand{Imm(0xDEADBEEF)}, source.Location{})
	require.NoError(t, err)
	encoded, err := Encode(instr, nil)
	require.NoError(t, err)
	assert.Len(t, encoded, 16)

	decoded, n, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, 16, n)
	assert.Equal(t, uint64(0xDEADBEEF), decoded.Src[0].Imm)
}

func TestNewInstructionRejectsArityMismatch(t *testing.T) {
	_, err := NewInstruction(OpAddI, SizeDWord, Reg(0), []Operand{Reg(1)}, source.Location{})
	assert.Error(t, err)
}

func TestAssembleResolvesForwardLabel(t *testing.T) {
	a := NewAssembler(diag.NewBag())
	require.NoError(t, a.CurrentBlock().Jump("done", source.Location{}))
	_, err := a.MakeLabel("done", source.Location{})
	require.NoError(t, err)

	image, listing, err := a.Assemble(0)
	require.NoError(t, err)
	assert.NotEmpty(t, image)
	assert.NotEmpty(t, listing.Lines)

	decoded, _, err := Decode(image)
	require.NoError(t, err)
	assert.Equal(t, OpJump, decoded.Op)
	assert.Equal(t, uint64(16), decoded.Src[0].Imm) // jump carries a label operand, so it's 16 bytes; the label sits right after it
}

func TestAssembleFailsOnUndefinedLabel(t *testing.T) {
	a := NewAssembler(diag.NewBag())
	require.NoError(t, a.CurrentBlock().Jump("nowhere", source.Location{}))
	_, _, err := a.Assemble(0)
	assert.Error(t, err)
}

func TestRegisterAllocatorFreeListRoundTrip(t *testing.T) {
	a := NewAssembler(diag.NewBag())
	reg, ok := a.AllocateReg(ClassInt)
	require.True(t, ok)
	a.FreeReg(ClassInt, reg)
	reg2, ok := a.AllocateReg(ClassInt)
	require.True(t, ok)
	assert.Equal(t, reg, reg2)
}

func TestControlFrameStackLIFO(t *testing.T) {
	a := NewAssembler(diag.NewBag())
	a.PushControlFrame(ControlFrame{Kind: FrameBreak, Label: "outer"})
	a.PushControlFrame(ControlFrame{Kind: FrameBreak, Label: "inner"})
	f, ok := a.PopControlFrame()
	require.True(t, ok)
	assert.Equal(t, "inner", f.Label)
}

func TestListingLineForAddress(t *testing.T) {
	a := NewAssembler(diag.NewBag())
	require.NoError(t, a.CurrentBlock().Jump("done", source.Location{}))
	_, err := a.MakeLabel("done", source.Location{})
	require.NoError(t, err)
	_, listing, err := a.Assemble(0)
	require.NoError(t, err)

	line, ok := listing.LineForAddress(0)
	require.True(t, ok)
	assert.Equal(t, LineInstruction, line.Type)
}
