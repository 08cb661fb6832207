package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeapVectorLayout(t *testing.T) {
	h := NewHeap(1024, 256)
	assert.Equal(t, uint32(headerSize), h.ProgramStart)
	assert.Equal(t, h.ProgramStart+1024, h.TopOfHeap)
	assert.Equal(t, h.ProgramStart, h.FreeSpaceStart)
	assert.Equal(t, h.TopOfHeap, h.BottomOfStack)
	assert.Equal(t, h.TopOfHeap+256, h.TopOfStack)
	assert.Equal(t, h.Size(), h.TopOfStack)
}

func TestHeapVectorsReadableFromBytesHeader(t *testing.T) {
	h := NewHeap(64, 32)
	got, err := h.ReadAt(0, 4)
	require.NoError(t, err)
	assert.Equal(t, h.ProgramStart, leUint32(got))
}

func leUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func TestHeapReadWriteRoundTrip(t *testing.T) {
	h := NewHeap(64, 32)
	require.NoError(t, h.WriteAt(h.ProgramStart, []byte{1, 2, 3, 4}))
	got, err := h.ReadAt(h.ProgramStart, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, got)
}

func TestHeapReadPastEndFails(t *testing.T) {
	h := NewHeap(16, 16)
	_, err := h.ReadAt(h.Size()-2, 8)
	assert.Error(t, err)
}

func TestHeapResetPreservesSizeAndVectors(t *testing.T) {
	h := NewHeap(128, 64)
	require.NoError(t, h.WriteAt(h.ProgramStart, []byte{0xFF}))
	h.SetProgramLoaded(8)
	h.Reset()
	assert.Equal(t, h.ProgramStart, h.FreeSpaceStart)
	got, err := h.ReadAt(h.ProgramStart, 1)
	require.NoError(t, err)
	assert.Equal(t, byte(0), got[0])
}

func TestRegisterFileResetSeatsPCFPSP(t *testing.T) {
	h := NewHeap(1024, 256)
	rf := NewRegisterFile()
	rf.Reset(h.ProgramStart, h.TopOfStack, h.TopOfStack)
	assert.Equal(t, h.ProgramStart, rf.PC())
	assert.Equal(t, h.TopOfStack, rf.FP())
	assert.Equal(t, h.TopOfStack, rf.SP())
}

func TestRegisterGetSetRoundTrip(t *testing.T) {
	rf := NewRegisterFile()
	rf.Set(RegisterIndex(3), NewInt(KindI64, -7))
	got := rf.Get(RegisterIndex(3))
	assert.Equal(t, int64(-7), got.Int64())
	assert.Equal(t, "R3", RegisterName(RegisterIndex(3)))
}

func TestFlagsRoundTripThroughUint32(t *testing.T) {
	f := Flags{Z: true, S: true}
	var g Flags
	g.FromUint32(f.ToUint32())
	assert.Equal(t, f, g)
}

func TestFFIBridgeCallsRegisteredHandler(t *testing.T) {
	b := NewBridge()
	sig := FFISignature{Symbol: "double_it", Return: FFII64, Params: []FFIType{FFII64}}
	b.Register(1, sig, func(args []Value) (Value, error) {
		return NewInt(KindI64, args[0].Int64()*2), nil
	})
	out, err := b.Call(1, []Value{NewInt(KindI64, 21)})
	require.NoError(t, err)
	assert.Equal(t, int64(42), out.Int64())
}

func TestFFIBridgeUnregisteredTrapFails(t *testing.T) {
	b := NewBridge()
	_, err := b.Call(99, nil)
	assert.Error(t, err)
}
