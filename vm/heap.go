package vm

import (
	"encoding/binary"
	"fmt"

	"github.com/basecode-lang/basecode-sub005/diag"
)

// headerSize is the byte width of the five reserved 32-bit heap vectors
// (program_start, top_of_heap, free_space_start, bottom_of_stack,
// top_of_stack), stored at the head of the heap per spec.md §4.7.
const headerSize = 5 * 4

// HeapVectorKind names one of the five reserved heap-head vectors.
type HeapVectorKind int

const (
	VectorProgramStart HeapVectorKind = iota
	VectorTopOfHeap
	VectorFreeSpaceStart
	VectorBottomOfStack
	VectorTopOfStack
)

// Heap is the Terp's single contiguous byte store: a small header of
// reserved vectors, followed by the program/heap region, followed by the
// stack region (which grows down from TopOfStack). Generalized from the
// teacher's multi-segment Memory (memory.go's code/data/heap/stack
// MemorySegments) into one allocation, since spec.md §4.7 calls for "a
// single contiguous heap" rather than separately-permissioned segments.
type Heap struct {
	Bytes []byte

	ProgramStart   uint32
	TopOfHeap      uint32
	FreeSpaceStart uint32
	BottomOfStack  uint32
	TopOfStack     uint32
}

// NewHeap allocates heapSize bytes for program+heap and stackSize bytes for
// the stack, laid out contiguously after the reserved vector header, and
// seeds the header with the resulting vectors.
func NewHeap(heapSize, stackSize uint32) *Heap {
	h := &Heap{Bytes: make([]byte, headerSize+heapSize+stackSize)}
	h.layout(heapSize, stackSize)
	return h
}

func (h *Heap) layout(heapSize, stackSize uint32) {
	h.ProgramStart = headerSize
	h.TopOfHeap = headerSize + heapSize
	h.FreeSpaceStart = h.ProgramStart
	h.BottomOfStack = h.TopOfHeap
	h.TopOfStack = h.TopOfHeap + stackSize
	h.writeVectors()
}

func (h *Heap) writeVectors() {
	binary.LittleEndian.PutUint32(h.Bytes[0:4], h.ProgramStart)
	binary.LittleEndian.PutUint32(h.Bytes[4:8], h.TopOfHeap)
	binary.LittleEndian.PutUint32(h.Bytes[8:12], h.FreeSpaceStart)
	binary.LittleEndian.PutUint32(h.Bytes[12:16], h.BottomOfStack)
	binary.LittleEndian.PutUint32(h.Bytes[16:20], h.TopOfStack)
}

// Vector returns the current value of one reserved heap vector, backing the
// terp's read-only heap_vector(which) accessor (spec.md §4.9).
func (h *Heap) Vector(which HeapVectorKind) uint32 {
	switch which {
	case VectorProgramStart:
		return h.ProgramStart
	case VectorTopOfHeap:
		return h.TopOfHeap
	case VectorFreeSpaceStart:
		return h.FreeSpaceStart
	case VectorBottomOfStack:
		return h.BottomOfStack
	case VectorTopOfStack:
		return h.TopOfStack
	default:
		return 0
	}
}

// SetProgramLoaded advances FreeSpaceStart past a just-assembled program
// image of size bytes, called by terp.Terp.LoadProgram after it writes
// the assembled image into the program region (spec.md §4.8).
func (h *Heap) SetProgramLoaded(size uint32) {
	h.FreeSpaceStart = h.ProgramStart + size
	h.writeVectors()
}

// Reset zeroes the heap's contents and re-seats the reserved vectors
// without reallocating the backing array, matching the teacher's
// segment-preserving reset intent and spec.md §4.9's "re-initializes ...
// without re-allocating the heap".
func (h *Heap) Reset() {
	heapSize := h.TopOfHeap - h.ProgramStart
	stackSize := h.TopOfStack - h.BottomOfStack
	for i := range h.Bytes {
		h.Bytes[i] = 0
	}
	h.layout(heapSize, stackSize)
}

// Size returns the heap's total byte extent.
func (h *Heap) Size() uint32 { return uint32(len(h.Bytes)) }

// ReadAt returns a copy of size bytes starting at address, failing with
// CodeUnmappedMemory if the range falls outside the heap.
func (h *Heap) ReadAt(address uint32, size int) ([]byte, error) {
	if size < 0 || uint64(address)+uint64(size) > uint64(len(h.Bytes)) {
		return nil, &diag.Diagnostic{
			Code: diag.CodeUnmappedMemory, Severity: diag.Error,
			Message: fmt.Sprintf("unmapped memory read at address 0x%08X (size %d)", address, size),
		}
	}
	out := make([]byte, size)
	copy(out, h.Bytes[address:uint64(address)+uint64(size)])
	return out, nil
}

// WriteAt stores data at address, failing with CodeUnmappedMemory if the
// range falls outside the heap.
func (h *Heap) WriteAt(address uint32, data []byte) error {
	if uint64(address)+uint64(len(data)) > uint64(len(h.Bytes)) {
		return &diag.Diagnostic{
			Code: diag.CodeUnmappedMemory, Severity: diag.Error,
			Message: fmt.Sprintf("unmapped memory write at address 0x%08X (size %d)", address, len(data)),
		}
	}
	copy(h.Bytes[address:], data)
	return nil
}
