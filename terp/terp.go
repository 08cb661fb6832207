package terp

import (
	"github.com/basecode-lang/basecode-sub005/asmblk"
	"github.com/basecode-lang/basecode-sub005/diag"
	"github.com/basecode-lang/basecode-sub005/vm"
)

// State is the Terp's coarse execution status, grounded on the teacher's
// ExecutionState (executor.go: StateRunning/StateHalted/StateBreakpoint/
// StateError), trimmed to the states the core owns — breakpoint handling
// belongs to debugbridge, which wraps Terp rather than the other way round.
type State int

const (
	StateRunning State = iota
	StateExited
	StateErrored
)

// StepResult reports what Step just did, the out-parameter spec.md §4.9's
// `step(result)` signature describes.
type StepResult struct {
	Instruction   asmblk.Instruction
	AddressBefore uint32
	Exited        bool
}

// Terp is the fetch-decode-execute engine: a register file, a heap, and a
// foreign-call bridge, grounded on the teacher's VM/executor.go dispatch
// loop generalized from ARM's condition-coded 4-byte instructions to
// spec.md §6's flat fixed-width opcode set.
type Terp struct {
	regs   *vm.RegisterFile
	heap   *vm.Heap
	bridge *vm.Bridge
	diags  *diag.Bag

	state     State
	initialSP uint32
}

// New allocates a Terp with a fresh heap and register file, per spec.md
// §4.7: "At construction, the Terp receives {heap_size, stack_size} and
// allocates a single contiguous heap."
func New(heapSize, stackSize uint32, diags *diag.Bag) *Terp {
	t := &Terp{
		regs:   vm.NewRegisterFile(),
		heap:   vm.NewHeap(heapSize, stackSize),
		bridge: vm.NewBridge(),
		diags:  diags,
	}
	t.seatRegisters()
	return t
}

func (t *Terp) seatRegisters() {
	t.regs.Reset(t.heap.ProgramStart, t.heap.TopOfStack, t.heap.TopOfStack)
	t.initialSP = t.heap.TopOfStack
	t.state = StateRunning
}

// Reset re-initializes the register file and the heap vectors without
// re-allocating the heap, per spec.md §4.9.
func (t *Terp) Reset() {
	t.heap.Reset()
	t.seatRegisters()
}

// LoadProgram writes image into the heap's program region and advances
// FreeSpaceStart past it.
func (t *Terp) LoadProgram(image []byte) error {
	if err := t.heap.WriteAt(t.heap.ProgramStart, image); err != nil {
		return err
	}
	t.heap.SetProgramLoaded(uint32(len(image)))
	return nil
}

// Bridge exposes the foreign-call table so a host can register trap
// handlers before running the program.
func (t *Terp) Bridge() *vm.Bridge { return t.bridge }

// RegisterFile, Heap, HeapVector, Read, and HasExited are the read-only
// accessors spec.md §4.9 names for the debugger bridge.
func (t *Terp) RegisterFile() *vm.RegisterFile { return t.regs }
func (t *Terp) Heap() *vm.Heap                 { return t.heap }

func (t *Terp) HeapVector(which vm.HeapVectorKind) uint32 { return t.heap.Vector(which) }

func (t *Terp) Read(size int, address uint32) ([]byte, error) { return t.heap.ReadAt(address, size) }

func (t *Terp) HasExited() bool { return t.state == StateExited }

// Errored reports whether the last Step left the machine in the errored
// state spec.md §4.9 describes for division-by-zero, invalid opcode,
// unmapped memory, stack under/overflow, and unknown trap failures.
func (t *Terp) Errored() bool { return t.state == StateErrored }

// Step decodes and executes exactly one instruction at PC.
func (t *Terp) Step(result *StepResult) error {
	pc := t.regs.PC()
	raw, err := t.heap.ReadAt(pc, 8)
	if err != nil {
		t.state = StateErrored
		return err
	}
	// Peek byte 1's continuation bit before deciding how much more to read.
	if raw[1]&(1<<2) != 0 {
		raw, err = t.heap.ReadAt(pc, 16)
		if err != nil {
			t.state = StateErrored
			return err
		}
	}
	instr, n, err := asmblk.Decode(raw)
	if err != nil {
		t.state = StateErrored
		return err
	}

	if result != nil {
		result.Instruction = instr
		result.AddressBefore = pc
	}

	advanced := false
	if err := t.execute(instr, pc, uint32(n), &advanced); err != nil {
		if t.state != StateExited {
			t.state = StateErrored
		}
		return err
	}
	if !advanced {
		t.regs.IncrementPC(uint32(n))
	}

	if result != nil {
		result.Exited = t.state == StateExited
	}
	return nil
}

// Run loops Step until the machine exits or errors.
func (t *Terp) Run(result *StepResult) error {
	for t.state == StateRunning {
		if err := t.Step(result); err != nil {
			return err
		}
	}
	return nil
}
