package asmblk

import (
	"fmt"

	"github.com/basecode-lang/basecode-sub005/diag"
	"github.com/basecode-lang/basecode-sub005/source"
	"github.com/basecode-lang/basecode-sub005/vm"
)

// ControlFrameKind names the looping/branching construct a control-flow
// frame tracks labels for, per spec.md §4.8's "break, continue, return,
// fallthrough, next_element".
type ControlFrameKind int

const (
	FrameBreak ControlFrameKind = iota
	FrameContinue
	FrameReturn
	FrameFallthrough
	FrameNextElement
)

// ControlFrame binds one active construct's exit label, pushed when
// code-gen enters a loop/switch/proc body and popped on exit.
type ControlFrame struct {
	Kind  ControlFrameKind
	Label string
}

// RegClass distinguishes the integer and floating-point allocator
// free-lists, per spec.md §4.8's "a free-list per register class (integer
// vs float)".
type RegClass int

const (
	ClassInt RegClass = iota
	ClassFloat
)

// label is an internal bookkeeping record for one named assembly target.
type label struct {
	name    string
	defined bool
	offset  uint32
}

// Assembler accumulates InstructionBlocks and resolves them into a byte
// image plus a listing, grounded on the teacher's Encoder (a running
// current-address cursor plus a symbol table) generalized to spec.md
// §4.8's richer model: named blocks, a control-flow frame stack, a
// target-register stack, and a class-partitioned register allocator.
type Assembler struct {
	blocks  []*InstructionBlock
	current *InstructionBlock

	labels map[string]*label

	controlFlow []ControlFrame
	targetRegs  []int

	freeInt   []int
	freeFloat []int

	diags *diag.Bag
}

// NewAssembler returns an Assembler with one default block active and a
// register allocator seeded with R0..R31 split evenly across both classes,
// per vm.NumRegisters.
func NewAssembler(diags *diag.Bag) *Assembler {
	a := &Assembler{
		labels: make(map[string]*label),
		diags:  diags,
	}
	for i := 0; i < 32; i++ {
		if i%2 == 0 {
			a.freeInt = append(a.freeInt, vm.RegisterIndex(i))
		} else {
			a.freeFloat = append(a.freeFloat, vm.RegisterIndex(i))
		}
	}
	a.current = NewInstructionBlock("entry")
	a.blocks = append(a.blocks, a.current)
	return a
}

// NewBlock allocates a fresh InstructionBlock, makes it current, and
// returns it; the caller can UseBlock to switch back.
func (a *Assembler) NewBlock(name string) *InstructionBlock {
	b := NewInstructionBlock(name)
	a.blocks = append(a.blocks, b)
	a.current = b
	return b
}

// UseBlock makes b the active block code-gen appends to.
func (a *Assembler) UseBlock(b *InstructionBlock) { a.current = b }

// CurrentBlock returns the active block.
func (a *Assembler) CurrentBlock() *InstructionBlock { return a.current }

// MakeLabel declares name unique within this assembly run, attaching it to
// the current block at its current position.
func (a *Assembler) MakeLabel(name string, loc source.Location) (string, error) {
	if _, exists := a.labels[name]; exists {
		return "", fmt.Errorf("asmblk: label %q already declared", name)
	}
	a.labels[name] = &label{name: name}
	a.current.label(name, loc)
	return name, nil
}

// MakeLabelRef returns an Operand referencing name; the label need not yet
// be declared (forward references resolve in Pass 1).
func (a *Assembler) MakeLabelRef(name string) Operand {
	if _, exists := a.labels[name]; !exists {
		a.labels[name] = &label{name: name}
	}
	return LabelRef(name)
}

// PushControlFrame / PopControlFrame / CurrentControlFrame manage the
// control-flow frame stack `break`/`continue`/etc. code-gen consults to
// find the right exit label.
func (a *Assembler) PushControlFrame(f ControlFrame) { a.controlFlow = append(a.controlFlow, f) }

func (a *Assembler) PopControlFrame() (ControlFrame, bool) {
	if len(a.controlFlow) == 0 {
		return ControlFrame{}, false
	}
	f := a.controlFlow[len(a.controlFlow)-1]
	a.controlFlow = a.controlFlow[:len(a.controlFlow)-1]
	return f, true
}

func (a *Assembler) CurrentControlFrame(kind ControlFrameKind) (ControlFrame, bool) {
	for i := len(a.controlFlow) - 1; i >= 0; i-- {
		if a.controlFlow[i].Kind == kind {
			return a.controlFlow[i], true
		}
	}
	return ControlFrame{}, false
}

// PushTargetReg / PopTargetReg track the register an in-progress
// expression's result should land in, mirroring how a Pratt code-gen
// threads "where does this subexpression's value go" without passing it
// explicitly through every recursive call.
func (a *Assembler) PushTargetReg(reg int) { a.targetRegs = append(a.targetRegs, reg) }

func (a *Assembler) PopTargetReg() (int, bool) {
	if len(a.targetRegs) == 0 {
		return 0, false
	}
	reg := a.targetRegs[len(a.targetRegs)-1]
	a.targetRegs = a.targetRegs[:len(a.targetRegs)-1]
	return reg, true
}

// AllocateReg pops a free register of class from its free-list.
func (a *Assembler) AllocateReg(class RegClass) (int, bool) {
	switch class {
	case ClassFloat:
		if len(a.freeFloat) == 0 {
			return 0, false
		}
		reg := a.freeFloat[len(a.freeFloat)-1]
		a.freeFloat = a.freeFloat[:len(a.freeFloat)-1]
		return reg, true
	default:
		if len(a.freeInt) == 0 {
			return 0, false
		}
		reg := a.freeInt[len(a.freeInt)-1]
		a.freeInt = a.freeInt[:len(a.freeInt)-1]
		return reg, true
	}
}

// FreeReg returns reg to class's free-list.
func (a *Assembler) FreeReg(class RegClass, reg int) {
	switch class {
	case ClassFloat:
		a.freeFloat = append(a.freeFloat, reg)
	default:
		a.freeInt = append(a.freeInt, reg)
	}
}

// entryLen returns the byte length an entry contributes to the image,
// without requiring labels to already be resolved (Pass 1 only needs
// whether an instruction carries a continuation word, which depends only
// on its own operand kinds, not on label offsets).
func entryLen(e Entry) (uint32, error) {
	switch e.Kind {
	case EntryInstruction:
		encoded, err := Encode(e.Instruction, func(string) (uint32, bool) { return 0, true })
		if err != nil {
			return 0, err
		}
		return uint32(len(encoded)), nil
	case EntryData:
		return uint32(len(e.Data)), nil
	case EntryAlign:
		return 0, nil // resolved against the running offset in Pass 1
	default:
		return 0, nil
	}
}

// Assemble runs the two-pass assembly spec.md §4.8 describes: Pass 1 walks
// every block in declaration order computing each entry's byte offset and
// resolving label offsets; Pass 2 re-walks emitting encoded bytes (now with
// labels resolvable) into programStart-relative output, and building the
// parallel listing.
func (a *Assembler) Assemble(programStart uint32) (image []byte, listing Listing, err error) {
	offset := programStart
	for _, b := range a.blocks {
		for _, e := range b.Entries {
			switch e.Kind {
			case EntryLabel:
				a.labels[e.Label].defined = true
				a.labels[e.Label].offset = offset
			case EntryAlign:
				if e.Align > 0 {
					if rem := offset % e.Align; rem != 0 {
						offset += e.Align - rem
					}
				}
			default:
				n, encErr := entryLen(e)
				if encErr != nil {
					return nil, Listing{}, encErr
				}
				offset += n
			}
		}
	}

	for name, l := range a.labels {
		if !l.defined {
			return nil, Listing{}, &diag.Diagnostic{
				Code: diag.CodeUnmappedMemory, Severity: diag.Error,
				Message: fmt.Sprintf("label %q referenced but never defined", name),
			}
		}
	}

	resolve := func(name string) (uint32, bool) {
		l, ok := a.labels[name]
		if !ok || !l.defined {
			return 0, false
		}
		return l.offset, true
	}

	offset = programStart
	for _, b := range a.blocks {
		for _, e := range b.Entries {
			switch e.Kind {
			case EntryLabel:
				listing.Lines = append(listing.Lines, ListingLine{Address: offset, Source: e.Label, Type: LineLabel})
			case EntryComment:
				listing.Lines = append(listing.Lines, ListingLine{Address: offset, Source: e.Comment, Type: LineComment})
			case EntryAlign:
				if e.Align > 0 {
					if rem := offset % e.Align; rem != 0 {
						pad := e.Align - rem
						image = append(image, make([]byte, pad)...)
						offset += pad
					}
				}
				listing.Lines = append(listing.Lines, ListingLine{Address: offset, Type: LineDirective, Source: fmt.Sprintf("align %d", e.Align)})
			case EntryData:
				image = append(image, e.Data...)
				listing.Lines = append(listing.Lines, ListingLine{Address: offset, Type: LineDirective, Source: "data"})
				offset += uint32(len(e.Data))
			case EntryInstruction:
				encoded, encErr := Encode(e.Instruction, resolve)
				if encErr != nil {
					return nil, Listing{}, encErr
				}
				image = append(image, encoded...)
				listing.Lines = append(listing.Lines, ListingLine{
					Address: offset, Type: LineInstruction,
					Source: fmt.Sprintf("%s.%s", e.Instruction.Op, e.Instruction.Size),
				})
				offset += uint32(len(encoded))
			}
		}
	}

	return image, listing, nil
}
