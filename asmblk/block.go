package asmblk

import "github.com/basecode-lang/basecode-sub005/source"

// EntryKind tags one ordered element of an InstructionBlock, per spec.md
// §3's "each entry is either an instruction, a label, a comment, an align
// directive, or a data directive".
type EntryKind int

const (
	EntryInstruction EntryKind = iota
	EntryLabel
	EntryComment
	EntryAlign
	EntryData
)

// Entry is one InstructionBlock element.
type Entry struct {
	Kind        EntryKind
	Instruction Instruction
	Label       string
	Comment     string
	Align       uint32
	Data        []byte
	Loc         source.Location
}

// InstructionBlock is an ordered sequence of Entries sharing one label
// namespace-of-reference, grounded on the teacher's per-function machine
// code accumulation in encoder.go generalized from "flat encoded byte
// slice" to "entries the assembler resolves in two passes" since spec.md
// §3 requires label/align/data/comment entries alongside instructions.
type InstructionBlock struct {
	Name    string
	Entries []Entry
}

func NewInstructionBlock(name string) *InstructionBlock {
	return &InstructionBlock{Name: name}
}

func (b *InstructionBlock) append(e Entry) { b.Entries = append(b.Entries, e) }

// label attaches a label entry at the block's current position.
func (b *InstructionBlock) label(name string, loc source.Location) {
	b.append(Entry{Kind: EntryLabel, Label: name, Loc: loc})
}

// comment attaches a comment entry, surfaced only in the listing.
func (b *InstructionBlock) comment(text string, loc source.Location) {
	b.append(Entry{Kind: EntryComment, Comment: text, Loc: loc})
}

// alignTo pads the block to the next multiple of n bytes.
func (b *InstructionBlock) alignTo(n uint32, loc source.Location) {
	b.append(Entry{Kind: EntryAlign, Align: n, Loc: loc})
}

// rawData appends a literal data entry (for data directives spec.md §3
// names alongside instructions).
func (b *InstructionBlock) rawData(data []byte, loc source.Location) {
	b.append(Entry{Kind: EntryData, Data: data, Loc: loc})
}

func (b *InstructionBlock) instr(instr Instruction) {
	b.append(Entry{Kind: EntryInstruction, Instruction: instr, Loc: instr.Loc})
}

// Move, Load, Store, Jump, Push, and Pop are the convenience emitters
// spec.md §4.8 names explicitly on "current_block": `move`, `load`,
// `store`, `bz` (zero-flag branch, generalized to Beq below), `jump_direct`,
// `push`, `pop`.
func (b *InstructionBlock) Move(size Size, dst Operand, src Operand, loc source.Location) error {
	instr, err := NewInstruction(OpMove, size, dst, []Operand{src}, loc)
	if err != nil {
		return err
	}
	b.instr(instr)
	return nil
}

func (b *InstructionBlock) Load(size Size, dst Operand, addr Operand, loc source.Location) error {
	instr, err := NewInstruction(OpLoad, size, dst, []Operand{addr}, loc)
	if err != nil {
		return err
	}
	b.instr(instr)
	return nil
}

func (b *InstructionBlock) Store(size Size, addr, value Operand, loc source.Location) error {
	instr, err := NewInstruction(OpStore, size, Operand{}, []Operand{addr, value}, loc)
	if err != nil {
		return err
	}
	b.instr(instr)
	return nil
}

func (b *InstructionBlock) Jump(target string, loc source.Location) error {
	instr, err := NewInstruction(OpJump, SizeDWord, Operand{}, []Operand{LabelRef(target)}, loc)
	if err != nil {
		return err
	}
	b.instr(instr)
	return nil
}

func (b *InstructionBlock) BranchIfZero(target string, loc source.Location) error {
	instr, err := NewInstruction(OpBeq, SizeDWord, Operand{}, []Operand{LabelRef(target)}, loc)
	if err != nil {
		return err
	}
	b.instr(instr)
	return nil
}

func (b *InstructionBlock) Push(size Size, value Operand, loc source.Location) error {
	op := OpPushS
	if value.Kind == OperandImmediate {
		op = OpPushI
	}
	instr, err := NewInstruction(op, size, Operand{}, []Operand{value}, loc)
	if err != nil {
		return err
	}
	b.instr(instr)
	return nil
}

func (b *InstructionBlock) Pop(size Size, dst Operand, loc source.Location) error {
	instr, err := NewInstruction(OpPopS, size, dst, nil, loc)
	if err != nil {
		return err
	}
	b.instr(instr)
	return nil
}
