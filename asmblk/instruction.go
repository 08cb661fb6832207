package asmblk

import (
	"encoding/binary"
	"fmt"

	"github.com/basecode-lang/basecode-sub005/diag"
	"github.com/basecode-lang/basecode-sub005/source"
)

// Op is a base operation mnemonic (the size suffix is carried separately in
// Size), enumerating spec.md §6's complete opcode list.
type Op uint8

const (
	OpNop Op = iota
	OpLoad
	OpStore
	OpMove
	OpMoveZ
	OpMoveS
	OpAddI
	OpAddIS
	OpAddF
	OpSubI
	OpSubIS
	OpSubF
	OpMulI
	OpMulIS
	OpMulF
	OpDivI
	OpDivIS
	OpDivF
	OpModI
	OpModIS
	OpMAddI
	OpMAddIS
	OpMAddF
	OpNegIS
	OpNegF
	OpShr
	OpShl
	OpRor
	OpRol
	OpAnd
	OpOr
	OpXor
	OpNot
	OpPushI
	OpPushS
	OpPushM
	OpPopS
	OpPopM
	OpCall
	OpRet
	OpTrap
	OpJump
	OpBeq
	OpBne
	OpBg
	OpBge
	OpBl
	OpBle
	OpBos
	OpBoc
	OpBcs
	OpBcc
	OpSeq
	OpSne
	OpSg
	OpSge
	OpSl
	OpSle
	OpSos
	OpSoc
	OpScs
	OpScc
	OpCmpI
	OpCmpIS
	OpCmpF
	OpBis
	OpBic
	OpExit
)

var opNames = map[Op]string{
	OpNop: "nop", OpLoad: "load", OpStore: "store", OpMove: "move",
	OpMoveZ: "movez", OpMoveS: "moves", OpAddI: "addi", OpAddIS: "addis",
	OpAddF: "addf", OpSubI: "subi", OpSubIS: "subis", OpSubF: "subf",
	OpMulI: "muli", OpMulIS: "mulis", OpMulF: "mulf", OpDivI: "divi",
	OpDivIS: "divis", OpDivF: "divf", OpModI: "modi", OpModIS: "modis",
	OpMAddI: "maddi", OpMAddIS: "maddis", OpMAddF: "maddf", OpNegIS: "negis",
	OpNegF: "negf", OpShr: "shr", OpShl: "shl", OpRor: "ror", OpRol: "rol",
	OpAnd: "and", OpOr: "or", OpXor: "xor", OpNot: "not",
	OpPushI: "pushi", OpPushS: "pushs", OpPushM: "pushm",
	OpPopS: "pops", OpPopM: "popm",
	OpCall: "call", OpRet: "ret", OpTrap: "trap", OpJump: "jump",
	OpBeq: "beq", OpBne: "bne", OpBg: "bg", OpBge: "bge", OpBl: "bl", OpBle: "ble",
	OpBos: "bos", OpBoc: "boc", OpBcs: "bcs", OpBcc: "bcc",
	OpSeq: "seq", OpSne: "sne", OpSg: "sg", OpSge: "sge", OpSl: "sl", OpSle: "sle",
	OpSos: "sos", OpSoc: "soc", OpScs: "scs", OpScc: "scc",
	OpCmpI: "cmp", OpCmpIS: "cmps", OpCmpF: "cmpf",
	OpBis: "bis", OpBic: "bic", OpExit: "exit",
}

func (op Op) String() string {
	if n, ok := opNames[op]; ok {
		return n
	}
	return fmt.Sprintf("op(%d)", op)
}

// Size selects the operand width, per spec.md §6's b/w/dw/qw suffixes.
type Size uint8

const (
	SizeByte Size = iota
	SizeWord
	SizeDWord
	SizeQWord
)

func (s Size) String() string {
	switch s {
	case SizeByte:
		return "b"
	case SizeWord:
		return "w"
	case SizeDWord:
		return "dw"
	case SizeQWord:
		return "qw"
	default:
		return "?"
	}
}

// Width returns the byte width of s.
func (s Size) Width() int {
	switch s {
	case SizeByte:
		return 1
	case SizeWord:
		return 2
	case SizeDWord:
		return 4
	case SizeQWord:
		return 8
	default:
		return 0
	}
}

// OperandKind tags one instruction operand.
type OperandKind uint8

const (
	OperandNone OperandKind = iota
	OperandRegister
	OperandImmediate
	OperandLabel
)

// Operand is one instruction operand: a register index, an immediate value,
// or an unresolved label reference (resolved to a byte offset by the
// assembler's Pass 1).
type Operand struct {
	Kind  OperandKind
	Reg   int
	Imm   uint64
	Label string
}

func Reg(idx int) Operand                { return Operand{Kind: OperandRegister, Reg: idx} }
func Imm(v uint64) Operand                { return Operand{Kind: OperandImmediate, Imm: v} }
func LabelRef(name string) Operand        { return Operand{Kind: OperandLabel, Label: name} }

// Instruction is one decoded/encodable VM instruction. Shape (how many of
// Dst/Src are meaningful) is determined by Op via shapeOf, mirroring a real
// decoder that infers operand count from the opcode rather than storing it
// redundantly.
type Instruction struct {
	Op   Op
	Size Size
	Dst  Operand
	Src  []Operand
	Loc  source.Location
}

// shape describes how many operand slots an Op uses and whether the first
// (Dst) slot is meaningful.
type shape struct {
	hasDst bool
	numSrc int
}

func shapeOf(op Op) shape {
	switch op {
	case OpNop, OpRet, OpExit:
		return shape{false, 0}
	case OpStore:
		return shape{false, 2} // address, value
	case OpLoad, OpMove, OpMoveZ, OpMoveS, OpNegIS, OpNegF, OpNot:
		return shape{true, 1}
	case OpAddI, OpAddIS, OpAddF, OpSubI, OpSubIS, OpSubF,
		OpMulI, OpMulIS, OpMulF, OpDivI, OpDivIS, OpDivF,
		OpModI, OpModIS, OpShr, OpShl, OpRor, OpRol, OpAnd, OpOr, OpXor:
		return shape{true, 2}
	case OpMAddI, OpMAddIS, OpMAddF:
		return shape{true, 3}
	case OpPushI, OpPushS, OpTrap, OpJump,
		OpBeq, OpBne, OpBg, OpBge, OpBl, OpBle, OpBos, OpBoc, OpBcs, OpBcc,
		OpBis, OpBic, OpCall:
		return shape{false, 1}
	case OpPushM, OpPopM:
		return shape{false, 4} // up to 4 registers; unused slots are OperandNone
	case OpPopS, OpSeq, OpSne, OpSg, OpSge, OpSl, OpSle, OpSos, OpSoc, OpScs, OpScc:
		return shape{true, 0}
	case OpCmpI, OpCmpIS, OpCmpF:
		return shape{false, 2}
	default:
		return shape{false, 0}
	}
}

// NewInstruction validates operand arity against op's shape before
// returning the Instruction, catching block-builder mistakes at assembly
// time rather than silently truncating operands during encode.
func NewInstruction(op Op, size Size, dst Operand, src []Operand, loc source.Location) (Instruction, error) {
	sh := shapeOf(op)
	if sh.hasDst && dst.Kind == OperandNone {
		return Instruction{}, fmt.Errorf("asmblk: %s requires a destination operand", op)
	}
	if !sh.hasDst && dst.Kind != OperandNone {
		return Instruction{}, fmt.Errorf("asmblk: %s takes no destination operand", op)
	}
	if len(src) > sh.numSrc {
		return Instruction{}, fmt.Errorf("asmblk: %s takes at most %d source operands, got %d", op, sh.numSrc, len(src))
	}
	if len(src) < sh.numSrc && op != OpPushM && op != OpPopM {
		return Instruction{}, fmt.Errorf("asmblk: %s takes %d source operands, got %d", op, sh.numSrc, len(src))
	}
	return Instruction{Op: op, Size: size, Dst: dst, Src: src, Loc: loc}, nil
}

// special reports whether instr needs a continuation word: exactly one
// operand across Dst+Src may carry non-register data (immediate or label);
// when it does, its 64-bit payload lives in a second 8-byte word, the same
// continuation-word mechanism spec.md §4.8 specifies for `move.qw`'s 64-bit
// immediate, generalized here to every immediate/label operand rather than
// qw moves alone.
func (instr Instruction) special() (slot int, op Operand, ok bool) {
	slots := append([]Operand{instr.Dst}, instr.Src...)
	for i, o := range slots {
		if o.Kind == OperandImmediate || o.Kind == OperandLabel {
			return i, o, true
		}
	}
	return 0, Operand{}, false
}

func (instr Instruction) registerSlots() [4]int {
	var regs [4]int
	slots := append([]Operand{instr.Dst}, instr.Src...)
	specialSlot, _, hasSpecial := instr.special()
	for i := 0; i < 4 && i < len(slots); i++ {
		if hasSpecial && i == specialSlot {
			continue
		}
		if slots[i].Kind == OperandRegister {
			regs[i] = slots[i].Reg
		}
	}
	return regs
}

// Encode serializes instr into 8 bytes, or 16 when it carries an
// immediate/label payload. resolveLabel must return the byte offset for a
// referenced label name. Pass 1's size-only accounting passes a resolver
// that maps every label to 0; a nil resolveLabel also encodes a label
// payload of 0.
func Encode(instr Instruction, resolveLabel func(name string) (uint32, bool)) ([]byte, error) {
	specialSlot, specialOp, hasSpecial := instr.special()
	regs := instr.registerSlots()

	buf := make([]byte, 8)
	buf[0] = byte(instr.Op)
	flags := byte(instr.Size) & 0x3
	if hasSpecial {
		flags |= 1 << 2
	}
	buf[1] = flags
	buf[2] = byte(regs[0])
	buf[3] = byte(regs[1])
	buf[4] = byte(regs[2])
	buf[5] = byte(regs[3])

	if !hasSpecial {
		buf[6] = 4 << 3 // slot=4 (none), kind=0
		return buf, nil
	}

	var kind byte
	var payload uint64
	switch specialOp.Kind {
	case OperandImmediate:
		kind = 1
		payload = specialOp.Imm
	case OperandLabel:
		kind = 2
		if resolveLabel != nil {
			offset, ok := resolveLabel(specialOp.Label)
			if !ok {
				return nil, &diag.Diagnostic{
					Code: diag.CodeUnmappedMemory, Severity: diag.Error,
					Message: fmt.Sprintf("unresolved label reference %q", specialOp.Label),
				}
			}
			payload = uint64(offset)
		}
	}
	buf[6] = byte(specialSlot) | (kind << 3)

	cont := make([]byte, 8)
	binary.LittleEndian.PutUint64(cont, payload)
	return append(buf, cont...), nil
}

// Decode reconstructs an Instruction from its encoded bytes. data must be
// at least 8 bytes; when byte 1's continuation bit is set, data must hold
// at least 16.
func Decode(data []byte) (Instruction, int, error) {
	if len(data) < 8 {
		return Instruction{}, 0, &diag.Diagnostic{
			Code: diag.CodeInvalidOpcode, Severity: diag.Error,
			Message: "instruction fetch truncated before 8 bytes",
		}
	}
	op := Op(data[0])
	flags := data[1]
	size := Size(flags & 0x3)
	hasSpecial := flags&(1<<2) != 0

	sh := shapeOf(op)
	regs := [4]byte{data[2], data[3], data[4], data[5]}
	slotByte := data[6]
	specialSlot := int(slotByte & 0x7)
	specialKind := (slotByte >> 3) & 0x3

	total := 8
	var payload uint64
	if hasSpecial {
		if len(data) < 16 {
			return Instruction{}, 0, &diag.Diagnostic{
				Code: diag.CodeInvalidOpcode, Severity: diag.Error,
				Message: "instruction continuation word truncated",
			}
		}
		payload = binary.LittleEndian.Uint64(data[8:16])
		total = 16
	}

	slots := make([]Operand, 0, 1+sh.numSrc)
	for i := 0; i < 1+sh.numSrc; i++ {
		if hasSpecial && i == specialSlot {
			switch specialKind {
			case 1:
				slots = append(slots, Imm(payload))
			case 2:
				slots = append(slots, Operand{Kind: OperandLabel, Imm: payload})
			default:
				slots = append(slots, Reg(int(regs[i])))
			}
			continue
		}
		slots = append(slots, Reg(int(regs[i])))
	}

	instr := Instruction{Op: op, Size: size}
	if sh.hasDst {
		instr.Dst = slots[0]
	}
	instr.Src = slots[1:]
	return instr, total, nil
}
