package terp

import (
	"math"

	"github.com/basecode-lang/basecode-sub005/asmblk"
	"github.com/basecode-lang/basecode-sub005/diag"
	"github.com/basecode-lang/basecode-sub005/vm"
)

func mask(size asmblk.Size, v uint64) uint64 {
	switch size {
	case asmblk.SizeByte:
		return v & 0xFF
	case asmblk.SizeWord:
		return v & 0xFFFF
	case asmblk.SizeDWord:
		return v & 0xFFFFFFFF
	default:
		return v
	}
}

func kindFor(size asmblk.Size, signed bool) vm.Kind {
	switch size {
	case asmblk.SizeByte:
		if signed {
			return vm.KindI8
		}
		return vm.KindU8
	case asmblk.SizeWord:
		if signed {
			return vm.KindI16
		}
		return vm.KindU16
	case asmblk.SizeDWord:
		if signed {
			return vm.KindI32
		}
		return vm.KindU32
	default:
		if signed {
			return vm.KindI64
		}
		return vm.KindU64
	}
}

// readOperand resolves an operand into the raw bits it contributes to a
// computation: a register's current value, or an immediate/resolved-label
// payload, each narrowed to size.
func (t *Terp) readOperand(op asmblk.Operand, size asmblk.Size) uint64 {
	switch op.Kind {
	case asmblk.OperandRegister:
		return mask(size, t.regs.Get(op.Reg).Uint64())
	default:
		return mask(size, op.Imm)
	}
}

func (t *Terp) readOperandAddress(op asmblk.Operand) uint32 {
	switch op.Kind {
	case asmblk.OperandRegister:
		return uint32(t.regs.Get(op.Reg).Uint64())
	default:
		return uint32(op.Imm)
	}
}

func (t *Terp) setInt(idx int, size asmblk.Size, signed bool, raw uint64) {
	t.regs.Set(idx, vm.NewUint(kindFor(size, signed), mask(size, raw)))
}

// readFloat and setFloat handle the `*f{dw,qw}` opcodes, the only sizes
// spec.md §6 allows for floating-point operations.
func (t *Terp) readFloat(op asmblk.Operand, size asmblk.Size) float64 {
	if op.Kind == asmblk.OperandRegister {
		return t.regs.Get(op.Reg).Float64()
	}
	if size == asmblk.SizeDWord {
		return float64(math.Float32frombits(uint32(op.Imm)))
	}
	return math.Float64frombits(op.Imm)
}

func (t *Terp) setFloat(idx int, size asmblk.Size, v float64) {
	if size == asmblk.SizeDWord {
		t.regs.Set(idx, vm.NewFloat32(float32(v)))
		return
	}
	t.regs.Set(idx, vm.NewFloat64(v))
}

func (t *Terp) updateIntFlags(result uint64, size asmblk.Size, carry, overflow bool) {
	masked := mask(size, result)
	t.regs.Flags.Z = masked == 0
	signBit := uint64(1) << (uint(size.Width())*8 - 1)
	t.regs.Flags.N = masked&signBit != 0
	t.regs.Flags.C = carry
	t.regs.Flags.V = overflow
}

func errDivByZero() error {
	return &diag.Diagnostic{Code: diag.CodeDivisionByZero, Severity: diag.Error, Message: "division by zero"}
}

func errInvalidOpcode(op asmblk.Op) error {
	return &diag.Diagnostic{Code: diag.CodeInvalidOpcode, Severity: diag.Error, Message: "invalid or unimplemented opcode: " + op.String()}
}

func errStackUnderflow() error {
	return &diag.Diagnostic{Code: diag.CodeStackUnderflow, Severity: diag.Error, Message: "stack underflow"}
}

func errStackOverflow() error {
	return &diag.Diagnostic{Code: diag.CodeStackOverflow, Severity: diag.Error, Message: "stack overflow"}
}

// execute runs one decoded instruction. advanced is set true when the
// instruction itself moved PC (branches, call, ret), telling Step to skip
// its own "advance by instruction length" step.
func (t *Terp) execute(instr asmblk.Instruction, pc uint32, length uint32, advanced *bool) error {
	size := instr.Size
	switch instr.Op {
	case asmblk.OpNop:
		return nil

	case asmblk.OpMove, asmblk.OpMoveZ, asmblk.OpMoveS:
		signed := instr.Op == asmblk.OpMoveS
		t.setInt(instr.Dst.Reg, size, signed, t.readOperand(instr.Src[0], size))
		return nil

	case asmblk.OpLoad:
		addr := t.readOperandAddress(instr.Src[0])
		data, err := t.heap.ReadAt(addr, size.Width())
		if err != nil {
			return err
		}
		t.setInt(instr.Dst.Reg, size, false, bytesToUint(data))
		return nil

	case asmblk.OpStore:
		addr := t.readOperandAddress(instr.Src[0])
		value := t.readOperand(instr.Src[1], size)
		return t.heap.WriteAt(addr, uintToBytes(value, size.Width()))

	case asmblk.OpAddI, asmblk.OpAddIS:
		a, b := t.readOperand(instr.Src[0], size), t.readOperand(instr.Src[1], size)
		sum := a + b
		t.updateIntFlags(sum, size, sum < a, overflowsAdd(a, b, sum, size))
		t.setInt(instr.Dst.Reg, size, instr.Op == asmblk.OpAddIS, sum)
		return nil

	case asmblk.OpSubI, asmblk.OpSubIS:
		a, b := t.readOperand(instr.Src[0], size), t.readOperand(instr.Src[1], size)
		diff := a - b
		t.updateIntFlags(diff, size, a < b, overflowsSub(a, b, diff, size))
		t.setInt(instr.Dst.Reg, size, instr.Op == asmblk.OpSubIS, diff)
		return nil

	case asmblk.OpMulI, asmblk.OpMulIS:
		a, b := t.readOperand(instr.Src[0], size), t.readOperand(instr.Src[1], size)
		prod := a * b
		t.updateIntFlags(prod, size, false, false)
		t.setInt(instr.Dst.Reg, size, instr.Op == asmblk.OpMulIS, prod)
		return nil

	case asmblk.OpDivI, asmblk.OpDivIS:
		a, b := t.readOperand(instr.Src[0], size), t.readOperand(instr.Src[1], size)
		if b == 0 {
			return errDivByZero()
		}
		var q uint64
		if instr.Op == asmblk.OpDivIS {
			q = uint64(signExtend(a, size)/signExtend(b, size)) & widthMask(size)
		} else {
			q = a / b
		}
		t.updateIntFlags(q, size, false, false)
		t.setInt(instr.Dst.Reg, size, instr.Op == asmblk.OpDivIS, q)
		return nil

	case asmblk.OpModI, asmblk.OpModIS:
		a, b := t.readOperand(instr.Src[0], size), t.readOperand(instr.Src[1], size)
		if b == 0 {
			return errDivByZero()
		}
		var r uint64
		if instr.Op == asmblk.OpModIS {
			r = uint64(signExtend(a, size)%signExtend(b, size)) & widthMask(size)
		} else {
			r = a % b
		}
		t.updateIntFlags(r, size, false, false)
		t.setInt(instr.Dst.Reg, size, instr.Op == asmblk.OpModIS, r)
		return nil

	case asmblk.OpMAddI, asmblk.OpMAddIS:
		a, b, c := t.readOperand(instr.Src[0], size), t.readOperand(instr.Src[1], size), t.readOperand(instr.Src[2], size)
		res := a*b + c
		t.updateIntFlags(res, size, false, false)
		t.setInt(instr.Dst.Reg, size, instr.Op == asmblk.OpMAddIS, res)
		return nil

	case asmblk.OpNegIS:
		a := signExtend(t.readOperand(instr.Src[0], size), size)
		t.updateIntFlags(uint64(-a), size, false, false)
		t.setInt(instr.Dst.Reg, size, true, uint64(-a))
		return nil

	case asmblk.OpAddF:
		t.setFloat(instr.Dst.Reg, size, t.readFloat(instr.Src[0], size)+t.readFloat(instr.Src[1], size))
		return nil

	case asmblk.OpSubF:
		t.setFloat(instr.Dst.Reg, size, t.readFloat(instr.Src[0], size)-t.readFloat(instr.Src[1], size))
		return nil

	case asmblk.OpMulF:
		t.setFloat(instr.Dst.Reg, size, t.readFloat(instr.Src[0], size)*t.readFloat(instr.Src[1], size))
		return nil

	case asmblk.OpDivF:
		divisor := t.readFloat(instr.Src[1], size)
		if divisor == 0 {
			return errDivByZero()
		}
		t.setFloat(instr.Dst.Reg, size, t.readFloat(instr.Src[0], size)/divisor)
		return nil

	case asmblk.OpMAddF:
		t.setFloat(instr.Dst.Reg, size, t.readFloat(instr.Src[0], size)*t.readFloat(instr.Src[1], size)+t.readFloat(instr.Src[2], size))
		return nil

	case asmblk.OpNegF:
		t.setFloat(instr.Dst.Reg, size, -t.readFloat(instr.Src[0], size))
		return nil

	case asmblk.OpCmpF:
		a, b := t.readFloat(instr.Src[0], size), t.readFloat(instr.Src[1], size)
		t.regs.Flags.E = a == b
		t.regs.Flags.S = a < b
		t.regs.Flags.Z = a == b
		return nil

	case asmblk.OpAnd, asmblk.OpOr, asmblk.OpXor, asmblk.OpShr, asmblk.OpShl, asmblk.OpRor, asmblk.OpRol:
		a, b := t.readOperand(instr.Src[0], size), t.readOperand(instr.Src[1], size)
		res := bitwise(instr.Op, a, b, size)
		t.updateIntFlags(res, size, false, false)
		t.setInt(instr.Dst.Reg, size, false, res)
		return nil

	case asmblk.OpNot:
		a := t.readOperand(instr.Src[0], size)
		res := mask(size, ^a)
		t.updateIntFlags(res, size, false, false)
		t.setInt(instr.Dst.Reg, size, false, res)
		return nil

	case asmblk.OpCmpI, asmblk.OpCmpIS:
		a, b := t.readOperand(instr.Src[0], size), t.readOperand(instr.Src[1], size)
		if instr.Op == asmblk.OpCmpIS {
			sa, sb := signExtend(a, size), signExtend(b, size)
			t.regs.Flags.E = sa == sb
			t.regs.Flags.S = sa < sb
		} else {
			t.regs.Flags.E = a == b
			t.regs.Flags.S = a < b
		}
		t.regs.Flags.Z = a == b
		return nil

	case asmblk.OpPushI, asmblk.OpPushS:
		return t.push(size, t.readOperand(instr.Src[0], size))

	case asmblk.OpPopS:
		v, err := t.pop(size)
		if err != nil {
			return err
		}
		t.setInt(instr.Dst.Reg, size, false, v)
		return nil

	case asmblk.OpPushM:
		for _, src := range instr.Src {
			if src.Kind != asmblk.OperandRegister {
				continue
			}
			if err := t.push(asmblk.SizeQWord, t.regs.Get(src.Reg).Uint64()); err != nil {
				return err
			}
		}
		return nil

	case asmblk.OpPopM:
		for i := len(instr.Src) - 1; i >= 0; i-- {
			if instr.Src[i].Kind != asmblk.OperandRegister {
				continue
			}
			v, err := t.pop(asmblk.SizeQWord)
			if err != nil {
				return err
			}
			t.setInt(instr.Src[i].Reg, asmblk.SizeQWord, false, v)
		}
		return nil

	case asmblk.OpCall:
		target := t.readOperandAddress(instr.Src[0])
		if err := t.push(asmblk.SizeDWord, uint64(pc+length)); err != nil {
			return err
		}
		t.regs.SetPC(target)
		*advanced = true
		return nil

	case asmblk.OpRet:
		ret, err := t.pop(asmblk.SizeDWord)
		if err != nil {
			return err
		}
		t.regs.SetPC(uint32(ret))
		*advanced = true
		return nil

	case asmblk.OpTrap:
		trapNum := int(t.readOperand(instr.Src[0], asmblk.SizeDWord))
		sig, ok := t.bridge.Signature(trapNum)
		if !ok {
			return &diag.Diagnostic{Code: diag.CodeUnknownTrap, Severity: diag.Error, Message: "unknown trap number"}
		}
		args := make([]vm.Value, len(sig.Params))
		for i := range sig.Params {
			args[i] = t.regs.Get(vm.RegisterIndex(i))
		}
		out, err := t.bridge.Call(trapNum, args)
		if err != nil {
			return err
		}
		t.regs.Set(vm.RegisterIndex(0), out)
		return nil

	case asmblk.OpJump:
		t.regs.SetPC(t.readOperandAddress(instr.Src[0]))
		*advanced = true
		return nil

	case asmblk.OpBeq, asmblk.OpBne, asmblk.OpBg, asmblk.OpBge, asmblk.OpBl, asmblk.OpBle,
		asmblk.OpBos, asmblk.OpBoc, asmblk.OpBcs, asmblk.OpBcc, asmblk.OpBis, asmblk.OpBic:
		if t.branchTaken(instr.Op) {
			t.regs.SetPC(t.readOperandAddress(instr.Src[0]))
			*advanced = true
		}
		return nil

	case asmblk.OpSeq, asmblk.OpSne, asmblk.OpSg, asmblk.OpSge, asmblk.OpSl, asmblk.OpSle,
		asmblk.OpSos, asmblk.OpSoc, asmblk.OpScs, asmblk.OpScc:
		t.setInt(instr.Dst.Reg, asmblk.SizeByte, false, boolToUint(t.setCondition(instr.Op)))
		return nil

	case asmblk.OpExit:
		t.state = StateExited
		if t.regs.SP() != t.initialSP {
			return &diag.Diagnostic{
				Code: diag.CodeUnbalancedStack, Severity: diag.Error,
				Message: "exit reached with an unbalanced stack",
			}
		}
		return nil

	default:
		return errInvalidOpcode(instr.Op)
	}
}

func (t *Terp) branchTaken(op asmblk.Op) bool {
	f := t.regs.Flags
	switch op {
	case asmblk.OpBeq:
		return f.E
	case asmblk.OpBne:
		return !f.E
	case asmblk.OpBg:
		return !f.S && !f.E
	case asmblk.OpBge:
		return !f.S
	case asmblk.OpBl:
		return f.S
	case asmblk.OpBle:
		return f.S || f.E
	case asmblk.OpBos:
		return f.V
	case asmblk.OpBoc:
		return !f.V
	case asmblk.OpBcs:
		return f.C
	case asmblk.OpBcc:
		return !f.C
	case asmblk.OpBis:
		return f.N
	case asmblk.OpBic:
		return !f.N
	default:
		return false
	}
}

func (t *Terp) setCondition(op asmblk.Op) bool {
	f := t.regs.Flags
	switch op {
	case asmblk.OpSeq:
		return f.E
	case asmblk.OpSne:
		return !f.E
	case asmblk.OpSg:
		return !f.S && !f.E
	case asmblk.OpSge:
		return !f.S
	case asmblk.OpSl:
		return f.S
	case asmblk.OpSle:
		return f.S || f.E
	case asmblk.OpSos:
		return f.V
	case asmblk.OpSoc:
		return !f.V
	case asmblk.OpScs:
		return f.C
	case asmblk.OpScc:
		return !f.C
	default:
		return false
	}
}

func (t *Terp) push(size asmblk.Size, value uint64) error {
	width := uint32(size.Width())
	sp := t.regs.SP()
	if sp-width < t.heap.BottomOfStack {
		return errStackOverflow()
	}
	sp -= width
	if err := t.heap.WriteAt(sp, uintToBytes(value, size.Width())); err != nil {
		return err
	}
	t.regs.SetSP(sp)
	return nil
}

func (t *Terp) pop(size asmblk.Size) (uint64, error) {
	width := uint32(size.Width())
	sp := t.regs.SP()
	if sp+width > t.initialSP {
		return 0, errStackUnderflow()
	}
	data, err := t.heap.ReadAt(sp, size.Width())
	if err != nil {
		return 0, err
	}
	t.regs.SetSP(sp + width)
	return bytesToUint(data), nil
}

func bytesToUint(data []byte) uint64 {
	var v uint64
	for i, b := range data {
		v |= uint64(b) << (8 * uint(i))
	}
	return v
}

func uintToBytes(v uint64, width int) []byte {
	out := make([]byte, width)
	for i := 0; i < width; i++ {
		out[i] = byte(v >> (8 * uint(i)))
	}
	return out
}

func widthMask(size asmblk.Size) uint64 {
	switch size {
	case asmblk.SizeByte:
		return 0xFF
	case asmblk.SizeWord:
		return 0xFFFF
	case asmblk.SizeDWord:
		return 0xFFFFFFFF
	default:
		return ^uint64(0)
	}
}

func signExtend(v uint64, size asmblk.Size) int64 {
	switch size {
	case asmblk.SizeByte:
		return int64(int8(v))
	case asmblk.SizeWord:
		return int64(int16(v))
	case asmblk.SizeDWord:
		return int64(int32(v))
	default:
		return int64(v)
	}
}

func overflowsAdd(a, b, sum uint64, size asmblk.Size) bool {
	signBit := uint64(1) << (uint(size.Width())*8 - 1)
	return (a^sum)&(b^sum)&signBit != 0
}

func overflowsSub(a, b, diff uint64, size asmblk.Size) bool {
	signBit := uint64(1) << (uint(size.Width())*8 - 1)
	return (a^b)&(a^diff)&signBit != 0
}

func bitwise(op asmblk.Op, a, b uint64, size asmblk.Size) uint64 {
	width := uint64(size.Width()) * 8
	switch op {
	case asmblk.OpAnd:
		return mask(size, a&b)
	case asmblk.OpOr:
		return mask(size, a|b)
	case asmblk.OpXor:
		return mask(size, a^b)
	case asmblk.OpShr:
		return mask(size, a>>(b%width))
	case asmblk.OpShl:
		return mask(size, a<<(b%width))
	case asmblk.OpRor:
		n := b % width
		return mask(size, (a>>n)|(a<<(width-n)))
	case asmblk.OpRol:
		n := b % width
		return mask(size, (a<<n)|(a>>(width-n)))
	default:
		return 0
	}
}

func boolToUint(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
