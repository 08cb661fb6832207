package ast

import "github.com/samber/lo"

// Children returns h's immediate child handles, dispatching on Kind. Zero
// handles (absent optional children, e.g. an If with no Else) are
// filtered out via lo.Filter so callers never have to check Valid().
func (a *Arena) Children(h Handle) []Handle {
	var raw []Handle
	switch a.Kind(h) {
	case KindBlock:
		raw = append(raw, a.Block(h).Statements...)
	case KindStatement:
		s := a.Statement(h)
		raw = append(raw, s.Expr)
		raw = append(raw, s.Directives...)
		raw = append(raw, s.Annotations...)
	case KindBinaryOperator:
		b := a.BinaryOperator(h)
		raw = append(raw, b.LHS, b.RHS)
	case KindUnaryOperator:
		raw = append(raw, a.UnaryOperator(h).Operand)
	case KindAssignmentOperator:
		op := a.AssignmentOperator(h)
		raw = append(raw, op.Target, op.Value)
	case KindIdentifier:
		raw = append(raw, a.Identifier(h).Initializer)
	case KindCall:
		c := a.Call(h)
		raw = append(raw, c.Callee)
		raw = append(raw, c.Args...)
	case KindIf:
		i := a.If(h)
		raw = append(raw, i.Condition, i.Then, i.Else)
	case KindFor:
		f := a.For(h)
		raw = append(raw, f.Binding, f.Iterable, f.Body)
	case KindWhile:
		w := a.While(h)
		raw = append(raw, w.Condition, w.Body)
	case KindSwitch:
		sw := a.Switch(h)
		raw = append(raw, sw.Subject)
		raw = append(raw, sw.Cases...)
	case KindCase:
		c := a.Case(h)
		raw = append(raw, c.Values...)
		raw = append(raw, c.Body)
	case KindProc:
		p := a.Proc(h)
		raw = append(raw, p.Params...)
		raw = append(raw, p.Body)
	case KindStruct:
		raw = append(raw, a.Struct(h).Fields...)
	case KindUnion:
		raw = append(raw, a.Union(h).Fields...)
	case KindEnum:
		raw = append(raw, a.Enum(h).Members...)
	case KindFamily:
		raw = append(raw, a.Family(h).Variants...)
	case KindCast:
		raw = append(raw, a.Cast(h).Operand)
	case KindBitcast:
		raw = append(raw, a.Bitcast(h).Operand)
	case KindModule:
		raw = append(raw, a.Module(h).Body)
	case KindNamespace:
		raw = append(raw, a.Namespace(h).Body)
	case KindDefer:
		raw = append(raw, a.Defer(h).Expr)
	case KindYield:
		raw = append(raw, a.Yield(h).Value)
	case KindReturn:
		raw = append(raw, a.Return(h).Value)
	case KindWith:
		w := a.With(h)
		raw = append(raw, w.Subject, w.Body)
	}
	return lo.Filter(raw, func(c Handle, _ int) bool { return c.Valid() })
}

// Walk returns every handle reachable from h, itself included, in
// pre-order. It is the generic visitor SPEC_FULL.md's `ast` entry names;
// callers needing early termination or per-kind behavior should inspect
// Arena.Kind on each returned handle rather than Walk taking a callback,
// matching the teacher's preference for returning data over accepting
// visitor closures (vm/cpu.go's instruction dispatch is table-driven for
// the same reason).
func (a *Arena) Walk(h Handle) []Handle {
	if !h.Valid() {
		return nil
	}
	out := []Handle{h}
	for _, c := range a.Children(h) {
		out = append(out, a.Walk(c)...)
	}
	return out
}

// ApplyFoldResult overwrites the slot-th child reference in parent with
// replacement, used by the constant-folding pass to splice a
// NumberLiteral/StringLiteral/BooleanLiteral in place of a BinaryOperator
// or UnaryOperator subtree once it has been evaluated at compile time.
func (a *Arena) ApplyFoldResult(parent Handle, slot int, replacement Handle) {
	switch a.Kind(parent) {
	case KindBinaryOperator:
		b := &a.binaryOps[a.indexOf(parent)]
		if slot == 0 {
			b.LHS = replacement
		} else {
			b.RHS = replacement
		}
	case KindUnaryOperator:
		a.unaryOps[a.indexOf(parent)].Operand = replacement
	case KindStatement:
		a.statements[a.indexOf(parent)].Expr = replacement
	case KindAssignmentOperator:
		op := &a.assignOps[a.indexOf(parent)]
		if slot == 0 {
			op.Target = replacement
		} else {
			op.Value = replacement
		}
	case KindIdentifier:
		a.identifiers[a.indexOf(parent)].Initializer = replacement
	case KindReturn:
		a.returns[a.indexOf(parent)].Value = replacement
	case KindCall:
		c := &a.calls[a.indexOf(parent)]
		if slot < len(c.Args) {
			c.Args[slot] = replacement
		}
	case KindBlock:
		b := &a.blocks[a.indexOf(parent)]
		if slot < len(b.Statements) {
			b.Statements[slot] = replacement
		}
	}
}
