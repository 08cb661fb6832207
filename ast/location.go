package ast

import "github.com/basecode-lang/basecode-sub005/source"

// Loc recovers h's source.Location regardless of which shape it names,
// for diagnostics that only hold a Handle.
func (a *Arena) Loc(h Handle) source.Location {
	switch a.Kind(h) {
	case KindBlock:
		return a.Block(h).Loc
	case KindStatement:
		return a.Statement(h).Loc
	case KindBinaryOperator:
		return a.BinaryOperator(h).Loc
	case KindUnaryOperator:
		return a.UnaryOperator(h).Loc
	case KindAssignmentOperator:
		return a.AssignmentOperator(h).Loc
	case KindIdentifier:
		return a.Identifier(h).Loc
	case KindIdentifierRef:
		return a.IdentifierRef(h).Loc
	case KindDirective:
		return a.Directive(h).Loc
	case KindAnnotation:
		return a.Annotation(h).Loc
	case KindNumberLiteral:
		return a.NumberLiteral(h).Loc
	case KindStringLiteral:
		return a.StringLiteral(h).Loc
	case KindBooleanLiteral:
		return a.BooleanLiteral(h).Loc
	case KindCall:
		return a.Call(h).Loc
	case KindIf:
		return a.If(h).Loc
	case KindFor:
		return a.For(h).Loc
	case KindWhile:
		return a.While(h).Loc
	case KindSwitch:
		return a.Switch(h).Loc
	case KindCase:
		return a.Case(h).Loc
	case KindProc:
		return a.Proc(h).Loc
	case KindStruct:
		return a.Struct(h).Loc
	case KindUnion:
		return a.Union(h).Loc
	case KindEnum:
		return a.Enum(h).Loc
	case KindFamily:
		return a.Family(h).Loc
	case KindCast:
		return a.Cast(h).Loc
	case KindBitcast:
		return a.Bitcast(h).Loc
	case KindModule:
		return a.Module(h).Loc
	case KindImport:
		return a.Import(h).Loc
	case KindNamespace:
		return a.Namespace(h).Loc
	case KindDefer:
		return a.Defer(h).Loc
	case KindYield:
		return a.Yield(h).Loc
	case KindBreak:
		return a.Break(h).Loc
	case KindContinue:
		return a.Continue(h).Loc
	case KindReturn:
		return a.Return(h).Loc
	case KindGoto:
		return a.Goto(h).Loc
	case KindWith:
		return a.With(h).Loc
	case KindUse:
		return a.Use(h).Loc
	default:
		return source.Location{}
	}
}
