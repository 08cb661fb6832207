package ast

import "github.com/basecode-lang/basecode-sub005/source"

// Block is a braced sequence of statements with its own Scope, grounded on
// original_source/compiler/elements/block.{h,cpp}.
type Block struct {
	Self       Handle
	Scope      Handle
	Statements []Handle
	Loc        source.Location
}

// NewBlock allocates a Block owning scope and returns its Handle.
func (a *Arena) NewBlock(scope Handle, loc source.Location) Handle {
	h := a.alloc(KindBlock)
	a.blocks = append(a.blocks, Block{Self: h, Scope: scope, Loc: loc})
	return h
}

// Block dereferences h, which must satisfy Kind(h) == KindBlock.
func (a *Arena) Block(h Handle) *Block { return &a.blocks[a.indexOf(h)] }

// AppendStatement appends stmt to block's statement list.
func (a *Arena) AppendStatement(block, stmt Handle) {
	i := a.indexOf(block)
	a.blocks[i].Statements = append(a.blocks[i].Statements, stmt)
}

// Scope is one lexical scope. Identifiers is a trie keyed by both the
// naked spelling and the fully qualified (namespace-prefixed) spelling, so
// a lookup from inside a namespace resolves either form, per SPEC_FULL.md
// §4's `ast` entry and spec.md's namespace rules.
type Scope struct {
	Self        Handle
	Parent      Handle
	Children    []Handle
	Identifiers *IdentifierTrie
}

// NewScope allocates a Scope child of parent (parent may be the zero Handle
// for the module-level scope).
func (a *Arena) NewScope(parent Handle) Handle {
	h := a.alloc(KindScope)
	a.scopes = append(a.scopes, Scope{Self: h, Parent: parent, Identifiers: newIdentifierTrie()})
	if parent.Valid() {
		pi := a.indexOf(parent)
		a.scopes[pi].Children = append(a.scopes[pi].Children, h)
	}
	return h
}

func (a *Arena) Scope(h Handle) *Scope { return &a.scopes[a.indexOf(h)] }

// Statement wraps one top-level-of-block element with its hoisted
// directives/annotations, per SPEC_FULL.md §3's directive-hoisting
// supplement (grounded on original_source/compiler/elements/statement.cpp,
// which stores attribute lists directly on the statement rather than on
// the wrapped expression).
type Statement struct {
	Self        Handle
	Expr        Handle
	Directives  []Handle
	Annotations []Handle
	Loc         source.Location
}

func (a *Arena) NewStatement(expr Handle, loc source.Location) Handle {
	h := a.alloc(KindStatement)
	a.statements = append(a.statements, Statement{Self: h, Expr: expr, Loc: loc})
	return h
}

func (a *Arena) Statement(h Handle) *Statement { return &a.statements[a.indexOf(h)] }

// HoistDirective and HoistAnnotation attach a marker token encountered
// immediately before a statement onto the statement itself, rather than
// onto whatever expression follows, matching original_source's attribute
// list on statement.h.
func (a *Arena) HoistDirective(stmt, dir Handle) {
	i := a.indexOf(stmt)
	a.statements[i].Directives = append(a.statements[i].Directives, dir)
}

func (a *Arena) HoistAnnotation(stmt, ann Handle) {
	i := a.indexOf(stmt)
	a.statements[i].Annotations = append(a.statements[i].Annotations, ann)
}

// BinaryOperatorKind enumerates spec.md §4.5's binary operators.
type BinaryOperatorKind int

const (
	BinAdd BinaryOperatorKind = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinAnd
	BinOr
	BinXor
	BinShl
	BinShr
	BinRol
	BinRor
	BinLogicalAnd
	BinLogicalOr
	BinEq
	BinNeq
	BinLt
	BinGt
	BinLe
	BinGe
	BinRangeIncl
	BinRangeExcl
	BinComma
	BinSubscript
	BinMemberSelect
	BinIn
	BinPow
)

type BinaryOperator struct {
	Self        Handle
	Op          BinaryOperatorKind
	LHS, RHS    Handle
	Loc         source.Location
}

func (a *Arena) NewBinaryOperator(op BinaryOperatorKind, lhs, rhs Handle, loc source.Location) Handle {
	h := a.alloc(KindBinaryOperator)
	a.binaryOps = append(a.binaryOps, BinaryOperator{Self: h, Op: op, LHS: lhs, RHS: rhs, Loc: loc})
	return h
}

func (a *Arena) BinaryOperator(h Handle) *BinaryOperator { return &a.binaryOps[a.indexOf(h)] }

type UnaryOperatorKind int

const (
	UnaryNeg UnaryOperatorKind = iota
	UnaryNot
	UnaryBitNot
	UnaryDeref
	UnaryAddrOf
)

type UnaryOperator struct {
	Self    Handle
	Op      UnaryOperatorKind
	Operand Handle
	Loc     source.Location
}

func (a *Arena) NewUnaryOperator(op UnaryOperatorKind, operand Handle, loc source.Location) Handle {
	h := a.alloc(KindUnaryOperator)
	a.unaryOps = append(a.unaryOps, UnaryOperator{Self: h, Op: op, Operand: operand, Loc: loc})
	return h
}

func (a *Arena) UnaryOperator(h Handle) *UnaryOperator { return &a.unaryOps[a.indexOf(h)] }

// AssignmentOperator holds a resolved lvalue target and its value, after
// compound-assignment desugaring (`x +:= 1` becomes `x = x + 1` at parse
// time per SPEC_FULL.md's parser entry) and after nested-assignment
// rejection has already run.
type AssignmentOperator struct {
	Self   Handle
	Target Handle
	Value  Handle
	Loc    source.Location
}

func (a *Arena) NewAssignmentOperator(target, value Handle, loc source.Location) Handle {
	h := a.alloc(KindAssignmentOperator)
	a.assignOps = append(a.assignOps, AssignmentOperator{Self: h, Target: target, Value: value, Loc: loc})
	return h
}

func (a *Arena) AssignmentOperator(h Handle) *AssignmentOperator {
	return &a.assignOps[a.indexOf(h)]
}

// Identifier is a declared name: a parameter, struct/union field, enum
// member, or the target of a `:=`/`::` declaration (which wraps it in an
// AssignmentOperator rather than storing the bound value here). Initializer
// is unused except by enum members, where it holds an explicit `= value`
// override (see keywords_parse.go's nudEnum) rather than the identifier's
// bound value.
type Identifier struct {
	Self        Handle
	Name        string
	Qualified   string
	IsConstant  bool
	Initializer Handle
	Loc         source.Location
}

func (a *Arena) NewIdentifier(name, qualified string, isConstant bool, init Handle, loc source.Location) Handle {
	h := a.alloc(KindIdentifier)
	a.identifiers = append(a.identifiers, Identifier{
		Self: h, Name: name, Qualified: qualified, IsConstant: isConstant, Initializer: init, Loc: loc,
	})
	return h
}

func (a *Arena) Identifier(h Handle) *Identifier { return &a.identifiers[a.indexOf(h)] }

// IdentifierRef is a resolved use-site reference, materialized at parse
// time by looking the name up in the enclosing Scope's trie (the "redux"
// resolution of spec.md's identifier-reference Open Question, recorded in
// DESIGN.md).
type IdentifierRef struct {
	Self     Handle
	Name     string
	Resolved Handle // the Identifier this ref points to, or the zero Handle if unresolved at parse time
	Loc      source.Location
}

func (a *Arena) NewIdentifierRef(name string, resolved Handle, loc source.Location) Handle {
	h := a.alloc(KindIdentifierRef)
	a.idRefs = append(a.idRefs, IdentifierRef{Self: h, Name: name, Resolved: resolved, Loc: loc})
	return h
}

func (a *Arena) IdentifierRef(h Handle) *IdentifierRef { return &a.idRefs[a.indexOf(h)] }

type Directive struct {
	Self Handle
	Name string
	Args []Handle
	Loc  source.Location
}

func (a *Arena) NewDirective(name string, loc source.Location) Handle {
	h := a.alloc(KindDirective)
	a.directives = append(a.directives, Directive{Self: h, Name: name, Loc: loc})
	return h
}

func (a *Arena) Directive(h Handle) *Directive { return &a.directives[a.indexOf(h)] }

type Annotation struct {
	Self Handle
	Name string
	Args []Handle
	Loc  source.Location
}

func (a *Arena) NewAnnotation(name string, loc source.Location) Handle {
	h := a.alloc(KindAnnotation)
	a.annotations = append(a.annotations, Annotation{Self: h, Name: name, Loc: loc})
	return h
}

func (a *Arena) Annotation(h Handle) *Annotation { return &a.annotations[a.indexOf(h)] }

// NumberLiteral, StringLiteral, BooleanLiteral hold constant-folded leaf
// values, grounded on integer_literal.{h,cpp}/float_literal.{h,cpp}/
// string_literal.{h,cpp}/boolean_literal.{h,cpp}.
type NumberLiteral struct {
	Self      Handle
	IsFloat   bool
	IntValue  uint64
	IsSigned  bool
	FloatValue float64
	Loc       source.Location
}

func (a *Arena) NewNumberLiteral(n NumberLiteral, loc source.Location) Handle {
	h := a.alloc(KindNumberLiteral)
	n.Self = h
	n.Loc = loc
	a.numbers = append(a.numbers, n)
	return h
}

func (a *Arena) NumberLiteral(h Handle) *NumberLiteral { return &a.numbers[a.indexOf(h)] }

type StringLiteral struct {
	Self  Handle
	Value string
	Loc   source.Location
}

func (a *Arena) NewStringLiteral(value string, loc source.Location) Handle {
	h := a.alloc(KindStringLiteral)
	a.strings = append(a.strings, StringLiteral{Self: h, Value: value, Loc: loc})
	return h
}

func (a *Arena) StringLiteral(h Handle) *StringLiteral { return &a.strings[a.indexOf(h)] }

type BooleanLiteral struct {
	Self  Handle
	Value bool
	Loc   source.Location
}

func (a *Arena) NewBooleanLiteral(value bool, loc source.Location) Handle {
	h := a.alloc(KindBooleanLiteral)
	a.booleans = append(a.booleans, BooleanLiteral{Self: h, Value: value, Loc: loc})
	return h
}

func (a *Arena) BooleanLiteral(h Handle) *BooleanLiteral { return &a.booleans[a.indexOf(h)] }

// Call is a procedure-call expression, grounded on
// compiler/elements/procedure_call.{h,cpp}.
type Call struct {
	Self   Handle
	Callee Handle
	Args   []Handle
	Loc    source.Location
}

func (a *Arena) NewCall(callee Handle, args []Handle, loc source.Location) Handle {
	h := a.alloc(KindCall)
	a.calls = append(a.calls, Call{Self: h, Callee: callee, Args: args, Loc: loc})
	return h
}

func (a *Arena) Call(h Handle) *Call { return &a.calls[a.indexOf(h)] }

// indexOf converts a Handle into its index in the shape slice recorded at
// allocation time (Arena.alloc), keeping Handle a plain uint32 instead of
// a (kind, index) pair.
func (a *Arena) indexOf(h Handle) int {
	return a.nodes[h.id].idx
}
