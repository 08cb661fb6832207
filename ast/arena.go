// Package ast holds the program tree as an arena of handles plus sparse
// per-shape component tables, rather than a pointer graph of node structs,
// per spec.md §9's explicit design note. Every element the original C++
// compiler modeled as an `element` subclass (compiler/elements/*) gets a
// table here instead of a subclass.
package ast

import "github.com/basecode-lang/basecode-sub005/intern"

// Handle is an opaque reference into an Arena. The zero Handle is never
// valid; Arena.New* constructors start numbering at 1.
type Handle struct{ id uint32 }

// Valid reports whether h was returned by an Arena constructor.
func (h Handle) Valid() bool { return h.id != 0 }

// Kind tags which component table a Handle's data lives in.
type Kind int

const (
	KindInvalid Kind = iota
	KindBlock
	KindScope
	KindStatement
	KindBinaryOperator
	KindUnaryOperator
	KindAssignmentOperator
	KindIdentifier
	KindIdentifierRef
	KindDirective
	KindAnnotation
	KindNumberLiteral
	KindStringLiteral
	KindBooleanLiteral
	KindIf
	KindFor
	KindWhile
	KindSwitch
	KindCase
	KindProc
	KindStruct
	KindUnion
	KindEnum
	KindFamily
	KindCast
	KindBitcast
	KindModule
	KindImport
	KindNamespace
	KindDefer
	KindYield
	KindBreak
	KindContinue
	KindReturn
	KindGoto
	KindWith
	KindUse
	KindCall
)

// node is the common header every shape's component carries: the Kind
// discriminator plus the index into that Kind's own slice, so a generic
// Handle resolves to its concrete struct in O(1) without a linear scan.
type node struct {
	kind Kind
	idx  int
}

// Arena owns every component table for one parsed module. Handles from one
// Arena are meaningless in another.
type Arena struct {
	pool *intern.Pool

	nodes []node // indexed by Handle.id (index 0 is reserved); nodes[i].kind tells you which table to consult

	blocks      []Block
	scopes      []Scope
	statements  []Statement
	binaryOps   []BinaryOperator
	unaryOps    []UnaryOperator
	assignOps   []AssignmentOperator
	identifiers []Identifier
	idRefs      []IdentifierRef
	directives  []Directive
	annotations []Annotation
	numbers     []NumberLiteral
	strings     []StringLiteral
	booleans    []BooleanLiteral
	ifs         []If
	fors        []For
	whiles      []While
	switches    []Switch
	cases       []Case
	procs       []Proc
	structs     []Struct
	unions      []Union
	enums       []Enum
	families    []Family
	casts       []Cast
	bitcasts    []Bitcast
	modules     []Module
	imports     []Import
	namespaces  []Namespace
	defers      []Defer
	yields      []Yield
	breaks      []Break
	continues   []Continue
	returns     []Return
	gotos       []Goto
	withs       []With
	uses        []Use
	calls       []Call
}

// New builds an empty Arena backed by pool for identifier/string interning.
func New(pool *intern.Pool) *Arena {
	return &Arena{pool: pool, nodes: []node{{}}} // index 0 reserved, matches Handle zero value
}

// Pool returns the intern pool shared by every Identifier in this Arena.
func (a *Arena) Pool() *intern.Pool { return a.pool }

// Kind reports which table h's data lives in.
func (a *Arena) Kind(h Handle) Kind {
	if !h.Valid() || int(h.id) >= len(a.nodes) {
		return KindInvalid
	}
	return a.nodes[h.id].kind
}

// alloc reserves the next Handle id for kind k, recording idx (the index
// the caller is about to insert at in its own shape slice) so indexOf is
// O(1).
func (a *Arena) alloc(k Kind) Handle {
	idx := a.shapeLen(k)
	a.nodes = append(a.nodes, node{kind: k, idx: idx})
	return Handle{id: uint32(len(a.nodes) - 1)}
}

func (a *Arena) shapeLen(k Kind) int {
	switch k {
	case KindBlock:
		return len(a.blocks)
	case KindScope:
		return len(a.scopes)
	case KindStatement:
		return len(a.statements)
	case KindBinaryOperator:
		return len(a.binaryOps)
	case KindUnaryOperator:
		return len(a.unaryOps)
	case KindAssignmentOperator:
		return len(a.assignOps)
	case KindIdentifier:
		return len(a.identifiers)
	case KindIdentifierRef:
		return len(a.idRefs)
	case KindDirective:
		return len(a.directives)
	case KindAnnotation:
		return len(a.annotations)
	case KindNumberLiteral:
		return len(a.numbers)
	case KindStringLiteral:
		return len(a.strings)
	case KindBooleanLiteral:
		return len(a.booleans)
	case KindIf:
		return len(a.ifs)
	case KindFor:
		return len(a.fors)
	case KindWhile:
		return len(a.whiles)
	case KindSwitch:
		return len(a.switches)
	case KindCase:
		return len(a.cases)
	case KindProc:
		return len(a.procs)
	case KindStruct:
		return len(a.structs)
	case KindUnion:
		return len(a.unions)
	case KindEnum:
		return len(a.enums)
	case KindFamily:
		return len(a.families)
	case KindCast:
		return len(a.casts)
	case KindBitcast:
		return len(a.bitcasts)
	case KindModule:
		return len(a.modules)
	case KindImport:
		return len(a.imports)
	case KindNamespace:
		return len(a.namespaces)
	case KindDefer:
		return len(a.defers)
	case KindYield:
		return len(a.yields)
	case KindBreak:
		return len(a.breaks)
	case KindContinue:
		return len(a.continues)
	case KindReturn:
		return len(a.returns)
	case KindGoto:
		return len(a.gotos)
	case KindWith:
		return len(a.withs)
	case KindUse:
		return len(a.uses)
	case KindCall:
		return len(a.calls)
	default:
		return 0
	}
}
