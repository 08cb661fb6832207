package ast

import "github.com/basecode-lang/basecode-sub005/source"

// This file holds one table + constructor pair per keyword-expression
// shape named in SPEC_FULL.md §4's `ast` entry, grounded on the matching
// original_source/compiler/elements/*_element.{h,cpp} file.

// If, grounded on if_element.h.
type If struct {
	Self      Handle
	Condition Handle
	Then      Handle
	Else      Handle // zero Handle when absent
	Loc       source.Location
}

func (a *Arena) NewIf(cond, then, els Handle, loc source.Location) Handle {
	h := a.alloc(KindIf)
	a.ifs = append(a.ifs, If{Self: h, Condition: cond, Then: then, Else: els, Loc: loc})
	return h
}

func (a *Arena) If(h Handle) *If { return &a.ifs[a.indexOf(h)] }

// For is a `for x in range {}` loop.
type For struct {
	Self     Handle
	Binding  Handle
	Iterable Handle
	Body     Handle
	Loc      source.Location
}

func (a *Arena) NewFor(binding, iterable, body Handle, loc source.Location) Handle {
	h := a.alloc(KindFor)
	a.fors = append(a.fors, For{Self: h, Binding: binding, Iterable: iterable, Body: body, Loc: loc})
	return h
}

func (a *Arena) For(h Handle) *For { return &a.fors[a.indexOf(h)] }

// While is a condition-first loop.
type While struct {
	Self      Handle
	Condition Handle
	Body      Handle
	Loc       source.Location
}

func (a *Arena) NewWhile(cond, body Handle, loc source.Location) Handle {
	h := a.alloc(KindWhile)
	a.whiles = append(a.whiles, While{Self: h, Condition: cond, Body: body, Loc: loc})
	return h
}

func (a *Arena) While(h Handle) *While { return &a.whiles[a.indexOf(h)] }

// Switch, grounded on case_element.cpp's enclosing switch construct.
type Switch struct {
	Self    Handle
	Subject Handle
	Cases   []Handle
	Loc     source.Location
}

func (a *Arena) NewSwitch(subject Handle, cases []Handle, loc source.Location) Handle {
	h := a.alloc(KindSwitch)
	a.switches = append(a.switches, Switch{Self: h, Subject: subject, Cases: cases, Loc: loc})
	return h
}

func (a *Arena) Switch(h Handle) *Switch { return &a.switches[a.indexOf(h)] }

// Case, grounded directly on case_element.cpp. Values is empty for the
// default case.
type Case struct {
	Self   Handle
	Values []Handle
	Body   Handle
	Loc    source.Location
}

func (a *Arena) NewCase(values []Handle, body Handle, loc source.Location) Handle {
	h := a.alloc(KindCase)
	a.cases = append(a.cases, Case{Self: h, Values: values, Body: body, Loc: loc})
	return h
}

func (a *Arena) Case(h Handle) *Case { return &a.cases[a.indexOf(h)] }

// Proc, grounded on procedure_type.{h,cpp} and procedure_instance.{h,cpp}
// collapsed into one shape since SPEC_FULL.md does not separate a proc's
// type signature from its instance the way the original two-class split
// did.
type Proc struct {
	Self       Handle
	Params     []Handle // Identifier handles
	ReturnType string
	Body       Handle // zero Handle for an extern/FFI-only declaration
	Loc        source.Location
}

func (a *Arena) NewProc(params []Handle, returnType string, body Handle, loc source.Location) Handle {
	h := a.alloc(KindProc)
	a.procs = append(a.procs, Proc{Self: h, Params: params, ReturnType: returnType, Body: body, Loc: loc})
	return h
}

func (a *Arena) Proc(h Handle) *Proc { return &a.procs[a.indexOf(h)] }

// Struct, grounded on composite_type.{h,cpp}.
type Struct struct {
	Self   Handle
	Fields []Handle // Identifier handles
	Loc    source.Location
}

func (a *Arena) NewStruct(fields []Handle, loc source.Location) Handle {
	h := a.alloc(KindStruct)
	a.structs = append(a.structs, Struct{Self: h, Fields: fields, Loc: loc})
	return h
}

func (a *Arena) Struct(h Handle) *Struct { return &a.structs[a.indexOf(h)] }

// Union shares composite_type.{h,cpp}'s grounding; it differs from Struct
// only in storage layout, decided downstream in the type-layout pass.
type Union struct {
	Self   Handle
	Fields []Handle
	Loc    source.Location
}

func (a *Arena) NewUnion(fields []Handle, loc source.Location) Handle {
	h := a.alloc(KindUnion)
	a.unions = append(a.unions, Union{Self: h, Fields: fields, Loc: loc})
	return h
}

func (a *Arena) Union(h Handle) *Union { return &a.unions[a.indexOf(h)] }

// Enum, grounded on the same composite_type family (the original compiler
// models enums as a numeric_type with named constant members).
type Enum struct {
	Self    Handle
	Members []Handle // Identifier handles, each with a constant-fold NumberLiteral initializer
	Loc     source.Location
}

func (a *Arena) NewEnum(members []Handle, loc source.Location) Handle {
	h := a.alloc(KindEnum)
	a.enums = append(a.enums, Enum{Self: h, Members: members, Loc: loc})
	return h
}

func (a *Arena) Enum(h Handle) *Enum { return &a.enums[a.indexOf(h)] }

// Family is SPEC_FULL.md's tagged-union-of-structs construct; it has no
// direct original_source analogue, so it is grounded on composite_type's
// field-list shape with an added Variants list.
type Family struct {
	Self     Handle
	Variants []Handle // Struct handles
	Loc      source.Location
}

func (a *Arena) NewFamily(variants []Handle, loc source.Location) Handle {
	h := a.alloc(KindFamily)
	a.families = append(a.families, Family{Self: h, Variants: variants, Loc: loc})
	return h
}

func (a *Arena) Family(h Handle) *Family { return &a.families[a.indexOf(h)] }

// Cast and Bitcast, grounded on cast.h. Bitcast skips the numeric
// conversion cast.cpp performs and reinterprets the bit pattern instead,
// per spec.md §9 (narrowing behavior is left unspecified there; see
// DESIGN.md's Open Questions section).
type Cast struct {
	Self       Handle
	TargetType string
	Operand    Handle
	Loc        source.Location
}

func (a *Arena) NewCast(targetType string, operand Handle, loc source.Location) Handle {
	h := a.alloc(KindCast)
	a.casts = append(a.casts, Cast{Self: h, TargetType: targetType, Operand: operand, Loc: loc})
	return h
}

func (a *Arena) Cast(h Handle) *Cast { return &a.casts[a.indexOf(h)] }

type Bitcast struct {
	Self       Handle
	TargetType string
	Operand    Handle
	Loc        source.Location
}

func (a *Arena) NewBitcast(targetType string, operand Handle, loc source.Location) Handle {
	h := a.alloc(KindBitcast)
	a.bitcasts = append(a.bitcasts, Bitcast{Self: h, TargetType: targetType, Operand: operand, Loc: loc})
	return h
}

func (a *Arena) Bitcast(h Handle) *Bitcast { return &a.bitcasts[a.indexOf(h)] }

// Module, grounded on element_types.h's `program` shape, renamed to match
// spec.md's `module` keyword.
type Module struct {
	Self  Handle
	Name  string
	Body  Handle
	Scope Handle
	Loc   source.Location
}

func (a *Arena) NewModule(name string, body, scope Handle, loc source.Location) Handle {
	h := a.alloc(KindModule)
	a.modules = append(a.modules, Module{Self: h, Name: name, Body: body, Scope: scope, Loc: loc})
	return h
}

func (a *Arena) Module(h Handle) *Module { return &a.modules[a.indexOf(h)] }

type Import struct {
	Self Handle
	Path string
	Loc  source.Location
}

func (a *Arena) NewImport(path string, loc source.Location) Handle {
	h := a.alloc(KindImport)
	a.imports = append(a.imports, Import{Self: h, Path: path, Loc: loc})
	return h
}

func (a *Arena) Import(h Handle) *Import { return &a.imports[a.indexOf(h)] }

// Namespace, grounded on namespace_element.{h,cpp}; Qualifier is prefixed
// onto every Identifier declared within, feeding the Scope trie's
// qualified-name index.
type Namespace struct {
	Self      Handle
	Qualifier string
	Body      Handle
	Loc       source.Location
}

func (a *Arena) NewNamespace(qualifier string, body Handle, loc source.Location) Handle {
	h := a.alloc(KindNamespace)
	a.namespaces = append(a.namespaces, Namespace{Self: h, Qualifier: qualifier, Body: body, Loc: loc})
	return h
}

func (a *Arena) Namespace(h Handle) *Namespace { return &a.namespaces[a.indexOf(h)] }

type Defer struct {
	Self Handle
	Expr Handle
	Loc  source.Location
}

func (a *Arena) NewDefer(expr Handle, loc source.Location) Handle {
	h := a.alloc(KindDefer)
	a.defers = append(a.defers, Defer{Self: h, Expr: expr, Loc: loc})
	return h
}

func (a *Arena) Defer(h Handle) *Defer { return &a.defers[a.indexOf(h)] }

type Yield struct {
	Self  Handle
	Value Handle
	Loc   source.Location
}

func (a *Arena) NewYield(value Handle, loc source.Location) Handle {
	h := a.alloc(KindYield)
	a.yields = append(a.yields, Yield{Self: h, Value: value, Loc: loc})
	return h
}

func (a *Arena) Yield(h Handle) *Yield { return &a.yields[a.indexOf(h)] }

type Break struct {
	Self  Handle
	Label string
	Loc   source.Location
}

func (a *Arena) NewBreak(label string, loc source.Location) Handle {
	h := a.alloc(KindBreak)
	a.breaks = append(a.breaks, Break{Self: h, Label: label, Loc: loc})
	return h
}

func (a *Arena) Break(h Handle) *Break { return &a.breaks[a.indexOf(h)] }

type Continue struct {
	Self  Handle
	Label string
	Loc   source.Location
}

func (a *Arena) NewContinue(label string, loc source.Location) Handle {
	h := a.alloc(KindContinue)
	a.continues = append(a.continues, Continue{Self: h, Label: label, Loc: loc})
	return h
}

func (a *Arena) Continue(h Handle) *Continue { return &a.continues[a.indexOf(h)] }

// Return, grounded on return_element.{h,cpp}.
type Return struct {
	Self  Handle
	Value Handle // zero Handle for a bare `return`
	Loc   source.Location
}

func (a *Arena) NewReturn(value Handle, loc source.Location) Handle {
	h := a.alloc(KindReturn)
	a.returns = append(a.returns, Return{Self: h, Value: value, Loc: loc})
	return h
}

func (a *Arena) Return(h Handle) *Return { return &a.returns[a.indexOf(h)] }

type Goto struct {
	Self  Handle
	Label string
	Loc   source.Location
}

func (a *Arena) NewGoto(label string, loc source.Location) Handle {
	h := a.alloc(KindGoto)
	a.gotos = append(a.gotos, Goto{Self: h, Label: label, Loc: loc})
	return h
}

func (a *Arena) Goto(h Handle) *Goto { return &a.gotos[a.indexOf(h)] }

// With scopes a block to an expression's resolved fields (struct-literal
// field access sugar).
type With struct {
	Self    Handle
	Subject Handle
	Body    Handle
	Loc     source.Location
}

func (a *Arena) NewWith(subject, body Handle, loc source.Location) Handle {
	h := a.alloc(KindWith)
	a.withs = append(a.withs, With{Self: h, Subject: subject, Body: body, Loc: loc})
	return h
}

func (a *Arena) With(h Handle) *With { return &a.withs[a.indexOf(h)] }

// Use imports a namespace's identifiers unqualified into the current
// scope.
type Use struct {
	Self      Handle
	Qualifier string
	Loc       source.Location
}

func (a *Arena) NewUse(qualifier string, loc source.Location) Handle {
	h := a.alloc(KindUse)
	a.uses = append(a.uses, Use{Self: h, Qualifier: qualifier, Loc: loc})
	return h
}

func (a *Arena) Use(h Handle) *Use { return &a.uses[a.indexOf(h)] }
