package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basecode-lang/basecode-sub005/intern"
	"github.com/basecode-lang/basecode-sub005/source"
)

func TestScopeTrieDualIndexing(t *testing.T) {
	a := New(intern.New())
	scope := a.NewScope(Handle{})
	ident := a.NewIdentifier("bar", "foo.bar", false, Handle{}, source.Location{})
	a.Declare(scope, ident)

	gotNaked, ok := a.Resolve(scope, "bar")
	require.True(t, ok)
	assert.Equal(t, ident, gotNaked)

	gotQualified, ok := a.Resolve(scope, "foo.bar")
	require.True(t, ok)
	assert.Equal(t, ident, gotQualified)
}

func TestResolveWalksParentChain(t *testing.T) {
	a := New(intern.New())
	outer := a.NewScope(Handle{})
	inner := a.NewScope(outer)
	ident := a.NewIdentifier("x", "x", true, Handle{}, source.Location{})
	a.Declare(outer, ident)

	got, ok := a.Resolve(inner, "x")
	require.True(t, ok)
	assert.Equal(t, ident, got)

	_, ok = a.Resolve(outer, "nope")
	assert.False(t, ok)
}

func TestWalkVisitsEveryDescendant(t *testing.T) {
	a := New(intern.New())
	lhs := a.NewNumberLiteral(NumberLiteral{IntValue: 1}, source.Location{})
	rhs := a.NewNumberLiteral(NumberLiteral{IntValue: 2}, source.Location{})
	bin := a.NewBinaryOperator(BinAdd, lhs, rhs, source.Location{})
	stmt := a.NewStatement(bin, source.Location{})
	scope := a.NewScope(Handle{})
	block := a.NewBlock(scope, source.Location{})
	a.AppendStatement(block, stmt)

	all := a.Walk(block)
	assert.Contains(t, all, block)
	assert.Contains(t, all, stmt)
	assert.Contains(t, all, bin)
	assert.Contains(t, all, lhs)
	assert.Contains(t, all, rhs)
}

func TestApplyFoldResultReplacesBinaryOperand(t *testing.T) {
	a := New(intern.New())
	lhs := a.NewNumberLiteral(NumberLiteral{IntValue: 1}, source.Location{})
	rhs := a.NewNumberLiteral(NumberLiteral{IntValue: 2}, source.Location{})
	bin := a.NewBinaryOperator(BinAdd, lhs, rhs, source.Location{})

	folded := a.NewNumberLiteral(NumberLiteral{IntValue: 3}, source.Location{})
	a.ApplyFoldResult(bin, 0, folded)

	assert.Equal(t, folded, a.BinaryOperator(bin).LHS)
	assert.Equal(t, rhs, a.BinaryOperator(bin).RHS)
}

func TestChildrenSkipsZeroHandles(t *testing.T) {
	a := New(intern.New())
	cond := a.NewBooleanLiteral(true, source.Location{})
	scope := a.NewScope(Handle{})
	then := a.NewBlock(scope, source.Location{})
	ifNode := a.NewIf(cond, then, Handle{}, source.Location{})

	kids := a.Children(ifNode)
	assert.Len(t, kids, 2)
}
