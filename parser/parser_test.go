package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basecode-lang/basecode-sub005/ast"
	"github.com/basecode-lang/basecode-sub005/diag"
	"github.com/basecode-lang/basecode-sub005/intern"
	"github.com/basecode-lang/basecode-sub005/source"
)

func parseModule(t *testing.T, text string) (*Parser, ast.Handle) {
	t.Helper()
	buf, err := source.LoadString("t.bc", text)
	require.NoError(t, err)
	p := New(buf, intern.New(), diag.NewBag())
	mod, _ := p.ParseModule()
	return p, mod
}

func TestDeclareAndResolveIdentifier(t *testing.T) {
	p, mod := parseModule(t, "x := 5; y := x + 1;")
	require.False(t, p.diags.HasErrors())

	a := p.Arena()
	block := a.Module(mod).Body
	stmts := a.Block(block).Statements
	require.Len(t, stmts, 2)

	xAssign := a.Statement(stmts[0]).Expr
	require.Equal(t, ast.KindAssignmentOperator, a.Kind(xAssign))
	xIdent := a.AssignmentOperator(xAssign).Target
	require.Equal(t, ast.KindIdentifier, a.Kind(xIdent))
	assert.Equal(t, "x", a.Identifier(xIdent).Name)

	yAssign := a.Statement(stmts[1]).Expr
	require.Equal(t, ast.KindAssignmentOperator, a.Kind(yAssign))
	bin := a.AssignmentOperator(yAssign).Value
	require.Equal(t, ast.KindBinaryOperator, a.Kind(bin))
	lhs := a.BinaryOperator(bin).LHS
	require.Equal(t, ast.KindIdentifierRef, a.Kind(lhs))
	assert.Equal(t, xIdent, a.IdentifierRef(lhs).Resolved)
}

func TestCompoundAssignDesugars(t *testing.T) {
	p, mod := parseModule(t, "x := 1; x +:= 2;")
	require.False(t, p.diags.HasErrors())
	a := p.Arena()
	block := a.Module(mod).Body
	stmts := a.Block(block).Statements
	assignExpr := a.Statement(stmts[1]).Expr
	require.Equal(t, ast.KindAssignmentOperator, a.Kind(assignExpr))
	assign := a.AssignmentOperator(assignExpr)
	require.Equal(t, ast.KindBinaryOperator, a.Kind(assign.Value))
	bin := a.BinaryOperator(assign.Value)
	assert.Equal(t, ast.BinAdd, bin.Op)
	assert.Equal(t, assign.Target, bin.LHS)
}

func TestBindingPowerLeavesPrecedence(t *testing.T) {
	p, mod := parseModule(t, "x := 1 + 2 * 3;")
	require.False(t, p.diags.HasErrors())
	a := p.Arena()
	block := a.Module(mod).Body
	stmt := a.Block(block).Statements[0]
	assign := a.Statement(stmt).Expr
	require.Equal(t, ast.KindAssignmentOperator, a.Kind(assign))
	top := a.AssignmentOperator(assign).Value
	bin := a.BinaryOperator(top)
	assert.Equal(t, ast.BinAdd, bin.Op)
	rhs := a.BinaryOperator(bin.RHS)
	assert.Equal(t, ast.BinMul, rhs.Op)
}

func TestAssignmentRejectsInvalidLvalue(t *testing.T) {
	p, _ := parseModule(t, "1 = 2;")
	assert.True(t, p.diags.HasErrors())
}

func TestIfElseParses(t *testing.T) {
	p, mod := parseModule(t, "if true { x := 1; } else { x := 2; };")
	require.False(t, p.diags.HasErrors())
	a := p.Arena()
	block := a.Module(mod).Body
	stmt := a.Block(block).Statements[0]
	ifExpr := a.Statement(stmt).Expr
	require.Equal(t, ast.KindIf, a.Kind(ifExpr))
	ifNode := a.If(ifExpr)
	assert.True(t, ifNode.Else.Valid())
}

func TestMemberSelectRequiresLvalue(t *testing.T) {
	p, _ := parseModule(t, "(1 + 2).field;")
	assert.True(t, p.diags.HasErrors())
}
