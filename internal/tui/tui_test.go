package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basecode-lang/basecode-sub005/asmblk"
	"github.com/basecode-lang/basecode-sub005/debugbridge"
	"github.com/basecode-lang/basecode-sub005/diag"
	"github.com/basecode-lang/basecode-sub005/source"
	"github.com/basecode-lang/basecode-sub005/terp"
	"github.com/basecode-lang/basecode-sub005/vm"
)

func newTestTUI(t *testing.T) *TUI {
	t.Helper()
	instr, err := asmblk.NewInstruction(asmblk.OpExit, asmblk.SizeQWord, asmblk.Operand{}, nil, source.Location{})
	require.NoError(t, err)
	encoded, err := asmblk.Encode(instr, nil)
	require.NoError(t, err)

	term := terp.New(4096, 1024, diag.NewBag())
	require.NoError(t, term.LoadProgram(encoded))

	bridge := debugbridge.New(term, &asmblk.Listing{})
	return New(bridge)
}

func TestNewBuildsAllPanels(t *testing.T) {
	tui := newTestTUI(t)
	assert.NotNil(t, tui.listingView)
	assert.NotNil(t, tui.registerView)
	assert.NotNil(t, tui.breakpointsView)
	assert.NotNil(t, tui.commandInput)
	assert.NotNil(t, tui.layout)
}

func TestRenderRegistersListsPC(t *testing.T) {
	tui := newTestTUI(t)
	out := tui.renderRegisters()
	assert.Contains(t, out, "PC")
}

func TestRenderBreakpointsShowsEnabledState(t *testing.T) {
	tui := newTestTUI(t)
	tui.Bridge.SetBreakpoint(debugbridge.Breakpoint{
		Address: tui.Bridge.Terp.HeapVector(vm.VectorProgramStart),
		Enabled: true, Kind: debugbridge.BreakpointSimple,
	})
	out := tui.renderBreakpoints()
	assert.Contains(t, out, "enabled")
}

func TestDispatchStepAdvancesMachine(t *testing.T) {
	tui := newTestTUI(t)
	tui.dispatch("step")
	assert.True(t, tui.Bridge.Terp.HasExited())
}

func TestDispatchUnknownCommandIsANoOp(t *testing.T) {
	tui := newTestTUI(t)
	tui.dispatch("banana")
	assert.False(t, tui.Bridge.Terp.HasExited())
}
