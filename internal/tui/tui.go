// Package tui is the ncurses-style debugger front end spec.md §1 names as
// an external collaborator that "consumes a read-only view of VM state
// plus a command channel" — it never touches debugbridge.Bridge's Terp or
// Listing directly except through those read-only accessors. Grounded on
// the teacher's debugger/tui.go (tview.Application/Flex/TextView wiring),
// trimmed from its nine-panel layout down to the three views spec.md §4.10
// actually names: source/listing, registers, and breakpoints, plus the
// command line that feeds the bridge's command queue.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/basecode-lang/basecode-sub005/debugbridge"
)

// TUI is a thin, read-only consumer of a debugbridge.Bridge.
type TUI struct {
	Bridge *debugbridge.Bridge
	App    *tview.Application

	layout          *tview.Flex
	listingView     *tview.TextView
	registerView    *tview.TextView
	breakpointsView *tview.TextView
	commandInput    *tview.InputField
}

// New builds a TUI over bridge; call Run to start the event loop.
func New(bridge *debugbridge.Bridge) *TUI {
	t := &TUI{
		Bridge: bridge,
		App:    tview.NewApplication(),
	}
	t.initializeViews()
	t.buildLayout()
	return t
}

func (t *TUI) initializeViews() {
	t.listingView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.listingView.SetBorder(true).SetTitle(" Listing ")

	t.registerView = tview.NewTextView().SetDynamicColors(true)
	t.registerView.SetBorder(true).SetTitle(" Registers ")

	t.breakpointsView = tview.NewTextView().SetDynamicColors(true)
	t.breakpointsView.SetBorder(true).SetTitle(" Breakpoints ")

	t.commandInput = tview.NewInputField().SetLabel("> ")
	t.commandInput.SetBorder(true).SetTitle(" Command ")
	t.commandInput.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		t.dispatch(t.commandInput.GetText())
		t.commandInput.SetText("")
		t.Refresh()
	})
}

func (t *TUI) buildLayout() {
	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.registerView, 0, 2, false).
		AddItem(t.breakpointsView, 0, 1, false)

	body := tview.NewFlex().
		AddItem(t.listingView, 0, 3, false).
		AddItem(right, 0, 1, false)

	t.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(body, 0, 1, false).
		AddItem(t.commandInput, 3, 0, true)
}

// dispatch parses a single command line into a debugbridge.Command and
// enqueues it, per spec.md §5's "single shared memory window plus a
// command queue".
func (t *TUI) dispatch(line string) {
	switch strings.TrimSpace(line) {
	case "step", "s":
		t.Bridge.Commands() <- debugbridge.Command{Kind: debugbridge.CommandStep}
		_ = t.Bridge.Step(nil)
	case "run", "r", "continue", "c":
		t.Bridge.Commands() <- debugbridge.Command{Kind: debugbridge.CommandRun}
		_ = t.Bridge.Run(nil)
	case "stop":
		t.Bridge.Commands() <- debugbridge.Command{Kind: debugbridge.CommandStop}
	}
}

// Refresh redraws every panel from the bridge's current read-only state.
func (t *TUI) Refresh() {
	t.registerView.SetText(t.renderRegisters())
	t.breakpointsView.SetText(t.renderBreakpoints())
	t.listingView.SetText(t.Bridge.Listing.Render())
	t.App.Draw()
}

func (t *TUI) renderRegisters() string {
	live := t.Bridge.LiveRegisters()
	names := make([]string, 0, len(live))
	for name := range live {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintln(&b, debugbridge.FormatRegister(name, live[name]))
	}
	return b.String()
}

func (t *TUI) renderBreakpoints() string {
	var b strings.Builder
	for _, bp := range t.Bridge.Breakpoints() {
		status := "enabled"
		if !bp.Enabled {
			status = "disabled"
		}
		fmt.Fprintf(&b, "0x%08X %s\n", bp.Address, status)
	}
	return b.String()
}

// Run starts the tview event loop over the pre-built layout.
func (t *TUI) Run() error {
	t.Refresh()
	return t.App.SetRoot(t.layout, true).SetFocus(t.commandInput).Run()
}
