package asmblk

import (
	"fmt"
	"strings"

	"github.com/klauspost/asmfmt"
	"github.com/mattn/go-runewidth"
)

// LineType classifies one ListingLine, per spec.md §4.10's
// `listing_line{address, source, type}`.
type LineType int

const (
	LineBlank LineType = iota
	LineInstruction
	LineDirective
	LineLabel
	LineComment
)

// ListingLine is one line of the source-interleaved disassembly the
// assembler maintains per source file.
type ListingLine struct {
	Address uint32
	Source  string
	Type    LineType
}

// Listing is an ordered set of ListingLines, the debugger bridge's and
// `-debug-listing` CLI flag's shared view of assembled code.
type Listing struct {
	Lines []ListingLine
}

// LineForAddress returns the listing line whose Address matches addr, the
// lookup the debugger bridge's "what source line contains address A?"
// query needs (spec.md §4.10).
func (l *Listing) LineForAddress(addr uint32) (ListingLine, bool) {
	for _, line := range l.Lines {
		if line.Type != LineBlank && line.Address == addr {
			return line, true
		}
	}
	return ListingLine{}, false
}

// Render formats the listing as address/mnemonic/comment columns, reusing
// klauspost/asmfmt's column normalization (the same role it plays
// formatting generated assembly in the ajroetker-goat sibling) and
// go-runewidth for rune-aware column widths when a mnemonic or comment
// contains multi-width runes.
func (l *Listing) Render() string {
	var b strings.Builder
	for _, line := range l.Lines {
		switch line.Type {
		case LineBlank:
			b.WriteByte('\n')
			continue
		case LineLabel:
			fmt.Fprintf(&b, "%08x %s:\n", line.Address, line.Source)
			continue
		case LineComment:
			fmt.Fprintf(&b, "%8s ; %s\n", "", line.Source)
			continue
		}
		col := runewidth.StringWidth(line.Source)
		pad := 0
		if col < 32 {
			pad = 32 - col
		}
		fmt.Fprintf(&b, "%08x %s%s\n", line.Address, line.Source, strings.Repeat(" ", pad))
	}
	formatted, err := asmfmt.Format(strings.NewReader(b.String()))
	if err != nil {
		return b.String()
	}
	return string(formatted)
}
