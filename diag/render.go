package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/basecode-lang/basecode-sub005/source"
	"github.com/lucasb-eyer/go-colorful"
	runewidth "github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// contextLines is how many lines of surrounding source are shown above and
// below the offending line, per spec.md §4.2.
const contextLines = 4

var severityColor = map[Severity]colorful.Color{
	Info:    colorful.Color{R: 0.40, G: 0.60, B: 0.95},
	Warning: colorful.Color{R: 0.90, G: 0.70, B: 0.10},
	Error:   colorful.Color{R: 0.90, G: 0.20, B: 0.20},
}

// Render writes d to w, including four lines of context before and after
// the offending line and a caret under the offending column. When w is an
// ANSI-capable terminal, the offending span and the caret/message are
// colorized by severity.
func Render(w io.Writer, buf *source.Buffer, d Diagnostic) {
	ansi := isANSITerminal(w)

	fmt.Fprintf(w, "%s: %s\n", colorize(ansi, d.Severity, d.Severity.String()), d.Message)
	if d.Details != "" {
		fmt.Fprintf(w, "  %s\n", d.Details)
	}
	if d.Location == nil || buf == nil {
		return
	}

	startLine := d.Location.Start.Line
	firstLine := startLine - contextLines
	if firstLine < 0 {
		firstLine = 0
	}
	lastLine := startLine + contextLines

	for idx := firstLine; idx <= lastLine; idx++ {
		line, ok := buf.LineAt(idx)
		if !ok {
			break
		}
		text := strings.TrimRight(buf.LineText(line), "\n")
		marker := "  "
		if idx == startLine {
			marker = "> "
			text = highlightSpan(ansi, d, text)
		}
		fmt.Fprintf(w, "%s%4d | %s\n", marker, idx+1, text)
		if idx == startLine {
			fmt.Fprintf(w, "       | %s%s\n", strings.Repeat(" ", caretColumn(text, d.Location.Start.Column)), colorize(ansi, d.Severity, "^"))
		}
	}
}

// caretColumn converts a byte column into a rune-width-aware display
// column so multi-byte runes before the caret don't throw off alignment.
func caretColumn(line string, byteColumn int) int {
	if byteColumn > len(line) {
		byteColumn = len(line)
	}
	return runewidth.StringWidth(line[:byteColumn])
}

func highlightSpan(ansi bool, d Diagnostic, text string) string {
	if !ansi || d.Location.Start.Line != d.Location.End.Line {
		return text
	}
	start, end := d.Location.Start.Column, d.Location.End.Column
	if start < 0 || end > len(text) || start > end {
		return text
	}
	return text[:start] + colorize(ansi, d.Severity, text[start:end]) + text[end:]
}

func colorize(ansi bool, sev Severity, s string) string {
	if !ansi {
		return s
	}
	c := severityColor[sev]
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m", uint8(c.R*255), uint8(c.G*255), uint8(c.B*255), s)
}

func isANSITerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
