package source

import "fmt"

// FaultKind categorizes a Source Buffer failure.
type FaultKind int

const (
	FaultIO FaultKind = iota
	FaultInvalidUTF8
	FaultEmbeddedNUL
	FaultMisplacedBOM
	FaultSeekPastEnd
	FaultNoMark
)

func (k FaultKind) String() string {
	switch k {
	case FaultIO:
		return "io_error"
	case FaultInvalidUTF8:
		return "illegal_utf8_sequence"
	case FaultEmbeddedNUL:
		return "embedded_nul_byte"
	case FaultMisplacedBOM:
		return "misplaced_byte_order_mark"
	case FaultSeekPastEnd:
		return "seek_past_end"
	case FaultNoMark:
		return "no_mark_to_restore"
	default:
		return "unknown_fault"
	}
}

// Fault is a structured Source Buffer error carrying the exact byte offset
// at which it was detected.
type Fault struct {
	Kind    FaultKind
	Offset  int
	Message string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s at byte %d: %s", f.Kind, f.Offset, f.Message)
}

func newFault(kind FaultKind, offset int, format string, args ...interface{}) *Fault {
	return &Fault{Kind: kind, Offset: offset, Message: fmt.Sprintf(format, args...)}
}
