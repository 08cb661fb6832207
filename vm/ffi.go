package vm

import "github.com/basecode-lang/basecode-sub005/diag"

// FFIType enumerates the ABI-visible scalar/pointer types spec.md §4.7
// requires at minimum for foreign-call marshaling.
type FFIType int

const (
	FFIVoid FFIType = iota
	FFIU8
	FFIU16
	FFIU32
	FFIU64
	FFII8
	FFII16
	FFII32
	FFII64
	FFIF32
	FFIF64
	FFIPointer
	FFIStructPtr
)

// FFISignature describes one registered foreign function: its symbol and
// owning library, and the ABI types of its return value and parameters.
type FFISignature struct {
	Symbol  string
	Library string
	Return  FFIType
	Params  []FFIType
}

// Handler is the Go-side implementation backing a registered FFISignature.
// No example in the corpus carries a libffi binding (cgo-based dynamic
// calling is outside every example's dependency set), so the bridge stops
// at "marshal register-file values into a typed Go call", recorded in
// DESIGN.md as a standard-library-only component.
type Handler func(args []Value) (Value, error)

// Bridge is the Terp's foreign-call table, keyed by trap number, grounded
// on the teacher's syscall.go trap dispatch (a table from syscall number to
// Go function) but generalized from ARM's fixed Linux syscall numbers to
// the spec's programmer-registered function_signature table.
type Bridge struct {
	signatures map[int]FFISignature
	handlers   map[int]Handler
}

// NewBridge returns an empty foreign-call table.
func NewBridge() *Bridge {
	return &Bridge{signatures: make(map[int]FFISignature), handlers: make(map[int]Handler)}
}

// Register associates a trap number with a signature and its Go-side
// implementation.
func (b *Bridge) Register(trap int, sig FFISignature, h Handler) {
	b.signatures[trap] = sig
	b.handlers[trap] = h
}

// Signature returns the signature registered for trap, if any.
func (b *Bridge) Signature(trap int) (FFISignature, bool) {
	sig, ok := b.signatures[trap]
	return sig, ok
}

// Call marshals args per the registered signature's parameter count and
// invokes the trap's handler, writing the handler's result as the trap's
// return Value. Reports CodeFFISymbolMissing for an unregistered trap and
// CodeUnknownTrap when arg count does not match the signature's arity.
func (b *Bridge) Call(trap int, args []Value) (Value, error) {
	sig, ok := b.signatures[trap]
	if !ok {
		return Value{}, &diag.Diagnostic{
			Code: diag.CodeFFISymbolMissing, Severity: diag.Error,
			Message: "trap has no registered foreign function signature",
		}
	}
	if len(args) != len(sig.Params) {
		return Value{}, &diag.Diagnostic{
			Code: diag.CodeUnknownTrap, Severity: diag.Error,
			Message: "foreign call argument count does not match signature arity",
		}
	}
	handler := b.handlers[trap]
	if handler == nil {
		return Value{}, &diag.Diagnostic{
			Code: diag.CodeFFISymbolMissing, Severity: diag.Error,
			Message: "trap signature registered without a callable handler",
		}
	}
	return handler(args)
}
