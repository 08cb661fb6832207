// Package diag implements the compiler's diagnostic model: typed codes,
// severities, an ordered collector, and source-highlighted rendering.
package diag

import (
	"fmt"

	"github.com/basecode-lang/basecode-sub005/source"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Code names a diagnostic kind. Codes are grouped loosely by phase, matching
// spec.md §7's representative list.
type Code string

const (
	// Source I/O / encoding
	CodeIOError         Code = "io_error"
	CodeIllegalUTF8      Code = "illegal_utf8_sequence"
	CodeEmbeddedNUL      Code = "embedded_nul_byte"
	CodeMisplacedBOM     Code = "misplaced_byte_order_mark"
	CodeSeekPastEnd      Code = "seek_past_end"

	// Lexical
	CodeUnexpectedChar        Code = "unexpected_character"
	CodeUnterminatedString    Code = "unterminated_string_literal"
	CodeUnterminatedComment   Code = "unterminated_block_comment"
	CodeUnterminatedBlockLit  Code = "unterminated_block_literal"
	CodeLetterAfterNumber     Code = "unexpected_letter_after_decimal_number_literal"
	CodeBadEscapeDigits       Code = "bad_escape_digits"
	CodeNumberOutOfRange      Code = "number_literal_out_of_range"
	CodeExpectedIdentifier    Code = "expected_identifier"
	CodeInvalidUnicodeCodePoint Code = "invalid_unicode_codepoint"
	CodeUnknownEscape         Code = "unknown_escape_sequence"

	// Syntactic
	CodeUndefinedProductionRule Code = "undefined_production_rule"
	CodeMissingOperatorRule     Code = "missing_operator_production_rule"
	CodeUnexpectedToken         Code = "unexpected_token"
	CodeExpectedExpression      Code = "expected_expression"
	CodeInvalidToken            Code = "invalid_token"
	CodeInvalidLvalue           Code = "assignment_requires_valid_lvalue"
	CodeInvalidNestedAssignment Code = "invalid_assignment_expression"

	// Semantic placeholder
	CodeIdentifierNotFound Code = "identifier_not_found"

	// Runtime / VM
	CodeDivisionByZero   Code = "division_by_zero"
	CodeInvalidOpcode    Code = "invalid_opcode"
	CodeUnmappedMemory   Code = "unmapped_memory"
	CodeStackUnderflow   Code = "stack_underflow"
	CodeStackOverflow    Code = "stack_overflow"
	CodeUnknownTrap      Code = "unknown_trap_number"
	CodeFFISymbolMissing Code = "ffi_symbol_not_found"
	CodeUnbalancedStack  Code = "unbalanced_stack_at_exit"
)

// Diagnostic is one structured compiler message.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Message  string
	Location *source.Location
	Details  string
}

func (d Diagnostic) Error() string {
	if d.Location != nil {
		return fmt.Sprintf("%s: %s: %s", d.Location, d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// New builds a Diagnostic with no location.
func New(code Code, sev Severity, message string) Diagnostic {
	return Diagnostic{Code: code, Severity: sev, Message: message}
}

// At attaches a source.Location to a Diagnostic, returning a new value.
func (d Diagnostic) At(loc source.Location) Diagnostic {
	d.Location = &loc
	return d
}

// WithDetails attaches a free-form details string.
func (d Diagnostic) WithDetails(details string) Diagnostic {
	d.Details = details
	return d
}
