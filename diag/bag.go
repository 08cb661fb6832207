package diag

import "fmt"

func sprintf(format string, args ...interface{}) string { return fmt.Sprintf(format, args...) }

// Bag is an ordered diagnostic collector shared across a compilation
// phase. A caller consults HasErrors to short-circuit the next phase,
// matching the teacher's ErrorList.
type Bag struct {
	diagnostics []Diagnostic
	errorCount  int
}

// NewBag returns an empty Bag.
func NewBag() *Bag {
	return &Bag{}
}

// Add records d in insertion order.
func (b *Bag) Add(d Diagnostic) {
	b.diagnostics = append(b.diagnostics, d)
	if d.Severity == Error {
		b.errorCount++
	}
}

// Errorf is a convenience for Add(New(code, Error, ...)).
func (b *Bag) Errorf(code Code, format string, args ...interface{}) Diagnostic {
	d := New(code, Error, sprintf(format, args...))
	b.Add(d)
	return d
}

// Warnf is a convenience for Add(New(code, Warning, ...)).
func (b *Bag) Warnf(code Code, format string, args ...interface{}) Diagnostic {
	d := New(code, Warning, sprintf(format, args...))
	b.Add(d)
	return d
}

// HasErrors reports whether any Error-severity diagnostic was recorded.
func (b *Bag) HasErrors() bool { return b.errorCount > 0 }

// All returns every diagnostic in insertion order.
func (b *Bag) All() []Diagnostic { return b.diagnostics }

// Merge appends other's diagnostics onto b, preserving order.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	for _, d := range other.diagnostics {
		b.Add(d)
	}
}
