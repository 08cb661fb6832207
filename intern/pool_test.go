package intern_test

import (
	"testing"

	"github.com/basecode-lang/basecode-sub005/intern"
	"github.com/stretchr/testify/assert"
)

func TestInternDeduplicates(t *testing.T) {
	p := intern.New()

	h1, inserted1 := p.InternString("numbers::to_roman_numeral")
	assert.True(t, inserted1)

	h2, inserted2 := p.InternString("numbers::to_roman_numeral")
	assert.False(t, inserted2)
	assert.Equal(t, h1, h2)

	h3, _ := p.InternString("to_roman_numeral")
	assert.NotEqual(t, h1, h3)

	assert.Equal(t, "numbers::to_roman_numeral", p.String(h1))
	assert.Equal(t, 2, p.Len())
}

func TestZeroHandleInvalid(t *testing.T) {
	var h intern.Handle
	assert.False(t, h.Valid())
}
