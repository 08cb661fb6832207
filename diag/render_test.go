package diag_test

import (
	"bytes"
	"testing"

	"github.com/basecode-lang/basecode-sub005/diag"
	"github.com/basecode-lang/basecode-sub005/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderIncludesCaretAndMessage(t *testing.T) {
	buf, err := source.LoadString("t.bc", "a := 1;\nb := ;\nc := 3;\n")
	require.NoError(t, err)

	d := diag.New(diag.CodeExpectedExpression, diag.Error, "expected expression").
		At(source.Location{Start: source.Position{Line: 1, Column: 5}, End: source.Position{Line: 1, Column: 6}})

	var out bytes.Buffer
	diag.Render(&out, buf, d)

	text := out.String()
	assert.Contains(t, text, "expected expression")
	assert.Contains(t, text, "b := ;")
	assert.Contains(t, text, "^")
}

func TestBagHasErrorsOnlyAfterErrorSeverity(t *testing.T) {
	bag := diag.NewBag()
	assert.False(t, bag.HasErrors())

	bag.Warnf(diag.CodeIdentifierNotFound, "looks unused")
	assert.False(t, bag.HasErrors())

	bag.Errorf(diag.CodeUnexpectedToken, "unexpected token")
	assert.True(t, bag.HasErrors())
	assert.Len(t, bag.All(), 2)
}
