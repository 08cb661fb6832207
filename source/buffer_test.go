package source_test

import (
	"testing"

	"github.com/basecode-lang/basecode-sub005/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineByIndex_CoversEveryByte(t *testing.T) {
	buf, err := source.LoadString("t.bc", "a := 1;\nb := 2;\n")
	require.NoError(t, err)

	for i := 0; i < buf.Len(); i++ {
		line, ok := buf.LineByIndex(i)
		require.True(t, ok, "byte %d should belong to a line", i)
		assert.LessOrEqual(t, line.Begin, i)
		assert.Less(t, i, line.End)
	}
}

func TestSubstringMatchesLexeme(t *testing.T) {
	buf, err := source.LoadString("t.bc", "hello := 1;\n")
	require.NoError(t, err)

	assert.Equal(t, "hello", buf.Substring(0, 5))
}

func TestAppendsSyntheticTrailingNewline(t *testing.T) {
	buf, err := source.LoadString("t.bc", "x := 1;")
	require.NoError(t, err)

	assert.Equal(t, byte('\n'), buf.MakeSlice(buf.Len()-1, 1)[0])
}

func TestNextAdvancesAndPrevRetreats(t *testing.T) {
	buf, err := source.LoadString("t.bc", "ab\n")
	require.NoError(t, err)

	require.Equal(t, 'a', buf.Curr())
	r, err := buf.Next()
	require.NoError(t, err)
	assert.Equal(t, 'a', r)
	assert.Equal(t, 'b', buf.Curr())

	require.NoError(t, buf.Prev())
	assert.Equal(t, 'a', buf.Curr())
}

func TestPrevWithoutHistoryFails(t *testing.T) {
	buf, err := source.LoadString("t.bc", "a\n")
	require.NoError(t, err)

	err = buf.Prev()
	require.Error(t, err)
	var fault *source.Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, source.FaultNoMark, fault.Kind)
}

func TestMarkPushRestoreBacktracks(t *testing.T) {
	buf, err := source.LoadString("t.bc", "abcd\n")
	require.NoError(t, err)

	buf.PushMark()
	_, _ = buf.Next()
	_, _ = buf.Next()
	assert.Equal(t, 'c', buf.Curr())

	require.NoError(t, buf.RestoreTopMark())
	assert.Equal(t, 'a', buf.Curr())
}

func TestNextPastEndFails(t *testing.T) {
	buf, err := source.LoadString("t.bc", "")
	require.NoError(t, err)

	// synthetic newline is the only content
	_, err = buf.Next()
	require.NoError(t, err)

	_, err = buf.Next()
	require.Error(t, err)
	var fault *source.Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, source.FaultSeekPastEnd, fault.Kind)
}

func TestEmbeddedNULRejected(t *testing.T) {
	_, err := source.LoadString("t.bc", "a\x00b\n")
	require.Error(t, err)
	var fault *source.Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, source.FaultEmbeddedNUL, fault.Kind)
}

func TestMisplacedBOMRejected(t *testing.T) {
	_, err := source.LoadString("t.bc", "a\xef\xbb\xbfb\n")
	require.Error(t, err)
	var fault *source.Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, source.FaultMisplacedBOM, fault.Kind)
}

func TestLoadMissingFileFails(t *testing.T) {
	buf, err := source.Load("testdata/does-not-exist.bc")
	assert.Error(t, err)
	assert.Nil(t, buf)
}
