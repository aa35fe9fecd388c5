package trace

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTrace(n int) Backtrace {
	bt := make(Backtrace, n)
	for i := range bt {
		bt[i] = Frame{Function: fmt.Sprintf("main.f%d", i), File: "main.go", Line: i + 1}
	}
	return bt
}

func TestCapture_RecordsCaller(t *testing.T) {
	bt := Capture(0)
	require.NotEmpty(t, bt)
	assert.Contains(t, bt[0].Function, "TestCapture_RecordsCaller")
}

func TestReversed(t *testing.T) {
	bt := makeTrace(3)
	rev := bt.Reversed()
	assert.Equal(t, "main.f2", rev[0].Function)
	assert.Equal(t, "main.f0", rev[2].Function)
	// Original untouched.
	assert.Equal(t, "main.f0", bt[0].Function)
}

func TestPlain(t *testing.T) {
	bt := makeTrace(2)
	got := bt.Plain()
	assert.Equal(t, "main.go:1 main.f0\nmain.go:2 main.f1", got)
	assert.Empty(t, Backtrace(nil).Plain())
}

func TestTruncateOverflow_ShortTraceUnchanged(t *testing.T) {
	bt := makeTrace(50)
	got := TruncateOverflow(bt)
	assert.Equal(t, bt, got)
}

func TestTruncateOverflow_KeepsEdges(t *testing.T) {
	bt := makeTrace(1000)
	got := TruncateOverflow(bt)
	require.Len(t, got, 50)
	assert.Equal(t, bt[:25], got[:25], "first 25 original frames, order preserved")
	assert.Equal(t, bt[975:], got[25:], "last 25 original frames, order preserved")
}

type valueOutOfRange struct{ msg string }

func (e *valueOutOfRange) Error() string { return e.msg }

func TestTypeName(t *testing.T) {
	assert.Equal(t, "valueOutOfRange", TypeName(&valueOutOfRange{msg: "x"}))
	assert.Equal(t, "error", TypeName(nil))
	assert.NotEmpty(t, TypeName(errors.New("plain")))
}

func TestIsOverflow(t *testing.T) {
	assert.False(t, IsOverflow(errors.New("boom")))
	assert.False(t, IsOverflow(nil))
}

func TestClassifier_HideAndShow(t *testing.T) {
	c := DefaultClassifier()
	assert.True(t, c.Hidden(Frame{Function: "runtime.gopanic"}))
	assert.False(t, c.Hidden(Frame{Function: "main.run"}))

	c.ShowPrefixes = []string{"runtime.gopanic"}
	assert.False(t, c.Hidden(Frame{Function: "runtime.gopanic"}), "show list wins")
}

func TestClassifier_Visible(t *testing.T) {
	c := DefaultClassifier()
	bt := Backtrace{
		{Function: "main.run"},
		{Function: "runtime.gopanic"},
		{Function: "main.main"},
	}
	vis, hidden := c.Visible(bt)
	assert.Equal(t, 1, hidden)
	require.Len(t, vis, 2)
	assert.Equal(t, "main.run", vis[0].Function)
}
