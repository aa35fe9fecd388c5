package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dotcommander/faultline/internal/app"
)

func useTempPrefsDB(t *testing.T) {
	t.Helper()
	app.SetDBPathOverride(filepath.Join(t.TempDir(), "prefs.db"))
	t.Cleanup(func() { app.SetDBPathOverride("") })
}

func TestNewKeyCmd_HasExpectedSubcommands(t *testing.T) {
	cmd := NewKeyCmd()
	require.Equal(t, "key", cmd.Use)

	for _, name := range []string{"set", "clear", "status"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		require.NotNil(t, sub)
		require.Equal(t, name, sub.Name())
	}
}

func TestKeySetCmd_EmptyValueReturnsPrintedError(t *testing.T) {
	useTempPrefsDB(t)

	cmd := newKeySetCmd()
	err := cmd.RunE(cmd, []string{"   "})
	require.Error(t, err)
	require.EqualError(t, err, "error already printed")
	require.IsType(t, printedError{}, err)
}

func TestKeySetClearStatus_RoundTrip(t *testing.T) {
	useTempPrefsDB(t)
	t.Setenv(app.DefaultAPIKeyEnv, "")

	set := newKeySetCmd()
	require.NoError(t, set.RunE(set, []string{"sk-test-123"}))

	clear := newKeyClearCmd()
	require.NoError(t, clear.RunE(clear, nil))

	status := newKeyStatusCmd()
	require.NoError(t, status.RunE(status, nil))
}

func TestDemoCmd_UnknownKindReturnsPrintedError(t *testing.T) {
	cmd := NewDemoCmd()
	require.NoError(t, cmd.Flags().Set("kind", "nonsense"))

	err := cmd.RunE(cmd, nil)
	require.Error(t, err)
	require.EqualError(t, err, "error already printed")
}

func TestSplitErrorText(t *testing.T) {
	msg, bt := splitErrorText("boom\nmain.go:1 main.main")
	require.Equal(t, "boom", msg)
	require.Equal(t, "main.go:1 main.main", bt)

	msg, bt = splitErrorText("only message")
	require.Equal(t, "only message", msg)
	require.Empty(t, bt)

	msg, bt = splitErrorText("   ")
	require.Empty(t, msg)
	require.Empty(t, bt)
}
