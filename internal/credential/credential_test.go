package credential

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dotcommander/faultline/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEnvVar = "FAULTLINE_TEST_API_KEY"

func testResolver(t *testing.T) *Resolver {
	t.Helper()
	// A file-backed DB so each OpenDB call sees the same data, matching the
	// read-on-every-request contract.
	dbPath := filepath.Join(t.TempDir(), "prefs.db")
	return &Resolver{
		OpenDB: func() (*sql.DB, error) { return store.InitDBWithPath(dbPath) },
		EnvVar: testEnvVar,
	}
}

func TestResolver_AbsentByDefault(t *testing.T) {
	r := testResolver(t)
	t.Setenv(testEnvVar, "")

	cred := r.Get()
	assert.False(t, cred.Found())
	assert.Equal(t, SourceAbsent, cred.Source)
}

func TestResolver_SetGetClearRoundTrip(t *testing.T) {
	r := testResolver(t)
	t.Setenv(testEnvVar, "")

	require.NoError(t, r.Set("X"))

	cred := r.Get()
	require.True(t, cred.Found())
	assert.Equal(t, "X", cred.Value)
	assert.Equal(t, SourceStore, cred.Source)

	require.NoError(t, r.Clear())

	cred = r.Get()
	assert.False(t, cred.Found())
	assert.Equal(t, SourceAbsent, cred.Source)
}

func TestResolver_EnvFallback(t *testing.T) {
	r := testResolver(t)
	t.Setenv(testEnvVar, "from-env")

	cred := r.Get()
	require.True(t, cred.Found())
	assert.Equal(t, "from-env", cred.Value)
	assert.Equal(t, SourceEnv, cred.Source)
}

func TestResolver_StoreWinsOverEnv(t *testing.T) {
	r := testResolver(t)
	t.Setenv(testEnvVar, "from-env")
	require.NoError(t, r.Set("from-store"))

	cred := r.Get()
	assert.Equal(t, "from-store", cred.Value)
	assert.Equal(t, SourceStore, cred.Source)
}

func TestResolver_SetEmptyRejected(t *testing.T) {
	r := testResolver(t)
	assert.Error(t, r.Set("   "))
}

func TestResolver_ClearAbsentIsNoop(t *testing.T) {
	r := testResolver(t)
	assert.NoError(t, r.Clear())
}
