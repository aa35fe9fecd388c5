package store

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPrefsTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := InitDBWithPath(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSetPreference_RoundTrip(t *testing.T) {
	db := setupPrefsTestDB(t)

	err := SetPreference(db, "api_key", "secret123")
	require.NoError(t, err)

	got, err := GetPreference(db, "api_key")
	require.NoError(t, err)
	assert.Equal(t, "secret123", got)
}

func TestSetPreference_Overwrites(t *testing.T) {
	db := setupPrefsTestDB(t)

	require.NoError(t, SetPreference(db, "api_key", "old"))
	require.NoError(t, SetPreference(db, "api_key", "new"))

	got, err := GetPreference(db, "api_key")
	require.NoError(t, err)
	assert.Equal(t, "new", got)
}

func TestSetPreference_EmptyKey(t *testing.T) {
	db := setupPrefsTestDB(t)

	err := SetPreference(db, "  ", "value")
	assert.Error(t, err)
}

func TestGetPreference_Missing(t *testing.T) {
	db := setupPrefsTestDB(t)

	_, err := GetPreference(db, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePreference(t *testing.T) {
	db := setupPrefsTestDB(t)

	require.NoError(t, SetPreference(db, "api_key", "secret123"))
	require.NoError(t, DeletePreference(db, "api_key"))

	_, err := GetPreference(db, "api_key")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is a no-op, not an error.
	assert.NoError(t, DeletePreference(db, "api_key"))
}

func TestSchemaVersion(t *testing.T) {
	db := setupPrefsTestDB(t)

	current, latest, err := SchemaVersion(db)
	require.NoError(t, err)
	assert.Equal(t, latest, current, "fresh DB should be fully migrated")
	assert.GreaterOrEqual(t, latest, int64(1))
}
