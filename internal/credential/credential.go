// Package credential resolves the chat API key used for error explanations.
//
// Resolution order: preference store first, environment variable second,
// absent otherwise. The key is re-read on every request and never cached,
// so `faultline key set` takes effect immediately.
package credential

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dotcommander/faultline/internal/app"
	"github.com/dotcommander/faultline/internal/store"
)

// PreferenceKey is the fixed preference-store key holding the API key.
const PreferenceKey = "api_key"

// Source identifies where a credential was found.
type Source string

const (
	SourceStore  Source = "store"
	SourceEnv    Source = "env"
	SourceAbsent Source = "absent"
)

// Credential is an API key plus its provenance. The zero value is the
// absent sentinel: absence is not an error.
type Credential struct {
	Value  string
	Source Source
}

// Found reports whether a usable key was resolved.
func (c Credential) Found() bool { return c.Value != "" }

// Resolver looks up, stores, and clears the API credential.
type Resolver struct {
	// OpenDB opens the preference store. Defaults to store.InitDB.
	OpenDB func() (*sql.DB, error)
	// EnvVar is the fallback environment variable name.
	EnvVar string
}

// NewResolver returns a Resolver wired to the default preference store and
// the configured fallback environment variable.
func NewResolver() *Resolver {
	return &Resolver{
		OpenDB: store.InitDB,
		EnvVar: app.EffectiveSettings().APIKeyEnv,
	}
}

// Get resolves the credential: preference store, then environment variable.
// A missing key in both places yields the absent sentinel, not an error.
// Store failures are logged and degrade to the environment lookup so a
// corrupt preferences file never blocks the fallback path.
func (r *Resolver) Get() Credential {
	if v, ok := r.fromStore(); ok {
		return Credential{Value: v, Source: SourceStore}
	}
	if v := strings.TrimSpace(os.Getenv(r.EnvVar)); v != "" {
		return Credential{Value: v, Source: SourceEnv}
	}
	return Credential{Source: SourceAbsent}
}

func (r *Resolver) fromStore() (string, bool) {
	db, err := r.OpenDB()
	if err != nil {
		slog.Default().Warn("credential: open preference store failed", "error", err)
		return "", false
	}
	defer func() { _ = db.Close() }()

	v, err := store.GetPreference(db, PreferenceKey)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.Default().Warn("credential: read preference failed", "error", err)
		}
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// Set persists value under the fixed preference key, overwriting any prior
// value. Plaintext storage.
func (r *Resolver) Set(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errors.New("credential must not be empty")
	}

	db, err := r.OpenDB()
	if err != nil {
		return fmt.Errorf("open preference store: %w", err)
	}
	defer func() { _ = db.Close() }()

	return store.SetPreference(db, PreferenceKey, value)
}

// Clear removes the stored credential. Clearing an absent key is a no-op.
func (r *Resolver) Clear() error {
	db, err := r.OpenDB()
	if err != nil {
		return fmt.Errorf("open preference store: %w", err)
	}
	defer func() { _ = db.Close() }()

	return store.DeletePreference(db, PreferenceKey)
}
