// Package dbtest opens throwaway migrated databases for handler tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"feriwala/database"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// SetupTestDB opens a migrated sqlite file under t.TempDir and closes it on cleanup.
func SetupTestDB(t testing.TB) *sqlx.DB {
	t.Helper()

	dbConn, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(dbConn))

	t.Cleanup(func() {
		dbConn.Close()
	})
	return dbConn
}
