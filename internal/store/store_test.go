package store

import (
	"database/sql"
	"testing"

	"pressroom/internal/database/dbtest"
)

// purgeOnCleanup deletes the rows whose column matches one of values when
// the test ends. Table and column names come from the tests themselves.
func purgeOnCleanup(t *testing.T, db *sql.DB, table, column string, values ...string) {
	t.Helper()
	t.Cleanup(func() {
		for _, v := range values {
			if _, err := db.Exec(`DELETE FROM `+table+` WHERE `+column+` = $1`, v); err != nil {
				t.Logf("cleanup %s %s=%q: %v", table, column, v, err)
			}
		}
	})
}

// integrationDB is dbtest.Open, named for readability at call sites.
func integrationDB(t *testing.T) *sql.DB {
	t.Helper()
	return dbtest.Open(t)
}
