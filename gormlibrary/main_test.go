package gormlibrary_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/theplant/testenv"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/theplant/animefilter/gormlibrary"
)

// pgDB is the Postgres database started by testenv. It stays nil when no
// container runtime is available, and the Postgres variants are skipped.
var pgDB *gorm.DB

func TestMain(m *testing.M) {
	env, err := testenv.New().DBEnable(true).SetUp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "postgres tests disabled: %v\n", err)
		os.Exit(m.Run())
	}

	pgDB = env.DB
	pgDB.Logger = pgDB.Logger.LogMode(logger.Silent)

	code := m.Run()
	env.TearDown()
	os.Exit(code)
}

// newPostgresDB recreates the schema in the shared Postgres database.
func newPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()
	if pgDB == nil {
		t.Skip("postgres is not available")
	}
	require.NoError(t, pgDB.Migrator().DropTable(append([]any{"series_tags"}, gormlibrary.Models()...)...))
	require.NoError(t, gormlibrary.Migrate(context.Background(), pgDB))
	return pgDB
}

// forEachDriver runs fn against SQLite and, when available, Postgres.
func forEachDriver(t *testing.T, fn func(t *testing.T, db *gorm.DB)) {
	t.Run("sqlite", func(t *testing.T) {
		fn(t, newDB(t))
	})
	t.Run("postgres", func(t *testing.T) {
		fn(t, newPostgresDB(t))
	})
}
