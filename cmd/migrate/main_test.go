package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sample = `
-- +migrate Up
CREATE TABLE users (id int);
ALTER TABLE users ADD COLUMN name text;

-- +migrate Down
DROP TABLE users;
`

func TestSection(t *testing.T) {
	t.Run("Up", func(t *testing.T) {
		up := section(sample, sectionUp)
		assert.Contains(t, up, "CREATE TABLE users")
		assert.Contains(t, up, "ALTER TABLE users")
		assert.NotContains(t, up, "DROP TABLE users")
		assert.NotContains(t, up, "-- +migrate")
	})

	t.Run("Down", func(t *testing.T) {
		down := section(sample, sectionDown)
		assert.Contains(t, down, "DROP TABLE users")
		assert.NotContains(t, down, "CREATE TABLE users")
	})

	t.Run("Missing", func(t *testing.T) {
		assert.Empty(t, section("-- +migrate Up\nSELECT 1;", sectionDown))
	})
}

func newMigrator(t *testing.T, files map[string]string) (*migrator, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return &migrator{db: db, dir: dir, log: zap.NewNop()}, mock
}

func TestFilesSorted(t *testing.T) {
	m, _ := newMigrator(t, map[string]string{
		"002_orders.sql": "", "001_users.sql": "", "003_reviews.sql": "", "notes.txt": "",
	})
	files, err := m.files()
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	assert.Equal(t, []string{"001_users.sql", "002_orders.sql", "003_reviews.sql"}, names)
}

func TestRunUp(t *testing.T) {
	m, mock := newMigrator(t, map[string]string{
		"001_init.sql": "-- +migrate Up\nCREATE TABLE test (id int);\n-- +migrate Down\nDROP TABLE test;",
		"002_more.sql": "-- +migrate Up\nCREATE TABLE more (id int);",
	})

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
		WithArgs("001_init.sql").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
		WithArgs("002_more.sql").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE more").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schema_migrations").
		WithArgs("002_more.sql").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, m.run(context.Background(), "up"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunUpFailureRollsBack(t *testing.T) {
	m, mock := newMigrator(t, map[string]string{
		"001_init.sql": "-- +migrate Up\nCREATE TABLE test (id int);",
	})

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
		WithArgs("001_init.sql").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE test").WillReturnError(errors.New("syntax error"))
	mock.ExpectRollback()

	err := m.run(context.Background(), "up")
	assert.ErrorContains(t, err, "001_init.sql")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunDown(t *testing.T) {
	m, mock := newMigrator(t, map[string]string{
		"001_init.sql": "-- +migrate Up\nCREATE TABLE test (id int);\n-- +migrate Down\nDROP TABLE test;",
	})

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT version FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("001_init.sql"))
	mock.ExpectBegin()
	mock.ExpectExec("DROP TABLE test").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM schema_migrations").
		WithArgs("001_init.sql").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, m.run(context.Background(), "down"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunDownNothingApplied(t *testing.T) {
	m, mock := newMigrator(t, nil)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT version FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"version"}))

	require.NoError(t, m.run(context.Background(), "down"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunUnknownMode(t *testing.T) {
	m, mock := newMigrator(t, nil)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, m.run(context.Background(), "sideways"), ErrUnknownMode)
}
