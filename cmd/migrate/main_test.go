package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMigrationPart(t *testing.T) {
	content := `
-- +migrate Up
CREATE TABLE campaigns (id serial PRIMARY KEY);
ALTER TABLE campaigns ADD COLUMN slug text;

-- +migrate Down
DROP TABLE campaigns;
`
	t.Run("Extract Up", func(t *testing.T) {
		up := extractMigrationPart(content, "Up")
		assert.Contains(t, up, "CREATE TABLE campaigns")
		assert.Contains(t, up, "ALTER TABLE campaigns")
		assert.NotContains(t, up, "DROP TABLE campaigns")
		assert.NotContains(t, up, "-- +migrate Up")
	})

	t.Run("Extract Down", func(t *testing.T) {
		down := extractMigrationPart(content, "Down")
		assert.Contains(t, down, "DROP TABLE campaigns")
		assert.NotContains(t, down, "CREATE TABLE campaigns")
	})
}

func TestSortStrings(t *testing.T) {
	// Timestamped filenames must apply oldest first.
	files := []string{
		"20250101000003_create_donations.sql",
		"20250101000001_create_users.sql",
		"20250101000002_create_campaigns.sql",
	}
	sortStrings(files)

	expected := []string{
		"20250101000001_create_users.sql",
		"20250101000002_create_campaigns.sql",
		"20250101000003_create_donations.sql",
	}
	assert.Equal(t, expected, files)
}

func TestRunMigrationsUp(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	tmpDir := t.TempDir()
	fileName := "20250101000001_create_users.sql"
	filePath := filepath.Join(tmpDir, fileName)

	content := "-- +migrate Up\nCREATE TABLE users (id serial PRIMARY KEY);"
	err = os.WriteFile(filePath, []byte(content), 0644)
	require.NoError(t, err)

	files := []string{filePath}

	// Not applied yet, so the file runs and gets recorded.
	mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
		WithArgs(fileName).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	mock.ExpectExec("CREATE TABLE users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectExec("INSERT INTO schema_migrations").
		WithArgs(fileName).
		WillReturnResult(sqlmock.NewResult(1, 1))

	runMigrationsUp(db, files)

	require.NoError(t, mock.ExpectationsWereMet())
}
