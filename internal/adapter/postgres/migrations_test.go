package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyExecutesAllMigrations(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS businesses").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS menu_items").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS orders").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS user_profiles").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Apply(context.Background(), db))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyStopsOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS businesses").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS menu_items").WillReturnError(errors.New("permission denied"))

	err = Apply(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0002_menu_items.sql")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrationsAreOrdered(t *testing.T) {
	migrations, err := Migrations()
	require.NoError(t, err)
	require.Len(t, migrations, 4)
	assert.Equal(t, "migrations/0001_businesses.sql", migrations[0].Name)
	assert.Equal(t, "migrations/0004_user_profiles.sql", migrations[3].Name)
}
