package database_test

import (
	"testing"

	"cherishedwords/internal/database"
	"cherishedwords/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteMigrates(t *testing.T) {
	db, err := database.Open(database.DriverSQLite, "file:open_test?mode=memory&cache=shared")
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&models.Card{}))
	assert.True(t, db.Migrator().HasTable(&models.User{}))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := database.Open("mongo", "whatever")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}
