package database

import (
	"io/fs"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	names, err := fs.Glob(Migrations, "migrations/*.sql")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"migrations/000001_highscore.up.sql",
		"migrations/000001_highscore.down.sql",
	}, names)

	source, err := iofs.New(Migrations, "migrations")
	require.NoError(t, err)
	defer source.Close()

	first, err := source.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	r, identifier, err := source.ReadUp(first)
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, "highscore", identifier)
}
