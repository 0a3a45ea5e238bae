package migrations

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_ContainsMigrations(t *testing.T) {
	names, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{"00001_create_users.sql", "00002_create_cereals.sql"}, names)
}

func TestUp_PassesDirAndDB(t *testing.T) {
	orig := gooseUp
	defer func() { gooseUp = orig }()

	var gotDir string
	gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
		gotDir = dir
		return nil
	}

	require.NoError(t, Up(context.Background(), nil))
	assert.Equal(t, ".", gotDir)
}

func TestUp_WrapsError(t *testing.T) {
	orig := gooseUp
	defer func() { gooseUp = orig }()

	gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
		return errors.New("boom")
	}

	err := Up(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "goose up: boom")
}
