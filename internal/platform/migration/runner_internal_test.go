// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	migrations "github.com/taibuivan/ludex/data/migrations"
)

/* TestToPgx5URL verifies the scheme rewrite for golang-migrate. */
func TestToPgx5URL(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"postgres://ludex@db:5432/ludex", "pgx5://ludex@db:5432/ludex"},
		{"postgresql://ludex@db/ludex?sslmode=disable", "pgx5://ludex@db/ludex?sslmode=disable"},
		{"pgx5://ludex@db/ludex", "pgx5://ludex@db/ludex"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, toPgx5URL(tc.dsn))
	}
}

/* TestEmbeddedMigrations verifies that every up migration has a down pair. */
func TestEmbeddedMigrations(t *testing.T) {
	ups, err := fs.Glob(migrations.FS, "*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, ups)

	downs, err := fs.Glob(migrations.FS, "*.down.sql")
	require.NoError(t, err)
	assert.Len(t, downs, len(ups))
}
