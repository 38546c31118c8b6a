package postgres

import (
	"testing"

	"github.com/BloggingApp/community-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations(t *testing.T) {
	migrations, err := Migrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	assert.Equal(t, 1, migrations[0].Version)
	for i := 1; i < len(migrations); i++ {
		assert.Greater(t, migrations[i].Version, migrations[i-1].Version)
	}
}

func TestMigrationsCreateSyncedTables(t *testing.T) {
	migrations, err := Migrations()
	require.NoError(t, err)

	var all string
	for _, m := range migrations {
		assert.NotEmpty(t, m.SQL, m.Name)
		all += m.SQL
	}

	for _, table := range []string{"comments", "stream_items", "log_items", "pictures"} {
		assert.Contains(t, all, "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
}

func TestParentNameQueriesCoverEveryKind(t *testing.T) {
	for _, kind := range []string{"Verse", "Recipe", "Note", "Picture"} {
		_, ok := parentNameQueries[model.ParentKind(kind)]
		assert.True(t, ok, kind)
	}
}
