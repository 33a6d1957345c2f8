package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestGetMigrationsPath(t *testing.T) {
	t.Run("default path", func(t *testing.T) {
		assert.Equal(t, "migrations", GetMigrationsPath())
	})

	t.Run("custom path from env", func(t *testing.T) {
		t.Setenv("MIGRATIONS_PATH", "custom/migrations")
		assert.Equal(t, "custom/migrations", GetMigrationsPath())
	})
}

func TestMigrate(t *testing.T) {
	t.Run("nil db rejected", func(t *testing.T) {
		assert.Error(t, Migrate(nil))
	})

	t.Run("missing migrations directory rejected", func(t *testing.T) {
		t.Setenv("MIGRATIONS_PATH", "does/not/exist")

		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		require.NoError(t, err)

		err = Migrate(db)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "migrations directory does not exist")
	})
}
