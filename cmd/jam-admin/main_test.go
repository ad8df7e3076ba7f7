package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamapp/jam-admin/internal/constants"
	"github.com/jamapp/jam-admin/internal/database"
)

func TestNewRootCommand(t *testing.T) {
	root := newRootCommand()

	names := []string{}
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "migrate")
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func TestRunMigrate_SeedsCatalog(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "data", "jam.db")
	configPath := filepath.Join(dir, "jam.toml")
	content := "[service]\nstate_file = \"" + filepath.ToSlash(dbPath) + "\"\n\n" +
		"[catalog]\nactivities = [\"Quiz\", \"Darts\"]\nservings = [\"Beer\"]\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	root := newRootCommand()
	root.SetArgs([]string{"migrate", "--config", configPath})
	require.NoError(t, root.Execute())

	db, err := database.New(database.NewDefaultOptions(dbPath))
	require.NoError(t, err)
	defer db.Close()

	activities, err := database.NewCatalogStore(db).List(context.Background(), constants.TagKindActivity)
	require.NoError(t, err)
	assert.Equal(t, []string{"Quiz", "Darts"}, activities)
}

func TestRunMigrate_MissingConfigFile(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"migrate", "--config", filepath.Join(t.TempDir(), "missing.toml")})
	assert.Error(t, root.Execute())
}
