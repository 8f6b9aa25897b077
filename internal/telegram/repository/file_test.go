package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"lang_bot/internal/telegram/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSettingsRepositoryRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data", "language_tools")
	repo, err := NewFileSettingsRepository(dir)
	require.NoError(t, err)

	ctx := context.Background()
	settings := map[string]models.GroupSettings{
		"12345":          {Standard: true},
		"-1001234567890": {CTE: true},
	}
	require.NoError(t, repo.SaveGroupSettings(ctx, settings))
	require.NoError(t, repo.SaveBlacklist(ctx, []string{"42", "7"}))

	gotSettings, err := repo.LoadGroupSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings, gotSettings)

	gotUsers, err := repo.LoadBlacklist(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"42", "7"}, gotUsers)

	raw, err := os.ReadFile(filepath.Join(dir, GroupSettingsFile))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  \"12345\": {\n    \"standard\": true,\n    \"cte\": false\n  }")
}

func TestFileSettingsRepositoryMissingFiles(t *testing.T) {
	repo, err := NewFileSettingsRepository(t.TempDir())
	require.NoError(t, err)

	settings, err := repo.LoadGroupSettings(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, settings)
	assert.Empty(t, settings)

	users, err := repo.LoadBlacklist(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestFileSettingsRepositoryMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, GroupSettingsFile), []byte("{not json"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, BlacklistFile), []byte(`{"a":1}`), 0o644))

	repo, err := NewFileSettingsRepository(dir)
	require.NoError(t, err)

	settings, err := repo.LoadGroupSettings(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
	assert.Empty(t, settings)

	_, err = repo.LoadBlacklist(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestFileSettingsRepositorySaveNilWritesEmptyDocuments(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileSettingsRepository(dir)
	require.NoError(t, err)

	require.NoError(t, repo.SaveGroupSettings(context.Background(), nil))
	require.NoError(t, repo.SaveBlacklist(context.Background(), nil))

	raw, err := os.ReadFile(filepath.Join(dir, GroupSettingsFile))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(raw))

	raw, err = os.ReadFile(filepath.Join(dir, BlacklistFile))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "temp files must not be left behind")
}
