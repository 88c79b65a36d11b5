// SPDX-FileCopyrightText: 2026 The Nixdex Authors
// SPDX-License-Identifier: EUPL-1.2

package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_EnsureExists_CreatesSkeleton(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "managed-packages"))
	require.NoError(t, store.EnsureExists())

	content, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, Skeleton, string(content))

	flake, err := os.ReadFile(filepath.Join(store.Dir(), FlakeFile))
	require.NoError(t, err)
	assert.Contains(t, string(flake), "all-managed-packages")
}

func TestStore_EnsureExists_LeavesExistingFileAlone(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	require.NoError(t, store.EnsureExists())

	_, err := store.Add("custom", "ripgrep")
	require.NoError(t, err)

	// A second EnsureExists must not reset the edited manifest.
	require.NoError(t, store.EnsureExists())

	content, err := store.Read()
	require.NoError(t, err)

	entries, err := Entries(content, "custom")
	require.NoError(t, err)
	assert.Equal(t, []string{"ripgrep"}, entries)
}

func TestStore_Add_EndToEnd(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	added, err := store.Add("custom", "ripgrep")
	require.NoError(t, err)
	require.True(t, added)

	content, err := store.Read()
	require.NoError(t, err)

	entries, err := Entries(content, "custom")
	require.NoError(t, err)
	assert.Equal(t, []string{"ripgrep"}, entries)

	for _, category := range []string{"development", "productivity", "media", "utilities"} {
		entries, err := Entries(content, category)
		require.NoError(t, err)
		assert.Empty(t, entries)
	}

	// Duplicate add is a reported no-op, not a write.
	added, err = store.Add("custom", "ripgrep")
	require.ErrorIs(t, err, ErrDuplicateEntry)
	assert.False(t, added)
}

func TestStore_Add_SeesExternalEdits(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	require.NoError(t, store.EnsureExists())

	// Simulate the user editing packages.nix outside the tool.
	content, err := store.Read()
	require.NoError(t, err)

	edited, _, err := AddEntry(content, "development", "git")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(store.Path(), []byte(edited), 0o644))

	_, err = store.Add("development", "git")
	assert.ErrorIs(t, err, ErrDuplicateEntry)
}
