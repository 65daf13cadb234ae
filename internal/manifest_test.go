package internal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateManifest(t *testing.T) {
	require.NoError(t, ValidateManifest())
}

func TestStagingFoldersHaveNoCollisions(t *testing.T) {
	seen := make(map[string]string)
	for app, folder := range StagingFolders {
		require.NotEmpty(t, folder)
		other, dup := seen[folder]
		require.False(t, dup, "folder %s shared by %s and %s", folder, other, app)
		seen[folder] = app
	}
}

func TestAppOrderCoversEveryApp(t *testing.T) {
	require.Len(t, AppOrder, len(StagingFolders))
	for _, app := range AppOrder {
		require.Contains(t, StagingFolders, app)
	}
}

func TestStagingFolderFor(t *testing.T) {
	folder, err := StagingFolderFor("fish")
	require.NoError(t, err)
	require.Equal(t, "fish-data", folder)

	_, err = StagingFolderFor("emacs")
	require.Error(t, err)
}
