package drive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	gdrive "google.golang.org/api/drive/v3"
)

func TestBackupFolderName(t *testing.T) {
	ts := time.Date(2026, 8, 25, 14, 7, 0, 0, time.UTC)
	require.Equal(t, "backup_202608251407", BackupFolderName(ts))
}

func TestBackupFolderNamesSortChronologically(t *testing.T) {
	older := BackupFolderName(time.Date(2026, 8, 25, 9, 59, 0, 0, time.UTC))
	newer := BackupFolderName(time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC))
	require.Less(t, older, newer)
}

func TestIsBackupFolder(t *testing.T) {
	require.True(t, IsBackupFolder("backup_202608251407"))
	require.False(t, IsBackupFolder("backup_"))
	require.False(t, IsBackupFolder("backup_notadate"))
	require.False(t, IsBackupFolder("archive_202608251407"))
	require.False(t, IsBackupFolder("backup_2026082514070"))
}

func TestEscapeQuery(t *testing.T) {
	require.Equal(t, `it\'s`, escapeQuery("it's"))
	require.Equal(t, `a\\b`, escapeQuery(`a\b`))
	require.Equal(t, "plain", escapeQuery("plain"))
}

func TestFoldersBeyondRetention(t *testing.T) {
	folders := []*gdrive.File{
		{Name: "backup_202608251200"},
		{Name: "backup_202608241200"},
		{Name: "backup_202608231200"},
		{Name: "backup_202608221200"},
		{Name: "backup_202608211200"},
	}

	doomed := foldersBeyond(folders, 3)
	require.Len(t, doomed, 2)
	require.Equal(t, "backup_202608221200", doomed[0].Name)
	require.Equal(t, "backup_202608211200", doomed[1].Name)

	require.Nil(t, foldersBeyond(folders, 5))
	require.Nil(t, foldersBeyond(folders, 10))
	require.Nil(t, foldersBeyond(folders, -1))
	require.Len(t, foldersBeyond(folders, 0), 5)
}
