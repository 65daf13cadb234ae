package drive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	gdrive "google.golang.org/api/drive/v3"
)

// DownloadStats tallies one archive download.
type DownloadStats struct {
	Downloaded int      // files written locally
	Warnings   []string // per-file failures
}

// DownloadLatestBackup finds the newest archive folder and mirrors it into
// localRoot, which is created if needed. Returns the archive name alongside
// the download tally.
func (c *Client) DownloadLatestBackup(localRoot string) (string, *DownloadStats, error) {
	folders, err := c.listBackupFolders()
	if err != nil {
		return "", nil, fmt.Errorf("failed to list archives: %v", err)
	}
	if len(folders) == 0 {
		return "", nil, fmt.Errorf("no backup archives found on Drive")
	}

	latest := folders[0]
	stats := &DownloadStats{}
	if err := c.downloadTree(latest.Id, localRoot, stats); err != nil {
		return latest.Name, stats, err
	}
	return latest.Name, stats, nil
}

// downloadTree mirrors the Drive folder folderID into localDir. Sub-folders
// recurse; per-file failures are tallied and the walk continues.
func (c *Client) downloadTree(folderID, localDir string, stats *DownloadStats) error {
	if err := os.MkdirAll(localDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %v", localDir, err)
	}

	children, err := c.listChildren(folderID)
	if err != nil {
		return fmt.Errorf("failed to list archive contents: %v", err)
	}

	for _, child := range children {
		localPath := filepath.Join(localDir, child.Name)

		if child.MimeType == folderMimeType {
			if err := c.downloadTree(child.Id, localPath, stats); err != nil {
				return err
			}
			continue
		}

		if err := c.downloadFile(child.Id, localPath); err != nil {
			stats.Warnings = append(stats.Warnings, fmt.Sprintf("file %s: %v", child.Name, err))
			continue
		}
		stats.Downloaded++
	}

	return nil
}

// listChildren returns all direct children of folderID, paging as needed.
func (c *Client) listChildren(folderID string) ([]*gdrive.File, error) {
	clauses := []string{
		fmt.Sprintf("'%s' in parents", folderID),
		"trashed = false",
	}

	var all []*gdrive.File
	pageToken := ""
	for {
		call := c.srv.Files.List().
			Q(strings.Join(clauses, " and ")).
			Spaces("drive").
			Fields("nextPageToken, files(id, name, mimeType)").
			PageSize(1000)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		list, err := call.Do()
		if err != nil {
			return nil, err
		}
		all = append(all, list.Files...)

		pageToken = list.NextPageToken
		if pageToken == "" {
			return all, nil
		}
	}
}

// downloadFile writes the Drive file fileID to localPath.
func (c *Client) downloadFile(fileID, localPath string) error {
	resp, err := c.srv.Files.Get(fileID).Download()
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	out, err := os.Create(localPath)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(localPath)
		return err
	}
	return nil
}
