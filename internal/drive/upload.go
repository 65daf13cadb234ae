package drive

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	gdrive "google.golang.org/api/drive/v3"
)

// UploadStats tallies one archive upload.
type UploadStats struct {
	Uploaded int      // files created or updated
	Failed   int      // files that could not be uploaded
	Warnings []string // one line per failed file
}

// CreateBackup uploads the staging directory as a new timestamped archive
// folder and prunes archives beyond the retention count. Returns the archive
// folder name alongside the upload tally.
func (c *Client) CreateBackup(stagingRoot string) (string, *UploadStats, error) {
	name := BackupFolderName(time.Now())

	archiveID, err := c.ensureFolder(name, c.ParentID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create archive folder %s: %v", name, err)
	}

	stats, err := c.uploadTree(stagingRoot, archiveID)
	if err != nil {
		return name, stats, err
	}

	if err := c.CleanupOldBackups(RetainedBackups); err != nil {
		stats.Warnings = append(stats.Warnings, fmt.Sprintf("archive cleanup failed: %v", err))
	}

	return name, stats, nil
}

// uploadTree mirrors the local directory into the Drive folder folderID.
// Directories become folders; files are created, or updated in place when a
// file of the same name already exists. Per-file failures are tallied and the
// walk continues.
func (c *Client) uploadTree(localRoot, folderID string) (*UploadStats, error) {
	stats := &UploadStats{}

	// Path -> folder ID cache so each directory is resolved once
	folderIDs := map[string]string{".": folderID}

	err := filepath.WalkDir(localRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(localRoot, path)
		if err != nil || rel == "." {
			return nil
		}

		parentID := folderIDs[filepath.Dir(rel)]
		if parentID == "" {
			// Parent folder creation failed earlier; skip this subtree
			return nil
		}

		if d.IsDir() {
			id, err := c.ensureFolder(d.Name(), parentID)
			if err != nil {
				stats.Failed++
				stats.Warnings = append(stats.Warnings, fmt.Sprintf("folder %s: %v", rel, err))
				return filepath.SkipDir
			}
			folderIDs[rel] = id
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		if err := c.uploadFile(path, d.Name(), parentID); err != nil {
			stats.Failed++
			stats.Warnings = append(stats.Warnings, fmt.Sprintf("file %s: %v", rel, err))
			return nil
		}
		stats.Uploaded++
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("failed to walk staging directory: %v", err)
	}

	return stats, nil
}

// uploadFile creates name under parentID from the local file at path, or
// updates the existing remote file of that name.
func (c *Client) uploadFile(path, name, parentID string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	existingID, err := c.findChild(name, parentID, false)
	if err != nil {
		return err
	}

	if existingID != "" {
		_, err = c.srv.Files.Update(existingID, &gdrive.File{}).Media(f).Do()
		return err
	}

	meta := &gdrive.File{Name: name, Parents: []string{parentID}}
	_, err = c.srv.Files.Create(meta).Media(f).Fields("id").Do()
	return err
}

// ensureFolder returns the ID of the folder called name under parentID,
// creating it if it does not exist.
func (c *Client) ensureFolder(name, parentID string) (string, error) {
	id, err := c.findChild(name, parentID, true)
	if err != nil {
		return "", err
	}
	if id != "" {
		return id, nil
	}

	meta := &gdrive.File{Name: name, MimeType: folderMimeType}
	if parentID != "" {
		meta.Parents = []string{parentID}
	}
	created, err := c.srv.Files.Create(meta).Fields("id").Do()
	if err != nil {
		return "", err
	}
	return created.Id, nil
}

// findChild looks up a direct child of parentID by name. Returns "" when no
// match exists. folder selects between folder and non-folder children.
func (c *Client) findChild(name, parentID string, folder bool) (string, error) {
	clauses := []string{
		fmt.Sprintf("name = '%s'", escapeQuery(name)),
		"trashed = false",
	}
	if folder {
		clauses = append(clauses, fmt.Sprintf("mimeType = '%s'", folderMimeType))
	} else {
		clauses = append(clauses, fmt.Sprintf("mimeType != '%s'", folderMimeType))
	}
	if parentID != "" {
		clauses = append(clauses, fmt.Sprintf("'%s' in parents", parentID))
	}

	list, err := c.srv.Files.List().
		Q(strings.Join(clauses, " and ")).
		Spaces("drive").
		Fields("files(id, name)").
		PageSize(1).
		Do()
	if err != nil {
		return "", err
	}
	if len(list.Files) == 0 {
		return "", nil
	}
	return list.Files[0].Id, nil
}

// listBackupFolders returns the archive folders under the parent, newest
// first. Folder names carry the timestamp, so sorting by name descending is
// chronological.
func (c *Client) listBackupFolders() ([]*gdrive.File, error) {
	clauses := []string{
		fmt.Sprintf("mimeType = '%s'", folderMimeType),
		fmt.Sprintf("name contains '%s'", backupPrefix),
		"trashed = false",
	}
	if c.ParentID != "" {
		clauses = append(clauses, fmt.Sprintf("'%s' in parents", c.ParentID))
	}

	list, err := c.srv.Files.List().
		Q(strings.Join(clauses, " and ")).
		Spaces("drive").
		Fields("files(id, name, createdTime)").
		PageSize(100).
		Do()
	if err != nil {
		return nil, err
	}

	var folders []*gdrive.File
	for _, f := range list.Files {
		if IsBackupFolder(f.Name) {
			folders = append(folders, f)
		}
	}
	sort.Slice(folders, func(i, j int) bool { return folders[i].Name > folders[j].Name })
	return folders, nil
}

// CleanupOldBackups deletes archive folders beyond the keep newest.
func (c *Client) CleanupOldBackups(keep int) error {
	folders, err := c.listBackupFolders()
	if err != nil {
		return fmt.Errorf("failed to list archives: %v", err)
	}

	for _, folder := range foldersBeyond(folders, keep) {
		if err := c.srv.Files.Delete(folder.Id).Do(); err != nil {
			return fmt.Errorf("failed to delete old archive %s: %v", folder.Name, err)
		}
	}
	return nil
}

// foldersBeyond returns the entries past the first keep of a newest-first
// list. keep < 0 keeps everything.
func foldersBeyond(folders []*gdrive.File, keep int) []*gdrive.File {
	if keep < 0 || len(folders) <= keep {
		return nil
	}
	return folders[keep:]
}
