// Package drive implements the Google Drive side of backup and restore.
//
// Archives live under a configurable parent folder as timestamped folders
// (backup_YYYYMMDDHHMM) whose contents mirror the local staging directory.
// Uploads update files in place when a file of the same name already exists
// in the target folder, so re-running a backup into the same archive does not
// accumulate duplicates. Old archives beyond a retention count are deleted
// after each successful upload.
//
// Authorization uses an OAuth installed-app flow. The client secret comes
// from a local credentials JSON file; the granted token is persisted next to
// it and refreshed transparently on later runs.
package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// folderMimeType is the Drive MIME type marking a folder.
const folderMimeType = "application/vnd.google-apps.folder"

// backupPrefix starts every archive folder name.
const backupPrefix = "backup_"

// backupTimeLayout is the timestamp suffix of archive folder names. Minute
// resolution; the format sorts lexically in chronological order.
const backupTimeLayout = "200601021504"

// RetainedBackups is how many archive folders survive cleanup.
const RetainedBackups = 3

// Client wraps an authorized Drive service scoped to one parent folder.
type Client struct {
	srv       *gdrive.Service
	tokenFile string
	tokens    oauth2.TokenSource

	// ParentID is the folder holding the backup archives. Empty means the
	// Drive root.
	ParentID string
}

// NewClient authorizes against Google Drive and returns a client rooted at
// parentID. credentialsFile holds the OAuth client secret; tokenFile holds
// the persisted token and is created after the first authorization.
func NewClient(ctx context.Context, credentialsFile, tokenFile, parentID string) (*Client, error) {
	secret, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file %s: %v", credentialsFile, err)
	}

	cfg, err := google.ConfigFromJSON(secret, gdrive.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %v", err)
	}

	tok, err := loadToken(tokenFile)
	if err != nil {
		tok, err = tokenFromPrompt(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenFile, tok); err != nil {
			return nil, err
		}
	}

	ts := cfg.TokenSource(ctx, tok)
	srv, err := gdrive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %v", err)
	}

	return &Client{srv: srv, tokenFile: tokenFile, tokens: ts, ParentID: parentID}, nil
}

// PersistToken writes the current (possibly refreshed) token back to disk so
// the next run does not need to refresh again. Call after a completed sync.
func (c *Client) PersistToken() error {
	tok, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("failed to obtain current token: %v", err)
	}
	return saveToken(c.tokenFile, tok)
}

// loadToken reads a previously saved OAuth token.
func loadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tok := &oauth2.Token{}
	if err := json.Unmarshal(data, tok); err != nil {
		return nil, err
	}
	return tok, nil
}

// saveToken writes an OAuth token with owner-only permissions.
func saveToken(path string, tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %v", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file %s: %v", path, err)
	}
	return nil
}

// tokenFromPrompt runs the manual installed-app flow: print the consent URL,
// read the authorization code from stdin, exchange it for a token.
func tokenFromPrompt(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	authURL := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Open this link in your browser, authorize access, then paste the code here:\n%s\n\nCode: ", authURL)

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return nil, fmt.Errorf("failed to read authorization code: %v", err)
	}

	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %v", err)
	}
	return tok, nil
}

// BackupFolderName returns the archive folder name for the given time.
func BackupFolderName(t time.Time) string {
	return backupPrefix + t.Format(backupTimeLayout)
}

// IsBackupFolder reports whether name looks like an archive folder name.
func IsBackupFolder(name string) bool {
	if !strings.HasPrefix(name, backupPrefix) {
		return false
	}
	stamp := strings.TrimPrefix(name, backupPrefix)
	_, err := time.Parse(backupTimeLayout, stamp)
	return err == nil
}

// escapeQuery escapes a file name for use inside a Drive query string.
func escapeQuery(name string) string {
	return strings.ReplaceAll(strings.ReplaceAll(name, `\`, `\\`), `'`, `\'`)
}
