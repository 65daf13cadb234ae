package apps

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Brave handles the Brave browser: per-profile Bookmarks and History files,
// copied raw so Brave can read them back, plus a simplified bookmarks.json
// export per profile for inspection outside the browser.
type Brave struct {
	homeDir string
}

// NewBrave returns a Brave rooted at the given home directory.
func NewBrave(homeDir string) *Brave {
	return &Brave{homeDir: homeDir}
}

func (b *Brave) Name() string { return "brave" }

func (b *Brave) baseDir() string {
	return filepath.Join(b.homeDir, ".config", "BraveSoftware", "Brave-Browser")
}

// BraveProfile is one discovered browser profile.
type BraveProfile struct {
	Dir         string // directory name, "Default" or "Profile N"
	DisplayName string // user-visible name from Preferences, may be empty
}

// DiscoverProfiles finds browser profiles under the Brave data directory.
// A profile is any "Default" or "Profile *" directory containing a
// Preferences file. Results are sorted by directory name.
func (b *Brave) DiscoverProfiles() ([]BraveProfile, error) {
	entries, err := os.ReadDir(b.baseDir())
	if err != nil {
		return nil, err
	}

	var profiles []BraveProfile
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if name != "Default" && !strings.HasPrefix(name, "Profile ") {
			continue
		}

		prefsPath := filepath.Join(b.baseDir(), name, "Preferences")
		if _, err := os.Stat(prefsPath); err != nil {
			continue
		}

		profiles = append(profiles, BraveProfile{
			Dir:         name,
			DisplayName: readProfileName(prefsPath),
		})
	}

	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Dir < profiles[j].Dir })
	return profiles, nil
}

// readProfileName pulls the user-visible profile name out of a Preferences
// file. Returns "" if the file cannot be parsed.
func readProfileName(prefsPath string) string {
	data, err := os.ReadFile(prefsPath)
	if err != nil {
		return ""
	}

	var prefs struct {
		Profile struct {
			Name string `json:"name"`
		} `json:"profile"`
	}
	if err := json.Unmarshal(data, &prefs); err != nil {
		return ""
	}
	return prefs.Profile.Name
}

// Extract copies each profile's Bookmarks and History into
// <stagingRoot>/brave-data/<ProfileDir>/ and writes a simplified
// bookmarks.json export alongside the raw files.
func (b *Brave) Extract(stagingRoot string) (*Result, error) {
	r := &Result{App: b.Name()}
	stageDir := filepath.Join(stagingRoot, "brave-data")

	profiles, err := b.DiscoverProfiles()
	if err != nil {
		if os.IsNotExist(err) {
			r.warnf("Brave data directory not found: %s", b.baseDir())
			return r, nil
		}
		return r, fmt.Errorf("failed to scan Brave profiles: %v", err)
	}
	if len(profiles) == 0 {
		r.warnf("no Brave profiles found under %s", b.baseDir())
		return r, nil
	}

	for _, profile := range profiles {
		srcDir := filepath.Join(b.baseDir(), profile.Dir)
		dstDir := filepath.Join(stageDir, profile.Dir)

		bookmarksPath := filepath.Join(srcDir, "Bookmarks")
		if err := copyFileCounted(bookmarksPath, filepath.Join(dstDir, "Bookmarks"), r); err != nil {
			return r, err
		}
		if err := copyFileCounted(filepath.Join(srcDir, "History"), filepath.Join(dstDir, "History"), r); err != nil {
			return r, err
		}

		count, err := exportBookmarks(bookmarksPath, filepath.Join(dstDir, "bookmarks.json"))
		if err != nil {
			r.warnf("could not export bookmarks for %s: %v", profile.Dir, err)
		} else if count >= 0 {
			r.FilesCopied++
			label := profile.Dir
			if profile.DisplayName != "" {
				label = fmt.Sprintf("%s (%s)", profile.DisplayName, profile.Dir)
			}
			r.detailf("brave: %s has %d bookmarks", label, count)
		}
	}

	r.detailf("brave: staged %d files from %d profiles", r.FilesCopied, len(profiles))
	return r, nil
}

// Restore copies staged Bookmarks and History back into the matching profile
// directories, saving .bak copies first. Profiles staged but absent locally
// are skipped with a warning since Brave creates profiles itself.
func (b *Brave) Restore(stagingRoot string) (*Result, error) {
	r := &Result{App: b.Name()}
	stageDir := filepath.Join(stagingRoot, "brave-data")

	entries, err := os.ReadDir(stageDir)
	if err != nil {
		if os.IsNotExist(err) {
			r.warnf("nothing staged, skipping: %s", stageDir)
			return r, nil
		}
		return r, err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		profileDir := entry.Name()
		targetDir := filepath.Join(b.baseDir(), profileDir)

		if _, err := os.Stat(targetDir); os.IsNotExist(err) {
			r.warnf("profile %s not present locally, create it in Brave first", profileDir)
			continue
		}

		for _, file := range []string{"Bookmarks", "History"} {
			staged := filepath.Join(stageDir, profileDir, file)
			if err := restoreFile(staged, filepath.Join(targetDir, file), r); err != nil {
				return r, err
			}
		}
	}

	r.detailf("brave: restored %d files", r.FilesCopied)
	return r, nil
}

// bookmarkEntry is one row of the simplified export.
type bookmarkEntry struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Folder string `json:"folder"`
}

// bookmarkNode mirrors the tree nodes in Brave's Bookmarks file.
type bookmarkNode struct {
	Name     string         `json:"name"`
	Type     string         `json:"type"`
	URL      string         `json:"url"`
	Children []bookmarkNode `json:"children"`
}

// exportBookmarks flattens a Brave Bookmarks file into a JSON list of
// name/url/folder entries at exportPath, returning the bookmark count.
func exportBookmarks(bookmarksPath, exportPath string) (int, error) {
	data, err := os.ReadFile(bookmarksPath)
	if err != nil {
		if os.IsNotExist(err) {
			return -1, nil
		}
		return 0, err
	}

	var doc struct {
		Roots map[string]bookmarkNode `json:"roots"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("failed to parse Bookmarks JSON: %v", err)
	}

	var entries []bookmarkEntry
	// Fixed root order keeps the export stable across runs
	for _, root := range []string{"bookmark_bar", "other", "synced"} {
		node, ok := doc.Roots[root]
		if !ok {
			continue
		}
		entries = collectBookmarks(node, node.Name, entries)
	}
	if entries == nil {
		entries = []bookmarkEntry{}
	}

	out, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(exportPath), 0755); err != nil {
		return 0, err
	}
	if err := os.WriteFile(exportPath, out, 0644); err != nil {
		return 0, err
	}

	return len(entries), nil
}

// collectBookmarks walks a bookmark subtree depth-first, recording each url
// node with the folder path it lives under.
func collectBookmarks(node bookmarkNode, folder string, entries []bookmarkEntry) []bookmarkEntry {
	for _, child := range node.Children {
		switch child.Type {
		case "url":
			entries = append(entries, bookmarkEntry{Name: child.Name, URL: child.URL, Folder: folder})
		case "folder":
			entries = collectBookmarks(child, folder+"/"+child.Name, entries)
		}
	}
	return entries
}
