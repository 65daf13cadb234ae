package apps

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// Cursor handles the Cursor editor: user settings, keybindings, and snippets
// for the default profile and any named profiles, the installed extension
// inventory, and the global argv.json startup flags.
type Cursor struct {
	homeDir string

	// reinstallCmd runs the editor CLI to reinstall one extension. Replaced
	// in tests; nil means invoke the real cursor binary.
	reinstallCmd func(extensionID string) error
}

// NewCursor returns a Cursor rooted at the given home directory.
func NewCursor(homeDir string) *Cursor {
	return &Cursor{homeDir: homeDir}
}

func (c *Cursor) Name() string { return "cursor" }

func (c *Cursor) userDir() string {
	return filepath.Join(c.homeDir, ".config", "Cursor", "User")
}

func (c *Cursor) extensionsFile() string {
	return filepath.Join(c.homeDir, ".cursor", "extensions", "extensions.json")
}

func (c *Cursor) argvFile() string {
	return filepath.Join(c.homeDir, ".cursor", "argv.json")
}

// profileFiles are the per-profile settings files worth keeping.
var profileFiles = []string{"settings.json", "keybindings.json"}

// Extract copies Cursor settings into <stagingRoot>/cursor-data/:
// the default profile under default/, named profiles under profiles/<id>/,
// the extension inventory as extensions.json plus a flat extensions.txt,
// and the startup flags under _global/.
func (c *Cursor) Extract(stagingRoot string) (*Result, error) {
	r := &Result{App: c.Name()}
	stageDir := filepath.Join(stagingRoot, "cursor-data")

	if err := c.extractProfile(c.userDir(), filepath.Join(stageDir, "default"), "default", r); err != nil {
		return r, err
	}

	profilesDir := filepath.Join(c.userDir(), "profiles")
	if entries, err := os.ReadDir(profilesDir); err == nil {
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			src := filepath.Join(profilesDir, entry.Name())
			dst := filepath.Join(stageDir, "profiles", entry.Name())
			if err := c.extractProfile(src, dst, entry.Name(), r); err != nil {
				return r, err
			}
		}
	}

	if err := c.extractExtensions(stageDir, r); err != nil {
		return r, err
	}

	if err := copyFileCounted(c.argvFile(), filepath.Join(stageDir, "_global", "argv.json"), r); err != nil {
		return r, err
	}

	r.detailf("cursor: staged %d files", r.FilesCopied)
	return r, nil
}

// extractProfile copies one profile's settings files and snippets directory.
func (c *Cursor) extractProfile(src, dst, label string, r *Result) error {
	for _, file := range profileFiles {
		if err := copyFileCounted(filepath.Join(src, file), filepath.Join(dst, file), r); err != nil {
			return err
		}
	}
	if err := copyDirCounted(filepath.Join(src, "snippets"), filepath.Join(dst, "snippets"), r); err != nil {
		return err
	}

	if count, err := countSettingsKeys(filepath.Join(src, "settings.json")); err == nil && count > 0 {
		r.detailf("cursor: profile %s has %d settings", label, count)
	}
	return nil
}

// cursorExtension is one entry of Cursor's extensions.json inventory.
type cursorExtension struct {
	Identifier struct {
		ID string `json:"id"`
	} `json:"identifier"`
	Version string `json:"version"`
}

// extractExtensions copies the raw extension inventory and writes a flat
// extensions.txt with one extension ID per line, sorted, for reinstalls.
func (c *Cursor) extractExtensions(stageDir string, r *Result) error {
	data, err := os.ReadFile(c.extensionsFile())
	if err != nil {
		if os.IsNotExist(err) {
			r.warnf("not found, skipping: %s", c.extensionsFile())
			return nil
		}
		return err
	}

	var exts []cursorExtension
	if err := json.Unmarshal(data, &exts); err != nil {
		r.warnf("could not parse extension inventory: %v", err)
		return nil
	}

	if err := os.MkdirAll(stageDir, 0755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(stageDir, "extensions.json"), data, 0644); err != nil {
		return err
	}
	r.FilesCopied++

	ids := make([]string, 0, len(exts))
	for _, ext := range exts {
		if ext.Identifier.ID != "" {
			ids = append(ids, ext.Identifier.ID)
		}
	}
	sort.Strings(ids)

	list := strings.Join(ids, "\n")
	if list != "" {
		list += "\n"
	}
	if err := os.WriteFile(filepath.Join(stageDir, "extensions.txt"), []byte(list), 0644); err != nil {
		return err
	}
	r.FilesCopied++

	r.detailf("cursor: %d extensions in inventory", len(ids))
	return nil
}

// Restore copies staged Cursor settings back into place with .bak copies of
// the current files, then reinstalls staged extensions through the editor CLI
// when it is available. Individual extension failures are warnings.
func (c *Cursor) Restore(stagingRoot string) (*Result, error) {
	r := &Result{App: c.Name()}
	stageDir := filepath.Join(stagingRoot, "cursor-data")

	if err := c.restoreProfile(filepath.Join(stageDir, "default"), c.userDir(), r); err != nil {
		return r, err
	}

	stagedProfiles := filepath.Join(stageDir, "profiles")
	if entries, err := os.ReadDir(stagedProfiles); err == nil {
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			staged := filepath.Join(stagedProfiles, entry.Name())
			target := filepath.Join(c.userDir(), "profiles", entry.Name())
			if err := c.restoreProfile(staged, target, r); err != nil {
				return r, err
			}
		}
	}

	if err := restoreFile(filepath.Join(stageDir, "_global", "argv.json"), c.argvFile(), r); err != nil {
		return r, err
	}

	c.reinstallExtensions(filepath.Join(stageDir, "extensions.txt"), r)

	r.detailf("cursor: restored %d files", r.FilesCopied)
	return r, nil
}

// restoreProfile puts one staged profile's files back.
func (c *Cursor) restoreProfile(staged, target string, r *Result) error {
	for _, file := range profileFiles {
		if err := restoreFile(filepath.Join(staged, file), filepath.Join(target, file), r); err != nil {
			return err
		}
	}
	return restoreDir(filepath.Join(staged, "snippets"), filepath.Join(target, "snippets"), r)
}

// reinstallExtensions runs the editor CLI once per staged extension ID.
// Skipped entirely when the cursor binary is not on PATH.
func (c *Cursor) reinstallExtensions(listPath string, r *Result) {
	data, err := os.ReadFile(listPath)
	if err != nil {
		if !os.IsNotExist(err) {
			r.warnf("could not read extension list: %v", err)
		}
		return
	}

	install := c.reinstallCmd
	if install == nil {
		if _, err := exec.LookPath("cursor"); err != nil {
			r.warnf("cursor binary not on PATH, skipping extension reinstall")
			return
		}
		install = func(id string) error {
			return exec.Command("cursor", "--install-extension", id).Run()
		}
	}

	installed := 0
	for _, line := range strings.Split(string(data), "\n") {
		id := strings.TrimSpace(line)
		if id == "" {
			continue
		}
		if err := install(id); err != nil {
			r.warnf("failed to install extension %s: %v", id, err)
			continue
		}
		installed++
	}
	r.detailf("cursor: reinstalled %d extensions", installed)
}

// countSettingsKeys counts the top-level keys in a settings.json file.
// Editor settings files allow comments, so those are stripped first.
func countSettingsKeys(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var settings map[string]json.RawMessage
	if err := json.Unmarshal(StripJSONComments(data), &settings); err != nil {
		return 0, fmt.Errorf("failed to parse %s: %v", path, err)
	}
	return len(settings), nil
}

// StripJSONComments removes // line comments and /* */ block comments from
// JSONC input, leaving string contents untouched.
func StripJSONComments(data []byte) []byte {
	out := make([]byte, 0, len(data))
	inString := false
	escaped := false

	for i := 0; i < len(data); i++ {
		ch := data[i]

		if inString {
			out = append(out, ch)
			if escaped {
				escaped = false
			} else if ch == '\\' {
				escaped = true
			} else if ch == '"' {
				inString = false
			}
			continue
		}

		switch {
		case ch == '"':
			inString = true
			out = append(out, ch)
		case ch == '/' && i+1 < len(data) && data[i+1] == '/':
			for i < len(data) && data[i] != '\n' {
				i++
			}
			if i < len(data) {
				out = append(out, '\n')
			}
		case ch == '/' && i+1 < len(data) && data[i+1] == '*':
			i += 2
			for i+1 < len(data) && !(data[i] == '*' && data[i+1] == '/') {
				i++
			}
			i++
		default:
			out = append(out, ch)
		}
	}

	return out
}
