package host

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// skipDirs are directories never worth descending into.
var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
}

// LoadDirectory walks root and loads every tracked file the accept filter
// admits. A .gitignore at root is honored; hidden directories and the usual
// build output directories are skipped outright. accept receives paths
// relative to root and may be nil to admit everything.
func (w *Workspace) LoadDirectory(root string, accept func(rel string) bool) error {
	var ignore *gitignore.GitIgnore
	if gi, err := gitignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
		ignore = gi
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		if d.IsDir() {
			name := d.Name()
			if rel != "." && (strings.HasPrefix(name, ".") || skipDirs[name]) {
				return filepath.SkipDir
			}
			if ignore != nil && rel != "." && ignore.MatchesPath(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !Tracked(path) {
			return nil
		}
		if ignore != nil && ignore.MatchesPath(rel) {
			return nil
		}
		if accept != nil && !accept(rel) {
			return nil
		}
		return w.LoadFile(path)
	})
	if err != nil {
		return fmt.Errorf("load directory %s: %w", root, err)
	}
	return nil
}

// Refresh re-reads every previously loaded file that still exists on disk
// and drops files that disappeared. Used by long-lived CLI sessions; editor
// hosts push edits through SetText instead.
func (w *Workspace) Refresh() error {
	for _, name := range w.FileNames() {
		content, err := os.ReadFile(name)
		if os.IsNotExist(err) {
			w.Remove(name)
			continue
		}
		if err != nil {
			return fmt.Errorf("refresh %s: %w", name, err)
		}
		w.SetText(name, string(content))
	}
	return nil
}
