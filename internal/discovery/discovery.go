package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const javaExtension = ".java"

// DiscoverTargets lists the Java files under root in lexical walk order, so
// repeated runs over the same tree produce the same list. Exclude fragments
// are matched as substrings against the slash-normalized path relative to
// root. maxFileSizeKB caps accepted file size; zero means no cap.
//
// A root naming a single file bypasses the filters: an explicitly named
// target is always scanned, but it must be a Java file.
func DiscoverTargets(root string, excludes []string, maxFileSizeKB int) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access scan target %q: %w", root, err)
	}

	if !info.IsDir() {
		if !strings.HasSuffix(root, javaExtension) {
			return nil, fmt.Errorf("scan target %q is not a Java file", root)
		}
		return []string{root}, nil
	}

	var targets []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access %q: %w", path, err)
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), javaExtension) {
			return nil
		}
		if excluded(root, path, excludes) {
			return nil
		}
		if maxFileSizeKB > 0 {
			fi, err := d.Info()
			if err != nil {
				return fmt.Errorf("failed to stat %q: %w", path, err)
			}
			if fi.Size() > int64(maxFileSizeKB)*1024 {
				return nil
			}
		}
		targets = append(targets, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return targets, nil
}

func excluded(root, path string, excludes []string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	slashed := filepath.ToSlash(rel)
	for _, fragment := range excludes {
		if fragment != "" && strings.Contains(slashed, fragment) {
			return true
		}
	}
	return false
}
