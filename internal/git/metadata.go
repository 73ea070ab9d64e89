package git

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// RepositoryMetadata describes the repository a scanned tree belongs to.
// Rendered into report headers; every field may be empty when the
// information is unavailable.
type RepositoryMetadata struct {
	Branch     string `json:"branch,omitempty"`
	CommitHash string `json:"commit_hash,omitempty"`
	RemoteURL  string `json:"remote_url,omitempty"`
	Subfolder  string `json:"subfolder,omitempty"`
	RootFolder string `json:"root_folder,omitempty"`
}

// CollectRepositoryMetadata resolves the repository containing sourceFolder,
// walking up the directory tree the way git itself does, and reads the
// branch, HEAD hash and origin URL. A detached HEAD leaves Branch empty; a
// missing origin remote leaves RemoteURL empty.
func CollectRepositoryMetadata(sourceFolder string) (*RepositoryMetadata, error) {
	if sourceFolder == "" {
		return &RepositoryMetadata{}, fmt.Errorf("source folder is not set")
	}
	if abs, err := filepath.Abs(sourceFolder); err == nil {
		sourceFolder = abs
	}

	md := &RepositoryMetadata{RootFolder: filepath.Clean(sourceFolder)}

	rootFolder, err := findRepositoryRoot(sourceFolder)
	if err != nil {
		return md, err
	}
	md.RootFolder = filepath.Clean(rootFolder)

	repo, err := git.PlainOpen(rootFolder)
	if err != nil {
		return md, fmt.Errorf("failed to open repository: %w", err)
	}

	if rel, err := filepath.Rel(rootFolder, sourceFolder); err == nil && rel != "." {
		md.Subfolder = filepath.ToSlash(rel)
	}

	if head, err := repo.Head(); err == nil {
		if head.Name().IsBranch() {
			md.Branch = head.Name().Short()
		}
		md.CommitHash = head.Hash().String()
	}

	if remote, err := repo.Remote("origin"); err == nil {
		if cfg := remote.Config(); cfg != nil && len(cfg.URLs) > 0 {
			md.RemoteURL = strings.TrimSuffix(cfg.URLs[0], ".git")
		}
	}

	return md, nil
}

// findRepositoryRoot walks up from sourceFolder until a directory opens as a
// git repository.
func findRepositoryRoot(sourceFolder string) (string, error) {
	for {
		if _, err := git.PlainOpen(sourceFolder); err == nil {
			return sourceFolder, nil
		}
		parent := filepath.Dir(sourceFolder)
		if parent == sourceFolder {
			return "", fmt.Errorf("%q is not inside a git repository", sourceFolder)
		}
		sourceFolder = parent
	}
}
