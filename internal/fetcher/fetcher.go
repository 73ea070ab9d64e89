package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gitsight/go-vcsurl"
	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/hashicorp/go-hclog"

	"github.com/threadlint/threadlint/pkg/shared"
	"github.com/threadlint/threadlint/pkg/shared/config"
	log "github.com/threadlint/threadlint/pkg/shared/logger"
)

// FetchRequest describes one repository to materialize locally.
type FetchRequest struct {
	CloneURL     string
	Branch       string
	TargetFolder string
	AuthType     string
	SSHKeyPath   string
}

// FetchResult reports the outcome of fetching one repository.
type FetchResult struct {
	CloneURL     string `json:"clone_url"`
	TargetFolder string `json:"target_folder,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Fetcher clones repositories, or updates existing clones in place.
type Fetcher struct {
	logger hclog.Logger
	cfg    *config.Config
}

func New(logger hclog.Logger, cfg *config.Config) *Fetcher {
	return &Fetcher{logger: logger, cfg: cfg}
}

// Fetch clones the repository into req.TargetFolder. When the folder already
// holds a clone it is fetched, hard-reset and pulled instead. Returns the
// target folder.
func (f *Fetcher) Fetch(ctx context.Context, req FetchRequest) (string, error) {
	// The parsed name only feeds the logs; go-git accepts URLs vcsurl
	// does not know, local paths included.
	repoName := req.CloneURL
	if info, err := vcsurl.Parse(req.CloneURL); err == nil {
		repoName = info.Name
	}

	authenticator, err := getAuthenticator(req.AuthType)
	if err != nil {
		return "", fmt.Errorf("unsupported authentication type: %w", err)
	}
	auth, err := authenticator.SetupAuth(req, f.logger)
	if err != nil {
		return "", err
	}

	var reference plumbing.ReferenceName
	if req.Branch != "" {
		reference = determineBranch(req.Branch)
	}

	timeout := config.SetThen(f.cfg.GitClient.Timeout, 10*time.Minute)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	output := log.GetLoggerOutput(f.logger)

	f.logger.Debug("starting repository fetch", "repository", repoName, "branch", req.Branch, "targetFolder", req.TargetFolder)
	_, err = git.PlainCloneContext(ctx, req.TargetFolder, false, &git.CloneOptions{
		Auth:            auth,
		URL:             req.CloneURL,
		ReferenceName:   reference,
		Progress:        output,
		Depth:           config.SetThen(f.cfg.GitClient.Depth, 1),
		InsecureSkipTLS: config.GetBoolValue(f.cfg.GitClient, "InsecureTLS", false),
	})
	if err != nil {
		if !errors.Is(err, git.ErrRepositoryAlreadyExists) {
			return "", fmt.Errorf("error occurred during clone: %w", err)
		}

		f.logger.Info("repository already exists, updating", "targetFolder", req.TargetFolder)
		repo, err := git.PlainOpen(req.TargetFolder)
		if err != nil {
			return "", fmt.Errorf("cannot open existing repository: %w", err)
		}
		if err := f.updateRepository(ctx, repo, auth, reference, output); err != nil {
			return "", err
		}
	}

	f.logger.Info("repository fetched", "repository", repoName, "targetFolder", req.TargetFolder)
	return req.TargetFolder, nil
}

// updateRepository brings an existing clone up to date: fetch all refs, check
// out the requested branch, reset the work tree and pull.
func (f *Fetcher) updateRepository(ctx context.Context, repo *git.Repository, auth transport.AuthMethod, reference plumbing.ReferenceName, output io.Writer) error {
	err := repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName:      "origin",
		Auth:            auth,
		Progress:        output,
		RefSpecs:        []gitconfig.RefSpec{"+refs/*:refs/*"},
		Depth:           config.SetThen(f.cfg.GitClient.Depth, 1),
		InsecureSkipTLS: config.GetBoolValue(f.cfg.GitClient, "InsecureTLS", false),
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("error occurred during fetch: %w", err)
	}

	w, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("error accessing worktree: %w", err)
	}

	if reference != "" {
		if err := w.Checkout(&git.CheckoutOptions{Branch: reference, Force: true}); err != nil {
			return fmt.Errorf("error occurred during checkout: %w", err)
		}
	}
	if err := w.Reset(&git.ResetOptions{Mode: git.HardReset}); err != nil {
		return fmt.Errorf("error occurred during reset: %w", err)
	}

	err = w.PullContext(ctx, &git.PullOptions{
		Auth:            auth,
		ReferenceName:   reference,
		Progress:        output,
		Force:           true,
		InsecureSkipTLS: config.GetBoolValue(f.cfg.GitClient, "InsecureTLS", false),
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("error occurred during pull: %w", err)
	}
	return nil
}

// FetchAll fetches every requested repository over a bounded worker pool.
// Per-repository failures land in the result slice; a cancelled context marks
// the undispatched tail.
func (f *Fetcher) FetchAll(ctx context.Context, requests []FetchRequest, workers int) []FetchResult {
	results := make([]FetchResult, len(requests))
	for i, req := range requests {
		results[i].CloneURL = req.CloneURL
	}

	dispatched := shared.ForEveryWithBoundedGoroutinesCtx(ctx, workers, requests, func(i int, req FetchRequest) {
		folder, err := f.Fetch(ctx, req)
		if err != nil {
			f.logger.Error("fetch failed", "cloneURL", req.CloneURL, "error", err)
			results[i].Error = err.Error()
			return
		}
		results[i].TargetFolder = folder
	})
	if dispatched < len(requests) {
		f.logger.Warn("fetch cancelled", "completed", dispatched, "total", len(requests))
		for i := dispatched; i < len(requests); i++ {
			results[i].Error = ctx.Err().Error()
		}
	}
	return results
}

// determineBranch widens a bare branch name into a full reference name.
func determineBranch(branch string) plumbing.ReferenceName {
	ref := plumbing.ReferenceName(branch)
	if !ref.IsBranch() && !ref.IsRemote() && !ref.IsTag() && !ref.IsNote() {
		return plumbing.NewBranchReferenceName(branch)
	}
	return ref
}
