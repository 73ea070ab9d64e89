package fetch

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gitsight/go-vcsurl"

	"github.com/threadlint/threadlint/internal/fetcher"
	"github.com/threadlint/threadlint/pkg/shared/artifacts"
	"github.com/threadlint/threadlint/pkg/shared/config"
	"github.com/threadlint/threadlint/pkg/shared/files"
)

// prepareFetchRequests resolves the clone URLs from the command line or the
// input file into fetch requests targeting the projects folder.
func prepareFetchRequests(cfg *config.Config, options *RunOptionsFetch, args []string) ([]fetcher.FetchRequest, error) {
	urls := args
	if options.InputFile != "" {
		var err error
		urls, err = readInputFile(options.InputFile)
		if err != nil {
			return nil, err
		}
	}

	requests := make([]fetcher.FetchRequest, 0, len(urls))
	for _, cloneURL := range urls {
		requests = append(requests, fetcher.FetchRequest{
			CloneURL:     cloneURL,
			Branch:       options.Branch,
			TargetFolder: targetFolder(cfg, cloneURL),
			AuthType:     options.AuthType,
			SSHKeyPath:   options.SSHKey,
		})
	}
	return requests, nil
}

// targetFolder maps a clone URL onto <projects home>/<domain>/<namespace>/<repo>.
// URLs vcsurl cannot parse land in a folder named after the last path
// segment, so local paths and exotic remotes still fetch somewhere sane.
func targetFolder(cfg *config.Config, cloneURL string) string {
	if info, err := vcsurl.Parse(cloneURL); err == nil && info.Name != "" {
		return config.GetRepositoryPath(cfg, string(info.Host), filepath.Join(info.Username, info.Name))
	}

	base := path.Base(strings.TrimSuffix(strings.TrimRight(cloneURL, "/"), ".git"))
	if base == "." || base == "/" || base == "" {
		base = "repository"
	}
	return filepath.Join(config.GetProjectsHome(cfg), base)
}

// readInputFile reads one clone URL per line, skipping blanks and comments.
func readInputFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading the input file %s: %w", path, err)
	}

	var urls []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("input file %s contains no repositories", path)
	}
	return urls, nil
}

// saveFetchResults writes the per-repository outcomes as JSON and returns
// the path the file landed in.
func saveFetchResults(cfg *config.Config, options *RunOptionsFetch, results []fetcher.FetchResult) (string, error) {
	base := artifacts.GetReportName("fetch", time.Now(), config.IsCI(cfg))

	var fullPath string
	if options.OutputPath == "" {
		fullPath = filepath.Join(config.GetResultsHome(cfg), base)
	} else {
		var err error
		fullPath, _, err = files.DetermineFileFullPath(options.OutputPath, base)
		if err != nil {
			return "", err
		}
	}

	data, err := json.MarshalIndent(results, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal fetch results: %w", err)
	}
	if err := files.WriteJsonFile(fullPath, data); err != nil {
		return "", err
	}
	return fullPath, nil
}

// countFailed counts the requests that did not produce a usable clone.
func countFailed(results []fetcher.FetchResult) int {
	failed := 0
	for _, result := range results {
		if result.Error != "" {
			failed++
		}
	}
	return failed
}
