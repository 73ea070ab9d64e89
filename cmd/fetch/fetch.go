package fetch

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/threadlint/threadlint/internal/fetcher"
	"github.com/threadlint/threadlint/pkg/shared"
	"github.com/threadlint/threadlint/pkg/shared/config"
	"github.com/threadlint/threadlint/pkg/shared/logger"
)

// RunOptionsFetch holds the arguments for the fetch command.
type RunOptionsFetch struct {
	InputFile  string
	AuthType   string
	SSHKey     string
	Branch     string
	OutputPath string
	Threads    int
}

// Global variables for configuration and command arguments
var (
	AppConfig         *config.Config
	fetchOptions      RunOptionsFetch
	exampleFetchUsage = `  # Fetching a repository over HTTP into the threadlint projects folder
  threadlint fetch --auth-type http https://github.com/acme/payment-service

  # Fetching a specific branch using SSH agent authentication
  threadlint fetch --auth-type ssh-agent -b develop ssh://git@github.com/acme/payment-service.git

  # Fetching using SSH key authentication
  threadlint fetch --auth-type ssh-key --ssh-key ~/.ssh/id_ed25519 https://github.com/acme/payment-service

  # Fetching every repository listed in a file with multiple concurrent jobs
  threadlint fetch --auth-type http --input-file /path/to/repos.txt -j 5`
)

var FetchCmd = &cobra.Command{
	Use:                   "fetch --auth-type/-a AUTH_TYPE [--ssh-key/-k PATH] [-j THREADS_NUMBER, default=1] {--input-file/-i PATH | [-b BRANCH] URL}",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleFetchUsage,
	Short:                 "Fetches repository code so CI can fetch-then-scan",
	RunE:                  runFetchCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runFetchCommand executes the fetch command.
func runFetchCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "core-fetch")

	if err := validateFetchArgs(&fetchOptions, args); err != nil {
		logger.Error("invalid fetch arguments", "error", err)
		return err
	}

	requests, err := prepareFetchRequests(AppConfig, &fetchOptions, args)
	if err != nil {
		logger.Error("failed to prepare fetch targets", "error", err)
		return err
	}

	f := fetcher.New(logger, AppConfig)
	results := f.FetchAll(cmd.Context(), requests, fetchOptions.Threads)

	savedTo, err := saveFetchResults(AppConfig, &fetchOptions, results)
	if err != nil {
		logger.Error("failed to write result", "error", err)
		return err
	}
	logger.Info("fetch results saved to file", "path", savedTo)

	if failed := countFailed(results); failed > 0 {
		return fmt.Errorf("fetch failed for %d of %d repositories", failed, len(results))
	}

	logger.Info("fetch command completed successfully")
	return nil
}

func init() {
	FetchCmd.Flags().StringVarP(&fetchOptions.InputFile, "input-file", "i", "", "Path to a file containing repository URLs to fetch, one per line.")
	FetchCmd.Flags().StringVarP(&fetchOptions.AuthType, "auth-type", "a", "", "Type of authentication (e.g., http, ssh-agent, ssh-key).")
	FetchCmd.Flags().StringVarP(&fetchOptions.SSHKey, "ssh-key", "k", "", "Path to an SSH key.")
	FetchCmd.Flags().StringVarP(&fetchOptions.Branch, "branch", "b", "", "Specific branch to fetch (default: the remote HEAD).")
	FetchCmd.Flags().StringVarP(&fetchOptions.OutputPath, "output", "o", "", "Path to the output file or directory where the fetch results will be saved.")
	FetchCmd.Flags().IntVarP(&fetchOptions.Threads, "threads", "j", 1, "Number of concurrent threads to use.")
	FetchCmd.Flags().BoolP("help", "h", false, "Show help for the fetch command.")
}
