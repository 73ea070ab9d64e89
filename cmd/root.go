package cmd

import (
	goerrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/threadlint/threadlint/cmd/fetch"
	"github.com/threadlint/threadlint/cmd/report"
	"github.com/threadlint/threadlint/cmd/scan"
	"github.com/threadlint/threadlint/cmd/version"
	"github.com/threadlint/threadlint/pkg/shared/config"
	"github.com/threadlint/threadlint/pkg/shared/errors"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "threadlint [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Threadlint is a heuristic concurrency linter for Java sources.",
		Long: `Threadlint inspects the structure of Java classes - fields, methods, modifiers,
	imports - and flags patterns correlated with unsafe concurrent behavior: shared
	mutable state, missing synchronization, leaking executors, non-atomic counters.
	It is a fast first-pass linter, not a verifier.
	`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	// rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .config.yml)")
	rootCmd.AddCommand(scan.ScanCmd)
	rootCmd.AddCommand(report.ReportCmd)
	rootCmd.AddCommand(fetch.FetchCmd)
	rootCmd.AddCommand(version.NewVersionCmd())
}

// Execute runs the command tree and maps the failure onto an exit code.
// Command errors carry their own code, so the scan gate exits distinctly
// from crashes.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		var cmdErr *errors.CommandError
		if goerrors.As(err, &cmdErr) {
			return cmdErr.ExitCode
		}
		return errors.ExitCodeFailure
	}
	return 0
}

func initConfig() {
	var err error

	if cfgFile == "" {
		cfgFile = "config.yml"
	}
	if _, statErr := os.Stat(cfgFile); os.IsNotExist(statErr) {
		// no config file is fine, everything has a default
		AppConfig = &config.Config{}
	} else {
		AppConfig, err = config.NewConfig(cfgFile)
		if err != nil {
			fmt.Printf("initializing config file function is crashed - %v \n", err)
			os.Exit(1)
		}
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	scan.Init(AppConfig)
	scan.Version = version.CoreVersion
	report.Init(AppConfig)
	fetch.Init(AppConfig)
}
