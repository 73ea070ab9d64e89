package scan

import (
	"fmt"
	"os"

	"github.com/threadlint/threadlint/internal/findings"
	"github.com/threadlint/threadlint/pkg/shared"
)

// validateScanArgs validates the arguments provided to the scan command.
func validateScanArgs(options *RunOptionsScan, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("invalid argument(s) received, only one positional argument is allowed")
	}

	if len(args) == 0 && options.InputFile == "" {
		return fmt.Errorf("either 'input-file' flag or a target path must be specified")
	}

	if options.InputFile != "" && len(args) != 0 {
		return fmt.Errorf("you cannot use an 'input-file' flag and a target path at the same time")
	}

	if options.ReportFormat != "" && !shared.IsInList(options.ReportFormat, []string{FormatJSON, FormatSARIF}) {
		return fmt.Errorf("unknown format: %v", options.ReportFormat)
	}

	if options.Workers < 0 {
		return fmt.Errorf("the 'workers' flag must be a positive integer")
	}

	if options.FailOn != "" {
		if _, err := findings.ParseSeverity(options.FailOn); err != nil {
			return fmt.Errorf("invalid 'fail-on' value: %w", err)
		}
	}

	if len(args) == 1 {
		if _, err := os.Stat(args[0]); os.IsNotExist(err) {
			return fmt.Errorf("the target path does not exist: %v", args[0])
		}
	}

	return nil
}
