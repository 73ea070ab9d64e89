package report

import (
	"fmt"

	"github.com/threadlint/threadlint/pkg/shared"
	"github.com/threadlint/threadlint/pkg/shared/files"
)

// validateReportArgs validates the arguments provided to the report command.
func validateReportArgs(options *RunOptionsReport, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("invalid argument(s) received, the report command takes flags only")
	}

	if options.Input == "" {
		return fmt.Errorf("the 'input' flag must be specified")
	}

	if err := files.ValidatePath(options.Input); err != nil {
		return fmt.Errorf("failed to validate input path %q: %w", options.Input, err)
	}

	if options.Format != "" && !shared.IsInList(options.Format, []string{FormatHTML, FormatSARIF}) {
		return fmt.Errorf("unknown format: %v", options.Format)
	}

	return nil
}
