package report

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/threadlint/threadlint/internal/findings"
	"github.com/threadlint/threadlint/internal/git"
	"github.com/threadlint/threadlint/internal/sarif"
	"github.com/threadlint/threadlint/pkg/shared"
	"github.com/threadlint/threadlint/pkg/shared/config"
	"github.com/threadlint/threadlint/pkg/shared/logger"
)

// Supported report formats.
const (
	FormatHTML  = "html"
	FormatSARIF = "sarif"
)

// RunOptionsReport holds the arguments for the report command.
type RunOptionsReport struct {
	Input         string
	OutputFile    string
	Format        string
	TemplatesPath string
	Title         string
	SourceFolder  string
}

// ReportMetadata feeds the HTML template header.
type ReportMetadata struct {
	git.RepositoryMetadata
	Title        string
	Tool         string
	Version      string
	ScanID       string
	Target       string
	CreatedAt    time.Time
	GeneratedAt  time.Time
	SeverityInfo map[string]int
}

// Global variables for configuration and command arguments
var (
	AppConfig          *config.Config
	reportOptions      RunOptionsReport
	exampleReportUsage = `  # Rendering an HTML report from scan results
  threadlint report --input /tmp/results/threadlint_scan_latest.json --output /tmp/results/report.html

  # Rendering with repository metadata collected from the scanned source folder
  threadlint report -i results.json -o report.html --source /path/to/my_project --title "Payment Service"

  # Converting scan results to SARIF
  threadlint report -i results.json -f sarif -o report.sarif`
)

// ReportCmd represents the report command.
var ReportCmd = &cobra.Command{
	Use:                   "report --input/-i PATH [--format/-f FORMAT] [--output/-o PATH] [--source/-s PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleReportUsage,
	Short:                 "Renders scan results as an HTML page or a SARIF report",
	RunE:                  runReportCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runReportCommand executes the report command.
func runReportCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "core-report")

	if err := validateReportArgs(&reportOptions, args); err != nil {
		logger.Error("invalid report arguments", "error", err)
		return err
	}

	scanReport, err := findings.LoadReport(reportOptions.Input)
	if err != nil {
		logger.Error("failed to load scan results", "error", err)
		return err
	}

	if reportOptions.Format == FormatSARIF {
		outputFile := config.SetThen(reportOptions.OutputFile, "threadlint.sarif")
		if err := sarif.WriteFile(outputFile, scanReport.Results, scanReport.Version); err != nil {
			logger.Error("failed to write SARIF report", "error", err)
			return err
		}
		logger.Info("report saved to file", "path", outputFile)
		return nil
	}

	outputFile := config.SetThen(reportOptions.OutputFile, "threadlint-report.html")
	if err := renderHTML(logger, &reportOptions, scanReport, outputFile); err != nil {
		logger.Error("failed to render HTML report", "error", err)
		return err
	}

	logger.Info("report saved to file", "path", outputFile)
	return nil
}

// Initialize flags for the report command.
func init() {
	ReportCmd.Flags().StringVarP(&reportOptions.Input, "input", "i", "", "Path to a scan results JSON file.")
	ReportCmd.Flags().StringVarP(&reportOptions.OutputFile, "output", "o", "", "Path for the rendered report (default: threadlint-report.html or threadlint.sarif).")
	ReportCmd.Flags().StringVarP(&reportOptions.Format, "format", "f", FormatHTML, "Format for the rendered report: html or sarif.")
	ReportCmd.Flags().StringVar(&reportOptions.TemplatesPath, "templates-path", "./templates", "Path to the folder with report templates.")
	ReportCmd.Flags().StringVar(&reportOptions.Title, "title", "Threadlint Report", "Title for the generated HTML report.")
	ReportCmd.Flags().StringVarP(&reportOptions.SourceFolder, "source", "s", "", "Scanned source folder; used to collect repository metadata for the report header.")
	ReportCmd.Flags().BoolP("help", "h", false, "Show help for the report command.")
}
