package scan

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/threadlint/threadlint/internal/advisor"
	"github.com/threadlint/threadlint/internal/analyzers"
	"github.com/threadlint/threadlint/internal/engine"
	"github.com/threadlint/threadlint/internal/extractor"
	"github.com/threadlint/threadlint/internal/findings"
	"github.com/threadlint/threadlint/pkg/shared"
	"github.com/threadlint/threadlint/pkg/shared/config"
	"github.com/threadlint/threadlint/pkg/shared/errors"
	"github.com/threadlint/threadlint/pkg/shared/logger"
)

// RunOptionsScan holds the arguments for the scan command.
type RunOptionsScan struct {
	InputFile       string
	OutputPath      string
	ReportFormat    string
	Workers         int
	Exclude         []string
	FailOn          string
	Recommendations bool
}

// Version is stamped into scan reports; set from the build metadata by main.
var Version = "unknown"

// Global variables for configuration and command arguments
var (
	AppConfig        *config.Config
	scanOptions      RunOptionsScan
	exampleScanUsage = `  # Scanning a project folder
  threadlint scan /path/to/my_project

  # Scanning a single file and failing the build on high severity findings
  threadlint scan --fail-on high /path/to/my_project/src/main/java/Cache.java

  # Scanning with a SARIF report for code review tooling
  threadlint scan --format sarif --output /tmp/results/report.sarif /path/to/my_project

  # Scanning every folder listed in a file, eight units at a time
  threadlint scan --input-file /path/to/targets.txt -j 8

  # Scanning with extra exclude fragments on top of the configured ones
  threadlint scan --exclude generated/ --exclude test/ /path/to/my_project

  # Scanning with AI remediation advice attached to the results
  threadlint scan --recommendations /path/to/my_project`
)

// ScanCmd represents the scan command.
var ScanCmd = &cobra.Command{
	Use:                   "scan [--format/-f FORMAT] [--fail-on SEVERITY] [-j WORKERS_NUMBER] {--input-file/-i PATH | PATH}",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleScanUsage,
	Short:                 "Analyzes Java sources for unsafe concurrency patterns",
	RunE:                  runScanCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runScanCommand executes the scan command.
func runScanCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "core-scan")
	ctx := cmd.Context()

	if err := validateScanArgs(&scanOptions, args); err != nil {
		logger.Error("invalid scan arguments", "error", err)
		return err
	}

	targets, scanTarget, err := collectTargets(AppConfig, &scanOptions, args)
	if err != nil {
		logger.Error("failed to collect scan targets", "error", err)
		return err
	}
	if len(targets) == 0 {
		logger.Warn("no Java files found", "target", scanTarget)
	}

	javaExtractor := extractor.NewJavaExtractor()
	defer javaExtractor.Close()

	units, err := extractUnits(ctx, javaExtractor, logger, targets)
	if err != nil {
		logger.Error("failed to extract scan targets", "error", err)
		return err
	}

	workers := config.SetThen(scanOptions.Workers, config.SetThen(AppConfig.Analysis.Workers, 1))
	eng := engine.New(analyzers.DefaultAnalyzers(), workers, logger)

	results, err := eng.AnalyzeUnits(ctx, units)
	if err != nil {
		logger.Error("analysis failed", "error", err)
		return fmt.Errorf("analysis failed: %w", err)
	}

	if scanOptions.Recommendations || config.GetBoolValue(AppConfig, "Advisor.Enabled", false) {
		adv, err := advisor.New(AppConfig, logger)
		if err != nil {
			logger.Warn("advisor unavailable, skipping recommendations", "error", err)
		} else {
			advisor.Apply(results, adv.Recommend(ctx, results))
		}
	}

	report := findings.NewReport(uuid.New().String(), Version, scanTarget, results)

	savedTo, err := saveResults(AppConfig, logger, &scanOptions, report)
	if err != nil {
		logger.Error("failed to write results", "error", err)
		return err
	}

	printSummary(report, savedTo)

	if scanOptions.FailOn != "" {
		threshold, err := findings.ParseSeverity(scanOptions.FailOn)
		if err != nil {
			return err
		}
		if gated := findings.CountAtOrAbove(results, threshold); gated > 0 {
			return errors.NewGateError(scanOptions.FailOn, gated)
		}
	}

	logger.Info("scan command completed successfully")
	return nil
}

// Initialize flags for the scan command.
func init() {
	ScanCmd.Flags().StringVarP(&scanOptions.InputFile, "input-file", "i", "", "Path to a file containing scan targets, one path per line.")
	ScanCmd.Flags().StringVarP(&scanOptions.OutputPath, "output", "o", "", "Path to the output file or directory where the results will be saved.")
	ScanCmd.Flags().StringVarP(&scanOptions.ReportFormat, "format", "f", FormatJSON, "Format for the results: json or sarif.")
	ScanCmd.Flags().IntVarP(&scanOptions.Workers, "workers", "j", 0, "Number of units analyzed concurrently (default: analysis.workers from the config, else 1).")
	ScanCmd.Flags().StringSliceVar(&scanOptions.Exclude, "exclude", nil, "Path fragments to exclude from discovery, on top of the configured ones.")
	ScanCmd.Flags().StringVar(&scanOptions.FailOn, "fail-on", "", "Exit non-zero when issues at or above this severity exist (low, medium, high, critical).")
	ScanCmd.Flags().BoolVar(&scanOptions.Recommendations, "recommendations", false, "Attach AI remediation advice to problematic units.")
	ScanCmd.Flags().BoolP("help", "h", false, "Show help for the scan command.")
}
