package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/threadlint/threadlint/internal/descriptor"
	"github.com/threadlint/threadlint/internal/discovery"
	"github.com/threadlint/threadlint/internal/extractor"
	"github.com/threadlint/threadlint/internal/findings"
	"github.com/threadlint/threadlint/internal/sarif"
	"github.com/threadlint/threadlint/pkg/shared/artifacts"
	"github.com/threadlint/threadlint/pkg/shared/config"
	"github.com/threadlint/threadlint/pkg/shared/files"
)

// Supported result formats.
const (
	FormatJSON  = "json"
	FormatSARIF = "sarif"
)

const defaultSARIFName = "threadlint.sarif"

// collectTargets resolves the files to scan: the positional path, or every
// root listed in the input file. Returns the target list and the scan target
// label stamped into the report.
func collectTargets(cfg *config.Config, options *RunOptionsScan, args []string) ([]string, string, error) {
	excludes := append([]string{}, cfg.Analysis.Exclude...)
	excludes = append(excludes, options.Exclude...)

	if len(args) == 1 {
		targets, err := discovery.DiscoverTargets(args[0], excludes, cfg.Analysis.MaxFileSizeKB)
		return targets, args[0], err
	}

	roots, err := readInputFile(options.InputFile)
	if err != nil {
		return nil, "", err
	}

	var targets []string
	seen := make(map[string]bool)
	for _, root := range roots {
		paths, err := discovery.DiscoverTargets(root, excludes, cfg.Analysis.MaxFileSizeKB)
		if err != nil {
			return nil, "", err
		}
		for _, path := range paths {
			if !seen[path] {
				seen[path] = true
				targets = append(targets, path)
			}
		}
	}
	return targets, options.InputFile, nil
}

// readInputFile reads one scan root per line, skipping blanks and comments.
func readInputFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading the input file %s: %w", path, err)
	}

	var roots []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		roots = append(roots, line)
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("input file %s contains no targets", path)
	}
	return roots, nil
}

// extractUnits reads and parses every target. Unreadable files become failed
// units instead of aborting the scan; extractor errors are infrastructure
// failures and do abort.
func extractUnits(ctx context.Context, ext extractor.Extractor, logger hclog.Logger, targets []string) ([]*descriptor.SourceUnit, error) {
	units := make([]*descriptor.SourceUnit, 0, len(targets))
	for _, target := range targets {
		content, err := os.ReadFile(target)
		if err != nil {
			logger.Warn("failed to read target", "path", target, "error", err)
			units = append(units, &descriptor.SourceUnit{
				Path:       target,
				ParseError: fmt.Sprintf("reading file: %v", err),
			})
			continue
		}

		unit, err := ext.Extract(ctx, target, content)
		if err != nil {
			return nil, fmt.Errorf("failed to extract %s: %w", target, err)
		}
		units = append(units, unit)
	}
	return units, nil
}

// saveResults writes the report in the requested format and returns the path
// it landed in.
func saveResults(cfg *config.Config, logger hclog.Logger, options *RunOptionsScan, report *findings.Report) (string, error) {
	if options.ReportFormat == FormatSARIF {
		outputPath := config.SetThen(options.OutputPath, defaultSARIFName)
		fullPath, _, err := files.DetermineFileFullPath(outputPath, defaultSARIFName)
		if err != nil {
			return "", err
		}
		if err := sarif.WriteFile(fullPath, report.Results, report.Version); err != nil {
			return "", fmt.Errorf("failed to write SARIF report: %w", err)
		}
		logger.Info("report saved to file", "path", fullPath)
		return fullPath, nil
	}

	if options.OutputPath == "" {
		return artifacts.SaveReportJSON(cfg, logger, "scan", report)
	}

	fullPath, _, err := files.DetermineFileFullPath(options.OutputPath, artifacts.GetReportName("scan", time.Now(), config.IsCI(cfg)))
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(report, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := files.WriteJsonFile(fullPath, data); err != nil {
		return "", err
	}
	logger.Info("report saved to file", "path", fullPath)
	return fullPath, nil
}

// printSummary writes the human-readable scan outcome to stdout.
func printSummary(report *findings.Report, savedTo string) {
	stats := report.Statistics
	fmt.Printf("Scan %s completed\n", report.ScanID)
	fmt.Printf("  Units analyzed: %d (thread-safe: %d, problematic: %d)\n", stats.TotalUnits, stats.ThreadSafeCount, stats.ProblematicCount)
	fmt.Printf("  Issues found: %d (with remediation: %d)\n", stats.TotalIssues, stats.TotalRecommendations)
	fmt.Printf("  Results: %s\n", savedTo)
}
