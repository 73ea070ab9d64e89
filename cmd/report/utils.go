package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/threadlint/threadlint/internal/findings"
	"github.com/threadlint/threadlint/internal/git"
	"github.com/threadlint/threadlint/internal/template"
)

// collectMetadata assembles the header block for the HTML report. Missing
// repository metadata is not an error: reports render fine for plain folders.
func collectMetadata(logger hclog.Logger, options *RunOptionsReport, scanReport *findings.Report) *ReportMetadata {
	var repositoryMetadata git.RepositoryMetadata
	if options.SourceFolder != "" {
		collected, err := git.CollectRepositoryMetadata(options.SourceFolder)
		if err != nil {
			logger.Debug("can't collect repository metadata", "error", err)
		} else {
			repositoryMetadata = *collected
		}
	}

	return &ReportMetadata{
		RepositoryMetadata: repositoryMetadata,
		Title:              options.Title,
		Tool:               scanReport.Tool,
		Version:            scanReport.Version,
		ScanID:             scanReport.ScanID,
		Target:             scanReport.Target,
		CreatedAt:          scanReport.CreatedAt,
		GeneratedAt:        time.Now().UTC(),
		SeverityInfo:       severityInfo(scanReport.Results),
	}
}

// severityInfo tallies issues per severity under their wire names.
func severityInfo(results []findings.Result) map[string]int {
	info := make(map[string]int)
	for severity, count := range findings.TallyBySeverity(results) {
		info[severity.String()] = count
	}
	return info
}

// renderHTML parses the report template and writes the rendered page.
func renderHTML(logger hclog.Logger, options *RunOptionsReport, scanReport *findings.Report, outputFile string) error {
	metadata := collectMetadata(logger, options, scanReport)

	tmpl, err := template.NewTemplate(filepath.Join(options.TemplatesPath, "report.html"))
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}

	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	data := struct {
		Metadata *ReportMetadata
		Report   *findings.Report
	}{
		Metadata: metadata,
		Report:   scanReport,
	}

	if err := tmpl.Execute(file, data); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}
