package sarif

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/threadlint/threadlint/internal/findings"
)

const (
	toolName       = "threadlint"
	informationURI = "https://github.com/threadlint/threadlint"
)

// ruleDescriptions carries the short description attached to each rule in
// the emitted report, keyed by issue category.
var ruleDescriptions = map[findings.Category]string{
	findings.CategorySharedMutableState:  "Mutable collection field shared between threads without synchronization",
	findings.CategoryUnsafePublication:   "Static field published without final or volatile",
	findings.CategoryRaceCondition:       "State-mutating method callable without synchronization",
	findings.CategoryDeadlock:            "Many synchronized methods competing for one monitor",
	findings.CategoryUnsafeCollection:    "Collection type unfit for concurrent use",
	findings.CategoryExecutorNotShutdown: "Executor field with no shutdown path",
	findings.CategoryAtomicOpportunity:   "Primitive counter that should be an atomic type",
	findings.CategoryLockUsage:           "Explicit lock field reviewed for release discipline",
	findings.CategoryAnalyzerFailure:     "Analyzer failed while inspecting a class",
}

// severityLevel maps severities onto the three SARIF 2.1.0 result levels.
func severityLevel(severity findings.Severity) string {
	switch {
	case severity >= findings.SeverityHigh:
		return "error"
	case severity == findings.SeverityMedium:
		return "warning"
	default:
		return "note"
	}
}

// FromResults converts analysis results into a single-run SARIF 2.1.0
// report. One rule per encountered category, one SARIF result per issue.
// Failed units contribute no results; SARIF has no slot for them, the
// results JSON stays the complete record. A zero line means the finding is
// class-wide, so the region is omitted.
func FromResults(results []findings.Result, version string) (*sarif.Report, error) {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create sarif report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(toolName, informationURI)
	if version != "" {
		run.Tool.Driver.SemanticVersion = &version
	}

	for _, result := range results {
		if result.Err {
			continue
		}
		uri := filepath.ToSlash(result.Path)
		for _, issue := range result.Issues {
			rule := run.AddRule(string(issue.Category)).
				WithDescription(ruleDescriptions[issue.Category]).
				WithDefaultConfiguration(&sarif.ReportingConfiguration{
					Level: severityLevel(issue.Severity),
				})

			message := issue.Description
			if issue.Remediation != "" {
				message = fmt.Sprintf("%s. Remediation: %s", issue.Description, issue.Remediation)
			}

			physical := sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(uri))
			if issue.Line > 0 {
				physical.WithRegion(sarif.NewRegion().WithStartLine(issue.Line))
			}
			location := sarif.NewLocation().WithPhysicalLocation(physical)

			run.AddResult(sarif.NewRuleResult(rule.ID).
				WithLevel(severityLevel(issue.Severity)).
				WithMessage(sarif.NewTextMessage(message)).
				WithLocations([]*sarif.Location{location}))
		}
	}

	report.AddRun(run)
	return report, nil
}

// Write renders the report for results to w.
func Write(w io.Writer, results []findings.Result, version string) error {
	report, err := FromResults(results, version)
	if err != nil {
		return err
	}
	if err := report.PrettyWrite(w); err != nil {
		return fmt.Errorf("failed to write sarif report: %w", err)
	}
	return nil
}

// WriteFile renders the report for results to path.
func WriteFile(path string, results []findings.Result, version string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create sarif report file %q: %w", path, err)
	}
	defer func() { _ = file.Close() }()
	return Write(file, results, version)
}
