package findings

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// ToolName stamps the reports this module produces.
const ToolName = "threadlint"

// Report is the canonical interchange artifact of one scan: everything the
// report command needs to re-render without re-scanning.
type Report struct {
	ScanID     string     `json:"scan_id"`
	Tool       string     `json:"tool"`
	Version    string     `json:"version,omitempty"`
	Target     string     `json:"target"`
	CreatedAt  time.Time  `json:"created_at"`
	Results    []Result   `json:"results"`
	Statistics Statistics `json:"statistics"`
}

// NewReport assembles the scan artifact. Results may be nil; the report
// always serializes with a results array present.
func NewReport(scanID, version, target string, results []Result) *Report {
	if results == nil {
		results = []Result{}
	}
	return &Report{
		ScanID:     scanID,
		Tool:       ToolName,
		Version:    version,
		Target:     target,
		CreatedAt:  time.Now().UTC(),
		Results:    results,
		Statistics: Aggregate(results),
	}
}

// LoadReport reads a report previously written by the scan command.
func LoadReport(path string) (*Report, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report %q: %w", path, err)
	}
	var report Report
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, fmt.Errorf("failed to parse report %q: %w", path, err)
	}
	if report.Tool != ToolName {
		return nil, fmt.Errorf("report %q was not produced by %s", path, ToolName)
	}
	return &report, nil
}
