package artifacts

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/threadlint/threadlint/internal/findings"
	"github.com/threadlint/threadlint/pkg/shared/config"
	"github.com/threadlint/threadlint/pkg/shared/files"
)

// GetReportName builds the file name a scan report is saved under.
// Example: threadlint_scan_2026-08-25T08:28:46Z.json. In CI mode the name is
// fixed so pipeline steps can reference it without globbing.
func GetReportName(command string, t time.Time, ci bool) string {
	if ci {
		return fmt.Sprintf("threadlint_%s_latest.json", command)
	}
	ts := t.UTC().Format(time.RFC3339)
	return fmt.Sprintf("threadlint_%s_%s.json", command, ts)
}

// SaveReportJSON writes the report to <results home>/<report name> and
// returns the full path.
func SaveReportJSON(cfg *config.Config, logger hclog.Logger, command string, report *findings.Report) (string, error) {
	dir := config.GetResultsHome(cfg)
	base := GetReportName(command, time.Now(), config.IsCI(cfg))
	path := filepath.Join(dir, base)

	data, err := json.MarshalIndent(report, "", "    ")
	if err != nil {
		return path, fmt.Errorf("error marshaling the report: %w", err)
	}

	if err := files.WriteJsonFile(path, data); err != nil {
		return path, fmt.Errorf("error writing the report: %w", err)
	}
	logger.Info("report saved to file", "path", path)

	return path, nil
}
