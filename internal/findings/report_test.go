package findings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReport(t *testing.T) {
	results := []Result{
		NewResult("Cache.java", 1, []Issue{
			{Category: CategorySharedMutableState, Class: "Cache", Severity: SeverityHigh, Description: "x", Remediation: "y"},
		}),
		NewResult("Constants.java", 1, nil),
	}

	report := NewReport("scan-1", "1.2.3", "src/", results)

	assert.Equal(t, "scan-1", report.ScanID)
	assert.Equal(t, ToolName, report.Tool)
	assert.Equal(t, "1.2.3", report.Version)
	assert.Equal(t, "src/", report.Target)
	assert.False(t, report.CreatedAt.IsZero())
	assert.Equal(t, 2, report.Statistics.TotalUnits)
	assert.Equal(t, 1, report.Statistics.TotalIssues)
	assert.Equal(t, 1, report.Statistics.ProblematicCount)
}

func TestNewReportNilResults(t *testing.T) {
	report := NewReport("scan-2", "", "x", nil)

	assert.NotNil(t, report.Results)
	assert.Zero(t, report.Statistics.TotalUnits)

	raw, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"results":[]`)
}

func TestLoadReportRoundTrip(t *testing.T) {
	results := []Result{
		NewResult("Cache.java", 2, []Issue{
			{Category: CategoryRaceCondition, Class: "Cache", Method: "put", Line: 8, Severity: SeverityHigh, Description: "d"},
		}),
	}
	original := NewReport("scan-3", "0.1.0", "src/", results)

	path := filepath.Join(t.TempDir(), "report.json")
	raw, err := json.Marshal(original)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0644))

	loaded, err := LoadReport(path)
	require.NoError(t, err)
	assert.Equal(t, original.ScanID, loaded.ScanID)
	assert.Equal(t, original.Statistics, loaded.Statistics)
	require.Len(t, loaded.Results, 1)
	assert.Equal(t, original.Results[0], loaded.Results[0])
}

func TestLoadReportRejectsForeignFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tool":"somethingelse"}`), 0644))

	_, err := LoadReport(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "was not produced by")
}

func TestLoadReportMissingFile(t *testing.T) {
	_, err := LoadReport(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
