package sarif

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/owenrumney/go-sarif/v2/sarif"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threadlint/threadlint/internal/findings"
)

func sampleResults() []findings.Result {
	return []findings.Result{
		findings.NewResult("src/main/java/Cache.java", 1, []findings.Issue{
			{
				Category:    findings.CategorySharedMutableState,
				Class:       "Cache",
				Line:        12,
				Severity:    findings.SeverityHigh,
				Description: `field "entries" (HashMap<String, String>) is mutable shared state`,
				Remediation: "use ConcurrentHashMap instead",
			},
			{
				Category:    findings.CategoryDeadlock,
				Class:       "Cache",
				Severity:    findings.SeverityHigh,
				Description: "class has 4 synchronized methods competing for one monitor",
			},
			{
				Category:    findings.CategoryAtomicOpportunity,
				Class:       "Cache",
				Line:        14,
				Severity:    findings.SeverityLow,
				Description: `field "hitCount" (int) looks like a counter`,
			},
		}),
		findings.NewErrorResult("src/main/java/Broken.java", "unexpected token"),
	}
}

func TestSeverityLevel(t *testing.T) {
	tests := []struct {
		name     string
		severity findings.Severity
		want     string
	}{
		{"low is note", findings.SeverityLow, "note"},
		{"medium is warning", findings.SeverityMedium, "warning"},
		{"high is error", findings.SeverityHigh, "error"},
		{"critical is error", findings.SeverityCritical, "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, severityLevel(tt.severity))
		})
	}
}

func TestFromResults(t *testing.T) {
	report, err := FromResults(sampleResults(), "1.2.3")
	require.NoError(t, err)
	require.Len(t, report.Runs, 1)

	run := report.Runs[0]
	assert.Equal(t, toolName, run.Tool.Driver.Name)
	require.NotNil(t, run.Tool.Driver.SemanticVersion)
	assert.Equal(t, "1.2.3", *run.Tool.Driver.SemanticVersion)

	// The failed unit contributes nothing.
	require.Len(t, run.Results, 3)
	require.Len(t, run.Tool.Driver.Rules, 3)

	first := run.Results[0]
	require.NotNil(t, first.RuleID)
	assert.Equal(t, string(findings.CategorySharedMutableState), *first.RuleID)
	require.NotNil(t, first.Level)
	assert.Equal(t, "error", *first.Level)
	require.NotNil(t, first.Message.Text)
	assert.Contains(t, *first.Message.Text, "mutable shared state")
	assert.Contains(t, *first.Message.Text, "Remediation: use ConcurrentHashMap instead")

	require.Len(t, first.Locations, 1)
	physical := first.Locations[0].PhysicalLocation
	require.NotNil(t, physical)
	require.NotNil(t, physical.ArtifactLocation.URI)
	assert.Equal(t, "src/main/java/Cache.java", *physical.ArtifactLocation.URI)
	require.NotNil(t, physical.Region)
	require.NotNil(t, physical.Region.StartLine)
	assert.Equal(t, 12, *physical.Region.StartLine)

	// Class-wide finding: no region.
	classWide := run.Results[1]
	require.Len(t, classWide.Locations, 1)
	assert.Nil(t, classWide.Locations[0].PhysicalLocation.Region)

	note := run.Results[2]
	require.NotNil(t, note.Level)
	assert.Equal(t, "note", *note.Level)
}

func TestFromResultsEmptyInput(t *testing.T) {
	report, err := FromResults(nil, "")
	require.NoError(t, err)
	require.Len(t, report.Runs, 1)
	assert.Empty(t, report.Runs[0].Results)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.sarif")
	require.NoError(t, WriteFile(path, sampleResults(), "1.2.3"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var written sarif.Report
	require.NoError(t, json.Unmarshal(raw, &written))
	assert.Equal(t, "2.1.0", written.Version)
	require.Len(t, written.Runs, 1)
	assert.Len(t, written.Runs[0].Results, 3)
}
