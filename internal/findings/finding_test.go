package findings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThreadSafe(t *testing.T) {
	tests := []struct {
		name   string
		issues []Issue
		want   bool
	}{
		{
			name:   "no issues",
			issues: nil,
			want:   true,
		},
		{
			name: "only low and medium",
			issues: []Issue{
				{Category: CategoryAtomicOpportunity, Severity: SeverityLow},
				{Category: CategoryUnsafePublication, Severity: SeverityMedium},
			},
			want: true,
		},
		{
			name: "single high flips the verdict",
			issues: []Issue{
				{Category: CategoryAtomicOpportunity, Severity: SeverityLow},
				{Category: CategorySharedMutableState, Severity: SeverityHigh},
			},
			want: false,
		},
		{
			name: "critical flips the verdict",
			issues: []Issue{
				{Category: CategoryRaceCondition, Severity: SeverityCritical},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ThreadSafe(tt.issues))
		})
	}
}

func TestNewResultDerivesVerdict(t *testing.T) {
	safe := NewResult("Safe.java", 1, []Issue{{Category: CategoryLockUsage, Severity: SeverityMedium}})
	assert.True(t, safe.ThreadSafe)
	assert.Equal(t, 1, safe.ClassCount)

	unsafe := NewResult("Unsafe.java", 2, []Issue{{Category: CategoryDeadlock, Severity: SeverityHigh}})
	assert.False(t, unsafe.ThreadSafe)

	// nil issues are normalized so results always serialize with an array
	empty := NewResult("Empty.java", 0, nil)
	assert.NotNil(t, empty.Issues)
	assert.Len(t, empty.Issues, 0)
	assert.True(t, empty.ThreadSafe)
}

func TestNewErrorResult(t *testing.T) {
	result := NewErrorResult("Broken.java", "parse error: unexpected token")
	assert.True(t, result.Err)
	assert.Equal(t, "parse error: unexpected token", result.ErrMessage)
	assert.False(t, result.ThreadSafe)
	assert.NotNil(t, result.Issues)
	assert.Len(t, result.Issues, 0)
}

func TestMaxSeverity(t *testing.T) {
	_, ok := MaxSeverity(nil)
	assert.False(t, ok)

	max, ok := MaxSeverity([]Issue{
		{Severity: SeverityMedium},
		{Severity: SeverityCritical},
		{Severity: SeverityLow},
	})
	assert.True(t, ok)
	assert.Equal(t, SeverityCritical, max)
}

func TestAnyAtOrAbove(t *testing.T) {
	results := []Result{
		NewResult("A.java", 1, []Issue{{Severity: SeverityLow}}),
		NewResult("B.java", 1, []Issue{{Severity: SeverityMedium}}),
	}

	assert.True(t, AnyAtOrAbove(results, SeverityLow))
	assert.True(t, AnyAtOrAbove(results, SeverityMedium))
	assert.False(t, AnyAtOrAbove(results, SeverityHigh))
	assert.False(t, AnyAtOrAbove(nil, SeverityLow))
}

func TestCountAtOrAbove(t *testing.T) {
	results := []Result{
		NewResult("A.java", 1, []Issue{{Severity: SeverityLow}, {Severity: SeverityHigh}}),
		NewResult("B.java", 1, []Issue{{Severity: SeverityCritical}}),
	}

	assert.Equal(t, 3, CountAtOrAbove(results, SeverityLow))
	assert.Equal(t, 2, CountAtOrAbove(results, SeverityHigh))
	assert.Equal(t, 1, CountAtOrAbove(results, SeverityCritical))
	assert.Equal(t, 0, CountAtOrAbove(nil, SeverityLow))
}
