package findings

// Category identifies the pattern family an issue belongs to. It is never
// empty on an emitted issue.
type Category string

const (
	CategorySharedMutableState  Category = "SHARED_MUTABLE_STATE"
	CategoryUnsafePublication   Category = "UNSAFE_PUBLICATION"
	CategoryRaceCondition       Category = "POTENTIAL_RACE_CONDITION"
	CategoryDeadlock            Category = "POTENTIAL_DEADLOCK"
	CategoryUnsafeCollection    Category = "UNSAFE_COLLECTION"
	CategoryExecutorNotShutdown Category = "EXECUTOR_NOT_SHUTDOWN"
	CategoryAtomicOpportunity   Category = "ATOMIC_OPPORTUNITY"
	CategoryLockUsage           Category = "LOCK_USAGE_PATTERN"

	// CategoryAnalyzerFailure marks a synthetic issue recorded when an
	// analyzer failed on a class instead of producing findings.
	CategoryAnalyzerFailure Category = "ANALYZER_FAILURE"
)

// Issue is a single finding produced by one analyzer for one class.
// Issues are created once and never mutated afterwards.
type Issue struct {
	Category    Category `json:"category"`
	Class       string   `json:"class"`
	Method      string   `json:"method,omitempty"`
	Line        int      `json:"line,omitempty"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Snippet     string   `json:"snippet,omitempty"`
	Remediation string   `json:"remediation,omitempty"`
}

// Result is the outcome of analyzing one source unit. Recommendation is
// advisory prose attached after analysis; it never feeds back into the
// issues or the verdict.
type Result struct {
	Path           string  `json:"path"`
	Issues         []Issue `json:"issues"`
	ThreadSafe     bool    `json:"thread_safe"`
	ClassCount     int     `json:"class_count"`
	Err            bool    `json:"error,omitempty"`
	ErrMessage     string  `json:"error_message,omitempty"`
	Recommendation string  `json:"recommendation,omitempty"`
}

// NewResult builds a successful result. The verdict is always derived from
// the issues through ThreadSafe, never set directly.
func NewResult(path string, classCount int, issues []Issue) Result {
	if issues == nil {
		issues = []Issue{}
	}
	return Result{
		Path:       path,
		Issues:     issues,
		ThreadSafe: ThreadSafe(issues),
		ClassCount: classCount,
	}
}

// NewErrorResult marks a unit that could not be analyzed. Failed units carry
// no issues and are never reported thread-safe.
func NewErrorResult(path, message string) Result {
	return Result{
		Path:       path,
		Issues:     []Issue{},
		ThreadSafe: false,
		Err:        true,
		ErrMessage: message,
	}
}

// ThreadSafe is the single verdict rule: a unit is presumed safe exactly when
// no issue reaches SeverityHigh.
func ThreadSafe(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity >= SeverityHigh {
			return false
		}
	}
	return true
}

// MaxSeverity returns the highest severity present among the issues. The
// second return value is false when there are no issues at all.
func MaxSeverity(issues []Issue) (Severity, bool) {
	if len(issues) == 0 {
		return SeverityLow, false
	}
	max := issues[0].Severity
	for _, issue := range issues[1:] {
		if issue.Severity > max {
			max = issue.Severity
		}
	}
	return max, true
}

// AnyAtOrAbove reports whether any issue across the results meets the given
// severity threshold. Used by the scan gate.
func AnyAtOrAbove(results []Result, threshold Severity) bool {
	return CountAtOrAbove(results, threshold) > 0
}

// CountAtOrAbove counts the issues across the results that meet the given
// severity threshold.
func CountAtOrAbove(results []Result, threshold Severity) int {
	count := 0
	for _, result := range results {
		for _, issue := range result.Issues {
			if issue.Severity >= threshold {
				count++
			}
		}
	}
	return count
}
