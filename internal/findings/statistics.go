package findings

// Statistics summarizes a whole scan.
type Statistics struct {
	TotalUnits           int `json:"total_units"`
	TotalIssues          int `json:"total_issues"`
	TotalRecommendations int `json:"total_recommendations"`
	ThreadSafeCount      int `json:"thread_safe_count"`
	ProblematicCount     int `json:"problematic_count"`
}

// Aggregate reduces per-unit results into scan statistics. The input is never
// mutated; an empty result set yields all-zero statistics. Units that failed
// to parse count as problematic, since their verdict is false.
func Aggregate(results []Result) Statistics {
	stats := Statistics{TotalUnits: len(results)}
	for _, result := range results {
		stats.TotalIssues += len(result.Issues)
		for _, issue := range result.Issues {
			if issue.Remediation != "" {
				stats.TotalRecommendations++
			}
		}
		if result.ThreadSafe {
			stats.ThreadSafeCount++
		} else {
			stats.ProblematicCount++
		}
	}
	return stats
}

// TallyBySeverity counts issues at each severity across all results.
func TallyBySeverity(results []Result) map[Severity]int {
	tally := make(map[Severity]int)
	for _, result := range results {
		for _, issue := range result.Issues {
			tally[issue.Severity]++
		}
	}
	return tally
}
