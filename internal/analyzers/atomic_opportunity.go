package analyzers

import (
	"fmt"

	"github.com/threadlint/threadlint/internal/descriptor"
	"github.com/threadlint/threadlint/internal/findings"
)

// AtomicOpportunity points out primitive counters that would be safer as
// atomic types: int/long fields whose name suggests counting, without
// volatile. Increments on such fields are read-modify-write and lose updates
// under contention.
type AtomicOpportunity struct{}

func (AtomicOpportunity) Name() string { return "atomic_opportunity" }

func (AtomicOpportunity) Analyze(unit *descriptor.SourceUnit, class *descriptor.ClassDescriptor) []findings.Issue {
	var issues []findings.Issue
	for _, field := range class.Fields {
		if field.IsVolatile {
			continue
		}
		if !isPrimitiveCounterType(field.DeclaredType) || !isCounterName(field.Name) {
			continue
		}
		issues = append(issues, findings.Issue{
			Category:    findings.CategoryAtomicOpportunity,
			Class:       class.Name,
			Line:        field.Line,
			Severity:    findings.SeverityLow,
			Description: fmt.Sprintf("field %q (%s) looks like a counter: unsynchronized increments lose updates", field.Name, field.DeclaredType),
			Snippet:     unit.Snippet(field.Line),
			Remediation: atomicRemediation(field.DeclaredType),
		})
	}
	return issues
}

func atomicRemediation(declaredType string) string {
	switch declaredType {
	case "int":
		return "replace with AtomicInteger"
	case "long":
		return "replace with AtomicLong"
	default:
		return "replace with the matching java.util.concurrent.atomic type"
	}
}
