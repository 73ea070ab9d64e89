package analyzers

import (
	"fmt"

	"github.com/threadlint/threadlint/internal/descriptor"
	"github.com/threadlint/threadlint/internal/findings"
)

// ConcurrentCollections reviews every collection-typed field regardless of
// modifiers. Plain unsynchronized collections get a concurrent counterpart
// suggestion; Vector, Hashtable and synchronized wrappers are called out as
// legacy with a distinct message. Overlap with SharedMutableState is
// intentional: the two analyzers answer different questions about the same
// field.
type ConcurrentCollections struct{}

func (ConcurrentCollections) Name() string { return "concurrent_collections" }

func (ConcurrentCollections) Analyze(unit *descriptor.SourceUnit, class *descriptor.ClassDescriptor) []findings.Issue {
	var issues []findings.Issue
	for _, field := range class.Fields {
		switch {
		case isLegacyCollection(field.DeclaredType):
			issues = append(issues, findings.Issue{
				Category:    findings.CategoryUnsafeCollection,
				Class:       class.Name,
				Line:        field.Line,
				Severity:    findings.SeverityLow,
				Description: fmt.Sprintf("field %q (%s) relies on a legacy synchronized collection: every operation takes one global lock and compound operations still race", field.Name, field.DeclaredType),
				Snippet:     unit.Snippet(field.Line),
				Remediation: "migrate to a java.util.concurrent collection (ConcurrentHashMap, CopyOnWriteArrayList)",
			})
		case isPlainUnsafeCollection(field.DeclaredType):
			issues = append(issues, findings.Issue{
				Category:    findings.CategoryUnsafeCollection,
				Class:       class.Name,
				Line:        field.Line,
				Severity:    findings.SeverityMedium,
				Description: fmt.Sprintf("field %q (%s) is not a thread-safe collection", field.Name, field.DeclaredType),
				Snippet:     unit.Snippet(field.Line),
				Remediation: containerRemediation(field.DeclaredType),
			})
		}
	}
	return issues
}
