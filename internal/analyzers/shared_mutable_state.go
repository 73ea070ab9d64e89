package analyzers

import (
	"fmt"
	"strings"

	"github.com/threadlint/threadlint/internal/descriptor"
	"github.com/threadlint/threadlint/internal/findings"
)

// SharedMutableState flags collection-typed fields that several threads can
// mutate with no visibility guarantee: not final, not volatile, and a type
// with no internal synchronization.
type SharedMutableState struct{}

func (SharedMutableState) Name() string { return "shared_mutable_state" }

func (SharedMutableState) Analyze(unit *descriptor.SourceUnit, class *descriptor.ClassDescriptor) []findings.Issue {
	var issues []findings.Issue
	for _, field := range class.Fields {
		if field.IsFinal || field.IsVolatile {
			continue
		}
		if !isUnsafeContainer(field.DeclaredType) {
			continue
		}
		issues = append(issues, findings.Issue{
			Category:    findings.CategorySharedMutableState,
			Class:       class.Name,
			Line:        field.Line,
			Severity:    findings.SeverityHigh,
			Description: fmt.Sprintf("field %q (%s) is mutable shared state: concurrent writers can corrupt it and readers can observe partial updates", field.Name, field.DeclaredType),
			Snippet:     unit.Snippet(field.Line),
			Remediation: containerRemediation(field.DeclaredType),
		})
	}
	return issues
}

// containerRemediation names the concurrent counterpart for a collection
// family, falling back to volatile for non-container types.
func containerRemediation(declaredType string) string {
	switch {
	case strings.Contains(declaredType, "Map"):
		return "use ConcurrentHashMap instead"
	case strings.Contains(declaredType, "List"):
		return "use CopyOnWriteArrayList or Collections.synchronizedList instead"
	case strings.Contains(declaredType, "Set"):
		return "use ConcurrentHashMap.newKeySet() instead"
	default:
		return "declare the field volatile or guard all access with synchronization"
	}
}
