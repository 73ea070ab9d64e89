package analyzers

import (
	"fmt"

	"github.com/threadlint/threadlint/internal/descriptor"
	"github.com/threadlint/threadlint/internal/findings"
)

// UnsafePublication flags static fields published without final or volatile:
// a thread reading such a field may observe a stale reference or a partially
// constructed object. The field type does not matter.
type UnsafePublication struct{}

func (UnsafePublication) Name() string { return "unsafe_publication" }

func (UnsafePublication) Analyze(unit *descriptor.SourceUnit, class *descriptor.ClassDescriptor) []findings.Issue {
	var issues []findings.Issue
	for _, field := range class.Fields {
		if !field.IsStatic || field.IsFinal || field.IsVolatile {
			continue
		}
		remediation := "declare the field volatile"
		if isContainerType(field.DeclaredType) {
			remediation = "declare the field final and initialize it at class load"
		}
		issues = append(issues, findings.Issue{
			Category:    findings.CategoryUnsafePublication,
			Class:       class.Name,
			Line:        field.Line,
			Severity:    findings.SeverityMedium,
			Description: fmt.Sprintf("static field %q (%s) is published without final or volatile: readers may see a stale or half-initialized value", field.Name, field.DeclaredType),
			Snippet:     unit.Snippet(field.Line),
			Remediation: remediation,
		})
	}
	return issues
}
