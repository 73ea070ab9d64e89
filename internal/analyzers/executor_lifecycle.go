package analyzers

import (
	"fmt"

	"github.com/threadlint/threadlint/internal/descriptor"
	"github.com/threadlint/threadlint/internal/findings"
)

// ExecutorLifecycle flags executor-typed fields in classes that expose no
// shutdown path: without one, pool threads outlive their owner and the JVM
// cannot exit cleanly. Active only when the unit actually imports executor
// machinery, to keep coincidental type-name matches quiet.
type ExecutorLifecycle struct{}

func (ExecutorLifecycle) Name() string { return "executor_lifecycle" }

func (ExecutorLifecycle) Analyze(unit *descriptor.SourceUnit, class *descriptor.ClassDescriptor) []findings.Issue {
	if !hasExecutorImport(unit.Imports) {
		return nil
	}
	if hasShutdownMethod(class) {
		return nil
	}
	var issues []findings.Issue
	for _, field := range class.Fields {
		if !isExecutorType(field.DeclaredType) {
			continue
		}
		issues = append(issues, findings.Issue{
			Category:    findings.CategoryExecutorNotShutdown,
			Class:       class.Name,
			Line:        field.Line,
			Severity:    findings.SeverityMedium,
			Description: fmt.Sprintf("executor field %q (%s) is never shut down by this class: its worker threads leak", field.Name, field.DeclaredType),
			Snippet:     unit.Snippet(field.Line),
			Remediation: "add a shutdown() call in a lifecycle hook or implement AutoCloseable",
		})
	}
	return issues
}
