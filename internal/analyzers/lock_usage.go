package analyzers

import (
	"fmt"

	"github.com/threadlint/threadlint/internal/descriptor"
	"github.com/threadlint/threadlint/internal/findings"
)

// LockUsage reminds about release discipline for every explicit lock field.
// Active only when the unit imports java.util.concurrent.locks. Modifiers
// never suppress the finding: a final lock still needs balanced unlock paths,
// so the rule is intentionally permissive.
type LockUsage struct{}

func (LockUsage) Name() string { return "lock_usage" }

func (LockUsage) Analyze(unit *descriptor.SourceUnit, class *descriptor.ClassDescriptor) []findings.Issue {
	if !hasLockImport(unit.Imports) {
		return nil
	}
	var issues []findings.Issue
	for _, field := range class.Fields {
		if !isLockType(field.DeclaredType) {
			continue
		}
		issues = append(issues, findings.Issue{
			Category:    findings.CategoryLockUsage,
			Class:       class.Name,
			Line:        field.Line,
			Severity:    findings.SeverityMedium,
			Description: fmt.Sprintf("lock field %q (%s): a missed unlock on any exit path blocks every other thread forever", field.Name, field.DeclaredType),
			Snippet:     unit.Snippet(field.Line),
			Remediation: "acquire with lock(), then release in a finally block: lock.lock(); try { ... } finally { lock.unlock(); }",
		})
	}
	return issues
}
