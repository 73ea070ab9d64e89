package analyzers

import (
	"fmt"

	"github.com/threadlint/threadlint/internal/descriptor"
	"github.com/threadlint/threadlint/internal/findings"
)

// synchronizedMethodThreshold is the number of synchronized methods a class
// may carry before it is flagged. A coarse proxy for contention and
// lock-ordering deadlock risk, not a lock-graph analysis.
const synchronizedMethodThreshold = 3

// Synchronization emits one class-level finding when a class leans on broad
// method-level locking too heavily.
type Synchronization struct{}

func (Synchronization) Name() string { return "synchronization" }

func (Synchronization) Analyze(unit *descriptor.SourceUnit, class *descriptor.ClassDescriptor) []findings.Issue {
	count := class.SynchronizedMethodCount()
	if count <= synchronizedMethodThreshold {
		return nil
	}
	// class-scoped: line unknown, no snippet
	return []findings.Issue{{
		Category:    findings.CategoryDeadlock,
		Class:       class.Name,
		Severity:    findings.SeverityHigh,
		Description: fmt.Sprintf("class %q has %d synchronized methods: every call serializes on the same monitor and nested calls across classes invite deadlocks", class.Name, count),
		Remediation: "shrink the synchronized sections, split the class by lock, and document a lock ordering",
	}}
}
