package analyzers

import (
	"github.com/threadlint/threadlint/internal/descriptor"
	"github.com/threadlint/threadlint/internal/findings"
)

// Analyzer checks one concern against one class of one unit. Implementations
// are stateless and safe for concurrent use. A class with no fields and no
// methods yields an empty issue list; analyzers never return errors.
type Analyzer interface {
	Name() string
	Analyze(unit *descriptor.SourceUnit, class *descriptor.ClassDescriptor) []findings.Issue
}

// DefaultAnalyzers returns the full analyzer set in its fixed execution
// order. The order is part of the observable contract: issues appear in
// results grouped by analyzer in exactly this sequence, and tests assert on
// it. New analyzers go at the end.
func DefaultAnalyzers() []Analyzer {
	return []Analyzer{
		SharedMutableState{},
		UnsafePublication{},
		RaceCondition{},
		Synchronization{},
		ConcurrentCollections{},
		ExecutorLifecycle{},
		AtomicOpportunity{},
		LockUsage{},
	}
}
