package analyzers

import (
	"fmt"

	"github.com/threadlint/threadlint/internal/descriptor"
	"github.com/threadlint/threadlint/internal/findings"
)

// RaceCondition flags unsynchronized methods that look like state mutators:
// void return type, or a name starting with set/add/remove/put. A signature
// heuristic with expected false positives; method bodies are not read.
type RaceCondition struct{}

func (RaceCondition) Name() string { return "race_condition" }

func (RaceCondition) Analyze(unit *descriptor.SourceUnit, class *descriptor.ClassDescriptor) []findings.Issue {
	var issues []findings.Issue
	for i := range class.Methods {
		method := &class.Methods[i]
		if method.IsSynchronized || !isMutatorMethod(method) {
			continue
		}
		issues = append(issues, findings.Issue{
			Category:    findings.CategoryRaceCondition,
			Class:       class.Name,
			Method:      method.Name,
			Line:        method.Line,
			Severity:    findings.SeverityHigh,
			Description: fmt.Sprintf("method %q looks like a state mutator and is not synchronized: concurrent calls can interleave", method.Name),
			Snippet:     unit.Snippet(method.Line),
			Remediation: "synchronize the method, narrow the critical section, or move the state to atomic types",
		})
	}
	return issues
}
