package analyzers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/threadlint/threadlint/internal/descriptor"
	"github.com/threadlint/threadlint/internal/findings"
)

func TestExecutorLifecycle(t *testing.T) {
	executorField := descriptor.FieldDescriptor{Name: "pool", DeclaredType: "ExecutorService", Line: 5}

	tests := []struct {
		name      string
		imports   []string
		methods   []descriptor.MethodDescriptor
		wantCount int
	}{
		{
			name:      "executor field with no shutdown path",
			imports:   []string{"java.util.concurrent.ExecutorService"},
			wantCount: 1,
		},
		{
			name:      "shutdown method silences the rule",
			imports:   []string{"java.util.concurrent.ExecutorService"},
			methods:   []descriptor.MethodDescriptor{{Name: "shutdown", ReturnType: "void"}},
			wantCount: 0,
		},
		{
			name:      "shutdownNow counts as a shutdown path",
			imports:   []string{"java.util.concurrent.ExecutorService"},
			methods:   []descriptor.MethodDescriptor{{Name: "shutdownNow", ReturnType: "void"}},
			wantCount: 0,
		},
		{
			name:      "close counts as a shutdown path",
			imports:   []string{"java.util.concurrent.ExecutorService"},
			methods:   []descriptor.MethodDescriptor{{Name: "close", ReturnType: "void"}},
			wantCount: 0,
		},
		{
			name:      "rule stays inactive without executor imports",
			imports:   []string{"java.util.List"},
			wantCount: 0,
		},
		{
			name:      "wildcard concurrent import activates the rule",
			imports:   []string{"java.util.concurrent.*"},
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit := &descriptor.SourceUnit{Path: "Worker.java", Imports: tt.imports}
			class := &descriptor.ClassDescriptor{
				Name:    "Worker",
				Fields:  []descriptor.FieldDescriptor{executorField},
				Methods: tt.methods,
			}

			issues := ExecutorLifecycle{}.Analyze(unit, class)
			assert.Len(t, issues, tt.wantCount)
			if tt.wantCount == 0 {
				return
			}
			issue := issues[0]
			assert.Equal(t, findings.CategoryExecutorNotShutdown, issue.Category)
			assert.Equal(t, findings.SeverityMedium, issue.Severity)
			assert.Equal(t, 5, issue.Line)
		})
	}
}

func TestExecutorLifecycleMatchesPoolTypes(t *testing.T) {
	unit := &descriptor.SourceUnit{
		Path:    "Worker.java",
		Imports: []string{"java.util.concurrent.Executors"},
	}
	class := &descriptor.ClassDescriptor{
		Name: "Worker",
		Fields: []descriptor.FieldDescriptor{
			{Name: "pool", DeclaredType: "ThreadPoolExecutor"},
			{Name: "scheduler", DeclaredType: "ScheduledExecutorService"},
			{Name: "name", DeclaredType: "String"},
		},
	}

	issues := ExecutorLifecycle{}.Analyze(unit, class)
	assert.Len(t, issues, 2)
}
