package analyzers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/threadlint/threadlint/internal/descriptor"
	"github.com/threadlint/threadlint/internal/findings"
)

func TestLockUsage(t *testing.T) {
	lockImports := []string{"java.util.concurrent.locks.ReentrantLock"}

	tests := []struct {
		name      string
		imports   []string
		field     descriptor.FieldDescriptor
		wantCount int
	}{
		{
			name:      "reentrant lock field",
			imports:   lockImports,
			field:     descriptor.FieldDescriptor{Name: "lock", DeclaredType: "ReentrantLock", Line: 4},
			wantCount: 1,
		},
		{
			// final/static never suppress this rule
			name:      "final static lock still reported",
			imports:   lockImports,
			field:     descriptor.FieldDescriptor{Name: "LOCK", DeclaredType: "ReentrantReadWriteLock", IsFinal: true, IsStatic: true},
			wantCount: 1,
		},
		{
			name:      "inactive without the locks import",
			imports:   []string{"java.util.concurrent.ExecutorService"},
			field:     descriptor.FieldDescriptor{Name: "lock", DeclaredType: "ReentrantLock"},
			wantCount: 0,
		},
		{
			name:      "non-lock field",
			imports:   lockImports,
			field:     descriptor.FieldDescriptor{Name: "name", DeclaredType: "String"},
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit := &descriptor.SourceUnit{Path: "Guard.java", Imports: tt.imports}
			class := &descriptor.ClassDescriptor{
				Name:   "Guard",
				Fields: []descriptor.FieldDescriptor{tt.field},
			}

			issues := LockUsage{}.Analyze(unit, class)
			assert.Len(t, issues, tt.wantCount)
			if tt.wantCount == 0 {
				return
			}
			issue := issues[0]
			assert.Equal(t, findings.CategoryLockUsage, issue.Category)
			assert.Equal(t, findings.SeverityMedium, issue.Severity)
			assert.Contains(t, issue.Remediation, "finally")
		})
	}
}
