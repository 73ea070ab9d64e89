package analyzers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/threadlint/threadlint/internal/descriptor"
	"github.com/threadlint/threadlint/internal/findings"
)

func TestConcurrentCollections(t *testing.T) {
	tests := []struct {
		name         string
		field        descriptor.FieldDescriptor
		wantCount    int
		wantSeverity findings.Severity
	}{
		{
			name:         "plain hash map",
			field:        descriptor.FieldDescriptor{Name: "cache", DeclaredType: "HashMap<String, User>"},
			wantCount:    1,
			wantSeverity: findings.SeverityMedium,
		},
		{
			name:         "vector is legacy",
			field:        descriptor.FieldDescriptor{Name: "items", DeclaredType: "Vector<String>"},
			wantCount:    1,
			wantSeverity: findings.SeverityLow,
		},
		{
			name:         "hashtable is legacy",
			field:        descriptor.FieldDescriptor{Name: "props", DeclaredType: "Hashtable<String, String>"},
			wantCount:    1,
			wantSeverity: findings.SeverityLow,
		},
		{
			// modifiers do not matter for this rule
			name:         "final hash set still reviewed",
			field:        descriptor.FieldDescriptor{Name: "seen", DeclaredType: "HashSet<Long>", IsFinal: true},
			wantCount:    1,
			wantSeverity: findings.SeverityMedium,
		},
		{
			name:      "interface type is out of scope here",
			field:     descriptor.FieldDescriptor{Name: "data", DeclaredType: "Map<String, String>"},
			wantCount: 0,
		},
		{
			name:      "linked list is out of scope here",
			field:     descriptor.FieldDescriptor{Name: "queue", DeclaredType: "LinkedList<Task>"},
			wantCount: 0,
		},
		{
			name:      "plain type",
			field:     descriptor.FieldDescriptor{Name: "name", DeclaredType: "String"},
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit := &descriptor.SourceUnit{Path: "Catalog.java"}
			class := &descriptor.ClassDescriptor{
				Name:   "Catalog",
				Fields: []descriptor.FieldDescriptor{tt.field},
			}

			issues := ConcurrentCollections{}.Analyze(unit, class)
			assert.Len(t, issues, tt.wantCount)
			if tt.wantCount == 0 {
				return
			}
			assert.Equal(t, findings.CategoryUnsafeCollection, issues[0].Category)
			assert.Equal(t, tt.wantSeverity, issues[0].Severity)
		})
	}
}

func TestConcurrentCollectionsLegacyMessageIsDistinct(t *testing.T) {
	unit := &descriptor.SourceUnit{Path: "Catalog.java"}
	class := &descriptor.ClassDescriptor{
		Name: "Catalog",
		Fields: []descriptor.FieldDescriptor{
			{Name: "cache", DeclaredType: "HashMap<String, User>"},
			{Name: "items", DeclaredType: "Vector<String>"},
		},
	}

	issues := ConcurrentCollections{}.Analyze(unit, class)
	assert.Len(t, issues, 2)
	assert.NotEqual(t, issues[0].Description, issues[1].Description)
	assert.Contains(t, issues[1].Description, "legacy")
}
