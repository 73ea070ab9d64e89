package analyzers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/threadlint/threadlint/internal/descriptor"
	"github.com/threadlint/threadlint/internal/findings"
)

func TestUnsafePublication(t *testing.T) {
	tests := []struct {
		name            string
		field           descriptor.FieldDescriptor
		wantCount       int
		wantRemediation string
	}{
		{
			name:            "static mutable reference",
			field:           descriptor.FieldDescriptor{Name: "instance", DeclaredType: "Connection", IsStatic: true},
			wantCount:       1,
			wantRemediation: "declare the field volatile",
		},
		{
			name:            "static container gets final suggestion",
			field:           descriptor.FieldDescriptor{Name: "registry", DeclaredType: "Map<String, Handler>", IsStatic: true},
			wantCount:       1,
			wantRemediation: "declare the field final and initialize it at class load",
		},
		{
			name:      "static final is safe",
			field:     descriptor.FieldDescriptor{Name: "DEFAULT", DeclaredType: "Config", IsStatic: true, IsFinal: true},
			wantCount: 0,
		},
		{
			name:      "static volatile is safe",
			field:     descriptor.FieldDescriptor{Name: "current", DeclaredType: "State", IsStatic: true, IsVolatile: true},
			wantCount: 0,
		},
		{
			name:      "instance field is out of scope",
			field:     descriptor.FieldDescriptor{Name: "state", DeclaredType: "State"},
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit := &descriptor.SourceUnit{Path: "Holder.java"}
			class := &descriptor.ClassDescriptor{
				Name:   "Holder",
				Fields: []descriptor.FieldDescriptor{tt.field},
			}

			issues := UnsafePublication{}.Analyze(unit, class)
			assert.Len(t, issues, tt.wantCount)
			if tt.wantCount == 0 {
				return
			}
			assert.Equal(t, findings.CategoryUnsafePublication, issues[0].Category)
			assert.Equal(t, findings.SeverityMedium, issues[0].Severity)
			assert.Equal(t, tt.wantRemediation, issues[0].Remediation)
		})
	}
}

// A static HashMap trips both the publication rule and the shared-state rule;
// neither suppresses the other.
func TestUnsafePublicationOverlapsSharedMutableState(t *testing.T) {
	unit := &descriptor.SourceUnit{Path: "Registry.java"}
	class := &descriptor.ClassDescriptor{
		Name: "Registry",
		Fields: []descriptor.FieldDescriptor{
			{Name: "entries", DeclaredType: "HashMap<String, Entry>", IsStatic: true},
		},
	}

	publication := UnsafePublication{}.Analyze(unit, class)
	shared := SharedMutableState{}.Analyze(unit, class)
	assert.Len(t, publication, 1)
	assert.Len(t, shared, 1)
	assert.NotEqual(t, publication[0].Category, shared[0].Category)
}
