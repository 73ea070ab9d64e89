package descriptor

import "strings"

// FieldDescriptor captures one declared field of a class.
type FieldDescriptor struct {
	Name         string `json:"name"`
	DeclaredType string `json:"declared_type"`
	IsFinal      bool   `json:"is_final"`
	IsVolatile   bool   `json:"is_volatile"`
	IsStatic     bool   `json:"is_static"`
	Line         int    `json:"line"`
}

// MethodDescriptor captures one declared method of a class.
type MethodDescriptor struct {
	Name           string   `json:"name"`
	ReturnType     string   `json:"return_type"`
	IsSynchronized bool     `json:"is_synchronized"`
	IsStatic       bool     `json:"is_static"`
	ParameterTypes []string `json:"parameter_types,omitempty"`
	Line           int      `json:"line"`
}

// ClassDescriptor is the flattened structural description of a single class.
// Nested classes are extracted as independent descriptors in source order.
type ClassDescriptor struct {
	Name       string             `json:"name"`
	Fields     []FieldDescriptor  `json:"fields,omitempty"`
	Methods    []MethodDescriptor `json:"methods,omitempty"`
	Parents    []string           `json:"parents,omitempty"`
	Interfaces []string           `json:"interfaces,omitempty"`
}

// SynchronizedMethodCount returns how many methods carry the synchronized modifier.
func (c *ClassDescriptor) SynchronizedMethodCount() int {
	count := 0
	for _, method := range c.Methods {
		if method.IsSynchronized {
			count++
		}
	}
	return count
}

// SourceUnit is everything extracted from one source file. Raw content is kept
// only so issues can quote the offending line. A non-empty ParseError marks the
// unit as malformed; its Classes slice is empty in that case.
type SourceUnit struct {
	Path       string            `json:"path"`
	Raw        string            `json:"-"`
	Imports    []string          `json:"imports,omitempty"`
	Classes    []ClassDescriptor `json:"classes,omitempty"`
	ParseError string            `json:"parse_error,omitempty"`
}

// Snippet returns the trimmed source line at the given 1-based position.
// Line 0 means "unknown" and yields an empty snippet, as does any line
// outside the unit's content.
func (u *SourceUnit) Snippet(line int) string {
	if line <= 0 || u.Raw == "" {
		return ""
	}
	lines := strings.Split(u.Raw, "\n")
	if line > len(lines) {
		return ""
	}
	return strings.TrimSpace(lines[line-1])
}
