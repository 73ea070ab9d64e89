package extractor

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/threadlint/threadlint/internal/descriptor"
)

// JavaExtractor builds SourceUnits from Java source text using tree-sitter.
// It holds one parser, so it is not safe for concurrent use; callers extract
// sequentially and let the engine parallelize analysis instead.
type JavaExtractor struct {
	parser *sitter.Parser
}

// NewJavaExtractor creates an extractor with the Java grammar loaded.
func NewJavaExtractor() *JavaExtractor {
	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())
	return &JavaExtractor{parser: parser}
}

// Close releases the underlying parser.
func (x *JavaExtractor) Close() {
	x.parser.Close()
}

// Extract parses content and flattens every class declaration, nested ones
// included, into the unit's class list in source order. Tree-sitter recovers
// from syntax errors, so partially broken files still yield whatever classes
// remain parseable; ParseError is set only when errors left nothing usable.
func (x *JavaExtractor) Extract(ctx context.Context, path string, content []byte) (*descriptor.SourceUnit, error) {
	tree, err := x.parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	defer tree.Close()

	unit := &descriptor.SourceUnit{
		Path: path,
		Raw:  string(content),
	}
	root := tree.RootNode()
	collectImports(root, content, unit)
	collectClasses(root, content, unit)

	if len(unit.Classes) == 0 && root.HasError() {
		unit.ParseError = "syntax errors left no parseable class declarations"
	}
	return unit, nil
}

// collectImports gathers top-level import declarations, deduplicated, in
// source order. Wildcard and static imports keep their textual form
// ("java.util.concurrent.*").
func collectImports(root *sitter.Node, src []byte, unit *descriptor.SourceUnit) {
	seen := make(map[string]bool)
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child.Type() != "import_declaration" {
			continue
		}
		path := importPath(child, src)
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true
		unit.Imports = append(unit.Imports, path)
	}
}

// importPath strips the import/static keywords and the trailing semicolon
// from an import declaration's text.
func importPath(decl *sitter.Node, src []byte) string {
	text := strings.TrimSpace(decl.Content(src))
	text = strings.TrimSuffix(text, ";")
	text = strings.TrimSpace(strings.TrimPrefix(text, "import"))
	text = strings.TrimSpace(strings.TrimPrefix(text, "static"))
	return strings.TrimSpace(text)
}

// collectClasses appends one ClassDescriptor per class_declaration found
// anywhere in the tree, in pre-order: an outer class precedes its nested
// classes. Interface, enum and annotation declarations carry no instance
// state and are skipped.
func collectClasses(root *sitter.Node, src []byte, unit *descriptor.SourceUnit) {
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "class_declaration" {
			if class := extractClass(n, src); class != nil {
				unit.Classes = append(unit.Classes, *class)
			}
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(root)
}

// extractClass reads one class declaration: name, superclass, implemented
// interfaces and the direct members of its body. Members of nested classes
// belong to the nested descriptor, not this one.
func extractClass(node *sitter.Node, src []byte) *descriptor.ClassDescriptor {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	class := &descriptor.ClassDescriptor{Name: nameNode.Content(src)}

	if sup := node.ChildByFieldName("superclass"); sup != nil {
		for i := 0; i < int(sup.NamedChildCount()); i++ {
			class.Parents = append(class.Parents, sup.NamedChild(i).Content(src))
		}
	}
	if si := node.ChildByFieldName("interfaces"); si != nil {
		for i := 0; i < int(si.NamedChildCount()); i++ {
			list := si.NamedChild(i)
			if list.Type() != "type_list" {
				continue
			}
			for j := 0; j < int(list.NamedChildCount()); j++ {
				class.Interfaces = append(class.Interfaces, list.NamedChild(j).Content(src))
			}
		}
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return class
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		switch member.Type() {
		case "field_declaration":
			class.Fields = append(class.Fields, extractFields(member, src)...)
		case "method_declaration":
			if method := extractMethod(member, src); method != nil {
				class.Methods = append(class.Methods, *method)
			}
		}
	}
	return class
}

// extractFields expands one field declaration into one descriptor per
// declarator ("int a, b;" yields two), all sharing the declaration's type,
// modifiers and line.
func extractFields(decl *sitter.Node, src []byte) []descriptor.FieldDescriptor {
	typeNode := decl.ChildByFieldName("type")
	if typeNode == nil {
		return nil
	}
	declaredType := typeNode.Content(src)
	mods := collectModifiers(decl)
	line := int(decl.StartPoint().Row) + 1

	var fields []descriptor.FieldDescriptor
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		declarator := decl.NamedChild(i)
		if declarator.Type() != "variable_declarator" {
			continue
		}
		nameNode := declarator.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		fields = append(fields, descriptor.FieldDescriptor{
			Name:         nameNode.Content(src),
			DeclaredType: declaredType,
			IsFinal:      mods["final"],
			IsVolatile:   mods["volatile"],
			IsStatic:     mods["static"],
			Line:         line,
		})
	}
	return fields
}

func extractMethod(decl *sitter.Node, src []byte) *descriptor.MethodDescriptor {
	nameNode := decl.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	mods := collectModifiers(decl)
	method := &descriptor.MethodDescriptor{
		Name:           nameNode.Content(src),
		IsSynchronized: mods["synchronized"],
		IsStatic:       mods["static"],
		Line:           int(decl.StartPoint().Row) + 1,
	}
	if typeNode := decl.ChildByFieldName("type"); typeNode != nil {
		method.ReturnType = typeNode.Content(src)
	}
	if params := decl.ChildByFieldName("parameters"); params != nil {
		method.ParameterTypes = parameterTypes(params, src)
	}
	return method
}

func parameterTypes(params *sitter.Node, src []byte) []string {
	var types []string
	for i := 0; i < int(params.NamedChildCount()); i++ {
		param := params.NamedChild(i)
		switch param.Type() {
		case "formal_parameter":
			if t := param.ChildByFieldName("type"); t != nil {
				types = append(types, t.Content(src))
			}
		case "spread_parameter":
			// The element type is the named child that is neither the
			// modifiers nor the declarator.
			for j := 0; j < int(param.NamedChildCount()); j++ {
				child := param.NamedChild(j)
				if child.Type() == "modifiers" || child.Type() == "variable_declarator" {
					continue
				}
				types = append(types, child.Content(src)+"...")
				break
			}
		}
	}
	return types
}

// collectModifiers reads the optional modifiers node of a declaration.
// Keyword tokens are anonymous nodes whose Type is the keyword itself, so
// the map ends up keyed by "final", "volatile", "static", "synchronized".
func collectModifiers(decl *sitter.Node) map[string]bool {
	mods := make(map[string]bool)
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		child := decl.NamedChild(i)
		if child.Type() != "modifiers" {
			continue
		}
		for j := 0; j < int(child.ChildCount()); j++ {
			mods[child.Child(j).Type()] = true
		}
	}
	return mods
}
