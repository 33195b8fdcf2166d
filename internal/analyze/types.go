package analyze

import (
	"go/ast"
	"go/token"
)

// Annotation is one raw struct tag entry, e.g. builder:"each=Arg".
type Annotation struct {
	Key   string
	Value string
}

// FieldDescriptor describes one struct field as declared.
type FieldDescriptor struct {
	Name        string         // Go field name
	Type        ast.Expr       // Declared type expression
	TypeString  string         // Type expression as written, e.g. "option.Option[string]"
	Tag         string         // Raw struct tag without backquotes
	Annotations []Annotation   // Parsed struct tag entries in declaration order
	Embedded    bool           // Whether the field is embedded (anonymous)
	Pos         token.Position // Position of the field name
	TagPos      token.Position // Position of the tag, or Pos when there is none
}

// Annotation returns the first annotation with the given key.
func (f *FieldDescriptor) Annotation(key string) (Annotation, bool) {
	for _, a := range f.Annotations {
		if a.Key == key {
			return a, true
		}
	}

	return Annotation{}, false
}

// Exported returns true if the field is exported.
func (f *FieldDescriptor) Exported() bool {
	return token.IsExported(f.Name)
}

// ImportInfo describes an import of the file declaring a target.
type ImportInfo struct {
	Name     string // Local name used in the file
	Path     string // Import path
	Explicit bool   // Whether the file renames the import
}

// TargetStruct is a struct type selected for builder synthesis.
type TargetStruct struct {
	Name       string
	PkgPath    string
	PkgName    string
	File       string // Declaring file name
	Pos        token.Position
	TypeParams int                   // Number of type parameters; generic targets are rejected
	Fields     []FieldDescriptor     // In declaration order
	Imports    map[string]ImportInfo // Keyed by local name
}

// Field returns the field with the given name, or nil.
func (t *TargetStruct) Field(name string) *FieldDescriptor {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i]
		}
	}

	return nil
}

// Package holds the syntax of a loaded package.
type Package struct {
	Path  string // Import path
	Name  string // Package name
	Dir   string // Directory containing the package sources
	Fset  *token.FileSet
	Files []*ast.File
	// ImportNames maps import paths to the real package names, when known.
	ImportNames map[string]string
}
