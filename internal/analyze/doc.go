// Package analyze loads Go packages and extracts the field schema of builder
// targets.
//
// It uses golang.org/x/tools/go/packages to load syntax, then walks the AST:
// extraction works on type expressions as written, never on runtime values.
//
// Key types:
//   - Package: one loaded package (file set, syntax, import path, name)
//   - TargetStruct: a struct selected for builder synthesis
//   - FieldDescriptor: field name, declared type expression, raw annotations
package analyze
