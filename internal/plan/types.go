package plan

import (
	"go/ast"
	"go/token"
	"go/types"

	"typesynth/internal/analyze"
)

// Reserved builder members that no setter may be named after.
const (
	BuildMethod = "Build"
	SlotsField  = "fields"
)

// Options control naming and classification.
type Options struct {
	// OptionalWrappers lists the type names recognised as optional wrappers.
	OptionalWrappers []string
	// BuilderSuffix is appended to the target name to name the builder.
	BuilderSuffix string
	// ConstructorPrefix is prepended to the builder name to name its constructor.
	ConstructorPrefix string
}

// DefaultOptions returns the default planning options.
func DefaultOptions() Options {
	return Options{
		OptionalWrappers:  []string{DefaultOptionalWrapper},
		BuilderSuffix:     "Builder",
		ConstructorPrefix: "New",
	}
}

// FieldPlan is the classification of one target field.
type FieldPlan struct {
	// Name of the target field.
	Name string
	// Mode decides which setters are emitted and how Build treats the field.
	Mode Mode
	// ItemSetter is the name of the item setter (Accumulating only).
	ItemSetter string
	// DeclaredType is the field type as declared on the target.
	DeclaredType ast.Expr
	// StorageType is DeclaredType with one optional wrapper removed.
	// The builder slot holds an option of this type.
	StorageType ast.Expr
	// Wrapped is true when DeclaredType is an optional wrapper around StorageType.
	Wrapped bool
	// ItemType is the sequence element accepted by the item setter.
	ItemType ast.Expr
	// SuppressWholeSetter is true iff ItemSetter == Name.
	SuppressWholeSetter bool
	// Pos is the field's position, for diagnostics.
	Pos token.Position
}

// Setters returns the names of the methods emitted for this field.
func (f *FieldPlan) Setters() []string {
	var out []string
	if !f.SuppressWholeSetter {
		out = append(out, f.Name)
	}

	if f.ItemSetter != "" {
		out = append(out, f.ItemSetter)
	}

	return out
}

// StorageString returns the storage type as Go source.
func (f *FieldPlan) StorageString() string {
	return types.ExprString(f.StorageType)
}

// ItemString returns the item type as Go source, or "" when there is none.
func (f *FieldPlan) ItemString() string {
	if f.ItemType == nil {
		return ""
	}

	return types.ExprString(f.ItemType)
}

// BuilderPlan is everything needed to emit one builder.
type BuilderPlan struct {
	// TypeName is the target struct's name.
	TypeName string
	// PkgName and PkgPath identify the package the builder is generated into.
	PkgName string
	PkgPath string
	// File is the file declaring the target.
	File string
	// Pos is the target's position, for diagnostics about its output.
	Pos token.Position
	// BuilderName is the name of the generated builder type.
	BuilderName string
	// ConstructorName is the name of the function creating a builder.
	ConstructorName string
	// Fields in declaration order, one per target field.
	Fields []FieldPlan
	// Imports referenced by storage and item types, sorted by path.
	Imports []analyze.ImportInfo
}

// HasAccumulating reports whether any field is Accumulating.
func (p *BuilderPlan) HasAccumulating() bool {
	for i := range p.Fields {
		if p.Fields[i].Mode == ModeAccumulating {
			return true
		}
	}

	return false
}

// HasRequired reports whether Build can fail.
func (p *BuilderPlan) HasRequired() bool {
	for i := range p.Fields {
		if p.Fields[i].Mode != ModeOptional {
			return true
		}
	}

	return false
}
