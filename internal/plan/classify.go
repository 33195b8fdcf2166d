package plan

import (
	"fmt"
	"go/ast"
	"go/token"
	"sort"
	"strconv"
	"strings"

	"typesynth/internal/analyze"
	"typesynth/internal/diagnostic"
	"typesynth/internal/match"
)

// AnnotationKey is the struct tag key read by the classifier.
const AnnotationKey = analyze.AnnotationKey

// eachKey is the only key accepted inside a builder annotation.
const eachKey = "each"

// expectedEach is the message of every malformed builder annotation.
const expectedEach = "expected `builder:\"each=...\"`"

// ParseEach parses the value of a builder annotation: "each=<identifier>".
// Whitespace around '=' is allowed and the identifier may be quoted.
func ParseEach(value string) (key, name string, ok bool) {
	key, name, found := strings.Cut(value, "=")
	key = strings.TrimSpace(key)
	name = strings.TrimSpace(name)

	if unquoted, err := strconv.Unquote(name); err == nil {
		name = unquoted
	}

	if !found || key != eachKey || !token.IsIdentifier(name) {
		return key, "", false
	}

	return key, name, true
}

// ClassifyField assigns a construction mode to one field and computes its
// storage type. A malformed builder annotation is returned as an error
// diagnostic located at the field's tag.
func ClassifyField(target string, f *analyze.FieldDescriptor, wrappers []string) (FieldPlan, *diagnostic.Diagnostic) {
	fp := FieldPlan{
		Name:         f.Name,
		DeclaredType: f.Type,
		StorageType:  f.Type,
		Pos:          f.Pos,
	}

	if inner, ok := OptionalElem(f.Type, wrappers); ok {
		fp.StorageType = inner
		fp.Wrapped = true
		fp.Mode = ModeOptional
	}

	ann, ok := f.Annotation(AnnotationKey)
	if !ok {
		return fp, nil
	}

	key, item, ok := ParseEach(ann.Value)
	if !ok {
		d := &diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Code:     diagnostic.CodeMalformedAnnotation,
			Message:  expectedEach,
			Pos:      f.TagPos,
			Target:   target,
			Field:    f.Name,
		}
		if key != eachKey {
			d.Suggestions = match.Suggest(key, []string{eachKey}, match.DefaultMinScore)
		}

		return fp, d
	}

	elem, ok := SequenceElem(fp.StorageType)
	if !ok {
		return fp, &diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Code:     diagnostic.CodeEachNotSequence,
			Message: fmt.Sprintf("each requires a sequence type, field %s has type %s",
				f.Name, fp.StorageString()),
			Pos:    f.TagPos,
			Target: target,
			Field:  f.Name,
		}
	}

	fp.Mode = ModeAccumulating
	fp.ItemSetter = item
	fp.ItemType = elem
	fp.SuppressWholeSetter = item == f.Name

	return fp, nil
}

// Build classifies every field of target and returns its BuilderPlan.
// On any authoring error the plan is nil and the diagnostics say why.
func Build(target *analyze.TargetStruct, opts Options) (*BuilderPlan, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	if target.TypeParams > 0 {
		diags.AddError(diagnostic.CodeGenericTarget,
			fmt.Sprintf("generic type %s is not supported", target.Name),
			target.Pos, target.Name, "")

		return nil, diags
	}

	p := &BuilderPlan{
		TypeName:        target.Name,
		PkgName:         target.PkgName,
		PkgPath:         target.PkgPath,
		File:            target.File,
		Pos:             target.Pos,
		BuilderName:     target.Name + opts.BuilderSuffix,
		ConstructorName: opts.ConstructorPrefix + target.Name + opts.BuilderSuffix,
	}

	for i := range target.Fields {
		f := &target.Fields[i]

		switch {
		case f.Embedded:
			diags.AddError(diagnostic.CodeEmbeddedField,
				fmt.Sprintf("embedded field %s cannot be set by a builder", f.Name),
				f.Pos, target.Name, f.Name)

			continue
		case f.Name == "_":
			diags.AddError(diagnostic.CodeBlankField,
				"blank field cannot be set by a builder", f.Pos, target.Name, f.Name)

			continue
		}

		fp, d := ClassifyField(target.Name, f, opts.OptionalWrappers)
		if d != nil {
			diags.Add(*d)

			continue
		}

		p.Fields = append(p.Fields, fp)
	}

	if diags.HasErrors() {
		return nil, diags
	}

	checkCollisions(p, target.Name, &diags)
	if diags.HasErrors() {
		return nil, diags
	}

	p.Imports = referencedImports(p.Fields, target.Imports)

	return p, diags
}

// checkCollisions rejects two setters with the same name and setters named
// after reserved builder members.
func checkCollisions(p *BuilderPlan, target string, diags *diagnostic.Diagnostics) {
	owners := map[string]string{
		BuildMethod: "",
		SlotsField:  "",
	}

	for i := range p.Fields {
		f := &p.Fields[i]

		for _, name := range f.Setters() {
			owner, taken := owners[name]
			if !taken {
				owners[name] = f.Name

				continue
			}

			msg := fmt.Sprintf("%s.%s is reserved by the builder", p.BuilderName, name)
			if owner != "" {
				msg = fmt.Sprintf("setter %s.%s is already declared for field %s", p.BuilderName, name, owner)
			}

			diags.AddError(diagnostic.CodeSetterCollision, msg, f.Pos, target, f.Name)
		}
	}
}

// referencedImports returns the imports used by package qualifiers in the
// storage types, sorted by path.
func referencedImports(fields []FieldPlan, imports map[string]analyze.ImportInfo) []analyze.ImportInfo {
	seen := make(map[string]analyze.ImportInfo)

	for i := range fields {
		ast.Inspect(fields[i].StorageType, func(n ast.Node) bool {
			sel, ok := n.(*ast.SelectorExpr)
			if !ok {
				return true
			}

			if id, ok := sel.X.(*ast.Ident); ok {
				if imp, ok := imports[id.Name]; ok {
					seen[imp.Path] = imp
				}
			}

			return false
		})
	}

	out := make([]analyze.ImportInfo, 0, len(seen))
	for _, imp := range seen {
		out = append(out, imp)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})

	return out
}
