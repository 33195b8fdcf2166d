package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"slices"
	"strconv"

	"github.com/fatih/structtag"

	"typesynth/internal/common"
	"typesynth/internal/diagnostic"
	"typesynth/internal/match"
)

// BuilderDirective marks a struct type declaration as a builder target.
const BuilderDirective = "builder"

// AnnotationKey is the struct tag key holding builder annotations.
const AnnotationKey = "builder"

// Selector chooses which struct types are builder targets.
type Selector struct {
	// Names lists type names requested explicitly.
	Names []string
	// Directive selects types documented with //typesynth:<Directive>.
	// Empty disables directive selection.
	Directive string
}

// typeDecl is a type spec together with the declaration and file holding it.
type typeDecl struct {
	spec *ast.TypeSpec
	decl *ast.GenDecl
	file *ast.File
}

// Extract finds the builder targets of pkg and describes their fields.
//
// A target with an authoring error (not a struct, unreadable struct tag) is
// reported and left out; the other targets are still returned.
func Extract(pkg *Package, sel Selector) ([]TargetStruct, diagnostic.Diagnostics) {
	var (
		diags    diagnostic.Diagnostics
		targets  []TargetStruct
		allNames []string
		found    = make(map[string]bool)
	)

	requested := make(map[string]bool, len(sel.Names))
	for _, n := range sel.Names {
		requested[n] = true
	}

	for _, td := range typeDecls(pkg.Files) {
		name := td.spec.Name.Name
		allNames = append(allNames, name)

		args, marked := directiveArgs(td, sel.Directive)
		if !requested[name] && !marked {
			warnUnusedAnnotations(pkg, td, &diags)

			continue
		}

		if args != "" {
			diags.AddInfo(diagnostic.CodeIgnoredArguments,
				fmt.Sprintf("arguments %q after %s%s are ignored", args, common.DirectivePrefix, sel.Directive),
				pkg.Fset.Position(td.spec.Name.Pos()), name, "")
		}

		found[name] = true

		target, ok := extractTarget(pkg, td, &diags)
		if ok {
			targets = append(targets, target)
		}
	}

	for _, n := range sel.Names {
		if found[n] {
			continue
		}

		diags.Add(diagnostic.Diagnostic{
			Severity:    diagnostic.SeverityError,
			Code:        diagnostic.CodeUnknownType,
			Message:     fmt.Sprintf("type %s not found in package %s", n, pkg.Path),
			Target:      n,
			Suggestions: match.Suggest(n, allNames, match.DefaultMinScore),
		})
	}

	return targets, diags
}

func typeDecls(files []*ast.File) []typeDecl {
	var out []typeDecl

	for _, file := range files {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}

			for _, spec := range gd.Specs {
				out = append(out, typeDecl{spec: spec.(*ast.TypeSpec), decl: gd, file: file})
			}
		}
	}

	return out
}

// directiveArgs checks the type spec's own doc and, for an unparenthesized
// declaration, the declaration's doc. It returns the text after the directive.
func directiveArgs(td typeDecl, directive string) (string, bool) {
	if directive == "" {
		return "", false
	}

	if args, ok := common.Directive(td.spec.Doc, directive); ok {
		return args, true
	}

	if td.decl.Lparen.IsValid() {
		return "", false
	}

	return common.Directive(td.decl.Doc, directive)
}

// warnUnusedAnnotations reports builder tags on a struct that is not a target.
// Unreadable tags are skipped: they only matter on targets.
func warnUnusedAnnotations(pkg *Package, td typeDecl, diags *diagnostic.Diagnostics) {
	st, ok := td.spec.Type.(*ast.StructType)
	if !ok {
		return
	}

	name := td.spec.Name.Name

	for _, field := range st.Fields.List {
		if field.Tag == nil {
			continue
		}

		raw, err := strconv.Unquote(field.Tag.Value)
		if err != nil {
			continue
		}

		anns, err := parseAnnotations(raw)
		if err != nil || !slices.ContainsFunc(anns, func(a Annotation) bool { return a.Key == AnnotationKey }) {
			continue
		}

		diags.AddWarning(diagnostic.CodeUnusedAnnotation,
			fmt.Sprintf("%s tag has no effect: %s is not a builder target", AnnotationKey, name),
			pkg.Fset.Position(field.Tag.Pos()), name, fieldName(field))
	}
}

func extractTarget(pkg *Package, td typeDecl, diags *diagnostic.Diagnostics) (TargetStruct, bool) {
	name := td.spec.Name.Name
	pos := pkg.Fset.Position(td.spec.Name.Pos())

	st, ok := td.spec.Type.(*ast.StructType)
	if !ok || td.spec.Assign.IsValid() {
		diags.AddError(diagnostic.CodeNotAStruct,
			fmt.Sprintf("%s is not a struct type", name), pos, name, "")

		return TargetStruct{}, false
	}

	target := TargetStruct{
		Name:       name,
		PkgPath:    pkg.Path,
		PkgName:    pkg.Name,
		File:       pos.Filename,
		Pos:        pos,
		TypeParams: td.spec.TypeParams.NumFields(),
		Imports:    fileImports(td.file, pkg.ImportNames),
	}

	valid := true

	for _, field := range st.Fields.List {
		descs, err := describeField(pkg.Fset, field)
		if err != nil {
			diags.Add(diagnostic.Diagnostic{
				Severity: diagnostic.SeverityError,
				Code:     diagnostic.CodeMalformedAnnotation,
				Message:  fmt.Sprintf("malformed struct tag: %v", err),
				Pos:      pkg.Fset.Position(field.Tag.Pos()),
				Target:   name,
				Field:    fieldName(field),
			})

			valid = false

			continue
		}

		target.Fields = append(target.Fields, descs...)
	}

	return target, valid
}

// describeField returns one descriptor per declared name ("A, B int" gives two).
func describeField(fset *token.FileSet, field *ast.Field) ([]FieldDescriptor, error) {
	base := FieldDescriptor{
		Type:       field.Type,
		TypeString: types.ExprString(field.Type),
	}

	if field.Tag != nil {
		raw, err := strconv.Unquote(field.Tag.Value)
		if err != nil {
			return nil, err
		}

		base.Tag = raw
		base.TagPos = fset.Position(field.Tag.Pos())

		base.Annotations, err = parseAnnotations(raw)
		if err != nil {
			return nil, err
		}
	}

	if len(field.Names) == 0 {
		base.Name = fieldName(field)
		base.Embedded = true
		base.Pos = fset.Position(field.Type.Pos())
		if field.Tag == nil {
			base.TagPos = base.Pos
		}

		return []FieldDescriptor{base}, nil
	}

	out := make([]FieldDescriptor, 0, len(field.Names))
	for _, ident := range field.Names {
		d := base
		d.Name = ident.Name
		d.Pos = fset.Position(ident.Pos())
		d.Annotations = slices.Clone(base.Annotations)
		if field.Tag == nil {
			d.TagPos = d.Pos
		}

		out = append(out, d)
	}

	return out, nil
}

func parseAnnotations(raw string) ([]Annotation, error) {
	if raw == "" {
		return nil, nil
	}

	tags, err := structtag.Parse(raw)
	if err != nil {
		return nil, err
	}

	if tags == nil {
		return nil, nil
	}

	out := make([]Annotation, 0, tags.Len())
	for _, t := range tags.Tags() {
		out = append(out, Annotation{Key: t.Key, Value: t.Value()})
	}

	return out, nil
}

// fieldName names a field for diagnostics; embedded fields are named after
// their type ("*pkg.T" gives "T").
func fieldName(field *ast.Field) string {
	if len(field.Names) > 0 {
		return field.Names[0].Name
	}

	expr := field.Type
	for {
		switch e := expr.(type) {
		case *ast.StarExpr:
			expr = e.X
		case *ast.SelectorExpr:
			return e.Sel.Name
		case *ast.IndexExpr:
			expr = e.X
		case *ast.IndexListExpr:
			expr = e.X
		case *ast.Ident:
			return e.Name
		default:
			return types.ExprString(field.Type)
		}
	}
}

func fileImports(file *ast.File, names map[string]string) map[string]ImportInfo {
	out := make(map[string]ImportInfo, len(file.Imports))

	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		info := ImportInfo{Path: path}

		switch {
		case spec.Name != nil && (spec.Name.Name == "_" || spec.Name.Name == "."):
			continue
		case spec.Name != nil:
			info.Name = spec.Name.Name
			info.Explicit = true
		case names[path] != "":
			info.Name = names[path]
		default:
			info.Name = common.PkgAlias(path)
		}

		out[info.Name] = info
	}

	return out
}
