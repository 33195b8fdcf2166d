package sorted

import (
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"typesynth/internal/common"
	"typesynth/internal/diagnostic"
)

// Directive opts a const block into the ordering check.
const Directive = "sorted"

// Analyzer reports const blocks marked //typesynth:sorted whose names are not
// in case-insensitive order.
var Analyzer = &analysis.Analyzer{
	Name:     "sortcheck",
	Doc:      "check that //typesynth:sorted const blocks are declared in case-insensitive order",
	URL:      "https://pkg.go.dev/typesynth/internal/sorted",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.GenDecl)(nil),
		(*ast.FuncDecl)(nil),
	}

	insp.Preorder(nodeFilter, func(n ast.Node) {
		if f, ok := inspectDecl(n); ok {
			pass.Report(analysis.Diagnostic{
				Pos:      f.pos,
				Category: f.code,
				Message:  f.message,
			})
		}
	})

	return nil, nil
}

// Scan checks every marked declaration of files outside of an analysis pass.
func Scan(fset *token.FileSet, files []*ast.File) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	for _, file := range files {
		for _, decl := range file.Decls {
			f, ok := inspectDecl(decl)
			if !ok {
				continue
			}

			diags.AddError(f.code, f.message, fset.Position(f.pos), "", f.variant)
		}
	}

	return diags
}

// finding is a problem with one declaration.
type finding struct {
	pos     token.Pos
	code    string
	message string
	variant string
}

func inspectDecl(n ast.Node) (finding, bool) {
	switch decl := n.(type) {
	case *ast.GenDecl:
		if _, ok := common.Directive(decl.Doc, Directive); !ok {
			return finding{}, false
		}

		if decl.Tok != token.CONST {
			return misplaced(decl.Pos(), decl.Tok.String()), true
		}

		list := Variants(decl)

		v, bad := Check(list)
		if !bad {
			return finding{}, false
		}

		return finding{
			pos:     v.Offending.Pos,
			code:    diagnostic.CodeUnsorted,
			message: v.Message(),
			variant: v.Offending.Name,
		}, true
	case *ast.FuncDecl:
		if _, ok := common.Directive(decl.Doc, Directive); ok {
			return misplaced(decl.Pos(), "func"), true
		}
	}

	return finding{}, false
}

func misplaced(pos token.Pos, kind string) finding {
	return finding{
		pos:     pos,
		code:    diagnostic.CodeMisplacedDirective,
		message: common.DirectivePrefix + Directive + " applies to const blocks, not " + kind + " declarations",
	}
}

// Variants returns the names declared by a const block in order.
// Blank names are skipped.
func Variants(decl *ast.GenDecl) VariantList {
	var list VariantList

	for _, spec := range decl.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}

		for _, name := range vs.Names {
			if name.Name == "_" {
				continue
			}

			list = append(list, Variant{Name: name.Name, Pos: name.Pos()})
		}
	}

	return list
}
