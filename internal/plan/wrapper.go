package plan

import (
	"go/ast"
	"slices"
)

// DefaultOptionalWrapper is the type name recognised as the optional wrapper.
const DefaultOptionalWrapper = "Option"

// OptionalElem reports whether expr is an optional wrapper and returns the
// wrapped type.
//
// It matches a named generic type with exactly one type argument whose name is
// one of names: Option[T] or option.Option[T]. A package qualifier is an
// import reference, not a nested path, so both count as a single named type.
func OptionalElem(expr ast.Expr, names []string) (ast.Expr, bool) {
	name, arg, ok := singleArgGeneric(expr)
	if !ok || !slices.Contains(names, name) {
		return nil, false
	}

	return arg, true
}

// SequenceElem reports whether expr is a sequence and returns its element
// type. It does not look at names: []E and any named generic type with exactly
// one type argument (List[E], pkg.List[E]) match. It is applied only to the
// storage of accumulating fields, where the annotation already declares the
// type to be a sequence. Generated item setters append to the storage, so a
// named sequence needs a slice underlying type.
func SequenceElem(expr ast.Expr) (ast.Expr, bool) {
	if arr, ok := ast.Unparen(expr).(*ast.ArrayType); ok {
		if arr.Len != nil {
			return nil, false
		}

		return arr.Elt, true
	}

	_, arg, ok := singleArgGeneric(expr)

	return arg, ok
}

// singleArgGeneric splits "Name[T]" or "pkg.Name[T]" into Name and T.
// Multi-argument instantiations (ast.IndexListExpr) never match.
func singleArgGeneric(expr ast.Expr) (string, ast.Expr, bool) {
	idx, ok := ast.Unparen(expr).(*ast.IndexExpr)
	if !ok {
		return "", nil, false
	}

	switch x := idx.X.(type) {
	case *ast.Ident:
		return x.Name, idx.Index, true
	case *ast.SelectorExpr:
		if _, ok := x.X.(*ast.Ident); !ok {
			return "", nil, false
		}

		return x.Sel.Name, idx.Index, true
	default:
		return "", nil, false
	}
}
