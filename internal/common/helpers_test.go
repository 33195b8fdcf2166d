package common

import "go/ast"

func declDoc(file *ast.File, i int) *ast.CommentGroup {
	return file.Decls[i].(*ast.GenDecl).Doc
}
