// Command sortcheck reports //typesynth:sorted const blocks that are not in
// case-insensitive order. It can run standalone or as a vet tool:
//
//	go vet -vettool=$(which sortcheck) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"typesynth/internal/sorted"
)

func main() {
	singlechecker.Main(sorted.Analyzer)
}
