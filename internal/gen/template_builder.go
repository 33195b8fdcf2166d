package gen

import (
	"go/token"
	"go/types"
	"strconv"
	"unicode"

	"typesynth/internal/plan"
)

// templateData holds all data needed for the builder template.
type templateData struct {
	PackageName      string
	Filename         string
	Imports          []importSpec
	TypeName         string
	BuilderName      string
	ConstructorName  string
	GenerateComments bool
	Fields           []fieldData

	// Local names of the packages used by generated code.
	Option    string
	Construct string
	Slices    string
}

// fieldData is one field as seen by the template.
type fieldData struct {
	Name         string
	Var          string // Local variable holding the value in Build
	Storage      string
	Item         string
	ItemSetter   string
	WholeSetter  bool
	Optional     bool
	Accumulating bool
	Wrapped      bool // Build must re-wrap the value in an option
}

// buildTemplateData constructs the template data from a builder plan.
func (g *Generator) buildTemplateData(p *plan.BuilderPlan) *templateData {
	data := &templateData{
		PackageName:      p.PkgName,
		Filename:         g.filename(p.TypeName),
		TypeName:         p.TypeName,
		BuilderName:      p.BuilderName,
		ConstructorName:  p.ConstructorName,
		GenerateComments: g.config.GenerateComments,
	}

	imports := newImportSet()
	for _, imp := range p.Imports {
		imports.addFieldImport(imp)
	}

	if len(p.Fields) > 0 {
		data.Option = imports.addRuntime(g.config.OptionImport)
	}

	if p.HasRequired() {
		data.Construct = imports.addRuntime(g.config.ConstructImport)
	}

	if p.HasAccumulating() {
		data.Slices = imports.addRuntime("slices")
	}

	reserved := map[string]bool{
		"b": true, "ok": true, "v": true, "items": true,
		p.TypeName: true,
	}
	for name := range imports.byName {
		reserved[name] = true
	}

	for i := range p.Fields {
		f := &p.Fields[i]

		fd := fieldData{
			Name:         f.Name,
			Storage:      f.StorageString(),
			Item:         f.ItemString(),
			ItemSetter:   f.ItemSetter,
			WholeSetter:  !f.SuppressWholeSetter,
			Optional:     f.Mode == plan.ModeOptional,
			Accumulating: f.Mode == plan.ModeAccumulating,
			Wrapped:      f.Wrapped && f.Mode != plan.ModeOptional,
		}

		if !fd.Optional {
			fd.Var = localName(f.Name, reserved)
			reserved[fd.Var] = true
		}

		data.Fields = append(data.Fields, fd)
	}

	data.Imports = imports.sorted()

	return data
}

// localName derives an unexported variable name from a field name that does
// not collide with keywords, predeclared identifiers or names in use.
func localName(field string, used map[string]bool) string {
	base := lowerCamel(field)
	if token.IsKeyword(base) || types.Universe.Lookup(base) != nil {
		base += "Value"
	}

	name := base
	for i := 2; used[name]; i++ {
		name = base + strconv.Itoa(i)
	}

	return name
}

// lowerCamel lowercases the leading upper-case run of an identifier:
// "Executable" -> "executable", "URL" -> "url", "URLPath" -> "urlPath".
func lowerCamel(s string) string {
	runes := []rune(s)

	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}

	switch {
	case n == 0:
		return s
	case n == len(runes):
		n = len(runes)
	case n > 1:
		n-- // keep the first letter of the next word upper-case
	}

	for i := 0; i < n; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}

	return string(runes)
}
