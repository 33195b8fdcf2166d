package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"text/template"

	"typesynth/internal/match"
	"typesynth/internal/plan"
)

// Runtime import paths referenced by generated code.
const (
	DefaultOptionImport    = "typesynth/option"
	DefaultConstructImport = "typesynth/construct"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// FileSuffix is appended to the snake_case target name to name the file.
	FileSuffix string
	// GenerateComments enables doc comments on generated declarations.
	GenerateComments bool
	// OptionImport is the import path of the option package.
	OptionImport string
	// ConstructImport is the import path of the construct package.
	ConstructImport string
	// DebugDir receives *.unformatted.go sidecars when formatting fails ("" disables).
	DebugDir string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		FileSuffix:       "_builder.go",
		GenerateComments: true,
		OptionImport:     DefaultOptionImport,
		ConstructImport:  DefaultConstructImport,
	}
}

// Generator generates builder source files from plans.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "command_builder.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate emits one file per plan, in plan order.
func (g *Generator) Generate(plans []*plan.BuilderPlan) ([]GeneratedFile, error) {
	files := make([]GeneratedFile, 0, len(plans))

	for _, p := range plans {
		file, err := g.GenerateBuilder(p)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", p.BuilderName, err)
		}

		files = append(files, *file)
	}

	return files, nil
}

// GenerateBuilder emits the builder for a single plan.
//
// When the output cannot be formatted the unformatted content is returned
// together with the error, so callers can inspect it.
func (g *Generator) GenerateBuilder(p *plan.BuilderPlan) (*GeneratedFile, error) {
	data := g.buildTemplateData(p)

	var buf bytes.Buffer
	if err := builderTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.DebugDir != "" {
			_ = writeDebugUnformatted(g.config.DebugDir, data.Filename, buf.Bytes())
		}

		return &GeneratedFile{
			Filename: data.Filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w", err)
	}

	return &GeneratedFile{
		Filename: data.Filename,
		Content:  formatted,
	}, nil
}

// filename returns the output file name for a target, e.g. "http_server_builder.go".
func (g *Generator) filename(typeName string) string {
	return strings.Join(match.TokenizeIdent(typeName), "_") + g.config.FileSuffix
}

var builderTemplate = template.Must(template.New("builder").Parse(`// Code generated by typesynth. DO NOT EDIT.

package {{.PackageName}}
{{if eq (len .Imports) 1}}{{with index .Imports 0}}
import {{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}}{{else if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}
{{if .GenerateComments}}// {{.BuilderName}} builds {{.TypeName}} values one field at a time.
// It is not safe for concurrent use.
{{end}}type {{.BuilderName}} struct {
	fields struct {
{{range .Fields}}		{{.Name}} {{$.Option}}.Option[{{.Storage}}]
{{end}}	}
}

{{if .GenerateComments}}// {{.ConstructorName}} returns a {{.BuilderName}} with every field unset
// and every accumulating field empty.
{{end}}func {{.ConstructorName}}() *{{.BuilderName}} {
	b := &{{.BuilderName}}{}
{{range .Fields}}{{if .Accumulating}}	b.fields.{{.Name}} = {{$.Option}}.Some({{.Storage}}{})
{{end}}{{end}}	return b
}
{{range .Fields}}{{if .WholeSetter}}
{{if $.GenerateComments}}// {{.Name}} sets {{.Name}}{{if .Accumulating}} to a copy of v{{end}}.
{{end}}func (b *{{$.BuilderName}}) {{.Name}}(v {{.Storage}}) *{{$.BuilderName}} {
	b.fields.{{.Name}} = {{$.Option}}.Some({{if .Accumulating}}{{$.Slices}}.Clone(v){{else}}v{{end}})
	return b
}
{{end}}{{end}}{{range .Fields}}{{if .Accumulating}}
{{if $.GenerateComments}}// {{.ItemSetter}} appends one item to {{.Name}}.
{{end}}func (b *{{$.BuilderName}}) {{.ItemSetter}}(v {{.Item}}) *{{$.BuilderName}} {
	items, _ := b.fields.{{.Name}}.Get()
	b.fields.{{.Name}} = {{$.Option}}.Some(append(items, v))
	return b
}
{{end}}{{end}}
{{if .GenerateComments}}// Build returns the {{.TypeName}}, or an error naming the first
// required field that was not set.
{{end}}func (b *{{.BuilderName}}) Build() ({{.TypeName}}, error) {
{{range .Fields}}{{if not .Optional}}	{{.Var}}, ok := b.fields.{{.Name}}.Get()
	if !ok {
		return {{$.TypeName}}{}, {{$.Construct}}.Missing("{{$.TypeName}}", "{{.Name}}")
	}

{{end}}{{end}}{{if .Fields}}	return {{.TypeName}}{
{{range .Fields}}		{{.Name}}: {{if .Optional}}b.fields.{{.Name}}{{else if .Wrapped}}{{$.Option}}.Some({{$.Slices}}.Clone({{.Var}})){{else if .Accumulating}}{{$.Slices}}.Clone({{.Var}}){{else}}{{.Var}}{{end}},
{{end}}	}, nil
{{else}}	return {{.TypeName}}{}, nil
{{end}}}
`))
