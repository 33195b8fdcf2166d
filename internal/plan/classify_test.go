package plan

import (
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typesynth/internal/analyze"
	"typesynth/internal/diagnostic"
)

// field builds a descriptor from a type expression and a builder annotation
// value ("" for none).
func field(t *testing.T, name, typ, builderTag string) analyze.FieldDescriptor {
	t.Helper()

	expr, err := parser.ParseExpr(typ)
	require.NoError(t, err)

	f := analyze.FieldDescriptor{
		Name:       name,
		Type:       expr,
		TypeString: typ,
		Pos:        token.Position{Filename: "cmd.go", Line: 10, Column: 2},
		TagPos:     token.Position{Filename: "cmd.go", Line: 10, Column: 20},
	}
	if builderTag != "" {
		f.Annotations = []analyze.Annotation{{Key: AnnotationKey, Value: builderTag}}
	}

	return f
}

func commandTarget(t *testing.T) *analyze.TargetStruct {
	t.Helper()

	return &analyze.TargetStruct{
		Name:    "Command",
		PkgName: "cmd",
		PkgPath: "example.com/cmd",
		File:    "cmd.go",
		Fields: []analyze.FieldDescriptor{
			field(t, "Executable", "string", ""),
			field(t, "Args", "[]string", "each=Arg"),
			field(t, "Env", "[]string", "each=Env"),
			field(t, "CurrentDir", "option.Option[string]", ""),
			field(t, "Timeout", "time.Duration", ""),
		},
		Imports: map[string]analyze.ImportInfo{
			"time":   {Name: "time", Path: "time"},
			"option": {Name: "option", Path: "typesynth/option"},
			"yaml":   {Name: "yaml", Path: "gopkg.in/yaml.v3"},
		},
	}
}

func TestParseEach(t *testing.T) {
	tests := []struct {
		value string
		key   string
		name  string
		ok    bool
	}{
		{"each=Arg", "each", "Arg", true},
		{"each = Arg", "each", "Arg", true},
		{`each="Arg"`, "each", "Arg", true},
		{`each = "env"`, "each", "env", true},

		{"each", "each", "", false},
		{"each=", "each", "", false},
		{"each=1arg", "each", "", false},
		{"each=func", "each", "", false},
		{"each=Arg,omitempty", "each", "", false},
		{"eahc=Arg", "eahc", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			key, name, ok := ParseEach(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.name, name)
		})
	}
}

func TestClassifyField_Modes(t *testing.T) {
	tests := []struct {
		name       string
		field      analyze.FieldDescriptor
		mode       Mode
		storage    string
		item       string
		itemSetter string
		suppress   bool
	}{
		{
			name:    "plain field is required",
			field:   field(t, "Executable", "string", ""),
			mode:    ModeRequired,
			storage: "string",
		},
		{
			name:    "slice without annotation is required",
			field:   field(t, "Args", "[]string", ""),
			mode:    ModeRequired,
			storage: "[]string",
		},
		{
			name:    "optional wrapper is unwrapped",
			field:   field(t, "CurrentDir", "option.Option[string]", ""),
			mode:    ModeOptional,
			storage: "string",
		},
		{
			name:       "each annotation accumulates",
			field:      field(t, "Args", "[]string", "each=Arg"),
			mode:       ModeAccumulating,
			storage:    "[]string",
			item:       "string",
			itemSetter: "Arg",
		},
		{
			name:       "item setter named after the field suppresses the whole setter",
			field:      field(t, "Env", "[]string", "each=Env"),
			mode:       ModeAccumulating,
			storage:    "[]string",
			item:       "string",
			itemSetter: "Env",
			suppress:   true,
		},
		{
			name:       "optional accumulator is unwrapped once",
			field:      field(t, "Tags", "Option[[]string]", "each=Tag"),
			mode:       ModeAccumulating,
			storage:    "[]string",
			item:       "string",
			itemSetter: "Tag",
		},
		{
			name:       "generic sequence",
			field:      field(t, "Steps", "List[time.Duration]", "each=Step"),
			mode:       ModeAccumulating,
			storage:    "List[time.Duration]",
			item:       "time.Duration",
			itemSetter: "Step",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp, d := ClassifyField("Command", &tt.field, []string{DefaultOptionalWrapper})
			require.Nil(t, d)

			assert.Equal(t, tt.field.Name, fp.Name)
			assert.Equal(t, tt.mode, fp.Mode)
			assert.Equal(t, tt.storage, fp.StorageString())
			assert.Equal(t, tt.item, fp.ItemString())
			assert.Equal(t, tt.itemSetter, fp.ItemSetter)
			assert.Equal(t, tt.suppress, fp.SuppressWholeSetter)
			assert.Equal(t, tt.field.TypeString, types.ExprString(fp.DeclaredType))
		})
	}
}

func TestClassifyField_MalformedAnnotation(t *testing.T) {
	f := field(t, "Args", "[]string", "eahc=Arg")

	_, d := ClassifyField("Command", &f, []string{DefaultOptionalWrapper})

	require.NotNil(t, d)
	assert.Equal(t, diagnostic.SeverityError, d.Severity)
	assert.Equal(t, diagnostic.CodeMalformedAnnotation, d.Code)
	assert.Equal(t, "expected `builder:\"each=...\"`", d.Message)
	assert.Equal(t, 20, d.Pos.Column, "points at the tag")
	assert.Equal(t, "Command", d.Target)
	assert.Equal(t, "Args", d.Field)
	assert.Equal(t, []string{"each"}, d.Suggestions)
}

func TestClassifyField_BadIdentifierHasNoSuggestion(t *testing.T) {
	f := field(t, "Args", "[]string", "each=not an ident")

	_, d := ClassifyField("Command", &f, []string{DefaultOptionalWrapper})

	require.NotNil(t, d)
	assert.Equal(t, diagnostic.CodeMalformedAnnotation, d.Code)
	assert.Empty(t, d.Suggestions)
}

func TestClassifyField_EachOnNonSequence(t *testing.T) {
	f := field(t, "Env", "map[string]string", "each=Var")

	_, d := ClassifyField("Command", &f, []string{DefaultOptionalWrapper})

	require.NotNil(t, d)
	assert.Equal(t, diagnostic.CodeEachNotSequence, d.Code)
	assert.Contains(t, d.Message, "map[string]string")
}

func TestClassifyField_OtherTagsIgnored(t *testing.T) {
	f := field(t, "Executable", "string", "")
	f.Annotations = []analyze.Annotation{{Key: "json", Value: "each=Arg"}}

	fp, d := ClassifyField("Command", &f, []string{DefaultOptionalWrapper})

	require.Nil(t, d)
	assert.Equal(t, ModeRequired, fp.Mode)
}

func TestBuild_CommandPlan(t *testing.T) {
	p, diags := Build(commandTarget(t), DefaultOptions())

	require.True(t, diags.IsValid(), diags.Error())
	require.NotNil(t, p)

	assert.Equal(t, "Command", p.TypeName)
	assert.Equal(t, "CommandBuilder", p.BuilderName)
	assert.Equal(t, "NewCommandBuilder", p.ConstructorName)
	assert.Equal(t, "cmd", p.PkgName)
	require.Len(t, p.Fields, 5, "one plan per field")

	modes := make([]Mode, len(p.Fields))
	for i := range p.Fields {
		modes[i] = p.Fields[i].Mode
	}

	assert.Equal(t, []Mode{ModeRequired, ModeAccumulating, ModeAccumulating, ModeOptional, ModeRequired}, modes)
	assert.Equal(t, []string{"Args", "Arg"}, p.Fields[1].Setters())
	assert.Equal(t, []string{"Env"}, p.Fields[2].Setters())
	assert.True(t, p.HasAccumulating())
	assert.True(t, p.HasRequired())

	// Only imports used by storage types: time. option is unwrapped away.
	assert.Equal(t, []analyze.ImportInfo{{Name: "time", Path: "time"}}, p.Imports)
}

func TestBuild_CustomNaming(t *testing.T) {
	opts := DefaultOptions()
	opts.BuilderSuffix = "Maker"
	opts.ConstructorPrefix = "Make"

	p, diags := Build(commandTarget(t), opts)

	require.True(t, diags.IsValid())
	assert.Equal(t, "CommandMaker", p.BuilderName)
	assert.Equal(t, "MakeCommandMaker", p.ConstructorName)
}

func TestBuild_OnlyOptionalFields(t *testing.T) {
	target := &analyze.TargetStruct{
		Name: "Flags",
		Fields: []analyze.FieldDescriptor{
			field(t, "Verbose", "Option[bool]", ""),
		},
	}

	p, diags := Build(target, DefaultOptions())

	require.True(t, diags.IsValid())
	assert.False(t, p.HasRequired())
	assert.False(t, p.HasAccumulating())
}

func TestBuild_SetterCollisions(t *testing.T) {
	tests := []struct {
		name   string
		fields []analyze.FieldDescriptor
		msg    string
	}{
		{
			name: "item setter named after another field",
			fields: []analyze.FieldDescriptor{
				field(t, "Arg", "string", ""),
				field(t, "Args", "[]string", "each=Arg"),
			},
			msg: "setter CommandBuilder.Arg is already declared for field Arg",
		},
		{
			name: "two item setters with the same name",
			fields: []analyze.FieldDescriptor{
				field(t, "Args", "[]string", "each=Item"),
				field(t, "Env", "[]string", "each=Item"),
			},
			msg: "setter CommandBuilder.Item is already declared for field Args",
		},
		{
			name: "item setter named Build",
			fields: []analyze.FieldDescriptor{
				field(t, "Steps", "[]string", "each=Build"),
			},
			msg: "CommandBuilder.Build is reserved by the builder",
		},
		{
			name: "field named after the slot struct",
			fields: []analyze.FieldDescriptor{
				field(t, "fields", "[]string", ""),
			},
			msg: "CommandBuilder.fields is reserved by the builder",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := &analyze.TargetStruct{Name: "Command", Fields: tt.fields}

			p, diags := Build(target, DefaultOptions())

			assert.Nil(t, p)
			require.Len(t, diags.Errors, 1)
			assert.Equal(t, diagnostic.CodeSetterCollision, diags.Errors[0].Code)
			assert.Equal(t, tt.msg, diags.Errors[0].Message)
		})
	}
}

func TestBuild_RejectsEmbeddedBlankAndGeneric(t *testing.T) {
	embedded := field(t, "Mutex", "sync.Mutex", "")
	embedded.Embedded = true

	target := &analyze.TargetStruct{
		Name: "Command",
		Fields: []analyze.FieldDescriptor{
			embedded,
			field(t, "_", "int", ""),
			field(t, "Args", "[]string", "each"),
		},
	}

	p, diags := Build(target, DefaultOptions())

	assert.Nil(t, p)
	require.Len(t, diags.Errors, 3, "every field is still checked")
	assert.Equal(t, diagnostic.CodeEmbeddedField, diags.Errors[0].Code)
	assert.Equal(t, diagnostic.CodeBlankField, diags.Errors[1].Code)
	assert.Equal(t, diagnostic.CodeMalformedAnnotation, diags.Errors[2].Code)

	generic := &analyze.TargetStruct{Name: "Box", TypeParams: 1}

	p, diags = Build(generic, DefaultOptions())
	assert.Nil(t, p)
	require.Len(t, diags.Errors, 1)
	assert.Equal(t, diagnostic.CodeGenericTarget, diags.Errors[0].Code)
}

func TestBuild_ImportsFromItemAndNestedTypes(t *testing.T) {
	target := &analyze.TargetStruct{
		Name: "Doc",
		Fields: []analyze.FieldDescriptor{
			field(t, "Nodes", "[]*yaml.Node", "each=Node"),
			field(t, "Deadlines", "map[string]time.Time", ""),
			field(t, "Alias", "Option[t2.Time]", ""),
		},
		Imports: map[string]analyze.ImportInfo{
			"time": {Name: "time", Path: "time"},
			"t2":   {Name: "t2", Path: "other/time", Explicit: true},
			"yaml": {Name: "yaml", Path: "gopkg.in/yaml.v3"},
			"os":   {Name: "os", Path: "os"},
		},
	}

	p, diags := Build(target, DefaultOptions())

	require.True(t, diags.IsValid())
	assert.Equal(t, []analyze.ImportInfo{
		{Name: "yaml", Path: "gopkg.in/yaml.v3"},
		{Name: "t2", Path: "other/time", Explicit: true},
		{Name: "time", Path: "time"},
	}, p.Imports)
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "Required", ModeRequired.String())
	assert.Equal(t, "Optional", ModeOptional.String())
	assert.Equal(t, "Accumulating", ModeAccumulating.String())
	assert.Equal(t, "Mode(7)", Mode(7).String())
}
