package sorted

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func variants(names ...string) VariantList {
	list := make(VariantList, len(names))
	for i, n := range names {
		list[i] = Variant{Name: n, Pos: token.Pos(i + 1)}
	}

	return list
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name      string
		names     []string
		offending string
		before    string
	}{
		{name: "sorted", names: []string{"Alpha", "Beta", "Gamma"}},
		{name: "empty", names: nil},
		{name: "single", names: []string{"Zeta"}},
		{name: "case-insensitive", names: []string{"apple", "Banana"}},
		{name: "equal when folded", names: []string{"ALPHA", "alpha", "Alpha"}},
		{name: "duplicates", names: []string{"A", "A", "B"}},
		{name: "folding beyond ASCII", names: []string{"strasse", "STRASSE", "Straße"}},
		{
			name:      "first pair swapped",
			names:     []string{"Beta", "Alpha", "Gamma"},
			offending: "Alpha",
			before:    "Beta",
		},
		{
			name:      "found name is searched from the start",
			names:     []string{"Alpha", "Delta", "Charlie", "Bravo"},
			offending: "Charlie",
			before:    "Delta",
		},
		{
			name:      "only the first violation",
			names:     []string{"b", "a", "d", "c"},
			offending: "a",
			before:    "b",
		},
		{
			name:      "case does not hide a violation",
			names:     []string{"banana", "Apple"},
			offending: "Apple",
			before:    "banana",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := variants(tt.names...)

			v, bad := Check(list)
			if tt.offending == "" {
				assert.False(t, bad, "unexpected violation: %s", v.Message())

				return
			}

			require.True(t, bad)
			assert.Equal(t, tt.offending, v.Offending.Name)
			assert.Equal(t, tt.before, v.Before.Name)
		})
	}
}

func TestCheck_ReportsAtOffendingVariant(t *testing.T) {
	list := variants("Beta", "Alpha", "Gamma")

	v, bad := Check(list)
	require.True(t, bad)

	assert.Equal(t, list[1].Pos, v.Offending.Pos)
	assert.Equal(t, "Alpha should sort before Beta", v.Message())

	// The list itself is left as declared.
	assert.Equal(t, []string{"Beta", "Alpha", "Gamma"}, list.Names())
}
