package option

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOption_ZeroValueIsNone(t *testing.T) {
	var o Option[int]

	assert.True(t, o.IsNone())
	assert.False(t, o.IsSome())

	v, ok := o.Get()
	assert.False(t, ok)
	assert.Equal(t, 0, v)
	assert.Equal(t, None[int](), o)
}

func TestOption_Some(t *testing.T) {
	o := Some("cargo")

	v, ok := o.Get()
	assert.True(t, ok)
	assert.Equal(t, "cargo", v)
	assert.True(t, o.IsSome())
	assert.Equal(t, "Some(cargo)", o.String())
}

func TestOption_SomeOfZeroValueIsPresent(t *testing.T) {
	o := Some("")

	assert.True(t, o.IsSome())
	assert.Equal(t, "", o.OrElse("default"))
}

func TestOption_OrElse(t *testing.T) {
	assert.Equal(t, 7, None[int]().OrElse(7))
	assert.Equal(t, 3, Some(3).OrElse(7))
	assert.Equal(t, "None", None[string]().String())
}
