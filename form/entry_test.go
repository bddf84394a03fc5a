package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringEntry_Required(t *testing.T) {
	e := StringEntry{Required: true}
	assert.False(t, e.IsValueValid(""))
	assert.False(t, e.IsValueValid("   "))
	assert.NotEmpty(t, e.ErrorMessage())
	assert.True(t, e.IsValueValid("Medpac"))
}

func TestStringEntry_Optional(t *testing.T) {
	e := StringEntry{}
	assert.True(t, e.IsValueValid(""))
	assert.False(t, e.IsValueValid(12.0), "wrong type is never valid")
	assert.Empty(t, e.ErrorMessage())
}

func TestNumberEntry_Bounds(t *testing.T) {
	e := NumberEntry{Min: Bound(-1), IntegerOnly: true}
	assert.True(t, e.IsValueValid(-1.0))
	assert.True(t, e.IsValueValid(12))
	assert.True(t, e.IsValueValid("7"))
	assert.False(t, e.IsValueValid(-2.0))
	assert.False(t, e.IsValueValid(1.5))
	assert.False(t, e.IsValueValid("seven"))
	assert.False(t, e.IsValueValid(true))
	assert.Equal(t, "Must be a whole number no less than -1", e.ErrorMessage())

	r := NumberEntry{Min: Bound(0), Max: Bound(2.5)}
	assert.True(t, r.IsValueValid(2.5))
	assert.False(t, r.IsValueValid(2.6))
	assert.Equal(t, "Must be a number between 0 and 2.5", r.ErrorMessage())

	assert.Equal(t, "Must be a number no greater than 3", NumberEntry{Max: Bound(3)}.ErrorMessage())
	assert.Equal(t, "Must be a number", NumberEntry{}.ErrorMessage())
}

func TestBooleanEntry(t *testing.T) {
	e := BooleanEntry{InitialValue: true}
	assert.Equal(t, true, e.Initial())
	assert.True(t, e.IsValueValid(false))
	assert.False(t, e.IsValueValid("true"))
}

func TestControlFor(t *testing.T) {
	assert.Equal(t, ControlText, ControlFor(StringEntry{}))
	assert.Equal(t, ControlTextArea, ControlFor(StringEntry{Multiline: true}))
	assert.Equal(t, ControlNumber, ControlFor(NumberEntry{}))
	assert.Equal(t, ControlCheckbox, ControlFor(BooleanEntry{}))
	assert.Equal(t, "textarea", ControlTextArea.String())
}
