// Package form describes edit forms declaratively: a Schema maps field keys
// to typed entries, and a Form validates candidate values against it before
// handing them to a submit callback.
package form

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Entry is the validation rule for one field. The set of implementations is
// closed: StringEntry, NumberEntry and BooleanEntry.
type Entry interface {
	// Initial is the value a fresh form starts with.
	Initial() any
	// IsValueValid reports whether v satisfies the rule.
	IsValueValid(v any) bool
	// ErrorMessage describes the rule for display next to an invalid field.
	// It is empty when the rule cannot fail for a value of the right type.
	ErrorMessage() string

	isEntry()
}

// StringEntry is a text field.
type StringEntry struct {
	InitialValue string
	Required     bool
	Multiline    bool
}

func (e StringEntry) Initial() any { return e.InitialValue }

func (e StringEntry) IsValueValid(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	return !e.Required || strings.TrimSpace(s) != ""
}

func (e StringEntry) ErrorMessage() string {
	if e.Required {
		return "This field is required"
	}
	return ""
}

func (StringEntry) isEntry() {}

// NumberEntry is a numeric field with optional inclusive bounds.
type NumberEntry struct {
	InitialValue float64
	Min          *float64
	Max          *float64
	IntegerOnly  bool
}

// Bound is a helper for NumberEntry.Min and NumberEntry.Max literals.
func Bound(f float64) *float64 { return &f }

func (e NumberEntry) Initial() any { return e.InitialValue }

func (e NumberEntry) IsValueValid(v any) bool {
	f, ok := toNumber(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	if e.IntegerOnly && math.Trunc(f) != f {
		return false
	}
	if e.Min != nil && f < *e.Min {
		return false
	}
	if e.Max != nil && f > *e.Max {
		return false
	}
	return true
}

func (e NumberEntry) ErrorMessage() string {
	kind := "a number"
	if e.IntegerOnly {
		kind = "a whole number"
	}
	switch {
	case e.Min != nil && e.Max != nil:
		return fmt.Sprintf("Must be %s between %s and %s", kind, fmtBound(*e.Min), fmtBound(*e.Max))
	case e.Min != nil:
		return fmt.Sprintf("Must be %s no less than %s", kind, fmtBound(*e.Min))
	case e.Max != nil:
		return fmt.Sprintf("Must be %s no greater than %s", kind, fmtBound(*e.Max))
	}
	return "Must be " + kind
}

func (NumberEntry) isEntry() {}

// BooleanEntry is a checkbox.
type BooleanEntry struct {
	InitialValue bool
}

func (e BooleanEntry) Initial() any { return e.InitialValue }

func (e BooleanEntry) IsValueValid(v any) bool {
	_, ok := v.(bool)
	return ok
}

func (BooleanEntry) ErrorMessage() string { return "" }

func (BooleanEntry) isEntry() {}

// Control is the input widget a renderer should draw for an entry.
type Control int

const (
	ControlText Control = iota
	ControlTextArea
	ControlNumber
	ControlCheckbox
)

func (c Control) String() string {
	switch c {
	case ControlText:
		return "text"
	case ControlTextArea:
		return "textarea"
	case ControlNumber:
		return "number"
	case ControlCheckbox:
		return "checkbox"
	}
	return "unknown"
}

// ControlFor picks the input widget for e.
func ControlFor(e Entry) Control {
	switch e := e.(type) {
	case StringEntry:
		if e.Multiline {
			return ControlTextArea
		}
		return ControlText
	case NumberEntry:
		return ControlNumber
	case BooleanEntry:
		return ControlCheckbox
	}
	panic(fmt.Sprintf("form: unhandled entry %T", e))
}

// toNumber accepts the numeric shapes a value can take on its way from an
// input control or decoded JSON.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func fmtBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
