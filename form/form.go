package form

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"go.uber.org/multierr"
)

var (
	// ErrInvalid is returned by Submit when at least one field fails its rule.
	ErrInvalid = errors.New("form: invalid values")
	// ErrUnknownField is returned when setting a key the schema does not define.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrMissingField is returned when building a record from Values that
	// lack a required key. It signals a schema/record mismatch in the caller,
	// not user input.
	ErrMissingField = errors.New("form: missing field")
	// ErrSchemaMismatch is returned by Schema.MatchesRecord.
	ErrSchemaMismatch = errors.New("form: schema does not match record")
)

// Field binds a key to its entry.
type Field struct {
	Key   string
	Label string
	Entry Entry
}

// Schema is an ordered list of fields.
type Schema []Field

// Keys returns the field keys in schema order.
func (s Schema) Keys() []string {
	keys := make([]string, len(s))
	for i, f := range s {
		keys[i] = f.Key
	}
	return keys
}

// Lookup returns the field with the given key.
func (s Schema) Lookup(key string) (Field, bool) {
	for _, f := range s {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// MatchesRecord checks that the schema covers exactly the record's fields
// minus the immutable ones.
func (s Schema) MatchesRecord(recordFields []string, immutable ...string) error {
	want := make([]string, 0, len(recordFields))
	for _, f := range recordFields {
		if !slices.Contains(immutable, f) {
			want = append(want, f)
		}
	}
	have := s.Keys()
	sort.Strings(want)
	sort.Strings(have)
	if !slices.Equal(want, have) {
		return fmt.Errorf("%w: want %v, have %v", ErrSchemaMismatch, want, have)
	}
	return nil
}

// FieldError is the validation failure of a single field.
type FieldError struct {
	Key     string
	Message string
}

func (e *FieldError) Error() string { return e.Key + ": " + e.Message }

// Form holds the current values of a schema-driven form and the errors of
// the last validation.
type Form struct {
	schema Schema
	values Values
	errors map[string]string
}

// New returns a form with every field at its initial value.
func New(schema Schema) *Form {
	values := make(Values, len(schema))
	for _, f := range schema {
		values[f.Key] = f.Entry.Initial()
	}
	return &Form{schema: schema, values: values, errors: map[string]string{}}
}

func (f *Form) Schema() Schema { return f.schema }

// Set updates one field and clears its error.
func (f *Form) Set(key string, v any) error {
	if _, ok := f.schema.Lookup(key); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	f.values[key] = v
	delete(f.errors, key)
	return nil
}

func (f *Form) Value(key string) any { return f.values[key] }

// Error returns the message shown under a field, or "".
func (f *Form) Error(key string) string { return f.errors[key] }

// HasErrors reports whether the form is in the error state.
func (f *Form) HasErrors() bool { return len(f.errors) > 0 }

// Validate checks every field, records per-field messages and returns the
// combined failures.
func (f *Form) Validate() error {
	f.errors = map[string]string{}
	var err error
	for _, field := range f.schema {
		v := f.values[field.Key]
		if field.Entry.IsValueValid(v) {
			continue
		}
		msg := field.Entry.ErrorMessage()
		if msg == "" {
			msg = "Invalid value"
		}
		f.errors[field.Key] = msg
		err = multierr.Append(err, &FieldError{Key: field.Key, Message: msg})
	}
	return err
}

// Submit validates the form and, only if every field is valid, passes a
// copy of the values to onSubmit.
func (f *Form) Submit(onSubmit func(Values) error) error {
	if err := f.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return onSubmit(f.normalized())
}

// normalized converts number fields to float64 so callers read one shape.
func (f *Form) normalized() Values {
	out := make(Values, len(f.values))
	for _, field := range f.schema {
		v := f.values[field.Key]
		if _, ok := field.Entry.(NumberEntry); ok {
			if n, ok := toNumber(v); ok {
				v = n
			}
		}
		out[field.Key] = v
	}
	return out
}

// Values is the key->value map handed to a submit callback.
type Values map[string]any

// String returns a string field.
func (v Values) String(key string) (string, error) {
	raw, ok := v[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingField, key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("form: field %q is %T, not string", key, raw)
	}
	return s, nil
}

// Number returns a numeric field as float64.
func (v Values) Number(key string) (float64, error) {
	raw, ok := v[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingField, key)
	}
	n, ok := toNumber(raw)
	if !ok {
		return 0, fmt.Errorf("form: field %q is %T, not a number", key, raw)
	}
	return n, nil
}

// Bool returns a boolean field.
func (v Values) Bool(key string) (bool, error) {
	raw, ok := v[key]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrMissingField, key)
	}
	b, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("form: field %q is %T, not bool", key, raw)
	}
	return b, nil
}
