// Package editor implements the admin back office forms: field parsing and
// client-side validation, submission through a resource gateway, and the
// list refresh that follows every successful write.
package editor

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Kind selects how a field's text input is coerced.
type Kind int

const (
	Text Kind = iota
	Int
	Bool
	List
	Time
	Choice
)

// Field describes one form input.
type Field struct {
	Key      string
	Label    string
	Kind     Kind
	Required bool
	Default  string
	Choices  []string
	// Secret inputs are read without echo.
	Secret bool
	// FromFile lets the prompt load the value from a file path.
	FromFile bool
	// Local fields are validated but never sent to the server.
	Local bool
}

// Form is the field set of one entity.
type Form struct {
	Entity string
	Fields []Field
	// Check runs after per-field parsing for cross-field constraints.
	Check func(values map[string]string) []FieldError
}

// Field returns the field named key.
func (f Form) Field(key string) (Field, bool) {
	for _, fd := range f.Fields {
		if fd.Key == key {
			return fd, true
		}
	}
	return Field{}, false
}

// FieldError is one failed client-side check.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects every failed check of one submission. It is
// never sent to the server.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, fe := range e.Fields {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Parse converts raw text inputs into a request payload.
//
// On create (partial == false) required fields must be present and defaults
// fill the blanks. On update only the keys present in values are sent, so
// untouched fields keep their server value. Unknown keys are rejected.
func (f Form) Parse(values map[string]string, partial bool) (map[string]any, error) {
	var errs []FieldError
	for key := range values {
		if _, ok := f.Field(key); !ok {
			errs = append(errs, FieldError{Field: key, Message: "unknown field"})
		}
	}

	payload := make(map[string]any)
	for _, fd := range f.Fields {
		raw, ok := values[fd.Key]
		raw = strings.TrimSpace(raw)
		if !ok && partial {
			continue
		}
		if raw == "" && !partial {
			raw = fd.Default
		}
		if raw == "" {
			if fd.Required {
				errs = append(errs, FieldError{Field: fd.Key, Message: "is required"})
				continue
			}
			if !partial || fd.Local {
				continue
			}
		}

		v, err := fd.coerce(raw)
		if err != nil {
			errs = append(errs, FieldError{Field: fd.Key, Message: err.Error()})
			continue
		}
		if !fd.Local {
			payload[fd.Key] = v
		}
	}
	if f.Check != nil {
		errs = append(errs, f.Check(values)...)
	}
	if len(errs) > 0 {
		slices.SortStableFunc(errs, func(a, b FieldError) int { return strings.Compare(a.Field, b.Field) })
		return nil, &ValidationError{Fields: errs}
	}
	return payload, nil
}

// coerce converts raw into the JSON value of the field. An empty raw value
// on update clears the field.
func (fd Field) coerce(raw string) (any, error) {
	switch fd.Kind {
	case Int:
		if raw == "" {
			return nil, nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("must be a whole number")
		}
		return n, nil
	case Bool:
		if raw == "" {
			return false, nil
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("must be true or false")
		}
		return b, nil
	case List:
		return SplitList(raw), nil
	case Time:
		if raw == "" {
			return nil, nil
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
			if t, err := time.Parse(layout, raw); err == nil {
				return t.UTC(), nil
			}
		}
		return nil, fmt.Errorf("must be a date (YYYY-MM-DD)")
	case Choice:
		if raw != "" && !slices.Contains(fd.Choices, raw) {
			return nil, fmt.Errorf("must be one of %s", strings.Join(fd.Choices, ", "))
		}
		return raw, nil
	default:
		return raw, nil
	}
}

// SplitList parses a comma separated input, dropping blank entries.
func SplitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Values renders a record as form inputs, for prefilling an update.
// Nested stat objects map onto their flattened keys (stat1 → stat1_value).
func (f Form) Values(record any) (map[string]string, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%s is not an object: %w", f.Entity, err)
	}
	flat := make(map[string]any, len(m))
	for k, v := range m {
		flat[k] = v
		if nested, ok := v.(map[string]any); ok {
			for sub, sv := range nested {
				flat[k+"_"+sub] = sv
			}
		}
	}

	out := make(map[string]string)
	for _, fd := range f.Fields {
		if v, ok := flat[fd.Key]; ok && v != nil {
			out[fd.Key] = stringify(v)
		}
	}
	return out, nil
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(x))
		for _, e := range x {
			parts = append(parts, stringify(e))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(x)
	}
}
