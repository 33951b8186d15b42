// Package validation holds declarative payload schemas. A schema checks a
// payload in one pass and collects every violation, it never fails fast on
// the first bad field. The resulting FieldErrors order follows the schema
// field order and is part of the API response shape.
package validation

import (
	"fmt"
	"net/url"
	"strings"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	messages := make([]string, 0, len(fe))
	for _, e := range fe {
		messages = append(messages, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(messages, "; ")
}

type Field struct {
	Name string

	requiredMsg string
	maxLen      int
	maxLenMsg   string
	urlMsg      string
}

// String starts a field rule chain. Rules apply to the trimmed value.
func String(name string) Field {
	return Field{Name: name}
}

// Required rejects an absent or blank value with the given message.
func (f Field) Required(message string) Field {
	f.requiredMsg = message
	return f
}

// Max rejects values longer than max characters.
func (f Field) Max(max int, message string) Field {
	f.maxLen = max
	f.maxLenMsg = message
	return f
}

// URL requires a non-blank value to parse as an absolute URL. A blank value
// passes: optional URL fields normalize to absent instead.
func (f Field) URL(message string) Field {
	f.urlMsg = message
	return f
}

func (f Field) check(value string) *FieldError {
	value = strings.TrimSpace(value)

	if value == "" {
		if f.requiredMsg != "" {
			return &FieldError{Field: f.Name, Message: f.requiredMsg}
		}
		return nil
	}

	if f.maxLen > 0 && len([]rune(value)) > f.maxLen {
		return &FieldError{Field: f.Name, Message: f.maxLenMsg}
	}

	if f.urlMsg != "" {
		parsed, err := url.Parse(value)
		if err != nil || !parsed.IsAbs() || parsed.Host == "" {
			return &FieldError{Field: f.Name, Message: f.urlMsg}
		}
	}

	return nil
}

type Schema []Field

// Validate checks every schema field against values and returns all
// violations, in schema order. A nil result means the payload is valid.
func (s Schema) Validate(values map[string]string) FieldErrors {
	var errs FieldErrors
	for _, field := range s {
		if fieldErr := field.check(values[field.Name]); fieldErr != nil {
			errs = append(errs, *fieldErr)
		}
	}
	return errs
}

// Optional normalizes an optional string value: a blank value becomes
// absent (nil), everything else is kept trimmed. An empty string must never
// leak into storage as a present-but-empty marker.
func Optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
