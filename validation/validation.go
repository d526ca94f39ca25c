package validation

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"
)

// Violations maps a field name to a message code.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Add keeps the first violation recorded for a field.
func (v Violations) Add(field, code string) {
	if _, exists := v[field]; !exists {
		v[field] = code
	}
}

// ParseFloat reads a decimal form value. A comma decimal separator is
// accepted. Non-finite numbers are rejected.
func ParseFloat(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Rule checks one value and returns a message code, or "" when it passes.
type Rule func(value any) string

// Field validates one attribute of T.
type Field[T any] struct {
	Name  string
	Value func(T) any
	Rules []Rule
	// Code replaces the code of whichever rule fails.
	Code string
}

// Schema is an ordered list of field checks.
type Schema[T any] []Field[T]

// Validate runs every field and reports the first failing rule per field.
func (s Schema[T]) Validate(in T) Violations {
	v := Violations{}
	for _, f := range s {
		val := f.Value(in)
		for _, rule := range f.Rules {
			code := rule(val)
			if code == "" {
				continue
			}
			if f.Code != "" {
				code = f.Code
			}
			v.Add(f.Name, code)
			break
		}
	}
	return v
}

// NotBlank fails on empty or whitespace-only strings and nil values.
func NotBlank() Rule {
	return func(value any) string {
		if value == nil {
			return "required"
		}
		if s, ok := asString(value); ok && strings.TrimSpace(s) == "" {
			return "required"
		}
		return ""
	}
}

// MinLen counts characters, not bytes.
func MinLen(n int) Rule {
	return func(value any) string {
		s, _ := asString(value)
		if utf8.RuneCountInString(strings.TrimSpace(s)) < n {
			return "min_length"
		}
		return ""
	}
}

func MaxLen(n int) Rule {
	return func(value any) string {
		s, _ := asString(value)
		if utf8.RuneCountInString(s) > n {
			return "max_length"
		}
		return ""
	}
}

// Min fails for numbers below floor. A nil value means the input did not
// parse and yields "invalid_number".
func Min(floor float64) Rule {
	return func(value any) string {
		f, ok := asFloat(value)
		if !ok {
			return "invalid_number"
		}
		if f < floor {
			return "min"
		}
		return ""
	}
}

// OneOf accepts any value whose string form is listed.
func OneOf[S ~string](allowed ...S) Rule {
	return func(value any) string {
		s, _ := asString(value)
		for _, a := range allowed {
			if string(a) == s {
				return ""
			}
		}
		return "invalid_choice"
	}
}

// Email accepts the empty string; combine with NotBlank when required.
func Email() Rule {
	return func(value any) string {
		s, _ := asString(value)
		if s == "" || govalidator.IsEmail(s) {
			return ""
		}
		return "invalid_email"
	}
}

// URL requires an absolute http(s) URL. Empty passes.
func URL() Rule {
	return func(value any) string {
		s, _ := asString(value)
		if s == "" {
			return ""
		}
		if govalidator.IsRequestURL(s) && (strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")) {
			return ""
		}
		return "invalid_url"
	}
}

// Date requires the given time layout. Empty passes.
func Date(layout string) Rule {
	return func(value any) string {
		s, _ := asString(value)
		if s == "" {
			return ""
		}
		if !govalidator.IsTime(s, layout) {
			return "invalid_date"
		}
		return ""
	}
}

// WithCode reports code whenever rule fails.
func WithCode(code string, rule Rule) Rule {
	return func(value any) string {
		if rule(value) != "" {
			return code
		}
		return ""
	}
}

// Check wraps an arbitrary predicate.
func Check(code string, ok func(value any) bool) Rule {
	return func(value any) string {
		if ok(value) {
			return ""
		}
		return code
	}
}

func asString(value any) (string, bool) {
	switch s := value.(type) {
	case string:
		return s, true
	case *string:
		if s == nil {
			return "", false
		}
		return *s, true
	case fmt.Stringer:
		return s.String(), true
	}
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

func asFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case *float64:
		if n == nil {
			return 0, false
		}
		return *n, true
	case int:
		return float64(n), true
	case *int:
		if n == nil {
			return 0, false
		}
		return float64(*n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
