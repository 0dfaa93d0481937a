package settings

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Rule reacts to a change in a Form. Rules run after every Set.
type Rule interface {
	Apply(f *Form)
}

// Form holds the current value of every setting.
type Form struct {
	defs   []Definition
	values map[string]any
	locked map[string]bool
	rules  []Rule
}

// NewForm creates a form with every setting at its default, and applies rules once.
func NewForm(defs []Definition, rules ...Rule) *Form {
	f := &Form{
		defs:   defs,
		values: make(map[string]any, len(defs)),
		locked: make(map[string]bool),
		rules:  rules,
	}
	for _, d := range defs {
		f.values[d.Key] = d.Default
	}
	f.applyRules()
	return f
}

// Definitions returns the form's settings in display order.
func (f *Form) Definitions() []Definition {
	return f.defs
}

// Value returns the current value of key.
func (f *Form) Value(key string) any {
	return f.values[key]
}

// Locked reports whether key is currently forced by a rule.
func (f *Form) Locked(key string) bool {
	return f.locked[key]
}

// Set normalizes v for the setting's kind and stores it.
func (f *Form) Set(key string, v any) error {
	def, ok := f.definition(key)
	if !ok {
		return fmt.Errorf("unknown setting %q", key)
	}
	if f.locked[key] {
		return fmt.Errorf("setting %q is locked", key)
	}

	value, err := Normalize(def, v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	f.values[key] = value
	f.applyRules()
	return nil
}

// Force stores v without normalizing and sets the lock state of key.
func (f *Form) Force(key string, v any, locked bool) {
	f.values[key] = v
	f.locked[key] = locked
}

// Values returns the settings mapping, leaving out an empty icon.
func (f *Form) Values() map[string]any {
	out := make(map[string]any, len(f.values))
	for k, v := range f.values {
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		out[k] = v
	}
	return out
}

func (f *Form) definition(key string) (Definition, bool) {
	for _, d := range f.defs {
		if d.Key == key {
			return d, true
		}
	}
	return Definition{}, false
}

func (f *Form) applyRules() {
	for _, r := range f.rules {
		r.Apply(f)
	}
}

// Normalize converts user input to the value stored for a setting.
func Normalize(def Definition, v any) (any, error) {
	switch def.Kind {
	case Icon:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("icon path must be text, got %T", v)
		}
		return strings.TrimSpace(s), nil
	case Check:
		switch b := v.(type) {
		case bool:
			return b, nil
		case string:
			return strconv.ParseBool(b)
		}
		return nil, fmt.Errorf("expected a boolean, got %T", v)
	case Number:
		return NormalizeNumber(v, def.Max), nil
	case Text:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected text, got %T", v)
		}
		return NormalizeText(s, fmt.Sprint(def.Default)), nil
	case Dropdown:
		for _, opt := range def.Options {
			if reflect.DeepEqual(opt.Value, v) || opt.Label == v {
				return opt.Value, nil
			}
		}
		return nil, fmt.Errorf("%v is not one of the options", v)
	}
	return nil, fmt.Errorf("unsupported kind %s", def.Kind)
}

// NormalizeNumber parses v as an integer and clamps it to [0, max]. Input
// that is not a number becomes 0.
func NormalizeNumber(v any, max int) int {
	var n int
	switch x := v.(type) {
	case int:
		n = x
	case int64:
		n = int(x)
	case float64:
		n = int(x)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0
		}
		n = parsed
	}

	if n < 0 {
		return 0
	}
	if max > 0 && n > max {
		return max
	}
	return n
}

// NormalizeText keeps only lowercase letters, digits and underscores.
// Uppercase letters are lowered first. An empty result becomes def.
func NormalizeText(s, def string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return def
	}
	return sb.String()
}
