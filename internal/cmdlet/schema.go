package cmdlet

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Kind is the declared type of a schema field.
type Kind int

const (
	KindBool Kind = iota
	KindString
	KindInt
	KindStringSlice
	KindPathList
	KindAny
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindStringSlice:
		return "string list"
	case KindPathList:
		return "path list"
	case KindAny:
		return "any"
	default:
		return "unknown"
	}
}

// Field is one named, typed configuration property of a command node.
type Field struct {
	// Name is the dotted lowercase "class.prop" key.
	Name string

	Kind Kind
	Help string

	set func(any) error
	get func() any
	def any
}

// Default returns the field's declared default value.
func (f *Field) Default() any { return f.def }

// Value returns the field's current bound value.
func (f *Field) Value() any { return f.get() }

// Schema is the explicit typed configuration schema of one command node:
// a fixed set of named fields with declared defaults, bound to Go
// variables, validated at the boundary where override trees are applied.
// Unknown keys and type mismatches are rejected with a structured error
// rather than silently coerced.
type Schema struct {
	fields map[string]*Field
	order  []string
}

// NewSchema returns an empty schema.
func NewSchema() *Schema {
	return &Schema{fields: make(map[string]*Field)}
}

func (s *Schema) add(f *Field) *Field {
	key := strings.ToLower(f.Name)
	f.Name = key
	if _, exists := s.fields[key]; !exists {
		s.order = append(s.order, key)
	}
	s.fields[key] = f
	return f
}

// Bool declares a boolean field bound to target.
func (s *Schema) Bool(name string, target *bool, def bool, help string) *Field {
	*target = def
	return s.add(&Field{
		Name: name, Kind: KindBool, Help: help, def: def,
		get: func() any { return *target },
		set: func(v any) error {
			switch t := v.(type) {
			case bool:
				*target = t
			case string:
				b, err := strconv.ParseBool(t)
				if err != nil {
					return &TypeMismatchError{Key: name, Want: KindBool, Value: v}
				}
				*target = b
			default:
				return &TypeMismatchError{Key: name, Want: KindBool, Value: v}
			}
			return nil
		},
	})
}

// String declares a string field bound to target.
func (s *Schema) String(name string, target *string, def, help string) *Field {
	*target = def
	return s.add(&Field{
		Name: name, Kind: KindString, Help: help, def: def,
		get: func() any { return *target },
		set: func(v any) error {
			t, ok := v.(string)
			if !ok {
				return &TypeMismatchError{Key: name, Want: KindString, Value: v}
			}
			*target = t
			return nil
		},
	})
}

// Int declares an integer field bound to target.
func (s *Schema) Int(name string, target *int, def int, help string) *Field {
	*target = def
	return s.add(&Field{
		Name: name, Kind: KindInt, Help: help, def: def,
		get: func() any { return *target },
		set: func(v any) error {
			switch t := v.(type) {
			case int:
				*target = t
			case int64:
				*target = int(t)
			case float64:
				if t != float64(int(t)) {
					return &TypeMismatchError{Key: name, Want: KindInt, Value: v}
				}
				*target = int(t)
			case string:
				i, err := strconv.Atoi(t)
				if err != nil {
					return &TypeMismatchError{Key: name, Want: KindInt, Value: v}
				}
				*target = i
			default:
				return &TypeMismatchError{Key: name, Want: KindInt, Value: v}
			}
			return nil
		},
	})
}

// StringSlice declares a list-of-strings field bound to target.
func (s *Schema) StringSlice(name string, target *[]string, def []string, help string) *Field {
	*target = def
	return s.add(&Field{
		Name: name, Kind: KindStringSlice, Help: help, def: def,
		get: func() any { return *target },
		set: func(v any) error {
			strs, err := toStringSlice(name, KindStringSlice, v)
			if err != nil {
				return err
			}
			*target = strs
			return nil
		},
	})
}

// PathList declares a list-of-paths field bound to target. Assigned values
// are additionally split on the platform path-list separator, so one
// "a:b:c" string (or list element) contributes three paths.
func (s *Schema) PathList(name string, target *[]string, def []string, help string) *Field {
	*target = Resolve(def...)
	return s.add(&Field{
		Name: name, Kind: KindPathList, Help: help, def: def,
		get: func() any { return *target },
		set: func(v any) error {
			strs, err := toStringSlice(name, KindPathList, v)
			if err != nil {
				return err
			}
			*target = Resolve(strs...)
			return nil
		},
	})
}

// Any declares an untyped field bound to target, for structured values
// whose decoding happens downstream (e.g. project definition maps).
func (s *Schema) Any(name string, target *any, help string) *Field {
	return s.add(&Field{
		Name: name, Kind: KindAny, Help: help,
		get: func() any { return *target },
		set: func(v any) error {
			*target = v
			return nil
		},
	})
}

func toStringSlice(name string, want Kind, v any) ([]string, error) {
	switch t := v.(type) {
	case []string:
		return t, nil
	case []any:
		strs := make([]string, len(t))
		for i, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, &TypeMismatchError{Key: name, Want: want, Value: v}
			}
			strs[i] = s
		}
		return strs, nil
	case string:
		return []string{t}, nil
	default:
		return nil, &TypeMismatchError{Key: name, Want: want, Value: v}
	}
}

// Set assigns one dotted key. Unknown keys and type mismatches return
// structured errors.
func (s *Schema) Set(key string, value any) error {
	f, ok := s.fields[strings.ToLower(key)]
	if !ok {
		return &UnknownKeyError{Key: key}
	}
	return f.set(value)
}

// Apply assigns a whole override tree. Keys are applied in sorted order so
// failures are deterministic; the first error stops the application.
func (s *Schema) Apply(tree Overrides) error {
	keys := make([]string, 0, len(tree))
	for k := range tree {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := s.Set(k, tree[k]); err != nil {
			return errors.Wrap(err, "applying configuration")
		}
	}
	return nil
}

// Lookup returns the field declared for key, if any.
func (s *Schema) Lookup(key string) (*Field, bool) {
	f, ok := s.fields[strings.ToLower(key)]
	return f, ok
}

// Fields returns all fields in declaration order.
func (s *Schema) Fields() []*Field {
	out := make([]*Field, len(s.order))
	for i, key := range s.order {
		out[i] = s.fields[key]
	}
	return out
}
