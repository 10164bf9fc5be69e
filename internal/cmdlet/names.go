package cmdlet

import (
	"reflect"
	"strings"
	"unicode"
)

// NameFromType derives a command's display name from the dynamic type of
// cmd: a trailing "Cmd" suffix is dropped (when the name is longer than 3
// runes), a hyphen is inserted before each maximal run of uppercase letters
// preceded by a lowercase letter or digit, the result is lower-cased and
// underscores become hyphens. E.g. a *StatusCmd value yields "status" and
// FooBarCmd yields "foo-bar".
func NameFromType(cmd any) string {
	t := reflect.TypeOf(cmd)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return nameFromTypeName(t.Name())
}

func nameFromTypeName(name string) string {
	if len(name) > 3 && strings.HasSuffix(strings.ToLower(name), "cmd") {
		name = name[:len(name)-3]
	}

	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 &&
			(unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])) {
			b.WriteRune('-')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return strings.ReplaceAll(b.String(), "_", "-")
}

// firstLine returns the first non-blank line of text, trimmed.
func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			return s
		}
	}
	return ""
}
