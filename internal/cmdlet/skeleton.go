package cmdlet

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"monover/internal/paths"
)

// GenerateSkeleton renders the schema as default config-file content in
// the format the extension names (".yaml" or ".toml"). The yaml form
// carries the field help as comments; the toml form is plain.
func GenerateSkeleton(s *Schema, ext string) string {
	if strings.EqualFold(ext, ".toml") {
		return tomlSkeleton(s)
	}
	return yamlSkeleton(s)
}

// classFields groups schema fields by their class scope, keeping
// declaration order of both classes and fields.
func classFields(s *Schema) ([]string, map[string][]*Field) {
	var classes []string
	grouped := make(map[string][]*Field)
	for _, f := range s.Fields() {
		cls, _, found := strings.Cut(f.Name, ".")
		if !found {
			cls = ""
		}
		if _, seen := grouped[cls]; !seen {
			classes = append(classes, cls)
		}
		grouped[cls] = append(grouped[cls], f)
	}
	return classes, grouped
}

func propName(f *Field) string {
	if _, prop, found := strings.Cut(f.Name, "."); found {
		return prop
	}
	return f.Name
}

func yamlSkeleton(s *Schema) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Default %s configuration.\n", paths.AppName)
	sb.WriteString("# Values below mirror the built-in defaults; uncomment and edit to override.\n")

	classes, grouped := classFields(s)
	for _, cls := range classes {
		sb.WriteString("\n")
		if cls != "" {
			fmt.Fprintf(&sb, "%s:\n", cls)
		}
		for _, f := range grouped[cls] {
			for _, line := range strings.Split(strings.TrimSpace(f.Help), "\n") {
				if line = strings.TrimSpace(line); line != "" {
					fmt.Fprintf(&sb, "  # %s\n", line)
				}
			}
			val := f.Default()
			if val == nil {
				fmt.Fprintf(&sb, "  # %s:\n", propName(f))
				continue
			}
			rendered, err := yaml.Marshal(map[string]any{propName(f): val})
			if err != nil {
				fmt.Fprintf(&sb, "  # %s:\n", propName(f))
				continue
			}
			for _, line := range strings.Split(strings.TrimRight(string(rendered), "\n"), "\n") {
				fmt.Fprintf(&sb, "  # %s\n", line)
			}
		}
	}
	return sb.String()
}

func tomlSkeleton(s *Schema) string {
	classes, grouped := classFields(s)
	doc := make(map[string]any)
	for _, cls := range classes {
		props := make(map[string]any)
		for _, f := range grouped[cls] {
			if val := f.Default(); val != nil {
				props[propName(f)] = val
			}
		}
		if cls == "" {
			for k, v := range props {
				doc[k] = v
			}
			continue
		}
		doc[cls] = props
	}
	rendered, err := toml.Marshal(doc)
	if err != nil {
		return ""
	}
	return string(rendered)
}
