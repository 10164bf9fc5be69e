package cmdlet

import (
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// Overrides is a flat override tree: dotted lowercase "class.prop" keys
// mapped to their values.
type Overrides map[string]any

// Clone returns a shallow copy of the tree.
func (o Overrides) Clone() Overrides {
	c := make(Overrides, len(o))
	maps.Copy(c, o)
	return c
}

// LoadedConfig is the parsed override tree of one config file.
type LoadedConfig struct {
	// Source is the absolute path the tree was loaded from.
	Source string

	// Tree holds the file's settings as dotted class.prop keys.
	Tree Overrides
}

// Collision marks two configuration sources assigning different values to
// the same dotted key. Collisions are diagnostic only, never fatal.
type Collision struct {
	Key      string
	Loser    string // lower-priority source
	Winner   string // the source whose value takes precedence
	Old, New any
}

// Loader reads one discovered config file into an override tree.
// The parser is selected strictly by the file's extension; Collect only
// returns recognized extensions, so an unknown one here is a bug.
type Loader struct {
	// Strict makes parse failures fatal instead of logged-and-skipped.
	Strict bool

	// Log receives parse diagnostics. Defaults to slog.Default.
	Log *slog.Logger
}

// Load parses path into a LoadedConfig.
//
// A file that vanished between discovery and load returns (nil, nil): it is
// not an error. A malformed file returns an error in strict mode and is
// logged and skipped otherwise.
func (l *Loader) Load(path string) (*LoadedConfig, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml", ".toml":
	default:
		return nil, errors.AssertionFailedf("unrecognized config extension %q: %s", ext, path)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		// Deleted between collecting its name and reading it.
		return nil, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(errors.UnwrapAll(err)) {
			return nil, nil
		}
		if l.Strict {
			return nil, errors.Wrapf(err, "loading config file %q", path)
		}
		l.log().Error("failed loading config file", "path", path, "error", err)
		return nil, nil
	}
	l.log().Debug("loaded config file", "path", path)

	return &LoadedConfig{Source: path, Tree: flattenSettings(v.AllSettings())}, nil
}

func (l *Loader) log() *slog.Logger {
	if l.Log != nil {
		return l.Log
	}
	return slog.Default()
}

// flattenSettings reduces a parsed settings map to dotted class.prop keys.
// Top-level maps are class scopes; their immediate children are properties
// whose values are kept as-is (including nested maps and lists). Top-level
// scalars keep their bare key. Keys are lowercased, matching viper.
func flattenSettings(settings map[string]any) Overrides {
	tree := make(Overrides, len(settings))
	for cls, v := range settings {
		if props, ok := v.(map[string]any); ok {
			for prop, pv := range props {
				tree[strings.ToLower(cls+"."+prop)] = pv
			}
			continue
		}
		tree[strings.ToLower(cls)] = v
	}
	return tree
}

// Collisions reports every dotted key that both configs set to different
// values. later wins over earlier, which the returned records reflect.
func Collisions(earlier, later *LoadedConfig) []Collision {
	var out []Collision
	for key, oldVal := range earlier.Tree {
		newVal, ok := later.Tree[key]
		if !ok || reflect.DeepEqual(oldVal, newVal) {
			continue
		}
		out = append(out, Collision{
			Key:    key,
			Loser:  earlier.Source,
			Winner: later.Source,
			Old:    oldVal,
			New:    newVal,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// MergeConfigs folds configs, given in ascending priority order, into one
// override tree. Every new config is collision-checked against all
// previously merged ones; collisions are logged as warnings naming both
// sources and which one takes precedence.
func MergeConfigs(configs []*LoadedConfig, log *slog.Logger) Overrides {
	if log == nil {
		log = slog.Default()
	}
	merged := make(Overrides)
	var seen []*LoadedConfig
	for _, cfg := range configs {
		if cfg == nil {
			continue
		}
		for _, prev := range seen {
			for _, col := range Collisions(prev, cfg) {
				log.Warn("collision detected in config files",
					"key", col.Key,
					"overridden", col.Loser,
					"wins", col.Winner,
					"old", col.Old,
					"new", col.New)
			}
		}
		seen = append(seen, cfg)
		maps.Copy(merged, cfg.Tree)
	}
	return merged
}
