// Package recipe models deptool recipes: the declarative description of how
// to check for and install one named piece of software.
package recipe

import (
	"fmt"
	"strconv"

	"github.com/arthur-debert/deptool/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultVersion is used when a recipe does not declare a version.
const DefaultVersion = "0"

// Document keys
const (
	KeyName         = "name"
	KeyVersion      = "version"
	KeyDependencies = "dependencies"
	KeyInstall      = "install"
	KeyCheck        = "check"
	KeyDownload     = "download"
)

// Recipe is a normalized recipe document. It is built once by Parse and must
// not be modified afterwards; every list field is non-nil.
type Recipe struct {
	// Name identifies the software. Never empty.
	Name string

	// Version is always a string, "0" when not declared.
	Version string

	// Dependencies are recipe paths or URLs, installed in order.
	Dependencies []string

	// Install holds shell command lines run when Check fails.
	Install []string

	// Check holds shell command lines that all succeed when the
	// software is already present.
	Check []string

	// Download holds "<url>" or "<url> <destination>" entries.
	Download []string
}

// Parse builds a Recipe from a decoded document.
func Parse(doc interface{}) (*Recipe, error) {
	fields, ok := asMapping(doc)
	if !ok {
		return nil, errors.Newf(errors.ErrInvalidRecipe, "invalid recipe: expected a mapping, got %T", doc).
			WithDetail("type", fmt.Sprintf("%T", doc))
	}

	name := ""
	if v, ok := fields[KeyName]; ok && v != nil {
		name = scalarString(v)
	}
	if name == "" {
		return nil, errors.New(errors.ErrInvalidName, "invalid name: recipe must declare a non-empty name")
	}

	version := DefaultVersion
	if v, ok := fields[KeyVersion]; ok && v != nil {
		version = scalarString(v)
	}

	return &Recipe{
		Name:         name,
		Version:      version,
		Dependencies: StringList(fields[KeyDependencies]),
		Install:      StringList(fields[KeyInstall]),
		Check:        StringList(fields[KeyCheck]),
		Download:     StringList(fields[KeyDownload]),
	}, nil
}

// Decode parses YAML text into a Recipe. Scalars keep the text they were
// written with, so "version: 1.0" stays "1.0".
func Decode(data []byte) (*Recipe, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidRecipe, "invalid recipe: malformed YAML")
	}
	return Parse(nodeValue(&root))
}

// nodeValue converts a YAML node into maps, slices and strings. Null
// scalars become nil.
func nodeValue(n *yaml.Node) interface{} {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil
		}
		return nodeValue(n.Content[0])
	case yaml.MappingNode:
		m := make(map[string]interface{}, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			m[n.Content[i].Value] = nodeValue(n.Content[i+1])
		}
		return m
	case yaml.SequenceNode:
		out := make([]interface{}, 0, len(n.Content))
		for _, item := range n.Content {
			out = append(out, nodeValue(item))
		}
		return out
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil
		}
		return nodeValue(n.Alias)
	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			return nil
		}
		return n.Value
	default:
		return nil
	}
}

// StringList normalizes a scalar or sequence into a list of strings.
// A missing (nil) value yields an empty, non-nil list.
func StringList(v interface{}) []string {
	switch val := v.(type) {
	case nil:
		return []string{}
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, scalarString(item))
		}
		return out
	case []string:
		return append([]string{}, val...)
	default:
		return []string{scalarString(val)}
	}
}

func asMapping(doc interface{}) (map[string]interface{}, bool) {
	switch m := doc.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, v := range m {
			out[fmt.Sprint(k)] = v
		}
		return out, true
	default:
		return nil, false
	}
}

func scalarString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
