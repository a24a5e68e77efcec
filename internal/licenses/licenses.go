// Package licenses loads the license options offered on new listings.
package licenses

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed licenses.yaml
var defaultCatalog []byte

// License is one selectable license.
type License struct {
	Key     string `yaml:"key" json:"key"`
	Name    string `yaml:"name" json:"name"`
	Summary string `yaml:"summary" json:"summary,omitempty"`
	URL     string `yaml:"url" json:"url,omitempty"`
}

// Catalog is an ordered, keyed set of licenses.
type Catalog struct {
	list  []License
	byKey map[string]License
}

type catalogFile struct {
	Licenses []License `yaml:"licenses"`
}

// Load reads the catalog at path, or the built-in catalog when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultCatalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read licenses %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog. Keys must be non-empty and unique.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse licenses: %w", err)
	}
	if len(f.Licenses) == 0 {
		return nil, errors.New("license catalog is empty")
	}

	c := &Catalog{byKey: make(map[string]License, len(f.Licenses))}
	for _, l := range f.Licenses {
		if l.Key == "" {
			return nil, fmt.Errorf("license %q has no key", l.Name)
		}
		if _, dup := c.byKey[l.Key]; dup {
			return nil, fmt.Errorf("duplicate license key %q", l.Key)
		}
		if l.Name == "" {
			l.Name = l.Key
		}
		c.byKey[l.Key] = l
		c.list = append(c.list, l)
	}
	return c, nil
}

// All returns the licenses in catalog order.
func (c *Catalog) All() []License {
	out := make([]License, len(c.list))
	copy(out, c.list)
	return out
}

// Has reports whether key names a license in the catalog.
func (c *Catalog) Has(key string) bool {
	_, ok := c.byKey[key]
	return ok
}

// Get returns the license for key.
func (c *Catalog) Get(key string) (License, bool) {
	l, ok := c.byKey[key]
	return l, ok
}
