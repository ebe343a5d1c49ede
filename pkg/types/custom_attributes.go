package types

import (
	"maps"
	"slices"
	"sync"
)

type AttributeOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type CustomAttribute struct {
	Name    string            `json:"name"`
	Label   string            `json:"label"`
	Options []AttributeOption `json:"options"`
}

func (a *CustomAttribute) HasOption(key string) bool {
	return slices.ContainsFunc(a.Options, func(o AttributeOption) bool {
		return o.Key == key
	})
}

// CustomAttributeConfig lists the filterable categorical attributes.
// It is loaded at startup and replaced wholesale on reload.
type CustomAttributeConfig struct {
	mu         sync.RWMutex
	Attributes map[string]*CustomAttribute `json:"attributes"`
}

func NewCustomAttributeConfig(attributes ...*CustomAttribute) *CustomAttributeConfig {
	c := &CustomAttributeConfig{}
	c.Replace(attributes)
	return c
}

func (c *CustomAttributeConfig) Has(name string) bool {
	_, ok := c.Get(name)
	return ok
}

func (c *CustomAttributeConfig) Get(name string) (*CustomAttribute, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.Attributes[name]
	return a, ok && a != nil
}

func (c *CustomAttributeConfig) Names() []string {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.Attributes))
}

// Replace swaps the whole attribute set. Unnamed entries are skipped.
func (c *CustomAttributeConfig) Replace(attributes []*CustomAttribute) {
	next := make(map[string]*CustomAttribute, len(attributes))
	for _, a := range attributes {
		if a == nil || a.Name == "" {
			continue
		}
		next[a.Name] = a
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Attributes = next
}

// List returns the attributes sorted by name.
func (c *CustomAttributeConfig) List() []*CustomAttribute {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]*CustomAttribute, 0, len(c.Attributes))
	for _, name := range slices.Sorted(maps.Keys(c.Attributes)) {
		result = append(result, c.Attributes[name])
	}
	return result
}
