package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/younwookim/wage/internal/domain/entity"
)

// ErrUnknownTemplate is returned when building an unregistered template.
var ErrUnknownTemplate = errors.New("engine: unknown entity template")

// Collector is a named registry of entity factories, used to build entities
// from configuration by name.
type Collector struct {
	factories map[string]entity.Factory
}

// NewCollector creates an empty collector
func NewCollector() *Collector {
	return &Collector{factories: make(map[string]entity.Factory)}
}

// Add registers factory under name, replacing any previous one.
func (c *Collector) Add(name string, factory entity.Factory) {
	c.factories[name] = factory
}

// Len returns the number of registered templates.
func (c *Collector) Len() int {
	return len(c.factories)
}

// Names returns the registered template names, sorted.
func (c *Collector) Names() []string {
	names := make([]string, 0, len(c.factories))
	for name := range c.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds a fresh entity from the named template.
func (c *Collector) New(name string) (*entity.Entity, error) {
	factory, ok := c.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	e, err := factory()
	if err != nil {
		return nil, fmt.Errorf("failed to build %q: %w", name, err)
	}
	return e, nil
}
