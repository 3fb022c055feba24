// Package entity maintains the registry of known Home Assistant entities and
// its flat YAML cache file.
package entity

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hearthlabs/hearth/internal/hass"
)

// Entity is one cached Home Assistant entity.
type Entity struct {
	EntityID     string `yaml:"entity_id"`
	Domain       string `yaml:"domain"`
	FriendlyName string `yaml:"friendly_name"`
}

// DomainOf extracts the domain from an entity ID ("light.kitchen" → "light").
func DomainOf(entityID string) string {
	if i := strings.IndexByte(entityID, '.'); i >= 0 {
		return entityID[:i]
	}
	return entityID
}

// Named pairs a registry lookup key with its entity.
type Named struct {
	Name string
	Entity
}

// Registry maps lowercased display names to entities.
type Registry struct {
	entities map[string]Entity
}

// Build creates a registry from server states. Keys are lowercased friendly
// names; when two entities share a name the later one gets a " (<domain>)"
// suffix so both stay addressable.
func Build(states []hass.State) *Registry {
	entities := make(map[string]Entity, len(states))
	for _, st := range states {
		domain := DomainOf(st.EntityID)
		base := strings.ToLower(st.FriendlyName())

		key := base
		if _, taken := entities[key]; taken {
			key = fmt.Sprintf("%s (%s)", base, domain)
		}

		entities[key] = Entity{
			EntityID:     st.EntityID,
			Domain:       domain,
			FriendlyName: base,
		}
	}
	return &Registry{entities: entities}
}

func (r *Registry) Len() int {
	return len(r.entities)
}

// Get looks up an entity by its registry key.
func (r *Registry) Get(name string) (Entity, bool) {
	e, ok := r.entities[strings.ToLower(name)]
	return e, ok
}

// ByID finds an entity by entity ID.
func (r *Registry) ByID(entityID string) (Entity, bool) {
	for _, e := range r.entities {
		if e.EntityID == entityID {
			return e, true
		}
	}
	return Entity{}, false
}

// DisplayName returns the friendly name for an entity ID, or the ID itself
// when the entity is not in the registry.
func (r *Registry) DisplayName(entityID string) string {
	if e, ok := r.ByID(entityID); ok && e.FriendlyName != "" {
		return e.FriendlyName
	}
	return entityID
}

// All returns every entry sorted by name.
func (r *Registry) All() []Named {
	out := make([]Named, 0, len(r.entities))
	for name, e := range r.entities {
		out = append(out, Named{Name: name, Entity: e})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Save writes the registry to a YAML cache file.
func (r *Registry) Save(path string) error {
	data, err := yaml.Marshal(r.entities)
	if err != nil {
		return fmt.Errorf("entity: marshal cache: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("entity: write cache: %w", err)
	}
	return nil
}

// Load reads a registry from a YAML cache file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("entity: read cache: %w", err)
	}

	entities := make(map[string]Entity)
	if err := yaml.Unmarshal(data, &entities); err != nil {
		return nil, fmt.Errorf("entity: parse cache: %w", err)
	}
	return &Registry{entities: entities}, nil
}

// Reload fetches all states from the server, rebuilds the registry, and
// persists it to path.
func Reload(ctx context.Context, c *hass.Client, path string) (*Registry, error) {
	states, err := c.States(ctx)
	if err != nil {
		return nil, err
	}

	reg := Build(states)
	if err := reg.Save(path); err != nil {
		return nil, err
	}
	return reg, nil
}

// CacheAge returns how long ago the cache file was written.
func CacheAge(path string) (time.Duration, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return time.Since(info.ModTime()), nil
}
