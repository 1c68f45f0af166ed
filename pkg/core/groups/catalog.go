package groups

import (
	"strings"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/model"
)

// Catalog resolves group names to groups, creating them on first use
type Catalog struct {
	groups []model.Group
	newID  func() string
}

// NewCatalog starts a catalog from a copy of groups
func NewCatalog(groups []model.Group) *Catalog {
	c := &Catalog{newID: model.NewID}
	c.groups = append(c.groups, groups...)
	return c
}

// Find returns the group whose normalized name matches name
func (c *Catalog) Find(name string) (model.Group, bool) {
	key := Key(name)
	if key == "" {
		return model.Group{}, false
	}
	for _, g := range c.groups {
		if Key(g.Name) == key {
			return g, true
		}
	}
	return model.Group{}, false
}

// EnsureByName returns the existing group for name or appends a new one
// with the trimmed spelling. A blank name resolves to the zero group.
func (c *Catalog) EnsureByName(name string) (model.Group, bool) {
	return c.Add(name, "")
}

// Add creates a group unless one with the same normalized name exists
func (c *Catalog) Add(name, description string) (model.Group, bool) {
	if g, ok := c.Find(name); ok {
		return g, false
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Group{}, false
	}
	g := model.Group{ID: c.newID(), Name: name, Description: strings.TrimSpace(description)}
	c.groups = append(c.groups, g)
	return g, true
}

// Groups returns the catalog contents
func (c *Catalog) Groups() []model.Group {
	out := make([]model.Group, len(c.groups))
	copy(out, c.groups)
	return out
}

// Seed builds groups from plain names, skipping blanks and duplicates
func Seed(names []string) []model.Group {
	c := NewCatalog(nil)
	for _, n := range names {
		c.EnsureByName(n)
	}
	return c.Groups()
}
