// SPDX-License-Identifier: MPL-2.0

package store

import (
	"github.com/sdml-io/sdml/pkg/model"
	"github.com/sdml-io/sdml/pkg/stdlib"
)

type (
	// ModuleStore maps module names to modules, iterating in insertion order.
	ModuleStore interface {
		// Len returns the number of modules in the store.
		Len() int
		// Contains reports whether a module named name is present.
		Contains(name model.Identifier) bool
		// ContainsByURI reports whether a module with base URI uri is present.
		ContainsByURI(uri *model.URI) bool
		// Get returns the module named name.
		Get(name model.Identifier) (*model.Module, bool)
		// GetByURI returns the module whose base URI is uri.
		GetByURI(uri *model.URI) (*model.Module, bool)
		// Insert adds module, replacing any module of the same name.
		Insert(module *model.Module)
		// Remove deletes the module named name and reports whether it existed.
		Remove(name model.Identifier) bool
		// ModuleNames returns module names in insertion order.
		ModuleNames() []model.Identifier
		// Modules returns modules in insertion order.
		Modules() []*model.Module
		// URIToName returns the name of the module with base URI uri.
		URIToName(uri *model.URI) (model.Identifier, bool)
		// Resolve finds the definition named by a qualified identifier.
		Resolve(name model.QualifiedIdentifier) (model.Definition, bool)
		// ResolveOrIn resolves ref, qualifying an unqualified reference with in.
		ResolveOrIn(ref model.IdentifierReference, in model.Identifier) (model.Definition, bool)
	}

	// Cache is the in-memory ModuleStore. There is no eviction: a cache is
	// filled once per load session. Cache does no locking; it must have a
	// single writer, and reads may only run concurrently once writes stop.
	Cache struct {
		// order tracks module names in insertion order for deterministic output.
		order []string
		// modules provides O(1) lookup by name.
		modules map[string]*model.Module
		// uris maps normalized base URIs to module names.
		uris map[string]string
	}
)

var _ ModuleStore = (*Cache)(nil)

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		modules: make(map[string]*model.Module),
		uris:    make(map[string]string),
	}
}

// WithStdlib inserts every library module and returns the cache.
func (c *Cache) WithStdlib() *Cache {
	for _, m := range stdlib.Modules() {
		c.Insert(m)
	}
	return c
}

// Len returns the number of modules.
func (c *Cache) Len() int { return len(c.order) }

// Contains reports whether a module named name is present.
func (c *Cache) Contains(name model.Identifier) bool {
	_, ok := c.modules[name.String()]
	return ok
}

// ContainsByURI reports whether a module with base URI uri is present.
func (c *Cache) ContainsByURI(uri *model.URI) bool {
	_, ok := c.URIToName(uri)
	return ok
}

// Get returns the module named name.
func (c *Cache) Get(name model.Identifier) (*model.Module, bool) {
	m, ok := c.modules[name.String()]
	return m, ok
}

// GetByURI returns the module whose base URI is uri.
func (c *Cache) GetByURI(uri *model.URI) (*model.Module, bool) {
	name, ok := c.URIToName(uri)
	if !ok {
		return nil, false
	}
	return c.Get(name)
}

// URIToName returns the name of the module with base URI uri.
func (c *Cache) URIToName(uri *model.URI) (model.Identifier, bool) {
	if uri == nil {
		return model.Identifier{}, false
	}
	name, ok := c.uris[uriKey(uri)]
	if !ok {
		return model.Identifier{}, false
	}
	return c.modules[name].Name, true
}

// Insert adds module. A module with the same name is replaced in place,
// keeping its original position.
func (c *Cache) Insert(module *model.Module) {
	key := module.Name.String()
	if old, ok := c.modules[key]; ok {
		c.forgetURI(old)
	} else {
		c.order = append(c.order, key)
	}
	c.modules[key] = module
	if module.BaseURI != nil {
		c.uris[uriKey(module.BaseURI)] = key
	}
}

// Remove deletes the module named name.
func (c *Cache) Remove(name model.Identifier) bool {
	key := name.String()
	old, ok := c.modules[key]
	if !ok {
		return false
	}
	c.forgetURI(old)
	delete(c.modules, key)
	for i, n := range c.order {
		if n == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// ModuleNames returns module names in insertion order.
func (c *Cache) ModuleNames() []model.Identifier {
	names := make([]model.Identifier, len(c.order))
	for i, key := range c.order {
		names[i] = c.modules[key].Name
	}
	return names
}

// Modules returns modules in insertion order.
func (c *Cache) Modules() []*model.Module {
	modules := make([]*model.Module, len(c.order))
	for i, key := range c.order {
		modules[i] = c.modules[key]
	}
	return modules
}

// Resolve finds the definition named by a qualified identifier.
func (c *Cache) Resolve(name model.QualifiedIdentifier) (model.Definition, bool) {
	m, ok := c.Get(name.Module())
	if !ok {
		return nil, false
	}
	return m.Body.Definition(name.Member())
}

// ResolveOrIn resolves ref, treating an unqualified identifier as a member of in.
func (c *Cache) ResolveOrIn(ref model.IdentifierReference, in model.Identifier) (model.Definition, bool) {
	if ref == nil {
		return nil, false
	}
	return c.Resolve(model.Qualified(ref, in))
}

func (c *Cache) forgetURI(m *model.Module) {
	if m.BaseURI == nil {
		return
	}
	key := uriKey(m.BaseURI)
	if c.uris[key] == m.Name.String() {
		delete(c.uris, key)
	}
}

func uriKey(u *model.URI) string {
	return u.Normalize().String()
}
