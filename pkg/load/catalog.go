// SPDX-License-Identifier: MPL-2.0

package load

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/sdml-io/sdml/pkg/cueutil"
	"github.com/sdml-io/sdml/pkg/model"

	"golang.org/x/exp/maps"
)

// CatalogFileName is the file name LoadCatalog looks for in a directory.
const CatalogFileName = "sdml-catalog.json"

//go:embed catalog_schema.cue
var catalogSchema []byte

// ErrCatalogNotFound is returned by LoadCatalog when no catalog file exists.
var ErrCatalogNotFound = errors.New("catalog file not found")

type (
	// Catalog maps module names to a published URL and a local file. Entry
	// URLs are relative to the catalog base; entry paths are relative to the
	// directory the catalog was loaded from.
	Catalog struct {
		base       *model.URI
		loadedFrom string
		entries    map[string]CatalogEntry
	}

	// CatalogEntry is either a single item or a group of items sharing a
	// URL and path prefix.
	CatalogEntry struct {
		Item  *CatalogItem  `json:"item,omitempty"`
		Group *CatalogGroup `json:"group,omitempty"`
	}

	// CatalogItem locates one module.
	CatalogItem struct {
		RelativeURL  string `json:"relative_url"`
		RelativePath string `json:"relative_path"`
	}

	// CatalogGroup prefixes the URL and path of each of its items.
	CatalogGroup struct {
		RelativeURL  string                 `json:"relative_url,omitempty"`
		RelativePath string                 `json:"relative_path,omitempty"`
		Entries      map[string]CatalogItem `json:"entries"`
	}

	catalogFile struct {
		Base    string                  `json:"base"`
		Entries map[string]CatalogEntry `json:"entries"`
	}
)

// ParseCatalog decodes catalog JSON; dir is the directory relative entry
// paths are resolved against.
func ParseCatalog(data []byte, dir, filename string) (*Catalog, error) {
	result, err := cueutil.ParseAndDecode[catalogFile](catalogSchema, data, "#Catalog", cueutil.WithFilename(filename))
	if err != nil {
		return nil, err
	}
	base, err := model.ParseURI(result.Value.Base)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid base URL: %w", filename, err)
	}
	entries := result.Value.Entries
	if entries == nil {
		entries = map[string]CatalogEntry{}
	}
	return &Catalog{base: base, loadedFrom: dir, entries: entries}, nil
}

// LoadCatalog reads a catalog. path may name the catalog file itself or a
// directory holding CatalogFileName; with lookInParents the parent
// directories are searched too.
func LoadCatalog(path string, lookInParents bool) (*Catalog, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	for dir := abs; ; {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("reading catalog at %s: %w", dir, err)
		}
		if !info.IsDir() {
			return loadCatalogFile(dir)
		}
		file := filepath.Join(dir, CatalogFileName)
		if fileExists(file) {
			return loadCatalogFile(file)
		}
		parent := filepath.Dir(dir)
		if !lookInParents || parent == dir {
			return nil, fmt.Errorf("%s: %w", abs, ErrCatalogNotFound)
		}
		dir = parent
	}
}

func loadCatalogFile(file string) (*Catalog, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog at %s: %w", file, err)
	}
	return ParseCatalog(data, filepath.Dir(file), file)
}

// Base returns the URL entry URLs are resolved against.
func (c *Catalog) Base() *model.URI { return c.base }

// LoadedFrom returns the directory entry paths are resolved against.
func (c *Catalog) LoadedFrom() string { return c.loadedFrom }

// Names returns the sorted names of the top-level entries.
func (c *Catalog) Names() []string {
	names := maps.Keys(c.entries)
	slices.Sort(names)
	return names
}

// Entry returns a top-level entry.
func (c *Catalog) Entry(name string) (CatalogEntry, bool) {
	e, ok := c.entries[name]
	return e, ok
}

// lookup finds the item for module, either directly or inside a group. The
// group, if any, is returned too.
func (c *Catalog) lookup(module string) (CatalogItem, *CatalogGroup, bool) {
	if e, ok := c.entries[module]; ok && e.Item != nil {
		return *e.Item, nil, true
	}
	for _, name := range c.Names() {
		g := c.entries[name].Group
		if g == nil {
			continue
		}
		if item, ok := g.Entries[module]; ok {
			return item, g, true
		}
	}
	return CatalogItem{}, nil, false
}

// ResolveURI returns the published URL of module.
func (c *Catalog) ResolveURI(module string) (*model.URI, bool) {
	item, group, ok := c.lookup(module)
	if !ok {
		return nil, false
	}
	base := c.base
	if group != nil && group.RelativeURL != "" {
		gb, err := base.Resolve(group.RelativeURL)
		if err != nil {
			return nil, false
		}
		base = gb
	}
	u, err := base.Resolve(item.RelativeURL)
	if err != nil {
		return nil, false
	}
	return u, true
}

// ResolveLocalPath returns the file holding module.
func (c *Catalog) ResolveLocalPath(module string) (string, bool) {
	item, group, ok := c.lookup(module)
	if !ok {
		return "", false
	}
	dir := c.loadedFrom
	if group != nil && group.RelativePath != "" {
		dir = filepath.Join(dir, group.RelativePath)
	}
	return filepath.Join(dir, item.RelativePath), true
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
