package palette

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"visitmap/pkg/platform/sentinel"
)

//go:embed catalog.yaml
var builtinCatalog []byte

// Catalog is the set of palettes a user can choose from.
type Catalog struct {
	defaultName string
	palettes    map[string]Palette
	order       []string
}

type catalogDocument struct {
	Default  string    `yaml:"default"`
	Palettes []Palette `yaml:"palettes"`
}

// LoadCatalog decodes and validates a YAML palette catalog. Every palette must
// pass New; the default must name one of them (the first palette otherwise).
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var doc catalogDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode palette catalog: %w", err)
	}
	if len(doc.Palettes) == 0 {
		return nil, fmt.Errorf("palette catalog is empty")
	}

	c := &Catalog{palettes: make(map[string]Palette, len(doc.Palettes))}
	for _, raw := range doc.Palettes {
		p, err := New(raw.Name, raw.Colors)
		if err != nil {
			return nil, err
		}
		if _, dup := c.palettes[p.Name]; dup {
			return nil, fmt.Errorf("palette %q defined twice", p.Name)
		}
		c.palettes[p.Name] = p
		c.order = append(c.order, p.Name)
	}

	c.defaultName = c.order[0]
	if doc.Default != "" {
		if _, ok := c.palettes[doc.Default]; !ok {
			return nil, fmt.Errorf("default palette %q: %w", doc.Default, sentinel.ErrNotFound)
		}
		c.defaultName = doc.Default
	}
	return c, nil
}

// LoadCatalogFile loads a catalog from path.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open palette catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// Builtin returns the catalog embedded in the binary.
func Builtin() *Catalog {
	c, err := LoadCatalog(bytes.NewReader(builtinCatalog))
	if err != nil {
		panic(fmt.Sprintf("builtin palette catalog: %v", err))
	}
	return c
}

// Get returns the palette called name.
func (c *Catalog) Get(name string) (Palette, error) {
	p, ok := c.palettes[name]
	if !ok {
		return Palette{}, fmt.Errorf("palette %q: %w", name, sentinel.ErrNotFound)
	}
	return p, nil
}

// Default returns the catalog's default palette.
func (c *Catalog) Default() Palette {
	return c.palettes[c.defaultName]
}

// List returns the palettes in catalog order.
func (c *Catalog) List() []Palette {
	out := make([]Palette, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.palettes[name])
	}
	return out
}

// Names returns the palette names sorted alphabetically.
func (c *Catalog) Names() []string {
	names := append([]string(nil), c.order...)
	sort.Strings(names)
	return names
}
