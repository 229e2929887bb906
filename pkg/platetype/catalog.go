// Package platetype holds the catalog of standard microplate formats and
// builds bounded plates and stacks from it. The built-in catalog may be
// extended or overridden with a YAML document.
package platetype

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"microplate/pkg/domain"
)

// EnvCatalogPath names the environment variable read by Open.
const EnvCatalogPath = "MICROPLATE_PLATE_TYPES"

var (
	// ErrUnknownFormat is returned when a format name is not in the catalog.
	ErrUnknownFormat = errors.New("unknown plate format")
	// ErrInvalidFormat is returned for formats without a name or with
	// non-positive dimensions.
	ErrInvalidFormat = errors.New("invalid plate format")
	// ErrNoPlates is returned by Catalog.NewStack without plate names; an
	// empty stack has no shape to carry the format.
	ErrNoPlates = errors.New("stack needs at least one plate")
)

// Format describes one plate layout.
type Format struct {
	Name        string `yaml:"name"`
	Rows        int    `yaml:"rows"`
	Columns     int    `yaml:"columns"`
	Description string `yaml:"description,omitempty"`
}

// Capacity returns the number of wells.
func (f Format) Capacity() int { return f.Rows * f.Columns }

// Validate checks the name and dimensions.
func (f Format) Validate() error {
	switch {
	case f.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidFormat)
	case f.Rows < 1 || f.Columns < 1:
		return fmt.Errorf("%w: %s has dimensions %dx%d", ErrInvalidFormat, f.Name, f.Rows, f.Columns)
	}
	return nil
}

// File is the YAML document accepted by LoadCatalog.
//
//	version: "1"
//	formats:
//	  - name: 96-well
//	    rows: 8
//	    columns: 12
type File struct {
	Version string   `yaml:"version"`
	Formats []Format `yaml:"formats"`
}

var defaults = []Format{
	{Name: "6-well", Rows: 2, Columns: 3, Description: "cell culture"},
	{Name: "12-well", Rows: 3, Columns: 4, Description: "cell culture"},
	{Name: "24-well", Rows: 4, Columns: 6, Description: "cell culture"},
	{Name: "48-well", Rows: 6, Columns: 8, Description: "cell culture"},
	{Name: "96-well", Rows: 8, Columns: 12, Description: "SBS standard"},
	{Name: "384-well", Rows: 16, Columns: 24, Description: "SBS standard"},
	{Name: "1536-well", Rows: 32, Columns: 48, Description: "SBS standard"},
}

// Catalog maps format names to formats. It is not safe for concurrent
// mutation.
type Catalog struct {
	formats map[string]Format
}

// DefaultCatalog returns a catalog holding the standard formats.
func DefaultCatalog() *Catalog {
	c := &Catalog{formats: make(map[string]Format, len(defaults))}
	for _, f := range defaults {
		c.formats[f.Name] = f
	}
	return c
}

// LoadCatalog reads a YAML File from r and overlays its formats on the
// default catalog. Unknown fields are rejected. An empty document yields the
// defaults.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse plate catalog: %w", err)
	}
	c := DefaultCatalog()
	for _, f := range file.Formats {
		if err := c.Register(f); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// LoadCatalogFile reads a catalog from path.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plate catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// Open selects the catalog using the environment.
//
//	MICROPLATE_PLATE_TYPES: path to a YAML catalog (default: built-in formats)
func Open() (*Catalog, error) {
	path := os.Getenv(EnvCatalogPath)
	if path == "" {
		return DefaultCatalog(), nil
	}
	return LoadCatalogFile(path)
}

// Register adds f, replacing any format with the same name.
func (c *Catalog) Register(f Format) error {
	if err := f.Validate(); err != nil {
		return err
	}
	c.formats[f.Name] = f
	return nil
}

// Lookup returns the named format.
func (c *Catalog) Lookup(name string) (Format, error) {
	f, ok := c.formats[name]
	if !ok {
		return Format{}, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return f, nil
}

// Names lists formats by ascending capacity, then name.
func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.formats))
	for name := range c.formats {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := c.formats[out[i]], c.formats[out[j]]
		if a.Capacity() != b.Capacity() {
			return a.Capacity() < b.Capacity()
		}
		return a.Name < b.Name
	})
	return out
}

// Marshal encodes the catalog as a YAML File.
func (c *Catalog) Marshal() ([]byte, error) {
	file := File{Version: "1"}
	for _, name := range c.Names() {
		file.Formats = append(file.Formats, c.formats[name])
	}
	return yaml.Marshal(file)
}

// NewPlate creates an empty plate of the named format.
func (c *Catalog) NewPlate(format, name string) (*domain.Plate, error) {
	f, err := c.Lookup(format)
	if err != nil {
		return nil, err
	}
	return domain.NewPlate(name, f.Rows, f.Columns, f.Name)
}

// NewStack creates a stack of empty plates of the named format. At least one
// plate name is required so the stack is fixed to the format's shape.
func (c *Catalog) NewStack(format, name string, plateNames ...string) (*domain.Stack, error) {
	if _, err := c.Lookup(format); err != nil {
		return nil, err
	}
	if len(plateNames) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPlates, name)
	}
	plates := make([]*domain.Plate, 0, len(plateNames))
	for _, pn := range plateNames {
		p, err := c.NewPlate(format, pn)
		if err != nil {
			return nil, err
		}
		plates = append(plates, p)
	}
	return domain.NewStack(name, plates...)
}
