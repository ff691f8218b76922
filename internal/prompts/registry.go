package prompts

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Marker is replaced by the user's task text when a template is compiled.
const Marker = "{{user_input}}"

// NoSelectionID is sent by the client when no category was picked in the dropdown.
const NoSelectionID = "please_select"

//go:embed catalog.yaml
var embeddedCatalog []byte

// ErrInvalidCatalog is returned when a catalog breaks one of the load-time checks.
var ErrInvalidCatalog = errors.New("invalid prompt catalog")

// Category - категория промпта с шаблоном.
type Category struct {
	ID       string `yaml:"id"`
	Label    string `yaml:"label"`
	Template string `yaml:"template"`
}

// CategoryInfo is the public view of a Category; templates are never exposed.
type CategoryInfo struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type catalogFile struct {
	Default    string     `yaml:"default"`
	Categories []Category `yaml:"categories"`
}

// Registry is an ordered, read-only set of categories. Safe for concurrent use.
type Registry struct {
	categories []Category
	byID       map[string]int
	def        int
}

// NewRegistry loads the catalog compiled into the binary.
func NewRegistry() (*Registry, error) {
	return Parse(embeddedCatalog)
}

// LoadFile loads a catalog from a YAML file on disk.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Registry, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("%w: no categories", ErrInvalidCatalog)
	}

	r := &Registry{
		categories: make([]Category, 0, len(file.Categories)),
		byID:       make(map[string]int, len(file.Categories)),
		def:        -1,
	}
	for _, c := range file.Categories {
		c.ID = strings.TrimSpace(c.ID)
		switch {
		case c.ID == "":
			return nil, fmt.Errorf("%w: category with empty id", ErrInvalidCatalog)
		case c.ID == NoSelectionID:
			return nil, fmt.Errorf("%w: id %q is reserved", ErrInvalidCatalog, NoSelectionID)
		case c.Label == "":
			return nil, fmt.Errorf("%w: category %q has no label", ErrInvalidCatalog, c.ID)
		}
		if _, dup := r.byID[c.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate category id %q", ErrInvalidCatalog, c.ID)
		}
		if n := strings.Count(c.Template, Marker); n != 1 {
			return nil, fmt.Errorf("%w: template %q contains %s %d times, want exactly once", ErrInvalidCatalog, c.ID, Marker, n)
		}
		r.byID[c.ID] = len(r.categories)
		r.categories = append(r.categories, c)
	}

	idx, ok := r.byID[file.Default]
	if !ok {
		return nil, fmt.Errorf("%w: default category %q is not defined", ErrInvalidCatalog, file.Default)
	}
	r.def = idx
	return r, nil
}

// Lookup returns the category with the given id, or the default category
// when id is unknown or equals NoSelectionID. It never fails.
func (r *Registry) Lookup(id string) Category {
	if c, ok := r.find(id); ok {
		return c
	}
	return r.Default()
}

// Has reports whether id names a category of the catalog.
func (r *Registry) Has(id string) bool {
	_, ok := r.find(id)
	return ok
}

func (r *Registry) find(id string) (Category, bool) {
	idx, ok := r.byID[id]
	if !ok {
		return Category{}, false
	}
	return r.categories[idx], true
}

// Default returns the fallback category.
func (r *Registry) Default() Category {
	return r.categories[r.def]
}

// List returns id and label of every category in catalog order.
func (r *Registry) List() []CategoryInfo {
	out := make([]CategoryInfo, len(r.categories))
	for i, c := range r.categories {
		out[i] = CategoryInfo{ID: c.ID, Label: c.Label}
	}
	return out
}
