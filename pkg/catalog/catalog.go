// Package catalog holds the reference items a cart is built from.
//
// A [Catalog] is loaded from TOML, either from a file given by the user or
// from the catalog embedded in the binary:
//
//	[[item]]
//	id = 101
//	category = "Books"
//	name = "Paperback novel"
//	name_jp = "文庫本"
//	length_cm = 15.0
//	width_cm = 10.5
//	height_cm = 1.5
//	weight_g = 150
//	icon = "book"
//
// Items are immutable once loaded. The mutable part of the domain lives in
// [Cart].
package catalog

import (
	_ "embed"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/parcelview/pkg/errors"
)

//go:embed default.toml
var defaultCatalog []byte

// Item is one catalog entry. Dimensions are in centimeters, weight in grams.
type Item struct {
	ID       int      `toml:"id" json:"id" yaml:"id"`
	Category Category `toml:"category" json:"category" yaml:"category"`
	Name     string   `toml:"name" json:"name" yaml:"name"`
	NameJP   string   `toml:"name_jp" json:"nameJp,omitempty" yaml:"name_jp,omitempty"`
	LengthCm float64  `toml:"length_cm" json:"lengthCm" yaml:"length_cm"`
	WidthCm  float64  `toml:"width_cm" json:"widthCm" yaml:"width_cm"`
	HeightCm float64  `toml:"height_cm" json:"heightCm" yaml:"height_cm"`
	WeightG  int      `toml:"weight_g" json:"weightG" yaml:"weight_g"`
	Icon     string   `toml:"icon" json:"icon,omitempty" yaml:"icon,omitempty"`
}

// Kind returns how the item behaves when stacked.
func (it Item) Kind() Kind { return Classify(it) }

// Catalog is an immutable, ID-indexed set of items.
type Catalog struct {
	items []Item
	byID  map[int]int
}

type catalogFile struct {
	Items []Item `toml:"item"`
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a TOML catalog from path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "catalog %s", path)
		}
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a TOML catalog. Duplicate IDs and unknown categories are
// rejected; items are kept in category order, then by name.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode catalog")
	}
	return New(f.Items)
}

// New builds a catalog from items.
func New(items []Item) (*Catalog, error) {
	c := &Catalog{
		items: make([]Item, 0, len(items)),
		byID:  make(map[int]int, len(items)),
	}
	for _, it := range items {
		if _, dup := c.byID[it.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate catalog id %d", it.ID)
		}
		cat, err := ParseCategory(string(it.Category))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidCategory, err, "item %d", it.ID)
		}
		it.Category = cat
		c.byID[it.ID] = -1
		c.items = append(c.items, it)
	}
	sort.SliceStable(c.items, func(i, j int) bool {
		a, b := c.items[i], c.items[j]
		if a.Category.Order() != b.Category.Order() {
			return a.Category.Order() < b.Category.Order()
		}
		return a.Name < b.Name
	})
	for i, it := range c.items {
		c.byID[it.ID] = i
	}
	return c, nil
}

// Len returns the number of items.
func (c *Catalog) Len() int { return len(c.items) }

// Items returns the items in cat, or every item when cat is empty.
func (c *Catalog) Items(cat Category) []Item {
	out := make([]Item, 0, len(c.items))
	for _, it := range c.items {
		if cat == "" || it.Category == cat {
			out = append(out, it)
		}
	}
	return out
}

// Categories returns the categories that have at least one item, in display order.
func (c *Catalog) Categories() []Category {
	var out []Category
	seen := make(map[Category]bool)
	for _, it := range c.items {
		if !seen[it.Category] {
			seen[it.Category] = true
			out = append(out, it.Category)
		}
	}
	return out
}

// Lookup returns the item with the given ID.
func (c *Catalog) Lookup(id int) (Item, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Search returns items whose English or Japanese name contains q,
// case-insensitively.
func (c *Catalog) Search(q string) []Item {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return c.Items("")
	}
	var out []Item
	for _, it := range c.items {
		if strings.Contains(strings.ToLower(it.Name), q) || strings.Contains(it.NameJP, q) {
			out = append(out, it)
		}
	}
	return out
}
