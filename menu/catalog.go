package menu

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Canonical pizza sizes, narrowest to widest.
var canonicalSizes = []string{"small", "regular", "medium", "large", "xxl"}

// Common mishearings and shorthand for sizes. "extra large" must map to
// xxl before a bare "large" substring match can fire; the extractor
// sorts these keys longest-first to guarantee that.
var sizeTypoAliases = map[string]string{
	"smal":        "small",
	"sml":         "small",
	"reg":         "regular",
	"normal":      "regular",
	"med":         "medium",
	"medum":       "medium",
	"larj":        "large",
	"larg":        "large",
	"lrg":         "large",
	"xl":          "xxl",
	"extra large": "xxl",
}

// Catalog is the read-only menu a session consults. It is built once at
// startup and never mutated afterwards.
type Catalog struct {
	categories map[string][]string
	order      []string // category insertion order
	items      map[string]bool
	flavors    []string
}

// NewCatalog builds a catalog from a category -> items mapping.
// Categories are iterated in the order given. Items of pizza-like
// categories become the flavor vocabulary, lowercased.
func NewCatalog(categories map[string][]string, order []string) *Catalog {
	c := &Catalog{
		categories: make(map[string][]string, len(categories)),
		items:      make(map[string]bool),
	}
	if order == nil {
		for cat := range categories {
			order = append(order, cat)
		}
	}
	for _, cat := range order {
		itemList, ok := categories[cat]
		if !ok {
			continue
		}
		c.order = append(c.order, cat)
		for _, item := range itemList {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			c.categories[cat] = append(c.categories[cat], item)
			c.items[strings.ToLower(item)] = true
			if isPizzaCategory(cat) {
				c.flavors = append(c.flavors, strings.ToLower(item))
			}
		}
	}
	return c
}

func isPizzaCategory(category string) bool {
	lower := strings.ToLower(category)
	return strings.Contains(lower, "pizza") || strings.Contains(lower, "flavor")
}

// Load reads a CSV menu file with a "Category,Item" header row.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open menu file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	categories := make(map[string][]string)
	var order []string

	header := true
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read menu file: %w", err)
		}
		if header {
			header = false
			continue
		}
		if len(record) < 2 {
			continue
		}
		cat := strings.TrimSpace(record[0])
		item := strings.TrimSpace(record[1])
		if cat == "" || item == "" {
			continue
		}
		if _, seen := categories[cat]; !seen {
			order = append(order, cat)
		}
		categories[cat] = append(categories[cat], item)
	}

	c := NewCatalog(categories, order)
	if len(c.items) == 0 {
		return nil, fmt.Errorf("menu file %s contains no items", path)
	}
	return c, nil
}

// Default returns the built-in demo menu used when no menu file is
// configured.
func Default() *Catalog {
	return NewCatalog(map[string][]string{
		"Pizza": {
			"Chicken Surprise",
			"Jamaican BBQ",
			"Chicago Bold Fold",
			"Pepperoni",
			"Margherita",
			"Veggie Delight",
			"Hot N Spicy",
			"Cheese Lover",
			"Peri Peri",
			"Behari Kebab",
		},
		"Sides": {
			"Garlic Bread",
			"Chicken Wings",
			"Fries",
		},
		"Drinks": {
			"Cola",
			"Lemonade",
		},
	}, []string{"Pizza", "Sides", "Drinks"})
}

// Categories returns the category names in insertion order.
func (c *Catalog) Categories() []string {
	return c.order
}

// Items returns the items of a category in menu order.
func (c *Catalog) Items(category string) []string {
	return c.categories[category]
}

// HasItem reports whether name (case-insensitive) is a menu item.
func (c *Catalog) HasItem(name string) bool {
	return c.items[strings.ToLower(name)]
}

// Flavors returns the lowercase flavor vocabulary derived from
// pizza-like categories, in menu order. Callers relying on match
// specificity get the menu's own ordering.
func (c *Catalog) Flavors() []string {
	return c.flavors
}

// Sizes returns the canonical size vocabulary.
func (c *Catalog) Sizes() []string {
	return canonicalSizes
}

// SizeAliases returns the typo/shorthand -> canonical size mapping.
func (c *Catalog) SizeAliases() map[string]string {
	return sizeTypoAliases
}

// SizeRequired reports whether items of the category need a size
// before they may enter a cart.
func (c *Catalog) SizeRequired(category string) bool {
	return isPizzaCategory(category)
}
