package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Catalog is the immutable, ordered mapping from category name to cards.
// When an aggregate name is set, the aggregate category comes first and
// holds the concatenation of every other category in declaration order.
type Catalog struct {
	categories []Category
	index      map[string]int
	cards      map[string]Card
	aggregate  string
}

// NewCatalog validates the categories and builds a Catalog.
// The input slices are copied; later changes by the caller are not visible.
func NewCatalog(aggregate string, categories []Category) (*Catalog, error) {
	aggregate = strings.TrimSpace(aggregate)

	if len(categories) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		index:     make(map[string]int, len(categories)+1),
		cards:     make(map[string]Card),
		aggregate: aggregate,
	}

	var all []Card
	own := make([]Category, 0, len(categories))
	for _, cat := range categories {
		name := strings.TrimSpace(cat.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: category name is empty", ErrInvalidCatalog)
		}
		if name == aggregate {
			return nil, fmt.Errorf("%w: %q is reserved for the aggregate view", ErrDuplicateCategory, name)
		}
		if _, ok := c.index[name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCategory, name)
		}

		for _, card := range cat.Cards {
			if err := validateCard(card); err != nil {
				return nil, fmt.Errorf("category %q: %w", name, err)
			}
			if _, ok := c.cards[card.ID]; ok {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateCard, card.ID)
			}
			c.cards[card.ID] = card
		}

		c.index[name] = -1
		own = append(own, Category{Name: name, Cards: slices.Clone(cat.Cards)})
		all = append(all, cat.Cards...)
	}

	if aggregate != "" {
		c.categories = append(c.categories, Category{Name: aggregate, Cards: all})
	}
	c.categories = append(c.categories, own...)
	for i, cat := range c.categories {
		c.index[cat.Name] = i
	}

	return c, nil
}

func validateCard(card Card) error {
	if strings.TrimSpace(card.ID) == "" {
		return fmt.Errorf("%w: card %q has no id", ErrInvalidCard, card.Title)
	}
	if strings.TrimSpace(card.Title) == "" {
		return fmt.Errorf("%w: card %q has no title", ErrInvalidCard, card.ID)
	}
	return nil
}

// Names returns category names in display order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.categories))
	for i, cat := range c.categories {
		names[i] = cat.Name
	}
	return names
}

// First returns the name of the first category, the initial tab.
func (c *Catalog) First() string {
	return c.categories[0].Name
}

// Aggregate returns the aggregate category name, or "" when none is declared.
func (c *Catalog) Aggregate() string {
	return c.aggregate
}

// Has reports whether name is a category key.
func (c *Catalog) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Len returns the number of categories, aggregate included.
func (c *Catalog) Len() int {
	return len(c.categories)
}

// Cards returns a copy of the ordered cards for a category.
func (c *Catalog) Cards(name string) ([]Card, error) {
	i, ok := c.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrCategoryNotFound, name)
	}
	return slices.Clone(c.categories[i].Cards), nil
}

// Card looks up a card by ID.
func (c *Catalog) Card(id string) (Card, error) {
	card, ok := c.cards[id]
	if !ok {
		return Card{}, fmt.Errorf("%w: %q", ErrCardNotFound, id)
	}
	return card, nil
}

// Each calls fn for every card of every non-aggregate category, in order.
func (c *Catalog) Each(fn func(category string, card Card)) {
	for _, cat := range c.categories {
		if cat.Name == c.aggregate {
			continue
		}
		for _, card := range cat.Cards {
			fn(cat.Name, card)
		}
	}
}
