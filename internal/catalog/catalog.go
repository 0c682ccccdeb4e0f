package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidEntry marks catalog rows that cannot be priced.
var ErrInvalidEntry = errors.New("catalog: invalid entry")

// Entry is a priced furniture category.
type Entry struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// Catalog holds the furniture table together with the keyword rules, purchase
// links and room priorities that refer to it. It is never mutated after New.
type Catalog struct {
	entries []Entry
	byKey   map[string]Entry
}

// New validates entries and builds an immutable catalog.
func New(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		byKey:   make(map[string]Entry, len(entries)),
	}
	for _, e := range entries {
		e.Key = strings.ToLower(strings.TrimSpace(e.Key))
		e.Name = strings.TrimSpace(e.Name)
		if e.Key == "" || e.Name == "" {
			return nil, fmt.Errorf("%w: key and name are required (%q)", ErrInvalidEntry, e.Key)
		}
		if e.Price <= 0 {
			return nil, fmt.Errorf("%w: %s has non-positive price %d", ErrInvalidEntry, e.Key, e.Price)
		}
		if _, dup := c.byKey[e.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %s", ErrInvalidEntry, e.Key)
		}
		c.entries = append(c.entries, e)
		c.byKey[e.Key] = e
	}
	return c, nil
}

// Default returns the built-in rupee price table.
func Default() *Catalog {
	c, err := New(defaultEntries)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the entry for key.
func (c *Catalog) Lookup(key string) (Entry, bool) {
	e, ok := c.byKey[key]
	return e, ok
}

// Entries returns a copy of all entries in table order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len reports the number of priced categories.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Rules returns the keyword rules in matching order.
func (c *Catalog) Rules() []KeywordRule {
	out := make([]KeywordRule, len(keywordRules))
	for i, r := range keywordRules {
		out[i] = KeywordRule{Key: r.Key, Phrases: append([]string(nil), r.Phrases...)}
	}
	return out
}

var defaultEntries = []Entry{
	{Key: "sofa", Name: "Modern Sofa", Price: 107800},
	{Key: "armchair", Name: "Armchair", Price: 41400},
	{Key: "coffee_table", Name: "Coffee Table", Price: 29000},
	{Key: "side_table", Name: "Side Table", Price: 16500},
	{Key: "floor_lamp", Name: "Floor Lamp", Price: 19000},
	{Key: "table_lamp", Name: "Table Lamp", Price: 7400},
	{Key: "bed", Name: "Bed", Price: 157600},
	{Key: "nightstand", Name: "Nightstand", Price: 24800},
	{Key: "bookshelf", Name: "Bookshelf", Price: 37300},
	{Key: "tv_stand", Name: "TV Stand", Price: 33100},
	{Key: "plant", Name: "Decorative Plant", Price: 6600},
	{Key: "artificial_plant", Name: "Artificial Plant", Price: 4500},
	{Key: "wall_art", Name: "Wall Art", Price: 13200},
	{Key: "rug", Name: "Area Rug", Price: 24800},
	{Key: "dining_table", Name: "Dining Table", Price: 74600},
	{Key: "dining_chair", Name: "Dining Chair (set of 4)", Price: 59400},
	{Key: "desk", Name: "Office Desk", Price: 49700},
	{Key: "office_chair", Name: "Office Chair", Price: 33100},
	{Key: "curtains", Name: "Window Curtains", Price: 10700},
	{Key: "bathtub", Name: "Bathtub", Price: 65000},
	{Key: "shower", Name: "Shower", Price: 45000},
	{Key: "sink", Name: "Sink", Price: 18000},
	{Key: "mirror", Name: "Mirror", Price: 8500},
	{Key: "gas_stove", Name: "Gas Stove", Price: 42000},
	{Key: "kitchen_cabinet", Name: "Kitchen Cabinet Set", Price: 58000},
	{Key: "refrigerator", Name: "Refrigerator", Price: 72000},
	{Key: "dishwasher", Name: "Dishwasher", Price: 48000},
	{Key: "microwave", Name: "Microwave Oven", Price: 22000},
}
