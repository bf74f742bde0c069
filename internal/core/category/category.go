// Package category assigns grocery categories to ingredient text using a
// dictionary of known ingredient names.
package category

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category is a grocery aisle. The numeric values are the indices used by
// the dictionary file.
type Category int

const (
	Produce Category = iota
	Meat
	Poultry
	Seafood
	Egg
	Cheese
	Dairy
	Grain
	Pasta
	Legume
	Nut
	Spice
	Condiment
	Oil
	Vinegar
	Flour
	Sugar
	Leavening
	Alcohol
	Pop
	Juice
	Beverage
	Unknown
)

var names = [...]string{
	Produce:   "produce",
	Meat:      "meat",
	Poultry:   "poultry",
	Seafood:   "seafood",
	Egg:       "egg",
	Cheese:    "cheese",
	Dairy:     "dairy",
	Grain:     "grain",
	Pasta:     "pasta",
	Legume:    "legume",
	Nut:       "nut",
	Spice:     "spice",
	Condiment: "condiment",
	Oil:       "oil",
	Vinegar:   "vinegar",
	Flour:     "flour",
	Sugar:     "sugar",
	Leavening: "leavening",
	Alcohol:   "alcohol",
	Pop:       "pop",
	Juice:     "juice",
	Beverage:  "beverage",
	Unknown:   "unknown",
}

// All returns every category in index order, Unknown last.
func All() []Category {
	out := make([]Category, 0, len(names))
	for i := range names {
		out = append(out, Category(i))
	}
	return out
}

// Valid reports whether c is one of the defined categories.
func (c Category) Valid() bool {
	return c >= Produce && c <= Unknown
}

func (c Category) String() string {
	if !c.Valid() {
		return names[Unknown]
	}
	return names[c]
}

// Parse maps a category name back to its value.
func Parse(name string) (Category, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range names {
		if n == name {
			return Category(i), nil
		}
	}
	return Unknown, fmt.Errorf("unknown category %q", name)
}

func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := Parse(name)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
