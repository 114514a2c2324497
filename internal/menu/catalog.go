package menu

import (
	"errors"
	"fmt"
	"sort"

	"brigade/internal/models"
)

// ErrDishNotFound is returned when a name is not on the menu.
var ErrDishNotFound = errors.New("dish not on the menu")

// Catalog resolves dish names to fresh dishes. Every lookup builds a new value
// so a dietary adjustment on one order never leaks into another.
type Catalog struct {
	specs map[string]models.DishSpec
}

// NewCatalog validates every spec and indexes it by name. Later specs replace
// earlier ones with the same name.
func NewCatalog(specs ...models.DishSpec) (*Catalog, error) {
	c := &Catalog{specs: make(map[string]models.DishSpec, len(specs))}
	for _, spec := range specs {
		if err := c.Add(spec); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add registers a spec after checking it builds.
func (c *Catalog) Add(spec models.DishSpec) error {
	if _, err := models.NewDish(spec); err != nil {
		return fmt.Errorf("invalid menu entry: %w", err)
	}
	c.specs[spec.Name] = spec
	return nil
}

// Spec returns the stored spec for name.
func (c *Catalog) Spec(name string) (models.DishSpec, bool) {
	spec, ok := c.specs[name]
	return spec, ok
}

// Dish builds a new dish for name.
func (c *Catalog) Dish(name string) (models.Dish, error) {
	spec, ok := c.specs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDishNotFound, name)
	}
	return models.NewDish(spec)
}

// Names lists the menu alphabetically.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.specs))
	for name := range c.specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Catalog) Len() int { return len(c.specs) }
