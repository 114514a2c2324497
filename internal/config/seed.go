package config

import (
	"fmt"

	"brigade/internal/kitchen"
	"brigade/internal/menu"
)

// Catalog collects the dishes the kitchen can serve: the menu file first, then
// any dishes declared inline under kitchen.menu.
func (c *Config) Catalog() (*menu.Catalog, error) {
	catalog, err := menu.NewCatalog()
	if err != nil {
		return nil, err
	}
	if c.MenuFile != "" {
		specs, err := menu.LoadFile(c.MenuFile)
		if err != nil {
			return nil, err
		}
		for _, spec := range specs {
			if err := catalog.Add(spec); err != nil {
				return nil, err
			}
		}
	}
	for _, spec := range c.Kitchen.Menu {
		if err := catalog.Add(spec); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// BuildKitchen creates a station manager holding the configured stations,
// their dishes and stock, and the backup inventory.
func (c *Config) BuildKitchen(catalog *menu.Catalog) (*kitchen.StationManager, error) {
	manager := kitchen.NewStationManager()

	for _, sc := range c.Kitchen.Stations {
		station := kitchen.NewStation(sc.Name)
		for _, name := range sc.Dishes {
			dish, err := catalog.Dish(name)
			if err != nil {
				return nil, fmt.Errorf("station %s: %w", sc.Name, err)
			}
			station.AssignDish(dish)
		}
		for _, ing := range sc.Ingredients {
			station.Replenish(ing)
		}
		if !manager.AddStation(station) {
			return nil, fmt.Errorf("duplicate station %q", sc.Name)
		}
	}

	manager.AddBackupIngredients(c.Kitchen.Backup)
	return manager, nil
}
