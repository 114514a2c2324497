package menu

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"brigade/internal/models"
)

// ErrMalformedRow wraps every parse failure so callers can tell bad input from
// I/O errors.
var ErrMalformedRow = errors.New("malformed menu row")

// LoadFile reads a menu file from disk.
func LoadFile(path string) ([]models.DishSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open menu file: %w", err)
	}
	defer f.Close()

	specs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu %s: %w", path, err)
	}
	return specs, nil
}

// Parse reads dish specs from CSV. The first record is the header and is
// skipped. Blank lines are ignored.
func Parse(r io.Reader) ([]models.DishSpec, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var specs []models.DishSpec
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read menu: %w", err)
		}
		line, _ := cr.FieldPos(0)

		spec, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %v", line, ErrMalformedRow, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func parseRecord(record []string) (models.DishSpec, error) {
	if len(record) < 6 {
		return models.DishSpec{}, fmt.Errorf("expected at least 6 fields, got %d", len(record))
	}
	field := func(i int) string {
		if i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	spec := models.DishSpec{
		Type:    models.DishType(strings.ToUpper(field(0))),
		Name:    field(1),
		Cuisine: models.ParseCuisine(field(5)),
	}
	if spec.Name == "" {
		return spec, fmt.Errorf("dish name is required")
	}

	ingredients, err := parseIngredients(field(2))
	if err != nil {
		return spec, err
	}
	spec.Ingredients = ingredients

	if spec.PrepTime, err = atoi(field(3)); err != nil {
		return spec, fmt.Errorf("prep_time: %w", err)
	}
	if s := field(4); s != "" {
		if spec.Price, err = strconv.ParseFloat(s, 64); err != nil {
			return spec, fmt.Errorf("price: %w", err)
		}
	}

	details := splitList(field(6), ";")
	part := func(i int) string {
		if i < len(details) {
			return details[i]
		}
		return ""
	}

	switch spec.Type {
	case models.DishTypeAppetizer:
		spec.ServingStyle = models.ParseServingStyle(part(0))
		if spec.SpicinessLevel, err = atoi(part(1)); err != nil {
			return spec, fmt.Errorf("spiciness: %w", err)
		}
		if spec.Vegetarian, err = parseBool(part(2)); err != nil {
			return spec, fmt.Errorf("vegetarian: %w", err)
		}
	case models.DishTypeMainCourse:
		spec.CookingMethod = models.ParseCookingMethod(part(0))
		spec.ProteinType = part(1)
		spec.SideDishes = parseSides(part(2))
		if spec.GlutenFree, err = parseBool(part(3)); err != nil {
			return spec, fmt.Errorf("gluten_free: %w", err)
		}
	case models.DishTypeDessert:
		spec.FlavorProfile = models.ParseFlavorProfile(part(0))
		if spec.SweetnessLevel, err = atoi(part(1)); err != nil {
			return spec, fmt.Errorf("sweetness: %w", err)
		}
		if spec.ContainsNuts, err = parseBool(part(2)); err != nil {
			return spec, fmt.Errorf("contains_nuts: %w", err)
		}
	case models.DishTypePlain:
	default:
		return spec, fmt.Errorf("%w: %q", models.ErrUnknownDishType, spec.Type)
	}
	return spec, nil
}

// parseIngredients reads "Name:required[:price]" entries separated by ';'.
func parseIngredients(s string) ([]models.Ingredient, error) {
	var out []models.Ingredient
	for _, entry := range splitList(s, ";") {
		parts := strings.Split(entry, ":")
		if len(parts) > 3 {
			return nil, fmt.Errorf("ingredient %q: too many fields", entry)
		}
		ing := models.Ingredient{Name: strings.TrimSpace(parts[0])}
		if len(parts) > 1 {
			n, err := atoi(parts[1])
			if err != nil {
				return nil, fmt.Errorf("ingredient %q: %w", entry, err)
			}
			ing.RequiredQuantity = n
		}
		if len(parts) > 2 {
			p, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
			if err != nil {
				return nil, fmt.Errorf("ingredient %q: %w", entry, err)
			}
			ing.UnitPrice = p
		}
		if err := models.ValidateIngredient(ing); err != nil {
			return nil, err
		}
		out = append(out, ing)
	}
	return out, nil
}

// parseSides reads "Name:CATEGORY" entries separated by '|'.
func parseSides(s string) []models.SideDish {
	var sides []models.SideDish
	for _, entry := range splitList(s, "|") {
		name, category, _ := strings.Cut(entry, ":")
		sides = append(sides, models.SideDish{
			Name:     strings.TrimSpace(name),
			Category: models.ParseSideCategory(category),
		})
	}
	return sides
}

func splitList(s, sep string) []string {
	var out []string
	for _, item := range strings.Split(s, sep) {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func atoi(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func parseBool(s string) (bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}
