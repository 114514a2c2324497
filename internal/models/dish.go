package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDishType is returned when a spec names a course the kitchen does not serve.
var ErrUnknownDishType = errors.New("unknown dish type")

// DishType selects the concrete course built from a DishSpec
type DishType string

const (
	DishTypePlain      DishType = ""
	DishTypeAppetizer  DishType = "APPETIZER"
	DishTypeMainCourse DishType = "MAINCOURSE"
	DishTypeDessert    DishType = "DESSERT"
)

// CuisineType represents the cuisine a dish belongs to
type CuisineType string

const (
	CuisineItalian  CuisineType = "ITALIAN"
	CuisineMexican  CuisineType = "MEXICAN"
	CuisineChinese  CuisineType = "CHINESE"
	CuisineIndian   CuisineType = "INDIAN"
	CuisineAmerican CuisineType = "AMERICAN"
	CuisineFrench   CuisineType = "FRENCH"
	CuisineOther    CuisineType = "OTHER"
)

// ParseCuisine maps free text onto a known cuisine, defaulting to OTHER.
func ParseCuisine(s string) CuisineType {
	switch c := CuisineType(strings.ToUpper(strings.TrimSpace(s))); c {
	case CuisineItalian, CuisineMexican, CuisineChinese, CuisineIndian, CuisineAmerican, CuisineFrench:
		return c
	default:
		return CuisineOther
	}
}

// DietaryRequest lists the accommodations a guest asked for.
type DietaryRequest struct {
	Vegetarian bool `json:"vegetarian" yaml:"vegetarian"`
	Vegan      bool `json:"vegan" yaml:"vegan"`
	GlutenFree bool `json:"gluten_free" yaml:"gluten_free"`
	NutFree    bool `json:"nut_free" yaml:"nut_free"`
	LowSodium  bool `json:"low_sodium" yaml:"low_sodium"`
	LowSugar   bool `json:"low_sugar" yaml:"low_sugar"`
}

// IsEmpty reports whether no accommodation was requested.
func (r DietaryRequest) IsEmpty() bool {
	return r == DietaryRequest{}
}

// Dish is the orderable item the kitchen prepares. Concrete courses differ only
// in how they honour a DietaryRequest.
type Dish interface {
	Name() string
	Ingredients() []Ingredient
	ApplyDietaryRequest(req DietaryRequest)
	PrepTime() int
	Price() float64
	Cuisine() CuisineType
	Spec() DishSpec
}

// DishSpec is the serialisable description of a dish used by the menu loader,
// the HTTP API and the snapshot store.
type DishSpec struct {
	Type        DishType     `json:"type,omitempty" yaml:"type,omitempty"`
	Name        string       `json:"name" yaml:"name"`
	Ingredients []Ingredient `json:"ingredients" yaml:"ingredients"`
	PrepTime    int          `json:"prep_time,omitempty" yaml:"prep_time,omitempty"`
	Price       float64      `json:"price,omitempty" yaml:"price,omitempty"`
	Cuisine     CuisineType  `json:"cuisine,omitempty" yaml:"cuisine,omitempty"`

	ServingStyle   ServingStyle `json:"serving_style,omitempty" yaml:"serving_style,omitempty"`
	SpicinessLevel int          `json:"spiciness_level,omitempty" yaml:"spiciness_level,omitempty"`
	Vegetarian     bool         `json:"vegetarian,omitempty" yaml:"vegetarian,omitempty"`

	CookingMethod CookingMethod `json:"cooking_method,omitempty" yaml:"cooking_method,omitempty"`
	ProteinType   string        `json:"protein_type,omitempty" yaml:"protein_type,omitempty"`
	SideDishes    []SideDish    `json:"side_dishes,omitempty" yaml:"side_dishes,omitempty"`
	GlutenFree    bool          `json:"gluten_free,omitempty" yaml:"gluten_free,omitempty"`

	FlavorProfile  FlavorProfile `json:"flavor_profile,omitempty" yaml:"flavor_profile,omitempty"`
	SweetnessLevel int           `json:"sweetness_level,omitempty" yaml:"sweetness_level,omitempty"`
	ContainsNuts   bool          `json:"contains_nuts,omitempty" yaml:"contains_nuts,omitempty"`
}

// NewDish builds the concrete course described by spec.
func NewDish(spec DishSpec) (Dish, error) {
	if strings.TrimSpace(spec.Name) == "" {
		return nil, fmt.Errorf("dish name is required")
	}
	for _, ing := range spec.Ingredients {
		if err := ValidateIngredient(ing); err != nil {
			return nil, fmt.Errorf("dish %s: %w", spec.Name, err)
		}
	}

	base := BaseDish{
		name:        spec.Name,
		ingredients: cloneIngredients(spec.Ingredients),
		prepTime:    spec.PrepTime,
		price:       spec.Price,
		cuisine:     spec.Cuisine,
	}
	if base.cuisine == "" {
		base.cuisine = CuisineOther
	}

	switch DishType(strings.ToUpper(string(spec.Type))) {
	case DishTypePlain:
		return &base, nil
	case DishTypeAppetizer:
		return &Appetizer{
			BaseDish:       base,
			ServingStyle:   spec.ServingStyle,
			SpicinessLevel: spec.SpicinessLevel,
			Vegetarian:     spec.Vegetarian,
		}, nil
	case DishTypeMainCourse:
		sides := make([]SideDish, len(spec.SideDishes))
		copy(sides, spec.SideDishes)
		return &MainCourse{
			BaseDish:      base,
			CookingMethod: spec.CookingMethod,
			ProteinType:   spec.ProteinType,
			SideDishes:    sides,
			GlutenFree:    spec.GlutenFree,
		}, nil
	case DishTypeDessert:
		return &Dessert{
			BaseDish:       base,
			FlavorProfile:  spec.FlavorProfile,
			SweetnessLevel: spec.SweetnessLevel,
			ContainsNuts:   spec.ContainsNuts,
		}, nil
	default:
		return nil, fmt.Errorf("dish %s: %w: %q", spec.Name, ErrUnknownDishType, spec.Type)
	}
}

// BaseDish carries the attributes every course shares. On its own it is a
// plain dish that ignores dietary requests.
type BaseDish struct {
	name        string
	ingredients []Ingredient
	prepTime    int
	price       float64
	cuisine     CuisineType
}

func (d *BaseDish) Name() string { return d.name }

// Ingredients returns a copy of the recipe in declaration order.
func (d *BaseDish) Ingredients() []Ingredient { return cloneIngredients(d.ingredients) }

func (d *BaseDish) PrepTime() int        { return d.prepTime }
func (d *BaseDish) Price() float64       { return d.price }
func (d *BaseDish) Cuisine() CuisineType { return d.cuisine }

func (d *BaseDish) ApplyDietaryRequest(DietaryRequest) {}

func (d *BaseDish) Spec() DishSpec {
	return DishSpec{
		Type:        DishTypePlain,
		Name:        d.name,
		Ingredients: cloneIngredients(d.ingredients),
		PrepTime:    d.prepTime,
		Price:       d.price,
		Cuisine:     d.cuisine,
	}
}

var (
	meatIngredients = map[string]bool{
		"Meat": true, "Chicken": true, "Fish": true, "Beef": true,
		"Pork": true, "Lamb": true, "Shrimp": true, "Bacon": true,
	}
	animalProducts = map[string]bool{
		"Milk": true, "Eggs": true, "Cheese": true,
		"Butter": true, "Cream": true, "Yogurt": true,
	}
	glutenIngredients = map[string]bool{
		"Wheat": true, "Flour": true, "Bread": true, "Pasta": true,
		"Barley": true, "Rye": true, "Oats": true, "Crust": true,
	}
	nutIngredients = map[string]bool{
		"Almonds": true, "Walnuts": true, "Pecans": true, "Hazelnuts": true,
		"Peanuts": true, "Cashews": true, "Pistachios": true,
	}
)

// replaceMeat swaps the first meat for Beans, the second for Mushrooms and
// drops any further meat.
func replaceMeat(ingredients []Ingredient) []Ingredient {
	substitutes := []string{"Beans", "Mushrooms"}
	out := make([]Ingredient, 0, len(ingredients))
	for _, ing := range ingredients {
		if !meatIngredients[ing.Name] {
			out = append(out, ing)
			continue
		}
		if len(substitutes) == 0 {
			continue
		}
		ing.Name = substitutes[0]
		substitutes = substitutes[1:]
		out = append(out, ing)
	}
	return out
}

// without drops every ingredient whose name is in the set.
func without(ingredients []Ingredient, set map[string]bool) []Ingredient {
	out := make([]Ingredient, 0, len(ingredients))
	for _, ing := range ingredients {
		if !set[ing.Name] {
			out = append(out, ing)
		}
	}
	return out
}
