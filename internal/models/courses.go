package models

import "strings"

// ServingStyle represents how an appetizer reaches the table
type ServingStyle string

const (
	ServingPlated      ServingStyle = "PLATED"
	ServingFamilyStyle ServingStyle = "FAMILY_STYLE"
	ServingBuffet      ServingStyle = "BUFFET"
)

// CookingMethod represents how a main course is cooked
type CookingMethod string

const (
	CookingGrilled CookingMethod = "GRILLED"
	CookingBaked   CookingMethod = "BAKED"
	CookingBoiled  CookingMethod = "BOILED"
	CookingFried   CookingMethod = "FRIED"
	CookingSteamed CookingMethod = "STEAMED"
	CookingRaw     CookingMethod = "RAW"
)

// SideCategory classifies a main course side
type SideCategory string

const (
	SideGrain     SideCategory = "GRAIN"
	SidePasta     SideCategory = "PASTA"
	SideLegume    SideCategory = "LEGUME"
	SideBread     SideCategory = "BREAD"
	SideSalad     SideCategory = "SALAD"
	SideSoup      SideCategory = "SOUP"
	SideStarches  SideCategory = "STARCHES"
	SideVegetable SideCategory = "VEGETABLE"
)

// FlavorProfile represents the dominant taste of a dessert
type FlavorProfile string

const (
	FlavorSweet  FlavorProfile = "SWEET"
	FlavorBitter FlavorProfile = "BITTER"
	FlavorSour   FlavorProfile = "SOUR"
	FlavorSalty  FlavorProfile = "SALTY"
	FlavorUmami  FlavorProfile = "UMAMI"
)

// ParseServingStyle defaults to BUFFET like the menu files expect.
func ParseServingStyle(s string) ServingStyle {
	switch v := ServingStyle(strings.ToUpper(strings.TrimSpace(s))); v {
	case ServingPlated, ServingFamilyStyle:
		return v
	default:
		return ServingBuffet
	}
}

// ParseCookingMethod defaults to RAW.
func ParseCookingMethod(s string) CookingMethod {
	switch v := CookingMethod(strings.ToUpper(strings.TrimSpace(s))); v {
	case CookingGrilled, CookingBaked, CookingBoiled, CookingFried, CookingSteamed:
		return v
	default:
		return CookingRaw
	}
}

// ParseSideCategory defaults to VEGETABLE.
func ParseSideCategory(s string) SideCategory {
	switch v := SideCategory(strings.ToUpper(strings.TrimSpace(s))); v {
	case SideGrain, SidePasta, SideLegume, SideBread, SideSalad, SideSoup, SideStarches:
		return v
	default:
		return SideVegetable
	}
}

// ParseFlavorProfile defaults to UMAMI.
func ParseFlavorProfile(s string) FlavorProfile {
	switch v := FlavorProfile(strings.ToUpper(strings.TrimSpace(s))); v {
	case FlavorSweet, FlavorBitter, FlavorSour, FlavorSalty:
		return v
	default:
		return FlavorUmami
	}
}

// SideDish is served alongside a main course
type SideDish struct {
	Name     string       `json:"name" yaml:"name"`
	Category SideCategory `json:"category" yaml:"category"`
}

// Appetizer is a starter course
type Appetizer struct {
	BaseDish
	ServingStyle   ServingStyle
	SpicinessLevel int
	Vegetarian     bool
}

func (a *Appetizer) ApplyDietaryRequest(req DietaryRequest) {
	if req.Vegetarian {
		a.Vegetarian = true
		a.ingredients = replaceMeat(a.ingredients)
	}
	if req.LowSodium {
		a.SpicinessLevel = max(a.SpicinessLevel-2, 0)
	}
	if req.GlutenFree {
		a.ingredients = without(a.ingredients, glutenIngredients)
	}
}

func (a *Appetizer) Spec() DishSpec {
	spec := a.BaseDish.Spec()
	spec.Type = DishTypeAppetizer
	spec.ServingStyle = a.ServingStyle
	spec.SpicinessLevel = a.SpicinessLevel
	spec.Vegetarian = a.Vegetarian
	return spec
}

// MainCourse is the centre of the meal
type MainCourse struct {
	BaseDish
	CookingMethod CookingMethod
	ProteinType   string
	SideDishes    []SideDish
	GlutenFree    bool
}

func (m *MainCourse) ApplyDietaryRequest(req DietaryRequest) {
	if req.Vegetarian {
		m.ProteinType = "Tofu"
		m.ingredients = replaceMeat(m.ingredients)
	}
	if req.Vegan {
		m.ProteinType = "Tofu"
		m.ingredients = without(m.ingredients, animalProducts)
	}
	if req.GlutenFree {
		m.GlutenFree = true
		sides := m.SideDishes[:0]
		for _, side := range m.SideDishes {
			switch side.Category {
			case SideGrain, SidePasta, SideBread, SideStarches:
				continue
			}
			sides = append(sides, side)
		}
		m.SideDishes = sides
	}
}

func (m *MainCourse) Spec() DishSpec {
	spec := m.BaseDish.Spec()
	spec.Type = DishTypeMainCourse
	spec.CookingMethod = m.CookingMethod
	spec.ProteinType = m.ProteinType
	spec.SideDishes = append([]SideDish(nil), m.SideDishes...)
	spec.GlutenFree = m.GlutenFree
	return spec
}

// Dessert closes the meal
type Dessert struct {
	BaseDish
	FlavorProfile  FlavorProfile
	SweetnessLevel int
	ContainsNuts   bool
}

func (d *Dessert) ApplyDietaryRequest(req DietaryRequest) {
	if req.NutFree {
		d.ContainsNuts = false
		d.ingredients = without(d.ingredients, nutIngredients)
	}
	if req.LowSugar {
		d.SweetnessLevel = max(d.SweetnessLevel-3, 0)
	}
	if req.Vegan {
		d.ingredients = without(d.ingredients, animalProducts)
	}
}

func (d *Dessert) Spec() DishSpec {
	spec := d.BaseDish.Spec()
	spec.Type = DishTypeDessert
	spec.FlavorProfile = d.FlavorProfile
	spec.SweetnessLevel = d.SweetnessLevel
	spec.ContainsNuts = d.ContainsNuts
	return spec
}
