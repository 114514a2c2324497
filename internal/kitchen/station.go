package kitchen

import "brigade/internal/models"

// Orderable is what the pipeline needs from a dish. The concrete course type
// never matters here.
type Orderable interface {
	Name() string
	Ingredients() []models.Ingredient
	ApplyDietaryRequest(req models.DietaryRequest)
}

// Station is a kitchen station: the dishes it knows how to make and the stock
// it owns.
type Station struct {
	name   string
	dishes []Orderable
	ledger *Ledger
}

// NewStation creates an empty station.
func NewStation(name string) *Station {
	return &Station{name: name, ledger: NewLedger()}
}

func (s *Station) Name() string { return s.name }

// Dishes returns the assigned dishes in assignment order.
func (s *Station) Dishes() []Orderable {
	out := make([]Orderable, len(s.dishes))
	copy(out, s.dishes)
	return out
}

// Ingredients returns the station's stock.
func (s *Station) Ingredients() []models.Ingredient {
	return s.ledger.Ingredients()
}

// Quantity returns how much of an ingredient is on hand.
func (s *Station) Quantity(ingredient string) int {
	return s.ledger.Quantity(ingredient)
}

// AssignDish adds a dish to the station's repertoire. A nil dish or a name the
// station already makes is rejected.
func (s *Station) AssignDish(dish Orderable) bool {
	if dish == nil || s.HasDish(dish.Name()) {
		return false
	}
	s.dishes = append(s.dishes, dish)
	return true
}

// HasDish reports whether a dish with that name is assigned.
func (s *Station) HasDish(name string) bool {
	return s.dish(name) != nil
}

func (s *Station) dish(name string) Orderable {
	for _, d := range s.dishes {
		if d.Name() == name {
			return d
		}
	}
	return nil
}

// Replenish adds stock to the station's ledger.
func (s *Station) Replenish(ing models.Ingredient) {
	s.ledger.Replenish(ing)
}

// RemoveIngredient drops an ingredient from the station's stock.
func (s *Station) RemoveIngredient(name string) bool {
	return s.ledger.Remove(name)
}

// CanCompleteOrder is true when the dish is assigned here and the ledger
// covers its recipe. It never changes stock.
func (s *Station) CanCompleteOrder(name string) bool {
	d := s.dish(name)
	return d != nil && s.ledger.CanSupply(d)
}

// PrepareDish consumes one preparation of the dish. Nothing changes when the
// order cannot be completed.
func (s *Station) PrepareDish(name string) bool {
	if !s.CanCompleteOrder(name) {
		return false
	}
	return s.ledger.Consume(s.dish(name))
}

// clone returns a detached copy. Dishes are shared; they are never mutated
// once assigned.
func (s *Station) clone() *Station {
	c := &Station{name: s.name, ledger: s.ledger.clone()}
	c.dishes = make([]Orderable, len(s.dishes))
	copy(c.dishes, s.dishes)
	return c
}

// absorb moves every dish and ingredient of other into s. Dishes already
// assigned here are skipped.
func (s *Station) absorb(other *Station) {
	for _, d := range other.dishes {
		s.AssignDish(d)
	}
	for _, ing := range other.ledger.Ingredients() {
		s.ledger.Replenish(ing)
	}
}
