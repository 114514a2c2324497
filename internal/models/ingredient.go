package models

import "fmt"

// Ingredient is a single named stock line. Inside a recipe RequiredQuantity is
// the amount consumed per preparation; inside a ledger Quantity is the amount
// on hand.
type Ingredient struct {
	Name             string  `json:"name" yaml:"name"`
	Quantity         int     `json:"quantity" yaml:"quantity"`
	RequiredQuantity int     `json:"required_quantity" yaml:"required_quantity"`
	UnitPrice        float64 `json:"unit_price" yaml:"unit_price"`
}

// NewStock builds an on-hand ingredient record.
func NewStock(name string, quantity int, unitPrice float64) Ingredient {
	return Ingredient{Name: name, Quantity: quantity, UnitPrice: unitPrice}
}

// NewRequirement builds a recipe requirement.
func NewRequirement(name string, required int) Ingredient {
	return Ingredient{Name: name, RequiredQuantity: required}
}

// ValidateIngredient rejects records that could never be held by a ledger.
func ValidateIngredient(ing Ingredient) error {
	if ing.Name == "" {
		return fmt.Errorf("ingredient name is required")
	}
	if ing.Quantity < 0 {
		return fmt.Errorf("ingredient %s: quantity must not be negative", ing.Name)
	}
	if ing.RequiredQuantity < 0 {
		return fmt.Errorf("ingredient %s: required quantity must not be negative", ing.Name)
	}
	if ing.UnitPrice < 0 {
		return fmt.Errorf("ingredient %s: unit price must not be negative", ing.Name)
	}
	return nil
}

// String renders the record the way the kitchen report prints stock.
func (i Ingredient) String() string {
	if i.RequiredQuantity > 0 && i.Quantity == 0 {
		return fmt.Sprintf("%s (needs %d)", i.Name, i.RequiredQuantity)
	}
	return fmt.Sprintf("%s x%d @ %.2f", i.Name, i.Quantity, i.UnitPrice)
}

// cloneIngredients copies a slice so callers never alias a dish's recipe.
func cloneIngredients(src []Ingredient) []Ingredient {
	if src == nil {
		return nil
	}
	out := make([]Ingredient, len(src))
	copy(out, src)
	return out
}
