package kitchen

import "brigade/internal/models"

// Ledger is a name-keyed ingredient stock. It backs both a station's on-hand
// inventory and the manager's backup store. Entries never hold a zero
// quantity and a name appears at most once.
type Ledger struct {
	entries map[string]models.Ingredient
	order   []string
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{entries: make(map[string]models.Ingredient)}
}

// Replenish adds ing.Quantity to an existing entry of the same name or appends
// a new entry. Non-positive quantities are ignored. An existing entry keeps its
// unit price.
func (l *Ledger) Replenish(ing models.Ingredient) {
	if ing.Name == "" || ing.Quantity <= 0 {
		return
	}
	if cur, ok := l.entries[ing.Name]; ok {
		cur.Quantity += ing.Quantity
		l.entries[ing.Name] = cur
		return
	}
	l.entries[ing.Name] = models.Ingredient{
		Name:      ing.Name,
		Quantity:  ing.Quantity,
		UnitPrice: ing.UnitPrice,
	}
	l.order = append(l.order, ing.Name)
}

// Quantity returns the on-hand amount, zero when the ingredient is absent.
func (l *Ledger) Quantity(name string) int {
	return l.entries[name].Quantity
}

// Has reports whether an entry for name exists.
func (l *Ledger) Has(name string) bool {
	_, ok := l.entries[name]
	return ok
}

// Len returns the number of distinct ingredients held.
func (l *Ledger) Len() int { return len(l.order) }

// Ingredients returns the entries in the order they were first stocked.
func (l *Ledger) Ingredients() []models.Ingredient {
	out := make([]models.Ingredient, 0, len(l.order))
	for _, name := range l.order {
		out = append(out, l.entries[name])
	}
	return out
}

// Remove deletes an entry outright.
func (l *Ledger) Remove(name string) bool {
	if _, ok := l.entries[name]; !ok {
		return false
	}
	delete(l.entries, name)
	for i, n := range l.order {
		if n == name {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return true
}

func (l *Ledger) clone() *Ledger {
	c := &Ledger{
		entries: make(map[string]models.Ingredient, len(l.entries)),
		order:   make([]string, len(l.order)),
	}
	copy(c.order, l.order)
	for name, ing := range l.entries {
		c.entries[name] = ing
	}
	return c
}

// Clear empties the ledger.
func (l *Ledger) Clear() {
	l.entries = make(map[string]models.Ingredient)
	l.order = nil
}

// CanSupply reports whether every requirement of the dish is covered. It stops
// at the first shortfall and never mutates the ledger.
func (l *Ledger) CanSupply(dish Orderable) bool {
	if dish == nil {
		return false
	}
	for _, req := range requirements(dish) {
		cur, ok := l.entries[req.Name]
		if !ok || cur.Quantity < req.RequiredQuantity {
			return false
		}
	}
	return true
}

// Consume deducts one preparation of the dish. It is all-or-nothing: when the
// ledger cannot supply the dish nothing changes and false is returned.
func (l *Ledger) Consume(dish Orderable) bool {
	if !l.CanSupply(dish) {
		return false
	}
	for _, req := range requirements(dish) {
		l.take(req.Name, req.RequiredQuantity)
	}
	return true
}

// Withdraw removes exactly quantity units of an ingredient and returns them as
// a stock record carrying the entry's unit price. It fails without side
// effects when the entry is missing or short.
func (l *Ledger) Withdraw(name string, quantity int) (models.Ingredient, bool) {
	if quantity <= 0 {
		return models.Ingredient{}, false
	}
	cur, ok := l.entries[name]
	if !ok || cur.Quantity < quantity {
		return models.Ingredient{}, false
	}
	l.take(name, quantity)
	return models.NewStock(name, quantity, cur.UnitPrice), true
}

// take decrements an entry the caller already checked, pruning it at zero.
func (l *Ledger) take(name string, quantity int) {
	cur := l.entries[name]
	cur.Quantity -= quantity
	if cur.Quantity == 0 {
		l.Remove(name)
		return
	}
	l.entries[name] = cur
}

// requirements folds a recipe into one requirement per ingredient name, in
// first-seen order, so repeated lines are checked and consumed as a total.
func requirements(dish Orderable) []models.Ingredient {
	ingredients := dish.Ingredients()
	out := make([]models.Ingredient, 0, len(ingredients))
	index := make(map[string]int, len(ingredients))
	for _, ing := range ingredients {
		if i, ok := index[ing.Name]; ok {
			out[i].RequiredQuantity += ing.RequiredQuantity
			continue
		}
		index[ing.Name] = len(out)
		out = append(out, models.NewRequirement(ing.Name, ing.RequiredQuantity))
	}
	return out
}
