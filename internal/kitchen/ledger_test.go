package kitchen

import (
	"testing"

	"brigade/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recipe is a minimal orderable used across the package tests.
type recipe struct {
	name        string
	ingredients []models.Ingredient
	adjusted    []models.DietaryRequest
}

func (r *recipe) Name() string { return r.name }

func (r *recipe) Ingredients() []models.Ingredient {
	out := make([]models.Ingredient, len(r.ingredients))
	copy(out, r.ingredients)
	return out
}

func (r *recipe) ApplyDietaryRequest(req models.DietaryRequest) {
	r.adjusted = append(r.adjusted, req)
}

func dish(name string, reqs ...models.Ingredient) *recipe {
	return &recipe{name: name, ingredients: reqs}
}

func need(name string, qty int) models.Ingredient { return models.NewRequirement(name, qty) }

func stock(name string, qty int) models.Ingredient { return models.NewStock(name, qty, 1.5) }

func TestLedger_ReplenishIsAdditive(t *testing.T) {
	l := NewLedger()
	l.Replenish(stock("Flour", 2))
	l.Replenish(stock("Eggs", 6))
	l.Replenish(models.NewStock("Flour", 3, 9.99))

	assert.Equal(t, 5, l.Quantity("Flour"))
	assert.Equal(t, 2, l.Len())

	got := l.Ingredients()
	require.Len(t, got, 2)
	assert.Equal(t, "Flour", got[0].Name)
	assert.Equal(t, 1.5, got[0].UnitPrice, "existing entry keeps its price")
	assert.Equal(t, "Eggs", got[1].Name)
}

func TestLedger_ReplenishIgnoresEmptyStock(t *testing.T) {
	l := NewLedger()
	l.Replenish(stock("Salt", 0))
	l.Replenish(stock("Salt", -4))
	l.Replenish(stock("", 3))

	assert.Equal(t, 0, l.Len())
	assert.False(t, l.Has("Salt"))
}

func TestLedger_CanSupply(t *testing.T) {
	l := NewLedger()
	l.Replenish(stock("Chicken", 3))
	l.Replenish(stock("Rice", 1))

	tests := []struct {
		name string
		dish Orderable
		want bool
	}{
		{"exact", dish("Plate", need("Chicken", 3), need("Rice", 1)), true},
		{"short", dish("Plate", need("Chicken", 4)), false},
		{"missing", dish("Plate", need("Beans", 1)), false},
		{"missing with zero requirement", dish("Plate", need("Beans", 0)), false},
		{"repeated lines are summed", dish("Plate", need("Chicken", 2), need("Chicken", 2)), false},
		{"no ingredients", dish("Water"), true},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.CanSupply(tt.dish); got != tt.want {
				t.Errorf("CanSupply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLedger_ConsumePrunesZeroEntries(t *testing.T) {
	l := NewLedger()
	l.Replenish(stock("Chicken", 3))
	l.Replenish(stock("Rice", 5))

	require.True(t, l.Consume(dish("Plate", need("Chicken", 3), need("Rice", 2))))

	assert.False(t, l.Has("Chicken"), "entry at zero must be removed")
	assert.Equal(t, 3, l.Quantity("Rice"))
	assert.False(t, l.CanSupply(dish("Plate", need("Chicken", 0))))
}

func TestLedger_ConsumeIsAllOrNothing(t *testing.T) {
	l := NewLedger()
	l.Replenish(stock("Chicken", 5))
	l.Replenish(stock("Rice", 5))
	l.Replenish(stock("Peas", 1))
	before := l.Ingredients()

	ok := l.Consume(dish("Plate", need("Chicken", 2), need("Rice", 2), need("Peas", 2)))

	assert.False(t, ok)
	assert.Equal(t, before, l.Ingredients())
}

func TestLedger_Withdraw(t *testing.T) {
	l := NewLedger()
	l.Replenish(models.NewStock("Butter", 4, 2.25))

	got, ok := l.Withdraw("Butter", 3)
	require.True(t, ok)
	assert.Equal(t, models.NewStock("Butter", 3, 2.25), got)
	assert.Equal(t, 1, l.Quantity("Butter"))

	_, ok = l.Withdraw("Butter", 2)
	assert.False(t, ok, "short withdrawal must fail")
	assert.Equal(t, 1, l.Quantity("Butter"))

	_, ok = l.Withdraw("Butter", 0)
	assert.False(t, ok)

	_, ok = l.Withdraw("Butter", 1)
	require.True(t, ok)
	assert.False(t, l.Has("Butter"))
}

func TestLedger_Remove(t *testing.T) {
	l := NewLedger()
	l.Replenish(stock("A", 1))
	l.Replenish(stock("B", 1))
	l.Replenish(stock("C", 1))

	assert.True(t, l.Remove("B"))
	assert.False(t, l.Remove("B"))

	names := []string{}
	for _, ing := range l.Ingredients() {
		names = append(names, ing.Name)
	}
	assert.Equal(t, []string{"A", "C"}, names)
}
