package database

import (
	"errors"
	"testing"

	"brigade/internal/kitchen"
	"brigade/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func mustDish(t *testing.T, spec models.DishSpec) models.Dish {
	t.Helper()
	d, err := models.NewDish(spec)
	require.NoError(t, err)
	return d
}

func sampleKitchen(t *testing.T) *kitchen.StationManager {
	m := kitchen.NewStationManager()

	grill := kitchen.NewStation("Grill")
	grill.AssignDish(mustDish(t, models.DishSpec{
		Type:          models.DishTypeMainCourse,
		Name:          "Chicken Plate",
		Ingredients:   []models.Ingredient{models.NewRequirement("Chicken", 3)},
		CookingMethod: models.CookingGrilled,
		SideDishes:    []models.SideDish{{Name: "Rice", Category: models.SideGrain}},
	}))
	grill.Replenish(models.NewStock("Chicken", 2, 1.25))
	grill.Replenish(models.NewStock("Rice", 4, 0.4))
	m.AddStation(grill)

	pastry := kitchen.NewStation("Pastry")
	pastry.AssignDish(mustDish(t, models.DishSpec{
		Type:           models.DishTypeDessert,
		Name:           "Pecan Pie",
		Ingredients:    []models.Ingredient{models.NewRequirement("Pecans", 2)},
		SweetnessLevel: 8,
		ContainsNuts:   true,
	}))
	m.AddStation(pastry)

	m.AddBackupIngredient(models.NewStock("Chicken", 5, 1.25))
	m.AddBackupIngredient(models.NewStock("Pecans", 1, 1.8))

	pie := mustDish(t, models.DishSpec{
		Type:           models.DishTypeDessert,
		Name:           "Pecan Pie",
		Ingredients:    []models.Ingredient{models.NewRequirement("Pecans", 2)},
		SweetnessLevel: 8,
		ContainsNuts:   true,
	})
	m.AddDishToQueueWithRequest(pie, models.DietaryRequest{LowSugar: true})
	m.AddDishToQueue(mustDish(t, models.DishSpec{Name: "Chicken Plate", Ingredients: []models.Ingredient{models.NewRequirement("Chicken", 3)}}))
	return m
}

func queueNames(m *kitchen.StationManager) []string {
	var names []string
	for _, d := range m.DishQueue() {
		names = append(names, d.Name())
	}
	return names
}

func TestStore_SaveAndLoadKitchen(t *testing.T) {
	store := openTestStore(t)
	original := sampleKitchen(t)

	snap, err := store.SaveKitchen(original, "before service")
	require.NoError(t, err)
	assert.NotZero(t, snap.ID)

	loaded, err := store.LoadKitchen()
	require.NoError(t, err)

	require.Len(t, loaded.Stations(), 2)
	assert.Equal(t, "Grill", loaded.Stations()[0].Name())
	assert.Equal(t, "Pastry", loaded.Stations()[1].Name())
	assert.Equal(t, original.FindStation("Grill").Ingredients(), loaded.FindStation("Grill").Ingredients())
	assert.Equal(t, original.BackupIngredients(), loaded.BackupIngredients())

	dishes := loaded.FindStation("Grill").Dishes()
	require.Len(t, dishes, 1)
	main, ok := dishes[0].(*models.MainCourse)
	require.True(t, ok, "course type survives the round trip")
	assert.Equal(t, models.CookingGrilled, main.CookingMethod)

	queue := loaded.DishQueue()
	require.Len(t, queue, 2)
	assert.Equal(t, "Pecan Pie", queue[0].Name())
	pie, ok := queue[0].(*models.Dessert)
	require.True(t, ok)
	assert.Equal(t, 5, pie.SweetnessLevel, "dietary adjustment is kept")
	assert.Equal(t, "Chicken Plate", queue[1].Name())
}

func TestStore_LoadKitchenUsesLatestSnapshot(t *testing.T) {
	store := openTestStore(t)
	m := sampleKitchen(t)

	_, err := store.SaveKitchen(m, "first")
	require.NoError(t, err)

	m.ProcessAllDishes()
	m.RemoveStation("Pastry")
	_, err = store.SaveKitchen(m, "second")
	require.NoError(t, err)

	latest, err := store.LatestSnapshot()
	require.NoError(t, err)
	assert.Equal(t, "second", latest.Label)

	loaded, err := store.LoadKitchen()
	require.NoError(t, err)
	assert.Len(t, loaded.Stations(), 1)
	assert.Equal(t, 4, loaded.BackupQuantity("Chicken"))
	assert.Equal(t, []models.Ingredient{models.NewStock("Rice", 4, 0.4)}, loaded.FindStation("Grill").Ingredients())
	assert.Equal(t, []string{"Pecan Pie"}, queueNames(loaded))
}

func TestStore_LoadKitchenWithoutSnapshot(t *testing.T) {
	store := openTestStore(t)

	_, err := store.LoadKitchen()
	assert.True(t, errors.Is(err, ErrNoSnapshot))
}

func TestOpen_UnknownDialect(t *testing.T) {
	_, err := Open("oracle", "nowhere")
	assert.Error(t, err)
}
