package kitchen

import (
	"sync"
	"testing"

	"brigade/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stationNames(m *StationManager) []string {
	var names []string
	for _, s := range m.Stations() {
		names = append(names, s.Name())
	}
	return names
}

func newManager(names ...string) *StationManager {
	m := NewStationManager()
	for _, n := range names {
		m.AddStation(NewStation(n))
	}
	return m
}

func TestStationManager_AddStation(t *testing.T) {
	m := NewStationManager()

	assert.True(t, m.AddStation(NewStation("Grill")))
	assert.False(t, m.AddStation(NewStation("Grill")), "duplicate name")
	assert.False(t, m.AddStation(nil))
	assert.Equal(t, []string{"Grill"}, stationNames(m))
}

func TestStationManager_RemoveAndFind(t *testing.T) {
	m := newManager("Grill", "Fry", "Pastry")

	assert.True(t, m.RemoveStation("Fry"))
	assert.False(t, m.RemoveStation("Fry"))
	assert.Nil(t, m.FindStation("Fry"))
	require.NotNil(t, m.FindStation("Pastry"))
	assert.Equal(t, "Pastry", m.FindStation("Pastry").Name())
	assert.Equal(t, 1, m.StationIndex("Pastry"))
	assert.Equal(t, -1, m.StationIndex("Fry"))
}

func TestStationManager_MoveStationToFront(t *testing.T) {
	tests := []struct {
		name    string
		station string
		want    []string
		ok      bool
	}{
		{"middle", "C", []string{"C", "A", "B", "D"}, true},
		{"last", "D", []string{"D", "A", "B", "C"}, true},
		{"already first", "A", []string{"A", "B", "C", "D"}, true},
		{"unknown", "Z", []string{"A", "B", "C", "D"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newManager("A", "B", "C", "D")
			if got := m.MoveStationToFront(tt.station); got != tt.ok {
				t.Errorf("MoveStationToFront(%q) = %v, want %v", tt.station, got, tt.ok)
			}
			assert.Equal(t, tt.want, stationNames(m))
		})
	}
}

func TestStationManager_MergeStations(t *testing.T) {
	m := newManager("Grill", "Fry")
	m.AssignDishToStation("Grill", dish("Burger", need("Beef", 1)))
	m.ReplenishIngredientAtStation("Grill", stock("Beef", 2))
	m.ReplenishIngredientAtStation("Grill", stock("Salt", 1))
	m.AssignDishToStation("Fry", dish("Fries", need("Potato", 2)))
	m.AssignDishToStation("Fry", dish("Burger", need("Tofu", 1)))
	m.ReplenishIngredientAtStation("Fry", stock("Potato", 4))
	m.ReplenishIngredientAtStation("Fry", stock("Beef", 3))

	require.True(t, m.MergeStations("Grill", "Fry"))

	assert.Equal(t, []string{"Grill"}, stationNames(m))
	assert.Nil(t, m.FindStation("Fry"))
	grill := m.FindStation("Grill")
	assert.Equal(t, 5, grill.Quantity("Beef"))
	assert.Equal(t, 4, grill.Quantity("Potato"))
	assert.Equal(t, 1, grill.Quantity("Salt"))
	require.Len(t, grill.Dishes(), 2)
	assert.True(t, grill.HasDish("Fries"))
	assert.Equal(t, "Beef", grill.Dishes()[0].Ingredients()[0].Name, "existing Burger is kept")
}

func TestStationManager_MergeStationsFailures(t *testing.T) {
	m := newManager("Grill", "Fry")
	m.ReplenishIngredientAtStation("Grill", stock("Beef", 2))

	assert.False(t, m.MergeStations("Grill", "Nope"))
	assert.False(t, m.MergeStations("Nope", "Grill"))
	assert.False(t, m.MergeStations("Grill", "Grill"))
	assert.Equal(t, []string{"Grill", "Fry"}, stationNames(m))
	assert.Equal(t, 2, m.FindStation("Grill").Quantity("Beef"))
}

func TestStationManager_MergeIsOrderIndependent(t *testing.T) {
	ledger := func(first, second []models.Ingredient) map[string]int {
		m := newManager("X", "Y")
		for _, ing := range first {
			m.ReplenishIngredientAtStation("X", ing)
		}
		for _, ing := range second {
			m.ReplenishIngredientAtStation("Y", ing)
		}
		require.True(t, m.MergeStations("X", "Y"))
		out := map[string]int{}
		for _, ing := range m.FindStation("X").Ingredients() {
			out[ing.Name] = ing.Quantity
		}
		return out
	}

	x := []models.Ingredient{stock("Oil", 1), stock("Garlic", 2), stock("Onion", 3)}
	y := []models.Ingredient{stock("Onion", 4), stock("Oil", 5), stock("Chili", 6)}
	xr := []models.Ingredient{x[2], x[0], x[1]}
	yr := []models.Ingredient{y[1], y[2], y[0]}

	want := map[string]int{"Oil": 6, "Garlic": 2, "Onion": 7, "Chili": 6}
	assert.Equal(t, want, ledger(x, y))
	assert.Equal(t, want, ledger(xr, yr))
	assert.Equal(t, want, ledger(y, x))
}

func TestStationManager_ReplenishFromBackupConservesStock(t *testing.T) {
	m := newManager("Grill")
	m.AddBackupIngredient(models.NewStock("Chicken", 5, 3.5))
	m.ReplenishIngredientAtStation("Grill", stock("Chicken", 2))

	stationBefore := m.FindStation("Grill").Quantity("Chicken")
	backupBefore := m.BackupQuantity("Chicken")

	require.True(t, m.ReplenishStationIngredientFromBackup("Grill", "Chicken", 3))

	assert.Equal(t, backupBefore-3, m.BackupQuantity("Chicken"))
	assert.Equal(t, stationBefore+3, m.FindStation("Grill").Quantity("Chicken"))
	assert.Equal(t, stationBefore+backupBefore,
		m.BackupQuantity("Chicken")+m.FindStation("Grill").Quantity("Chicken"))
}

func TestStationManager_ReplenishFromBackupFailures(t *testing.T) {
	m := newManager("Grill")
	m.AddBackupIngredients([]models.Ingredient{stock("Chicken", 2)})

	tests := []struct {
		name       string
		station    string
		ingredient string
		quantity   int
	}{
		{"unknown station", "Fry", "Chicken", 1},
		{"unknown ingredient", "Grill", "Beef", 1},
		{"insufficient backup", "Grill", "Chicken", 3},
		{"zero quantity", "Grill", "Chicken", 0},
		{"negative quantity", "Grill", "Chicken", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, m.ReplenishStationIngredientFromBackup(tt.station, tt.ingredient, tt.quantity))
			assert.Equal(t, 2, m.BackupQuantity("Chicken"))
			assert.Empty(t, m.FindStation("Grill").Ingredients())
		})
	}
}

func TestStationManager_BackupPrunedAtZero(t *testing.T) {
	m := newManager("Grill")
	m.AddBackupIngredient(stock("Chicken", 2))
	m.AddBackupIngredient(stock("Chicken", 1))
	require.Equal(t, 3, m.BackupQuantity("Chicken"))

	require.True(t, m.ReplenishStationIngredientFromBackup("Grill", "Chicken", 3))
	assert.Empty(t, m.BackupIngredients())

	m.AddBackupIngredient(stock("Rice", 1))
	m.ClearBackupIngredients()
	assert.Empty(t, m.BackupIngredients())
}

func TestStationManager_AddBackupIngredientsReplaces(t *testing.T) {
	m := NewStationManager()
	m.AddBackupIngredient(stock("Rice", 9))
	m.AddBackupIngredients([]models.Ingredient{stock("Beans", 1), stock("Beans", 2)})

	assert.Equal(t, 0, m.BackupQuantity("Rice"))
	assert.Equal(t, 3, m.BackupQuantity("Beans"))
}

func TestStationManager_CanCompleteAndPrepareAtStation(t *testing.T) {
	m := newManager("Grill", "Fry")
	m.AssignDishToStation("Fry", dish("Fries", need("Potato", 1)))
	m.ReplenishIngredientAtStation("Fry", stock("Potato", 1))

	assert.True(t, m.CanCompleteOrder("Fries"))
	assert.False(t, m.PrepareDishAtStation("Grill", "Fries"))
	assert.False(t, m.PrepareDishAtStation("Nope", "Fries"))
	assert.True(t, m.PrepareDishAtStation("Fry", "Fries"))
	assert.False(t, m.CanCompleteOrder("Fries"))

	assert.False(t, m.AssignDishToStation("Nope", dish("Fries")))
	assert.False(t, m.ReplenishIngredientAtStation("Nope", stock("Potato", 1)))
}

func TestStationManager_FindStationReturnsCopy(t *testing.T) {
	m := newManager("Grill")
	m.AssignDishToStation("Grill", dish("Steak", need("Beef", 1)))

	s := m.FindStation("Grill")
	s.Replenish(stock("Beef", 5))
	s.AssignDish(dish("Burger", need("Beef", 1)))

	assert.Equal(t, 0, m.FindStation("Grill").Quantity("Beef"))
	assert.False(t, m.FindStation("Grill").HasDish("Burger"))
	assert.False(t, m.PrepareDishAtStation("Grill", "Steak"))
}

func TestStationManager_SnapshotIsConsistentDuringWithdrawals(t *testing.T) {
	const total = 200
	m := newManager("Grill", "Fry")
	m.AssignDishToStation("Grill", dish("Wings", need("Chicken", 1)))
	m.AddBackupIngredient(stock("Chicken", total))

	chicken := func(state KitchenState) int {
		n := 0
		for _, s := range state.Stations {
			n += s.Quantity("Chicken")
		}
		for _, ing := range state.Backup {
			if ing.Name == "Chicken" {
				n += ing.Quantity
			}
		}
		return n
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < total/2; i++ {
			m.ReplenishStationIngredientFromBackup("Grill", "Chicken", 1)
			m.ReplenishIngredientAtStation("Fry", stock("Oil", 1))
		}
	}()

	var mismatches int
	go func() {
		defer wg.Done()
		for i := 0; i < total; i++ {
			if chicken(m.Snapshot()) != total {
				mismatches++
			}
			for _, s := range m.Stations() {
				s.Ingredients()
				s.Dishes()
			}
			m.FindStation("Grill").Ingredients()
		}
	}()
	wg.Wait()

	assert.Zero(t, mismatches)
	assert.Equal(t, total/2, m.BackupQuantity("Chicken"))
	assert.Equal(t, total, chicken(m.Snapshot()))
}

func TestStationManager_SnapshotCopiesQueue(t *testing.T) {
	m := newManager("Grill")
	m.AddBackupIngredient(stock("Rice", 2))
	m.AddDishToQueue(dish("Pilaf", need("Rice", 1)))

	state := m.Snapshot()
	m.ClearDishQueue()
	m.ClearBackupIngredients()

	require.Len(t, state.Stations, 1)
	assert.Equal(t, "Grill", state.Stations[0].Name())
	require.Len(t, state.Queue, 1)
	assert.Equal(t, "Pilaf", state.Queue[0].Name())
	assert.Equal(t, []models.Ingredient{stock("Rice", 2)}, state.Backup)
	assert.Equal(t, 1, m.StationCount())
}
