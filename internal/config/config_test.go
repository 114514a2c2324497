package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"brigade/internal/menu"
	"brigade/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kitchen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
port: 9000
database:
  dialect: postgres
  url: postgres://chef@localhost/brigade
metrics:
  enabled: false
kitchen:
  stations:
    - name: Grill
      dishes: [Steak]
      ingredients:
        - {name: Beef, quantity: 3, unit_price: 2.5}
  backup:
    - {name: Beef, quantity: 10}
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel, "unset keys keep their defaults")
	assert.Equal(t, "postgres", cfg.Database.Dialect)
	assert.False(t, cfg.Metrics.Enabled)
	require.Len(t, cfg.Kitchen.Stations, 1)
	assert.Equal(t, []string{"Steak"}, cfg.Kitchen.Stations[0].Dishes)
	assert.Equal(t, models.NewStock("Beef", 3, 2.5), cfg.Kitchen.Stations[0].Ingredients[0])
	assert.Equal(t, 10, cfg.Kitchen.Backup[0].Quantity)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BRIGADE_PORT", "7070")
	t.Setenv("BRIGADE_DB_DIALECT", "postgres")
	t.Setenv("BRIGADE_DATABASE_URL", "postgres://override")
	t.Setenv("BRIGADE_JWT_SECRET", "s3cret")

	cfg, err := Load(writeConfig(t, "port: 9000\n"))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "postgres", cfg.Database.Dialect)
	assert.Equal(t, "postgres://override", cfg.Database.URL)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{"bad yaml", "port: [", nil},
		{"bad port", "port: 70000", nil},
		{"bad dialect", "database: {dialect: oracle}", nil},
		{"unnamed station", "kitchen: {stations: [{name: ''}]}", nil},
		{"duplicate station", "kitchen: {stations: [{name: Grill}, {name: Grill}]}", nil},
		{"non numeric env port", "", map[string]string{"BRIGADE_PORT": "eighty"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestBuildKitchen(t *testing.T) {
	cfg := Default()
	cfg.Kitchen = KitchenConfig{
		Stations: []StationConfig{
			{Name: "Grill", Dishes: []string{"Steak"}, Ingredients: []models.Ingredient{models.NewStock("Beef", 2, 2.5)}},
			{Name: "Pastry"},
		},
		Backup: []models.Ingredient{models.NewStock("Beef", 5, 2.5)},
		Menu: []models.DishSpec{{
			Type:        models.DishTypeMainCourse,
			Name:        "Steak",
			Ingredients: []models.Ingredient{models.NewRequirement("Beef", 1)},
		}},
	}

	catalog, err := cfg.Catalog()
	require.NoError(t, err)
	manager, err := cfg.BuildKitchen(catalog)
	require.NoError(t, err)

	require.Len(t, manager.Stations(), 2)
	assert.Equal(t, 0, manager.StationIndex("Grill"))
	assert.True(t, manager.CanCompleteOrder("Steak"))
	assert.Equal(t, 5, manager.BackupQuantity("Beef"))
}

func TestBuildKitchen_UnknownDish(t *testing.T) {
	cfg := Default()
	cfg.Kitchen.Stations = []StationConfig{{Name: "Grill", Dishes: []string{"Unicorn"}}}

	catalog, err := cfg.Catalog()
	require.NoError(t, err)
	_, err = cfg.BuildKitchen(catalog)
	assert.True(t, errors.Is(err, menu.ErrDishNotFound))
}

func TestSampleConfig(t *testing.T) {
	t.Setenv("BRIGADE_MENU_FILE", filepath.Join("..", "..", "data", "dishes.csv"))

	cfg, err := Load(filepath.Join("..", "..", "configs", "kitchen.yaml"))
	require.NoError(t, err)
	catalog, err := cfg.Catalog()
	require.NoError(t, err)
	assert.Equal(t, 8, catalog.Len())

	manager, err := cfg.BuildKitchen(catalog)
	require.NoError(t, err)
	assert.Len(t, manager.Stations(), 3)
	assert.Equal(t, 5, manager.BackupQuantity("Chicken"))
}
