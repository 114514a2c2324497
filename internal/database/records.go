package database

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"brigade/internal/models"

	"github.com/jinzhu/gorm"
)

// SpecColumn stores a dish spec as JSON text
type SpecColumn models.DishSpec

// Value converts the spec to a JSON string for storage
func (s SpecColumn) Value() (driver.Value, error) {
	b, err := json.Marshal(models.DishSpec(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan converts the database value back to a spec
func (s *SpecColumn) Scan(value interface{}) error {
	if value == nil {
		*s = SpecColumn{}
		return nil
	}

	var spec models.DishSpec
	switch v := value.(type) {
	case []byte:
		if err := json.Unmarshal(v, &spec); err != nil {
			return err
		}
	case string:
		if err := json.Unmarshal([]byte(v), &spec); err != nil {
			return err
		}
	default:
		return errors.New("unsupported type for SpecColumn")
	}
	*s = SpecColumn(spec)
	return nil
}

// Snapshot is one saved copy of the whole kitchen.
type Snapshot struct {
	gorm.Model
	Label string
}

// StationRecord is a station in scan order.
type StationRecord struct {
	ID         uint `gorm:"primary_key"`
	SnapshotID uint `gorm:"index"`
	Position   int
	Name       string
}

// IngredientRecord is a line of a station ledger.
type IngredientRecord struct {
	ID        uint `gorm:"primary_key"`
	StationID uint `gorm:"index"`
	Position  int
	Name      string
	Quantity  int
	UnitPrice float64
}

// DishRecord is a dish assigned to a station.
type DishRecord struct {
	ID        uint `gorm:"primary_key"`
	StationID uint `gorm:"index"`
	Position  int
	Name      string
	Spec      SpecColumn `gorm:"type:text"`
}

// BackupRecord is a line of the backup inventory.
type BackupRecord struct {
	ID         uint `gorm:"primary_key"`
	SnapshotID uint `gorm:"index"`
	Position   int
	Name       string
	Quantity   int
	UnitPrice  float64
}

// QueuedDishRecord is a pending order, front first.
type QueuedDishRecord struct {
	ID         uint `gorm:"primary_key"`
	SnapshotID uint `gorm:"index"`
	Position   int
	Name       string
	Spec       SpecColumn `gorm:"type:text"`
}
