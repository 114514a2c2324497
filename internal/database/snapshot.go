package database

import (
	"fmt"

	"brigade/internal/kitchen"
	"brigade/internal/models"

	"github.com/jinzhu/gorm"
)

type specer interface {
	Spec() models.DishSpec
}

// specOf recovers a storable spec from any orderable. Dishes that are not
// models.Dish keep only their name and recipe.
func specOf(d kitchen.Orderable) SpecColumn {
	if s, ok := d.(specer); ok {
		return SpecColumn(s.Spec())
	}
	return SpecColumn(models.DishSpec{Name: d.Name(), Ingredients: d.Ingredients()})
}

// SaveKitchen writes the stations, backup inventory and queue as a new
// snapshot. The kitchen is copied once up front so the rows describe a
// single instant.
func (s *Store) SaveKitchen(m *kitchen.StationManager, label string) (*Snapshot, error) {
	snap := Snapshot{Label: label}
	state := m.Snapshot()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&snap).Error; err != nil {
			return err
		}

		for i, station := range state.Stations {
			rec := StationRecord{SnapshotID: snap.ID, Position: i, Name: station.Name()}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
			for j, ing := range station.Ingredients() {
				line := IngredientRecord{StationID: rec.ID, Position: j, Name: ing.Name, Quantity: ing.Quantity, UnitPrice: ing.UnitPrice}
				if err := tx.Create(&line).Error; err != nil {
					return err
				}
			}
			for j, dish := range station.Dishes() {
				dr := DishRecord{StationID: rec.ID, Position: j, Name: dish.Name(), Spec: specOf(dish)}
				if err := tx.Create(&dr).Error; err != nil {
					return err
				}
			}
		}

		for i, ing := range state.Backup {
			line := BackupRecord{SnapshotID: snap.ID, Position: i, Name: ing.Name, Quantity: ing.Quantity, UnitPrice: ing.UnitPrice}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
		}

		for i, dish := range state.Queue {
			q := QueuedDishRecord{SnapshotID: snap.ID, Position: i, Name: dish.Name(), Spec: specOf(dish)}
			if err := tx.Create(&q).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save kitchen snapshot: %w", err)
	}
	return &snap, nil
}

// LatestSnapshot returns the most recently saved snapshot header.
func (s *Store) LatestSnapshot() (*Snapshot, error) {
	var snap Snapshot
	if err := s.db.Order("id desc").First(&snap).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to find snapshot: %w", err)
	}
	return &snap, nil
}

// LoadKitchen rebuilds a station manager from the latest snapshot.
func (s *Store) LoadKitchen() (*kitchen.StationManager, error) {
	snap, err := s.LatestSnapshot()
	if err != nil {
		return nil, err
	}
	return s.loadSnapshot(snap.ID)
}

func (s *Store) loadSnapshot(id uint) (*kitchen.StationManager, error) {
	m := kitchen.NewStationManager()

	var stations []StationRecord
	if err := s.db.Where("snapshot_id = ?", id).Order("position").Find(&stations).Error; err != nil {
		return nil, fmt.Errorf("failed to load stations: %w", err)
	}
	for _, rec := range stations {
		station := kitchen.NewStation(rec.Name)

		var lines []IngredientRecord
		if err := s.db.Where("station_id = ?", rec.ID).Order("position").Find(&lines).Error; err != nil {
			return nil, fmt.Errorf("failed to load ingredients of %s: %w", rec.Name, err)
		}
		for _, line := range lines {
			station.Replenish(models.NewStock(line.Name, line.Quantity, line.UnitPrice))
		}

		var dishes []DishRecord
		if err := s.db.Where("station_id = ?", rec.ID).Order("position").Find(&dishes).Error; err != nil {
			return nil, fmt.Errorf("failed to load dishes of %s: %w", rec.Name, err)
		}
		for _, dr := range dishes {
			dish, err := models.NewDish(models.DishSpec(dr.Spec))
			if err != nil {
				return nil, fmt.Errorf("station %s: %w", rec.Name, err)
			}
			station.AssignDish(dish)
		}
		m.AddStation(station)
	}

	var backup []BackupRecord
	if err := s.db.Where("snapshot_id = ?", id).Order("position").Find(&backup).Error; err != nil {
		return nil, fmt.Errorf("failed to load backup inventory: %w", err)
	}
	for _, line := range backup {
		m.AddBackupIngredient(models.NewStock(line.Name, line.Quantity, line.UnitPrice))
	}

	var queue []QueuedDishRecord
	if err := s.db.Where("snapshot_id = ?", id).Order("position").Find(&queue).Error; err != nil {
		return nil, fmt.Errorf("failed to load dish queue: %w", err)
	}
	for _, q := range queue {
		dish, err := models.NewDish(models.DishSpec(q.Spec))
		if err != nil {
			return nil, fmt.Errorf("queued dish %s: %w", q.Name, err)
		}
		m.AddDishToQueue(dish)
	}
	return m, nil
}
