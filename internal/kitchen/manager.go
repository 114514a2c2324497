package kitchen

import (
	"io"
	"sync"

	"brigade/internal/models"
)

// Recorder receives pipeline events. monitoring.KitchenMetrics implements it.
type Recorder interface {
	DishPrepared(station, dish string, replenished bool)
	DishRequeued(dish string)
	BackupWithdrawn(station, ingredient string, quantity int)
}

type nopRecorder struct{}

func (nopRecorder) DishPrepared(string, string, bool)  {}
func (nopRecorder) DishRequeued(string)                {}
func (nopRecorder) BackupWithdrawn(string, string, int) {}

// StationManager owns the ordered stations, the backup inventory and the dish
// queue. One mutex guards all three so a backup withdrawal and the station
// credit it pays for happen together.
type StationManager struct {
	mu       sync.Mutex
	stations []*Station
	backup   *Ledger
	queue    []Orderable
	report   io.Writer
	recorder Recorder
}

// NewStationManager creates a manager with no stations and an empty backup.
func NewStationManager() *StationManager {
	return &StationManager{
		backup:   NewLedger(),
		report:   io.Discard,
		recorder: nopRecorder{},
	}
}

// SetReportWriter directs the batch report. A nil writer discards it.
func (m *StationManager) SetReportWriter(w io.Writer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w == nil {
		w = io.Discard
	}
	m.report = w
}

// SetRecorder installs the metrics sink.
func (m *StationManager) SetRecorder(r Recorder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r == nil {
		r = nopRecorder{}
	}
	m.recorder = r
}

// KitchenState is a detached copy of the stations, backup inventory and queue,
// all read under one lock.
type KitchenState struct {
	Stations []*Station
	Backup   []models.Ingredient
	Queue    []Orderable
}

// AddStation appends a station. Nil stations and duplicate names are rejected.
// The manager owns the station afterwards; callers must not touch it.
func (m *StationManager) AddStation(station *Station) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if station == nil || m.indexOf(station.Name()) >= 0 {
		return false
	}
	m.stations = append(m.stations, station)
	return true
}

// RemoveStation deletes the named station together with its stock.
func (m *StationManager) RemoveStation(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.remove(name)
}

func (m *StationManager) remove(name string) bool {
	i := m.indexOf(name)
	if i < 0 {
		return false
	}
	m.stations = append(m.stations[:i], m.stations[i+1:]...)
	return true
}

// FindStation returns a copy of the named station or nil. Changes to the copy
// do not reach the manager.
func (m *StationManager) FindStation(name string) *Station {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s := m.find(name); s != nil {
		return s.clone()
	}
	return nil
}

func (m *StationManager) find(name string) *Station {
	if i := m.indexOf(name); i >= 0 {
		return m.stations[i]
	}
	return nil
}

// StationIndex returns the position of the named station, -1 if absent.
func (m *StationManager) StationIndex(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.indexOf(name)
}

func (m *StationManager) indexOf(name string) int {
	for i, s := range m.stations {
		if s.Name() == name {
			return i
		}
	}
	return -1
}

// Stations returns copies of the stations in scan order.
func (m *StationManager) Stations() []*Station {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cloneStations()
}

func (m *StationManager) cloneStations() []*Station {
	out := make([]*Station, len(m.stations))
	for i, s := range m.stations {
		out[i] = s.clone()
	}
	return out
}

// StationCount returns how many stations the kitchen has.
func (m *StationManager) StationCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stations)
}

// Snapshot copies the whole kitchen at one instant, so stock moved between
// the backup and a station is never counted twice or missed.
func (m *StationManager) Snapshot() KitchenState {
	m.mu.Lock()
	defer m.mu.Unlock()
	queue := make([]Orderable, len(m.queue))
	copy(queue, m.queue)
	return KitchenState{
		Stations: m.cloneStations(),
		Backup:   m.backup.Ingredients(),
		Queue:    queue,
	}
}

// MoveStationToFront makes the named station the first one scanned. The
// others keep their relative order.
func (m *StationManager) MoveStationToFront(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(name)
	if i < 0 {
		return false
	}
	station := m.stations[i]
	copy(m.stations[1:i+1], m.stations[:i])
	m.stations[0] = station
	return true
}

// MergeStations folds the second station into the first: its dishes (unless
// already assigned) and its stock, added per ingredient. The second station is
// then removed.
func (m *StationManager) MergeStations(into, from string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if into == from {
		return false
	}
	dst, src := m.find(into), m.find(from)
	if dst == nil || src == nil {
		return false
	}
	dst.absorb(src)
	return m.remove(from)
}

// AssignDishToStation assigns a dish to the named station.
func (m *StationManager) AssignDishToStation(station string, dish Orderable) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.find(station)
	if s == nil {
		return false
	}
	return s.AssignDish(dish)
}

// ReplenishIngredientAtStation stocks the named station directly.
func (m *StationManager) ReplenishIngredientAtStation(station string, ing models.Ingredient) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.find(station)
	if s == nil {
		return false
	}
	s.Replenish(ing)
	return true
}

// CanCompleteOrder reports whether any station could prepare the dish now.
func (m *StationManager) CanCompleteOrder(dish string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.stations {
		if s.CanCompleteOrder(dish) {
			return true
		}
	}
	return false
}

// PrepareDishAtStation prepares a dish at one specific station.
func (m *StationManager) PrepareDishAtStation(station, dish string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.find(station)
	return s != nil && s.PrepareDish(dish)
}

// ReplenishStationIngredientFromBackup moves exactly quantity units of an
// ingredient from the backup store to the station. It is all-or-nothing.
func (m *StationManager) ReplenishStationIngredientFromBackup(station, ingredient string, quantity int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.replenishFromBackup(station, ingredient, quantity)
}

func (m *StationManager) replenishFromBackup(station, ingredient string, quantity int) bool {
	s := m.find(station)
	if s == nil {
		return false
	}
	stock, ok := m.backup.Withdraw(ingredient, quantity)
	if !ok {
		return false
	}
	s.Replenish(stock)
	m.recorder.BackupWithdrawn(station, ingredient, quantity)
	return true
}

// AddBackupIngredients replaces the whole backup store.
func (m *StationManager) AddBackupIngredients(ingredients []models.Ingredient) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.backup.Clear()
	for _, ing := range ingredients {
		m.backup.Replenish(ing)
	}
	return true
}

// AddBackupIngredient adds stock to the backup store.
func (m *StationManager) AddBackupIngredient(ing models.Ingredient) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.backup.Replenish(ing)
	return true
}

// ClearBackupIngredients empties the backup store.
func (m *StationManager) ClearBackupIngredients() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.backup.Clear()
}

// BackupIngredients returns the backup stock.
func (m *StationManager) BackupIngredients() []models.Ingredient {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.backup.Ingredients()
}

// BackupQuantity returns how much of an ingredient the backup holds.
func (m *StationManager) BackupQuantity(ingredient string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.backup.Quantity(ingredient)
}
