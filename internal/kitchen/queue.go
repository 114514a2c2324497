package kitchen

import (
	"fmt"
	"io"
	"strings"

	"brigade/internal/models"
)

// Preparation records where a dish was made during a batch pass.
type Preparation struct {
	Dish        string `json:"dish"`
	Station     string `json:"station"`
	Replenished bool   `json:"replenished"`
}

// Withdrawal records one backup draw made during a batch pass.
type Withdrawal struct {
	Station    string `json:"station"`
	Ingredient string `json:"ingredient"`
	Quantity   int    `json:"quantity"`
}

// BatchSummary is the structured outcome of ProcessAllDishes.
type BatchSummary struct {
	Prepared    []Preparation `json:"prepared"`
	Requeued    []string      `json:"requeued"`
	Discarded   int           `json:"discarded"`
	Withdrawals []Withdrawal  `json:"withdrawals"`
}

// AddDishToQueue appends a dish to the back of the queue.
func (m *StationManager) AddDishToQueue(dish Orderable) {
	if dish == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, dish)
}

// AddDishToQueueWithRequest adjusts the dish for the guest's dietary needs and
// then enqueues it.
func (m *StationManager) AddDishToQueueWithRequest(dish Orderable, req models.DietaryRequest) {
	if dish == nil {
		return
	}
	dish.ApplyDietaryRequest(req)
	m.AddDishToQueue(dish)
}

// DishQueue returns the pending dishes, front first.
func (m *StationManager) DishQueue() []Orderable {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Orderable, len(m.queue))
	copy(out, m.queue)
	return out
}

// SetDishQueue replaces the pending dishes.
func (m *StationManager) SetDishQueue(dishes []Orderable) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = make([]Orderable, 0, len(dishes))
	for _, d := range dishes {
		if d != nil {
			m.queue = append(m.queue, d)
		}
	}
}

// DisplayDishQueue writes one pending dish name per line.
func (m *StationManager) DisplayDishQueue(w io.Writer) {
	for _, d := range m.DishQueue() {
		fmt.Fprintln(w, d.Name())
	}
}

// ClearDishQueue drops every pending dish.
func (m *StationManager) ClearDishQueue() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = nil
}

// PrepareNextDish tries the front dish at each station in order and pops it on
// the first success. On failure the dish stays at the front.
func (m *StationManager) PrepareNextDish() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) == 0 {
		return false
	}
	next := m.queue[0]
	for _, s := range m.stations {
		if s.CanCompleteOrder(next.Name()) && s.PrepareDish(next.Name()) {
			m.queue = m.queue[1:]
			m.recorder.DishPrepared(s.Name(), next.Name(), false)
			return true
		}
	}
	return false
}

// ProcessAllDishes makes one pass over the whole queue. Each dish is tried at
// every station that makes it, in station order; a station short on stock is
// topped up from the backup by the exact deficit before retrying. Dishes no
// station can prepare are requeued in their original relative order.
func (m *StationManager) ProcessAllDishes() BatchSummary {
	m.mu.Lock()
	defer m.mu.Unlock()

	var (
		summary BatchSummary
		hold    []Orderable
		w       = m.report
	)
	pending := m.queue
	m.queue = nil

	for _, dish := range pending {
		if dish == nil || strings.TrimSpace(dish.Name()) == "" {
			summary.Discarded++
			continue
		}
		name := dish.Name()
		fmt.Fprintf(w, "PREPARING DISH: %s\n", name)

		prepared := false
		for _, s := range m.stations {
			fmt.Fprintf(w, "%s attempting to prepare %s...\n", s.Name(), name)
			if !s.HasDish(name) {
				fmt.Fprintf(w, "%s: Dish not available. Moving to next station...\n", s.Name())
				continue
			}

			replenished := false
			if !s.CanCompleteOrder(name) {
				fmt.Fprintf(w, "%s: Insufficient ingredients. Replenishing ingredients...\n", s.Name())
				draws, ok := m.coverDeficits(s, dish)
				summary.Withdrawals = append(summary.Withdrawals, draws...)
				if !ok {
					fmt.Fprintf(w, "%s: Unable to replenish ingredients. Failed to prepare %s.\n", s.Name(), name)
					continue
				}
				fmt.Fprintf(w, "%s: Ingredients replenished.\n", s.Name())
				replenished = true
			}

			if s.PrepareDish(name) {
				fmt.Fprintf(w, "%s: Successfully prepared %s.\n", s.Name(), name)
				summary.Prepared = append(summary.Prepared, Preparation{Dish: name, Station: s.Name(), Replenished: replenished})
				m.recorder.DishPrepared(s.Name(), name, replenished)
				prepared = true
				break
			}
			fmt.Fprintf(w, "%s: Unable to prepare %s.\n", s.Name(), name)
		}

		if !prepared {
			fmt.Fprintf(w, "%s was not prepared.\n", name)
			hold = append(hold, dish)
			summary.Requeued = append(summary.Requeued, name)
			m.recorder.DishRequeued(name)
		}
		fmt.Fprintln(w)
	}

	m.queue = hold
	fmt.Fprintln(w, "\nAll dishes have been processed.")
	return summary
}

// coverDeficits draws from the backup whatever the station lacks for one
// preparation of dish. It stops at the first ingredient the backup cannot
// cover; draws made before that stay at the station.
func (m *StationManager) coverDeficits(s *Station, dish Orderable) ([]Withdrawal, bool) {
	var draws []Withdrawal
	for _, req := range requirements(dish) {
		deficit := req.RequiredQuantity - s.Quantity(req.Name)
		if deficit <= 0 {
			continue
		}
		if !m.replenishFromBackup(s.Name(), req.Name, deficit) {
			return draws, false
		}
		draws = append(draws, Withdrawal{Station: s.Name(), Ingredient: req.Name, Quantity: deficit})
	}
	return draws, true
}
