package monitoring

import (
	"strconv"

	"brigade/internal/kitchen"

	"github.com/prometheus/client_golang/prometheus"
)

// KitchenMetrics exports pipeline events to Prometheus and mirrors the totals
// into a Monitor. It satisfies kitchen.Recorder.
type KitchenMetrics struct {
	monitor   *Monitor
	prepared  *prometheus.CounterVec
	requeued  *prometheus.CounterVec
	withdrawn *prometheus.CounterVec
}

var _ kitchen.Recorder = (*KitchenMetrics)(nil)

// NewKitchenMetrics registers the pipeline counters with reg.
func NewKitchenMetrics(reg prometheus.Registerer, monitor *Monitor) (*KitchenMetrics, error) {
	km := &KitchenMetrics{
		monitor: monitor,
		prepared: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "brigade",
			Name:      "dishes_prepared_total",
			Help:      "Dishes prepared, by station and whether backup stock was drawn.",
		}, []string{"station", "replenished"}),
		requeued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "brigade",
			Name:      "dishes_requeued_total",
			Help:      "Dishes no station could prepare during a batch pass.",
		}, []string{"dish"}),
		withdrawn: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "brigade",
			Name:      "backup_withdrawn_units_total",
			Help:      "Units moved from the backup inventory to stations.",
		}, []string{"station", "ingredient"}),
	}

	for _, c := range []prometheus.Collector{km.prepared, km.requeued, km.withdrawn} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return km, nil
}

// RegisterKitchenGauges exposes live queue and backup sizes read from m at
// scrape time.
func RegisterKitchenGauges(reg prometheus.Registerer, m *kitchen.StationManager) error {
	gauges := []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "brigade",
			Name:      "queue_length",
			Help:      "Dishes waiting in the queue.",
		}, func() float64 { return float64(len(m.DishQueue())) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "brigade",
			Name:      "stations",
			Help:      "Stations in the kitchen.",
		}, func() float64 { return float64(m.StationCount()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "brigade",
			Name:      "backup_units",
			Help:      "Units held in the backup inventory.",
		}, func() float64 {
			total := 0
			for _, ing := range m.BackupIngredients() {
				total += ing.Quantity
			}
			return float64(total)
		}),
	}
	for _, g := range gauges {
		if err := reg.Register(g); err != nil {
			return err
		}
	}
	return nil
}

func (km *KitchenMetrics) DishPrepared(station, dish string, replenished bool) {
	km.prepared.WithLabelValues(station, strconv.FormatBool(replenished)).Inc()
	if km.monitor != nil {
		km.monitor.Increment("dishes_prepared", 1)
	}
}

func (km *KitchenMetrics) DishRequeued(dish string) {
	km.requeued.WithLabelValues(dish).Inc()
	if km.monitor != nil {
		km.monitor.Increment("dishes_requeued", 1)
	}
}

func (km *KitchenMetrics) BackupWithdrawn(station, ingredient string, quantity int) {
	km.withdrawn.WithLabelValues(station, ingredient).Add(float64(quantity))
	if km.monitor != nil {
		km.monitor.Increment("backup_units_withdrawn", int64(quantity))
	}
}
