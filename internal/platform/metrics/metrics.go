package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "petclinic"

// Store agrupa las métricas de los stores in-memory.
// Todos los métodos aceptan receptor nil (métricas deshabilitadas).
type Store struct {
	ops  *prometheus.CounterVec
	size *prometheus.GaugeVec
}

func NewStore(reg prometheus.Registerer) *Store {
	m := &Store{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Operaciones de escritura por store y tipo.",
		}, []string{"store", "op"}),
		size: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "entities",
			Help:      "Cantidad de entidades en el store.",
		}, []string{"store"}),
	}
	if reg != nil {
		reg.MustRegister(m.ops, m.size)
	}
	return m
}

func (m *Store) Saved(store string) {
	if m == nil {
		return
	}
	m.ops.WithLabelValues(store, "save").Inc()
}

func (m *Store) Deleted(store string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ops.WithLabelValues(store, "delete").Add(float64(n))
}

func (m *Store) Size(store string, n int) {
	if m == nil {
		return
	}
	m.size.WithLabelValues(store).Set(float64(n))
}
