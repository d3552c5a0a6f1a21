// Package memory implementa los repositorios de dominio en memoria.
//
// Cada store es un mapa concurrente id -> entidad. Las lecturas no bloquean;
// las escrituras se serializan con un mutex por store para que la asignación
// de IDs (max + 1) y el reemplazo sean atómicos.
package memory

import (
	"context"
	"fmt"
	"sort"

	"petclinic/internal/domain/model"
	"petclinic/internal/platform/metrics"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/sasha-s/go-deadlock"
)

// record es el conjunto de métodos que el store necesita de *E.
type record[E any] interface {
	*E
	model.Entity
	Equal(other *E) bool
}

type options struct {
	metrics *metrics.Store
}

type Option func(*options)

// WithMetrics publica operaciones y tamaño del store.
func WithMetrics(m *metrics.Store) Option {
	return func(o *options) { o.metrics = m }
}

// Store guarda punteros: Save devuelve exactamente el mismo puntero que recibe.
type Store[E any, P record[E]] struct {
	kind    model.Kind
	table   *xsync.MapOf[int64, P]
	mu      deadlock.Mutex // escritores
	maxID   int64
	metrics *metrics.Store
}

func NewStore[E any, P record[E]](kind model.Kind, opts ...Option) *Store[E, P] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[E, P]{
		kind:    kind,
		table:   xsync.NewMapOf[int64, P](),
		metrics: o.metrics,
	}
}

// Save asigna identidad a las entidades nuevas (max + 1, o 1 si está vacío)
// y hace upsert por ID.
func (s *Store[E, P]) Save(_ context.Context, e P) (P, error) {
	if (*E)(e) == nil {
		return nil, fmt.Errorf("%w: %s is nil", model.ErrInvalidArgument, s.kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e.IsNew() {
		e.SetID(s.maxID + 1)
	}
	id := e.GetID()
	s.table.Store(id, e)
	if id > s.maxID {
		s.maxID = id
	}

	s.metrics.Saved(s.kind.String())
	s.metrics.Size(s.kind.String(), s.table.Size())
	return e, nil
}

// FindAll devuelve un snapshot ordenado por ID.
func (s *Store[E, P]) FindAll(_ context.Context) ([]P, error) {
	return s.filter(func(P) bool { return true }), nil
}

func (s *Store[E, P]) FindByID(_ context.Context, id int64) (P, error) {
	e, ok := s.table.Load(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s %d", model.ErrNotFound, s.kind, id)
	}
	return e, nil
}

// Delete quita toda entrada igual (Equal) al argumento, no solo la que
// comparte ID.
func (s *Store[E, P]) Delete(_ context.Context, e P) error {
	if (*E)(e) == nil {
		return fmt.Errorf("%w: %s is nil", model.ErrInvalidArgument, s.kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []int64
	s.table.Range(func(id int64, stored P) bool {
		if stored.Equal((*E)(e)) {
			ids = append(ids, id)
		}
		return true
	})
	s.remove(ids...)
	return nil
}

// DeleteByID es no-op si el ID no existe.
func (s *Store[E, P]) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.table.Load(id); ok {
		s.remove(id)
	}
	return nil
}

// Len es el tamaño actual (para tests y métricas).
func (s *Store[E, P]) Len() int {
	return s.table.Size()
}

// remove asume s.mu tomado.
func (s *Store[E, P]) remove(ids ...int64) {
	if len(ids) == 0 {
		return
	}
	recompute := false
	for _, id := range ids {
		s.table.Delete(id)
		if id == s.maxID {
			recompute = true
		}
	}
	if recompute {
		s.maxID = 0
		s.table.Range(func(id int64, _ P) bool {
			if id > s.maxID {
				s.maxID = id
			}
			return true
		})
	}

	s.metrics.Deleted(s.kind.String(), len(ids))
	s.metrics.Size(s.kind.String(), s.table.Size())
}

func (s *Store[E, P]) filter(keep func(P) bool) []P {
	out := make([]P, 0)
	s.table.Range(func(_ int64, e P) bool {
		if keep(e) {
			out = append(out, e)
		}
		return true
	})

	sort.Slice(out, func(i, j int) bool {
		return out[i].GetID() < out[j].GetID()
	})
	return out
}
