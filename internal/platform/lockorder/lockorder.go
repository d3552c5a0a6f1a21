// Package lockorder serializa las escrituras en cascada entre stores.
//
// Hay un RWMutex por model.Kind y siempre se toman en el orden numérico del
// Kind (Owner < Vet < Pet < Visit < PetType < Specialty). Cada operación de
// un servicio pide de entrada todos los kinds que su cascada puede tocar; el
// conjunto tomado viaja en el context, así que las llamadas anidadas solo
// bloquean lo que falta.
//
// Los lectores que recorren colecciones o campos de entidades compartidas
// toman los mismos kinds con Read.
package lockorder

import (
	"context"
	"fmt"
	"math/bits"

	"petclinic/internal/domain/model"

	"github.com/sasha-s/go-deadlock"
)

type ctxKey struct{}

type holding struct {
	m      *Manager
	held   uint32 // todos los kinds tomados
	shared uint32 // subconjunto tomado solo para lectura
}

type Manager struct {
	mus [model.KindCount]deadlock.RWMutex
}

func New() *Manager {
	return &Manager{}
}

// Acquire bloquea para escritura los kinds que ctx todavía no tiene y
// devuelve el context que los registra junto con la función para liberarlos.
// Pedir un kind anterior a uno ya tomado rompería el orden global: panic.
// Pedir escritura sobre un kind tomado para lectura también.
func (m *Manager) Acquire(ctx context.Context, kinds ...model.Kind) (context.Context, func()) {
	return m.lock(ctx, false, kinds)
}

// Read es Acquire en modo compartido. Si ctx ya tiene un kind (en cualquier
// modo) no lo vuelve a pedir.
func (m *Manager) Read(ctx context.Context, kinds ...model.Kind) (context.Context, func()) {
	return m.lock(ctx, true, kinds)
}

func (m *Manager) lock(ctx context.Context, shared bool, kinds []model.Kind) (context.Context, func()) {
	if m == nil {
		return ctx, func() {}
	}

	var h holding
	if cur, ok := ctx.Value(ctxKey{}).(holding); ok && cur.m == m {
		h = cur
	}

	var want uint32
	for _, k := range kinds {
		if k < 0 || k >= model.KindCount {
			panic(fmt.Sprintf("lockorder: unknown kind %d", k))
		}
		want |= 1 << uint(k)
	}

	if !shared {
		if up := want & h.shared; up != 0 {
			panic(fmt.Sprintf("lockorder: %s requested for write while held for read",
				model.Kind(bits.TrailingZeros32(up))))
		}
	}

	missing := want &^ h.held
	if missing == 0 {
		return ctx, func() {}
	}
	if h.held != 0 {
		highestHeld := bits.Len32(h.held) - 1
		lowestMissing := bits.TrailingZeros32(missing)
		if lowestMissing < highestHeld {
			panic(fmt.Sprintf("lockorder: %s requested while holding %s",
				model.Kind(lowestMissing), model.Kind(highestHeld)))
		}
	}

	locked := make([]int, 0, bits.OnesCount32(missing))
	for k := 0; k < int(model.KindCount); k++ {
		if missing&(1<<uint(k)) == 0 {
			continue
		}
		if shared {
			m.mus[k].RLock()
		} else {
			m.mus[k].Lock()
		}
		locked = append(locked, k)
	}

	release := func() {
		for i := len(locked) - 1; i >= 0; i-- {
			if shared {
				m.mus[locked[i]].RUnlock()
			} else {
				m.mus[locked[i]].Unlock()
			}
		}
	}

	next := holding{m: m, held: h.held | missing, shared: h.shared}
	if shared {
		next.shared |= missing
	}
	return context.WithValue(ctx, ctxKey{}, next), release
}

// holds indica si ctx ya tiene tomado el lock de k (en cualquier modo).
func (m *Manager) holds(ctx context.Context, k model.Kind) bool {
	h, ok := ctx.Value(ctxKey{}).(holding)
	return ok && h.m == m && h.held&(1<<uint(k)) != 0
}
