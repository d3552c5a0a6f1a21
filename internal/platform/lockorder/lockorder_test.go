package lockorder

import (
	"context"
	"sync"
	"testing"
	"time"

	"petclinic/internal/domain/model"
)

func TestAcquire_NestedCallsAreReentrant(t *testing.T) {
	m := New()

	ctx, release := m.Acquire(context.Background(), model.KindOwner, model.KindPet, model.KindPetType)
	defer release()

	// cascada: pets.Save y pettypes.Save vuelven a pedir lo que ya está tomado
	inner, innerRelease := m.Acquire(ctx, model.KindPet, model.KindPetType)
	innerRelease()

	if !m.holds(inner, model.KindOwner) || !m.holds(inner, model.KindPetType) {
		t.Fatalf("expected nested context to keep held kinds")
	}
}

func TestAcquire_OutOfOrderPanics(t *testing.T) {
	m := New()

	ctx, release := m.Acquire(context.Background(), model.KindPetType)
	defer release()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic when acquiring owner after pet_type")
		}
	}()
	_, _ = m.Acquire(ctx, model.KindOwner)
}

func TestAcquire_LaterKindsCanBeAdded(t *testing.T) {
	m := New()

	ctx, release := m.Acquire(context.Background(), model.KindPet)
	defer release()

	ctx2, release2 := m.Acquire(ctx, model.KindVisit)
	defer release2()

	if !m.holds(ctx2, model.KindVisit) || !m.holds(ctx2, model.KindPet) {
		t.Fatalf("expected both pet and visit held")
	}
	if m.holds(ctx, model.KindVisit) {
		t.Fatalf("outer context must not see the inner acquisition")
	}
}

func TestAcquire_SerializesWriters(t *testing.T) {
	m := New()

	var (
		mu      sync.Mutex
		inside  int
		maxSeen int
		wg      sync.WaitGroup
	)

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			kinds := []model.Kind{model.KindOwner, model.KindPet}
			if i%2 == 0 {
				kinds = []model.Kind{model.KindPet, model.KindOwner}
			}
			_, release := m.Acquire(context.Background(), kinds...)
			defer release()

			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Fatalf("expected mutual exclusion, saw %d concurrent holders", maxSeen)
	}
}

func TestAcquire_NilManagerIsNoop(t *testing.T) {
	var m *Manager
	ctx, release := m.Acquire(context.Background(), model.KindOwner)
	release()
	if ctx == nil {
		t.Fatalf("expected context back")
	}
}

func TestAcquire_ContendingWritersBothComplete(t *testing.T) {
	m := New()

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		order []int
	)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, release := m.Acquire(context.Background(), model.KindOwner)
			defer release()

			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			time.Sleep(20 * time.Millisecond)
		}(i)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("expected both writers to finish")
	}
	if len(order) != 2 {
		t.Fatalf("expected 2 writers to run, got %d", len(order))
	}
}

func TestRead_ReadersShareTheLock(t *testing.T) {
	m := New()

	_, release := m.Read(context.Background(), model.KindOwner, model.KindPet)
	defer release()

	acquired := make(chan struct{})
	go func() {
		_, r2 := m.Read(context.Background(), model.KindOwner, model.KindPet)
		close(acquired)
		r2()
	}()

	select {
	case <-acquired:
	case <-time.After(5 * time.Second):
		t.Fatalf("expected a second reader to get in while the first holds the lock")
	}
}

func TestRead_ExcludesWriters(t *testing.T) {
	m := New()

	_, release := m.Read(context.Background(), model.KindPet)

	acquired := make(chan struct{})
	go func() {
		_, w := m.Acquire(context.Background(), model.KindPet)
		close(acquired)
		w()
	}()

	select {
	case <-acquired:
		t.Fatalf("writer got in while a reader held the lock")
	case <-time.After(20 * time.Millisecond):
	}

	release()
	select {
	case <-acquired:
	case <-time.After(5 * time.Second):
		t.Fatalf("expected writer to proceed after the reader released")
	}
}

func TestRead_InsideWriteIsReentrant(t *testing.T) {
	m := New()

	ctx, release := m.Acquire(context.Background(), model.KindOwner, model.KindPet)
	defer release()

	inner, innerRelease := m.Read(ctx, model.KindOwner, model.KindPet, model.KindVisit)
	defer innerRelease()

	if !m.holds(inner, model.KindVisit) {
		t.Fatalf("expected visit to be added in read mode")
	}
}

func TestAcquire_WriteOverReadPanics(t *testing.T) {
	m := New()

	ctx, release := m.Read(context.Background(), model.KindPet)
	defer release()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic when upgrading pet from read to write")
		}
	}()
	_, _ = m.Acquire(ctx, model.KindPet)
}
