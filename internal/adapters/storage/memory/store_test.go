package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"petclinic/internal/domain/model"
	"petclinic/internal/platform/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTypes() *Store[model.PetType, *model.PetType] {
	return NewStore[model.PetType](model.KindPetType)
}

func TestStore_SaveAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	s := newTypes()

	dog := &model.PetType{Name: "Dog"}
	cat := &model.PetType{Name: "Cat"}

	got, err := s.Save(ctx, dog)
	if err != nil {
		t.Fatalf("save dog: %v", err)
	}
	if got != dog {
		t.Fatalf("expected same pointer back")
	}
	if dog.ID != 1 {
		t.Fatalf("expected id 1, got %d", dog.ID)
	}

	if _, err := s.Save(ctx, cat); err != nil {
		t.Fatalf("save cat: %v", err)
	}
	if cat.ID != 2 {
		t.Fatalf("expected id 2, got %d", cat.ID)
	}
}

func TestStore_SaveKeepsExplicitIDAndContinuesFromMax(t *testing.T) {
	ctx := context.Background()
	s := newTypes()

	fixed := &model.PetType{BaseEntity: model.BaseEntity{ID: 10}, Name: "Bird"}
	if _, err := s.Save(ctx, fixed); err != nil {
		t.Fatalf("save: %v", err)
	}
	next := &model.PetType{Name: "Snake"}
	if _, err := s.Save(ctx, next); err != nil {
		t.Fatalf("save: %v", err)
	}
	if next.ID != 11 {
		t.Fatalf("expected id 11, got %d", next.ID)
	}
}

func TestStore_SaveIsUpsert(t *testing.T) {
	ctx := context.Background()
	s := newTypes()

	dog := &model.PetType{Name: "Dog"}
	_, _ = s.Save(ctx, dog)

	dog.Name = "Hound"
	if _, err := s.Save(ctx, dog); err != nil {
		t.Fatalf("resave: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", s.Len())
	}
	got, err := s.FindByID(ctx, dog.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Name != "Hound" {
		t.Fatalf("expected Hound, got %q", got.Name)
	}
}

func TestStore_NilArguments(t *testing.T) {
	ctx := context.Background()
	s := newTypes()
	_, _ = s.Save(ctx, &model.PetType{Name: "Dog"})

	if _, err := s.Save(ctx, nil); !errors.Is(err, model.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument on save, got %v", err)
	}
	if err := s.Delete(ctx, nil); !errors.Is(err, model.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument on delete, got %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected store unchanged, got %d entries", s.Len())
	}
}

func TestStore_FindByIDMissing(t *testing.T) {
	s := newTypes()
	if _, err := s.FindByID(context.Background(), 42); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_FindAllSortedSnapshot(t *testing.T) {
	ctx := context.Background()
	s := newTypes()
	for _, n := range []string{"Dog", "Cat", "Bird"} {
		_, _ = s.Save(ctx, &model.PetType{Name: n})
	}

	all, err := s.FindAll(ctx)
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3, got %d", len(all))
	}
	for i, pt := range all {
		if pt.ID != int64(i+1) {
			t.Fatalf("expected ordered ids, got %d at %d", pt.ID, i)
		}
	}

	// el snapshot no se ve afectado por escrituras posteriores
	_, _ = s.Save(ctx, &model.PetType{Name: "Fish"})
	if len(all) != 3 {
		t.Fatalf("expected snapshot to keep 3 entries")
	}
}

func TestStore_DeleteMatchesByEquality(t *testing.T) {
	ctx := context.Background()
	s := NewStore[model.Visit](model.KindVisit)

	a := &model.Visit{Description: "checkup"}
	b := &model.Visit{Description: "checkup"}
	_, _ = s.Save(ctx, a)
	_, _ = s.Save(ctx, b)

	// identidad asignada: solo se borra la entrada con el mismo ID
	if err := s.Delete(ctx, a); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 left, got %d", s.Len())
	}
	if _, err := s.FindByID(ctx, b.ID); err != nil {
		t.Fatalf("expected b to survive: %v", err)
	}
}

func TestStore_DeleteWithUnsetIdentityMatchesNothing(t *testing.T) {
	ctx := context.Background()
	s := newTypes()
	_, _ = s.Save(ctx, &model.PetType{Name: "Dog"})

	// nueva vs persistida: nunca iguales
	if err := s.Delete(ctx, &model.PetType{Name: "Dog"}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected store unchanged, got %d", s.Len())
	}
}

func TestStore_DeleteByID(t *testing.T) {
	ctx := context.Background()
	s := newTypes()
	dog := &model.PetType{Name: "Dog"}
	_, _ = s.Save(ctx, dog)

	if err := s.DeleteByID(ctx, 99); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if err := s.DeleteByID(ctx, dog.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d", s.Len())
	}
}

func TestStore_NextIDAfterDeletingMax(t *testing.T) {
	ctx := context.Background()
	s := newTypes()

	a := &model.PetType{Name: "A"}
	b := &model.PetType{Name: "B"}
	_, _ = s.Save(ctx, a)
	_, _ = s.Save(ctx, b)

	_ = s.DeleteByID(ctx, b.ID)

	c := &model.PetType{Name: "C"}
	_, _ = s.Save(ctx, c)
	if c.ID != 2 {
		t.Fatalf("expected id 2 after deleting max, got %d", c.ID)
	}

	_ = s.DeleteByID(ctx, a.ID)
	_ = s.DeleteByID(ctx, c.ID)

	d := &model.PetType{Name: "D"}
	_, _ = s.Save(ctx, d)
	if d.ID != 1 {
		t.Fatalf("expected id 1 on empty store, got %d", d.ID)
	}
}

func TestStore_ConcurrentSavesGetUniqueIDs(t *testing.T) {
	ctx := context.Background()
	s := newTypes()

	const n = 64
	saved := make([]*model.PetType, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pt := &model.PetType{Name: "t"}
			if _, err := s.Save(ctx, pt); err != nil {
				t.Errorf("save: %v", err)
			}
			saved[i] = pt
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]bool, n)
	for _, pt := range saved {
		if seen[pt.ID] {
			t.Fatalf("duplicate id %d", pt.ID)
		}
		seen[pt.ID] = true
	}
	for id := int64(1); id <= n; id++ {
		if !seen[id] {
			t.Fatalf("expected ids 1..%d, missing %d", n, id)
		}
	}
}

func TestStore_PublishesMetrics(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	s := NewStore[model.Specialty](model.KindSpecialty, WithMetrics(metrics.NewStore(reg)))

	_, _ = s.Save(ctx, &model.Specialty{Description: "radiology"})
	_, _ = s.Save(ctx, &model.Specialty{Description: "surgery"})
	_ = s.DeleteByID(ctx, 1)

	expected := `
# HELP petclinic_store_entities Cantidad de entidades en el store.
# TYPE petclinic_store_entities gauge
petclinic_store_entities{store="specialty"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "petclinic_store_entities"); err != nil {
		t.Fatalf("unexpected metrics: %v", err)
	}
}
