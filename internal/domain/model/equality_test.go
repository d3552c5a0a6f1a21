package model

import (
	"testing"
	"time"
)

func owner(id int64, first, last, city string) *Owner {
	return &Owner{
		Person: Person{BaseEntity: BaseEntity{ID: id}, FirstName: first, LastName: last},
		City:   city,
	}
}

func TestEqual_BothNew_ComparesFields(t *testing.T) {
	a := owner(0, "Bob", "Smith", "Madison")
	b := owner(0, "Bob", "Smith", "Madison")
	if !a.Equal(b) {
		t.Fatalf("expected structurally identical new owners to be equal")
	}
	if a.Hash() != b.Hash() {
		t.Fatalf("expected equal owners to hash equal")
	}

	b.City = "Monona"
	if a.Equal(b) {
		t.Fatalf("expected owners with different city to differ")
	}
}

func TestEqual_BothNew_PersonFieldsShortCircuit(t *testing.T) {
	a := owner(0, "Bob", "Smith", "Madison")
	b := owner(0, "Bob", "Jones", "Madison")
	if a.Equal(b) {
		t.Fatalf("expected different last names to be unequal")
	}

	v1 := &Vet{Person: Person{FirstName: "James", LastName: "Carter"}}
	v2 := &Vet{Person: Person{FirstName: "James", LastName: "Carter"}}
	if !v1.Equal(v2) {
		t.Fatalf("expected new vets with same names to be equal")
	}
	v2.FirstName = "Jim"
	if v1.Equal(v2) {
		t.Fatalf("expected vets with different first names to differ")
	}
}

func TestEqual_OneNew_IsUnequal(t *testing.T) {
	a := owner(0, "Bob", "Smith", "")
	b := owner(1, "Bob", "Smith", "")
	if a.Equal(b) || b.Equal(a) {
		t.Fatalf("expected new vs persisted to be unequal")
	}
}

func TestEqual_BothPersisted_OnlyIdentityCounts(t *testing.T) {
	a := owner(7, "Bob", "Smith", "Madison")
	b := owner(7, "Robert", "Jones", "Monona")
	if !a.Equal(b) {
		t.Fatalf("expected same identity to be equal regardless of fields")
	}
	if a.Hash() != b.Hash() {
		t.Fatalf("expected same identity to hash equal")
	}

	c := owner(8, "Bob", "Smith", "Madison")
	if a.Equal(c) {
		t.Fatalf("expected different identities to differ")
	}
}

func TestHash_KindDiscriminator(t *testing.T) {
	pet := &Pet{BaseEntity: BaseEntity{ID: 3}}
	visit := &Visit{BaseEntity: BaseEntity{ID: 3}}
	if pet.Hash() == visit.Hash() {
		t.Fatalf("expected pet and visit with same id to hash differently")
	}

	pt := &PetType{Name: "dog"}
	sp := &Specialty{Description: "dog"}
	if pt.Hash() == sp.Hash() {
		t.Fatalf("expected pet type and specialty with same text to hash differently")
	}
}

func TestHash_ChangesWhenIdentityAssigned(t *testing.T) {
	pt := &PetType{Name: "DOG"}
	before := pt.Hash()
	pt.SetID(1)
	if pt.Hash() == before {
		t.Fatalf("expected hash to switch to identity-based after SetID")
	}
}

func TestEqual_Pet_NilSafeBirthDate(t *testing.T) {
	d := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	sameDay := time.Date(2020, 1, 1, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		a, b *Pet
		want bool
	}{
		{"both nil dates", &Pet{Name: "Rex"}, &Pet{Name: "Rex"}, true},
		{"one nil date", &Pet{Name: "Rex", BirthDate: &d}, &Pet{Name: "Rex"}, false},
		{"same calendar day", &Pet{Name: "Rex", BirthDate: &d}, &Pet{Name: "Rex", BirthDate: &sameDay}, true},
		{"different name", &Pet{Name: "Rex", BirthDate: &d}, &Pet{Name: "Max", BirthDate: &d}, false},
		{"relationships ignored", &Pet{Name: "Rex", OwnerID: 1}, &Pet{Name: "Rex", OwnerID: 2}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Equal(tc.b); got != tc.want {
				t.Fatalf("Equal = %v, want %v", got, tc.want)
			}
			if tc.want && tc.a.Hash() != tc.b.Hash() {
				t.Fatalf("equal pets must hash equal")
			}
		})
	}
}

func TestEqual_Visit(t *testing.T) {
	d := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	a := &Visit{Date: d, Description: "checkup", PetID: 1}
	b := &Visit{Date: d, Description: "checkup", PetID: 2}
	if !a.Equal(b) {
		t.Fatalf("expected visits to compare by date/description only")
	}
	b.Description = "vaccine"
	if a.Equal(b) {
		t.Fatalf("expected different descriptions to differ")
	}
	if a.Equal(nil) {
		t.Fatalf("expected nil to be unequal")
	}
}

func TestSetID_NeverChangesOnceAssigned(t *testing.T) {
	s := &Specialty{Description: "radiology"}
	s.SetID(4)
	s.SetID(9)
	if s.ID != 4 {
		t.Fatalf("expected id to stay 4, got %d", s.ID)
	}
	s.SetID(0)
	if s.IsNew() {
		t.Fatalf("identity must never revert to unset")
	}
}
