package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"petclinic/internal/domain/model"
)

type recordingExec struct {
	execs []string
	fail  bool
}

func (r *recordingExec) ExecContext(_ context.Context, query string, _ ...any) (sql.Result, error) {
	r.execs = append(r.execs, query)
	if r.fail {
		return nil, errors.New("exec fail")
	}
	return driver.RowsAffected(0), nil
}

func TestMigrateAppliesEveryStatement(t *testing.T) {
	rec := &recordingExec{}
	if err := Migrate(context.Background(), rec); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	want := []string{"owners", "pet_types", "specialties", "vets", "vet_specialties", "pets", "visits"}
	for _, table := range want {
		found := false
		for _, stmt := range rec.execs {
			if strings.HasPrefix(stmt, "CREATE TABLE IF NOT EXISTS "+table+" ") {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected CREATE TABLE for %s, got %v", table, rec.execs)
		}
	}
	for _, stmt := range rec.execs {
		if strings.HasSuffix(stmt, ";") || stmt == "" {
			t.Fatalf("expected trimmed statement, got %q", stmt)
		}
	}
}

func TestMigrateStopsOnError(t *testing.T) {
	rec := &recordingExec{fail: true}
	if err := Migrate(context.Background(), rec); err == nil {
		t.Fatalf("expected error")
	}
	if len(rec.execs) != 1 {
		t.Fatalf("expected to stop after first failure, got %d execs", len(rec.execs))
	}
}

func TestLikePatternEscapesWildcards(t *testing.T) {
	cases := map[string]string{
		"":       "%%",
		"Dav":    "%Dav%",
		"50%":    `%50\%%`,
		"a_b":    `%a\_b%`,
		`back\s`: `%back\\s%`,
	}
	for in, want := range cases {
		if got := likePattern(in); got != want {
			t.Fatalf("likePattern(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestNullID(t *testing.T) {
	if nullID(&model.Owner{}).Valid {
		t.Fatalf("expected NULL id for new entity")
	}
	got := nullID(&model.Owner{Person: model.Person{BaseEntity: model.BaseEntity{ID: 7}}})
	if !got.Valid || got.Int64 != 7 {
		t.Fatalf("expected id 7, got %+v", got)
	}
}

// Integración contra una base real: PETCLINIC_TEST_DSN=postgres://...
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("PETCLINIC_TEST_DSN")
	if dsn == "" {
		t.Skip("PETCLINIC_TEST_DSN not set")
	}
	db, err := Open(dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := db.ExecContext(ctx, `TRUNCATE owners, pet_types, specialties, vets, vet_specialties, pets, visits`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return db
}

func TestIntegration_OwnerWithPetsRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	types := NewPetTypesRepo(db)
	owners := NewOwnersRepo(db)
	pets := NewPetsRepo(db)
	visits := NewVisitsRepo(db)

	dog, err := types.Save(ctx, &model.PetType{Name: "Dog"})
	if err != nil {
		t.Fatalf("save type: %v", err)
	}
	if dog.ID != 1 {
		t.Fatalf("expected first id 1, got %d", dog.ID)
	}

	o, err := owners.Save(ctx, &model.Owner{Person: model.Person{FirstName: "Jean", LastName: "Coleman"}})
	if err != nil {
		t.Fatalf("save owner: %v", err)
	}
	p, err := pets.Save(ctx, &model.Pet{Name: "Samantha", PetType: dog, OwnerID: o.ID})
	if err != nil {
		t.Fatalf("save pet: %v", err)
	}
	if _, err := visits.Save(ctx, &model.Visit{Description: "rabies shot", Date: model.Today(time.Now()), PetID: p.ID}); err != nil {
		t.Fatalf("save visit: %v", err)
	}

	got, err := owners.FindByID(ctx, o.ID)
	if err != nil {
		t.Fatalf("find owner: %v", err)
	}
	if len(got.Pets()) != 1 {
		t.Fatalf("expected 1 pet, got %d", len(got.Pets()))
	}
	gp := got.Pets()[0]
	if gp.PetType == nil || gp.PetType.Name != "Dog" {
		t.Fatalf("expected hydrated pet type, got %+v", gp.PetType)
	}
	if len(gp.Visits()) != 1 {
		t.Fatalf("expected 1 visit, got %d", len(gp.Visits()))
	}

	like, err := owners.FindAllByLastNameLike(ctx, "ole")
	if err != nil || len(like) != 1 {
		t.Fatalf("expected 1 like match, got %d (%v)", len(like), err)
	}
	if _, err := owners.FindByID(ctx, 999); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestIntegration_VetSpecialtiesLinks(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	specs := NewSpecialtiesRepo(db)
	vets := NewVetsRepo(db)

	radiology, _ := specs.Save(ctx, &model.Specialty{Description: "radiology"})
	v := &model.Vet{Person: model.Person{FirstName: "Helen", LastName: "Leary"}}
	model.AddSpecialtyToVet(v, radiology)

	if _, err := vets.Save(ctx, v); err != nil {
		t.Fatalf("save vet: %v", err)
	}
	got, err := vets.FindByLastName(ctx, "Leary")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got.Specialties()) != 1 || got.Specialties()[0].Description != "radiology" {
		t.Fatalf("expected radiology, got %+v", got.Specialties())
	}
}
