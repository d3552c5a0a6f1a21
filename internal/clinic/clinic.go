// Package clinic arma los servicios de dominio sobre un backing concreto
// (memoria o Postgres) compartiendo un único lockorder.Manager.
package clinic

import (
	"database/sql"

	"petclinic/internal/adapters/storage/memory"
	"petclinic/internal/adapters/storage/postgres"
	"petclinic/internal/domain/owners"
	"petclinic/internal/domain/pets"
	"petclinic/internal/domain/pettypes"
	"petclinic/internal/domain/specialties"
	"petclinic/internal/domain/vets"
	"petclinic/internal/domain/visits"
	"petclinic/internal/platform/lockorder"
	"petclinic/internal/platform/metrics"
)

type Repositories struct {
	Owners      owners.Repository
	Pets        pets.Repository
	Visits      visits.Repository
	PetTypes    pettypes.Repository
	Specialties specialties.Repository
	Vets        vets.Repository
}

type Services struct {
	Owners      *owners.Service
	Pets        *pets.Service
	Visits      *visits.Service
	PetTypes    *pettypes.Service
	Specialties *specialties.Service
	Vets        *vets.Service
}

func MemoryRepositories(m *metrics.Store) Repositories {
	opt := memory.WithMetrics(m)
	return Repositories{
		Owners:      memory.NewOwnerRepo(opt),
		Pets:        memory.NewPetRepo(opt),
		Visits:      memory.NewVisitRepo(opt),
		PetTypes:    memory.NewPetTypeRepo(opt),
		Specialties: memory.NewSpecialtyRepo(opt),
		Vets:        memory.NewVetRepo(opt),
	}
}

func PostgresRepositories(db *sql.DB) Repositories {
	return Repositories{
		Owners:      postgres.NewOwnersRepo(db),
		Pets:        postgres.NewPetsRepo(db),
		Visits:      postgres.NewVisitsRepo(db),
		PetTypes:    postgres.NewPetTypesRepo(db),
		Specialties: postgres.NewSpecialtiesRepo(db),
		Vets:        postgres.NewVetsRepo(db),
	}
}

// New arma los coordinadores. Las hojas (pettypes, specialties) van primero;
// visits resuelve mascotas contra el repositorio para no depender de pets.Service.
func New(r Repositories) *Services {
	locks := lockorder.New()

	petTypes := pettypes.NewService(r.PetTypes, locks)
	specs := specialties.NewService(r.Specialties, locks)
	visitSvc := visits.NewService(r.Visits, r.Pets, locks)
	petSvc := pets.NewService(r.Pets, r.Owners, petTypes, visitSvc, locks)
	ownerSvc := owners.NewService(r.Owners, petSvc, locks)
	vetSvc := vets.NewService(r.Vets, specs, locks)

	return &Services{
		Owners:      ownerSvc,
		Pets:        petSvc,
		Visits:      visitSvc,
		PetTypes:    petTypes,
		Specialties: specs,
		Vets:        vetSvc,
	}
}
