package model

import "time"

// Owner es el dueño de una o más mascotas.
type Owner struct {
	Person

	Address   string
	City      string
	Telephone string

	pets []*Pet
}

func (*Owner) Kind() Kind { return KindOwner }

// Pets devuelve una copia de la colección; para modificarla usar AddPetToOwner.
func (o *Owner) Pets() []*Pet {
	out := make([]*Pet, len(o.pets))
	copy(out, o.pets)
	return out
}

// Pet referencia a su Owner por identidad (OwnerID), no por puntero.
type Pet struct {
	BaseEntity

	Name      string
	BirthDate *time.Time

	PetType *PetType
	OwnerID int64

	visits []*Visit
}

func (*Pet) Kind() Kind { return KindPet }

func (p *Pet) Visits() []*Visit {
	out := make([]*Visit, len(p.visits))
	copy(out, p.visits)
	return out
}

// PetType es compartido por muchas mascotas (sin back-reference).
type PetType struct {
	BaseEntity

	Name string
}

func (*PetType) Kind() Kind { return KindPetType }

// Specialty es compartida por muchos Vets (many-to-many sin lado inverso).
type Specialty struct {
	BaseEntity

	Description string
}

func (*Specialty) Kind() Kind { return KindSpecialty }

type Vet struct {
	Person

	specialties []*Specialty
}

func (*Vet) Kind() Kind { return KindVet }

func (v *Vet) Specialties() []*Specialty {
	out := make([]*Specialty, len(v.specialties))
	copy(out, v.specialties)
	return out
}

// Visit referencia a su Pet por identidad (PetID).
type Visit struct {
	BaseEntity

	Date        time.Time
	Description string
	PetID       int64
}

func (*Visit) Kind() Kind { return KindVisit }

// NewVisit crea una visita con fecha de hoy.
func NewVisit(description string) *Visit {
	return &Visit{
		Date:        Today(time.Now()),
		Description: description,
	}
}

// Today trunca t al día calendario (UTC), como un LocalDate.
func Today(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
