package model

// Kind identifica el tipo concreto de una entidad.
// El orden numérico es también el orden global de locks entre stores.
type Kind int

const (
	KindOwner Kind = iota
	KindVet
	KindPet
	KindVisit
	KindPetType
	KindSpecialty

	KindCount
)

func (k Kind) String() string {
	switch k {
	case KindOwner:
		return "owner"
	case KindVet:
		return "vet"
	case KindPet:
		return "pet"
	case KindVisit:
		return "visit"
	case KindPetType:
		return "pet_type"
	case KindSpecialty:
		return "specialty"
	default:
		return "unknown"
	}
}

// Entity lo implementan todas las entidades que viven en un store.
type Entity interface {
	GetID() int64
	SetID(id int64)
	IsNew() bool
	Kind() Kind
}

// BaseEntity lleva la identidad. ID == 0 significa "sin asignar".
// Una vez asignada no cambia ni vuelve a 0.
type BaseEntity struct {
	ID int64
}

func (b *BaseEntity) GetID() int64 { return b.ID }

// SetID solo tiene efecto mientras la entidad es nueva.
func (b *BaseEntity) SetID(id int64) {
	if b.ID != 0 || id <= 0 {
		return
	}
	b.ID = id
}

func (b *BaseEntity) IsNew() bool { return b.ID == 0 }

// Person es el supertipo de Owner y Vet.
type Person struct {
	BaseEntity

	FirstName string
	LastName  string
}
