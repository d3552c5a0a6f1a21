package model

// Binder: mantiene las colecciones deduplicadas y las back-references
// (por identidad) entre Owner/Pet y Pet/Visit.
//
// La detección de duplicados se hace al insertar, con Hash+Equal calculados
// en ese momento; no se usa un set que cachee hashes, porque el hash de una
// entidad cambia cuando recibe su identidad.

type member[T any] interface {
	*T
	Equal(*T) bool
	Hash() uint64
}

func indexOf[T any, P member[T]](items []P, v P) int {
	h := v.Hash()
	for i, it := range items {
		if it.Hash() == h && it.Equal((*T)(v)) {
			return i
		}
	}
	return -1
}

func removeAt[P any](items []P, i int) []P {
	out := append(items[:i:i], items[i+1:]...)
	return out
}

// AddPetToOwner inserta pet en la colección del owner y setea su back-reference.
// Devuelve false (sin modificar nada) si pet es nil o ya hay uno igual.
func AddPetToOwner(owner *Owner, pet *Pet) bool {
	if owner == nil || pet == nil {
		return false
	}
	if indexOf(owner.pets, pet) >= 0 {
		return false
	}
	owner.pets = append(owner.pets, pet)
	pet.OwnerID = owner.ID
	return true
}

// OwnerHasPet indica si la colección del owner tiene una mascota igual a pet.
func OwnerHasPet(owner *Owner, pet *Pet) bool {
	if owner == nil || pet == nil {
		return false
	}
	return indexOf(owner.pets, pet) >= 0
}

// RemovePetFromOwner saca de la colección la mascota igual a pet (si existe).
func RemovePetFromOwner(owner *Owner, pet *Pet) bool {
	if owner == nil || pet == nil {
		return false
	}
	i := indexOf(owner.pets, pet)
	if i < 0 {
		return false
	}
	owner.pets = removeAt(owner.pets, i)
	return true
}

// AddVisitToPet reemplaza en el lugar una visita igual ya presente
// (misma identidad con campos actualizados) y setea la back-reference.
func AddVisitToPet(pet *Pet, visit *Visit) {
	if pet == nil || visit == nil {
		return
	}
	if i := indexOf(pet.visits, visit); i >= 0 {
		pet.visits[i] = visit
	} else {
		pet.visits = append(pet.visits, visit)
	}
	visit.PetID = pet.ID
}

// SetPetOnVisit solo vincula si la visita no está ligada a este pet.
// Con pet sin identidad no hay forma de saberlo, así que siempre vincula.
func SetPetOnVisit(visit *Visit, pet *Pet) {
	if visit == nil || pet == nil {
		return
	}
	if visit.PetID != 0 && visit.PetID == pet.ID {
		return
	}
	AddVisitToPet(pet, visit)
}

func RemoveVisitFromPet(pet *Pet, visit *Visit) bool {
	if pet == nil || visit == nil {
		return false
	}
	i := indexOf(pet.visits, visit)
	if i < 0 {
		return false
	}
	pet.visits = removeAt(pet.visits, i)
	return true
}

// AddSpecialtyToVet: inserción con chequeo de duplicados, sin back-reference.
func AddSpecialtyToVet(vet *Vet, specialty *Specialty) bool {
	if vet == nil || specialty == nil {
		return false
	}
	if indexOf(vet.specialties, specialty) >= 0 {
		return false
	}
	vet.specialties = append(vet.specialties, specialty)
	return true
}

// RelinkOwner refresca OwnerID de las mascotas una vez que el owner tiene identidad.
func RelinkOwner(owner *Owner) {
	if owner == nil {
		return
	}
	for _, p := range owner.pets {
		p.OwnerID = owner.ID
	}
}

// RelinkPet refresca PetID de las visitas una vez que el pet tiene identidad.
func RelinkPet(pet *Pet) {
	if pet == nil {
		return
	}
	for _, v := range pet.visits {
		v.PetID = pet.ID
	}
}
