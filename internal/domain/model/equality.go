package model

import (
	"encoding/binary"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Igualdad en dos fases:
//   - ambas identidades sin asignar: se comparan los campos no relacionales,
//     primero los del supertipo (Person) y luego los del subtipo;
//   - solo una asignada: distintas;
//   - ambas asignadas: iguales sii los IDs coinciden (el resto se ignora).
//
// Hash sigue la misma regla, así que se recalcula siempre en el momento de
// la búsqueda: cambia cuando la entidad recibe su identidad.

// compareIdentity devuelve resolved=true cuando al menos una identidad está asignada.
func compareIdentity(a, b *BaseEntity) (equal, resolved bool) {
	switch {
	case a.ID == 0 && b.ID == 0:
		return true, false
	case a.ID == 0 || b.ID == 0:
		return false, true
	default:
		return a.ID == b.ID, true
	}
}

// comparePerson resuelve si la identidad o los campos de Person ya deciden el resultado.
func comparePerson(a, b *Person) (equal, resolved bool) {
	if eq, ok := compareIdentity(&a.BaseEntity, &b.BaseEntity); ok {
		return eq, true
	}
	if a.FirstName != b.FirstName || a.LastName != b.LastName {
		return false, true
	}
	return true, false
}

func (o *Owner) Equal(other *Owner) bool {
	if o == other {
		return true
	}
	if o == nil || other == nil {
		return false
	}
	if eq, resolved := comparePerson(&o.Person, &other.Person); resolved {
		return eq
	}
	return o.Address == other.Address &&
		o.City == other.City &&
		o.Telephone == other.Telephone
}

func (o *Owner) Hash() uint64 {
	h := newHasher(KindOwner)
	if !o.IsNew() {
		return h.id(o.ID)
	}
	h.str(o.FirstName)
	h.str(o.LastName)
	h.str(o.Address)
	h.str(o.City)
	h.str(o.Telephone)
	return h.sum()
}

func (v *Vet) Equal(other *Vet) bool {
	if v == other {
		return true
	}
	if v == nil || other == nil {
		return false
	}
	eq, _ := comparePerson(&v.Person, &other.Person)
	return eq
}

func (v *Vet) Hash() uint64 {
	h := newHasher(KindVet)
	if !v.IsNew() {
		return h.id(v.ID)
	}
	h.str(v.FirstName)
	h.str(v.LastName)
	return h.sum()
}

func (p *Pet) Equal(other *Pet) bool {
	if p == other {
		return true
	}
	if p == nil || other == nil {
		return false
	}
	if eq, resolved := compareIdentity(&p.BaseEntity, &other.BaseEntity); resolved {
		return eq
	}
	return p.Name == other.Name && sameDatePtr(p.BirthDate, other.BirthDate)
}

func (p *Pet) Hash() uint64 {
	h := newHasher(KindPet)
	if !p.IsNew() {
		return h.id(p.ID)
	}
	h.str(p.Name)
	h.datePtr(p.BirthDate)
	return h.sum()
}

func (t *PetType) Equal(other *PetType) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	if eq, resolved := compareIdentity(&t.BaseEntity, &other.BaseEntity); resolved {
		return eq
	}
	return t.Name == other.Name
}

func (t *PetType) Hash() uint64 {
	h := newHasher(KindPetType)
	if !t.IsNew() {
		return h.id(t.ID)
	}
	h.str(t.Name)
	return h.sum()
}

func (s *Specialty) Equal(other *Specialty) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil {
		return false
	}
	if eq, resolved := compareIdentity(&s.BaseEntity, &other.BaseEntity); resolved {
		return eq
	}
	return s.Description == other.Description
}

func (s *Specialty) Hash() uint64 {
	h := newHasher(KindSpecialty)
	if !s.IsNew() {
		return h.id(s.ID)
	}
	h.str(s.Description)
	return h.sum()
}

func (v *Visit) Equal(other *Visit) bool {
	if v == other {
		return true
	}
	if v == nil || other == nil {
		return false
	}
	if eq, resolved := compareIdentity(&v.BaseEntity, &other.BaseEntity); resolved {
		return eq
	}
	return sameDate(v.Date, other.Date) && v.Description == other.Description
}

func (v *Visit) Hash() uint64 {
	h := newHasher(KindVisit)
	if !v.IsNew() {
		return h.id(v.ID)
	}
	h.date(v.Date)
	h.str(v.Description)
	return h.sum()
}

// sameDate compara por día calendario; el zero value cuenta como "sin fecha".
func sameDate(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return a.IsZero() && b.IsZero()
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func sameDatePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return sameDate(*a, *b)
}

// hasher: xxhash sobre el discriminador de tipo + campos.
type hasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

func newHasher(k Kind) *hasher {
	h := &hasher{d: xxhash.New()}
	h.u64(uint64(k))
	return h
}

func (h *hasher) u64(v uint64) {
	binary.LittleEndian.PutUint64(h.buf[:], v)
	_, _ = h.d.Write(h.buf[:])
}

// id cierra el hash de una entidad persistida.
func (h *hasher) id(id int64) uint64 {
	h.u64(1)
	h.u64(uint64(id))
	return h.d.Sum64()
}

func (h *hasher) str(s string) {
	// largo como prefijo: ("ab","c") != ("a","bc")
	h.u64(uint64(len(s)))
	_, _ = h.d.WriteString(s)
}

func (h *hasher) date(t time.Time) {
	if t.IsZero() {
		h.u64(0)
		return
	}
	y, m, d := t.Date()
	h.u64(uint64(y)<<16 | uint64(m)<<8 | uint64(d))
}

func (h *hasher) datePtr(t *time.Time) {
	if t == nil {
		h.u64(0)
		return
	}
	h.date(*t)
}

func (h *hasher) sum() uint64 {
	h.u64(0)
	return h.d.Sum64()
}
