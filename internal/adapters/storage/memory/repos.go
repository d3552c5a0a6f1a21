package memory

import (
	"context"
	"fmt"
	"strings"

	"petclinic/internal/domain/model"
	"petclinic/internal/domain/owners"
	"petclinic/internal/domain/pets"
	"petclinic/internal/domain/pettypes"
	"petclinic/internal/domain/specialties"
	"petclinic/internal/domain/vets"
	"petclinic/internal/domain/visits"
)

type ownerRepo struct {
	*Store[model.Owner, *model.Owner]
}

func NewOwnerRepo(opts ...Option) owners.Repository {
	return &ownerRepo{Store: NewStore[model.Owner](model.KindOwner, opts...)}
}

func (r *ownerRepo) FindByLastName(_ context.Context, lastName string) (*model.Owner, error) {
	found := r.filter(func(o *model.Owner) bool { return o.LastName == lastName })
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: owner with last name %q", model.ErrNotFound, lastName)
	}
	return found[0], nil
}

func (r *ownerRepo) FindAllByLastNameLike(_ context.Context, lastName string) ([]*model.Owner, error) {
	return r.filter(func(o *model.Owner) bool { return strings.Contains(o.LastName, lastName) }), nil
}

type vetRepo struct {
	*Store[model.Vet, *model.Vet]
}

func NewVetRepo(opts ...Option) vets.Repository {
	return &vetRepo{Store: NewStore[model.Vet](model.KindVet, opts...)}
}

func (r *vetRepo) FindByLastName(_ context.Context, lastName string) (*model.Vet, error) {
	found := r.filter(func(v *model.Vet) bool { return v.LastName == lastName })
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: vet with last name %q", model.ErrNotFound, lastName)
	}
	return found[0], nil
}

func (r *vetRepo) FindAllByLastNameLike(_ context.Context, lastName string) ([]*model.Vet, error) {
	return r.filter(func(v *model.Vet) bool { return strings.Contains(v.LastName, lastName) }), nil
}

type petTypeRepo struct {
	*Store[model.PetType, *model.PetType]
}

func NewPetTypeRepo(opts ...Option) pettypes.Repository {
	return &petTypeRepo{Store: NewStore[model.PetType](model.KindPetType, opts...)}
}

func (r *petTypeRepo) FindByName(_ context.Context, name string) (*model.PetType, error) {
	found := r.filter(func(t *model.PetType) bool { return t.Name == name })
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: pet type %q", model.ErrNotFound, name)
	}
	return found[0], nil
}

func NewPetRepo(opts ...Option) pets.Repository {
	return NewStore[model.Pet](model.KindPet, opts...)
}

func NewVisitRepo(opts ...Option) visits.Repository {
	return NewStore[model.Visit](model.KindVisit, opts...)
}

func NewSpecialtyRepo(opts ...Option) specialties.Repository {
	return NewStore[model.Specialty](model.KindSpecialty, opts...)
}
