package vets

import (
	"context"
	"fmt"

	"petclinic/internal/domain/model"
	"petclinic/internal/platform/lockorder"
)

// SpecialtySaver es specialties.Service visto desde vets.
type SpecialtySaver interface {
	Save(ctx context.Context, s *model.Specialty) (*model.Specialty, error)
}

type Service struct {
	repo        Repository
	specialties SpecialtySaver
	locks       *lockorder.Manager
}

func NewService(repo Repository, specialties SpecialtySaver, locks *lockorder.Manager) *Service {
	return &Service{
		repo:        repo,
		specialties: specialties,
		locks:       locks,
	}
}

// Save guarda en cascada cada especialidad del vet y después el vet.
func (s *Service) Save(ctx context.Context, v *model.Vet) (*model.Vet, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: vet is nil", model.ErrInvalidArgument)
	}

	ctx, release := s.locks.Acquire(ctx, model.KindVet, model.KindSpecialty)
	defer release()

	for _, sp := range v.Specialties() {
		if _, err := s.specialties.Save(ctx, sp); err != nil {
			return nil, fmt.Errorf("vet %q: save specialty %q: %w", v.LastName, sp.Description, err)
		}
	}
	return s.repo.Save(ctx, v)
}

// View ejecuta fn con vets y especialidades bloqueados para lectura.
func (s *Service) View(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, release := s.locks.Read(ctx, model.KindVet, model.KindSpecialty)
	defer release()
	return fn(ctx)
}

func (s *Service) FindAll(ctx context.Context) ([]*model.Vet, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service) FindByID(ctx context.Context, id int64) (*model.Vet, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) FindByLastName(ctx context.Context, lastName string) (*model.Vet, error) {
	return s.repo.FindByLastName(ctx, lastName)
}

func (s *Service) FindAllByLastNameLike(ctx context.Context, lastName string) ([]*model.Vet, error) {
	return s.repo.FindAllByLastNameLike(ctx, lastName)
}

func (s *Service) Delete(ctx context.Context, v *model.Vet) error {
	if v == nil {
		return fmt.Errorf("%w: vet is nil", model.ErrInvalidArgument)
	}
	ctx, release := s.locks.Acquire(ctx, model.KindVet)
	defer release()
	return s.repo.Delete(ctx, v)
}

func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	ctx, release := s.locks.Acquire(ctx, model.KindVet)
	defer release()
	return s.repo.DeleteByID(ctx, id)
}
