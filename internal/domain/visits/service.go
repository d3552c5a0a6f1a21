package visits

import (
	"context"
	"errors"
	"fmt"
	"time"

	"petclinic/internal/domain/model"
	"petclinic/internal/platform/lockorder"
)

var ErrNoPet = fmt.Errorf("%w: Visit must reference an existing Pet", model.ErrMissingPrerequisite)

// PetFinder resuelve la back-reference Visit.PetID (repositorio de pets).
type PetFinder interface {
	FindByID(ctx context.Context, id int64) (*model.Pet, error)
}

type Service struct {
	repo  Repository
	pets  PetFinder
	locks *lockorder.Manager
	now   func() time.Time
}

func NewService(repo Repository, pets PetFinder, locks *lockorder.Manager) *Service {
	return &Service{
		repo:  repo,
		pets:  pets,
		locks: locks,
		now:   time.Now,
	}
}

// Save exige un Pet persistido. Después de guardar vuelve a registrar la
// visita en la colección del pet (el store no lo hace solo).
func (s *Service) Save(ctx context.Context, v *model.Visit) (*model.Visit, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: visit is nil", model.ErrInvalidArgument)
	}

	ctx, release := s.locks.Acquire(ctx, model.KindPet, model.KindVisit)
	defer release()

	pet, err := s.resolvePet(ctx, v)
	if err != nil {
		return nil, err
	}

	if v.Date.IsZero() {
		v.Date = model.Today(s.now())
	}

	saved, err := s.repo.Save(ctx, v)
	if err != nil {
		// SetPetOnVisit pudo haberla vinculado antes de guardar
		if v.IsNew() {
			model.RemoveVisitFromPet(pet, v)
		}
		return nil, err
	}
	model.AddVisitToPet(pet, saved)
	return saved, nil
}

// View ejecuta fn con mascotas y visitas bloqueadas para lectura.
func (s *Service) View(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, release := s.locks.Read(ctx, model.KindPet, model.KindVisit)
	defer release()
	return fn(ctx)
}

// Update ejecuta fn con los locks de escritura de Save tomados.
func (s *Service) Update(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, release := s.locks.Acquire(ctx, model.KindPet, model.KindVisit)
	defer release()
	return fn(ctx)
}

func (s *Service) FindAll(ctx context.Context) ([]*model.Visit, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service) FindByID(ctx context.Context, id int64) (*model.Visit, error) {
	return s.repo.FindByID(ctx, id)
}

// ListByPet devuelve las visitas vinculadas a la mascota.
func (s *Service) ListByPet(ctx context.Context, petID int64) ([]*model.Visit, error) {
	ctx, release := s.locks.Read(ctx, model.KindPet, model.KindVisit)
	defer release()

	pet, err := s.pets.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	return pet.Visits(), nil
}

func (s *Service) Delete(ctx context.Context, v *model.Visit) error {
	if v == nil {
		return fmt.Errorf("%w: visit is nil", model.ErrInvalidArgument)
	}

	ctx, release := s.locks.Acquire(ctx, model.KindPet, model.KindVisit)
	defer release()

	if v.PetID != 0 {
		pet, err := s.pets.FindByID(ctx, v.PetID)
		switch {
		case err == nil:
			model.RemoveVisitFromPet(pet, v)
		case !errors.Is(err, model.ErrNotFound):
			return err
		}
	}
	return s.repo.Delete(ctx, v)
}

func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	ctx, release := s.locks.Acquire(ctx, model.KindPet, model.KindVisit)
	defer release()

	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil
		}
		return err
	}
	return s.Delete(ctx, v)
}

func (s *Service) resolvePet(ctx context.Context, v *model.Visit) (*model.Pet, error) {
	if v.PetID == 0 {
		return nil, ErrNoPet
	}
	pet, err := s.pets.FindByID(ctx, v.PetID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, ErrNoPet
		}
		return nil, err
	}
	return pet, nil
}
