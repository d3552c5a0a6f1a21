package owners

import (
	"context"
	"fmt"

	"petclinic/internal/domain/model"
	"petclinic/internal/platform/lockorder"
)

// PetSaver es el coordinador de mascotas (pets.Service).
// Se declara acá para evitar ciclos de imports (owners <-> pets).
type PetSaver interface {
	Save(ctx context.Context, p *model.Pet) (*model.Pet, error)
}

type Service struct {
	repo  Repository
	pets  PetSaver
	locks *lockorder.Manager
}

func NewService(repo Repository, pets PetSaver, locks *lockorder.Manager) *Service {
	return &Service{
		repo:  repo,
		pets:  pets,
		locks: locks,
	}
}

// Save guarda el owner y en cascada cada mascota de su colección.
// No hay rollback: si falla una mascota, lo ya guardado queda.
func (s *Service) Save(ctx context.Context, o *model.Owner) (*model.Owner, error) {
	if o == nil {
		return nil, fmt.Errorf("%w: owner is nil", model.ErrInvalidArgument)
	}

	ctx, release := s.locks.Acquire(ctx, model.KindOwner, model.KindPet, model.KindPetType)
	defer release()

	// El owner va primero: las mascotas necesitan su identidad.
	saved, err := s.repo.Save(ctx, o)
	if err != nil {
		return nil, err
	}
	model.RelinkOwner(saved)

	for _, p := range saved.Pets() {
		if _, err := s.pets.Save(ctx, p); err != nil {
			return nil, fmt.Errorf("owner %d: save pet %q: %w", saved.ID, p.Name, err)
		}
	}
	return saved, nil
}

// View ejecuta fn con owners y mascotas bloqueados para lectura. Las
// entidades obtenidas dentro de fn solo se leen ahí.
func (s *Service) View(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, release := s.locks.Read(ctx, model.KindOwner, model.KindPet)
	defer release()
	return fn(ctx)
}

// Update ejecuta fn con los locks de escritura de Save tomados: fn puede
// buscar un owner, modificarlo y guardarlo sin que otro coordinador lo toque.
func (s *Service) Update(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, release := s.locks.Acquire(ctx, model.KindOwner, model.KindPet, model.KindPetType)
	defer release()
	return fn(ctx)
}

func (s *Service) FindAll(ctx context.Context) ([]*model.Owner, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service) FindByID(ctx context.Context, id int64) (*model.Owner, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) FindByLastName(ctx context.Context, lastName string) (*model.Owner, error) {
	return s.repo.FindByLastName(ctx, lastName)
}

// FindAllByLastNameLike con lastName vacío devuelve todos.
func (s *Service) FindAllByLastNameLike(ctx context.Context, lastName string) ([]*model.Owner, error) {
	return s.repo.FindAllByLastNameLike(ctx, lastName)
}

func (s *Service) Delete(ctx context.Context, o *model.Owner) error {
	if o == nil {
		return fmt.Errorf("%w: owner is nil", model.ErrInvalidArgument)
	}
	ctx, release := s.locks.Acquire(ctx, model.KindOwner)
	defer release()
	return s.repo.Delete(ctx, o)
}

func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	ctx, release := s.locks.Acquire(ctx, model.KindOwner)
	defer release()
	return s.repo.DeleteByID(ctx, id)
}
