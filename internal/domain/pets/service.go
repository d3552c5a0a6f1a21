package pets

import (
	"context"
	"errors"
	"fmt"

	"petclinic/internal/domain/model"
	"petclinic/internal/platform/lockorder"
)

var (
	ErrNoPetType = fmt.Errorf("%w: Pet must have a PetType", model.ErrMissingPrerequisite)
	ErrNoOwner   = fmt.Errorf("%w: Pet must have an existing Owner with a valid identity", model.ErrMissingPrerequisite)
)

// Puertos hacia otros módulos (evitan ciclos de imports).

type OwnerFinder interface {
	FindAll(ctx context.Context) ([]*model.Owner, error)
	FindByID(ctx context.Context, id int64) (*model.Owner, error)
}

type PetTypeSaver interface {
	Save(ctx context.Context, t *model.PetType) (*model.PetType, error)
}

type VisitDeleter interface {
	Delete(ctx context.Context, v *model.Visit) error
}

type Service struct {
	repo     Repository
	owners   OwnerFinder
	petTypes PetTypeSaver
	visits   VisitDeleter
	locks    *lockorder.Manager
}

func NewService(repo Repository, owners OwnerFinder, petTypes PetTypeSaver, visits VisitDeleter, locks *lockorder.Manager) *Service {
	return &Service{
		repo:     repo,
		owners:   owners,
		petTypes: petTypes,
		visits:   visits,
		locks:    locks,
	}
}

// Save valida prerequisitos antes de tocar cualquier store:
//   - PetType presente (si no tiene identidad se guarda en cascada);
//   - Owner con identidad y existente;
//   - si el pet ya tiene identidad, debe existir (update de inexistente = ErrNotFound).
//
// Al final registra la mascota en la colección del owner; si cambió de owner
// la saca de la colección anterior.
func (s *Service) Save(ctx context.Context, p *model.Pet) (*model.Pet, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: pet is nil", model.ErrInvalidArgument)
	}

	ctx, release := s.locks.Acquire(ctx, model.KindOwner, model.KindPet, model.KindPetType)
	defer release()

	if p.PetType == nil {
		return nil, ErrNoPetType
	}
	if p.OwnerID == 0 {
		return nil, ErrNoOwner
	}
	owner, err := s.owners.FindByID(ctx, p.OwnerID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, ErrNoOwner
		}
		return nil, err
	}
	var stored *model.Pet
	if !p.IsNew() {
		if stored, err = s.repo.FindByID(ctx, p.ID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return nil, fmt.Errorf("%w: pet %d", model.ErrNotFound, p.ID)
			}
			return nil, err
		}
	}

	if p.PetType.IsNew() {
		pt, err := s.petTypes.Save(ctx, p.PetType)
		if err != nil {
			return nil, fmt.Errorf("pet %q: save pet type: %w", p.Name, err)
		}
		p.PetType = pt
	}

	saved, err := s.repo.Save(ctx, p)
	if err != nil {
		return nil, err
	}
	model.RelinkPet(saved)
	if stored != nil && !model.OwnerHasPet(owner, saved) {
		if err := s.detach(ctx, saved, stored, owner.ID); err != nil {
			return nil, err
		}
	}
	model.AddPetToOwner(owner, saved)

	return saved, nil
}

// detach saca la mascota de la colección de cualquier owner que no sea keep.
// Si stored es otra instancia, su OwnerID dice cuál era el owner anterior;
// si es la misma, el OwnerID ya fue pisado y hay que recorrer los owners.
func (s *Service) detach(ctx context.Context, p, stored *model.Pet, keep int64) error {
	if stored != p {
		if stored.OwnerID == 0 || stored.OwnerID == keep {
			return nil
		}
		prev, err := s.owners.FindByID(ctx, stored.OwnerID)
		switch {
		case err == nil:
			model.RemovePetFromOwner(prev, p)
		case !errors.Is(err, model.ErrNotFound):
			return err
		}
		return nil
	}

	all, err := s.owners.FindAll(ctx)
	if err != nil {
		return err
	}
	for _, o := range all {
		if o.ID != keep {
			model.RemovePetFromOwner(o, p)
		}
	}
	return nil
}

// View ejecuta fn con owners, mascotas y visitas bloqueados para lectura.
// Las entidades obtenidas dentro de fn solo se leen ahí.
func (s *Service) View(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, release := s.locks.Read(ctx, model.KindOwner, model.KindPet, model.KindVisit)
	defer release()
	return fn(ctx)
}

// Update ejecuta fn con los locks de escritura de Save y Delete tomados:
// chequear, modificar la mascota guardada y guardarla es atómico.
func (s *Service) Update(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, release := s.locks.Acquire(ctx, model.KindOwner, model.KindPet, model.KindVisit, model.KindPetType)
	defer release()
	return fn(ctx)
}

func (s *Service) FindAll(ctx context.Context) ([]*model.Pet, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service) FindByID(ctx context.Context, id int64) (*model.Pet, error) {
	return s.repo.FindByID(ctx, id)
}

// Delete borra primero cada visita vinculada, saca la mascota de la colección
// de su owner y recién después la borra del store.
func (s *Service) Delete(ctx context.Context, p *model.Pet) error {
	if p == nil {
		return fmt.Errorf("%w: pet is nil", model.ErrInvalidArgument)
	}

	ctx, release := s.locks.Acquire(ctx, model.KindOwner, model.KindPet, model.KindVisit)
	defer release()

	for _, v := range p.Visits() {
		if err := s.visits.Delete(ctx, v); err != nil {
			return fmt.Errorf("pet %d: delete visit %d: %w", p.ID, v.ID, err)
		}
	}

	if p.OwnerID != 0 {
		owner, err := s.owners.FindByID(ctx, p.OwnerID)
		switch {
		case err == nil:
			model.RemovePetFromOwner(owner, p)
		case !errors.Is(err, model.ErrNotFound):
			return err
		}
	}

	return s.repo.Delete(ctx, p)
}

// DeleteByID aplica la misma cascada que Delete; no-op si no existe.
func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	ctx, release := s.locks.Acquire(ctx, model.KindOwner, model.KindPet, model.KindVisit)
	defer release()

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil
		}
		return err
	}
	return s.Delete(ctx, p)
}
