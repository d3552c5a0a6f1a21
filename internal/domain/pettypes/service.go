package pettypes

import (
	"context"
	"fmt"
	"strings"

	"petclinic/internal/domain/model"
	"petclinic/internal/platform/lockorder"
)

type Service struct {
	repo  Repository
	locks *lockorder.Manager
}

func NewService(repo Repository, locks *lockorder.Manager) *Service {
	return &Service{repo: repo, locks: locks}
}

func (s *Service) Save(ctx context.Context, t *model.PetType) (*model.PetType, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: pet type is nil", model.ErrInvalidArgument)
	}
	ctx, release := s.locks.Acquire(ctx, model.KindPetType)
	defer release()
	return s.repo.Save(ctx, t)
}

func (s *Service) FindAll(ctx context.Context) ([]*model.PetType, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service) FindByID(ctx context.Context, id int64) (*model.PetType, error) {
	return s.repo.FindByID(ctx, id)
}

// FindByName parsea el nombre que llega en los formularios/JSON a un PetType existente.
func (s *Service) FindByName(ctx context.Context, name string) (*model.PetType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: pet type name is empty", model.ErrInvalidArgument)
	}
	return s.repo.FindByName(ctx, name)
}

func (s *Service) Delete(ctx context.Context, t *model.PetType) error {
	if t == nil {
		return fmt.Errorf("%w: pet type is nil", model.ErrInvalidArgument)
	}
	ctx, release := s.locks.Acquire(ctx, model.KindPetType)
	defer release()
	return s.repo.Delete(ctx, t)
}

func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	ctx, release := s.locks.Acquire(ctx, model.KindPetType)
	defer release()
	return s.repo.DeleteByID(ctx, id)
}
