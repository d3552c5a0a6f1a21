package specialties

import (
	"context"
	"fmt"

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

func (s *Service) Save(ctx context.Context, sp *model.Specialty) (*model.Specialty, error) {
	if sp == nil {
		return nil, fmt.Errorf("%w: specialty is nil", model.ErrInvalidArgument)
	}
	ctx, release := s.locks.Acquire(ctx, model.KindSpecialty)
	defer release()
	return s.repo.Save(ctx, sp)
}

func (s *Service) FindAll(ctx context.Context) ([]*model.Specialty, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service) FindByID(ctx context.Context, id int64) (*model.Specialty, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, sp *model.Specialty) error {
	if sp == nil {
		return fmt.Errorf("%w: specialty is nil", model.ErrInvalidArgument)
	}
	ctx, release := s.locks.Acquire(ctx, model.KindSpecialty)
	defer release()
	return s.repo.Delete(ctx, sp)
}

func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	ctx, release := s.locks.Acquire(ctx, model.KindSpecialty)
	defer release()
	return s.repo.DeleteByID(ctx, id)
}
