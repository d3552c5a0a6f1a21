package specialties

import (
	"context"

	"petclinic/internal/domain/model"
)

type Repository interface {
	Save(ctx context.Context, s *model.Specialty) (*model.Specialty, error)
	FindAll(ctx context.Context) ([]*model.Specialty, error)
	FindByID(ctx context.Context, id int64) (*model.Specialty, error)
	Delete(ctx context.Context, s *model.Specialty) error
	DeleteByID(ctx context.Context, id int64) error
}
