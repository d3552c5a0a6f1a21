package pettypes

import (
	"context"

	"petclinic/internal/domain/model"
)

type Repository interface {
	Save(ctx context.Context, t *model.PetType) (*model.PetType, error)
	FindAll(ctx context.Context) ([]*model.PetType, error)
	FindByID(ctx context.Context, id int64) (*model.PetType, error)
	Delete(ctx context.Context, t *model.PetType) error
	DeleteByID(ctx context.Context, id int64) error

	// FindByName: match exacto sobre Name (usado para parsear el tipo que llega por HTTP).
	FindByName(ctx context.Context, name string) (*model.PetType, error)
}
