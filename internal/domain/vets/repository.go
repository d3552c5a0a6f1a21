package vets

import (
	"context"

	"petclinic/internal/domain/model"
)

type Repository interface {
	Save(ctx context.Context, v *model.Vet) (*model.Vet, error)
	FindAll(ctx context.Context) ([]*model.Vet, error)
	FindByID(ctx context.Context, id int64) (*model.Vet, error)
	Delete(ctx context.Context, v *model.Vet) error
	DeleteByID(ctx context.Context, id int64) error

	FindByLastName(ctx context.Context, lastName string) (*model.Vet, error)
	FindAllByLastNameLike(ctx context.Context, lastName string) ([]*model.Vet, error)
}
