package visits

import (
	"context"

	"petclinic/internal/domain/model"
)

type Repository interface {
	Save(ctx context.Context, v *model.Visit) (*model.Visit, error)
	FindAll(ctx context.Context) ([]*model.Visit, error)
	FindByID(ctx context.Context, id int64) (*model.Visit, error)
	Delete(ctx context.Context, v *model.Visit) error
	DeleteByID(ctx context.Context, id int64) error
}
