package pets

import (
	"context"

	"petclinic/internal/domain/model"
)

type Repository interface {
	Save(ctx context.Context, p *model.Pet) (*model.Pet, error)
	FindAll(ctx context.Context) ([]*model.Pet, error)
	FindByID(ctx context.Context, id int64) (*model.Pet, error)
	Delete(ctx context.Context, p *model.Pet) error
	DeleteByID(ctx context.Context, id int64) error
}
