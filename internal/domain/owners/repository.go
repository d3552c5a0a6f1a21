package owners

import (
	"context"

	"petclinic/internal/domain/model"
)

type Repository interface {
	Save(ctx context.Context, o *model.Owner) (*model.Owner, error)
	FindAll(ctx context.Context) ([]*model.Owner, error)
	FindByID(ctx context.Context, id int64) (*model.Owner, error)
	Delete(ctx context.Context, o *model.Owner) error
	DeleteByID(ctx context.Context, id int64) error

	// FindByLastName: match exacto; si hay varios gana el de menor ID.
	FindByLastName(ctx context.Context, lastName string) (*model.Owner, error)
	// FindAllByLastNameLike: substring case-sensitive ("%lastName%").
	FindAllByLastNameLike(ctx context.Context, lastName string) ([]*model.Owner, error)
}
