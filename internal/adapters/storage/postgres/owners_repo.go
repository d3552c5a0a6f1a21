package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"petclinic/internal/domain/model"
	"petclinic/internal/domain/owners"
)

type OwnersRepo struct {
	db *sql.DB
}

var _ owners.Repository = (*OwnersRepo)(nil)

func NewOwnersRepo(db *sql.DB) *OwnersRepo {
	return &OwnersRepo{db: db}
}

// Save guarda solo la fila del owner; las mascotas las persiste pets.Service.
func (r *OwnersRepo) Save(ctx context.Context, o *model.Owner) (*model.Owner, error) {
	if o == nil {
		return nil, fmt.Errorf("%w: owner is nil", model.ErrInvalidArgument)
	}
	err := save(ctx, r.db, "owners", `
		INSERT INTO owners (id, first_name, last_name, address, city, telephone)
		VALUES (`+nextIDExpr("owners")+`, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			telephone = EXCLUDED.telephone
		RETURNING id
	`, o, o.FirstName, o.LastName, o.Address, o.City, o.Telephone)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OwnersRepo) FindAll(ctx context.Context) ([]*model.Owner, error) {
	return r.load(ctx, `ORDER BY id`)
}

func (r *OwnersRepo) FindByID(ctx context.Context, id int64) (*model.Owner, error) {
	out, err := r.load(ctx, `WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, notFound(model.KindOwner, id)
	}
	return out[0], nil
}

func (r *OwnersRepo) FindByLastName(ctx context.Context, lastName string) (*model.Owner, error) {
	out, err := r.load(ctx, `WHERE last_name = $1 ORDER BY id LIMIT 1`, lastName)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: owner with last name %q", model.ErrNotFound, lastName)
	}
	return out[0], nil
}

func (r *OwnersRepo) FindAllByLastNameLike(ctx context.Context, lastName string) ([]*model.Owner, error) {
	return r.load(ctx, `WHERE last_name LIKE $1 ORDER BY id`, likePattern(lastName))
}

func (r *OwnersRepo) Delete(ctx context.Context, o *model.Owner) error {
	if o == nil {
		return fmt.Errorf("%w: owner is nil", model.ErrInvalidArgument)
	}
	if o.IsNew() {
		return nil
	}
	return r.DeleteByID(ctx, o.ID)
}

func (r *OwnersRepo) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM owners WHERE id = $1`, id)
	return err
}

func (r *OwnersRepo) load(ctx context.Context, clause string, args ...any) ([]*model.Owner, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, address, city, telephone
		FROM owners
		`+clause, args...)
	if err != nil {
		return nil, err
	}

	out := make([]*model.Owner, 0)
	for rows.Next() {
		o := &model.Owner{}
		if err := rows.Scan(&o.ID, &o.FirstName, &o.LastName, &o.Address, &o.City, &o.Telephone); err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for _, o := range out {
		ps, err := loadPets(ctx, r.db, `WHERE owner_id = $1 ORDER BY id`, o.ID)
		if err != nil {
			return nil, fmt.Errorf("owner %d: %w", o.ID, err)
		}
		for _, p := range ps {
			model.AddPetToOwner(o, p)
		}
	}
	return out, nil
}
