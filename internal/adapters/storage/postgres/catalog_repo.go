package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"petclinic/internal/domain/model"
	"petclinic/internal/domain/pettypes"
	"petclinic/internal/domain/specialties"
)

type PetTypesRepo struct {
	db *sql.DB
}

var _ pettypes.Repository = (*PetTypesRepo)(nil)

func NewPetTypesRepo(db *sql.DB) *PetTypesRepo {
	return &PetTypesRepo{db: db}
}

func (r *PetTypesRepo) Save(ctx context.Context, t *model.PetType) (*model.PetType, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: pet type is nil", model.ErrInvalidArgument)
	}
	err := save(ctx, r.db, "pet_types", `
		INSERT INTO pet_types (id, name)
		VALUES (`+nextIDExpr("pet_types")+`, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, t, t.Name)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *PetTypesRepo) FindAll(ctx context.Context) ([]*model.PetType, error) {
	return queryPetTypes(ctx, r.db, `SELECT id, name FROM pet_types ORDER BY id`)
}

func (r *PetTypesRepo) FindByID(ctx context.Context, id int64) (*model.PetType, error) {
	return findPetType(ctx, r.db, id)
}

func (r *PetTypesRepo) FindByName(ctx context.Context, name string) (*model.PetType, error) {
	out, err := queryPetTypes(ctx, r.db, `SELECT id, name FROM pet_types WHERE name = $1 ORDER BY id LIMIT 1`, name)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: pet type %q", model.ErrNotFound, name)
	}
	return out[0], nil
}

func (r *PetTypesRepo) Delete(ctx context.Context, t *model.PetType) error {
	if t == nil {
		return fmt.Errorf("%w: pet type is nil", model.ErrInvalidArgument)
	}
	if t.IsNew() {
		return nil
	}
	return r.DeleteByID(ctx, t.ID)
}

func (r *PetTypesRepo) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pet_types WHERE id = $1`, id)
	return err
}

func findPetType(ctx context.Context, q querier, id int64) (*model.PetType, error) {
	t := &model.PetType{}
	err := q.QueryRowContext(ctx, `SELECT id, name FROM pet_types WHERE id = $1`, id).Scan(&t.ID, &t.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound(model.KindPetType, id)
		}
		return nil, err
	}
	return t, nil
}

func queryPetTypes(ctx context.Context, q querier, query string, args ...any) ([]*model.PetType, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.PetType, 0)
	for rows.Next() {
		t := &model.PetType{}
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

type SpecialtiesRepo struct {
	db *sql.DB
}

var _ specialties.Repository = (*SpecialtiesRepo)(nil)

func NewSpecialtiesRepo(db *sql.DB) *SpecialtiesRepo {
	return &SpecialtiesRepo{db: db}
}

func (r *SpecialtiesRepo) Save(ctx context.Context, s *model.Specialty) (*model.Specialty, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: specialty is nil", model.ErrInvalidArgument)
	}
	err := save(ctx, r.db, "specialties", `
		INSERT INTO specialties (id, description)
		VALUES (`+nextIDExpr("specialties")+`, $2)
		ON CONFLICT (id) DO UPDATE SET description = EXCLUDED.description
		RETURNING id
	`, s, s.Description)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SpecialtiesRepo) FindAll(ctx context.Context) ([]*model.Specialty, error) {
	return querySpecialties(ctx, r.db, `SELECT id, description FROM specialties ORDER BY id`)
}

func (r *SpecialtiesRepo) FindByID(ctx context.Context, id int64) (*model.Specialty, error) {
	out, err := querySpecialties(ctx, r.db, `SELECT id, description FROM specialties WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, notFound(model.KindSpecialty, id)
	}
	return out[0], nil
}

func (r *SpecialtiesRepo) Delete(ctx context.Context, s *model.Specialty) error {
	if s == nil {
		return fmt.Errorf("%w: specialty is nil", model.ErrInvalidArgument)
	}
	if s.IsNew() {
		return nil
	}
	return r.DeleteByID(ctx, s.ID)
}

func (r *SpecialtiesRepo) DeleteByID(ctx context.Context, id int64) error {
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM vet_specialties WHERE specialty_id = $1`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM specialties WHERE id = $1`, id)
		return err
	})
}

func querySpecialties(ctx context.Context, q querier, query string, args ...any) ([]*model.Specialty, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Specialty, 0)
	for rows.Next() {
		s := &model.Specialty{}
		if err := rows.Scan(&s.ID, &s.Description); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
