package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"petclinic/internal/domain/model"
	"petclinic/internal/domain/vets"
)

type VetsRepo struct {
	db *sql.DB
}

var _ vets.Repository = (*VetsRepo)(nil)

func NewVetsRepo(db *sql.DB) *VetsRepo {
	return &VetsRepo{db: db}
}

// Save reescribe los vínculos vet_specialties en la misma transacción.
// Las especialidades ya vienen guardadas por vets.Service; las nuevas se ignoran.
func (r *VetsRepo) Save(ctx context.Context, v *model.Vet) (*model.Vet, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: vet is nil", model.ErrInvalidArgument)
	}

	var id int64
	err := inTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		id, err = upsert(ctx, tx, "vets", `
			INSERT INTO vets (id, first_name, last_name)
			VALUES (`+nextIDExpr("vets")+`, $2, $3)
			ON CONFLICT (id) DO UPDATE SET
				first_name = EXCLUDED.first_name,
				last_name = EXCLUDED.last_name
			RETURNING id
		`, v, v.FirstName, v.LastName)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM vet_specialties WHERE vet_id = $1`, id); err != nil {
			return err
		}
		for _, s := range v.Specialties() {
			if s.IsNew() {
				continue
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO vet_specialties (vet_id, specialty_id)
				VALUES ($1, $2)
				ON CONFLICT DO NOTHING
			`, id, s.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	v.SetID(id)
	return v, nil
}

func (r *VetsRepo) FindAll(ctx context.Context) ([]*model.Vet, error) {
	return r.load(ctx, `ORDER BY id`)
}

func (r *VetsRepo) FindByID(ctx context.Context, id int64) (*model.Vet, error) {
	out, err := r.load(ctx, `WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, notFound(model.KindVet, id)
	}
	return out[0], nil
}

func (r *VetsRepo) FindByLastName(ctx context.Context, lastName string) (*model.Vet, error) {
	out, err := r.load(ctx, `WHERE last_name = $1 ORDER BY id LIMIT 1`, lastName)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: vet with last name %q", model.ErrNotFound, lastName)
	}
	return out[0], nil
}

func (r *VetsRepo) FindAllByLastNameLike(ctx context.Context, lastName string) ([]*model.Vet, error) {
	return r.load(ctx, `WHERE last_name LIKE $1 ORDER BY id`, likePattern(lastName))
}

func (r *VetsRepo) Delete(ctx context.Context, v *model.Vet) error {
	if v == nil {
		return fmt.Errorf("%w: vet is nil", model.ErrInvalidArgument)
	}
	if v.IsNew() {
		return nil
	}
	return r.DeleteByID(ctx, v.ID)
}

// DeleteByID: vet_specialties cae por ON DELETE CASCADE.
func (r *VetsRepo) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM vets WHERE id = $1`, id)
	return err
}

func (r *VetsRepo) load(ctx context.Context, clause string, args ...any) ([]*model.Vet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, first_name, last_name
		FROM vets
		`+clause, args...)
	if err != nil {
		return nil, err
	}

	out := make([]*model.Vet, 0)
	for rows.Next() {
		v := &model.Vet{}
		if err := rows.Scan(&v.ID, &v.FirstName, &v.LastName); err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for _, v := range out {
		ss, err := querySpecialties(ctx, r.db, `
			SELECT s.id, s.description
			FROM specialties s
			JOIN vet_specialties vs ON vs.specialty_id = s.id
			WHERE vs.vet_id = $1
			ORDER BY s.id
		`, v.ID)
		if err != nil {
			return nil, fmt.Errorf("vet %d: %w", v.ID, err)
		}
		for _, s := range ss {
			model.AddSpecialtyToVet(v, s)
		}
	}
	return out, nil
}
