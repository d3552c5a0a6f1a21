package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"petclinic/internal/domain/model"
	"petclinic/internal/domain/pets"
	"petclinic/internal/domain/visits"
)

type PetsRepo struct {
	db *sql.DB
}

var _ pets.Repository = (*PetsRepo)(nil)

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Save(ctx context.Context, p *model.Pet) (*model.Pet, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: pet is nil", model.ErrInvalidArgument)
	}

	var typeID sql.NullInt64
	if p.PetType != nil && !p.PetType.IsNew() {
		typeID = sql.NullInt64{Int64: p.PetType.ID, Valid: true}
	}

	err := save(ctx, r.db, "pets", `
		INSERT INTO pets (id, name, birth_date, type_id, owner_id)
		VALUES (`+nextIDExpr("pets")+`, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			birth_date = EXCLUDED.birth_date,
			type_id = EXCLUDED.type_id,
			owner_id = EXCLUDED.owner_id
		RETURNING id
	`, p, p.Name, toNullDate(p.BirthDate), typeID, p.OwnerID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PetsRepo) FindAll(ctx context.Context) ([]*model.Pet, error) {
	return loadPets(ctx, r.db, `ORDER BY id`)
}

func (r *PetsRepo) FindByID(ctx context.Context, id int64) (*model.Pet, error) {
	out, err := loadPets(ctx, r.db, `WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, notFound(model.KindPet, id)
	}
	return out[0], nil
}

func (r *PetsRepo) Delete(ctx context.Context, p *model.Pet) error {
	if p == nil {
		return fmt.Errorf("%w: pet is nil", model.ErrInvalidArgument)
	}
	if p.IsNew() {
		return nil
	}
	return r.DeleteByID(ctx, p.ID)
}

func (r *PetsRepo) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	return err
}

// loadPets hidrata cada mascota con su tipo y sus visitas.
func loadPets(ctx context.Context, q querier, clause string, args ...any) ([]*model.Pet, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, birth_date, type_id, owner_id
		FROM pets
		`+clause, args...)
	if err != nil {
		return nil, err
	}

	type petRow struct {
		pet    *model.Pet
		typeID sql.NullInt64
	}
	found := make([]petRow, 0)
	for rows.Next() {
		var (
			pr petRow
			bd sql.NullTime
		)
		pr.pet = &model.Pet{}
		if err := rows.Scan(&pr.pet.ID, &pr.pet.Name, &bd, &pr.typeID, &pr.pet.OwnerID); err != nil {
			rows.Close()
			return nil, err
		}
		pr.pet.BirthDate = fromNullDate(bd)
		found = append(found, pr)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	out := make([]*model.Pet, 0, len(found))
	for _, pr := range found {
		if pr.typeID.Valid {
			t, err := findPetType(ctx, q, pr.typeID.Int64)
			if err != nil {
				return nil, fmt.Errorf("pet %d: %w", pr.pet.ID, err)
			}
			pr.pet.PetType = t
		}

		vs, err := queryVisits(ctx, q, `WHERE pet_id = $1 ORDER BY id`, pr.pet.ID)
		if err != nil {
			return nil, err
		}
		for _, v := range vs {
			model.AddVisitToPet(pr.pet, v)
		}
		out = append(out, pr.pet)
	}
	return out, nil
}

type VisitsRepo struct {
	db *sql.DB
}

var _ visits.Repository = (*VisitsRepo)(nil)

func NewVisitsRepo(db *sql.DB) *VisitsRepo {
	return &VisitsRepo{db: db}
}

func (r *VisitsRepo) Save(ctx context.Context, v *model.Visit) (*model.Visit, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: visit is nil", model.ErrInvalidArgument)
	}
	err := save(ctx, r.db, "visits", `
		INSERT INTO visits (id, pet_id, visit_date, description)
		VALUES (`+nextIDExpr("visits")+`, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			pet_id = EXCLUDED.pet_id,
			visit_date = EXCLUDED.visit_date,
			description = EXCLUDED.description
		RETURNING id
	`, v, v.PetID, v.Date, v.Description)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *VisitsRepo) FindAll(ctx context.Context) ([]*model.Visit, error) {
	return queryVisits(ctx, r.db, `ORDER BY id`)
}

func (r *VisitsRepo) FindByID(ctx context.Context, id int64) (*model.Visit, error) {
	out, err := queryVisits(ctx, r.db, `WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, notFound(model.KindVisit, id)
	}
	return out[0], nil
}

func (r *VisitsRepo) Delete(ctx context.Context, v *model.Visit) error {
	if v == nil {
		return fmt.Errorf("%w: visit is nil", model.ErrInvalidArgument)
	}
	if v.IsNew() {
		return nil
	}
	return r.DeleteByID(ctx, v.ID)
}

func (r *VisitsRepo) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM visits WHERE id = $1`, id)
	return err
}

func queryVisits(ctx context.Context, q querier, clause string, args ...any) ([]*model.Visit, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, pet_id, visit_date, description
		FROM visits
		`+clause, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Visit, 0)
	for rows.Next() {
		v := &model.Visit{}
		if err := rows.Scan(&v.ID, &v.PetID, &v.Date, &v.Description); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
