package animals

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

type PGRepo struct {
	DB *sql.DB
}

const animalColumns = `id, name, species, breed, size, energy_level, age_years, age_months, gender,
  good_with_kids, good_with_cats, good_with_dogs, status, description, image_url, created_at, updated_at`

func (r *PGRepo) Upsert(ctx context.Context, animal Animal) error {
	const query = `
INSERT INTO animals (id, name, species, breed, size, energy_level, age_years, age_months, gender,
  good_with_kids, good_with_cats, good_with_dogs, status, description, image_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, now(), now())
ON CONFLICT (id) DO UPDATE SET
  name = EXCLUDED.name,
  species = EXCLUDED.species,
  breed = EXCLUDED.breed,
  size = EXCLUDED.size,
  energy_level = EXCLUDED.energy_level,
  age_years = EXCLUDED.age_years,
  age_months = EXCLUDED.age_months,
  gender = EXCLUDED.gender,
  good_with_kids = EXCLUDED.good_with_kids,
  good_with_cats = EXCLUDED.good_with_cats,
  good_with_dogs = EXCLUDED.good_with_dogs,
  status = EXCLUDED.status,
  description = EXCLUDED.description,
  image_url = EXCLUDED.image_url,
  updated_at = now()`
	status := animal.Status
	if status == "" {
		status = StatusAvailable
	}
	_, err := r.DB.ExecContext(ctx, query,
		animal.ID,
		animal.Name,
		animal.Species,
		nullableString(animal.Breed),
		nullableString(animal.Size),
		nullableString(animal.EnergyLevel),
		nullableInt(animal.AgeYears),
		nullableInt(animal.AgeMonths),
		nullableString(animal.Gender),
		animal.GoodWithKids,
		animal.GoodWithCats,
		animal.GoodWithDogs,
		string(status),
		nullableString(animal.Description),
		nullableString(animal.ImageURL),
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Animal, error) {
	query := `SELECT ` + animalColumns + ` FROM animals WHERE id = $1 LIMIT 1`
	animal, err := scanAnimal(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Animal{}, ErrNotFound
		}
		return Animal{}, err
	}
	return animal, nil
}

func (r *PGRepo) GetMany(ctx context.Context, ids []string) ([]Animal, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := `SELECT ` + animalColumns + ` FROM animals WHERE id IN (` + strings.Join(placeholders, ", ") + `)`
	return r.list(ctx, query, args...)
}

func (r *PGRepo) ListAvailable(ctx context.Context) ([]Animal, error) {
	query := `SELECT ` + animalColumns + ` FROM animals WHERE status = $1 ORDER BY created_at ASC, id ASC`
	return r.list(ctx, query, string(StatusAvailable))
}

func (r *PGRepo) list(ctx context.Context, query string, args ...any) ([]Animal, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Animal
	for rows.Next() {
		animal, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, animal)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnimal(row rowScanner) (Animal, error) {
	var animal Animal
	var breed, size, energy, gender, description, imageURL sql.NullString
	var ageYears, ageMonths sql.NullInt64
	var status string
	err := row.Scan(
		&animal.ID,
		&animal.Name,
		&animal.Species,
		&breed,
		&size,
		&energy,
		&ageYears,
		&ageMonths,
		&gender,
		&animal.GoodWithKids,
		&animal.GoodWithCats,
		&animal.GoodWithDogs,
		&status,
		&description,
		&imageURL,
		&animal.CreatedAt,
		&animal.UpdatedAt,
	)
	if err != nil {
		return Animal{}, err
	}
	animal.Breed = breed.String
	animal.Size = size.String
	animal.EnergyLevel = energy.String
	animal.Gender = gender.String
	animal.Description = description.String
	animal.ImageURL = imageURL.String
	animal.Status = Status(status)
	if ageYears.Valid {
		animal.AgeYears = intPtr(int(ageYears.Int64))
	}
	if ageMonths.Valid {
		animal.AgeMonths = intPtr(int(ageMonths.Int64))
	}
	return animal, nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func nullableInt(value *int) any {
	if value == nil {
		return nil
	}
	return *value
}
