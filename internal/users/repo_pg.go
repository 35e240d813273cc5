package users

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, full_name, is_guest, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())
ON CONFLICT (id) DO UPDATE SET
  email = COALESCE(EXCLUDED.email, users.email),
  full_name = COALESCE(EXCLUDED.full_name, users.full_name),
  is_guest = EXCLUDED.is_guest,
  updated_at = now()`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		nullableString(user.Email),
		nullableString(user.FullName),
		user.IsGuest,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `
SELECT id, email, full_name, is_guest, created_at, updated_at
FROM users
WHERE id = $1
LIMIT 1`
	var user User
	var email sql.NullString
	var fullName sql.NullString
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&email,
		&fullName,
		&user.IsGuest,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.Email = email.String
	user.FullName = fullName.String
	return user, nil
}

func (r *PGRepo) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetPreferences distinguishes an unknown user (ErrNotFound) from a user without preferences.
func (r *PGRepo) GetPreferences(ctx context.Context, userID string) (Preferences, error) {
	const query = `
SELECT u.id, p.user_id, p.preferred_species, p.preferred_size, p.preferred_energy,
  p.age_min_years, p.age_max_years, p.good_with_children, p.good_with_other_pets, p.updated_at
FROM users u
LEFT JOIN user_preferences p ON p.user_id = u.id
WHERE u.id = $1`
	var id string
	var prefUser, species, size, energy sql.NullString
	var ageMin, ageMax sql.NullFloat64
	var kids, pets sql.NullBool
	var updatedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&id, &prefUser, &species, &size, &energy, &ageMin, &ageMax, &kids, &pets, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Preferences{}, ErrNotFound
		}
		return Preferences{}, err
	}
	if !prefUser.Valid {
		return Preferences{}, ErrPreferencesNotFound
	}
	prefs := Preferences{
		UserID:            id,
		PreferredSpecies:  species.String,
		PreferredSize:     size.String,
		PreferredEnergy:   energy.String,
		GoodWithChildren:  kids.Bool,
		GoodWithOtherPets: pets.Bool,
		UpdatedAt:         updatedAt.Time,
	}
	if ageMin.Valid {
		v := ageMin.Float64
		prefs.AgeMinYears = &v
	}
	if ageMax.Valid {
		v := ageMax.Float64
		prefs.AgeMaxYears = &v
	}
	return prefs, nil
}

func (r *PGRepo) SavePreferences(ctx context.Context, prefs Preferences) error {
	const query = `
INSERT INTO user_preferences (user_id, preferred_species, preferred_size, preferred_energy,
  age_min_years, age_max_years, good_with_children, good_with_other_pets, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
ON CONFLICT (user_id) DO UPDATE SET
  preferred_species = EXCLUDED.preferred_species,
  preferred_size = EXCLUDED.preferred_size,
  preferred_energy = EXCLUDED.preferred_energy,
  age_min_years = EXCLUDED.age_min_years,
  age_max_years = EXCLUDED.age_max_years,
  good_with_children = EXCLUDED.good_with_children,
  good_with_other_pets = EXCLUDED.good_with_other_pets,
  updated_at = now()`
	_, err := r.DB.ExecContext(ctx, query,
		prefs.UserID,
		nullableString(prefs.PreferredSpecies),
		nullableString(prefs.PreferredSize),
		nullableString(prefs.PreferredEnergy),
		nullableFloat(prefs.AgeMinYears),
		nullableFloat(prefs.AgeMaxYears),
		prefs.GoodWithChildren,
		prefs.GoodWithOtherPets,
	)
	return err
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableFloat(value *float64) any {
	if value == nil {
		return nil
	}
	return *value
}
