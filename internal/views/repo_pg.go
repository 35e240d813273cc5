package views

import (
	"context"
	"database/sql"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Append(ctx context.Context, view View) error {
	const query = `
INSERT INTO animal_view_history (id, user_id, animal_id, viewed_at, duration_seconds)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.ExecContext(ctx, query,
		view.ID,
		view.UserID,
		view.AnimalID,
		view.ViewedAt,
		view.DurationSeconds,
	)
	return err
}

// ListByUser returns newest views first. seq keeps append order for equal timestamps.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit int) ([]View, error) {
	query := `
SELECT id, user_id, animal_id, viewed_at, duration_seconds
FROM animal_view_history
WHERE user_id = $1
ORDER BY viewed_at DESC, seq DESC`
	args := []any{userID}
	if limit > 0 {
		query += `
LIMIT $2`
		args = append(args, limit)
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []View
	for rows.Next() {
		var v View
		if err := rows.Scan(&v.ID, &v.UserID, &v.AnimalID, &v.ViewedAt, &v.DurationSeconds); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *PGRepo) CountByAnimal(ctx context.Context) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx, `
SELECT animal_id, COUNT(*)
FROM animal_view_history
GROUP BY animal_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var animalID string
		var n int
		if err := rows.Scan(&animalID, &n); err != nil {
			return nil, err
		}
		counts[animalID] = n
	}
	return counts, rows.Err()
}
