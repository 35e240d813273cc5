package cache

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"petmatch-backend/internal/shared/storage/db"
)

// ScoreRow is one persisted ranking entry with its component scores.
type ScoreRow struct {
	UserID           string    `json:"userId"`
	AnimalID         string    `json:"animalId"`
	Rank             int       `json:"rank"`
	Score            float64   `json:"score"`
	PreferenceScore  float64   `json:"preferenceScore"`
	InteractionScore float64   `json:"interactionScore"`
	SimilarityScore  float64   `json:"similarityScore"`
	Source           string    `json:"source"`
	ComputedAt       time.Time `json:"computedAt"`
}

// PGScoreStore writes rankings to animal_recommendations. Rows are informational;
// ranking never reads them back.
type PGScoreStore struct {
	DB *sql.DB
}

// Save replaces the stored ranking of userID with rows.
func (s *PGScoreStore) Save(ctx context.Context, userID string, rows []ScoreRow) error {
	return db.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM animal_recommendations WHERE user_id = $1`, userID); err != nil {
			return err
		}
		const insert = `
INSERT INTO animal_recommendations
  (user_id, animal_id, rank, score, preference_score, interaction_score, similarity_score, source, computed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
		for _, row := range rows {
			if _, err := tx.ExecContext(ctx, insert,
				userID,
				row.AnimalID,
				row.Rank,
				row.Score,
				row.PreferenceScore,
				row.InteractionScore,
				row.SimilarityScore,
				row.Source,
				row.ComputedAt,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *PGScoreStore) ListByUser(ctx context.Context, userID string) ([]ScoreRow, error) {
	const query = `
SELECT user_id, animal_id, rank, score, preference_score, interaction_score, similarity_score, source, computed_at
FROM animal_recommendations
WHERE user_id = $1
ORDER BY rank`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ScoreRow{}
	for rows.Next() {
		var row ScoreRow
		if err := rows.Scan(
			&row.UserID,
			&row.AnimalID,
			&row.Rank,
			&row.Score,
			&row.PreferenceScore,
			&row.InteractionScore,
			&row.SimilarityScore,
			&row.Source,
			&row.ComputedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

type MemoryScoreStore struct {
	mu     sync.RWMutex
	byUser map[string][]ScoreRow
}

func NewMemoryScoreStore() *MemoryScoreStore {
	return &MemoryScoreStore{byUser: map[string][]ScoreRow{}}
}

func (s *MemoryScoreStore) Save(_ context.Context, userID string, rows []ScoreRow) error {
	copied := make([]ScoreRow, len(rows))
	for i, row := range rows {
		row.UserID = userID
		copied[i] = row
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUser[userID] = copied
	return nil
}

func (s *MemoryScoreStore) ListByUser(_ context.Context, userID string) ([]ScoreRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := append([]ScoreRow{}, s.byUser[userID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out, nil
}
