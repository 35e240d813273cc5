package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPGScoreStoreSaveReplacesRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	at := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM animal_recommendations WHERE user_id").
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO animal_recommendations").
		WithArgs("u1", "a1", 1, 0.8, 1.0, 0.0, 0.0, "personalized", at).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO animal_recommendations").
		WithArgs("u1", "a2", 2, 0.0, 0.0, 0.0, 0.0, "popular", at).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	store := &PGScoreStore{DB: db}
	err = store.Save(context.Background(), "u1", []ScoreRow{
		{AnimalID: "a1", Rank: 1, Score: 0.8, PreferenceScore: 1, Source: "personalized", ComputedAt: at},
		{AnimalID: "a2", Rank: 2, Source: "popular", ComputedAt: at},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGScoreStoreSaveRollsBackOnInsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM animal_recommendations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO animal_recommendations").WillReturnError(errors.New("fk violation"))
	mock.ExpectRollback()

	store := &PGScoreStore{DB: db}
	err = store.Save(context.Background(), "u1", []ScoreRow{{AnimalID: "gone", Rank: 1, Source: "popular"}})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGScoreStoreListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	at := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT (.+) FROM animal_recommendations WHERE user_id = \\$1 ORDER BY rank").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{
			"user_id", "animal_id", "rank", "score", "preference_score", "interaction_score", "similarity_score", "source", "computed_at",
		}).AddRow("u1", "a1", 1, 0.8, 1.0, 0.0, 0.0, "personalized", at))

	store := &PGScoreStore{DB: db}
	rows, err := store.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "a1", rows[0].AnimalID)
	assert.Equal(t, 0.8, rows[0].Score)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryScoreStoreSortsByRank(t *testing.T) {
	store := NewMemoryScoreStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "u1", []ScoreRow{{AnimalID: "b", Rank: 2}, {AnimalID: "a", Rank: 1}}))

	rows, err := store.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].AnimalID)
	assert.Equal(t, "u1", rows[0].UserID)

	rows, err = store.ListByUser(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
