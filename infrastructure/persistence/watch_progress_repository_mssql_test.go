package persistence

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestWatchProgressRepositoryMSSQL_UpsertSingleStatement(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewWatchProgressRepositoryMSSQL(db)
	now := time.Now().UTC()

	// One MERGE, no separate select-then-insert.
	mock.ExpectQuery(regexp.QuoteMeta(`MERGE dbo.[watch_progress] WITH (HOLDLOCK)`)).
		WithArgs("viewer-1", "ep-1", 754, false, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(progressColumns).
			AddRow(1, "viewer-1", "ep-1", 754, false, now, now, now))

	rec, err := repository.Upsert(context.Background(), "viewer-1", "ep-1", 754, false)

	require.NoError(t, err)
	require.Equal(t, int64(1), rec.ID)
	require.Equal(t, 754, rec.ProgressSeconds)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWatchProgressRepositoryMSSQL_ListRecent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewWatchProgressRepositoryMSSQL(db)
	now := time.Now().UTC()
	columns := []string{"episode_id", "title", "episode_order", "series_id", "title", "progress_seconds", "completed", "last_watched_at"}

	mock.ExpectQuery(regexp.QuoteMeta(`FROM dbo.[watch_progress] wp`)).
		WithArgs("viewer-1", 20).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("ep-2", "Episode 2", 2, "series-1", "Northern Lights", 120, false, now))

	entries, err := repository.ListRecent(context.Background(), "viewer-1", 20)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "ep-2", entries[0].EpisodeID)
	require.NoError(t, mock.ExpectationsWereMet())
}
