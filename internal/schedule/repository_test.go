package schedule

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return NewRepository(sqlxDB), mock, func() { sqlxDB.Close() }
}

func TestMaterialize(t *testing.T) {
	repo, mock, close := setupRepo(t)
	defer close()

	occ := &Occurrence{
		Key:        "3:2026-01-05",
		TemplateID: 3,
		Date:       date(2026, time.January, 5),
		StartTime:  date(2026, time.January, 5).Add(8 * time.Hour),
		EndTime:    date(2026, time.January, 5).Add(9 * time.Hour),
		Capacity:   20,
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO occurrences (occurrence_key, template_id, occurrence_date, start_time, end_time, capacity) VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (occurrence_key) DO NOTHING")).
		WithArgs(occ.Key, occ.TemplateID, occ.Date, occ.StartTime, occ.EndTime, occ.Capacity).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO occurrence_seats (occurrence_key, seats_taken) VALUES ($1, 0) ON CONFLICT (occurrence_key) DO NOTHING")).
		WithArgs(occ.Key).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Materialize(context.Background(), occ))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMaterialize_AlreadyPresent(t *testing.T) {
	repo, mock, close := setupRepo(t)
	defer close()

	occ := &Occurrence{Key: "3:2026-01-05", TemplateID: 3, Capacity: 20}

	// ON CONFLICT DO NOTHING matches zero rows the second time around; the
	// call still succeeds and never resets the seat counter.
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO occurrences").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO occurrence_seats").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, repo.Materialize(context.Background(), occ))
}

func TestGetByKey(t *testing.T) {
	repo, mock, close := setupRepo(t)
	defer close()

	start := date(2026, time.January, 5).Add(8 * time.Hour)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT occurrence_key, template_id, occurrence_date, start_time, end_time, capacity FROM occurrences WHERE occurrence_key = $1")).
		WithArgs("3:2026-01-05").
		WillReturnRows(sqlmock.NewRows([]string{"occurrence_key", "template_id", "occurrence_date", "start_time", "end_time", "capacity"}).
			AddRow("3:2026-01-05", 3, date(2026, time.January, 5), start, start.Add(time.Hour), 20))

	occ, err := repo.GetByKey(context.Background(), "3:2026-01-05")
	require.NoError(t, err)
	assert.Equal(t, 3, occ.TemplateID)
	assert.Equal(t, 20, occ.Capacity)
}
