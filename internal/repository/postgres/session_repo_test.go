package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
)

var sessionRows = []string{
	"id", "conference_id", "name", "highlights", "speaker_key",
	"type_of_session", "date", "start_time", "duration",
	"created_at", "updated_at",
}

func addSessionRow(rows *sqlmock.Rows, id, name, speakerKey, typeOfSession string, startTime any) *sqlmock.Rows {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return rows.AddRow(id, "conf-1", name, "", speakerKey, typeOfSession, nil, startTime, nil, now, now)
}

func TestSessionRepository_Create(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO sessions`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("sess-1"))

	start := 19 * 60
	sess := &domain.Session{
		ConferenceID:  "conf-1",
		Name:          "Advanced Testing",
		TypeOfSession: "workshop",
		StartTime:     &start,
	}
	repo := NewSessionRepository(db)
	require.NoError(t, repo.Create(ctx, sess))
	require.Equal(t, "sess-1", sess.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM sessions WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	repo := NewSessionRepository(db)
	_, err = repo.GetByID(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_QueryByConference(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	compiled, err := query.Compile(query.KindSession, []query.Filter{
		{Field: "TYPE", Operator: "EQ", Value: "workshop"},
		{Field: "START_TIME", Operator: "LT", Value: "19:00"},
	})
	require.NoError(t, err)

	// The conference scope leads, then the compiled constraints, then the
	// inequality-first ordering.
	mock.ExpectQuery(`WHERE conference_id = \$1 AND type_of_session = \$2 AND start_time < \$3 ORDER BY start_time ASC, name ASC$`).
		WithArgs("conf-1", "workshop", 19*60).
		WillReturnRows(addSessionRow(sqlmock.NewRows(sessionRows), "sess-1", "Early Workshop", "spk-1", "workshop", 9*60))

	repo := NewSessionRepository(db)
	sessions, err := repo.QueryByConference(ctx, "conf-1", compiled)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.Equal(t, "Early Workshop", sessions[0].Name)
	require.NotNil(t, sessions[0].StartTime)
	require.Equal(t, 9*60, *sessions[0].StartTime)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_ListExcludingTypeBeforeTime(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(sessionRows)
	addSessionRow(rows, "sess-1", "Morning Keynote", "spk-1", "keynote", 9*60)
	mock.ExpectQuery(`WHERE type_of_session <> \$1 AND start_time < \$2`).
		WithArgs("workshop", 19*60).
		WillReturnRows(rows)

	repo := NewSessionRepository(db)
	sessions, err := repo.ListExcludingTypeBeforeTime(ctx, "workshop", 19*60)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.Equal(t, "keynote", sessions[0].TypeOfSession)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_ListByIDs_Empty(t *testing.T) {
	ctx := context.Background()

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepository(db)
	sessions, err := repo.ListByIDs(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, sessions)
}
