package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/eventlane/apiserver/types"
	"github.com/stretchr/testify/require"
)

func newEventRepoWithMock(t *testing.T) (*EventRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewEventRepository(db), mock, db
}

func strptr(s string) *string { return &s }

func TestEventListByUser_OrderedAndFormatted(t *testing.T) {
	repo, mock, db := newEventRepoWithMock(t)
	defer db.Close()

	q := `(?s)SELECT\s+id,\s*user_id,\s*title,.*to_char\(date,\s*'YYYY-MM-DD'\),.*to_char\(time,\s*'HH24:MI'\),.*FROM\s+events\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+date\s+ASC,\s*time\s+ASC`

	cols := []string{"id", "user_id", "title", "date", "time", "description", "link"}
	rows := sqlmock.NewRows(cols).
		AddRow(2, 1, "Dentist", "2024-01-15", "09:00", nil, nil).
		AddRow(1, 1, "Standup", "2024-03-01", "10:30", "daily sync", "https://meet.example.com")
	mock.ExpectQuery(q).WithArgs(1).WillReturnRows(rows)

	events, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, events, 2)

	require.Equal(t, "Dentist", events[0].Title)
	require.Equal(t, "2024-01-15", events[0].Date)
	require.Equal(t, "09:00", events[0].Time)
	require.Nil(t, events[0].Description)
	require.Nil(t, events[0].Link)

	require.Equal(t, "daily sync", *events[1].Description)
	require.Equal(t, "https://meet.example.com", *events[1].Link)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventListByUser_EmptyIsNotError(t *testing.T) {
	repo, mock, db := newEventRepoWithMock(t)
	defer db.Close()

	cols := []string{"id", "user_id", "title", "date", "time", "description", "link"}
	mock.ExpectQuery(`SELECT`).WithArgs(99).WillReturnRows(sqlmock.NewRows(cols))

	events, err := repo.ListByUser(context.Background(), 99)
	require.NoError(t, err)
	require.NotNil(t, events)
	require.Empty(t, events)
}

func TestEventGet_NotFound(t *testing.T) {
	repo, mock, db := newEventRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WithArgs(404).WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), 404)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestEventCreate_ReturnsAssignedID(t *testing.T) {
	repo, mock, db := newEventRepoWithMock(t)
	defer db.Close()

	q := `(?s)INSERT\s+INTO\s+events\s*\(user_id,\s*title,\s*date,\s*time,\s*description,\s*link\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*RETURNING\s+id`

	mock.ExpectQuery(q).
		WithArgs(1, "Standup", "2024-03-01", "10:30", nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	id, err := repo.Create(context.Background(), types.Event{
		UserID: 1,
		Title:  "Standup",
		Date:   "2024-03-01",
		Time:   "10:30",
	})
	require.NoError(t, err)
	require.Equal(t, 5, id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventUpdate_FullReplace(t *testing.T) {
	repo, mock, db := newEventRepoWithMock(t)
	defer db.Close()

	q := `(?s)UPDATE\s+events\s+SET\s+title\s*=\s*\$1,.*date\s*=\s*\$2,.*time\s*=\s*\$3,.*description\s*=\s*\$4,.*link\s*=\s*\$5\s+WHERE\s+id\s*=\s*\$6`

	mock.ExpectExec(q).
		WithArgs("Standup", "2024-03-02", "11:00", nil, nil, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), types.Event{
		ID:    5,
		Title: "Standup",
		Date:  "2024-03-02",
		Time:  "11:00",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventUpdate_ZeroRowsIsNotFound(t *testing.T) {
	repo, mock, db := newEventRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE`).
		WithArgs("Gone", "2024-03-02", "11:00", strptr("d"), strptr("l"), 404).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), types.Event{
		ID:          404,
		Title:       "Gone",
		Date:        "2024-03-02",
		Time:        "11:00",
		Description: strptr("d"),
		Link:        strptr("l"),
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestEventDelete_ZeroRowsIsNotFound(t *testing.T) {
	repo, mock, db := newEventRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+events\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(404).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 404)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestEventDelete_Success(t *testing.T) {
	repo, mock, db := newEventRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 5))
}
