package persistent

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "organizer_id", "event_status", "participants_count", "max_participants_count",
	})
}

func TestEventRepository_RegisterLocksEventRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "events" WHERE id = $1 ORDER BY "events"."id" LIMIT $2 FOR UPDATE`)).
		WithArgs("event-1", 1).
		WillReturnRows(eventRows().AddRow("event-1", "Picnic", "organizer", "PLANNING", 5, 5))
	mock.ExpectRollback()

	_, err := repo.Register("event-1", "user-1")

	assert.ErrorIs(t, err, ErrEventFull)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_RegisterAlreadyRegistered(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "events" WHERE id = $1 ORDER BY "events"."id" LIMIT $2 FOR UPDATE`)).
		WithArgs("event-1", 1).
		WillReturnRows(eventRows().AddRow("event-1", "Picnic", "organizer", "PLANNING", 3, 10))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "event_registrations" WHERE event_id = $1 AND user_id = $2`)).
		WithArgs("event-1", "user-1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "user_id", "status"}).
			AddRow("reg-1", "event-1", "user-1", "registered"))
	mock.ExpectRollback()

	_, err := repo.Register("event-1", "user-1")

	assert.ErrorIs(t, err, ErrAlreadyRegistered)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_CancelRegistrationDecrementsCounter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "event_registrations" SET "status"=$1 WHERE event_id = $2 AND user_id = $3 AND status = $4`)).
		WithArgs("cancelled", "event-1", "user-1", "registered").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "events" SET "participants_count"=participants_count - $1 WHERE id = $2 AND participants_count > 0`)).
		WithArgs(1, "event-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CancelRegistration("event-1", "user-1")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_CancelRegistrationNotRegistered(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "event_registrations" SET "status"=$1`)).
		WithArgs("cancelled", "event-1", "user-1", "registered").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.CancelRegistration("event-1", "user-1")

	assert.ErrorIs(t, err, ErrNotFound)
}
