package persistent

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"gatherly/internal/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestNotificationRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "notifications"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	saved, err := repo.Create(&entity.Notification{
		RecipientID: "user-1",
		Kind:        entity.KindGroupAdded,
		Title:       "Added to a group",
		Body:        "You were added to the group \"Hikers\"",
		GroupID:     "group-1",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), saved.ID)
	assert.False(t, saved.Read)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_CreateWrapsStorageError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "notifications"`)).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.Create(&entity.Notification{
		RecipientID: "user-1",
		Kind:        entity.KindEventUpdate,
		Title:       "Event updated",
	})

	require.Error(t, err)
	assert.True(t, IsStorageError(err))
}

func TestNotificationRepository_ListForRecipientOrdersNewestFirst(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "recipient_id", "kind", "title", "body", "read", "event_id", "group_id", "created_at"}).
		AddRow(int64(2), "user-1", "event_update", "Event updated", "details", false, "event-1", nil, now).
		AddRow(int64(1), "user-1", "group_added", "Added to a group", "details", true, nil, "group-1", now.Add(-time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "notifications" WHERE recipient_id = $1 ORDER BY created_at DESC, id DESC`)).
		WithArgs("user-1").
		WillReturnRows(rows)

	notifications, err := repo.ListForRecipient("user-1")

	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Equal(t, int64(2), notifications[0].ID)
	assert.Equal(t, entity.KindEventUpdate, notifications[0].Kind)
	assert.Equal(t, "event-1", notifications[0].EventID)
	assert.Equal(t, "group-1", notifications[1].GroupID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_MarkReadScopedToRecipient(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "notifications" WHERE id = $1 AND recipient_id = $2`)).
		WithArgs(int64(5), "someone-else", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	_, err := repo.MarkRead(5, "someone-else")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNotificationRepository_MarkReadAlreadyReadSkipsUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationRepository(db)

	rows := sqlmock.NewRows([]string{"id", "recipient_id", "kind", "title", "body", "read", "event_id", "group_id", "created_at"}).
		AddRow(int64(5), "user-1", "event_update", "Event updated", "details", true, nil, nil, time.Now())

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "notifications" WHERE id = $1 AND recipient_id = $2`)).
		WithArgs(int64(5), "user-1", 1).
		WillReturnRows(rows)

	n, err := repo.MarkRead(5, "user-1")

	require.NoError(t, err)
	assert.True(t, n.Read)
	// No UPDATE was expected; an issued one would fail ExpectationsWereMet.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_MarkAllReadReturnsAffected(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "notifications" SET "read"=$1 WHERE recipient_id = $2 AND read = $3`)).
		WithArgs(true, "user-1", false).
		WillReturnResult(sqlmock.NewResult(0, 3))

	updated, err := repo.MarkAllRead("user-1")

	require.NoError(t, err)
	assert.Equal(t, int64(3), updated)
}

func TestNotificationRepository_CountUnread(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "notifications" WHERE recipient_id = $1 AND read = $2`)).
		WithArgs("user-1", false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(4)))

	count, err := repo.CountUnread("user-1")

	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestNotificationRepository_ListEventParticipantIDs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "user_id" FROM "event_registrations" WHERE event_id = $1 AND status = $2`)).
		WithArgs("event-1", "registered").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("user-1").AddRow("user-2"))

	ids, err := repo.ListEventParticipantIDs("event-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"user-1", "user-2"}, ids)
}

func TestNotificationRepository_ListGroupMemberIDsStorageError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "user_id" FROM "group_members"`)).
		WillReturnError(sql.ErrConnDone)

	_, err := repo.ListGroupMemberIDs("group-1")

	require.Error(t, err)
	assert.True(t, IsStorageError(err))
}
