package usecase

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"gatherly/internal/entity"
	"gatherly/internal/repo/persistent"
	"gatherly/pkg/logger"
	"gatherly/pkg/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationRepo struct {
	notifications []entity.Notification
	nextID        int64
	createErr     error
	failFor       map[string]error

	eventParticipants map[string][]string
	groupMembers      map[string][]string
	participantsErr   error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{
		failFor:           map[string]error{},
		eventParticipants: map[string][]string{},
		groupMembers:      map[string][]string{},
	}
}

func (f *fakeNotificationRepo) Create(n *entity.Notification) (*entity.Notification, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if err, ok := f.failFor[n.RecipientID]; ok {
		return nil, err
	}
	f.nextID++
	saved := *n
	saved.ID = f.nextID
	saved.Read = false
	saved.CreatedAt = time.Now()
	f.notifications = append(f.notifications, saved)
	return &saved, nil
}

func (f *fakeNotificationRepo) ListForRecipient(recipientID string) ([]entity.Notification, error) {
	var out []entity.Notification
	for i := len(f.notifications) - 1; i >= 0; i-- {
		if f.notifications[i].RecipientID == recipientID {
			out = append(out, f.notifications[i])
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(id int64, recipientID string) (*entity.Notification, error) {
	for i := range f.notifications {
		if f.notifications[i].ID == id && f.notifications[i].RecipientID == recipientID {
			f.notifications[i].Read = true
			n := f.notifications[i]
			return &n, nil
		}
	}
	return nil, persistent.ErrNotFound
}

func (f *fakeNotificationRepo) MarkAllRead(recipientID string) (int64, error) {
	var updated int64
	for i := range f.notifications {
		if f.notifications[i].RecipientID == recipientID && !f.notifications[i].Read {
			f.notifications[i].Read = true
			updated++
		}
	}
	return updated, nil
}

func (f *fakeNotificationRepo) CountUnread(recipientID string) (int64, error) {
	var count int64
	for i := range f.notifications {
		if f.notifications[i].RecipientID == recipientID && !f.notifications[i].Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) ListEventParticipantIDs(eventID string) ([]string, error) {
	if f.participantsErr != nil {
		return nil, f.participantsErr
	}
	return f.eventParticipants[eventID], nil
}

func (f *fakeNotificationRepo) ListGroupMemberIDs(groupID string) ([]string, error) {
	return f.groupMembers[groupID], nil
}

type fakePusher struct {
	pushed    map[string][][]byte
	connected map[string]int
}

func newFakePusher() *fakePusher {
	return &fakePusher{pushed: map[string][][]byte{}, connected: map[string]int{}}
}

func (f *fakePusher) Push(recipientID string, payload []byte) int {
	f.pushed[recipientID] = append(f.pushed[recipientID], payload)
	return f.connected[recipientID]
}

func newTestNotificationUseCase(repo *fakeNotificationRepo, pusher *fakePusher) NotificationUseCase {
	return NewNotificationUseCase(repo, pusher, nil, logger.New())
}

func TestNotify_PersistsThenPushes(t *testing.T) {
	repo := newFakeNotificationRepo()
	pusher := newFakePusher()
	pusher.connected["user-1"] = 2
	uc := newTestNotificationUseCase(repo, pusher)

	saved, err := uc.Notify(&entity.Notification{
		RecipientID: "user-1",
		Kind:        entity.KindGroupAdded,
		Title:       "Added to a group",
		Body:        "You were added to the group \"Hikers\"",
		GroupID:     "group-9",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)
	assert.False(t, saved.Read)
	require.Len(t, repo.notifications, 1)
	require.Len(t, pusher.pushed["user-1"], 1)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(pusher.pushed["user-1"][0], &payload))
	assert.Equal(t, "group_added", payload["type"])
	assert.Equal(t, "Added to a group", payload["title"])
	assert.Equal(t, "group-9", payload["group_id"])
	assert.Equal(t, false, payload["read"])
	assert.NotEmpty(t, payload["created_at"])
}

func TestNotify_StorageFailureAbortsPush(t *testing.T) {
	repo := newFakeNotificationRepo()
	repo.createErr = &persistent.StorageError{Op: "create notification", Err: errors.New("connection refused")}
	pusher := newFakePusher()
	uc := newTestNotificationUseCase(repo, pusher)

	_, err := uc.Notify(&entity.Notification{
		RecipientID: "user-1",
		Kind:        entity.KindEventUpdate,
		Title:       "Event updated",
	})

	require.Error(t, err)
	assert.True(t, persistent.IsStorageError(err))
	assert.Empty(t, pusher.pushed)
}

func TestNotify_OfflineRecipientStillPersists(t *testing.T) {
	repo := newFakeNotificationRepo()
	pusher := newFakePusher()
	uc := newTestNotificationUseCase(repo, pusher)

	saved, err := uc.Notify(&entity.Notification{
		RecipientID: "offline-user",
		Kind:        entity.KindRegistrationCreated,
		Title:       "New registration",
	})

	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.Len(t, repo.notifications, 1)
}

func TestNotify_RejectsUnknownKind(t *testing.T) {
	uc := newTestNotificationUseCase(newFakeNotificationRepo(), newFakePusher())

	_, err := uc.Notify(&entity.Notification{
		RecipientID: "user-1",
		Kind:        "event_completed",
		Title:       "nope",
	})

	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestMarkRead_OtherRecipientGetsNotFound(t *testing.T) {
	repo := newFakeNotificationRepo()
	uc := newTestNotificationUseCase(repo, newFakePusher())

	saved, err := uc.Notify(&entity.Notification{
		RecipientID: "user-1",
		Kind:        entity.KindEventUpdate,
		Title:       "Event updated",
	})
	require.NoError(t, err)

	_, err = uc.MarkRead(saved.ID, "user-2")
	assert.ErrorIs(t, err, persistent.ErrNotFound)

	n, err := uc.MarkRead(saved.ID, "user-1")
	require.NoError(t, err)
	assert.True(t, n.Read)
}

func TestMarkAllRead_IsIdempotent(t *testing.T) {
	repo := newFakeNotificationRepo()
	uc := newTestNotificationUseCase(repo, newFakePusher())

	for i := 0; i < 3; i++ {
		_, err := uc.Notify(&entity.Notification{
			RecipientID: "user-1",
			Kind:        entity.KindEventUpdate,
			Title:       "Event updated",
		})
		require.NoError(t, err)
	}

	updated, err := uc.MarkAllRead("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated)

	updated, err = uc.MarkAllRead("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated)

	count, err := uc.CountUnread("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestCountUnread_TracksWrites(t *testing.T) {
	repo := newFakeNotificationRepo()
	uc := newTestNotificationUseCase(repo, newFakePusher())

	first, err := uc.Notify(&entity.Notification{
		RecipientID: "user-1",
		Kind:        entity.KindEventUpdate,
		Title:       "Event updated",
	})
	require.NoError(t, err)
	_, err = uc.Notify(&entity.Notification{
		RecipientID: "user-1",
		Kind:        entity.KindEventDelete,
		Title:       "Event deleted",
	})
	require.NoError(t, err)

	count, err := uc.CountUnread("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = uc.MarkRead(first.ID, "user-1")
	require.NoError(t, err)

	count, err = uc.CountUnread("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestHandleFanoutTask_NotifiesAllButActor(t *testing.T) {
	repo := newFakeNotificationRepo()
	repo.eventParticipants["event-1"] = []string{"user-1", "user-2", "actor"}
	uc := newTestNotificationUseCase(repo, newFakePusher())

	err := uc.HandleFanoutTask(queue.FanoutTask{
		Kind:    string(entity.KindEventUpdate),
		EventID: "event-1",
		Title:   "Event updated",
		Body:    "The event changed",
		ActorID: "actor",
	})

	require.NoError(t, err)
	require.Len(t, repo.notifications, 2)
	recipients := []string{repo.notifications[0].RecipientID, repo.notifications[1].RecipientID}
	assert.ElementsMatch(t, []string{"user-1", "user-2"}, recipients)
}

func TestHandleFanoutTask_OneFailingStoreDoesNotStopOthers(t *testing.T) {
	repo := newFakeNotificationRepo()
	repo.eventParticipants["event-1"] = []string{"user-1", "user-2", "user-3"}
	repo.failFor["user-2"] = &persistent.StorageError{Op: "create notification", Err: errors.New("deadlock")}
	uc := newTestNotificationUseCase(repo, newFakePusher())

	err := uc.HandleFanoutTask(queue.FanoutTask{
		Kind:    string(entity.KindEventDelete),
		EventID: "event-1",
		Title:   "Event deleted",
	})

	require.NoError(t, err)
	require.Len(t, repo.notifications, 2)
	for _, n := range repo.notifications {
		assert.NotEqual(t, "user-2", n.RecipientID)
	}
}

func TestHandleFanoutTask_GroupKindUsesGroupMembers(t *testing.T) {
	repo := newFakeNotificationRepo()
	repo.groupMembers["group-1"] = []string{"member-1", "member-2"}
	uc := newTestNotificationUseCase(repo, newFakePusher())

	err := uc.HandleFanoutTask(queue.FanoutTask{
		Kind:    string(entity.KindGroupEventCreated),
		EventID: "event-5",
		GroupID: "group-1",
		Title:   "New group event",
	})

	require.NoError(t, err)
	require.Len(t, repo.notifications, 2)
	assert.Equal(t, entity.KindGroupEventCreated, repo.notifications[0].Kind)
	assert.Equal(t, "group-1", repo.notifications[0].GroupID)
	assert.Equal(t, "event-5", repo.notifications[0].EventID)
}

func TestHandleFanoutTask_RecipientLookupFailureRequeues(t *testing.T) {
	repo := newFakeNotificationRepo()
	repo.eventParticipants["event-1"] = []string{"user-1"}
	repo.participantsErr = &persistent.StorageError{Op: "list event participants", Err: errors.New("timeout")}
	uc := newTestNotificationUseCase(repo, newFakePusher())

	err := uc.HandleFanoutTask(queue.FanoutTask{
		Kind:    string(entity.KindEventUpdate),
		EventID: "event-1",
		Title:   "Event updated",
	})

	assert.Error(t, err)
	assert.Empty(t, repo.notifications)
}
