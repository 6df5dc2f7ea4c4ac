package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"gatherly/internal/entity"
	"gatherly/internal/realtime"
	"gatherly/internal/repo/persistent"
	"gatherly/pkg/logger"
	"gatherly/pkg/queue"

	"github.com/redis/go-redis/v9"
)

// ErrInvalidKind rejects notifications outside the enumerated kind set.
var ErrInvalidKind = fmt.Errorf("invalid notification kind")

const unreadCacheTTL = 5 * time.Minute

// Notifier is the write side of notification delivery, consumed by the
// domain use cases that produce notifications.
type Notifier interface {
	Notify(n *entity.Notification) (*entity.Notification, error)
}

// PresencePusher pushes a payload to every live connection of a recipient
// and reports how many deliveries succeeded.
type PresencePusher interface {
	Push(recipientID string, payload []byte) int
}

var _ PresencePusher = (*realtime.Registry)(nil)

type NotificationUseCase interface {
	Notifier
	ListForRecipient(recipientID string) ([]entity.Notification, error)
	MarkRead(id int64, recipientID string) (*entity.Notification, error)
	MarkAllRead(recipientID string) (int64, error)
	CountUnread(recipientID string) (int64, error)
	HandleFanoutTask(task queue.FanoutTask) error
}

type notificationUseCase struct {
	notificationRepo persistent.NotificationRepository
	presence         PresencePusher
	redisClient      *redis.Client
	logger           *logger.Logger
}

func NewNotificationUseCase(
	notificationRepo persistent.NotificationRepository,
	presence PresencePusher,
	redisClient *redis.Client,
	log *logger.Logger,
) NotificationUseCase {
	return &notificationUseCase{
		notificationRepo: notificationRepo,
		presence:         presence,
		redisClient:      redisClient,
		logger:           log,
	}
}

// wirePayload is the JSON pushed over live connections.
type wirePayload struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Read      bool   `json:"read"`
	EventID   string `json:"event_id,omitempty"`
	GroupID   string `json:"group_id,omitempty"`
	CreatedAt string `json:"created_at"`
}

// Notify persists the notification and then pushes it to the recipient's
// live connections. A storage failure aborts the whole operation; a push
// failure does not, the recipient still sees the row on next fetch.
func (uc *notificationUseCase) Notify(n *entity.Notification) (*entity.Notification, error) {
	if !n.Kind.Valid() {
		return nil, ErrInvalidKind
	}
	if n.RecipientID == "" {
		return nil, fmt.Errorf("recipient is required")
	}

	saved, err := uc.notificationRepo.Create(n)
	if err != nil {
		return nil, err
	}
	uc.invalidateUnreadCache(saved.RecipientID)

	payload, err := json.Marshal(wirePayload{
		ID:        saved.ID,
		Type:      string(saved.Kind),
		Title:     saved.Title,
		Content:   saved.Body,
		Read:      saved.Read,
		EventID:   saved.EventID,
		GroupID:   saved.GroupID,
		CreatedAt: saved.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		uc.logger.Error("Failed to marshal notification %d: %v", saved.ID, err)
		return saved, nil
	}

	delivered := uc.presence.Push(saved.RecipientID, payload)
	uc.logger.Info("Notification %d (%s) for user %s delivered to %d connections",
		saved.ID, saved.Kind, saved.RecipientID, delivered)
	return saved, nil
}

func (uc *notificationUseCase) ListForRecipient(recipientID string) ([]entity.Notification, error) {
	return uc.notificationRepo.ListForRecipient(recipientID)
}

func (uc *notificationUseCase) MarkRead(id int64, recipientID string) (*entity.Notification, error) {
	n, err := uc.notificationRepo.MarkRead(id, recipientID)
	if err != nil {
		return nil, err
	}
	uc.invalidateUnreadCache(recipientID)
	return n, nil
}

func (uc *notificationUseCase) MarkAllRead(recipientID string) (int64, error) {
	updated, err := uc.notificationRepo.MarkAllRead(recipientID)
	if err != nil {
		return 0, err
	}
	uc.invalidateUnreadCache(recipientID)
	return updated, nil
}

// CountUnread serves from a short-lived Redis cache when available. The
// cache is dropped on every write so it never reports stale counts past
// its TTL.
func (uc *notificationUseCase) CountUnread(recipientID string) (int64, error) {
	ctx := context.Background()
	cacheKey := unreadCacheKey(recipientID)

	if uc.redisClient != nil {
		cached, err := uc.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			if count, parseErr := strconv.ParseInt(cached, 10, 64); parseErr == nil {
				return count, nil
			}
		} else if err != redis.Nil {
			uc.logger.Warn("Failed to read unread count cache for user %s: %v", recipientID, err)
		}
	}

	count, err := uc.notificationRepo.CountUnread(recipientID)
	if err != nil {
		return 0, err
	}

	if uc.redisClient != nil {
		if err := uc.redisClient.Set(ctx, cacheKey, strconv.FormatInt(count, 10), unreadCacheTTL).Err(); err != nil {
			uc.logger.Warn("Failed to cache unread count for user %s: %v", recipientID, err)
		}
	}
	return count, nil
}

// HandleFanoutTask resolves the recipient set of a queued task and notifies
// each recipient. Recipient resolution failures requeue the task; a failure
// for one recipient does not stop the rest.
func (uc *notificationUseCase) HandleFanoutTask(task queue.FanoutTask) error {
	kind := entity.NotificationKind(task.Kind)
	if !kind.Valid() {
		uc.logger.Error("Dropping fanout task with unknown kind %q", task.Kind)
		return nil
	}

	var (
		recipientIDs []string
		err          error
	)
	switch {
	case task.GroupID != "" && kind == entity.KindGroupEventCreated:
		recipientIDs, err = uc.notificationRepo.ListGroupMemberIDs(task.GroupID)
	case task.EventID != "":
		recipientIDs, err = uc.notificationRepo.ListEventParticipantIDs(task.EventID)
	default:
		uc.logger.Error("Dropping fanout task kind=%s with no event or group reference", task.Kind)
		return nil
	}
	if err != nil {
		return fmt.Errorf("resolve recipients for %s: %w", task.Kind, err)
	}

	notified := 0
	for _, recipientID := range recipientIDs {
		if recipientID == task.ActorID {
			continue
		}
		n := &entity.Notification{
			RecipientID: recipientID,
			Kind:        kind,
			Title:       task.Title,
			Body:        task.Body,
			EventID:     task.EventID,
			GroupID:     task.GroupID,
		}
		if _, err := uc.Notify(n); err != nil {
			uc.logger.Error("Failed to notify user %s for fanout kind=%s: %v", recipientID, task.Kind, err)
			continue
		}
		notified++
	}

	uc.logger.Info("Fanout kind=%s notified %d of %d recipients", task.Kind, notified, len(recipientIDs))
	return nil
}

func (uc *notificationUseCase) invalidateUnreadCache(recipientID string) {
	if uc.redisClient == nil {
		return
	}
	if err := uc.redisClient.Del(context.Background(), unreadCacheKey(recipientID)).Err(); err != nil {
		uc.logger.Warn("Failed to invalidate unread count cache for user %s: %v", recipientID, err)
	}
}

func unreadCacheKey(recipientID string) string {
	return fmt.Sprintf("notifications:unread:%s", recipientID)
}
