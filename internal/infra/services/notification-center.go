package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"health-assistant/internal/domain/entities"
	"health-assistant/internal/domain/interfaces/repository"
	repoconstants "health-assistant/internal/domain/interfaces/repository/constants"
	"health-assistant/internal/infra/logger"

	"github.com/google/uuid"
)

// NotificationCenter stores in-app notifications. Read flags only move from
// false to true.
type NotificationCenter struct {
	Repository repository.Repository[entities.Notification]
	Logger     *logger.Logger
	now        func() time.Time
}

func NewNotificationCenter(repo repository.Repository[entities.Notification], logger *logger.Logger) *NotificationCenter {
	return &NotificationCenter{Repository: repo, Logger: logger, now: time.Now}
}

func (th *NotificationCenter) Create(ctx context.Context, n entities.Notification) (entities.Notification, error) {
	if n.UserID == "" || n.Title == "" {
		return entities.Notification{}, fmt.Errorf("%w: notification needs a user and a title", ErrValidation)
	}
	if n.Type == "" {
		n.Type = entities.NotificationGeneral
	}
	n.ID = uuid.NewString()
	n.Read = false
	n.CreatedAt = th.now()

	created, err := th.Repository.Create(ctx, repoconstants.NOTIFICATION_COLLECTION, n)
	if err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to create notification for %s: %v", n.UserID, err))
		return entities.Notification{}, err
	}
	return created, nil
}

// List returns the user's notifications, newest first.
func (th *NotificationCenter) List(ctx context.Context, user string) ([]entities.Notification, error) {
	all, err := th.Repository.FindAll(ctx, repoconstants.NOTIFICATION_COLLECTION)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Notification, 0)
	for _, n := range all {
		if n.UserID == user {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (th *NotificationCenter) UnreadCount(ctx context.Context, user string) (int, error) {
	list, err := th.List(ctx, user)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range list {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

func (th *NotificationCenter) MarkRead(ctx context.Context, id, user string) (entities.Notification, error) {
	n, err := th.Repository.FindByID(ctx, repoconstants.NOTIFICATION_COLLECTION, id)
	if err != nil {
		return entities.Notification{}, err
	}
	if n.UserID != user {
		return entities.Notification{}, ErrForbidden
	}
	if n.Read {
		return n, nil
	}
	n.Read = true
	return th.Repository.Update(ctx, repoconstants.NOTIFICATION_COLLECTION, n.ID, n)
}

// MarkAllRead returns how many notifications changed.
func (th *NotificationCenter) MarkAllRead(ctx context.Context, user string) (int, error) {
	list, err := th.List(ctx, user)
	if err != nil {
		return 0, err
	}
	changed := 0
	for _, n := range list {
		if n.Read {
			continue
		}
		n.Read = true
		if _, err := th.Repository.Update(ctx, repoconstants.NOTIFICATION_COLLECTION, n.ID, n); err != nil {
			return changed, err
		}
		changed++
	}
	return changed, nil
}
