package service

import (
	"testing"

	"github.com/rajpalpavitra-beep/HaBet-app3/internal/model"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/repository"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/testutil"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotificationTestEnv(t *testing.T) (*NotificationService, *model.User, *model.User) {
	db := testutil.SetupTestDB(t)

	userRepo := repository.NewUserRepository(db)
	svc := NewNotificationService(repository.NewNotificationRepository(db, nil))

	alice := &model.User{Email: "alice@example.com", Password: "x"}
	bob := &model.User{Email: "bob@example.com", Password: "x"}
	require.NoError(t, userRepo.Create(alice))
	require.NoError(t, userRepo.Create(bob))
	return svc, alice, bob
}

func TestNotificationFlow(t *testing.T) {
	svc, alice, bob := newNotificationTestEnv(t)

	svc.Notify(alice.ID, model.NotifyFriendRequest, "bob sent you a friend request", nil, &bob.ID)
	svc.Notify(alice.ID, model.NotifyReminder, "check in today", nil, nil)

	count, err := svc.UnreadCount(alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	list, err := svc.List(alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, svc.MarkRead(list[0].ID, alice.ID))
	count, err = svc.UnreadCount(alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, svc.MarkAllRead(alice.ID))
	count, err = svc.UnreadCount(alice.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMarkReadOwnerOnly(t *testing.T) {
	svc, alice, bob := newNotificationTestEnv(t)

	svc.Notify(alice.ID, model.NotifyReminder, "check in", nil, nil)
	list, err := svc.List(alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	assert.ErrorIs(t, svc.MarkRead(list[0].ID, bob.ID), util.ErrPermissionDenied)
}
