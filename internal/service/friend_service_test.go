package service

import (
	"testing"

	"github.com/rajpalpavitra-beep/HaBet-app3/internal/config"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/model"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/repository"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/testutil"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type friendTestEnv struct {
	friendService *FriendService
	alice         *model.User
	bob           *model.User
}

func newFriendTestEnv(t *testing.T) *friendTestEnv {
	db := testutil.SetupTestDB(t)

	userRepo := repository.NewUserRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	notification := NewNotificationService(repository.NewNotificationRepository(db, nil))

	alice := &model.User{Email: "alice@example.com", Password: "x", Nickname: "alice"}
	bob := &model.User{Email: "bob@example.com", Password: "x", Nickname: "bob"}
	require.NoError(t, userRepo.Create(alice))
	require.NoError(t, userRepo.Create(bob))

	cfg := &config.Config{}
	cfg.App.Name = "HaBet"

	return &friendTestEnv{
		friendService: NewFriendService(friendRepo, userRepo, notification, nil, cfg),
		alice:         alice,
		bob:           bob,
	}
}

func TestFriendRequestAndAccept(t *testing.T) {
	env := newFriendTestEnv(t)

	friend, err := env.friendService.Request(env.alice.ID, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, model.FriendPending, friend.Status)

	// Requester cannot accept their own request.
	_, err = env.friendService.Respond(friend.ID, env.alice.ID, true)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	accepted, err := env.friendService.Respond(friend.ID, env.bob.ID, true)
	require.NoError(t, err)
	assert.Equal(t, model.FriendAccepted, accepted.Status)

	// A handled request stays handled.
	_, err = env.friendService.Respond(friend.ID, env.bob.ID, false)
	assert.ErrorIs(t, err, util.ErrRequestHandled)
}

func TestFriendRequestSelfRejected(t *testing.T) {
	env := newFriendTestEnv(t)

	_, err := env.friendService.Request(env.alice.ID, "Alice@Example.com")
	assert.ErrorIs(t, err, util.ErrSelfFriend)
}

func TestFriendRequestDuplicateRejected(t *testing.T) {
	env := newFriendTestEnv(t)

	_, err := env.friendService.Request(env.alice.ID, "bob@example.com")
	require.NoError(t, err)

	// Same pair in either direction is a duplicate.
	_, err = env.friendService.Request(env.bob.ID, "alice@example.com")
	assert.ErrorIs(t, err, util.ErrFriendRequestExists)
}

func TestFriendRequestUnknownEmail(t *testing.T) {
	env := newFriendTestEnv(t)

	_, err := env.friendService.Request(env.alice.ID, "stranger@example.com")
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestFriendListBuckets(t *testing.T) {
	env := newFriendTestEnv(t)

	friend, err := env.friendService.Request(env.alice.ID, "bob@example.com")
	require.NoError(t, err)

	aliceList, err := env.friendService.List(env.alice.ID)
	require.NoError(t, err)
	assert.Len(t, aliceList.Outgoing, 1)
	assert.Empty(t, aliceList.Friends)

	bobList, err := env.friendService.List(env.bob.ID)
	require.NoError(t, err)
	require.Len(t, bobList.Incoming, 1)
	assert.Equal(t, "alice", bobList.Incoming[0].User.Nickname)

	_, err = env.friendService.Respond(friend.ID, env.bob.ID, true)
	require.NoError(t, err)

	aliceList, err = env.friendService.List(env.alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceList.Friends, 1)
	assert.Equal(t, "bob", aliceList.Friends[0].User.Nickname)
}

func TestFriendRemove(t *testing.T) {
	env := newFriendTestEnv(t)

	friend, err := env.friendService.Request(env.alice.ID, "bob@example.com")
	require.NoError(t, err)

	require.NoError(t, env.friendService.Remove(friend.ID, env.bob.ID))

	list, err := env.friendService.List(env.alice.ID)
	require.NoError(t, err)
	assert.Empty(t, list.Outgoing)
}
