package service

import (
	"testing"
	"time"

	"github.com/rajpalpavitra-beep/HaBet-app3/internal/config"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/model"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/repository"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/testutil"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type roomTestEnv struct {
	db          *gorm.DB
	roomService *RoomService
	roomRepo    *repository.RoomRepository
	userRepo    *repository.UserRepository
	cfg         *config.Config
	creator     *model.User
	joiner      *model.User
}

func newRoomTestEnv(t *testing.T) *roomTestEnv {
	db := testutil.SetupTestDB(t)

	userRepo := repository.NewUserRepository(db)
	betRepo := repository.NewBetRepository(db)
	roomRepo := repository.NewRoomRepository(db)

	creator := &model.User{Email: "creator@example.com", Password: "x"}
	joiner := &model.User{Email: "joiner@example.com", Password: "x"}
	require.NoError(t, userRepo.Create(creator))
	require.NoError(t, userRepo.Create(joiner))

	cfg := &config.Config{}
	cfg.App.Name = "HaBet"
	cfg.App.BaseURL = "http://localhost:5173"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour

	return &roomTestEnv{
		db:          db,
		roomService: NewRoomService(roomRepo, betRepo, userRepo, nil, cfg),
		roomRepo:    roomRepo,
		userRepo:    userRepo,
		cfg:         cfg,
		creator:     creator,
		joiner:      joiner,
	}
}

func TestCreateRoomMakesCreatorMember(t *testing.T) {
	env := newRoomTestEnv(t)

	room, err := env.roomService.Create(env.creator.ID, "Morning runners")
	require.NoError(t, err)
	assert.Len(t, room.RoomCode, 6)

	isMember, err := env.roomRepo.IsMember(room.ID, env.creator.ID)
	require.NoError(t, err)
	assert.True(t, isMember)
}

func TestJoinByCode(t *testing.T) {
	env := newRoomTestEnv(t)

	room, err := env.roomService.Create(env.creator.ID, "Book club")
	require.NoError(t, err)

	// Codes are matched case-insensitively and trimmed.
	joined, err := env.roomService.Join(env.joiner.ID, "  "+room.RoomCode+"  ")
	require.NoError(t, err)
	assert.Equal(t, room.ID, joined.ID)

	_, err = env.roomService.Join(env.joiner.ID, room.RoomCode)
	assert.ErrorIs(t, err, util.ErrAlreadyMember)
}

func TestJoinUnknownCode(t *testing.T) {
	env := newRoomTestEnv(t)

	_, err := env.roomService.Join(env.joiner.ID, "ZZZZZZ")
	assert.ErrorIs(t, err, util.ErrRoomNotFound)
}

func TestLeaveRoom(t *testing.T) {
	env := newRoomTestEnv(t)

	room, err := env.roomService.Create(env.creator.ID, "Quitters")
	require.NoError(t, err)
	_, err = env.roomService.Join(env.joiner.ID, room.RoomCode)
	require.NoError(t, err)

	require.NoError(t, env.roomService.Leave(room.ID, env.joiner.ID))
	assert.ErrorIs(t, env.roomService.Leave(room.ID, env.joiner.ID), util.ErrNotRoomMember)
}

func TestRoomDetailMembersOnly(t *testing.T) {
	env := newRoomTestEnv(t)

	room, err := env.roomService.Create(env.creator.ID, "Private")
	require.NoError(t, err)

	_, err = env.roomService.Get(room.ID, env.joiner.ID)
	assert.ErrorIs(t, err, util.ErrNotRoomMember)

	detail, err := env.roomService.Get(room.ID, env.creator.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Members, 1)
}

func TestInviteConsumedOnSignIn(t *testing.T) {
	env := newRoomTestEnv(t)

	room, err := env.roomService.Create(env.creator.ID, "Invitees")
	require.NoError(t, err)

	require.NoError(t, env.roomService.Invite(room.ID, env.creator.ID, "newcomer@example.com"))

	authService := NewAuthService(env.userRepo, env.roomRepo, env.cfg)
	result, err := authService.Register("newcomer@example.com", "secret123", "Newcomer")
	require.NoError(t, err)

	isMember, err := env.roomRepo.IsMember(room.ID, result.User.ID)
	require.NoError(t, err)
	assert.True(t, isMember)

	invites, err := env.roomRepo.PendingInvitesFor("newcomer@example.com")
	require.NoError(t, err)
	assert.Empty(t, invites)
}

func TestInviteRequiresMembership(t *testing.T) {
	env := newRoomTestEnv(t)

	room, err := env.roomService.Create(env.creator.ID, "Members only")
	require.NoError(t, err)

	err = env.roomService.Invite(room.ID, env.joiner.ID, "someone@example.com")
	assert.ErrorIs(t, err, util.ErrNotRoomMember)
}
