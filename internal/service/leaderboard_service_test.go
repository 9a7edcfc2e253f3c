package service

import (
	"testing"
	"time"

	"github.com/rajpalpavitra-beep/HaBet-app3/internal/model"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/repository"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/testutil"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type leaderboardTestEnv struct {
	db          *gorm.DB
	leaderboard *LeaderboardService
	userRepo    *repository.UserRepository
	betRepo     *repository.BetRepository
	checkinRepo *repository.CheckinRepository
	roomRepo    *repository.RoomRepository
}

func newLeaderboardTestEnv(t *testing.T, now time.Time) *leaderboardTestEnv {
	db := testutil.SetupTestDB(t)

	env := &leaderboardTestEnv{
		db:          db,
		userRepo:    repository.NewUserRepository(db),
		betRepo:     repository.NewBetRepository(db),
		checkinRepo: repository.NewCheckinRepository(db),
		roomRepo:    repository.NewRoomRepository(db),
	}
	// nil Redis client: every call recomputes.
	env.leaderboard = NewLeaderboardService(env.userRepo, env.betRepo, env.checkinRepo, env.roomRepo, nil)
	env.leaderboard.now = func() time.Time { return now }
	return env
}

func (env *leaderboardTestEnv) addUser(t *testing.T, email, nickname string) *model.User {
	t.Helper()
	user := &model.User{Email: email, Password: "x", Nickname: nickname}
	require.NoError(t, env.userRepo.Create(user))
	return user
}

func (env *leaderboardTestEnv) addBet(t *testing.T, userID uint, status model.BetStatus, roomID *string) *model.Bet {
	t.Helper()
	bet := &model.Bet{UserID: userID, Title: "bet", Status: status, RoomID: roomID}
	require.NoError(t, env.betRepo.Create(bet))
	return bet
}

func TestGlobalLeaderboardScoring(t *testing.T) {
	now := mustDay(t, "2026-03-10")
	env := newLeaderboardTestEnv(t, now)

	alice := env.addUser(t, "alice@example.com", "alice")
	bob := env.addUser(t, "bob@example.com", "bob")

	// Alice: 2 won, 1 lost, 1 pending, 4-day daily streak.
	env.addBet(t, alice.ID, model.BetWon, nil)
	env.addBet(t, alice.ID, model.BetWon, nil)
	env.addBet(t, alice.ID, model.BetLost, nil)
	env.addBet(t, alice.ID, model.BetPending, nil)
	for i := 0; i < 4; i++ {
		require.NoError(t, env.checkinRepo.CreateDaily(&model.DailyCheckin{
			UserID:      alice.ID,
			CheckinDate: now.AddDate(0, 0, -i),
		}))
	}

	// Bob: 1 won, no streak.
	env.addBet(t, bob.ID, model.BetWon, nil)

	entries, err := env.leaderboard.Global()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	top := entries[0]
	assert.Equal(t, alice.ID, top.UserID)
	assert.Equal(t, 1, top.Rank)
	assert.Equal(t, 2, top.Won)
	assert.Equal(t, 1, top.Lost)
	assert.Equal(t, 1, top.Pending)
	assert.Equal(t, 4, top.Streak)
	assert.Equal(t, 35, top.Score)       // 2*10 + 4*5 - 1*5
	assert.Equal(t, 50.0, top.WinRate)   // 2 of 4, pending counts
	assert.Equal(t, 10, entries[1].Score)
}

func TestGlobalLeaderboardStableTiebreak(t *testing.T) {
	now := mustDay(t, "2026-03-10")
	env := newLeaderboardTestEnv(t, now)

	first := env.addUser(t, "first@example.com", "first")
	second := env.addUser(t, "second@example.com", "second")
	env.addBet(t, first.ID, model.BetWon, nil)
	env.addBet(t, second.ID, model.BetWon, nil)

	entries, err := env.leaderboard.Global()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Equal scores keep registration order.
	assert.Equal(t, first.ID, entries[0].UserID)
	assert.Equal(t, second.ID, entries[1].UserID)
}

func TestNegativeScorePossible(t *testing.T) {
	now := mustDay(t, "2026-03-10")
	env := newLeaderboardTestEnv(t, now)

	loser := env.addUser(t, "loser@example.com", "loser")
	env.addBet(t, loser.ID, model.BetLost, nil)
	env.addBet(t, loser.ID, model.BetLost, nil)

	entries, err := env.leaderboard.Global()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, -10, entries[0].Score)
	assert.Equal(t, 0.0, entries[0].WinRate)
}

func TestRoomLeaderboardScopedToRoomBets(t *testing.T) {
	now := mustDay(t, "2026-03-10")
	env := newLeaderboardTestEnv(t, now)

	alice := env.addUser(t, "alice@example.com", "alice")
	bob := env.addUser(t, "bob@example.com", "bob")

	room := &model.GameRoom{CreatorID: alice.ID, Name: "Runners", RoomCode: "ABC234"}
	require.NoError(t, env.roomRepo.Create(room))
	require.NoError(t, env.roomRepo.AddMember(room.ID, bob.ID))

	// One bet inside the room, one outside; only the room bet counts.
	roomBet := env.addBet(t, bob.ID, model.BetWon, &room.ID)
	env.addBet(t, bob.ID, model.BetWon, nil)
	env.addBet(t, alice.ID, model.BetLost, &room.ID)

	// Bob's streak inside the room comes from his room bet's check-ins.
	require.NoError(t, env.checkinRepo.Upsert(&model.CheckIn{
		BetID:       roomBet.ID,
		UserID:      bob.ID,
		CheckinDate: now,
		Completed:   true,
	}))

	entries, err := env.leaderboard.Room(room.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, bob.ID, entries[0].UserID)
	assert.Equal(t, 1, entries[0].Won)
	assert.Equal(t, 1, entries[0].Streak)
	assert.Equal(t, 15, entries[0].Score)

	assert.Equal(t, alice.ID, entries[1].UserID)
	assert.Equal(t, -5, entries[1].Score)
}

func TestRoomLeaderboardMembersOnly(t *testing.T) {
	now := mustDay(t, "2026-03-10")
	env := newLeaderboardTestEnv(t, now)

	alice := env.addUser(t, "alice@example.com", "alice")
	outsider := env.addUser(t, "outsider@example.com", "outsider")

	room := &model.GameRoom{CreatorID: alice.ID, Name: "Private", RoomCode: "XYZ789"}
	require.NoError(t, env.roomRepo.Create(room))

	_, err := env.leaderboard.Room(room.ID, outsider.ID)
	assert.ErrorIs(t, err, util.ErrNotRoomMember)
}
