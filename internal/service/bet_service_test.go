package service

import (
	"testing"

	"github.com/rajpalpavitra-beep/HaBet-app3/internal/model"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/repository"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/testutil"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type betTestEnv struct {
	db           *gorm.DB
	betService   *BetService
	betRepo      *repository.BetRepository
	friendRepo   *repository.FriendRepository
	notification *NotificationService
	owner        *model.User
	partner      *model.User
}

func newBetTestEnv(t *testing.T) *betTestEnv {
	db := testutil.SetupTestDB(t)

	userRepo := repository.NewUserRepository(db)
	betRepo := repository.NewBetRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	notificationRepo := repository.NewNotificationRepository(db, nil)
	notification := NewNotificationService(notificationRepo)

	owner := &model.User{Email: "owner@example.com", Password: "x", Nickname: "owner"}
	partner := &model.User{Email: "partner@example.com", Password: "x", Nickname: "partner"}
	require.NoError(t, userRepo.Create(owner))
	require.NoError(t, userRepo.Create(partner))

	return &betTestEnv{
		db:           db,
		betService:   NewBetService(betRepo, friendRepo, roomRepo, userRepo, notification),
		betRepo:      betRepo,
		friendRepo:   friendRepo,
		notification: notification,
		owner:        owner,
		partner:      partner,
	}
}

func (env *betTestEnv) befriend(t *testing.T) {
	t.Helper()
	require.NoError(t, env.friendRepo.Create(&model.Friend{
		RequesterID: env.owner.ID,
		AddresseeID: env.partner.ID,
		Status:      model.FriendAccepted,
	}))
}

func TestCreateBet(t *testing.T) {
	env := newBetTestEnv(t)

	bet, err := env.betService.Create(env.owner.ID, BetInput{
		Title:      "Run every day",
		Stake:      "20 pushups",
		StartDate:  "2026-03-01",
		TargetDate: "2026-03-30",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, bet.ID)
	assert.Equal(t, model.BetPending, bet.Status)
	assert.Equal(t, "18:00", bet.NotificationTime)
}

func TestCreateBetRejectsBackwardsDates(t *testing.T) {
	env := newBetTestEnv(t)

	_, err := env.betService.Create(env.owner.ID, BetInput{
		Title:      "Backwards",
		StartDate:  "2026-03-30",
		TargetDate: "2026-03-01",
	})
	assert.ErrorIs(t, err, util.ErrInvalidDateRange)
}

func TestCreateBetRejectsMalformedDate(t *testing.T) {
	env := newBetTestEnv(t)

	_, err := env.betService.Create(env.owner.ID, BetInput{
		Title:     "Bad date",
		StartDate: "03/01/2026",
	})
	assert.ErrorIs(t, err, util.ErrMalformedDate)
}

func TestResolveIsTerminal(t *testing.T) {
	env := newBetTestEnv(t)

	bet, err := env.betService.Create(env.owner.ID, BetInput{Title: "Sleep by 11"})
	require.NoError(t, err)

	resolved, err := env.betService.Resolve(bet.ID, env.owner.ID, model.BetWon)
	require.NoError(t, err)
	assert.Equal(t, model.BetWon, resolved.Status)
	assert.NotNil(t, resolved.ResolvedAt)

	_, err = env.betService.Resolve(bet.ID, env.owner.ID, model.BetLost)
	assert.ErrorIs(t, err, util.ErrBetResolved)
}

func TestResolveOwnerOnly(t *testing.T) {
	env := newBetTestEnv(t)

	bet, err := env.betService.Create(env.owner.ID, BetInput{Title: "No sugar"})
	require.NoError(t, err)

	_, err = env.betService.Resolve(bet.ID, env.partner.ID, model.BetWon)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestWinBlockedUntilAllPartnersVerify(t *testing.T) {
	env := newBetTestEnv(t)
	env.befriend(t)

	bet, err := env.betService.Create(env.owner.ID, BetInput{
		Title:                 "Gym 3x a week",
		VerificationRequired:  true,
		AccountabilityFriends: []uint{env.partner.ID},
	})
	require.NoError(t, err)

	_, err = env.betService.Resolve(bet.ID, env.owner.ID, model.BetWon)
	assert.ErrorIs(t, err, util.ErrVerificationPending)

	// Losing needs no verification.
	_, err = env.betService.Resolve(bet.ID, env.owner.ID, model.BetLost)
	assert.NoError(t, err)
}

func TestVerifyThenWin(t *testing.T) {
	env := newBetTestEnv(t)
	env.befriend(t)

	bet, err := env.betService.Create(env.owner.ID, BetInput{
		Title:                 "Read 20 pages",
		VerificationRequired:  true,
		AccountabilityFriends: []uint{env.partner.ID},
	})
	require.NoError(t, err)

	_, err = env.betService.Verify(bet.ID, env.partner.ID)
	require.NoError(t, err)

	resolved, err := env.betService.Resolve(bet.ID, env.owner.ID, model.BetWon)
	require.NoError(t, err)
	assert.Equal(t, model.BetWon, resolved.Status)
}

func TestVerifyRejectsNonPartner(t *testing.T) {
	env := newBetTestEnv(t)

	bet, err := env.betService.Create(env.owner.ID, BetInput{
		Title:                "Meditate",
		VerificationRequired: true,
	})
	require.NoError(t, err)

	_, err = env.betService.Verify(bet.ID, env.partner.ID)
	assert.ErrorIs(t, err, util.ErrNotAccountable)
}

func TestAccountabilityRequiresAcceptedFriend(t *testing.T) {
	env := newBetTestEnv(t)
	// No friendship created.

	_, err := env.betService.Create(env.owner.ID, BetInput{
		Title:                 "Journal",
		AccountabilityFriends: []uint{env.partner.ID},
	})
	assert.ErrorIs(t, err, util.ErrNotAccountable)
}

func TestUpdateResolvedBetRejected(t *testing.T) {
	env := newBetTestEnv(t)

	bet, err := env.betService.Create(env.owner.ID, BetInput{Title: "Original"})
	require.NoError(t, err)
	_, err = env.betService.Resolve(bet.ID, env.owner.ID, model.BetLost)
	require.NoError(t, err)

	_, err = env.betService.Update(bet.ID, env.owner.ID, BetInput{Title: "Changed"})
	assert.ErrorIs(t, err, util.ErrBetResolved)
}

func TestDeleteCascadesCheckins(t *testing.T) {
	env := newBetTestEnv(t)

	bet, err := env.betService.Create(env.owner.ID, BetInput{Title: "Temp"})
	require.NoError(t, err)

	checkinRepo := repository.NewCheckinRepository(env.db)
	require.NoError(t, checkinRepo.Upsert(&model.CheckIn{
		BetID:       bet.ID,
		UserID:      env.owner.ID,
		CheckinDate: mustDay(t, "2026-03-01"),
		Completed:   true,
	}))

	require.NoError(t, env.betService.Delete(bet.ID, env.owner.ID))

	_, err = env.betService.Get(bet.ID, env.owner.ID)
	assert.ErrorIs(t, err, util.ErrBetNotFound)

	var count int64
	env.db.Model(&model.CheckIn{}).Where("bet_id = ?", bet.ID).Count(&count)
	assert.Zero(t, count)
}
