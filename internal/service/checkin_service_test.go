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

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	day, err := util.ParseDate(s)
	require.NoError(t, err)
	return day
}

type checkinTestEnv struct {
	db             *gorm.DB
	checkinService *CheckinService
	betService     *BetService
	checkinRepo    *repository.CheckinRepository
	user           *model.User
}

// newCheckinTestEnv pins "now" so streak assertions are stable.
func newCheckinTestEnv(t *testing.T, now time.Time) *checkinTestEnv {
	db := testutil.SetupTestDB(t)

	userRepo := repository.NewUserRepository(db)
	betRepo := repository.NewBetRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	checkinRepo := repository.NewCheckinRepository(db)
	notification := NewNotificationService(repository.NewNotificationRepository(db, nil))

	user := &model.User{Email: "runner@example.com", Password: "x"}
	require.NoError(t, userRepo.Create(user))

	checkinService := NewCheckinService(checkinRepo, betRepo, userRepo, notification)
	checkinService.now = func() time.Time { return now }

	return &checkinTestEnv{
		db:             db,
		checkinService: checkinService,
		betService:     NewBetService(betRepo, friendRepo, roomRepo, userRepo, notification),
		checkinRepo:    checkinRepo,
		user:           user,
	}
}

func TestCheckInUpsertsSameDay(t *testing.T) {
	now := mustDay(t, "2026-03-10")
	env := newCheckinTestEnv(t, now)

	bet, err := env.betService.Create(env.user.ID, BetInput{
		Title:      "Run",
		StartDate:  "2026-03-01",
		TargetDate: "2026-03-31",
	})
	require.NoError(t, err)

	_, err = env.checkinService.CheckIn(bet.ID, env.user.ID, CheckinInput{Completed: true, Notes: "5k"})
	require.NoError(t, err)

	// Second check-in for the same day overwrites, it does not add.
	_, err = env.checkinService.CheckIn(bet.ID, env.user.ID, CheckinInput{Completed: false, Notes: "skipped after all"})
	require.NoError(t, err)

	checkins, err := env.checkinService.ListCheckIns(bet.ID, env.user.ID)
	require.NoError(t, err)
	require.Len(t, checkins, 1)
	assert.False(t, checkins[0].Completed)
	assert.Equal(t, "skipped after all", checkins[0].Notes)
}

func TestCheckInRejectedOnResolvedBet(t *testing.T) {
	now := mustDay(t, "2026-03-10")
	env := newCheckinTestEnv(t, now)

	bet, err := env.betService.Create(env.user.ID, BetInput{Title: "Done deal"})
	require.NoError(t, err)
	_, err = env.betService.Resolve(bet.ID, env.user.ID, model.BetWon)
	require.NoError(t, err)

	_, err = env.checkinService.CheckIn(bet.ID, env.user.ID, CheckinInput{Completed: true})
	assert.ErrorIs(t, err, util.ErrBetResolved)
}

func TestBetProgress(t *testing.T) {
	// Day 10 of a 30-day bet, 8 completed days.
	now := mustDay(t, "2026-03-10")
	env := newCheckinTestEnv(t, now)

	bet, err := env.betService.Create(env.user.ID, BetInput{
		Title:      "Run",
		StartDate:  "2026-03-01",
		TargetDate: "2026-03-30",
	})
	require.NoError(t, err)

	for day := 1; day <= 8; day++ {
		date := time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC)
		_, err := env.checkinService.CheckIn(bet.ID, env.user.ID, CheckinInput{
			Date:      date.Format(util.DateFormat),
			Completed: true,
		})
		require.NoError(t, err)
	}

	progress, err := env.checkinService.Progress(bet.ID, env.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, progress.TotalDays)
	assert.Equal(t, 10, progress.DaysElapsed)
	assert.Equal(t, 8, progress.CompletedDays)
	assert.Equal(t, 80, progress.Percentage)
	// Check-ins stop at March 8, two days before "today".
	assert.Equal(t, 0, progress.Streak)
}

func TestDailyCheckInOncePerDay(t *testing.T) {
	now := mustDay(t, "2026-03-10")
	env := newCheckinTestEnv(t, now)

	_, err := env.checkinService.DailyCheckIn(env.user.ID)
	require.NoError(t, err)

	_, err = env.checkinService.DailyCheckIn(env.user.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyCheckedIn)
}

func TestDailyStreakCountsBackFromToday(t *testing.T) {
	now := mustDay(t, "2026-03-10")
	env := newCheckinTestEnv(t, now)

	// Three consecutive days ending today, plus an older disconnected one.
	for _, s := range []string{"2026-03-08", "2026-03-09", "2026-03-10", "2026-03-01"} {
		require.NoError(t, env.checkinRepo.CreateDaily(&model.DailyCheckin{
			UserID:      env.user.ID,
			CheckinDate: mustDay(t, s),
		}))
	}

	streak, err := env.checkinService.GetDailyStreak(env.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, streak.Streak)
	assert.True(t, streak.CheckedInToday)
}

func TestDashboardAggregatesAcrossBets(t *testing.T) {
	now := mustDay(t, "2026-03-10")
	env := newCheckinTestEnv(t, now)

	// Pending bet: 10 elapsed days, 5 completed.
	pending, err := env.betService.Create(env.user.ID, BetInput{
		Title:      "Run",
		StartDate:  "2026-03-01",
		TargetDate: "2026-03-31",
	})
	require.NoError(t, err)
	for day := 1; day <= 5; day++ {
		date := time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC)
		_, err := env.checkinService.CheckIn(pending.ID, env.user.ID, CheckinInput{
			Date:      date.Format(util.DateFormat),
			Completed: true,
		})
		require.NoError(t, err)
	}

	// A won bet adds a symbolic 1/1; a lost bet adds nothing.
	won, err := env.betService.Create(env.user.ID, BetInput{Title: "Won"})
	require.NoError(t, err)
	_, err = env.betService.Resolve(won.ID, env.user.ID, model.BetWon)
	require.NoError(t, err)

	lost, err := env.betService.Create(env.user.ID, BetInput{Title: "Lost"})
	require.NoError(t, err)
	_, err = env.betService.Resolve(lost.ID, env.user.ID, model.BetLost)
	require.NoError(t, err)

	dashboard, err := env.checkinService.Dashboard(env.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, dashboard.ActiveBets)
	assert.Equal(t, 1, dashboard.WonBets)
	assert.Equal(t, 1, dashboard.LostBets)
	assert.Equal(t, 11, dashboard.DaysElapsed)
	assert.Equal(t, 6, dashboard.CompletedDays)
	assert.Equal(t, 54, dashboard.Percentage) // 6*100/11 truncated
}
