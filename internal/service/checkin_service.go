package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/rajpalpavitra-beep/HaBet-app3/internal/model"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/repository"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/scoring"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/util"

	"gorm.io/gorm"
)

type CheckinService struct {
	checkinRepo  *repository.CheckinRepository
	betRepo      *repository.BetRepository
	userRepo     *repository.UserRepository
	notification *NotificationService

	// now is swappable in tests so streaks have a fixed reference day.
	now func() time.Time
}

func NewCheckinService(
	checkinRepo *repository.CheckinRepository,
	betRepo *repository.BetRepository,
	userRepo *repository.UserRepository,
	notification *NotificationService,
) *CheckinService {
	return &CheckinService{
		checkinRepo:  checkinRepo,
		betRepo:      betRepo,
		userRepo:     userRepo,
		notification: notification,
		now:          time.Now,
	}
}

type CheckinInput struct {
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	Notes     string `json:"notes"`
}

// CheckIn records (or re-records) the day's result on a bet. The date
// defaults to today; an existing row for that day is overwritten.
func (s *CheckinService) CheckIn(betID string, userID uint, input CheckinInput) (*model.CheckIn, error) {
	bet, err := s.betRepo.FindByID(betID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrBetNotFound
		}
		return nil, err
	}
	if bet.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	if bet.Resolved() {
		return nil, util.ErrBetResolved
	}

	day := scoring.DateOnly(s.now())
	if input.Date != "" {
		parsed, err := util.ParseDate(input.Date)
		if err != nil {
			return nil, err
		}
		day = scoring.DateOnly(parsed)
	}

	checkin := &model.CheckIn{
		BetID:       betID,
		UserID:      userID,
		CheckinDate: day,
		Completed:   input.Completed,
		Notes:       input.Notes,
	}
	if err := s.checkinRepo.Upsert(checkin); err != nil {
		return nil, err
	}

	if input.Completed {
		s.notifyCheckIn(bet, userID)
	}
	return checkin, nil
}

func (s *CheckinService) ListCheckIns(betID string, userID uint) ([]model.CheckIn, error) {
	bet, err := s.betRepo.FindByID(betID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrBetNotFound
		}
		return nil, err
	}
	if bet.UserID != userID {
		if _, err := s.betRepo.FindAccountabilityFor(betID, userID); err != nil {
			return nil, util.ErrPermissionDenied
		}
	}
	return s.checkinRepo.FindByBetAndUser(betID, bet.UserID)
}

// BetProgress reports completion and current streak for one bet.
type BetProgress struct {
	scoring.Progress
	Streak int `json:"streak"`
}

func (s *CheckinService) Progress(betID string, userID uint) (*BetProgress, error) {
	bet, err := s.betRepo.FindByID(betID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrBetNotFound
		}
		return nil, err
	}

	completed, err := s.checkinRepo.CompletedDates(betID, bet.UserID)
	if err != nil {
		return nil, err
	}

	ref := s.now()
	var start, target time.Time
	if bet.StartDate != nil {
		start = *bet.StartDate
	}
	if bet.TargetDate != nil {
		target = *bet.TargetDate
	}

	return &BetProgress{
		Progress: scoring.ComputeProgress(start, target, completed, ref),
		Streak:   scoring.Streak(completed, ref),
	}, nil
}

// DailyCheckIn records the app-wide once-per-day check-in. A second
// check-in on the same day fails with ErrAlreadyCheckedIn.
func (s *CheckinService) DailyCheckIn(userID uint) (*model.DailyCheckin, error) {
	day := scoring.DateOnly(s.now())

	if _, err := s.checkinRepo.FindDailyByUserAndDate(userID, day); err == nil {
		return nil, util.ErrAlreadyCheckedIn
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	daily := &model.DailyCheckin{UserID: userID, CheckinDate: day}
	if err := s.checkinRepo.CreateDaily(daily); err != nil {
		return nil, err
	}
	return daily, nil
}

type DailyStreak struct {
	Streak         int  `json:"streak"`
	CheckedInToday bool `json:"checkedInToday"`
}

func (s *CheckinService) GetDailyStreak(userID uint) (*DailyStreak, error) {
	dates, err := s.checkinRepo.DailyDates(userID)
	if err != nil {
		return nil, err
	}

	ref := s.now()
	today := scoring.DateOnly(ref)
	checkedIn := false
	for _, d := range dates {
		if scoring.DateOnly(d).Equal(today) {
			checkedIn = true
			break
		}
	}

	return &DailyStreak{
		Streak:         scoring.Streak(dates, ref),
		CheckedInToday: checkedIn,
	}, nil
}

// DashboardProgress is the home-screen aggregate across all of a user's
// bets.
type DashboardProgress struct {
	ActiveBets    int `json:"activeBets"`
	WonBets       int `json:"wonBets"`
	LostBets      int `json:"lostBets"`
	DaysElapsed   int `json:"daysElapsed"`
	CompletedDays int `json:"completedDays"`
	Percentage    int `json:"percentage"`
	DailyStreak   int `json:"dailyStreak"`
}

// Dashboard sums per-bet progress the way the home screen does: pending
// bets contribute their elapsed and completed day counts, each won bet
// contributes a symbolic 1/1, lost bets contribute nothing.
func (s *CheckinService) Dashboard(userID uint) (*DashboardProgress, error) {
	bets, err := s.betRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	ref := s.now()
	out := &DashboardProgress{}
	for i := range bets {
		bet := &bets[i]
		switch bet.Status {
		case model.BetWon:
			out.WonBets++
			out.DaysElapsed++
			out.CompletedDays++
		case model.BetLost:
			out.LostBets++
		default:
			out.ActiveBets++
			if bet.StartDate == nil || bet.TargetDate == nil {
				continue
			}
			completed, err := s.checkinRepo.CompletedDates(bet.ID, userID)
			if err != nil {
				return nil, err
			}
			p := scoring.ComputeProgress(*bet.StartDate, *bet.TargetDate, completed, ref)
			out.DaysElapsed += p.DaysElapsed
			out.CompletedDays += p.CompletedDays
		}
	}

	if out.DaysElapsed > 0 {
		pct := out.CompletedDays * 100 / out.DaysElapsed
		if pct > 100 {
			pct = 100
		}
		out.Percentage = pct
	}

	dates, err := s.checkinRepo.DailyDates(userID)
	if err != nil {
		return nil, err
	}
	out.DailyStreak = scoring.Streak(dates, ref)

	return out, nil
}

func (s *CheckinService) notifyCheckIn(bet *model.Bet, userID uint) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return
	}
	links, err := s.betRepo.GetAccountability(bet.ID)
	if err != nil {
		return
	}
	for _, link := range links {
		s.notification.Notify(link.FriendID, model.NotifyCheckIn,
			fmt.Sprintf("%s checked in on %q", user.Name(), bet.Title),
			&bet.ID, &userID)
	}
}
