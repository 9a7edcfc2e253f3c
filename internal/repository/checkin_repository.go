package repository

import (
	"time"

	"github.com/rajpalpavitra-beep/HaBet-app3/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CheckinRepository struct {
	DB *gorm.DB
}

func NewCheckinRepository(db *gorm.DB) *CheckinRepository {
	return &CheckinRepository{DB: db}
}

// Upsert writes the day's check-in, keyed on (bet_id, user_id,
// checkin_date). Re-checking the same day overwrites completed and
// notes instead of adding a row; the at-most-one-per-day guarantee is
// the unique index, not application logic.
func (r *CheckinRepository) Upsert(checkin *model.CheckIn) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "bet_id"}, {Name: "user_id"}, {Name: "checkin_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed", "notes", "updated_at"}),
	}).Create(checkin).Error
}

func (r *CheckinRepository) FindByBetAndUser(betID string, userID uint) ([]model.CheckIn, error) {
	var checkins []model.CheckIn
	err := r.DB.Where("bet_id = ? AND user_id = ?", betID, userID).
		Order("checkin_date DESC").
		Find(&checkins).Error
	return checkins, err
}

func (r *CheckinRepository) FindByBetAndDate(betID string, userID uint, date time.Time) (*model.CheckIn, error) {
	var checkin model.CheckIn
	err := r.DB.Where("bet_id = ? AND user_id = ? AND checkin_date = ?", betID, userID, date).
		First(&checkin).Error
	if err != nil {
		return nil, err
	}
	return &checkin, nil
}

// CompletedDates returns the distinct days with a completed check-in on
// the bet, for the progress computation.
func (r *CheckinRepository) CompletedDates(betID string, userID uint) ([]time.Time, error) {
	var checkins []model.CheckIn
	err := r.DB.Where("bet_id = ? AND user_id = ? AND completed = ?", betID, userID, true).
		Find(&checkins).Error
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, 0, len(checkins))
	for _, c := range checkins {
		dates = append(dates, c.CheckinDate)
	}
	return dates, nil
}

// CompletedForBets returns completed check-ins across a set of bets,
// feeding room leaderboard streaks.
func (r *CheckinRepository) CompletedForBets(betIDs []string) ([]model.CheckIn, error) {
	var checkins []model.CheckIn
	if len(betIDs) == 0 {
		return checkins, nil
	}
	err := r.DB.Where("bet_id IN ? AND completed = ?", betIDs, true).Find(&checkins).Error
	return checkins, err
}

// CreateDaily inserts the app-wide daily check-in. The unique index
// makes a second check-in on the same day a conflict, which the service
// maps to ErrAlreadyCheckedIn.
func (r *CheckinRepository) CreateDaily(daily *model.DailyCheckin) error {
	return r.DB.Create(daily).Error
}

func (r *CheckinRepository) FindDailyByUserAndDate(userID uint, date time.Time) (*model.DailyCheckin, error) {
	var daily model.DailyCheckin
	err := r.DB.Where("user_id = ? AND checkin_date = ?", userID, date).First(&daily).Error
	if err != nil {
		return nil, err
	}
	return &daily, nil
}

func (r *CheckinRepository) DailyDates(userID uint) ([]time.Time, error) {
	var dailies []model.DailyCheckin
	err := r.DB.Where("user_id = ?", userID).Order("checkin_date DESC").Find(&dailies).Error
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, 0, len(dailies))
	for _, d := range dailies {
		dates = append(dates, d.CheckinDate)
	}
	return dates, nil
}

func (r *CheckinRepository) AllDaily() ([]model.DailyCheckin, error) {
	var dailies []model.DailyCheckin
	err := r.DB.Find(&dailies).Error
	return dailies, err
}
