package model

import "time"

// CheckIn records whether the habit was performed on one calendar day of
// one bet. The (bet_id, user_id, checkin_date) triple is unique, so a
// repeated check-in for the same day is an upsert, never a second row.
// swagger:model CheckIn
type CheckIn struct {
	BaseModel
	BetID       string    `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_bet_user_date" json:"betId"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_bet_user_date" json:"userId"`
	CheckinDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_bet_user_date" json:"checkinDate"`
	Completed   bool      `gorm:"default:false" json:"completed"`
	Notes       string    `gorm:"size:500" json:"notes"`
}

func (CheckIn) TableName() string {
	return "check_ins"
}

// DailyCheckin is the app-wide streak feature, independent of any bet.
// Presence of a row implies success; there is no completed flag.
type DailyCheckin struct {
	BaseModel
	UserID      uint      `gorm:"not null;uniqueIndex:idx_user_date" json:"userId"`
	CheckinDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_user_date" json:"checkinDate"`
}

func (DailyCheckin) TableName() string {
	return "daily_checkins"
}
