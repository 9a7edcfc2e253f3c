package model

import "time"

type BetStatus string

const (
	BetPending BetStatus = "pending"
	BetWon     BetStatus = "won"
	BetLost    BetStatus = "lost"
)

// Bet is a time-boxed habit commitment with a stake and a win/lose
// resolution. A bet may belong to a game room.
// swagger:model Bet
type Bet struct {
	UUIDBase
	UserID                uint       `gorm:"index;not null" json:"userId"`
	RoomID                *string    `gorm:"index;type:varchar(36)" json:"roomId,omitempty"`
	Title                 string     `gorm:"size:255;not null" json:"title"`
	Description           string     `gorm:"type:text" json:"description"`
	Goal                  string     `gorm:"size:255" json:"goal"`
	Stake                 string     `gorm:"size:255" json:"stake"`
	StartDate             *time.Time `gorm:"type:date" json:"startDate"`
	TargetDate            *time.Time `gorm:"type:date" json:"targetDate"`
	Status                BetStatus  `gorm:"size:20;default:'pending';index" json:"status"`
	VerificationRequired  bool       `gorm:"default:false" json:"verificationRequired"`
	NotificationTime      string     `gorm:"size:5;default:'18:00'" json:"notificationTime"`
	NotificationFrequency string     `gorm:"size:20;default:'daily'" json:"notificationFrequency"`
	ResolvedAt            *time.Time `json:"resolvedAt,omitempty"`
}

func (Bet) TableName() string {
	return "bets"
}

// Resolved reports whether the bet has reached a terminal status.
func (b *Bet) Resolved() bool {
	return b.Status == BetWon || b.Status == BetLost
}

// BetAccountability links a bet to a friend nominated to verify its
// completion. A verification-required bet can only be marked won once
// every link carries verified = true.
type BetAccountability struct {
	BetID      string     `gorm:"primaryKey;type:varchar(36)" json:"betId"`
	FriendID   uint       `gorm:"primaryKey" json:"friendId"`
	Verified   bool       `gorm:"default:false" json:"verified"`
	VerifiedAt *time.Time `json:"verifiedAt,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

func (BetAccountability) TableName() string {
	return "bet_accountability"
}
