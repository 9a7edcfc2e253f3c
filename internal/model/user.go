package model

import (
	"time"
)

// swagger:model User
type User struct {
	BaseModel
	Email            string    `gorm:"size:100;unique;not null" json:"email"`
	Password         string    `gorm:"size:100;not null" json:"-"`
	DisplayName      string    `gorm:"size:100" json:"displayName"`
	Nickname         string    `gorm:"size:50" json:"nickname"`
	EmojiAvatar      string    `gorm:"size:16" json:"emojiAvatar"`
	AvatarColorIndex int       `gorm:"default:0" json:"avatarColorIndex"`
	Avatar           string    `gorm:"size:255" json:"avatar"`
	Disabled         bool      `gorm:"default:false" json:"disabled"`
	LastLogin        time.Time `json:"lastLogin"`
	LastSeen         time.Time `json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

// Name returns the best label available for the user, falling back to the
// local part of the email the way the original dashboard did.
func (u *User) Name() string {
	if u.Nickname != "" {
		return u.Nickname
	}
	if u.DisplayName != "" {
		return u.DisplayName
	}
	for i := 0; i < len(u.Email); i++ {
		if u.Email[i] == '@' {
			return u.Email[:i]
		}
	}
	return u.Email
}
