package model

import "time"

// GameRoom is an invite-coded group container for shared bets and a
// scoped leaderboard.
// swagger:model GameRoom
type GameRoom struct {
	UUIDBase
	CreatorID uint   `gorm:"index;not null" json:"creatorId"`
	Name      string `gorm:"size:100;not null" json:"name"`
	RoomCode  string `gorm:"size:8;unique;not null" json:"roomCode"`
}

func (GameRoom) TableName() string {
	return "game_rooms"
}

type RoomMember struct {
	RoomID    string    `gorm:"primaryKey;type:varchar(36)" json:"roomId"`
	UserID    uint      `gorm:"primaryKey" json:"userId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"joinedAt"`
}

func (RoomMember) TableName() string {
	return "room_members"
}

type RoomInviteStatus string

const (
	RoomInvitePending  RoomInviteStatus = "pending"
	RoomInviteAccepted RoomInviteStatus = "accepted"
)

// RoomInvite is an email invitation into a room. It is auto-accepted the
// first time the invited address opens the room while signed in.
type RoomInvite struct {
	UUIDBase
	RoomID       string           `gorm:"index;type:varchar(36);not null" json:"roomId"`
	InviterID    uint             `gorm:"not null" json:"inviterId"`
	InviteeEmail string           `gorm:"size:100;index;not null" json:"inviteeEmail"`
	Status       RoomInviteStatus `gorm:"size:20;default:'pending'" json:"status"`
}

func (RoomInvite) TableName() string {
	return "room_invites"
}
