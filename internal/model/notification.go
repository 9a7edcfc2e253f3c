package model

type NotificationType string

const (
	NotifyCheckIn              NotificationType = "check_in"
	NotifyVerificationRequest  NotificationType = "verification_request"
	NotifyVerificationComplete NotificationType = "verification_complete"
	NotifyBetComplete          NotificationType = "bet_complete"
	NotifyFriendRequest        NotificationType = "friend_request"
	NotifyReminder             NotificationType = "reminder"
)

// swagger:model Notification
type Notification struct {
	UUIDBase
	UserID        uint             `gorm:"index;not null" json:"userId"`
	Type          NotificationType `gorm:"size:30;not null" json:"type"`
	Message       string           `gorm:"size:500" json:"message"`
	BetID         *string          `gorm:"type:varchar(36);index" json:"betId,omitempty"`
	RelatedUserID *uint            `json:"relatedUserId,omitempty"`
	Read          bool             `gorm:"default:false;index" json:"read"`

	Bet         *Bet  `gorm:"foreignKey:BetID;references:ID;constraint:false" json:"bet,omitempty"`
	RelatedUser *User `gorm:"foreignKey:RelatedUserID;references:ID;constraint:false" json:"relatedUser,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
