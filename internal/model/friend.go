package model

type FriendStatus string

const (
	FriendPending  FriendStatus = "pending"
	FriendAccepted FriendStatus = "accepted"
	FriendRejected FriendStatus = "rejected"
)

// Friend is a single-row friendship: the requester sends, the addressee
// accepts or rejects. One row covers both directions once accepted.
// swagger:model Friend
type Friend struct {
	UUIDBase
	RequesterID uint         `gorm:"index;not null;uniqueIndex:idx_friend_pair" json:"requesterId"`
	AddresseeID uint         `gorm:"index;not null;uniqueIndex:idx_friend_pair" json:"addresseeId"`
	Status      FriendStatus `gorm:"size:20;default:'pending'" json:"status"`

	Requester *User `gorm:"foreignKey:RequesterID;references:ID;constraint:false" json:"requester,omitempty"`
	Addressee *User `gorm:"foreignKey:AddresseeID;references:ID;constraint:false" json:"addressee,omitempty"`
}

func (Friend) TableName() string {
	return "friends"
}

// OtherSide returns the friend's user ID as seen from userID.
func (f *Friend) OtherSide(userID uint) uint {
	if f.RequesterID == userID {
		return f.AddresseeID
	}
	return f.RequesterID
}
