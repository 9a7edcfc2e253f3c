package repository

import (
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/model"

	"gorm.io/gorm"
)

type FriendRepository struct {
	DB *gorm.DB
}

func NewFriendRepository(db *gorm.DB) *FriendRepository {
	return &FriendRepository{DB: db}
}

func (r *FriendRepository) Create(friend *model.Friend) error {
	return r.DB.Create(friend).Error
}

func (r *FriendRepository) FindByID(id string) (*model.Friend, error) {
	var friend model.Friend
	err := r.DB.Where("id = ?", id).First(&friend).Error
	if err != nil {
		return nil, err
	}
	return &friend, nil
}

// FindPair returns the row between two users in either direction.
func (r *FriendRepository) FindPair(a, b uint) (*model.Friend, error) {
	var friend model.Friend
	err := r.DB.Where(
		"(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
		a, b, b, a,
	).First(&friend).Error
	if err != nil {
		return nil, err
	}
	return &friend, nil
}

// FindAllFor loads every relationship a user appears in, with both
// profiles preloaded the way the Friends page joined them.
func (r *FriendRepository) FindAllFor(userID uint) ([]model.Friend, error) {
	var friends []model.Friend
	err := r.DB.Preload("Requester").Preload("Addressee").
		Where("requester_id = ? OR addressee_id = ?", userID, userID).
		Find(&friends).Error
	return friends, err
}

func (r *FriendRepository) UpdateStatus(id string, status model.FriendStatus) error {
	return r.DB.Model(&model.Friend{}).Where("id = ?", id).Update("status", status).Error
}

// Delete removes the row for good. A soft delete would leave the unique
// pair index blocking a later re-add.
func (r *FriendRepository) Delete(id string) error {
	return r.DB.Unscoped().Where("id = ?", id).Delete(&model.Friend{}).Error
}

// AcceptedFriendIDs returns the IDs of everyone the user is friends
// with, used when nominating accountability partners.
func (r *FriendRepository) AcceptedFriendIDs(userID uint) ([]uint, error) {
	var friends []model.Friend
	err := r.DB.Where("(requester_id = ? OR addressee_id = ?) AND status = ?",
		userID, userID, model.FriendAccepted).
		Find(&friends).Error
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(friends))
	for i := range friends {
		ids = append(ids, friends[i].OtherSide(userID))
	}
	return ids, nil
}

func (r *FriendRepository) IsFriend(a, b uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Friend{}).Where(
		"((requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)) AND status = ?",
		a, b, b, a, model.FriendAccepted,
	).Count(&count).Error
	return count > 0, err
}
