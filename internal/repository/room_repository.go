package repository

import (
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/model"

	"gorm.io/gorm"
)

type RoomRepository struct {
	DB *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{DB: db}
}

// Create inserts the room and its creator's membership in one
// transaction.
func (r *RoomRepository) Create(room *model.GameRoom) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(room).Error; err != nil {
			return err
		}
		member := model.RoomMember{RoomID: room.ID, UserID: room.CreatorID}
		return tx.Create(&member).Error
	})
}

func (r *RoomRepository) FindByID(id string) (*model.GameRoom, error) {
	var room model.GameRoom
	err := r.DB.Where("id = ?", id).First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *RoomRepository) FindByCode(code string) (*model.GameRoom, error) {
	var room model.GameRoom
	err := r.DB.Where("room_code = ?", code).First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// FindByMember lists the rooms a user belongs to, newest first.
func (r *RoomRepository) FindByMember(userID uint) ([]model.GameRoom, error) {
	var rooms []model.GameRoom
	err := r.DB.
		Joins("JOIN room_members ON room_members.room_id = game_rooms.id").
		Where("room_members.user_id = ?", userID).
		Order("game_rooms.created_at DESC").
		Find(&rooms).Error
	return rooms, err
}

func (r *RoomRepository) AddMember(roomID string, userID uint) error {
	member := model.RoomMember{RoomID: roomID, UserID: userID}
	return r.DB.Create(&member).Error
}

func (r *RoomRepository) RemoveMember(roomID string, userID uint) error {
	return r.DB.Where("room_id = ? AND user_id = ?", roomID, userID).
		Delete(&model.RoomMember{}).Error
}

func (r *RoomRepository) IsMember(roomID string, userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.RoomMember{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *RoomRepository) MemberIDs(roomID string) ([]uint, error) {
	var members []model.RoomMember
	err := r.DB.Where("room_id = ?", roomID).Order("created_at ASC").Find(&members).Error
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	return ids, nil
}

func (r *RoomRepository) MemberCount(roomID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.RoomMember{}).Where("room_id = ?", roomID).Count(&count).Error
	return count, err
}

func (r *RoomRepository) CreateInvite(invite *model.RoomInvite) error {
	return r.DB.Create(invite).Error
}

// PendingInvitesFor returns open invitations addressed to the email,
// consumed on the invitee's first sign-in.
func (r *RoomRepository) PendingInvitesFor(email string) ([]model.RoomInvite, error) {
	var invites []model.RoomInvite
	err := r.DB.Where("invitee_email = ? AND status = ?", email, model.RoomInvitePending).
		Find(&invites).Error
	return invites, err
}

func (r *RoomRepository) AcceptInvite(id string) error {
	return r.DB.Model(&model.RoomInvite{}).
		Where("id = ?", id).
		Update("status", model.RoomInviteAccepted).
		Error
}
