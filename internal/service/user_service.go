package service

import (
	"errors"
	"mime/multipart"

	"github.com/rajpalpavitra-beep/HaBet-app3/internal/model"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/repository"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	userRepo *repository.UserRepository
	storage  *StorageService
}

func NewUserService(userRepo *repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{userRepo: userRepo, storage: storage}
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ProfileUpdate carries the editable fields of a profile. Pointers
// distinguish "leave unchanged" from "set to empty".
type ProfileUpdate struct {
	DisplayName      *string `json:"displayName"`
	Nickname         *string `json:"nickname"`
	EmojiAvatar      *string `json:"emojiAvatar"`
	AvatarColorIndex *int    `json:"avatarColorIndex"`
}

func (s *UserService) UpdateProfile(userID uint, update ProfileUpdate) (*model.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if update.DisplayName != nil {
		user.DisplayName = *update.DisplayName
	}
	if update.Nickname != nil {
		user.Nickname = *update.Nickname
	}
	if update.EmojiAvatar != nil {
		user.EmojiAvatar = *update.EmojiAvatar
	}
	if update.AvatarColorIndex != nil {
		user.AvatarColorIndex = *update.AvatarColorIndex
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UploadAvatar(userID uint, file *multipart.FileHeader) (*model.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	url, err := s.storage.SaveAvatar(userID, file)
	if err != nil {
		return nil, err
	}

	user.Avatar = url
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
