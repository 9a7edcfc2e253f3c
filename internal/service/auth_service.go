package service

import (
	"errors"
	"time"

	"github.com/rajpalpavitra-beep/HaBet-app3/internal/config"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/model"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/repository"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/util"
	"github.com/rajpalpavitra-beep/HaBet-app3/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	userRepo *repository.UserRepository
	roomRepo *repository.RoomRepository
	cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, roomRepo *repository.RoomRepository, cfg *config.Config) *AuthService {
	return &AuthService{userRepo: userRepo, roomRepo: roomRepo, cfg: cfg}
}

type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (s *AuthService) Register(email, password, displayName string) (*AuthResult, error) {
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:       email,
		Password:    string(hashed),
		DisplayName: displayName,
		LastLogin:   time.Now(),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	s.consumeRoomInvites(user)

	token, err := util.GenerateJWT(user, s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("User registered", zap.String("email", email), zap.Uint("user_id", user.ID))
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	if user.Disabled {
		return nil, util.ErrPermissionDenied
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, util.ErrUserNotFound
	}

	user.LastLogin = time.Now()
	if err := s.userRepo.Update(user); err != nil {
		logger.Log.Warn("Failed to update last login", zap.Error(err))
	}

	s.consumeRoomInvites(user)

	token, err := util.GenerateJWT(user, s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// consumeRoomInvites turns any pending email invitations addressed to
// the user into memberships. Errors are logged and swallowed; sign-in
// must not fail because an invite row is stale.
func (s *AuthService) consumeRoomInvites(user *model.User) {
	invites, err := s.roomRepo.PendingInvitesFor(user.Email)
	if err != nil {
		logger.Log.Warn("Failed to load pending room invites", zap.Error(err))
		return
	}
	for _, inv := range invites {
		isMember, err := s.roomRepo.IsMember(inv.RoomID, user.ID)
		if err != nil {
			continue
		}
		if !isMember {
			if err := s.roomRepo.AddMember(inv.RoomID, user.ID); err != nil {
				logger.Log.Warn("Failed to accept room invite",
					zap.String("invite_id", inv.ID),
					zap.Error(err))
				continue
			}
		}
		s.roomRepo.AcceptInvite(inv.ID)
	}
}
