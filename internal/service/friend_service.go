package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rajpalpavitra-beep/HaBet-app3/internal/config"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/model"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/repository"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/util"
	"github.com/rajpalpavitra-beep/HaBet-app3/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type FriendService struct {
	friendRepo   *repository.FriendRepository
	userRepo     *repository.UserRepository
	notification *NotificationService
	mail         MailSender
	cfg          *config.Config
}

func NewFriendService(
	friendRepo *repository.FriendRepository,
	userRepo *repository.UserRepository,
	notification *NotificationService,
	mail MailSender,
	cfg *config.Config,
) *FriendService {
	return &FriendService{
		friendRepo:   friendRepo,
		userRepo:     userRepo,
		notification: notification,
		mail:         mail,
		cfg:          cfg,
	}
}

// Request sends a friend request to the user registered under email. If
// no account exists for the address, an invite email goes out instead
// and ErrUserNotFound is returned so the UI can say so.
func (s *FriendService) Request(requesterID uint, email string) (*model.Friend, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	requester, err := s.userRepo.FindByID(requesterID)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(requester.Email, email) {
		return nil, util.ErrSelfFriend
	}

	addressee, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.sendInvite(requester, email, "")
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	if _, err := s.friendRepo.FindPair(requesterID, addressee.ID); err == nil {
		return nil, util.ErrFriendRequestExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	friend := &model.Friend{
		RequesterID: requesterID,
		AddresseeID: addressee.ID,
		Status:      model.FriendPending,
	}
	if err := s.friendRepo.Create(friend); err != nil {
		return nil, err
	}

	s.notification.Notify(addressee.ID, model.NotifyFriendRequest,
		fmt.Sprintf("%s sent you a friend request", requester.Name()),
		nil, &requesterID)
	return friend, nil
}

// Respond accepts or rejects a pending request. Only the addressee may
// respond, and only once.
func (s *FriendService) Respond(friendID string, userID uint, accept bool) (*model.Friend, error) {
	friend, err := s.friendRepo.FindByID(friendID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPermissionDenied
		}
		return nil, err
	}
	if friend.AddresseeID != userID {
		return nil, util.ErrPermissionDenied
	}
	if friend.Status != model.FriendPending {
		return nil, util.ErrRequestHandled
	}

	status := model.FriendRejected
	if accept {
		status = model.FriendAccepted
	}
	if err := s.friendRepo.UpdateStatus(friendID, status); err != nil {
		return nil, err
	}
	friend.Status = status

	if accept {
		if addressee, err := s.userRepo.FindByID(userID); err == nil {
			s.notification.Notify(friend.RequesterID, model.NotifyFriendRequest,
				fmt.Sprintf("%s accepted your friend request", addressee.Name()),
				nil, &userID)
		}
	}
	return friend, nil
}

// FriendList splits relationships the way the Friends page shows them.
type FriendList struct {
	Friends  []FriendEntry `json:"friends"`
	Incoming []FriendEntry `json:"incoming"`
	Outgoing []FriendEntry `json:"outgoing"`
}

type FriendEntry struct {
	FriendshipID string      `json:"friendshipId"`
	User         *model.User `json:"user"`
}

func (s *FriendService) List(userID uint) (*FriendList, error) {
	rows, err := s.friendRepo.FindAllFor(userID)
	if err != nil {
		return nil, err
	}

	out := &FriendList{
		Friends:  []FriendEntry{},
		Incoming: []FriendEntry{},
		Outgoing: []FriendEntry{},
	}
	for i := range rows {
		row := &rows[i]
		other := row.Addressee
		if row.AddresseeID == userID {
			other = row.Requester
		}
		entry := FriendEntry{FriendshipID: row.ID, User: other}

		switch {
		case row.Status == model.FriendAccepted:
			out.Friends = append(out.Friends, entry)
		case row.Status == model.FriendPending && row.AddresseeID == userID:
			out.Incoming = append(out.Incoming, entry)
		case row.Status == model.FriendPending:
			out.Outgoing = append(out.Outgoing, entry)
		}
	}
	return out, nil
}

func (s *FriendService) Remove(friendID string, userID uint) error {
	friend, err := s.friendRepo.FindByID(friendID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrPermissionDenied
		}
		return err
	}
	if friend.RequesterID != userID && friend.AddresseeID != userID {
		return util.ErrPermissionDenied
	}
	return s.friendRepo.Delete(friendID)
}

func (s *FriendService) sendInvite(requester *model.User, email, roomName string) {
	if s.mail == nil {
		return
	}
	_, err := s.mail.SendInvite(InviteMail{
		To:         email,
		FromName:   requester.Name(),
		InviteLink: s.cfg.App.BaseURL,
		AppName:    s.cfg.App.Name,
		RoomName:   roomName,
	})
	if err != nil && !errors.Is(err, util.ErrMailNotConfigured) {
		logger.Log.Warn("Failed to send friend invite email",
			zap.String("to", email),
			zap.Error(err))
	}
}
