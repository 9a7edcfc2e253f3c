package service

import (
	"crypto/rand"
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

// roomCodeAlphabet avoids 0/O and 1/I so codes survive being read
// aloud.
const (
	roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	roomCodeLength   = 6
)

type RoomService struct {
	roomRepo *repository.RoomRepository
	betRepo  *repository.BetRepository
	userRepo *repository.UserRepository
	mail     MailSender
	cfg      *config.Config
}

func NewRoomService(
	roomRepo *repository.RoomRepository,
	betRepo *repository.BetRepository,
	userRepo *repository.UserRepository,
	mail MailSender,
	cfg *config.Config,
) *RoomService {
	return &RoomService{
		roomRepo: roomRepo,
		betRepo:  betRepo,
		userRepo: userRepo,
		mail:     mail,
		cfg:      cfg,
	}
}

// Create makes a room with a fresh invite code and the creator as its
// first member.
func (s *RoomService) Create(userID uint, name string) (*model.GameRoom, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code := generateRoomCode()
		if _, err := s.roomRepo.FindByCode(code); err == nil {
			// Code collision, try another one.
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		room := &model.GameRoom{
			CreatorID: userID,
			Name:      name,
			RoomCode:  code,
		}
		if err := s.roomRepo.Create(room); err != nil {
			return nil, err
		}
		logger.Log.Info("Room created",
			zap.String("room_id", room.ID),
			zap.String("code", room.RoomCode))
		return room, nil
	}
	return nil, fmt.Errorf("could not allocate a unique room code")
}

// Join adds the user to the room matching the invite code.
func (s *RoomService) Join(userID uint, code string) (*model.GameRoom, error) {
	room, err := s.roomRepo.FindByCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrRoomNotFound
		}
		return nil, err
	}

	isMember, err := s.roomRepo.IsMember(room.ID, userID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, util.ErrAlreadyMember
	}

	if err := s.roomRepo.AddMember(room.ID, userID); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *RoomService) Leave(roomID string, userID uint) error {
	isMember, err := s.roomRepo.IsMember(roomID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return util.ErrNotRoomMember
	}
	return s.roomRepo.RemoveMember(roomID, userID)
}

// RoomSummary is a room with its member count, for the rooms list.
type RoomSummary struct {
	model.GameRoom
	MemberCount int64 `json:"memberCount"`
}

func (s *RoomService) List(userID uint) ([]RoomSummary, error) {
	rooms, err := s.roomRepo.FindByMember(userID)
	if err != nil {
		return nil, err
	}

	out := make([]RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		count, err := s.roomRepo.MemberCount(room.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, RoomSummary{GameRoom: room, MemberCount: count})
	}
	return out, nil
}

// RoomDetail bundles the room with its members and bets.
type RoomDetail struct {
	Room    *model.GameRoom `json:"room"`
	Members []model.User    `json:"members"`
	Bets    []model.Bet     `json:"bets"`
}

func (s *RoomService) Get(roomID string, userID uint) (*RoomDetail, error) {
	room, err := s.roomRepo.FindByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrRoomNotFound
		}
		return nil, err
	}

	isMember, err := s.roomRepo.IsMember(roomID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, util.ErrNotRoomMember
	}

	memberIDs, err := s.roomRepo.MemberIDs(roomID)
	if err != nil {
		return nil, err
	}
	members, err := s.userRepo.FindByIDs(memberIDs)
	if err != nil {
		return nil, err
	}
	bets, err := s.betRepo.FindByRoom(roomID)
	if err != nil {
		return nil, err
	}

	return &RoomDetail{Room: room, Members: members, Bets: bets}, nil
}

// Invite records an email invitation into the room and mails a join
// link. The invitation is consumed automatically when the invitee next
// signs in.
func (s *RoomService) Invite(roomID string, inviterID uint, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	room, err := s.roomRepo.FindByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrRoomNotFound
		}
		return err
	}

	isMember, err := s.roomRepo.IsMember(roomID, inviterID)
	if err != nil {
		return err
	}
	if !isMember {
		return util.ErrNotRoomMember
	}

	inviter, err := s.userRepo.FindByID(inviterID)
	if err != nil {
		return err
	}

	invite := &model.RoomInvite{
		RoomID:       roomID,
		InviterID:    inviterID,
		InviteeEmail: email,
	}
	if err := s.roomRepo.CreateInvite(invite); err != nil {
		return err
	}

	if s.mail != nil {
		link := fmt.Sprintf("%s/rooms/join?code=%s", s.cfg.App.BaseURL, room.RoomCode)
		_, err := s.mail.SendInvite(InviteMail{
			To:         email,
			FromName:   inviter.Name(),
			InviteLink: link,
			AppName:    s.cfg.App.Name,
			RoomName:   room.Name,
		})
		if err != nil && !errors.Is(err, util.ErrMailNotConfigured) {
			logger.Log.Warn("Failed to send room invite email",
				zap.String("to", email),
				zap.Error(err))
		}
	}
	return nil
}

func generateRoomCode() string {
	buf := make([]byte, roomCodeLength)
	rand.Read(buf)
	for i, b := range buf {
		buf[i] = roomCodeAlphabet[int(b)%len(roomCodeAlphabet)]
	}
	return string(buf)
}
