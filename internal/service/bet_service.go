package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/rajpalpavitra-beep/HaBet-app3/internal/model"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/repository"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/util"
	"github.com/rajpalpavitra-beep/HaBet-app3/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type BetService struct {
	betRepo      *repository.BetRepository
	friendRepo   *repository.FriendRepository
	roomRepo     *repository.RoomRepository
	userRepo     *repository.UserRepository
	notification *NotificationService
}

func NewBetService(
	betRepo *repository.BetRepository,
	friendRepo *repository.FriendRepository,
	roomRepo *repository.RoomRepository,
	userRepo *repository.UserRepository,
	notification *NotificationService,
) *BetService {
	return &BetService{
		betRepo:      betRepo,
		friendRepo:   friendRepo,
		roomRepo:     roomRepo,
		userRepo:     userRepo,
		notification: notification,
	}
}

// BetInput is the create/update payload. Dates arrive as YYYY-MM-DD
// strings and are validated at this boundary.
type BetInput struct {
	Title                 string  `json:"title" binding:"required"`
	Description           string  `json:"description"`
	Goal                  string  `json:"goal"`
	Stake                 string  `json:"stake"`
	StartDate             string  `json:"startDate"`
	TargetDate            string  `json:"targetDate"`
	RoomID                *string `json:"roomId"`
	VerificationRequired  bool    `json:"verificationRequired"`
	AccountabilityFriends []uint  `json:"accountabilityFriends"`
	NotificationTime      string  `json:"notificationTime"`
	NotificationFrequency string  `json:"notificationFrequency"`
}

func (s *BetService) Create(userID uint, input BetInput) (*model.Bet, error) {
	start, target, err := s.parseDates(input.StartDate, input.TargetDate)
	if err != nil {
		return nil, err
	}

	if input.RoomID != nil && *input.RoomID != "" {
		isMember, err := s.roomRepo.IsMember(*input.RoomID, userID)
		if err != nil {
			return nil, err
		}
		if !isMember {
			return nil, util.ErrNotRoomMember
		}
	} else {
		input.RoomID = nil
	}

	bet := &model.Bet{
		UserID:               userID,
		RoomID:               input.RoomID,
		Title:                input.Title,
		Description:          input.Description,
		Goal:                 input.Goal,
		Stake:                input.Stake,
		StartDate:            start,
		TargetDate:           target,
		Status:               model.BetPending,
		VerificationRequired: input.VerificationRequired,
	}
	if input.NotificationTime != "" {
		bet.NotificationTime = input.NotificationTime
	}
	if input.NotificationFrequency != "" {
		bet.NotificationFrequency = input.NotificationFrequency
	}

	if err := s.betRepo.Create(bet); err != nil {
		return nil, err
	}

	if len(input.AccountabilityFriends) > 0 {
		if err := s.setAccountability(bet, userID, input.AccountabilityFriends); err != nil {
			return nil, err
		}
	}

	logger.Log.Info("Bet created",
		zap.String("bet_id", bet.ID),
		zap.Uint("user_id", userID),
		zap.String("title", bet.Title))
	return bet, nil
}

func (s *BetService) List(userID uint) ([]model.Bet, error) {
	return s.betRepo.FindByUser(userID)
}

// Get returns the bet when the caller is its owner, one of its
// accountability partners, or a member of its room.
func (s *BetService) Get(betID string, userID uint) (*model.Bet, error) {
	bet, err := s.findBet(betID)
	if err != nil {
		return nil, err
	}
	if bet.UserID == userID {
		return bet, nil
	}
	if _, err := s.betRepo.FindAccountabilityFor(betID, userID); err == nil {
		return bet, nil
	}
	if bet.RoomID != nil {
		if isMember, err := s.roomRepo.IsMember(*bet.RoomID, userID); err == nil && isMember {
			return bet, nil
		}
	}
	return nil, util.ErrPermissionDenied
}

func (s *BetService) Update(betID string, userID uint, input BetInput) (*model.Bet, error) {
	bet, err := s.ownedBet(betID, userID)
	if err != nil {
		return nil, err
	}
	if bet.Resolved() {
		return nil, util.ErrBetResolved
	}

	start, target, err := s.parseDates(input.StartDate, input.TargetDate)
	if err != nil {
		return nil, err
	}

	bet.Title = input.Title
	bet.Description = input.Description
	bet.Goal = input.Goal
	bet.Stake = input.Stake
	bet.StartDate = start
	bet.TargetDate = target
	bet.VerificationRequired = input.VerificationRequired
	if input.NotificationTime != "" {
		bet.NotificationTime = input.NotificationTime
	}
	if input.NotificationFrequency != "" {
		bet.NotificationFrequency = input.NotificationFrequency
	}

	if err := s.betRepo.Update(bet); err != nil {
		return nil, err
	}

	if input.AccountabilityFriends != nil {
		if err := s.setAccountability(bet, userID, input.AccountabilityFriends); err != nil {
			return nil, err
		}
	}
	return bet, nil
}

func (s *BetService) Delete(betID string, userID uint) error {
	if _, err := s.ownedBet(betID, userID); err != nil {
		return err
	}
	return s.betRepo.Delete(betID)
}

// Resolve moves a pending bet to won or lost. Won and lost are terminal:
// a second resolution is rejected. Winning a verification-required bet
// needs every accountability partner's confirmation first.
func (s *BetService) Resolve(betID string, userID uint, outcome model.BetStatus) (*model.Bet, error) {
	if outcome != model.BetWon && outcome != model.BetLost {
		return nil, fmt.Errorf("invalid outcome %q", outcome)
	}

	bet, err := s.ownedBet(betID, userID)
	if err != nil {
		return nil, err
	}
	if bet.Resolved() {
		return nil, util.ErrBetResolved
	}

	if outcome == model.BetWon && bet.VerificationRequired {
		allVerified, err := s.betRepo.AllVerified(betID)
		if err != nil {
			return nil, err
		}
		if !allVerified {
			return nil, util.ErrVerificationPending
		}
	}

	now := time.Now()
	bet.Status = outcome
	bet.ResolvedAt = &now
	if err := s.betRepo.Update(bet); err != nil {
		return nil, err
	}

	s.notifyPartners(bet, model.NotifyBetComplete,
		fmt.Sprintf("%q was resolved as %s", bet.Title, outcome))

	logger.Log.Info("Bet resolved",
		zap.String("bet_id", bet.ID),
		zap.String("outcome", string(outcome)))
	return bet, nil
}

// Verify records an accountability partner's confirmation. Once the last
// partner verifies, the owner is told the bet is ready to be won.
func (s *BetService) Verify(betID string, verifierID uint) (*model.Bet, error) {
	bet, err := s.findBet(betID)
	if err != nil {
		return nil, err
	}
	if bet.Resolved() {
		return nil, util.ErrBetResolved
	}

	if _, err := s.betRepo.FindAccountabilityFor(betID, verifierID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotAccountable
		}
		return nil, err
	}

	if err := s.betRepo.MarkVerified(betID, verifierID); err != nil {
		return nil, err
	}

	allVerified, err := s.betRepo.AllVerified(betID)
	if err != nil {
		return nil, err
	}
	if allVerified {
		s.notification.Notify(bet.UserID, model.NotifyVerificationComplete,
			fmt.Sprintf("All partners verified %q — you can mark it won", bet.Title),
			&bet.ID, &verifierID)
	}
	return bet, nil
}

func (s *BetService) Accountability(betID string, userID uint) ([]model.BetAccountability, error) {
	if _, err := s.Get(betID, userID); err != nil {
		return nil, err
	}
	return s.betRepo.GetAccountability(betID)
}

// setAccountability replaces the partner set, restricted to the owner's
// accepted friends, and notifies the newly nominated partners.
func (s *BetService) setAccountability(bet *model.Bet, ownerID uint, friendIDs []uint) error {
	accepted, err := s.friendRepo.AcceptedFriendIDs(ownerID)
	if err != nil {
		return err
	}
	acceptedSet := make(map[uint]struct{}, len(accepted))
	for _, id := range accepted {
		acceptedSet[id] = struct{}{}
	}
	for _, fid := range friendIDs {
		if _, ok := acceptedSet[fid]; !ok {
			return util.ErrNotAccountable
		}
	}

	if err := s.betRepo.ReplaceAccountability(bet.ID, friendIDs); err != nil {
		return err
	}

	owner, err := s.userRepo.FindByID(ownerID)
	if err != nil {
		return nil
	}
	for _, fid := range friendIDs {
		s.notification.Notify(fid, model.NotifyVerificationRequest,
			fmt.Sprintf("%s asked you to verify %q", owner.Name(), bet.Title),
			&bet.ID, &ownerID)
	}
	return nil
}

func (s *BetService) notifyPartners(bet *model.Bet, kind model.NotificationType, message string) {
	links, err := s.betRepo.GetAccountability(bet.ID)
	if err != nil {
		logger.Log.Warn("Failed to load accountability partners", zap.Error(err))
		return
	}
	for _, link := range links {
		s.notification.Notify(link.FriendID, kind, message, &bet.ID, &bet.UserID)
	}
}

func (s *BetService) findBet(betID string) (*model.Bet, error) {
	bet, err := s.betRepo.FindByID(betID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrBetNotFound
		}
		return nil, err
	}
	return bet, nil
}

func (s *BetService) ownedBet(betID string, userID uint) (*model.Bet, error) {
	bet, err := s.findBet(betID)
	if err != nil {
		return nil, err
	}
	if bet.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return bet, nil
}

func (s *BetService) parseDates(startStr, targetStr string) (*time.Time, *time.Time, error) {
	var start, target *time.Time
	if startStr != "" {
		t, err := util.ParseDate(startStr)
		if err != nil {
			return nil, nil, err
		}
		start = &t
	}
	if targetStr != "" {
		t, err := util.ParseDate(targetStr)
		if err != nil {
			return nil, nil, err
		}
		target = &t
	}
	if start != nil && target != nil && start.After(*target) {
		return nil, nil, util.ErrInvalidDateRange
	}
	return start, target, nil
}
