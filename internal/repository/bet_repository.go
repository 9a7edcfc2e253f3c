package repository

import (
	"time"

	"github.com/rajpalpavitra-beep/HaBet-app3/internal/model"

	"gorm.io/gorm"
)

type BetRepository struct {
	DB *gorm.DB
}

func NewBetRepository(db *gorm.DB) *BetRepository {
	return &BetRepository{DB: db}
}

func (r *BetRepository) Create(bet *model.Bet) error {
	return r.DB.Create(bet).Error
}

func (r *BetRepository) FindByID(id string) (*model.Bet, error) {
	var bet model.Bet
	err := r.DB.Where("id = ?", id).First(&bet).Error
	if err != nil {
		return nil, err
	}
	return &bet, nil
}

// FindByUser lists a user's bets, newest first.
func (r *BetRepository) FindByUser(userID uint) ([]model.Bet, error) {
	var bets []model.Bet
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&bets).Error
	return bets, err
}

// FindByRoom lists all bets created inside a room, newest first.
func (r *BetRepository) FindByRoom(roomID string) ([]model.Bet, error) {
	var bets []model.Bet
	err := r.DB.Where("room_id = ?", roomID).Order("created_at DESC").Find(&bets).Error
	return bets, err
}

// FindAllForUsers loads the bet rows feeding a leaderboard. Only owner
// and status matter there, but loading whole rows keeps this reusable.
func (r *BetRepository) FindAllForUsers(userIDs []uint) ([]model.Bet, error) {
	var bets []model.Bet
	if len(userIDs) == 0 {
		return bets, nil
	}
	err := r.DB.Where("user_id IN ?", userIDs).Find(&bets).Error
	return bets, err
}

func (r *BetRepository) FindPending() ([]model.Bet, error) {
	var bets []model.Bet
	err := r.DB.Where("status = ?", model.BetPending).Find(&bets).Error
	return bets, err
}

func (r *BetRepository) Update(bet *model.Bet) error {
	return r.DB.Save(bet).Error
}

func (r *BetRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bet_id = ?", id).Delete(&model.BetAccountability{}).Error; err != nil {
			return err
		}
		if err := tx.Where("bet_id = ?", id).Delete(&model.CheckIn{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Bet{}).Error
	})
}

// ReplaceAccountability swaps a bet's nominated partners for the given
// set inside one transaction, mirroring the original delete-then-insert
// flow.
func (r *BetRepository) ReplaceAccountability(betID string, friendIDs []uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bet_id = ?", betID).Delete(&model.BetAccountability{}).Error; err != nil {
			return err
		}
		for _, fid := range friendIDs {
			link := model.BetAccountability{BetID: betID, FriendID: fid}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *BetRepository) GetAccountability(betID string) ([]model.BetAccountability, error) {
	var links []model.BetAccountability
	err := r.DB.Where("bet_id = ?", betID).Find(&links).Error
	return links, err
}

func (r *BetRepository) FindAccountabilityFor(betID string, friendID uint) (*model.BetAccountability, error) {
	var link model.BetAccountability
	err := r.DB.Where("bet_id = ? AND friend_id = ?", betID, friendID).First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *BetRepository) MarkVerified(betID string, friendID uint) error {
	now := time.Now()
	return r.DB.Model(&model.BetAccountability{}).
		Where("bet_id = ? AND friend_id = ?", betID, friendID).
		Updates(map[string]interface{}{"verified": true, "verified_at": now}).
		Error
}

// AllVerified reports whether every accountability link on the bet has
// been confirmed. A bet with no links counts as verified.
func (r *BetRepository) AllVerified(betID string) (bool, error) {
	var unverified int64
	err := r.DB.Model(&model.BetAccountability{}).
		Where("bet_id = ? AND verified = ?", betID, false).
		Count(&unverified).Error
	return unverified == 0, err
}
