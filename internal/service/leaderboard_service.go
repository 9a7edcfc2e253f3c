package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/rajpalpavitra-beep/HaBet-app3/internal/model"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/repository"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/scoring"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/util"
	"github.com/rajpalpavitra-beep/HaBet-app3/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	leaderboardCacheTTL = time.Minute
	globalCacheKey      = "habet:leaderboard:global"
	roomCachePrefix     = "habet:leaderboard:room:"
)

// Entry is one leaderboard row, already scored and ranked.
type Entry struct {
	Rank             int     `json:"rank"`
	UserID           uint    `json:"userId"`
	Name             string  `json:"name"`
	EmojiAvatar      string  `json:"emojiAvatar,omitempty"`
	AvatarColorIndex int     `json:"avatarColorIndex"`
	Won              int     `json:"won"`
	Lost             int     `json:"lost"`
	Pending          int     `json:"pending"`
	Streak           int     `json:"streak"`
	Score            int     `json:"score"`
	WinRate          float64 `json:"winRate"`
}

// LeaderboardService ranks users by the composite score. Results are
// cached in Redis for a minute; a nil Redis client just means every
// request recomputes.
type LeaderboardService struct {
	userRepo    *repository.UserRepository
	betRepo     *repository.BetRepository
	checkinRepo *repository.CheckinRepository
	roomRepo    *repository.RoomRepository
	rdb         *redis.Client

	now func() time.Time
}

func NewLeaderboardService(
	userRepo *repository.UserRepository,
	betRepo *repository.BetRepository,
	checkinRepo *repository.CheckinRepository,
	roomRepo *repository.RoomRepository,
	rdb *redis.Client,
) *LeaderboardService {
	return &LeaderboardService{
		userRepo:    userRepo,
		betRepo:     betRepo,
		checkinRepo: checkinRepo,
		roomRepo:    roomRepo,
		rdb:         rdb,
		now:         time.Now,
	}
}

// Global ranks every active user by score. Streaks come from the
// app-wide daily check-ins.
func (s *LeaderboardService) Global() ([]Entry, error) {
	if cached, ok := s.fromCache(globalCacheKey); ok {
		return cached, nil
	}

	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	bets, err := s.betRepo.FindAllForUsers(ids)
	if err != nil {
		return nil, err
	}

	dailies, err := s.checkinRepo.AllDaily()
	if err != nil {
		return nil, err
	}
	dailyByUser := make(map[uint][]time.Time)
	for _, d := range dailies {
		dailyByUser[d.UserID] = append(dailyByUser[d.UserID], d.CheckinDate)
	}

	entries := s.rank(users, bets, dailyByUser)
	s.toCache(globalCacheKey, entries)
	return entries, nil
}

// Room ranks the members of one room over the bets created inside it.
// Streaks come from completed check-ins on those room bets.
func (s *LeaderboardService) Room(roomID string, userID uint) ([]Entry, error) {
	isMember, err := s.roomRepo.IsMember(roomID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, util.ErrNotRoomMember
	}

	cacheKey := roomCachePrefix + roomID
	if cached, ok := s.fromCache(cacheKey); ok {
		return cached, nil
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

	betOwner := make(map[string]uint, len(bets))
	betIDs := make([]string, 0, len(bets))
	for _, b := range bets {
		betOwner[b.ID] = b.UserID
		betIDs = append(betIDs, b.ID)
	}
	checkins, err := s.checkinRepo.CompletedForBets(betIDs)
	if err != nil {
		return nil, err
	}
	datesByUser := make(map[uint][]time.Time)
	for _, c := range checkins {
		owner := betOwner[c.BetID]
		datesByUser[owner] = append(datesByUser[owner], c.CheckinDate)
	}

	entries := s.rank(members, bets, datesByUser)
	s.toCache(cacheKey, entries)
	return entries, nil
}

// rank computes every entry and sorts by score, descending. The sort is
// stable so equal scores keep the incoming user order.
func (s *LeaderboardService) rank(users []model.User, bets []model.Bet, datesByUser map[uint][]time.Time) []Entry {
	type tally struct{ won, lost, pending int }
	tallies := make(map[uint]*tally, len(users))
	for _, u := range users {
		tallies[u.ID] = &tally{}
	}
	for _, b := range bets {
		t, ok := tallies[b.UserID]
		if !ok {
			continue
		}
		switch b.Status {
		case model.BetWon:
			t.won++
		case model.BetLost:
			t.lost++
		default:
			t.pending++
		}
	}

	ref := s.now()
	entries := make([]Entry, 0, len(users))
	for _, u := range users {
		t := tallies[u.ID]
		streak := scoring.Streak(datesByUser[u.ID], ref)
		entries = append(entries, Entry{
			UserID:           u.ID,
			Name:             u.Name(),
			EmojiAvatar:      u.EmojiAvatar,
			AvatarColorIndex: u.AvatarColorIndex,
			Won:              t.won,
			Lost:             t.lost,
			Pending:          t.pending,
			Streak:           streak,
			Score:            scoring.Score(t.won, t.lost, streak),
			WinRate:          scoring.WinRate(t.won, t.lost, t.pending),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func (s *LeaderboardService) fromCache(key string) ([]Entry, bool) {
	if s.rdb == nil {
		return nil, false
	}
	raw, err := s.rdb.Get(context.Background(), key).Bytes()
	if err != nil {
		return nil, false
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (s *LeaderboardService) toCache(key string, entries []Entry) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := s.rdb.Set(context.Background(), key, raw, leaderboardCacheTTL).Err(); err != nil {
		logger.Log.Debug("Leaderboard cache write failed", zap.Error(err))
	}
}
