package controller

import (
	"errors"

	"github.com/rajpalpavitra-beep/HaBet-app3/internal/service"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/util"

	"github.com/gin-gonic/gin"
)

type LeaderboardController struct {
	leaderboardService *service.LeaderboardService
}

func NewLeaderboardController(leaderboardService *service.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{leaderboardService: leaderboardService}
}

// Global godoc
// @Summary Get the global leaderboard
// @Tags leaderboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/leaderboard [get]
func (ctrl *LeaderboardController) Global(c *gin.Context) {
	entries, err := ctrl.leaderboardService.Global()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, entries)
}

// Room godoc
// @Summary Get a room's leaderboard
// @Tags leaderboard
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/rooms/{id}/leaderboard [get]
func (ctrl *LeaderboardController) Room(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	entries, err := ctrl.leaderboardService.Room(c.Param("id"), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrNotRoomMember) {
			util.Forbidden(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, entries)
}
