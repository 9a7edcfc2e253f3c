package controller

import (
	"errors"

	"github.com/rajpalpavitra-beep/HaBet-app3/internal/service"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/util"

	"github.com/gin-gonic/gin"
)

// CheckinController serves the app-wide daily check-in and the
// dashboard aggregate, both independent of any single bet.
type CheckinController struct {
	checkinService *service.CheckinService
}

func NewCheckinController(checkinService *service.CheckinService) *CheckinController {
	return &CheckinController{checkinService: checkinService}
}

// DailyCheckIn godoc
// @Summary Record today's app-wide check-in
// @Tags check-ins
// @Produce json
// @Security BearerAuth
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/daily-checkins [post]
func (ctrl *CheckinController) DailyCheckIn(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	daily, err := ctrl.checkinService.DailyCheckIn(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrAlreadyCheckedIn) {
			util.BadRequest(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Created(c, daily)
}

// DailyStreak godoc
// @Summary Get the current daily check-in streak
// @Tags check-ins
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/daily-checkins/streak [get]
func (ctrl *CheckinController) DailyStreak(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	streak, err := ctrl.checkinService.GetDailyStreak(claims.UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, streak)
}

// Dashboard godoc
// @Summary Get the home-screen progress aggregate
// @Tags check-ins
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/dashboard/progress [get]
func (ctrl *CheckinController) Dashboard(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	progress, err := ctrl.checkinService.Dashboard(claims.UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, progress)
}
