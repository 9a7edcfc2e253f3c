package controller

import (
	"errors"

	"github.com/rajpalpavitra-beep/HaBet-app3/internal/model"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/service"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/util"

	"github.com/gin-gonic/gin"
)

type BetController struct {
	betService     *service.BetService
	checkinService *service.CheckinService
}

func NewBetController(betService *service.BetService, checkinService *service.CheckinService) *BetController {
	return &BetController{betService: betService, checkinService: checkinService}
}

// Create godoc
// @Summary Create a bet
// @Tags bets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.BetInput true "Bet payload"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/bets [post]
func (ctrl *BetController) Create(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var input service.BetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	bet, err := ctrl.betService.Create(claims.UserID, input)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}
	util.Created(c, bet)
}

// List godoc
// @Summary List the signed-in user's bets
// @Tags bets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/bets [get]
func (ctrl *BetController) List(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	bets, err := ctrl.betService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, bets)
}

// Get godoc
// @Summary Get one bet
// @Tags bets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bet ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/bets/{id} [get]
func (ctrl *BetController) Get(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	bet, err := ctrl.betService.Get(c.Param("id"), claims.UserID)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}
	util.Success(c, bet)
}

// Update godoc
// @Summary Update a pending bet
// @Tags bets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bet ID"
// @Param request body service.BetInput true "Bet payload"
// @Success 200 {object} util.Response
// @Router /api/bets/{id} [put]
func (ctrl *BetController) Update(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var input service.BetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	bet, err := ctrl.betService.Update(c.Param("id"), claims.UserID, input)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}
	util.Success(c, bet)
}

// Delete godoc
// @Summary Delete a bet and its check-ins
// @Tags bets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bet ID"
// @Success 200 {object} util.Response
// @Router /api/bets/{id} [delete]
func (ctrl *BetController) Delete(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if err := ctrl.betService.Delete(c.Param("id"), claims.UserID); err != nil {
		ctrl.respondError(c, err)
		return
	}
	util.Success(c, nil)
}

type resolveRequest struct {
	Outcome model.BetStatus `json:"outcome" binding:"required,oneof=won lost"`
}

// Resolve godoc
// @Summary Resolve a bet as won or lost
// @Tags bets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bet ID"
// @Param request body resolveRequest true "Outcome"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/bets/{id}/resolve [post]
func (ctrl *BetController) Resolve(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	bet, err := ctrl.betService.Resolve(c.Param("id"), claims.UserID, req.Outcome)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}
	util.Success(c, bet)
}

// Verify godoc
// @Summary Confirm a bet's completion as an accountability partner
// @Tags bets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bet ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/bets/{id}/verify [post]
func (ctrl *BetController) Verify(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	bet, err := ctrl.betService.Verify(c.Param("id"), claims.UserID)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}
	util.Success(c, bet)
}

// Accountability godoc
// @Summary List a bet's accountability partners
// @Tags bets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bet ID"
// @Success 200 {object} util.Response
// @Router /api/bets/{id}/accountability [get]
func (ctrl *BetController) Accountability(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	links, err := ctrl.betService.Accountability(c.Param("id"), claims.UserID)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}
	util.Success(c, links)
}

// CheckIn godoc
// @Summary Record today's check-in on a bet
// @Tags check-ins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bet ID"
// @Param request body service.CheckinInput true "Check-in payload"
// @Success 200 {object} util.Response
// @Router /api/bets/{id}/checkins [post]
func (ctrl *BetController) CheckIn(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var input service.CheckinInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	checkin, err := ctrl.checkinService.CheckIn(c.Param("id"), claims.UserID, input)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}
	util.Success(c, checkin)
}

// ListCheckIns godoc
// @Summary List a bet's check-in history
// @Tags check-ins
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bet ID"
// @Success 200 {object} util.Response
// @Router /api/bets/{id}/checkins [get]
func (ctrl *BetController) ListCheckIns(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	checkins, err := ctrl.checkinService.ListCheckIns(c.Param("id"), claims.UserID)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}
	util.Success(c, checkins)
}

// Progress godoc
// @Summary Get completion stats and streak for a bet
// @Tags check-ins
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bet ID"
// @Success 200 {object} util.Response
// @Router /api/bets/{id}/progress [get]
func (ctrl *BetController) Progress(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if _, err := ctrl.betService.Get(c.Param("id"), claims.UserID); err != nil {
		ctrl.respondError(c, err)
		return
	}
	progress, err := ctrl.checkinService.Progress(c.Param("id"), claims.UserID)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}
	util.Success(c, progress)
}

func (ctrl *BetController) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrBetNotFound):
		util.NotFound(c)
	case errors.Is(err, util.ErrPermissionDenied), errors.Is(err, util.ErrNotAccountable):
		util.Forbidden(c)
	case errors.Is(err, util.ErrBetResolved),
		errors.Is(err, util.ErrVerificationPending),
		errors.Is(err, util.ErrInvalidDateRange),
		errors.Is(err, util.ErrMalformedDate),
		errors.Is(err, util.ErrNotRoomMember):
		util.BadRequest(c, err.Error())
	default:
		util.LogInternalError(c, err)
	}
}
