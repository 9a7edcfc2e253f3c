package controller

import (
	"errors"

	"github.com/rajpalpavitra-beep/HaBet-app3/internal/service"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/util"

	"github.com/gin-gonic/gin"
)

type FriendController struct {
	friendService *service.FriendService
}

func NewFriendController(friendService *service.FriendService) *FriendController {
	return &FriendController{friendService: friendService}
}

type friendRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Request godoc
// @Summary Send a friend request by email
// @Tags friends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body friendRequest true "Friend's email"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/friends [post]
func (ctrl *FriendController) Request(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var req friendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	friend, err := ctrl.friendService.Request(claims.UserID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrUserNotFound):
			// No account for that email; an invite was sent instead.
			util.Success(c, gin.H{"invited": true})
		case errors.Is(err, util.ErrSelfFriend), errors.Is(err, util.ErrFriendRequestExists):
			util.BadRequest(c, err.Error())
		default:
			util.LogInternalError(c, err)
		}
		return
	}
	util.Created(c, friend)
}

// List godoc
// @Summary List friends and pending requests
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/friends [get]
func (ctrl *FriendController) List(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	list, err := ctrl.friendService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, list)
}

type respondRequest struct {
	Accept bool `json:"accept"`
}

// Respond godoc
// @Summary Accept or reject a friend request
// @Tags friends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Friendship ID"
// @Param request body respondRequest true "Decision"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/friends/{id}/respond [post]
func (ctrl *FriendController) Respond(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var req respondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	friend, err := ctrl.friendService.Respond(c.Param("id"), claims.UserID, req.Accept)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(c)
		case errors.Is(err, util.ErrRequestHandled):
			util.BadRequest(c, err.Error())
		default:
			util.LogInternalError(c, err)
		}
		return
	}
	util.Success(c, friend)
}

// Remove godoc
// @Summary Remove a friend or withdraw a request
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param id path string true "Friendship ID"
// @Success 200 {object} util.Response
// @Router /api/friends/{id} [delete]
func (ctrl *FriendController) Remove(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if err := ctrl.friendService.Remove(c.Param("id"), claims.UserID); err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, nil)
}
