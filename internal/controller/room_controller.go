package controller

import (
	"errors"

	"github.com/rajpalpavitra-beep/HaBet-app3/internal/service"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/util"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	roomService *service.RoomService
}

func NewRoomController(roomService *service.RoomService) *RoomController {
	return &RoomController{roomService: roomService}
}

type createRoomRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// Create godoc
// @Summary Create a game room
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createRoomRequest true "Room name"
// @Success 201 {object} util.Response
// @Router /api/rooms [post]
func (ctrl *RoomController) Create(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	room, err := ctrl.roomService.Create(claims.UserID, req.Name)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Created(c, room)
}

// List godoc
// @Summary List the rooms the user belongs to
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/rooms [get]
func (ctrl *RoomController) List(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	rooms, err := ctrl.roomService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, rooms)
}

// Get godoc
// @Summary Get a room with its members and bets
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/rooms/{id} [get]
func (ctrl *RoomController) Get(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	detail, err := ctrl.roomService.Get(c.Param("id"), claims.UserID)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}
	util.Success(c, detail)
}

type joinRoomRequest struct {
	Code string `json:"code" binding:"required"`
}

// Join godoc
// @Summary Join a room by invite code
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body joinRoomRequest true "Invite code"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/rooms/join [post]
func (ctrl *RoomController) Join(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var req joinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	room, err := ctrl.roomService.Join(claims.UserID, req.Code)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}
	util.Success(c, room)
}

// Leave godoc
// @Summary Leave a room
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 200 {object} util.Response
// @Router /api/rooms/{id}/leave [post]
func (ctrl *RoomController) Leave(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if err := ctrl.roomService.Leave(c.Param("id"), claims.UserID); err != nil {
		ctrl.respondError(c, err)
		return
	}
	util.Success(c, nil)
}

type roomInviteRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Invite godoc
// @Summary Invite someone to the room by email
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param request body roomInviteRequest true "Invitee email"
// @Success 200 {object} util.Response
// @Router /api/rooms/{id}/invite [post]
func (ctrl *RoomController) Invite(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var req roomInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	if err := ctrl.roomService.Invite(c.Param("id"), claims.UserID, req.Email); err != nil {
		ctrl.respondError(c, err)
		return
	}
	util.Success(c, gin.H{"invited": true})
}

func (ctrl *RoomController) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrRoomNotFound):
		util.NotFound(c)
	case errors.Is(err, util.ErrNotRoomMember):
		util.Forbidden(c)
	case errors.Is(err, util.ErrAlreadyMember):
		util.BadRequest(c, err.Error())
	default:
		util.LogInternalError(c, err)
	}
}
