package controller

import (
	"errors"

	"github.com/rajpalpavitra-beep/HaBet-app3/internal/service"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	userService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{userService: userService}
}

// GetProfile godoc
// @Summary Get the signed-in user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/users/me [get]
func (ctrl *UserController) GetProfile(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	user, err := ctrl.userService.GetProfile(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, user)
}

// UpdateProfile godoc
// @Summary Update display name, nickname and emoji avatar
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.ProfileUpdate true "Profile fields"
// @Success 200 {object} util.Response
// @Router /api/users/me [put]
func (ctrl *UserController) UpdateProfile(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var update service.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	user, err := ctrl.userService.UpdateProfile(claims.UserID, update)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, user)
}

// UploadAvatar godoc
// @Summary Upload an avatar image
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "Image file"
// @Success 200 {object} util.Response
// @Router /api/users/me/avatar [post]
func (ctrl *UserController) UploadAvatar(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	file, err := c.FormFile("avatar")
	if err != nil {
		util.BadRequest(c, "avatar file is required")
		return
	}

	user, err := ctrl.userService.UploadAvatar(claims.UserID, file)
	if err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	util.Success(c, user)
}
