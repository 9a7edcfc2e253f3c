package controller

import (
	"errors"
	"net/http"

	"github.com/rajpalpavitra-beep/HaBet-app3/internal/service"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/util"
	"github.com/rajpalpavitra-beep/HaBet-app3/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

// InviteController is the public invite-email endpoint. Its response
// shape is a fixed contract with the web client and deliberately does
// not use the standard envelope.
type InviteController struct {
	mail service.MailSender
}

func NewInviteController(mail service.MailSender) *InviteController {
	return &InviteController{mail: mail}
}

type sendInviteRequest struct {
	To         string `json:"to"`
	FromName   string `json:"fromName"`
	InviteLink string `json:"inviteLink"`
	AppName    string `json:"appName"`
	RoomName   string `json:"roomName"`
}

// Send godoc
// @Summary Send an invitation email
// @Tags invites
// @Accept json
// @Produce json
// @Param request body sendInviteRequest true "Invite payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/invites/send [post]
func (ctrl *InviteController) Send(c *gin.Context) {
	var req sendInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		monitoring.InviteEmailCounter.WithLabelValues("bad_request").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.To == "" || req.InviteLink == "" {
		monitoring.InviteEmailCounter.WithLabelValues("bad_request").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "to and inviteLink are required"})
		return
	}

	messageID, err := ctrl.mail.SendInvite(service.InviteMail{
		To:         req.To,
		FromName:   req.FromName,
		InviteLink: req.InviteLink,
		AppName:    req.AppName,
		RoomName:   req.RoomName,
	})
	if err != nil {
		if errors.Is(err, util.ErrMailNotConfigured) {
			monitoring.InviteEmailCounter.WithLabelValues("not_configured").Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "email service not configured"})
			return
		}
		monitoring.InviteEmailCounter.WithLabelValues("send_failed").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send invitation email"})
		return
	}

	monitoring.InviteEmailCounter.WithLabelValues("sent").Inc()
	c.JSON(http.StatusOK, gin.H{"success": true, "messageId": messageID})
}
