package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rajpalpavitra-beep/HaBet-app3/internal/service"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSender records the last invite and returns a canned result.
type fakeSender struct {
	lastMail InviteMailRecorder
	err      error
}

type InviteMailRecorder struct {
	mail service.InviteMail
	sent bool
}

func (f *fakeSender) SendInvite(mail service.InviteMail) (string, error) {
	f.lastMail = InviteMailRecorder{mail: mail, sent: true}
	if f.err != nil {
		return "", f.err
	}
	return "<test-message-id@localhost>", nil
}

func setupInviteRouter(sender service.MailSender) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctrl := NewInviteController(sender)
	r.POST("/api/invites/send", ctrl.Send)
	return r
}

func postInvite(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/invites/send", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSendInviteSuccess(t *testing.T) {
	sender := &fakeSender{}
	r := setupInviteRouter(sender)

	w := postInvite(t, r, `{
		"to": "friend@example.com",
		"fromName": "Alice",
		"inviteLink": "http://localhost:5173/join",
		"appName": "HaBet",
		"roomName": "Runners"
	}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "<test-message-id@localhost>", resp["messageId"])

	require.True(t, sender.lastMail.sent)
	assert.Equal(t, "friend@example.com", sender.lastMail.mail.To)
	assert.Equal(t, "Runners", sender.lastMail.mail.RoomName)
}

func TestSendInviteMissingFields(t *testing.T) {
	sender := &fakeSender{}
	r := setupInviteRouter(sender)

	for name, body := range map[string]string{
		"missing to":   `{"inviteLink": "http://x", "fromName": "A"}`,
		"missing link": `{"to": "a@b.com", "fromName": "A"}`,
	} {
		t.Run(name, func(t *testing.T) {
			w := postInvite(t, r, body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
			assert.False(t, sender.lastMail.sent)
		})
	}
}

func TestSendInviteMailNotConfigured(t *testing.T) {
	sender := &fakeSender{err: util.ErrMailNotConfigured}
	r := setupInviteRouter(sender)

	w := postInvite(t, r, `{"to": "a@b.com", "inviteLink": "http://x"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "email service not configured", resp["error"])
}
