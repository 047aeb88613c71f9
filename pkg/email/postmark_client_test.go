package email_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netman-app/authkit/pkg/email"
)

func TestNewPostmarkClient_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  email.Config
		msg  string
	}{
		{
			name: "missing server token",
			cfg:  email.Config{SenderEmail: "noreply@example.com"},
			msg:  "PostmarkServerToken is required",
		},
		{
			name: "invalid sender",
			cfg:  email.Config{PostmarkServerToken: "tok", SenderEmail: "noreply"},
			msg:  "SenderEmail must be a valid email address",
		},
		{
			name: "invalid support",
			cfg:  email.Config{PostmarkServerToken: "tok", SenderEmail: "noreply@example.com", SupportEmail: "support"},
			msg:  "SupportEmail must be a valid email address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, err := email.NewPostmarkClient(tt.cfg)
			assert.Nil(t, client)
			assert.ErrorIs(t, err, email.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func newPostmarkServer(t *testing.T, errorCode int) (*httptest.Server, *map[string]any) {
	t.Helper()

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/email", r.URL.Path)
		assert.Equal(t, "server-token", r.Header.Get("X-Postmark-Server-Token"))
		_ = json.NewDecoder(r.Body).Decode(&got)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"To":        "user@example.com",
			"MessageID": "msg-1",
			"ErrorCode": errorCode,
			"Message":   map[bool]string{true: "OK", false: "Inactive recipient"}[errorCode == 0],
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestPostmarkClient_SendEmail(t *testing.T) {
	t.Parallel()

	cfg := email.Config{
		PostmarkServerToken: "server-token",
		SenderEmail:         "noreply@example.com",
		SupportEmail:        "support@example.com",
	}
	params := email.SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "Активация аккаунта пользователя",
		BodyHTML: "<p>activate</p>",
		Tag:      "activation",
	}

	t.Run("delivers message", func(t *testing.T) {
		t.Parallel()

		srv, got := newPostmarkServer(t, 0)
		client, err := email.NewPostmarkClient(cfg, email.WithPostmarkBaseURL(srv.URL))
		require.NoError(t, err)

		require.NoError(t, client.SendEmail(context.Background(), params))
		assert.Equal(t, "noreply@example.com", (*got)["From"])
		assert.Equal(t, "user@example.com", (*got)["To"])
		assert.Equal(t, "activation", (*got)["Tag"])
	})

	t.Run("postmark error code fails", func(t *testing.T) {
		t.Parallel()

		srv, _ := newPostmarkServer(t, 406)
		client, err := email.NewPostmarkClient(cfg, email.WithPostmarkBaseURL(srv.URL))
		require.NoError(t, err)

		err = client.SendEmail(context.Background(), params)
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
	})

	t.Run("invalid params never reach the API", func(t *testing.T) {
		t.Parallel()

		client, err := email.NewPostmarkClient(cfg, email.WithPostmarkBaseURL("http://127.0.0.1:1"))
		require.NoError(t, err)

		err = client.SendEmail(context.Background(), email.SendEmailParams{SendTo: "user@example.com"})
		assert.ErrorIs(t, err, email.ErrInvalidParams)
	})
}
