package smtp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	msg := buildMessage("hr@example.com", "jane@example.com", "Your application", "Thank you")
	require.True(t, strings.HasPrefix(msg, "From: hr@example.com\r\n"))
	require.Contains(t, msg, "Subject: Your application\r\n")
	require.Contains(t, msg, "\r\n\r\nThank you\r\n")
}

func TestSendEMailNotConfigured(t *testing.T) {
	require.Nil(t, Connect("", "", "", "", false))
	require.Nil(t, Instance.SendEMail("jane@example.com", "subject", "body"))
}
