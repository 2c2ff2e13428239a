package wsclient

import (
	"testing"

	"github.com/stretchr/testify/require"

	wsmodels "ats-backend/models/ws"
)

func TestHandle(t *testing.T) {
	client := NewClient("user-1", nil, nil)

	reply, ok := client.handle(" PING ")
	require.True(t, ok)
	require.Equal(t, wsmodels.EventPong, reply.Code)
	require.Equal(t, "user-1", reply.ToUserID)
	require.NotEmpty(t, reply.Time)

	_, ok = client.handle(`{"action":"subscribe"}`)
	require.False(t, ok)
}
