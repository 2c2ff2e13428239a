package wsclient

import (
	"strings"
	"time"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"

	wsmodels "ats-backend/models/ws"
)

// replier queues a message for the connection writer, the reader never writes itself
type replier interface {
	SendMessage(msg wsmodels.ServerMessage)
}

func NewClient(userID string, c *websocket.Conn, out replier) *WsClient {
	return &WsClient{
		conn:   c,
		userID: userID,
		out:    out,
	}
}

// WsClient reads the inbound side of a connection. Clients only listen to events, the
// only inbound message answered is a keepalive ping.
type WsClient struct {
	conn   *websocket.Conn
	userID string
	out    replier
}

var closeCodes []int

func init() {
	for i := websocket.CloseNormalClosure; i <= websocket.CloseTLSHandshake; i++ {
		closeCodes = append(closeCodes, i)
	}
}

func (c *WsClient) Dispatch() {
	logger := log.WithField("user_id", c.userID)
	for {
		if c.conn == nil {
			return
		}
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, closeCodes...) {
				logger.WithError(err).Error("ws message reading failed")
			}
			return
		}
		if reply, ok := c.handle(string(data)); ok {
			c.out.SendMessage(reply)
			continue
		}
		logger.WithField("ws_message", string(data)).Debug("ws message ignored")
	}
}

func (c *WsClient) handle(msg string) (wsmodels.ServerMessage, bool) {
	if !strings.EqualFold(strings.TrimSpace(msg), "ping") {
		return wsmodels.ServerMessage{}, false
	}
	return wsmodels.ServerMessage{
		ToUserID: c.userID,
		Time:     time.Now().Format(time.RFC3339),
		Code:     wsmodels.EventPong,
		Msg:      "pong",
	}, true
}
