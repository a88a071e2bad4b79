package websocket

import (
	"time"

	"github.com/anjiri1684/mentorship/auth"
	fiberws "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const authTimeout = 10 * time.Second

// ReadConn is the subset of *fiberws.Conn used to serve a connection.
type ReadConn interface {
	Conn
	ReadJSON(v interface{}) error
	ReadMessage() (messageType int, p []byte, err error)
	SetReadDeadline(t time.Time) error
}

type authFrame struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// UpgradeRequired rejects plain HTTP requests on the websocket route.
func UpgradeRequired(c *fiber.Ctx) error {
	if !fiberws.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

func Handler(h *Hub, secret string, log *zap.Logger) fiber.Handler {
	return fiberws.New(func(c *fiberws.Conn) {
		Serve(h, secret, c, log)
	})
}

// Serve authenticates the connection with its first frame ({"type":"auth","token":...}),
// registers it with the hub and blocks until the peer goes away. Frames after the first
// are ignored.
func Serve(h *Hub, secret string, conn ReadConn, log *zap.Logger) {
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(authTimeout))
	var frame authFrame
	if err := conn.ReadJSON(&frame); err != nil || frame.Type != "auth" {
		log.Debug("websocket auth failed: invalid or missing auth frame", zap.Error(err))
		_ = conn.WriteJSON(fiber.Map{"type": "error", "error": "Invalid or missing auth message"})
		return
	}
	id, err := auth.ParseToken(secret, frame.Token)
	if err != nil {
		log.Debug("websocket auth failed: invalid token", zap.Error(err))
		_ = conn.WriteJSON(fiber.Map{"type": "error", "error": "Invalid token"})
		return
	}
	_ = conn.SetReadDeadline(time.Time{})

	if err := conn.WriteJSON(fiber.Map{"type": "auth.ok"}); err != nil {
		return
	}

	client := NewClient(id.UserID, conn)
	h.Register(client)
	go client.WritePump(log)
	// The connection goes back to fiber's pool on return; the pump must be gone by then.
	defer func() {
		h.Unregister(client)
		client.stop()
		<-client.Done()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if fiberws.IsUnexpectedCloseError(err, fiberws.CloseGoingAway, fiberws.CloseNormalClosure) {
				log.Debug("websocket read error", zap.Stringer("user_id", id.UserID), zap.Error(err))
			}
			return
		}
	}
}
