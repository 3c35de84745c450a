package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vinnie291/StarDraft/pkg/api"
	"github.com/vinnie291/StarDraft/pkg/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между WebSocket и менеджером комнат
type Client struct {
	ID   string
	Name string

	Mgr  *Manager
	Conn *websocket.Conn
	Send chan api.Envelope

	room *Room
}

func NewClient(mgr *Manager, conn *websocket.Conn) *Client {
	return &Client{
		ID:   uuid.NewString(),
		Mgr:  mgr,
		Conn: conn,
		Send: make(chan api.Envelope, 256),
	}
}

// send упаковывает payload и кладет конверт в очередь отправки
func (c *Client) send(msgType string, payload interface{}) {
	env, err := api.NewEnvelope(msgType, payload)
	if err != nil {
		logger.Log.WithError(err).Warn("failed to build envelope")
		return
	}
	c.sendRaw(env)
}

// sendRaw кладет готовый конверт. Забитая очередь роняет клиента:
// медленный пир хуже отключенного.
func (c *Client) sendRaw(env api.Envelope) {
	select {
	case c.Send <- env:
	default:
		logger.Log.WithField("client", c.Name).Warn("Send queue overflow, dropping client")
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("close after overflow failed")
		}
	}
}

func (c *Client) fail(msg string) {
	c.send(api.MsgError, api.ErrorPayload{Message: msg})
}

// readPump читает конверты от клиента
func (c *Client) readPump() {
	defer func() {
		if c.room != nil {
			c.Mgr.Leave(c.room, c)
		}
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection")
		}
		close(c.Send)
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// 1. HANDSHAKE: первое сообщение обязано быть JOIN
	var env api.Envelope
	if err := c.Conn.ReadJSON(&env); err != nil || env.Type != api.MsgJoin {
		logger.Log.Warn("Handshake failed")
		return
	}

	var join api.JoinPayload
	if err := json.Unmarshal(env.Payload, &join); err != nil {
		c.fail("malformed JOIN payload")
		return
	}
	if err := join.Validate(); err != nil {
		c.fail(err.Error())
		return
	}
	c.Name = join.Name

	// 2. КОМНАТА: пустой код = создать, иначе войти
	if join.Room == "" {
		c.room = c.Mgr.Create(c)
		c.send(api.MsgWelcome, api.WelcomePayload{
			Room:   c.room.Code,
			Seed:   c.room.Seed,
			IsHost: true,
			HostID: c.ID,
		})
	} else {
		room, err := c.Mgr.Join(join.Room, c)
		if err != nil {
			c.fail(err.Error())
			return
		}
		c.room = room
		welcome := api.WelcomePayload{
			Room: room.Code,
			Seed: room.Seed,
		}
		if room.Host != nil {
			welcome.HostID = room.Host.ID
		}
		c.send(api.MsgWelcome, welcome)
		if room.Host != nil {
			room.Host.send(api.MsgPeerJoined, api.PeerPayload{Name: c.Name})
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "server",
		"client":    c.ID,
		"name":      c.Name,
		"room":      c.room.Code,
	}).Info("Client joined")

	// 3. ЦИКЛ ЧТЕНИЯ
	for {
		var env api.Envelope
		if err := c.Conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.WithError(err).Error("WS read error")
			}
			return
		}

		switch env.Type {
		case api.MsgReady:
			var ready api.ReadyPayload
			if err := json.Unmarshal(env.Payload, &ready); err != nil {
				c.fail("malformed READY payload")
				continue
			}
			c.Mgr.SetReady(c.room, c, ready.Ready)

		case api.MsgGameCommand:
			// Реле не заглядывает внутрь команды
			c.Mgr.Relay(c.room, c, env)

		default:
			logger.Log.WithField("type", env.Type).Warn("Unknown message dropped")
		}
	}
}

// writePump отправляет конверты клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case env, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(env); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
