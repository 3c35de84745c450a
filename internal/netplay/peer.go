// Package netplay - клиентская сторона мультиплеера.
// Оба пира крутят одну и ту же детерминированную симуляцию; по сети
// ходят только команды. Команды удаленного пира попадают в ту же
// очередь движка, что и локальный ввод, с переписанной фракцией.
package netplay

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vinnie291/StarDraft/internal/domain"
	"github.com/vinnie291/StarDraft/pkg/api"
	"github.com/vinnie291/StarDraft/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	dialTimeout    = 10 * time.Second
	welcomeTimeout = 10 * time.Second
	writeWait      = 10 * time.Second
)

// ErrPeerGone возвращается, когда собеседник покинул матч
var ErrPeerGone = errors.New("peer disconnected")

// Peer - живое соединение с комнатным сервером
type Peer struct {
	Room   string
	Seed   int64
	IsHost bool
	HostID string // Сессионный ID хоста комнаты (общий для обоих пиров)

	conn *websocket.Conn

	// commands - входящие команды удаленного пира. Буферизовано:
	// читатель забирает их на границе каждого тика.
	commands chan domain.Command
	start    chan api.StartGamePayload
	done     chan struct{}
}

// Host создает новую комнату и возвращает подключенный пир.
// Код комнаты хост диктует второму игроку сам.
func Host(url, name string) (*Peer, error) {
	return connect(url, api.JoinPayload{Name: name})
}

// Join входит в существующую комнату по коду
func Join(url, code, name string) (*Peer, error) {
	return connect(url, api.JoinPayload{Name: name, Room: code})
}

func connect(url string, join api.JoinPayload) (*Peer, error) {
	if err := join.Validate(); err != nil {
		return nil, err
	}

	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot reach matchmaking server at %s: %w", url, err)
	}

	env, err := api.NewEnvelope(api.MsgJoin, join)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := conn.WriteJSON(env); err != nil {
		conn.Close()
		return nil, fmt.Errorf("handshake write failed: %w", err)
	}

	// Сервер обязан ответить WELCOME или ERROR в пределах таймаута
	if err := conn.SetReadDeadline(time.Now().Add(welcomeTimeout)); err != nil {
		conn.Close()
		return nil, err
	}
	var reply api.Envelope
	if err := conn.ReadJSON(&reply); err != nil {
		conn.Close()
		return nil, fmt.Errorf("no reply from matchmaking server: %w", err)
	}

	switch reply.Type {
	case api.MsgError:
		var e api.ErrorPayload
		if err := json.Unmarshal(reply.Payload, &e); err != nil {
			conn.Close()
			return nil, fmt.Errorf("malformed server error: %w", err)
		}
		conn.Close()
		return nil, fmt.Errorf("server refused: %s", e.Message)

	case api.MsgWelcome:
		var w api.WelcomePayload
		if err := json.Unmarshal(reply.Payload, &w); err != nil {
			conn.Close()
			return nil, fmt.Errorf("malformed WELCOME: %w", err)
		}
		conn.SetReadDeadline(time.Time{})

		p := &Peer{
			Room:     w.Room,
			Seed:     w.Seed,
			IsHost:   w.IsHost,
			HostID:   w.HostID,
			conn:     conn,
			commands: make(chan domain.Command, 256),
			start:    make(chan api.StartGamePayload, 1),
			done:     make(chan struct{}),
		}
		go p.readLoop()
		return p, nil

	default:
		conn.Close()
		return nil, fmt.Errorf("unexpected reply %q from server", reply.Type)
	}
}

// Ready сообщает серверу о готовности к старту
func (p *Peer) Ready() error {
	return p.write(api.MsgReady, api.ReadyPayload{Ready: true})
}

// WaitStart блокируется до сигнала одновременного старта
func (p *Peer) WaitStart(timeout time.Duration) (api.StartGamePayload, error) {
	select {
	case sp := <-p.start:
		return sp, nil
	case <-p.done:
		return api.StartGamePayload{}, ErrPeerGone
	case <-time.After(timeout):
		return api.StartGamePayload{}, errors.New("timed out waiting for match start")
	}
}

// SendCommand отправляет локальную команду удаленному пиру
func (p *Peer) SendCommand(cmd domain.Command) error {
	return p.write(api.MsgGameCommand, cmd)
}

// Commands - входящие команды удаленного пира.
// Канал закрывается, когда пир или сервер пропадает.
func (p *Peer) Commands() <-chan domain.Command {
	return p.commands
}

// Done закрывается при потере соединения или уходе собеседника
func (p *Peer) Done() <-chan struct{} {
	return p.done
}

func (p *Peer) Close() error {
	return p.conn.Close()
}

func (p *Peer) write(msgType string, payload interface{}) error {
	env, err := api.NewEnvelope(msgType, payload)
	if err != nil {
		return err
	}
	if err := p.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return p.conn.WriteJSON(env)
}

// readLoop принимает конверты от сервера до разрыва соединения
func (p *Peer) readLoop() {
	defer func() {
		close(p.done)
		close(p.commands)
	}()

	for {
		var env api.Envelope
		if err := p.conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Log.WithError(err).Warn("Connection to server lost")
			}
			return
		}

		switch env.Type {
		case api.MsgStartGame:
			var sp api.StartGamePayload
			if err := json.Unmarshal(env.Payload, &sp); err != nil {
				logger.Log.WithError(err).Warn("Malformed START_GAME dropped")
				continue
			}
			select {
			case p.start <- sp:
			default:
			}

		case api.MsgGameCommand:
			var cmd domain.Command
			if err := json.Unmarshal(env.Payload, &cmd); err != nil {
				logger.Log.WithError(err).Warn("Malformed GAME_COMMAND dropped")
				continue
			}
			// Каждый пир локально считает себя PLAYER, поэтому команда
			// собеседника зеркалится целиком: фракция и все ID сущностей
			// переписываются PLAYER <-> REMOTE
			cmd = cmd.Mirrored()
			select {
			case p.commands <- cmd:
			default:
				logger.Log.Warn("Remote command buffer full, dropping command")
			}

		case api.MsgPeerJoined:
			logger.Log.WithFields(logrus.Fields{
				"component": "netplay",
				"room":      p.Room,
			}).Info("Opponent joined")

		case api.MsgPeerLeft:
			logger.Log.Info("Opponent left the match")
			return

		case api.MsgReady:
			// Готовность собеседника - чисто информационная

		default:
			logger.Log.WithField("type", env.Type).Warn("Unknown message dropped")
		}
	}
}
