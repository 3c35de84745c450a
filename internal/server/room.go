package server

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/vinnie291/StarDraft/pkg/api"
	"github.com/vinnie291/StarDraft/pkg/logger"

	"github.com/sirupsen/logrus"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room is full")
)

// Алфавит кодов комнат: без 0/O/1/I, чтобы код диктовался голосом без ошибок
const roomAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
const roomCodeLen = 4

// Room - лобби на двух игроков. Сервер не знает правил игры:
// он раздает сид, ждет готовности обоих и дальше пересылает конверты.
type Room struct {
	Code string
	Seed int64

	Host  *Client
	Guest *Client

	hostReady  bool
	guestReady bool
	started    bool
}

// peer возвращает собеседника клиента в комнате
func (r *Room) peer(c *Client) *Client {
	if c == r.Host {
		return r.Guest
	}
	return r.Host
}

// Manager владеет всеми комнатами. Все операции - под одним мьютексом:
// комнат мало, операции короткие.
type Manager struct {
	mu    sync.Mutex
	rooms map[string]*Room
	rng   *rand.Rand

	// NoRushSeconds транслируется обоим пирам в START_GAME
	NoRushSeconds int
}

func NewManager(noRushSeconds int) *Manager {
	return &Manager{
		rooms:         make(map[string]*Room),
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		NoRushSeconds: noRushSeconds,
	}
}

// Create открывает новую комнату. Код генерируется до первого свободного.
func (m *Manager) Create(host *Client) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()

	code := m.newCode()
	for _, taken := m.rooms[code]; taken; _, taken = m.rooms[code] {
		code = m.newCode()
	}

	room := &Room{
		Code: code,
		Seed: m.rng.Int63(),
		Host: host,
	}
	m.rooms[code] = room

	logger.Log.WithFields(logrus.Fields{
		"component": "server",
		"room":      code,
		"host":      host.Name,
	}).Info("Room created")

	return room
}

// Join подселяет гостя в существующую комнату
func (m *Manager) Join(code string, guest *Client) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	if room.Guest != nil || room.started {
		return nil, ErrRoomFull
	}
	room.Guest = guest

	logger.Log.WithFields(logrus.Fields{
		"component": "server",
		"room":      code,
		"guest":     guest.Name,
	}).Info("Guest joined room")

	return room, nil
}

// SetReady переключает готовность. Когда готовы оба - комната стартует
// ровно один раз: обоим уходит START_GAME с одинаковым сидом.
func (m *Manager) SetReady(room *Room, c *Client, ready bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c == room.Host {
		room.hostReady = ready
	} else {
		room.guestReady = ready
	}

	// Собеседник видит изменение готовности
	if peer := room.peer(c); peer != nil {
		peer.send(api.MsgReady, api.ReadyPayload{Ready: ready})
	}

	if room.started || !room.hostReady || !room.guestReady || room.Guest == nil {
		return
	}
	room.started = true

	start := api.StartGamePayload{Seed: room.Seed, NoRushSeconds: m.NoRushSeconds}
	room.Host.send(api.MsgStartGame, start)
	room.Guest.send(api.MsgStartGame, start)

	logger.Log.WithFields(logrus.Fields{
		"component": "server",
		"room":      room.Code,
		"seed":      room.Seed,
	}).Info("Match started")
}

// Relay пересылает конверт собеседнику как есть
func (m *Manager) Relay(room *Room, from *Client, env api.Envelope) {
	m.mu.Lock()
	peer := room.peer(from)
	m.mu.Unlock()

	if peer != nil {
		peer.sendRaw(env)
	}
}

// Leave убирает клиента из комнаты. Оставшийся пир получает PEER_LEFT;
// пустая комната умирает.
func (m *Manager) Leave(room *Room, c *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	peer := room.peer(c)

	switch c {
	case room.Host:
		room.Host = nil
		room.hostReady = false
	case room.Guest:
		room.Guest = nil
		room.guestReady = false
	}

	if peer != nil {
		peer.send(api.MsgPeerLeft, api.PeerPayload{Name: c.Name})
	}

	if room.Host == nil && room.Guest == nil {
		delete(m.rooms, room.Code)
		logger.Log.WithField("room", room.Code).Info("Room closed")
	}
}

// Snapshot отдает сводку комнат для debug-эндпоинта
func (m *Manager) Snapshot() []RoomSummary {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]RoomSummary, 0, len(m.rooms))
	for _, r := range m.rooms {
		s := RoomSummary{Code: r.Code, Started: r.started}
		if r.Host != nil {
			s.Host = r.Host.Name
		}
		if r.Guest != nil {
			s.Guest = r.Guest.Name
		}
		out = append(out, s)
	}
	return out
}

// RoomSummary - вид комнаты для отладки
type RoomSummary struct {
	Code    string `json:"code"`
	Host    string `json:"host,omitempty"`
	Guest   string `json:"guest,omitempty"`
	Started bool   `json:"started"`
}

func (m *Manager) newCode() string {
	b := make([]byte, roomCodeLen)
	for i := range b {
		b[i] = roomAlphabet[m.rng.Intn(len(roomAlphabet))]
	}
	return string(b)
}
