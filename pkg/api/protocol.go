// Package api описывает провод между двумя пирами и комнатным сервером.
// Сервер - тонкое реле: он сводит двух игроков в комнату, раздает сид
// и дальше только пересылает конверты между ними. Симуляцию каждый пир
// крутит у себя.
package api

import (
	"encoding/json"
)

// Типы сообщений. По проводу ходят строковые теги, не числа.
const (
	MsgJoin        = "JOIN"         // Клиент -> сервер: создать или войти в комнату
	MsgWelcome     = "WELCOME"      // Сервер -> клиент: комната готова, вот сид
	MsgPeerJoined  = "PEER_JOINED"  // Сервер -> хост: второй игрок в комнате
	MsgPeerLeft    = "PEER_LEFT"    // Сервер -> пир: собеседник отвалился
	MsgReady       = "READY"        // Клиент -> сервер -> пир: готовность
	MsgStartGame   = "START_GAME"   // Сервер -> оба: стартуем с этим сидом
	MsgGameCommand = "GAME_COMMAND" // Пир -> пир (через реле): команда движку
	MsgError       = "ERROR"        // Сервер -> клиент: отказ
)

// Envelope - корневой объект каждого сообщения. Payload зависит от Type.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewEnvelope упаковывает payload в конверт
func NewEnvelope(msgType string, payload interface{}) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Type: msgType, Payload: raw}, nil
}

// --- КЛИЕНТ -> СЕРВЕР ---

// JoinPayload - первое сообщение соединения.
// Пустой Room означает "создай новую комнату и дай мне код".
type JoinPayload struct {
	Name string `json:"name"`
	Room string `json:"room,omitempty"`
}

// ReadyPayload - переключение готовности в лобби
type ReadyPayload struct {
	Ready bool `json:"ready"`
}

// --- СЕРВЕР -> КЛИЕНТ ---

// WelcomePayload отправляется сразу после успешного JOIN
type WelcomePayload struct {
	Room   string `json:"room"`   // Код комнаты (хост диктует его второму игроку)
	Seed   int64  `json:"seed"`   // Мастер-зерно будущего матча
	IsHost bool   `json:"isHost"` // Хост = OwnerPlayer у себя, OwnerRemote у гостя
	HostID string `json:"hostId"` // Сессионный ID хоста, общий для обоих пиров
}

// PeerPayload - уведомление о втором игроке
type PeerPayload struct {
	Name string `json:"name"`
}

// StartGamePayload - сигнал одновременного старта
type StartGamePayload struct {
	Seed          int64 `json:"seed"`
	NoRushSeconds int   `json:"noRushSeconds"`
}

// ErrorPayload - отказ сервера (комната не найдена, комната полна)
type ErrorPayload struct {
	Message string `json:"message"`
}
