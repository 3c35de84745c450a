package domain

import "strings"

// ActionType - внутренний числовой идентификатор команды
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionMove
	ActionAttack
	ActionAttackMove
	ActionGather
	ActionTrain
	ActionBuild
	ActionSetRally
	ActionEnter
	ActionUnloadAll
	ActionStop
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"MOVE":        ActionMove,
	"ATTACK":      ActionAttack,
	"ATTACK_MOVE": ActionAttackMove,
	"GATHER":      ActionGather,
	"TRAIN":       ActionTrain,
	"BUILD":       ActionBuild,
	"SET_RALLY":   ActionSetRally,
	"ENTER":       ActionEnter,
	"UNLOAD_ALL":  ActionUnloadAll,
	"STOP":        ActionStop,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionMove:       "MOVE",
	ActionAttack:     "ATTACK",
	ActionAttackMove: "ATTACK_MOVE",
	ActionGather:     "GATHER",
	ActionTrain:      "TRAIN",
	ActionBuild:      "BUILD",
	ActionSetRally:   "SET_RALLY",
	ActionEnter:      "ENTER",
	ActionUnloadAll:  "UNLOAD_ALL",
	ActionStop:       "STOP",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// MarshalJSON отдает команду строкой (по проводу ходят теги, не числа)
func (a ActionType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON парсит строковый тег
func (a *ActionType) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	*a = ParseAction(s)
	return nil
}

// Command - единая дискретная команда для движка.
// И ввод игрока, и AI, и удаленный пир ходят через одну очередь,
// которая опустошается строго на границе тика.
type Command struct {
	Action   ActionType `json:"action"`
	Owner    Owner      `json:"owner"` // Получатель переписывает на свой маппинг фракций
	UnitIDs  []EntityID `json:"unitIds,omitempty"`
	TargetID EntityID   `json:"targetId,omitempty"`
	Pos      Position   `json:"pos,omitempty"`
	UnitType string     `json:"unitType,omitempty"` // Для TRAIN
}

// Mirrored переводит команду в систему координат принимающего пира:
// владелец и все ссылки на сущности переписываются по зеркалу фракций
// PLAYER <-> REMOTE. Без перезаписи ID команда собеседника указывала бы
// на собственные сущности получателя и молча отбрасывалась.
func (c Command) Mirrored() Command {
	out := c
	out.Owner = c.Owner.Mirrored()
	out.TargetID = c.TargetID.Mirrored()
	if len(c.UnitIDs) > 0 {
		out.UnitIDs = make([]EntityID, len(c.UnitIDs))
		for i, id := range c.UnitIDs {
			out.UnitIDs[i] = id.Mirrored()
		}
	}
	return out
}
