package domain

import "strings"

// Owner - владелец сущности (фракция)
type Owner uint8

const (
	OwnerNeutral Owner = iota // Минералы, рельеф
	OwnerPlayer               // Локальный игрок
	OwnerEnemy                // AI-оппонент
	OwnerRemote               // Удаленный игрок (мультиплеер)
)

var ownerToString = map[Owner]string{
	OwnerNeutral: "NEUTRAL",
	OwnerPlayer:  "PLAYER",
	OwnerEnemy:   "ENEMY",
	OwnerRemote:  "REMOTE",
}

var stringToOwner = map[string]Owner{
	"NEUTRAL": OwnerNeutral,
	"PLAYER":  OwnerPlayer,
	"ENEMY":   OwnerEnemy,
	"REMOTE":  OwnerRemote,
}

func (o Owner) String() string {
	if s, ok := ownerToString[o]; ok {
		return s
	}
	return "UNKNOWN"
}

// ParseOwner конвертирует строку из JSON в Owner
func ParseOwner(s string) Owner {
	if o, ok := stringToOwner[s]; ok {
		return o
	}
	return OwnerNeutral
}

// MarshalJSON отдает владельца строковым тегом
func (o Owner) MarshalJSON() ([]byte, error) {
	return []byte(`"` + o.String() + `"`), nil
}

// UnmarshalJSON парсит строковый тег
func (o *Owner) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	*o = ParseOwner(s)
	return nil
}

// Mirrored переводит фракцию в систему координат другого пира:
// каждый пир локально играет за PLAYER, поэтому PLAYER и REMOTE
// меняются местами. Нейтралы и AI общие для обоих.
func (o Owner) Mirrored() Owner {
	switch o {
	case OwnerPlayer:
		return OwnerRemote
	case OwnerRemote:
		return OwnerPlayer
	}
	return o
}

// Hostile возвращает true, если две фракции враждебны друг другу.
// Нейтралы не воюют ни с кем.
func (o Owner) Hostile(other Owner) bool {
	if o == OwnerNeutral || other == OwnerNeutral {
		return false
	}
	return o != other
}

// Типы сущностей. Характеристики каждого типа лежат в таблице статов.
const (
	TypeWorker   = "WORKER"
	TypeMarine   = "MARINE"
	TypeMedic    = "MEDIC"
	TypeBase     = "BASE"
	TypeDepot    = "DEPOT"
	TypeBarracks = "BARRACKS"
	TypeBunker   = "BUNKER"
	TypeMineral  = "MINERAL"
	TypeCrag     = "CRAG"
)

// State - тег состояния конечного автомата сущности
type State uint8

const (
	StateIdle State = iota
	StateMoving
	StateAttacking
	StateGathering
	StateReturning
	StateEntering
	StateGarrisoned
	StateHealing
	StateBuilding // Здание в процессе строительства
)

var stateToString = map[State]string{
	StateIdle:       "IDLE",
	StateMoving:     "MOVING",
	StateAttacking:  "ATTACKING",
	StateGathering:  "GATHERING",
	StateReturning:  "RETURNING",
	StateEntering:   "ENTERING",
	StateGarrisoned: "GARRISONED",
	StateHealing:    "HEALING",
	StateBuilding:   "BUILDING",
}

func (s State) String() string {
	if v, ok := stateToString[s]; ok {
		return v
	}
	return "UNKNOWN"
}

// MarshalJSON отдает состояние строкой (клиенту удобнее тег, чем число)
func (s State) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Strategy - профиль поведения AI-оппонента. Фиксируется на весь матч.
type Strategy string

const (
	StrategyAggressive Strategy = "aggressive"
	StrategyBalanced   Strategy = "balanced"
	StrategyDefensive  Strategy = "defensive"
)
