package domain

// --- ПРИКАЗЫ (данные текущего состояния) ---
// Вместо одной "жирной" записи со всеми полями сразу каждая фаза автомата
// несет только свои данные. Если указатель nil - сущность не в этой фазе.

// MoveOrder - куда идем
type MoveOrder struct {
	Target Position `json:"target"`
	// Aggressive: attack-move. По пути автоматически цепляем врагов.
	Aggressive bool `json:"aggressive,omitempty"`
}

// AttackOrder - кого бьем
type AttackOrder struct {
	TargetID EntityID `json:"targetId"`
}

// GatherOrder - какой узел копаем
type GatherOrder struct {
	NodeID EntityID `json:"nodeId"`
	Dwell  int      `json:"dwell"` // Накопленные тики у узла
}

// ReturnOrder - на какую базу несем добычу
type ReturnOrder struct {
	BaseID EntityID `json:"baseId"`
}

// EnterOrder - в какой бункер грузимся
type EnterOrder struct {
	BunkerID EntityID `json:"bunkerId"`
}

// HealOrder - кого лечим (медики)
type HealOrder struct {
	TargetID EntityID `json:"targetId"`
}

// RallyPoint - приказ по умолчанию для юнитов, выходящих из производства
type RallyPoint struct {
	Pos      Position `json:"pos"`
	TargetID EntityID `json:"targetId,omitempty"`
}

// --- СУЩНОСТЬ ---

type Entity struct {
	// Идентификация
	ID    EntityID `json:"id"`
	Type  string   `json:"type"`
	Owner Owner    `json:"owner"`

	Pos    Position `json:"pos"`
	Radius float64  `json:"radius"`

	HP    int `json:"hp"`
	MaxHP int `json:"maxHp"`

	State    State `json:"state"`
	Cooldown int   `json:"cooldown"` // Тиков до следующего выстрела/лечения

	// Данные активного приказа (ровно один не-nil для подвижных состояний)
	Move   *MoveOrder   `json:"move,omitempty"`
	Attack *AttackOrder `json:"attack,omitempty"`
	Gather *GatherOrder `json:"gather,omitempty"`
	Return *ReturnOrder `json:"return,omitempty"`
	Enter  *EnterOrder  `json:"enter,omitempty"`
	Heal   *HealOrder   `json:"heal,omitempty"`

	// Экономика
	Carry int `json:"carry,omitempty"` // Минералы на руках у рабочего
	Stock int `json:"stock,omitempty"` // Остаток узла ресурсов

	// Производство
	Progress      float64     `json:"progress,omitempty"` // Стройка, 0..100
	Queue         []string    `json:"queue,omitempty"`    // Очередь тренировки (типы юнитов)
	TrainProgress int         `json:"trainProgress,omitempty"`
	Rally         *RallyPoint `json:"rally,omitempty"`

	// Память о возмездии
	LastAttacker EntityID `json:"-"`
	LastHitTick  int      `json:"-"`

	// Гарнизон (только бункеры)
	Garrison    []EntityID `json:"garrison,omitempty"`
	ContainerID EntityID   `json:"containerId,omitempty"` // Где сидим, если GARRISONED
}

// ToIdle сбрасывает сущность в IDLE и зачищает данные всех приказов.
// Единственная точка деградации при потерянных целях (LookupMiss).
func (e *Entity) ToIdle() {
	e.State = StateIdle
	e.Move = nil
	e.Attack = nil
	e.Gather = nil
	e.Return = nil
	e.Enter = nil
	e.Heal = nil
}

// Alive возвращает true, пока у сущности есть HP
func (e *Entity) Alive() bool {
	return e.HP > 0
}

// TakeDamage наносит урон. Возвращает true, если цель погибла.
func (e *Entity) TakeDamage(amount int) bool {
	if amount < 0 {
		amount = 0
	}
	e.HP -= amount
	if e.HP <= 0 {
		e.HP = 0
		return true
	}
	return false
}

// HealUp лечит сущность, не превышая максимум
func (e *Entity) HealUp(amount int) {
	if e.HP <= 0 {
		return // Трупы не лечим
	}
	e.HP += amount
	if e.HP > e.MaxHP {
		e.HP = e.MaxHP
	}
}

// RememberAttacker записывает обидчика для приоритета возмездия
func (e *Entity) RememberAttacker(id EntityID, tick int) {
	e.LastAttacker = id
	e.LastHitTick = tick
}

// RecentAttacker возвращает ID последнего обидчика, если память еще свежа
func (e *Entity) RecentAttacker(tick int) EntityID {
	if e.LastAttacker != NoEntity && tick-e.LastHitTick <= RetaliationMemory {
		return e.LastAttacker
	}
	return NoEntity
}

// UnderConstruction: здание еще строится и не работает
func (e *Entity) UnderConstruction() bool {
	return e.State == StateBuilding
}
