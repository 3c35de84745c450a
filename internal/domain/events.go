package domain

// OverlayKind - категория эфемерной визуальной метки.
// Движок сам ничего не рисует: рендерер забирает метки и сам их гасит.
type OverlayKind string

const (
	OverlayProjectile     OverlayKind = "projectile"
	OverlayDeathBio       OverlayKind = "death_bio"
	OverlayDeathStructure OverlayKind = "death_structure"
	OverlayDeathGeneric   OverlayKind = "death_generic"
	OverlayHealBeam       OverlayKind = "heal_beam"
	OverlayDepositPulse   OverlayKind = "deposit"
)

// Overlay - таймированная визуальная метка для рендерера
type Overlay struct {
	Pos  Position    `json:"pos"`
	Kind OverlayKind `json:"kind"`
	Life int         `json:"life"` // Остаток жизни в тиках; на нуле метка выкидывается
}

// Идентификаторы аудио-реплик. Список очищается каждый кадр.
const (
	CueAttackFire     = "attack_fire"
	CueDeathBio       = "death_bio"
	CueDeathStructure = "death_structure"
	CueDeathGeneric   = "death_generic"
	CueDeposit        = "deposit"
	CueNotEnough      = "not_enough_minerals"
	CueSupplyBlocked  = "supply_blocked"
	CueUnitReady      = "unit_ready"
)

// Notification - текстовое уведомление для панели игрока
type Notification struct {
	Text string `json:"text"`
	Life int    `json:"life"`
}
