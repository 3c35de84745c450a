package systems

import (
	"github.com/vinnie291/StarDraft/pkg/logger"

	"github.com/sirupsen/logrus"

	"github.com/vinnie291/StarDraft/internal/domain"
	"github.com/vinnie291/StarDraft/internal/stats"
)

// Strike наносит ровно один удар. Вызывающий обязан убедиться, что кулдаун
// готов и цель в радиусе: здесь только применение урона и его последствия.
// Возвращает true, если цель погибла (удаление из мира - забота движка).
func Strike(w *domain.World, attacker, target *domain.Entity, st stats.Table) bool {
	as := st.Of(attacker.Type)

	died := target.TakeDamage(as.Damage)
	target.RememberAttacker(attacker.ID, w.Tick)

	// Снаряд и звук выстрела - рендереру
	w.AddOverlay(attacker.Pos, domain.OverlayProjectile, domain.OverlayLife)
	w.AddCue(domain.CueAttackFire)

	logger.Log.WithFields(logrus.Fields{
		"component": "combat",
		"attacker":  attacker.ID.String(),
		"target":    target.ID.String(),
		"damage":    as.Damage,
		"hp_after":  target.HP,
	}).Debug("Strike resolved")

	// Цель огрызается: если может драться и не занята живой целью,
	// разворачиваем ее на обидчика
	if !died {
		retaliate(w, target, attacker, st)
	}

	return died
}

// retaliate переводит ужаленную сущность в ATTACKING на обидчика
func retaliate(w *domain.World, victim, attacker *domain.Entity, st stats.Table) {
	vs := st.Of(victim.Type)
	if vs.Damage <= 0 || !st.IsUnit(victim.Type) {
		return // Здания и мирные не огрызаются (бункер стреляет сам)
	}
	if victim.State == domain.StateGarrisoned || victim.UnderConstruction() {
		return
	}

	// Уже деремся с живой валидной целью - не дергаемся
	if victim.State == domain.StateAttacking && victim.Attack != nil {
		if cur := w.Get(victim.Attack.TargetID); cur != nil && cur.Alive() {
			return
		}
	}

	victim.ToIdle()
	victim.State = domain.StateAttacking
	victim.Attack = &domain.AttackOrder{TargetID: attacker.ID}
}
