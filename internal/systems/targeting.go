package systems

import (
	"github.com/vinnie291/StarDraft/internal/domain"
	"github.com/vinnie291/StarDraft/internal/stats"
)

// Веса скоринга целей. Возмездие перевешивает все, юниты важнее зданий,
// дистанция решает между равными.
const (
	scoreRetaliation = 5000.0
	scoreUnit        = 1000.0
	scoreStructure   = 100.0
)

// AcquireTarget возвращает лучшую враждебную цель в радиусе поиска или nil.
// Радиус поиска - максимум из зрения и дальности атаки с запасом.
// При равном счете побеждает первая найденная в порядке создания:
// этот тай-брейк обязан совпадать на обоих пирах.
func AcquireTarget(w *domain.World, attacker *domain.Entity, st stats.Table) *domain.Entity {
	as := st.Of(attacker.Type)
	if as.Damage <= 0 {
		return nil
	}

	// Грейс-период "без раша": враги вообще не считаются кандидатами
	if w.Tick < w.NoRushTicks {
		return nil
	}

	radius := as.Vision
	if r := as.Range + domain.SearchMargin; r > radius {
		radius = r
	}

	var best *domain.Entity
	bestScore := 0.0

	for _, id := range w.IDs() {
		cand := w.Get(id)
		if cand == nil || cand.ID == attacker.ID {
			continue
		}
		if !attacker.Owner.Hostile(cand.Owner) {
			continue
		}
		// Сидящие в бункере невидимы для таргетинга
		if cand.State == domain.StateGarrisoned {
			continue
		}

		dist := attacker.Pos.DistanceTo(cand.Pos)
		if dist > radius {
			continue
		}

		score := -dist
		if cand.Attack != nil && cand.Attack.TargetID == attacker.ID {
			score += scoreRetaliation
		}
		if st.IsUnit(cand.Type) {
			score += scoreUnit
		} else if st.IsBuilding(cand.Type) {
			score += scoreStructure
		} else {
			continue // Ресурсы и рельеф не цели
		}

		// Строго ">": при равенстве остается первый найденный
		if best == nil || score > bestScore {
			best = cand
			bestScore = score
		}
	}

	return best
}

// InAttackRange проверяет, достает ли атакующий до цели
// (радиус цели прибавляется к дальности)
func InAttackRange(attacker, target *domain.Entity, st stats.Table) bool {
	as := st.Of(attacker.Type)
	return attacker.Pos.DistanceTo(target.Pos) <= as.Range+target.Radius
}
