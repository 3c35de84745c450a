package engine

import (
	"github.com/vinnie291/StarDraft/internal/domain"
	"github.com/vinnie291/StarDraft/internal/stats"
	"github.com/vinnie291/StarDraft/internal/systems"
)

// updateGathering - цикл шахтера у узла: подойти вплотную, отстоять
// дискретную паузу, забрать квант и понести домой. Исчезнувший узел
// не ломает цикл - рабочий сам переназначается на ближайший живой.
func (m *Match) updateGathering(e *domain.Entity, st stats.Stats) {
	ord := e.Gather
	if ord == nil {
		e.ToIdle()
		return
	}

	node := m.World.Get(ord.NodeID)
	if node == nil || node.Stock <= 0 {
		node = m.nearestNode(e)
		if node == nil {
			e.ToIdle() // Минералы на карте кончились
			return
		}
		ord.NodeID = node.ID
		ord.Dwell = 0
	}

	contact := e.Pos.DistanceTo(node.Pos) <= e.Radius+node.Radius+domain.ContactRange
	if !contact {
		systems.StepToward(e, node.Pos, st.Speed)
		ord.Dwell = 0
		return
	}

	ord.Dwell++
	if ord.Dwell < domain.GatherDwell {
		return
	}
	ord.Dwell = 0

	take := domain.GatherQuantum
	if node.Stock < take {
		take = node.Stock
	}
	node.Stock -= take
	e.Carry += take

	// Узел умирает в тот же тик, когда опустел
	if node.Stock <= 0 {
		m.World.Remove(node.ID)
	}

	base := m.nearestBase(e)
	if base == nil {
		e.ToIdle() // Добыча остается на руках до следующего приказа
		return
	}
	e.ToIdle()
	e.State = domain.StateReturning
	e.Return = &domain.ReturnOrder{BaseID: base.ID}
}

// updateReturning несет добычу на базу. Сдача атомарная: весь груз
// зачисляется одним переводом при физическом контакте.
func (m *Match) updateReturning(e *domain.Entity, st stats.Stats) {
	ord := e.Return
	if ord == nil {
		e.ToIdle()
		return
	}

	base := m.World.Get(ord.BaseID)
	if base == nil || base.UnderConstruction() {
		base = m.nearestBase(e)
		if base == nil {
			e.ToIdle()
			return
		}
		ord.BaseID = base.ID
	}

	contact := e.Pos.DistanceTo(base.Pos) <= e.Radius+base.Radius+domain.DepositRange
	if !contact {
		systems.StepToward(e, base.Pos, st.Speed)
		return
	}

	if e.Carry > 0 {
		m.World.Minerals[e.Owner] += e.Carry
		e.Carry = 0
		m.World.AddOverlay(base.Pos, domain.OverlayDepositPulse, domain.OverlayLife)
		if e.Owner == domain.OwnerPlayer {
			m.World.AddCue(domain.CueDeposit)
		}
	}

	node := m.nearestNode(e)
	if node == nil {
		e.ToIdle()
		return
	}
	e.ToIdle()
	e.State = domain.StateGathering
	e.Gather = &domain.GatherOrder{NodeID: node.ID}
}

// nearestNode ищет ближайший непустой узел. Насыщение - мягкий лимит:
// предпочитаем узлы с незанятыми слотами, но если все забиты,
// соглашаемся на любой живой.
func (m *Match) nearestNode(e *domain.Entity) *domain.Entity {
	if free := m.nearestNodeWhere(e, true); free != nil {
		return free
	}
	return m.nearestNodeWhere(e, false)
}

func (m *Match) nearestNodeWhere(e *domain.Entity, wantFree bool) *domain.Entity {
	var best *domain.Entity
	bestDist := 0.0
	for _, id := range m.World.IDs() {
		cand := m.World.Get(id)
		if cand == nil || cand.Stock <= 0 {
			continue
		}
		if m.Stats.Of(cand.Type).Kind != stats.KindResource {
			continue
		}
		if wantFree && m.World.HarvesterCount(cand.ID) >= domain.NodeSaturation {
			continue
		}
		dist := e.Pos.DistanceTo(cand.Pos)
		if best == nil || dist < bestDist {
			best = cand
			bestDist = dist
		}
	}
	return best
}

// nearestBase находит ближайшую достроенную базу своей фракции
func (m *Match) nearestBase(e *domain.Entity) *domain.Entity {
	var best *domain.Entity
	bestDist := 0.0
	for _, id := range m.World.IDs() {
		cand := m.World.Get(id)
		if cand == nil || cand.Owner != e.Owner || cand.Type != domain.TypeBase {
			continue
		}
		if cand.UnderConstruction() {
			continue
		}
		dist := e.Pos.DistanceTo(cand.Pos)
		if best == nil || dist < bestDist {
			best = cand
			bestDist = dist
		}
	}
	return best
}
