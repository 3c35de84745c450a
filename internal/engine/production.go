package engine

import (
	"github.com/vinnie291/StarDraft/pkg/mapgen"

	"github.com/vinnie291/StarDraft/internal/domain"
	"github.com/vinnie291/StarDraft/internal/stats"
)

// spawnBlueprint инстанцирует заготовку из генератора карты.
// Стартовые здания появляются сразу достроенными.
func (m *Match) spawnBlueprint(bp mapgen.Blueprint) {
	if m.Stats.IsBuilding(bp.Type) {
		m.spawnStructure(bp.Type, bp.Owner, bp.Pos, true)
		return
	}
	e := m.spawnUnit(bp.Type, bp.Owner, bp.Pos)
	e.Stock = bp.Stock
}

// spawnUnit создает сущность в IDLE с полным здоровьем
func (m *Match) spawnUnit(typ string, owner domain.Owner, pos domain.Position) *domain.Entity {
	st := m.Stats.Of(typ)
	e := &domain.Entity{
		ID:     m.Ctx.NewID(owner),
		Type:   typ,
		Owner:  owner,
		Pos:    pos,
		Radius: st.Radius,
		HP:     st.HP,
		MaxHP:  st.HP,
		State:  domain.StateIdle,
	}
	m.World.Add(e)
	return e
}

// spawnStructure ставит здание. Недострой стоит в BUILDING и сам
// дозревает до готовности, ничего другого не делая.
func (m *Match) spawnStructure(typ string, owner domain.Owner, pos domain.Position, complete bool) *domain.Entity {
	st := m.Stats.Of(typ)
	e := &domain.Entity{
		ID:     m.Ctx.NewID(owner),
		Type:   typ,
		Owner:  owner,
		Pos:    pos,
		Radius: st.Radius,
		HP:     st.HP,
		MaxHP:  st.HP,
		State:  domain.StateIdle,
	}
	if !complete {
		e.State = domain.StateBuilding
		e.Progress = 0
	} else {
		e.Progress = 100
	}
	m.World.Add(e)
	return e
}

// updateConstruction дозревает недострой. Прогресс идет сам,
// рабочие у стройки не дежурят.
func (m *Match) updateConstruction(e *domain.Entity, st stats.Stats) {
	bt := st.BuildTime
	if bt <= 0 {
		bt = 1
	}
	e.Progress += 100.0 / float64(bt)
	if e.Progress >= 100 {
		e.Progress = 100
		e.State = domain.StateIdle
	}
}

// updateTraining крутит конвейер здания. Supply проверяется на ПОСЛЕДНЕМ
// тике: при нехватке прогресс замораживается на BuildTime-1 и юнит выйдет
// в тот же миг, когда место появится.
func (m *Match) updateTraining(e *domain.Entity) {
	unit := e.Queue[0]
	st := m.Stats.Of(unit)

	if e.TrainProgress < st.BuildTime {
		e.TrainProgress++
	}
	if e.TrainProgress < st.BuildTime {
		return
	}

	s := m.World.SupplyOf(e.Owner)
	if s.Used+st.SupplyCost > s.Max {
		e.TrainProgress = st.BuildTime - 1
		m.World.AddCue(domain.CueSupplyBlocked)
		if e.Owner == domain.OwnerPlayer {
			m.World.Notify("Additional supply required", domain.OverlayLife*3)
		}
		return
	}

	recruit := m.spawnUnit(unit, e.Owner, e.Pos.Shift(
		e.Radius+st.Radius+m.Ctx.Scatter(0.5),
		m.Ctx.Scatter(e.Radius),
	))

	e.Queue = e.Queue[1:]
	e.TrainProgress = 0
	m.World.AddCue(domain.CueUnitReady)

	m.routeRecruit(recruit, e, st)
}

// routeRecruit отправляет свежий юнит по ралли здания.
// Узел ресурсов в ралли превращает рабочего в шахтера; вражеская
// цель - сразу в бой; боевые юниты без ралли идут attack-move
// на базу противника.
func (m *Match) routeRecruit(u *domain.Entity, producer *domain.Entity, st stats.Stats) {
	rally := producer.Rally

	if rally != nil && rally.TargetID != domain.NoEntity {
		if t := m.World.Get(rally.TargetID); t != nil {
			switch {
			case u.Type == domain.TypeWorker && m.Stats.Of(t.Type).Kind == stats.KindResource:
				u.State = domain.StateGathering
				u.Gather = &domain.GatherOrder{NodeID: t.ID}
				return
			case u.Owner.Hostile(t.Owner) && st.Damage > 0:
				u.State = domain.StateAttacking
				u.Attack = &domain.AttackOrder{TargetID: t.ID}
				return
			}
		}
		// Цель ралли испарилась - падаем на точку
	}

	if rally != nil {
		u.State = domain.StateMoving
		u.Move = &domain.MoveOrder{Target: rally.Pos, Aggressive: st.Offensive}
		return
	}

	if st.Offensive {
		if base := m.opposingBaseOf(u.Owner); base != nil {
			u.State = domain.StateMoving
			u.Move = &domain.MoveOrder{Target: base.Pos, Aggressive: true}
		}
	}
}

// opposingBaseOf находит первую (в порядке создания) базу противника
func (m *Match) opposingBaseOf(owner domain.Owner) *domain.Entity {
	for _, id := range m.World.IDs() {
		e := m.World.Get(id)
		if e != nil && e.Type == domain.TypeBase && e.Owner != owner &&
			owner.Hostile(e.Owner) {
			return e
		}
	}
	return nil
}
