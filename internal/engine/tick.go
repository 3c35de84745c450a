package engine

import (
	"github.com/vinnie291/StarDraft/pkg/logger"

	"github.com/sirupsen/logrus"

	"github.com/vinnie291/StarDraft/internal/domain"
	"github.com/vinnie291/StarDraft/internal/stats"
	"github.com/vinnie291/StarDraft/internal/systems"
)

// advanceTick продвигает мир ровно на один дискретный шаг.
// Порядок фаз ФИКСИРОВАН, обход арены - в порядке создания: сущность,
// обработанная позже, видит уже примененные эффекты (в т.ч. смерти)
// обработанных раньше В ЭТОМ ЖЕ тике. От этого зависит сходимость
// двух независимых симуляций в мультиплеере.
func (m *Match) advanceTick() {
	w := m.World

	// Фаза 1: supply пересчитывается с нуля, никаких инкрементов
	m.recomputeSupply()

	// Фаза 2: конечные автоматы сущностей
	for _, id := range w.IDs() {
		e := w.Get(id)
		if e == nil {
			continue // Убит кем-то раньше в этом же тике
		}
		st := m.Stats.Of(e.Type)
		if st.Kind == stats.KindTerrain || e.State == domain.StateGarrisoned {
			continue
		}

		if e.Cooldown > 0 {
			e.Cooldown--
		}

		// Недострой только растет и больше ничего не делает
		if e.UnderConstruction() {
			m.updateConstruction(e, st)
			continue
		}

		if len(e.Queue) > 0 {
			m.updateTraining(e)
		}

		// Бункер с гарнизоном - одна турель
		if e.Type == domain.TypeBunker && len(e.Garrison) > 0 {
			m.updateBunkerTurret(e, st)
		}

		switch e.State {
		case domain.StateIdle:
			m.updateIdle(e, st)
		case domain.StateMoving:
			m.updateMoving(e, st)
		case domain.StateAttacking:
			m.updateAttacking(e, st)
		case domain.StateGathering:
			m.updateGathering(e, st)
		case domain.StateReturning:
			m.updateReturning(e, st)
		case domain.StateEntering:
			m.updateEntering(e, st)
		case domain.StateHealing:
			m.updateHealing(e, st)
		}

		// Мягкие коллизии после поведения
		systems.Separate(w, e, m.Stats)
	}

	// Фаза 3: гашение эфемерных меток
	w.DecayOverlays()

	// Фаза 4: AI-контроллер по расписанию
	if w.Tick%domain.AICadence == 0 && w.Winner == domain.OwnerNeutral {
		for _, owner := range m.Cfg.AIOwners {
			for _, cmd := range systems.Plan(w, owner, m.Stats) {
				m.applyCommand(cmd)
			}
		}
	}

	// Фаза 5: победа
	m.checkVictory()

	// Фаза 6
	w.Tick++
}

// --- СОСТОЯНИЯ ---

func (m *Match) updateIdle(e *domain.Entity, st stats.Stats) {
	// Медики сами ищут раненых
	if e.Type == domain.TypeMedic {
		if wounded := m.nearestWounded(e, st); wounded != nil {
			e.ToIdle()
			e.State = domain.StateHealing
			e.Heal = &domain.HealOrder{TargetID: wounded.ID}
		}
		return
	}

	// Боеспособные юниты сами цепляют цели
	if st.Damage > 0 && m.Stats.IsUnit(e.Type) {
		if t := systems.AcquireTarget(m.World, e, m.Stats); t != nil {
			e.ToIdle()
			e.State = domain.StateAttacking
			e.Attack = &domain.AttackOrder{TargetID: t.ID}
		}
	}
}

func (m *Match) updateMoving(e *domain.Entity, st stats.Stats) {
	ord := e.Move
	if ord == nil {
		e.ToIdle()
		return
	}

	// Attack-move: по пути цепляем врагов
	if ord.Aggressive && st.Damage > 0 {
		if t := systems.AcquireTarget(m.World, e, m.Stats); t != nil {
			e.ToIdle()
			e.State = domain.StateAttacking
			e.Attack = &domain.AttackOrder{TargetID: t.ID}
			return
		}
	}

	if systems.StepToward(e, ord.Target, st.Speed) {
		e.ToIdle()
	}
}

func (m *Match) updateAttacking(e *domain.Entity, st stats.Stats) {
	ord := e.Attack
	if ord == nil {
		e.ToIdle()
		return
	}

	target := m.World.Get(ord.TargetID)
	valid := target != nil && target.Alive() && target.State != domain.StateGarrisoned

	// Возмездие: свежий обидчик важнее, если текущей живой цели нет
	if !valid {
		if ra := e.RecentAttacker(m.World.Tick); ra != domain.NoEntity {
			if att := m.World.Get(ra); att != nil && att.Alive() &&
				e.Owner.Hostile(att.Owner) && att.State != domain.StateGarrisoned {
				ord.TargetID = ra
				target = att
				valid = true
			}
		}
	}

	// Цель испарилась (умерла, села в бункер) - ищем новую
	if !valid {
		if t := systems.AcquireTarget(m.World, e, m.Stats); t != nil {
			ord.TargetID = t.ID
			target = t
		} else {
			e.ToIdle()
			return
		}
	}

	if !systems.InAttackRange(e, target, m.Stats) {
		if st.Speed > 0 {
			systems.StepToward(e, target.Pos, st.Speed)
		} else {
			e.ToIdle() // Стационарные не догоняют
		}
		return
	}

	if e.Cooldown == 0 {
		died := systems.Strike(m.World, e, target, m.Stats)
		e.Cooldown = st.AttackSpeed
		if died {
			m.kill(target)
		}
	}
}

func (m *Match) updateEntering(e *domain.Entity, st stats.Stats) {
	ord := e.Enter
	if ord == nil {
		e.ToIdle()
		return
	}

	bunker := m.World.Get(ord.BunkerID)
	if bunker == nil || bunker.Type != domain.TypeBunker ||
		bunker.UnderConstruction() || !bunker.Alive() {
		e.ToIdle()
		return
	}

	contact := e.Pos.DistanceTo(bunker.Pos) <= e.Radius+bunker.Radius+domain.ContactRange
	if !contact {
		systems.StepToward(e, bunker.Pos, st.Speed)
		return
	}

	if len(bunker.Garrison) >= domain.GarrisonCap {
		e.ToIdle() // CapacityExceeded: бункер полон
		return
	}

	bunker.Garrison = append(bunker.Garrison, e.ID)
	e.ToIdle()
	e.State = domain.StateGarrisoned
	e.ContainerID = bunker.ID
}

func (m *Match) updateHealing(e *domain.Entity, st stats.Stats) {
	ord := e.Heal
	if ord == nil {
		e.ToIdle()
		return
	}

	t := m.World.Get(ord.TargetID)
	if t == nil || !t.Alive() || t.HP >= t.MaxHP || t.Owner != e.Owner ||
		t.State == domain.StateGarrisoned || !m.Stats.Of(t.Type).Biological {
		e.ToIdle() // Вылечен или потерян - на следующем тике найдем нового
		return
	}

	if e.Pos.DistanceTo(t.Pos) > st.Range+t.Radius {
		systems.StepToward(e, t.Pos, st.Speed)
		return
	}

	if e.Cooldown == 0 {
		t.HealUp(st.HealRate)
		e.Cooldown = st.AttackSpeed
		m.World.AddOverlay(t.Pos, domain.OverlayHealBeam, domain.OverlayLife/2)
	}
}

func (m *Match) updateBunkerTurret(e *domain.Entity, st stats.Stats) {
	if e.Attack != nil {
		t := m.World.Get(e.Attack.TargetID)
		if t == nil || !t.Alive() || t.State == domain.StateGarrisoned ||
			!systems.InAttackRange(e, t, m.Stats) {
			e.Attack = nil
		}
	}
	if e.Attack == nil {
		t := systems.AcquireTarget(m.World, e, m.Stats)
		if t == nil || !systems.InAttackRange(e, t, m.Stats) {
			return
		}
		e.Attack = &domain.AttackOrder{TargetID: t.ID}
	}

	if e.Cooldown > 0 {
		return
	}
	target := m.World.Get(e.Attack.TargetID)
	if target == nil {
		e.Attack = nil
		return
	}

	died := systems.Strike(m.World, e, target, m.Stats)
	// Скорострельность растет с гарнизоном
	cd := st.AttackSpeed / len(e.Garrison)
	if cd < 1 {
		cd = 1
	}
	e.Cooldown = cd
	if died {
		m.kill(target)
	}
}

// --- СМЕРТЬ ---

// kill удаляет сущность из мира в том же тике, когда HP упало до нуля.
// Пассажиры бункера высаживаются в IDLE на разбросанные позиции.
func (m *Match) kill(victim *domain.Entity) {
	w := m.World
	st := m.Stats.Of(victim.Type)

	kind, cue := domain.OverlayDeathGeneric, domain.CueDeathGeneric
	switch {
	case st.Biological:
		kind, cue = domain.OverlayDeathBio, domain.CueDeathBio
	case st.Kind == stats.KindBuilding:
		kind, cue = domain.OverlayDeathStructure, domain.CueDeathStructure
	}
	w.AddOverlay(victim.Pos, kind, domain.OverlayLife*2)
	w.AddCue(cue)

	if len(victim.Garrison) > 0 {
		m.ejectGarrison(victim)
	}

	// Зачистка контейнера, если умерший числился в гарнизоне
	if victim.ContainerID != domain.NoEntity {
		if c := w.Get(victim.ContainerID); c != nil {
			for i, gid := range c.Garrison {
				if gid == victim.ID {
					c.Garrison = append(c.Garrison[:i], c.Garrison[i+1:]...)
					break
				}
			}
		}
	}

	w.Remove(victim.ID)

	logger.Log.WithFields(logrus.Fields{
		"component": "engine",
		"entity":    victim.ID.String(),
		"type":      victim.Type,
		"tick":      w.Tick,
	}).Debug("Entity destroyed")
}

// --- УЧЕТ ---

// recomputeSupply пересчитывает население каждой фракции с нуля:
// Used - по живым юнитам (сидящие в бункере тоже считаются),
// Max - только по достроенным зданиям, с глобальным потолком.
func (m *Match) recomputeSupply() {
	w := m.World
	for _, s := range w.Supplies {
		s.Used, s.Max = 0, 0
	}
	for _, id := range w.IDs() {
		e := w.Get(id)
		if e == nil || e.Owner == domain.OwnerNeutral {
			continue
		}
		st := m.Stats.Of(e.Type)
		if st.SupplyCost > 0 {
			w.SupplyOf(e.Owner).Used += st.SupplyCost
		}
		if st.SupplyProvided > 0 && !e.UnderConstruction() {
			w.SupplyOf(e.Owner).Max += st.SupplyProvided
		}
	}
	for _, s := range w.Supplies {
		if s.Max > domain.SupplyCap {
			s.Max = domain.SupplyCap
		}
	}
}

// checkVictory ловит момент, когда у фракции кончились здания:
// победа присуждается противнику ровно один раз и навсегда.
func (m *Match) checkVictory() {
	w := m.World

	counts := make(map[domain.Owner]int)
	for _, id := range w.IDs() {
		e := w.Get(id)
		if e == nil || e.Owner == domain.OwnerNeutral {
			continue
		}
		if m.Stats.IsBuilding(e.Type) {
			counts[e.Owner]++
		}
	}

	// Фракции проверяются в фиксированном порядке (фракция хоста первой),
	// а не в порядке обхода map: при одновременном сносе последних зданий
	// обеих сторон исход обязан быть зеркальным на обоих пирах
	order := []domain.Owner{domain.OwnerPlayer, domain.OwnerEnemy, domain.OwnerRemote}
	if m.Cfg.Multiplayer && !m.Cfg.Host {
		order = []domain.Owner{domain.OwnerRemote, domain.OwnerEnemy, domain.OwnerPlayer}
	}
	for _, owner := range order {
		prev := w.LastBuildings[owner]
		if prev > 0 && counts[owner] == 0 && w.Winner == domain.OwnerNeutral {
			w.Winner = m.opposing(owner)
			logger.Log.WithFields(logrus.Fields{
				"component": "engine",
				"winner":    w.Winner.String(),
				"tick":      w.Tick,
			}).Info("Match decided")
		}
	}
	w.LastBuildings = counts
}

func (m *Match) opposing(owner domain.Owner) domain.Owner {
	if owner == domain.OwnerPlayer {
		return m.Cfg.Opponent()
	}
	return domain.OwnerPlayer
}

// nearestWounded ищет ближайшего раненого биологического союзника
// в радиусе зрения (тай-брейк - порядок создания)
func (m *Match) nearestWounded(e *domain.Entity, st stats.Stats) *domain.Entity {
	var best *domain.Entity
	bestDist := 0.0
	for _, id := range m.World.IDs() {
		cand := m.World.Get(id)
		if cand == nil || cand.ID == e.ID || cand.Owner != e.Owner {
			continue
		}
		cs := m.Stats.Of(cand.Type)
		if !cs.Biological || !m.Stats.IsUnit(cand.Type) {
			continue
		}
		if !cand.Alive() || cand.HP >= cand.MaxHP || cand.State == domain.StateGarrisoned {
			continue
		}
		dist := e.Pos.DistanceTo(cand.Pos)
		if dist > st.Vision {
			continue
		}
		if best == nil || dist < bestDist {
			best = cand
			bestDist = dist
		}
	}
	return best
}
