package engine

import (
	"github.com/vinnie291/StarDraft/pkg/logger"

	"github.com/vinnie291/StarDraft/internal/domain"
	"github.com/vinnie291/StarDraft/internal/stats"
)

// applyFunc - обработчик одной команды. Реестр вместо switch:
// новая команда = новая запись, движок не трогаем.
type applyFunc func(*Match, domain.Command)

func (m *Match) registerHandlers() {
	m.apply = map[domain.ActionType]applyFunc{
		domain.ActionMove:       applyMove,
		domain.ActionAttackMove: applyAttackMove,
		domain.ActionAttack:     applyAttack,
		domain.ActionGather:     applyGather,
		domain.ActionTrain:      applyTrain,
		domain.ActionBuild:      applyBuild,
		domain.ActionSetRally:   applySetRally,
		domain.ActionEnter:      applyEnter,
		domain.ActionUnloadAll:  applyUnloadAll,
		domain.ActionStop:       applyStop,
	}
}

// applyCommand выполняет одну команду. Невалидные команды молча
// игнорируются: тик не падает никогда.
func (m *Match) applyCommand(cmd domain.Command) {
	handler, ok := m.apply[cmd.Action]
	if !ok {
		logger.Log.WithField("action", cmd.Action.String()).Warn("Unknown command dropped")
		return
	}
	handler(m, cmd)
}

// commandableUnit проверяет, что сущностью можно командовать:
// свой живой подвижный юнит, не в бункере и не на конвейере
func (m *Match) commandableUnit(id domain.EntityID, owner domain.Owner) *domain.Entity {
	e := m.World.Get(id)
	if e == nil || e.Owner != owner || !e.Alive() {
		return nil
	}
	if !m.Stats.IsUnit(e.Type) || e.State == domain.StateGarrisoned {
		return nil
	}
	return e
}

func applyMove(m *Match, cmd domain.Command) {
	for _, id := range cmd.UnitIDs {
		if e := m.commandableUnit(id, cmd.Owner); e != nil {
			e.ToIdle()
			e.State = domain.StateMoving
			e.Move = &domain.MoveOrder{Target: cmd.Pos}
		}
	}
}

func applyAttackMove(m *Match, cmd domain.Command) {
	for _, id := range cmd.UnitIDs {
		if e := m.commandableUnit(id, cmd.Owner); e != nil {
			e.ToIdle()
			e.State = domain.StateMoving
			e.Move = &domain.MoveOrder{Target: cmd.Pos, Aggressive: true}
		}
	}
}

func applyAttack(m *Match, cmd domain.Command) {
	target := m.World.Get(cmd.TargetID)
	if target == nil || !cmd.Owner.Hostile(target.Owner) {
		return // Цель пропала или не враг - команда теряет смысл
	}
	for _, id := range cmd.UnitIDs {
		e := m.commandableUnit(id, cmd.Owner)
		if e == nil || m.Stats.Of(e.Type).Damage <= 0 {
			continue
		}
		e.ToIdle()
		e.State = domain.StateAttacking
		e.Attack = &domain.AttackOrder{TargetID: target.ID}
	}
}

func applyGather(m *Match, cmd domain.Command) {
	node := m.World.Get(cmd.TargetID)
	if node == nil || m.Stats.Of(node.Type).Kind != stats.KindResource {
		return
	}
	for _, id := range cmd.UnitIDs {
		e := m.commandableUnit(id, cmd.Owner)
		if e == nil || e.Type != domain.TypeWorker {
			continue
		}
		e.ToIdle()
		e.State = domain.StateGathering
		e.Gather = &domain.GatherOrder{NodeID: node.ID}
	}
}

// trainMatrix: кто кого умеет тренировать
var trainMatrix = map[string][]string{
	domain.TypeBase:     {domain.TypeWorker},
	domain.TypeBarracks: {domain.TypeMarine, domain.TypeMedic},
}

const maxQueue = 5

func applyTrain(m *Match, cmd domain.Command) {
	b := m.World.Get(cmd.TargetID)
	if b == nil || b.Owner != cmd.Owner || b.UnderConstruction() {
		return
	}
	if !trainAllowed(b.Type, cmd.UnitType) || len(b.Queue) >= maxQueue {
		return
	}

	cost := m.Stats.Of(cmd.UnitType).Cost
	if m.World.Minerals[cmd.Owner] < cost {
		// ResourceInsufficient: молчаливый отказ + реплика игроку
		m.World.AddCue(domain.CueNotEnough)
		m.World.Notify("Not enough minerals", domain.OverlayLife*3)
		return
	}

	m.World.Minerals[cmd.Owner] -= cost
	b.Queue = append(b.Queue, cmd.UnitType)
}

func trainAllowed(producer, unit string) bool {
	for _, t := range trainMatrix[producer] {
		if t == unit {
			return true
		}
	}
	return false
}

func applyBuild(m *Match, cmd domain.Command) {
	if !m.Stats.IsBuilding(cmd.UnitType) {
		return
	}
	cost := m.Stats.Of(cmd.UnitType).Cost
	if m.World.Minerals[cmd.Owner] < cost {
		m.World.AddCue(domain.CueNotEnough)
		m.World.Notify("Not enough minerals", domain.OverlayLife*3)
		return
	}
	m.World.Minerals[cmd.Owner] -= cost
	m.spawnStructure(cmd.UnitType, cmd.Owner, cmd.Pos, false)
}

// applySetRally ставит ралли зданиям из UnitIDs. Pos - точка сбора,
// TargetID - опциональная сущность-цель (узел ресурсов, враг).
func applySetRally(m *Match, cmd domain.Command) {
	for _, id := range cmd.UnitIDs {
		b := m.World.Get(id)
		if b == nil || b.Owner != cmd.Owner || !m.Stats.IsBuilding(b.Type) {
			continue
		}
		b.Rally = &domain.RallyPoint{Pos: cmd.Pos, TargetID: cmd.TargetID}
	}
}

func applyEnter(m *Match, cmd domain.Command) {
	bunker := m.World.Get(cmd.TargetID)
	if bunker == nil || bunker.Owner != cmd.Owner ||
		bunker.Type != domain.TypeBunker || bunker.UnderConstruction() {
		return
	}
	for _, id := range cmd.UnitIDs {
		if e := m.commandableUnit(id, cmd.Owner); e != nil {
			e.ToIdle()
			e.State = domain.StateEntering
			e.Enter = &domain.EnterOrder{BunkerID: bunker.ID}
		}
	}
}

func applyUnloadAll(m *Match, cmd domain.Command) {
	b := m.World.Get(cmd.TargetID)
	if b == nil || b.Owner != cmd.Owner || b.Type != domain.TypeBunker {
		return
	}
	m.ejectGarrison(b)
}

func applyStop(m *Match, cmd domain.Command) {
	for _, id := range cmd.UnitIDs {
		if e := m.commandableUnit(id, cmd.Owner); e != nil {
			e.ToIdle()
		}
	}
}

// ejectGarrison высаживает всех пассажиров бункера в IDLE
// на разбросанные позиции рядом
func (m *Match) ejectGarrison(b *domain.Entity) {
	for _, gid := range b.Garrison {
		u := m.World.Get(gid)
		if u == nil {
			continue
		}
		u.ToIdle()
		u.ContainerID = domain.NoEntity
		u.Pos = b.Pos.Shift(
			m.Ctx.Scatter(b.Radius+domain.EjectScatter),
			m.Ctx.Scatter(b.Radius+domain.EjectScatter),
		)
	}
	b.Garrison = nil
}
