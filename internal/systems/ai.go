package systems

import (
	"github.com/vinnie291/StarDraft/pkg/logger"

	"github.com/sirupsen/logrus"

	"github.com/vinnie291/StarDraft/internal/domain"
	"github.com/vinnie291/StarDraft/internal/stats"
)

// Profile - параметры стратегии AI-оппонента. Фиксируется на весь матч.
type Profile struct {
	WorkerTarget   int // Сколько рабочих держать
	AttackArmySize int // С какой армией идти в атаку
	BarracksQuota  int // Сколько бараков строить
	SupplyBuffer   int // При каком запасе населения заказывать депо
}

var profiles = map[domain.Strategy]Profile{
	domain.StrategyAggressive: {WorkerTarget: 10, AttackArmySize: 6, BarracksQuota: 2, SupplyBuffer: 2},
	domain.StrategyBalanced:   {WorkerTarget: 14, AttackArmySize: 10, BarracksQuota: 2, SupplyBuffer: 3},
	domain.StrategyDefensive:  {WorkerTarget: 16, AttackArmySize: 14, BarracksQuota: 1, SupplyBuffer: 4},
}

// ProfileFor возвращает профиль стратегии (неизвестная = balanced)
func ProfileFor(s domain.Strategy) Profile {
	if p, ok := profiles[s]; ok {
		return p
	}
	return profiles[domain.StrategyBalanced]
}

// Смещения закладки зданий относительно базы. Индексируются числом
// уже построенных зданий - раскладка детерминированная.
var buildOffsets = []domain.Position{
	{X: 7, Y: 0}, {X: 7, Y: 4}, {X: 0, Y: 7}, {X: 4, Y: 7},
	{X: -7, Y: 4}, {X: 7, Y: -4}, {X: -4, Y: 7}, {X: -7, Y: -4},
}

// Plan - один вызов AI-контроллера для фракции. Возвращает команды,
// которые пойдут через общую очередь: у AI нет спец-API, он мутирует
// мир ровно так же, как игрок. Недоступный шаг молча пропускается
// и будет повторен при следующем вызове.
func Plan(w *domain.World, owner domain.Owner, st stats.Table) []domain.Command {
	var cmds []domain.Command

	prof := ProfileFor(w.Strategy)
	budget := w.Minerals[owner]

	base := findBuilding(w, owner, domain.TypeBase, true)
	if base == nil {
		return nil // Базы нет - воскресать нечем
	}

	workers := countUnits(w, owner, domain.TypeWorker)
	army := armyUnits(w, owner)
	barracks := countBuildingsOf(w, owner, domain.TypeBarracks)
	buildings := countAllBuildings(w, owner)

	// 1. Рабочие
	if workers < prof.WorkerTarget && len(base.Queue) == 0 {
		if cost := st.Of(domain.TypeWorker).Cost; budget >= cost {
			cmds = append(cmds, domain.Command{
				Action: domain.ActionTrain, Owner: owner,
				TargetID: base.ID, UnitType: domain.TypeWorker,
			})
			budget -= cost
		}
	}

	// 2. Депо, если население поджимает
	sup := w.SupplyOf(owner)
	if sup.Max-sup.Used <= prof.SupplyBuffer && sup.Max < domain.SupplyCap {
		if cost := st.Of(domain.TypeDepot).Cost; budget >= cost {
			cmds = append(cmds, domain.Command{
				Action: domain.ActionBuild, Owner: owner,
				UnitType: domain.TypeDepot,
				Pos:      buildSpot(base, buildings),
			})
			budget -= cost
		}
	}

	// 3. Бараки до квоты
	if barracks < prof.BarracksQuota {
		if cost := st.Of(domain.TypeBarracks).Cost; budget >= cost {
			cmds = append(cmds, domain.Command{
				Action: domain.ActionBuild, Owner: owner,
				UnitType: domain.TypeBarracks,
				Pos:      buildSpot(base, buildings),
			})
			budget -= cost
		}
	}

	// 4. Армия: каждый пятый боец - медик
	for _, id := range w.IDs() {
		b := w.Get(id)
		if b == nil || b.Owner != owner || b.Type != domain.TypeBarracks {
			continue
		}
		if b.UnderConstruction() || len(b.Queue) > 0 {
			continue
		}
		unitType := domain.TypeMarine
		if len(army)%5 == 4 {
			unitType = domain.TypeMedic
		}
		if cost := st.Of(unitType).Cost; budget >= cost {
			cmds = append(cmds, domain.Command{
				Action: domain.ActionTrain, Owner: owner,
				TargetID: b.ID, UnitType: unitType,
			})
			budget -= cost
		}
	}

	// 5. Волна атаки: армия собрана и грейс-период прошел
	idle := idleArmy(w, owner)
	if len(idle) >= prof.AttackArmySize && w.Tick >= w.NoRushTicks {
		if enemyBase := opposingBase(w, owner); enemyBase != nil {
			cmds = append(cmds, domain.Command{
				Action: domain.ActionAttackMove, Owner: owner,
				UnitIDs: idle, Pos: enemyBase.Pos,
			})
			logger.Log.WithFields(logrus.Fields{
				"component": "ai",
				"owner":     owner.String(),
				"army":      len(idle),
				"tick":      w.Tick,
			}).Info("Attack wave launched")
		}
	}

	return cmds
}

// --- Вспомогательные выборки ---

func countUnits(w *domain.World, owner domain.Owner, typ string) int {
	return w.CountWhere(func(e *domain.Entity) bool {
		return e.Owner == owner && e.Type == typ
	})
}

func countBuildingsOf(w *domain.World, owner domain.Owner, typ string) int {
	return countUnits(w, owner, typ)
}

func countAllBuildings(w *domain.World, owner domain.Owner) int {
	return w.CountWhere(func(e *domain.Entity) bool {
		return e.Owner == owner &&
			(e.Type == domain.TypeBase || e.Type == domain.TypeDepot ||
				e.Type == domain.TypeBarracks || e.Type == domain.TypeBunker)
	})
}

// findBuilding ищет первое по порядку создания здание типа.
// completeOnly - пропускать недостроенные.
func findBuilding(w *domain.World, owner domain.Owner, typ string, completeOnly bool) *domain.Entity {
	for _, id := range w.IDs() {
		e := w.Get(id)
		if e == nil || e.Owner != owner || e.Type != typ {
			continue
		}
		if completeOnly && e.UnderConstruction() {
			continue
		}
		return e
	}
	return nil
}

// armyUnits возвращает ID всех боевых юнитов фракции (не рабочих)
func armyUnits(w *domain.World, owner domain.Owner) []domain.EntityID {
	var ids []domain.EntityID
	for _, id := range w.IDs() {
		e := w.Get(id)
		if e == nil || e.Owner != owner {
			continue
		}
		if e.Type == domain.TypeMarine || e.Type == domain.TypeMedic {
			ids = append(ids, id)
		}
	}
	return ids
}

// idleArmy - боевые юниты, которым нечем заняться
func idleArmy(w *domain.World, owner domain.Owner) []domain.EntityID {
	var ids []domain.EntityID
	for _, id := range w.IDs() {
		e := w.Get(id)
		if e == nil || e.Owner != owner || e.State != domain.StateIdle {
			continue
		}
		if e.Type == domain.TypeMarine || e.Type == domain.TypeMedic {
			ids = append(ids, id)
		}
	}
	return ids
}

// opposingBase ищет любое здание противника (цель волны атаки)
func opposingBase(w *domain.World, owner domain.Owner) *domain.Entity {
	for _, id := range w.IDs() {
		e := w.Get(id)
		if e == nil || !owner.Hostile(e.Owner) {
			continue
		}
		if e.Type == domain.TypeBase || e.Type == domain.TypeDepot ||
			e.Type == domain.TypeBarracks || e.Type == domain.TypeBunker {
			return e
		}
	}
	return nil
}

// buildSpot выдает место под следующее здание вокруг базы
func buildSpot(base *domain.Entity, built int) domain.Position {
	off := buildOffsets[built%len(buildOffsets)]
	return base.Pos.Shift(off.X, off.Y)
}
