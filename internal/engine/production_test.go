package engine

import (
	"testing"

	"github.com/vinnie291/StarDraft/internal/domain"
)

func TestTrainWorker(t *testing.T) {
	m := newBareMatch(3)
	base := m.spawnStructure(domain.TypeBase, domain.OwnerPlayer, domain.Position{X: 10, Y: 10}, true)
	m.World.Minerals[domain.OwnerPlayer] = 50
	m.recomputeSupply()

	m.Enqueue(domain.Command{
		Action:   domain.ActionTrain,
		Owner:    domain.OwnerPlayer,
		TargetID: base.ID,
		UnitType: domain.TypeWorker,
	})
	m.Step()

	if got := m.World.Minerals[domain.OwnerPlayer]; got != 0 {
		t.Fatalf("cost not deducted at enqueue: minerals=%d", got)
	}
	if len(base.Queue) != 1 {
		t.Fatalf("queue length = %d, want 1", len(base.Queue))
	}

	bt := m.Stats.Of(domain.TypeWorker).BuildTime
	m.RunTicks(bt + 1)

	if got := countOf(m.World, domain.OwnerPlayer, domain.TypeWorker); got != 1 {
		t.Errorf("workers = %d, want 1", got)
	}
	if len(base.Queue) != 0 {
		t.Errorf("queue not drained: %v", base.Queue)
	}
}

// При нехватке населения конвейер замирает на последнем тике
// и отпускает юнита в тот же миг, когда место появляется
func TestTrainingFreezesWithoutSupply(t *testing.T) {
	m := newBareMatch(4)
	base := m.spawnStructure(domain.TypeBase, domain.OwnerPlayer, domain.Position{X: 10, Y: 10}, true)
	for i := 0; i < 10; i++ {
		m.spawnUnit(domain.TypeWorker, domain.OwnerPlayer, domain.Position{X: 20 + float64(i)*2, Y: 20})
	}
	m.World.Minerals[domain.OwnerPlayer] = 50
	m.recomputeSupply()

	m.Enqueue(domain.Command{
		Action:   domain.ActionTrain,
		Owner:    domain.OwnerPlayer,
		TargetID: base.ID,
		UnitType: domain.TypeWorker,
	})
	m.Step()

	bt := m.Stats.Of(domain.TypeWorker).BuildTime
	m.RunTicks(bt + 20)

	if got := countOf(m.World, domain.OwnerPlayer, domain.TypeWorker); got != 10 {
		t.Fatalf("unit spawned over supply cap: workers=%d", got)
	}
	if base.TrainProgress != bt-1 {
		t.Errorf("train progress = %d, want frozen at %d", base.TrainProgress, bt-1)
	}
	if !hasCue(m.World, domain.CueSupplyBlocked) {
		t.Error("supply blocked cue missing")
	}

	// Депо снимает блокировку
	m.spawnStructure(domain.TypeDepot, domain.OwnerPlayer, domain.Position{X: 30, Y: 10}, true)
	m.RunTicks(3)

	if got := countOf(m.World, domain.OwnerPlayer, domain.TypeWorker); got != 11 {
		t.Errorf("workers = %d, want 11 after depot", got)
	}
}

// Недострой дозревает сам и не дает supply до готовности
func TestConstructionMatures(t *testing.T) {
	m := newBareMatch(5)
	depot := m.spawnStructure(domain.TypeDepot, domain.OwnerPlayer, domain.Position{X: 10, Y: 10}, false)
	m.recomputeSupply()

	bt := m.Stats.Of(domain.TypeDepot).BuildTime
	m.RunTicks(bt / 2)

	if !depot.UnderConstruction() {
		t.Fatal("depot completed too early")
	}
	if got := m.World.SupplyOf(domain.OwnerPlayer).Max; got != 0 {
		t.Errorf("unfinished depot provides supply: max=%d", got)
	}

	m.RunTicks(bt/2 + 2)

	if depot.UnderConstruction() {
		t.Fatal("depot never completed")
	}
	if got := m.World.SupplyOf(domain.OwnerPlayer).Max; got != 8 {
		t.Errorf("supply max = %d, want 8", got)
	}
}

func TestRallyRoutesWorkerToMinerals(t *testing.T) {
	m := newBareMatch(6)
	base := m.spawnStructure(domain.TypeBase, domain.OwnerPlayer, domain.Position{X: 10, Y: 10}, true)
	node := m.spawnUnit(domain.TypeMineral, domain.OwnerNeutral, domain.Position{X: 20, Y: 10})
	node.Stock = 100
	base.Rally = &domain.RallyPoint{Pos: node.Pos, TargetID: node.ID}
	m.World.Minerals[domain.OwnerPlayer] = 50
	m.recomputeSupply()

	m.Enqueue(domain.Command{
		Action:   domain.ActionTrain,
		Owner:    domain.OwnerPlayer,
		TargetID: base.ID,
		UnitType: domain.TypeWorker,
	})
	m.Step()
	m.RunTicks(m.Stats.Of(domain.TypeWorker).BuildTime + 1)

	var worker *domain.Entity
	for _, id := range m.World.IDs() {
		if e := m.World.Get(id); e != nil && e.Type == domain.TypeWorker {
			worker = e
		}
	}
	if worker == nil {
		t.Fatal("worker was not trained")
	}
	if worker.State != domain.StateGathering || worker.Gather == nil || worker.Gather.NodeID != node.ID {
		t.Errorf("recruit not routed to rally node: state=%v", worker.State)
	}
}

// Боевой юнит без ралли выдвигается attack-move на базу противника
func TestOffensiveRecruitMarchesOut(t *testing.T) {
	m := newBareMatch(11)
	m.spawnStructure(domain.TypeBase, domain.OwnerPlayer, domain.Position{X: 10, Y: 30}, true)
	rax := m.spawnStructure(domain.TypeBarracks, domain.OwnerPlayer, domain.Position{X: 10, Y: 10}, true)
	enemyBase := m.spawnStructure(domain.TypeBase, domain.OwnerEnemy, domain.Position{X: 100, Y: 80}, true)
	m.World.Minerals[domain.OwnerPlayer] = 50
	m.recomputeSupply()

	m.Enqueue(domain.Command{
		Action:   domain.ActionTrain,
		Owner:    domain.OwnerPlayer,
		TargetID: rax.ID,
		UnitType: domain.TypeMarine,
	})
	m.Step()
	m.RunTicks(m.Stats.Of(domain.TypeMarine).BuildTime + 1)

	var marine *domain.Entity
	for _, id := range m.World.IDs() {
		if e := m.World.Get(id); e != nil && e.Type == domain.TypeMarine {
			marine = e
		}
	}
	if marine == nil {
		t.Fatal("marine was not trained")
	}
	if marine.State != domain.StateMoving || marine.Move == nil || !marine.Move.Aggressive {
		t.Fatalf("marine not marching: state=%v", marine.State)
	}
	if marine.Move.Target != enemyBase.Pos {
		t.Errorf("march target = %v, want enemy base at %v", marine.Move.Target, enemyBase.Pos)
	}
}
