package systems

import (
	"testing"

	"github.com/vinnie291/StarDraft/internal/domain"
	"github.com/vinnie291/StarDraft/internal/stats"
)

func TestPlan_OpeningTrainsWorker(t *testing.T) {
	w := domain.NewWorld()
	w.Strategy = domain.StrategyBalanced
	st := stats.Default()

	base := addEntity(w, domain.TypeBase, domain.OwnerEnemy, domain.Position{X: 10, Y: 10}, 3.0, 1500)
	w.Minerals[domain.OwnerEnemy] = 50

	cmds := Plan(w, domain.OwnerEnemy, st)
	if len(cmds) != 1 {
		t.Fatalf("commands = %d, want 1", len(cmds))
	}
	cmd := cmds[0]
	if cmd.Action != domain.ActionTrain || cmd.UnitType != domain.TypeWorker || cmd.TargetID != base.ID {
		t.Errorf("unexpected opening command: %+v", cmd)
	}
}

func TestPlan_NoBaseNoPlan(t *testing.T) {
	w := domain.NewWorld()
	st := stats.Default()
	w.Minerals[domain.OwnerEnemy] = 1000

	if cmds := Plan(w, domain.OwnerEnemy, st); cmds != nil {
		t.Fatalf("planned without a base: %v", cmds)
	}
}

// Волна атаки уходит только после грейс-периода и при собранной армии
func TestPlan_AttackWaveAfterGrace(t *testing.T) {
	w := domain.NewWorld()
	w.Strategy = domain.StrategyBalanced
	w.NoRushTicks = 1200
	st := stats.Default()

	addEntity(w, domain.TypeBase, domain.OwnerEnemy, domain.Position{X: 100, Y: 80}, 3.0, 1500)
	playerBase := addEntity(w, domain.TypeBase, domain.OwnerPlayer, domain.Position{X: 16, Y: 16}, 3.0, 1500)

	army := ProfileFor(domain.StrategyBalanced).AttackArmySize
	for i := 0; i < army; i++ {
		addEntity(w, domain.TypeMarine, domain.OwnerEnemy, domain.Position{X: 100, Y: 60 + float64(i)}, 0.5, 45)
	}

	hasWave := func(cmds []domain.Command) *domain.Command {
		for i := range cmds {
			if cmds[i].Action == domain.ActionAttackMove {
				return &cmds[i]
			}
		}
		return nil
	}

	if wave := hasWave(Plan(w, domain.OwnerEnemy, st)); wave != nil {
		t.Fatal("attack wave launched during no-rush grace")
	}

	w.Tick = 1200
	wave := hasWave(Plan(w, domain.OwnerEnemy, st))
	if wave == nil {
		t.Fatal("no attack wave after grace")
	}
	if len(wave.UnitIDs) != army {
		t.Errorf("wave size = %d, want %d", len(wave.UnitIDs), army)
	}
	if wave.Pos != playerBase.Pos {
		t.Errorf("wave target = %v, want player base", wave.Pos)
	}
}
