package engine

import (
	"testing"

	"github.com/vinnie291/StarDraft/internal/domain"
)

// Победа присуждается при потере последнего здания и не пересматривается
func TestVictoryIsTerminal(t *testing.T) {
	m := newBareMatch(8)
	playerBase := m.spawnStructure(domain.TypeBase, domain.OwnerPlayer, domain.Position{X: 10, Y: 10}, true)
	enemyBase := m.spawnStructure(domain.TypeBase, domain.OwnerEnemy, domain.Position{X: 20, Y: 10}, true)
	enemyBase.HP = 1

	marine := m.spawnUnit(domain.TypeMarine, domain.OwnerPlayer, domain.Position{X: 16, Y: 10})
	m.recomputeSupply()

	m.Enqueue(domain.Command{
		Action:   domain.ActionAttack,
		Owner:    domain.OwnerPlayer,
		UnitIDs:  []domain.EntityID{marine.ID},
		TargetID: enemyBase.ID,
	})
	m.RunTicks(50)

	if m.World.Winner != domain.OwnerPlayer {
		t.Fatalf("winner = %v, want PLAYER", m.World.Winner)
	}
	if m.World.Get(enemyBase.ID) != nil {
		t.Error("destroyed base still on the map")
	}

	// Потеря зданий победителя исход уже не меняет
	playerBase.HP = 0
	m.kill(playerBase)
	m.RunTicks(5)

	if m.World.Winner != domain.OwnerPlayer {
		t.Errorf("verdict changed after the match was decided: %v", m.World.Winner)
	}
}

// Одновременный снос последних зданий обеих сторон решается в
// фиксированном порядке фракций, а не в порядке обхода map:
// исход одинаков при любом запуске
func TestSimultaneousEliminationIsDeterministic(t *testing.T) {
	for i := 0; i < 8; i++ {
		m := newBareMatch(int64(40 + i))
		pb := m.spawnStructure(domain.TypeBase, domain.OwnerPlayer, domain.Position{X: 10, Y: 10}, true)
		eb := m.spawnStructure(domain.TypeBase, domain.OwnerEnemy, domain.Position{X: 100, Y: 80}, true)
		m.recomputeSupply()
		m.Step() // Фиксируем счетчики зданий прошлого тика

		m.World.Remove(pb.ID)
		m.World.Remove(eb.ID)
		m.Step()

		if m.World.Winner != domain.OwnerEnemy {
			t.Fatalf("run %d: winner = %v, want ENEMY (player's loss resolved first)",
				i, m.World.Winner)
		}
	}
}

// Пока матч не решен, победителя нет
func TestNoVictoryWhileBuildingsStand(t *testing.T) {
	m := newBareMatch(9)
	m.spawnStructure(domain.TypeBase, domain.OwnerPlayer, domain.Position{X: 10, Y: 10}, true)
	m.spawnStructure(domain.TypeBase, domain.OwnerEnemy, domain.Position{X: 100, Y: 80}, true)
	m.recomputeSupply()

	m.RunTicks(100)

	if m.World.Winner != domain.OwnerNeutral {
		t.Fatalf("winner = %v, want NEUTRAL", m.World.Winner)
	}
}
