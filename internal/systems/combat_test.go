package systems

import (
	"testing"

	"github.com/vinnie291/StarDraft/internal/domain"
	"github.com/vinnie291/StarDraft/internal/stats"
)

func TestStrike_DamageAndRetaliation(t *testing.T) {
	w := domain.NewWorld()
	st := stats.Default()

	attacker := addEntity(w, domain.TypeMarine, domain.OwnerPlayer, domain.Position{X: 0, Y: 0}, 0.5, 45)
	victim := addEntity(w, domain.TypeMarine, domain.OwnerEnemy, domain.Position{X: 2, Y: 0}, 0.5, 45)

	died := Strike(w, attacker, victim, st)
	if died {
		t.Fatal("victim reported dead at full health")
	}
	if victim.HP != 45-6 {
		t.Errorf("hp = %d, want 39", victim.HP)
	}
	if victim.State != domain.StateAttacking || victim.Attack == nil || victim.Attack.TargetID != attacker.ID {
		t.Errorf("victim did not retaliate: state=%v", victim.State)
	}
	if victim.LastAttacker != attacker.ID {
		t.Error("attacker not remembered")
	}
}

// Занятый живой целью не переключается на нового обидчика
func TestStrike_BusyVictimKeepsTarget(t *testing.T) {
	w := domain.NewWorld()
	st := stats.Default()

	attacker := addEntity(w, domain.TypeMarine, domain.OwnerPlayer, domain.Position{X: 0, Y: 0}, 0.5, 45)
	other := addEntity(w, domain.TypeMarine, domain.OwnerPlayer, domain.Position{X: 4, Y: 0}, 0.5, 45)
	victim := addEntity(w, domain.TypeMarine, domain.OwnerEnemy, domain.Position{X: 2, Y: 0}, 0.5, 45)
	victim.State = domain.StateAttacking
	victim.Attack = &domain.AttackOrder{TargetID: other.ID}

	Strike(w, attacker, victim, st)

	if victim.Attack.TargetID != other.ID {
		t.Errorf("busy victim switched targets: %v", victim.Attack.TargetID)
	}
}

// Рабочие огрызаются, здания - нет
func TestStrike_StructuresDoNotRetaliate(t *testing.T) {
	w := domain.NewWorld()
	st := stats.Default()

	attacker := addEntity(w, domain.TypeMarine, domain.OwnerPlayer, domain.Position{X: 0, Y: 0}, 0.5, 45)
	depot := addEntity(w, domain.TypeDepot, domain.OwnerEnemy, domain.Position{X: 2, Y: 0}, 1.5, 500)

	Strike(w, attacker, depot, st)

	if depot.State != domain.StateIdle || depot.Attack != nil {
		t.Errorf("structure retaliated: state=%v", depot.State)
	}
}

func TestStrike_LethalReportsDeath(t *testing.T) {
	w := domain.NewWorld()
	st := stats.Default()

	attacker := addEntity(w, domain.TypeMarine, domain.OwnerPlayer, domain.Position{X: 0, Y: 0}, 0.5, 45)
	victim := addEntity(w, domain.TypeMarine, domain.OwnerEnemy, domain.Position{X: 2, Y: 0}, 0.5, 45)
	victim.HP = 3

	if died := Strike(w, attacker, victim, st); !died {
		t.Fatal("lethal strike not reported")
	}
	if victim.HP != 0 {
		t.Errorf("hp = %d, want 0", victim.HP)
	}
}
