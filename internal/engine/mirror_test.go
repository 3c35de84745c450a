package engine

import (
	"testing"

	"github.com/vinnie291/StarDraft/pkg/mapgen"

	"github.com/vinnie291/StarDraft/internal/domain"
	"github.com/vinnie291/StarDraft/internal/stats"
)

// newPeerPair собирает две зеркальные симуляции одного мультиплеерного
// матча: хост и гость на общем зерне
func newPeerPair(seed int64) (*Match, *Match) {
	cfg := Config{
		Seed:        seed,
		Multiplayer: true,
		Strategy:    domain.StrategyBalanced,
	}
	hostCfg := cfg
	hostCfg.Host = true
	return NewMatch(hostCfg, stats.Default()), NewMatch(cfg, stats.Default())
}

// firstOf возвращает первую сущность фракции заданного типа
func firstOf(m *Match, owner domain.Owner, typ string) *domain.Entity {
	for _, id := range m.World.IDs() {
		if e := m.World.Get(id); e != nil && e.Owner == owner && e.Type == typ {
			return e
		}
	}
	return nil
}

// Миры пиров зеркальны с первого тика: сущность с номером N - одна
// и та же на обоих, отличается только локальный тег фракции
func TestPeerWorldsMirror(t *testing.T) {
	host, guest := newPeerPair(71)

	hids, gids := host.World.IDs(), guest.World.IDs()
	if len(hids) != len(gids) {
		t.Fatalf("entity counts diverge: %d vs %d", len(hids), len(gids))
	}
	for i := range hids {
		h := host.World.Get(hids[i])
		g := guest.World.Get(gids[i])
		if g.ID != h.ID.Mirrored() {
			t.Fatalf("id at slot %d: %v vs %v, want mirrored pair", i, h.ID, g.ID)
		}
		if h.Type != g.Type || h.Pos != g.Pos || g.Owner != h.Owner.Mirrored() {
			t.Fatalf("entity %v not mirrored: %+v vs %+v", h.ID, h, g)
		}
	}
}

// MOVE хоста, пересланный по зеркалу, двигает REMOTE-двойника у гостя
// в ту же точку, что и PLAYER-оригинал у хоста
func TestMirroredMoveReplays(t *testing.T) {
	host, guest := newPeerPair(72)

	worker := firstOf(host, domain.OwnerPlayer, domain.TypeWorker)
	if worker == nil {
		t.Fatal("host has no starting worker")
	}

	cmd := domain.Command{
		Action:  domain.ActionMove,
		Owner:   domain.OwnerPlayer,
		UnitIDs: []domain.EntityID{worker.ID},
		Pos:     domain.Position{X: 60, Y: 48},
	}
	host.Enqueue(cmd)
	guest.Enqueue(cmd.Mirrored())

	host.Step()
	guest.Step()

	twin := guest.World.Get(worker.ID.Mirrored())
	if twin == nil || twin.Owner != domain.OwnerRemote {
		t.Fatalf("guest has no REMOTE twin for %v", worker.ID)
	}
	if twin.State != domain.StateMoving {
		t.Fatalf("relayed MOVE dropped on the guest: state=%v", twin.State)
	}

	host.RunTicks(300)
	guest.RunTicks(300)

	if worker.Pos != twin.Pos || worker.State != twin.State {
		t.Errorf("peers diverged: host %v/%v vs guest %v/%v",
			worker.Pos, worker.State, twin.Pos, twin.State)
	}
}

// TRAIN через зеркало: гость тренирует REMOTE-рабочего в той же базе,
// на том же тике и с тем же номером сущности
func TestMirroredTrainStaysInLockstep(t *testing.T) {
	host, guest := newPeerPair(73)

	base := firstOf(host, domain.OwnerPlayer, domain.TypeBase)
	if base == nil {
		t.Fatal("host has no base")
	}

	cmd := domain.Command{
		Action:   domain.ActionTrain,
		Owner:    domain.OwnerPlayer,
		TargetID: base.ID,
		UnitType: domain.TypeWorker,
	}
	host.Enqueue(cmd)
	guest.Enqueue(cmd.Mirrored())

	bt := host.Stats.Of(domain.TypeWorker).BuildTime
	host.RunTicks(bt + 2)
	guest.RunTicks(bt + 2)

	if got := countOf(host.World, domain.OwnerPlayer, domain.TypeWorker); got != mapgen.StartWorkers+1 {
		t.Fatalf("host workers = %d, want %d", got, mapgen.StartWorkers+1)
	}
	if got := countOf(guest.World, domain.OwnerRemote, domain.TypeWorker); got != mapgen.StartWorkers+1 {
		t.Fatalf("guest did not train the remote worker: %d, want %d",
			got, mapgen.StartWorkers+1)
	}
	if host.World.Minerals[domain.OwnerPlayer] != guest.World.Minerals[domain.OwnerRemote] {
		t.Errorf("mirrored banks diverge: %d vs %d",
			host.World.Minerals[domain.OwnerPlayer], guest.World.Minerals[domain.OwnerRemote])
	}

	// Свежие юниты получают зеркальные ID и одинаковые позиции
	hids, gids := host.World.IDs(), guest.World.IDs()
	h := host.World.Get(hids[len(hids)-1])
	g := guest.World.Get(gids[len(gids)-1])
	if g.ID != h.ID.Mirrored() || h.Pos != g.Pos {
		t.Errorf("trained twins diverge: %v@%v vs %v@%v", h.ID, h.Pos, g.ID, g.Pos)
	}
}

// Зеркало команды обратимо и не трогает нейтральные ссылки
func TestCommandMirrorRoundTrip(t *testing.T) {
	cmd := domain.Command{
		Action:   domain.ActionGather,
		Owner:    domain.OwnerPlayer,
		UnitIDs:  []domain.EntityID{domain.PackEntityID(domain.OwnerPlayer, 2)},
		TargetID: domain.PackEntityID(domain.OwnerNeutral, 11),
	}

	m := cmd.Mirrored()
	if m.Owner != domain.OwnerRemote {
		t.Errorf("owner = %v, want REMOTE", m.Owner)
	}
	if m.UnitIDs[0] != domain.PackEntityID(domain.OwnerRemote, 2) {
		t.Errorf("unit id not retagged: %v", m.UnitIDs[0])
	}
	if m.TargetID != cmd.TargetID {
		t.Errorf("neutral target retagged: %v", m.TargetID)
	}

	back := m.Mirrored()
	if back.Owner != cmd.Owner || back.UnitIDs[0] != cmd.UnitIDs[0] || back.TargetID != cmd.TargetID {
		t.Errorf("double mirror is not identity: %+v", back)
	}
}
