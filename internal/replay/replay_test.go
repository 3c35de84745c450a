package replay

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vinnie291/StarDraft/internal/domain"
)

func TestSessionRoundTrip(t *testing.T) {
	s := &Session{
		Seed:          1337,
		Timestamp:     1700000000,
		Strategy:      string(domain.StrategyAggressive),
		NoRushSeconds: 45,
		Multiplayer:   true,
	}
	s.Record(10, domain.Command{
		Action:  domain.ActionMove,
		Owner:   domain.OwnerPlayer,
		UnitIDs: []domain.EntityID{domain.PackEntityID(domain.OwnerPlayer, 7)},
		Pos:     domain.Position{X: 42, Y: 17},
	})
	s.Record(10, domain.Command{
		Action:   domain.ActionTrain,
		Owner:    domain.OwnerRemote,
		TargetID: domain.PackEntityID(domain.OwnerRemote, 1),
		UnitType: domain.TypeMarine,
	})
	s.Record(25, domain.Command{
		Action: domain.ActionStop,
		Owner:  domain.OwnerPlayer,
	})

	path := filepath.Join(t.TempDir(), "match"+Extension)
	if err := s.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if !reflect.DeepEqual(loaded, s) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, s)
	}
}

func TestSessionAt(t *testing.T) {
	s := &Session{}
	s.Record(5, domain.Command{Action: domain.ActionStop, Owner: domain.OwnerPlayer})
	s.Record(5, domain.Command{Action: domain.ActionMove, Owner: domain.OwnerPlayer})
	s.Record(9, domain.Command{Action: domain.ActionStop, Owner: domain.OwnerRemote})

	if got := len(s.At(5)); got != 2 {
		t.Errorf("At(5) = %d commands, want 2", got)
	}
	if got := len(s.At(6)); got != 0 {
		t.Errorf("At(6) = %d commands, want 0", got)
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope"+Extension)); err == nil {
		t.Fatal("expected error for missing file")
	}
}
