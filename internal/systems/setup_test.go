package systems

import (
	"os"
	"testing"

	"github.com/vinnie291/StarDraft/pkg/logger"

	"github.com/vinnie291/StarDraft/internal/domain"
)

func TestMain(m *testing.M) {
	os.Setenv("LOG_LEVEL", "error")
	logger.Init()
	os.Exit(m.Run())
}

var testSeq uint64

// addEntity кладет в мир минимальную сущность для тестов таргетинга
func addEntity(w *domain.World, typ string, owner domain.Owner, pos domain.Position, radius float64, hp int) *domain.Entity {
	testSeq++
	e := &domain.Entity{
		ID:     domain.PackEntityID(owner, testSeq),
		Type:   typ,
		Owner:  owner,
		Pos:    pos,
		Radius: radius,
		HP:     hp,
		MaxHP:  hp,
		State:  domain.StateIdle,
	}
	w.Add(e)
	return e
}
