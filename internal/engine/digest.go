package engine

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"

	"github.com/vinnie291/StarDraft/internal/domain"
)

// Digest сворачивает авторитетное состояние мира в короткий отпечаток.
// Две симуляции с одинаковым сидом и потоком команд обязаны давать
// одинаковый отпечаток на каждом тике - этим проверяется сходимость
// пиров и ловятся недетерминированные правки движка.
// Эфемерный выход (метки, реплики, уведомления) в отпечаток не входит.
func (m *Match) Digest() string {
	h := fnv.New64a()
	buf := make([]byte, 8)

	u64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf, v)
		h.Write(buf)
	}
	i64 := func(v int64) { u64(uint64(v)) }
	f64 := func(v float64) { u64(math.Float64bits(v)) }

	w := m.World
	i64(int64(w.Tick))
	u64(uint64(w.Winner))

	// Карты обходим по фиксированному списку фракций, не по range
	for _, owner := range []domain.Owner{
		domain.OwnerNeutral, domain.OwnerPlayer, domain.OwnerEnemy, domain.OwnerRemote,
	} {
		i64(int64(w.Minerals[owner]))
		if s := w.Supplies[owner]; s != nil {
			i64(int64(s.Used))
			i64(int64(s.Max))
		} else {
			i64(0)
			i64(0)
		}
	}

	for _, id := range w.IDs() {
		e := w.Get(id)
		if e == nil {
			continue
		}
		u64(uint64(e.ID))
		h.Write([]byte(e.Type))
		u64(uint64(e.Owner))
		f64(e.Pos.X)
		f64(e.Pos.Y)
		i64(int64(e.HP))
		u64(uint64(e.State))
		i64(int64(e.Cooldown))
		i64(int64(e.Carry))
		i64(int64(e.Stock))
		f64(e.Progress)
		i64(int64(e.TrainProgress))
		i64(int64(len(e.Queue)))
		for _, q := range e.Queue {
			h.Write([]byte(q))
		}
		i64(int64(len(e.Garrison)))
		for _, gid := range e.Garrison {
			u64(uint64(gid))
		}
	}

	return fmt.Sprintf("%016x", h.Sum64())
}
