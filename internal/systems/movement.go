package systems

import (
	"github.com/vinnie291/StarDraft/internal/domain"
	"github.com/vinnie291/StarDraft/internal/stats"
)

// StepToward двигает сущность по прямой к точке.
// Возвращает true при прибытии (в пределах допуска).
func StepToward(e *domain.Entity, target domain.Position, speed float64) bool {
	e.Pos = e.Pos.StepToward(target, speed)
	return e.Pos.DistanceTo(target) <= domain.ArriveTolerance
}

// Separate разрешает мягкие коллизии сущности со всеми остальными:
// расталкивание вдоль разделяющего вектора, пропорционально глубине
// наложения. Против неподвижных (скорость 0) толчок удвоен - сами
// неподвижные не сдвигаются никогда.
func Separate(w *domain.World, e *domain.Entity, st stats.Table) {
	es := st.Of(e.Type)
	if es.Speed <= 0 {
		return
	}

	for _, id := range w.IDs() {
		other := w.Get(id)
		if other == nil || other.ID == e.ID {
			continue
		}
		if other.State == domain.StateGarrisoned {
			continue
		}

		dist := e.Pos.DistanceTo(other.Pos)
		overlap := e.Radius + other.Radius - dist
		if overlap <= 0 {
			continue
		}

		// Совпавшие точки: детерминированный сдвиг по оси X,
		// направление - по порядку создания
		dx, dy := 1.0, 0.0
		if dist > 0 {
			dx = (e.Pos.X - other.Pos.X) / dist
			dy = (e.Pos.Y - other.Pos.Y) / dist
		} else if other.ID.Seq() > e.ID.Seq() {
			dx = -1.0
		}

		push := overlap * 0.5
		if st.Of(other.Type).Speed <= 0 {
			push *= 2
		}

		e.Pos.X += dx * push
		e.Pos.Y += dy * push
	}
}
