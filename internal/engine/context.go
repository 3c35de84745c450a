package engine

import (
	"math/rand"

	"github.com/vinnie291/StarDraft/internal/domain"
)

// SimContext - явный контекст симуляции: генерация ID и состояние RNG.
// Никаких глобальных счетчиков и ambient-рандома: контекст передается
// через конструкторы, что позволяет гонять изолированные симуляции
// параллельно в тестах.
type SimContext struct {
	Rng *rand.Rand
	seq uint64
}

func NewContext(seed int64) *SimContext {
	return &SimContext{
		Rng: rand.New(rand.NewSource(seed)),
	}
}

// NewID выдает следующий ID. Последовательность строго монотонная:
// при одинаковом потоке событий оба пира получают одинаковые ID.
func (c *SimContext) NewID(owner domain.Owner) domain.EntityID {
	c.seq++
	return domain.PackEntityID(owner, c.seq)
}

// Scatter возвращает смещение в диапазоне [-amp, amp]
func (c *SimContext) Scatter(amp float64) float64 {
	return (c.Rng.Float64()*2 - 1) * amp
}
