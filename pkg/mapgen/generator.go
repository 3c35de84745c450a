package mapgen

import (
	"math/rand"

	"github.com/vinnie291/StarDraft/internal/domain"
)

// Константы генерации
const (
	MapWidth  = 128.0
	MapHeight = 96.0

	MineralsPerBase = 8
	StartWorkers    = 4
	ExpansionNodes  = 6
	CragCount       = 10
)

// Blueprint - заготовка сущности. Генератор не выдает ID и не знает
// характеристик: он только расставляет типы по карте, а движок
// инстанцирует их в фиксированном порядке (порядок создания = порядок
// в возвращаемом срезе, он обязан совпадать на обоих пирах).
type Blueprint struct {
	Type  string
	Owner domain.Owner
	Pos   domain.Position
	Stock int
}

// Generate детерминированно раскладывает стартовые базы, рабочих,
// кластеры минералов и рельеф. Вся случайность - из локального
// генератора на общем зерне: одинаковый seed дает одинаковую карту
// на обоих пирах.
//
// Порядок фракций задает вызывающий: first занимает левый верхний угол
// и инстанцируется первой. В мультиплеере фракция хоста идет первой
// НА ОБОИХ пирах - тогда последовательности номеров сущностей
// совпадают, и номер N означает одну и ту же сущность везде.
func Generate(seed int64, first, second domain.Owner) []Blueprint {
	rng := rand.New(rand.NewSource(seed))

	var out []Blueprint

	// 1. Базы в противоположных углах
	basePositions := map[domain.Owner]domain.Position{
		first:  {X: 16, Y: 16},
		second: {X: MapWidth - 16, Y: MapHeight - 16},
	}
	for _, owner := range []domain.Owner{first, second} {
		pos := basePositions[owner]
		out = append(out, Blueprint{Type: domain.TypeBase, Owner: owner, Pos: pos})

		// 2. Стартовые рабочие веером под базой
		for i := 0; i < StartWorkers; i++ {
			out = append(out, Blueprint{
				Type:  domain.TypeWorker,
				Owner: owner,
				Pos:   pos.Shift(-3+float64(i)*2, 5),
			})
		}

		// 3. Минеральная линия дугой над базой
		for i := 0; i < MineralsPerBase; i++ {
			out = append(out, Blueprint{
				Type:  domain.TypeMineral,
				Owner: domain.OwnerNeutral,
				Pos:   pos.Shift(-7+float64(i)*2, -6+jitter(rng, 1.0)),
				Stock: domain.MineralStock,
			})
		}
	}

	// 4. Нейтральные экспансии в середине карты
	expansions := []domain.Position{
		{X: MapWidth / 2, Y: 16},
		{X: MapWidth / 2, Y: MapHeight - 16},
	}
	for _, center := range expansions {
		for i := 0; i < ExpansionNodes; i++ {
			out = append(out, Blueprint{
				Type:  domain.TypeMineral,
				Owner: domain.OwnerNeutral,
				Pos:   center.Shift(-5+float64(i)*2, jitter(rng, 2.0)),
				Stock: domain.MineralStock,
			})
		}
	}

	// 5. Декоративный непроходимый рельеф, подальше от баз
	for i := 0; i < CragCount; i++ {
		pos := domain.Position{
			X: 20 + rng.Float64()*(MapWidth-40),
			Y: 20 + rng.Float64()*(MapHeight-40),
		}
		if tooClose(pos, basePositions) {
			continue // Пропуск, не перегенерация: число draw'ов фиксировано
		}
		out = append(out, Blueprint{
			Type:  domain.TypeCrag,
			Owner: domain.OwnerNeutral,
			Pos:   pos,
		})
	}

	return out
}

// jitter возвращает смещение в диапазоне [-amp, amp]
func jitter(rng *rand.Rand, amp float64) float64 {
	return (rng.Float64()*2 - 1) * amp
}

func tooClose(pos domain.Position, bases map[domain.Owner]domain.Position) bool {
	for _, bp := range bases {
		if pos.DistanceTo(bp) < 18 {
			return true
		}
	}
	return false
}
