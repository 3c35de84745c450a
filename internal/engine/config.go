package engine

import (
	"time"

	"github.com/vinnie291/StarDraft/internal/domain"
)

// Config хранит параметры запуска матча
type Config struct {
	// Seed - мастер-зерно. От него зависят карта и все розыгрыши RNG;
	// в мультиплеере хост раздает его при рукопожатии.
	Seed int64

	Multiplayer bool

	// Host: локальный пир создал комнату. От этого зависит раскладка
	// фракций: фракция хоста инстанцируется первой на ОБОИХ пирах,
	// чтобы номера сущностей совпадали в зеркальных симуляциях.
	// В одиночной игре поле не играет роли.
	Host bool

	Strategy      domain.Strategy
	NoRushSeconds int // Грейс-период "без раша"

	// AIOwners - фракции, которые симулируются локальным AI-контроллером.
	// В одиночной игре это оппонент; в мультиплеере список пуст.
	AIOwners []domain.Owner
}

// NewConfig создает конфиг по умолчанию (случайный сид, одиночная игра)
func NewConfig() Config {
	return Config{
		Seed:          time.Now().UnixNano(),
		Host:          true,
		Strategy:      domain.StrategyBalanced,
		NoRushSeconds: 60,
		AIOwners:      []domain.Owner{domain.OwnerEnemy},
	}
}

// Opponent возвращает фракцию противника локального игрока
func (c Config) Opponent() domain.Owner {
	if c.Multiplayer {
		return domain.OwnerRemote
	}
	return domain.OwnerEnemy
}
