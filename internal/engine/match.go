package engine

import (
	"sync"
	"time"

	"github.com/vinnie291/StarDraft/pkg/logger"
	"github.com/vinnie291/StarDraft/pkg/mapgen"

	"github.com/sirupsen/logrus"

	"github.com/vinnie291/StarDraft/internal/domain"
	"github.com/vinnie291/StarDraft/internal/replay"
	"github.com/vinnie291/StarDraft/internal/stats"
)

// Match - один запущенный матч: мир, контекст симуляции и очередь команд.
// Мир мутируется ТОЛЬКО внутри Step; внешние слои (ввод, сеть, AI-пир)
// кладут команды в очередь, которая опустошается на границе тика.
type Match struct {
	World *domain.World
	Stats stats.Table
	Ctx   *SimContext
	Cfg   Config

	mu      sync.Mutex
	pending []domain.Command

	// Recording - лента матча (seed + команды). nil, если запись выключена.
	Recording *replay.Session

	apply map[domain.ActionType]applyFunc
}

// NewMatch собирает мир из сгенерированной карты и готовит движок.
// Порядок инстанцирования заготовок фиксирован - от него зависит
// детерминированный порядок обхода арены.
func NewMatch(cfg Config, table stats.Table) *Match {
	m := &Match{
		World: domain.NewWorld(),
		Stats: table,
		Ctx:   NewContext(cfg.Seed),
		Cfg:   cfg,
	}
	m.registerHandlers()

	w := m.World
	w.NoRushTicks = cfg.NoRushSeconds * domain.TicksPerSec
	w.Multiplayer = cfg.Multiplayer
	w.Strategy = cfg.Strategy

	// Фракция хоста всегда первая в порядке инстанцирования: гость
	// генерирует зеркальный мир, где та же сущность носит тот же номер,
	// но фракции PLAYER и REMOTE поменяны местами
	first, second := domain.OwnerPlayer, cfg.Opponent()
	if cfg.Multiplayer && !cfg.Host {
		first, second = domain.OwnerRemote, domain.OwnerPlayer
	}
	for _, bp := range mapgen.Generate(cfg.Seed, first, second) {
		m.spawnBlueprint(bp)
	}

	// Стартовый капитал
	w.Minerals[domain.OwnerPlayer] = 50
	w.Minerals[cfg.Opponent()] = 50

	m.recomputeSupply()

	logger.Log.WithFields(logrus.Fields{
		"component":   "engine",
		"seed":        cfg.Seed,
		"multiplayer": cfg.Multiplayer,
		"strategy":    cfg.Strategy,
		"entities":    w.Len(),
	}).Info("Match created")

	return m
}

// StartRecording включает запись ленты матча
func (m *Match) StartRecording() {
	m.Recording = &replay.Session{
		Seed:          m.Cfg.Seed,
		Timestamp:     time.Now().Unix(),
		Strategy:      string(m.Cfg.Strategy),
		NoRushSeconds: m.Cfg.NoRushSeconds,
		Multiplayer:   m.Cfg.Multiplayer,
		Host:          m.Cfg.Host,
	}
}

// Enqueue кладет команду в очередь. Единственный потокобезопасный
// вход в симуляцию: сетевой слой и ввод зовут только его.
func (m *Match) Enqueue(cmd domain.Command) {
	m.mu.Lock()
	m.pending = append(m.pending, cmd)
	m.mu.Unlock()
}

// drain забирает накопленные команды (на границе тика)
func (m *Match) drain() []domain.Command {
	m.mu.Lock()
	cmds := m.pending
	m.pending = nil
	m.mu.Unlock()
	return cmds
}

// Step продвигает матч ровно на один тик: сначала применяются все
// накопленные команды, затем - фазы симуляции. Пауза останавливает
// будущие тики, не откатывая примененные.
func (m *Match) Step() {
	if m.World.Paused {
		return
	}

	// Аудио-реплики живут ровно один кадр: команды и фазы тика
	// добавляют новые, потребитель читает их между тиками
	m.World.Cues = m.World.Cues[:0]

	for _, cmd := range m.drain() {
		if m.Recording != nil {
			m.Recording.Record(m.World.Tick, cmd)
		}
		m.applyCommand(cmd)
	}

	m.advanceTick()
}

// RunTicks крутит симуляцию заданное число тиков (headless-режим и тесты)
func (m *Match) RunTicks(n int) {
	for i := 0; i < n; i++ {
		m.Step()
	}
}
