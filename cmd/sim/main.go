// Headless-прогон матча: AI против AI, без сети и рендера.
// Основной инструмент проверки детерминизма и баланса: один и тот же
// сид обязан давать один и тот же отпечаток мира.
package main

import (
	"flag"

	"github.com/vinnie291/StarDraft/internal/domain"
	"github.com/vinnie291/StarDraft/internal/engine"
	"github.com/vinnie291/StarDraft/internal/replay"
	"github.com/vinnie291/StarDraft/internal/stats"
	"github.com/vinnie291/StarDraft/internal/version"
	"github.com/vinnie291/StarDraft/pkg/logger"

	"github.com/sirupsen/logrus"
)

func init() {
	logger.Init()
}

func main() {
	var (
		seed       int64
		ticks      int
		strategy   string
		noRush     int
		statsPath  string
		savePath   string
		replayPath string
	)
	flag.Int64Var(&seed, "seed", 0, "Master seed (0 for random)")
	flag.IntVar(&ticks, "ticks", 20*60*10, "Number of ticks to simulate")
	flag.StringVar(&strategy, "strategy", "balanced", "AI strategy: aggressive, balanced, defensive")
	flag.IntVar(&noRush, "norush", 60, "No-rush grace period in seconds")
	flag.StringVar(&statsPath, "stats", "", "Path to stats.yaml (builtin table if empty)")
	flag.StringVar(&savePath, "save", "", "Record the run to a "+replay.Extension+" file")
	flag.StringVar(&replayPath, "replay", "", "Play back a recorded "+replay.Extension+" file")
	flag.Parse()

	logger.Log.Info("StarDraft headless simulation")
	logger.Log.Info(version.String())

	table := stats.Default()
	if statsPath != "" {
		loaded, err := stats.Load(statsPath)
		if err != nil {
			logger.Log.Fatal("Failed to load stats table: ", err)
		}
		table = loaded
	}

	// РЕЖИМ РЕПЛЕЯ
	if replayPath != "" {
		logger.Log.Info("💿 Mode: Replay Playback")
		session, err := replay.Load(replayPath)
		if err != nil {
			logger.Log.Fatal("Failed to load replay: ", err)
		}
		m := matchFromSession(session, table)
		for i := 0; i < ticks; i++ {
			for _, cmd := range session.At(m.World.Tick) {
				m.Enqueue(cmd)
			}
			m.Step()
			if m.World.Winner != domain.OwnerNeutral {
				break
			}
		}
		report(m)
		return
	}

	cfg := engine.NewConfig()
	cfg.Strategy = domain.Strategy(strategy)
	cfg.NoRushSeconds = noRush
	// Обе фракции под AI: матч играет сам себя
	cfg.AIOwners = []domain.Owner{domain.OwnerPlayer, domain.OwnerEnemy}
	if seed != 0 {
		cfg.Seed = seed
		logger.Log.Infof("🎲 Using explicit master seed: %d", seed)
	} else {
		logger.Log.Infof("🎲 Using random master seed: %d", cfg.Seed)
	}

	m := engine.NewMatch(cfg, table)
	if savePath != "" {
		m.StartRecording()
	}

	for i := 0; i < ticks; i++ {
		m.Step()
		if m.World.Winner != domain.OwnerNeutral {
			break
		}
	}

	report(m)

	if savePath != "" {
		if err := m.Recording.Save(savePath); err != nil {
			logger.Log.Fatal("Failed to save replay: ", err)
		}
		logger.Log.Info("Replay saved to ", savePath)
	}
}

// matchFromSession восстанавливает конфиг матча из ленты
func matchFromSession(s *replay.Session, table stats.Table) *engine.Match {
	cfg := engine.Config{
		Seed:          s.Seed,
		Multiplayer:   s.Multiplayer,
		Host:          s.Host,
		Strategy:      domain.Strategy(s.Strategy),
		NoRushSeconds: s.NoRushSeconds,
	}
	// Внешних команд в headless-ленте нет - AI регенерирует свои ходы сам
	if !s.Multiplayer {
		cfg.AIOwners = []domain.Owner{domain.OwnerPlayer, domain.OwnerEnemy}
	}
	return engine.NewMatch(cfg, table)
}

func report(m *engine.Match) {
	w := m.World
	logger.Log.WithFields(logrus.Fields{
		"tick":     w.Tick,
		"winner":   w.Winner.String(),
		"entities": w.Len(),
		"digest":   m.Digest(),
	}).Info("Simulation finished")
}
