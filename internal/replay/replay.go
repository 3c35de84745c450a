// Package replay - запись и воспроизведение матча.
// Лента хранит только сид и поток команд с тиками: этого достаточно,
// чтобы детерминированный движок восстановил матч байт в байт.
package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/vinnie291/StarDraft/internal/domain"
)

// FormatVersion инкрементируется при несовместимых правках ленты
const FormatVersion = 1

// Extension - расширение файлов лент
const Extension = ".sdrp"

// RecordedCommand - команда, привязанная к тику применения
type RecordedCommand struct {
	Tick int            `json:"tick"`
	Cmd  domain.Command `json:"cmd"`
}

// Session - одна записанная лента
type Session struct {
	Version       int    `json:"version"`
	Seed          int64  `json:"seed"`
	Timestamp     int64  `json:"timestamp"`
	Strategy      string `json:"strategy"`
	NoRushSeconds int    `json:"noRushSeconds"`
	Multiplayer   bool   `json:"multiplayer"`
	Host          bool   `json:"host"` // Записавший пир был хостом (раскладка фракций)

	Commands []RecordedCommand `json:"commands"`
}

// Record дописывает команду в ленту
func (s *Session) Record(tick int, cmd domain.Command) {
	s.Commands = append(s.Commands, RecordedCommand{Tick: tick, Cmd: cmd})
}

// At возвращает команды, записанные на заданный тик.
// Лента пишется в порядке тиков, поэтому линейный срез корректен.
func (s *Session) At(tick int) []domain.Command {
	var out []domain.Command
	for _, rc := range s.Commands {
		if rc.Tick == tick {
			out = append(out, rc.Cmd)
		}
	}
	return out
}

// Save пишет ленту на диск: JSON, сжатый zstd
func (s *Session) Save(path string) error {
	s.Version = FormatVersion

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("replay save: %w", err)
	}
	defer f.Close()

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("replay save: %w", err)
	}

	if err := json.NewEncoder(zw).Encode(s); err != nil {
		zw.Close()
		return fmt.Errorf("replay save: %w", err)
	}
	return zw.Close()
}

// Load читает ленту с диска
func Load(path string) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay load: %w", err)
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("replay load: %w", err)
	}
	defer zr.Close()

	var s Session
	if err := json.NewDecoder(zr).Decode(&s); err != nil {
		return nil, fmt.Errorf("replay load: %w", err)
	}
	if s.Version != FormatVersion {
		return nil, fmt.Errorf("replay load: unsupported format version %d", s.Version)
	}
	return &s, nil
}
