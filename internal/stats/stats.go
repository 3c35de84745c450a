package stats

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vinnie291/StarDraft/internal/domain"
)

// Категории типов
const (
	KindUnit     = "unit"
	KindBuilding = "building"
	KindResource = "resource"
	KindTerrain  = "terrain"
)

// Stats - характеристики одного типа сущности.
// Таблица читается один раз и неизменна до конца матча.
type Stats struct {
	Kind string `yaml:"kind"`

	Cost  int `yaml:"cost"`
	HP    int `yaml:"hp"`
	Damage int `yaml:"damage"`

	Range  float64 `yaml:"range"`
	Vision float64 `yaml:"vision"`
	Speed  float64 `yaml:"speed"`

	AttackSpeed int `yaml:"attack_speed"` // Кулдаун между выстрелами, в тиках
	BuildTime   int `yaml:"build_time"`   // Тиков на постройку/тренировку

	Radius float64 `yaml:"radius"`

	SupplyCost     int `yaml:"supply_cost"`
	SupplyProvided int `yaml:"supply_provided"`

	HealRate int `yaml:"heal_rate"` // HP за один тик лечения (медики)

	Biological bool `yaml:"biological"` // Цель для медиков, "мясная" смерть
	Offensive  bool `yaml:"offensive"`  // Агрессивный по умолчанию (attack-move с выхода)
}

// Table - таблица характеристик, ключ - тип сущности
type Table map[string]Stats

// Of возвращает статы типа. Неизвестный тип дает нулевую запись:
// такая сущность ничего не умеет, но и не роняет тик.
func (t Table) Of(typ string) Stats {
	return t[typ]
}

func (t Table) IsBuilding(typ string) bool { return t[typ].Kind == KindBuilding }
func (t Table) IsUnit(typ string) bool     { return t[typ].Kind == KindUnit }

// Load читает таблицу из YAML-файла
func Load(path string) (Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t Table
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("stats.yaml: %w", err)
	}
	return t, nil
}

// Default возвращает вшитую таблицу. Движок и тесты не зависят от путей
// на диске; YAML нужен для тонкой настройки без перекомпиляции.
func Default() Table {
	return Table{
		domain.TypeWorker: {
			Kind: KindUnit, Cost: 50, HP: 40, Damage: 3,
			Range: 1.0, Vision: 7, Speed: 0.8,
			AttackSpeed: 20, BuildTime: 50, Radius: 0.5,
			SupplyCost: 1, Biological: true,
		},
		domain.TypeMarine: {
			Kind: KindUnit, Cost: 50, HP: 45, Damage: 6,
			Range: 5.0, Vision: 9, Speed: 0.7,
			AttackSpeed: 15, BuildTime: 60, Radius: 0.5,
			SupplyCost: 1, Biological: true, Offensive: true,
		},
		domain.TypeMedic: {
			Kind: KindUnit, Cost: 75, HP: 60,
			Range: 2.0, Vision: 9, Speed: 0.7,
			AttackSpeed: 8, BuildTime: 75, Radius: 0.5,
			SupplyCost: 1, HealRate: 2, Biological: true,
		},
		domain.TypeBase: {
			Kind: KindBuilding, Cost: 400, HP: 1500,
			Vision: 9, BuildTime: 300, Radius: 3.0,
			SupplyProvided: 10,
		},
		domain.TypeDepot: {
			Kind: KindBuilding, Cost: 100, HP: 500,
			Vision: 7, BuildTime: 100, Radius: 1.5,
			SupplyProvided: 8,
		},
		domain.TypeBarracks: {
			Kind: KindBuilding, Cost: 150, HP: 1000,
			Vision: 7, BuildTime: 150, Radius: 2.0,
		},
		domain.TypeBunker: {
			Kind: KindBuilding, Cost: 100, HP: 350, Damage: 6,
			Range: 6.0, Vision: 10, AttackSpeed: 16,
			BuildTime: 100, Radius: 1.5, Offensive: true,
		},
		domain.TypeMineral: {
			Kind: KindResource, Radius: 0.7, Vision: 0,
		},
		domain.TypeCrag: {
			Kind: KindTerrain, Radius: 1.2,
		},
	}
}
