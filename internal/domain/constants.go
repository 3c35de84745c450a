package domain

// Глобальные лимиты симуляции
const (
	SupplyCap      = 200 // Потолок supply.max на фракцию
	GarrisonCap    = 4   // Вместимость бункера
	NodeSaturation = 3   // Мягкий лимит рабочих на один узел ресурсов
)

// Экономика
const (
	MineralStock    = 1250 // Стартовый запас минерального узла
	GatherQuantum   = 10   // Сколько минералов дает один цикл добычи
	GatherDwell     = 20   // Тиков "ковыряния" узла до передачи кванта
	DepositRange    = 0.5  // Допуск контакта с базой для сдачи ресурсов
	ArriveTolerance = 0.5  // Допуск прибытия для MOVING
)

// Бой
const (
	RetaliationMemory = 60  // Тиков, пока жива память о последнем обидчике
	SearchMargin      = 2.0 // Запас к дальности атаки при поиске цели
	ContactRange      = 0.3 // Допуск контакта (вход в бункер)
)

// Темп симуляции
const (
	AICadence    = 30 // AI-контроллер вызывается раз в столько тиков
	TicksPerSec  = 20 // Номинальная частота тиков (для перевода секунд)
	OverlayLife  = 10 // Жизнь визуальной метки по умолчанию, в тиках
	EjectScatter = 1.5 // Разброс выгрузки пассажиров вокруг бункера
)
