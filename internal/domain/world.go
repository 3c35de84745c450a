package domain

// Supply - учет населения фракции. Пересчитывается с нуля каждый тик,
// инкрементальных правок нет.
type Supply struct {
	Used int `json:"used"`
	Max  int `json:"max"`
}

// World - авторитетный снимок состояния матча.
// Мутируется ровно одним тиком за раз; внешние слои только кладут
// команды в очередь и читают результат между тиками.
type World struct {
	// Арена сущностей: ссылки только по ID, никаких прямых указателей
	// между сущностями. Это позволяет безопасно удалять посреди прохода.
	entities map[EntityID]*Entity

	// Порядок создания. Это ДОКУМЕНТИРОВАННЫЙ порядок обхода арены:
	// от него зависят детерминированные тай-брейки в поиске целей
	// и видимость смертей внутри одного тика на обоих пирах.
	order []EntityID

	Minerals map[Owner]int     `json:"minerals"`
	Supplies map[Owner]*Supply `json:"supplies"`

	// Эфемерный наблюдаемый выход (рендер и звук забирают и забывают)
	Overlays []Overlay      `json:"overlays"`
	Cues     []string       `json:"cues"`
	Notices  []Notification `json:"notices"`

	Tick        int      `json:"tick"`
	Winner      Owner    `json:"winner"` // OwnerNeutral, пока матч идет
	Paused      bool     `json:"paused"`
	NoRushTicks int      `json:"noRushTicks"`
	Multiplayer bool     `json:"multiplayer"`
	Strategy    Strategy `json:"strategy"`

	// Счетчики зданий прошлого тика - для детекции перехода >0 -> 0
	LastBuildings map[Owner]int `json:"-"`
}

func NewWorld() *World {
	return &World{
		entities: make(map[EntityID]*Entity),
		order:    make([]EntityID, 0, 128),
		Minerals: make(map[Owner]int),
		Supplies: make(map[Owner]*Supply),
		Overlays: make([]Overlay, 0),
		Cues:     make([]string, 0),
		Notices:  make([]Notification, 0),

		LastBuildings: make(map[Owner]int),
	}
}

// Add регистрирует сущность в арене и в порядке обхода
func (w *World) Add(e *Entity) {
	w.entities[e.ID] = e
	w.order = append(w.order, e.ID)
}

// Remove выкидывает сущность из арены. Порядок остальных не меняется.
func (w *World) Remove(id EntityID) {
	if _, ok := w.entities[id]; !ok {
		return
	}
	delete(w.entities, id)
	for i, oid := range w.order {
		if oid == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// Get возвращает сущность по ID или nil (LookupMiss - штатная ситуация)
func (w *World) Get(id EntityID) *Entity {
	return w.entities[id]
}

// IDs возвращает копию порядка обхода. Копию - чтобы проход тика
// не ломался от удалений внутри самого прохода.
func (w *World) IDs() []EntityID {
	snapshot := make([]EntityID, len(w.order))
	copy(snapshot, w.order)
	return snapshot
}

func (w *World) Len() int {
	return len(w.entities)
}

// CountWhere считает живые сущности, подходящие под предикат
func (w *World) CountWhere(pred func(*Entity) bool) int {
	n := 0
	for _, id := range w.order {
		if e := w.entities[id]; e != nil && pred(e) {
			n++
		}
	}
	return n
}

// HarvesterCount считает рабочих, назначенных на узел
// (для мягкого лимита насыщения)
func (w *World) HarvesterCount(nodeID EntityID) int {
	return w.CountWhere(func(e *Entity) bool {
		return e.State == StateGathering && e.Gather != nil && e.Gather.NodeID == nodeID
	})
}

// SupplyOf возвращает учет населения фракции, создавая его при первом обращении
func (w *World) SupplyOf(owner Owner) *Supply {
	s, ok := w.Supplies[owner]
	if !ok {
		s = &Supply{}
		w.Supplies[owner] = s
	}
	return s
}

// --- НАБЛЮДАЕМЫЙ ВЫХОД ---

// AddCue ставит аудио-реплику в список текущего кадра
func (w *World) AddCue(cue string) {
	w.Cues = append(w.Cues, cue)
}

// AddOverlay вешает таймированную визуальную метку
func (w *World) AddOverlay(pos Position, kind OverlayKind, life int) {
	w.Overlays = append(w.Overlays, Overlay{Pos: pos, Kind: kind, Life: life})
}

// Notify добавляет текстовое уведомление игроку
func (w *World) Notify(text string, life int) {
	w.Notices = append(w.Notices, Notification{Text: text, Life: life})
}

// DecayOverlays уменьшает жизнь меток и выкидывает погасшие
func (w *World) DecayOverlays() {
	alive := w.Overlays[:0]
	for _, ov := range w.Overlays {
		ov.Life--
		if ov.Life > 0 {
			alive = append(alive, ov)
		}
	}
	w.Overlays = alive

	notices := w.Notices[:0]
	for _, n := range w.Notices {
		n.Life--
		if n.Life > 0 {
			notices = append(notices, n)
		}
	}
	w.Notices = notices
}
