package domain

import (
	"fmt"
	"strconv"
)

// EntityID - упакованный идентификатор (Owner + Sequence).
// Порядковый номер выдается контекстом симуляции строго последовательно,
// поэтому при одинаковом потоке команд оба пира получают одинаковые ID.
type EntityID uint64

// Конфигурация битов
const (
	bitsSeq   = 48
	bitsOwner = 8

	// Сдвиги
	shiftOwner = bitsSeq

	// Маски (для извлечения значений)
	maskSeq   = (1 << bitsSeq) - 1   // 0x0000FFFFFFFFFFFF
	maskOwner = (1 << bitsOwner) - 1 // 0xFF
)

// NoEntity - нулевой ID. Означает "ссылки нет".
const NoEntity EntityID = 0

// PackEntityID создает ID из компонентов
func PackEntityID(owner Owner, seq uint64) EntityID {
	id := seq & maskSeq
	id |= (uint64(owner) & maskOwner) << shiftOwner
	return EntityID(id)
}

// --- МЕТОДЫ ДОСТУПА ---

func (id EntityID) OwnerPart() Owner {
	return Owner((id >> shiftOwner) & maskOwner)
}

func (id EntityID) Seq() uint64 {
	return uint64(id & maskSeq)
}

// Mirrored переписывает биты владельца под маппинг фракций другого пира.
// Номер сущности общий для обеих симуляций, меняется только тег фракции.
func (id EntityID) Mirrored() EntityID {
	if id == NoEntity {
		return id
	}
	return PackEntityID(id.OwnerPart().Mirrored(), id.Seq())
}

// --- СЕРИАЛИЗАЦИЯ (Для фронтенда) ---

// MarshalJSON сериализует ID в строку, так как JS теряет точность для больших int64
func (id EntityID) MarshalJSON() ([]byte, error) {
	s := strconv.FormatUint(uint64(id), 10)
	return []byte(`"` + s + `"`), nil
}

// UnmarshalJSON парсит строку или число из JSON
func (id *EntityID) UnmarshalJSON(data []byte) error {
	// Удаляем кавычки, если есть
	if len(data) > 1 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	val, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return err
	}
	*id = EntityID(val)
	return nil
}

// String для логов: выводим красиво [Owner:Seq]
func (id EntityID) String() string {
	return fmt.Sprintf("[%d:%d]", id.OwnerPart(), id.Seq())
}
