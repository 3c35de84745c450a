package domain

import "math"

// Position - точка на карте в мировых координатах
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo возвращает точное расстояние до другой точки
func (p Position) DistanceTo(other Position) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// DistanceSquaredTo возвращает квадрат расстояния для сравнения без корней
func (p Position) DistanceSquaredTo(other Position) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// Shift возвращает новую позицию со смещением (не меняя текущую,
// т.к. Go передает структуры по значению, если не указатель)
func (p Position) Shift(dx, dy float64) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// StepToward возвращает позицию после одного шага к цели со скоростью speed.
// Если цель ближе одного шага, возвращает саму цель (без перелета).
func (p Position) StepToward(target Position, speed float64) Position {
	dist := p.DistanceTo(target)
	if dist <= speed || dist == 0 {
		return target
	}
	return Position{
		X: p.X + (target.X-p.X)/dist*speed,
		Y: p.Y + (target.Y-p.Y)/dist*speed,
	}
}
