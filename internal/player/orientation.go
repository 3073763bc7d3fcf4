// Package player содержит контроллеры наблюдателя от первого лица:
// ориентацию (рыскание/тангаж от дельт указателя) и перемещение
// (позиция от удерживаемых клавиш и текущего базиса).
package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// PitchLimit — предел тангажа: взгляд строго вверх или строго вниз
const PitchLimit = math.Pi / 2

// WorldUp — мировая вертикаль
var WorldUp = mgl64.Vec3{0, 1, 0}

// Pose — поза наблюдателя. Рыскание не ограничено (периодичность даёт
// тригонометрия), тангаж зажат в [-π/2, π/2].
type Pose struct {
	Yaw   float64
	Pitch float64
}

// Basis — ортонормированный базис наблюдателя
type Basis struct {
	Forward mgl64.Vec3 // Направление взгляда
	Right   mgl64.Vec3 // Горизонтальное направление вправо (не зависит от тангажа)
	Up      mgl64.Vec3 // Локальный верх
}

// Orientation накапливает дельты указателя в позу наблюдателя.
// Поза принадлежит контроллеру; остальной код читает её через Pose().
type Orientation struct {
	pose        Pose
	sensitivity float64
}

// NewOrientation создаёт контроллер с указанной чувствительностью
func NewOrientation(sensitivity float64) *Orientation {
	return &Orientation{
		sensitivity: sensitivity,
	}
}

// ApplyDelta применяет дельту указателя к позе.
// Вызывающий код обязан не передавать дельты без захвата указателя —
// накопитель ввода отбрасывает их ещё на границе событий.
func (o *Orientation) ApplyDelta(dx, dy float64) {
	o.pose.Yaw -= dx * o.sensitivity
	o.pose.Pitch -= dy * o.sensitivity

	if o.pose.Pitch > PitchLimit {
		o.pose.Pitch = PitchLimit
	}
	if o.pose.Pitch < -PitchLimit {
		o.pose.Pitch = -PitchLimit
	}
}

// Pose возвращает текущую позу
func (o *Orientation) Pose() Pose {
	return o.pose
}

// SetPose устанавливает позу напрямую (начальное состояние, тесты)
func (o *Orientation) SetPose(p Pose) {
	o.pose = p
	if o.pose.Pitch > PitchLimit {
		o.pose.Pitch = PitchLimit
	}
	if o.pose.Pitch < -PitchLimit {
		o.pose.Pitch = -PitchLimit
	}
}

// Basis возвращает базис наблюдателя для текущей позы.
//
// Порядок поворотов фиксирован: сначала рыскание вокруг мировой вертикали,
// затем тангаж вокруг полученной локальной горизонтали. Обратный порядок
// дал бы крен при взгляде вбок.
func (o *Orientation) Basis() Basis {
	return o.pose.Basis()
}

// Basis вычисляет базис для позы
func (p Pose) Basis() Basis {
	sinYaw, cosYaw := math.Sincos(p.Yaw)
	sinPitch, cosPitch := math.Sincos(p.Pitch)

	forward := mgl64.Vec3{
		cosPitch * sinYaw,
		sinPitch,
		cosPitch * cosYaw,
	}

	// Горизонтальная правая ось зависит только от рыскания и остаётся
	// определённой при тангаже ±π/2, где forward параллелен вертикали
	right := mgl64.Vec3{-cosYaw, 0, sinYaw}

	up := right.Cross(forward)

	return Basis{Forward: forward, Right: right, Up: up}
}
