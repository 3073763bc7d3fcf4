package player

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/annel0/voxel-sandbox/internal/input"
)

// Advance возвращает новую позицию наблюдателя за один тик.
//
// Вперёд/назад — вдоль взгляда (включая вертикальную составляющую тангажа).
// Стрейф — вдоль горизонтальной правой оси базиса: она строится как
// векторное произведение взгляда и мировой вертикали, поэтому боковое
// движение остаётся горизонтальным при любом тангаже.
// Вверх/вниз — вдоль мировой вертикали, независимо от тангажа.
//
// Одновременные клавиши складываются без нормализации: диагональное
// движение быстрее осевого. Это поведение исходной механики и
// сохраняется намеренно.
func Advance(pos mgl64.Vec3, basis Basis, snap input.Snapshot, speed, dt float64) mgl64.Vec3 {
	step := speed * dt

	if snap.Held(input.KeyForward) {
		pos = pos.Add(basis.Forward.Mul(step))
	}
	if snap.Held(input.KeyBack) {
		pos = pos.Sub(basis.Forward.Mul(step))
	}
	if snap.Held(input.KeyRight) {
		pos = pos.Add(basis.Right.Mul(step))
	}
	if snap.Held(input.KeyLeft) {
		pos = pos.Sub(basis.Right.Mul(step))
	}
	if snap.Held(input.KeyUp) {
		pos = pos.Add(WorldUp.Mul(step))
	}
	if snap.Held(input.KeyDown) {
		pos = pos.Sub(WorldUp.Mul(step))
	}

	return pos
}
