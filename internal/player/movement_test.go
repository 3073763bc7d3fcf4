package player

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"github.com/annel0/voxel-sandbox/internal/input"
)

func snapWith(keys ...input.Key) input.Snapshot {
	held := make(map[input.Key]bool, len(keys))
	for _, k := range keys {
		held[k] = true
	}
	return input.Snapshot{Keys: held}
}

func TestAdvance_ForwardAlongView(t *testing.T) {
	basis := Pose{Yaw: 0, Pitch: 0}.Basis()
	pos := Advance(mgl64.Vec3{}, basis, snapWith(input.KeyForward), 2.0, 0.5)

	assert.InDelta(t, 0.0, pos.X(), 1e-12)
	assert.InDelta(t, 1.0, pos.Z(), 1e-12, "Шаг вперёд — speed·dt вдоль взгляда")
}

func TestAdvance_StrafeStaysHorizontal(t *testing.T) {
	// Даже при сильном тангаже стрейф не имеет вертикальной составляющей
	basis := Pose{Yaw: 0.8, Pitch: -1.2}.Basis()
	pos := Advance(mgl64.Vec3{}, basis, snapWith(input.KeyRight), 1.0, 1.0)

	assert.InDelta(t, 0.0, pos.Y(), 1e-12, "Стрейф должен оставаться горизонтальным")
	assert.InDelta(t, 1.0, mgl64.Vec3{pos.X(), 0, pos.Z()}.Len(), 1e-12)
}

func TestAdvance_VerticalIgnoresPitch(t *testing.T) {
	basis := Pose{Yaw: 1.1, Pitch: 1.0}.Basis()
	pos := Advance(mgl64.Vec3{}, basis, snapWith(input.KeyUp), 3.0, 1.0)

	assert.Equal(t, mgl64.Vec3{0, 3, 0}, pos, "Подъём идёт строго вдоль мировой вертикали")
}

func TestAdvance_OppositeKeysCancel(t *testing.T) {
	basis := Pose{}.Basis()
	pos := Advance(mgl64.Vec3{1, 2, 3}, basis, snapWith(input.KeyForward, input.KeyBack), 5.0, 1.0)

	assert.InDelta(t, 1.0, pos.X(), 1e-12)
	assert.InDelta(t, 2.0, pos.Y(), 1e-12)
	assert.InDelta(t, 3.0, pos.Z(), 1e-12, "Противоположные клавиши взаимно уничтожаются")
}

func TestAdvance_DiagonalNotNormalized(t *testing.T) {
	// Диагональ складывается покомпонентно и потому быстрее осевого
	// движения в √2 раза — особенность исходной механики
	basis := Pose{Yaw: 0, Pitch: 0}.Basis()
	pos := Advance(mgl64.Vec3{}, basis, snapWith(input.KeyForward, input.KeyLeft), 1.0, 1.0)

	assert.InDelta(t, math.Sqrt2, pos.Len(), 1e-12, "Диагональная скорость не нормализуется")
}

func TestAdvance_NoKeysNoMotion(t *testing.T) {
	basis := Pose{Yaw: 2.2, Pitch: 0.4}.Basis()
	start := mgl64.Vec3{-4, 7, 9}
	assert.Equal(t, start, Advance(start, basis, snapWith(), 10.0, 1.0))
}
