package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxel-sandbox/internal/vec"
)

func TestNewRay_ZeroDirection(t *testing.T) {
	_, err := NewRay(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 0})
	assert.ErrorIs(t, err, ErrZeroDirection, "Нулевое направление должно отклоняться сразу")
}

func TestNewRay_Normalizes(t *testing.T) {
	r, err := NewRay(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 10})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r.Dir.Len(), 1e-12, "Направление луча должно быть единичным")
}

func TestIntersectRay_StraightDown(t *testing.T) {
	// Луч из (0.5, 5, 0.5) вертикально вниз в куб ячейки (0,0,0):
	// вход через верхнюю грань с нормалью (0,1,0)
	r, err := NewRay(mgl64.Vec3{0.5, 5, 0.5}, mgl64.Vec3{0, -1, 0})
	require.NoError(t, err)

	hit, ok := BlockAABB(vec.Vec3{X: 0, Y: 0, Z: 0}).IntersectRay(r)
	require.True(t, ok, "Луч должен пересечь куб")
	assert.InDelta(t, 4.0, hit.T, 1e-12, "Вход на верхней грани y=1")
	assert.Equal(t, vec.Vec3{X: 0, Y: 1, Z: 0}, hit.Normal, "Нормаль верхней грани")
}

func TestIntersectRay_SideFaces(t *testing.T) {
	box := BlockAABB(vec.Vec3{X: 0, Y: 0, Z: 0})

	cases := []struct {
		name   string
		origin mgl64.Vec3
		dir    mgl64.Vec3
		normal vec.Vec3
	}{
		{"слева", mgl64.Vec3{-2, 0.5, 0.5}, mgl64.Vec3{1, 0, 0}, vec.Vec3{X: -1}},
		{"справа", mgl64.Vec3{3, 0.5, 0.5}, mgl64.Vec3{-1, 0, 0}, vec.Vec3{X: 1}},
		{"спереди", mgl64.Vec3{0.5, 0.5, -2}, mgl64.Vec3{0, 0, 1}, vec.Vec3{Z: -1}},
		{"сзади", mgl64.Vec3{0.5, 0.5, 3}, mgl64.Vec3{0, 0, -1}, vec.Vec3{Z: 1}},
		{"снизу", mgl64.Vec3{0.5, -2, 0.5}, mgl64.Vec3{0, 1, 0}, vec.Vec3{Y: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := NewRay(tc.origin, tc.dir)
			require.NoError(t, err)
			hit, ok := box.IntersectRay(r)
			require.True(t, ok, "Луч должен пересечь куб")
			assert.Equal(t, tc.normal, hit.Normal, "Неверная нормаль грани входа")
		})
	}
}

func TestIntersectRay_Miss(t *testing.T) {
	box := BlockAABB(vec.Vec3{X: 0, Y: 0, Z: 0})

	// Луч проходит мимо куба
	r, err := NewRay(mgl64.Vec3{5, 5, 5}, mgl64.Vec3{0, -1, 0})
	require.NoError(t, err)
	_, ok := box.IntersectRay(r)
	assert.False(t, ok, "Луч мимо куба не должен давать попадание")

	// Куб позади начала луча
	r, err = NewRay(mgl64.Vec3{0.5, 5, 0.5}, mgl64.Vec3{0, 1, 0})
	require.NoError(t, err)
	_, ok = box.IntersectRay(r)
	assert.False(t, ok, "Куб позади начала луча не должен давать попадание")
}

func TestIntersectRay_OriginInside(t *testing.T) {
	// Начало луча внутри куба: грань входа позади, попадания нет
	box := BlockAABB(vec.Vec3{X: 0, Y: 0, Z: 0})
	r, err := NewRay(mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{0, -1, 0})
	require.NoError(t, err)
	_, ok := box.IntersectRay(r)
	assert.False(t, ok, "Куб, содержащий начало луча, не считается попаданием")
}

func TestIntersectRay_DiagonalNormal(t *testing.T) {
	// Диагональный луч входит через ближайшую по ходу грань
	box := BlockAABB(vec.Vec3{X: 2, Y: 0, Z: 2})
	r, err := NewRay(mgl64.Vec3{0.5, 0.5, 2.5}, mgl64.Vec3{1, 0, 0.01})
	require.NoError(t, err)
	hit, ok := box.IntersectRay(r)
	require.True(t, ok)
	assert.Equal(t, vec.Vec3{X: -1}, hit.Normal, "Вход через грань x=2")
}
