package physics

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/annel0/voxel-sandbox/internal/vec"
)

// ErrZeroDirection возвращается при попытке построить луч из нулевого вектора.
// Нулевое направление — нарушение предусловия: геометрия такого луча не определена.
var ErrZeroDirection = errors.New("направление луча не может быть нулевым")

// Ray представляет луч с началом и единичным направлением
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// NewRay создаёт луч, нормализуя направление.
// Нулевое направление отклоняется сразу, а не даёт неопределённую геометрию.
func NewRay(origin, dir mgl64.Vec3) (Ray, error) {
	if dir.Len() == 0 {
		return Ray{}, ErrZeroDirection
	}
	return Ray{Origin: origin, Dir: dir.Normalize()}, nil
}

// At возвращает точку луча для параметра t
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// AABB представляет выровненный по осям параллелепипед
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// BlockAABB возвращает единичный куб ячейки сетки
func BlockAABB(pos vec.Vec3) AABB {
	min := pos.ToFloat()
	return AABB{
		Min: min,
		Max: min.Add(mgl64.Vec3{1, 1, 1}),
	}
}

// RayHit описывает пересечение луча с кубом
type RayHit struct {
	T      float64  // Параметр луча в точке входа (строго положительный)
	Normal vec.Vec3 // Внешняя нормаль грани входа: ровно одна компонента ±1
}

// IntersectRay находит вход луча в параллелепипед методом слэбов.
// Возвращает false, если пересечения нет или точка входа лежит позади
// начала луча: для размещения блока нужна грань, через которую луч
// вошёл, поэтому кубы, содержащие начало луча, не считаются попаданием.
func (a AABB) IntersectRay(r Ray) (RayHit, bool) {
	tNear := math.Inf(-1)
	tFar := math.Inf(1)
	axis := -1 // Ось слэба, давшего точку входа

	for i := 0; i < 3; i++ {
		if r.Dir[i] == 0 {
			// Луч параллелен слэбу: пересечение возможно только внутри него
			if r.Origin[i] < a.Min[i] || r.Origin[i] > a.Max[i] {
				return RayHit{}, false
			}
			continue
		}

		t1 := (a.Min[i] - r.Origin[i]) / r.Dir[i]
		t2 := (a.Max[i] - r.Origin[i]) / r.Dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		if t1 > tNear {
			tNear = t1
			axis = i
		}
		if t2 < tFar {
			tFar = t2
		}
		if tNear > tFar {
			return RayHit{}, false
		}
	}

	if axis < 0 || tNear <= 0 {
		return RayHit{}, false
	}

	// Нормаль грани входа направлена против хода луча по оси входа.
	// Целочисленная нормаль гарантирует, что смещение при размещении
	// попадает точно в соседнюю ячейку сетки без округления.
	normal := vec.Vec3{}
	sign := 1
	if r.Dir[axis] > 0 {
		sign = -1
	}
	switch axis {
	case 0:
		normal.X = sign
	case 1:
		normal.Y = sign
	case 2:
		normal.Z = sign
	}

	return RayHit{T: tNear, Normal: normal}, true
}
