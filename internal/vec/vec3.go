package vec

import "github.com/go-gl/mathgl/mgl64"

// Vec3 представляет координату ячейки воксельной сетки (один куб на ячейку)
type Vec3 struct {
	X int
	Y int
	Z int
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Equals проверяет равенство векторов
func (v Vec3) Equals(other Vec3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// Less задаёт лексикографический порядок (X, затем Y, затем Z).
// Используется для детерминированного разрешения ничьих при выборе ближайшего попадания.
func (v Vec3) Less(other Vec3) bool {
	if v.X != other.X {
		return v.X < other.X
	}
	if v.Y != other.Y {
		return v.Y < other.Y
	}
	return v.Z < other.Z
}

// ToFloat возвращает позицию ячейки как вектор с плавающей точкой
// (угол куба с минимальными координатами)
func (v Vec3) ToFloat() mgl64.Vec3 {
	return mgl64.Vec3{float64(v.X), float64(v.Y), float64(v.Z)}
}

// Center возвращает центр единичного куба ячейки
func (v Vec3) Center() mgl64.Vec3 {
	return mgl64.Vec3{float64(v.X) + 0.5, float64(v.Y) + 0.5, float64(v.Z) + 0.5}
}

// FromFloat возвращает ячейку, содержащую точку (округление вниз по каждой оси)
func FromFloat(p mgl64.Vec3) Vec3 {
	return Vec3{
		X: floorInt(p.X()),
		Y: floorInt(p.Y()),
		Z: floorInt(p.Z()),
	}
}

func floorInt(f float64) int {
	i := int(f)
	if f < 0 && float64(i) != f {
		i--
	}
	return i
}
