package util

import (
	"github.com/aquilax/go-perlin"
)

// NoiseSource — детерминированный источник шума Перлина.
// Каждый источник владеет собственным генератором: один и тот же сид
// всегда даёт одну и ту же поверхность шума.
type NoiseSource struct {
	p *perlin.Perlin
}

// NewNoiseSource создаёт источник шума с указанным сидом
func NewNoiseSource(seed int64) *NoiseSource {
	alpha := 2.0  // Сглаживание шума
	beta := 2.0   // Частота шума
	n := int32(3) // Количество октав
	return &NoiseSource{
		p: perlin.NewPerlin(alpha, beta, n, seed),
	}
}

// Noise2D возвращает значение шума для указанных координат (от 0 до 1)
func (ns *NoiseSource) Noise2D(x, y float64) float64 {
	// Значение шума лежит в диапазоне от -1 до 1
	noise := ns.p.Noise2D(x, y)

	// Преобразуем в диапазон от 0 до 1
	return (noise + 1.0) / 2.0
}
