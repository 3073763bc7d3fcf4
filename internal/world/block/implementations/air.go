package implementations

import (
	"github.com/annel0/voxel-sandbox/internal/world/block"
)

// AirBehavior реализует поведение воздуха — пустой ячейки.
// Воздух зарегистрирован только для валидации ID: хранить его в мире нельзя.
type AirBehavior struct{}

// ID возвращает идентификатор блока
func (b *AirBehavior) ID() block.BlockID {
	return block.AirBlockID
}

// Name возвращает имя блока
func (b *AirBehavior) Name() string {
	return "Air"
}

// Solid возвращает false — воздух не занимает ячейку
func (b *AirBehavior) Solid() bool {
	return false
}

func init() {
	block.Register(block.AirBlockID, &AirBehavior{})
}
