package implementations

import (
	"github.com/annel0/voxel-sandbox/internal/world/block"
)

// GrassBehavior реализует поведение блока травы
type GrassBehavior struct{}

// ID возвращает идентификатор блока
func (b *GrassBehavior) ID() block.BlockID {
	return block.GrassBlockID
}

// Name возвращает имя блока
func (b *GrassBehavior) Name() string {
	return "Grass"
}

// Solid возвращает true — трава занимает ячейку
func (b *GrassBehavior) Solid() bool {
	return true
}

func init() {
	block.Register(block.GrassBlockID, &GrassBehavior{})
}
