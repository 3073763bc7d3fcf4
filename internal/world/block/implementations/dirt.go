package implementations

import (
	"github.com/annel0/voxel-sandbox/internal/world/block"
)

// DirtBehavior реализует поведение блока земли
type DirtBehavior struct{}

// ID возвращает идентификатор блока
func (b *DirtBehavior) ID() block.BlockID {
	return block.DirtBlockID
}

// Name возвращает имя блока
func (b *DirtBehavior) Name() string {
	return "Dirt"
}

// Solid возвращает true — земля занимает ячейку
func (b *DirtBehavior) Solid() bool {
	return true
}

func init() {
	block.Register(block.DirtBlockID, &DirtBehavior{})
}
