package implementations

import (
	"github.com/annel0/voxel-sandbox/internal/world/block"
)

// WoodBehavior реализует поведение блока дерева
type WoodBehavior struct{}

// ID возвращает идентификатор блока
func (b *WoodBehavior) ID() block.BlockID {
	return block.WoodBlockID
}

// Name возвращает имя блока
func (b *WoodBehavior) Name() string {
	return "Wood"
}

// Solid возвращает true — дерево занимает ячейку
func (b *WoodBehavior) Solid() bool {
	return true
}

func init() {
	block.Register(block.WoodBlockID, &WoodBehavior{})
}
