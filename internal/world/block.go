package world

import (
	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world/block"
)

// Block представляет собой блок в воксельном мире.
// Блок неизменяем: при редактировании он заменяется целиком, а не мутирует.
type Block struct {
	ID  block.BlockID // Идентификатор типа блока (никогда не AirBlockID)
	Pos vec.Vec3      // Координата ячейки сетки
}

// NewBlock создаёт новый блок указанного типа в указанной ячейке
func NewBlock(id block.BlockID, pos vec.Vec3) Block {
	return Block{
		ID:  id,
		Pos: pos,
	}
}

// Name возвращает имя типа блока
func (b Block) Name() string {
	return block.Name(b.ID)
}
