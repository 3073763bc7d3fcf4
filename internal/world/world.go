package world

import (
	"errors"
	"fmt"
	"iter"

	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world/block"
)

// Ошибки нарушения инвариантов хранилища
var (
	// ErrCellOccupied возвращается при попытке вставить блок в занятую ячейку.
	// Протокол редактирования обязан проверять занятость заранее; здесь
	// инвариант проверяется повторно на случай ошибки вызывающего кода.
	ErrCellOccupied = errors.New("ячейка уже занята блоком")

	// ErrAirBlock возвращается при попытке сохранить воздух как блок.
	// Воздух обозначает отсутствие: занятая ячейка всегда содержит не-воздух.
	ErrAirBlock = errors.New("воздух не может храниться как блок")
)

// VoxelWorld хранит разреженное отображение координат ячеек на блоки.
//
// Инварианты:
//   - ячейка присутствует в отображении тогда и только тогда, когда её
//     занимает блок с типом, отличным от воздуха;
//   - в одной ячейке не бывает двух блоков (ключ отображения — координата).
//
// Структура не содержит собственной синхронизации: весь доступ идёт через
// единственного владельца — драйвер тика (см. sim.Simulation). При
// использовании из нескольких горутин владелец обязан обеспечить
// эксклюзивный доступ, иначе инвариант занятости не гарантируется.
type VoxelWorld struct {
	blocks map[vec.Vec3]Block
}

// NewVoxelWorld создаёт пустой мир
func NewVoxelWorld() *VoxelWorld {
	return &VoxelWorld{
		blocks: make(map[vec.Vec3]Block),
	}
}

// Get возвращает блок в указанной ячейке, если она занята
func (w *VoxelWorld) Get(pos vec.Vec3) (Block, bool) {
	b, ok := w.blocks[pos]
	return b, ok
}

// Occupied проверяет, занята ли ячейка
func (w *VoxelWorld) Occupied(pos vec.Vec3) bool {
	_, ok := w.blocks[pos]
	return ok
}

// Insert сохраняет блок в его ячейке.
// Возвращает ErrAirBlock для воздуха и ErrCellOccupied для занятой ячейки.
func (w *VoxelWorld) Insert(b Block) error {
	if b.ID == block.AirBlockID {
		return ErrAirBlock
	}
	if _, ok := w.blocks[b.Pos]; ok {
		return fmt.Errorf("вставка в (%d,%d,%d): %w", b.Pos.X, b.Pos.Y, b.Pos.Z, ErrCellOccupied)
	}
	w.blocks[b.Pos] = b
	return nil
}

// Remove удаляет блок из ячейки и возвращает его.
// Пустая ячейка — не ошибка: возвращается false, мир не меняется.
func (w *VoxelWorld) Remove(pos vec.Vec3) (Block, bool) {
	b, ok := w.blocks[pos]
	if !ok {
		return Block{}, false
	}
	delete(w.blocks, pos)
	return b, true
}

// Clear опустошает мир. Используется только при полной регенерации ландшафта.
func (w *VoxelWorld) Clear() {
	w.blocks = make(map[vec.Vec3]Block)
}

// Count возвращает число занятых ячеек
func (w *VoxelWorld) Count() int {
	return len(w.blocks)
}

// All возвращает ленивый перезапускаемый итератор по всем блокам.
// Порядок обхода не определён и не влияет на корректность.
func (w *VoxelWorld) All() iter.Seq[Block] {
	return func(yield func(Block) bool) {
		for _, b := range w.blocks {
			if !yield(b) {
				return
			}
		}
	}
}

// Positions возвращает срез координат всех занятых ячеек.
// Используется как множество кандидатов для пересечения с лучом,
// когда реестр визуалов рендерера недоступен.
func (w *VoxelWorld) Positions() []vec.Vec3 {
	positions := make([]vec.Vec3, 0, len(w.blocks))
	for pos := range w.blocks {
		positions = append(positions, pos)
	}
	return positions
}

// Snapshot возвращает копию всех блоков мира.
// Копия отдаётся внешним потребителям (REST API, мост рендерера),
// чтобы они не держали ссылку на живое хранилище.
func (w *VoxelWorld) Snapshot() []Block {
	blocks := make([]Block, 0, len(w.blocks))
	for _, b := range w.blocks {
		blocks = append(blocks, b)
	}
	return blocks
}

// CountByType возвращает распределение занятых ячеек по типам блоков
func (w *VoxelWorld) CountByType() map[block.BlockID]int {
	counts := make(map[block.BlockID]int)
	for _, b := range w.blocks {
		counts[b.ID]++
	}
	return counts
}
