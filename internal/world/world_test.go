package world

import (
	"testing"

	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	// Импортируем реализации блоков для регистрации в init()
	_ "github.com/annel0/voxel-sandbox/internal/world/block/implementations"
)

func TestVoxelWorld_InsertAndGet(t *testing.T) {
	w := NewVoxelWorld()
	pos := vec.Vec3{X: 1, Y: 2, Z: 3}

	// Пустая ячейка
	_, ok := w.Get(pos)
	assert.False(t, ok, "Пустая ячейка не должна содержать блок")

	// Вставка и чтение
	err := w.Insert(NewBlock(block.StoneBlockID, pos))
	require.NoError(t, err, "Вставка в пустую ячейку должна проходить без ошибок")

	b, ok := w.Get(pos)
	assert.True(t, ok, "Ячейка должна быть занята после вставки")
	assert.Equal(t, block.StoneBlockID, b.ID, "Тип блока должен совпадать")
	assert.Equal(t, pos, b.Pos, "Позиция блока должна совпадать")
	assert.Equal(t, 1, w.Count(), "Мир должен содержать ровно один блок")
}

func TestVoxelWorld_InsertOccupied(t *testing.T) {
	w := NewVoxelWorld()
	pos := vec.Vec3{X: 0, Y: 0, Z: 0}

	require.NoError(t, w.Insert(NewBlock(block.GrassBlockID, pos)))

	// Повторная вставка в занятую ячейку запрещена
	err := w.Insert(NewBlock(block.DirtBlockID, pos))
	assert.ErrorIs(t, err, ErrCellOccupied, "Вставка в занятую ячейку должна возвращать ErrCellOccupied")

	// Прежний блок не должен быть затронут
	b, ok := w.Get(pos)
	require.True(t, ok)
	assert.Equal(t, block.GrassBlockID, b.ID, "Занятая ячейка должна сохранить прежний блок")
}

func TestVoxelWorld_InsertAir(t *testing.T) {
	w := NewVoxelWorld()

	// Воздух никогда не хранится как блок
	err := w.Insert(NewBlock(block.AirBlockID, vec.Vec3{X: 5, Y: 5, Z: 5}))
	assert.ErrorIs(t, err, ErrAirBlock, "Вставка воздуха должна возвращать ErrAirBlock")
	assert.Equal(t, 0, w.Count(), "Мир должен остаться пустым")
}

func TestVoxelWorld_RemoveIdempotent(t *testing.T) {
	w := NewVoxelWorld()
	pos := vec.Vec3{X: 7, Y: 1, Z: -4}
	require.NoError(t, w.Insert(NewBlock(block.WoodBlockID, pos)))

	// Первое удаление возвращает блок
	b, ok := w.Remove(pos)
	assert.True(t, ok, "Первое удаление должно вернуть блок")
	assert.Equal(t, block.WoodBlockID, b.ID)

	// Повторное удаление — no-op, не ошибка
	_, ok = w.Remove(pos)
	assert.False(t, ok, "Повторное удаление должно вернуть false")
	assert.Equal(t, 0, w.Count(), "Мир должен быть пуст после удаления")
}

func TestVoxelWorld_PlaceRemoveRoundTrip(t *testing.T) {
	// Установка блока в пустую ячейку и немедленное удаление
	// восстанавливают мир в исходное состояние
	w := NewVoxelWorld()
	require.NoError(t, w.Insert(NewBlock(block.StoneBlockID, vec.Vec3{X: 0, Y: 0, Z: 0})))
	before := w.Count()

	pos := vec.Vec3{X: 0, Y: 1, Z: 0}
	require.NoError(t, w.Insert(NewBlock(block.GrassBlockID, pos)))
	_, ok := w.Remove(pos)
	require.True(t, ok)

	assert.Equal(t, before, w.Count(), "После round-trip число блоков должно совпадать с исходным")
	assert.False(t, w.Occupied(pos), "Ячейка не должна остаться занятой")
}

func TestVoxelWorld_Clear(t *testing.T) {
	w := NewVoxelWorld()
	require.NoError(t, w.Insert(NewBlock(block.StoneBlockID, vec.Vec3{X: 1, Y: 0, Z: 0})))
	require.NoError(t, w.Insert(NewBlock(block.DirtBlockID, vec.Vec3{X: 2, Y: 0, Z: 0})))

	w.Clear()
	assert.Equal(t, 0, w.Count(), "После Clear мир должен быть пуст")
}

func TestVoxelWorld_AllRestartable(t *testing.T) {
	w := NewVoxelWorld()
	require.NoError(t, w.Insert(NewBlock(block.StoneBlockID, vec.Vec3{X: 0, Y: 0, Z: 0})))
	require.NoError(t, w.Insert(NewBlock(block.GrassBlockID, vec.Vec3{X: 1, Y: 0, Z: 0})))
	require.NoError(t, w.Insert(NewBlock(block.WoodBlockID, vec.Vec3{X: 2, Y: 0, Z: 0})))

	// Итератор перезапускаем дважды — оба прохода видят все блоки
	for i := 0; i < 2; i++ {
		seen := 0
		for b := range w.All() {
			assert.NotEqual(t, block.AirBlockID, b.ID, "Итератор не должен выдавать воздух")
			seen++
		}
		assert.Equal(t, 3, seen, "Итератор должен выдать все блоки")
	}

	// Досрочный выход не ломает последующие обходы
	for range w.All() {
		break
	}
	seen := 0
	for range w.All() {
		seen++
	}
	assert.Equal(t, 3, seen)
}

func TestVoxelWorld_OccupancyInvariant(t *testing.T) {
	// После серии вставок и удалений каждая ячейка содержит не более
	// одного блока, и ни один блок не имеет тип воздуха
	w := NewVoxelWorld()
	positions := []vec.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: -3, Y: 2, Z: 7},
		{X: 1, Y: 0, Z: 1},
	}
	for _, pos := range positions {
		require.NoError(t, w.Insert(NewBlock(block.StoneBlockID, pos)))
	}
	w.Remove(positions[1])
	require.NoError(t, w.Insert(NewBlock(block.WoodBlockID, positions[1])))

	seen := make(map[vec.Vec3]bool)
	for b := range w.All() {
		assert.False(t, seen[b.Pos], "Ячейка %v встретилась дважды", b.Pos)
		assert.NotEqual(t, block.AirBlockID, b.ID, "Хранимый блок не может быть воздухом")
		seen[b.Pos] = true
	}
	assert.Len(t, seen, len(positions), "Число занятых ячеек должно совпадать")
}
