package editor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxel-sandbox/internal/physics"
	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world"
	"github.com/annel0/voxel-sandbox/internal/world/block"

	// Импортируем реализации блоков для регистрации в init()
	_ "github.com/annel0/voxel-sandbox/internal/world/block/implementations"
)

// downRay возвращает луч из (0.5, 5, 0.5) вертикально вниз
func downRay(t *testing.T) physics.Ray {
	t.Helper()
	r, err := physics.NewRay(mgl64.Vec3{0.5, 5, 0.5}, mgl64.Vec3{0, -1, 0})
	require.NoError(t, err)
	return r
}

func TestResolve_EdgeCaseScenario(t *testing.T) {
	// Сценарий из одного блока в (0,0,0) и луча вертикально вниз:
	// попадание в (0,0,0) с нормалью (0,1,0), размещение в (0,1,0),
	// повторное размещение тем же лучом — Blocked
	w := world.NewVoxelWorld()
	origin := vec.Vec3{X: 0, Y: 0, Z: 0}
	require.NoError(t, w.Insert(world.NewBlock(block.StoneBlockID, origin)))

	ray := downRay(t)
	candidates := w.Positions()

	res, err := Resolve(w, ray, candidates, ActionPlace, block.WoodBlockID)
	require.NoError(t, err)
	assert.Equal(t, ResultPlaced, res.Kind, "Первое размещение должно пройти")
	assert.Equal(t, vec.Vec3{X: 0, Y: 1, Z: 0}, res.Pos, "Блок должен встать над попаданием")
	assert.Equal(t, block.WoodBlockID, res.ID)

	b, ok := w.Get(vec.Vec3{X: 0, Y: 1, Z: 0})
	require.True(t, ok)
	assert.Equal(t, block.WoodBlockID, b.ID)

	// Повторное размещение тем же лучом и тем же множеством кандидатов:
	// попадание снова в (0,0,0), но целевая ячейка (0,1,0) уже занята
	res, err = Resolve(w, ray, candidates, ActionPlace, block.WoodBlockID)
	require.NoError(t, err)
	assert.Equal(t, ResultBlocked, res.Kind, "Размещение в занятую ячейку — Blocked")
	assert.Equal(t, 2, w.Count(), "Blocked не должен менять мир")
}

func TestResolve_RemoveNearest(t *testing.T) {
	// Из колонны блоков удаляется верхний — ближайший по ходу луча
	w := world.NewVoxelWorld()
	for y := 0; y <= 2; y++ {
		require.NoError(t, w.Insert(world.NewBlock(block.StoneBlockID, vec.Vec3{X: 0, Y: y, Z: 0})))
	}

	res, err := Resolve(w, downRay(t), w.Positions(), ActionRemove, block.AirBlockID)
	require.NoError(t, err)
	assert.Equal(t, ResultRemoved, res.Kind)
	assert.Equal(t, vec.Vec3{X: 0, Y: 2, Z: 0}, res.Pos, "Удаляется верхний блок колонны")
	assert.False(t, w.Occupied(vec.Vec3{X: 0, Y: 2, Z: 0}))
	assert.True(t, w.Occupied(vec.Vec3{X: 0, Y: 1, Z: 0}), "Нижние блоки не затронуты")
}

func TestResolve_Miss(t *testing.T) {
	w := world.NewVoxelWorld()
	require.NoError(t, w.Insert(world.NewBlock(block.StoneBlockID, vec.Vec3{X: 10, Y: 0, Z: 10})))

	res, err := Resolve(w, downRay(t), w.Positions(), ActionRemove, block.AirBlockID)
	require.NoError(t, err)
	assert.Equal(t, ResultMiss, res.Kind, "Луч мимо всех кандидатов — Miss")
	assert.Equal(t, 1, w.Count(), "Miss не должен менять мир")
}

func TestResolve_EmptyCandidates(t *testing.T) {
	w := world.NewVoxelWorld()
	res, err := Resolve(w, downRay(t), nil, ActionRemove, block.AirBlockID)
	require.NoError(t, err)
	assert.Equal(t, ResultMiss, res.Kind, "Без кандидатов любое действие — Miss")
}

func TestResolve_PlaceAirRejected(t *testing.T) {
	w := world.NewVoxelWorld()
	require.NoError(t, w.Insert(world.NewBlock(block.StoneBlockID, vec.Vec3{X: 0, Y: 0, Z: 0})))

	_, err := Resolve(w, downRay(t), w.Positions(), ActionPlace, block.AirBlockID)
	assert.ErrorIs(t, err, ErrAirPlacement, "Размещение воздуха — нарушение предусловия")
}

func TestResolve_SideFacePlacement(t *testing.T) {
	// Горизонтальный луч в боковую грань: блок встаёт в соседнюю по X ячейку
	w := world.NewVoxelWorld()
	target := vec.Vec3{X: 3, Y: 0, Z: 0}
	require.NoError(t, w.Insert(world.NewBlock(block.StoneBlockID, target)))

	ray, err := physics.NewRay(mgl64.Vec3{0, 0.5, 0.5}, mgl64.Vec3{1, 0, 0})
	require.NoError(t, err)

	res, err := Resolve(w, ray, w.Positions(), ActionPlace, block.DirtBlockID)
	require.NoError(t, err)
	assert.Equal(t, ResultPlaced, res.Kind)
	assert.Equal(t, vec.Vec3{X: 2, Y: 0, Z: 0}, res.Pos, "Блок встаёт со стороны входа луча")
}

func TestResolve_TieBreakDeterministic(t *testing.T) {
	// Два куба на строго равном расстоянии от луча, идущего по диагонали
	// между ними: выбирается лексикографически меньшая позиция,
	// независимо от порядка кандидатов
	w := world.NewVoxelWorld()
	a := vec.Vec3{X: 1, Y: 0, Z: 0}
	b := vec.Vec3{X: 0, Y: 0, Z: 1}
	require.NoError(t, w.Insert(world.NewBlock(block.StoneBlockID, a)))
	require.NoError(t, w.Insert(world.NewBlock(block.StoneBlockID, b)))

	// Диагональный луч в плоскости y=0.5, симметричный относительно обоих кубов
	ray, err := physics.NewRay(mgl64.Vec3{-0.5, 0.5, -0.5}, mgl64.Vec3{1, 0, 1})
	require.NoError(t, err)

	res1, err := Resolve(w, ray, []vec.Vec3{a, b}, ActionRemove, block.AirBlockID)
	require.NoError(t, err)

	// Восстанавливаем мир и повторяем с обратным порядком кандидатов
	require.NoError(t, w.Insert(world.NewBlock(block.StoneBlockID, res1.Pos)))
	res2, err := Resolve(w, ray, []vec.Vec3{b, a}, ActionRemove, block.AirBlockID)
	require.NoError(t, err)

	assert.Equal(t, res1.Pos, res2.Pos, "Исход ничьей не должен зависеть от порядка кандидатов")
	assert.Equal(t, b, res1.Pos, "Выбирается лексикографически меньшая позиция")
}

func TestResolve_StaleCandidate(t *testing.T) {
	// Кандидат, которого уже нет в мире (устаревший реестр) — Miss, не паника
	w := world.NewVoxelWorld()
	res, err := Resolve(w, downRay(t), []vec.Vec3{{X: 0, Y: 0, Z: 0}}, ActionRemove, block.AirBlockID)
	require.NoError(t, err)
	assert.Equal(t, ResultMiss, res.Kind, "Устаревший кандидат должен давать Miss")
}
