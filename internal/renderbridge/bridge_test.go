package renderbridge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxel-sandbox/internal/eventbus"
	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world"
	"github.com/annel0/voxel-sandbox/internal/world/block"

	// Импортируем реализации блоков для регистрации в init()
	_ "github.com/annel0/voxel-sandbox/internal/world/block/implementations"
)

func TestMeshRegistry_FollowsEdits(t *testing.T) {
	bus := eventbus.NewMemoryBus(64)
	registry := NewMeshRegistry()
	require.NoError(t, registry.Attach(bus))
	defer registry.Detach()

	bridge := NewBridge(bus, "test")
	ctx := context.Background()

	pos := vec.Vec3{X: 1, Y: 2, Z: 3}
	require.NoError(t, bridge.PublishPlaced(ctx, pos, block.WoodBlockID))

	// Шина доставляет события асинхронно
	assert.Eventually(t, func() bool {
		id, ok := registry.VisualAt(pos)
		return ok && id == block.WoodBlockID
	}, time.Second, 5*time.Millisecond, "Реестр должен увидеть размещённый блок")

	require.NoError(t, bridge.PublishRemoved(ctx, pos))
	assert.Eventually(t, func() bool {
		return registry.Count() == 0
	}, time.Second, 5*time.Millisecond, "Реестр должен забыть удалённый блок")
}

func TestMeshRegistry_Regeneration(t *testing.T) {
	bus := eventbus.NewMemoryBus(64)
	registry := NewMeshRegistry()
	require.NoError(t, registry.Attach(bus))
	defer registry.Detach()

	bridge := NewBridge(bus, "test")
	ctx := context.Background()

	// Старый визуал, который регенерация должна вытеснить
	require.NoError(t, bridge.PublishPlaced(ctx, vec.Vec3{X: 99, Y: 99, Z: 99}, block.StoneBlockID))
	assert.Eventually(t, func() bool { return registry.Count() == 1 }, time.Second, 5*time.Millisecond)

	w := world.NewTerrainGenerator(3).Generate(world.Bounds{XMin: 0, XMax: 2, ZMin: 0, ZMax: 2})
	require.NoError(t, bridge.PublishRegenerated(ctx, w.Snapshot()))

	assert.Eventually(t, func() bool {
		return registry.Count() == w.Count()
	}, time.Second, 5*time.Millisecond, "Регенерация перестраивает реестр с нуля")

	_, ok := registry.VisualAt(vec.Vec3{X: 99, Y: 99, Z: 99})
	assert.False(t, ok, "Старый визуал должен исчезнуть после регенерации")

	// Кандидаты реестра совпадают с занятыми ячейками мира
	for _, pos := range registry.Candidates() {
		assert.True(t, w.Occupied(pos), "Кандидат %v отсутствует в мире", pos)
	}
}
