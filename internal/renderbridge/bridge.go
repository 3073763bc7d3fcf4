// Package renderbridge — граница между ядром симуляции и рендерером.
// Мутации мира публикуются как события шины: рендерер создаёт и
// уничтожает визуалы кубов по этим событиям, не заглядывая в хранилище.
package renderbridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/annel0/voxel-sandbox/internal/eventbus"
	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world"
	"github.com/annel0/voxel-sandbox/internal/world/block"
)

// Типы событий мира на шине
const (
	EventBlockPlaced      = "block_placed"
	EventBlockRemoved     = "block_removed"
	EventWorldRegenerated = "world_regenerated"
)

// Приоритеты событий: регенерация важнее единичных правок
const (
	priorityEdit       = 5
	priorityRegenerate = 7
)

// BlockPayload — полезная нагрузка событий единичных правок
type BlockPayload struct {
	Pos vec.Vec3      `json:"pos"`
	ID  block.BlockID `json:"id,omitempty"` // Только для block_placed
}

// RegeneratePayload — полная последовательность блоков нового мира
type RegeneratePayload struct {
	Blocks []BlockPayload `json:"blocks"`
}

// Bridge публикует мутации мира в шину событий
type Bridge struct {
	bus    eventbus.EventBus
	source string
}

// NewBridge создаёт мост с указанным именем источника
func NewBridge(bus eventbus.EventBus, source string) *Bridge {
	return &Bridge{bus: bus, source: source}
}

// PublishPlaced сообщает рендереру о размещённом блоке
func (b *Bridge) PublishPlaced(ctx context.Context, pos vec.Vec3, id block.BlockID) error {
	payload, err := json.Marshal(BlockPayload{Pos: pos, ID: id})
	if err != nil {
		return fmt.Errorf("сериализация block_placed: %w", err)
	}
	return b.bus.Publish(ctx, eventbus.NewEnvelope(EventBlockPlaced, b.source, priorityEdit, payload))
}

// PublishRemoved сообщает рендереру об удалённом блоке
func (b *Bridge) PublishRemoved(ctx context.Context, pos vec.Vec3) error {
	payload, err := json.Marshal(BlockPayload{Pos: pos})
	if err != nil {
		return fmt.Errorf("сериализация block_removed: %w", err)
	}
	return b.bus.Publish(ctx, eventbus.NewEnvelope(EventBlockRemoved, b.source, priorityEdit, payload))
}

// PublishRegenerated передаёт рендереру полную последовательность блоков
// для перестройки сцены с нуля
func (b *Bridge) PublishRegenerated(ctx context.Context, blocks []world.Block) error {
	payload := RegeneratePayload{Blocks: make([]BlockPayload, 0, len(blocks))}
	for _, blk := range blocks {
		payload.Blocks = append(payload.Blocks, BlockPayload{Pos: blk.Pos, ID: blk.ID})
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("сериализация world_regenerated: %w", err)
	}
	return b.bus.Publish(ctx, eventbus.NewEnvelope(EventWorldRegenerated, b.source, priorityRegenerate, data))
}
