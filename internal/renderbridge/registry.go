package renderbridge

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/annel0/voxel-sandbox/internal/eventbus"
	"github.com/annel0/voxel-sandbox/internal/logging"
	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world/block"
)

// MeshRegistry ведёт реестр визуалов рендерера, ключованный позицией ячейки.
// Реестр питается событиями шины и служит множеством кандидатов для
// пересечения с лучом редактора: ядро не сканирует список мешей, а рендерер
// не заглядывает в хранилище мира.
//
// Реестр обновляется из горутины диспетчера шины, поэтому защищён мьютексом.
type MeshRegistry struct {
	mu      sync.RWMutex
	visuals map[vec.Vec3]block.BlockID
	sub     eventbus.Subscription
}

// NewMeshRegistry создаёт пустой реестр
func NewMeshRegistry() *MeshRegistry {
	return &MeshRegistry{
		visuals: make(map[vec.Vec3]block.BlockID),
	}
}

// Attach подписывает реестр на события мира
func (r *MeshRegistry) Attach(bus eventbus.EventBus) error {
	sub, err := bus.Subscribe(context.Background(), eventbus.Filter{
		Types: []string{EventBlockPlaced, EventBlockRemoved, EventWorldRegenerated},
	}, r.handle)
	if err != nil {
		return err
	}
	r.sub = sub
	return nil
}

// Detach отписывает реестр от шины
func (r *MeshRegistry) Detach() {
	if r.sub != nil {
		r.sub.Unsubscribe()
	}
}

func (r *MeshRegistry) handle(ctx context.Context, ev *eventbus.Envelope) {
	switch ev.EventType {
	case EventBlockPlaced:
		var p BlockPayload
		if err := json.Unmarshal(ev.Payload, &p); err != nil {
			logging.Error("MeshRegistry: повреждённый payload block_placed: %v", err)
			return
		}
		r.mu.Lock()
		r.visuals[p.Pos] = p.ID
		r.mu.Unlock()

	case EventBlockRemoved:
		var p BlockPayload
		if err := json.Unmarshal(ev.Payload, &p); err != nil {
			logging.Error("MeshRegistry: повреждённый payload block_removed: %v", err)
			return
		}
		r.mu.Lock()
		delete(r.visuals, p.Pos)
		r.mu.Unlock()

	case EventWorldRegenerated:
		var p RegeneratePayload
		if err := json.Unmarshal(ev.Payload, &p); err != nil {
			logging.Error("MeshRegistry: повреждённый payload world_regenerated: %v", err)
			return
		}
		visuals := make(map[vec.Vec3]block.BlockID, len(p.Blocks))
		for _, b := range p.Blocks {
			visuals[b.Pos] = b.ID
		}
		r.mu.Lock()
		r.visuals = visuals
		r.mu.Unlock()
	}
}

// Candidates возвращает позиции всех визуалов — множество кандидатов
// для пересечения с лучом редактирования
func (r *MeshRegistry) Candidates() []vec.Vec3 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	positions := make([]vec.Vec3, 0, len(r.visuals))
	for pos := range r.visuals {
		positions = append(positions, pos)
	}
	return positions
}

// VisualAt возвращает тип визуала в ячейке
func (r *MeshRegistry) VisualAt(pos vec.Vec3) (block.BlockID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.visuals[pos]
	return id, ok
}

// Count возвращает число визуалов в реестре
func (r *MeshRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.visuals)
}
