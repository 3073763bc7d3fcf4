// Package editor реализует протокол редактирования воксельного мира:
// по лучу наблюдателя находится ближайший занятый куб, после чего блок
// либо удаляется, либо новый блок добавляется в соседнюю по нормали ячейку.
package editor

import (
	"errors"
	"fmt"

	"github.com/annel0/voxel-sandbox/internal/physics"
	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world"
	"github.com/annel0/voxel-sandbox/internal/world/block"
)

// ErrAirPlacement возвращается при попытке разместить воздух
var ErrAirPlacement = errors.New("воздух нельзя разместить как блок")

// Action определяет тип редактирования
type Action uint8

const (
	ActionRemove Action = iota // Первичный клик — разрушить блок
	ActionPlace                // Вторичный клик — разместить блок
)

// ResultKind классифицирует исход редактирования
type ResultKind uint8

const (
	ResultMiss    ResultKind = iota // Луч не задел ни одного кандидата
	ResultRemoved                   // Блок удалён
	ResultPlaced                    // Блок размещён
	ResultBlocked                   // Целевая ячейка занята — no-op
)

// String возвращает строковое представление исхода
func (k ResultKind) String() string {
	switch k {
	case ResultMiss:
		return "miss"
	case ResultRemoved:
		return "removed"
	case ResultPlaced:
		return "placed"
	case ResultBlocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// Result описывает исход одной попытки редактирования.
// Худший исход любой попытки — no-op: мир остаётся консистентным.
type Result struct {
	Kind ResultKind
	Pos  vec.Vec3      // Затронутая ячейка (для Removed и Placed)
	ID   block.BlockID // Тип размещённого блока (только для Placed)
}

// Resolve выполняет одну попытку редактирования.
//
// Кандидаты — занятые ячейки, достижимые лучом; на практике их поставляет
// реестр визуалов рендерера, концептуально это все занятые ячейки мира.
// Из всех пересечённых кубов выбирается ближайший по ходу луча; при точном
// равенстве расстояний выбирается лексикографически меньшая позиция, чтобы
// исход был стабильным, а не зависел от порядка кандидатов.
func Resolve(w *world.VoxelWorld, ray physics.Ray, candidates []vec.Vec3, action Action, placeType block.BlockID) (Result, error) {
	if action == ActionPlace && placeType == block.AirBlockID {
		return Result{}, ErrAirPlacement
	}

	hitPos, hit, found := nearestHit(ray, candidates)
	if !found {
		return Result{Kind: ResultMiss}, nil
	}

	switch action {
	case ActionRemove:
		if _, ok := w.Remove(hitPos); !ok {
			// Кандидат из устаревшего реестра: ячейка уже пуста — no-op
			return Result{Kind: ResultMiss}, nil
		}
		return Result{Kind: ResultRemoved, Pos: hitPos}, nil

	case ActionPlace:
		// Целевая ячейка — сосед по внешней нормали грани входа.
		// Целочисленное сложение гарантирует попадание точно в соседнюю
		// ячейку: округление от точки пересечения дало бы ячейку, в которой
		// луч ещё находится, и перекрывающееся размещение.
		target := hitPos.Add(hit.Normal)
		if w.Occupied(target) {
			return Result{Kind: ResultBlocked, Pos: target}, nil
		}
		if err := w.Insert(world.NewBlock(placeType, target)); err != nil {
			// Защитная проверка хранилища: трактуем как Blocked, не как сбой
			if errors.Is(err, world.ErrCellOccupied) {
				return Result{Kind: ResultBlocked, Pos: target}, nil
			}
			return Result{}, fmt.Errorf("размещение блока: %w", err)
		}
		return Result{Kind: ResultPlaced, Pos: target, ID: placeType}, nil

	default:
		return Result{}, fmt.Errorf("неизвестное действие редактирования: %d", action)
	}
}

// nearestHit возвращает ближайшее по ходу луча пересечение с кандидатами
func nearestHit(ray physics.Ray, candidates []vec.Vec3) (vec.Vec3, physics.RayHit, bool) {
	var (
		bestPos vec.Vec3
		bestHit physics.RayHit
		found   bool
	)

	for _, pos := range candidates {
		hit, ok := physics.BlockAABB(pos).IntersectRay(ray)
		if !ok {
			continue
		}
		if !found || hit.T < bestHit.T || (hit.T == bestHit.T && pos.Less(bestPos)) {
			bestPos = pos
			bestHit = hit
			found = true
		}
	}

	return bestPos, bestHit, found
}
