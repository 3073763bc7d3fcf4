// Package sim содержит драйвер тика — единственного владельца состояния
// симуляции. Весь мир, поза и позиция наблюдателя живут в явном контексте
// Simulation и передаются компонентам по ссылке: глобальных ячеек нет.
package sim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/annel0/voxel-sandbox/internal/editor"
	"github.com/annel0/voxel-sandbox/internal/input"
	"github.com/annel0/voxel-sandbox/internal/logging"
	"github.com/annel0/voxel-sandbox/internal/physics"
	"github.com/annel0/voxel-sandbox/internal/player"
	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world"
	"github.com/annel0/voxel-sandbox/internal/world/block"
)

// CandidateSource поставляет занятые ячейки, достижимые лучом редактора.
// В рабочей сборке это реестр визуалов рендерера; при его отсутствии
// симуляция берёт все занятые ячейки прямо из мира.
type CandidateSource interface {
	Candidates() []vec.Vec3
}

// Publisher уведомляет рендерер о мутациях мира
type Publisher interface {
	PublishPlaced(ctx context.Context, pos vec.Vec3, id block.BlockID) error
	PublishRemoved(ctx context.Context, pos vec.Vec3) error
	PublishRegenerated(ctx context.Context, blocks []world.Block) error
}

// Options собирает зависимости симуляции
type Options struct {
	World       *world.VoxelWorld
	Generator   *world.TerrainGenerator
	Bounds      world.Bounds
	Sensitivity float64
	Speed       float64
	StartPos    mgl64.Vec3
	Bridge      Publisher       // Может быть nil: события не публикуются
	Candidates  CandidateSource // Может быть nil: кандидаты берутся из World
}

// WorldStats — снимок статистики мира для внешних потребителей
type WorldStats struct {
	Tick       uint64
	Blocks     int
	ByType     map[block.BlockID]int
	Pos        mgl64.Vec3
	Pose       player.Pose
	ArmedBlock block.BlockID
}

// Simulation — явный контекст симуляции, владелец всего состояния ядра.
//
// Тик однопоточен: ориентация, перемещение и не более одной правки
// выполняются последовательно, правка всегда видит позу после перемещения.
// Мьютекс существует только ради внешних читателей (REST API): это та самая
// дисциплина единственного эксклюзивного доступа, без которой инварианты
// хранилища не переживают многопоточность.
type Simulation struct {
	mu sync.Mutex

	world      *world.VoxelWorld
	gen        *world.TerrainGenerator
	bounds     world.Bounds
	orient     *player.Orientation
	collector  *input.Collector
	bridge     Publisher
	candidates CandidateSource

	pos   mgl64.Vec3
	speed float64
	armed block.BlockID

	tick        uint64
	regenQueued bool
}

// New создаёт симуляцию из собранных зависимостей
func New(opts Options) *Simulation {
	w := opts.World
	if w == nil {
		w = world.NewVoxelWorld()
	}
	return &Simulation{
		world:      w,
		gen:        opts.Generator,
		bounds:     opts.Bounds,
		orient:     player.NewOrientation(opts.Sensitivity),
		collector:  input.NewCollector(),
		bridge:     opts.Bridge,
		candidates: opts.Candidates,
		pos:        opts.StartPos,
		speed:      opts.Speed,
		armed:      block.GrassBlockID, // Изначально вооружена трава
	}
}

// Input возвращает накопитель ввода — точку входа для коллаборатора окна
func (s *Simulation) Input() *input.Collector {
	return s.collector
}

// Tick выполняет один логический тик.
//
// Порядок фиксирован: сначала ориентация и выбор блока, затем перемещение,
// затем не более одной правки — луч правки строится по позе и позиции
// после перемещения. Потеря захвата указателя останавливает взгляд и
// правки синхронно; накопитель ввода уже отбросил ввод, пришедший без
// захвата.
func (s *Simulation) Tick(ctx context.Context, dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.regenQueued {
		s.regenQueued = false
		s.regenerate(ctx)
	}

	snap := s.collector.Sample()

	// Взгляд обновляется только при активном захвате
	if snap.Captured {
		s.orient.ApplyDelta(snap.PointerDX, snap.PointerDY)
	}

	// Выбор вооружённого блока: независимые проверки в порядке нажатий,
	// последняя клавиша в батче побеждает
	for _, k := range snap.Selections {
		switch k {
		case input.KeySelectGrass:
			s.armed = block.GrassBlockID
		case input.KeySelectDirt:
			s.armed = block.DirtBlockID
		case input.KeySelectStone:
			s.armed = block.StoneBlockID
		case input.KeySelectWood:
			s.armed = block.WoodBlockID
		}
	}

	basis := s.orient.Basis()
	s.pos = player.Advance(s.pos, basis, snap, s.speed, dt)

	if snap.Captured && snap.Click != input.ClickNone {
		if err := s.applyEdit(ctx, snap.Click, basis); err != nil {
			logging.Error("Ошибка правки мира: %v", err)
		}
	}

	s.tick++
	ticksTotal.Inc()
	worldBlocks.Set(float64(s.world.Count()))
}

// applyEdit выполняет одну правку по лучу из камеры
func (s *Simulation) applyEdit(ctx context.Context, click input.ClickKind, basis player.Basis) error {
	ray, err := physics.NewRay(s.pos, basis.Forward)
	if err != nil {
		return fmt.Errorf("построение луча правки: %w", err)
	}

	action := editor.ActionRemove
	if click == input.ClickSecondary {
		action = editor.ActionPlace
	}

	candidates := s.candidatePositions()

	res, err := editor.Resolve(s.world, ray, candidates, action, s.armed)
	if err != nil {
		return err
	}

	editsTotal.WithLabelValues(res.Kind.String()).Inc()

	switch res.Kind {
	case editor.ResultRemoved:
		logging.Debug("Блок удалён в (%d,%d,%d)", res.Pos.X, res.Pos.Y, res.Pos.Z)
		if s.bridge != nil {
			return s.bridge.PublishRemoved(ctx, res.Pos)
		}
	case editor.ResultPlaced:
		logging.Debug("Блок %s размещён в (%d,%d,%d)", block.Name(res.ID), res.Pos.X, res.Pos.Y, res.Pos.Z)
		if s.bridge != nil {
			return s.bridge.PublishPlaced(ctx, res.Pos, res.ID)
		}
	case editor.ResultBlocked:
		logging.Trace("Размещение заблокировано: ячейка (%d,%d,%d) занята", res.Pos.X, res.Pos.Y, res.Pos.Z)
	case editor.ResultMiss:
		logging.Trace("Правка мимо: луч не задел кандидатов")
	}
	return nil
}

// candidatePositions возвращает множество кандидатов для пересечения
func (s *Simulation) candidatePositions() []vec.Vec3 {
	if s.candidates != nil {
		return s.candidates.Candidates()
	}
	return s.world.Positions()
}

// RequestRegenerate ставит полную регенерацию ландшафта в очередь.
// Сама регенерация выполняется в начале следующего тика, в потоке
// драйвера — внешние вызовы не трогают мир напрямую.
func (s *Simulation) RequestRegenerate() {
	s.mu.Lock()
	s.regenQueued = true
	s.mu.Unlock()
}

// regenerate перестраивает мир с нуля. Вызывается только под мьютексом.
func (s *Simulation) regenerate(ctx context.Context) {
	if s.gen == nil {
		return
	}
	s.world.Clear()
	s.gen.Populate(s.world, s.bounds)
	logging.Info("🌍 Ландшафт перегенерирован: %d блоков", s.world.Count())

	if s.bridge != nil {
		if err := s.bridge.PublishRegenerated(ctx, s.world.Snapshot()); err != nil {
			logging.Error("Ошибка публикации регенерации: %v", err)
		}
	}
}

// Stats возвращает снимок статистики для REST API
func (s *Simulation) Stats() WorldStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return WorldStats{
		Tick:       s.tick,
		Blocks:     s.world.Count(),
		ByType:     s.world.CountByType(),
		Pos:        s.pos,
		Pose:       s.orient.Pose(),
		ArmedBlock: s.armed,
	}
}

// BlockAt возвращает блок в ячейке (для REST API)
func (s *Simulation) BlockAt(pos vec.Vec3) (world.Block, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.Get(pos)
}

// Position возвращает текущую позицию наблюдателя
func (s *Simulation) Position() mgl64.Vec3 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

// Pose возвращает текущую позу наблюдателя
func (s *Simulation) Pose() player.Pose {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orient.Pose()
}

// ArmedBlock возвращает вооружённый тип блока
func (s *Simulation) ArmedBlock() block.BlockID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.armed
}

// Run крутит цикл тиков с фиксированной частотой до отмены контекста
func (s *Simulation) Run(ctx context.Context, tickRate int) {
	dt := 1.0 / float64(tickRate)
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	logging.Info("▶ Цикл симуляции запущен: %d тиков/с", tickRate)
	for {
		select {
		case <-ctx.Done():
			logging.Info("⏹ Цикл симуляции остановлен на тике %d", s.tick)
			return
		case <-ticker.C:
			s.Tick(ctx, dt)
		}
	}
}
