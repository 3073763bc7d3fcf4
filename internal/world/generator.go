package world

import (
	"math"

	"github.com/annel0/voxel-sandbox/internal/util"
	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world/block"
)

// TerrainPreset выбирает формулу высоты колонны
type TerrainPreset string

const (
	// PresetWave — волновой рельеф из произведения синуса и косинуса
	PresetWave TerrainPreset = "wave"
	// PresetNoise — холмистый рельеф на шуме Перлина
	PresetNoise TerrainPreset = "noise"
)

// Константы генерации
const (
	// WaveFrequency — частота волнового рельефа по обеим осям
	WaveFrequency = 0.1
	// WaveAmplitude — амплитуда волнового рельефа в блоках
	WaveAmplitude = 3.0
	// DefaultBaseOffset — базовая высота колонны.
	// Вариант со смещением 2 опускает рельеф к порогу камня; он остаётся
	// доступен через конфигурацию, значение по умолчанию — 5.
	DefaultBaseOffset = 5
	// GrassDirtThreshold — минимальная высота колонны, при которой верх
	// покрывается травой и землёй; колонны не выше порога состоят из камня
	GrassDirtThreshold = 1
	// DirtDepth — толщина слоя земли под травой
	DirtDepth = 2
)

// Bounds задаёт прямоугольную область генерации по осям X и Z (включительно)
type Bounds struct {
	XMin, XMax int
	ZMin, ZMax int
}

// TerrainGenerator порождает ландшафт воксельного мира.
// Генерация детерминирована: одни и те же параметры и границы всегда
// дают структурно идентичный мир, что позволяет восстанавливать мир
// регенерацией вместо сохранения.
type TerrainGenerator struct {
	Preset     TerrainPreset // Формула высоты
	BaseOffset int           // Базовая высота колонны
	Seed       int64         // Сид для шумового пресета
	NoiseScale float64       // Масштаб шума (только для PresetNoise)
	NoiseAmp   float64       // Амплитуда шума в блоках (только для PresetNoise)

	noise *util.NoiseSource
}

// NewTerrainGenerator создаёт генератор волнового рельефа с настройками по умолчанию
func NewTerrainGenerator(seed int64) *TerrainGenerator {
	return &TerrainGenerator{
		Preset:     PresetWave,
		BaseOffset: DefaultBaseOffset,
		Seed:       seed,
		NoiseScale: 0.05, // Настройка сглаженности ландшафта
		NoiseAmp:   6.0,  // Перепад высот для шумового пресета
		noise:      util.NewNoiseSource(seed),
	}
}

// Generate создаёт новый мир и заполняет его ландшафтом в указанных границах
func (tg *TerrainGenerator) Generate(b Bounds) *VoxelWorld {
	w := NewVoxelWorld()
	tg.Populate(w, b)
	return w
}

// Populate заполняет мир колоннами ландшафта.
// Мир должен быть пуст в указанных границах: генератор вставляет блоки
// безусловно и полагается на отсутствие прежних занятых ячеек.
func (tg *TerrainGenerator) Populate(w *VoxelWorld, b Bounds) {
	for x := b.XMin; x <= b.XMax; x++ {
		for z := b.ZMin; z <= b.ZMax; z++ {
			tg.generateColumn(w, x, z)
		}
	}
}

// ColumnHeight возвращает высоту колонны в указанной точке
func (tg *TerrainGenerator) ColumnHeight(x, z int) int {
	switch tg.Preset {
	case PresetNoise:
		n := tg.noise.Noise2D(float64(x)*tg.NoiseScale, float64(z)*tg.NoiseScale)
		return int(math.Floor(n*tg.NoiseAmp)) + tg.BaseOffset
	default:
		wave := math.Sin(float64(x)*WaveFrequency) * math.Cos(float64(z)*WaveFrequency) * WaveAmplitude
		return int(math.Floor(wave)) + tg.BaseOffset
	}
}

// generateColumn заполняет одну колонну от y=0 до вершины включительно
func (tg *TerrainGenerator) generateColumn(w *VoxelWorld, x, z int) {
	height := tg.ColumnHeight(x, z)

	for y := 0; y <= height; y++ {
		id := columnBlock(y, height)
		// Границы гарантируют пустые ячейки, ошибка здесь невозможна
		_ = w.Insert(NewBlock(id, vec.Vec3{X: x, Y: y, Z: z}))
	}
}

// columnBlock выбирает тип блока для уровня y в колонне высоты height.
// Колонны высотой не выше GrassDirtThreshold целиком состоят из камня:
// трава и земля не появляются на колоннах у нулевого уровня.
func columnBlock(y, height int) block.BlockID {
	if height <= GrassDirtThreshold {
		return block.StoneBlockID
	}
	switch {
	case y == height:
		return block.GrassBlockID
	case y >= height-DirtDepth:
		return block.DirtBlockID
	default:
		return block.StoneBlockID
	}
}
