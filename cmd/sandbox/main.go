package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/annel0/voxel-sandbox/internal/api"
	"github.com/annel0/voxel-sandbox/internal/config"
	"github.com/annel0/voxel-sandbox/internal/eventbus"
	"github.com/annel0/voxel-sandbox/internal/logging"
	"github.com/annel0/voxel-sandbox/internal/observability"
	"github.com/annel0/voxel-sandbox/internal/renderbridge"
	"github.com/annel0/voxel-sandbox/internal/sim"
	"github.com/annel0/voxel-sandbox/internal/world"
	_ "github.com/annel0/voxel-sandbox/internal/world/block/implementations"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML-конфигу (иначе ENV SANDBOX_CONFIG или дефолты)")
	flag.Parse()

	// Инициализируем систему логирования
	if err := logging.InitDefaultLogger("sandbox"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	logging.Info("🎮 Запуск воксельной песочницы...")

	// === КОНФИГУРАЦИЯ ===
	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Error("❌ Ошибка чтения конфигурации: %v", err)
		log.Fatalf("❌ Ошибка чтения конфигурации: %v", err)
	}
	if cfg == nil {
		cfg = &config.Config{}
	}

	restPort := cfg.Server.GetRESTPort()
	tickRate := cfg.Server.GetTickRate()
	logging.Info("📡 Конфигурация: REST=:%d, тик=%d/с, пресет=%s", restPort, tickRate, terrainPreset(cfg))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// === OBSERVABILITY ===
	if cfg.Observability.Enabled {
		serviceName := cfg.Observability.ServiceName
		if serviceName == "" {
			serviceName = "voxel-sandbox"
		}
		shutdownTelemetry, err := observability.InitTelemetry(ctx, serviceName)
		if err != nil {
			logging.Warn("⚠️ OpenTelemetry недоступен: %v", err)
		} else {
			defer func() {
				sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer scancel()
				_ = shutdownTelemetry(sctx)
			}()
		}
	}

	// === ШИНА СОБЫТИЙ ===
	var bus eventbus.EventBus
	var jsBus *eventbus.JetStreamBus
	if cfg.EventBus.URL != "" {
		retention := time.Duration(cfg.EventBus.Retention) * time.Hour
		if retention <= 0 {
			retention = 24 * time.Hour
		}
		jsBus, err = eventbus.NewJetStreamBus(cfg.EventBus.URL, cfg.EventBus.Stream, retention)
		if err != nil {
			logging.Error("❌ Ошибка подключения к NATS JetStream: %v", err)
			log.Fatalf("❌ Ошибка подключения к NATS JetStream: %v", err)
		}
		bus = jsBus
		logging.Info("✅ Шина событий: NATS JetStream (%s)", cfg.EventBus.URL)
	} else {
		buffer := cfg.EventBus.Buffer
		if buffer <= 0 {
			buffer = 1024
		}
		bus = eventbus.NewMemoryBus(buffer)
		logging.Info("✅ Шина событий: in-memory (буфер %d)", buffer)
	}

	busMetrics := eventbus.NewMetricsExporter(bus)
	busMetrics.Start()
	defer busMetrics.Stop()

	if err := eventbus.StartLoggingListener(bus); err != nil {
		logging.Warn("⚠️ Слушатель логирования событий не запущен: %v", err)
	}

	// === МИР И СИМУЛЯЦИЯ ===
	gen := buildGenerator(cfg)
	bounds := terrainBounds(cfg)

	w := world.NewVoxelWorld()
	gen.Populate(w, bounds)
	logging.Info("🌍 Ландшафт сгенерирован: %d блоков в [%d..%d]×[%d..%d]",
		w.Count(), bounds.XMin, bounds.XMax, bounds.ZMin, bounds.ZMax)

	// Реестр визуалов — локальный коллаборатор-рендерер поверх шины
	registry := renderbridge.NewMeshRegistry()
	if err := registry.Attach(bus); err != nil {
		logging.Error("❌ Ошибка подписки реестра визуалов: %v", err)
		log.Fatalf("❌ Ошибка подписки реестра визуалов: %v", err)
	}
	defer registry.Detach()

	bridge := renderbridge.NewBridge(bus, "sandbox_core")

	simulation := sim.New(sim.Options{
		World:       w,
		Generator:   gen,
		Bounds:      bounds,
		Sensitivity: cfg.Input.GetSensitivity(),
		Speed:       cfg.Movement.GetSpeed(),
		StartPos:    startPosition(gen),
		Bridge:      bridge,
		Candidates:  registry,
	})

	// Начальное состояние мира доводим до реестра визуалов
	if err := bridge.PublishRegenerated(ctx, w.Snapshot()); err != nil {
		logging.Warn("⚠️ Начальный снимок мира не опубликован: %v", err)
	}

	// === REST API ===
	restServer := api.NewRestServer(api.Config{
		Port:       fmt.Sprintf(":%d", restPort),
		Simulation: simulation,
	})
	go func() {
		if err := restServer.Start(); err != nil {
			logging.Error("❌ Ошибка REST API: %v", err)
		}
	}()

	// === ЦИКЛ СИМУЛЯЦИИ ===
	go simulation.Run(ctx, tickRate)

	logging.Info("✅ Все сервисы запущены")
	logging.Info("   🌐 REST API: http://localhost:%d", restPort)
	logging.Info("   ❤️  Health check: http://localhost:%d/health", restPort)
	logging.Info("   📈 Метрики: http://localhost:%d/metrics", restPort)
	logging.Info("💡 Примеры:")
	logging.Info("   curl http://localhost:%d/api/world/stats", restPort)
	logging.Info("   curl -X POST http://localhost:%d/api/world/regenerate", restPort)

	// Ждем сигнала для завершения
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logging.Info("📡 Получен сигнал %v, завершение работы...", sig)

	// === GRACEFUL SHUTDOWN ===
	cancel() // останавливает цикл симуляции

	sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer scancel()
	if err := restServer.Stop(sctx); err != nil {
		logging.Error("❌ Ошибка остановки REST API: %v", err)
	}

	if jsBus != nil {
		if err := jsBus.Close(); err != nil {
			logging.Error("❌ Ошибка закрытия JetStream: %v", err)
		}
	}

	logging.Info("👋 Песочница остановлена")
}

// buildGenerator собирает генератор ландшафта из конфигурации
func buildGenerator(cfg *config.Config) *world.TerrainGenerator {
	gen := world.NewTerrainGenerator(cfg.Terrain.Seed)
	if cfg.Terrain.Preset == string(world.PresetNoise) {
		gen.Preset = world.PresetNoise
	}
	if cfg.Terrain.BaseOffset > 0 {
		gen.BaseOffset = cfg.Terrain.BaseOffset
	}
	return gen
}

// terrainBounds возвращает границы генерации, по умолчанию 64×64
func terrainBounds(cfg *config.Config) world.Bounds {
	t := cfg.Terrain
	if t.XMin == 0 && t.XMax == 0 && t.ZMin == 0 && t.ZMax == 0 {
		return world.Bounds{XMin: -32, XMax: 31, ZMin: -32, ZMax: 31}
	}
	return world.Bounds{XMin: t.XMin, XMax: t.XMax, ZMin: t.ZMin, ZMax: t.ZMax}
}

// startPosition ставит наблюдателя над центром ландшафта
func startPosition(gen *world.TerrainGenerator) mgl64.Vec3 {
	h := gen.ColumnHeight(0, 0)
	return mgl64.Vec3{0.5, float64(h) + 3.5, 0.5}
}

func terrainPreset(cfg *config.Config) string {
	if cfg.Terrain.Preset == "" {
		return string(world.PresetWave)
	}
	return cfg.Terrain.Preset
}
