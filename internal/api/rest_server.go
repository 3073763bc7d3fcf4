// Package api предоставляет отладочный REST API песочницы: статистика
// мира и наблюдателя, чтение ячеек, запрос регенерации ландшафта.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/annel0/voxel-sandbox/internal/middleware"
	"github.com/annel0/voxel-sandbox/internal/sim"
	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world/block"
)

// RestServer представляет REST API сервер песочницы
type RestServer struct {
	router  *gin.Engine
	srv     *http.Server
	sim     *sim.Simulation
	port    string
	metrics *ServerMetrics
}

// Config содержит конфигурацию REST сервера
type Config struct {
	Port       string          // порт для запуска сервера (":8088")
	Simulation *sim.Simulation // симуляция, которую сервер обслуживает
}

// NewRestServer создает новый REST API сервер
func NewRestServer(config Config) *RestServer {
	if config.Port == "" {
		config.Port = ":8088"
	}

	gin.SetMode(gin.ReleaseMode)

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	// === Observability middleware ===
	loggerMw := middleware.NewRequestLogger()
	router.Use(loggerMw.Handler())

	router.Use(otelgin.Middleware("sandbox_api"))

	promMw := middleware.NewPrometheusMiddleware("sandbox_api")
	router.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(router)

	server := &RestServer{
		router:  router,
		sim:     config.Simulation,
		port:    config.Port,
		metrics: NewServerMetrics(),
	}

	server.setupRoutes()

	return server
}

// setupRoutes настраивает маршруты REST API
func (rs *RestServer) setupRoutes() {
	api := rs.router.Group("/api")
	{
		worldGroup := api.Group("/world")
		{
			worldGroup.GET("/stats", rs.handleWorldStats)
			worldGroup.GET("/block/:x/:y/:z", rs.handleGetBlock)
			worldGroup.POST("/regenerate", rs.handleRegenerate)
		}
		api.GET("/observer", rs.handleObserver)
	}

	// Health check
	rs.router.GET("/health", rs.handleHealth)
}

// GenericResponse представляет общий ответ API
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// handleWorldStats возвращает статистику мира и процесса
func (rs *RestServer) handleWorldStats(c *gin.Context) {
	st := rs.sim.Stats()

	byType := make(map[string]int, len(st.ByType))
	for id, n := range st.ByType {
		byType[block.Name(id)] = n
	}

	memoryMB, _ := rs.metrics.GetMemoryUsage()
	cpuPercent, _ := rs.metrics.GetCPUUsage()

	stats := map[string]interface{}{
		"world": map[string]interface{}{
			"tick":           st.Tick,
			"blocks_total":   st.Blocks,
			"blocks_by_type": byType,
		},
		"server": map[string]interface{}{
			"uptime":      rs.metrics.GetUptime(),
			"memory_mb":   fmt.Sprintf("%.2f", memoryMB),
			"cpu_percent": fmt.Sprintf("%.2f", cpuPercent),
			"server_time": time.Now().Unix(),
		},
		"memory_details": rs.metrics.GetDetailedMemoryStats(),
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Статистика получена",
		Data:    stats,
	})
}

// handleGetBlock возвращает блок в ячейке; пустая ячейка — воздух
func (rs *RestServer) handleGetBlock(c *gin.Context) {
	pos, err := parseCell(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Координаты ячейки должны быть целыми числами",
		})
		return
	}

	b, ok := rs.sim.BlockAt(pos)
	if !ok {
		c.JSON(http.StatusOK, GenericResponse{
			Success: true,
			Message: "Ячейка пуста",
			Data: map[string]interface{}{
				"pos":   pos,
				"block": block.Name(block.AirBlockID),
			},
		})
		return
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Блок найден",
		Data: map[string]interface{}{
			"pos":      b.Pos,
			"block":    block.Name(b.ID),
			"block_id": b.ID,
		},
	})
}

// handleRegenerate ставит регенерацию ландшафта в очередь симуляции
func (rs *RestServer) handleRegenerate(c *gin.Context) {
	rs.sim.RequestRegenerate()
	c.JSON(http.StatusAccepted, GenericResponse{
		Success: true,
		Message: "Регенерация запланирована на следующий тик",
	})
}

// handleObserver возвращает позицию, позу и вооружённый блок наблюдателя
func (rs *RestServer) handleObserver(c *gin.Context) {
	st := rs.sim.Stats()
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Состояние наблюдателя",
		Data: map[string]interface{}{
			"pos":   map[string]float64{"x": st.Pos.X(), "y": st.Pos.Y(), "z": st.Pos.Z()},
			"yaw":   st.Pose.Yaw,
			"pitch": st.Pose.Pitch,
			"armed": block.Name(st.ArmedBlock),
		},
	})
}

// handleHealth проверка состояния сервера
func (rs *RestServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

func parseCell(c *gin.Context) (vec.Vec3, error) {
	x, err := strconv.Atoi(c.Param("x"))
	if err != nil {
		return vec.Vec3{}, err
	}
	y, err := strconv.Atoi(c.Param("y"))
	if err != nil {
		return vec.Vec3{}, err
	}
	z, err := strconv.Atoi(c.Param("z"))
	if err != nil {
		return vec.Vec3{}, err
	}
	return vec.Vec3{X: x, Y: y, Z: z}, nil
}

// Start запускает REST сервер. Блокирует до остановки.
func (rs *RestServer) Start() error {
	rs.srv = &http.Server{
		Addr:    rs.port,
		Handler: rs.router,
	}
	err := rs.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop останавливает REST сервер, дожидаясь активных запросов
func (rs *RestServer) Stop(ctx context.Context) error {
	if rs.srv == nil {
		return nil
	}
	return rs.srv.Shutdown(ctx)
}
