package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/armbdevelop/reportBot/internal/config"
	"github.com/armbdevelop/reportBot/internal/handler"
	"github.com/armbdevelop/reportBot/internal/infra"
	"github.com/armbdevelop/reportBot/internal/middleware"
	"github.com/armbdevelop/reportBot/internal/repository"
	"github.com/armbdevelop/reportBot/internal/service"
	"github.com/armbdevelop/reportBot/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, files *infra.FileStore) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	shiftRepo := repository.NewShiftReportRepository(db)
	writeoffRepo := repository.NewWriteoffTransferRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	shiftSvc := service.NewShiftReportService(shiftRepo, files, dispatcher)
	writeoffSvc := service.NewWriteoffTransferService(writeoffRepo, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	shiftH := handler.NewShiftReportHandler(shiftSvc)
	writeoffH := handler.NewWriteoffTransferHandler(writeoffSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	// Uploaded photos are served statically; responses reference /uploads URLs.
	r.Static("/uploads", files.BaseDir())

	api := r.Group("/api")
	{
		shift := api.Group("/shift-reports")
		{
			shift.POST("/create", shiftH.Create)
			shift.GET("/list", shiftH.List)
			shift.GET("/:id", shiftH.Get)
			shift.DELETE("/:id", shiftH.Delete)
		}

		acts := api.Group("/writeoff-transfer")
		{
			acts.POST("/create", writeoffH.Create)
			acts.GET("/list", writeoffH.List)
			acts.GET("/:id", writeoffH.Get)
			acts.DELETE("/:id", writeoffH.Delete)
		}
	}

	return r
}
