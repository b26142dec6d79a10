package router

import (
	"sync"
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"

	"github.com/Sergiotsk/TecFlow/internal/config"
	"github.com/Sergiotsk/TecFlow/internal/handler"
	"github.com/Sergiotsk/TecFlow/internal/infra"
	"github.com/Sergiotsk/TecFlow/internal/middleware"
	"github.com/Sergiotsk/TecFlow/internal/repository"
	"github.com/Sergiotsk/TecFlow/internal/service"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← Store
func New(cfg *config.Config, store repository.Store, aiCB *infra.CircuitBreaker) *gin.Engine {
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

	// ── Infrastructure ───────────────────────────────────────────────────────
	var ai *infra.AIClient
	if cfg.AIEnabled() {
		ai = infra.NewAIClient(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel, aiCB)
	}

	// ── Repositories ─────────────────────────────────────────────────────────
	catalogRepo := repository.NewCatalogRepository(store)
	settingsRepo := repository.NewSettingsRepository(store)
	documentRepo := repository.NewDocumentRepository(store)
	clientRepo := repository.NewClientRepository(store)

	// ── Services ─────────────────────────────────────────────────────────────
	// Catalog and settings share one mutex: supplier deletion rewrites the
	// catalog, so both write paths must serialize on the same lock.
	var catalogMu sync.Mutex
	catalogSvc := service.NewCatalogService(catalogRepo, settingsRepo, &catalogMu)
	settingsSvc := service.NewSettingsService(settingsRepo, catalogRepo, &catalogMu)
	documentSvc := service.NewDocumentService(documentRepo, settingsRepo, cfg.PDFStoragePath)
	clientSvc := service.NewClientService(clientRepo)
	backupSvc := service.NewBackupService(catalogRepo, settingsRepo, documentRepo, clientRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	var extractor infra.Extractor
	var polisher infra.Polisher
	if ai != nil {
		extractor = ai
		polisher = ai
	}
	catalogH := handler.NewCatalogHandler(catalogSvc, extractor)
	settingsH := handler.NewSettingsHandler(settingsSvc)
	documentsH := handler.NewDocumentsHandler(documentSvc)
	clientsH := handler.NewClientsHandler(clientSvc)
	aiH := handler.NewAIHandler(polisher)
	backupH := handler.NewBackupHandler(backupSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(store, aiCB))

	v1 := r.Group("/v1")
	{
		products := v1.Group("/productos")
		{
			products.GET("", catalogH.List)
			products.POST("", catalogH.Create)
			products.GET("/:id", catalogH.Get)
			products.PUT("/:id", catalogH.Update)
			products.DELETE("/:id", catalogH.Delete)
			products.PATCH("/:id/favorito", catalogH.ToggleFavorite)
			products.POST("/importar", catalogH.Import)
			products.POST("/item", catalogH.BuildLineItem)
		}

		v1.GET("/proveedores", catalogH.Suppliers)
		v1.POST("/proveedores/eliminar", settingsH.DeleteSupplier)

		settings := v1.Group("/configuracion")
		{
			settings.GET("", settingsH.Get)
			settings.PUT("", settingsH.Save)
			settings.GET("/margenes", settingsH.Margins)
			settings.PUT("/margenes/default", settingsH.UpdateDefaultMargin)
			settings.PUT("/margenes/proveedor", settingsH.UpdateSupplierMargin)
			settings.DELETE("/margenes/proveedor", settingsH.RemoveSupplierMargin)
			settings.POST("/margenes/congelar", settingsH.ToggleFreeze)
		}

		docs := v1.Group("/documentos")
		{
			docs.GET("", documentsH.List)
			docs.POST("/presupuestos", documentsH.SaveQuote)
			docs.DELETE("/presupuestos/:id", documentsH.DeleteQuote)
			docs.POST("/presupuestos/:id/pdf", documentsH.ExportQuotePDF)
			docs.POST("/informes", documentsH.SaveReport)
			docs.DELETE("/informes/:id", documentsH.DeleteReport)
			docs.POST("/informes/:id/pdf", documentsH.ExportReportPDF)
		}

		clients := v1.Group("/clientes")
		{
			clients.GET("", clientsH.List)
			clients.POST("", clientsH.Create)
			clients.PUT("/:id", clientsH.Update)
			clients.DELETE("/:id", clientsH.Delete)
			clients.POST("/importar", clientsH.ImportCSV)
		}

		v1.POST("/ia/redactar", aiH.PolishText)

		v1.GET("/respaldo", backupH.Export)
		v1.POST("/respaldo", backupH.Restore)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
