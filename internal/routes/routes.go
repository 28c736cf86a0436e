package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"workshop-system/internal/controllers"
	"workshop-system/internal/repositories"
	"workshop-system/internal/services"
	"workshop-system/pkg/config"
)

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, logger *zap.Logger, cfg *config.Config) {
	logger.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")

	txManager := repositories.NewTxManager(dbConn)

	// --- РЕПОЗИТОРИИ ---
	clientRepo := repositories.NewClientRepository(dbConn)
	catalogRepo := repositories.NewCatalogRepository(dbConn)
	modelRepo := repositories.NewModelRepository(dbConn)
	assetRepo := repositories.NewAssetRepository(dbConn)
	statusRepo := repositories.NewStatusLabelRepository(dbConn)
	sheetRepo := repositories.NewSheetRepository(dbConn)
	itemRepo := repositories.NewSheetItemRepository(dbConn)
	accessoryRepo := repositories.NewAccessoryRepository(dbConn)
	settingsRepo := repositories.NewSettingsRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- СЕРВИСЫ ---
	reconcileService := services.NewReconcileService(clientRepo, catalogRepo, modelRepo, assetRepo, statusRepo, logger)
	revisionResolver := services.NewRevisionResolver(sheetRepo)
	sheetService := services.NewSheetService(txManager, sheetRepo, itemRepo, assetRepo, reconcileService, revisionResolver, logger)
	clientService := services.NewClientService(clientRepo, logger)
	referenceService := services.NewReferenceService(catalogRepo, modelRepo)
	accessoryService := services.NewAccessoryService(accessoryRepo, cacheRepo, cfg.Cache.SuggestionTTL, logger)
	settingsService := services.NewSettingsService(settingsRepo)
	reportService := services.NewReportService(sheetRepo, logger)

	// --- КОНТРОЛЛЕРЫ ---
	sheetCtrl := controllers.NewSheetController(sheetService, logger)
	clientCtrl := controllers.NewClientController(clientService, logger)
	referenceCtrl := controllers.NewReferenceController(referenceService, logger)
	accessoryCtrl := controllers.NewAccessoryController(accessoryService, logger)
	settingsCtrl := controllers.NewSettingsController(settingsService, logger)
	reportCtrl := controllers.NewReportController(reportService, logger)

	// --- РОУТЕРЫ ---
	runSheetRouter(api, sheetCtrl)
	runClientRouter(api, clientCtrl)
	runReferenceRouter(api, referenceCtrl)
	runAccessoryRouter(api, accessoryCtrl)
	runSettingsRouter(api, settingsCtrl)
	runReportRouter(api, reportCtrl)

	logger.Info("InitRouter: Создание маршрутов завершено")
}
