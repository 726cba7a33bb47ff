package app

import (
	"billed/internal/config"
	"billed/internal/db"
	"billed/internal/handlers"
	"billed/internal/logger"
	"billed/internal/middleware"
	"billed/internal/repository"
	"billed/internal/routes"
	"billed/internal/services"
	"billed/internal/storage"
	"context"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func InitApp(cfg *config.Config) (*mux.Router, error) {
	conn, err := db.NewPostgresConnection(cfg)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("Подключение к БД установлено", zap.String("dsn", cfg.GetDSNSafe()))

	if err := db.Migrate(context.Background(), conn); err != nil {
		return nil, err
	}

	receipts, err := storage.NewReceiptStorage(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	// Репозитории
	userRepo := repository.NewUserRepository(conn)
	billRepo := repository.NewBillRepository(conn)

	// Сервисы
	authService := services.NewAuthService(userRepo)
	billService := services.NewBillService(billRepo, receipts, cfg.PublicURL)

	// Хендлеры
	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecret, cfg.AccessTTL())
	billHandler := handlers.NewBillHandler(billService, cfg.MaxUploadBytes())

	_ = userRepo.PurgeExpiredTokens(context.Background())

	// ▶️ Запустим периодическую чистку блоклиста
	StartBlacklistCleaner(userRepo)

	// Маршруты
	router := mux.NewRouter()
	routes.InitRoutes(router, authHandler, billHandler, middleware.JWTAuth(cfg.JWTSecret, userRepo))

	return router, nil
}

func StartBlacklistCleaner(repo *repository.UserRepository) {
	t := time.NewTicker(1 * time.Hour)
	go func() {
		for range t.C {
			_ = repo.PurgeExpiredTokens(context.Background())
		}
	}()
}
