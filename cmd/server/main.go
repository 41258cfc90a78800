package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"copytrade/internal/api"
	"copytrade/internal/config"
	"copytrade/internal/matching"
	"copytrade/internal/repository"
	"copytrade/internal/service"
	"copytrade/internal/websocket"
	"copytrade/pkg/utils"

	_ "github.com/lib/pq"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	logger := utils.InitGlobalLogger(utils.LogConfig{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	defer logger.Sync()

	// Инициализация базы данных
	db, err := initDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	utils.Info("connected to database",
		utils.String("dsn", cfg.Database.DSNWithoutPassword()))

	// Инициализация репозиториев
	userRepo := repository.NewUserRepository(db)
	strategyRepo := repository.NewStrategyRepository(db)

	// Движок совместимости
	engine := matching.NewEngine(logger.Logger)

	// Инициализация сервисов
	suggestionService := service.NewSuggestionService(
		userRepo,
		strategyRepo,
		engine,
		logger.Logger,
	)
	suggestionService.SetLimits(cfg.Matching.MaxSuggestions, cfg.Matching.MaxConcurrentScorers)

	discoverService := service.NewDiscoverService(userRepo, strategyRepo, logger.Logger)

	// Инициализация WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()

	// Периодическая рассылка рейтингов подключенным клиентам
	broadcastCtx, stopBroadcast := context.WithCancel(context.Background())
	go runLeaderboardBroadcaster(broadcastCtx, hub, discoverService, cfg.Broadcast)

	// Настройка зависимостей для API
	deps := &api.Dependencies{
		SuggestionService: suggestionService,
		DiscoverService:   discoverService,
		Hub:               hub,
		MetricsAPIKeyHash: cfg.Security.MetricsAPIKeyHash,
		RateLimit:         cfg.Security.RateLimit,
		RateLimitBurst:    cfg.Security.RateLimitBurst,
	}

	// Настройка HTTP роутера
	router := api.SetupRoutes(deps)

	// HTTP сервер
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Запуск сервера в отдельной горутине
	go func() {
		utils.Info("starting server", utils.String("addr", server.Addr))
		if cfg.Server.UseHTTPS {
			if err := server.ListenAndServeTLS(cfg.Server.CertFile, cfg.Server.KeyFile); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Server failed: %v", err)
			}
		} else {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Server failed: %v", err)
			}
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.Info("shutting down server")

	// Останавливаем рассылку и отключаем WebSocket клиентов
	stopBroadcast()
	hub.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	utils.Info("server exited")
}

// runLeaderboardBroadcaster периодически публикует рейтинги лидеров и
// стратегий в WebSocket hub. Ошибки выборки не прерывают цикл: следующий
// тик повторит запрос.
func runLeaderboardBroadcaster(ctx context.Context, hub *websocket.Hub, discover service.DiscoverServiceInterface, cfg config.BroadcastConfig) {
	logger := utils.L().WithComponent("leaderboard_broadcaster")

	ticker := time.NewTicker(cfg.LeaderboardFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if hub.ClientCount() == 0 {
				continue
			}

			leaders, err := discover.GetTopLeaders(ctx, cfg.RankingLimit)
			if err != nil {
				logger.Warn("leaderboard refresh failed", utils.Err(err))
			} else {
				hub.BroadcastLeaderboard(leaders)
			}

			strategies, err := discover.GetTopStrategies(ctx, cfg.RankingLimit)
			if err != nil {
				logger.Warn("strategy board refresh failed", utils.Err(err))
			} else {
				hub.BroadcastStrategyBoard(strategies)
			}
		}
	}
}

// initDatabase создает подключение к базе данных
func initDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Настройка пула соединений
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Проверка подключения
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
