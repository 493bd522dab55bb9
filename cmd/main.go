package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"resty_chess/internal/adapters"
	"resty_chess/internal/bootstrap"
	boardDelivery "resty_chess/internal/delivery/board"
	"resty_chess/internal/delivery/ws"
	"resty_chess/internal/domain/board"
	ownMiddleware "resty_chess/internal/middleware"
	"resty_chess/internal/repository"
	boarduc "resty_chess/internal/usecase/board"
)

type mainDeliveryHandler struct {
	board *boardDelivery.BoardHandler
}

func main() {
	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		zap.NewExample().Sugar().Fatalf("Failed to setup configuration: %v", err)
	}
	logger := bootstrap.NewLogger(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	journal, closeJournal := initJournal(ctx, logger, cfg)
	defer closeJournal()

	startBoard, err := initBoard(cfg)
	if err != nil {
		logger.Fatalf("Failed to set up the board: %v", err)
	}

	hub := ws.NewHub(logger)
	go hub.Run(ctx)

	boardUC := boarduc.NewBoardUseCase(startBoard, journal, hub, logger)
	handlers := &mainDeliveryHandler{
		board: boardDelivery.NewBoardHandler(*cfg, logger, boardUC, hub),
	}

	r := chi.NewRouter()
	handlers.Router(r, cfg.IsLocalCors)

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		<-ctx.Done()
		logger.Info("Received shutdown signal")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("Graceful shutdown failed: %v", err)
		}
	}()

	logger.Infof("Server is running on port %s", cfg.ServerPort)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Failed to start server: %v", err)
	}
	logger.Info("Server stopped")
}

func (h *mainDeliveryHandler) Router(r *chi.Mux, isLocalCors bool) {
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if isLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.Logger)

	h.board.Routes(r)
}

// initJournal uses Redis when REDIS_URL is set and memory otherwise.
func initJournal(ctx context.Context, log *zap.SugaredLogger, cfg *bootstrap.Config) (boarduc.JournalStore, func()) {
	if cfg.RedisUrl == "" {
		log.Info("REDIS_URL is not set, keeping the journal in memory")
		return repository.NewMemoryJournal(cfg.JournalLimit), func() {}
	}

	redisAdapter := adapters.NewAdapterRedis(cfg, log)
	if err := redisAdapter.Init(ctx); err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}
	closeFn := func() {
		if err := redisAdapter.Close(context.Background()); err != nil {
			log.Errorf("Failed to close Redis: %v", err)
		}
	}
	return repository.NewRedisJournal(redisAdapter.GetClient(), log, cfg.JournalKey, cfg.JournalLimit), closeFn
}

func initBoard(cfg *bootstrap.Config) (*board.Board, error) {
	if cfg.StartFen == "" {
		return board.New(), nil
	}
	return board.ParseFEN(cfg.StartFen)
}
