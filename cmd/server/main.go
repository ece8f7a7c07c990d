package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dhruvi159/Voxhire-Project/internal/config"
	"github.com/dhruvi159/Voxhire-Project/internal/evaluation"
	"github.com/dhruvi159/Voxhire-Project/internal/handlers"
	"github.com/dhruvi159/Voxhire-Project/internal/jobs"
	"github.com/dhruvi159/Voxhire-Project/internal/judge"
	"github.com/dhruvi159/Voxhire-Project/internal/llm"
	_ "github.com/dhruvi159/Voxhire-Project/internal/llm/gemini"
	"github.com/dhruvi159/Voxhire-Project/internal/mailer"
	"github.com/dhruvi159/Voxhire-Project/internal/metrics"
	appmiddleware "github.com/dhruvi159/Voxhire-Project/internal/middleware"
	"github.com/dhruvi159/Voxhire-Project/internal/otp"
	"github.com/dhruvi159/Voxhire-Project/internal/prompts"
	repo "github.com/dhruvi159/Voxhire-Project/internal/repositories/mongo"
	"github.com/dhruvi159/Voxhire-Project/internal/rounds"
	"github.com/dhruvi159/Voxhire-Project/internal/routers"
	"github.com/dhruvi159/Voxhire-Project/internal/services"
	"github.com/dhruvi159/Voxhire-Project/internal/storage"
	"github.com/dhruvi159/Voxhire-Project/internal/utils"
)

// requestTimeout bounds every request; code validation polls the judge once per test case.
const requestTimeout = 60 * time.Second

type appHandlers struct {
	auth      *handlers.AuthHandler
	interview *handlers.InterviewHandler
	ai        *handlers.AIHandler
	coding    *handlers.CodingHandler
	health    *handlers.HealthHandler
}

func registerRoutes(router *chi.Mux, h appHandlers, jwtSecret string) {
	routers.HealthRoutes(router, h.health)
	routers.AuthRoutes(router, h.auth, jwtSecret)
	routers.InterviewRoutes(router, h.interview, h.ai, h.coding, jwtSecret)
}

func newRouter(cfg *config.Config, h appHandlers) *chi.Mux {
	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigin,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization", appmiddleware.CandidateHeader},
		AllowCredentials: true,
	}))
	router.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer,
		middleware.Timeout(requestTimeout), metrics.Middleware)

	registerRoutes(router, h, cfg.JWTSecret)
	return router
}

func main() {
	logger, err := utils.NewLogger(os.Getenv("LOG_LEVEL"))
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()
	utils.Logger = logger

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	logger.Info("Configuration loaded",
		zap.String("provider", cfg.Provider),
		zap.String("mongo_db", cfg.MongoDB),
		zap.String("redis_addr", cfg.RedisAddr),
		zap.String("timezone", cfg.Location.String()))

	ctx := context.Background()

	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		logger.Fatal("Failed to initialize prompt manager", zap.Error(err))
	}
	aiProvider, err := llm.NewProvider(cfg.Provider)
	if err != nil {
		logger.Fatal("Failed to initialize AI provider", zap.Error(err))
	}

	mongoClient, err := repo.NewClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	db, err := mongoClient.DB()
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	if err := repo.EnsureIndexes(ctx, db); err != nil {
		logger.Warn("Failed to ensure indexes", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis not reachable at startup", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}

	dependencies := map[string]handlers.PingFunc{
		"mongo": mongoClient.Ping,
		"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	}

	// uploads are disabled rather than fatal without a bucket
	var uploader storage.Uploader
	if s3cfg := storage.NewConfig(); s3cfg.Bucket != "" {
		store, err := storage.NewS3Store(ctx, s3cfg)
		if err != nil {
			logger.Fatal("Failed to initialize S3 storage", zap.Error(err))
		}
		uploader = store
		dependencies["s3"] = store.Ping
	} else {
		logger.Warn("S3_BUCKET not set, file uploads are disabled")
	}

	mailCfg := mailer.NewConfig()
	sender, err := mailer.NewSMTPSender(mailCfg)
	if err != nil {
		logger.Fatal("Failed to initialize SMTP sender", zap.Error(err))
	}
	contact := cfg.ContactEmail
	if contact == "" {
		contact = mailCfg.From
	}
	mail := mailer.New(sender, contact, logger)

	judgeClient := judge.NewClient(judge.Config{
		BaseURL: cfg.Judge0URL,
		APIKey:  cfg.Judge0APIKey,
		Host:    cfg.Judge0Host,
	})
	runner := judge.NewRunner(judgeClient, judge.DefaultPolicy(), logger)

	detacher := services.NewDetacher(logger, 0)
	evaluations := repo.NewEvaluationRepo(db)

	authService := services.NewAuthService(services.AuthDeps{
		Users:      repo.NewUserRepo(db),
		Candidates: repo.NewCandidateRepo(db),
		Pending:    otp.NewStore(rdb, cfg.OTPTTL),
		Mailer:     mail,
		Uploader:   uploader,
		JWTSecret:  cfg.JWTSecret,
		OTPTTL:     cfg.OTPTTL,
		Logger:     logger,
	})
	interviewService := services.NewInterviewService(services.InterviewDeps{
		Interviews:    repo.NewInterviewRepo(db),
		Invitations:   repo.NewInvitationRepo(db),
		Uploads:       repo.NewUploadRepo(db),
		Mailer:        mail,
		Uploader:      uploader,
		InvitationTTL: cfg.InvitationTTL,
		Location:      cfg.Location,
		Logger:        logger,
	})
	evaluationService := services.NewEvaluationService(
		evaluation.NewEngine(aiProvider, promptManager, logger), evaluations, detacher, logger)
	questionService := services.NewQuestionService(aiProvider, promptManager, logger)
	codingService := services.NewCodingService(services.CodingDeps{
		Provider:    aiProvider,
		Prompts:     promptManager,
		Runner:      runner,
		Rounds:      rounds.NewStore(rdb, cfg.RoundTTL),
		Evaluations: evaluations,
		Detached:    detacher,
		Logger:      logger,
	})

	exporter := jobs.NewEvaluationExporter(evaluations, uploader, &jobs.ExporterConfig{
		Schedule:      cfg.ExportSchedule,
		ExportDir:     cfg.ExportDir,
		ExportEnabled: cfg.ExportEnabled,
		Settle:        detacher.Timeout(),
	}, logger)
	if err := exporter.Start(); err != nil {
		logger.Error("Failed to start evaluation exporter", zap.Error(err))
	}

	router := newRouter(cfg, appHandlers{
		auth:      handlers.NewAuthHandler(authService, logger),
		interview: handlers.NewInterviewHandler(interviewService, logger),
		ai:        handlers.NewAIHandler(questionService, evaluationService, logger),
		coding:    handlers.NewCodingHandler(codingService, logger),
		health:    handlers.NewHealthHandler(aiProvider, promptManager, dependencies),
	})

	serverAddr := ":" + cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: requestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Voxhire API starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Voxhire API shutting down...")
	exporter.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	// detached writes finish against live connections before they close
	detacher.Wait()
	if err := rdb.Close(); err != nil {
		logger.Warn("Failed to close Redis client", zap.Error(err))
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		logger.Warn("Failed to disconnect MongoDB", zap.Error(err))
	}

	logger.Info("Voxhire API exited")
}
