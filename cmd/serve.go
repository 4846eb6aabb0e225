package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kustommania/cache"
	"kustommania/config"
	"kustommania/database"
	"kustommania/jobs"
	"kustommania/logger"
	"kustommania/middleware"
	"kustommania/repositories"
	"kustommania/routes"
	"kustommania/services"
	"kustommania/storage"
	"kustommania/utils"
	"kustommania/web"
)

const shutdownTimeout = 15 * time.Second

var seedOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := boot()
		if err != nil {
			return err
		}
		defer logger.Sync()
		return serve(cmd.Context(), cfg)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&seedOnStart, "seed", false, "seed sample data when the database is empty")
}

func serve(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log := logger.GetLogger()

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	if seedOnStart {
		if err := database.SeedData(db, cfg.DefaultWhatsAppNumber); err != nil {
			log.Warn("failed to seed database", zap.Error(err))
		}
	}

	store := newCache(ctx, cfg)
	defer store.Close()

	disk, err := storage.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	svc := buildServices(cfg, db, store, disk)
	if svc.Auth.Enabled() && svc.Auth.EphemeralSecret() {
		log.Warn("JWT_SECRET is unset or a placeholder, using a random key; admin sessions end on restart")
	}

	templates, err := web.Templates()
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		logger.Middleware(),
		middleware.ErrorHandler(),
	)
	routes.SetupRoutes(router, cfg, svc, templates, web.Static())

	rateJob := jobs.NewRateRefreshJob(svc.Currency, cfg.RateRefreshInterval, cfg.RateFeedTimeout)
	rateJob.Start()
	defer rateJob.Stop()

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		log.Info("starting Kustom Mania server",
			zap.String("port", cfg.Port),
			zap.String("env", cfg.Env),
			zap.String("admin_path", cfg.AdminPath),
			zap.Bool("admin_auth", svc.Auth.Enabled()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-sigCtx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("server stopped")
	return nil
}

// newCache returns Redis when configured and reachable, memory otherwise
func newCache(ctx context.Context, cfg *config.Config) cache.Store {
	if cfg.RedisAddr == "" {
		return cache.NewMemoryStore()
	}
	store, err := cache.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, "kustommania:")
	if err != nil {
		logger.GetLogger().Warn("redis unavailable, using in-memory cache", zap.Error(err))
		return cache.NewMemoryStore()
	}
	return store
}

func buildServices(cfg *config.Config, db *gorm.DB, store cache.Store, disk storage.Disk) routes.Services {
	motorcycleRepo := repositories.NewMotorcycleRepository(db)
	imageRepo := repositories.NewImageRepository(db)
	leadRepo := repositories.NewLeadRepository(db)
	siteConfigRepo := repositories.NewSiteConfigRepository(db)

	siteConfig := services.NewSiteConfigService(siteConfigRepo)

	var notifier services.LeadNotifier
	if cfg.LeadNotifyEmail != "" && !utils.IsValidEmail(cfg.LeadNotifyEmail) {
		logger.GetLogger().Warn("LEAD_NOTIFY_EMAIL is not a valid address, lead e-mails disabled",
			zap.String("lead_notify_email", cfg.LeadNotifyEmail))
	} else if email := services.NewEmailService(cfg); email != nil {
		notifier = email
	}

	return routes.Services{
		Motorcycles: services.NewMotorcycleService(motorcycleRepo, imageRepo, disk),
		Images:      services.NewImageService(imageRepo, motorcycleRepo, disk, cfg.UploadMaxBytes),
		Leads:       services.NewLeadService(leadRepo, motorcycleRepo, siteConfig, notifier, cfg.DefaultWhatsAppNumber),
		SiteConfig:  siteConfig,
		Currency:    services.NewCurrencyService(cfg.RateFeedURL, cfg.RateFeedTimeout, store),
		Pipeline:    services.NewPipelineService(motorcycleRepo),
		Analytics:   services.NewAnalyticsService(motorcycleRepo, leadRepo, imageRepo),
		SEO:         services.NewSEOService(motorcycleRepo, cfg.SiteURL, cfg.SiteName, cfg.AdminPath),
		Auth:        services.NewAuthService(cfg.AdminPasswordHash, cfg.JWTSecret, cfg.AdminSessionTTL),
	}
}
