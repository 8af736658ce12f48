package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/geprek-app/config"
	"github.com/yeremiapane/geprek-app/database"
	"github.com/yeremiapane/geprek-app/hub"
	"github.com/yeremiapane/geprek-app/middlewares"
	"github.com/yeremiapane/geprek-app/models"
	"github.com/yeremiapane/geprek-app/router"
	"github.com/yeremiapane/geprek-app/services"
	"github.com/yeremiapane/geprek-app/utils"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()
	utils.InitLoggerWithLevel(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		utils.ErrorLogger.Fatalf("Invalid configuration: %v", err)
	}
	utils.ConfigureJWT(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)
	if cfg.Auth.SessionSecret == "" {
		utils.InfoLogger.Warn("SESSION_SECRET not set, using default development secret")
	}

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize DB
	db, err := config.InitDB(cfg.DB)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	seed(cfg, db)

	rdb, err := config.NewRedisClient(cfg.Redis)
	if err != nil {
		utils.ErrorLogger.Errorf("Redis unavailable, menu cache disabled: %v", err)
	}
	if rdb != nil {
		defer rdb.Close()
		utils.InfoLogger.Printf("Menu cache enabled on %s", cfg.Redis.Addr)
	}

	realtime := hub.New()
	events := services.MultiPublisher{services.HubPublisher{Hub: realtime}}
	if writer := config.NewKafkaWriter(cfg.Kafka); writer != nil {
		defer writer.Close()
		events = append(events, services.KafkaPublisher{Writer: writer})
		utils.InfoLogger.Printf("Publishing events to kafka topic %s", cfg.Kafka.Topic)
	}

	rateLimiter := middlewares.NewRateLimiter(cfg.Limits.PerSecond, cfg.Limits.Burst)
	carts := services.NewCartStore(db, rdb, cfg.Redis.CartTTL)

	r := router.SetupRouter(router.Dependencies{
		DB:          db,
		Config:      cfg,
		Redis:       rdb,
		Hub:         realtime,
		Events:      events,
		RateLimiter: rateLimiter,
		Carts:       carts,
	})
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		utils.ErrorLogger.Errorf("Failed to set trusted proxies: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go housekeeping(ctx, rateLimiter, carts, cfg.Redis.CartTTL)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	<-ctx.Done()
	utils.InfoLogger.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.Errorf("Server forced to shutdown: %v", err)
	}
}

func seed(cfg config.Config, db *gorm.DB) {
	if cfg.Seed.Menu {
		if _, err := database.SeedMenu(db); err != nil {
			utils.ErrorLogger.Errorf("Failed to seed menu: %v", err)
		}
	}
	role, ok := models.ParseRole(cfg.Seed.AdminRole)
	if !ok {
		role = models.RoleAdmin
	}
	if err := database.SeedAdmin(db, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword, cfg.Seed.AdminName, role); err != nil {
		utils.ErrorLogger.Errorf("Failed to seed admin account: %v", err)
	}
}

// housekeeping membersihkan blacklist token, bucket rate limit, dan keranjang
// database yang kedaluwarsa (keranjang Redis kedaluwarsa lewat TTL)
func housekeeping(ctx context.Context, rl *middlewares.RateLimiter, carts services.CartStore, cartTTL time.Duration) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			tokens := utils.CleanupBlacklist(now)
			visitors := rl.Cleanup(now)
			var stale int64
			if store, ok := carts.(*services.DBCartStore); ok {
				stale, _ = store.Purge(ctx, now.Add(-cartTTL))
			}
			if tokens > 0 || visitors > 0 || stale > 0 {
				utils.InfoLogger.Debugf("Housekeeping: %d tokens, %d visitors, %d carts removed", tokens, visitors, stale)
			}
		}
	}
}
