package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"pehlione.com/admin/internal/config"
	apphttp "pehlione.com/admin/internal/http"
	"pehlione.com/admin/internal/http/flash"
	"pehlione.com/admin/internal/hub"
	"pehlione.com/admin/internal/hubs"
	"pehlione.com/admin/internal/mailer"
	"pehlione.com/admin/internal/modules/categories"
	"pehlione.com/admin/internal/modules/coupons"
	"pehlione.com/admin/internal/modules/products"
	"pehlione.com/admin/internal/modules/staff"
	"pehlione.com/admin/internal/notify"
	"pehlione.com/admin/internal/storage"
	"pehlione.com/admin/internal/wizard"
)

func main() {
	// .env is optional; production uses real env vars
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	if cfg.LogLevel > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.DBDSN == "" {
		log.Fatal("DB_DSN environment variable is required")
	}
	if cfg.AdminToken == "" {
		logger.Warn("ADMIN_TOKEN is empty: every /admin and /api request will be rejected")
	}
	flashSecret := []byte(cfg.FlashSecret)
	if len(flashSecret) == 0 {
		flashSecret = randomSecret()
		logger.Warn("FLASH_SECRET is empty: using a random key, flash cookies will not survive a restart")
	}

	db, err := gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.FromConfig(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	logger.Info("storage ready", slog.String("driver", cfg.Storage.Driver))

	notifier := notify.Request{Next: notify.Log{Logger: logger}}
	mail := mailer.New(cfg, mailer.Log{Logger: logger})

	catRepo := categories.NewRepo(db)
	lookup := categories.NewLookup(catRepo, 5*time.Minute)
	catSvc := categories.NewService(catRepo, lookup, notifier)
	prodSvc := products.NewService(products.NewRepo(db), store, notifier)
	couponSvc := coupons.NewService(coupons.NewRepo(db), nil, notifier)
	staffSvc := staff.NewService(staff.NewRepo(db), &staff.Inviter{
		Mailer:   mail,
		From:     cfg.MailFrom,
		FromName: cfg.MailFromName,
		BaseURL:  cfg.BaseURL,
	}, notifier)

	reg := hub.NewRegistry(cfg.HubsEnabled)
	if err := hubs.Register(reg, hubs.Deps{
		Coupons:       couponSvc,
		Categories:    catSvc,
		Products:      prodSvc,
		Staff:         staffSvc,
		CategoryNames: lookup,
		ProductNames:  prodSvc,
	}); err != nil {
		log.Fatalf("hubs: %v", err)
	}
	for _, h := range reg.Hubs() {
		logger.Info("hub mounted", slog.String("hub", h.Name))
	}

	deps := apphttp.Deps{
		Logger:     logger,
		Registry:   reg,
		Wizards:    wizard.NewStore(cfg.WizardTTL),
		Flash:      flash.NewCodec(flashSecret, "flash", false),
		DB:         sqlDB,
		AdminToken: cfg.AdminToken,
		PageSize:   cfg.DefaultPageSize,
	}
	if cfg.HubEnabled(hubs.Products) {
		deps.Products = prodSvc
	}
	if cfg.Storage.Driver == "" || cfg.Storage.Driver == "local" {
		deps.UploadDir, deps.UploadPrefix = cfg.Storage.LocalDir, cfg.Storage.LocalURLPrefix
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           apphttp.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", slog.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", slog.Any("err", err))
			stop()
		}
	}()

	<-ctx.Done()
	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		logger.Error("shutdown", slog.Any("err", err))
	}
	_ = sqlDB.Close()
}

func randomSecret() []byte {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return []byte(hex.EncodeToString(b))
}
