package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/mcardoso/storefront/internal/config"
	"github.com/mcardoso/storefront/internal/httpserver"
	"github.com/mcardoso/storefront/internal/notify"
	"github.com/mcardoso/storefront/internal/repo"
	"github.com/mcardoso/storefront/internal/search"
	"github.com/mcardoso/storefront/internal/service"
	pkgdb "github.com/mcardoso/storefront/pkg/db"
	"github.com/mcardoso/storefront/pkg/logging"
	loggingmw "github.com/mcardoso/storefront/pkg/middleware/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTAccessSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	if err := repo.AutoMigrate(db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	var notifier notify.Notifier = notify.Noop{}
	var kafkaNotifier *notify.KafkaNotifier
	if len(cfg.KafkaBrokers) > 0 {
		kafkaNotifier = notify.NewKafkaNotifier(cfg.KafkaBrokers, cfg.OrderTopic)
		notifier = kafkaNotifier
	} else {
		logger.Warn("KAFKA_BROKERS not set, order notifications disabled")
	}

	var esClient *elasticsearch.Client
	if cfg.ESURL != "" {
		esClient, err = search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
	} else {
		logger.Warn("ES_URL not set, product search disabled")
	}

	r := &repo.GormRepo{DB: db}

	authSvc := &service.AuthService{Repo: r, JWTSecret: cfg.JWTAccessSecret}
	if cfg.AdminUsername != "" && cfg.AdminPassword != "" {
		bootCtx, bootCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := authSvc.EnsureUser(bootCtx, cfg.AdminUsername, cfg.AdminPassword, "admin"); err != nil {
			log.Fatalf("bootstrap admin: %v", err)
		}
		bootCancel()
	}

	catalogSvc := &service.CatalogService{Repo: r, ES: esClient, ESIndex: cfg.ESIndex}
	cartSvc := &service.CartService{Repo: r}
	checkoutSvc := &service.CheckoutService{Repo: r, Notifier: notifier}
	registrationSvc := &service.RegistrationService{Repo: r}

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		CatalogHandler:      &httpserver.CatalogHTTP{Svc: catalogSvc},
		CartHandler:         &httpserver.CartHTTP{Svc: cartSvc},
		CheckoutHandler:     &httpserver.CheckoutHTTP{Svc: checkoutSvc},
		OrderHandler:        &httpserver.OrderHTTP{Repo: r},
		RegistrationHandler: &httpserver.RegistrationHTTP{Svc: registrationSvc},
		AdminHandler:        &httpserver.AdminHTTP{Catalog: catalogSvc, Auth: authSvc},
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("storefront listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if kafkaNotifier != nil {
		_ = kafkaNotifier.Close()
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("storefront stopped")
}
