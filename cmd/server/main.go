package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/shope/internal/carousel"
	"github.com/Skotchmaster/shope/internal/cart"
	"github.com/Skotchmaster/shope/internal/catalog"
	"github.com/Skotchmaster/shope/internal/contentful"
	"github.com/Skotchmaster/shope/internal/events"
	"github.com/Skotchmaster/shope/internal/httpserver"
	"github.com/Skotchmaster/shope/internal/repo"
	"github.com/Skotchmaster/shope/internal/search"
	"github.com/Skotchmaster/shope/internal/service"
	"github.com/Skotchmaster/shope/pkg/config"
	pkgdb "github.com/Skotchmaster/shope/pkg/db"
	"github.com/Skotchmaster/shope/pkg/logging"
	loggingmw "github.com/Skotchmaster/shope/pkg/middleware/logging"
	"github.com/Skotchmaster/shope/pkg/middleware/session"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.ContentfulSpaceID, "CONTENTFUL_SPACE_ID")
	config.MustNonEmpty(cfg.ContentfulAccessToken, "CONTENTFUL_ACCESS_TOKEN")
	config.MustOneOf(cfg.DBDriver, "DB_DRIVER", pkgdb.DriverSQLite, pkgdb.DriverPostgres)

	policy, err := cart.ParsePolicy(cfg.CartReAddPolicy)
	if err != nil {
		log.Fatalf("CART_READD_POLICY: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(initCtx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		cancel()
		log.Fatalf("db init error: %v", err)
	}
	gormRepo := &repo.GormRepo{DB: db}
	if err := gormRepo.Migrate(initCtx); err != nil {
		cancel()
		log.Fatalf("db migrate error: %v", err)
	}
	cancel()

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		logger.Info("kafka publisher enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	loader := &catalog.Loader{
		Client:      contentful.NewClient(cfg.ContentfulBaseURL, cfg.ContentfulSpaceID, cfg.ContentfulEnvironment, cfg.ContentfulAccessToken),
		ContentType: cfg.ContentfulContentType,
		Events:      publisher,
	}
	catalogHandler := &httpserver.CatalogHTTP{Catalog: loader}
	if cfg.ESURL != "" {
		es, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			logger.Warn("elasticsearch disabled", "error", err)
		} else {
			idx := &search.Index{ES: es, Name: cfg.ESIndex}
			loader.Index = idx
			catalogHandler.Index = idx
		}
	}

	appCtx, stopApp := context.WithCancel(logging.IntoContext(context.Background(), logger))
	defer stopApp()

	go loader.Load(appCtx)

	banners := carousel.New(carousel.DefaultBanners, cfg.CarouselInterval)
	go banners.Run(appCtx)

	cartService := &service.CartService{
		Store:     service.NewCartStore(policy),
		Repo:      gormRepo,
		Publisher: publisher,
	}
	orderService := &service.OrderService{
		Store:     service.NewOrderStore(),
		Repo:      gormRepo,
		Carts:     cartService,
		Publisher: publisher,
	}
	go cartService.Store.Run(appCtx, cfg.SessionIdleTTL, cfg.SessionSweepInterval)
	go orderService.Store.Run(appCtx, cfg.SessionIdleTTL, cfg.SessionSweepInterval)

	logger.Info("storefront configured",
		"cart_readd_policy", policy.String(),
		"carousel_interval", banners.Interval().String(),
		"session_idle_ttl", cfg.SessionIdleTTL.String(),
	)

	e := echo.New()
	e.HideBanner = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowHeaders:  []string{echo.HeaderContentType, session.Header},
		ExposeHeaders: []string{session.Header},
	}))
	e.Use(session.Middleware())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		CatalogHandler:  catalogHandler,
		CartHandler:     &httpserver.CartHTTP{Svc: cartService},
		OrderHandler:    &httpserver.OrderHTTP{Svc: orderService},
		CarouselHandler: &httpserver.CarouselHTTP{Carousel: banners},
		Ready: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	})

	addr := ":" + strconv.Itoa(cfg.ServerPort)
	go func() {
		logger.Info("starting server", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down server")

	stopApp()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}

	if err := cartService.Flush(shutdownCtx); err != nil {
		logger.Error("cart flush", "error", err)
	}
	cartService.Store.Close()
	orderService.Store.Close()

	if err := publisher.Close(); err != nil {
		logger.Error("publisher close", "error", err)
	}
	if err := pkgdb.Close(db); err != nil {
		logger.Error("db close", "error", err)
	}

	logger.Info("server stopped")
}
