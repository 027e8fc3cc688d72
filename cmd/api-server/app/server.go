package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/etag"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/pquerna/ffjson/ffjson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"speedwatch-api-server/cmd/api-server/app/options"
	"speedwatch-api-server/internal/api/stats"
	"speedwatch-api-server/internal/api/violation"
	cache2 "speedwatch-api-server/internal/cache"
	db "speedwatch-api-server/internal/database"
)

type envConfig struct {
	AdminKey string `env:"ADMIN_KEY,unset"`
}

type Server struct {
	app    *fiber.App
	db     *gorm.DB
	cache  *cache2.Cache
	logger *zap.Logger
}

func NewServer(opts *options.Options, logger *zap.Logger) *Server {
	// connect the sqlite record store
	db, err := db.Connect()
	if err != nil {
		logger.Fatal("Unable to open violation database", zap.Error(err))
	}

	cfg := &envConfig{}
	if err := env.Parse(cfg, env.Options{}); err != nil {
		logger.Fatal("Unable to read environment", zap.Error(err))
	}
	if cfg.AdminKey == "" {
		logger.Fatal("ADMIN_KEY must be set")
	}

	cache, err := cache2.NewCache()
	if err != nil {
		logger.Fatal("Unable to init cache", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:     "Speedwatch API Server",
		Prefork:     false,
		JSONEncoder: ffjson.Marshal,
	})

	app.Use(cors.New())
	app.Use(compress.New())
	app.Use(etag.New())
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] [${ip}:${port}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	if *opts.Mode == "debug" {
		app.Use(pprof.New())
	}

	api := app.Group("/api")
	// violation ingestion and queries
	violationLogger := logger.Named("violation")
	violationRepository := violation.NewViolationRepository(db)
	violationService := violation.NewViolationService(cfg.AdminKey, cache, violationRepository, violationLogger)
	violation.ViolationRouter(api, violationService, violationLogger)
	// rollup statistics
	statsLogger := logger.Named("stats")
	statsRepository := stats.NewStatsRepository(db)
	statsService := stats.NewStatsService(statsRepository, statsLogger)
	stats.StatsRouter(api, statsService, statsLogger)

	app.Get("/dashboard", monitor.New())

	app.All("*", notFound)

	return &Server{
		app:    app,
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// notFound answers every unmatched route.
func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(&fiber.Map{
		"ok":    false,
		"error": fmt.Sprintf("Route %s %s not found", c.Method(), c.Path()),
	})
}

func (app *Server) Listen(port int, certFile, keyFile *string) error {
	app.logger.Info("Starting Speedwatch api-server ...")

	address := fmt.Sprintf(":%d", port)
	if certFile != nil && keyFile != nil {
		if *certFile != "" && *keyFile != "" {
			return app.app.ListenTLS(address, *certFile, *keyFile)
		}
	}
	return app.app.Listen(address)
}

func (app *Server) Shutdown(parentCtx context.Context) error {
	g, ctx := errgroup.WithContext(parentCtx)
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	g.Go(func() error {
		if err := app.app.Shutdown(); err != nil {
			return err
		}
		// the sqlite handle closes only after in-flight requests drain
		sqlDB, err := app.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	})
	g.Go(func() error {
		_ = app.logger.Sync()
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	return nil
}

func Run(opts *options.Options, logger *zap.Logger) error {
	// Start api-server
	apiServerError := make(chan error)

	server := NewServer(opts, logger)

	go func() {
		if err := server.Listen(*opts.Port, opts.CertFile, opts.KeyFile); err != nil && err != http.ErrServerClosed {
			logger.Error("api-server failed", zap.Error(err))
			apiServerError <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("Shutdown server ...")

		ctx := context.Background()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("close api-server failed", zap.Error(err))
			return err
		}
	case err := <-apiServerError:
		return err
	}

	return nil
}
