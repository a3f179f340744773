package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"asset-cache/core/assets"
	"asset-cache/core/config"
	"asset-cache/core/loader"
	"asset-cache/core/logger"
	"asset-cache/core/middleware/auth"
	"asset-cache/core/middleware/rayid"
	"asset-cache/core/reconcile"
	"asset-cache/feature/catalog"
	"asset-cache/feature/integrity"
	"asset-cache/feature/watcher"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "asset-cache/docs/swagger"
)

const healthPath = "/health"

// @title Asset Cache API
// @version 1.0
// @description API for inspecting and driving the asynchronous asset cache.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the asset cache server",
	Long:  `Loads the asset databases, starts the file watcher and serves the HTTP catalog.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		rt, err := newRuntime(ctx, cfg, logg)
		if err != nil {
			logg.Fatal("Failed to initialize asset cache", zap.Error(err))
		}

		preload(rt)

		var w *watcher.Watcher
		if cfg.Watcher.Enabled {
			w = watcher.New(cfg.Watcher, rt.resolver, rt.manager, rt.router, logg.Named("watcher"))
			if err := w.Start(ctx); err != nil {
				logg.Fatal("Failed to start watcher", zap.Error(err))
			}
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// RayID first so every later log line carries it.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Get(healthPath, func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})

		// Swagger documentation is public.
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Skip: []string{healthPath}}))

		engine := reconcile.New(rt.manager, rt.resolver, rt.router.KindFor)
		svc := catalog.NewService(rt.manager, rt.pool, engine, cfg.Catalog, logg.Named("catalog"))

		mgr := loader.NewManager(logg)
		mgr.Register(catalog.NewFeature(cfg.Catalog, svc))
		mgr.Register(integrity.NewFeature(cfg.Integrity, integrity.NewService(integrity.Deps{
			Resolver: rt.resolver,
			Store:    rt.store,
			Backend:  cfg.Pack.Backend,
			Client:   rt.client,
			Bucket:   cfg.Storage.Bucket,
			DB:       rt.db,
		}, logg.Named("integrity"))))
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")

		if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout()); err != nil {
			logg.Warn("HTTP shutdown failed", zap.Error(err))
		}
		if w != nil {
			_ = w.Close()
		}

		saveCtx, saveCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
		defer saveCancel()
		if err := rt.manager.SaveAll(saveCtx); err != nil {
			logg.Error("Failed to save databases", zap.Error(err))
		}
		rt.Close()
		logg.Info("Shutdown complete")
	},
}

// preload requests the configured startup assets without waiting for them.
func preload(rt *runtime) {
	entries, err := rt.cfg.Assets.ParsePreload()
	if err != nil {
		rt.logger.Warn("Invalid preload list", zap.Error(err))
		return
	}
	for _, p := range entries {
		b, ok := rt.manager.Binding(p.Kind)
		if !ok {
			rt.logger.Warn("Preload kind is not registered", zap.String("kind", p.Kind), zap.String("key", p.Key))
			continue
		}
		e := b.Load(p.Key, assets.LoadStandard)
		rt.logger.Info("Preloading asset",
			zap.String("kind", p.Kind),
			zap.String("key", e.Key),
			zap.Bool("valid", e.Valid))
	}
}

func init() {
	RootCmd.AddCommand(startCmd)
}
