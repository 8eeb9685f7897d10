package main

import (
	"flag"
	stdlog "log"
	"net/http"

	"go.uber.org/zap"

	"pettrack/internal/api/router"
	"pettrack/internal/cache"
	"pettrack/internal/config"
	"pettrack/internal/core/repository"
	"pettrack/internal/core/service"
)

func main() {
	configPath := flag.String("config", "", "path to the tracking yaml config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		stdlog.Fatalf("failed to load configuration: %v", err)
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		stdlog.Fatalf("failed to build logger: %v", err)
	}
	defer log.Sync()

	// Route archive: MongoDB when configured, in-memory otherwise.
	var routeRepo repository.RouteRepository
	if cfg.MongoURI != "" {
		db, err := config.ConnectMongoDB(cfg)
		if err != nil {
			log.Fatal("failed to connect to MongoDB", zap.Error(err))
		}
		routeRepo = repository.NewMongoRouteRepository(db)
		log.Info("route archive backed by MongoDB", zap.String("database", cfg.MongoDatabase))
	} else {
		routeRepo = repository.NewInMemoryRouteRepository()
		log.Info("route archive backed by memory, finalized routes are not durable")
	}

	stateCache := cache.New(cfg.RedisURL, cfg.Tracking.StateCacheTTL(), log)
	defer stateCache.Close()

	trackerService := service.NewTrackerService(cfg, routeRepo, stateCache, log)
	r := router.NewRouter(trackerService, log)

	addr := cfg.Host + ":" + cfg.Port
	log.Info("server starting",
		zap.String("addr", addr),
		zap.Int("zones", len(cfg.Zones)))
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	logCfg := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(level); err == nil {
		logCfg.Level = lvl
	}
	return logCfg.Build()
}
