package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"hos-route-service/internal/adapters/cache"
	"hos-route-service/internal/adapters/geocode"
	"hos-route-service/internal/adapters/repositories"
	"hos-route-service/internal/adapters/routing"
	"hos-route-service/internal/adapters/tripapi"
	"hos-route-service/internal/api"
	"hos-route-service/internal/config"
	"hos-route-service/internal/platform/db"
	"hos-route-service/internal/platform/metrics"
	"hos-route-service/internal/ports"
	"hos-route-service/internal/services"
	"hos-route-service/internal/session"
)

// main is the application composition root.
// It wires concrete adapters (Nominatim, OSRM, Postgres, Redis) behind
// ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	collector := metrics.NewCollector()
	var metricsSrv *http.Server
	if cfg.MetricsAddr != "" {
		metricsSrv = collector.Serve(cfg.MetricsAddr)
	}

	var repo ports.TripRepository
	if cfg.DatabaseURL != "" {
		sqlDB, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer sqlDB.Close()

		if err := repositories.InitSchema(sqlDB); err != nil {
			log.Fatal(err)
		}
		repo = repositories.NewPgTripRepository(sqlDB)
	} else {
		log.Println("DATABASE_URL not set; trip persistence disabled")
	}

	var routeCache ports.RouteCache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal(err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal(err)
		}
		routeCache = cache.NewRedisRouteCache(rdb, cfg.RouteCacheTTL)
	} else {
		log.Println("REDIS_URL not set; composed-route cache disabled")
	}

	geocoder := metrics.InstrumentGeocoder(
		geocode.NewNominatimGeocoder(cfg.GeocodeBaseURL, cfg.ExternalTimeout), collector)
	routes := metrics.InstrumentRouteProvider(
		routing.NewOSRMRouteProvider(cfg.RoutingBaseURL, cfg.ExternalTimeout), collector)

	var computer ports.TripComputer
	if cfg.TripAPIBaseURL != "" {
		computer = tripapi.NewClient(cfg.TripAPIBaseURL, cfg.ExternalTimeout)
	} else {
		log.Fatal("TRIP_API_BASE_URL is required")
	}

	manager := session.NewManager()
	defer manager.Close()
	renderer := session.NewRenderer(manager, services.NewComposer(geocoder, routes), routeCache, collector)

	router := api.NewRouter(computer, repo, renderer)

	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			log.Printf("metrics shutdown: %v", err)
		}
	}
}
