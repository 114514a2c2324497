package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brigade/internal/api"
	"brigade/internal/config"
	"brigade/internal/database"
	"brigade/internal/kitchen"
	"brigade/internal/menu"
	"brigade/internal/monitoring"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/kitchen.yaml", "Path to configuration file")
	restore     = flag.Bool("restore", false, "Start from the latest saved snapshot instead of the configured seed")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port > 0 {
		cfg.Port = *port
	}
	if *metricsPort > 0 {
		cfg.Metrics.Port = *metricsPort
	}

	catalog, err := cfg.Catalog()
	if err != nil {
		log.Fatalf("Failed to load menu: %v", err)
	}

	// Initialize database
	store, err := initializeDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if store != nil {
		defer store.Close()
	}

	manager, err := initializeKitchen(cfg, catalog, store)
	if err != nil {
		log.Fatalf("Failed to initialize kitchen: %v", err)
	}

	// Initialize metrics collector
	monitor := monitoring.NewMonitor()
	monitor.RecordMetric("menu_dishes", catalog.Len())
	if err := initializeMetrics(manager, monitor); err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	var report io.Writer
	if cfg.LogLevel == "debug" {
		report = os.Stdout
	}
	kitchenAPI := api.NewKitchenAPI(manager, catalog, api.Options{
		JWTSecret: cfg.Auth.JWTSecret,
		Store:     store,
		Monitor:   monitor,
		Report:    report,
	})

	if cfg.Metrics.Enabled {
		go startMetricsServer(cfg.Metrics.Port, cfg.Metrics.Path)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: kitchenAPI.Router,
	}
	listener, err := net.Listen("tcp", server.Addr)
	if err != nil {
		log.Fatalf("Failed to listen on port %d: %v", cfg.Port, err)
	}

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Printf("Starting API server on port %d with %d stations", cfg.Port, manager.StationCount())
	if err := serve(server, listener, sigChan, 10*time.Second); err != nil {
		log.Printf("API server error: %v", err)
	}

	if store != nil {
		if snap, err := store.SaveKitchen(manager, "shutdown"); err != nil {
			log.Printf("Failed to save kitchen on shutdown: %v", err)
		} else {
			log.Printf("Saved kitchen snapshot %d", snap.ID)
		}
	}
}

// serve runs the server until stop fires, then returns once in-flight
// requests have drained or the timeout has passed.
func serve(server *http.Server, listener net.Listener, stop <-chan os.Signal, timeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	log.Println("Shutting down servers...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func initializeDB(cfg *config.Config) (*database.Store, error) {
	if cfg.Database.Dialect == "" {
		log.Println("No database configured, snapshots disabled")
		return nil, nil
	}
	return database.Open(cfg.Database.Dialect, cfg.Database.URL)
}

func initializeKitchen(cfg *config.Config, catalog *menu.Catalog, store *database.Store) (*kitchen.StationManager, error) {
	if *restore {
		if store == nil {
			return nil, database.ErrNoStore
		}
		manager, err := store.LoadKitchen()
		if err == nil {
			log.Println("Restored kitchen from the latest snapshot")
			return manager, nil
		}
		if !errors.Is(err, database.ErrNoSnapshot) {
			return nil, err
		}
		log.Println("No snapshot found, seeding kitchen from configuration")
	}
	return cfg.BuildKitchen(catalog)
}

func initializeMetrics(manager *kitchen.StationManager, monitor *monitoring.Monitor) error {
	recorder, err := monitoring.NewKitchenMetrics(prometheus.DefaultRegisterer, monitor)
	if err != nil {
		return err
	}
	manager.SetRecorder(recorder)
	return monitoring.RegisterKitchenGauges(prometheus.DefaultRegisterer, manager)
}

func startMetricsServer(port int, path string) {
	if path == "" {
		path = "/metrics"
	}
	metricsRouter := gin.Default()
	metricsRouter.GET(path, gin.WrapH(promhttp.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
