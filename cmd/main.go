package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"restaurant-pos/internal/catalog"
	"restaurant-pos/internal/config"
	"restaurant-pos/internal/database"
	"restaurant-pos/internal/engine"
	"restaurant-pos/internal/inventory"
	"restaurant-pos/internal/ledger"
	"restaurant-pos/internal/logger"
	"restaurant-pos/internal/messaging"
	"restaurant-pos/internal/services/notification"
	"restaurant-pos/internal/services/pos"
	"restaurant-pos/internal/stats"
)

func main() {
	// Parse command line flags
	var (
		mode       = flag.String("mode", "", "Service mode (pos-server, notification-subscriber)")
		port       = flag.Int("port", 3000, "HTTP port")
		configPath = flag.String("config", "config.yaml", "Path to configuration file")
		prefetch   = flag.Int("prefetch", 1, "RabbitMQ prefetch count")
	)
	flag.Parse()

	// Validate required mode flag
	if *mode == "" {
		fmt.Fprintf(os.Stderr, "Error: --mode flag is required\n")
		flag.Usage()
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Create logger
	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode": *mode,
		"port": *port,
	})

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	// Route to appropriate service
	switch *mode {
	case "pos-server":
		if err := runPOSServer(ctx, cfg, log, *port); err != nil {
			log.Error("service_failed", "POS server failed", requestID, err, nil)
			os.Exit(1)
		}
	case "notification-subscriber":
		if err := runNotificationSubscriber(ctx, cfg, log, *prefetch); err != nil {
			log.Error("service_failed", "Notification subscriber failed", requestID, err, nil)
			os.Exit(1)
		}
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runPOSServer runs the point-of-sale HTTP server
func runPOSServer(ctx context.Context, cfg *config.Config, log *logger.Logger, port int) error {
	requestID := logger.GenerateRequestID()

	// Load the catalog from the menu and ingredient files
	cat, err := catalog.LoadFiles(cfg.Files.Ingredients, cfg.Files.Menu)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	log.Info("catalog_loaded", "Loaded menu and ingredient catalog", requestID, map[string]interface{}{
		"dishes":      len(cat.Menu),
		"ingredients": len(cat.Ingredients),
	})

	registry := prometheus.NewRegistry()
	statistics := stats.New(registry)

	led := ledger.New(cfg.Files.Payments, log)
	inv := inventory.NewManager(cat.Ingredients, cfg.Files.Requests, cfg.Restaurant.ReorderAmount, log)

	eng := engine.New(cat, inv, statistics, led, cfg.Restaurant.TableLayout, log)

	// Optional order archive mirrored to PostgreSQL
	if cfg.ArchiveEnabled() {
		db, err := database.New(cfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()

		if err := db.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}

		log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

		archive := database.NewArchive(db, eng.Subscribe(), log)
		go archive.Run(ctx)
	}

	// Optional event relay to RabbitMQ
	if cfg.RelayEnabled() {
		conn, err := messaging.New(cfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize messaging: %w", err)
		}
		defer conn.Close()

		log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

		publisher := messaging.NewPublisher(conn, log)
		relay := messaging.NewRelay(eng.Subscribe(), publisher, log)
		go relay.Run(ctx)
	}

	handler := pos.NewHandler(eng, registry, log)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: handler.SetupRoutes(),
	}

	go func() {
		log.Info("service_started", fmt.Sprintf("POS server started on port %d", port), requestID, map[string]interface{}{
			"port":   port,
			"tables": eng.TableCount(),
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}

// runNotificationSubscriber runs the event notification subscriber
func runNotificationSubscriber(ctx context.Context, cfg *config.Config, log *logger.Logger, prefetch int) error {
	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	consumer := messaging.NewConsumer(conn, log, messaging.EventsQueue, "notification-subscriber", prefetch)
	subscriber := notification.NewSubscriber(consumer, log)

	return subscriber.Start(ctx)
}
