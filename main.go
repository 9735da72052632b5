package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/imcoder44/FootprintX/internal/config"
	"github.com/imcoder44/FootprintX/internal/lookup"
	"github.com/imcoder44/FootprintX/internal/metric"
	"github.com/imcoder44/FootprintX/internal/repository"
	"github.com/imcoder44/FootprintX/internal/scheduler"
	"github.com/imcoder44/FootprintX/internal/service"
	"github.com/imcoder44/FootprintX/internal/session"
	server "github.com/imcoder44/FootprintX/internal/transport/http"
	"github.com/imcoder44/FootprintX/policy"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("WARN: failed to load .env: %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Starting FootprintX...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)
	log.Printf("Lookup mode: %s", cfg.LookupMode)

	// Initialize store
	db, err := repository.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Initialize policy engine
	ctx := context.Background()
	policyContent, err := loadPolicy(cfg.PolicyPath)
	if err != nil {
		log.Fatalf("Failed to read policy: %v", err)
	}
	policyEngine, err := policy.NewEngine(ctx, policyContent)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	metrics := metric.NewMetrics()

	// Initialize orchestrator and gateway
	collaborators := lookup.NewRegistryFromConfig(cfg)
	orchestrator := service.NewOrchestrator(collaborators, policyEngine, metrics, cfg.Pacing(), cfg.NameEmailDomain)
	gateway := service.NewGateway(session.NewRegistry(), orchestrator, db, metrics)

	// History retention
	sched := scheduler.New(db, cfg.HistoryPruneSchedule, cfg.HistoryRetention(), metrics)
	if err := sched.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	e := server.NewServer(cfg, gateway, metrics)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("API started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down FootprintX...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}
	sched.Stop()

	log.Println("FootprintX stopped")
}

func loadPolicy(path string) (string, error) {
	if path == "" {
		return policy.DefaultPolicy, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	log.Printf("Loaded lookup policy from %s", path)
	return string(b), nil
}
