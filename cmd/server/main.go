package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignite/brandhub/internal/api"
	"github.com/ignite/brandhub/internal/cache"
	"github.com/ignite/brandhub/internal/config"
	"github.com/ignite/brandhub/internal/emailidentity"
	"github.com/ignite/brandhub/internal/generation"
	"github.com/ignite/brandhub/internal/repository/postgres"
	"github.com/ignite/brandhub/internal/service/channels"
	"github.com/ignite/brandhub/internal/service/collections"
	"github.com/ignite/brandhub/internal/service/company"
	"github.com/ignite/brandhub/internal/service/profile"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// checkPortAvailable verifies that the target port is not already in use.
// This prevents confusion from stale processes occupying the port.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v\n"+
			"  Hint: Run 'lsof -i :%d' to find the blocking process", port, addr, err, port)
	}
	ln.Close()
	return nil
}

func main() {
	log.Println("IGNITE Brand Hub server starting")

	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("DATABASE_URL") != "" {
		log.Println("[config] DATABASE_URL env override active")
	}

	// Pre-flight check: verify the target port is available
	if err := checkPortAvailable(cfg.Server.Host, cfg.Server.Port); err != nil {
		log.Fatalf("Pre-flight check FAILED: %v", err)
	}
	log.Printf("Pre-flight check passed: port %d is available", cfg.Server.Port)

	// Database
	if cfg.Database.URL == "" {
		log.Fatal("database.url (or DATABASE_URL) is required")
	}
	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to database")

	// Resolution cache (optional)
	var resolutionCache company.ResolutionCache
	if cfg.Redis.URL != "" {
		ttl := time.Duration(cfg.Redis.ResolveTTLMinutes) * time.Minute
		rc, err := cache.NewResolutionCacheFromURL(cfg.Redis.URL, ttl)
		if err != nil {
			log.Printf("WARNING: Redis unavailable, resolution cache disabled: %v", err)
		} else {
			resolutionCache = rc
			defer rc.Close()
		}
	}

	// SES identity verification (optional)
	var identity profile.IdentityChecker
	if cfg.Email.Enabled {
		ses, err := emailidentity.NewClient(context.Background(), cfg.Email.Region, cfg.Email.AccessKey, cfg.Email.SecretKey)
		if err != nil {
			log.Printf("WARNING: SES unavailable, identity checks disabled: %v", err)
		} else {
			identity = ses
			log.Println("SES identity verification enabled")
		}
	}

	// Services
	companies := company.NewService(postgres.NewResolverRepo(db), resolutionCache)
	profiles := profile.NewService(postgres.NewProfileRepo(db), identity)
	colls := collections.NewService(postgres.NewCollectionsRepo(db))
	chans := channels.NewService(postgres.NewChannelsRepo(db))

	handlers := api.NewHandlers(companies, profiles, colls, chans)

	// Content generation (optional)
	if cfg.Generation.Enabled {
		gen, err := generation.New(context.Background(), cfg.Generation.Region, cfg.Generation.ModelID)
		if err != nil {
			log.Printf("WARNING: Bedrock unavailable, content generation disabled: %v", err)
		} else {
			handlers.SetGenerator(gen)
			log.Println("Content generation enabled")
		}
	}

	server := api.NewServer(cfg, handlers)

	// Setup graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Starting server on %s", addr)
		if err := server.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	log.Println("All services initialized, server is ready")

	<-done
	log.Println("Shutting down...")

	// Graceful shutdown with timeout; open edit sessions flush first.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
