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

	"github.com/inovuslabs/certanchor/internal/api"
	"github.com/inovuslabs/certanchor/internal/api/handler"
	"github.com/inovuslabs/certanchor/internal/config"
	"github.com/inovuslabs/certanchor/internal/core"
	"github.com/inovuslabs/certanchor/internal/db"
	"github.com/inovuslabs/certanchor/internal/ledger"
	"github.com/inovuslabs/certanchor/internal/logging"
	"github.com/inovuslabs/certanchor/internal/media"
	"github.com/inovuslabs/certanchor/internal/metrics"
	"github.com/inovuslabs/certanchor/internal/seed"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "create-api-key":
			createAPIKey(os.Args[2:])
			return
		case "seed":
			runSeed(os.Args[2:])
			return
		}
	}

	migrateFlag := flag.Bool("migrate", false, "Run database migrations before starting")
	migrateDirFlag := flag.String("migrate-dir", "migrations", "Migration files directory")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg)

	if *migrateFlag {
		logger.Info().Str("dir", *migrateDirFlag).Msg("running database migrations")
		if err := db.RunMigrations(cfg.DatabaseURL, *migrateDirFlag); err != nil {
			logger.Fatal().Err(err).Msg("migration failed")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	metrics.RegisterPgxPoolMetrics(pool)

	contract, err := ledger.NewContractClient(ctx, cfg.LedgerRPCURL, cfg.LedgerPrivateKey, cfg.ContractAddress, cfg.ConfirmTimeout, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to ledger")
	}
	defer contract.Close()
	logger.Info().Str("signer", contract.SignerAddress()).Str("contract", cfg.ContractAddress).Msg("ledger client ready")

	explorer := ledger.NewExplorer(cfg.ExplorerAPIURL, cfg.ExplorerAPIKey, cfg.ExplorerBaseURL, cfg.LedgerNetwork)

	var signer handler.UploadSigner
	if cfg.MediaEnabled() {
		signer = media.NewPresigner(cfg)
		logger.Info().Str("bucket", cfg.MediaBucket).Msg("media uploads enabled")
	}

	srv := api.NewServer(logger, pool, contract, explorer, signer, cfg)

	httpServer := &http.Server{
		Addr:         cfg.HTTPListenAddr,
		Handler:      srv,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPListenAddr).Msg("starting API server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
}

func createAPIKey(args []string) {
	fs := flag.NewFlagSet("create-api-key", flag.ExitOnError)
	userID := fs.String("user", "", "Account ID the key belongs to (required)")
	name := fs.String("name", "", "Name for the API key (required)")
	fs.Parse(args)

	if *userID == "" || *name == "" {
		fmt.Fprintln(os.Stderr, "error: --user and --name are required")
		fmt.Fprintln(os.Stderr, "usage: certanchor-api create-api-key --user <id> --name <name>")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	svc := core.NewAPIKeyService(pool)
	key, rawKey, err := svc.Create(ctx, *userID, *name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to create API key: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("API key created successfully.\n\n")
	fmt.Printf("  Name:   %s\n", key.Name)
	fmt.Printf("  ID:     %s\n", key.ID)
	fmt.Printf("  Key:    %s\n\n", rawKey)
	fmt.Printf("Save this key - it will not be shown again.\n")
}

func runSeed(args []string) {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	configPath := fs.String("config", "seeds/accounts.yaml", "Seed fixture path")
	fs.Parse(args)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.NewLogger(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := seed.Run(ctx, *configPath, core.NewUserService(pool), logger); err != nil {
		fmt.Fprintf(os.Stderr, "error: seeding failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Seeding complete.")
}
